package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trequetrum/GloomhavenTools/pkg/core"
)

func TestSource_BridgesEvents(t *testing.T) {
	in := make(chan core.Event, 2)
	source := NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, source.Start(ctx))

	doc := core.NewDocument("x1", "Campaign")
	in <- core.NewEvent(core.ActionLoad, doc)

	select {
	case e := <-source.Events():
		assert.Equal(t, "load x1", e.String())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for bridged event")
	}

	// Closing the upstream channel closes the bridge.
	close(in)
	select {
	case _, ok := <-source.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for bridge shutdown")
	}
}
