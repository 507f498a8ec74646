package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trequetrum/GloomhavenTools/pkg/core"
)

func collect(t *testing.T, ch <-chan core.Event, n int) []core.Event {
	t.Helper()
	out := make([]core.Event, 0, n)
	timeout := time.After(2 * time.Second)
	for len(out) < n {
		select {
		case e := <-ch:
			out = append(out, e)
		case <-timeout:
			t.Fatalf("timed out after %d of %d events", len(out), n)
		}
	}
	return out
}

func TestBus_SentinelSeed(t *testing.T) {
	bus := NewBus(0)
	last := bus.LastEvent()
	assert.Equal(t, core.ActionError, last.Action)
	assert.Nil(t, last.File)
	assert.Equal(t, 0, bus.Len())
}

func TestBus_OrderedDelivery(t *testing.T) {
	bus := NewBus(0)
	events, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(core.NewEvent(core.ActionLoad, doc("1", "A")))
	bus.Publish(core.NewEvent(core.ActionUpdate, doc("1", "B")))
	bus.Publish(core.NewEvent(core.ActionUnload, doc("1", "B")))

	got := collect(t, events, 3)
	require.Len(t, got, 3)
	assert.Equal(t, core.ActionLoad, got[0].Action)
	assert.Equal(t, core.ActionUpdate, got[1].Action)
	assert.Equal(t, core.ActionUnload, got[2].Action)

	// Scenario end state: no entry for id 1.
	_, ok := bus.Get("1")
	assert.False(t, ok)
}

func TestBus_LateSubscriberSeesSnapshot(t *testing.T) {
	bus := NewBus(0)
	bus.Publish(core.NewEvent(core.ActionLoad, doc("1", "A")))
	bus.Publish(core.NewEvent(core.ActionLoad, doc("2", "B")))

	events, snap, cancel := bus.SubscribeSnapshot()
	defer cancel()

	// History is not replayed; the snapshot carries the folded state.
	require.Len(t, snap, 2)
	select {
	case e := <-events:
		t.Fatalf("unexpected replayed event: %v", e)
	case <-time.After(50 * time.Millisecond):
	}

	bus.Publish(core.NewEvent(core.ActionLoad, doc("3", "C")))
	got := collect(t, events, 1)
	assert.Equal(t, "3", got[0].File.ID)
}

func TestBus_CancelUnblocksPublisher(t *testing.T) {
	bus := NewBus(1)
	events, cancel := bus.Subscribe()
	_ = events // never drained

	bus.Publish(core.NewEvent(core.ActionLoad, doc("1", "A"))) // fills the buffer

	published := make(chan struct{})
	go func() {
		bus.Publish(core.NewEvent(core.ActionLoad, doc("2", "B")))
		close(published)
	}()

	select {
	case <-published:
		t.Fatal("publish should block on a full subscriber buffer")
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("cancel did not unblock the publisher")
	}

	// The fold still happened for both events.
	assert.Equal(t, 2, bus.Len())
}

func TestBus_UnknownActionPanics(t *testing.T) {
	bus := NewBus(0)
	assert.Panics(t, func() {
		bus.Publish(core.NewEvent(core.Action("explode"), doc("1", "A")))
	})
}

func TestBus_Stats(t *testing.T) {
	bus := NewBus(0)
	_, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(core.NewEvent(core.ActionLoad, doc("1", "A")))

	stats := bus.Stats()
	assert.Equal(t, 1, stats.Subscribers)
	assert.Equal(t, uint64(1), stats.Published)
	assert.Equal(t, 1, stats.Cached)
}
