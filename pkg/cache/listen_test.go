package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trequetrum/GloomhavenTools/pkg/core"
)

func collectDocs(t *testing.T, ch <-chan []*core.Document) []*core.Document {
	t.Helper()
	select {
	case docs := <-ch:
		return docs
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for document list")
		return nil
	}
}

func TestListenDocumentByID_NotFoundFirst(t *testing.T) {
	store := newFakeStore()
	store.add("x1", "Campaign", core.DocumentMIMEType, []byte(`{"gold": 30}`))
	svc := newTestService(store)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := svc.ListenDocumentByID(ctx, "x1")

	// Never-loaded id: one synthesized error event, immediately.
	first := collect(t, events, 1)[0]
	assert.Equal(t, core.ActionError, first.Action)
	require.NotNil(t, first.File)
	assert.Equal(t, "x1", first.File.ID)
	require.NotNil(t, first.File.Err())
	assert.Equal(t, core.ContentErrNotFound, first.File.Err().Type)

	// Exactly one load event once LoadByID completes.
	_, err := svc.LoadByID(ctx, "x1")
	require.NoError(t, err)
	second := collect(t, events, 1)[0]
	assert.Equal(t, core.ActionLoad, second.Action)
	assert.Equal(t, "x1", second.File.ID)

	select {
	case e := <-events:
		t.Fatalf("unexpected extra event: %v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestListenDocumentByID_CurrentStateWhenLoaded(t *testing.T) {
	store := newFakeStore()
	store.add("x1", "Campaign", core.DocumentMIMEType, []byte(`{}`))
	svc := newTestService(store)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := svc.LoadByID(ctx, "x1")
	require.NoError(t, err)

	// Restartable: a fresh subscription re-runs the current-state lookup.
	events := svc.ListenDocumentByID(ctx, "x1")
	first := collect(t, events, 1)[0]
	assert.Equal(t, core.ActionLoad, first.Action)
	assert.Equal(t, "x1", first.File.ID)
}

func TestListenDocumentByID_FiltersOtherIDs(t *testing.T) {
	store := newFakeStore()
	store.add("x1", "A", core.DocumentMIMEType, []byte(`{}`))
	store.add("x2", "B", core.DocumentMIMEType, []byte(`{}`))
	svc := newTestService(store)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := svc.ListenDocumentByID(ctx, "x2")
	_ = collect(t, events, 1) // drop the synthesized current-state event

	_, err := svc.LoadByID(ctx, "x1")
	require.NoError(t, err)
	_, err = svc.LoadByID(ctx, "x2")
	require.NoError(t, err)
	svc.UnloadByID("x2")

	got := collect(t, events, 2)
	assert.Equal(t, core.ActionLoad, got[0].Action)
	assert.Equal(t, "x2", got[0].File.ID)
	assert.Equal(t, core.ActionUnload, got[1].Action)
	assert.Equal(t, "x2", got[1].File.ID)
}

func TestListenDocumentByID_CancelClosesStream(t *testing.T) {
	svc := newTestService(newFakeStore())
	ctx, cancel := context.WithCancel(context.Background())

	events := svc.ListenDocumentByID(ctx, "x1")
	_ = collect(t, events, 1)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 5*time.Millisecond, "stream should close on cancel")
}

func TestListenDocuments(t *testing.T) {
	store := newFakeStore()
	store.add("x1", "A", core.DocumentMIMEType, []byte(`{}`))
	store.add("x2", "B", core.DocumentMIMEType, []byte(`{}`))
	svc := newTestService(store)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lists := svc.ListenDocuments(ctx)
	assert.Empty(t, collectDocs(t, lists), "initial emission reflects the empty cache")

	_, err := svc.LoadByID(ctx, "x1")
	require.NoError(t, err)
	assert.Len(t, collectDocs(t, lists), 1)

	_, err = svc.LoadByID(ctx, "x2")
	require.NoError(t, err)
	assert.Len(t, collectDocs(t, lists), 2)

	svc.UnloadByID("x1")
	docs := collectDocs(t, lists)
	require.Len(t, docs, 1)
	assert.Equal(t, "x2", docs[0].ID)
}

func TestListenDocumentLoad_RawEvents(t *testing.T) {
	store := newFakeStore()
	store.add("x1", "A", core.DocumentMIMEType, []byte(`{}`))
	svc := newTestService(store)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := svc.ListenDocumentLoad(ctx)

	_, err := svc.LoadByID(ctx, "x1")
	require.NoError(t, err)
	svc.UnloadByID("x1")

	got := collect(t, events, 2)
	assert.Equal(t, core.ActionLoad, got[0].Action)
	assert.Equal(t, core.ActionUnload, got[1].Action)
}

func TestFindDocuments(t *testing.T) {
	store := newFakeStore()
	store.add("x1", "campaign-notes.json", core.DocumentMIMEType, []byte(`{}`))
	store.add("x2", "party-sheet.json", core.DocumentMIMEType, []byte(`{}`))
	store.add("x3", "readme.txt", "text/plain", []byte(`{}`))
	svc := newTestService(store)
	ctx := context.Background()

	require.NoError(t, svc.LoadAllAccessibleFiles(ctx))

	docs, err := svc.FindDocuments("*.json")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = svc.FindDocuments("campaign-*")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "x1", docs[0].ID)

	_, err = svc.FindDocuments("[")
	assert.Error(t, err)
}
