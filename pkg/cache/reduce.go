// Package cache implements the document cache and synchronization engine:
// an ordered multicast event bus, the pure reducer that folds it into a
// snapshot, and the service exposing synchronization operations and
// subscription streams over a remote store.
package cache

import (
	"fmt"

	"github.com/Trequetrum/GloomhavenTools/pkg/core"
)

// Snapshot maps document id to the cached document. It is always derived:
// the event history is authoritative, the snapshot is the folded result.
type Snapshot map[string]*core.Document

// Clone returns a shallow copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	next := make(Snapshot, len(s))
	for id, doc := range s {
		next[id] = doc
	}
	return next
}

// Reduce folds one event into a snapshot and returns the new snapshot. The
// input snapshot is not modified, so replaying the same event sequence over
// an empty snapshot always yields the same result.
//
// load/save/update upsert the event's file, unload/error remove it, a nil
// file (the bootstrap sentinel) is a no-op. Any other action is a producer
// bug and is reported as an error the caller must treat as fatal.
func Reduce(snap Snapshot, e core.Event) (Snapshot, error) {
	if e.File == nil {
		return snap, nil
	}
	switch e.Action {
	case core.ActionLoad, core.ActionSave, core.ActionUpdate:
		next := snap.Clone()
		next[e.File.ID] = e.File
		return next, nil
	case core.ActionUnload, core.ActionError:
		if _, ok := snap[e.File.ID]; !ok {
			return snap, nil
		}
		next := snap.Clone()
		delete(next, e.File.ID)
		return next, nil
	default:
		return nil, fmt.Errorf("unrecognized event action %q", e.Action)
	}
}
