package cache

import (
	"context"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/Trequetrum/GloomhavenTools/pkg/core"
)

// ListenDocumentByID streams the life of a single document id.
//
// On subscription it immediately emits one current-state event derived from
// the snapshot: a load event when the id is cached, or a synthesized
// File Not Found error event when it is not. After that it forwards every
// bus event whose file carries the requested id, whatever its action.
//
// The stream stays open until ctx is cancelled; a new call re-runs the
// current-state lookup from scratch. Detaching never mutates the cache.
func (s *Service) ListenDocumentByID(ctx context.Context, id string) <-chan core.Event {
	events, snap, cancel := s.bus.SubscribeSnapshot()
	out := make(chan core.Event, s.bus.buffer)

	var first core.Event
	if doc, ok := snap[id]; ok {
		first = core.NewEvent(core.ActionLoad, doc)
	} else {
		first = core.NewEvent(core.ActionError, core.ErrorDocument(id, &core.ContentError{
			Type:    core.ContentErrNotFound,
			Message: "no document with id " + id + " is loaded",
		}))
	}

	s.bridge(ctx, events, out, cancel, first, func(e core.Event) bool {
		return e.File != nil && e.File.ID == id
	})
	return out
}

// ListenDocumentLoad streams every raw life-cycle event, for collaborators
// that need action-level granularity rather than a value snapshot.
func (s *Service) ListenDocumentLoad(ctx context.Context) <-chan core.Event {
	events, cancel := s.bus.Subscribe()
	out := make(chan core.Event, s.bus.buffer)
	s.bridge(ctx, events, out, cancel, core.Event{}, func(core.Event) bool { return true })
	return out
}

// ListenDocuments emits the full list of cached documents immediately and
// then again after every event that touches the snapshot. Each subscriber
// folds its own copy of the event stream, so the emitted lists track the
// snapshot in exact publish order.
func (s *Service) ListenDocuments(ctx context.Context) <-chan []*core.Document {
	events, snap, cancel := s.bus.SubscribeSnapshot()
	out := make(chan []*core.Document, s.bus.buffer)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer cancel()

		if !send(ctx, out, documentsOf(snap)) {
			return nil
		}
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				if e.File == nil {
					continue
				}
				next, err := Reduce(snap, e)
				if err != nil {
					return err
				}
				snap = next
				if !send(ctx, out, documentsOf(snap)) {
					return nil
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		if s.logger != nil {
			s.logger.Error("document list stream failed", "error", err)
		}
	}))
	return out
}

// FindDocuments returns the cached documents whose name matches the given
// glob pattern.
func (s *Service) FindDocuments(pattern string) ([]*core.Document, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}
	var matched []*core.Document
	for _, doc := range s.bus.Documents() {
		ok, err := doublestar.Match(pattern, doc.Name)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

// bridge pumps bus events into out, optionally prefixed by a synthesized
// first event, keeping only events the filter accepts.
func (s *Service) bridge(ctx context.Context, in <-chan core.Event, out chan<- core.Event, cancel func(), first core.Event, keep func(core.Event) bool) {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer cancel()

		if first.Action != "" {
			if !send(ctx, out, first) {
				return nil
			}
		}
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-in:
				if !ok {
					return nil
				}
				if !keep(e) {
					continue
				}
				if !send(ctx, out, e) {
					return nil
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		if s.logger != nil {
			s.logger.Error("event stream failed", "error", err)
		}
	}))
}

func send[T any](ctx context.Context, out chan<- T, v T) bool {
	select {
	case out <- v:
		return true
	case <-ctx.Done():
		return false
	}
}

func documentsOf(snap Snapshot) []*core.Document {
	docs := make([]*core.Document, 0, len(snap))
	for _, doc := range snap {
		docs = append(docs, doc)
	}
	sortDocs(docs)
	return docs
}
