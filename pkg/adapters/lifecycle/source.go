package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/Trequetrum/GloomhavenTools/pkg/core"
)

type cacheSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits document life-cycle
// events. It bridges a typed cache event channel (e.g. from
// Service.ListenDocumentLoad) to the generic lifecycle Event interface, so
// an application can supervise the document stream alongside its other
// event sources.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &cacheSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *cacheSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *cacheSource) Start(ctx context.Context) error {
	// Uses lifecycle.Go so the bridge itself is tracked and safe.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
