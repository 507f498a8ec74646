package platform

import (
	"github.com/Trequetrum/GloomhavenTools/pkg/adapters/drive"
	"github.com/Trequetrum/GloomhavenTools/pkg/cache"
)

// New wires the configured store into a cache service.
//
//	svc, err := gloomtools.New(gloomtools.WithToken(token))
func New(opts ...Option) (*cache.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil {
		config := o.drive
		if config.Logger == nil {
			config.Logger = o.logger
		}
		client, err := drive.NewClient(config)
		if err != nil {
			return nil, err
		}
		store = client
	}

	bus := cache.NewBus(o.eventBuffer)
	return cache.NewService(store, bus, o.logger), nil
}
