package platform

import (
	"log/slog"

	"github.com/Trequetrum/GloomhavenTools/pkg/adapters/drive"
	"github.com/Trequetrum/GloomhavenTools/pkg/core"
)

// options holds the internal configuration for the service factory.
type options struct {
	store       core.Store
	logger      *slog.Logger
	eventBuffer int
	drive       drive.Config
}

// Option defines a functional option for configuring the service.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{}
}

// WithStore injects a custom remote store adapter (e.g. mock, in-memory).
// If provided, the default drive client is skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithLogger sets the logger for the service and the drive client.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventBuffer sets the per-subscriber event channel buffer.
// Zero means default.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithDrive configures the default drive client. Ignored when a custom
// store is injected via WithStore.
func WithDrive(config drive.Config) Option {
	return func(o *options) {
		o.drive = config
	}
}

// WithToken is shorthand for a static bearer token on the drive client.
func WithToken(token string) Option {
	return func(o *options) {
		o.drive.Token = drive.StaticToken(token)
	}
}
