package gloomtools

import (
	"log/slog"

	"github.com/Trequetrum/GloomhavenTools/internal/platform"
	"github.com/Trequetrum/GloomhavenTools/pkg/adapters/drive"
	"github.com/Trequetrum/GloomhavenTools/pkg/cache"
	"github.com/Trequetrum/GloomhavenTools/pkg/core"
)

// --- Types ---

// Document is a public alias for the domain document.
type Document = core.Document

// Event is a public alias for the life-cycle event.
type Event = core.Event

// Service is a public alias for the cache and synchronization engine.
type Service = cache.Service

// Store is a public alias for the remote store contract.
type Store = core.Store

// Life-cycle actions.
const (
	ActionLoad   = core.ActionLoad
	ActionUnload = core.ActionUnload
	ActionError  = core.ActionError
	ActionUpdate = core.ActionUpdate
	ActionSave   = core.ActionSave
)

// --- Configuration ---

// Option defines a functional option for configuring the service.
type Option = platform.Option

// WithStore injects a custom remote store adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithEventBuffer sets the per-subscriber event channel buffer size.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithDrive configures the default drive client.
func WithDrive(config drive.Config) Option {
	return platform.WithDrive(config)
}

// WithToken authenticates the default drive client with a static token.
func WithToken(token string) Option {
	return platform.WithToken(token)
}

// --- Factory ---

// New creates a new cache service over the configured store.
func New(opts ...Option) (*cache.Service, error) {
	return platform.New(opts...)
}
