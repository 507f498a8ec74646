// Package gloomtools is the Composition Root for the GloomhavenTools
// drive cache.
//
// It connects the cache and synchronization engine (Domain Layer) with the
// remote store adapter (Persistence Layer) using the Hexagonal Architecture
// pattern.
//
// Philosophy:
//
// The library keeps an in-memory, reactive cache of JSON documents that
// physically live in a remote multi-tenant drive. All cache state is
// derived: discrete life-cycle events (load, unload, error, update, save)
// are folded into a snapshot, and every mutation happens by publishing an
// event, never by touching the snapshot directly. Multiple UI surfaces can
// read, edit and save the same documents concurrently and observe each
// other through the event stream.
//
// Features:
//
//   - **Event-sourced cache**: an ordered multicast bus plus a pure reducer
//     materialize the "currently loaded documents" snapshot.
//   - **Subscription streams**: per-document, aggregate list and raw event
//     streams, all context-cancellable.
//   - **Discover-or-create**: folder and app-settings documents are
//     resolved by name once and cached for the service lifetime.
//   - **Diff-aware saves**: a document with no pending change saves without
//     a remote round trip.
//   - **Extensible**: any backend can stand in for the drive via
//     core.Store.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := gloomtools.New(
//		gloomtools.WithToken(token),
//		gloomtools.WithLogger(logger),
//	)
//
//	// Load a document and watch it
//	doc, err := svc.LoadByID(ctx, id)
//	events := svc.ListenDocumentByID(ctx, id)
package gloomtools
