package core

import (
	"context"
	"time"
)

// MIME types and reserved names shared with the remote store.
const (
	DocumentMIMEType = "application/json"
	FolderMIMEType   = "application/vnd.google-apps.folder"

	// DefaultFolderName is the drive folder documents are created under.
	DefaultFolderName = "GloomhavenTools"

	// FileManagerFileName is the reserved app-settings document.
	FileManagerFileName = "gloomtools-file-manager.json"
)

// Query narrows a store listing. Zero-value fields are not part of the
// query; trashed files are always excluded.
type Query struct {
	MIMEType string
	Name     string
	ParentID string
}

// FileRef identifies one remote file in a listing.
type FileRef struct {
	ID   string
	Name string
}

// Capabilities are the store-derived permissions on a single file.
type Capabilities struct {
	CanDownload      bool
	CanRename        bool
	CanModifyContent bool
}

// FileMeta is the metadata the store reports for a single file.
type FileMeta struct {
	ID           string
	Name         string
	ModifiedTime time.Time
	Capabilities Capabilities
}

// Metadata is the writable metadata sent on create and patch calls.
type Metadata struct {
	Name     string   `json:"name,omitempty"`
	MIMEType string   `json:"mimeType,omitempty"`
	Parents  []string `json:"parents,omitempty"`
}

// Created is the store's answer to a create call.
type Created struct {
	ID           string
	ModifiedTime time.Time
}

// Store defines the contract with the remote document store. Adhering to
// this interface keeps the cache engine independent of the concrete drive
// client (HTTP, in-memory, mock).
//
// Every call may fail at the transport level; the synchronization
// operations translate such failures into either an error-content Document
// or a rejected operation.
type Store interface {
	// List returns the files matching the query.
	List(ctx context.Context, q Query) ([]FileRef, error)

	// Get retrieves the metadata of a single file.
	Get(ctx context.Context, id string) (FileMeta, error)

	// Download retrieves the raw content of a single file.
	Download(ctx context.Context, id string) ([]byte, error)

	// Create uploads a new file with the given metadata and content.
	// A nil content creates a metadata-only object (e.g. a folder).
	Create(ctx context.Context, meta Metadata, content []byte) (Created, error)

	// Patch updates metadata and content of an existing file in one call.
	Patch(ctx context.Context, id string, meta Metadata, content []byte) error

	// PatchMetadata updates only the metadata of an existing file.
	PatchMetadata(ctx context.Context, id string, meta Metadata) error
}
