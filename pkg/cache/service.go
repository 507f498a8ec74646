package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Trequetrum/GloomhavenTools/pkg/core"
)

// Service is the long-lived engine coordinating the remote store, the event
// bus and the folded snapshot. All cache mutation flows through event
// publication; no operation touches the snapshot directly.
//
// The resolved folder id and the file-manager document are process-lifetime
// caches: looked up (or created) once, then reused until the service is
// discarded. There is no invalidation.
type Service struct {
	store  core.Store
	bus    *Bus
	logger *slog.Logger

	folderMu sync.Mutex
	folderID string

	appFileMu sync.Mutex
	appFile   *core.Document
}

// NewService creates a service over the given store. A nil logger disables
// logging; a nil bus gets a default one.
func NewService(store core.Store, bus *Bus, logger *slog.Logger) *Service {
	if bus == nil {
		bus = NewBus(0)
	}
	return &Service{store: store, bus: bus, logger: logger}
}

// Bus exposes the underlying event bus, mainly for collaborators that need
// raw subscription access.
func (s *Service) Bus() *Bus {
	return s.bus
}

// FetchByID retrieves a fully-populated document from the store without
// publishing anything: a pure query.
//
// Metadata that reports the file as not downloadable fails the operation
// (no meaningful document can be built). A content payload that fails to
// parse is recovered into an error-content document instead.
func (s *Service) FetchByID(ctx context.Context, id string) (*core.Document, error) {
	if id == "" {
		return nil, core.ErrEmptyID
	}

	meta, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata for %q: %w", id, err)
	}
	if !meta.Capabilities.CanDownload {
		return nil, fmt.Errorf("%q: %w", id, core.ErrNotDownloadable)
	}

	raw, err := s.store.Download(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to download %q: %w", id, err)
	}

	doc := core.NewDocument(meta.ID, meta.Name)
	doc.Editable = meta.Capabilities.CanRename && meta.Capabilities.CanModifyContent
	doc.ModifiedTime = meta.ModifiedTime
	doc.DecodeContent(raw)

	if ce := doc.Err(); ce != nil && s.logger != nil {
		s.logger.Warn("document content not usable", "id", id, "type", ce.Type)
	}
	return doc, nil
}

// LoadByID fetches a document and publishes a load event for it, even when
// the document carries error content. It returns only after publication, so
// the snapshot already reflects the load.
//
// Two concurrent loads of the same id are allowed to race: the later
// publish wins in the fold. That is an accepted property, not a bug.
func (s *Service) LoadByID(ctx context.Context, id string) (*core.Document, error) {
	doc, err := s.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.bus.Publish(core.NewEvent(core.ActionLoad, doc))
	return doc, nil
}

// UnloadByID removes a document from the cache. It reports false, without
// publishing anything, when the id is empty or not cached.
func (s *Service) UnloadByID(id string) bool {
	if id == "" {
		return false
	}
	doc, ok := s.bus.Get(id)
	if !ok {
		return false
	}
	s.bus.Publish(core.NewEvent(core.ActionUnload, doc))
	return true
}

// UnloadFile removes the given document from the cache by its id.
func (s *Service) UnloadFile(doc *core.Document) bool {
	if doc == nil {
		return false
	}
	return s.UnloadByID(doc.ID)
}

// ClearAllDocuments unloads every cached document, one unload event each.
func (s *Service) ClearAllDocuments() {
	for _, doc := range s.bus.Documents() {
		s.bus.Publish(core.NewEvent(core.ActionUnload, doc))
	}
}

// GetAllAccessibleFiles lists every JSON document the caller can reach,
// without loading any of them.
func (s *Service) GetAllAccessibleFiles(ctx context.Context) ([]core.FileRef, error) {
	refs, err := s.store.List(ctx, core.Query{MIMEType: core.DocumentMIMEType})
	if err != nil {
		return nil, fmt.Errorf("failed to list accessible files: %w", err)
	}
	return refs, nil
}

// LoadAllAccessibleFiles discovers every reachable document and loads each
// one. The loads run independently: one failure does not abort the others,
// but any failure makes the aggregate fail.
func (s *Service) LoadAllAccessibleFiles(ctx context.Context) error {
	refs, err := s.GetAllAccessibleFiles(ctx)
	if err != nil {
		return err
	}

	var g errgroup.Group
	for _, ref := range refs {
		id := ref.ID
		g.Go(func() error {
			if _, err := s.LoadByID(ctx, id); err != nil {
				if s.logger != nil {
					s.logger.Warn("load failed", "id", id, "error", err)
				}
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load all accessible files: %w", err)
	}
	return nil
}

// SaveJSONFile uploads the document's pending content change, if any.
//
// With no diff between baseline and current content it returns the input
// unchanged and makes zero remote calls. Otherwise it patches metadata and
// content in one multipart round trip and publishes a save event carrying a
// new document generation whose baseline equals the just-saved content.
func (s *Service) SaveJSONFile(ctx context.Context, doc *core.Document) (*core.Document, error) {
	if doc == nil || doc.ID == "" {
		return nil, core.ErrEmptyID
	}

	data, dirty, err := doc.PendingChange()
	if err != nil {
		return nil, err
	}
	if !dirty {
		return doc, nil
	}

	meta := core.Metadata{Name: doc.Name, MIMEType: core.DocumentMIMEType}
	if err := s.store.Patch(ctx, doc.ID, meta, data); err != nil {
		return nil, fmt.Errorf("failed to save %q: %w", doc.ID, err)
	}

	saved := doc.WithBaseline(data)
	s.bus.Publish(core.NewEvent(core.ActionSave, saved))
	return saved, nil
}

// SaveJSONFileMetadata patches only the document's name and type remotely.
//
// Unlike SaveJSONFile this publishes no cache event; the metadata-only path
// is deliberately kept asymmetric so a rename during an in-flight content
// edit never replaces the cached generation.
func (s *Service) SaveJSONFileMetadata(ctx context.Context, doc *core.Document) error {
	if doc == nil || doc.ID == "" {
		return core.ErrEmptyID
	}
	meta := core.Metadata{Name: doc.Name, MIMEType: core.DocumentMIMEType}
	if err := s.store.PatchMetadata(ctx, doc.ID, meta); err != nil {
		return fmt.Errorf("failed to save metadata for %q: %w", doc.ID, err)
	}
	return nil
}

// CreateAndSaveNewJSONFile creates a new document in the resolved folder,
// assigns the store-returned identity onto a fresh Document and publishes a
// save event for it.
func (s *Service) CreateAndSaveNewJSONFile(ctx context.Context, name string, content any) (*core.Document, error) {
	folderID, err := s.GetFolderID(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content for %q: %w", name, err)
	}

	meta := core.Metadata{
		Name:     name,
		MIMEType: core.DocumentMIMEType,
		Parents:  []string{folderID},
	}
	created, err := s.store.Create(ctx, meta, data)
	if err != nil {
		return nil, fmt.Errorf("failed to create %q: %w", name, err)
	}

	doc := core.NewDocument(created.ID, name)
	doc.Editable = true
	doc.ModifiedTime = created.ModifiedTime
	doc.SetParsed(content, data)

	s.bus.Publish(core.NewEvent(core.ActionSave, doc))
	return doc, nil
}

// GetFolderID resolves the application folder, creating it when absent. The
// id is cached on the service for the remainder of its lifetime.
func (s *Service) GetFolderID(ctx context.Context) (string, error) {
	s.folderMu.Lock()
	defer s.folderMu.Unlock()

	if s.folderID != "" {
		return s.folderID, nil
	}

	refs, err := s.store.List(ctx, core.Query{
		MIMEType: core.FolderMIMEType,
		Name:     core.DefaultFolderName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to discover folder %q: %w", core.DefaultFolderName, err)
	}

	if len(refs) > 0 {
		s.folderID = refs[0].ID
		return s.folderID, nil
	}

	created, err := s.store.Create(ctx, core.Metadata{
		Name:     core.DefaultFolderName,
		MIMEType: core.FolderMIMEType,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create folder %q: %w", core.DefaultFolderName, err)
	}
	if s.logger != nil {
		s.logger.Info("created application folder", "id", created.ID)
	}
	s.folderID = created.ID
	return s.folderID, nil
}

// GetAppDataByName discovers an app-data document by its reserved name,
// loading it when found and creating an empty one otherwise.
func (s *Service) GetAppDataByName(ctx context.Context, name string) (*core.Document, error) {
	refs, err := s.store.List(ctx, core.Query{
		MIMEType: core.DocumentMIMEType,
		Name:     name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover app data %q: %w", name, err)
	}
	if len(refs) > 0 {
		return s.LoadByID(ctx, refs[0].ID)
	}
	return s.CreateAndSaveNewJSONFile(ctx, name, map[string]any{})
}

// GetFileManagerAppFile resolves the reserved app-settings document once
// per service lifetime and returns the cached instance thereafter.
func (s *Service) GetFileManagerAppFile(ctx context.Context) (*core.Document, error) {
	s.appFileMu.Lock()
	defer s.appFileMu.Unlock()

	if s.appFile != nil {
		return s.appFile, nil
	}
	doc, err := s.GetAppDataByName(ctx, core.FileManagerFileName)
	if err != nil {
		return nil, err
	}
	s.appFile = doc
	return doc, nil
}

// Documents returns the currently cached documents, ordered by id.
func (s *Service) Documents() []*core.Document {
	return s.bus.Documents()
}

// GetDocument looks up one cached document by id without touching the
// store.
func (s *Service) GetDocument(id string) (*core.Document, bool) {
	return s.bus.Get(id)
}
