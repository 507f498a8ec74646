package cache

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	StoreType      string   `json:"store_type"`
	Bus            BusStats `json:"bus"`
	FolderResolved bool     `json:"folder_resolved"`
	AppFileLoaded  bool     `json:"app_file_loaded"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	storeType := "store"
	if comp, ok := s.store.(introspection.Component); ok {
		storeType = comp.ComponentType()
	}

	s.folderMu.Lock()
	folderResolved := s.folderID != ""
	s.folderMu.Unlock()

	s.appFileMu.Lock()
	appFileLoaded := s.appFile != nil
	s.appFileMu.Unlock()

	return ServiceState{
		StoreType:      storeType,
		Bus:            s.bus.Stats(),
		FolderResolved: folderResolved,
		AppFileLoaded:  appFileLoaded,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
