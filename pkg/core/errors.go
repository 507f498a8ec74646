package core

import "errors"

// Common errors.
var (
	ErrEmptyID         = errors.New("document id cannot be empty")
	ErrNotFound        = errors.New("document not found")
	ErrNotDownloadable = errors.New("document cannot be downloaded")
)
