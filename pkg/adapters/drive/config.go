// Package drive implements core.Store against a Drive-style REST surface:
// query listings, metadata and media gets, and multipart create/patch
// uploads.
package drive

import (
	"context"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// TokenSource supplies a bearer token per request. Session management is
// outside this layer; callers bring whatever auth flow they use.
type TokenSource func(ctx context.Context) (string, error)

// StaticToken adapts a fixed token string to a TokenSource.
func StaticToken(token string) TokenSource {
	return func(context.Context) (string, error) { return token, nil }
}

// Config holds the configuration for the drive client.
type Config struct {
	// BaseURL is the metadata endpoint root, e.g.
	// "https://www.googleapis.com/drive/v3".
	BaseURL string

	// UploadBaseURL is the upload endpoint root, e.g.
	// "https://www.googleapis.com/upload/drive/v3". Defaults to BaseURL.
	UploadBaseURL string

	Token      TokenSource
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Validate implements the config contract checked by NewClient.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.UploadBaseURL, is.URL),
	)
}
