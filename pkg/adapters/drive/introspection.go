package drive

import (
	"github.com/aretw0/introspection"
)

// ClientState exposes internal state for observability.
type ClientState struct {
	BaseURL       string `json:"base_url"`
	UploadBaseURL string `json:"upload_base_url"`
	Authenticated bool   `json:"authenticated"`
	Requests      uint64 `json:"requests"`
}

// State implements introspection.Introspectable.
func (c *Client) State() any {
	return ClientState{
		BaseURL:       c.config.BaseURL,
		UploadBaseURL: c.config.UploadBaseURL,
		Authenticated: c.config.Token != nil,
		Requests:      c.requests.Load(),
	}
}

// ComponentType implements introspection.Component.
func (c *Client) ComponentType() string {
	return "drive"
}

var _ introspection.Introspectable = (*Client)(nil)
var _ introspection.Component = (*Client)(nil)
