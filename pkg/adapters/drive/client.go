package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Trequetrum/GloomhavenTools/pkg/core"
)

// metaFields is the projection requested on metadata reads.
const metaFields = "id,name,modifiedTime,capabilities"

var _ core.Store = (*Client)(nil)

// Client implements core.Store over HTTP.
type Client struct {
	config   Config
	http     *http.Client
	requests atomic.Uint64
}

// NewClient validates the config and creates a client.
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid drive config: %w", err)
	}
	if config.UploadBaseURL == "" {
		config.UploadBaseURL = config.BaseURL
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{config: config, http: httpClient}, nil
}

// List implements core.Store.
func (c *Client) List(ctx context.Context, q core.Query) ([]core.FileRef, error) {
	params := url.Values{}
	params.Set("q", queryExpr(q))
	params.Set("fields", "files(id,name)")

	var resp struct {
		Files []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"files"`
	}
	if err := c.getJSON(ctx, c.config.BaseURL+"/files?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	refs := make([]core.FileRef, 0, len(resp.Files))
	for _, f := range resp.Files {
		refs = append(refs, core.FileRef{ID: f.ID, Name: f.Name})
	}
	return refs, nil
}

// Get implements core.Store.
func (c *Client) Get(ctx context.Context, id string) (core.FileMeta, error) {
	params := url.Values{}
	params.Set("fields", metaFields)

	var resp fileResource
	if err := c.getJSON(ctx, c.fileURL(id)+"?"+params.Encode(), &resp); err != nil {
		return core.FileMeta{}, err
	}
	return resp.meta(), nil
}

// Download implements core.Store.
func (c *Client) Download(ctx context.Context, id string) ([]byte, error) {
	params := url.Values{}
	params.Set("alt", "media")

	body, err := c.do(ctx, http.MethodGet, c.fileURL(id)+"?"+params.Encode(), "", nil)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Create implements core.Store. With content it issues a multipart upload;
// without, a metadata-only create (folders).
func (c *Client) Create(ctx context.Context, meta core.Metadata, content []byte) (core.Created, error) {
	var resp fileResource

	if content == nil {
		payload, err := json.Marshal(meta)
		if err != nil {
			return core.Created{}, fmt.Errorf("failed to encode metadata: %w", err)
		}
		body, err := c.do(ctx, http.MethodPost, c.config.BaseURL+"/files?fields=id,modifiedTime",
			metadataContentType, payload)
		if err != nil {
			return core.Created{}, err
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return core.Created{}, fmt.Errorf("failed to decode create response: %w", err)
		}
		return resp.created(), nil
	}

	mp, err := NewMultipartBody(meta, meta.MIMEType, content)
	if err != nil {
		return core.Created{}, err
	}
	body, err := c.do(ctx, http.MethodPost,
		c.config.UploadBaseURL+"/files?uploadType=multipart&fields=id,modifiedTime",
		mp.ContentType(), mp.Body)
	if err != nil {
		return core.Created{}, err
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return core.Created{}, fmt.Errorf("failed to decode create response: %w", err)
	}
	return resp.created(), nil
}

// Patch implements core.Store: one combined metadata+content upload.
func (c *Client) Patch(ctx context.Context, id string, meta core.Metadata, content []byte) error {
	mp, err := NewMultipartBody(meta, meta.MIMEType, content)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPatch,
		c.config.UploadBaseURL+"/files/"+url.PathEscape(id)+"?uploadType=multipart",
		mp.ContentType(), mp.Body)
	return err
}

// PatchMetadata implements core.Store.
func (c *Client) PatchMetadata(ctx context.Context, id string, meta core.Metadata) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	_, err = c.do(ctx, http.MethodPatch, c.fileURL(id), metadataContentType, payload)
	return err
}

func (c *Client) fileURL(id string) string {
	return c.config.BaseURL + "/files/" + url.PathEscape(id)
}

func (c *Client) getJSON(ctx context.Context, rawURL string, target any) error {
	body, err := c.do(ctx, http.MethodGet, rawURL, "", nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode store response: %w", err)
	}
	return nil
}

// do performs one authenticated round trip and returns the response body.
// A 404 unwraps to core.ErrNotFound so callers can test for it.
func (c *Client) do(ctx context.Context, method, rawURL, contentType string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.config.Token != nil {
		token, err := c.config.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire store token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.requests.Add(1)
	if c.config.Logger != nil {
		c.config.Logger.Debug("store request", "method", method, "url", rawURL)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("store request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read store response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, core.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("store replied %s to %s %s: %s",
			resp.Status, method, rawURL, snippet(body))
	}
	return body, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}

// fileResource is the wire shape of a file's metadata.
type fileResource struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ModifiedTime string `json:"modifiedTime"`
	Capabilities struct {
		CanDownload      bool `json:"canDownload"`
		CanRename        bool `json:"canRename"`
		CanModifyContent bool `json:"canModifyContent"`
	} `json:"capabilities"`
}

func (f fileResource) meta() core.FileMeta {
	return core.FileMeta{
		ID:           f.ID,
		Name:         f.Name,
		ModifiedTime: f.modified(),
		Capabilities: core.Capabilities{
			CanDownload:      f.Capabilities.CanDownload,
			CanRename:        f.Capabilities.CanRename,
			CanModifyContent: f.Capabilities.CanModifyContent,
		},
	}
}

func (f fileResource) created() core.Created {
	return core.Created{ID: f.ID, ModifiedTime: f.modified()}
}

func (f fileResource) modified() time.Time {
	t, err := time.Parse(time.RFC3339, f.ModifiedTime)
	if err != nil {
		return time.Time{}
	}
	return t
}
