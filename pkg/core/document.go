// Document is the central entity of the domain.
package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Document represents one remote file's identity, metadata and content.
// Content is opaque JSON to this layer: the cache never interprets it, it
// only parses, diffs and re-serializes it.
//
// A document tracks two content generations: the baseline captured at
// load/save time and the live-edited current value. The diff between them
// decides whether a save needs a remote round trip.
type Document struct {
	ID           string
	Name         string
	Editable     bool
	ModifiedTime time.Time

	content  any
	baseline []byte
}

// NewDocument creates a document with no content yet.
func NewDocument(id, name string) *Document {
	return &Document{ID: id, Name: name}
}

// ErrorDocument creates a document whose content is an error descriptor.
// Callers always receive a Document to render, even for a broken file.
func ErrorDocument(id string, ce *ContentError) *Document {
	return &Document{ID: id, content: ce}
}

// Content returns the parsed JSON value, or a *ContentError when the remote
// payload was missing, unparseable, or inaccessible.
func (d *Document) Content() any {
	return d.content
}

// SetContent replaces the live-edited current value. The baseline is left
// untouched, so the document becomes dirty if the new value differs.
func (d *Document) SetContent(v any) {
	d.content = v
}

// Err returns the content error descriptor, or nil for a healthy document.
func (d *Document) Err() *ContentError {
	ce, _ := d.content.(*ContentError)
	return ce
}

// DecodeContent parses raw remote bytes as JSON and captures them as the
// new baseline. A parse failure is recovered into an error-content document
// rather than returned: the document stays renderable.
func (d *Document) DecodeContent(raw []byte) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		d.content = &ContentError{
			Type:    ContentErrParse,
			Message: fmt.Sprintf("document %q is not valid JSON: %v", d.ID, err),
		}
		d.baseline = nil
		return
	}
	d.content = v
	// Re-marshal instead of keeping raw bytes so the baseline and any
	// later PendingChange encoding compare under the same key ordering.
	d.baseline = mustCanonical(v)
}

// SetParsed installs an already-parsed content value together with its
// encoded form as the baseline (used after a create round trip).
func (d *Document) SetParsed(v any, encoded []byte) {
	d.content = v
	d.baseline = encoded
}

// PendingChange encodes the current content and reports whether it differs
// from the baseline. Error-content documents never have a pending change.
func (d *Document) PendingChange() ([]byte, bool, error) {
	if d.content == nil || d.Err() != nil {
		return nil, false, nil
	}
	data, err := json.Marshal(d.content)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode document %q: %w", d.ID, err)
	}
	return data, !bytes.Equal(data, d.baseline), nil
}

// WithBaseline returns a new document generation whose baseline equals the
// given just-saved encoding. The receiver is not modified; the new value is
// what a save event should carry.
func (d *Document) WithBaseline(data []byte) *Document {
	next := *d
	next.baseline = data
	return &next
}

// MarshalJSON exposes the document in a renderable shape. The baseline is an
// internal bookkeeping detail and is deliberately omitted.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID           string    `json:"id"`
		Name         string    `json:"name"`
		Editable     bool      `json:"editable"`
		ModifiedTime time.Time `json:"modifiedTime"`
		Content      any       `json:"content,omitempty"`
	}{d.ID, d.Name, d.Editable, d.ModifiedTime, d.content})
}

func mustCanonical(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// v came out of json.Unmarshal, so it is always marshalable.
		panic(fmt.Sprintf("core: cannot re-encode parsed JSON: %v", err))
	}
	return data
}
