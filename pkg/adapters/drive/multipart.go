package drive

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Upload metadata is always JSON, whatever the content part's type is.
const metadataContentType = "application/json"

// MultipartBody is an encoded multipart/related upload: the metadata part
// followed by the content part, framed by one boundary.
//
// The layout is fixed by the store's upload protocol:
//
//	\r\n--<boundary>\r\n
//	Content-Type: application/json\r\n\r\n
//	<metadata JSON>
//	\r\n--<boundary>\r\n
//	Content-Type: <content type>\r\n\r\n
//	<content>
//	\r\n--<boundary>--
type MultipartBody struct {
	Boundary string
	Body     []byte
}

// ContentType returns the request Content-Type header for this body.
func (m MultipartBody) ContentType() string {
	return fmt.Sprintf("multipart/related; boundary=%q", m.Boundary)
}

// NewMultipartBody builds the upload body for the given metadata and
// content. The boundary is freshly generated per call.
func NewMultipartBody(meta any, contentType string, content []byte) (MultipartBody, error) {
	encoded, err := json.Marshal(meta)
	if err != nil {
		return MultipartBody{}, fmt.Errorf("failed to encode upload metadata: %w", err)
	}
	boundary := uuid.NewString()

	var buf bytes.Buffer
	writePart := func(partType string, body []byte) {
		fmt.Fprintf(&buf, "\r\n--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: %s\r\n\r\n", partType)
		buf.Write(body)
	}
	writePart(metadataContentType, encoded)
	writePart(contentType, content)
	fmt.Fprintf(&buf, "\r\n--%s--", boundary)

	return MultipartBody{Boundary: boundary, Body: buf.Bytes()}, nil
}
