// Package multipart encodes single-part multipart/form-data bodies.
//
// The service expects a byte-exact layout, so bodies are assembled by hand
// rather than through mime/multipart:
//
//	--B\r\n
//	Content-Type: <type>\r\n
//	Content-Disposition: form-data; name="data"; filename="<name>"\r\n
//	\r\n
//	<content>\r\n
//	--B--
package multipart

import (
	"bytes"
	"strings"

	"github.com/google/uuid"
)

const (
	// FieldName is the form field every dfop part is sent under.
	FieldName = "data"

	// TextFilename is the filename given to inline text parts.
	TextFilename = "text"

	// ContentTypeText is the content type of inline text parts.
	ContentTypeText = "text/plain"

	// ContentTypeOctetStream is the default content type of file parts.
	ContentTypeOctetStream = "application/octet-stream"

	boundaryPrefix = "qiniu"
	crlf           = "\r\n"
	dashes         = "--"
)

// Part is the single form part of a body.
type Part struct {
	Name        string
	Filename    string
	ContentType string
	Content     []byte
}

// TextPart wraps inline text.
func TextPart(text string) Part {
	return Part{
		Name:        FieldName,
		Filename:    TextFilename,
		ContentType: ContentTypeText,
		Content:     []byte(text),
	}
}

// FilePart wraps file content. An empty contentType means octet-stream.
func FilePart(filename string, content []byte, contentType string) Part {
	if contentType == "" {
		contentType = ContentTypeOctetStream
	}
	return Part{
		Name:        FieldName,
		Filename:    filename,
		ContentType: contentType,
		Content:     content,
	}
}

// Body is an encoded payload and the boundary it was encoded with.
type Body struct {
	Boundary string
	Data     []byte
}

// ContentType returns the request Content-Type header value for the body.
func (b Body) ContentType() string {
	return ContentTypeHeader(b.Boundary)
}

// ContentTypeHeader returns the multipart Content-Type header value for boundary.
func ContentTypeHeader(boundary string) string {
	return "multipart/form-data; boundary=" + boundary
}

// BoundaryFunc generates boundaries.
type BoundaryFunc func() string

// NewBoundary returns a random boundary.
func NewBoundary() string {
	return boundaryPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Encoder builds bodies with generated boundaries.
type Encoder struct {
	boundary BoundaryFunc
}

// NewEncoder creates an Encoder. A nil gen uses NewBoundary.
func NewEncoder(gen BoundaryFunc) *Encoder {
	if gen == nil {
		gen = NewBoundary
	}
	return &Encoder{boundary: gen}
}

// maxBoundaryAttempts bounds regeneration when content contains the boundary.
const maxBoundaryAttempts = 8

// Encode picks a boundary that does not occur in the part and encodes it.
func (e *Encoder) Encode(p Part) Body {
	b := e.boundary()
	for i := 1; i < maxBoundaryAttempts && bytes.Contains(p.Content, []byte(b)); i++ {
		b = e.boundary()
	}
	return Body{
		Boundary: b,
		Data:     Encode(b, p),
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Encode returns the multipart encoding of p delimited by boundary.
func Encode(boundary string, p Part) []byte {
	name := p.Name
	if name == "" {
		name = FieldName
	}

	var head strings.Builder
	head.WriteString(dashes + boundary + crlf)
	head.WriteString("Content-Type: " + p.ContentType + crlf)
	head.WriteString(`Content-Disposition: form-data; name="` + quoteEscaper.Replace(name) + `"`)
	if p.Filename != "" {
		head.WriteString(`; filename="` + quoteEscaper.Replace(p.Filename) + `"`)
	}
	head.WriteString(crlf + crlf)

	tail := crlf + dashes + boundary + dashes

	buf := make([]byte, 0, head.Len()+len(p.Content)+len(tail))
	buf = append(buf, head.String()...)
	buf = append(buf, p.Content...)
	buf = append(buf, tail...)
	return buf
}
