// Package fop builds pfop, prefop and dfop requests.
package fop

import (
	"net/url"
	"strings"

	"github.com/forksen/forksen-qiniu/internal/multipart"
	"github.com/forksen/forksen-qiniu/internal/operations"
	"github.com/forksen/forksen-qiniu/qntypes"
)

// Operation names used in requests and diagnostics.
const (
	OpPfop   = "pfop"
	OpPrefop = "prefop"
	OpDfop   = "dfop"
)

// Endpoints locate the services a Builder targets.
type Endpoints struct {
	UseHTTPS       bool
	APIHost        string
	DefaultAPIHost string
}

// Builder builds requests. It is safe for concurrent use.
type Builder struct {
	endpoints Endpoints
	encoder   *multipart.Encoder
}

// NewBuilder creates a Builder. A nil encoder uses random boundaries.
func NewBuilder(endpoints Endpoints, encoder *multipart.Encoder) *Builder {
	if encoder == nil {
		encoder = multipart.NewEncoder(nil)
	}
	return &Builder{
		endpoints: endpoints,
		encoder:   encoder,
	}
}

// Escape percent-encodes everything except RFC 3986 unreserved characters.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// JoinFops joins fop commands with ";" in order.
func JoinFops(fops []string) string {
	return strings.Join(fops, ";")
}

// PfopBody builds the form body of a pfop request. The pipeline is sent as is.
func PfopBody(bucket, key, fops string, opts qntypes.PfopOptionConfig) []byte {
	var sb strings.Builder
	sb.WriteString("bucket=" + Escape(bucket))
	sb.WriteString("&key=" + Escape(key))
	sb.WriteString("&fops=" + Escape(fops))
	if opts.NotifyURL != "" {
		sb.WriteString("&notifyURL=" + Escape(opts.NotifyURL))
	}
	if opts.Force {
		sb.WriteString("&force=1")
	}
	if opts.Pipeline != "" {
		sb.WriteString("&pipeline=" + opts.Pipeline)
	}
	return []byte(sb.String())
}

// Pfop builds a persistent operation request.
func (b *Builder) Pfop(bucket, key, fops string, opts qntypes.PfopOptionConfig) operations.Request {
	return operations.Request{
		Op:   OpPfop,
		Kind: operations.KindForm,
		URL:  operations.Scheme(b.endpoints.UseHTTPS) + b.endpoints.APIHost + "/pfop/",
		Body: PfopBody(bucket, key, fops, opts),
	}
}

// Prefop builds a status query. The id is sent as is.
func (b *Builder) Prefop(persistentID string) operations.Request {
	return operations.Request{
		Op:   OpPrefop,
		Kind: operations.KindGet,
		URL:  operations.Scheme(b.endpoints.UseHTTPS) + b.endpoints.DefaultAPIHost + "/status/get/prefop?id=" + persistentID,
	}
}

func (b *Builder) dfopURL(fop string) string {
	return operations.Scheme(b.endpoints.UseHTTPS) + b.endpoints.DefaultAPIHost + "/dfop?fop=" + fop
}

// DfopURL builds a dfop request for a remote resource.
func (b *Builder) DfopURL(fop, resource string) operations.Request {
	return operations.Request{
		Op:   OpDfop,
		Kind: operations.KindPost,
		URL:  b.dfopURL(fop) + "&url=" + Escape(resource),
	}
}

// DfopText builds a dfop request carrying inline text.
func (b *Builder) DfopText(fop, text string) operations.Request {
	return b.dfopPart(fop, multipart.TextPart(text))
}

// DfopFile builds a dfop request carrying file content.
// An empty contentType means application/octet-stream.
func (b *Builder) DfopFile(fop, filename string, content []byte, contentType string) operations.Request {
	return b.dfopPart(fop, multipart.FilePart(filename, content, contentType))
}

func (b *Builder) dfopPart(fop string, part multipart.Part) operations.Request {
	body := b.encoder.Encode(part)
	return operations.Request{
		Op:       OpDfop,
		Kind:     operations.KindMultipart,
		URL:      b.dfopURL(fop),
		Body:     body.Data,
		Boundary: body.Boundary,
	}
}
