package operations

import (
	"context"
	"fmt"

	"github.com/forksen/forksen-qiniu/auth"
	"github.com/forksen/forksen-qiniu/internal/transport"
)

// Kind selects the transport call for a request.
type Kind int

const (
	// KindGet is an unauthenticated GET.
	KindGet Kind = iota
	// KindPost is a POST without a body.
	KindPost
	// KindForm is a POST with a form-encoded body.
	KindForm
	// KindMultipart is a POST with a multipart body.
	KindMultipart
	// KindJSON is a POST with a JSON body.
	KindJSON
)

func (k Kind) String() string {
	switch k {
	case KindGet:
		return "get"
	case KindPost:
		return "post"
	case KindForm:
		return "form"
	case KindMultipart:
		return "multipart"
	case KindJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Request is a fully specified request.
type Request struct {
	Op       string
	Kind     Kind
	URL      string
	Body     []byte
	Boundary string
}

// Signed reports whether the request carries a management token.
func (r Request) Signed() bool {
	return r.Kind != KindGet
}

// SignedBody returns the body bytes the token covers. Only form bodies are signed.
func (r Request) SignedBody() []byte {
	if r.Kind == KindForm {
		return r.Body
	}
	return nil
}

// Scheme returns the URL scheme prefix for useHTTPS.
func Scheme(useHTTPS bool) string {
	if useHTTPS {
		return "https://"
	}
	return "http://"
}

// TokenError reports a failure to sign a request.
type TokenError struct {
	Err error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("create token: %v", e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

// Send signs req when required and issues it through t.
func Send(ctx context.Context, t transport.Transport, signer auth.Signer, req Request) (*transport.Response, error) {
	var token string
	if req.Signed() {
		tok, err := signer.ManageToken(req.URL, req.SignedBody())
		if err != nil {
			return nil, &TokenError{Err: err}
		}
		token = tok
	}

	switch req.Kind {
	case KindGet:
		return t.Get(ctx, req.URL, token)
	case KindPost:
		return t.Post(ctx, req.URL, token)
	case KindForm:
		return t.PostForm(ctx, req.URL, req.Body, token)
	case KindMultipart:
		return t.PostMultipart(ctx, req.URL, req.Body, req.Boundary, token)
	case KindJSON:
		return t.PostJSON(ctx, req.URL, req.Body, token)
	default:
		return nil, fmt.Errorf("unsupported request kind %d", req.Kind)
	}
}
