// Package transport performs the HTTP exchanges of the client.
//
// Each call is a single attempt. A non-2xx response is returned together with
// an *errors.HTTPError whose cause list explains the failure; a failure before
// any response exists is returned as a plain wrapped error.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	qnerrors "github.com/forksen/forksen-qiniu/errors"
	"github.com/forksen/forksen-qiniu/internal/multipart"
)

// Content types sent by the client.
const (
	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeJSON = "application/json"
)

// DefaultTimeout is the default per-request timeout.
const DefaultTimeout = 30 * time.Second

// Response is the raw outcome of an exchange.
type Response struct {
	Code int
	Text string
}

// Transport is the HTTP collaborator. An empty token sends no Authorization header.
type Transport interface {
	Get(ctx context.Context, url, token string) (*Response, error)
	Post(ctx context.Context, url, token string) (*Response, error)
	PostForm(ctx context.Context, url string, body []byte, token string) (*Response, error)
	PostMultipart(ctx context.Context, url string, body []byte, boundary, token string) (*Response, error)
	PostJSON(ctx context.Context, url string, body []byte, token string) (*Response, error)
}

// Config configures an HTTPTransport.
type Config struct {
	// HTTPClient replaces the default client when set. It is copied, not modified.
	HTTPClient *http.Client
	// Timeout is the per-request timeout (default 30s).
	Timeout time.Duration
	// UserAgent is sent with every request when set.
	UserAgent string
}

// HTTPTransport implements Transport with resty.
type HTTPTransport struct {
	client *resty.Client
}

// New creates an HTTPTransport.
func New(cfg Config) *HTTPTransport {
	var c *resty.Client
	if cfg.HTTPClient != nil {
		// resty writes the timeout into the client it wraps; the caller's stays untouched.
		hc := *cfg.HTTPClient
		c = resty.NewWithClient(&hc)
	} else {
		c = resty.New()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c.SetTimeout(cfg.Timeout).SetRetryCount(0)
	if cfg.UserAgent != "" {
		c.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &HTTPTransport{client: c}
}

// Get implements Transport.
func (t *HTTPTransport) Get(ctx context.Context, url, token string) (*Response, error) {
	return t.do(ctx, http.MethodGet, url, token, "", nil)
}

// Post implements Transport. The request carries no body.
func (t *HTTPTransport) Post(ctx context.Context, url, token string) (*Response, error) {
	return t.do(ctx, http.MethodPost, url, token, ContentTypeForm, nil)
}

// PostForm implements Transport.
func (t *HTTPTransport) PostForm(ctx context.Context, url string, body []byte, token string) (*Response, error) {
	return t.do(ctx, http.MethodPost, url, token, ContentTypeForm, body)
}

// PostMultipart implements Transport.
func (t *HTTPTransport) PostMultipart(
	ctx context.Context,
	url string,
	body []byte,
	boundary, token string,
) (*Response, error) {
	return t.do(ctx, http.MethodPost, url, token, multipart.ContentTypeHeader(boundary), body)
}

// PostJSON implements Transport.
func (t *HTTPTransport) PostJSON(ctx context.Context, url string, body []byte, token string) (*Response, error) {
	return t.do(ctx, http.MethodPost, url, token, ContentTypeJSON, body)
}

func (t *HTTPTransport) do(
	ctx context.Context,
	method, url, token, contentType string,
	body []byte,
) (*Response, error) {
	req := t.client.R().SetContext(ctx)
	if token != "" {
		req.SetHeader("Authorization", token)
	}
	if contentType != "" {
		req.SetHeader("Content-Type", contentType)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}

	// resty's String() trims whitespace, the payload is kept verbatim.
	out := &Response{
		Code: resp.StatusCode(),
		Text: string(resp.Body()),
	}
	if resp.IsSuccess() {
		return out, nil
	}

	return out, newHTTPError(out, resp.Status())
}

// StatusError is the cause recorded for every non-2xx response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return "unexpected status " + e.Status
	}
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// ServerError is the message the service put in the "error" field of its reply.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

func newHTTPError(resp *Response, status string) *qnerrors.HTTPError {
	var causes []error
	if msg := serverMessage(resp.Text); msg != "" {
		causes = append(causes, &ServerError{Message: msg})
	}
	causes = append(causes, &StatusError{Code: resp.Code, Status: status})
	return qnerrors.NewHTTPError(resp.Code, resp.Text, causes...)
}

func serverMessage(text string) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(text), &body); err != nil {
		return ""
	}
	return body.Error
}

var _ Transport = (*HTTPTransport)(nil)

// CloseIdleConnections closes idle keep-alive connections.
func (t *HTTPTransport) CloseIdleConnections() {
	t.client.GetClient().CloseIdleConnections()
}
