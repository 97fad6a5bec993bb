// Package testutil provides test utilities and mocks for the client.
// This package is internal and should only be used for testing within the module.
package testutil

import (
	"context"
	"sync"

	"github.com/forksen/forksen-qiniu/internal/transport"
)

// Call is one recorded transport invocation.
type Call struct {
	Method   string
	URL      string
	Body     []byte
	Boundary string
	Token    string
}

// MockTransport is a mock implementation of the Transport interface for testing.
// It allows customization of each call through function fields and records
// every invocation. Unset functions reply 200 with an empty JSON object.
type MockTransport struct {
	GetFunc           func(ctx context.Context, url, token string) (*transport.Response, error)
	PostFunc          func(ctx context.Context, url, token string) (*transport.Response, error)
	PostFormFunc      func(ctx context.Context, url string, body []byte, token string) (*transport.Response, error)
	PostMultipartFunc func(ctx context.Context, url string, body []byte, boundary, token string) (*transport.Response, error)
	PostJSONFunc      func(ctx context.Context, url string, body []byte, token string) (*transport.Response, error)

	mu    sync.Mutex
	calls []Call
}

// Reply returns a MockTransport that answers every call with resp and err.
func Reply(resp *transport.Response, err error) *MockTransport {
	return &MockTransport{
		GetFunc: func(context.Context, string, string) (*transport.Response, error) {
			return resp, err
		},
		PostFunc: func(context.Context, string, string) (*transport.Response, error) {
			return resp, err
		},
		PostFormFunc: func(context.Context, string, []byte, string) (*transport.Response, error) {
			return resp, err
		},
		PostMultipartFunc: func(context.Context, string, []byte, string, string) (*transport.Response, error) {
			return resp, err
		},
		PostJSONFunc: func(context.Context, string, []byte, string) (*transport.Response, error) {
			return resp, err
		},
	}
}

func (m *MockTransport) record(c Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

// Calls returns the recorded invocations in order.
func (m *MockTransport) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// LastCall returns the most recent invocation.
func (m *MockTransport) LastCall() (Call, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return Call{}, false
	}
	return m.calls[len(m.calls)-1], true
}

func defaultResponse() *transport.Response {
	return &transport.Response{Code: 200, Text: "{}"}
}

// Get mocks Transport.Get.
func (m *MockTransport) Get(ctx context.Context, url, token string) (*transport.Response, error) {
	m.record(Call{Method: "GET", URL: url, Token: token})
	if m.GetFunc != nil {
		return m.GetFunc(ctx, url, token)
	}
	return defaultResponse(), nil
}

// Post mocks Transport.Post.
func (m *MockTransport) Post(ctx context.Context, url, token string) (*transport.Response, error) {
	m.record(Call{Method: "POST", URL: url, Token: token})
	if m.PostFunc != nil {
		return m.PostFunc(ctx, url, token)
	}
	return defaultResponse(), nil
}

// PostForm mocks Transport.PostForm.
func (m *MockTransport) PostForm(
	ctx context.Context,
	url string,
	body []byte,
	token string,
) (*transport.Response, error) {
	m.record(Call{Method: "POST_FORM", URL: url, Body: body, Token: token})
	if m.PostFormFunc != nil {
		return m.PostFormFunc(ctx, url, body, token)
	}
	return defaultResponse(), nil
}

// PostMultipart mocks Transport.PostMultipart.
func (m *MockTransport) PostMultipart(
	ctx context.Context,
	url string,
	body []byte,
	boundary, token string,
) (*transport.Response, error) {
	m.record(Call{Method: "POST_MULTIPART", URL: url, Body: body, Boundary: boundary, Token: token})
	if m.PostMultipartFunc != nil {
		return m.PostMultipartFunc(ctx, url, body, boundary, token)
	}
	return defaultResponse(), nil
}

// PostJSON mocks Transport.PostJSON.
func (m *MockTransport) PostJSON(
	ctx context.Context,
	url string,
	body []byte,
	token string,
) (*transport.Response, error) {
	m.record(Call{Method: "POST_JSON", URL: url, Body: body, Token: token})
	if m.PostJSONFunc != nil {
		return m.PostJSONFunc(ctx, url, body, token)
	}
	return defaultResponse(), nil
}

// SignCall is one recorded signing request.
type SignCall struct {
	URL  string
	Body []byte
}

// MockSigner is a mock implementation of the auth.Signer interface.
// Unless ManageTokenFunc is set it returns "QBox mock:<url>".
type MockSigner struct {
	ManageTokenFunc func(rawURL string, body []byte) (string, error)

	mu    sync.Mutex
	calls []SignCall
}

// ManageToken mocks auth.Signer.ManageToken.
func (m *MockSigner) ManageToken(rawURL string, body []byte) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, SignCall{URL: rawURL, Body: body})
	m.mu.Unlock()

	if m.ManageTokenFunc != nil {
		return m.ManageTokenFunc(rawURL, body)
	}
	return "QBox mock:" + rawURL, nil
}

// Calls returns the recorded signing requests in order.
func (m *MockSigner) Calls() []SignCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SignCall, len(m.calls))
	copy(out, m.calls)
	return out
}

var _ transport.Transport = (*MockTransport)(nil)
