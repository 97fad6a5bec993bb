package operations_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forksen/forksen-qiniu/internal/operations"
	"github.com/forksen/forksen-qiniu/internal/testutil"
)

func TestSend_Dispatch(t *testing.T) {
	tests := []struct {
		name          string
		req           operations.Request
		wantMethod    string
		wantToken     bool
		wantSignedLen int
	}{
		{
			name:          "form",
			req:           operations.Request{Kind: operations.KindForm, URL: "http://api/pfop/", Body: []byte("bucket=b")},
			wantMethod:    "POST_FORM",
			wantToken:     true,
			wantSignedLen: len("bucket=b"),
		},
		{
			name:       "get",
			req:        operations.Request{Kind: operations.KindGet, URL: "http://api/status/get/prefop?id=x"},
			wantMethod: "GET",
		},
		{
			name:       "post",
			req:        operations.Request{Kind: operations.KindPost, URL: "http://api/dfop?fop=f&url=u"},
			wantMethod: "POST",
			wantToken:  true,
		},
		{
			name:       "multipart",
			req:        operations.Request{Kind: operations.KindMultipart, URL: "http://api/dfop?fop=f", Body: []byte("--B--"), Boundary: "B"},
			wantMethod: "POST_MULTIPART",
			wantToken:  true,
		},
		{
			name:       "json",
			req:        operations.Request{Kind: operations.KindJSON, URL: "http://fusion/v2/tune/bandwidth", Body: []byte("{}")},
			wantMethod: "POST_JSON",
			wantToken:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &testutil.MockTransport{}
			signer := &testutil.MockSigner{}

			resp, err := operations.Send(context.Background(), tr, signer, tt.req)
			require.NoError(t, err)
			assert.Equal(t, 200, resp.Code)

			call, ok := tr.LastCall()
			require.True(t, ok)
			assert.Equal(t, tt.wantMethod, call.Method)
			assert.Equal(t, tt.req.URL, call.URL)
			assert.Equal(t, tt.req.Boundary, call.Boundary)

			if !tt.wantToken {
				assert.Empty(t, call.Token)
				assert.Empty(t, signer.Calls())
				return
			}
			assert.Equal(t, "QBox mock:"+tt.req.URL, call.Token)
			require.Len(t, signer.Calls(), 1)
			assert.Len(t, signer.Calls()[0].Body, tt.wantSignedLen)
		})
	}
}

func TestSend_TokenError(t *testing.T) {
	tr := &testutil.MockTransport{}
	signer := &testutil.MockSigner{
		ManageTokenFunc: func(string, []byte) (string, error) {
			return "", errors.New("bad key")
		},
	}

	req := operations.Request{Kind: operations.KindMultipart, URL: "http://api/dfop?fop=f"}
	_, err := operations.Send(context.Background(), tr, signer, req)

	var tokErr *operations.TokenError
	require.ErrorAs(t, err, &tokErr)
	assert.True(t, strings.HasPrefix(err.Error(), "create token"))
	assert.Empty(t, tr.Calls())
}

func TestSend_UnknownKind(t *testing.T) {
	_, err := operations.Send(context.Background(), &testutil.MockTransport{}, &testutil.MockSigner{},
		operations.Request{Kind: operations.Kind(42), URL: "http://api/x"})
	require.Error(t, err)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "multipart", operations.KindMultipart.String())
	assert.Equal(t, "unknown", operations.Kind(42).String())
}

func TestScheme(t *testing.T) {
	assert.Equal(t, "https://", operations.Scheme(true))
	assert.Equal(t, "http://", operations.Scheme(false))
}
