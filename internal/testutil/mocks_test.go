package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forksen/forksen-qiniu/auth"
	"github.com/forksen/forksen-qiniu/internal/transport"
)

func TestMockTransport_RecordsCalls(t *testing.T) {
	ctx := context.Background()
	m := &MockTransport{}

	_, err := m.Get(ctx, "http://a/get", "")
	require.NoError(t, err)
	_, err = m.PostMultipart(ctx, "http://a/mp", []byte("x"), "B", "tok")
	require.NoError(t, err)

	calls := m.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, Call{Method: "GET", URL: "http://a/get"}, calls[0])
	assert.Equal(t, "B", calls[1].Boundary)

	last, ok := m.LastCall()
	require.True(t, ok)
	assert.Equal(t, "POST_MULTIPART", last.Method)
}

func TestReply(t *testing.T) {
	boom := errors.New("boom")
	m := Reply(&transport.Response{Code: 401, Text: "bad"}, boom)

	resp, err := m.PostForm(context.Background(), "http://a", nil, "tok")
	assert.Equal(t, 401, resp.Code)
	assert.ErrorIs(t, err, boom)
}

func TestMockSigner(t *testing.T) {
	var s auth.Signer = &MockSigner{}

	tok, err := s.ManageToken("http://a/x", []byte("body"))
	require.NoError(t, err)
	assert.Equal(t, "QBox mock:http://a/x", tok)

	calls := s.(*MockSigner).Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []byte("body"), calls[0].Body)
}
