package normalize

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	qnerrors "github.com/forksen/forksen-qiniu/errors"
	"github.com/forksen/forksen-qiniu/internal/transport"
	"github.com/forksen/forksen-qiniu/qntypes"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 5, 7, 8, 9, 123456789, time.UTC)
}

func TestNormalizer_Result(t *testing.T) {
	n := New(fixedClock)

	tests := []struct {
		name string
		resp *transport.Response
		err  error
		want *qntypes.HTTPResult
	}{
		{
			name: "success mirrors",
			resp: &transport.Response{Code: 200, Text: `{"persistentId":"abc123"}`},
			want: &qntypes.HTTPResult{
				Code:    200,
				RefCode: 200,
				Text:    `{"persistentId":"abc123"}`,
				RefText: `{"persistentId":"abc123"}`,
			},
		},
		{
			name: "http error keeps server outcome",
			resp: &transport.Response{Code: 401, Text: "bad token"},
			err:  qnerrors.NewHTTPError(401, "bad token", errors.New("invalid signature")),
			want: &qntypes.HTTPResult{
				Code:    401,
				RefCode: 401,
				Text:    "bad token",
				RefText: "[2024-03-05 07:08:09.1234] [pfop] Error:  http 401 invalid signature \n",
			},
		},
		{
			name: "local failure",
			err:  fmt.Errorf("read file: %w", errors.New("permission denied")),
			want: &qntypes.HTTPResult{
				RefCode: qntypes.CodeUserUndef,
				RefText: "[2024-03-05 07:08:09.1234] [pfop] Error:  read file permission denied \n",
			},
		},
		{
			name: "nil response",
			want: &qntypes.HTTPResult{
				RefCode: qntypes.CodeUserUndef,
				RefText: "[2024-03-05 07:08:09.1234] [pfop] Error:  transport returned no response \n",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Result("pfop", tt.resp, tt.err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizer_ResultWrappedHTTPError(t *testing.T) {
	n := New(fixedClock)
	err := fmt.Errorf("dfop: %w", qnerrors.NewHTTPError(599, "oops", errors.New("fop failed")))

	got := n.Result("dfop", nil, err)

	assert.Equal(t, 599, got.Code)
	assert.Equal(t, 599, got.RefCode)
	assert.Equal(t, "oops", got.Text)
	assert.Contains(t, got.RefText, "[dfop] Error:  dfop http 599 fop failed \n")
	assert.False(t, got.OK())
}

func TestNormalizer_Status(t *testing.T) {
	n := New(fixedClock)

	tests := []struct {
		name string
		resp *transport.Response
		err  error
		want *qntypes.HTTPResult
	}{
		{
			name: "success",
			resp: &transport.Response{Code: 200, Text: `{"code":0}`},
			want: Mirror(200, `{"code":0}`),
		},
		{
			name: "http error",
			err:  qnerrors.NewHTTPError(612, "no such job", errors.New("unexpected status 612")),
			want: Mirror(612, "no such job"),
		},
		{
			name: "network error",
			err:  errors.New("dial tcp: connection refused"),
			want: &qntypes.HTTPResult{RefCode: qntypes.CodeUserUndef, RefText: "dial tcp: connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Status(tt.resp, tt.err))
		})
	}
}

func TestLocal(t *testing.T) {
	got := Local(qntypes.CodeInvalidFile, "[dfop-error] File not found: /x")

	assert.Zero(t, got.Code)
	assert.Empty(t, got.Text)
	assert.Equal(t, qntypes.CodeInvalidFile, got.RefCode)
	assert.False(t, got.OK())
}

func TestNew_DefaultClock(t *testing.T) {
	n := New(nil)
	line := n.Diagnostic("pfop", errors.New("x"))
	assert.Contains(t, line, "] [pfop] Error:  x \n")
}
