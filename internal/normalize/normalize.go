// Package normalize converts transport outcomes into result records.
//
// A Normalizer never fails: every outcome, including a nil response, yields a
// populated *qntypes.HTTPResult.
package normalize

import (
	"errors"
	"strings"
	"time"

	qnerrors "github.com/forksen/forksen-qiniu/errors"
	"github.com/forksen/forksen-qiniu/internal/transport"
	"github.com/forksen/forksen-qiniu/qntypes"
)

// TimeLayout stamps diagnostic lines.
const TimeLayout = "2006-01-02 15:04:05.0000"

var errEmptyResponse = errors.New("transport returned no response")

// Normalizer builds result records. It holds no per-call state.
type Normalizer struct {
	now qntypes.Clock
}

// New creates a Normalizer. A nil clock uses time.Now.
func New(clock qntypes.Clock) *Normalizer {
	if clock == nil {
		clock = time.Now
	}
	return &Normalizer{now: clock}
}

// Result normalizes the outcome of operation op.
//
// A success mirrors the response into the reference fields. An HTTP failure
// keeps what the server said in Code and Text and appends a diagnostic line
// built from the whole cause chain to RefText. Any other failure leaves the
// primary fields unset and reports CodeUserUndef.
func (n *Normalizer) Result(op string, resp *transport.Response, err error) *qntypes.HTTPResult {
	result := &qntypes.HTTPResult{}

	if err == nil && resp == nil {
		err = errEmptyResponse
	}
	if err == nil {
		result.Shadow(Mirror(resp.Code, resp.Text))
		return result
	}

	if httpErr, ok := qnerrors.AsHTTPError(err); ok {
		result.Code = httpErr.Code
		result.RefCode = httpErr.Code
		result.Text = httpErr.Text
	} else {
		result.RefCode = qntypes.CodeUserUndef
	}
	result.RefText += n.Diagnostic(op, err)

	return result
}

// Status normalizes a status query. Failures carry the server's code and text
// without a diagnostic chain.
func (n *Normalizer) Status(resp *transport.Response, err error) *qntypes.HTTPResult {
	if err == nil && resp == nil {
		err = errEmptyResponse
	}
	if err == nil {
		return Mirror(resp.Code, resp.Text)
	}
	if httpErr, ok := qnerrors.AsHTTPError(err); ok {
		return Mirror(httpErr.Code, httpErr.Text)
	}
	return &qntypes.HTTPResult{
		RefCode: qntypes.CodeUserUndef,
		RefText: err.Error(),
	}
}

// Diagnostic formats one RefText line for err:
//
//	[2006-01-02 15:04:05.0000] [op] Error:  msg1 msg2 ... \n
func (n *Normalizer) Diagnostic(op string, err error) string {
	var sb strings.Builder
	sb.WriteString("[" + n.now().Format(TimeLayout) + "] [" + op + "] Error:  ")
	for _, msg := range qnerrors.Chain(err) {
		sb.WriteString(msg + " ")
	}
	sb.WriteString("\n")
	return sb.String()
}

// Mirror returns a result whose reference fields equal its primary fields.
func Mirror(code int, text string) *qntypes.HTTPResult {
	return &qntypes.HTTPResult{
		Code:    code,
		RefCode: code,
		Text:    text,
		RefText: text,
	}
}

// Local returns a result for a failure detected before any request was sent.
// Only the reference fields are populated.
func Local(code int, text string) *qntypes.HTTPResult {
	return &qntypes.HTTPResult{
		RefCode: code,
		RefText: text,
	}
}
