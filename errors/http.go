package errors

import (
	"errors"
	"fmt"
	"strings"
)

// HTTPError is a failed exchange with the service.
//
// Code and Text are what the server returned. Causes is the ordered list of
// failures that led to it, outermost first.
type HTTPError struct {
	Code   int
	Text   string
	Causes []error
}

// NewHTTPError creates an HTTPError for the given status and body.
func NewHTTPError(code int, text string, causes ...error) *HTTPError {
	return &HTTPError{
		Code:   code,
		Text:   text,
		Causes: causes,
	}
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d", e.Code)
}

// Unwrap exposes the cause list to errors.Is and errors.As.
func (e *HTTPError) Unwrap() []error {
	return e.Causes
}

// AsHTTPError returns the first HTTPError in err's tree.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// Chain flattens err into the messages of every error in its tree, in
// depth-first order. A wrapping error contributes only its own text: the
// ": <inner>" suffix added by fmt.Errorf is removed. An error joining several
// others (errors.Join, fmt.Errorf with more than one %w) contributes nothing
// itself; HTTPError always contributes its status line.
func Chain(err error) []string {
	var out []string
	walk(err, &out)
	return out
}

func walk(err error, out *[]string) {
	if err == nil {
		return
	}

	switch x := err.(type) { //nolint:errorlint // each node of the tree is visited explicitly
	case *HTTPError:
		*out = append(*out, x.Error())
		for _, cause := range x.Causes {
			walk(cause, out)
		}
	case interface{ Unwrap() []error }:
		// A joined error's text is its children's text, so only the children count.
		for _, cause := range x.Unwrap() {
			walk(cause, out)
		}
	case interface{ Unwrap() error }:
		inner := x.Unwrap()
		msg := err.Error()
		if inner != nil {
			msg = strings.TrimSuffix(msg, ": "+inner.Error())
		}
		*out = append(*out, msg)
		walk(inner, out)
	default:
		*out = append(*out, err.Error())
	}
}
