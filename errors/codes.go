// Package errors provides the error types shared by the Qiniu client packages.
//
// Operation errors carry the failing operation plus the bucket and key it
// targeted. HTTPError carries a server outcome together with the ordered list
// of causes that produced it. Chain flattens either form into the list of
// messages that result diagnostics are built from.
package errors

import (
	"context"
	"errors"
	"net"
)

// ErrorCode classifies an error for command-line and API output.
// Error codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// CodeNotFound indicates a requested resource does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeUnauthorized indicates the request lacks valid authentication credentials.
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// CodeForbidden indicates the authenticated user lacks permission for the operation.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// CodeInvalidInput indicates the provided input is invalid or malformed.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a configuration error prevents the operation.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// CodeNetwork indicates a network operation failed.
	CodeNetwork ErrorCode = "NETWORK_ERROR"

	// CodeTimeout indicates an operation exceeded its time limit.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeRateLimit indicates the rate limit has been exceeded.
	CodeRateLimit ErrorCode = "RATE_LIMIT_EXCEEDED"

	// CodeExecutionFailed indicates the service failed to run the operation.
	CodeExecutionFailed ErrorCode = "EXECUTION_FAILED"

	// CodeInternal indicates an internal system error occurred.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeUnavailable indicates the service is temporarily unavailable.
	CodeUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// Classify maps err onto an ErrorCode. A nil error classifies as CodeUnknown.
func Classify(err error) ErrorCode {
	if err == nil {
		return CodeUnknown
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return ClassifyStatus(httpErr.Code)
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidConfig
	case errors.Is(err, ErrFileNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidBucketName),
		errors.Is(err, ErrInvalidObjectKey),
		errors.Is(err, ErrInvalidFop),
		errors.Is(err, ErrInvalidURL):
		return CodeInvalidInput
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return CodeTimeout
		}
		return CodeNetwork
	}

	return CodeUnknown
}

// ClassifyStatus maps a service status code onto an ErrorCode.
func ClassifyStatus(code int) ErrorCode {
	switch {
	case code == 400:
		return CodeInvalidInput
	case code == 401:
		return CodeUnauthorized
	case code == 403:
		return CodeForbidden
	case code == 404, code == 612, code == 631:
		return CodeNotFound
	case code == 429, code == 573:
		return CodeRateLimit
	case code == 503:
		return CodeUnavailable
	case code == 599:
		return CodeExecutionFailed
	case code >= 500 && code < 600:
		return CodeInternal
	case code < 0:
		return CodeInternal
	default:
		return CodeUnknown
	}
}
