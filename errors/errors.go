package errors

import (
	"errors"
	"fmt"
)

// Error represents a client operation error with context about the operation that failed.
type Error struct {
	// Op is the operation that failed (e.g., "pfop", "dfop", "list")
	Op string

	// Bucket is the bucket name (if applicable)
	Bucket string

	// Key is the object key (if applicable)
	Key string

	// Err is the underlying error
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("qiniu.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("qiniu.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("qiniu.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("qiniu.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// Sentinel errors for local failures. These can be used with errors.Is().
var (
	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("qiniu: invalid input")

	// ErrInvalidBucketName indicates that the bucket name is invalid
	ErrInvalidBucketName = errors.New("qiniu: invalid bucket name")

	// ErrInvalidObjectKey indicates that the object key is invalid
	ErrInvalidObjectKey = errors.New("qiniu: invalid object key")

	// ErrInvalidFop indicates that a fop command is empty or malformed
	ErrInvalidFop = errors.New("qiniu: invalid fop")

	// ErrFileNotFound indicates that a local path is not an existing regular file
	ErrFileNotFound = errors.New("qiniu: file not found")

	// ErrInvalidCredentials indicates that the access or secret key is missing
	ErrInvalidCredentials = errors.New("qiniu: invalid credentials")

	// ErrInvalidURL indicates that a URL is malformed or not http(s)
	ErrInvalidURL = errors.New("qiniu: invalid url")
)

// IsInvalidInput checks if an error is any of the local validation failures.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidBucketName) ||
		errors.Is(err, ErrInvalidObjectKey) ||
		errors.Is(err, ErrInvalidFop) ||
		errors.Is(err, ErrInvalidURL)
}

// IsFileNotFound checks if an error indicates a missing local file.
func IsFileNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound)
}

// IsInvalidCredentials checks if an error indicates missing credentials.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}
