// Package qntypes provides shared type definitions for the Qiniu client module.
package qntypes

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/forksen/forksen-qiniu/fs"
)

// Status codes carried by result records.
//
// Positive values mirror what the service returns. Negative values are produced
// locally and never come from the wire.
const (
	// CodeOK indicates the request succeeded
	CodeOK = 200

	// CodePartlyOK indicates a batch request partly succeeded
	CodePartlyOK = 298

	// CodeBadRequest indicates a malformed request
	CodeBadRequest = 400

	// CodeAuthenticationFailed indicates the management token was rejected
	CodeAuthenticationFailed = 401

	// CodeAccessDenied indicates the credentials lack permission
	CodeAccessDenied = 403

	// CodeObjectNotFound indicates the resource does not exist
	CodeObjectNotFound = 404

	// CodeServerOperationFailed indicates a server-side processing failure
	CodeServerOperationFailed = 599

	// CodeFileNotExist indicates the stored file does not exist
	CodeFileNotExist = 612

	// CodeBucketNotExist indicates the bucket does not exist
	CodeBucketNotExist = 631

	// CodeInvalidMarker indicates a listing marker was rejected
	CodeInvalidMarker = 640

	// CodeInvalidFile indicates a local file could not be used
	CodeInvalidFile = -3

	// CodeInvalidArgument indicates an argument failed local validation
	CodeInvalidArgument = -4

	// CodeInvalidToken indicates a management token could not be created
	CodeInvalidToken = -5

	// CodeUserUndef indicates a client-side failure with no server response
	CodeUserUndef = -256
)

// Granularity is the time bucket size for CDN statistics.
type Granularity string

// Supported granularities
const (
	Granularity5Min Granularity = "5min"
	GranularityHour Granularity = "hour"
	GranularityDay  Granularity = "day"
)

// Clock returns the current time. Result diagnostics are stamped with it.
type Clock func() time.Time

// Configuration types for functional options

// ClientConfig holds configuration for the Qiniu client.
type ClientConfig struct {
	AccessKey      string
	SecretKey      string
	APIHost        string // host serving pfop for the bucket's zone
	DefaultAPIHost string // host serving prefop and dfop
	RSFHost        string
	FusionHost     string
	UseHTTPS       bool
	Timeout        time.Duration
	HTTPClient     *http.Client
	UserAgent      string
	Filesystem     fs.Filesystem // Filesystem abstraction for local file reads
	Logger         *zap.Logger
	Clock          Clock
}

// PfopOptionConfig holds the optional members of a pfop operation descriptor.
type PfopOptionConfig struct {
	Pipeline  string
	NotifyURL string
	Force     bool
}

// DfopOptionConfig holds configuration for dfop requests that upload file content.
type DfopOptionConfig struct {
	DetectContentType bool
}

// ListOptionConfig holds configuration for list operations via functional options.
type ListOptionConfig struct {
	Prefix    string
	Marker    string
	Limit     int
	Delimiter string
}

// Option is a functional option for configuring the Qiniu client.
type (
	Option func(*ClientConfig)
	// PfopOption is a functional option for configuring pfop requests.
	PfopOption func(*PfopOptionConfig)
	// DfopOption is a functional option for configuring dfop requests.
	DfopOption func(*DfopOptionConfig)
	// ListOption is a functional option for configuring list operations.
	ListOption func(*ListOptionConfig)
)
