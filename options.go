package qiniu

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/forksen/forksen-qiniu/fs"
	"github.com/forksen/forksen-qiniu/qntypes"
)

// WithCredentials sets the access key and secret key used to sign requests.
func WithCredentials(accessKey, secretKey string) qntypes.Option {
	return func(c *qntypes.ClientConfig) {
		c.AccessKey = accessKey
		c.SecretKey = secretKey
	}
}

// WithAPIHost sets the host serving pfop for the bucket's zone.
// Default is api.qiniu.com.
func WithAPIHost(host string) qntypes.Option {
	return func(c *qntypes.ClientConfig) {
		if host != "" {
			c.APIHost = host
		}
	}
}

// WithDefaultAPIHost sets the host serving prefop and dfop.
// Default is api.qiniu.com.
func WithDefaultAPIHost(host string) qntypes.Option {
	return func(c *qntypes.ClientConfig) {
		if host != "" {
			c.DefaultAPIHost = host
		}
	}
}

// WithRSFHost sets the host serving bucket listings.
func WithRSFHost(host string) qntypes.Option {
	return func(c *qntypes.ClientConfig) {
		if host != "" {
			c.RSFHost = host
		}
	}
}

// WithFusionHost sets the host serving CDN statistics.
func WithFusionHost(host string) qntypes.Option {
	return func(c *qntypes.ClientConfig) {
		if host != "" {
			c.FusionHost = host
		}
	}
}

// WithUseHTTPS selects https for every request. Default is http.
func WithUseHTTPS(useHTTPS bool) qntypes.Option {
	return func(c *qntypes.ClientConfig) {
		c.UseHTTPS = useHTTPS
	}
}

// WithTimeout sets the timeout for individual requests. Default is 30s.
func WithTimeout(timeout time.Duration) qntypes.Option {
	return func(c *qntypes.ClientConfig) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithHTTPClient sets the HTTP client requests are sent with.
func WithHTTPClient(client *http.Client) qntypes.Option {
	return func(c *qntypes.ClientConfig) {
		c.HTTPClient = client
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) qntypes.Option {
	return func(c *qntypes.ClientConfig) {
		if userAgent != "" {
			c.UserAgent = userAgent
		}
	}
}

// WithFilesystem sets the filesystem local files are read from.
// Default is the OS filesystem.
func WithFilesystem(filesystem fs.Filesystem) qntypes.Option {
	return func(c *qntypes.ClientConfig) {
		c.Filesystem = filesystem
	}
}

// WithLogger sets the logger. Default discards everything.
func WithLogger(logger *zap.Logger) qntypes.Option {
	return func(c *qntypes.ClientConfig) {
		c.Logger = logger
	}
}

// WithClock sets the clock diagnostics are stamped with.
func WithClock(clock qntypes.Clock) qntypes.Option {
	return func(c *qntypes.ClientConfig) {
		c.Clock = clock
	}
}

// Pfop options

// WithPipeline routes the job through a private processing queue.
// The name is sent without percent-encoding.
func WithPipeline(pipeline string) qntypes.PfopOption {
	return func(c *qntypes.PfopOptionConfig) {
		c.Pipeline = pipeline
	}
}

// WithNotifyURL sets the URL notified when the job finishes.
func WithNotifyURL(notifyURL string) qntypes.PfopOption {
	return func(c *qntypes.PfopOptionConfig) {
		c.NotifyURL = notifyURL
	}
}

// WithForce overwrites existing results of the job.
func WithForce(force bool) qntypes.PfopOption {
	return func(c *qntypes.PfopOptionConfig) {
		c.Force = force
	}
}

// Dfop options

// WithDetectContentType sniffs the content type of uploaded files instead of
// sending application/octet-stream.
func WithDetectContentType(detect bool) qntypes.DfopOption {
	return func(c *qntypes.DfopOptionConfig) {
		c.DetectContentType = detect
	}
}

// List options

// WithPrefix restricts listing to keys with the given prefix.
func WithPrefix(prefix string) qntypes.ListOption {
	return func(c *qntypes.ListOptionConfig) {
		c.Prefix = prefix
	}
}

// WithMarker resumes listing from a marker returned by a previous page.
func WithMarker(marker string) qntypes.ListOption {
	return func(c *qntypes.ListOptionConfig) {
		c.Marker = marker
	}
}

// WithLimit sets the page size. Zero selects 1000; values above 1000 are rejected.
func WithLimit(limit int) qntypes.ListOption {
	return func(c *qntypes.ListOptionConfig) {
		c.Limit = limit
	}
}

// WithDelimiter groups keys sharing a prefix up to the delimiter into CommonPrefixes.
func WithDelimiter(delimiter string) qntypes.ListOption {
	return func(c *qntypes.ListOptionConfig) {
		c.Delimiter = delimiter
	}
}
