package qiniu

import (
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/forksen/forksen-qiniu/auth"
	"github.com/forksen/forksen-qiniu/errors"
	"github.com/forksen/forksen-qiniu/fs"
	"github.com/forksen/forksen-qiniu/fs/billy"
	"github.com/forksen/forksen-qiniu/internal/multipart"
	"github.com/forksen/forksen-qiniu/internal/normalize"
	"github.com/forksen/forksen-qiniu/internal/operations/bandwidth"
	"github.com/forksen/forksen-qiniu/internal/operations/fop"
	"github.com/forksen/forksen-qiniu/internal/operations/list"
	"github.com/forksen/forksen-qiniu/internal/transport"
	"github.com/forksen/forksen-qiniu/qntypes"
)

// Default service hosts.
const (
	DefaultAPIHost    = "api.qiniu.com"
	DefaultRSFHost    = "rsf.qbox.me"
	DefaultFusionHost = "fusion.qiniuapi.com"
)

// Environment variables consulted when credentials are not given explicitly.
const (
	EnvAccessKey = "QINIU_ACCESS_KEY"
	EnvSecretKey = "QINIU_SECRET_KEY"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "forksen-qiniu-go"

// Client issues requests against the Qiniu APIs.
// It is safe for concurrent use: all per-call state is local to the call.
type Client struct {
	transport  transport.Transport
	signer     auth.Signer
	builder    *fop.Builder
	lister     *list.Lister
	querier    *bandwidth.Querier
	normalizer *normalize.Normalizer
	logger     *zap.Logger

	// mu protects fs
	mu sync.RWMutex
	fs fs.Filesystem
}

// New creates a new client with the provided options.
// Credentials come from WithCredentials or, failing that, from the
// QINIU_ACCESS_KEY and QINIU_SECRET_KEY environment variables.
//
// Example:
//
//	client, err := qiniu.New(
//	    qiniu.WithCredentials("ak", "sk"),
//	    qiniu.WithTimeout(10*time.Second),
//	)
func New(opts ...qntypes.Option) (*Client, error) {
	cfg := newConfig(opts...)

	if cfg.AccessKey == "" && cfg.SecretKey == "" {
		cfg.AccessKey = os.Getenv(EnvAccessKey)
		cfg.SecretKey = os.Getenv(EnvSecretKey)
	}

	mac, err := auth.New(cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, errors.NewError("client initialization", err)
	}

	t := transport.New(transport.Config{
		HTTPClient: cfg.HTTPClient,
		Timeout:    cfg.Timeout,
		UserAgent:  cfg.UserAgent,
	})

	return newClient(cfg, t, mac), nil
}

// NewWithTransport creates a client on top of a custom transport and signer.
// This is primarily used for testing with mocked collaborators.
func NewWithTransport(t transport.Transport, signer auth.Signer, opts ...qntypes.Option) *Client {
	return newClient(newConfig(opts...), t, signer)
}

func newConfig(opts ...qntypes.Option) *qntypes.ClientConfig {
	cfg := &qntypes.ClientConfig{
		APIHost:        DefaultAPIHost,
		DefaultAPIHost: DefaultAPIHost,
		RSFHost:        DefaultRSFHost,
		FusionHost:     DefaultFusionHost,
		Timeout:        transport.DefaultTimeout,
		UserAgent:      DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func newClient(cfg *qntypes.ClientConfig, t transport.Transport, signer auth.Signer) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Initialize filesystem - use provided one or default to OS filesystem
	var filesystem fs.Filesystem
	if cfg.Filesystem != nil {
		filesystem = cfg.Filesystem
	} else {
		filesystem = billy.NewOSFS("/")
	}

	return &Client{
		transport: t,
		signer:    signer,
		builder: fop.NewBuilder(fop.Endpoints{
			UseHTTPS:       cfg.UseHTTPS,
			APIHost:        cfg.APIHost,
			DefaultAPIHost: cfg.DefaultAPIHost,
		}, multipart.NewEncoder(nil)),
		lister: list.New(t, signer, list.Endpoints{
			UseHTTPS: cfg.UseHTTPS,
			RSFHost:  cfg.RSFHost,
		}),
		querier: bandwidth.New(t, signer, bandwidth.Endpoints{
			UseHTTPS:   cfg.UseHTTPS,
			FusionHost: cfg.FusionHost,
		}),
		normalizer: normalize.New(cfg.Clock),
		logger:     logger.Named("qiniu"),
		fs:         filesystem,
	}
}

// SetFilesystem sets the filesystem implementation for the client.
// This is useful for testing or when the filesystem needs to be changed after creation.
func (c *Client) SetFilesystem(filesystem fs.Filesystem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fs = filesystem
}

func (c *Client) filesystem() fs.Filesystem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fs
}

// Close releases idle connections held by the default transport.
func (c *Client) Close() error {
	if t, ok := c.transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
	return nil
}
