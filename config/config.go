// Package config loads client settings for command-line use.
//
// Settings come from an optional YAML file and from QINIU_* environment
// variables, which take precedence over the file:
//
//	settings, err := config.Load(billy.NewOSFS("/"), "/etc/qnfop.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := qiniu.New(settings.Options()...)
//
// A YAML file looks like:
//
//	access_key: AK
//	secret_key: SK
//	api_host: api-z1.qiniu.com
//	use_https: true
//	timeout: 10s
package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	qiniu "github.com/forksen/forksen-qiniu"
	"github.com/forksen/forksen-qiniu/fs"
	"github.com/forksen/forksen-qiniu/qntypes"
)

// EnvPrefix is prepended to every upper-cased key when reading the environment.
const EnvPrefix = "QINIU"

// Settings holds everything needed to build a client.
type Settings struct {
	AccessKey      string        `mapstructure:"access_key"`
	SecretKey      string        `mapstructure:"secret_key"`
	APIHost        string        `mapstructure:"api_host"`
	DefaultAPIHost string        `mapstructure:"default_api_host"`
	RSFHost        string        `mapstructure:"rsf_host"`
	FusionHost     string        `mapstructure:"fusion_host"`
	UseHTTPS       bool          `mapstructure:"use_https"`
	Timeout        time.Duration `mapstructure:"timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// Load reads settings from path on fsys and overlays the environment.
// An empty path skips the file and reads the environment only.
func Load(fsys fs.Filesystem, path string) (*Settings, error) {
	v := newViper()

	if path != "" {
		data, err := fsys.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	s.normalize()

	return &s, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Every key needs a default so AutomaticEnv can see it during Unmarshal.
	v.SetDefault("access_key", "")
	v.SetDefault("secret_key", "")
	v.SetDefault("api_host", qiniu.DefaultAPIHost)
	v.SetDefault("default_api_host", qiniu.DefaultAPIHost)
	v.SetDefault("rsf_host", qiniu.DefaultRSFHost)
	v.SetDefault("fusion_host", qiniu.DefaultFusionHost)
	v.SetDefault("use_https", false)
	v.SetDefault("timeout", "30s")
	v.SetDefault("user_agent", qiniu.DefaultUserAgent)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func (s *Settings) normalize() {
	s.AccessKey = strings.TrimSpace(s.AccessKey)
	s.SecretKey = strings.TrimSpace(s.SecretKey)
	s.APIHost = trimHost(s.APIHost)
	s.DefaultAPIHost = trimHost(s.DefaultAPIHost)
	s.RSFHost = trimHost(s.RSFHost)
	s.FusionHost = trimHost(s.FusionHost)
	if s.Timeout < 0 {
		s.Timeout = 0
	}
}

// trimHost drops a scheme or trailing slash copied from a browser; the
// client adds the scheme itself.
func trimHost(host string) string {
	host = strings.TrimSpace(host)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimRight(host, "/")
}

// Options converts the settings into client options.
func (s *Settings) Options() []qntypes.Option {
	opts := []qntypes.Option{
		qiniu.WithAPIHost(s.APIHost),
		qiniu.WithDefaultAPIHost(s.DefaultAPIHost),
		qiniu.WithRSFHost(s.RSFHost),
		qiniu.WithFusionHost(s.FusionHost),
		qiniu.WithUseHTTPS(s.UseHTTPS),
		qiniu.WithTimeout(s.Timeout),
		qiniu.WithUserAgent(s.UserAgent),
	}
	if s.AccessKey != "" || s.SecretKey != "" {
		opts = append(opts, qiniu.WithCredentials(s.AccessKey, s.SecretKey))
	}
	return opts
}
