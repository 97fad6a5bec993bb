package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qiniu "github.com/forksen/forksen-qiniu"
	"github.com/forksen/forksen-qiniu/fs/billy"
	"github.com/forksen/forksen-qiniu/qntypes"
)

var envKeys = []string{
	"QINIU_ACCESS_KEY",
	"QINIU_SECRET_KEY",
	"QINIU_API_HOST",
	"QINIU_DEFAULT_API_HOST",
	"QINIU_RSF_HOST",
	"QINIU_FUSION_HOST",
	"QINIU_USE_HTTPS",
	"QINIU_TIMEOUT",
	"QINIU_USER_AGENT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func apply(opts []qntypes.Option) *qntypes.ClientConfig {
	cfg := &qntypes.ClientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func TestLoad(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		clearEnv(t)

		s, err := Load(billy.NewInMemoryFS(), "")
		require.NoError(t, err)

		assert.Empty(t, s.AccessKey)
		assert.Equal(t, qiniu.DefaultAPIHost, s.APIHost)
		assert.Equal(t, qiniu.DefaultAPIHost, s.DefaultAPIHost)
		assert.Equal(t, qiniu.DefaultRSFHost, s.RSFHost)
		assert.Equal(t, qiniu.DefaultFusionHost, s.FusionHost)
		assert.Equal(t, 30*time.Second, s.Timeout)
		assert.False(t, s.UseHTTPS)
		assert.Equal(t, qiniu.DefaultUserAgent, s.UserAgent)
	})

	t.Run("yaml file", func(t *testing.T) {
		clearEnv(t)
		fsys := billy.NewInMemoryFS()
		yaml := "access_key: file-ak\n" +
			"secret_key: file-sk\n" +
			"api_host: https://api-z1.qiniu.com/\n" +
			"use_https: true\n" +
			"timeout: 5s\n"
		require.NoError(t, fsys.WriteFile("/etc/qnfop.yaml", []byte(yaml), 0o600))

		s, err := Load(fsys, "/etc/qnfop.yaml")
		require.NoError(t, err)

		assert.Equal(t, "file-ak", s.AccessKey)
		assert.Equal(t, "file-sk", s.SecretKey)
		assert.Equal(t, "api-z1.qiniu.com", s.APIHost)
		assert.Equal(t, qiniu.DefaultAPIHost, s.DefaultAPIHost)
		assert.True(t, s.UseHTTPS)
		assert.Equal(t, 5*time.Second, s.Timeout)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("QINIU_ACCESS_KEY", "env-ak")
		t.Setenv("QINIU_TIMEOUT", "2s")
		fsys := billy.NewInMemoryFS()
		require.NoError(t, fsys.WriteFile("/qnfop.yaml", []byte("access_key: file-ak\ntimeout: 5s\n"), 0o600))

		s, err := Load(fsys, "/qnfop.yaml")
		require.NoError(t, err)

		assert.Equal(t, "env-ak", s.AccessKey)
		assert.Equal(t, 2*time.Second, s.Timeout)
	})

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)

		_, err := Load(billy.NewInMemoryFS(), "/nope.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config /nope.yaml")
	})

	t.Run("malformed file", func(t *testing.T) {
		clearEnv(t)
		fsys := billy.NewInMemoryFS()
		require.NoError(t, fsys.WriteFile("/bad.yaml", []byte("access_key: [unterminated\n"), 0o600))

		_, err := Load(fsys, "/bad.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config /bad.yaml")
	})
}

func TestSettingsOptions(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		validate func(t *testing.T, cfg *qntypes.ClientConfig)
	}{
		{
			name: "full settings",
			settings: Settings{
				AccessKey:      "ak",
				SecretKey:      "sk",
				APIHost:        "api-z1.qiniu.com",
				DefaultAPIHost: "api.qiniu.com",
				RSFHost:        "rsf-z1.qbox.me",
				FusionHost:     "fusion.qiniuapi.com",
				UseHTTPS:       true,
				Timeout:        time.Minute,
				UserAgent:      "qnfop",
			},
			validate: func(t *testing.T, cfg *qntypes.ClientConfig) {
				assert.Equal(t, "ak", cfg.AccessKey)
				assert.Equal(t, "sk", cfg.SecretKey)
				assert.Equal(t, "api-z1.qiniu.com", cfg.APIHost)
				assert.Equal(t, "api.qiniu.com", cfg.DefaultAPIHost)
				assert.Equal(t, "rsf-z1.qbox.me", cfg.RSFHost)
				assert.Equal(t, "fusion.qiniuapi.com", cfg.FusionHost)
				assert.True(t, cfg.UseHTTPS)
				assert.Equal(t, time.Minute, cfg.Timeout)
				assert.Equal(t, "qnfop", cfg.UserAgent)
			},
		},
		{
			name:     "no credentials leaves them unset",
			settings: Settings{APIHost: "api.qiniu.com"},
			validate: func(t *testing.T, cfg *qntypes.ClientConfig) {
				assert.Empty(t, cfg.AccessKey)
				assert.Empty(t, cfg.SecretKey)
				assert.Zero(t, cfg.Timeout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, apply(tt.settings.Options()))
		})
	}
}

func TestTrimHost(t *testing.T) {
	assert.Equal(t, "api.qiniu.com", trimHost(" http://api.qiniu.com/ "))
	assert.Equal(t, "api.qiniu.com", trimHost("https://api.qiniu.com"))
	assert.Equal(t, "api.qiniu.com:8080", trimHost("api.qiniu.com:8080"))
}
