package testsupport

import (
	"path/filepath"
	"testing"

	"vidq/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config whose output directory lives in a per-test
// temp directory. Auto proxy discovery is disabled.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(t.TempDir(), "downloads")
	cfg.Download.AutoProxy = false

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithProxy sets an explicit proxy.
func WithProxy(proxy string) ConfigOption {
	return func(c *config.Config) {
		c.Download.Proxy = proxy
	}
}

// WithRetries overrides the retry count.
func WithRetries(retries int) ConfigOption {
	return func(c *config.Config) {
		c.Download.MaxRetries = retries
	}
}

// WithFragments overrides fragment concurrency.
func WithFragments(fragments int) ConfigOption {
	return func(c *config.Config) {
		c.Download.Fragments = fragments
	}
}
