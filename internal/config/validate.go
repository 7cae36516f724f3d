package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"vidq/internal/services"
)

const (
	maxRetriesLimit = 100
	maxFragments    = 64
)

// Validate ensures the configuration is usable. Failures are tagged with
// services.ErrConfiguration.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validatePaths,
		c.validateDownload,
		c.validateEngine,
		c.validateLogging,
	} {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %w", services.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateDownload() error {
	if c.Download.MaxRetries < 0 || c.Download.MaxRetries > maxRetriesLimit {
		return fmt.Errorf("download.max_retries must be between 0 and %d", maxRetriesLimit)
	}
	if c.Download.Fragments < 1 || c.Download.Fragments > maxFragments {
		return fmt.Errorf("download.fragments must be between 1 and %d", maxFragments)
	}
	if c.Download.Proxy != "" {
		if err := ValidateProxy(c.Download.Proxy); err != nil {
			return fmt.Errorf("download.proxy: %w", err)
		}
	}
	return nil
}

func (c *Config) validateEngine() error {
	switch c.Engine.PlaylistSource {
	case PlaylistSourceYTDLP, PlaylistSourceNative:
	default:
		return fmt.Errorf("engine.playlist_source must be %q or %q", PlaylistSourceYTDLP, PlaylistSourceNative)
	}
	if c.Engine.SocketTimeout < 0 {
		return errors.New("engine.socket_timeout must be non-negative")
	}
	if c.Engine.ExtractorRetries < 0 {
		return errors.New("engine.extractor_retries must be non-negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	return nil
}

// ValidateProxy checks that value is an absolute proxy URL with a scheme yt-dlp accepts.
func ValidateProxy(value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("parse %q: %w", value, err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "socks4", "socks4a", "socks5", "socks5h":
	default:
		return fmt.Errorf("unsupported proxy scheme in %q", value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("proxy %q has no host", value)
	}
	return nil
}
