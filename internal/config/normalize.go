package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDownload()
	c.normalizeEngine()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := lookupEnv(EnvOutputDir); ok {
		c.Paths.OutputDir = value
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	var err error
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDownload() {
	if value, ok := lookupEnv(EnvProxy); ok {
		c.Download.Proxy = value
	}
	c.Download.Proxy = strings.TrimSpace(c.Download.Proxy)
}

func (c *Config) normalizeEngine() {
	if value, ok := lookupEnv(EnvBinary); ok {
		c.Engine.Binary = value
	}
	c.Engine.Binary = strings.TrimSpace(c.Engine.Binary)
	if c.Engine.Binary == "" {
		c.Engine.Binary = defaultBinary
	}
	c.Engine.PlaylistSource = strings.ToLower(strings.TrimSpace(c.Engine.PlaylistSource))
	if c.Engine.PlaylistSource == "" {
		c.Engine.PlaylistSource = defaultPlaylistSource
	}
	if c.Engine.SocketTimeout == 0 {
		c.Engine.SocketTimeout = defaultSocketTimeout
	}
	if c.Engine.ExtractorRetries == 0 {
		c.Engine.ExtractorRetries = defaultExtractorRetries
	}
}

func (c *Config) normalizeLogging() {
	if value, ok := lookupEnv(EnvLogLevel); ok {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.File != "" {
		if expanded, err := expandPath(strings.TrimSpace(c.Logging.File)); err == nil {
			c.Logging.File = expanded
		}
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false
	}
	return strings.TrimSpace(value), true
}
