package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir" yaml:"output_dir"`
}

// Download contains the knobs passed to every fetch.
type Download struct {
	MaxRetries int    `toml:"max_retries" yaml:"max_retries"`
	Fragments  int    `toml:"fragments" yaml:"fragments"`
	Proxy      string `toml:"proxy" yaml:"proxy"`
	AutoProxy  bool   `toml:"auto_proxy" yaml:"auto_proxy"`
}

// Engine selects and tunes the media extraction backend.
type Engine struct {
	Binary           string `toml:"binary" yaml:"binary"`
	PlaylistSource   string `toml:"playlist_source" yaml:"playlist_source"`
	SocketTimeout    int    `toml:"socket_timeout" yaml:"socket_timeout"`
	ExtractorRetries int    `toml:"extractor_retries" yaml:"extractor_retries"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" yaml:"format"`
	Level  string `toml:"level" yaml:"level"`
	File   string `toml:"file" yaml:"file"`
}

// Config encapsulates all configuration values for vidq.
//
// Configuration sections by subsystem:
//   - Paths: where downloaded media lands
//   - Download: retries, fragment concurrency, proxy selection
//   - Engine: yt-dlp binary and playlist listing backend
//   - Logging: log format, level, and optional file
type Config struct {
	Paths    Paths    `toml:"paths" yaml:"paths"`
	Download Download `toml:"download" yaml:"download"`
	Engine   Engine   `toml:"engine" yaml:"engine"`
	Logging  Logging  `toml:"logging" yaml:"logging"`
}

// Downloader is the immutable per-run view handed to the pipeline. It is
// copied by value so later config edits never reach an in-flight run.
type Downloader struct {
	OutputDir           string
	MaxRetries          int
	ConcurrentFragments int
	Proxy               string
}

// Downloader returns the pipeline settings derived from c.
func (c *Config) Downloader() Downloader {
	return Downloader{
		OutputDir:           c.Paths.OutputDir,
		MaxRetries:          c.Download.MaxRetries,
		ConcurrentFragments: c.Download.Fragments,
		Proxy:               c.Download.Proxy,
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A missing file yields defaults.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := decode(file, resolvedPath, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func decode(r io.Reader, path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return yaml.UnmarshalStrict(data, cfg)
	default:
		decoder := toml.NewDecoder(r)
		decoder.DisallowUnknownFields()
		return decoder.Decode(cfg)
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	for _, candidate := range []string{defaultPath, projectPath} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}
	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
