package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"vidq/internal/config"
	"vidq/internal/services"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if resolved != filepath.Join(tempHome, ".config", "vidq", "config.toml") {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Paths.OutputDir != filepath.Join(tempHome, "downloads") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Download.MaxRetries != 5 || cfg.Download.Fragments != 4 {
		t.Fatalf("unexpected download defaults: %+v", cfg.Download)
	}
	if !cfg.Download.AutoProxy || cfg.Download.Proxy != "" {
		t.Fatalf("unexpected proxy defaults: %+v", cfg.Download)
	}
	if cfg.Engine.Binary != "yt-dlp" || cfg.Engine.PlaylistSource != config.PlaylistSourceYTDLP {
		t.Fatalf("unexpected engine defaults: %+v", cfg.Engine)
	}
	if _, err := os.Stat(cfg.Paths.OutputDir); !os.IsNotExist(err) {
		t.Fatalf("Load must not create the output dir, stat err=%v", err)
	}
}

func TestLoadProjectConfigFromWorkingDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	project := t.TempDir()
	t.Chdir(project)
	if err := os.WriteFile(filepath.Join(project, "vidq.toml"), []byte("[download]\nfragments = 8\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "vidq.toml" {
		t.Fatalf("expected project config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Download.Fragments != 8 {
		t.Fatalf("expected fragments 8, got %d", cfg.Download.Fragments)
	}
}

func TestLoadCustomTOMLPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "custom.toml")

	type payload struct {
		Paths struct {
			OutputDir string `toml:"output_dir"`
		} `toml:"paths"`
		Download struct {
			MaxRetries int    `toml:"max_retries"`
			Proxy      string `toml:"proxy"`
		} `toml:"download"`
	}
	custom := payload{}
	custom.Paths.OutputDir = filepath.Join(t.TempDir(), "media")
	custom.Download.MaxRetries = 2
	custom.Download.Proxy = "http://127.0.0.1:7890"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	got := cfg.Downloader()
	want := config.Downloader{
		OutputDir:           custom.Paths.OutputDir,
		MaxRetries:          2,
		ConcurrentFragments: 4,
		Proxy:               "http://127.0.0.1:7890",
	}
	if got != want {
		t.Fatalf("Downloader() = %+v, want %+v", got, want)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "vidq.yaml")
	content := "download:\n  fragments: 2\nengine:\n  playlist_source: native\nlogging:\n  format: json\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Download.Fragments != 2 {
		t.Fatalf("expected fragments 2, got %d", cfg.Download.Fragments)
	}
	if cfg.Engine.PlaylistSource != config.PlaylistSourceNative {
		t.Fatalf("expected native playlist source, got %q", cfg.Engine.PlaylistSource)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json log format, got %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(configPath, []byte("[download]\nretry = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "vidq.toml")
	if err := os.WriteFile(configPath, []byte("[download]\nproxy = \"http://127.0.0.1:8080\"\n[engine]\nbinary = \"/opt/yt-dlp\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	outDir := filepath.Join(t.TempDir(), "env-out")
	t.Setenv(config.EnvProxy, "socks5://127.0.0.1:1080")
	t.Setenv(config.EnvBinary, "/usr/local/bin/yt-dlp")
	t.Setenv(config.EnvOutputDir, outDir)

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Download.Proxy != "socks5://127.0.0.1:1080" {
		t.Fatalf("expected env proxy, got %q", cfg.Download.Proxy)
	}
	if cfg.Engine.Binary != "/usr/local/bin/yt-dlp" {
		t.Fatalf("expected env binary, got %q", cfg.Engine.Binary)
	}
	if cfg.Paths.OutputDir != outDir {
		t.Fatalf("expected env output dir, got %q", cfg.Paths.OutputDir)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[download]") {
		t.Fatalf("sample missing download section: %s", data)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if cfg.Download.MaxRetries != 5 {
		t.Fatalf("sample max_retries = %d, want 5", cfg.Download.MaxRetries)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"negative retries", func(c *config.Config) { c.Download.MaxRetries = -1 }, "download.max_retries"},
		{"zero fragments", func(c *config.Config) { c.Download.Fragments = 0 }, "download.fragments"},
		{"bad proxy scheme", func(c *config.Config) { c.Download.Proxy = "ftp://127.0.0.1:21" }, "download.proxy"},
		{"proxy without host", func(c *config.Config) { c.Download.Proxy = "http://" }, "download.proxy"},
		{"unknown playlist source", func(c *config.Config) { c.Engine.PlaylistSource = "api" }, "engine.playlist_source"},
		{"unknown log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"empty output dir", func(c *config.Config) { c.Paths.OutputDir = "" }, "paths.output_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration marker, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in %v", tt.want, err)
			}
		})
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
