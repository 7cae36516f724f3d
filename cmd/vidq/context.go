package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"vidq/internal/config"
	"vidq/internal/engine"
	"vidq/internal/logging"
	"vidq/internal/playlist"
	"vidq/internal/preflight"
	"vidq/internal/proxy"
	"vidq/internal/services/ytdlp"
	"vidq/internal/services/ytlist"
)

// serviceFactory builds the fetch and listing backends for a run.
type serviceFactory func(cfg *config.Config, logger *slog.Logger) (engine.Fetcher, playlist.Lister, error)

type contextOption func(*commandContext)

func withServices(factory serviceFactory) contextOption {
	return func(c *commandContext) {
		if factory != nil {
			c.services = factory
		}
	}
}

func withDiscoverer(d preflight.ProxyDiscoverer) contextOption {
	return func(c *commandContext) {
		if d != nil {
			c.discoverer = d
		}
	}
}

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	services   serviceFactory
	discoverer preflight.ProxyDiscoverer

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string, opts ...contextOption) *commandContext {
	c := &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
		services:      defaultServices,
		discoverer:    proxy.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ensureConfig loads the configuration once and applies the persistent
// logging flag overrides.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if level := flagValue(c.logLevelFlag); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if format := flagValue(c.logFormatFlag); format != "" {
			cfg.Logging.Format = strings.ToLower(format)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(cfg *config.Config, stderr io.Writer) (*slog.Logger, error) {
	return logging.NewFromConfig(cfg, stderr)
}

// resolveProxy returns the proxy for the run: an explicit value wins, then
// auto-discovery when enabled.
func (c *commandContext) resolveProxy(ctx context.Context, cfg *config.Config, logger *slog.Logger) string {
	if cfg.Download.Proxy != "" || !cfg.Download.AutoProxy {
		return cfg.Download.Proxy
	}
	found := c.discoverer.Discover(ctx)
	if found != "" {
		logger.Info("using discovered local proxy", logging.String("proxy", found))
	} else {
		logger.Debug("no local proxy found; connecting directly")
	}
	return found
}

func defaultServices(cfg *config.Config, logger *slog.Logger) (engine.Fetcher, playlist.Lister, error) {
	client, err := ytdlp.New(cfg.Engine.Binary,
		ytdlp.WithLogger(logger),
		ytdlp.WithProxy(cfg.Download.Proxy),
		ytdlp.WithSocketTimeout(secondsDuration(cfg.Engine.SocketTimeout)),
	)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Engine.PlaylistSource == config.PlaylistSourceNative {
		return client, ytlist.New(), nil
	}
	return client, client, nil
}

// loadDotEnv reads .env from the working directory. Existing variables win.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func flagValue(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
