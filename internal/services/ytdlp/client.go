package ytdlp

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"vidq/internal/logging"
	"vidq/internal/media"
	"vidq/internal/services"
)

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger routes unparsed yt-dlp output to logger at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithProxy sets the proxy used by probes and listings. Fetches use the proxy
// carried in their options.
func WithProxy(proxy string) Option {
	return func(c *Client) {
		c.proxy = strings.TrimSpace(proxy)
	}
}

// WithSocketTimeout sets the socket timeout used by probes and listings.
func WithSocketTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.socketTimeout = timeout
		}
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary        string
	proxy         string
	socketTimeout time.Duration
	exec          Executor
	logger        *slog.Logger
}

// New constructs a yt-dlp client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{
		binary:        binary,
		socketTimeout: 30 * time.Second,
		exec:          commandExecutor{},
		logger:        logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	client.logger = logging.NewComponentLogger(client.logger, "yt-dlp")
	return client, nil
}

// Binary returns the configured executable.
func (c *Client) Binary() string {
	return c.binary
}

// Probe returns metadata for a single video without downloading it.
func (c *Client) Probe(ctx context.Context, url string) (media.Metadata, error) {
	args := append([]string{"--dump-single-json", "--no-playlist", "--skip-download", "--no-warnings"}, c.networkArgs()...)
	args = append(args, "--", url)

	payload, err := c.runJSON(ctx, "probe", args)
	if err != nil {
		return media.Metadata{}, err
	}
	meta, err := parseMetadata(payload)
	if err != nil {
		return media.Metadata{}, services.Wrap(services.ErrExtraction, "probe", "decode", "invalid yt-dlp metadata", err)
	}
	return meta, nil
}

// List performs a flat listing of url: entries carry identifiers and titles
// only, and playlist traversal is enabled.
func (c *Client) List(ctx context.Context, url string) (media.Listing, error) {
	args := append([]string{"--dump-single-json", "--flat-playlist", "--yes-playlist", "--no-warnings"}, c.networkArgs()...)
	args = append(args, "--", url)

	payload, err := c.runJSON(ctx, "list", args)
	if err != nil {
		return media.Listing{}, err
	}
	listing, err := parseListing(payload)
	if err != nil {
		return media.Listing{}, services.Wrap(services.ErrExtraction, "list", "decode", "invalid yt-dlp listing", err)
	}
	return listing, nil
}

// Fetch downloads url with opts, streaming progress events to onProgress.
func (c *Client) Fetch(ctx context.Context, url string, opts media.FetchOptions, onProgress func(media.Progress)) (media.Outcome, error) {
	args := buildFetchArgs(opts, url)

	var (
		outcome    media.Outcome
		gotOutcome bool
		failures   errorLines
	)
	runErr := c.exec.Run(ctx, c.binary, args, func(line string) {
		switch {
		case strings.HasPrefix(line, progressPrefix):
			event, ok := parseProgress(strings.TrimPrefix(line, progressPrefix))
			if ok && onProgress != nil {
				onProgress(event)
			}
		case strings.HasPrefix(line, resultPrefix):
			if parsed, ok := parseOutcome(strings.TrimPrefix(line, resultPrefix)); ok {
				outcome = parsed
				gotOutcome = true
			}
		default:
			if !failures.observe(line) {
				c.logger.Debug("yt-dlp output", logging.String("line", line))
			}
		}
	})
	if runErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return media.Outcome{}, services.Wrap(services.ErrFetch, "fetch", "yt-dlp", "interrupted", ctxErr)
		}
		return media.Outcome{}, services.Wrap(services.ErrFetch, "fetch", "yt-dlp", failures.message(), runErr)
	}
	if !gotOutcome {
		return media.Outcome{}, services.Wrap(services.ErrFetch, "fetch", "yt-dlp", "no file reported", nil)
	}
	return outcome, nil
}

// Version returns the yt-dlp version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	var version string
	err := c.exec.Run(ctx, c.binary, []string{"--version"}, func(line string) {
		if version == "" && strings.TrimSpace(line) != "" {
			version = strings.TrimSpace(line)
		}
	})
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "doctor", "yt-dlp", "version check failed", err)
	}
	return version, nil
}

func (c *Client) networkArgs() []string {
	args := []string{"--socket-timeout", strconv.Itoa(int(c.socketTimeout / time.Second))}
	if c.proxy != "" {
		args = append(args, "--proxy", c.proxy)
	}
	return args
}

// runJSON runs a --dump-single-json invocation and returns the JSON document.
func (c *Client) runJSON(ctx context.Context, stage string, args []string) ([]byte, error) {
	var (
		payload  string
		failures errorLines
	)
	err := c.exec.Run(ctx, c.binary, args, func(line string) {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "{") {
			payload = trimmed
			return
		}
		if !failures.observe(line) {
			c.logger.Debug("yt-dlp output", logging.String(logging.FieldStage, stage), logging.String("line", line))
		}
	})
	if err != nil {
		return nil, services.Wrap(services.ErrExtraction, stage, "yt-dlp", failures.message(), err)
	}
	if payload == "" {
		return nil, services.Wrap(services.ErrExtraction, stage, "yt-dlp", "no JSON output", nil)
	}
	return []byte(payload), nil
}

// errorLines remembers the most recent ERROR line printed by yt-dlp.
type errorLines struct {
	last string
}

func (e *errorLines) observe(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "ERROR:") {
		return false
	}
	e.last = strings.TrimSpace(strings.TrimPrefix(trimmed, "ERROR:"))
	return true
}

func (e *errorLines) message() string {
	if e.last == "" {
		return "yt-dlp exited with an error"
	}
	return e.last
}
