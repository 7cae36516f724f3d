package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"vidq/internal/config"
	"vidq/internal/logging"
	"vidq/internal/media"
	"vidq/internal/queue"
	"vidq/internal/report"
	"vidq/internal/services"
	"vidq/internal/textutil"
)

// Fixed fetch tuning. Format caps resolution at 720p and falls back to the
// best single file when no such rendition exists.
const (
	OutputTemplate   = "%(title)s.%(ext)s"
	Format           = "best[height<=720]/best"
	SleepInterval    = time.Second
	MaxSleepInterval = 5 * time.Second
	SleepRequests    = time.Second
	BufferSize       = 64 * 1024
	HTTPChunkSize    = 10 * 1024 * 1024

	defaultSocketTimeout    = 30 * time.Second
	defaultExtractorRetries = 5
)

// Fetcher is the opaque media extraction service.
type Fetcher interface {
	Probe(ctx context.Context, url string) (media.Metadata, error)
	Fetch(ctx context.Context, url string, opts media.FetchOptions, onProgress func(media.Progress)) (media.Outcome, error)
}

// FetchError is returned by Engine.Fetch when a task fails. The same message
// is stored on the task.
type FetchError struct {
	TaskID  string
	URL     string
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	return e.Message
}

// Unwrap exposes both the fetch marker and the underlying cause.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{services.ErrFetch}
	}
	return []error{services.ErrFetch, e.Err}
}

// Option configures an Engine.
type Option func(*Engine)

// WithReporter routes progress events to reporter.
func WithReporter(reporter report.Reporter) Option {
	return func(e *Engine) {
		if reporter != nil {
			e.reporter = reporter
		}
	}
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSocketTimeout overrides the 30s socket timeout.
func WithSocketTimeout(timeout time.Duration) Option {
	return func(e *Engine) {
		if timeout > 0 {
			e.socketTimeout = timeout
		}
	}
}

// WithExtractorRetries overrides the extractor retry count of 5.
func WithExtractorRetries(retries int) Option {
	return func(e *Engine) {
		if retries > 0 {
			e.extractorRetries = retries
		}
	}
}

// Engine drives a single task through probe and fetch.
type Engine struct {
	fetcher          Fetcher
	settings         config.Downloader
	reporter         report.Reporter
	logger           *slog.Logger
	socketTimeout    time.Duration
	extractorRetries int
}

// New constructs an Engine. settings is copied and never mutated.
func New(fetcher Fetcher, settings config.Downloader, opts ...Option) *Engine {
	e := &Engine{
		fetcher:          fetcher,
		settings:         settings,
		reporter:         report.Nop{},
		logger:           logging.NewNop(),
		socketTimeout:    defaultSocketTimeout,
		extractorRetries: defaultExtractorRetries,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.NewComponentLogger(e.logger, "engine")
	return e
}

// Options returns the fetch options applied to every task.
func (e *Engine) Options() media.FetchOptions {
	return media.FetchOptions{
		OutputTemplate:      filepath.Join(e.settings.OutputDir, OutputTemplate),
		Format:              Format,
		Retries:             e.settings.MaxRetries,
		FragmentRetries:     e.settings.MaxRetries,
		ExtractorRetries:    e.extractorRetries,
		SocketTimeout:       e.socketTimeout,
		SleepInterval:       SleepInterval,
		MaxSleepInterval:    MaxSleepInterval,
		SleepRequests:       SleepRequests,
		ConcurrentFragments: e.settings.ConcurrentFragments,
		BufferSize:          BufferSize,
		HTTPChunkSize:       HTTPChunkSize,
		NoPlaylist:          true,
		Proxy:               e.settings.Proxy,
	}
}

// Probe fetches display metadata for url. It never fails: any error or panic
// is logged as a warning and reported as ok == false.
func (e *Engine) Probe(ctx context.Context, url string) (meta media.Metadata, ok bool) {
	ctx = services.WithStage(ctx, "probe")
	logger := logging.WithContext(ctx, e.logger)
	defer func() {
		if r := recover(); r != nil {
			logging.WarnWithContext(logger, "probe panicked", "probe_panic",
				logging.String(logging.FieldURL, url),
				logging.String("panic", fmt.Sprint(r)),
				logging.String(logging.FieldImpact, "task continues without preview metadata"),
			)
			meta, ok = media.Metadata{}, false
		}
	}()

	meta, err := e.fetcher.Probe(ctx, url)
	if err != nil {
		logging.WarnWithContext(logger, "metadata probe failed", "probe_failed",
			logging.String(logging.FieldURL, url),
			logging.Error(err),
			logging.String(logging.FieldImpact, "task continues without preview metadata"),
		)
		return media.Metadata{}, false
	}
	meta.Title = textutil.NormalizeTitle(meta.Title)
	attrs := []logging.Attr{
		logging.String(logging.FieldURL, url),
		logging.String("title", meta.Title),
		logging.Duration("duration", meta.Duration),
	}
	if meta.ApproxSize > 0 {
		attrs = append(attrs, logging.Int64("size", meta.ApproxSize))
	}
	logger.Debug("metadata probed", logging.Args(attrs...)...)
	return meta, true
}

// Fetch downloads task, updating it in place. It returns nil on success and
// a *FetchError otherwise; the task is COMPLETED or FAILED on return. Panics
// inside the fetch service are contained.
func (e *Engine) Fetch(ctx context.Context, task *queue.Task) (err error) {
	ctx = services.WithStage(services.WithTaskID(ctx, task.ID), "fetch")
	logger := logging.WithContext(ctx, e.logger)

	defer func() {
		if r := recover(); r != nil {
			err = e.fail(logger, task, fmt.Errorf("fetch service panicked: %v", r))
		}
	}()

	outcome, fetchErr := e.fetcher.Fetch(ctx, task.URL(), e.Options(), func(event media.Progress) {
		e.applyProgress(task, event)
	})
	if fetchErr != nil {
		return e.fail(logger, task, fetchErr)
	}

	task.SetFilename(outcome.Filename)
	if task.Filename == "" {
		task.SetFilename(e.fallbackFilename(outcome))
	}
	task.Complete(textutil.NormalizeTitle(outcome.Title))
	logger.Info("download completed",
		logging.String("title", task.Title),
		logging.String("file", task.Filename),
		logging.Duration("elapsed", task.Elapsed()),
	)
	return nil
}

func (e *Engine) applyProgress(task *queue.Task, event media.Progress) {
	switch event.Status {
	case media.ProgressDownloading:
		task.MarkDownloading()
		percent, known := event.Percent()
		task.UpdateProgress(percent, known, event.Speed, event.ETA)
	case media.ProgressFinished:
		task.SetFilename(event.Filename)
	}
	e.reporter.Progress(task, event)
}

func (e *Engine) fail(logger *slog.Logger, task *queue.Task, cause error) error {
	message := cause.Error()
	task.Fail(message)
	attrs := []logging.Attr{
		logging.String(logging.FieldURL, task.URL()),
		logging.Error(cause),
	}
	if errors.Is(cause, context.Canceled) {
		logger.Info("download interrupted", logging.Args(attrs...)...)
	} else {
		logger.Error("download failed", logging.Args(attrs...)...)
	}
	return &FetchError{TaskID: task.ID, URL: task.URL(), Message: task.Error, Err: cause}
}

// fallbackFilename names the output after the title when the fetch service did
// not report where it wrote the file.
func (e *Engine) fallbackFilename(outcome media.Outcome) string {
	name := textutil.SanitizeFileName(textutil.NormalizeTitle(outcome.Title))
	if name == "" {
		return ""
	}
	if ext := strings.TrimPrefix(strings.TrimSpace(outcome.Ext), "."); ext != "" {
		name += "." + ext
	}
	return filepath.Join(e.settings.OutputDir, name)
}
