package workflow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"vidq/internal/config"
	"vidq/internal/logging"
	"vidq/internal/media"
	"vidq/internal/outdir"
	"vidq/internal/queue"
	"vidq/internal/report"
	"vidq/internal/services"
)

// Expander resolves a playlist URL into per-video URLs.
type Expander interface {
	Expand(ctx context.Context, playlistURL string) ([]string, error)
}

// TaskEngine drives a single task. engine.Engine satisfies it.
type TaskEngine interface {
	Probe(ctx context.Context, url string) (media.Metadata, bool)
	Fetch(ctx context.Context, task *queue.Task) error
}

// ManagerOption configures optional Manager behavior.
type ManagerOption func(*Manager)

// WithRunID overrides the generated run correlation ID.
func WithRunID(id string) ManagerOption {
	return func(m *Manager) {
		if id = strings.TrimSpace(id); id != "" {
			m.runID = id
		}
	}
}

// Manager owns the download queue: it enqueues URLs, drains the pending list
// strictly in order through the engine, and reports the summary.
type Manager struct {
	settings config.Downloader
	expander Expander
	engine   TaskEngine
	reporter report.Reporter
	logger   *slog.Logger

	queue *queue.Queue
	guard *outdir.Guard
	runID string
	state State
}

// NewManager constructs a Manager. settings is copied and never mutated.
func NewManager(settings config.Downloader, expander Expander, engine TaskEngine, reporter report.Reporter, logger *slog.Logger, opts ...ManagerOption) *Manager {
	if reporter == nil {
		reporter = report.Nop{}
	}
	m := &Manager{
		settings: settings,
		expander: expander,
		engine:   engine,
		reporter: reporter,
		queue:    queue.New(),
		guard:    outdir.New(settings.OutputDir),
		runID:    uuid.NewString(),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logging.NewComponentLogger(logger, "workflow").With(logging.String(logging.FieldRunID, m.runID))
	return m
}

// RunID returns the correlation ID attached to every log line of this run.
func (m *Manager) RunID() string {
	return m.runID
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	return m.state
}

// Pending returns a snapshot of tasks waiting to be processed.
func (m *Manager) Pending() []*queue.Task {
	return m.queue.Pending()
}

// Completed returns a snapshot of processed tasks in completion order.
func (m *Manager) Completed() []*queue.Task {
	return m.queue.Completed()
}

// Summary reports the completed tasks.
func (m *Manager) Summary() queue.Summary {
	return m.queue.Summary()
}

// Close releases the output directory lock taken by ProcessAll.
func (m *Manager) Close() error {
	return m.guard.Release()
}

func (m *Manager) runContext(ctx context.Context) context.Context {
	return services.WithRequestID(ctx, m.runID)
}
