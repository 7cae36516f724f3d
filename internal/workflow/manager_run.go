package workflow

import (
	"context"
	"time"

	"vidq/internal/logging"
	"vidq/internal/queue"
	"vidq/internal/services"
)

// ProcessAll drains the pending list in FIFO order. Each task is probed for
// display, fetched, and appended to the completed list whatever its outcome.
// Once drained the summary is reported and the completed list returned.
//
// Calling ProcessAll again with nothing pending returns the completed list
// without reporting a second summary. When ctx is cancelled the remaining
// tasks stay pending and ctx.Err() is returned alongside the tasks processed
// so far. An output directory that cannot be prepared aborts the run before
// any task starts; an empty queue never touches the output directory.
func (m *Manager) ProcessAll(ctx context.Context) ([]*queue.Task, error) {
	if m.state == StateDrained && m.queue.PendingLen() == 0 {
		return m.queue.Completed(), nil
	}
	ctx = services.WithStage(m.runContext(ctx), "process")
	logger := logging.WithContext(ctx, m.logger)

	if m.queue.PendingLen() == 0 {
		m.state = StateDrained
		logger.Info("queue empty, nothing to download")
		m.reporter.Summary(m.queue.Summary())
		return m.queue.Completed(), nil
	}

	if err := m.guard.Ensure(); err != nil {
		logger.Error("output directory unavailable",
			logging.String("output_dir", m.settings.OutputDir),
			logging.Error(err),
			logging.String(logging.FieldEventType, "output_dir_unavailable"),
			logging.String(logging.FieldErrorHint, "check permissions or stop the other vidq run"),
		)
		return m.queue.Completed(), err
	}

	m.state = StateProcessing
	start := time.Now()
	logger.Info("processing queue",
		logging.Int("pending", m.queue.PendingLen()),
		logging.String("output_dir", m.settings.OutputDir),
	)

	for m.queue.PendingLen() > 0 {
		if err := ctx.Err(); err != nil {
			m.state = StateIdle
			logger.Info("processing interrupted",
				logging.Int("completed", m.queue.CompletedLen()),
				logging.Int("pending", m.queue.PendingLen()),
			)
			return m.queue.Completed(), err
		}
		total := m.queue.Enqueued()
		index := m.queue.CompletedLen() + 1
		task, _ := m.queue.Pop()
		m.processTask(ctx, index, total, task)
	}

	m.state = StateDrained
	summary := m.queue.Summary()
	logger.Info("queue drained",
		logging.Int("total", summary.Total),
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", time.Since(start)),
	)
	m.reporter.Summary(summary)
	return m.queue.Completed(), nil
}

func (m *Manager) processTask(ctx context.Context, index, total int, task *queue.Task) {
	taskCtx := services.WithTaskID(ctx, task.ID)
	logging.WithContext(taskCtx, m.logger).Debug("task started",
		logging.String(logging.FieldURL, task.URL()),
		logging.Int("index", index),
		logging.Int("total", total),
	)

	meta, _ := m.engine.Probe(taskCtx, task.URL())
	m.reporter.TaskStarted(index, total, task, meta)

	// Failures are recorded on the task; the engine already logged them.
	_ = m.engine.Fetch(taskCtx, task)

	m.queue.Complete(task)
	m.reporter.Outcome(task)
}
