package workflow

import (
	"context"
	"strings"

	"vidq/internal/links"
	"vidq/internal/logging"
	"vidq/internal/queue"
	"vidq/internal/services"
)

// Enqueue classifies raw and appends the resulting tasks to the pending list.
// Blank input and comment lines are ignored. Playlist URLs are expanded; an
// expansion that fails or yields nothing adds no tasks and is not an error.
// It returns the number of tasks added.
func (m *Manager) Enqueue(ctx context.Context, raw string) int {
	line := strings.TrimSpace(raw)
	if line == "" || links.IsComment(line) {
		return 0
	}
	ctx = services.WithStage(m.runContext(ctx), "enqueue")
	logger := logging.WithContext(ctx, m.logger)

	cleaned, playlistOnly := links.Classify(line)
	if !playlistOnly {
		if cleaned != line {
			logger.Info("stripped playlist parameters from video url",
				logging.String(logging.FieldURL, cleaned),
				logging.String("original", line),
			)
		}
		m.queue.Push(queue.NewTask(cleaned))
		return 1
	}

	urls, err := m.expander.Expand(ctx, cleaned)
	if err != nil {
		logging.WarnWithContext(logger, "playlist expansion failed", "playlist_expand_failed",
			logging.String(logging.FieldURL, cleaned),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the playlist is public and the url is correct"),
			logging.String(logging.FieldImpact, "playlist skipped"),
		)
		return 0
	}
	if len(urls) == 0 {
		logging.WarnWithContext(logger, "playlist has no downloadable videos", "playlist_empty",
			logging.String(logging.FieldURL, cleaned),
			logging.String(logging.FieldImpact, "playlist skipped"),
		)
		return 0
	}

	tasks := make([]*queue.Task, 0, len(urls))
	for _, url := range urls {
		tasks = append(tasks, queue.NewTask(url))
	}
	m.queue.Push(tasks...)
	logger.Info("playlist expanded",
		logging.String(logging.FieldURL, cleaned),
		logging.Int("videos", len(tasks)),
	)
	return len(tasks)
}

// EnqueueMany enqueues each URL in order and returns the total tasks added.
func (m *Manager) EnqueueMany(ctx context.Context, urls []string) int {
	added := 0
	for _, raw := range urls {
		if ctx.Err() != nil {
			break
		}
		added += m.Enqueue(ctx, raw)
	}
	return added
}
