package report

import (
	"vidq/internal/media"
	"vidq/internal/queue"
)

// Reporter receives user-facing pipeline events. Implementations are called
// from the single goroutine driving the queue.
type Reporter interface {
	// TaskStarted announces the task about to be fetched. meta is the zero
	// value when the probe produced nothing.
	TaskStarted(index, total int, task *queue.Task, meta media.Metadata)
	// Progress forwards a fetch progress event after the task was updated.
	Progress(task *queue.Task, event media.Progress)
	// Outcome reports a task that reached a terminal state.
	Outcome(task *queue.Task)
	// Summary renders the end-of-run report.
	Summary(summary queue.Summary)
}

// Nop discards every event.
type Nop struct{}

func (Nop) TaskStarted(int, int, *queue.Task, media.Metadata) {}

func (Nop) Progress(*queue.Task, media.Progress) {}

func (Nop) Outcome(*queue.Task) {}

func (Nop) Summary(queue.Summary) {}
