package queue

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle of a download task.
type Status string

const (
	StatusPending     Status = "pending"
	StatusDownloading Status = "downloading"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
)

// UnknownTitle is recorded when a fetch succeeds without reporting a title.
const UnknownTitle = "Unknown"

// unknownError is recorded when a failure carries no message.
const unknownError = "unknown error"

// IsTerminal reports whether s is a final state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Task tracks one video's download lifecycle. The source URL is fixed at
// construction; every other field is mutated in place by the single
// goroutine driving the task. Once a task is terminal its transition methods
// are no-ops.
type Task struct {
	ID            string
	Title         string
	Status        Status
	Error         string
	Filename      string
	Progress      float64
	ProgressKnown bool
	Speed         float64
	ETA           time.Duration
	CreatedAt     time.Time
	StartedAt     time.Time
	FinishedAt    time.Time

	url string
}

// NewTask constructs a pending task for url.
func NewTask(url string) *Task {
	return &Task{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		CreatedAt: time.Now(),
		url:       url,
	}
}

// URL returns the immutable source URL.
func (t *Task) URL() string {
	return t.url
}

// IsTerminal reports whether the task reached COMPLETED or FAILED.
func (t *Task) IsTerminal() bool {
	return t.Status.IsTerminal()
}

// MarkDownloading moves a pending task into DOWNLOADING. It reports whether
// the transition happened.
func (t *Task) MarkDownloading() bool {
	if t.Status != StatusPending {
		return false
	}
	t.Status = StatusDownloading
	t.StartedAt = time.Now()
	return true
}

// UpdateProgress records a progress sample. When known is false only the
// transfer rate is updated and the task is flagged indeterminate.
func (t *Task) UpdateProgress(percent float64, known bool, speed float64, eta time.Duration) {
	if t.IsTerminal() {
		return
	}
	t.ProgressKnown = known
	if known {
		t.Progress = clampPercent(percent)
	}
	t.Speed = speed
	t.ETA = eta
}

// SetFilename records the output file reported by the fetch service.
func (t *Task) SetFilename(name string) {
	if t.IsTerminal() || strings.TrimSpace(name) == "" {
		return
	}
	t.Filename = name
}

// Complete marks the task COMPLETED with progress 100. A blank title falls
// back to UnknownTitle.
func (t *Task) Complete(title string) bool {
	if t.IsTerminal() {
		return false
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = UnknownTitle
	}
	t.Title = title
	t.Status = StatusCompleted
	t.Progress = 100
	t.ProgressKnown = true
	t.Error = ""
	t.FinishedAt = time.Now()
	return true
}

// Fail marks the task FAILED with a non-empty error message.
func (t *Task) Fail(message string) bool {
	if t.IsTerminal() {
		return false
	}
	message = strings.TrimSpace(message)
	if message == "" {
		message = unknownError
	}
	t.Status = StatusFailed
	t.Error = message
	t.FinishedAt = time.Now()
	return true
}

// DisplayTitle returns the resolved title, or the URL when none is known.
func (t *Task) DisplayTitle() string {
	if title := strings.TrimSpace(t.Title); title != "" {
		return title
	}
	return t.url
}

// Elapsed returns the time spent downloading, zero if the task never started.
func (t *Task) Elapsed() time.Duration {
	if t.StartedAt.IsZero() {
		return 0
	}
	end := t.FinishedAt
	if end.IsZero() {
		end = time.Now()
	}
	return end.Sub(t.StartedAt)
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
