package testsupport

import (
	"sync"

	"vidq/internal/media"
	"vidq/internal/queue"
)

// ReporterEvent is one call captured by RecordingReporter.
type ReporterEvent struct {
	Kind    string
	TaskURL string
	Index   int
	Total   int
	Meta    media.Metadata
	Event   media.Progress
	Status  queue.Status
	Summary queue.Summary
}

// RecordingReporter captures reporter calls for assertions.
type RecordingReporter struct {
	mu     sync.Mutex
	Events []ReporterEvent
}

func (r *RecordingReporter) record(evt ReporterEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, evt)
}

func (r *RecordingReporter) TaskStarted(index, total int, task *queue.Task, meta media.Metadata) {
	r.record(ReporterEvent{Kind: "started", TaskURL: task.URL(), Index: index, Total: total, Meta: meta})
}

func (r *RecordingReporter) Progress(task *queue.Task, event media.Progress) {
	r.record(ReporterEvent{Kind: "progress", TaskURL: task.URL(), Event: event, Status: task.Status})
}

func (r *RecordingReporter) Outcome(task *queue.Task) {
	r.record(ReporterEvent{Kind: "outcome", TaskURL: task.URL(), Status: task.Status})
}

func (r *RecordingReporter) Summary(summary queue.Summary) {
	r.record(ReporterEvent{Kind: "summary", Summary: summary})
}

// Kinds returns the ordered event kinds, handy for sequence assertions.
func (r *RecordingReporter) Kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]string, 0, len(r.Events))
	for _, evt := range r.Events {
		kinds = append(kinds, evt.Kind)
	}
	return kinds
}

// Count returns how many events of kind were recorded.
func (r *RecordingReporter) Count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, evt := range r.Events {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}
