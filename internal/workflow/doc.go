// Package workflow orchestrates a vidq run.
//
// The Manager owns the queue. Enqueue classifies each input URL, expanding
// playlists into per-video tasks, and ProcessAll drains the pending list one
// task at a time through the engine: probe for display, fetch, record the
// outcome. A failing task never stops the run; the summary lists every task
// in completion order.
//
// State moves Idle -> Processing -> Drained. Enqueueing after a drain is
// allowed and the next ProcessAll processes only the new tasks.
package workflow
