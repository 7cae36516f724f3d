// Package report renders user-facing run output: per-task headers with probe
// previews, progress bars or sampled progress lines, outcome lines, and the
// end-of-run summary table.
//
// The pipeline depends only on the Reporter interface; Nop discards events.
package report
