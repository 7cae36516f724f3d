// Package logging assembles structured slog loggers and formatting helpers used
// across vidq.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so pipeline code can tag log lines with
// task IDs, stages, and run correlation IDs. Logs default to stderr so stdout
// stays free for progress bars and the summary table.
package logging
