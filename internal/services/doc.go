// Package services defines shared utilities consumed by the download pipeline
// and the external tool integrations beneath it.
//
// Key responsibilities:
//   - Context helpers that stamp task IDs, stage names, and run correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that classify failures as
//     extraction, fetch, or configuration errors.
//
// Integrations live in subpackages (ytdlp, ytlist) so the orchestration layer
// only ever depends on narrow interfaces.
package services
