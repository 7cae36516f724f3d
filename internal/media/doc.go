// Package media holds the value types exchanged between the download
// orchestration layer and the fetch service implementations: probe metadata,
// flat playlist listings, fetch options, progress events, and outcomes.
package media
