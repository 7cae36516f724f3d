// Package textutil provides small text helpers shared by the reporting and
// download layers: filename sanitization, title normalization, and
// terminal-width aware truncation.
package textutil
