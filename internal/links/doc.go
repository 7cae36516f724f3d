// Package links classifies and canonicalizes video URLs and loads URL lists.
//
// Classify is pure and idempotent: feeding its output back in yields the same
// result. Input helpers apply the same line filtering everywhere (blank lines
// and lines starting with '#' are ignored).
package links
