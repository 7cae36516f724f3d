// Package preflight provides readiness checks for the binaries and paths vidq
// depends on.
//
// The CLI "vidq doctor" command runs RunAll and renders the results as a
// table. Individual checks are exported so callers can run a subset.
package preflight
