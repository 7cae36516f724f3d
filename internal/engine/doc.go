// Package engine drives one download task through the fetch service.
//
// Probe is advisory and never fails. Fetch translates progress events into
// task updates (clamped percent, or indeterminate when no total is known),
// records the output file, and leaves the task COMPLETED or FAILED. Failures
// and panics in the fetch service never escape as anything but a *FetchError.
package engine
