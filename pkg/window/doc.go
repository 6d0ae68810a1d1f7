// Package window implements the feeding window state of a kibble feeder.
//
// A feeding window is the span between two interval boundaries. The state
// tracks the configured interval length and whether the pet has already been
// fed in the current window.
//
// # Interval Boundaries
//
// A boundary is the wall-clock instant where
//
//	minute % IntervalMinutes == 0 && second == 0
//
// Boundaries are derived from the minute-of-hour only, so intervals that do
// not divide 60 produce a shorter window right after the full hour. An
// interval of 60 or more opens a single window per hour.
//
// # Fed Flag Transitions
//
//   - false -> true only through MarkFed, after a completed dispense
//   - true  -> false only through OpenWindow, at an interval boundary
//
// # Concurrency
//
// State is shared between the clock monitor, the dispenser and the interval
// configurator. Every accessor takes the internal lock, so readers observe a
// value at most one poll cycle old and never a torn one. Change callbacks are
// invoked after the lock has been released.
package window
