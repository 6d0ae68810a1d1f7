// Package feeder implements the feeder controller: three polling tasks that
// share a feeding window.
//
// # Tasks
//
//   - ClockMonitor polls the time source every ClockPoll and opens a new
//     feeding window at each interval boundary.
//   - Dispenser polls the tag reader, looks the tag up in the whitelist and
//     runs the dispense profile when the current window is still unused.
//   - Configurator polls the two interval buttons and adjusts the interval
//     on each press edge.
//
// Controller runs the three tasks concurrently until its context is
// cancelled. Tasks never wait on each other: they communicate only through
// the shared window.State, and every task suspends only in its own sleep.
//
// # Timing
//
// The clock monitor checks for second == 0, so a poll period of one second
// or more can skip a boundary. The default 100ms period keeps the chance of a
// miss small but not zero.
//
// A boundary is acted on once per boundary second, so a dispense that
// finishes while the clock still reads second 0 keeps its fed flag.
//
// The dispense profile blocks the dispenser for roughly
// 2*(MaxPosition+1)*StepDelay (about 9.2s with the defaults). It always runs
// to completion, even when the controller is stopping.
package feeder
