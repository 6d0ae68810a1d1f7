// Package journal records feeder events.
//
// The journal is separate from operational logging (zerolog). It captures a
// machine-readable trace of everything that changes the feeding window or
// moves the servo, so that a feeding history can be reconstructed later.
//
// # Basic Usage
//
//	// Console only
//	cfg.Journal = journal.NewZerologAdapter(log.Logger)
//
//	// File only
//	cfg.Journal, _ = journal.NewFileLogger("/var/lib/kibble/feeder.klog")
//
//	// Both
//	cfg.Journal = journal.NewMultiLogger(console, file)
//
// # Event Types
//
//   - Window: an interval boundary opened a new feeding window
//   - Tag: a tag was read and a decision was made
//   - Dispense: the dispense profile completed
//   - Interval: a button changed (or tried to change) the interval
//   - Lifecycle: controller start/stop and whitelist load
//   - Error: peripheral initialization failures
//
// # File Format
//
// Journal files are a stream of CBOR-encoded events using integer keys, with
// the .klog extension. The kibble-log tool views, filters and exports them.
package journal
