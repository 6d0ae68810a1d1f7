// Package metrics exposes feeder activity as Prometheus collectors.
//
// A Recorder is a journal.Logger: attach it to the controller's journal and
// every boundary, tag decision, dispense and interval change is counted.
// State gauges follow the shared feeding window through ObserveState.
//
// Collectors live in a private registry so tests and multiple controllers
// never collide with the global default registry.
package metrics
