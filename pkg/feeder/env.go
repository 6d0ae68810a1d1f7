package feeder

import (
	"sync/atomic"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/hw"
	"github.com/kibble-feeder/kibble-go/pkg/journal"
	"github.com/kibble-feeder/kibble-go/pkg/window"
	"github.com/rs/zerolog"
)

// env is what every task shares besides its own peripherals.
type env struct {
	state   *window.State
	clock   hw.TimeSource
	display hw.Display
	journal journal.Logger
	runID   string
	stats   *counters
	sleep   SleepFunc
}

// record stamps and journals an event.
func (e *env) record(event journal.Event) {
	event.Timestamp = e.clock.Now()
	event.RunID = e.runID
	e.journal.Log(event)
}

// counters are updated by the tasks and read through Controller.Stats.
type counters struct {
	boundaries       atomic.Uint64
	tagsRead         atomic.Uint64
	readMisses       atomic.Uint64
	accepted         atomic.Uint64
	alreadyFed       atomic.Uint64
	unknown          atomic.Uint64
	intervalChanges  atomic.Uint64
	intervalRejected atomic.Uint64
	lastDispense     atomic.Int64
}

// Stats is a snapshot of the controller counters.
type Stats struct {
	Boundaries       uint64
	TagsRead         uint64
	ReadMisses       uint64
	Dispenses        uint64
	AlreadyFed       uint64
	UnknownTags      uint64
	IntervalChanges  uint64
	IntervalRejected uint64

	// LastDispense is the wall-clock time of the last dispense. Zero if none.
	LastDispense time.Time
}

func (c *counters) snapshot() Stats {
	s := Stats{
		Boundaries:       c.boundaries.Load(),
		TagsRead:         c.tagsRead.Load(),
		ReadMisses:       c.readMisses.Load(),
		Dispenses:        c.accepted.Load(),
		AlreadyFed:       c.alreadyFed.Load(),
		UnknownTags:      c.unknown.Load(),
		IntervalChanges:  c.intervalChanges.Load(),
		IntervalRejected: c.intervalRejected.Load(),
	}
	if ns := c.lastDispense.Load(); ns != 0 {
		s.LastDispense = time.Unix(0, ns)
	}
	return s
}

func componentLogger(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}
