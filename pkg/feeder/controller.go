package feeder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kibble-feeder/kibble-go/pkg/hw"
	"github.com/kibble-feeder/kibble-go/pkg/journal"
	"github.com/kibble-feeder/kibble-go/pkg/whitelist"
	"github.com/kibble-feeder/kibble-go/pkg/window"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Peripherals bundles the hardware the controller drives.
type Peripherals struct {
	Clock     hw.TimeSource
	Reader    hw.TagReader
	Actuator  hw.Actuator
	Increment hw.Button
	Decrement hw.Button

	// Display is optional; output is discarded if nil.
	Display hw.Display
}

func (p Peripherals) validate() error {
	switch {
	case p.Clock == nil:
		return fmt.Errorf("%w: clock", ErrNoPeripheral)
	case p.Reader == nil:
		return fmt.Errorf("%w: tag reader", ErrNoPeripheral)
	case p.Actuator == nil:
		return fmt.Errorf("%w: actuator", ErrNoPeripheral)
	case p.Increment == nil || p.Decrement == nil:
		return fmt.Errorf("%w: interval buttons", ErrNoPeripheral)
	}
	return nil
}

// Controller runs the clock monitor, dispenser and configurator.
type Controller struct {
	env    *env
	logger zerolog.Logger

	clockMonitor *ClockMonitor
	dispenser    *Dispenser
	configurator *Configurator

	mu      sync.Mutex
	running bool
}

// New creates a controller. A nil whitelist recognizes no tags.
func New(cfg Config, p Peripherals, wl *whitelist.Whitelist) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	state := cfg.State
	if state == nil {
		var err error
		state, err = window.NewWithInterval(cfg.IntervalMinutes)
		if err != nil {
			return nil, err
		}
	}
	if wl == nil {
		wl = whitelist.Empty()
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	e := &env{
		state:   state,
		clock:   p.Clock,
		display: p.Display,
		journal: cfg.Journal,
		runID:   cfg.RunID,
		stats:   &counters{},
		sleep:   cfg.Sleep,
	}
	if e.display == nil {
		e.display = hw.NopDisplay{}
	}
	if e.journal == nil {
		e.journal = journal.NoopLogger{}
	}
	if e.runID == "" {
		e.runID = uuid.New().String()
	}
	if e.sleep == nil {
		e.sleep = sleepContext
	}

	pause := cfg.Pause
	if pause == nil {
		pause = time.Sleep
	}

	c := &Controller{
		env:    e,
		logger: componentLogger(logger, "controller"),
	}
	c.clockMonitor = &ClockMonitor{
		env:    e,
		period: cfg.ClockPoll,
		logger: componentLogger(logger, "clock"),
	}
	c.dispenser = &Dispenser{
		env:       e,
		reader:    p.Reader,
		actuator:  p.Actuator,
		whitelist: wl,
		profile:   cfg.Profile,
		pause:     pause,
		retry:     cfg.ReaderRetry,
		cycle:     cfg.ReaderCycle,
		logger:    componentLogger(logger, "dispenser"),
	}
	c.configurator = newConfigurator(e, p.Increment, p.Decrement, cfg.ButtonCycle,
		componentLogger(logger, "configurator"))

	return c, nil
}

// State returns the shared feeding window.
func (c *Controller) State() *window.State {
	return c.env.state
}

// Whitelist returns the whitelist loaded at startup.
func (c *Controller) Whitelist() *whitelist.Whitelist {
	return c.dispenser.whitelist
}

// RunID returns the journal run identifier.
func (c *Controller) RunID() string {
	return c.env.runID
}

// Stats returns a snapshot of the controller counters.
func (c *Controller) Stats() Stats {
	return c.env.stats.snapshot()
}

// IsRunning reports whether Run is active.
func (c *Controller) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Run starts the three tasks and blocks until ctx is cancelled and all of
// them have returned. A dispense in progress completes first.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	c.running = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	snap := c.env.state.Snapshot()
	c.logger.Info().
		Str("run_id", c.env.runID).
		Int("interval_min", snap.IntervalMinutes).
		Int("whitelist", c.dispenser.whitelist.Len()).
		Msg("Feeder controller started")
	c.env.record(journal.Event{
		Source:   journal.SourceController,
		Category: journal.CategoryLifecycle,
		Lifecycle: &journal.LifecycleEvent{
			State:  "started",
			Detail: fmt.Sprintf("interval=%dmin whitelist=%d", snap.IntervalMinutes, c.dispenser.whitelist.Len()),
		},
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.clockMonitor.Run(gctx) })
	g.Go(func() error { return c.dispenser.Run(gctx) })
	g.Go(func() error { return c.configurator.Run(gctx) })
	err := g.Wait()

	stats := c.Stats()
	c.logger.Info().
		Uint64("dispenses", stats.Dispenses).
		Uint64("boundaries", stats.Boundaries).
		Msg("Feeder controller stopped")
	c.env.record(journal.Event{
		Source:   journal.SourceController,
		Category: journal.CategoryLifecycle,
		Lifecycle: &journal.LifecycleEvent{
			State:  "stopped",
			Detail: fmt.Sprintf("dispenses=%d", stats.Dispenses),
		},
	})
	return err
}
