package feeder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/hw/sim"
	"github.com/kibble-feeder/kibble-go/pkg/journal"
	"github.com/kibble-feeder/kibble-go/pkg/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastTiming(cfg *Config) {
	cfg.ClockPoll = time.Millisecond
	cfg.ReaderRetry = time.Millisecond
	cfg.ReaderCycle = 5 * time.Millisecond
	cfg.ButtonCycle = time.Millisecond
}

func TestNewValidation(t *testing.T) {
	r := &rig{
		clock:   sim.NewClock(clockAt(0, 1)),
		reader:  sim.NewTagReader(),
		servo:   sim.NewServo(),
		inc:     sim.NewButton(),
		dec:     sim.NewButton(),
		display: sim.NewDisplay(nil),
	}

	t.Run("missing reader", func(t *testing.T) {
		p := r.peripherals()
		p.Reader = nil
		_, err := New(DefaultConfig(), p, nil)
		assert.ErrorIs(t, err, ErrNoPeripheral)
	})

	t.Run("missing button", func(t *testing.T) {
		p := r.peripherals()
		p.Decrement = nil
		_, err := New(DefaultConfig(), p, nil)
		assert.ErrorIs(t, err, ErrNoPeripheral)
	})

	t.Run("bad interval", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.IntervalMinutes = 0
		_, err := New(cfg, r.peripherals(), nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("bad period", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ReaderRetry = 0
		_, err := New(cfg, r.peripherals(), nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("bad profile", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Profile.MaxPosition = 500
		_, err := New(cfg, r.peripherals(), nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("defaults", func(t *testing.T) {
		c, err := New(DefaultConfig(), r.peripherals(), nil)
		require.NoError(t, err)
		assert.Equal(t, window.DefaultInterval, c.State().Interval())
		assert.False(t, c.State().AlreadyFed())
		assert.Equal(t, 0, c.Whitelist().Len())
		assert.NotEmpty(t, c.RunID())
	})

	t.Run("shared state", func(t *testing.T) {
		state, err := window.NewWithInterval(3)
		require.NoError(t, err)
		cfg := DefaultConfig()
		cfg.State = state
		cfg.IntervalMinutes = 0
		c, err := New(cfg, r.peripherals(), nil)
		require.NoError(t, err)
		assert.Same(t, state, c.State())
	})
}

func TestControllerRun(t *testing.T) {
	c, r := newRigWithConfig(t, fastTiming, knownUID)
	r.clock.Set(clockAt(10, 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool { return c.Stats().Boundaries == 1 }, time.Second, time.Millisecond)
	assert.True(t, c.IsRunning())

	r.reader.Present(knownUID)
	require.Eventually(t, func() bool { return c.Stats().Dispenses == 1 }, time.Second, time.Millisecond)
	assert.True(t, c.State().AlreadyFed())

	r.reader.Present(knownUID)
	require.Eventually(t, func() bool { return c.Stats().AlreadyFed == 1 }, time.Second, time.Millisecond)

	r.inc.Press()
	require.Eventually(t, func() bool { return c.State().Interval() == 6 }, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.False(t, c.IsRunning())

	assert.Len(t, r.servo.Moves(), 92)
	assert.Equal(t, uint64(1), c.Stats().Boundaries)

	lifecycle := r.eventsOf(journal.CategoryLifecycle)
	require.Len(t, lifecycle, 2)
	assert.Equal(t, "started", lifecycle[0].Lifecycle.State)
	assert.Equal(t, "stopped", lifecycle[1].Lifecycle.State)
	assert.Equal(t, "dispenses=1", lifecycle[1].Lifecycle.Detail)
}

func TestControllerRunTwice(t *testing.T) {
	c, _ := newRigWithConfig(t, fastTiming)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	require.Eventually(t, c.IsRunning, time.Second, time.Millisecond)

	err := c.Run(context.Background())
	assert.True(t, errors.Is(err, ErrAlreadyRunning))

	cancel()
	require.NoError(t, <-done)
}

func TestControllerFinishesDispenseOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c, r := newRigWithConfig(t, fastTiming, knownUID)

	// Cancel midway through the sweep; the sweep must still complete.
	r.servo.OnMove(func(position int) {
		if position == 20 {
			cancel()
		}
	})
	r.reader.Present(knownUID)

	require.NoError(t, c.Run(ctx))
	assert.Len(t, r.servo.Moves(), 92)
	assert.Equal(t, 0, r.servo.Position())
	assert.True(t, c.State().AlreadyFed())
}

func TestControllerInjectedSleep(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []time.Duration
	)

	c, _ := newRigWithConfig(t, func(cfg *Config) {
		cfg.ClockPoll = time.Hour
		cfg.ReaderRetry = 2 * time.Hour
		cfg.ButtonCycle = 3 * time.Hour
		cfg.Sleep = func(ctx context.Context, d time.Duration) error {
			mu.Lock()
			calls = append(calls, d)
			mu.Unlock()
			return context.Canceled
		}
	})

	// Each task polls once and stops at its first sleep.
	require.NoError(t, c.Run(context.Background()))
	assert.ElementsMatch(t, []time.Duration{time.Hour, 2 * time.Hour, 3 * time.Hour}, calls)
}

// sleepRecorder records requested sleeps and cancels on call number stopAfter.
// then runs before every sleep that does not cancel.
type sleepRecorder struct {
	mu        sync.Mutex
	calls     []time.Duration
	stopAfter int
	then      func()
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.calls = append(s.calls, d)
	n := len(s.calls)
	s.mu.Unlock()

	if n >= s.stopAfter {
		return context.Canceled
	}
	if s.then != nil {
		s.then()
	}
	return nil
}

func (s *sleepRecorder) durations() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.calls))
	copy(out, s.calls)
	return out
}

func TestDispenserRunCycleAfterTag(t *testing.T) {
	rec := &sleepRecorder{stopAfter: 1}
	c, r := newRigWithConfig(t, func(cfg *Config) { cfg.Sleep = rec.sleep }, knownUID)
	r.reader.Present(knownUID)

	require.NoError(t, c.dispenser.Run(context.Background()))

	assert.Equal(t, []time.Duration{DefaultReaderCycle}, rec.durations())
	assert.Empty(t, r.display.Lines(), "display cleared after the cycle")
	assert.Equal(t, 1, r.display.Clears())
	assert.Contains(t, r.display.History(), msgGranted)
	assert.True(t, c.State().AlreadyFed())
}

func TestDispenserRunRetriesUntilTag(t *testing.T) {
	rec := &sleepRecorder{stopAfter: 2}
	c, r := newRigWithConfig(t, func(cfg *Config) { cfg.Sleep = rec.sleep }, knownUID)

	// The first poll finds nothing; the tag arrives during the retry sleep.
	rec.then = func() { r.reader.Present(unknownUID) }

	require.NoError(t, c.dispenser.Run(context.Background()))

	assert.Equal(t, []time.Duration{DefaultReaderRetry, DefaultReaderCycle}, rec.durations())
	assert.Empty(t, r.display.Lines())
	assert.Equal(t, 1, r.display.Clears(), "retry sleeps do not clear the display")
	assert.Contains(t, r.display.History(), msgDenied)
	assert.False(t, c.State().AlreadyFed())
}

func TestConfiguratorRunClearsEachCycle(t *testing.T) {
	rec := &sleepRecorder{stopAfter: 2}
	c, r := newRigWithConfig(t, func(cfg *Config) { cfg.Sleep = rec.sleep })
	r.inc.Press()

	require.NoError(t, c.configurator.Run(context.Background()))

	assert.Equal(t, []time.Duration{DefaultButtonCycle, DefaultButtonCycle}, rec.durations())
	assert.Equal(t, 6, c.State().Interval(), "held button applies once")
	assert.Empty(t, r.display.Lines())
	assert.Equal(t, 2, r.display.Clears())
	assert.Equal(t, []string{"Interval: 6 min"}, r.display.History())
}
