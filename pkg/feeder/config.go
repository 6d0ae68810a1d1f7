package feeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/journal"
	"github.com/kibble-feeder/kibble-go/pkg/window"
	"github.com/rs/zerolog"
)

// Default task timing.
const (
	DefaultClockPoll   = 100 * time.Millisecond
	DefaultReaderRetry = 50 * time.Millisecond
	DefaultReaderCycle = 1000 * time.Millisecond
	DefaultButtonCycle = 1000 * time.Millisecond
)

// Controller errors.
var (
	ErrInvalidConfig  = errors.New("invalid feeder configuration")
	ErrAlreadyRunning = errors.New("feeder controller already running")
	ErrNoPeripheral   = errors.New("missing peripheral")
)

// SleepFunc pauses a task for d. It returns ctx.Err() if ctx is done first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Config holds controller configuration.
type Config struct {
	// IntervalMinutes is the initial feeding interval. Ignored when State is set.
	IntervalMinutes int

	// ClockPoll is the clock monitor poll period.
	ClockPoll time.Duration

	// ReaderRetry is the pause after a poll that found no readable tag.
	ReaderRetry time.Duration

	// ReaderCycle is the pause after a tag has been processed.
	ReaderCycle time.Duration

	// ButtonCycle is the interval configurator poll period.
	ButtonCycle time.Duration

	// Profile is the dispense motion profile.
	Profile Profile

	// State is the shared feeding window. A new one is created if nil.
	State *window.State

	// Journal receives feeder events. Defaults to journal.NoopLogger.
	Journal journal.Logger

	// Logger is the operational logger. Defaults to a disabled logger.
	Logger *zerolog.Logger

	// RunID identifies this run in the journal. A UUID is generated if empty.
	RunID string

	// Sleep overrides task sleeping. Used by tests.
	Sleep SleepFunc

	// Pause overrides the uninterruptible settle delay inside the dispense
	// profile. Used by tests.
	Pause func(time.Duration)
}

// DefaultConfig returns the stock feeder timing.
func DefaultConfig() Config {
	return Config{
		IntervalMinutes: window.DefaultInterval,
		ClockPoll:       DefaultClockPoll,
		ReaderRetry:     DefaultReaderRetry,
		ReaderCycle:     DefaultReaderCycle,
		ButtonCycle:     DefaultButtonCycle,
		Profile:         DefaultProfile(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.State == nil && c.IntervalMinutes < window.MinInterval {
		return fmt.Errorf("%w: interval %d below %d", ErrInvalidConfig, c.IntervalMinutes, window.MinInterval)
	}
	periods := []struct {
		name string
		d    time.Duration
	}{
		{"clock poll", c.ClockPoll},
		{"reader retry", c.ReaderRetry},
		{"reader cycle", c.ReaderCycle},
		{"button cycle", c.ButtonCycle},
	}
	for _, p := range periods {
		if p.d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.d)
		}
	}
	if err := c.Profile.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
