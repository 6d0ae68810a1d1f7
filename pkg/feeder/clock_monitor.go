package feeder

import (
	"context"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/journal"
	"github.com/kibble-feeder/kibble-go/pkg/window"
	"github.com/rs/zerolog"
)

// ClockMonitor opens a new feeding window at every interval boundary.
type ClockMonitor struct {
	*env
	period time.Duration
	logger zerolog.Logger

	// lastBoundary is the boundary second already handled. Only the Run
	// goroutine touches it.
	lastBoundary time.Time
}

// Step polls the time source once. It returns true if a window was opened.
func (m *ClockMonitor) Step() bool {
	now := m.clock.Now()
	interval := m.state.Interval()
	if !window.IsBoundary(now, interval) {
		return false
	}

	second := now.Truncate(time.Second)
	if second.Equal(m.lastBoundary) {
		return false
	}
	m.lastBoundary = second

	wasFed := m.state.OpenWindow()
	m.stats.boundaries.Add(1)

	m.logger.Info().
		Int("interval_min", interval).
		Bool("was_fed", wasFed).
		Str("at", now.Format("15:04:05")).
		Msg("Feeding window opened")

	m.record(journal.Event{
		Source:   journal.SourceClock,
		Category: journal.CategoryWindow,
		Window: &journal.WindowEvent{
			IntervalMinutes: interval,
			WasFed:          wasFed,
		},
	})
	return true
}

// Run polls until ctx is done.
func (m *ClockMonitor) Run(ctx context.Context) error {
	for {
		m.Step()
		if err := m.sleep(ctx, m.period); err != nil {
			return nil
		}
	}
}
