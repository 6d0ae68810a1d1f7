package feeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/hw"
	"github.com/kibble-feeder/kibble-go/pkg/journal"
	"github.com/kibble-feeder/kibble-go/pkg/window"
	"github.com/rs/zerolog"
)

// buttonEdge tracks one button's last observed level.
type buttonEdge struct {
	button   hw.Button
	id       journal.Button
	delta    int
	previous hw.Level
}

// Configurator adjusts the feeding interval from the two buttons.
type Configurator struct {
	*env
	edges  [2]buttonEdge
	cycle  time.Duration
	logger zerolog.Logger
}

func newConfigurator(e *env, inc, dec hw.Button, cycle time.Duration, logger zerolog.Logger) *Configurator {
	return &Configurator{
		env: e,
		edges: [2]buttonEdge{
			{button: inc, id: journal.ButtonIncrement, delta: +1, previous: hw.LevelHigh},
			{button: dec, id: journal.ButtonDecrement, delta: -1, previous: hw.LevelHigh},
		},
		cycle:  cycle,
		logger: logger,
	}
}

// Step reads both buttons once and applies any press edges.
// It returns the number of adjustments applied.
func (c *Configurator) Step() int {
	applied := 0
	for i := range c.edges {
		edge := &c.edges[i]
		level := edge.button.Level()
		if level == edge.previous {
			continue
		}
		edge.previous = level
		if !hw.Pressed(level) {
			continue
		}
		if c.adjust(edge) {
			applied++
		}
	}
	return applied
}

func (c *Configurator) adjust(edge *buttonEdge) bool {
	old := c.state.Interval()
	next, err := c.state.AdjustInterval(edge.delta)

	event := &journal.IntervalEvent{
		Button:     edge.id,
		OldMinutes: old,
		NewMinutes: next,
	}

	if err != nil {
		if !errors.Is(err, window.ErrInvalidInterval) {
			c.logger.Error().Err(err).Msg("Interval change failed")
			return false
		}
		c.stats.intervalRejected.Add(1)
		event.Rejected = true
		c.display.Print(fmt.Sprintf("Interval: %d min (minimum)", next))
		c.logger.Warn().Int("interval_min", next).Msg("Interval already at minimum")
		c.record(journal.Event{Source: journal.SourceConfigurator, Category: journal.CategoryInterval, Interval: event})
		return false
	}

	c.stats.intervalChanges.Add(1)
	c.display.Print(fmt.Sprintf("Interval: %d min", next))
	c.logger.Info().
		Str("button", edge.id.String()).
		Int("old_min", old).
		Int("new_min", next).
		Msg("Interval changed")
	c.record(journal.Event{Source: journal.SourceConfigurator, Category: journal.CategoryInterval, Interval: event})
	return true
}

// Run polls until ctx is done, clearing the display after every cycle.
func (c *Configurator) Run(ctx context.Context) error {
	for {
		c.Step()
		err := c.sleep(ctx, c.cycle)
		c.display.Clear()
		if err != nil {
			return nil
		}
	}
}
