package journal

import (
	"github.com/rs/zerolog"
)

// ZerologAdapter writes journal events to a zerolog.Logger.
// Useful for development when you want to see events on the console.
type ZerologAdapter struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// NewZerologAdapter creates an adapter logging at Debug level.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger, level: zerolog.DebugLevel}
}

// WithLevel returns a copy of the adapter logging at level.
func (a *ZerologAdapter) WithLevel(level zerolog.Level) *ZerologAdapter {
	return &ZerologAdapter{logger: a.logger, level: level}
}

// Log writes the event.
func (a *ZerologAdapter) Log(event Event) {
	level := a.level
	if event.Category == CategoryError {
		level = zerolog.ErrorLevel
	}

	e := a.logger.WithLevel(level).
		Time("at", event.Timestamp).
		Str("run_id", event.RunID).
		Str("source", event.Source.String()).
		Str("category", event.Category.String())

	switch {
	case event.Window != nil:
		e = e.Int("interval_min", event.Window.IntervalMinutes).
			Bool("was_fed", event.Window.WasFed)
	case event.Tag != nil:
		e = e.Str("uid", event.Tag.UID.String()).
			Str("decision", event.Tag.Decision.String()).
			Int("slot", event.Tag.Slot)
	case event.Dispense != nil:
		e = e.Str("uid", event.Dispense.UID.String()).
			Int("steps", event.Dispense.Steps).
			Int("peak", event.Dispense.PeakPosition).
			Dur("duration", event.Dispense.Duration)
	case event.Interval != nil:
		e = e.Str("button", event.Interval.Button.String()).
			Int("old_min", event.Interval.OldMinutes).
			Int("new_min", event.Interval.NewMinutes).
			Bool("rejected", event.Interval.Rejected)
	case event.Lifecycle != nil:
		e = e.Str("state", event.Lifecycle.State)
		if event.Lifecycle.Detail != "" {
			e = e.Str("detail", event.Lifecycle.Detail)
		}
	case event.Error != nil:
		e = e.Str("error", event.Error.Message)
		if event.Error.Context != "" {
			e = e.Str("context", event.Error.Context)
		}
	}

	e.Msg("journal")
}

// Compile-time interface satisfaction check.
var _ Logger = (*ZerologAdapter)(nil)
