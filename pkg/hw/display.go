package hw

import (
	"github.com/rs/zerolog"
)

// LogDisplay renders display output as debug log lines. It is used when the
// controller runs without a physical display.
type LogDisplay struct {
	logger zerolog.Logger
}

// NewLogDisplay creates a LogDisplay writing to logger.
func NewLogDisplay(logger zerolog.Logger) *LogDisplay {
	return &LogDisplay{logger: logger.With().Str("component", "display").Logger()}
}

// Print logs text.
func (d *LogDisplay) Print(text string) {
	d.logger.Info().Msg(text)
}

// Clear is a no-op; log lines cannot be erased.
func (d *LogDisplay) Clear() {}

// NopDisplay discards all output.
type NopDisplay struct{}

// Print discards text.
func (NopDisplay) Print(string) {}

// Clear does nothing.
func (NopDisplay) Clear() {}

// Compile-time interface satisfaction checks.
var (
	_ Display = (*LogDisplay)(nil)
	_ Display = NopDisplay{}
)
