package sim

import (
	"sync"

	"github.com/kibble-feeder/kibble-go/pkg/hw"
)

// Button is a simulated active-low push-button.
type Button struct {
	mu    sync.Mutex
	level hw.Level

	// latched holds a press that has not been polled yet, so that a click
	// shorter than the poll period is not lost.
	latched bool
}

// NewButton creates a released button.
func NewButton() *Button {
	return &Button{level: hw.LevelHigh}
}

// Press holds the button down.
func (b *Button) Press() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.level = hw.LevelLow
}

// Release lets the button go.
func (b *Button) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.level = hw.LevelHigh
}

// Click presses and releases the button. The press stays visible until it
// has been polled once.
func (b *Button) Click() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.level = hw.LevelHigh
	b.latched = true
}

// Level returns the raw input level.
func (b *Button) Level() hw.Level {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latched {
		b.latched = false
		return hw.LevelLow
	}
	return b.level
}
