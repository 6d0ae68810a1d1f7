package sim

import (
	"fmt"
	"io"
	"sync"
)

// Display buffers printed lines and optionally mirrors them to a writer.
type Display struct {
	mu      sync.Mutex
	lines   []string
	history []string
	clears  int
	out     io.Writer
}

// NewDisplay creates a display. out may be nil.
func NewDisplay(out io.Writer) *Display {
	return &Display{out: out}
}

// Print appends text to the screen.
func (d *Display) Print(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines = append(d.lines, text)
	d.history = append(d.history, text)
	if d.out != nil {
		fmt.Fprintf(d.out, "[display] %s\n", text)
	}
}

// Clear blanks the screen.
func (d *Display) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lines = nil
	d.clears++
}

// Lines returns what is currently on screen.
func (d *Display) Lines() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// History returns everything printed since creation.
func (d *Display) History() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.history))
	copy(out, d.history)
	return out
}

// Clears returns how often the screen was cleared.
func (d *Display) Clears() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clears
}

// SetOutput changes the mirror writer. nil stops mirroring.
func (d *Display) SetOutput(out io.Writer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.out = out
}
