package hw

import (
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/whitelist"
)

// TimeSource reports the current wall-clock time. Only the minute and
// second fields are used by the feeder.
type TimeSource interface {
	Now() time.Time
}

// TagReader polls a proximity tag reader. Both methods must return
// immediately.
type TagReader interface {
	// TagPresent reports whether a new tag is in the field.
	TagPresent() bool

	// ReadSerial reads the UID of the present tag. ok is false when the read
	// failed.
	ReadSerial() (uid whitelist.UID, ok bool)
}

// Actuator positions the dispensing servo. MoveTo does not wait for the
// servo to settle.
type Actuator interface {
	MoveTo(position int)
}

// Level is a digital input level.
type Level uint8

const (
	// LevelHigh is the idle level of an active-low button.
	LevelHigh Level = iota
	// LevelLow is the level of a pressed active-low button.
	LevelLow
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelHigh:
		return "HIGH"
	case LevelLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// Button reads the raw level of a momentary push-button wired active-low.
type Button interface {
	Level() Level
}

// Pressed reports whether a raw active-low level means the button is held.
func Pressed(l Level) bool {
	return l == LevelLow
}

// Display shows short status text. Both methods are best-effort.
type Display interface {
	Print(text string)
	Clear()
}

// SystemClock is a TimeSource backed by the host clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Compile-time interface satisfaction check.
var _ TimeSource = SystemClock{}
