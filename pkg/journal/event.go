package journal

import (
	"strings"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/whitelist"
)

// Event is a journal entry.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp is the feeder wall-clock time of the event.
	Timestamp time.Time `cbor:"1,keyasint"`

	// RunID identifies the controller run (UUID), new on every start.
	RunID string `cbor:"2,keyasint"`

	// Source is the task that emitted the event.
	Source Source `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	Window    *WindowEvent    `cbor:"10,keyasint,omitempty"`
	Tag       *TagEvent       `cbor:"11,keyasint,omitempty"`
	Dispense  *DispenseEvent  `cbor:"12,keyasint,omitempty"`
	Interval  *IntervalEvent  `cbor:"13,keyasint,omitempty"`
	Lifecycle *LifecycleEvent `cbor:"14,keyasint,omitempty"`
	Error     *ErrorEventData `cbor:"15,keyasint,omitempty"`
}

// Source identifies the emitting task.
type Source uint8

const (
	// SourceController is the controller itself (startup, shutdown).
	SourceController Source = 0
	// SourceClock is the clock monitor.
	SourceClock Source = 1
	// SourceDispenser is the access and dispense controller.
	SourceDispenser Source = 2
	// SourceConfigurator is the interval configurator.
	SourceConfigurator Source = 3
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceController:
		return "CONTROLLER"
	case SourceClock:
		return "CLOCK"
	case SourceDispenser:
		return "DISPENSER"
	case SourceConfigurator:
		return "CONFIGURATOR"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryWindow indicates an interval boundary.
	CategoryWindow Category = 0
	// CategoryTag indicates a tag decision.
	CategoryTag Category = 1
	// CategoryDispense indicates a completed dispense.
	CategoryDispense Category = 2
	// CategoryInterval indicates an interval adjustment.
	CategoryInterval Category = 3
	// CategoryLifecycle indicates a controller lifecycle change.
	CategoryLifecycle Category = 4
	// CategoryError indicates an error.
	CategoryError Category = 5
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryWindow:
		return "WINDOW"
	case CategoryTag:
		return "TAG"
	case CategoryDispense:
		return "DISPENSE"
	case CategoryInterval:
		return "INTERVAL"
	case CategoryLifecycle:
		return "LIFECYCLE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryWindow; c <= CategoryError; c++ {
		if strings.EqualFold(c.String(), s) {
			return c, true
		}
	}
	return 0, false
}

// WindowEvent captures an interval boundary.
type WindowEvent struct {
	// IntervalMinutes is the interval that produced the boundary.
	IntervalMinutes int `cbor:"1,keyasint"`

	// WasFed reports whether the previous window ended fed.
	WasFed bool `cbor:"2,keyasint,omitempty"`
}

// Decision is the outcome of a tag read.
type Decision uint8

const (
	// DecisionAccepted means the tag was recognized and food was dispensed.
	DecisionAccepted Decision = 0
	// DecisionAlreadyFed means the tag was recognized but the window was used.
	DecisionAlreadyFed Decision = 1
	// DecisionUnknown means the tag is not whitelisted.
	DecisionUnknown Decision = 2
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case DecisionAccepted:
		return "ACCEPTED"
	case DecisionAlreadyFed:
		return "ALREADY_FED"
	case DecisionUnknown:
		return "UNKNOWN_TAG"
	default:
		return "UNKNOWN"
	}
}

// TagEvent captures a tag decision.
type TagEvent struct {
	// UID is the tag identifier.
	UID whitelist.UID `cbor:"1,keyasint"`

	// Decision is what the dispenser did with the tag.
	Decision Decision `cbor:"2,keyasint"`

	// Slot is the whitelist slot that matched, -1 if none.
	Slot int `cbor:"3,keyasint"`
}

// DispenseEvent captures a completed dispense profile.
type DispenseEvent struct {
	// UID is the tag that triggered the dispense.
	UID whitelist.UID `cbor:"1,keyasint"`

	// Steps is the number of servo moves issued.
	Steps int `cbor:"2,keyasint"`

	// PeakPosition is the furthest servo position reached.
	PeakPosition int `cbor:"3,keyasint"`

	// Duration is how long the profile took. Stored as nanoseconds.
	Duration time.Duration `cbor:"4,keyasint"`
}

// Button identifies an interval button.
type Button uint8

const (
	// ButtonIncrement is the "+" button.
	ButtonIncrement Button = 0
	// ButtonDecrement is the "-" button.
	ButtonDecrement Button = 1
)

// String returns the button name.
func (b Button) String() string {
	switch b {
	case ButtonIncrement:
		return "INCREMENT"
	case ButtonDecrement:
		return "DECREMENT"
	default:
		return "UNKNOWN"
	}
}

// IntervalEvent captures an interval adjustment.
type IntervalEvent struct {
	// Button is the button that was pressed.
	Button Button `cbor:"1,keyasint"`

	// OldMinutes is the interval before the press.
	OldMinutes int `cbor:"2,keyasint"`

	// NewMinutes is the interval after the press.
	NewMinutes int `cbor:"3,keyasint"`

	// Rejected is set when the change would leave the valid range.
	Rejected bool `cbor:"4,keyasint,omitempty"`
}

// LifecycleEvent captures controller state changes.
type LifecycleEvent struct {
	// State is the new lifecycle state (e.g. "started", "stopped").
	State string `cbor:"1,keyasint"`

	// Detail carries extra information (if available).
	Detail string `cbor:"2,keyasint,omitempty"`
}

// ErrorEventData captures an error.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
