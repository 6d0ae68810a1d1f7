package window

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Interval constants.
const (
	// DefaultInterval is the interval length in minutes at startup.
	DefaultInterval = 5

	// MinInterval is the smallest accepted interval in minutes.
	// Zero or negative values would make the boundary check undefined.
	MinInterval = 1
)

// ErrInvalidInterval is returned when an interval below MinInterval is set.
var ErrInvalidInterval = errors.New("invalid feeding interval")

// Snapshot is a consistent copy of the feeding window state.
type Snapshot struct {
	IntervalMinutes int
	AlreadyFed      bool

	// Boundaries counts the windows opened since startup.
	Boundaries uint64

	// FedAt is when MarkFed last succeeded. Zero if never.
	FedAt time.Time
}

// String returns a short human-readable description.
func (s Snapshot) String() string {
	fed := "hungry"
	if s.AlreadyFed {
		fed = "fed"
	}
	return fmt.Sprintf("interval=%dmin %s", s.IntervalMinutes, fed)
}

// State is the process-wide feeding window state.
type State struct {
	mu sync.RWMutex

	interval   int
	fed        bool
	boundaries uint64
	fedAt      time.Time

	onChange func(prev, next Snapshot)
}

// New creates a State with the default interval and the fed flag cleared.
func New() *State {
	return &State{interval: DefaultInterval}
}

// NewWithInterval creates a State with a custom interval.
func NewWithInterval(minutes int) (*State, error) {
	if minutes < MinInterval {
		return nil, fmt.Errorf("%w: %d", ErrInvalidInterval, minutes)
	}
	return &State{interval: minutes}, nil
}

// Interval returns the interval length in minutes.
func (s *State) Interval() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interval
}

// AlreadyFed reports whether food was dispensed in the current window.
func (s *State) AlreadyFed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fed
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		IntervalMinutes: s.interval,
		AlreadyFed:      s.fed,
		Boundaries:      s.boundaries,
		FedAt:           s.fedAt,
	}
}

// SetInterval replaces the interval length.
func (s *State) SetInterval(minutes int) error {
	if minutes < MinInterval {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, minutes)
	}

	s.mu.Lock()
	old := s.snapshotLocked()
	s.interval = minutes
	s.notifyAndUnlock(old)
	return nil
}

// AdjustInterval adds delta to the interval and returns the new length.
// If the result would fall below MinInterval the state is left untouched
// and the current length is returned together with ErrInvalidInterval.
func (s *State) AdjustInterval(delta int) (int, error) {
	s.mu.Lock()

	next := s.interval + delta
	if next < MinInterval {
		current := s.interval
		s.mu.Unlock()
		return current, fmt.Errorf("%w: %d", ErrInvalidInterval, next)
	}

	old := s.snapshotLocked()
	s.interval = next
	s.notifyAndUnlock(old)
	return next, nil
}

// OpenWindow clears the fed flag. It returns true if the flag was set.
func (s *State) OpenWindow() bool {
	s.mu.Lock()

	old := s.snapshotLocked()
	wasFed := s.fed
	s.fed = false
	s.boundaries++
	s.notifyAndUnlock(old)
	return wasFed
}

// MarkFed sets the fed flag after a completed dispense.
func (s *State) MarkFed(at time.Time) {
	s.mu.Lock()

	old := s.snapshotLocked()
	s.fed = true
	s.fedAt = at
	s.notifyAndUnlock(old)
}

// OnChange sets a callback invoked after every mutation.
func (s *State) OnChange(fn func(prev, next Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// notifyAndUnlock releases the lock and then runs the change callback.
func (s *State) notifyAndUnlock(old Snapshot) {
	fn := s.onChange
	cur := s.snapshotLocked()
	s.mu.Unlock()

	if fn != nil {
		fn(old, cur)
	}
}

// IsBoundary reports whether t is the first second of a window for the given
// interval. It returns false for intervals below MinInterval.
func IsBoundary(t time.Time, intervalMinutes int) bool {
	if intervalMinutes < MinInterval {
		return false
	}
	return t.Minute()%intervalMinutes == 0 && t.Second() == 0
}
