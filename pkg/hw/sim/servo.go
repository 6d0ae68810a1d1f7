package sim

import "sync"

// Servo records every commanded position.
type Servo struct {
	mu       sync.Mutex
	position int
	moves    []int
	onMove   func(position int)
}

// NewServo creates a servo resting at position 0.
func NewServo() *Servo {
	return &Servo{}
}

// MoveTo records position.
func (s *Servo) MoveTo(position int) {
	s.mu.Lock()
	s.position = position
	s.moves = append(s.moves, position)
	fn := s.onMove
	s.mu.Unlock()

	if fn != nil {
		fn(position)
	}
}

// Position returns the last commanded position.
func (s *Servo) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Moves returns a copy of all commanded positions.
func (s *Servo) Moves() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.moves))
	copy(out, s.moves)
	return out
}

// Reset forgets recorded moves.
func (s *Servo) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moves = nil
}

// OnMove sets a callback invoked after every move.
func (s *Servo) OnMove(fn func(position int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMove = fn
}
