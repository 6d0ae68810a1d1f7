package feeder

import (
	"errors"
	"fmt"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/hw"
)

// Profile defaults.
const (
	DefaultMaxPosition = 45
	DefaultStepDelay   = 100 * time.Millisecond

	// MaxServoPosition bounds MaxPosition for hobby servos.
	MaxServoPosition = 180
)

var errProfile = errors.New("invalid dispense profile")

// Profile is the dispense motion: a sweep from 0 to MaxPosition in unit steps,
// then back to 0, with StepDelay after every step.
type Profile struct {
	MaxPosition int           `yaml:"max_position"`
	StepDelay   time.Duration `yaml:"step_delay"`
}

// DefaultProfile returns the 0->45->0 profile with 100ms settle time.
func DefaultProfile() Profile {
	return Profile{MaxPosition: DefaultMaxPosition, StepDelay: DefaultStepDelay}
}

// Validate checks the profile bounds.
func (p Profile) Validate() error {
	if p.MaxPosition < 1 || p.MaxPosition > MaxServoPosition {
		return fmt.Errorf("%w: max position %d outside 1..%d", errProfile, p.MaxPosition, MaxServoPosition)
	}
	if p.StepDelay < 0 {
		return fmt.Errorf("%w: negative step delay %v", errProfile, p.StepDelay)
	}
	return nil
}

// Positions returns the commanded positions in order.
func (p Profile) Positions() []int {
	out := make([]int, 0, 2*(p.MaxPosition+1))
	for pos := 0; pos <= p.MaxPosition; pos++ {
		out = append(out, pos)
	}
	for pos := p.MaxPosition; pos >= 0; pos-- {
		out = append(out, pos)
	}
	return out
}

// Duration returns the nominal profile duration.
func (p Profile) Duration() time.Duration {
	return time.Duration(2*(p.MaxPosition+1)) * p.StepDelay
}

// Run drives a through the profile, calling pause after every step.
// It returns the number of moves issued.
func (p Profile) Run(a hw.Actuator, pause func(time.Duration)) int {
	steps := 0
	for _, pos := range p.Positions() {
		a.MoveTo(pos)
		steps++
		pause(p.StepDelay)
	}
	return steps
}
