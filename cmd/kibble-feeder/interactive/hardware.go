package interactive

import (
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/feeder"
	"github.com/kibble-feeder/kibble-go/pkg/hw/sim"
)

// Hardware is the simulated peripheral set driven from the console.
type Hardware struct {
	Clock     *sim.Clock
	Reader    *sim.TagReader
	Servo     *sim.Servo
	Increment *sim.Button
	Decrement *sim.Button
	Display   *sim.Display
}

// NewHardware creates simulated peripherals with a clock running from start.
func NewHardware(start time.Time) *Hardware {
	return &Hardware{
		Clock:     sim.NewRunningClock(start),
		Reader:    sim.NewTagReader(),
		Servo:     sim.NewServo(),
		Increment: sim.NewButton(),
		Decrement: sim.NewButton(),
		Display:   sim.NewDisplay(nil),
	}
}

// Peripherals returns the hardware as controller peripherals.
func (h *Hardware) Peripherals() feeder.Peripherals {
	return feeder.Peripherals{
		Clock:     h.Clock,
		Reader:    h.Reader,
		Actuator:  h.Servo,
		Increment: h.Increment,
		Decrement: h.Decrement,
		Display:   h.Display,
	}
}
