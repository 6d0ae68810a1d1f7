package feeder

import (
	"sync"
	"testing"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/hw/sim"
	"github.com/kibble-feeder/kibble-go/pkg/journal"
	"github.com/kibble-feeder/kibble-go/pkg/whitelist"
)

var (
	knownUID   = whitelist.UID{0xAA, 0xBB, 0xCC, 0xDD}
	unknownUID = whitelist.UID{0x01, 0x02, 0x03, 0x04}
)

// rig wires a controller to simulated peripherals.
type rig struct {
	clock   *sim.Clock
	reader  *sim.TagReader
	servo   *sim.Servo
	inc     *sim.Button
	dec     *sim.Button
	display *sim.Display

	mu     sync.Mutex
	events []journal.Event
}

func (r *rig) peripherals() Peripherals {
	return Peripherals{
		Clock:     r.clock,
		Reader:    r.reader,
		Actuator:  r.servo,
		Increment: r.inc,
		Decrement: r.dec,
		Display:   r.display,
	}
}

func (r *rig) Log(e journal.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *rig) eventsOf(c journal.Category) []journal.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []journal.Event
	for _, e := range r.events {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

func clockAt(minute, second int) time.Time {
	return time.Date(2026, 6, 1, 9, minute, second, 0, time.UTC)
}

func testConfig(r *rig) Config {
	cfg := DefaultConfig()
	cfg.Pause = func(time.Duration) {}
	cfg.Journal = r
	cfg.RunID = "test-run"
	return cfg
}

func newRig(t *testing.T, uids ...whitelist.UID) (*Controller, *rig) {
	t.Helper()
	return newRigWithConfig(t, nil, uids...)
}

func newRigWithConfig(t *testing.T, mutate func(*Config), uids ...whitelist.UID) (*Controller, *rig) {
	t.Helper()

	r := &rig{
		clock:   sim.NewClock(clockAt(3, 17)),
		reader:  sim.NewTagReader(),
		servo:   sim.NewServo(),
		inc:     sim.NewButton(),
		dec:     sim.NewButton(),
		display: sim.NewDisplay(nil),
	}

	store, err := whitelist.NewMemoryStore(uids...)
	if err != nil {
		t.Fatalf("NewMemoryStore failed: %v", err)
	}

	cfg := testConfig(r)
	if mutate != nil {
		mutate(&cfg)
	}

	c, err := New(cfg, r.peripherals(), whitelist.Load(store))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c, r
}
