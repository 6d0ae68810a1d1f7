package feeder

import (
	"testing"
	"time"

	"github.com/kibble-feeder/kibble-go/pkg/journal"
)

func TestClockMonitorOpensWindowAtBoundary(t *testing.T) {
	// Scenario A: interval 5, clock reaches 10:00.
	c, r := newRig(t)
	c.State().MarkFed(clockAt(9, 30))

	r.clock.Set(clockAt(10, 0))
	if !c.clockMonitor.Step() {
		t.Fatal("Step() = false at boundary, want true")
	}
	if c.State().AlreadyFed() {
		t.Error("AlreadyFed() = true after boundary, want false")
	}

	windows := r.eventsOf(journal.CategoryWindow)
	if len(windows) != 1 {
		t.Fatalf("window events = %d, want 1", len(windows))
	}
	if !windows[0].Window.WasFed || windows[0].Window.IntervalMinutes != 5 {
		t.Errorf("window event = %+v", windows[0].Window)
	}
	if windows[0].RunID != "test-run" || !windows[0].Timestamp.Equal(clockAt(10, 0)) {
		t.Errorf("event stamp = %s %v", windows[0].RunID, windows[0].Timestamp)
	}
}

func TestClockMonitorIgnoresNonBoundaries(t *testing.T) {
	c, r := newRig(t)
	c.State().MarkFed(clockAt(0, 30))

	for _, ts := range []time.Time{clockAt(10, 1), clockAt(11, 0), clockAt(14, 59), clockAt(9, 0)} {
		r.clock.Set(ts)
		if c.clockMonitor.Step() {
			t.Errorf("Step() at %s = true, want false", ts.Format("04:05"))
		}
	}
	if !c.State().AlreadyFed() {
		t.Error("fed flag cleared outside a boundary")
	}
}

func TestClockMonitorHandlesBoundaryOnce(t *testing.T) {
	c, r := newRig(t)
	r.clock.Set(clockAt(15, 0))

	if !c.clockMonitor.Step() {
		t.Fatal("first poll in boundary second did not open a window")
	}

	// A dispense completing inside the same second must survive later polls.
	c.State().MarkFed(clockAt(15, 0))
	r.clock.Set(clockAt(15, 0).Add(500 * time.Millisecond))
	for i := 0; i < 9; i++ {
		if c.clockMonitor.Step() {
			t.Fatalf("poll %d re-opened the window", i)
		}
	}
	if !c.State().AlreadyFed() {
		t.Error("fed flag lost within the boundary second")
	}

	r.clock.Set(clockAt(20, 0))
	if !c.clockMonitor.Step() {
		t.Error("next boundary not detected")
	}
	if got := c.Stats().Boundaries; got != 2 {
		t.Errorf("Stats().Boundaries = %d, want 2", got)
	}
}

func TestClockMonitorFollowsIntervalChanges(t *testing.T) {
	c, r := newRig(t)
	if err := c.State().SetInterval(7); err != nil {
		t.Fatalf("SetInterval failed: %v", err)
	}

	r.clock.Set(clockAt(10, 0))
	if c.clockMonitor.Step() {
		t.Error("10:00 is not a boundary for a 7 minute interval")
	}
	r.clock.Set(clockAt(14, 0))
	if !c.clockMonitor.Step() {
		t.Error("14:00 is a boundary for a 7 minute interval")
	}
}

func TestFedStaysClearedUntilDispense(t *testing.T) {
	c, r := newRig(t, knownUID)
	r.clock.Set(clockAt(5, 0))
	c.clockMonitor.Step()

	for s := 1; s < 60; s += 7 {
		r.clock.Set(clockAt(5, s))
		c.clockMonitor.Step()
		if c.State().AlreadyFed() {
			t.Fatalf("fed flag set at 05:%02d without a dispense", s)
		}
	}

	r.reader.Present(knownUID)
	if got := c.dispenser.Step(); got != OutcomeDispensed {
		t.Fatalf("Step() = %s, want DISPENSED", got)
	}
	if !c.State().AlreadyFed() {
		t.Error("fed flag not set after dispense")
	}
}
