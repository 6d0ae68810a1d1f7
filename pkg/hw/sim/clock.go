package sim

import (
	"sync"
	"time"
)

// Clock is a settable TimeSource. A frozen clock returns exactly the last
// set time; a running clock advances with the host clock from there.
type Clock struct {
	mu      sync.Mutex
	base    time.Time
	setAt   time.Time
	running bool
	host    func() time.Time
}

// NewClock creates a frozen clock at t.
func NewClock(t time.Time) *Clock {
	return &Clock{base: t, host: time.Now}
}

// NewRunningClock creates a clock starting at t that advances in real time.
func NewRunningClock(t time.Time) *Clock {
	c := &Clock{base: t, running: true, host: time.Now}
	c.setAt = c.host()
	return c
}

// Now returns the simulated time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return c.base
	}
	return c.base.Add(c.host().Sub(c.setAt))
}

// Set moves the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = t
	c.setAt = c.host()
}

// SetTimeOfDay keeps the date and moves the clock to hour:minute:second.
func (c *Clock) SetTimeOfDay(hour, minute, second int) {
	now := c.Now()
	c.Set(time.Date(now.Year(), now.Month(), now.Day(), hour, minute, second, 0, now.Location()))
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.Set(c.Now().Add(d))
}
