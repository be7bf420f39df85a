// Package timing provides the fixed-step game clock and the timed-effect
// manager that schedules deferred and repeating actions.
package timing

import "time"

// Clock advances game time in fixed steps. It keeps two timelines: Now is
// unscaled game time, Sim is game time multiplied by the current scale
// (slow motion slows Sim but not Now).
type Clock struct {
	step  time.Duration
	now   time.Duration
	sim   time.Duration
	scale float64
	ticks uint64
}

// NewClock creates a clock that advances by step every tick.
func NewClock(step time.Duration) *Clock {
	if step <= 0 {
		step = time.Second / 60
	}
	return &Clock{step: step, scale: 1}
}

// Advance moves both timelines forward one tick and returns the unscaled
// and scaled deltas.
func (c *Clock) Advance() (dt, simDt time.Duration) {
	dt = c.step
	simDt = time.Duration(float64(c.step) * c.scale)
	c.now += dt
	c.sim += simDt
	c.ticks++
	return dt, simDt
}

// SetScale changes the sim time scale. Values outside (0, 1] are ignored.
func (c *Clock) SetScale(s float64) {
	if s <= 0 || s > 1 {
		return
	}
	c.scale = s
}

// ResetScale restores real-time sim speed.
func (c *Clock) ResetScale() { c.scale = 1 }

func (c *Clock) Now() time.Duration  { return c.now }
func (c *Clock) Sim() time.Duration  { return c.sim }
func (c *Clock) Scale() float64      { return c.scale }
func (c *Clock) Ticks() uint64       { return c.ticks }
func (c *Clock) Step() time.Duration { return c.step }
