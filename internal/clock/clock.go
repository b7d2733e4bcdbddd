// Package clock provides the paused-aware frame clock consumed by the
// scheduler: a global millisecond counter, a float seconds counter and the
// per-frame delta.
package clock

import (
	"sync"
	"time"
)

// Source supplies wall-clock readings.
type Source interface {
	Now() time.Time
}

// SystemSource reads the monotonic system clock.
type SystemSource struct{}

// Now returns the current time with monotonic clock reading.
func (SystemSource) Now() time.Time { return time.Now() }

// Frame is the timing snapshot handed to every per-frame update.
type Frame struct {
	Number uint64
	NowMS  uint32
	NowS   float64
	DeltaS float64
	Paused bool
}

// Clock accumulates game time only while unpaused, so NowMS and NowS freeze
// during a pause and resume without a jump.
type Clock struct {
	src     Source
	last    time.Time
	elapsed time.Duration
	paused  bool
	frame   Frame
}

// New creates a clock reading from src. A nil src uses the system clock.
func New(src Source) *Clock {
	if src == nil {
		src = SystemSource{}
	}
	return &Clock{src: src}
}

// Advance samples the source and returns the next frame.
func (c *Clock) Advance() Frame {
	now := c.src.Now()
	if c.last.IsZero() {
		c.last = now
	}
	delta := now.Sub(c.last)
	c.last = now
	if delta < 0 {
		delta = 0
	}
	return c.advanceBy(delta)
}

// Step advances game time by a fixed delta without consulting the source.
// Headless runners and tests drive the clock this way.
func (c *Clock) Step(dt time.Duration) Frame {
	if dt < 0 {
		dt = 0
	}
	return c.advanceBy(dt)
}

func (c *Clock) advanceBy(delta time.Duration) Frame {
	c.frame.Number++
	if c.paused {
		c.frame.DeltaS = 0
		c.frame.Paused = true
		return c.frame
	}
	c.elapsed += delta
	c.frame.NowMS = uint32(c.elapsed.Milliseconds())
	c.frame.NowS = c.elapsed.Seconds()
	c.frame.DeltaS = delta.Seconds()
	c.frame.Paused = false
	return c.frame
}

// Pause stops game time advancement.
func (c *Clock) Pause() { c.paused = true }

// Resume continues game time advancement.
func (c *Clock) Resume() { c.paused = false }

// Paused reports the current pause state.
func (c *Clock) Paused() bool { return c.paused }

// Elapsed returns accumulated unpaused game time.
func (c *Clock) Elapsed() time.Duration { return c.elapsed }

// Current returns the most recent frame without advancing.
func (c *Clock) Current() Frame { return c.frame }

// ManualSource provides a controllable time source for testing.
type ManualSource struct {
	mu  sync.RWMutex
	now time.Time
}

// NewManualSource creates a manual source starting at start.
func NewManualSource(start time.Time) *ManualSource {
	return &ManualSource{now: start}
}

// Now returns the current mocked time.
func (m *ManualSource) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the mocked time forward by d.
func (m *ManualSource) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
