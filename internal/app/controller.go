package app

import (
	"time"

	"zonefx/internal/clock"
	"zonefx/internal/session"
	"zonefx/internal/vmath"
)

// Command is one viewer input.
type Command int

const (
	CmdTogglePause Command = iota
	CmdResume
	CmdStepOnce
	CmdReset
	CmdReseed
	CmdToggleIndoor
	CmdTogglePickable
	CmdSetEffector
	CmdRestoreEffector
	CmdDisconnect
	CmdSkipIntro
)

// moveSpeed is the listener speed in world units per second.
const moveSpeed = 40.0

// effectorDOF is the near/focus/far applied by CmdSetEffector.
var effectorDOF = vmath.V3(2, 12, 60)

// Controller turns viewer input into session calls and advances the session
// clock once per tick.
type Controller struct {
	session  *session.Session
	clock    *clock.Clock
	seed     int64
	stepOnce bool
	reseed   func() int64
}

// NewController drives s with a clock over src. reseed supplies fresh seeds
// for CmdReseed and may be nil.
func NewController(s *session.Session, src clock.Source, reseed func() int64) *Controller {
	if reseed == nil {
		reseed = func() int64 { return time.Now().UnixNano() }
	}
	return &Controller{session: s, clock: clock.New(src), seed: s.Options().Seed, reseed: reseed}
}

// Session returns the driven session.
func (c *Controller) Session() *session.Session { return c.session }

// Paused reports whether the clock is frozen.
func (c *Controller) Paused() bool { return c.clock.Paused() }

// Handle applies one command.
func (c *Controller) Handle(cmd Command) {
	s := c.session
	switch cmd {
	case CmdTogglePause:
		if c.clock.Paused() {
			c.clock.Resume()
		} else {
			c.clock.Pause()
		}
	case CmdResume:
		c.clock.Resume()
	case CmdStepOnce:
		c.stepOnce = true
	case CmdReset:
		s.Reset(c.seed)
	case CmdReseed:
		c.seed = c.reseed()
		s.Reset(c.seed)
	case CmdToggleIndoor:
		s.SetIndoor(!s.Indoor())
	case CmdTogglePickable:
		s.DOF.SetPickable(!s.DOF.Pickable())
	case CmdSetEffector:
		s.DOF.SetEffector(effectorDOF)
	case CmdRestoreEffector:
		s.DOF.RestoreEffector()
	case CmdDisconnect:
		if s.Connected() {
			s.Disconnect()
		} else {
			s.Reset(c.seed)
		}
	case CmdSkipIntro:
		s.SkipIntro()
	}
}

// Move shifts the listener by the given direction for dt of wall time.
func (c *Controller) Move(dx, dz float64, dt time.Duration) {
	if c.clock.Paused() || (dx == 0 && dz == 0) {
		return
	}
	d := moveSpeed * dt.Seconds()
	c.session.MoveListener(dx*d, dz*d)
}

// Tick advances the clock by dt, or by the source reading when dt is zero,
// and runs one session frame. A pending single step runs one unpaused frame
// even while paused.
func (c *Controller) Tick(dt time.Duration) clock.Frame {
	single := c.stepOnce && c.clock.Paused()
	c.stepOnce = false
	if single {
		c.clock.Resume()
	}
	var f clock.Frame
	if dt > 0 {
		f = c.clock.Step(dt)
	} else {
		f = c.clock.Advance()
	}
	if single {
		c.clock.Pause()
	}
	c.session.Step(f)
	return f
}
