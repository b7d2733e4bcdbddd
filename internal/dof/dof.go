// Package dof blends the depth-of-field triple (near, focus, far) toward a
// destination over a fixed settle time.
package dof

import "zonefx/internal/vmath"

const (
	// DefaultSettleS is the time a full blend takes.
	DefaultSettleS = 0.2
	// DefaultPickNear and DefaultPickFar offset the ray distance in pick mode.
	DefaultPickNear = -70.0
	DefaultPickFar  = 70.0
)

// RayQuery reports the distance to whatever the viewer is aiming at.
type RayQuery interface {
	Range() float64
}

// RayFunc adapts a plain function to RayQuery.
type RayFunc func() float64

// Range implements RayQuery.
func (f RayFunc) Range() float64 { return f() }

const (
	slotDest = iota
	slotCurrent
	slotFrom
	slotOriginal
)

// Controller holds the four DOF slots: destination, current, blend origin
// and the original base value restored by RestoreEffector.
type Controller struct {
	slots    [4]vmath.Vec3
	pickable bool
	ray      RayQuery

	near, far float64
	settleS   float64
}

// Option configures a Controller.
type Option func(*Controller)

// WithPickRange overrides the near and far offsets used in pick mode.
func WithPickRange(near, far float64) Option {
	return func(c *Controller) {
		c.near = near
		c.far = far
	}
}

// WithSettle overrides the blend time. Non-positive values are ignored.
func WithSettle(seconds float64) Option {
	return func(c *Controller) {
		if seconds > 0 {
			c.settleS = seconds
		}
	}
}

// New creates a controller with every slot set to base.
func New(base vmath.Vec3, ray RayQuery, opts ...Option) *Controller {
	c := &Controller{
		ray:     ray,
		near:    DefaultPickNear,
		far:     DefaultPickFar,
		settleS: DefaultSettleS,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.SetBase(base)
	return c
}

// SetBase sets all four slots to v.
func (c *Controller) SetBase(v vmath.Vec3) {
	c.slots = [4]vmath.Vec3{v, v, v, v}
}

// SetEffector starts a blend toward v from the current value. It is ignored
// in pick mode.
func (c *Controller) SetEffector(v vmath.Vec3) {
	if c.pickable {
		return
	}
	c.slots[slotDest] = v
	c.slots[slotFrom] = c.slots[slotCurrent]
}

// RestoreEffector blends back toward the original base value.
func (c *Controller) RestoreEffector() {
	c.SetEffector(c.slots[slotOriginal])
}

// SetPickable toggles pick mode. Leaving it restores the original value.
func (c *Controller) SetPickable(on bool) {
	c.pickable = on
	if !on {
		c.RestoreEffector()
	}
}

// Pickable reports whether pick mode is on.
func (c *Controller) Pickable() bool { return c.pickable }

// Tick advances the blend by dtS seconds.
func (c *Controller) Tick(dtS float64) {
	if c.pickable && c.ray != nil {
		r := c.ray.Range()
		c.slots[slotDest] = vmath.V3(r+c.near, r, r+c.far)
		c.slots[slotFrom] = c.slots[slotCurrent]
	}

	dest, from := c.slots[slotDest], c.slots[slotFrom]
	if c.slots[slotCurrent].Similar(dest) {
		return
	}

	cur := c.slots[slotCurrent].Add(dest.Sub(from).Scale(dtS / c.settleS))
	for i := 0; i < 3; i++ {
		cur = cur.WithAxis(i, vmath.ClampBetween(cur.Axis(i), from.Axis(i), dest.Axis(i)))
	}
	c.slots[slotCurrent] = cur
}

// Current returns the blended DOF value.
func (c *Controller) Current() vmath.Vec3 { return c.slots[slotCurrent] }

// Destination returns the blend target.
func (c *Controller) Destination() vmath.Vec3 { return c.slots[slotDest] }

// From returns the blend origin.
func (c *Controller) From() vmath.Vec3 { return c.slots[slotFrom] }

// Original returns the base value.
func (c *Controller) Original() vmath.Vec3 { return c.slots[slotOriginal] }
