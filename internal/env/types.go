// Package env describes the environment descriptors that feed the ambient
// scheduler: sound channels, gust effect pools and the blended descriptor
// pair chosen from every frame.
package env

import (
	"math"

	"zonefx/internal/config"
	"zonefx/internal/vmath"
)

// Random is the seedable source every random pick goes through.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// Range is a closed [Min, Max] interval sampled uniformly.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Pick returns a uniform sample from the range.
func (r Range) Pick(rnd Random) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rnd.Float64()*(r.Max-r.Min)
}

// DurationRange is a closed interval of durations sampled uniformly.
type DurationRange struct {
	Min config.Duration `yaml:"min"`
	Max config.Duration `yaml:"max"`
}

// PickMS returns a uniform sample in milliseconds.
func (r DurationRange) PickMS(rnd Random) uint32 {
	lo := float64(r.Min.Milliseconds())
	hi := float64(r.Max.Milliseconds())
	v := Range{Min: lo, Max: hi}.Pick(rnd)
	if v < 0 {
		return 0
	}
	return uint32(math.Floor(v))
}

// Vector is a YAML-friendly [x, y, z] triple.
type Vector [3]float64

// Vec3 converts to the math type.
func (v Vector) Vec3() vmath.Vec3 { return vmath.V3(v[0], v[1], v[2]) }

// Channel is one category of looping ambient sound with its own retrigger timing.
type Channel struct {
	Name           string        `yaml:"name"`
	Sounds         []string      `yaml:"sounds"`
	FirstDelay     DurationRange `yaml:"first_delay"`
	RetriggerDelay DurationRange `yaml:"retrigger_delay"`
	Radius         Range         `yaml:"radius"`
}

// FirstDelayMS samples the delay before the channel's first sound.
func (c *Channel) FirstDelayMS(rnd Random) uint32 { return c.FirstDelay.PickMS(rnd) }

// RetriggerDelayMS samples the pause appended after each finished sound.
func (c *Channel) RetriggerDelayMS(rnd Random) uint32 { return c.RetriggerDelay.PickMS(rnd) }

// PickRadius samples the horizontal distance from the listener.
func (c *Channel) PickRadius(rnd Random) float64 { return c.Radius.Pick(rnd) }

// PickSound returns a random asset from the pool, or "" for an empty pool.
func (c *Channel) PickSound(rnd Random) string {
	if len(c.Sounds) == 0 {
		return ""
	}
	return c.Sounds[rnd.IntN(len(c.Sounds))]
}

// Effect defines one transient gust: wind blast, particle system and an
// optional one-shot sound.
type Effect struct {
	Name       string          `yaml:"name"`
	LifeTime   config.Duration `yaml:"life_time"`
	RampIn     config.Duration `yaml:"ramp_in"`
	RampOut    config.Duration `yaml:"ramp_out"`
	Strength   float64         `yaml:"wind_blast_strength"`
	Direction  Vector          `yaml:"wind_blast_direction"`
	GustFactor float64         `yaml:"wind_gust_factor"`
	Particles  string          `yaml:"particles"`
	Sound      string          `yaml:"sound"`
	Offset     Vector          `yaml:"offset"`
}

// LifeTimeMS returns the effect lifetime in milliseconds.
func (e *Effect) LifeTimeMS() uint32 { return uint32(e.LifeTime.Milliseconds()) }

// RampInS returns the ramp-in duration in seconds.
func (e *Effect) RampInS() float64 { return e.RampIn.Seconds() }

// RampOutS returns the ramp-out duration in seconds.
func (e *Effect) RampOutS() float64 { return e.RampOut.Seconds() }

// BlastDirection returns the normalized wind blast direction.
func (e *Effect) BlastDirection() vmath.Vec3 { return e.Direction.Vec3().Normalize() }

// OffsetVec returns the spawn offset relative to the listener.
func (e *Effect) OffsetVec() vmath.Vec3 { return e.Offset.Vec3() }

// Ambient groups the sound channels and gust effects of one environment.
type Ambient struct {
	Name         string        `yaml:"name"`
	EffectPeriod DurationRange `yaml:"effect_period"`
	Channels     []*Channel    `yaml:"channels"`
	Effects      []*Effect     `yaml:"effects"`
}

// RandomEffect returns a random effect from the pool, or nil when it is empty.
func (a *Ambient) RandomEffect(rnd Random) *Effect {
	if len(a.Effects) == 0 {
		return nil
	}
	return a.Effects[rnd.IntN(len(a.Effects))]
}

// EffectPeriodMS samples the pause before the next gust may start.
func (a *Ambient) EffectPeriodMS(rnd Random) uint32 { return a.EffectPeriod.PickMS(rnd) }

// Descriptor is one environment state; it may carry no ambient at all.
type Descriptor struct {
	Name        string   `yaml:"name"`
	AmbientName string   `yaml:"ambient"`
	Ambient     *Ambient `yaml:"-"`
}
