package weather

import (
	"log/slog"

	"zonefx/internal/env"
	"zonefx/internal/vmath"
)

// Phase is the externally visible state of the gust machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRampIn
	PhaseSteady
	PhaseRampOut
)

func (p Phase) String() string {
	switch p {
	case PhaseRampIn:
		return "ramp-in"
	case PhaseSteady:
		return "steady"
	case PhaseRampOut:
		return "ramp-out"
	default:
		return "idle"
	}
}

// Gust runs at most one transient wind/particle effect at a time.
type Gust struct {
	particles Particles
	audio     Audio
	log       *slog.Logger

	nextTriggerMS uint32
	stopMS        uint32

	windStartS      float64
	windRampInEndS  float64
	lifeEndS        float64
	windRampOutEndS float64
	windActive      bool

	instance Instance
	effect   *env.Effect
	nowS     float64
}

// NewGust returns an idle gust machine.
func NewGust(particles Particles, audio Audio, logger *slog.Logger) *Gust {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gust{particles: particles, audio: audio, log: logger}
}

// Reset destroys any live instance and returns to a fresh idle state.
func (g *Gust) Reset() {
	if g.instance != nil {
		g.instance.Destroy()
	}
	*g = Gust{particles: g.particles, audio: g.audio, log: g.log}
}

// Trigger starts a new gust when the listener is outdoors, no instance is
// alive and the trigger time has passed. It returns the started effect.
func (g *Gust) Trigger(nowMS uint32, nowS float64, indoor bool, listener vmath.Vec3, amb *env.Ambient, wind *Wind, rnd Random) *env.Effect {
	if indoor || g.instance != nil || nowMS <= g.nextTriggerMS {
		return nil
	}
	eff := amb.RandomEffect(rnd)
	if eff == nil {
		return nil
	}

	g.nextTriggerMS = nowMS + amb.EffectPeriodMS(rnd)

	inst, err := g.particles.Create(eff.Particles)
	if err != nil {
		g.log.Warn("gust particles unavailable", "effect", eff.Name, "asset", eff.Particles, "error", err)
		return nil
	}

	wind.GustFactor = eff.GustFactor
	g.stopMS = nowMS + eff.LifeTimeMS()
	g.windStartS = nowS
	g.windRampInEndS = nowS + eff.RampInS()
	g.lifeEndS = nowS + float64(eff.LifeTimeMS())/1000
	g.windRampOutEndS = g.lifeEndS + eff.RampOutS()
	g.windActive = true
	g.effect = eff
	g.instance = inst

	pos := listener.Add(eff.OffsetVec())
	inst.PlayAt(pos)
	if eff.Sound != "" {
		if _, err := g.audio.PlayAt(eff.Sound, pos); err != nil {
			g.log.Warn("gust sound unavailable", "effect", eff.Name, "asset", eff.Sound, "error", err)
		}
	}

	wind.StrengthStart = wind.StrengthFactor
	wind.StrengthStop = eff.Strength
	if wind.StrengthStart == 0 {
		wind.BlastStart = eff.BlastDirection()
	} else {
		wind.BlastStart = wind.Direction
	}
	wind.BlastStop = eff.BlastDirection()

	g.log.Debug("gust started", "effect", eff.Name, "life_end_s", g.lifeEndS, "next_ms", g.nextTriggerMS)
	return eff
}

// Advance moves the ramps forward and applies the stop and cleanup rules.
func (g *Gust) Advance(nowMS uint32, nowS float64, indoor bool, wind *Wind) {
	g.nowS = nowS

	if g.windActive && nowS >= g.windStartS && nowS <= g.windRampInEndS {
		t := vmath.WindowFraction(nowS, g.windStartS, g.windRampInEndS)
		wind.Direction = vmath.Slerp(wind.BlastStart, wind.BlastStop, t)
		wind.StrengthFactor = vmath.Lerp(wind.StrengthStart, wind.StrengthStop, t)
	}

	if indoor || nowMS >= g.stopMS {
		if g.instance != nil {
			g.instance.Stop()
		}
		wind.GustFactor = 0
	}

	if g.windActive && nowS >= g.lifeEndS {
		wind.StrengthStart = wind.StrengthFactor
		wind.StrengthStop = 0
		g.windActive = false
	}

	if nowS >= g.lifeEndS && nowS <= g.windRampOutEndS {
		t := vmath.WindowFraction(nowS, g.lifeEndS, g.windRampOutEndS)
		wind.StrengthFactor = vmath.Lerp(wind.StrengthStart, wind.StrengthStop, t)
	}
	if nowS > g.windRampOutEndS && g.windRampOutEndS != 0 {
		wind.StrengthFactor = 0
	}

	if g.instance != nil && !g.instance.IsPlaying() {
		g.instance.Destroy()
		g.instance = nil
		g.effect = nil
	}
}

// Phase reports where the machine stands as of the last Advance.
func (g *Gust) Phase() Phase {
	switch {
	case g.windActive && g.nowS <= g.windRampInEndS:
		return PhaseRampIn
	case g.windActive:
		return PhaseSteady
	case g.instance != nil, g.windRampOutEndS != 0 && g.nowS <= g.windRampOutEndS:
		return PhaseRampOut
	default:
		return PhaseIdle
	}
}

// Active reports whether a particle instance is alive.
func (g *Gust) Active() bool { return g.instance != nil }

// Effect returns the effect of the live instance, or nil.
func (g *Gust) Effect() *env.Effect { return g.effect }

// NextTriggerMS returns the earliest time the next gust may start.
func (g *Gust) NextTriggerMS() uint32 { return g.nextTriggerMS }

// StopMS returns the time the live gust is forced to stop.
func (g *Gust) StopMS() uint32 { return g.stopMS }

// Windows returns the ramp-in start and end, the life end and the ramp-out end, in seconds.
func (g *Gust) Windows() (start, rampInEnd, lifeEnd, rampOutEnd float64) {
	return g.windStartS, g.windRampInEndS, g.lifeEndS, g.windRampOutEndS
}

// RampFraction returns the interpolation fraction of the current ramp window
// at time nowS, or 0 when no ramp is running.
func (g *Gust) RampFraction(nowS float64) float64 {
	switch {
	case g.windActive && nowS >= g.windStartS && nowS <= g.windRampInEndS:
		return vmath.WindowFraction(nowS, g.windStartS, g.windRampInEndS)
	case nowS >= g.lifeEndS && nowS <= g.windRampOutEndS:
		return vmath.WindowFraction(nowS, g.lifeEndS, g.windRampOutEndS)
	default:
		return 0
	}
}
