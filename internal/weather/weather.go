// Package weather drives ambient sound channels and transient wind gusts from
// the active environment descriptor, once per unpaused frame.
package weather

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"zonefx/internal/clock"
	"zonefx/internal/env"
	"zonefx/internal/vmath"
)

// ErrCorruptEnvironment marks environment data the scheduler cannot run on.
var ErrCorruptEnvironment = errors.New("corrupt environment")

// IndoorLuminosity is the hemisphere luminosity below which the listener counts as indoors.
const IndoorLuminosity = 0.05

// Random is the seedable source used for every pick.
type Random = env.Random

// Audio plays spatial sounds. PlayAt must return immediately.
type Audio interface {
	PlayAt(asset string, pos vmath.Vec3) (time.Duration, error)
	StopAll()
}

// Instance is one live particle system.
type Instance interface {
	PlayAt(pos vmath.Vec3)
	Stop()
	IsPlaying() bool
	Destroy()
}

// Particles creates particle instances by asset name.
type Particles interface {
	Create(asset string) (Instance, error)
}

// Listener is what the weather needs to know about the viewed entity.
type Listener struct {
	Position   vmath.Vec3
	Luminosity float64
	HasEntity  bool
}

// Indoor reports whether gusts must be suppressed. Without an entity the
// listener is treated as indoors.
func (l Listener) Indoor() bool {
	return !l.HasEntity || l.Luminosity < IndoorLuminosity
}

// Wind is the shared ambient-wind state read by renderers. Only the gust
// machine writes it.
type Wind struct {
	StrengthFactor float64
	Direction      vmath.Vec3
	GustFactor     float64

	BlastStart    vmath.Vec3
	BlastStop     vmath.Vec3
	StrengthStart float64
	StrengthStop  float64
}

// Vector returns the wind direction scaled by its strength.
func (w *Wind) Vector() vmath.Vec3 {
	return w.Direction.Scale(w.StrengthFactor)
}

// Report summarises what one Update did.
type Report struct {
	Descriptor  *env.Descriptor
	Sounds      []SoundEvent
	GustStarted *env.Effect
	Phase       Phase
}

// Weather owns the sound scheduler, the gust machine and the wind they share.
type Weather struct {
	Sounds *SoundScheduler
	Gust   *Gust
	Wind   Wind

	log *slog.Logger
}

// New wires a Weather to its collaborators. A nil logger uses slog.Default.
func New(audio Audio, particles Particles, logger *slog.Logger) *Weather {
	if logger == nil {
		logger = slog.Default()
	}
	return &Weather{
		Sounds: NewSoundScheduler(audio, logger),
		Gust:   NewGust(particles, audio, logger),
		log:    logger,
	}
}

// Reset clears all scheduling state for a new session.
func (w *Weather) Reset() {
	w.Sounds.Reset()
	w.Gust.Reset()
	w.Wind = Wind{}
}

// Shutdown destroys the active particle instance, if any.
func (w *Weather) Shutdown() {
	w.Gust.Reset()
}

// Update runs one frame: pick a descriptor, tick the sound channels, maybe
// start a gust, then advance the gust ramps.
func (w *Weather) Update(f clock.Frame, listener Listener, provider env.Provider, rnd Random) Report {
	desc := env.Select(provider, rnd)
	if desc == nil {
		panic(fmt.Errorf("%w: provider returned a nil descriptor", ErrCorruptEnvironment))
	}

	report := Report{Descriptor: desc}
	indoor := listener.Indoor()
	if amb := desc.Ambient; amb != nil {
		report.Sounds = w.Sounds.Tick(f.NowMS, listener.Position, amb.Channels, rnd)
		report.GustStarted = w.Gust.Trigger(f.NowMS, f.NowS, indoor, listener.Position, amb, &w.Wind, rnd)
	}
	w.Gust.Advance(f.NowMS, f.NowS, indoor, &w.Wind)
	report.Phase = w.Gust.Phase()
	return report
}
