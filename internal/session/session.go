// Package session ties the ambient scheduler together for one game session:
// it owns the weather and DOF state, feeds them the frame clock and exposes
// the result to the viewer and the trace tool.
package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"zonefx/internal/audio"
	"zonefx/internal/clock"
	"zonefx/internal/core"
	"zonefx/internal/dof"
	"zonefx/internal/env"
	"zonefx/internal/particles"
	"zonefx/internal/vmath"
	"zonefx/internal/weather"
	pcore "zonefx/pkg/core"
)

// Blend pins the provider to two named descriptors instead of cycling.
type Blend struct {
	Primary   string
	Secondary string
	Weight    float64
}

// Options configures a Session.
type Options struct {
	Seed        int64
	GameType    GameType
	BaseDOF     vmath.Vec3
	PickNear    float64
	PickFar     float64
	DOFSettle   time.Duration
	Luminosity  float64
	AimRange    float64
	View        core.Size
	ViewRadius  float64
	Intro       IntroOptions
	IntroLength time.Duration
	Blend       *Blend
}

// DefaultOptions returns the settings used by the viewer.
func DefaultOptions() Options {
	return Options{
		Seed:        1337,
		GameType:    GameSingle,
		BaseDOF:     vmath.V3(0, 0, 500),
		PickNear:    dof.DefaultPickNear,
		PickFar:     dof.DefaultPickFar,
		DOFSettle:   200 * time.Millisecond,
		Luminosity:  1,
		AimRange:    100,
		View:        core.Size{W: 160, H: 120},
		ViewRadius:  100,
		IntroLength: 3 * time.Second,
		Intro:       IntroOptions{AllowIntro: true, AllowGameIntro: true, NewGame: true},
	}
}

// Deps are the collaborators a Session drives. Nil fields get headless
// defaults built from the catalog.
type Deps struct {
	Audio     weather.Audio
	Particles weather.Particles
	Ray       dof.RayQuery
	Sequencer Sequencer
	Logger    *slog.Logger
}

// Stats counts what the session has produced since the last reset.
type Stats struct {
	Frames       uint64
	Sounds       int
	Gusts        int
	SkippedPause uint64
}

type listenerSetter interface {
	SetListener(pos vmath.Vec3)
}

// Session is the per-game context: nothing in the scheduler lives in
// package-level state.
type Session struct {
	ID      uuid.UUID
	Weather *weather.Weather
	DOF     *dof.Controller
	Intro   *Intro

	seq       Sequencer
	opts      Options
	catalog   *env.Catalog
	provider  env.Provider
	cycle     *env.Cycle
	fixed     *env.Fixed
	audio     weather.Audio
	particles weather.Particles
	pool      *particles.Pool
	rng       *pcore.RNG
	log       *slog.Logger

	listener  weather.Listener
	indoor    bool
	frame     clock.Frame
	last      weather.Report
	pings     []ping
	stats     Stats
	grid      *core.ByteGrid
	connected bool
}

// New builds a session over a resolved catalog and starts it with opts.Seed.
func New(catalog *env.Catalog, opts Options, deps Deps) (*Session, error) {
	if catalog == nil {
		return nil, fmt.Errorf("session: nil catalog")
	}
	if opts.View.W <= 0 || opts.View.H <= 0 {
		opts.View = DefaultOptions().View
	}
	if opts.ViewRadius <= 0 {
		opts.ViewRadius = DefaultOptions().ViewRadius
	}

	s := &Session{
		opts:    opts,
		catalog: catalog,
		rng:     pcore.NewRNG(opts.Seed),
		log:     deps.Logger,
		grid:    core.NewByteGrid(opts.View.W, opts.View.H),
		listener: weather.Listener{
			Luminosity: opts.Luminosity,
			HasEntity:  true,
		},
	}
	if s.log == nil {
		s.log = slog.Default()
	}

	if err := s.buildProvider(); err != nil {
		return nil, err
	}

	s.particles = deps.Particles
	if s.particles == nil {
		s.pool = particles.NewPool(catalog.ParticleDurations(), s.nowS)
		s.particles = s.pool
	}
	s.audio = deps.Audio
	if s.audio == nil {
		s.audio = audio.NewSilent(catalog.SoundLengths(), 0)
	}

	ray := deps.Ray
	if ray == nil {
		ray = dof.RayFunc(func() float64 { return s.opts.AimRange })
	}
	s.DOF = dof.New(opts.BaseDOF, ray,
		dof.WithPickRange(opts.PickNear, opts.PickFar),
		dof.WithSettle(opts.DOFSettle.Seconds()))

	s.Weather = weather.New(s.audio, s.particles, s.log)

	seq := deps.Sequencer
	if seq == nil {
		l := opts.IntroLength.Seconds()
		seq = NewTimedSequencer(s.nowS, map[string]float64{
			SequenceLogo:       l,
			SequenceGameLoaded: l,
			SequenceGame:       l,
		})
	}
	s.seq = seq
	s.Intro = NewIntro(seq, opts.Intro, opts.GameType, s.log)

	s.Reset(opts.Seed)
	return s, nil
}

func (s *Session) buildProvider() error {
	b := s.opts.Blend
	if b == nil {
		s.cycle = s.catalog.Cycle()
		s.provider = s.cycle
		return nil
	}
	primary, ok := s.catalog.Descriptor(b.Primary)
	if !ok {
		return fmt.Errorf("session: unknown descriptor %q", b.Primary)
	}
	secondary := primary
	if b.Secondary != "" {
		secondary, ok = s.catalog.Descriptor(b.Secondary)
		if !ok {
			return fmt.Errorf("session: unknown descriptor %q", b.Secondary)
		}
	}
	s.fixed = env.NewFixed(primary, secondary, b.Weight)
	s.provider = s.fixed
	return nil
}

func (s *Session) nowS() float64 { return s.frame.NowS }

// Name identifies the session in window titles.
func (s *Session) Name() string { return "zonefx " + s.catalog.Name }

// Size returns the display grid dimensions.
func (s *Session) Size() core.Size { return s.opts.View }

// Cells returns the palette-indexed display grid.
func (s *Session) Cells() []uint8 { return s.grid.Cells() }

// Reset starts a fresh session: new id, reseeded random source, cleared
// scheduling state and the DOF back at its base value.
func (s *Session) Reset(seed int64) {
	s.ID = uuid.New()
	s.opts.Seed = seed
	s.rng.Reseed(seed)
	s.Weather.Reset()
	s.audio.StopAll()
	if s.pool != nil {
		s.pool.Clear()
	}
	s.DOF.SetBase(s.opts.BaseDOF)
	s.frame = clock.Frame{}
	s.last = weather.Report{}
	s.pings = s.pings[:0]
	s.stats = Stats{}
	s.connected = true
	s.Intro.Begin()
	s.paint()
	s.log.Info("session started", "session", s.ID.String(), "seed", seed,
		"catalog", s.catalog.Name, "game_type", s.opts.GameType.Name(true))
}

// Disconnect tears down live effects: the gust particles are destroyed and
// every audio emitter is stopped. Frames are ignored until the next Reset.
func (s *Session) Disconnect() {
	if !s.connected {
		return
	}
	s.Weather.Shutdown()
	s.audio.StopAll()
	s.connected = false
	s.log.Info("session disconnected", "session", s.ID.String(), "frames", s.stats.Frames)
}

// Connected reports whether frames are being processed.
func (s *Session) Connected() bool { return s.connected }

// Step runs one frame: the intro is polled every frame, while weather and DOF
// only run on unpaused frames of a connected session.
func (s *Session) Step(f clock.Frame) {
	s.Intro.Poll()
	if !s.connected {
		return
	}
	if f.Paused {
		s.stats.SkippedPause++
		s.frame.Paused = true
		return
	}
	s.OnFrame(f)
}

// OnFrame updates weather then DOF for an unpaused frame.
func (s *Session) OnFrame(f clock.Frame) weather.Report {
	s.frame = f
	s.stats.Frames++
	if s.cycle != nil {
		s.cycle.Update(f.NowS)
	}
	if ls, ok := s.audio.(listenerSetter); ok {
		ls.SetListener(s.listener.Position)
	}

	r := s.Weather.Update(f, s.listener, s.provider, s.rng)
	s.DOF.Tick(f.DeltaS)

	s.last = r
	s.stats.Sounds += len(r.Sounds)
	if r.GustStarted != nil {
		s.stats.Gusts++
	}
	s.recordPings(r.Sounds, f.NowS)
	s.paint()
	return r
}

// SkipIntro ends the running intro sequence when the sequencer supports it.
// The next frame moves on to the following step.
func (s *Session) SkipIntro() {
	if sk, ok := s.seq.(interface{ Skip() }); ok {
		sk.Skip()
	}
}

// Frame returns the last processed frame.
func (s *Session) Frame() clock.Frame { return s.frame }

// LastReport returns what the last frame did. Its Sounds slice is only valid
// until the next frame.
func (s *Session) LastReport() weather.Report { return s.last }

// Stats returns counters since the last reset.
func (s *Session) Stats() Stats { return s.stats }

// Catalog returns the catalog the session runs on.
func (s *Session) Catalog() *env.Catalog { return s.catalog }

// Options returns the current settings.
func (s *Session) Options() Options { return s.opts }

// Particles returns the live particle snapshots when the session owns the pool.
func (s *Session) Particles() []particles.Snapshot {
	if s.pool == nil {
		return nil
	}
	return s.pool.Instances()
}

// Listener returns the listener state fed to the weather.
func (s *Session) Listener() weather.Listener { return s.listener }

// SetListenerPosition moves the listener.
func (s *Session) SetListenerPosition(pos vmath.Vec3) { s.listener.Position = pos }

// MoveListener shifts the listener on the horizontal plane.
func (s *Session) MoveListener(dx, dz float64) {
	s.listener.Position = s.listener.Position.Add(vmath.V3(dx, 0, dz))
}

// SetIndoor drops the hemisphere luminosity to zero, or restores it.
func (s *Session) SetIndoor(indoor bool) {
	s.indoor = indoor
	if indoor {
		s.listener.Luminosity = 0
		return
	}
	s.listener.Luminosity = s.opts.Luminosity
}

// Indoor reports whether the listener was forced indoors.
func (s *Session) Indoor() bool { return s.indoor }

// SetHasEntity attaches or detaches the viewed entity.
func (s *Session) SetHasEntity(ok bool) { s.listener.HasEntity = ok }

// BlendWeight returns the provider weight toward the second descriptor.
func (s *Session) BlendWeight() float64 {
	_, w := s.provider.Current()
	return w
}

// SetBlendWeight changes the weight of a fixed blend. It reports false when
// the session cycles through the catalog.
func (s *Session) SetBlendWeight(w float64) bool {
	if s.fixed == nil {
		return false
	}
	s.fixed.SetWeight(w)
	return true
}

// Descriptors returns the names of the active descriptor pair.
func (s *Session) Descriptors() (string, string) {
	pair, _ := s.provider.Current()
	return descriptorName(pair[0]), descriptorName(pair[1])
}

func descriptorName(d *env.Descriptor) string {
	if d == nil {
		return "-"
	}
	return d.Name
}
