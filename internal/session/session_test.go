package session

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"zonefx/internal/clock"
	"zonefx/internal/config"
	"zonefx/internal/env"
	"zonefx/internal/vmath"
)

func ms(v int) config.Duration { return config.Duration(time.Duration(v) * time.Millisecond) }

func fixed(v int) env.DurationRange { return env.DurationRange{Min: ms(v), Max: ms(v)} }

func testCatalog(t *testing.T) *env.Catalog {
	t.Helper()
	c := &env.Catalog{
		Name: "test",
		Ambients: []*env.Ambient{{
			Name:         "forest",
			EffectPeriod: fixed(3000),
			Channels: []*env.Channel{{
				Name:           "birds",
				Sounds:         []string{"birds_1"},
				FirstDelay:     fixed(200),
				RetriggerDelay: fixed(500),
				Radius:         env.Range{Min: 20, Max: 20},
			}},
			Effects: []*env.Effect{{
				Name:       "gust",
				LifeTime:   ms(2000),
				RampIn:     ms(500),
				RampOut:    ms(500),
				Strength:   0.6,
				Direction:  env.Vector{1, 0, 0},
				GustFactor: 0.5,
				Particles:  "leaves",
			}},
		}},
		Descriptors: []*env.Descriptor{
			{Name: "clear", AmbientName: "forest"},
			{Name: "calm"},
		},
		Particles: []env.ParticleAsset{{Name: "leaves", Duration: ms(1500)}},
		Sounds:    []env.SoundAsset{{Name: "birds_1", Length: ms(1000)}},
	}
	if err := c.Resolve(); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	return c
}

func testOptions() Options {
	o := DefaultOptions()
	o.Intro = IntroOptions{}
	return o
}

func quietDeps() Deps {
	return Deps{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

type countingAudio struct {
	plays, stops int
	listener     vmath.Vec3
}

func (a *countingAudio) PlayAt(string, vmath.Vec3) (time.Duration, error) {
	a.plays++
	return time.Second, nil
}

func (a *countingAudio) StopAll() { a.stops++ }

func (a *countingAudio) SetListener(pos vmath.Vec3) { a.listener = pos }

func newTestSession(t *testing.T, opts Options, deps Deps) *Session {
	t.Helper()
	s, err := New(testCatalog(t), opts, deps)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func run(s *Session, c *clock.Clock, d time.Duration) {
	const dt = 16 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < d; elapsed += dt {
		s.Step(c.Step(dt))
	}
}

func newClock() *clock.Clock {
	return clock.New(clock.NewManualSource(time.Unix(0, 0)))
}

func TestSessionSchedulesSoundsAndGusts(t *testing.T) {
	s := newTestSession(t, testOptions(), quietDeps())
	run(s, newClock(), 10*time.Second)

	st := s.Stats()
	if st.Sounds < 3 {
		t.Fatalf("expected several ambient sounds in 10s, got %d", st.Sounds)
	}
	if st.Gusts < 3 {
		t.Fatalf("expected a gust roughly every 3s, got %d", st.Gusts)
	}
	if st.Frames == 0 || s.Frame().NowS < 9.9 {
		t.Fatalf("frames not processed: %+v at %.2fs", st, s.Frame().NowS)
	}
}

func TestSessionIsDeterministicPerSeed(t *testing.T) {
	a := newTestSession(t, testOptions(), quietDeps())
	b := newTestSession(t, testOptions(), quietDeps())
	run(a, newClock(), 8*time.Second)
	run(b, newClock(), 8*time.Second)

	if a.Stats() != b.Stats() {
		t.Fatalf("same seed diverged: %+v vs %+v", a.Stats(), b.Stats())
	}
	if a.Weather.Wind != b.Weather.Wind {
		t.Fatalf("wind diverged: %+v vs %+v", a.Weather.Wind, b.Weather.Wind)
	}
	if a.ID == b.ID {
		t.Fatal("sessions share an id")
	}
}

func TestPausedFramesSkipWeatherAndDOF(t *testing.T) {
	s := newTestSession(t, testOptions(), quietDeps())
	c := newClock()
	run(s, c, time.Second)
	s.DOF.SetEffector(vmath.V3(10, 20, 30))

	next := s.Weather.Sounds.Next(0)
	dofBefore := s.DOF.Current()
	windBefore := s.Weather.Wind
	nowBefore := s.Frame().NowS

	c.Pause()
	run(s, c, 5*time.Second)

	if s.Weather.Sounds.Next(0) != next {
		t.Fatal("sound schedule moved while paused")
	}
	if s.DOF.Current() != dofBefore {
		t.Fatal("DOF blended while paused")
	}
	if s.Weather.Wind != windBefore {
		t.Fatal("wind changed while paused")
	}
	if s.Frame().NowS != nowBefore || !s.Frame().Paused {
		t.Fatalf("frame advanced while paused: %+v", s.Frame())
	}
	if s.Stats().SkippedPause == 0 {
		t.Fatal("paused frames not counted")
	}

	c.Resume()
	run(s, c, 500*time.Millisecond)
	if s.DOF.Current() == dofBefore {
		t.Fatal("DOF did not resume after pause")
	}
}

func TestDisconnectTearsDownEffects(t *testing.T) {
	audio := &countingAudio{}
	deps := quietDeps()
	deps.Audio = audio
	s := newTestSession(t, testOptions(), deps)
	c := newClock()
	run(s, c, 100*time.Millisecond)

	if len(s.Particles()) == 0 {
		t.Fatal("expected a live gust before disconnecting")
	}
	stops := audio.stops
	s.Disconnect()
	if len(s.Particles()) != 0 {
		t.Fatal("disconnect left particles alive")
	}
	if audio.stops != stops+1 {
		t.Fatalf("StopAll called %d times, want 1", audio.stops-stops)
	}

	frames := s.Stats().Frames
	run(s, c, time.Second)
	if s.Stats().Frames != frames {
		t.Fatal("disconnected session kept processing frames")
	}

	s.Reset(5)
	run(s, c, 100*time.Millisecond)
	if !s.Connected() || s.Stats().Frames == 0 {
		t.Fatal("reset did not reconnect the session")
	}
}

func TestIndoorListenerGetsNoGusts(t *testing.T) {
	s := newTestSession(t, testOptions(), quietDeps())
	s.SetIndoor(true)
	run(s, newClock(), 10*time.Second)

	if s.Stats().Gusts != 0 {
		t.Fatalf("gusts started indoors: %d", s.Stats().Gusts)
	}
	if s.Stats().Sounds == 0 {
		t.Fatal("ambient sounds should still play indoors")
	}

	s.SetIndoor(false)
	s.SetHasEntity(false)
	if !s.Listener().Indoor() {
		t.Fatal("listener without an entity should count as indoors")
	}
}

func TestAudioFollowsListener(t *testing.T) {
	audio := &countingAudio{}
	deps := quietDeps()
	deps.Audio = audio
	s := newTestSession(t, testOptions(), deps)
	s.MoveListener(5, -3)
	run(s, newClock(), 50*time.Millisecond)

	if audio.listener != vmath.V3(5, 0, -3) {
		t.Fatalf("audio listener at %+v", audio.listener)
	}
}

func TestPickableDOFTracksAimRange(t *testing.T) {
	s := newTestSession(t, testOptions(), quietDeps())
	s.DOF.SetPickable(true)
	if !s.SetFloatParameter("aim_range", 200) {
		t.Fatal("aim_range rejected")
	}
	run(s, newClock(), 3*time.Second)

	if got := s.DOF.Current(); !got.Similar(vmath.V3(130, 200, 270)) {
		t.Fatalf("pick DOF = %+v, want (130, 200, 270)", got)
	}

	s.DOF.SetPickable(false)
	run(s, newClock(), time.Second)
	if got := s.DOF.Current(); !got.Similar(testOptions().BaseDOF) {
		t.Fatalf("DOF did not restore: %+v", got)
	}
}

func TestFixedBlend(t *testing.T) {
	opts := testOptions()
	opts.Blend = &Blend{Primary: "clear", Secondary: "calm", Weight: 0.5}
	s := newTestSession(t, opts, quietDeps())

	if s.BlendWeight() != 0.5 {
		t.Fatalf("weight = %v", s.BlendWeight())
	}
	if a, b := s.Descriptors(); a != "clear" || b != "calm" {
		t.Fatalf("descriptors = %s, %s", a, b)
	}
	if !s.SetFloatParameter("blend_weight", 0.8) || s.BlendWeight() != 0.8 {
		t.Fatal("blend weight not applied")
	}

	opts.Blend = &Blend{Primary: "nowhere"}
	if _, err := New(testCatalog(t), opts, quietDeps()); err == nil {
		t.Fatal("unknown descriptor accepted")
	}

	cycling := newTestSession(t, testOptions(), quietDeps())
	if cycling.SetBlendWeight(0.3) {
		t.Fatal("cycling session accepted a fixed weight")
	}
}

func TestSeedParameterRestarts(t *testing.T) {
	s := newTestSession(t, testOptions(), quietDeps())
	run(s, newClock(), time.Second)
	id := s.ID

	if !s.SetIntParameter("seed", 99) {
		t.Fatal("seed rejected")
	}
	if s.ID == id || s.Stats().Frames != 0 || s.Options().Seed != 99 {
		t.Fatal("seed change did not restart the session")
	}
	if s.SetIntParameter("bogus", 1) || s.SetFloatParameter("bogus", 1) {
		t.Fatal("unknown parameter accepted")
	}
}

func TestDisplay(t *testing.T) {
	s := newTestSession(t, testOptions(), quietDeps())
	size := s.Size()
	center := (size.H/2)*size.W + size.W/2
	if s.Cells()[center] != cellListener {
		t.Fatalf("listener not drawn at the centre: %d", s.Cells()[center])
	}
	if len(s.Palette()) <= int(cellListener) {
		t.Fatal("palette misses display indices")
	}

	run(s, newClock(), 300*time.Millisecond)
	if s.Stats().Sounds == 0 {
		t.Fatal("expected a sound by 300ms")
	}
	var peak float32
	for _, v := range s.PingMask() {
		if v > peak {
			peak = v
		}
	}
	if peak <= 0 {
		t.Fatal("ping mask empty after a sound")
	}

	vx, vz := s.WindVectorAt(10, 10)
	if vx <= 0 || vz != 0 {
		t.Fatalf("wind during a +X gust = (%v, %v)", vx, vz)
	}
}

func TestStatusLines(t *testing.T) {
	s := newTestSession(t, testOptions(), quietDeps())
	lines := s.StatusLines()
	if len(lines) < 5 {
		t.Fatalf("too few status lines: %v", lines)
	}
	s.Disconnect()
	lines = s.StatusLines()
	if lines[len(lines)-1] != "disconnected" {
		t.Fatalf("disconnect not shown: %v", lines)
	}
}
