package weather

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"zonefx/internal/config"
	"zonefx/internal/env"
	"zonefx/internal/vmath"
)

var errNoResource = errors.New("no resource")

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type play struct {
	asset string
	pos   vmath.Vec3
}

type fakeAudio struct {
	length  time.Duration
	err     error
	plays   []play
	stopped int
}

func (a *fakeAudio) PlayAt(asset string, pos vmath.Vec3) (time.Duration, error) {
	if a.err != nil {
		return 0, a.err
	}
	a.plays = append(a.plays, play{asset: asset, pos: pos})
	return a.length, nil
}

func (a *fakeAudio) StopAll() { a.stopped++ }

type fakeInstance struct {
	asset     string
	pos       vmath.Vec3
	playing   bool
	stopped   bool
	destroyed bool
}

func (i *fakeInstance) PlayAt(pos vmath.Vec3) {
	i.pos = pos
	i.playing = true
}

func (i *fakeInstance) Stop() {
	i.stopped = true
	i.playing = false
}

func (i *fakeInstance) IsPlaying() bool { return i.playing }

func (i *fakeInstance) Destroy() { i.destroyed = true }

type fakeParticles struct {
	err     error
	created []*fakeInstance
}

func (p *fakeParticles) Create(asset string) (Instance, error) {
	if p.err != nil {
		return nil, p.err
	}
	inst := &fakeInstance{asset: asset}
	p.created = append(p.created, inst)
	return inst, nil
}

func (p *fakeParticles) last() *fakeInstance {
	if len(p.created) == 0 {
		return nil
	}
	return p.created[len(p.created)-1]
}

// seqRandom replays a fixed list of floats; IntN always returns 0.
type seqRandom struct {
	floats []float64
	pos    int
}

func (r *seqRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[r.pos%len(r.floats)]
	r.pos++
	return v
}

func (r *seqRandom) IntN(int) int { return 0 }

func ms(v int) config.Duration {
	return config.Duration(time.Duration(v) * time.Millisecond)
}

func fixedMS(v int) env.DurationRange {
	return env.DurationRange{Min: ms(v), Max: ms(v)}
}

func testChannel() *env.Channel {
	return &env.Channel{
		Name:           "birds",
		Sounds:         []string{"birds_1"},
		FirstDelay:     fixedMS(500),
		RetriggerDelay: fixedMS(1000),
		Radius:         env.Range{Min: 20, Max: 20},
	}
}

func testEffect() *env.Effect {
	return &env.Effect{
		Name:       "leaves",
		LifeTime:   ms(5000),
		RampIn:     ms(1000),
		RampOut:    ms(500),
		Strength:   0.8,
		Direction:  env.Vector{1, 0, 0},
		GustFactor: 0.4,
		Particles:  "leaves_fall",
		Sound:      "whoosh",
		Offset:     env.Vector{0, 2, 0},
	}
}

func testAmbient() *env.Ambient {
	return &env.Ambient{
		Name:         "forest",
		EffectPeriod: fixedMS(10000),
		Channels:     []*env.Channel{testChannel()},
		Effects:      []*env.Effect{testEffect()},
	}
}
