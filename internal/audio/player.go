package audio

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"

	"zonefx/internal/vmath"
)

const (
	targetSampleRate = beep.SampleRate(48000)
	// DefaultFalloff is the distance at which a sound becomes inaudible.
	DefaultFalloff = 60.0
)

// Sink receives finished streamers. The speaker is the production sink.
type Sink interface {
	Play(s beep.Streamer) error
	Clear()
}

type speakerSink struct {
	once  sync.Once
	err   error
	ready bool
}

func (s *speakerSink) Play(st beep.Streamer) error {
	s.once.Do(func() {
		s.err = speaker.Init(targetSampleRate, targetSampleRate.N(time.Second/10))
		if s.err != nil {
			slog.Error("failed to initialize speaker", "error", s.err)
			return
		}
		s.ready = true
	})
	if s.err != nil {
		return s.err
	}
	speaker.Play(st)
	return nil
}

func (s *speakerSink) Clear() {
	if s.ready {
		speaker.Clear()
	}
}

// Player turns positional requests into attenuated, panned streams.
type Player struct {
	lib  *Library
	sink Sink

	mu       sync.Mutex
	listener vmath.Vec3
	volume   float64
	falloff  float64
	playing  int
}

// NewPlayer plays through the system speaker, initialised on first use.
func NewPlayer(lib *Library) *Player {
	return NewPlayerWithSink(lib, &speakerSink{})
}

// NewPlayerWithSink plays into an explicit sink.
func NewPlayerWithSink(lib *Library, sink Sink) *Player {
	return &Player{lib: lib, sink: sink, volume: 1, falloff: DefaultFalloff}
}

// SetListener moves the point sounds are heard from.
func (p *Player) SetListener(pos vmath.Vec3) {
	p.mu.Lock()
	p.listener = pos
	p.mu.Unlock()
}

// SetVolume sets the master volume, clamped to [0, 1].
func (p *Player) SetVolume(vol float64) {
	p.mu.Lock()
	p.volume = math.Max(0, math.Min(1, vol))
	p.mu.Unlock()
}

// SetFalloff sets the distance at which sounds fade out completely.
func (p *Player) SetFalloff(d float64) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	p.falloff = d
	p.mu.Unlock()
}

// Playing returns the number of streams that have not finished yet.
func (p *Player) Playing() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// PlayAt starts asset at pos and returns its length without waiting for it.
func (p *Player) PlayAt(asset string, pos vmath.Vec3) (time.Duration, error) {
	buf, err := p.lib.buffer(asset)
	if err != nil {
		return 0, err
	}
	length := buf.Format().SampleRate.D(buf.Len())

	p.mu.Lock()
	gain, pan := spatialize(pos.Sub(p.listener), p.falloff)
	gain *= p.volume
	p.mu.Unlock()

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if buf.Format().SampleRate != targetSampleRate {
		s = beep.Resample(3, buf.Format().SampleRate, targetSampleRate, s)
	}
	s = &effects.Pan{Streamer: s, Pan: pan}
	s = &effects.Volume{Streamer: s, Base: 2, Volume: volumeToPower(gain), Silent: gain <= 0.01}

	p.mu.Lock()
	p.playing++
	p.mu.Unlock()
	done := beep.Callback(func() {
		p.mu.Lock()
		p.playing--
		p.mu.Unlock()
	})

	if err := p.sink.Play(beep.Seq(s, done)); err != nil {
		p.mu.Lock()
		p.playing--
		p.mu.Unlock()
		return 0, err
	}
	slog.Debug("sound started", "asset", asset, "gain", gain, "pan", pan, "length", length)
	return length, nil
}

// StopAll drops every queued stream.
func (p *Player) StopAll() {
	p.sink.Clear()
	p.mu.Lock()
	p.playing = 0
	p.mu.Unlock()
}

// spatialize maps a listener-relative offset to a linear gain and a stereo pan.
func spatialize(rel vmath.Vec3, falloff float64) (gain, pan float64) {
	dist := rel.Len()
	gain = 1 - dist/falloff
	if gain < 0 {
		gain = 0
	}
	if h := rel.Horizontal().Len(); h > 0 {
		pan = math.Max(-1, math.Min(1, rel.X/h))
	}
	return gain, pan
}

func volumeToPower(vol float64) float64 {
	if vol <= 0.01 {
		return -10
	}
	return math.Log2(vol)
}
