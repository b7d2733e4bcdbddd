package weather

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"zonefx/internal/env"
	"zonefx/internal/vmath"
)

// soundHeightOffset raises ambient sounds above the listener.
const soundHeightOffset = 10.0

// SoundEvent records one ambient sound request.
type SoundEvent struct {
	Channel  string
	Index    int
	Asset    string
	Position vmath.Vec3
	Length   time.Duration
	AtMS     uint32
}

// SoundScheduler keeps one next-trigger timestamp per channel index.
type SoundScheduler struct {
	audio  Audio
	log    *slog.Logger
	next   []uint32
	events []SoundEvent
}

// NewSoundScheduler returns a scheduler with no armed channels.
func NewSoundScheduler(audio Audio, logger *slog.Logger) *SoundScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SoundScheduler{audio: audio, log: logger, next: make([]uint32, 0, 32)}
}

// Reset disarms every channel.
func (s *SoundScheduler) Reset() {
	for i := range s.next {
		s.next[i] = 0
	}
}

// Next returns the next trigger time of channel i (0 when unarmed).
func (s *SoundScheduler) Next(i int) uint32 {
	if i < 0 || i >= len(s.next) {
		return 0
	}
	return s.next[i]
}

// Tick arms or fires each channel. The returned slice is reused on the next call.
func (s *SoundScheduler) Tick(nowMS uint32, listener vmath.Vec3, channels []*env.Channel, rnd Random) []SoundEvent {
	s.events = s.events[:0]
	for len(s.next) < len(channels) {
		s.next = append(s.next, 0)
	}

	for idx, ch := range channels {
		if ch == nil {
			panic(fmt.Errorf("%w: channel %d is nil", ErrCorruptEnvironment, idx))
		}

		switch {
		case s.next[idx] == 0:
			s.next[idx] = nowMS + ch.FirstDelayMS(rnd)
		case nowMS > s.next[idx]:
			asset := ch.PickSound(rnd)
			if asset == "" {
				panic(fmt.Errorf("%w: channel %q has an empty sound pool", ErrCorruptEnvironment, ch.Name))
			}
			pos := ringPosition(listener, rnd.Float64()*2*math.Pi, ch.PickRadius(rnd))

			length, err := s.audio.PlayAt(asset, pos)
			if err != nil {
				s.log.Warn("ambient sound unavailable", "channel", ch.Name, "asset", asset, "error", err)
				s.next[idx] = nowMS + ch.RetriggerDelayMS(rnd)
				continue
			}

			lengthMS := uint32(math.Floor(length.Seconds() * 1000))
			s.next[idx] = nowMS + lengthMS + ch.RetriggerDelayMS(rnd)
			s.events = append(s.events, SoundEvent{
				Channel:  ch.Name,
				Index:    idx,
				Asset:    asset,
				Position: pos,
				Length:   length,
				AtMS:     nowMS,
			})
			s.log.Debug("ambient sound", "channel", ch.Name, "asset", asset, "next_ms", s.next[idx])
		}
	}
	return s.events
}

// ringPosition places a point on a horizontal circle around the listener.
func ringPosition(listener vmath.Vec3, angle, radius float64) vmath.Vec3 {
	dir := vmath.V3(math.Cos(angle), 0, math.Sin(angle)).Normalize()
	pos := dir.Scale(radius).Add(listener)
	pos.Y += soundHeightOffset
	return pos
}
