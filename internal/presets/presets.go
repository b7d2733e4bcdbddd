// Package presets registers the built-in environment catalogs.
package presets

import (
	"strconv"
	"time"

	"zonefx/internal/config"
	"zonefx/internal/core"
	"zonefx/internal/env"
)

// Options tunes the built-in catalogs.
type Options struct {
	// Segment is how long each descriptor takes to blend into the next.
	Segment time.Duration
	// GustScale multiplies every effect's wind blast strength.
	GustScale float64
	// RadiusScale multiplies every channel's sound distance.
	RadiusScale float64
}

// DefaultOptions returns the unscaled settings.
func DefaultOptions() Options {
	return Options{Segment: 90 * time.Second, GustScale: 1, RadiusScale: 1}
}

// FromMap populates options from flag-style key/value pairs.
func FromMap(cfg map[string]string) Options {
	o := DefaultOptions()
	if cfg == nil {
		return o
	}
	if v, ok := cfg["segment"]; ok {
		if parsed, err := config.ParseDuration(v); err == nil && parsed > 0 {
			o.Segment = parsed
		}
	}
	if v, ok := cfg["gust_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			o.GustScale = parsed
		}
	}
	if v, ok := cfg["radius_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			o.RadiusScale = parsed
		}
	}
	return o
}

func init() {
	core.Register("meadow", func(cfg map[string]string) *env.Catalog { return Meadow(FromMap(cfg)) })
	core.Register("storm", func(cfg map[string]string) *env.Catalog { return Storm(FromMap(cfg)) })
}

func dur(d time.Duration) config.Duration { return config.Duration(d) }

func durRange(lo, hi time.Duration) env.DurationRange {
	return env.DurationRange{Min: dur(lo), Max: dur(hi)}
}

func radius(o Options, lo, hi float64) env.Range {
	return env.Range{Min: lo * o.RadiusScale, Max: hi * o.RadiusScale}
}

// Meadow is a calm day: birds, insects and the odd gust through the grass.
func Meadow(o Options) *env.Catalog {
	day := &env.Ambient{
		Name:         "meadow_day",
		EffectPeriod: durRange(20*time.Second, 45*time.Second),
		Channels: []*env.Channel{
			{
				Name:           "birds",
				Sounds:         []string{"birds_1", "birds_2", "birds_3"},
				FirstDelay:     durRange(500*time.Millisecond, 4*time.Second),
				RetriggerDelay: durRange(2*time.Second, 8*time.Second),
				Radius:         radius(o, 15, 40),
			},
			{
				Name:           "insects",
				Sounds:         []string{"insects_1", "insects_2"},
				FirstDelay:     durRange(time.Second, 3*time.Second),
				RetriggerDelay: durRange(time.Second, 5*time.Second),
				Radius:         radius(o, 5, 15),
			},
		},
		Effects: []*env.Effect{
			{
				Name:       "grass_gust",
				LifeTime:   dur(6 * time.Second),
				RampIn:     dur(1500 * time.Millisecond),
				RampOut:    dur(2 * time.Second),
				Strength:   0.35 * o.GustScale,
				Direction:  env.Vector{1, 0, 0.3},
				GustFactor: 0.3,
				Particles:  "leaves_fall",
				Sound:      "wind_soft",
				Offset:     env.Vector{0, 1, 0},
			},
		},
	}
	dusk := &env.Ambient{
		Name:         "meadow_dusk",
		EffectPeriod: durRange(30*time.Second, 60*time.Second),
		Channels: []*env.Channel{
			{
				Name:           "crickets",
				Sounds:         []string{"crickets_1", "crickets_2"},
				FirstDelay:     durRange(200*time.Millisecond, 2*time.Second),
				RetriggerDelay: durRange(500*time.Millisecond, 3*time.Second),
				Radius:         radius(o, 8, 25),
			},
			{
				Name:           "owl",
				Sounds:         []string{"owl_1"},
				FirstDelay:     durRange(10*time.Second, 30*time.Second),
				RetriggerDelay: durRange(20*time.Second, 60*time.Second),
				Radius:         radius(o, 40, 80),
			},
		},
		Effects: []*env.Effect{
			{
				Name:       "evening_breeze",
				LifeTime:   dur(8 * time.Second),
				RampIn:     dur(3 * time.Second),
				RampOut:    dur(3 * time.Second),
				Strength:   0.2 * o.GustScale,
				Direction:  env.Vector{-0.5, 0, 1},
				GustFactor: 0.15,
				Particles:  "pollen",
				Offset:     env.Vector{0, 2, 0},
			},
		},
	}
	return &env.Catalog{
		Name:     "meadow",
		Ambients: []*env.Ambient{day, dusk},
		Descriptors: []*env.Descriptor{
			{Name: "morning", AmbientName: "meadow_day"},
			{Name: "noon", AmbientName: "meadow_day"},
			{Name: "evening", AmbientName: "meadow_dusk"},
			{Name: "night"},
		},
		Particles: []env.ParticleAsset{
			{Name: "leaves_fall", Duration: dur(5 * time.Second)},
			{Name: "pollen", Duration: dur(7 * time.Second)},
		},
		Sounds: []env.SoundAsset{
			{Name: "birds_1", Length: dur(2 * time.Second)},
			{Name: "birds_2", Length: dur(3 * time.Second)},
			{Name: "birds_3", Length: dur(1500 * time.Millisecond)},
			{Name: "insects_1", Length: dur(4 * time.Second)},
			{Name: "insects_2", Length: dur(3 * time.Second)},
			{Name: "crickets_1", Length: dur(2 * time.Second)},
			{Name: "crickets_2", Length: dur(2500 * time.Millisecond)},
			{Name: "owl_1", Length: dur(1200 * time.Millisecond)},
			{Name: "wind_soft", Length: dur(4 * time.Second)},
		},
		Segment: dur(o.Segment),
	}
}

// Storm alternates between a rising wind and a full storm with frequent gusts.
func Storm(o Options) *env.Catalog {
	front := &env.Ambient{
		Name:         "storm_front",
		EffectPeriod: durRange(8*time.Second, 16*time.Second),
		Channels: []*env.Channel{
			{
				Name:           "distant_thunder",
				Sounds:         []string{"thunder_far_1", "thunder_far_2"},
				FirstDelay:     durRange(3*time.Second, 10*time.Second),
				RetriggerDelay: durRange(8*time.Second, 20*time.Second),
				Radius:         radius(o, 120, 200),
			},
			{
				Name:           "creaks",
				Sounds:         []string{"wood_creak_1", "wood_creak_2", "metal_creak"},
				FirstDelay:     durRange(time.Second, 5*time.Second),
				RetriggerDelay: durRange(4*time.Second, 12*time.Second),
				Radius:         radius(o, 10, 30),
			},
		},
		Effects: []*env.Effect{
			{
				Name:       "dust_gust",
				LifeTime:   dur(5 * time.Second),
				RampIn:     dur(time.Second),
				RampOut:    dur(1500 * time.Millisecond),
				Strength:   0.7 * o.GustScale,
				Direction:  env.Vector{0, 0, -1},
				GustFactor: 0.6,
				Particles:  "dust_wall",
				Sound:      "wind_gust",
				Offset:     env.Vector{0, 1.5, 4},
			},
			{
				Name:       "debris_gust",
				LifeTime:   dur(4 * time.Second),
				RampIn:     dur(500 * time.Millisecond),
				RampOut:    dur(time.Second),
				Strength:   0.9 * o.GustScale,
				Direction:  env.Vector{0.7, 0, -0.7},
				GustFactor: 0.8,
				Particles:  "debris",
				Sound:      "wind_howl",
				Offset:     env.Vector{2, 1, 2},
			},
		},
	}
	rain := &env.Ambient{
		Name:         "storm_rain",
		EffectPeriod: durRange(5*time.Second, 10*time.Second),
		Channels: []*env.Channel{
			{
				Name:           "thunder",
				Sounds:         []string{"thunder_1", "thunder_2", "thunder_3"},
				FirstDelay:     durRange(time.Second, 4*time.Second),
				RetriggerDelay: durRange(5*time.Second, 15*time.Second),
				Radius:         radius(o, 30, 90),
			},
		},
		Effects: []*env.Effect{
			{
				Name:       "rain_sheet",
				LifeTime:   dur(7 * time.Second),
				RampIn:     dur(2 * time.Second),
				RampOut:    dur(2 * time.Second),
				Strength:   1.0 * o.GustScale,
				Direction:  env.Vector{1, 0, -0.2},
				GustFactor: 1,
				Particles:  "rain_sheet",
				Sound:      "wind_howl",
			},
		},
	}
	return &env.Catalog{
		Name:     "storm",
		Ambients: []*env.Ambient{front, rain},
		Descriptors: []*env.Descriptor{
			{Name: "overcast", AmbientName: "storm_front"},
			{Name: "downpour", AmbientName: "storm_rain"},
		},
		Particles: []env.ParticleAsset{
			{Name: "dust_wall", Duration: dur(4 * time.Second)},
			{Name: "debris", Duration: dur(3 * time.Second)},
			{Name: "rain_sheet", Duration: dur(6 * time.Second)},
		},
		Sounds: []env.SoundAsset{
			{Name: "thunder_far_1", Length: dur(5 * time.Second)},
			{Name: "thunder_far_2", Length: dur(6 * time.Second)},
			{Name: "wood_creak_1", Length: dur(1 * time.Second)},
			{Name: "wood_creak_2", Length: dur(1200 * time.Millisecond)},
			{Name: "metal_creak", Length: dur(900 * time.Millisecond)},
			{Name: "thunder_1", Length: dur(4 * time.Second)},
			{Name: "thunder_2", Length: dur(3500 * time.Millisecond)},
			{Name: "thunder_3", Length: dur(4500 * time.Millisecond)},
			{Name: "wind_gust", Length: dur(3 * time.Second)},
			{Name: "wind_howl", Length: dur(5 * time.Second)},
		},
		Segment: dur(o.Segment),
	}
}
