package presets

import (
	"testing"
	"time"

	"zonefx/internal/core"
)

func TestBuiltinsRegisterAndValidate(t *testing.T) {
	for _, name := range []string{"meadow", "storm"} {
		c, err := core.Build(name, nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if c.Name != name {
			t.Fatalf("preset %q built catalog %q", name, c.Name)
		}
		particles := c.ParticleDurations()
		sounds := c.SoundLengths()
		for _, a := range c.Ambients {
			for _, e := range a.Effects {
				if _, ok := particles[e.Particles]; !ok {
					t.Fatalf("%s: effect %q uses undeclared particles %q", name, e.Name, e.Particles)
				}
				if e.Sound != "" {
					if _, ok := sounds[e.Sound]; !ok {
						t.Fatalf("%s: effect %q uses undeclared sound %q", name, e.Name, e.Sound)
					}
				}
			}
			for _, ch := range a.Channels {
				for _, s := range ch.Sounds {
					if _, ok := sounds[s]; !ok {
						t.Fatalf("%s: channel %q uses undeclared sound %q", name, ch.Name, s)
					}
				}
			}
		}
	}
}

func TestFromMap(t *testing.T) {
	o := FromMap(map[string]string{"segment": "30s", "gust_scale": "2", "radius_scale": "-1"})
	if o.Segment != 30*time.Second {
		t.Fatalf("segment = %v, want 30s", o.Segment)
	}
	if o.GustScale != 2 {
		t.Fatalf("gust scale = %v, want 2", o.GustScale)
	}
	if o.RadiusScale != 1 {
		t.Fatalf("negative radius scale accepted: %v", o.RadiusScale)
	}

	c := Storm(o)
	if got := c.Ambients[0].Effects[0].Strength; got != 1.4 {
		t.Fatalf("scaled strength = %v, want 1.4", got)
	}
	if c.Segment.Std() != 30*time.Second {
		t.Fatalf("catalog segment = %v", c.Segment.Std())
	}
}
