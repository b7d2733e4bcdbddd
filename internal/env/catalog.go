package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"zonefx/internal/config"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog marks a catalog that would corrupt the scheduler state.
var ErrInvalidCatalog = errors.New("invalid environment catalog")

// ParticleAsset describes how long a particle system plays before it finishes on its own.
type ParticleAsset struct {
	Name     string          `yaml:"name"`
	Duration config.Duration `yaml:"duration"`
}

// SoundAsset records a nominal length for sounds when no decoder is available.
type SoundAsset struct {
	Name   string          `yaml:"name"`
	Length config.Duration `yaml:"length"`
}

// Catalog is the on-disk description of every ambient and descriptor.
type Catalog struct {
	Name        string          `yaml:"name"`
	Ambients    []*Ambient      `yaml:"ambients"`
	Descriptors []*Descriptor   `yaml:"descriptors"`
	Particles   []ParticleAsset `yaml:"particles"`
	Sounds      []SoundAsset    `yaml:"sounds"`
	Segment     config.Duration `yaml:"segment"`
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Resolve(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a YAML catalog from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Resolve links descriptors to their ambients and validates the result.
func (c *Catalog) Resolve() error {
	byName := make(map[string]*Ambient, len(c.Ambients))
	for _, a := range c.Ambients {
		if a == nil {
			return fmt.Errorf("%w: nil ambient entry", ErrInvalidCatalog)
		}
		byName[a.Name] = a
	}
	for _, d := range c.Descriptors {
		if d == nil {
			return fmt.Errorf("%w: nil descriptor entry", ErrInvalidCatalog)
		}
		if d.AmbientName == "" {
			d.Ambient = nil
			continue
		}
		a, ok := byName[d.AmbientName]
		if !ok {
			return fmt.Errorf("%w: descriptor %q references unknown ambient %q", ErrInvalidCatalog, d.Name, d.AmbientName)
		}
		d.Ambient = a
	}
	return c.Validate()
}

// Validate checks the invariants the scheduler relies on.
func (c *Catalog) Validate() error {
	if len(c.Descriptors) == 0 {
		return fmt.Errorf("%w: no descriptors", ErrInvalidCatalog)
	}
	for _, a := range c.Ambients {
		for i, ch := range a.Channels {
			if ch == nil {
				return fmt.Errorf("%w: ambient %q channel %d is nil", ErrInvalidCatalog, a.Name, i)
			}
			if len(ch.Sounds) == 0 {
				return fmt.Errorf("%w: ambient %q channel %q has no sounds", ErrInvalidCatalog, a.Name, ch.Name)
			}
			if ch.FirstDelay.Max < ch.FirstDelay.Min || ch.RetriggerDelay.Max < ch.RetriggerDelay.Min {
				return fmt.Errorf("%w: ambient %q channel %q has an inverted delay range", ErrInvalidCatalog, a.Name, ch.Name)
			}
			if ch.Radius.Min < 0 || ch.Radius.Max < ch.Radius.Min {
				return fmt.Errorf("%w: ambient %q channel %q has an invalid radius", ErrInvalidCatalog, a.Name, ch.Name)
			}
		}
		for i, e := range a.Effects {
			if e == nil {
				return fmt.Errorf("%w: ambient %q effect %d is nil", ErrInvalidCatalog, a.Name, i)
			}
			if e.LifeTime <= 0 {
				return fmt.Errorf("%w: effect %q needs a positive life_time", ErrInvalidCatalog, e.Name)
			}
			if e.RampIn < 0 || e.RampOut < 0 {
				return fmt.Errorf("%w: effect %q has a negative ramp", ErrInvalidCatalog, e.Name)
			}
			if e.Particles == "" {
				return fmt.Errorf("%w: effect %q has no particles", ErrInvalidCatalog, e.Name)
			}
		}
	}
	return nil
}

// Descriptor returns the descriptor with the given name.
func (c *Catalog) Descriptor(name string) (*Descriptor, bool) {
	for _, d := range c.Descriptors {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// Cycle builds a provider that walks the descriptors in file order.
func (c *Catalog) Cycle() *Cycle {
	return NewCycle(c.Descriptors, c.Segment.Seconds())
}

// ParticleDurations indexes particle asset lifetimes by name.
func (c *Catalog) ParticleDurations() map[string]time.Duration {
	out := make(map[string]time.Duration, len(c.Particles))
	for _, p := range c.Particles {
		out[p.Name] = p.Duration.Std()
	}
	return out
}

// SoundLengths indexes nominal sound lengths by name.
func (c *Catalog) SoundLengths() map[string]time.Duration {
	out := make(map[string]time.Duration, len(c.Sounds))
	for _, s := range c.Sounds {
		out[s.Name] = s.Length.Std()
	}
	return out
}
