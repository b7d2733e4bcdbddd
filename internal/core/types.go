package core

import (
	"errors"
	"fmt"
	"sort"

	"zonefx/internal/clock"
	"zonefx/internal/env"
)

// ErrUnknownPreset is returned when no catalog is registered under a name.
var ErrUnknownPreset = errors.New("unknown environment preset")

// Size describes the dimensions of a display grid.
type Size struct {
	W int
	H int
}

// Scene is what the frame driver runs: one Step per rendered frame and a
// palette-indexed grid to draw.
type Scene interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step(f clock.Frame)
	Cells() []uint8
}

// Factory builds an environment catalog using an optional configuration map.
type Factory func(cfg map[string]string) *env.Catalog

var presets = map[string]Factory{}

// Register adds a catalog factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	presets[name] = f
}

// Presets exposes the registry of built-in catalogs.
func Presets() map[string]Factory {
	return presets
}

// PresetNames lists registered presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs, links and validates the named preset.
func Build(name string, cfg map[string]string) (*env.Catalog, error) {
	f, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	c := f(cfg)
	if c == nil {
		return nil, fmt.Errorf("%w: %q built nothing", ErrUnknownPreset, name)
	}
	if err := c.Resolve(); err != nil {
		return nil, fmt.Errorf("preset %q: %w", name, err)
	}
	return c, nil
}
