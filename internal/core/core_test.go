package core

import (
	"errors"
	"testing"

	"zonefx/internal/env"
)

func TestRegistryBuild(t *testing.T) {
	Register("", func(map[string]string) *env.Catalog { return nil })
	Register("nil-factory", nil)
	if _, ok := Presets()[""]; ok {
		t.Fatal("empty name registered")
	}
	if _, ok := Presets()["nil-factory"]; ok {
		t.Fatal("nil factory registered")
	}

	Register("test-bare", func(cfg map[string]string) *env.Catalog {
		return &env.Catalog{Name: cfg["name"], Descriptors: []*env.Descriptor{{Name: "still"}}}
	})
	t.Cleanup(func() { delete(presets, "test-bare") })

	c, err := Build("test-bare", map[string]string{"name": "bare"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if c.Name != "bare" || len(c.Descriptors) != 1 {
		t.Fatalf("unexpected catalog %+v", c)
	}

	found := false
	for _, name := range PresetNames() {
		if name == "test-bare" {
			found = true
		}
	}
	if !found {
		t.Fatal("registered preset missing from PresetNames")
	}

	if _, err := Build("missing", nil); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestBuildValidates(t *testing.T) {
	Register("test-empty", func(map[string]string) *env.Catalog { return &env.Catalog{} })
	t.Cleanup(func() { delete(presets, "test-empty") })

	if _, err := Build("test-empty", nil); !errors.Is(err, env.ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
}

func TestByteGrid(t *testing.T) {
	g := NewByteGrid(4, 3)
	g.Set(3, 2, 7)
	g.Set(4, 0, 9)
	g.Set(-1, 0, 9)
	if g.At(3, 2) != 7 {
		t.Fatalf("At(3,2) = %d, want 7", g.At(3, 2))
	}
	if g.At(4, 0) != 0 || g.At(-1, 0) != 0 {
		t.Fatal("out of bounds read returned data")
	}
	g.Fill(2)
	for i, v := range g.Cells() {
		if v != 2 {
			t.Fatalf("cell %d = %d after Fill(2)", i, v)
		}
	}
}
