package ui

import (
	"image/color"
	"math"
	"testing"

	"zonefx/internal/core"
)

type fakeSetter struct {
	ints   map[string]int
	floats map[string]float64
	refuse bool
}

func (f *fakeSetter) SetIntParameter(key string, v int) bool {
	if f.refuse {
		return false
	}
	f.ints[key] = v
	return true
}

func (f *fakeSetter) SetFloatParameter(key string, v float64) bool {
	if f.refuse {
		return false
	}
	f.floats[key] = v
	return true
}

func snapshot(params ...core.Parameter) core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{Name: "g", Params: params}}}
}

func TestControlsRefreshAndApply(t *testing.T) {
	states := newControlStates([]core.ParameterControl{
		{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Step: 1},
		{Key: "lum", Label: "Luminosity", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "missing", Label: "Missing", Type: core.ParamTypeFloat},
	})
	refreshControls(states, snapshot(
		core.Parameter{Key: "seed", Type: core.ParamTypeInt, Value: "41"},
		core.Parameter{Key: "lum", Type: core.ParamTypeFloat, Value: "0.98"},
	))

	if states[0].value != "41" || states[1].value != "0.98" || states[2].value != noValue {
		t.Fatalf("values = %q %q %q", states[0].value, states[1].value, states[2].value)
	}

	set := &fakeSetter{ints: map[string]int{}, floats: map[string]float64{}}
	if !states[0].apply(1, set, set) || set.ints["seed"] != 42 {
		t.Fatalf("int step not applied: %v", set.ints)
	}
	if !states[1].apply(1, set, set) || set.floats["lum"] != 1 {
		t.Fatalf("float step not clamped to max: %v", set.floats)
	}
	if states[1].apply(1, set, set) {
		t.Fatal("step past the maximum should be refused")
	}
	if states[2].apply(1, set, set) {
		t.Fatal("control without a value adjusted")
	}

	set.refuse = true
	if states[0].apply(1, set, set) || states[0].intValue != 42 {
		t.Fatal("refused setter changed the row")
	}
}

func TestHitTesting(t *testing.T) {
	states := newControlStates([]core.ParameterControl{{Key: "seed", Type: core.ParamTypeInt}})
	layoutControls(states, 200)
	states[0].hasValue = true

	r := states[0].plusRect
	if i, dir, ok := hit(states, r.Min.X+1, r.Min.Y+1); !ok || i != 0 || dir != 1 {
		t.Fatalf("plus hit = %d %d %v", i, dir, ok)
	}
	r = states[0].minusRect
	if _, dir, ok := hit(states, r.Min.X+1, r.Min.Y+1); !ok || dir != -1 {
		t.Fatal("minus button missed")
	}
	if _, _, ok := hit(states, 0, 0); ok {
		t.Fatal("hit outside buttons")
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		step float64
		want string
	}{
		{0.0005, "0.1235"},
		{0.005, "0.123"},
		{0.05, "0.12"},
		{5, "0.1"},
		{0, "0.12"},
	}
	for _, tt := range tests {
		if got := formatFloat(core.ParameterControl{Step: tt.step}, 0.123456); got != tt.want {
			t.Fatalf("step %v: %q, want %q", tt.step, got, tt.want)
		}
	}
}

func TestSampleGridCoversView(t *testing.T) {
	samples, span := sampleGrid(core.Size{W: 160, H: 120}, 4)
	if len(samples) == 0 || span <= 0 {
		t.Fatal("no samples")
	}
	for _, s := range samples {
		if s.cx < 0 || s.cx > 160 || s.cy < 0 || s.cy > 120 {
			t.Fatalf("sample outside grid: %+v", s)
		}
		if s.sx != s.cx*4 || s.sy != s.cy*4 {
			t.Fatalf("screen position not scaled: %+v", s)
		}
	}
	if got, _ := sampleGrid(core.Size{}, 4); got != nil {
		t.Fatal("empty grid produced samples")
	}
}

func TestWindArrow(t *testing.T) {
	s := windSample{cx: 10, cy: 10, sx: 40, sy: 40}
	if _, ok := windArrow(s, 0.01, 0, 40, 4); ok {
		t.Fatal("calm wind drawn as an arrow")
	}
	a, ok := windArrow(s, 1, 0, 40, 4)
	if !ok {
		t.Fatal("wind not drawn")
	}
	if a.tipX <= s.sx || a.tailX >= s.sx || math.Abs(a.tipY-s.sy) > 1e-9 {
		t.Fatalf("arrow not pointing +X: %+v", a)
	}
	if a.leftX >= a.tipX || a.rightX >= a.tipX {
		t.Fatal("head strokes point forward")
	}
}

func TestMaskPixels(t *testing.T) {
	buf := make([]byte, 8)
	buf[4] = 9
	maskPixels(buf, []float32{1, 0}, color.RGBA{R: 100, G: 200, B: 50})
	if buf[0] != 100 || buf[1] != 200 || buf[2] != 50 || buf[3] != 140 {
		t.Fatalf("full mask pixel = %v", buf[:4])
	}
	for _, b := range buf[4:] {
		if b != 0 {
			t.Fatalf("empty mask pixel not cleared: %v", buf[4:])
		}
	}
}
