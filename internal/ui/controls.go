package ui

import (
	"image"
	"math"
	"strconv"

	"zonefx/internal/core"
)

const (
	defaultFloatStep = 0.05
	noValue          = "--"
)

// controlState is one HUD row: the control definition, the last value read
// from the scene and the button hit boxes.
type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func newControlStates(controls []core.ParameterControl) []controlState {
	out := make([]controlState, len(controls))
	for i, c := range controls {
		out[i] = controlState{control: c, value: noValue}
	}
	return out
}

// refreshControls copies the snapshot values into the rows by key.
func refreshControls(states []controlState, snap core.ParameterSnapshot) {
	byKey := map[string]core.Parameter{}
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			byKey[p.Key] = p
		}
	}
	for i := range states {
		states[i].load(byKey)
	}
}

func (s *controlState) load(byKey map[string]core.Parameter) {
	s.hasValue = false
	s.value = noValue
	p, ok := byKey[s.control.Key]
	if !ok {
		return
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		v, err := strconv.Atoi(p.Value)
		if err != nil {
			return
		}
		s.intValue = v
		s.floatValue = float64(v)
		s.value = strconv.Itoa(v)
		s.hasValue = true
	case core.ParamTypeFloat:
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			return
		}
		s.floatValue = v
		s.value = formatFloat(s.control, v)
		s.hasValue = true
	}
}

// target returns the value one step in direction, clamped to the control
// bounds, and whether it differs from the current value.
func (s *controlState) target(direction int) (float64, bool) {
	if !s.hasValue || direction == 0 {
		return 0, false
	}
	c := s.control
	switch c.Type {
	case core.ParamTypeInt:
		step := int(math.Round(c.Step))
		if step <= 0 {
			step = 1
		}
		t := s.intValue + direction*step
		if c.HasMin {
			t = max(t, int(math.Round(c.Min)))
		}
		if c.HasMax {
			t = min(t, int(math.Round(c.Max)))
		}
		return float64(t), t != s.intValue
	case core.ParamTypeFloat:
		step := c.Step
		if step <= 0 {
			step = defaultFloatStep
		}
		t := s.floatValue + float64(direction)*step
		if c.HasMin && t < c.Min {
			t = c.Min
		}
		if c.HasMax && t > c.Max {
			t = c.Max
		}
		return t, math.Abs(t-s.floatValue) >= 1e-9
	}
	return 0, false
}

// apply pushes one step through the matching setter and records the result.
func (s *controlState) apply(direction int, ints core.IntParameterSetter, floats core.FloatParameterSetter) bool {
	t, ok := s.target(direction)
	if !ok {
		return false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		v := int(t)
		if ints == nil || !ints.SetIntParameter(s.control.Key, v) {
			return false
		}
		s.intValue = v
		s.floatValue = t
		s.value = strconv.Itoa(v)
	case core.ParamTypeFloat:
		if floats == nil || !floats.SetFloatParameter(s.control.Key, t) {
			return false
		}
		s.floatValue = t
		s.value = formatFloat(s.control, t)
	default:
		return false
	}
	return true
}

func layoutControls(states []controlState, width int) {
	for i := range states {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		states[i].top = top
		states[i].minusRect = minus
		states[i].plusRect = plus
	}
}

// hit returns the row and direction of the button under (x, y).
func hit(states []controlState, x, y int) (int, int, bool) {
	p := image.Pt(x, y)
	for i := range states {
		if !states[i].hasValue {
			continue
		}
		if p.In(states[i].minusRect) {
			return i, -1, true
		}
		if p.In(states[i].plusRect) {
			return i, 1, true
		}
	}
	return 0, 0, false
}

func formatFloat(c core.ParameterControl, v float64) string {
	step := c.Step
	if step <= 0 {
		step = defaultFloatStep
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	statusSpacing  = 16
	controlsTop    = panelPadding + headerBaseline + 14
)
