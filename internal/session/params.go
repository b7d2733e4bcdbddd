package session

import (
	"fmt"
	"strconv"

	"zonefx/internal/core"
)

// Parameters reports the tunables shown on the HUD and printed by the trace tool.
func (s *Session) Parameters() core.ParameterSnapshot {
	first, second := s.Descriptors()
	cur := s.DOF.Current()
	wind := s.Weather.Wind
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Session",
			Params: []core.Parameter{
				int64Param("seed", "Seed", s.opts.Seed),
				intParam("sounds", "Sounds played", s.stats.Sounds),
				intParam("gusts", "Gusts started", s.stats.Gusts),
			},
			Summary: fmt.Sprintf("%s %s", s.opts.GameType.Name(true), s.ID),
		},
		{
			Name: "Environment",
			Params: []core.Parameter{
				floatParam("blend_weight", "Blend weight", s.BlendWeight()),
				floatParam("luminosity", "Luminosity", s.listener.Luminosity),
				floatParam("view_radius", "View radius", s.opts.ViewRadius),
			},
			Summary: fmt.Sprintf("%s -> %s", first, second),
		},
		{
			Name: "Wind",
			Params: []core.Parameter{
				floatParam("wind_strength", "Strength", wind.StrengthFactor),
				floatParam("wind_gust_factor", "Gust factor", wind.GustFactor),
			},
			Summary: s.Weather.Gust.Phase().String(),
		},
		{
			Name: "DOF",
			Params: []core.Parameter{
				floatParam("aim_range", "Aim range", s.opts.AimRange),
				floatParam("dof_near", "Near", cur.X),
				floatParam("dof_focus", "Focus", cur.Y),
				floatParam("dof_far", "Far", cur.Z),
				boolParam("dof_pickable", "Pickable", s.DOF.Pickable()),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable values.
func (s *Session) ParameterControls() []core.ParameterControl {
	controls := []core.ParameterControl{
		{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Step: 1},
		{Key: "luminosity", Label: "Luminosity", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "aim_range", Label: "Aim range", Type: core.ParamTypeFloat, Step: 5, Min: 0, Max: 1000, HasMin: true, HasMax: true},
		{Key: "view_radius", Label: "View radius", Type: core.ParamTypeFloat, Step: 10, Min: 20, Max: 400, HasMin: true, HasMax: true},
	}
	if s.fixed != nil {
		controls = append(controls, core.ParameterControl{
			Key: "blend_weight", Label: "Blend weight", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true,
		})
	}
	return controls
}

// SetIntParameter implements core.IntParameterSetter. Changing the seed
// restarts the session.
func (s *Session) SetIntParameter(key string, value int) bool {
	switch key {
	case "seed":
		s.Reset(int64(value))
		return true
	}
	return false
}

// SetFloatParameter implements core.FloatParameterSetter.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "luminosity":
		if value < 0 || value > 1 {
			return false
		}
		s.opts.Luminosity = value
		if !s.indoor {
			s.listener.Luminosity = value
		}
		return true
	case "aim_range":
		if value < 0 {
			return false
		}
		s.opts.AimRange = value
		return true
	case "view_radius":
		if value <= 0 {
			return false
		}
		s.opts.ViewRadius = value
		s.paint()
		return true
	case "blend_weight":
		return s.SetBlendWeight(value)
	}
	return false
}

// StatusLines summarises the session state for the HUD.
func (s *Session) StatusLines() []string {
	first, second := s.Descriptors()
	wind := s.Weather.Wind
	cur := s.DOF.Current()
	pos := s.listener.Position
	lines := []string{
		fmt.Sprintf("t=%.2fs frame=%d", s.frame.NowS, s.stats.Frames),
		fmt.Sprintf("env %s/%s w=%.2f", first, second, s.BlendWeight()),
		fmt.Sprintf("gust %s gf=%.2f", s.Weather.Gust.Phase(), wind.GustFactor),
		fmt.Sprintf("wind %.2f dir=(%.2f, %.2f)", wind.StrengthFactor, wind.Direction.X, wind.Direction.Z),
		fmt.Sprintf("dof %.1f/%.1f/%.1f", cur.X, cur.Y, cur.Z),
		fmt.Sprintf("pos (%.0f, %.0f) indoor=%t", pos.X, pos.Z, s.listener.Indoor()),
		fmt.Sprintf("intro %s", s.Intro.Phase()),
	}
	if s.frame.Paused {
		lines = append(lines, "paused")
	}
	if !s.connected {
		lines = append(lines, "disconnected")
	}
	return lines
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(value)}
}
