package session

import (
	"image/color"
	"math"

	"zonefx/internal/vmath"
	"zonefx/internal/weather"
)

// Palette indices written to the display grid.
const (
	cellGround uint8 = iota
	cellGroundIndoor
	cellGrid
	cellParticles
	cellPing
	cellListener
)

const (
	pingLifeS     = 1.5
	pingRadius    = 3.0
	gustRadius    = 6.0
	gridLineEvery = 20.0
)

var palette = []color.RGBA{
	cellGround:       {R: 18, G: 26, B: 20, A: 255},
	cellGroundIndoor: {R: 24, G: 20, B: 18, A: 255},
	cellGrid:         {R: 30, G: 42, B: 34, A: 255},
	cellParticles:    {R: 170, G: 150, B: 90, A: 255},
	cellPing:         {R: 90, G: 170, B: 230, A: 255},
	cellListener:     {R: 240, G: 240, B: 240, A: 255},
}

type ping struct {
	pos     vmath.Vec3
	atS     float64
	channel string
}

// Palette returns the colours of the display grid indices.
func (s *Session) Palette() []color.RGBA { return palette }

func (s *Session) recordPings(events []weather.SoundEvent, nowS float64) {
	live := s.pings[:0]
	for _, p := range s.pings {
		if nowS-p.atS < pingLifeS {
			live = append(live, p)
		}
	}
	for _, ev := range events {
		live = append(live, ping{pos: ev.Position, atS: nowS, channel: ev.Channel})
	}
	s.pings = live
}

// cellSize is the world distance covered by one display cell.
func (s *Session) cellSize() float64 {
	return 2 * s.opts.ViewRadius / float64(s.opts.View.W)
}

// worldToCell maps a world position onto the grid, centred on the listener.
// Z grows downward on screen.
func (s *Session) worldToCell(p vmath.Vec3) (float64, float64) {
	rel := p.Sub(s.listener.Position)
	cs := s.cellSize()
	return float64(s.opts.View.W)/2 + rel.X/cs, float64(s.opts.View.H)/2 + rel.Z/cs
}

func (s *Session) paint() {
	g := s.grid
	ground := cellGround
	if s.listener.Indoor() {
		ground = cellGroundIndoor
	}
	g.Fill(ground)

	cs := s.cellSize()
	origin := s.listener.Position
	for y := 0; y < g.H; y++ {
		wz := origin.Z + (float64(y)-float64(g.H)/2)*cs
		for x := 0; x < g.W; x++ {
			wx := origin.X + (float64(x)-float64(g.W)/2)*cs
			if onGridLine(wx, cs) || onGridLine(wz, cs) {
				g.Set(x, y, cellGrid)
			}
		}
	}

	for _, p := range s.Particles() {
		cx, cy := s.worldToCell(p.Position)
		s.stamp(cx, cy, 2, cellParticles)
	}
	for _, p := range s.pings {
		cx, cy := s.worldToCell(p.pos)
		s.stamp(cx, cy, 1, cellPing)
	}
	s.stamp(float64(g.W)/2, float64(g.H)/2, 1, cellListener)
}

func onGridLine(w, cellSize float64) bool {
	m := math.Mod(w, gridLineEvery)
	if m < 0 {
		m += gridLineEvery
	}
	return m < cellSize
}

func (s *Session) stamp(cx, cy float64, r int, v uint8) {
	x0, y0 := int(math.Floor(cx)), int(math.Floor(cy))
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				s.grid.Set(x0+dx, y0+dy, v)
			}
		}
	}
}

// PingMask returns per-cell intensities of recent ambient sounds, fading over
// their lifetime.
func (s *Session) PingMask() []float32 {
	mask := make([]float32, s.opts.View.W*s.opts.View.H)
	for _, p := range s.pings {
		fade := 1 - (s.frame.NowS-p.atS)/pingLifeS
		if fade <= 0 {
			continue
		}
		cx, cy := s.worldToCell(p.pos)
		s.splat(mask, cx, cy, pingRadius, fade)
	}
	return mask
}

// GustMask returns per-cell intensities around live gust particles, scaled
// by the current gust factor.
func (s *Session) GustMask() []float32 {
	mask := make([]float32, s.opts.View.W*s.opts.View.H)
	gf := s.Weather.Wind.GustFactor
	if gf <= 0 {
		return mask
	}
	for _, p := range s.Particles() {
		if !p.Playing {
			continue
		}
		cx, cy := s.worldToCell(p.Position)
		s.splat(mask, cx, cy, gustRadius, math.Min(1, gf))
	}
	return mask
}

func (s *Session) splat(mask []float32, cx, cy, radius, weight float64) {
	w, h := s.opts.View.W, s.opts.View.H
	r := int(math.Ceil(radius))
	x0, y0 := int(math.Floor(cx)), int(math.Floor(cy))
	for y := y0 - r; y <= y0+r; y++ {
		if y < 0 || y >= h {
			continue
		}
		for x := x0 - r; x <= x0+r; x++ {
			if x < 0 || x >= w {
				continue
			}
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			v := float32(weight * (1 - d/radius))
			if v > mask[y*w+x] {
				mask[y*w+x] = v
			}
		}
	}
}

// WindVectorAt samples the horizontal wind at grid coordinates. The gust
// factor adds a travelling ripple on top of the uniform ambient wind.
func (s *Session) WindVectorAt(x, y float64) (float64, float64) {
	v := s.Weather.Wind.Vector()
	gf := s.Weather.Wind.GustFactor
	if gf == 0 {
		return v.X, v.Z
	}
	t := s.frame.NowS
	ripple := 1 + 0.5*gf*math.Sin(x*0.3+t*4)*math.Cos(y*0.3-t*3)
	return v.X * ripple, v.Z * ripple
}
