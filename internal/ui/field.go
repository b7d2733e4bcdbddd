package ui

import (
	"image/color"
	"math"

	"zonefx/internal/core"
)

// windSample is one arrow anchor: grid coordinates and their screen position.
type windSample struct {
	cx, cy float64
	sx, sy float64
}

// sampleGrid spreads roughly targetSamples anchors evenly over the grid and
// returns them with the spacing in screen pixels.
func sampleGrid(size core.Size, scale int) ([]windSample, float64) {
	if size.W <= 0 || size.H <= 0 {
		return nil, 0
	}
	if scale <= 0 {
		scale = 1
	}
	const (
		targetSamples = 240.0
		minSpacing    = 6
		maxSpacing    = 20
	)
	spacing := int(math.Sqrt(float64(size.W*size.H) / targetSamples))
	spacing = min(max(spacing, minSpacing), maxSpacing)

	countX := (size.W + spacing - 1) / spacing
	countY := (size.H + spacing - 1) / spacing
	startX := max((size.W-1-(countX-1)*spacing)/2, 0)
	startY := max((size.H-1-(countY-1)*spacing)/2, 0)

	out := make([]windSample, 0, countX*countY)
	for yi := 0; yi < countY; yi++ {
		cy := float64(min(startY+yi*spacing, size.H-1)) + 0.5
		for xi := 0; xi < countX; xi++ {
			cx := float64(min(startX+xi*spacing, size.W-1)) + 0.5
			out = append(out, windSample{cx: cx, cy: cy, sx: cx * float64(scale), sy: cy * float64(scale)})
		}
	}
	return out, float64(spacing * scale)
}

// arrow is a wind glyph in screen space: a body from tail to neck and two
// head strokes ending at the tip.
type arrow struct {
	tailX, tailY   float64
	neckX, neckY   float64
	tipX, tipY     float64
	leftX, leftY   float64
	rightX, rightY float64
	thickness      float64
	col            color.RGBA
}

const (
	calmThreshold    = 0.05
	maxSpeedEstimate = 1.0
)

// windArrow builds the glyph for the wind (vx, vy) at s. Calm samples report
// false and are drawn as dots.
func windArrow(s windSample, vx, vy, span float64, scale int) (arrow, bool) {
	speed := math.Hypot(vx, vy)
	if speed < calmThreshold {
		return arrow{}, false
	}
	const (
		headAngle    = math.Pi / 6
		minThickness = 0.65
		maxThickness = 1.05
	)
	nx, ny := vx/speed, vy/speed
	norm := clamp01(speed / maxSpeedEstimate)
	minLen, maxLen := span*0.35, span*0.7
	length := minLen + (maxLen-minLen)*math.Sqrt(norm)
	head := math.Min(length*0.3, float64(scale)*4.5)
	tail := length * 0.4

	a := arrow{
		tailX:     s.sx - nx*tail,
		tailY:     s.sy - ny*tail,
		tipX:      s.sx + nx*(length-tail),
		tipY:      s.sy + ny*(length-tail),
		thickness: math.Max(1, float64(scale)*(minThickness+(maxThickness-minThickness)*norm)),
		col:       windColor(norm),
	}
	a.neckX, a.neckY = a.tipX-nx*head, a.tipY-ny*head
	angle := math.Atan2(ny, nx)
	a.leftX = a.tipX - math.Cos(angle+headAngle)*head
	a.leftY = a.tipY - math.Sin(angle+headAngle)*head
	a.rightX = a.tipX - math.Cos(angle-headAngle)*head
	a.rightY = a.tipY - math.Sin(angle-headAngle)*head
	return a, true
}

func windColor(t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: uint8(math.Round(80 + 70*t)),
		G: uint8(math.Round(170 + 70*t)),
		B: uint8(math.Round(230 + 20*t)),
		A: uint8(math.Round(150 + 90*t)),
	}
}

// maskPixels writes a glowing tint for every positive mask cell into buf and
// clears the rest.
func maskPixels(buf []byte, mask []float32, tint color.RGBA) {
	const (
		maxAlpha      = 140.0
		glowBase      = 0.35
		glowRange     = 0.65
		intensityBias = 0.75
	)
	for i, m := range mask {
		base := i * 4
		v := clamp01(float64(m))
		if v == 0 {
			buf[base+0], buf[base+1], buf[base+2], buf[base+3] = 0, 0, 0, 0
			continue
		}
		glow := glowBase + glowRange*math.Sqrt(v)
		buf[base+0] = scaleComponent(tint.R, glow)
		buf[base+1] = scaleComponent(tint.G, glow)
		buf[base+2] = scaleComponent(tint.B, glow)
		buf[base+3] = uint8(math.Round(maxAlpha * math.Pow(v, intensityBias)))
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleComponent(value uint8, factor float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, float64(value)*factor))))
}
