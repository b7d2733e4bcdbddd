//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"zonefx/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type maskProvider interface {
	PingMask() []float32
	GustMask() []float32
}

type windFieldProvider interface {
	WindVectorAt(x, y float64) (float64, float64)
}

var (
	pingTint = color.RGBA{R: 64, G: 164, B: 223}
	gustTint = color.RGBA{R: 230, G: 190, B: 90}
	calmDot  = color.RGBA{R: 90, G: 130, B: 170, A: 120}
)

// Overlay draws sound pings, gust areas and the wind field over the scene.
// Keys 1, 2 and 3 toggle the layers.
type Overlay struct {
	scene     core.Scene
	scale     int
	showPings bool
	showGusts bool
	showWind  bool

	maskImg *ebiten.Image
	maskBuf []byte
	pixel   *ebiten.Image

	samples    []windSample
	span       float64
	cachedSize core.Size
}

// NewOverlay constructs an overlay with every layer visible.
func NewOverlay(scene core.Scene, scale int) *Overlay {
	o := &Overlay{scene: scene, scale: max(scale, 1), showPings: true, showGusts: true, showWind: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the layer toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showPings = !o.showPings
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showGusts = !o.showGusts
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showWind = !o.showWind
	}
}

// Draw renders the enabled layers.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.scene.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if p, ok := o.scene.(maskProvider); ok {
		if o.showGusts {
			o.drawMask(screen, size, p.GustMask(), gustTint)
		}
		if o.showPings {
			o.drawMask(screen, size, p.PingMask(), pingTint)
		}
	}
	if o.showWind {
		if p, ok := o.scene.(windFieldProvider); ok {
			o.drawWindField(screen, p, size)
		}
	}
}

func (o *Overlay) drawWindField(screen *ebiten.Image, provider windFieldProvider, size core.Size) {
	if o.cachedSize != size || len(o.samples) == 0 {
		o.samples, o.span = sampleGrid(size, o.scale)
		o.cachedSize = size
	}
	dot := math.Max(o.span*0.18, float64(o.scale)*0.75)
	for _, s := range o.samples {
		vx, vy := provider.WindVectorAt(s.cx, s.cy)
		a, ok := windArrow(s, vx, vy, o.span, o.scale)
		if !ok {
			o.drawPoint(screen, s.sx, s.sy, dot, calmDot)
			continue
		}
		o.drawLine(screen, a.tailX, a.tailY, a.neckX, a.neckY, a.thickness, a.col)
		o.drawLine(screen, a.tipX, a.tipY, a.leftX, a.leftY, a.thickness*0.85, a.col)
		o.drawLine(screen, a.tipX, a.tipY, a.rightX, a.rightY, a.thickness*0.85, a.col)
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawMask(screen *ebiten.Image, size core.Size, mask []float32, tint color.RGBA) {
	total := size.W * size.H
	if len(mask) != total {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}
	maskPixels(o.maskBuf, mask, tint)
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}
