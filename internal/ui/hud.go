//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"zonefx/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type statusProvider interface {
	StatusLines() []string
}

var (
	colTitle    = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	colLabel    = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	colDim      = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	colStatus   = color.RGBA{R: 150, G: 200, B: 160, A: 255}
	colPanel    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	colButton   = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	colButtonFg = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	colDisabled = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	colDisabFg  = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

// HUD renders the parameter panel and status readout to the right of the view.
type HUD struct {
	scene      core.Scene
	width      int
	panel      *ebiten.Image
	lastHeight int
	status     []string

	controls     []controlState
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the scene with the given panel width.
func NewHUD(scene core.Scene, width int) *HUD {
	h := &HUD{scene: scene, width: max(width, 0), title: buildTitle(scene)}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if p, ok := scene.(core.ParameterControlsProvider); ok {
		h.controls = newControlStates(p.ParameterControls())
		layoutControls(h.controls, h.width)
	}
	h.intSetter, _ = scene.(core.IntParameterSetter)
	h.floatSetter, _ = scene.(core.FloatParameterSetter)
	return h
}

// Update refreshes values from the scene and handles button clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	if p, ok := h.scene.(parameterProvider); ok {
		refreshControls(h.controls, p.Parameters())
	}
	if p, ok := h.scene.(statusProvider); ok {
		h.status = p.StatusLines()
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	if i, dir, ok := hit(h.controls, mx-h.panelOffsetX, my); ok {
		h.controls[i].apply(dir, h.intSetter, h.floatSetter)
	}
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.scene.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(colPanel)
	bottom := h.drawControls()
	h.drawStatus(bottom)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(scene core.Scene) string {
	if scene == nil || scene.Name() == "" {
		return "Controls"
	}
	name := scene.Name()
	return fmt.Sprintf("%s controls", strings.ToUpper(name[:1])+name[1:])
}

// drawControls returns the y coordinate below the last row.
func (h *HUD) drawControls() int {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, colTitle)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, headerY+infoSpacing, colDim)
		return headerY + infoSpacing
	}
	bottom := controlsTop
	for i := range h.controls {
		s := &h.controls[i]
		y := s.top + labelBaseline
		text.Draw(h.panel, s.control.Label, face, panelPadding, y, colLabel)
		valueColor := colLabel
		if !s.hasValue {
			valueColor = colDim
		}
		w := text.BoundString(face, s.value).Dx()
		text.Draw(h.panel, s.value, face, s.minusRect.Min.X-buttonGap-w, y, valueColor)

		_, minus := s.target(-1)
		_, plus := s.target(1)
		h.drawButton(s.minusRect, "-", minus)
		h.drawButton(s.plusRect, "+", plus)
		bottom = s.top + lineHeight
	}
	return bottom
}

func (h *HUD) drawStatus(top int) {
	face := basicfont.Face7x13
	y := top + statusSpacing
	for _, line := range h.status {
		if y > h.lastHeight-panelPadding {
			return
		}
		text.Draw(h.panel, line, face, panelPadding, y, colStatus)
		y += statusSpacing
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg, fg := colButton, colButtonFg
	if !enabled {
		bg, fg = colDisabled, colDisabFg
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
