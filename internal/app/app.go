//go:build ebiten

package app

import (
	"time"

	"zonefx/internal/render"
	"zonefx/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hudWidth is the width in pixels of the parameter panel.
const hudWidth = 260

var keyCommands = map[ebiten.Key]Command{
	ebiten.KeySpace: CmdTogglePause,
	ebiten.KeyEnter: CmdResume,
	ebiten.KeyN:     CmdStepOnce,
	ebiten.KeyR:     CmdReset,
	ebiten.KeyS:     CmdReseed,
	ebiten.KeyI:     CmdToggleIndoor,
	ebiten.KeyP:     CmdTogglePickable,
	ebiten.KeyE:     CmdSetEffector,
	ebiten.KeyU:     CmdRestoreEffector,
	ebiten.KeyD:     CmdDisconnect,
	ebiten.KeyK:     CmdSkipIntro,
}

// Game adapts a session controller to the ebiten.Game interface.
type Game struct {
	ctrl    *Controller
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale int
	dt    time.Duration
}

// New constructs a Game for the runtime, stepping tps frames per second.
func New(rt *Runtime, scale, tps int) *Game {
	s := rt.Session
	size := s.Size()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return &Game{
		ctrl:    NewController(s, nil, nil),
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(s, scale),
		hud:     ui.NewHUD(s, hudWidth),
		scale:   scale,
		dt:      time.Second / time.Duration(tps),
	}
}

// Update handles input and advances the session by one frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, cmd := range keyCommands {
		if inpututil.IsKeyJustPressed(key) {
			g.ctrl.Handle(cmd)
		}
	}

	var dx, dz float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dz--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dz++
	}
	g.ctrl.Move(dx, dz, g.dt)

	g.overlay.Update()
	g.hud.Update(g.viewWidth())
	g.ctrl.Tick(g.dt)
	return nil
}

// Draw renders the session grid, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.ctrl.Session()
	g.painter.Blit(screen, s.Cells(), s.Palette(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := g.ctrl.Session().Size()
	return g.viewWidth() + hudWidth, size.H * g.scale
}

func (g *Game) viewWidth() int { return g.ctrl.Session().Size().W * g.scale }
