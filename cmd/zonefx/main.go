//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"zonefx/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, flags, logger, err := app.Startup(flag.CommandLine, os.Args[1:], nil)
	if err != nil {
		log.Fatal(err)
	}

	rt, err := app.Build(cfg, flags.Set.Map(), logger)
	if err != nil {
		log.Fatal(err)
	}
	if rt.Player != nil {
		defer rt.Player.StopAll()
	}

	game := app.New(rt, cfg.Window.Scale, cfg.Window.TPS)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle(rt.Session.Name())
	ebiten.SetTPS(cfg.Window.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
