//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"doomfire/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	// The panel sits beside the fire, so only the remaining width is fitted.
	displayW, displayH := ebiten.ScreenSizeInFullscreen()
	fireCfg, err := cfg.FireConfig(displayW-max(cfg.Panel, 0), displayH)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	game, err := app.New(fireCfg, cfg.Scale, cfg.Ticks, cfg.Panel)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("doomfire — " + fireCfg.Orientation.String())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(fireCfg.Width*cfg.Scale+max(cfg.Panel, 0), fireCfg.Height*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
