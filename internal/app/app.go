//go:build ebiten

package app

import (
	"doomfire/internal/core"
	"doomfire/internal/fire"
	"doomfire/internal/render"
	"doomfire/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a fire engine to the ebiten.Game interface.
type Game struct {
	engine  *fire.Engine
	painter *render.GridPainter
	hud     *ui.HUD
	clock   *core.Clock
	stepper *core.FixedStep

	scale     int
	paused    bool
	tickOnce  bool
	showPanel bool
}

// New constructs a Game for the provided configuration and lights the fire.
func New(cfg fire.Config, scale, ticksPerSecond, panelWidth int) (*Game, error) {
	engine, err := fire.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	if scale < 1 {
		scale = 1
	}
	g := &Game{
		engine:    engine,
		painter:   render.NewGridPainter(cfg.Width, cfg.Height),
		hud:       ui.NewHUD(engine, panelWidth),
		clock:     core.NewClock(),
		stepper:   core.NewFixedStep(ticksPerSecond),
		scale:     scale,
		showPanel: panelWidth > 0,
	}
	g.engine.Toggle(g.clock.Millis())
	return g, nil
}

// Engine exposes the simulation driven by the game.
func (g *Game) Engine() *fire.Engine { return g.engine }

// Reset cools the grid and relights the source.
func (g *Game) Reset() {
	g.engine.Reset(0)
	g.engine.Toggle(g.clock.Millis())
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showPanel = !g.showPanel
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) || g.clickedFire() {
		g.engine.Toggle(g.clock.Millis())
	}

	due := g.stepper.Due()
	if g.paused {
		due = 0
	}
	if g.tickOnce {
		due = 1
		g.tickOnce = false
	}
	now := g.clock.Millis()
	for ; due > 0; due-- {
		g.engine.Tick(now)
	}

	if g.showPanel {
		g.hud.Update()
	}
	return nil
}

func (g *Game) clickedFire() bool {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	x, y := ebiten.CursorPosition()
	s := g.engine.Size()
	return x >= 0 && y >= 0 && x < s.W*g.scale && y < s.H*g.scale
}

// Draw renders the current color buffer and the parameter panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.engine.Colors(), g.scale)
	if g.showPanel {
		g.hud.Draw(screen, g.engine.Size().W*g.scale, g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return layoutSize(g.engine.Size(), g.scale, g.hud.Width(), g.showPanel)
}
