//go:build !ebiten

package app

import (
	"errors"

	"doomfire/internal/fire"
)

// ErrNoGUI is returned when the GUI is requested from a headless build.
var ErrNoGUI = errors.New("app.Game requires building with the 'ebiten' tag")

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New reports that the ebiten build tag is required for GUI support.
func New(fire.Config, int, int, int) (*Game, error) {
	return nil, ErrNoGUI
}

// Reset is a no-op placeholder.
func (g *Game) Reset() {}

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error { return ErrNoGUI }

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
