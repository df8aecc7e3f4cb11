package app

import (
	"testing"

	"doomfire/internal/core"
)

func TestLayoutSizeHidesPanel(t *testing.T) {
	grid := core.Size{W: 40, H: 30}
	if w, h := layoutSize(grid, 4, 220, true); w != 380 || h != 120 {
		t.Fatalf("with panel = %dx%d", w, h)
	}
	if w, h := layoutSize(grid, 4, 220, false); w != 160 || h != 120 {
		t.Fatalf("hidden panel must not reserve width, got %dx%d", w, h)
	}
	if w, _ := layoutSize(grid, 2, -5, true); w != 80 {
		t.Fatalf("negative panel width must be ignored, got %d", w)
	}
}
