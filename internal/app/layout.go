package app

import "doomfire/internal/core"

// layoutSize returns the logical screen size for a grid drawn at scale with
// an optional side panel.
func layoutSize(grid core.Size, scale, panel int, showPanel bool) (int, int) {
	w := grid.W * scale
	if showPanel && panel > 0 {
		w += panel
	}
	return w, grid.H * scale
}
