//go:build ebiten

package ui

import (
	"image/color"
	"strings"

	"doomfire/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 8
	lineHeight   = 15
)

var keyHelp = []string{
	"click/T  toggle fire",
	"space    pause",
	"N        single tick",
	"R        reset",
	"H        hide panel",
	"Q/Esc    quit",
}

// HUD renders the parameter panel to the right of the fire view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
	title      string
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{sim: sim, width: width, title: strings.ToUpper(sim.Name())}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached parameter snapshot from the simulation.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
}

// Draw paints the HUD panel anchored to the right edge of the fire view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		if h.panel != nil {
			h.panel.Dispose()
		}
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawLines()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawLines() {
	face := basicfont.Face7x13
	y := panelPadding + lineHeight
	text.Draw(h.panel, h.title, face, panelPadding, y, color.RGBA{R: 255, G: 200, B: 90, A: 255})
	y += lineHeight + 4

	for _, group := range h.snapshot.Groups {
		heading := group.Name
		if group.Summary != "" {
			heading += " (" + group.Summary + ")"
		}
		text.Draw(h.panel, heading, face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
		y += lineHeight
		for _, p := range group.Params {
			text.Draw(h.panel, " "+p.Label+": "+p.Value, face, panelPadding, y, color.RGBA{R: 160, G: 160, B: 170, A: 255})
			y += lineHeight
		}
		y += 4
	}

	for _, line := range keyHelp {
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 120, G: 120, B: 130, A: 255})
		y += lineHeight
	}
}
