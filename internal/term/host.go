// Package term hosts the fire engine in a terminal. Each character cell
// shows two grid rows using an upper half block: the foreground paints the
// upper row and the background the lower one.
package term

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"doomfire/internal/core"
	"doomfire/internal/fire"

	"github.com/gdamore/tcell/v2"
)

const (
	halfBlock = '▀'
	swatch    = '█'
)

type action int

const (
	actionNone action = iota
	actionToggle
	actionReset
	actionQuit
)

// Options tunes the terminal host.
type Options struct {
	Interval time.Duration
	// AutoOrient picks the orientation from the terminal's aspect on every
	// rebuild instead of using the base config's.
	AutoOrient bool
	Status     bool
}

// Host drives a fire engine sized to a tcell screen.
type Host struct {
	screen tcell.Screen
	base   fire.Config
	opts   Options
	clock  *core.Clock
	logger *log.Logger

	engine    *fire.Engine
	mouseDown bool
}

// NewHost builds a host for screen. Width and height of base are replaced
// by the screen size on every Rebuild.
func NewHost(screen tcell.Screen, base fire.Config, opts Options) *Host {
	if opts.Interval <= 0 {
		opts.Interval = 30 * time.Millisecond
	}
	return &Host{
		screen: screen,
		base:   base,
		opts:   opts,
		clock:  core.NewClock(),
		logger: log.Default(),
	}
}

// SetLogger sets the logger handed to every engine the host builds.
func (h *Host) SetLogger(l *log.Logger) { h.logger = l }

// Engine returns the current engine, nil before the first Rebuild.
func (h *Host) Engine() *fire.Engine { return h.engine }

// GridSize returns the grid dimensions for a terminal of cols x rows cells.
func GridSize(cols, rows int, status bool) (int, int) {
	if status {
		rows--
	}
	return cols, rows * 2
}

// Rebuild recreates the engine for the current screen size. The new engine
// is lit unless the previous one had been extinguished.
func (h *Host) Rebuild() error {
	cols, rows := h.screen.Size()
	cfg := h.base
	cfg.Width, cfg.Height = GridSize(cols, rows, h.opts.Status)
	if h.opts.AutoOrient {
		cfg.Orientation = fire.OrientationFor(cfg.Width, cfg.Height)
	}
	engine, err := fire.NewWithConfig(cfg)
	if err != nil {
		return fmt.Errorf("terminal %dx%d: %w", cols, rows, err)
	}
	engine.SetLogger(h.logger)

	lit := h.engine == nil || h.engine.Lit()
	h.engine = engine
	if lit {
		h.engine.Toggle(h.clock.Millis())
	}
	return nil
}

// Tick advances the engine by one step.
func (h *Host) Tick() {
	if h.engine != nil {
		h.engine.Tick(h.clock.Millis())
	}
}

// Draw paints the color buffer and the optional status line.
func (h *Host) Draw() {
	if h.engine == nil {
		return
	}
	size := h.engine.Size()
	colors := h.engine.Colors()
	for y := 0; y*2 < size.H; y++ {
		upper := y * 2 * size.W
		lower := upper + size.W
		for x := 0; x < size.W; x++ {
			style := tcell.StyleDefault.Foreground(toTcell(colors[upper+x]))
			if lower+x < len(colors) {
				style = style.Background(toTcell(colors[lower+x]))
			}
			h.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	if h.opts.Status {
		h.drawStatus(size)
	}
}

func (h *Host) drawStatus(size core.Size) {
	cols, rows := h.screen.Size()
	state := "OUT"
	stateStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	if h.engine.Lit() {
		state = "LIT"
		stateStyle = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	}
	line := fmt.Sprintf(" %dx%d %s  tick %d  [space] toggle [r] reset [q] quit",
		size.W, size.H, h.engine.Config().Orientation, h.engine.Ticks())

	y := rows - 1
	x := 0
	for _, r := range " " + state {
		h.screen.SetContent(x, y, r, nil, stateStyle)
		x++
	}
	cells := h.engine.Cells()
	source := fire.PaletteColor(int(cells[len(cells)-1]))
	h.screen.SetContent(x, y, swatch, nil, tcell.StyleDefault.Foreground(toTcell(source)))
	x++
	for _, r := range line {
		if x >= cols {
			return
		}
		h.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
	for ; x < cols; x++ {
		h.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

// HandleEvent applies an input event and reports whether the host should quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		if err := h.Rebuild(); err != nil {
			h.logger.Printf("[term] rebuild failed: %v", err)
		}
	case *tcell.EventKey:
		return h.apply(keyAction(ev.Key(), ev.Rune()))
	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !h.mouseDown {
			h.apply(actionToggle)
		}
		h.mouseDown = pressed
	}
	return false
}

func (h *Host) apply(a action) bool {
	switch a {
	case actionQuit:
		return true
	case actionToggle:
		if h.engine != nil {
			h.engine.Toggle(h.clock.Millis())
		}
	case actionReset:
		if h.engine != nil {
			h.engine.Reset(0)
			h.engine.Toggle(h.clock.Millis())
		}
	}
	return false
}

func keyAction(key tcell.Key, r rune) action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyEnter:
		return actionToggle
	case tcell.KeyRune:
		switch r {
		case ' ', 't':
			return actionToggle
		case 'r':
			return actionReset
		case 'q':
			return actionQuit
		}
	}
	return actionNone
}

// Run ticks, draws and handles input until ctx is done or the user quits.
// The screen must already be initialized; Run does not finalize it.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse()
	h.screen.HideCursor()
	if err := h.Rebuild(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(h.screen.PollEvent, events, done)

	ticker := time.NewTicker(h.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if h.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			h.Tick()
			h.Draw()
			h.screen.Show()
		}
	}
}

// pumpEvents forwards polled events until poll returns nil or done closes,
// then closes events.
func pumpEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
