// Package fire implements the Doom fire cellular automaton: an intensity
// grid that decays and propagates upward each tick, fed by a bottom source
// row that ramps in when lit and is zeroed when extinguished.
package fire

import (
	"image/color"
	"log"
	"math"

	"doomfire/internal/core"
)

// jitterCoefficient scales the decay into a leftward write offset.
const jitterCoefficient = 0.005

// maxDecay is the largest decay a single draw may apply.
const maxDecay = MaxIntensity + 1

var (
	_ core.Sim               = (*Engine)(nil)
	_ core.ParameterProvider = (*Engine)(nil)
)

// Random supplies uniform draws in [0, 1).
type Random interface {
	Float64() float64
}

// Engine owns the intensity and color buffers plus the source state machine.
// It is not safe for concurrent use; hosts serialize Tick and Toggle and only
// read Colors between ticks.
type Engine struct {
	cfg       Config
	decayStep float64

	grid   *core.ByteGrid
	colors []color.RGBA
	rng    Random

	lit       bool
	ignitedAt int64

	ticks     int64
	anomalies int
	logger    *log.Logger
}

// New creates an engine for a width x height grid with default settings.
func New(width, height int, o Orientation) (*Engine, error) {
	cfg := DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.Orientation = o
	return NewWithConfig(cfg)
}

// NewWithConfig creates an engine from cfg. The grid starts cold and the
// source extinguished; call Toggle to light it.
func NewWithConfig(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:       cfg,
		decayStep: cfg.EffectiveDecayStep(),
		grid:      core.NewByteGrid(cfg.Width, cfg.Height),
		colors:    make([]color.RGBA, cfg.Width*cfg.Height),
		rng:       core.NewRNG(cfg.Seed),
		logger:    log.New(log.Writer(), "[fire] ", log.Flags()),
	}
	e.repaint()
	return e, nil
}

// SetLogger replaces the logger used for clamp anomalies. A nil logger
// silences them; they are still counted.
func (e *Engine) SetLogger(l *log.Logger) { e.logger = l }

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "doomfire" }

// Size returns the grid dimensions.
func (e *Engine) Size() core.Size { return core.Size{W: e.grid.W, H: e.grid.H} }

// Config returns the settings the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Cells exposes the intensity buffer. Callers must not write to it.
func (e *Engine) Cells() []uint8 { return e.grid.Cells() }

// Colors exposes the color buffer for presentation. It is valid until the
// next Tick and must not be written to.
func (e *Engine) Colors() []color.RGBA { return e.colors }

// Lit reports whether the source row is emitting.
func (e *Engine) Lit() bool { return e.lit }

// Ticks returns the number of completed ticks.
func (e *Engine) Ticks() int64 { return e.ticks }

// Anomalies returns how many out-of-range intensities have been clamped.
func (e *Engine) Anomalies() int { return e.anomalies }

// Reset returns the engine to its freshly constructed state and reseeds the
// decay RNG. A zero seed falls back to the configured one.
func (e *Engine) Reset(seed int64) {
	if seed == 0 {
		seed = e.cfg.Seed
	}
	e.rng = core.NewRNG(seed)
	e.grid.Clear()
	e.repaint()
	e.lit = false
	e.ignitedAt = 0
	e.ticks = 0
	e.anomalies = 0
}

// Tick maintains the source row and then runs one propagation step.
func (e *Engine) Tick(nowMillis int64) {
	e.MaintainSource(nowMillis)
	e.Step()
	e.ticks++
}

// Toggle flips between lit and extinguished and restarts the ignition clock.
func (e *Engine) Toggle(nowMillis int64) {
	e.ignitedAt = nowMillis
	if e.lit {
		e.lit = false
		e.Extinguish()
		return
	}
	e.lit = true
	e.MaintainSource(nowMillis)
}

// MaintainSource ramps a lit source row toward full intensity. The ramp
// advances one intensity per RampMillis since ignition and freezes once the
// last cell is saturated.
func (e *Engine) MaintainSource(nowMillis int64) {
	if !e.lit || e.grid.Len() == 0 || e.grid.Last() >= MaxIntensity {
		return
	}
	elapsed := nowMillis - e.ignitedAt
	ramp := elapsed / e.cfg.RampMillis
	if elapsed < 0 {
		ramp = -1
	}
	level, clamped := clampIntensity(ramp)
	if clamped {
		e.anomaly("ignition ramp %d clamped to %d (elapsed %dms)", ramp, level, elapsed)
	}
	e.fillSource(level)
}

// Extinguish zeroes the source row. The fire above it dies out over the
// following steps.
func (e *Engine) Extinguish() {
	e.fillSource(0)
}

// Step runs one propagation tick. Each scanned cell takes the intensity of
// the cell below it minus a random decay, written at an index shifted left
// by jitterCoefficient*decay (truncated). Portrait grids only rescan their
// lower half.
func (e *Engine) Step() {
	w, h := e.grid.W, e.grid.H
	cells := e.grid.Cells()
	total := len(cells)

	start := 0
	if e.cfg.Orientation == Portrait {
		start = h / 2
	}

	for row := start; row < h; row++ {
		offset := row * w
		for col := 0; col < w; col++ {
			current := col + offset
			below := current + w
			if below >= total {
				break
			}

			raw := math.Floor(e.rng.Float64() * e.decayStep)
			var decay int64
			switch {
			case raw >= 0 && raw <= maxDecay:
				decay = int64(raw)
			case raw < 0:
				e.anomaly("decay %g at cell %d clamped to 0", raw, current)
			default:
				e.anomaly("decay %g at cell %d clamped to %d", raw, current, maxDecay)
				decay = maxDecay
			}
			intensity := int64(cells[below]) - decay
			if intensity < 0 {
				intensity = 0
			}

			target := int(float64(current) - jitterCoefficient*float64(decay))
			if target < 0 {
				target = current
			}

			level, clamped := clampIntensity(intensity)
			if clamped {
				e.anomaly("intensity %d at cell %d clamped to %d", intensity, target, level)
			}
			cells[target] = level
			e.colors[target] = palette[level]
		}
	}
}

func (e *Engine) fillSource(level uint8) {
	row := e.grid.H - 1
	src := e.grid.Row(row)
	c := palette[level]
	offset := e.grid.Index(0, row)
	for i := range src {
		src[i] = level
		e.colors[offset+i] = c
	}
}

func (e *Engine) repaint() {
	for i, v := range e.grid.Cells() {
		e.colors[i] = palette[v]
	}
}

func (e *Engine) anomaly(format string, args ...any) {
	e.anomalies++
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
