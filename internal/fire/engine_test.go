package fire

import (
	"bytes"
	"errors"
	"io"
	"log"
	"slices"
	"strings"
	"testing"

	"doomfire/internal/core"
)

type fixedRandom float64

func (f fixedRandom) Float64() float64 { return float64(f) }

const (
	decayZero fixedRandom = 0
	decayOne  fixedRandom = 0.99
)

func newTestEngine(t *testing.T, w, h int, o Orientation, r Random) *Engine {
	t.Helper()
	e, err := New(w, h, o)
	if err != nil {
		t.Fatalf("New(%d, %d, %s): %v", w, h, o, err)
	}
	e.SetLogger(log.New(io.Discard, "", 0))
	if r != nil {
		e.rng = r
	}
	return e
}

func assertConsistent(t *testing.T, e *Engine) {
	t.Helper()
	cells := e.Cells()
	colors := e.Colors()
	if len(cells) != len(colors) {
		t.Fatalf("cells %d and colors %d differ in length", len(cells), len(colors))
	}
	for i, v := range cells {
		if v > MaxIntensity {
			t.Fatalf("cell %d intensity %d out of range", i, v)
		}
		if colors[i] != palette[v] {
			t.Fatalf("cell %d color %v does not match palette[%d]=%v", i, colors[i], v, palette[v])
		}
	}
}

func row(e *Engine, y int) []uint8 {
	w := e.Size().W
	return e.Cells()[y*w : (y+1)*w]
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	cases := []struct{ w, h int }{{0, 4}, {4, 0}, {-1, 3}, {0, 0}}
	for _, tc := range cases {
		e, err := New(tc.w, tc.h, Landscape)
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("New(%d, %d) error = %v, want ErrInvalidConfiguration", tc.w, tc.h, err)
		}
		if e != nil {
			t.Fatalf("New(%d, %d) returned a partial engine", tc.w, tc.h)
		}
	}
}

func TestNewStartsColdAndExtinguished(t *testing.T) {
	e := newTestEngine(t, 8, 6, Portrait, nil)
	if e.Lit() {
		t.Fatal("new engine must start extinguished")
	}
	if got := len(e.Cells()); got != 48 {
		t.Fatalf("expected 48 cells, got %d", got)
	}
	for i, v := range e.Cells() {
		if v != 0 {
			t.Fatalf("cell %d not zeroed: %d", i, v)
		}
	}
	assertConsistent(t, e)
}

func TestTickKeepsBoundsAndColors(t *testing.T) {
	for _, o := range []Orientation{Portrait, Landscape} {
		cfg := DefaultConfig()
		cfg.Width, cfg.Height, cfg.Orientation, cfg.Seed = 20, 30, o, 1
		e, err := NewWithConfig(cfg)
		if err != nil {
			t.Fatal(err)
		}
		e.SetLogger(log.New(io.Discard, "", 0))

		now := int64(0)
		e.Toggle(now)
		for i := 0; i < 400; i++ {
			now += 16
			if i == 250 {
				e.Toggle(now)
			}
			e.Tick(now)
			assertConsistent(t, e)
		}
		if e.Ticks() != 400 {
			t.Fatalf("%s: expected 400 ticks, got %d", o, e.Ticks())
		}
	}
}

func TestStepDecayOneLandscape(t *testing.T) {
	e := newTestEngine(t, 5, 4, Landscape, decayOne)
	w, h := 5, 4
	cells := e.Cells()
	for i := range cells {
		cells[i] = uint8((i * 7) % PaletteSize)
	}
	e.repaint()
	pre := slices.Clone(cells)

	e.Step()

	// Decay 1 shifts every write one cell left, so cell j ends up holding
	// the decayed value from below its right-hand neighbour.
	for j := 0; j < (h-1)*w-1; j++ {
		want := int(pre[j+1+w]) - 1
		if want < 0 {
			want = 0
		}
		if int(cells[j]) != want {
			t.Fatalf("cell %d = %d, want %d", j, cells[j], want)
		}
	}
	if cells[(h-1)*w-1] != pre[(h-1)*w-1] {
		t.Fatal("last cell above the source row has no writer and must keep its value")
	}
	if !slices.Equal(row(e, h-1), pre[(h-1)*w:]) {
		t.Fatal("Step must never write the source row")
	}
	assertConsistent(t, e)
}

func TestStepDecayZeroCopiesUpward(t *testing.T) {
	e := newTestEngine(t, 4, 5, Landscape, decayZero)
	cells := e.Cells()
	for i := range cells {
		cells[i] = uint8(i % PaletteSize)
	}
	e.repaint()
	pre := slices.Clone(cells)

	e.Step()

	for j := 0; j < 4*4; j++ {
		if cells[j] != pre[j+4] {
			t.Fatalf("cell %d = %d, want %d", j, cells[j], pre[j+4])
		}
	}
	assertConsistent(t, e)
}

func TestExtinguishDrains(t *testing.T) {
	const w, h = 6, 5
	e := newTestEngine(t, w, h, Landscape, decayOne)

	e.Toggle(0)
	now := int64(2880)
	for i := 0; i < h; i++ {
		e.Tick(now)
		now++
	}
	for _, v := range row(e, h-1) {
		if v != MaxIntensity {
			t.Fatalf("expected saturated source row, got %v", row(e, h-1))
		}
	}

	e.Toggle(now)
	if e.Lit() {
		t.Fatal("toggle from lit must extinguish")
	}
	for _, v := range row(e, h-1) {
		if v != 0 {
			t.Fatalf("extinguish must zero the source row, got %v", row(e, h-1))
		}
	}

	for i := 0; i < h; i++ {
		e.Step()
	}
	for i, v := range e.Cells() {
		if v != 0 {
			t.Fatalf("cell %d still burning at %d after %d steps", i, v, h)
		}
	}
	assertConsistent(t, e)
}

func TestIgnitionRampsAndFreezes(t *testing.T) {
	var logs bytes.Buffer
	e := newTestEngine(t, 4, 4, Landscape, decayZero)
	e.SetLogger(log.New(&logs, "", 0))

	const t0 = 1000
	e.Toggle(t0)
	if !e.Lit() {
		t.Fatal("toggle from extinguished must light the source")
	}

	e.Tick(t0 + 160)
	for _, v := range row(e, 3) {
		if v != 2 {
			t.Fatalf("expected ramp intensity 2 at +160ms, got %v", row(e, 3))
		}
	}
	assertConsistent(t, e)

	e.Tick(t0 + 3000)
	for _, v := range row(e, 3) {
		if v != MaxIntensity {
			t.Fatalf("expected ramp clamped to %d at +3000ms, got %v", MaxIntensity, row(e, 3))
		}
	}
	if e.Anomalies() != 1 {
		t.Fatalf("expected one clamp anomaly, got %d", e.Anomalies())
	}
	if !strings.Contains(logs.String(), "clamped") {
		t.Fatalf("expected clamp to be logged, got %q", logs.String())
	}

	for _, now := range []int64{t0 + 3016, t0 + 10000, t0 + 60000} {
		e.Tick(now)
		for _, v := range row(e, 3) {
			if v != MaxIntensity {
				t.Fatalf("saturated source must hold at %d, got %v", MaxIntensity, row(e, 3))
			}
		}
	}
	if e.Anomalies() != 1 {
		t.Fatalf("saturated source must stop writing, got %d anomalies", e.Anomalies())
	}
}

func TestRampBeforeIgnitionIsClamped(t *testing.T) {
	e := newTestEngine(t, 3, 3, Landscape, decayZero)
	e.Toggle(1000)
	e.Tick(500)
	if e.Anomalies() != 1 {
		t.Fatalf("expected a clamp anomaly for a clock running backwards, got %d", e.Anomalies())
	}
	for _, v := range row(e, 2) {
		if v != 0 {
			t.Fatalf("expected source clamped to 0, got %v", row(e, 2))
		}
	}
}

func TestExtinguishedSourceIsNotMaintained(t *testing.T) {
	e := newTestEngine(t, 3, 3, Landscape, decayZero)
	e.MaintainSource(5000)
	for _, v := range row(e, 2) {
		if v != 0 {
			t.Fatalf("extinguished source must not ramp, got %v", row(e, 2))
		}
	}
}

func TestPortraitScanRestriction(t *testing.T) {
	const w, h = 10, 10
	e := newTestEngine(t, w, h, Portrait, decayZero)
	cells := e.Cells()
	for y := 0; y < h-1; y++ {
		for x := 0; x < w; x++ {
			cells[y*w+x] = uint8(17 + y)
		}
	}
	e.repaint()
	upper := slices.Clone(cells[:5*w])

	e.Step()

	if !slices.Equal(cells[:5*w], upper) {
		t.Fatal("portrait Step must not modify rows 0..4")
	}
	for y := 5; y < h-1; y++ {
		want := uint8(17 + y + 1)
		if y == h-2 {
			want = 0
		}
		for _, v := range row(e, y) {
			if v != want {
				t.Fatalf("row %d = %v, want all %d", y, row(e, y), want)
			}
		}
	}

	e.Toggle(0)
	for now := int64(16); now < 4000; now += 16 {
		e.Tick(now)
		if !slices.Equal(cells[:5*w], upper) {
			t.Fatalf("rows 0..4 changed at %dms", now)
		}
	}
	assertConsistent(t, e)
}

func TestPortraitRandomDecayOnlyDriftsIntoBandEdge(t *testing.T) {
	const w, h = 10, 10
	e := newTestEngine(t, w, h, Portrait, core.NewRNG(3))
	cells := e.Cells()
	for i := 0; i < 5*w; i++ {
		cells[i] = 9
	}
	e.repaint()

	e.Toggle(0)
	for now := int64(16); now < 4000; now += 16 {
		e.Tick(now)
	}
	for i := 0; i < 5*w-1; i++ {
		if cells[i] != 9 {
			t.Fatalf("cell %d above the portrait band changed to %d", i, cells[i])
		}
	}
	assertConsistent(t, e)
}

func TestScenarioLandscapeFullRamp(t *testing.T) {
	e := newTestEngine(t, 4, 4, Landscape, decayZero)
	for _, v := range row(e, 3) {
		if v != 0 {
			t.Fatal("source row must start at 0")
		}
	}

	e.Toggle(0)
	e.Tick(2880)
	e.Tick(2881)

	full := []uint8{36, 36, 36, 36}
	if !slices.Equal(row(e, 3), full) {
		t.Fatalf("source row = %v, want %v", row(e, 3), full)
	}
	if !slices.Equal(row(e, 2), full) {
		t.Fatalf("row above source = %v, want %v", row(e, 2), full)
	}
	if !slices.Equal(row(e, 1), full) {
		t.Fatalf("row 1 = %v, want %v", row(e, 1), full)
	}
	if !slices.Equal(row(e, 0), []uint8{0, 0, 0, 0}) {
		t.Fatalf("row 0 = %v, want cold", row(e, 0))
	}
	assertConsistent(t, e)
}

func TestOversizedDecayIsClamped(t *testing.T) {
	for _, r := range []fixedRandom{1e300, -5} {
		e := newTestEngine(t, 6, 4, Landscape, r)
		e.Toggle(0)
		e.Tick(3000)
		assertConsistent(t, e)
		if e.Anomalies() < 6*3 {
			t.Fatalf("draw %g: expected every scanned cell to count an anomaly, got %d", float64(r), e.Anomalies())
		}
	}

	e := newTestEngine(t, 6, 4, Landscape, fixedRandom(1e300))
	e.Toggle(0)
	e.Tick(3000)
	for y := 0; y < 3; y++ {
		for x, v := range row(e, y) {
			if v != 0 {
				t.Fatalf("cell (%d,%d) = %d, full decay must burn out everything above the source", x, y, v)
			}
		}
	}
}

func TestDegenerateGridsDoNotPanic(t *testing.T) {
	sizes := []core.Size{{W: 1, H: 1}, {W: 1, H: 7}, {W: 7, H: 1}, {W: 2, H: 2}}
	for _, s := range sizes {
		for _, o := range []Orientation{Portrait, Landscape} {
			e := newTestEngine(t, s.W, s.H, o, core.NewRNG(5))
			e.Toggle(0)
			for now := int64(0); now < 4000; now += 40 {
				e.Tick(now)
			}
			e.Toggle(4000)
			e.Tick(4040)
			assertConsistent(t, e)
		}
	}
}

func TestSameSeedSameFire(t *testing.T) {
	run := func() []uint8 {
		cfg := DefaultConfig()
		cfg.Width, cfg.Height, cfg.Seed = 16, 12, 42
		e, err := NewWithConfig(cfg)
		if err != nil {
			t.Fatal(err)
		}
		e.Toggle(0)
		for now := int64(10); now < 3000; now += 10 {
			e.Tick(now)
		}
		return slices.Clone(e.Cells())
	}
	if !slices.Equal(run(), run()) {
		t.Fatal("engines with the same seed must evolve identically")
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	e := newTestEngine(t, 6, 6, Landscape, nil)
	e.Toggle(0)
	for now := int64(100); now < 3000; now += 100 {
		e.Tick(now)
	}
	e.Reset(9)
	if e.Lit() || e.Ticks() != 0 || e.Anomalies() != 0 {
		t.Fatal("Reset must extinguish and clear counters")
	}
	for i, v := range e.Cells() {
		if v != 0 {
			t.Fatalf("cell %d not cleared by Reset: %d", i, v)
		}
	}
	assertConsistent(t, e)
}

func TestParametersReflectState(t *testing.T) {
	e := newTestEngine(t, 6, 4, Landscape, decayZero)
	e.Toggle(250)

	snap := e.Parameters()
	checks := map[string]string{
		"w":           "6",
		"h":           "4",
		"orientation": "landscape",
		"decay_step":  "1.5",
		"lit":         "true",
		"ignited_at":  "250",
		"ramp_millis": "80",
	}
	for key, want := range checks {
		p, ok := snap.Lookup(key)
		if !ok {
			t.Fatalf("missing parameter %q", key)
		}
		if p.Value != want {
			t.Fatalf("parameter %q = %q, want %q", key, p.Value, want)
		}
	}
	if p, _ := snap.Lookup("decay_step"); p.Description == "" {
		t.Fatal("decay step should carry a description")
	}
	for _, g := range snap.Groups {
		if g.Name == "Source" && g.Summary != "burning" {
			t.Fatalf("source summary = %q, want burning", g.Summary)
		}
	}
	e.Toggle(300)
	for _, g := range e.Parameters().Groups {
		if g.Name == "Source" && g.Summary != "extinguished" {
			t.Fatalf("source summary after toggle = %q, want extinguished", g.Summary)
		}
	}
}
