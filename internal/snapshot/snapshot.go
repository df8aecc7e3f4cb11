// Package snapshot runs the fire engine on a synthetic clock and writes the
// resulting frame as ANSI art, plain text or PNG.
package snapshot

import (
	"bufio"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log"

	"doomfire/internal/core"
	"doomfire/internal/fire"
	"doomfire/internal/render"

	"github.com/logrusorgru/aurora"
)

// textRamp maps intensity to characters, coolest first.
const textRamp = " .,:-=+*%#@"

// minFit is the smallest grid edge FitTerminal returns.
const minFit = 8

// FitTerminal sizes a grid to a terminal of cols x rows characters, two grid
// rows per line, leaving two lines for the prompt. Tiny terminals get minFit.
func FitTerminal(cols, rows int) (int, int) {
	return max(cols, minFit), max((rows-2)*2, minFit)
}

// Options controls a headless run.
type Options struct {
	Ticks          int
	IntervalMillis int64
	// ExtinguishAfter toggles the fire off after that many ticks; zero keeps it lit.
	ExtinguishAfter int
}

// Frame is a copy of an engine's buffers at one instant.
type Frame struct {
	W, H   int
	Cells  []uint8
	Colors []color.RGBA
}

// Simulate lights a new engine at t=0 and ticks it opts.Ticks times.
func Simulate(cfg fire.Config, opts Options, logger *log.Logger) (*fire.Engine, error) {
	e, err := fire.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		e.SetLogger(logger)
	}
	if opts.IntervalMillis <= 0 {
		opts.IntervalMillis = 16
	}

	e.Toggle(0)
	for i := 1; i <= opts.Ticks; i++ {
		now := int64(i) * opts.IntervalMillis
		if opts.ExtinguishAfter > 0 && i == opts.ExtinguishAfter+1 {
			e.Toggle(now)
		}
		e.Tick(now)
	}
	return e, nil
}

// Capture copies the engine's current buffers.
func Capture(e *fire.Engine) Frame {
	s := e.Size()
	return Frame{
		W:      s.W,
		H:      s.H,
		Cells:  append([]uint8(nil), e.Cells()...),
		Colors: append([]color.RGBA(nil), e.Colors()...),
	}
}

// WriteANSI writes the frame with 256-color half blocks, two grid rows per line.
func (f Frame) WriteANSI(w io.Writer, au aurora.Aurora) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < f.H; y += 2 {
		for x := 0; x < f.W; x++ {
			upper := f.Colors[y*f.W+x]
			v := au.Index(xterm256(upper), "▀")
			if y+1 < f.H {
				v = v.BgIndex(xterm256(f.Colors[(y+1)*f.W+x]))
			}
			if _, err := bw.WriteString(v.String()); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteText writes one character per cell from the intensity ramp.
func (f Frame) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	last := len(textRamp) - 1
	for y := 0; y < f.H; y++ {
		for _, v := range f.Cells[y*f.W : (y+1)*f.W] {
			if err := bw.WriteByte(textRamp[int(v)*last/fire.MaxIntensity]); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePNG encodes the frame as a PNG, each cell scale pixels wide.
func (f Frame) WritePNG(w io.Writer, scale int) error {
	return png.Encode(w, render.ToImage(f.Colors, f.W, f.H, scale))
}

// WriteParameters prints a parameter snapshot as an indented list.
func WriteParameters(w io.Writer, snap core.ParameterSnapshot, au aurora.Aurora) error {
	for _, g := range snap.Groups {
		heading := fmt.Sprint(au.Bold(au.Yellow(g.Name)))
		if g.Summary != "" {
			heading += fmt.Sprint(" ", au.Faint("("+g.Summary+")"))
		}
		if _, err := fmt.Fprintln(w, heading); err != nil {
			return err
		}
		for _, p := range g.Params {
			line := fmt.Sprintf("  %s: %s", au.Green(p.Label), p.Value)
			if p.Description != "" {
				line += fmt.Sprint("  ", au.Faint("# "+p.Description))
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// WritePalette prints one swatch per intensity followed by its RGB value.
func WritePalette(w io.Writer, au aurora.Aurora) error {
	for i, c := range fire.Palette() {
		swatch := au.BgIndex(xterm256(c), "    ")
		if _, err := fmt.Fprintf(w, "%2d %s #%02x%02x%02x\n", i, swatch, c.R, c.G, c.B); err != nil {
			return err
		}
	}
	return nil
}

// xterm256 maps a color onto the 6x6x6 cube of the xterm 256-color palette.
func xterm256(c color.RGBA) uint8 {
	q := func(v uint8) uint8 { return uint8((int(v)*5 + 127) / 255) }
	return 16 + 36*q(c.R) + 6*q(c.G) + q(c.B)
}
