package main

import (
	"flag"
	"log"
	"os"

	"doomfire/internal/fire"
	"doomfire/internal/snapshot"

	"github.com/logrusorgru/aurora"
	"golang.org/x/term"
)

func main() {
	width := flag.Int("w", 0, "grid width in cells (0 = terminal width)")
	height := flag.Int("h", 0, "grid height in cells (0 = fit the terminal)")
	orientation := flag.String("orientation", "", "portrait or landscape (default from the grid aspect)")
	configPath := flag.String("config", "", "YAML fire config file")
	seed := flag.Int64("seed", 1, "seed for the decay RNG")
	ticks := flag.Int("ticks", 240, "number of ticks to simulate")
	interval := flag.Int64("interval", 16, "milliseconds of synthetic clock per tick")
	outAfter := flag.Int("out-after", 0, "extinguish after this many ticks (0 = never)")
	text := flag.Bool("text", false, "print intensity characters instead of colors")
	params := flag.Bool("params", false, "print the engine parameters before the frame")
	pngPath := flag.String("png", "", "also write the frame to this PNG file")
	scale := flag.Int("scale", 4, "PNG pixels per cell")
	showPalette := flag.Bool("palette", false, "print the intensity palette and exit")
	flag.Parse()

	cfg := fire.DefaultConfig()
	if *configPath != "" {
		loaded, err := fire.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}

	fd := int(os.Stdout.Fd())
	tty := term.IsTerminal(fd)
	if *showPalette {
		if err := snapshot.WritePalette(os.Stdout, aurora.NewAurora(tty)); err != nil {
			log.Fatal(err)
		}
		return
	}
	cols, rows := 80, 24
	if tty {
		if w, h, err := term.GetSize(fd); err == nil {
			cols, rows = w, h
		}
	}
	fitW, fitH := snapshot.FitTerminal(cols, rows)
	switch {
	case *width > 0:
		cfg.Width = *width
	case *configPath == "":
		cfg.Width = fitW
	}
	switch {
	case *height > 0:
		cfg.Height = *height
	case *configPath == "":
		cfg.Height = fitH
	}

	if *orientation != "" {
		o, err := fire.ParseOrientation(*orientation)
		if err != nil {
			log.Fatal(err)
		}
		cfg.Orientation = o
	} else if *configPath == "" {
		cfg.Orientation = fire.OrientationFor(cfg.Width, cfg.Height)
	}
	cfg.Seed = *seed

	e, err := snapshot.Simulate(cfg, snapshot.Options{
		Ticks:           *ticks,
		IntervalMillis:  *interval,
		ExtinguishAfter: *outAfter,
	}, log.New(os.Stderr, "[fire] ", log.LstdFlags))
	if err != nil {
		log.Fatal(err)
	}
	frame := snapshot.Capture(e)

	au := aurora.NewAurora(tty)
	if *params {
		if err := snapshot.WriteParameters(os.Stdout, e.Parameters(), au); err != nil {
			log.Fatal(err)
		}
	}
	if *text || !tty {
		err = frame.WriteText(os.Stdout)
	} else {
		err = frame.WriteANSI(os.Stdout, au)
	}
	if err != nil {
		log.Fatal(err)
	}

	if *pngPath != "" {
		f, err := os.Create(*pngPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := frame.WritePNG(f, *scale); err != nil {
			f.Close()
			log.Fatal(err)
		}
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
	}
}
