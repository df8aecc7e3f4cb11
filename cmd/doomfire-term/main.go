package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doomfire/internal/fire"
	"doomfire/internal/term"

	"github.com/gdamore/tcell/v2"
	"github.com/integrii/flaggy"
)

func main() {
	var (
		configPath  string
		orientation = "auto"
		seed        int64
		interval    = 30 * time.Millisecond
		noStatus    bool
		logPath     string
	)

	flaggy.SetName("doomfire-term")
	flaggy.SetDescription("Doom fire in the terminal. Space or click toggles the fire.")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&configPath, "c", "config", "YAML fire config file")
	flaggy.String(&orientation, "o", "orientation", "portrait, landscape or auto")
	flaggy.Int64(&seed, "s", "seed", "seed for the decay RNG (0 = clock)")
	flaggy.Duration(&interval, "i", "interval", "time between ticks, for example 30ms")
	flaggy.Bool(&noStatus, "q", "quiet", "hide the status line")
	flaggy.String(&logPath, "l", "log", "write anomaly logs to this file instead of discarding them")
	flaggy.Parse()

	base := fire.DefaultConfig()
	if configPath != "" {
		loaded, err := fire.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		base = loaded
	}
	auto := orientation == "auto"
	if !auto {
		o, err := fire.ParseOrientation(orientation)
		if err != nil {
			flaggy.ShowHelpAndExit(err.Error())
		}
		base.Orientation = o
	}
	if seed != 0 {
		base.Seed = seed
	}

	// The screen owns stderr while running, so engine logs go to a file or nowhere.
	logger := log.New(io.Discard, "", 0)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
		logger = log.New(f, "[fire] ", log.LstdFlags)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	host := term.NewHost(screen, base, term.Options{
		Interval:   interval,
		AutoOrient: auto,
		Status:     !noStatus,
	})
	host.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = host.Run(ctx)
	stop()
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
