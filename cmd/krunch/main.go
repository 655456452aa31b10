package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/lixenwraith/krunch/audio"
	"github.com/lixenwraith/krunch/config"
	"github.com/lixenwraith/krunch/core"
	"github.com/lixenwraith/krunch/dirty"
	"github.com/lixenwraith/krunch/engine"
	"github.com/lixenwraith/krunch/grid"
	"github.com/lixenwraith/krunch/render"
	"github.com/lixenwraith/krunch/scene"
	"github.com/lixenwraith/krunch/status"
	"github.com/lixenwraith/krunch/terminal"
)

var (
	configFlag = flag.String("config", "", "Path to a TOML config file (default krunch.toml when present)")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/krunch.log")
	soundFlag  = flag.Bool("sound", false, "Play audio cues")
	seedFlag   = flag.Int64("seed", 0, "Pattern and trail seed; 0 seeds from the clock")
	boundsFlag = flag.Bool("bounds", false, "Track dirty regions as a single bounding rectangle")
)

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "krunch: stdout is not a terminal")
		os.Exit(2)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, engine.Diagnostic(err))
		os.Exit(2)
	}
	applyFlags(&cfg)

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, engine.Diagnostic(err))
		os.Exit(1)
	}
}

// applyFlags overrides config values with flags given on the command line
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sound":
			cfg.Audio.Enabled = *soundFlag
		case "seed":
			cfg.Scene.Seed = *seedFlag
		case "bounds":
			if *boundsFlag {
				cfg.Dirty.Mode = dirty.ModeBounds.String()
			}
		}
	})
}

// run owns the terminal for the lifetime of the loop and restores it before returning
func run(cfg config.Config) error {
	keys, err := cfg.KeyTable()
	if err != nil {
		return err
	}

	t, err := terminal.New()
	if err != nil {
		return err
	}
	core.SetCrashTerminal(t)
	defer core.SetCrashTerminal(nil)
	defer t.Fini()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	var sound *audio.Player
	if cfg.Audio.Enabled {
		sound = audio.NewPlayer()
		if err := sound.Initialize(); err != nil {
			log.Printf("audio: %v (continuing without audio)", err)
		}
		defer sound.Cleanup()
	}

	reg := status.NewRegistry()
	tracker := dirty.New(core.Rect{}, cfg.DirtyMode())
	background := core.Hex(cfg.Grid.Background)
	comp := render.NewCompositor(t.Screen(), tracker, background, reg)

	g := grid.New(tracker,
		grid.WithBackground(background),
		grid.WithFadeColor(core.Hex(cfg.Grid.Fade)),
		grid.WithFill(core.Hex(cfg.Grid.Cell)),
		grid.WithRadius(cfg.Grid.RadiusX, cfg.Grid.RadiusY),
		grid.WithRegistry(reg),
	)

	w, h := t.Size()
	demo, err := scene.New(g, reg, scene.Config{
		Width:     w,
		Height:    h,
		Seed:      cfg.Scene.Seed,
		Patterns:  cfg.Scene.Patterns,
		Trail:     cfg.Scene.Trail,
		StatsRate: uint64(cfg.Grid.StatsRate),
	}, scene.WithKeys(keys), scene.WithSound(sound))
	if err != nil {
		return err
	}
	demo.Register(comp)

	loop := engine.NewLoop(engine.Config{
		DrawInterval:   cfg.DrawInterval(),
		UpdateInterval: cfg.UpdateInterval(),
		IdleSleep:      cfg.IdleSleep(),
	}, comp, demo, t, nil, reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t.Start()
	comp.OnExpose()
	return loop.Run(ctx)
}
