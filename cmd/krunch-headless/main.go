package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

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

type options struct {
	updates int
	width   int
	height  int
	seed    int64
	bounds  bool
	cfg     config.Config
}

type report struct {
	updates  uint64
	frames   uint64
	elapsed  time.Duration
	cells    int
	columns  int
	rects    int64
	painted  int64
	registry string
}

// noInput is an event source that never yields
type noInput struct{}

func (noInput) Poll() (terminal.Event, bool) { return terminal.Event{}, false }

func main() {
	var opts options
	var out, cfgPath string

	flag.IntVar(&opts.updates, "updates", 300, "simulation updates to run")
	flag.IntVar(&opts.width, "width", 100, "simulated screen width in cells")
	flag.IntVar(&opts.height, "height", 30, "simulated screen height in cells")
	flag.Int64Var(&opts.seed, "seed", 42, "pattern and trail seed")
	flag.BoolVar(&opts.bounds, "bounds", false, "track dirty regions as a single bounding rectangle")
	flag.StringVar(&out, "out", "krunch.png", "PNG snapshot path; empty skips the snapshot")
	flag.StringVar(&cfgPath, "config", "", "TOML config file")
	flag.Parse()

	if opts.updates <= 0 || opts.width <= 0 || opts.height <= 1 {
		fmt.Println("error: -updates, -width must be > 0 and -height > 1")
		os.Exit(2)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Println(engine.Diagnostic(err))
		os.Exit(2)
	}
	opts.cfg = cfg

	rep, front, err := simulate(opts)
	if err != nil {
		fmt.Println(engine.Diagnostic(err))
		os.Exit(1)
	}

	fmt.Printf("=== Headless Render Report ===\n")
	fmt.Printf("size=%dx%d seed=%d mode=%s\n", opts.width, opts.height, opts.seed, modeName(opts))
	fmt.Printf("updates=%d frames=%d sim_time=%v\n", rep.updates, rep.frames, rep.elapsed)
	fmt.Printf("cells=%d columns=%d last_rects=%d presented_cells=%d\n", rep.cells, rep.columns, rep.rects, rep.painted)
	fmt.Printf("%s\n", rep.registry)

	if out == "" {
		return
	}
	f, err := os.Create(out)
	if err != nil {
		fmt.Println(engine.Diagnostic(err))
		os.Exit(1)
	}
	defer f.Close()
	if err := render.WritePNG(f, front); err != nil {
		fmt.Println(engine.Diagnostic(err))
		os.Exit(1)
	}
	fmt.Printf("snapshot=%s\n", out)
}

func modeName(opts options) string {
	if opts.bounds {
		return dirty.ModeBounds.String()
	}
	return opts.cfg.DirtyMode().String()
}

// simulate runs the demo on a simulation screen against a mock clock until opts.updates updates completed
func simulate(opts options) (report, *render.Buffer, error) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		return report{}, nil, err
	}
	defer sim.Fini()
	sim.SetSize(opts.width, opts.height)

	mode := opts.cfg.DirtyMode()
	if opts.bounds {
		mode = dirty.ModeBounds
	}

	reg := status.NewRegistry()
	tracker := dirty.New(core.Rect{}, mode)
	background := core.Hex(opts.cfg.Grid.Background)
	comp := render.NewCompositor(sim, tracker, background, reg)
	g := grid.New(tracker,
		grid.WithBackground(background),
		grid.WithFadeColor(core.Hex(opts.cfg.Grid.Fade)),
		grid.WithFill(core.Hex(opts.cfg.Grid.Cell)),
		grid.WithRadius(opts.cfg.Grid.RadiusX, opts.cfg.Grid.RadiusY),
		grid.WithRegistry(reg),
	)

	demo, err := scene.New(g, reg, scene.Config{
		Width:     opts.width,
		Height:    opts.height,
		Seed:      opts.seed,
		Patterns:  opts.cfg.Scene.Patterns,
		Trail:     opts.cfg.Scene.Trail,
		StatsRate: uint64(opts.cfg.Grid.StatsRate),
	}, scene.WithClipboard(func(string) error { return nil }))
	if err != nil {
		return report{}, nil, err
	}
	demo.Register(comp)

	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	loop := engine.NewLoop(engine.Config{
		DrawInterval:   opts.cfg.DrawInterval(),
		UpdateInterval: opts.cfg.UpdateInterval(),
	}, comp, demo, noInput{}, clock, reg)

	start := clock.Now()
	for loop.Tick() < uint64(opts.updates) {
		if _, err := loop.Step(); err != nil {
			return report{}, nil, err
		}
		clock.Advance(time.Millisecond)
	}
	// One last frame so the snapshot shows the final update
	comp.RenderFrame(render.Context{Now: clock.Now()})

	rep := report{
		updates:  loop.Tick(),
		frames:   comp.Frame(),
		elapsed:  clock.Now().Sub(start),
		cells:    g.Len(),
		columns:  g.Columns(),
		rects:    reg.Ints.Get("render.rects").Load(),
		painted:  reg.Ints.Get("render.cells").Load(),
		registry: reg.Line("scene.updates", "scene.trail", "grid.pruned", "grid.covers"),
	}
	return rep, comp.Front(), nil
}
