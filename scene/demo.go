package scene

import (
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/krunch/audio"
	"github.com/lixenwraith/krunch/card"
	"github.com/lixenwraith/krunch/core"
	"github.com/lixenwraith/krunch/engine"
	"github.com/lixenwraith/krunch/grid"
	"github.com/lixenwraith/krunch/input"
	"github.com/lixenwraith/krunch/parameter"
	"github.com/lixenwraith/krunch/pattern"
	"github.com/lixenwraith/krunch/render"
	"github.com/lixenwraith/krunch/status"
	"github.com/lixenwraith/krunch/terminal"
)

// Config tunes the demo
type Config struct {
	Width, Height int
	Seed          int64 // 0 seeds from the clock
	Patterns      int
	Trail         int
	StatsRate     uint64
}

// Demo drives two cards, a trail, a color curve and seeded patterns over a grid
type Demo struct {
	grid   *grid.Grid
	reg    *status.Registry
	keys   *input.KeyTable
	sound  *audio.Player
	yank   func(string) error
	rng    *rand.Rand
	area   core.Rect
	centre core.Point
	rate   uint64

	root, dummy *card.Card
	pong        *PingPong
	trail       *Trail
	curve       *ColorCurve
	updates     int
	pending     *core.Point // keyed Root target, applied by the next Update

	statUpdates *atomic.Int64
	statTrail   *atomic.Int64
}

// Option configures a Demo
type Option func(*Demo)

// WithKeys replaces the default key bindings
func WithKeys(kt *input.KeyTable) Option { return func(d *Demo) { d.keys = kt } }

// WithSound plays cues on moves and glide arrivals
func WithSound(p *audio.Player) Option { return func(d *Demo) { d.sound = p } }

// WithClipboard replaces the system clipboard writer used by yank
func WithClipboard(fn func(string) error) Option { return func(d *Demo) { d.yank = fn } }

// New places the cards at the centre of the area and paints the seeded patterns.
// Row parameter.StatusRow is left to the status line
func New(g *grid.Grid, reg *status.Registry, cfg Config, opts ...Option) (*Demo, error) {
	if cfg.Width <= 0 || cfg.Height <= parameter.StatusRow+1 {
		return nil, fmt.Errorf("demo area %dx%d too small", cfg.Width, cfg.Height)
	}
	if cfg.Trail <= 0 {
		cfg.Trail = parameter.TrailLength
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	d := &Demo{
		grid:        g,
		reg:         reg,
		keys:        input.DefaultKeyTable(),
		yank:        clipboard.WriteAll,
		rng:         rand.New(rand.NewSource(seed)),
		area:        core.RectXYWH(0, parameter.StatusRow+1, cfg.Width, cfg.Height-parameter.StatusRow-1),
		centre:      core.Pt(cfg.Width/2, cfg.Height/2),
		rate:        cfg.StatsRate,
		pong:        NewPingPong(parameter.PingPongLimit, parameter.PingPongStep),
		statUpdates: reg.Ints.Get("scene.updates"),
		statTrail:   reg.Ints.Get("scene.trail"),
	}
	for _, opt := range opts {
		opt(d)
	}

	for range cfg.Patterns {
		color := core.Hex(d.rng.Uint32() & 0xffffff)
		res := pattern.Random(d.rng, d.area.Dx(), d.area.Dy()).Translate(d.area.Min.X, d.area.Min.Y)
		for _, p := range res.Points {
			if err := g.SetColor(p, color); err != nil {
				return nil, fmt.Errorf("seed %v pattern: %w", res.Kind, err)
			}
		}
		log.Printf("scene: seeded %v pattern, %d cells", res.Kind, res.Count())
	}

	d.trail = NewTrail(g, d.rng, core.Pt(cfg.Width*4/5, d.area.Min.Y+d.area.Dy()/3), d.area, cfg.Trail)
	d.curve = NewColorCurve(g, core.Pt(d.area.Min.X+2, d.area.Max.Y-2))

	var err error
	if d.root, err = card.New(g, parameter.RootLabel, d.centre); err != nil {
		return nil, err
	}
	if d.dummy, err = card.New(g, parameter.DummyLabel, d.centre); err != nil {
		return nil, err
	}
	return d, nil
}

// Root returns the user-driven card
func (d *Demo) Root() *card.Card { return d.root }

// Dummy returns the ping-pong card
func (d *Demo) Dummy() *card.Card { return d.dummy }

// Trail returns the orbiting trail
func (d *Demo) Trail() *Trail { return d.trail }

// Curve returns the color curve
func (d *Demo) Curve() *ColorCurve { return d.curve }

// PingPong returns the Dummy oscillator
func (d *Demo) PingPong() *PingPong { return d.pong }

// Updates returns the number of completed updates
func (d *Demo) Updates() int { return d.updates }

// Register adds the grid and the status line to the compositor
func (d *Demo) Register(c *render.Compositor) {
	c.Register(d.grid, render.PriorityGrid)
	c.Register(NewStatusLine(d), render.PriorityUI)
}

// Update runs one simulation step: keyed move, curve, ping-pong, trail, glides, then the grid lifecycle
func (d *Demo) Update(tick uint64, dt time.Duration) error {
	if err := d.applyPending(); err != nil {
		return err
	}

	if err := d.curve.Step(); err != nil {
		return err
	}
	if d.updates == parameter.CurveCutoff {
		d.curve.Off()
		log.Printf("scene: color curve off at update %d", d.updates)
	}

	off := d.pong.Step()
	if err := d.dummy.MoveTo(d.centre.Add(core.Pt(off.X, off.Y/2))); err != nil {
		return err
	}

	if err := d.trail.Step(); err != nil {
		return err
	}

	done, err := d.root.Step(float32(dt.Seconds()))
	if err != nil {
		return err
	}
	if done {
		d.sound.Play(audio.CueArrive)
	}

	d.grid.Advance(tick, d.rate)

	d.updates++
	d.statUpdates.Store(int64(d.updates))
	d.statTrail.Store(int64(d.trail.Len()))
	return nil
}

// HandleEvent maps keys through the key table and glides Root to primary clicks.
// Keyed Root moves are only queued; Update applies them
func (d *Demo) HandleEvent(e terminal.Event) engine.Action {
	if e.Type == terminal.EventPointer {
		if e.Buttons&tcell.Button1 != 0 {
			d.pending = nil
			d.root.GlideTo(e.Pos, float32(parameter.GlideDuration.Seconds()), nil)
		}
		return engine.ActionNone
	}

	switch d.keys.Lookup(e) {
	case input.IntentQuit:
		return engine.ActionQuit
	case input.IntentRedraw:
		return engine.ActionExpose
	case input.IntentPause:
		return engine.ActionPause
	case input.IntentYank:
		if err := d.yank(d.StatusText()); err != nil {
			log.Printf("scene: yank: %v", err)
		}
	case input.IntentUp:
		d.queueRoot(d.rootTarget().Add(core.Pt(0, -1)))
	case input.IntentDown:
		d.queueRoot(d.rootTarget().Add(core.Pt(0, 1)))
	case input.IntentLeft:
		d.queueRoot(d.rootTarget().Add(core.Pt(-1, 0)))
	case input.IntentRight:
		d.queueRoot(d.rootTarget().Add(core.Pt(1, 0)))
	case input.IntentHome:
		d.queueRoot(d.centre)
	case input.IntentIn:
		d.trail.Grow(parameter.TrailRadiusStep)
	case input.IntentOut:
		d.trail.Grow(-parameter.TrailRadiusStep)
	}
	return engine.ActionNone
}

// Pending returns the queued Root target, if any
func (d *Demo) Pending() (core.Point, bool) {
	if d.pending == nil {
		return core.Point{}, false
	}
	return *d.pending, true
}

// rootTarget is where keyed moves accumulate from: the queued target, else Root itself
func (d *Demo) rootTarget() core.Point {
	if d.pending != nil {
		return *d.pending
	}
	return d.root.At()
}

func (d *Demo) queueRoot(p core.Point) {
	d.pending = &p
}

// applyPending moves Root to the queued target, cancelling any glide
func (d *Demo) applyPending() error {
	if d.pending == nil {
		return nil
	}
	p := *d.pending
	d.pending = nil
	d.root.Stop()
	if err := d.root.MoveTo(p); err != nil {
		return fmt.Errorf("move root: %w", err)
	}
	d.sound.Play(audio.CueMove)
	return nil
}
