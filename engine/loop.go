package engine

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/krunch/core"
	"github.com/lixenwraith/krunch/parameter"
	"github.com/lixenwraith/krunch/render"
	"github.com/lixenwraith/krunch/status"
	"github.com/lixenwraith/krunch/terminal"
)

// Phase is the loop's current activity
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseDrawing
	PhasePresenting
	PhaseUpdating
)

func (p Phase) String() string {
	switch p {
	case PhaseDrawing:
		return "drawing"
	case PhasePresenting:
		return "presenting"
	case PhaseUpdating:
		return "updating"
	default:
		return "idle"
	}
}

// Action is a scene's response to an input event
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionExpose
	ActionPause
)

// Scene is the simulation driven by the loop
type Scene interface {
	// Update advances the simulation one step; dt is simulation time since the previous step
	Update(tick uint64, dt time.Duration) error
	// HandleEvent reacts to a key or pointer event
	HandleEvent(e terminal.Event) Action
}

// EventSource yields at most one pending event per call without blocking
type EventSource interface {
	Poll() (terminal.Event, bool)
}

// Config holds the loop cadences
type Config struct {
	DrawInterval   time.Duration
	UpdateInterval time.Duration
	IdleSleep      time.Duration
}

// DefaultConfig draws every 10ms, updates every 100ms and sleeps 100µs between iterations
func DefaultConfig() Config {
	return Config{
		DrawInterval:   parameter.DrawInterval,
		UpdateInterval: parameter.UpdateInterval,
		IdleSleep:      parameter.IdleSleep,
	}
}

// Loop runs the draw and update cadences on one goroutine and funnels input into the scene
type Loop struct {
	cfg    Config
	real   TimeProvider
	sim    *PausableClock
	comp   *render.Compositor
	scene  Scene
	events EventSource

	start      time.Time
	simStart   time.Time
	nextDraw   time.Duration
	nextUpdate time.Duration
	lastUpdate time.Duration
	tick       uint64
	phase      Phase
	quit       bool

	sleep func(time.Duration)

	statPhase  *status.AtomicString
	statTick   *atomic.Int64
	statPaused *atomic.Bool
}

// NewLoop wires a loop. clock nil means the monotonic process clock; reg nil means a private registry
func NewLoop(cfg Config, comp *render.Compositor, scene Scene, events EventSource, clock TimeProvider, reg *status.Registry) *Loop {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	sim := NewPausableClock(clock)
	now := clock.Now()
	return &Loop{
		cfg:        cfg,
		real:       clock,
		sim:        sim,
		comp:       comp,
		scene:      scene,
		events:     events,
		start:      now,
		simStart:   sim.Now(),
		sleep:      time.Sleep,
		statPhase:  reg.Strings.Get("loop.phase"),
		statTick:   reg.Ints.Get("loop.tick"),
		statPaused: reg.Bools.Get("loop.paused"),
	}
}

// Phase returns the current activity
func (l *Loop) Phase() Phase { return l.phase }

// Tick returns the number of completed updates
func (l *Loop) Tick() uint64 { return l.tick }

// Paused reports whether the update cadence is paused
func (l *Loop) Paused() bool { return l.sim.IsPaused() }

// Clock returns the pausable simulation clock
func (l *Loop) Clock() *PausableClock { return l.sim }

func (l *Loop) setPhase(p Phase) {
	l.phase = p
	l.statPhase.Store(p.String())
}

// Step runs one iteration: draw if due, update if due, handle at most one event.
// It reports false once the loop should stop. Panics are converted into errors classed core.ErrUnknown
func (l *Loop) Step() (cont bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(core.ErrUnknown, "panic while %s: %v", l.phase, r)
			cont = false
		}
	}()

	elapsed := l.real.Now().Sub(l.start)
	if elapsed >= l.nextDraw {
		l.setPhase(PhaseDrawing)
		l.comp.Compose(render.Context{Now: l.real.Now()})
		l.setPhase(PhasePresenting)
		l.comp.Present()
		l.nextDraw = elapsed + l.cfg.DrawInterval
	}

	simElapsed := l.sim.Now().Sub(l.simStart)
	if simElapsed >= l.nextUpdate {
		l.setPhase(PhaseUpdating)
		if err := l.scene.Update(l.tick, simElapsed-l.lastUpdate); err != nil {
			l.setPhase(PhaseIdle)
			return false, errors.Wrapf(err, "update tick %d", l.tick)
		}
		l.tick++
		l.statTick.Store(int64(l.tick))
		l.lastUpdate = simElapsed
		l.nextUpdate = simElapsed + l.cfg.UpdateInterval
	}
	l.setPhase(PhaseIdle)

	if e, ok := l.events.Poll(); ok {
		l.dispatch(e)
	}
	return !l.quit, nil
}

func (l *Loop) dispatch(e terminal.Event) {
	switch e.Type {
	case terminal.EventClosed:
		log.Printf("loop: input closed")
		l.quit = true
	case terminal.EventExpose:
		if w, h := l.comp.Size(); e.Width > 0 && e.Height > 0 && (w != e.Width || h != e.Height) {
			log.Printf("loop: resize %dx%d -> %dx%d", w, h, e.Width, e.Height)
			l.comp.Resize(e.Width, e.Height)
			return
		}
		l.comp.OnExpose()
	case terminal.EventKey, terminal.EventPointer:
		switch l.scene.HandleEvent(e) {
		case ActionQuit:
			l.quit = true
		case ActionExpose:
			l.comp.OnExpose()
		case ActionPause:
			paused := l.sim.Toggle()
			l.statPaused.Store(paused)
			log.Printf("loop: paused=%v", paused)
		}
	}
}

// Run iterates until the scene quits, input closes, ctx is cancelled or a step fails.
// Cancellation is a clean stop and returns nil
func (l *Loop) Run(ctx context.Context) error {
	log.Printf("loop: start draw=%v update=%v", l.cfg.DrawInterval, l.cfg.UpdateInterval)
	defer log.Printf("loop: stop after %d updates, %d frames", l.tick, l.comp.Frame())

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		cont, err := l.Step()
		if err != nil {
			log.Printf("loop: %+v", err)
			return err
		}
		if !cont {
			return nil
		}
		l.sleep(l.cfg.IdleSleep)
	}
}

// Diagnostic formats a loop failure as the single line printed after the terminal is restored
func Diagnostic(err error) string {
	return fmt.Sprintf("krunch: %v", err)
}
