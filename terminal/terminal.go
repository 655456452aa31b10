package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/krunch/core"
	"github.com/lixenwraith/krunch/parameter"
)

// Terminal wraps an initialized tcell screen and its input pump
type Terminal struct {
	screen tcell.Screen
	events chan Event
	done   chan struct{}

	startOnce sync.Once
	finiOnce  sync.Once
}

// New creates and initializes the process terminal screen
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return Wrap(screen)
}

// Wrap initializes an existing screen, e.g. tcell.NewSimulationScreen for tests and headless runs
func Wrap(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()
	return &Terminal{
		screen: screen,
		events: make(chan Event, parameter.EventQueueSize),
		done:   make(chan struct{}),
	}, nil
}

// Screen returns the underlying tcell screen; it satisfies render.Display
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Size returns the current screen dimensions
func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

// Start launches the input pump. Calling it again has no effect
func (t *Terminal) Start() {
	t.startOnce.Do(func() {
		core.Go(t.pump)
	})
}

func (t *Terminal) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			t.send(Event{Type: EventClosed})
			return
		}
		if e, ok := Translate(ev); ok {
			if !t.send(e) {
				return
			}
		}
	}
}

func (t *Terminal) send(e Event) bool {
	select {
	case t.events <- e:
		return true
	case <-t.done:
		return false
	}
}

// Poll returns at most one pending event without blocking
func (t *Terminal) Poll() (Event, bool) {
	select {
	case e := <-t.events:
		return e, true
	default:
		return Event{}, false
	}
}

// Fini stops the pump and restores the terminal. Safe to call multiple times
func (t *Terminal) Fini() {
	t.finiOnce.Do(func() {
		close(t.done)
		t.screen.Fini()
	})
}
