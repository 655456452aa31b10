package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/krunch/core"
	"github.com/lixenwraith/krunch/dirty"
	"github.com/lixenwraith/krunch/render"
	"github.com/lixenwraith/krunch/status"
	"github.com/lixenwraith/krunch/terminal"
)

// MockScreen is a minimal mock for tcell.Screen used in tests
type MockScreen struct {
	tcell.Screen
	width, height int
	shows         int
}

func (m *MockScreen) Size() (int, int) {
	if m.width == 0 && m.height == 0 {
		return 80, 24
	}
	return m.width, m.height
}

func (m *MockScreen) Show()                                                            { m.shows++ }
func (m *MockScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {}

type queueSource struct {
	events []terminal.Event
}

func (q *queueSource) Poll() (terminal.Event, bool) {
	if len(q.events) == 0 {
		return terminal.Event{}, false
	}
	e := q.events[0]
	q.events = q.events[1:]
	return e, true
}

type stubScene struct {
	updates  int
	lastDt   time.Duration
	handled  []terminal.Event
	action   Action
	panicAt  int
	failWith error
}

func (s *stubScene) Update(tick uint64, dt time.Duration) error {
	if s.panicAt > 0 && s.updates+1 == s.panicAt {
		panic("boom")
	}
	if s.failWith != nil {
		return s.failWith
	}
	s.updates++
	s.lastDt = dt
	return nil
}

func (s *stubScene) HandleEvent(e terminal.Event) Action {
	s.handled = append(s.handled, e)
	return s.action
}

type harness struct {
	clock  *MockTimeProvider
	screen *MockScreen
	comp   *render.Compositor
	scene  *stubScene
	events *queueSource
	loop   *Loop
	reg    *status.Registry
}

func newHarness() *harness {
	h := &harness{
		clock:  NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		screen: &MockScreen{width: 20, height: 5},
		scene:  &stubScene{},
		events: &queueSource{},
		reg:    status.NewRegistry(),
	}
	h.comp = render.NewCompositor(h.screen, dirty.New(core.Rect{}, dirty.ModeRects), core.RGBBlack, h.reg)
	h.loop = NewLoop(DefaultConfig(), h.comp, h.scene, h.events, h.clock, h.reg)
	h.loop.sleep = func(time.Duration) {}
	return h
}

// run steps the loop for d of mock time in 1ms increments
func (h *harness) run(t *testing.T, d time.Duration) {
	t.Helper()
	for elapsed := time.Duration(0); elapsed < d; elapsed += time.Millisecond {
		if _, err := h.loop.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		h.clock.Advance(time.Millisecond)
	}
}

func TestLoopCadences(t *testing.T) {
	h := newHarness()
	h.run(t, time.Second)

	if frames := h.comp.Frame(); frames != 100 {
		t.Errorf("Expected 100 draws in 1s, got %d", frames)
	}
	if h.scene.updates != 10 {
		t.Errorf("Expected 10 updates in 1s, got %d", h.scene.updates)
	}
	if h.loop.Tick() != 10 {
		t.Errorf("Expected tick 10, got %d", h.loop.Tick())
	}
	if h.scene.lastDt != 100*time.Millisecond {
		t.Errorf("Expected 100ms update delta, got %v", h.scene.lastDt)
	}
	if h.loop.Phase() != PhaseIdle {
		t.Errorf("Expected idle between iterations, got %v", h.loop.Phase())
	}
	if got := h.reg.Strings.Get("loop.phase").Load(); got != "idle" {
		t.Errorf("Expected published phase idle, got %q", got)
	}
}

func TestLoopOneEventPerIteration(t *testing.T) {
	h := newHarness()
	for i := 0; i < 3; i++ {
		h.events.events = append(h.events.events, terminal.Event{Type: terminal.EventKey, Rune: rune('a' + i)})
	}

	h.loop.Step()
	if len(h.scene.handled) != 1 || len(h.events.events) != 2 {
		t.Errorf("Expected exactly one event consumed, handled=%d queued=%d", len(h.scene.handled), len(h.events.events))
	}
}

func TestLoopQuitAction(t *testing.T) {
	h := newHarness()
	h.scene.action = ActionQuit
	h.events.events = []terminal.Event{{Type: terminal.EventKey, Rune: 'q'}}

	cont, err := h.loop.Step()
	if err != nil || cont {
		t.Errorf("Expected clean stop, got cont=%v err=%v", cont, err)
	}
}

func TestLoopInputClosedStops(t *testing.T) {
	h := newHarness()
	h.events.events = []terminal.Event{{Type: terminal.EventClosed}}
	if err := h.loop.Run(context.Background()); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}

func TestLoopExposeAction(t *testing.T) {
	h := newHarness()
	h.loop.Step()
	h.scene.action = ActionExpose
	h.events.events = []terminal.Event{{Type: terminal.EventKey}}
	h.loop.Step()

	if h.comp.Tracker().Len() != 1 || h.comp.Tracker().Rects()[0] != core.RectXYWH(0, 0, 20, 5) {
		t.Errorf("Expected full-surface dirty entry, got %v", h.comp.Tracker().Rects())
	}
}

func TestLoopResize(t *testing.T) {
	h := newHarness()
	h.events.events = []terminal.Event{{Type: terminal.EventExpose, Width: 30, Height: 8}}
	h.loop.Step()
	if w, hh := h.comp.Size(); w != 30 || hh != 8 {
		t.Errorf("Expected 30x8 after resize, got %dx%d", w, hh)
	}
}

func TestLoopPause(t *testing.T) {
	h := newHarness()
	h.scene.action = ActionPause
	h.events.events = []terminal.Event{{Type: terminal.EventKey, Rune: ' '}}
	h.run(t, 500*time.Millisecond)

	if !h.loop.Paused() {
		t.Fatal("Expected loop paused")
	}
	// The update at t=0 runs before the pause key is polled
	if h.scene.updates != 1 {
		t.Errorf("Expected no updates while paused, got %d", h.scene.updates-1)
	}
	if h.comp.Frame() != 50 {
		t.Errorf("Expected drawing to continue while paused, got %d frames", h.comp.Frame())
	}

	h.events.events = []terminal.Event{{Type: terminal.EventKey, Rune: ' '}}
	h.run(t, 250*time.Millisecond)
	if h.loop.Paused() || h.scene.updates != 3 {
		t.Errorf("Expected 2 updates after resume, got %d paused=%v", h.scene.updates-1, h.loop.Paused())
	}
	if h.reg.Bools.Get("loop.paused").Load() != h.loop.Paused() {
		t.Error("Published pause state out of sync")
	}
}

func TestLoopPanicBecomesUnknownError(t *testing.T) {
	h := newHarness()
	h.scene.panicAt = 1
	h.clock.Advance(100 * time.Millisecond)

	cont, err := h.loop.Step()
	if cont {
		t.Error("Expected loop to stop after panic")
	}
	if !errors.Is(err, core.ErrUnknown) {
		t.Fatalf("Expected ErrUnknown, got %v", err)
	}
	if msg := Diagnostic(err); msg == "" || msg[:7] != "krunch:" {
		t.Errorf("Unexpected diagnostic %q", msg)
	}
}

func TestLoopUpdateErrorKeepsClass(t *testing.T) {
	h := newHarness()
	h.scene.failWith = core.ErrStructural
	h.clock.Advance(100 * time.Millisecond)

	err := h.loop.Run(context.Background())
	if !errors.Is(err, core.ErrStructural) {
		t.Errorf("Expected ErrStructural to survive wrapping, got %v", err)
	}
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	h := newHarness()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.loop.Run(ctx); err != nil {
		t.Errorf("Expected nil on cancellation, got %v", err)
	}
}
