package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/krunch/core"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventNone    EventType = iota
	EventKey               // key press
	EventPointer           // button press or drag
	EventExpose            // surface must be redrawn; carries new size
	EventClosed            // input stream ended
)

func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventPointer:
		return "pointer"
	case EventExpose:
		return "expose"
	case EventClosed:
		return "closed"
	default:
		return "none"
	}
}

// Event is one classified input event
type Event struct {
	Type EventType

	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask

	// Pointer position and pressed buttons for EventPointer
	Pos     core.Point
	Buttons tcell.ButtonMask

	// Surface size for EventExpose
	Width  int
	Height int
}

const pointerButtons = tcell.Button1 | tcell.Button2 | tcell.Button3

// Translate classifies a tcell event. Events the loop has no use for, such as bare pointer motion, report false
func Translate(ev tcell.Event) (Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: ev.Key(), Rune: ev.Rune(), Mod: ev.Modifiers()}, true
	case *tcell.EventMouse:
		buttons := ev.Buttons() & pointerButtons
		if buttons == 0 {
			return Event{}, false
		}
		x, y := ev.Position()
		return Event{Type: EventPointer, Pos: core.Pt(x, y), Buttons: buttons, Mod: ev.Modifiers()}, true
	case *tcell.EventResize:
		w, h := ev.Size()
		return Event{Type: EventExpose, Width: w, Height: h}, true
	default:
		return Event{}, false
	}
}
