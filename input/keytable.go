package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/krunch/terminal"
)

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, paging)
	SpecialKeys map[tcell.Key]Intent

	// Printable rune bindings
	Runes map[rune]Intent
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Intent{
			tcell.KeyCtrlC: IntentQuit,
			tcell.KeyCtrlL: IntentRedraw,
			tcell.KeyUp:    IntentUp,
			tcell.KeyDown:  IntentDown,
			tcell.KeyLeft:  IntentLeft,
			tcell.KeyRight: IntentRight,
			tcell.KeyHome:  IntentHome,
			tcell.KeyPgUp:  IntentIn,
			tcell.KeyPgDn:  IntentOut,
		},
		Runes: map[rune]Intent{
			'q': IntentQuit,
			'r': IntentRedraw,
			' ': IntentPause,
			'y': IntentYank,
		},
	}
}

// Lookup returns the intent bound to a key event
func (kt *KeyTable) Lookup(e terminal.Event) Intent {
	if e.Type != terminal.EventKey {
		return IntentNone
	}
	if e.Key == tcell.KeyRune {
		return kt.Runes[e.Rune]
	}
	return kt.SpecialKeys[e.Key]
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: maps.Clone(kt.SpecialKeys),
		Runes:       maps.Clone(kt.Runes),
	}
}
