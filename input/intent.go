package input

// Intent is the semantic action a key is bound to
type Intent uint8

const (
	IntentNone Intent = iota

	// System
	IntentQuit   // q, Ctrl+C
	IntentRedraw // r, Ctrl+L
	IntentPause  // space
	IntentYank   // y

	// Root card motion
	IntentUp
	IntentDown
	IntentLeft
	IntentRight
	IntentHome

	// Trail radius
	IntentIn  // PgUp
	IntentOut // PgDn
)

// intentNames maps canonical action names to intents
// Used by the keymap loader to resolve TOML action strings
var intentNames = map[string]Intent{
	"none":   IntentNone, // unbind sentinel
	"quit":   IntentQuit,
	"redraw": IntentRedraw,
	"pause":  IntentPause,
	"yank":   IntentYank,
	"up":     IntentUp,
	"down":   IntentDown,
	"left":   IntentLeft,
	"right":  IntentRight,
	"home":   IntentHome,
	"in":     IntentIn,
	"out":    IntentOut,
}

// IntentByName resolves a canonical action name
func IntentByName(name string) (Intent, bool) {
	i, ok := intentNames[name]
	return i, ok
}

func (i Intent) String() string {
	for name, v := range intentNames {
		if v == i {
			return name
		}
	}
	return "unknown"
}
