package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// keyNames maps lowercase special key names to tcell keys
var keyNames = map[string]tcell.Key{
	"up":     tcell.KeyUp,
	"down":   tcell.KeyDown,
	"left":   tcell.KeyLeft,
	"right":  tcell.KeyRight,
	"home":   tcell.KeyHome,
	"end":    tcell.KeyEnd,
	"pgup":   tcell.KeyPgUp,
	"pgdn":   tcell.KeyPgDn,
	"enter":  tcell.KeyEnter,
	"tab":    tcell.KeyTab,
	"esc":    tcell.KeyEscape,
	"ctrl-c": tcell.KeyCtrlC,
	"ctrl-l": tcell.KeyCtrlL,
	"ctrl-q": tcell.KeyCtrlQ,
	"ctrl-r": tcell.KeyCtrlR,
}

// LoadKeyConfig turns decoded [keys.runes] and [keys.special] tables into a sparse override KeyTable.
// Returns error on unknown action names or invalid key names
func LoadKeyConfig(runes, special map[string]string) (*KeyTable, error) {
	kt := &KeyTable{}

	if runes != nil {
		kt.Runes = make(map[rune]Intent, len(runes))
		for keyStr, action := range runes {
			r, err := resolveRune(keyStr)
			if err != nil {
				return nil, fmt.Errorf("[keys.runes] key %q: %w", keyStr, err)
			}
			intent, err := resolveAction(action)
			if err != nil {
				return nil, fmt.Errorf("[keys.runes] key %q: %w", keyStr, err)
			}
			kt.Runes[r] = intent
		}
	}

	if special != nil {
		kt.SpecialKeys = make(map[tcell.Key]Intent, len(special))
		for keyStr, action := range special {
			k, ok := keyNames[strings.ToLower(keyStr)]
			if !ok {
				return nil, fmt.Errorf("[keys.special] unknown key name: %q", keyStr)
			}
			intent, err := resolveAction(action)
			if err != nil {
				return nil, fmt.Errorf("[keys.special] key %q: %w", keyStr, err)
			}
			kt.SpecialKeys[k] = intent
		}
	}

	return kt, nil
}

// resolveRune converts a TOML key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}
	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

// resolveAction converts an action name string to an Intent
func resolveAction(name string) (Intent, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	intent, ok := IntentByName(name)
	if !ok {
		return IntentNone, fmt.Errorf("unknown action: %q", name)
	}
	return intent, nil
}

// MergeKeyTable returns a new KeyTable with base values overridden by non-nil override maps
// Override entries bound to "none" delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	mergeMap(result.Runes, override.Runes)
	mergeMap(result.SpecialKeys, override.SpecialKeys)
	return result
}

func mergeMap[K comparable](base, override map[K]Intent) {
	for k, v := range override {
		if v == IntentNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
