package core

import (
	"fmt"
	"strings"
	"unicode"
)

// --- KeyCode, KeyModifiers, Key ---

// KeyCode represents non-character keys
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Editing keys
	KeyDelete
	KeyInsert
)

// KeyModifiers represents modifier keys held during a keystroke
type KeyModifiers uint8

const (
	ModNone KeyModifiers = 0
	ModCtrl KeyModifiers = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent represents a keyboard input event. Control characters arrive as
// the lower-case letter with ModCtrl set.
type KeyEvent struct {
	Rune      rune
	Key       KeyCode
	Modifiers KeyModifiers
}

func RuneKey(r rune) KeyEvent { return KeyEvent{Rune: r} }

func CtrlKey(r rune) KeyEvent { return KeyEvent{Rune: unicode.ToLower(r), Modifiers: ModCtrl} }

func SpecialKey(k KeyCode) KeyEvent { return KeyEvent{Key: k} }

func (k KeyEvent) IsCtrl(r rune) bool {
	return k.Modifiers&ModCtrl != 0 && k.Rune == r
}

// printable reports whether the key inserts its rune as text.
func (k KeyEvent) printable() bool {
	return k.Rune != 0 && k.Modifiers&(ModCtrl|ModAlt) == 0
}

// String returns a string representation of a Key
func (k KeyEvent) String() string {
	var parts []string

	if k.Modifiers&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if k.Modifiers&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if k.Modifiers&ModShift != 0 {
		parts = append(parts, "Shift")
	}

	if k.Rune != 0 {
		parts = append(parts, string(k.Rune))
	} else {
		switch k.Key {
		case KeyEnter:
			parts = append(parts, "Enter")
		case KeyTab:
			parts = append(parts, "Tab")
		case KeyBackspace:
			parts = append(parts, "Backspace")
		case KeyEscape:
			parts = append(parts, "Escape")
		case KeySpace:
			parts = append(parts, "Space")
		case KeyUp:
			parts = append(parts, "Up")
		case KeyDown:
			parts = append(parts, "Down")
		case KeyLeft:
			parts = append(parts, "Left")
		case KeyRight:
			parts = append(parts, "Right")
		case KeyHome:
			parts = append(parts, "Home")
		case KeyEnd:
			parts = append(parts, "End")
		case KeyPageUp:
			parts = append(parts, "PageUp")
		case KeyPageDown:
			parts = append(parts, "PageDown")
		case KeyDelete:
			parts = append(parts, "Delete")
		case KeyInsert:
			parts = append(parts, "Insert")
		case KeyUnknown:
			parts = append(parts, "Unknown")
		default:
			parts = append(parts, fmt.Sprintf("SpecialKey(%d)", k.Key))
		}
	}

	return strings.Join(parts, "+")
}

var keyNotation = map[string]KeyEvent{
	"esc":      SpecialKey(KeyEscape),
	"cr":       SpecialKey(KeyEnter),
	"enter":    SpecialKey(KeyEnter),
	"bs":       SpecialKey(KeyBackspace),
	"tab":      SpecialKey(KeyTab),
	"up":       SpecialKey(KeyUp),
	"down":     SpecialKey(KeyDown),
	"left":     SpecialKey(KeyLeft),
	"right":    SpecialKey(KeyRight),
	"home":     SpecialKey(KeyHome),
	"end":      SpecialKey(KeyEnd),
	"pageup":   SpecialKey(KeyPageUp),
	"pagedown": SpecialKey(KeyPageDown),
	"del":      SpecialKey(KeyDelete),
	"lt":       RuneKey('<'),
}

// ParseKeys turns vi key notation ("3dw", "ihi<Esc>", "<C-g>") into events.
// A '<' that does not open a known name is taken literally.
func ParseKeys(s string) []KeyEvent {
	var keys []KeyEvent
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '<' {
			if end := indexRune(runes[i+1:], '>'); end > 0 {
				name := strings.ToLower(string(runes[i+1 : i+1+end]))
				if k, ok := keyNotation[name]; ok {
					keys = append(keys, k)
					i += end + 1
					continue
				}
				if strings.HasPrefix(name, "c-") && len([]rune(name)) == 3 {
					keys = append(keys, CtrlKey([]rune(name)[2]))
					i += end + 1
					continue
				}
			}
		}
		keys = append(keys, RuneKey(r))
	}
	return keys
}

func indexRune(rs []rune, r rune) int {
	for i, c := range rs {
		if c == r {
			return i
		}
	}
	return -1
}
