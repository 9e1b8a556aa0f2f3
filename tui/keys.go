package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ionut-t/evi/core"
)

// KeyMap holds the keys the frontend handles before the editor sees them.
type KeyMap struct {
	// Interrupt cancels like Escape, as Ctrl-C does in vi.
	Interrupt key.Binding
	// Suspend is passed to the terminal, the editor never sees it.
	Suspend key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Interrupt: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "cancel")),
		Suspend:   key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "suspend")),
	}
}

var specialKeys = map[tea.KeyType]core.KeyCode{
	tea.KeyEnter:     core.KeyEnter,
	tea.KeyTab:       core.KeyTab,
	tea.KeyBackspace: core.KeyBackspace,
	tea.KeyEsc:       core.KeyEscape,
	tea.KeyUp:        core.KeyUp,
	tea.KeyDown:      core.KeyDown,
	tea.KeyLeft:      core.KeyLeft,
	tea.KeyRight:     core.KeyRight,
	tea.KeyHome:      core.KeyHome,
	tea.KeyEnd:       core.KeyEnd,
	tea.KeyPgUp:      core.KeyPageUp,
	tea.KeyPgDown:    core.KeyPageDown,
	tea.KeyDelete:    core.KeyDelete,
	tea.KeyInsert:    core.KeyInsert,
}

// convertKey turns a bubbletea key into editor keys. A paste arrives as one
// message and becomes one key per rune.
func convertKey(msg tea.KeyMsg) []core.KeyEvent {
	if code, ok := specialKeys[msg.Type]; ok {
		return []core.KeyEvent{withAlt(core.SpecialKey(code), msg.Alt)}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []core.KeyEvent{core.RuneKey(' ')}
	case tea.KeyRunes:
		keys := make([]core.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			switch r {
			case '\r', '\n':
				keys = append(keys, core.SpecialKey(core.KeyEnter))
			case '\t':
				keys = append(keys, core.SpecialKey(core.KeyTab))
			default:
				keys = append(keys, withAlt(core.RuneKey(r), msg.Alt))
			}
		}
		return keys
	}

	name := msg.String()
	name = strings.TrimPrefix(name, "alt+")
	if letter, ok := strings.CutPrefix(name, "ctrl+"); ok && len(letter) == 1 {
		return []core.KeyEvent{withAlt(core.CtrlKey(rune(letter[0])), msg.Alt)}
	}
	return nil
}

func withAlt(k core.KeyEvent, alt bool) core.KeyEvent {
	if alt {
		k.Modifiers |= core.ModAlt
	}
	return k
}
