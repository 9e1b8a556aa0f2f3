package tui

import (
	"io"
	"log"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/evi/core"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newTestModel(t *testing.T, content string, width, height int) Model {
	t.Helper()
	opts := core.DefaultOptions()
	opts.Storage = core.NewMemoryStorage()
	ed := core.New(opts)
	ed.SetContent([]byte(content))
	return New(ed, width, height)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func typeKeys(t *testing.T, m Model, s string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, r := range s {
		var msg tea.KeyMsg
		switch r {
		case '\r':
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case 0x1b:
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		}
		m, cmd = update(t, m, msg)
	}
	return m, cmd
}

func viewLines(m Model) []string {
	lines := strings.Split(m.View(), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []core.KeyEvent
	}{
		{"runes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("dw")}, core.ParseKeys("dw")},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []core.KeyEvent{core.RuneKey(' ')}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []core.KeyEvent{core.SpecialKey(core.KeyEnter)}},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, []core.KeyEvent{core.SpecialKey(core.KeyEscape)}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []core.KeyEvent{core.SpecialKey(core.KeyBackspace)}},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, []core.KeyEvent{core.SpecialKey(core.KeyPageDown)}},
		{"ctrl letter", tea.KeyMsg{Type: tea.KeyCtrlG}, []core.KeyEvent{core.CtrlKey('g')}},
		{"ctrl r", tea.KeyMsg{Type: tea.KeyCtrlR}, []core.KeyEvent{core.CtrlKey('r')}},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\nb"), Paste: true}, core.ParseKeys("a<CR>b")},
		{"alt", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, []core.KeyEvent{{Rune: 'x', Modifiers: core.ModAlt}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertKey(tt.msg))
		})
	}
}

func TestViewDrawsLayout(t *testing.T) {
	m := newTestModel(t, "abc\ndef\n", 40, 5)

	lines := viewLines(m)
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"abc", "def", "~", "~"}, lines[:4])
	assert.Equal(t, "line 1 of 2 --50%-- col 1", lines[4])
}

func TestViewLineNumbersAndTabs(t *testing.T) {
	m := newTestModel(t, "\tx\n", 40, 3)
	require.NoError(t, m.Editor().ExecuteCommand("set nu ts=2"))

	lines := viewLines(m)
	assert.Equal(t, "  1   x", lines[0])
}

func TestTypingEditsBuffer(t *testing.T) {
	m := newTestModel(t, "abc\n", 40, 5)

	m, _ = typeKeys(t, m, "x")
	assert.Equal(t, "bc\n", m.Editor().Content())

	m, _ = typeKeys(t, m, "ihi \x1b")
	assert.Equal(t, "hi bc\n", m.Editor().Content())
	assert.Equal(t, core.NormalMode, m.Editor().Mode())
}

func TestCommandLineShowsOnStatusRow(t *testing.T) {
	m := newTestModel(t, "abc\n", 40, 5)

	m, _ = typeKeys(t, m, ":se")
	lines := viewLines(m)
	assert.Equal(t, ":se", lines[4])
}

func TestInterruptCancelsPending(t *testing.T) {
	m := newTestModel(t, "abc def\n", 40, 5)

	m, _ = typeKeys(t, m, "d")
	assert.True(t, m.Editor().GetState().Pending.Active())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.False(t, m.Editor().GetState().Pending.Active())
	assert.Equal(t, "abc def\n", m.Editor().Content())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, "abc\n", 40, 5)

	_, cmd := typeKeys(t, m, ":q\r")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuitRefusedWhenModified(t *testing.T) {
	m := newTestModel(t, "abc\n", 40, 5)

	m, _ = typeKeys(t, m, "x:q\r")
	assert.False(t, m.Editor().Quitting())
	assert.Contains(t, m.Editor().Status(), "no write since last change")
}

func TestBellFlash(t *testing.T) {
	m := newTestModel(t, "abc\n", 40, 5)

	m, cmd := update(t, m, bellMsg{})
	assert.True(t, m.bell)
	assert.NotNil(t, cmd)

	m, _ = update(t, m, clearBellMsg{})
	assert.False(t, m.bell)
}

func TestResize(t *testing.T) {
	m := newTestModel(t, "abcdefghij\n", 40, 5)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 4, Height: 3})
	lines := viewLines(m)
	require.Len(t, lines, 3)
	assert.Equal(t, "abcd", lines[0])
	assert.Equal(t, "efgh", lines[1])
}
