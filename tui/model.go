// Package tui is the bubbletea frontend of the editor.
package tui

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ionut-t/evi/core"
	"github.com/ionut-t/evi/tui/highlighter"
)

const bellDuration = 120 * time.Millisecond

type ErrorMsg struct {
	ID  core.ErrorId
	Err error
}

type SaveMsg struct {
	Path string
	Size int
}

type QuitMsg struct{}

type bellMsg struct{}

type clearBellMsg struct{}

// signalMsg carries signals the model only needs to keep listening after.
type signalMsg struct {
	signal core.Signal
}

type Model struct {
	editor      *core.Editor
	viewport    viewport.Model
	theme       Theme
	keys        KeyMap
	highlighter *highlighter.Highlighter
	width       int
	height      int
	bell        bool
	err         error
}

type Option func(*Model)

func WithTheme(theme Theme) Option {
	return func(m *Model) { m.theme = theme }
}

func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) { m.keys = keys }
}

// WithHighlighter enables syntax highlighting. A nil highlighter leaves it
// off.
func WithHighlighter(h *highlighter.Highlighter) Option {
	return func(m *Model) { m.highlighter = h }
}

func New(editor *core.Editor, width, height int, opts ...Option) Model {
	m := Model{
		editor:   editor,
		viewport: viewport.New(width, max(height-1, 1)),
		theme:    DefaultTheme,
		keys:     DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.SetSize(width, height)
	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-1, 1)
	m.editor.Resize(height, width)
}

func (m Model) Editor() *core.Editor { return m.editor }

func (m Model) Init() tea.Cmd {
	return m.listenForEditorUpdate()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Suspend) {
			return m, tea.Suspend
		}

		keys := convertKey(msg)
		if key.Matches(msg, m.keys.Interrupt) {
			keys = []core.KeyEvent{core.SpecialKey(core.KeyEscape)}
		}
		for _, k := range keys {
			// errors come back as signals
			_ = m.editor.HandleKey(k)
			if m.editor.Quitting() {
				return m, tea.Quit
			}
		}

	case QuitMsg:
		return m, tea.Quit

	case bellMsg:
		m.bell = true
		cmds = append(cmds,
			m.listenForEditorUpdate(),
			tea.Tick(bellDuration, func(time.Time) tea.Msg { return clearBellMsg{} }),
		)

	case clearBellMsg:
		m.bell = false

	case ErrorMsg:
		m.err = msg.Err
		log.Printf("editor error %d: %v", msg.ID, msg.Err)
		cmds = append(cmds, m.listenForEditorUpdate())

	case SaveMsg:
		log.Printf("wrote %s (%d bytes)", msg.Path, msg.Size)
		cmds = append(cmds, m.listenForEditorUpdate())

	case signalMsg:
		cmds = append(cmds, m.listenForEditorUpdate())
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	l := m.editor.Layout()
	m.viewport.SetContent(m.renderContent(l))
	return m.viewport.View() + "\n" + m.renderStatus(l)
}

func (m Model) listenForEditorUpdate() tea.Cmd {
	signals := m.editor.GetUpdateSignalChan()
	return func() tea.Msg {
		switch signal := (<-signals).(type) {
		case core.QuitSignal:
			return QuitMsg{}

		case core.BellSignal:
			return bellMsg{}

		case core.ErrorSignal:
			id, err := signal.Value()
			return ErrorMsg{ID: id, Err: err}

		case core.SaveSignal:
			path, size := signal.Value()
			return SaveMsg{Path: path, Size: size}

		default:
			return signalMsg{signal: signal}
		}
	}
}
