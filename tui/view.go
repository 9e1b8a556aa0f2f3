package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/evi/core"
	"github.com/rivo/uniseg"
)

func prompting(mode core.Mode) bool {
	return mode == core.CommandMode || mode == core.SearchMode
}

func (m Model) cursorStyle(mode core.Mode) lipgloss.Style {
	switch mode {
	case core.InsertMode, core.ReplaceMode:
		return m.theme.InsertCursorStyle
	case core.CommandMode, core.SearchMode:
		return m.theme.CommandCursorStyle
	}
	return m.theme.NormalCursorStyle
}

// renderContent draws the text rows of l. Rows past the end of the buffer
// show a tilde.
func (m Model) renderContent(l core.Layout) string {
	buf := m.editor.Buffer()
	tab := m.editor.Options().TabStop
	cursorLine := m.editor.Cursor().Position.Row

	var styles map[int][]lipgloss.Style
	if m.highlighter != nil {
		m.highlighter.Update(m.editor.Version(), buf.Lines())
		styles = make(map[int][]lipgloss.Style)
	}

	rows := make([]string, 0, max(l.Rows-1, 1))
	for _, s := range l.Segments {
		var sb strings.Builder

		if gutter := l.LineNumber(s); gutter != "" {
			style := m.theme.LineNumberStyle
			if s.Line == cursorLine {
				style = m.theme.CurrentLineStyle
			}
			sb.WriteString(style.Render(gutter))
		}

		cursorCol := -1
		if !prompting(l.Mode) && s.Row == l.CursorRow {
			cursorCol = l.CursorCol - l.Gutter
		}

		var lineStyles []lipgloss.Style
		if styles != nil {
			if _, ok := styles[s.Line]; !ok {
				styles[s.Line] = m.highlighter.LineStyles(s.Line)
			}
			lineStyles = styles[s.Line]
		}

		m.renderSegment(&sb, buf.Line(s.Line)[s.Start:s.Start+s.Count], s.Start, lineStyles, tab, cursorCol, l.Mode)
		rows = append(rows, sb.String())
	}

	for len(rows) < max(l.Rows-1, 1) {
		rows = append(rows, m.theme.TildeStyle.Render("~"))
	}
	return strings.Join(rows, "\n")
}

// renderSegment writes the runes of one screen row. start is the index of
// runes[0] in its line, used to look up lineStyles.
func (m Model) renderSegment(sb *strings.Builder, runes []rune, start int, lineStyles []lipgloss.Style, tab, cursorCol int, mode core.Mode) {
	col := 0
	for i, r := range runes {
		text := core.CellText(r, tab)
		width := core.RuneWidth(r, tab)

		style := lipgloss.NewStyle()
		if idx := start + i; idx < len(lineStyles) {
			style = lineStyles[idx]
		}
		if (r < 0x20 && r != '\t') || r == 0x7f {
			style = m.theme.ControlCharStyle
		}
		if cursorCol >= col && cursorCol < col+width {
			style = m.cursorStyle(mode)
		}

		sb.WriteString(style.Render(text))
		col += width
	}

	// cursor past the last rune, as in insert mode or on an empty line
	if cursorCol >= col {
		sb.WriteString(strings.Repeat(" ", cursorCol-col))
		sb.WriteString(m.cursorStyle(mode).Render(" "))
	}
}

func (m Model) statusStyle(l core.Layout) lipgloss.Style {
	switch {
	case m.bell:
		return m.theme.BellStyle
	case m.err != nil && l.Status == m.err.Error():
		return m.theme.ErrorStyle
	case l.Mode.Label() != "" && l.Status == l.Mode.Label():
		return m.theme.ModeStyle
	case m.editor.Message() != "" && l.Status == m.editor.Message():
		return m.theme.MessageStyle
	}
	return m.theme.StatusLineStyle
}

// renderStatus draws the bottom row padded to the full width. While a prompt
// is open the cursor is drawn on it.
func (m Model) renderStatus(l core.Layout) string {
	style := m.statusStyle(l)

	if !prompting(l.Mode) {
		pad := max(l.Cols-uniseg.StringWidth(l.Status), 0)
		return style.Render(l.Status + strings.Repeat(" ", pad))
	}

	var sb strings.Builder
	col := 0
	drawn := false
	g := uniseg.NewGraphemes(l.Status)
	for g.Next() {
		cluster := g.Str()
		if !drawn && col == l.CursorCol {
			sb.WriteString(m.cursorStyle(l.Mode).Render(cluster))
			drawn = true
		} else {
			sb.WriteString(style.Render(cluster))
		}
		col += g.Width()
	}
	if !drawn {
		sb.WriteString(m.cursorStyle(l.Mode).Render(" "))
		col++
	}
	if col < l.Cols {
		sb.WriteString(style.Render(strings.Repeat(" ", l.Cols-col)))
	}
	return sb.String()
}
