package rawterm

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/ionut-t/evi/core"
	"github.com/muesli/termenv"
)

// render draws one full frame of l. Every row is rewritten; the terminal
// cursor ends on the editor cursor.
func render(out *termenv.Output, l core.Layout) {
	out.HideCursor()

	content := max(l.Rows-1, 1)
	for row := 0; row < content; row++ {
		out.MoveCursor(row+1, 1)
		out.ClearLine()

		line := "~"
		if row < len(l.Segments) {
			s := l.Segments[row]
			line = l.LineNumber(s) + s.Text
		}
		_, _ = out.WriteString(ansi.Truncate(line, l.Cols, ""))
	}

	out.MoveCursor(content+1, 1)
	out.ClearLine()
	_, _ = out.WriteString(ansi.Truncate(l.Status, l.Cols, ""))

	out.MoveCursor(l.CursorRow+1, l.CursorCol+1)
	out.ShowCursor()
}
