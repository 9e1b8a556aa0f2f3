package core

import (
	"fmt"
	"strconv"

	"github.com/rivo/uniseg"
)

// State is a snapshot of the editor for frontends and tests.
type State struct {
	Mode     Mode
	Cursor   Position
	Lines    int
	Message  string
	FileName string
	Modified bool
	Pending  PendingCommand
	Quit     bool

	// the text of the open ':' or search prompt
	CommandLine string
}

func (e *Editor) GetState() State {
	s := State{
		Mode:     e.mode,
		Cursor:   e.cursor.Position,
		Lines:    e.buf.LineCount(),
		Message:  e.message,
		FileName: e.fileName,
		Modified: e.IsModified(),
		Pending:  e.pending,
		Quit:     e.quit,
	}
	switch e.mode {
	case CommandMode:
		s.CommandLine = e.cmdline.String()
	case SearchMode:
		s.CommandLine = e.search.String()
	}
	return s
}

// Layout is everything a frontend needs to draw one frame.
type Layout struct {
	Rows, Cols int
	Segments   []Segment
	Gutter     int // cells of line number column, 0 when numbering is off
	Lines      int // buffer line count
	Status     string
	Mode       Mode
	CursorRow  int
	CursorCol  int // includes the gutter
}

// LineNumber formats the gutter of a segment, blank on continuation rows.
func (l Layout) LineNumber(s Segment) string {
	if l.Gutter == 0 {
		return ""
	}
	if !s.First() {
		return fmt.Sprintf("%*s", l.Gutter, "")
	}
	return fmt.Sprintf("%*d ", l.Gutter-1, s.Line+1)
}

// Layout computes the visible frame. The status row is the last one; while a
// prompt is open the cursor sits on it.
func (e *Editor) Layout() Layout {
	e.syncView()
	e.view.Scroll(e.buf, e.cursor.Position)

	segs := e.view.Segments(e.buf)
	l := Layout{
		Rows:     e.view.Rows,
		Cols:     e.cols,
		Segments: segs,
		Gutter:   e.gutterWidth(),
		Lines:    e.buf.LineCount(),
		Status:   FitStatus(e.Status(), e.cols),
		Mode:     e.mode,
	}

	switch e.mode {
	case CommandMode, SearchMode:
		in := &e.cmdline
		if e.mode == SearchMode {
			in = &e.search
		}
		l.CursorRow = e.view.ContentRows()
		l.CursorCol = min(1+uniseg.StringWidth(string(in.text[:in.pos])), max(e.cols-1, 0))
	default:
		row, col, _ := e.view.CursorCell(e.buf, segs, e.cursor.Position)
		l.CursorRow, l.CursorCol = row, col+l.Gutter
	}
	return l
}

// Status is the text of the bottom line: the open prompt, the last message,
// the insert or replace label, or else the cursor position.
func (e *Editor) Status() string {
	switch e.mode {
	case CommandMode:
		return ":" + e.cmdline.String()
	case SearchMode:
		return string(e.SearchPrompt()) + e.search.String()
	}
	if e.message != "" {
		return e.message
	}
	if label := e.mode.Label(); label != "" {
		return label
	}
	return e.PositionStatus()
}

// Message is the last status message, empty when there is none.
func (e *Editor) Message() string { return e.message }

// PositionStatus is the Ctrl-G report for the cursor.
func (e *Editor) PositionStatus() string {
	pos := e.cursor.Position
	return PositionStatus(pos.Row+1, e.buf.LineCount(), pos.Col+1)
}

// Resize sets the terminal size, including the status row.
func (e *Editor) Resize(rows, cols int) {
	e.view.Rows = max(rows, 2)
	e.cols = max(cols, 1)
	e.syncView()
	e.view.Scroll(e.buf, e.cursor.Position)
}

func (e *Editor) syncView() {
	e.view.Cols = max(e.cols-e.gutterWidth(), 1)
	e.view.TabStop = e.opts.TabStop
	e.view.Insert = e.mode == InsertMode || e.mode == ReplaceMode
}

func (e *Editor) gutterWidth() int {
	if !e.opts.Number {
		return 0
	}
	return max(len(strconv.Itoa(e.buf.LineCount())), 3) + 1
}
