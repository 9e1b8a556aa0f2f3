package core

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const DefaultTabStop = 8

// Viewport is the visible window onto the buffer. Rows includes the status
// line. Skip is the number of wrap rows of the Top line scrolled off screen,
// non-zero only while the cursor sits in a line taller than the screen.
// With Insert set, a cursor after the last rune of a line that fills its
// last row gets an extra empty row.
type Viewport struct {
	Top     int
	Skip    int
	Rows    int
	Cols    int
	TabStop int
	Insert  bool

	cursor Position // last position passed to Scroll
}

// Segment is one terminal row of wrapped text.
type Segment struct {
	Row   int // terminal row, zero based
	Line  int // buffer line
	Start int // first rune of the segment
	Count int // runes in the segment
	Text  string
}

// First reports whether the segment starts its buffer line.
func (s Segment) First() bool { return s.Start == 0 }

type span struct{ start, count int }

// ContentRows is the number of rows available to text.
func (v *Viewport) ContentRows() int {
	return max(v.Rows-1, 1)
}

func (v *Viewport) tabStop() int {
	if v.TabStop <= 0 {
		return DefaultTabStop
	}
	return v.TabStop
}

// RuneWidth is the number of cells r occupies on screen.
func RuneWidth(r rune, tabStop int) int {
	if r == '\t' {
		return tabStop
	}
	if r < 0x20 || r == 0x7f {
		return 2 // rendered as ^X
	}
	return runewidth.RuneWidth(r)
}

// DisplayWidth sums the cell widths of line.
func DisplayWidth(line []rune, tabStop int) int {
	w := 0
	for _, r := range line {
		w += RuneWidth(r, tabStop)
	}
	return w
}

// WrapLine splits line into segments of at most cols cells. A rune never
// straddles two segments and an empty line is one empty segment.
func WrapLine(line []rune, cols, tabStop int) []span {
	cols = max(cols, 1)
	if len(line) == 0 {
		return []span{{0, 0}}
	}

	var spans []span
	start, width := 0, 0
	for i, r := range line {
		w := RuneWidth(r, tabStop)
		if width+w > cols && i > start {
			spans = append(spans, span{start, i - start})
			start, width = i, 0
		}
		width += w
	}
	return append(spans, span{start, len(line) - start})
}

// spans wraps line row, adding the row an appending cursor needs.
func (v *Viewport) spans(buf *Buffer, row int) []span {
	line := buf.Line(row)
	spans := WrapLine(line, v.Cols, v.tabStop())
	if !v.Insert || row != v.cursor.Row || v.cursor.Col < len(line) || len(line) == 0 {
		return spans
	}
	tail := spans[len(spans)-1]
	if DisplayWidth(line[tail.start:], v.tabStop()) >= max(v.Cols, 1) {
		spans = append(spans, span{len(line), 0})
	}
	return spans
}

// LineHeight is the number of terminal rows line occupies.
func (v *Viewport) LineHeight(buf *Buffer, row int) int {
	return len(v.spans(buf, row))
}

// segmentOf returns which wrap segment of its line holds col.
func (v *Viewport) segmentOf(buf *Buffer, pos Position) int {
	spans := v.spans(buf, pos.Row)
	for i := len(spans) - 1; i > 0; i-- {
		if pos.Col >= spans[i].start {
			return i
		}
	}
	return 0
}

// Scroll moves Top the least amount that brings the cursor's wrap segment on
// screen. It leaves Top alone when the segment is already visible.
func (v *Viewport) Scroll(buf *Buffer, pos Position) {
	v.cursor = pos
	v.clamp(buf)
	rows := v.ContentRows()
	seg := v.segmentOf(buf, pos)

	if pos.Row < v.Top || (pos.Row == v.Top && seg < v.Skip) {
		v.Top = pos.Row
		v.Skip = max(seg-rows+1, 0)
		return
	}

	// rows from the top of the screen down to and including the cursor row
	needed := seg + 1 - v.Skip
	if pos.Row > v.Top {
		needed = v.LineHeight(buf, v.Top) - v.Skip
		for r := v.Top + 1; r < pos.Row && needed <= rows; r++ {
			needed += v.LineHeight(buf, r)
		}
		needed += seg + 1
	}

	if needed <= rows {
		return
	}

	// fill the screen upwards so the cursor segment lands on the last row
	top, skip := pos.Row, 0
	if seg+1 > rows {
		v.Top, v.Skip = top, seg+1-rows
		return
	}
	remaining := rows - seg - 1
	for remaining > 0 && top > 0 {
		h := v.LineHeight(buf, top-1)
		top--
		if h > remaining {
			skip = h - remaining
			break
		}
		remaining -= h
	}
	v.Top, v.Skip = top, skip
}

func (v *Viewport) clamp(buf *Buffer) {
	if v.Top >= buf.LineCount() {
		v.Top = buf.LineCount() - 1
		v.Skip = 0
	}
	if v.Top < 0 {
		v.Top = 0
	}
	if h := v.LineHeight(buf, v.Top); v.Skip >= h {
		v.Skip = h - 1
	}
	if v.Skip < 0 {
		v.Skip = 0
	}
}

// Segments lays out the visible text from Top. Rows past the end of the
// buffer are not returned.
func (v *Viewport) Segments(buf *Buffer) []Segment {
	v.clamp(buf)
	rows := v.ContentRows()
	tab := v.tabStop()
	segs := make([]Segment, 0, rows)

	skip := v.Skip
	for line := v.Top; line < buf.LineCount() && len(segs) < rows; line++ {
		runes := buf.Line(line)
		for _, sp := range v.spans(buf, line)[skip:] {
			if len(segs) == rows {
				break
			}
			segs = append(segs, Segment{
				Row:   len(segs),
				Line:  line,
				Start: sp.start,
				Count: sp.count,
				Text:  expandTabs(runes[sp.start:sp.start+sp.count], tab),
			})
		}
		skip = 0
	}
	return segs
}

// CursorCell returns the terminal row and column of pos given the segments
// from Segments. ok is false when pos is off screen.
func (v *Viewport) CursorCell(buf *Buffer, segs []Segment, pos Position) (row, col int, ok bool) {
	for i := len(segs) - 1; i >= 0; i-- {
		s := segs[i]
		if s.Line != pos.Row || pos.Col < s.Start {
			continue
		}
		end := min(pos.Col, buf.LineLen(pos.Row))
		col = DisplayWidth(buf.Line(pos.Row)[s.Start:end], v.tabStop())
		return s.Row, min(col, max(v.Cols-1, 0)), true
	}
	return 0, 0, false
}

// PageDown scrolls forward count pages of ContentRows-2 lines and puts the
// cursor on the new top line.
func (v *Viewport) PageDown(buf *Buffer, cur Cursor, count int) (Cursor, error) {
	last := buf.LineCount() - 1
	if v.Top >= last {
		return cur, ErrEndOfBuffer
	}
	pages := min(max(count, 1), last-v.Top)
	v.Top = min(v.Top+v.pageStep()*pages, last)
	v.Skip = 0
	return v.pageCursor(buf, cur), nil
}

// PageUp scrolls back count pages.
func (v *Viewport) PageUp(buf *Buffer, cur Cursor, count int) (Cursor, error) {
	if v.Top == 0 && v.Skip == 0 {
		return cur, ErrStartOfBuffer
	}
	pages := min(max(count, 1), v.Top+1)
	v.Top = max(v.Top-v.pageStep()*pages, 0)
	v.Skip = 0
	return v.pageCursor(buf, cur), nil
}

func (v *Viewport) pageStep() int {
	if rows := v.ContentRows(); rows > 2 {
		return rows - 2
	}
	return 1
}

func (v *Viewport) pageCursor(buf *Buffer, cur Cursor) Cursor {
	c := Cursor{Position: Position{Row: v.Top, Col: cur.Position.Col}, Preferred: cur.Preferred}
	return c.Clamp(buf, false)
}

func expandTabs(runes []rune, tabStop int) string {
	var sb strings.Builder
	for _, r := range runes {
		sb.WriteString(CellText(r, tabStop))
	}
	return sb.String()
}

// CellText is what r looks like on screen: tabs become spaces and control
// characters are shown as ^X.
func CellText(r rune, tabStop int) string {
	switch {
	case r == '\t':
		return strings.Repeat(" ", tabStop)
	case r < 0x20:
		return "^" + string(r+'@')
	case r == 0x7f:
		return "^?"
	}
	return string(r)
}
