package core

import (
	"bytes"
	"slices"
	"strings"
)

// Change describes one line-span replacement: the lines [Row, Row+len(Old))
// were replaced by New. Every buffer mutation is expressed as a Change so
// that history can invert it.
type Change struct {
	Row int
	Old []string
	New []string
}

// Inverse returns the change that undoes c.
func (c Change) Inverse() Change {
	return Change{Row: c.Row, Old: c.New, New: c.Old}
}

// Noop reports whether c leaves the lines as they were.
func (c Change) Noop() bool {
	return slices.Equal(c.Old, c.New)
}

// Buffer holds the edited text as lines of runes. It always has at least one
// line. Indices passed to the mutation primitives must be valid; callers clamp.
type Buffer struct {
	lines [][]rune
}

// NewBuffer creates a new empty buffer
func NewBuffer() *Buffer {
	return &Buffer{lines: [][]rune{{}}}
}

// NewBufferFromBytes splits content on '\n'. A trailing newline does not
// start an extra line and empty content is a single empty line.
func NewBufferFromBytes(content []byte) *Buffer {
	b := NewBuffer()
	b.SetContent(content)
	return b
}

func (b *Buffer) SetContent(content []byte) {
	content = bytes.TrimSuffix(content, []byte("\n"))
	if len(content) == 0 {
		b.lines = [][]rune{{}}
		return
	}

	parts := bytes.Split(content, []byte("\n"))
	b.lines = make([][]rune, len(parts))
	for i, p := range parts {
		b.lines[i] = bytes.Runes(bytes.TrimSuffix(p, []byte("\r")))
	}
}

func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the runes of line idx. The slice is owned by the buffer.
func (b *Buffer) Line(idx int) []rune { return b.lines[idx] }

func (b *Buffer) LineString(idx int) string { return string(b.lines[idx]) }

func (b *Buffer) LineLen(idx int) int { return len(b.lines[idx]) }

func (b *Buffer) Lines() []string {
	return b.slice(0, len(b.lines))
}

func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

// Content returns the file image: every line terminated by '\n', except that
// a buffer holding one empty line is the empty string.
func (b *Buffer) Content() string {
	if b.IsEmpty() {
		return ""
	}
	var sb strings.Builder
	for _, l := range b.lines {
		sb.WriteString(string(l))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Buffer) slice(from, to int) []string {
	out := make([]string, 0, to-from)
	for _, l := range b.lines[from:to] {
		out = append(out, string(l))
	}
	return out
}

// --- Mutation primitives ---

// ReplaceLines replaces n lines starting at row with lines. If that would
// leave the buffer without lines, a single empty line remains and the
// returned Change says so.
func (b *Buffer) ReplaceLines(row, n int, lines []string) Change {
	old := b.slice(row, row+n)
	if len(b.lines)-n+len(lines) == 0 {
		lines = []string{""}
	}

	repl := make([][]rune, len(lines))
	for i, l := range lines {
		repl[i] = []rune(l)
	}

	tail := append([][]rune{}, b.lines[row+n:]...)
	b.lines = append(append(b.lines[:row], repl...), tail...)

	return Change{Row: row, Old: old, New: append([]string{}, lines...)}
}

// Apply performs a recorded change.
func (b *Buffer) Apply(c Change) {
	b.ReplaceLines(c.Row, len(c.Old), c.New)
}

// InsertText inserts text before column col of row. Newlines in text split
// the line.
func (b *Buffer) InsertText(row, col int, text string) Change {
	line := b.lines[row]
	head, tail := string(line[:col]), string(line[col:])
	parts := strings.Split(text, "\n")
	parts[0] = head + parts[0]
	parts[len(parts)-1] += tail
	return b.ReplaceLines(row, 1, parts)
}

// DeleteRange removes the text from (row1, col1) up to but not including
// (row2, col2). col2 may equal the line length; deleting through a line break
// is expressed as (row+1, 0).
func (b *Buffer) DeleteRange(row1, col1, row2, col2 int) Change {
	joined := string(b.lines[row1][:col1]) + string(b.lines[row2][col2:])
	return b.ReplaceLines(row1, row2-row1+1, []string{joined})
}

// SplitLine breaks row at col; the text from col onwards becomes the next line.
func (b *Buffer) SplitLine(row, col int) Change {
	line := b.lines[row]
	return b.ReplaceLines(row, 1, []string{string(line[:col]), string(line[col:])})
}

// JoinLine appends line row+1 to line row with no separator.
func (b *Buffer) JoinLine(row int) Change {
	joined := string(b.lines[row]) + string(b.lines[row+1])
	return b.ReplaceLines(row, 2, []string{joined})
}

func (b *Buffer) ReplaceLine(row int, text string) Change {
	return b.ReplaceLines(row, 1, []string{text})
}

// Text returns the runes from (row1, col1) up to (row2, col2) with line
// breaks as '\n'.
func (b *Buffer) Text(row1, col1, row2, col2 int) string {
	if row1 == row2 {
		return string(b.lines[row1][col1:col2])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[row1][col1:]))
	for r := row1 + 1; r < row2; r++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[r]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[row2][:col2]))
	return sb.String()
}
