package core

import (
	"math"
	"unicode"
)

// Position represents a specific location in the text buffer
type Position struct {
	Row int // Zero-indexed row (line number)
	Col int // Zero-indexed column (rune index in the line)
}

func (p Position) Before(q Position) bool {
	return p.Row < q.Row || (p.Row == q.Row && p.Col < q.Col)
}

// Cursor represents the current position for editing operations
type Cursor struct {
	Position  Position // Current position (row, column)
	Preferred int      // Preferred column for vertical movement (sticky column)
}

// EndOfLine as a preferred column keeps the cursor on the last character
// across vertical motions, as after '$'.
const EndOfLine = math.MaxInt

func NewCursor(row, col int) Cursor {
	return Cursor{Position: Position{Row: row, Col: col}, Preferred: col}
}

// maxCol is the largest column the cursor may rest on. Normal mode stops on
// the last character; insert mode and operator targets may sit after it.
func maxCol(buf *Buffer, row int, pastEnd bool) int {
	n := buf.LineLen(row)
	if pastEnd || n == 0 {
		return n
	}
	return n - 1
}

// Clamp keeps the cursor inside the buffer.
func (c Cursor) Clamp(buf *Buffer, pastEnd bool) Cursor {
	if c.Position.Row >= buf.LineCount() {
		c.Position.Row = buf.LineCount() - 1
	}
	if c.Position.Row < 0 {
		c.Position.Row = 0
	}
	if m := maxCol(buf, c.Position.Row, pastEnd); c.Position.Col > m {
		c.Position.Col = m
	}
	if c.Position.Col < 0 {
		c.Position.Col = 0
	}
	return c
}

// --- Character classes ---

type charClass int

const (
	classBlank charClass = iota
	classWord
	classPunct
)

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isWhiteSpace(r rune) bool {
	return unicode.IsSpace(r)
}

func classOf(r rune) charClass {
	switch {
	case isWhiteSpace(r):
		return classBlank
	case isWordChar(r):
		return classWord
	default:
		return classPunct
	}
}

func firstNonBlank(line []rune) int {
	for i, r := range line {
		if !isWhiteSpace(r) {
			return i
		}
	}
	if len(line) == 0 {
		return 0
	}
	return len(line) - 1
}

// --- Word scanning ---
//
// The scanners walk a virtual stream where every line ends with a newline
// position at col == len(line). Newlines count as blanks, except that an
// empty line is a word of its own for 'w' and 'b'.

type scanner struct {
	buf *Buffer
	pos Position
}

func (s *scanner) class() charClass {
	line := s.buf.Line(s.pos.Row)
	if s.pos.Col >= len(line) {
		return classBlank
	}
	return classOf(line[s.pos.Col])
}

func (s *scanner) emptyLine() bool {
	return s.buf.LineLen(s.pos.Row) == 0
}

func (s *scanner) next() bool {
	if s.pos.Col < s.buf.LineLen(s.pos.Row) {
		s.pos.Col++
		return true
	}
	if s.pos.Row+1 >= s.buf.LineCount() {
		return false
	}
	s.pos = Position{Row: s.pos.Row + 1}
	return true
}

func (s *scanner) prev() bool {
	if s.pos.Col > 0 {
		s.pos.Col--
		return true
	}
	if s.pos.Row == 0 {
		return false
	}
	s.pos.Row--
	s.pos.Col = s.buf.LineLen(s.pos.Row)
	return true
}

// nextWordStart finds the start of the next word. At the end of the buffer it
// returns the newline position of the last line.
func nextWordStart(buf *Buffer, p Position) Position {
	s := scanner{buf: buf, pos: p}
	startRow := p.Row

	if cls := s.class(); cls != classBlank {
		for s.pos.Col < buf.LineLen(s.pos.Row) && s.class() == cls {
			s.pos.Col++
		}
	}

	for s.class() == classBlank {
		if s.pos.Row != startRow && s.emptyLine() {
			return s.pos
		}
		if !s.next() {
			return s.pos
		}
	}
	return s.pos
}

// prevWordStart finds the start of the word before p.
func prevWordStart(buf *Buffer, p Position) Position {
	s := scanner{buf: buf, pos: p}
	if !s.prev() {
		return p
	}

	for s.class() == classBlank {
		if s.emptyLine() && s.pos.Row != p.Row {
			return s.pos
		}
		if !s.prev() {
			return s.pos
		}
	}

	cls := s.class()
	line := buf.Line(s.pos.Row)
	for s.pos.Col > 0 && classOf(line[s.pos.Col-1]) == cls {
		s.pos.Col--
	}
	return s.pos
}

// wordEnd finds the last character of the current or next word.
func wordEnd(buf *Buffer, p Position) Position {
	s := scanner{buf: buf, pos: p}
	if !s.next() {
		return p
	}
	for s.class() == classBlank {
		if !s.next() {
			return p
		}
	}

	cls := s.class()
	line := buf.Line(s.pos.Row)
	for s.pos.Col+1 < len(line) && classOf(line[s.pos.Col+1]) == cls {
		s.pos.Col++
	}
	return s.pos
}

// findInLine searches line for the count-th occurrence of r after (forward)
// or before col. It returns -1 when there are not enough occurrences.
func findInLine(line []rune, col int, r rune, forward bool, count int) int {
	if forward {
		for i := col + 1; i < len(line); i++ {
			if line[i] == r {
				count--
				if count == 0 {
					return i
				}
			}
		}
		return -1
	}
	for i := col - 1; i >= 0; i-- {
		if line[i] == r {
			count--
			if count == 0 {
				return i
			}
		}
	}
	return -1
}
