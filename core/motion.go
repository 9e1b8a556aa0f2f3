package core

import "fmt"

type MotionKind int

const (
	MotionLeft MotionKind = iota
	MotionRight
	MotionDown
	MotionUp
	MotionLineStart     // 0
	MotionLineEnd       // $
	MotionFirstNonBlank // ^
	MotionWordForward   // w
	MotionWordBackward  // b
	MotionWordEnd       // e
	MotionLastLine      // G
	MotionFirstLine     // gg
	MotionNextLine      // + and Enter
	MotionPrevLine      // -
	MotionFindForward   // f
	MotionFindBackward  // F
	MotionTillForward   // t
	MotionTillBackward  // T
)

type Motion struct {
	Kind MotionKind
	Char rune // target of f, F, t and T
}

// Linewise motions make operators act on whole lines.
func (m Motion) Linewise() bool {
	switch m.Kind {
	case MotionDown, MotionUp, MotionLastLine, MotionFirstLine, MotionNextLine, MotionPrevLine:
		return true
	}
	return false
}

// Inclusive motions make operators include the character under the target.
func (m Motion) Inclusive() bool {
	switch m.Kind {
	case MotionLineEnd, MotionWordEnd, MotionFindForward, MotionTillForward:
		return true
	}
	return false
}

type MotionContext struct {
	Count    int  // repeat count, at least 1
	HasCount bool // a count was typed, for G and gg
	PastEnd  bool // the target may sit after the last character
	Repeat   bool // ';' or ',' repeating a till motion
}

// motionKeys maps the single-key motions of normal mode.
var motionKeys = map[rune]MotionKind{
	'h': MotionLeft,
	'l': MotionRight,
	' ': MotionRight,
	'j': MotionDown,
	'k': MotionUp,
	'0': MotionLineStart,
	'$': MotionLineEnd,
	'^': MotionFirstNonBlank,
	'w': MotionWordForward,
	'b': MotionWordBackward,
	'e': MotionWordEnd,
	'G': MotionLastLine,
	'+': MotionNextLine,
	'-': MotionPrevLine,
}

func motionForKey(key KeyEvent) (Motion, bool) {
	if key.Modifiers == ModNone && key.Rune != 0 {
		kind, ok := motionKeys[key.Rune]
		return Motion{Kind: kind}, ok
	}
	if key.IsCtrl('h') {
		return Motion{Kind: MotionLeft}, true
	}
	if key.IsCtrl('n') || key.IsCtrl('j') {
		return Motion{Kind: MotionDown}, true
	}
	if key.IsCtrl('p') {
		return Motion{Kind: MotionUp}, true
	}

	switch key.Key {
	case KeyLeft, KeyBackspace:
		return Motion{Kind: MotionLeft}, true
	case KeyRight, KeySpace:
		return Motion{Kind: MotionRight}, true
	case KeyDown:
		return Motion{Kind: MotionDown}, true
	case KeyUp:
		return Motion{Kind: MotionUp}, true
	case KeyHome:
		return Motion{Kind: MotionLineStart}, true
	case KeyEnd:
		return Motion{Kind: MotionLineEnd}, true
	case KeyEnter:
		return Motion{Kind: MotionNextLine}, true
	}
	return Motion{}, false
}

// Resolve computes where motion m takes the cursor. It never mutates buf.
// A motion that cannot move at all returns a boundary error and the cursor
// unchanged; a counted motion that can move part of the way does so.
func Resolve(buf *Buffer, cur Cursor, m Motion, ctx MotionContext) (Cursor, error) {
	count := max(ctx.Count, 1)
	pos := cur.Position
	line := buf.Line(pos.Row)
	last := buf.LineCount() - 1

	horizontal := func(col int) Cursor {
		return Cursor{Position: Position{Row: pos.Row, Col: col}, Preferred: col}
	}
	vertical := func(row int) Cursor {
		col := cur.Preferred
		if m := maxCol(buf, row, false); col > m {
			col = m
		}
		return Cursor{Position: Position{Row: row, Col: col}, Preferred: cur.Preferred}
	}
	toLine := func(row int) Cursor {
		col := firstNonBlank(buf.Line(row))
		return Cursor{Position: Position{Row: row, Col: col}, Preferred: col}
	}

	switch m.Kind {
	case MotionLeft:
		if pos.Col == 0 {
			return cur, ErrStartOfLine
		}
		return horizontal(max(pos.Col-count, 0)), nil

	case MotionRight:
		limit := maxCol(buf, pos.Row, ctx.PastEnd)
		if pos.Col >= limit {
			return cur, ErrEndOfLine
		}
		return horizontal(pos.Col + min(count, limit-pos.Col)), nil

	case MotionDown:
		if pos.Row >= last {
			return cur, ErrEndOfBuffer
		}
		return vertical(pos.Row + min(count, last-pos.Row)), nil

	case MotionUp:
		if pos.Row == 0 {
			return cur, ErrStartOfBuffer
		}
		return vertical(max(pos.Row-count, 0)), nil

	case MotionLineStart:
		return horizontal(0), nil

	case MotionFirstNonBlank:
		return horizontal(firstNonBlank(line)), nil

	case MotionLineEnd:
		row := pos.Row + min(count-1, last-pos.Row)
		col := maxCol(buf, row, false)
		return Cursor{Position: Position{Row: row, Col: col}, Preferred: EndOfLine}, nil

	case MotionNextLine:
		if pos.Row >= last {
			return cur, ErrEndOfBuffer
		}
		return toLine(pos.Row + min(count, last-pos.Row)), nil

	case MotionPrevLine:
		if pos.Row == 0 {
			return cur, ErrStartOfBuffer
		}
		return toLine(max(pos.Row-count, 0)), nil

	case MotionLastLine, MotionFirstLine:
		row := last
		if m.Kind == MotionFirstLine {
			row = 0
		}
		if ctx.HasCount {
			row = min(max(count, 1), last+1) - 1
		}
		return Cursor{Position: Position{Row: row}}, nil

	case MotionWordForward:
		p := pos
		for range count {
			next := nextWordStart(buf, p)
			if next == p {
				break
			}
			p = next
		}
		if !ctx.PastEnd && p.Col >= buf.LineLen(p.Row) {
			p.Col = maxCol(buf, p.Row, false)
		}
		if p == pos {
			return cur, ErrEndOfBuffer
		}
		return Cursor{Position: p, Preferred: p.Col}, nil

	case MotionWordBackward:
		p := pos
		for range count {
			prev := prevWordStart(buf, p)
			if prev == p {
				break
			}
			p = prev
		}
		if p == pos {
			return cur, ErrStartOfBuffer
		}
		return Cursor{Position: p, Preferred: p.Col}, nil

	case MotionWordEnd:
		p := pos
		for range count {
			next := wordEnd(buf, p)
			if next == p {
				break
			}
			p = next
		}
		if p == pos {
			return cur, ErrEndOfBuffer
		}
		return Cursor{Position: p, Preferred: p.Col}, nil

	case MotionFindForward, MotionFindBackward, MotionTillForward, MotionTillBackward:
		forward := m.Kind == MotionFindForward || m.Kind == MotionTillForward
		till := m.Kind == MotionTillForward || m.Kind == MotionTillBackward
		from := pos.Col
		if till && ctx.Repeat {
			// a repeated till must not stop in front of the same character
			if forward {
				from++
			} else {
				from--
			}
		}
		col := findInLine(line, from, m.Char, forward, count)
		if col < 0 {
			return cur, fmt.Errorf("%w: %q not found", ErrInvalidMotion, m.Char)
		}
		if till {
			if forward {
				col--
			} else {
				col++
			}
		}
		return horizontal(col), nil
	}

	return cur, ErrInvalidMotion
}
