package core

import (
	"errors"
	"strings"
)

func (e *Editor) applyOperator(op rune, m Motion, total int) error {
	return e.applyOperatorWith(op, m, total, false)
}

// applyOperatorWith deletes (d) or changes (c) the text motion m covers from
// the cursor. Linewise motions act on whole lines.
func (e *Editor) applyOperatorWith(op rune, m Motion, total int, repeat bool) error {
	count := max(total, 1)
	start := e.cursor.Position

	if op == 'c' && m.Kind == MotionWordForward {
		if end, ok := e.changeWordEnd(count); ok {
			return e.operateSpan(op, start, Position{Row: start.Row, Col: end + 1})
		}
	}

	ctx := MotionContext{Count: count, HasCount: total > 0, PastEnd: true, Repeat: repeat}
	target, err := Resolve(e.buf, e.cursor, m, ctx)
	if err != nil {
		// s and cl on an empty line still start an insert
		if op == 'c' && m.Kind == MotionRight && errors.Is(err, ErrEndOfLine) {
			return e.operateSpan(op, start, start)
		}
		return err
	}

	if m.Linewise() {
		r1, r2 := start.Row, target.Position.Row
		if r2 < r1 {
			r1, r2 = r2, r1
		}
		return e.operateLines(op, r1, r2)
	}

	from, to := start, target.Position
	if to.Before(from) {
		from, to = to, from
	}
	if m.Inclusive() {
		to.Col = min(to.Col+1, e.buf.LineLen(to.Row))
	}
	if m.Kind == MotionWordForward && to.Row > from.Row && onlyBlanks(e.buf.Line(to.Row)[:to.Col]) {
		// dw never eats the line break in front of the next word
		to = Position{Row: to.Row - 1, Col: e.buf.LineLen(to.Row - 1)}
		if to.Before(from) {
			to = from
		}
	}
	return e.operateSpan(op, from, to)
}

// changeWordEnd gives the last column cw changes: like ce, except that a
// cursor on the last character of a word changes only that character. ok is
// false on blanks, where cw behaves like dw.
func (e *Editor) changeWordEnd(count int) (int, bool) {
	pos := e.cursor.Position
	line := e.buf.Line(pos.Row)
	if pos.Col >= len(line) || isWhiteSpace(line[pos.Col]) {
		return 0, false
	}

	p := pos
	for i := range count {
		cls := classOf(line[p.Col])
		atEnd := p.Col+1 >= len(line) || classOf(line[p.Col+1]) != cls
		if i == 0 && atEnd {
			continue
		}
		next := wordEnd(e.buf, p)
		if next.Row != pos.Row {
			break
		}
		p = next
	}
	return p.Col, true
}

func onlyBlanks(rs []rune) bool {
	for _, r := range rs {
		if !isWhiteSpace(r) {
			return false
		}
	}
	return true
}

// operateSpan applies op to the characters in [from, to).
func (e *Editor) operateSpan(op rune, from, to Position) error {
	if from != to {
		e.setRegister(e.buf.Text(from.Row, from.Col, to.Row, to.Col), false)
		e.record(e.buf.DeleteRange(from.Row, from.Col, to.Row, to.Col))
		if to.Row > from.Row {
			e.DispatchSignal(DeleteSignal{totalLines: to.Row - from.Row + 1})
		}
	}

	e.cursor = NewCursor(from.Row, from.Col)
	if op == 'c' {
		e.startInsert(insertSession{count: 1})
		return nil
	}
	e.cursor = e.cursor.Clamp(e.buf, false)
	return nil
}

// operateLines applies op to lines r1..r2. cc keeps one empty line to type
// into.
func (e *Editor) operateLines(op rune, r1, r2 int) error {
	r2 = min(r2, e.buf.LineCount()-1)
	n := r2 - r1 + 1
	lines := e.buf.slice(r1, r2+1)
	e.setRegister(strings.Join(lines, "\n"), true)

	if op == 'c' {
		e.record(e.buf.ReplaceLines(r1, n, []string{""}))
		e.cursor = NewCursor(r1, 0)
		e.startInsert(insertSession{count: 1})
		return nil
	}

	e.record(e.buf.ReplaceLines(r1, n, nil))
	e.cursor = e.lineCursor(min(r1, e.buf.LineCount()-1))
	e.reportLines(n, "fewer")
	e.DispatchSignal(DeleteSignal{totalLines: n})
	return nil
}

// operateToward applies op between the cursor and pos, exclusive, as a
// search motion does.
func (e *Editor) operateToward(op rune, pos Position) error {
	from, to := e.cursor.Position, pos
	if to.Before(from) {
		from, to = to, from
	}
	return e.operateSpan(op, from, to)
}
