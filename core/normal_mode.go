package core

import (
	"fmt"
	"strings"
	"unicode"
)

func (e *Editor) normalKey(key KeyEvent) error {
	e.message = ""

	if key.Modifiers == ModNone && e.pending.countingDigit(key.Rune) {
		e.pending.addDigit(key.Rune)
		// counts are not part of the repeated keys; '.' supplies its own
		e.cmdKeys = e.cmdKeys[:len(e.cmdKeys)-1]
		return nil
	}

	p := e.pending
	e.pending.reset()
	e.cmdCount = p.total()

	e.history.Begin(e.cursor)
	from := e.history.recordedLen()
	err := e.normalCommand(key, p)
	changed := e.history.recordedLen() > from

	if err != nil {
		e.history.Commit(e.cursor)
		e.abort()
		return err
	}
	if e.mode == InsertMode || e.mode == ReplaceMode {
		// the session closes the undo group and the repeat on Esc
		return nil
	}
	e.history.Commit(e.cursor)

	if e.pending.Active() {
		return nil
	}
	e.finishCommand(changed)
	return nil
}

// normalCommand runs one complete or partial normal mode command. Commands
// that wait for more keys store what they need back into e.pending.
func (e *Editor) normalCommand(key KeyEvent, p PendingCommand) error {
	if p.Prefix != 0 {
		return e.prefixKey(key, p)
	}

	if key.Key == KeyEscape {
		e.DispatchSignal(BellSignal{})
		return nil
	}

	if m, ok := motionForKey(key); ok {
		return e.motion(m, p)
	}

	if p.Operator != 0 {
		return e.operatorKey(key, p)
	}

	total := p.total()
	count := max(total, 1)

	switch {
	case key.IsCtrl('g'):
		e.DispatchMessage(e.PositionStatus())
		return nil
	case key.IsCtrl('l'):
		return nil
	case key.IsCtrl('r'):
		for i := range count {
			if i > 0 && !e.history.CanRedo() {
				break
			}
			if err := e.redo(); err != nil {
				return err
			}
		}
		return nil
	case key.IsCtrl('f'), key.Key == KeyPageDown:
		e.syncView()
		c, err := e.view.PageDown(e.buf, e.cursor, count)
		e.cursor = c
		return err
	case key.IsCtrl('b'), key.Key == KeyPageUp:
		e.syncView()
		c, err := e.view.PageUp(e.buf, e.cursor, count)
		e.cursor = c
		return err
	case key.Key == KeyDelete:
		return e.applyOperator('d', Motion{Kind: MotionRight}, total)
	case key.Key == KeyInsert:
		return e.beginInsert('i', count)
	}

	if !key.printable() {
		return unknownKey(key)
	}

	switch key.Rune {
	case 'i', 'a', 'I', 'A', 'o', 'O':
		return e.beginInsert(key.Rune, count)
	case 'R':
		return e.beginReplace(count)
	case 'd', 'c':
		e.pending = PendingCommand{Count: p.Count, Operator: key.Rune}
		return nil
	case 'g', 'Z', 'r', 'f', 't', 'F', 'T':
		e.pending = PendingCommand{Count: p.Count, Prefix: key.Rune}
		return nil
	case 'x':
		return e.applyOperator('d', Motion{Kind: MotionRight}, total)
	case 'X':
		return e.applyOperator('d', Motion{Kind: MotionLeft}, total)
	case 'D':
		return e.applyOperator('d', Motion{Kind: MotionLineEnd}, total)
	case 'C':
		return e.applyOperator('c', Motion{Kind: MotionLineEnd}, total)
	case 's':
		return e.applyOperator('c', Motion{Kind: MotionRight}, total)
	case 'S':
		row := e.cursor.Position.Row
		return e.operateLines('c', row, e.countedRow(row, count))
	case 'J':
		return e.joinCommand(count)
	case 'p', 'P':
		return e.put(key.Rune == 'p', count)
	case '~':
		return e.toggleCase(count)
	case 'u':
		return e.undo()
	case '.':
		return e.repeatLast(total)
	case ';', ',':
		m, err := e.findRepeat(key.Rune == ',')
		if err != nil {
			return err
		}
		return e.motionWith(m, p, true)
	case 'n', 'N':
		pos, err := e.searchNext(key.Rune == 'N', count)
		if err != nil {
			return err
		}
		e.cursor = NewCursor(pos.Row, pos.Col)
		return nil
	case ':':
		e.beginCommandLine(total)
		return nil
	case '/', '?':
		e.beginSearch(key.Rune, p)
		return nil
	}

	return unknownKey(key)
}

// prefixKey completes a two key command such as gg, ZZ, rx or fx.
func (e *Editor) prefixKey(key KeyEvent, p PendingCommand) error {
	prefix := p.Prefix
	p.Prefix = 0
	if key.Key == KeyEscape {
		return nil
	}

	switch prefix {
	case 'g':
		if key.Rune == 'g' && key.Modifiers == ModNone {
			return e.motion(Motion{Kind: MotionFirstLine}, p)
		}
	case 'Z':
		switch key.Rune {
		case 'Z':
			return e.execute(ExCommand{Name: "x"}, false)
		case 'Q':
			return e.execute(ExCommand{Name: "q", Bang: true}, false)
		}
	case 'r':
		if key.Key == KeyEnter {
			return e.replaceChars('\n', max(p.total(), 1))
		}
		if key.printable() {
			return e.replaceChars(key.Rune, max(p.total(), 1))
		}
	case 'f', 't', 'F', 'T':
		if key.printable() {
			m := Motion{Kind: findKinds[prefix], Char: key.Rune}
			e.lastFind = &m
			return e.motion(m, p)
		}
	}

	return unknownKey(RuneKey(prefix), key)
}

var findKinds = map[rune]MotionKind{
	'f': MotionFindForward,
	'F': MotionFindBackward,
	't': MotionTillForward,
	'T': MotionTillBackward,
}

var reversedFind = map[MotionKind]MotionKind{
	MotionFindForward:  MotionFindBackward,
	MotionFindBackward: MotionFindForward,
	MotionTillForward:  MotionTillBackward,
	MotionTillBackward: MotionTillForward,
}

func (e *Editor) findRepeat(reverse bool) (Motion, error) {
	if e.lastFind == nil {
		return Motion{}, fmt.Errorf("%w: no previous find", ErrInvalidMotion)
	}
	m := *e.lastFind
	if reverse {
		m.Kind = reversedFind[m.Kind]
	}
	return m, nil
}

func (e *Editor) motion(m Motion, p PendingCommand) error {
	return e.motionWith(m, p, false)
}

// motionWith moves the cursor, or hands the motion to a pending operator.
func (e *Editor) motionWith(m Motion, p PendingCommand, repeat bool) error {
	total := p.total()
	if p.Operator != 0 {
		return e.applyOperatorWith(p.Operator, m, total, repeat)
	}

	ctx := MotionContext{Count: max(total, 1), HasCount: total > 0, Repeat: repeat}
	c, err := Resolve(e.buf, e.cursor, m, ctx)
	if err != nil {
		return err
	}
	e.cursor = c
	return nil
}

// operatorKey handles the key after d or c that is not a plain motion.
func (e *Editor) operatorKey(key KeyEvent, p PendingCommand) error {
	op := p.Operator
	count := max(p.total(), 1)

	if key.Modifiers != ModNone {
		return unknownKey(RuneKey(op), key)
	}

	switch key.Rune {
	case op:
		row := e.cursor.Position.Row
		return e.operateLines(op, row, e.countedRow(row, count))
	case 'g', 'f', 't', 'F', 'T':
		p.Prefix = key.Rune
		e.pending = p
		return nil
	case ';', ',':
		m, err := e.findRepeat(key.Rune == ',')
		if err != nil {
			return err
		}
		return e.applyOperatorWith(op, m, p.total(), true)
	case '/', '?':
		e.beginSearch(key.Rune, p)
		return nil
	case 'n', 'N':
		pos, err := e.searchNext(key.Rune == 'N', count)
		if err != nil {
			return err
		}
		return e.operateToward(op, pos)
	}

	return unknownKey(RuneKey(op), key)
}

func unknownKey(keys ...KeyEvent) error {
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(keyName(k))
	}
	return &Error{id: ErrInvalidCommandId, err: fmt.Errorf("%w: %s isn't a vi command", ErrInvalidCommand, sb.String())}
}

func keyName(k KeyEvent) string {
	switch {
	case k.Modifiers&ModCtrl != 0 && k.Rune != 0:
		return "^" + string(unicode.ToUpper(k.Rune))
	case k.Rune != 0:
		return string(k.Rune)
	}
	return "<" + k.String() + ">"
}

// --- Simple changes ---

func (e *Editor) joinCommand(count int) error {
	row := e.cursor.Position.Row
	last := e.buf.LineCount() - 1
	if row >= last {
		return ErrEndOfBuffer
	}
	end := e.countedRow(row, max(count, 2))

	joined, col := joinLines(e.buf.slice(row, end+1), false)
	e.record(e.buf.ReplaceLines(row, end-row+1, []string{joined}))
	e.cursor = NewCursor(row, col).Clamp(e.buf, false)
	return nil
}

// replaceChars overwrites count characters with r. A newline replaces them
// with a single line break.
func (e *Editor) replaceChars(r rune, count int) error {
	pos := e.cursor.Position
	line := e.buf.Line(pos.Row)
	if count > len(line)-pos.Col {
		return ErrEndOfLine
	}

	if r == '\n' {
		e.record(e.buf.DeleteRange(pos.Row, pos.Col, pos.Row, pos.Col+count))
		e.record(e.buf.SplitLine(pos.Row, pos.Col))
		e.cursor = e.lineCursor(pos.Row + 1)
		return nil
	}

	repl := append([]rune(nil), line...)
	for i := range count {
		repl[pos.Col+i] = r
	}
	e.record(e.buf.ReplaceLine(pos.Row, string(repl)))
	e.cursor = NewCursor(pos.Row, pos.Col+count-1)
	return nil
}

func (e *Editor) toggleCase(count int) error {
	pos := e.cursor.Position
	line := e.buf.Line(pos.Row)
	if len(line) == 0 {
		return ErrEndOfLine
	}

	end := pos.Col + min(count, len(line)-pos.Col)
	repl := append([]rune(nil), line...)
	for i := pos.Col; i < end; i++ {
		r := repl[i]
		if unicode.IsUpper(r) {
			repl[i] = unicode.ToLower(r)
		} else {
			repl[i] = unicode.ToUpper(r)
		}
	}
	e.record(e.buf.ReplaceLine(pos.Row, string(repl)))
	e.cursor = NewCursor(pos.Row, min(end, len(line)-1))
	return nil
}

// put inserts the unnamed register after (p) or before (P) the cursor.
func (e *Editor) put(after bool, count int) error {
	reg := e.pasteRegister()
	if reg.Empty() {
		return invalid("nothing in register")
	}
	if count > maxCount/max(len(reg.Text), 1) {
		return invalid("resulting text too long")
	}
	pos := e.cursor.Position

	if reg.Linewise {
		var lines []string
		for range count {
			lines = append(lines, reg.lines()...)
		}
		row := pos.Row
		if after {
			row++
		}
		e.record(e.buf.ReplaceLines(row, 0, lines))
		e.cursor = e.lineCursor(row)
		e.reportLines(len(lines), "more")
		return nil
	}

	text := strings.Repeat(reg.Text, count)
	col := pos.Col
	if after && e.buf.LineLen(pos.Row) > 0 {
		col++
	}
	e.record(e.buf.InsertText(pos.Row, col, text))
	if strings.Contains(text, "\n") {
		e.cursor = NewCursor(pos.Row, col)
	} else {
		e.cursor = NewCursor(pos.Row, col+len([]rune(text))-1)
	}
	return nil
}

func (e *Editor) beginCommandLine(count int) {
	e.mode = CommandMode
	e.cmdline.reset()
	switch {
	case count == 1:
		e.cmdline.set(".")
	case count > 1:
		e.cmdline.set(fmt.Sprintf(".,.+%d", count-1))
	}
}
