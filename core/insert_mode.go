package core

// insertSession is the state of one insert or replace session, from the
// command that started it to Esc.
type insertSession struct {
	count    int        // times the typed text is entered
	openLine bool       // o and O open a fresh line for every repetition
	keys     []KeyEvent // keys typed, replayed for the count
	start    Position   // where typing began, bounds replace mode backspace
	replaced []rune     // replace mode: overwritten runes, appended for new ones
}

// appended marks a rune that replace mode added past the end of the line.
const appended rune = -1

func (e *Editor) beginInsert(cmd rune, count int) error {
	pos := e.cursor.Position
	line := e.buf.Line(pos.Row)
	s := insertSession{count: count}

	switch cmd {
	case 'a':
		if len(line) > 0 {
			pos.Col++
		}
	case 'I':
		pos.Col = indentEnd(line)
	case 'A':
		pos.Col = len(line)
	case 'o':
		e.record(e.buf.ReplaceLines(pos.Row+1, 0, []string{""}))
		pos = Position{Row: pos.Row + 1}
		s.openLine = true
	case 'O':
		e.record(e.buf.ReplaceLines(pos.Row, 0, []string{""}))
		pos = Position{Row: pos.Row}
		s.openLine = true
	}

	e.cursor = NewCursor(pos.Row, pos.Col)
	e.startInsert(s)
	return nil
}

func (e *Editor) startInsert(s insertSession) {
	s.start = e.cursor.Position
	e.insert = s
	e.mode = InsertMode
}

func indentEnd(line []rune) int {
	for i, r := range line {
		if !isWhiteSpace(r) {
			return i
		}
	}
	return len(line)
}

func (e *Editor) insertKey(key KeyEvent) error {
	if key.Key == KeyEscape {
		return e.endInsert()
	}
	e.insert.keys = append(e.insert.keys, key)
	return e.typeKey(key)
}

// typeKey applies one insert mode key to the buffer.
func (e *Editor) typeKey(key KeyEvent) error {
	pos := e.cursor.Position
	last := e.buf.LineCount() - 1

	switch {
	case key.Key == KeyEnter, key.IsCtrl('m'), key.IsCtrl('j'):
		e.record(e.buf.SplitLine(pos.Row, pos.Col))
		e.cursor = NewCursor(pos.Row+1, 0)

	case key.Key == KeyBackspace, key.IsCtrl('h'):
		switch {
		case pos.Col > 0:
			e.record(e.buf.DeleteRange(pos.Row, pos.Col-1, pos.Row, pos.Col))
			e.cursor = NewCursor(pos.Row, pos.Col-1)
		case pos.Row > 0:
			col := e.buf.LineLen(pos.Row - 1)
			e.record(e.buf.JoinLine(pos.Row - 1))
			e.cursor = NewCursor(pos.Row-1, col)
		default:
			return ErrStartOfBuffer
		}

	case key.Key == KeyDelete:
		switch {
		case pos.Col < e.buf.LineLen(pos.Row):
			e.record(e.buf.DeleteRange(pos.Row, pos.Col, pos.Row, pos.Col+1))
		case pos.Row < last:
			e.record(e.buf.JoinLine(pos.Row))
		default:
			return ErrEndOfBuffer
		}

	case key.IsCtrl('w'):
		line := e.buf.Line(pos.Row)
		col := pos.Col
		for col > 0 && isWhiteSpace(line[col-1]) {
			col--
		}
		if col > 0 {
			cls := classOf(line[col-1])
			for col > 0 && classOf(line[col-1]) == cls {
				col--
			}
		}
		if col < pos.Col {
			e.record(e.buf.DeleteRange(pos.Row, col, pos.Row, pos.Col))
			e.cursor = NewCursor(pos.Row, col)
		}

	case key.IsCtrl('u'):
		col := 0
		if e.insert.start.Row == pos.Row && e.insert.start.Col < pos.Col {
			col = e.insert.start.Col
		}
		if col < pos.Col {
			e.record(e.buf.DeleteRange(pos.Row, col, pos.Row, pos.Col))
			e.cursor = NewCursor(pos.Row, col)
		}

	case key.Key == KeyTab:
		e.insertRune('\t')
	case key.Key == KeySpace:
		e.insertRune(' ')
	case key.printable():
		e.insertRune(key.Rune)

	default:
		return e.insertMotion(key)
	}
	return nil
}

func (e *Editor) insertRune(r rune) {
	pos := e.cursor.Position
	e.record(e.buf.InsertText(pos.Row, pos.Col, string(r)))
	e.cursor = NewCursor(pos.Row, pos.Col+1)
}

// insertMotion moves the cursor with the navigation keys. The cursor may
// rest after the last character.
func (e *Editor) insertMotion(key KeyEvent) error {
	var m Motion
	switch key.Key {
	case KeyLeft:
		m.Kind = MotionLeft
	case KeyRight:
		m.Kind = MotionRight
	case KeyUp:
		m.Kind = MotionUp
	case KeyDown:
		m.Kind = MotionDown
	case KeyHome:
		e.cursor = NewCursor(e.cursor.Position.Row, 0)
		return nil
	case KeyEnd:
		row := e.cursor.Position.Row
		e.cursor = NewCursor(row, e.buf.LineLen(row))
		return nil
	default:
		return nil
	}

	c, err := Resolve(e.buf, e.cursor, m, MotionContext{Count: 1, PastEnd: true})
	if err != nil {
		return err
	}
	e.cursor = c.Clamp(e.buf, true)
	return nil
}

// endInsert finishes the session on Esc: the typed keys are entered again
// for the count, the cursor steps back onto the text and the whole session
// becomes one undo entry and the command '.' repeats.
func (e *Editor) endInsert() error {
	s := e.insert
	replace := e.mode == ReplaceMode

	for i := 1; i < s.count; i++ {
		if s.openLine {
			row := e.cursor.Position.Row
			e.record(e.buf.ReplaceLines(row+1, 0, []string{""}))
			e.cursor = NewCursor(row+1, 0)
		}
		for _, k := range s.keys {
			var err error
			if replace {
				err = e.overtype(k)
			} else {
				err = e.typeKey(k)
			}
			if err != nil {
				break
			}
		}
	}

	e.mode = NormalMode
	e.insert = insertSession{}

	pos := e.cursor.Position
	if pos.Col > 0 {
		pos.Col--
	}
	e.cursor = NewCursor(pos.Row, pos.Col).Clamp(e.buf, false)

	e.history.Commit(e.cursor)
	e.finishCommand(true)
	return nil
}
