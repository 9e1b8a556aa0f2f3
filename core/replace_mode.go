package core

func (e *Editor) beginReplace(count int) error {
	e.startInsert(insertSession{count: count})
	e.mode = ReplaceMode
	return nil
}

func (e *Editor) replaceKey(key KeyEvent) error {
	if key.Key == KeyEscape {
		return e.endInsert()
	}
	e.insert.keys = append(e.insert.keys, key)
	return e.overtype(key)
}

// overtype applies one replace mode key. Typed runes overwrite the line and
// backspace puts the overwritten runes back.
func (e *Editor) overtype(key KeyEvent) error {
	pos := e.cursor.Position
	s := &e.insert

	switch {
	case key.Key == KeyBackspace, key.IsCtrl('h'):
		if pos.Col == 0 {
			return ErrStartOfLine
		}
		if n := len(s.replaced); n > 0 && pos.Row == s.start.Row && pos.Col > s.start.Col {
			orig := s.replaced[n-1]
			s.replaced = s.replaced[:n-1]
			if orig == appended {
				e.record(e.buf.DeleteRange(pos.Row, pos.Col-1, pos.Row, pos.Col))
			} else {
				e.setRune(pos.Row, pos.Col-1, orig)
			}
		}
		e.cursor = NewCursor(pos.Row, pos.Col-1)
		return nil

	case key.Key == KeyEnter, key.IsCtrl('m'), key.IsCtrl('j'):
		e.record(e.buf.SplitLine(pos.Row, pos.Col))
		e.cursor = NewCursor(pos.Row+1, 0)
		s.start = e.cursor.Position
		s.replaced = nil
		return nil
	}

	r := key.Rune
	switch {
	case key.Key == KeyTab:
		r = '\t'
	case key.Key == KeySpace:
		r = ' '
	case !key.printable():
		return e.insertMotion(key)
	}

	if pos.Col < e.buf.LineLen(pos.Row) {
		s.replaced = append(s.replaced, e.buf.Line(pos.Row)[pos.Col])
		e.setRune(pos.Row, pos.Col, r)
		e.cursor = NewCursor(pos.Row, pos.Col+1)
		return nil
	}
	s.replaced = append(s.replaced, appended)
	e.insertRune(r)
	return nil
}

func (e *Editor) setRune(row, col int, r rune) {
	line := append([]rune(nil), e.buf.Line(row)...)
	line[col] = r
	e.record(e.buf.ReplaceLine(row, string(line)))
}
