package core

// beginSearch opens the '/' or '?' prompt. A pending operator or count waits
// for the pattern.
func (e *Editor) beginSearch(prompt rune, p PendingCommand) {
	e.mode = SearchMode
	e.searchForward = prompt == '/'
	e.search.reset()
	if p.Operator != 0 || p.Count > 0 {
		e.pending = p
	}
}

func (e *Editor) searchKey(key KeyEvent) error {
	switch e.search.handle(key) {
	case inputCancel:
		e.mode = NormalMode
		e.abort()
		return nil
	case inputEditing:
		return nil
	}

	e.mode = NormalMode
	p := e.pending
	e.pending.reset()
	e.forward = e.searchForward

	pos, err := e.searchFrom(e.search.String(), e.forward, max(p.total(), 1))
	if err != nil {
		e.abort()
		return err
	}

	if p.Operator == 0 {
		e.cursor = NewCursor(pos.Row, pos.Col)
		e.finishCommand(false)
		return nil
	}

	e.cmdCount = p.total()
	e.history.Begin(e.cursor)
	from := e.history.recordedLen()
	err = e.operateToward(p.Operator, pos)
	changed := e.history.recordedLen() > from
	if e.mode == InsertMode {
		return err
	}
	e.history.Commit(e.cursor)
	e.finishCommand(changed && err == nil)
	return err
}

// searchNext repeats the last search; reverse flips its direction (N).
func (e *Editor) searchNext(reverse bool, count int) (Position, error) {
	if e.lastPattern == "" {
		return e.cursor.Position, ErrNoPreviousPattern
	}
	return e.searchFrom(e.lastPattern, e.forward != reverse, count)
}

// SearchPrompt is the prompt character of the open search, '/' or '?'.
func (e *Editor) SearchPrompt() rune {
	if e.searchForward {
		return '/'
	}
	return '?'
}
