package core

import "strconv"

// repeatLast replays the last change. A count given to '.' replaces the
// count the change was made with.
func (e *Editor) repeatLast(count int) error {
	if e.repeat == nil {
		return &Error{id: ErrRepeatFailedId, err: ErrNoPreviousCommand}
	}
	if e.replaying {
		return nil
	}

	cmd := *e.repeat
	if len(cmd.Keys) == 0 {
		return nil
	}
	if count == 0 {
		count = cmd.Count
	}

	var keys []KeyEvent
	if count > 0 {
		for _, r := range strconv.Itoa(count) {
			keys = append(keys, RuneKey(r))
		}
	}
	keys = append(keys, cmd.Keys...)

	// '.' itself is not part of what gets recorded
	e.cmdKeys = nil
	e.replaying = true
	defer func() { e.replaying = false }()

	for _, k := range keys {
		if err := e.dispatch(k); err != nil {
			e.abort()
			if e.mode == InsertMode || e.mode == ReplaceMode {
				e.endInsert()
			}
			e.mode = NormalMode
			return err
		}
	}
	return nil
}
