package core

// UndoEntry is everything one logical command changed, in the order it
// happened, plus the cursor on either side of it.
type UndoEntry struct {
	Changes []Change
	Before  Cursor
	After   Cursor
}

// History is the undo/redo stack. Changes are grouped between Begin and
// Commit; groups nest so a command built from other commands (":g", ".")
// still produces a single entry.
type History struct {
	undo  []UndoEntry
	redo  []UndoEntry
	open  *UndoEntry
	depth int
	limit int
}

func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Begin opens a group. Only the outermost Begin records the cursor.
func (h *History) Begin(before Cursor) {
	if h.depth == 0 {
		h.open = &UndoEntry{Before: before}
	}
	h.depth++
}

// Record adds a change to the open group. Changes made outside a group are
// committed as their own entry.
func (h *History) Record(c Change) {
	if h.open == nil {
		h.push(UndoEntry{Changes: []Change{c}})
		return
	}
	h.open.Changes = append(h.open.Changes, c)
}

// Commit closes a group. The outermost Commit pushes the entry if it holds
// any change and clears the redo stack.
func (h *History) Commit(after Cursor) {
	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}

	entry := h.open
	h.open = nil
	if len(entry.Changes) == 0 {
		return
	}
	entry.After = after
	h.push(*entry)
}

func (h *History) push(entry UndoEntry) {
	h.undo = append(h.undo, entry)
	h.redo = nil
	if h.limit > 0 && len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
}

// recorded returns the changes of the open group from index from onwards.
func (h *History) recorded(from int) []Change {
	if h.open == nil || from >= len(h.open.Changes) {
		return nil
	}
	return h.open.Changes[from:]
}

func (h *History) recordedLen() int {
	if h.open == nil {
		return 0
	}
	return len(h.open.Changes)
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }

func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Undo reverts the latest entry on buf and returns the cursor it had before.
func (h *History) Undo(buf *Buffer) (UndoEntry, error) {
	if len(h.undo) == 0 {
		return UndoEntry{}, ErrNothingToUndo
	}
	entry := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]

	for i := len(entry.Changes) - 1; i >= 0; i-- {
		buf.Apply(entry.Changes[i].Inverse())
	}
	h.redo = append(h.redo, entry)

	return entry, nil
}

// Redo replays the latest undone entry.
func (h *History) Redo(buf *Buffer) (UndoEntry, error) {
	if len(h.redo) == 0 {
		return UndoEntry{}, ErrNothingToRedo
	}
	entry := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]

	for _, c := range entry.Changes {
		buf.Apply(c)
	}
	h.undo = append(h.undo, entry)

	return entry, nil
}

// Reset drops every entry, used after a file is (re)loaded.
func (h *History) Reset() {
	h.undo, h.redo, h.open, h.depth = nil, nil, nil, 0
}
