package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestHistoryGroupsNest(t *testing.T) {
	b := NewBufferFromBytes([]byte("a\nb\nc\n"))
	h := NewHistory(0)

	h.Begin(Cursor{})
	h.Record(b.ReplaceLine(0, "A"))
	h.Begin(Cursor{})
	h.Record(b.ReplaceLine(1, "B"))
	h.Commit(Cursor{})
	assert.False(t, h.CanUndo())
	h.Commit(NewCursor(1, 0))

	require.True(t, h.CanUndo())
	entry, err := h.Undo(b)
	require.NoError(t, err)
	assert.Len(t, entry.Changes, 2)
	assert.Equal(t, []string{"a", "b", "c"}, b.Lines())

	entry, err = h.Redo(b)
	require.NoError(t, err)
	assert.Equal(t, NewCursor(1, 0), entry.After)
	assert.Equal(t, []string{"A", "B", "c"}, b.Lines())
}

func TestHistoryEmptyGroupIsDropped(t *testing.T) {
	h := NewHistory(0)
	h.Begin(Cursor{})
	h.Commit(Cursor{})

	assert.False(t, h.CanUndo())
	_, err := h.Undo(NewBuffer())
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestHistoryNewChangeClearsRedo(t *testing.T) {
	b := NewBufferFromBytes([]byte("a\n"))
	h := NewHistory(0)

	h.Record(b.ReplaceLine(0, "b"))
	_, err := h.Undo(b)
	require.NoError(t, err)
	require.True(t, h.CanRedo())

	h.Record(b.ReplaceLine(0, "c"))
	assert.False(t, h.CanRedo())
	_, err = h.Redo(b)
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestHistoryLimit(t *testing.T) {
	b := NewBufferFromBytes([]byte("0\n"))
	h := NewHistory(2)

	for _, s := range []string{"1", "2", "3"} {
		h.Record(b.ReplaceLine(0, s))
	}

	_, err := h.Undo(b)
	require.NoError(t, err)
	_, err = h.Undo(b)
	require.NoError(t, err)
	assert.Equal(t, "1", b.LineString(0))
	assert.False(t, h.CanUndo())
}

func TestUndoRestoresContentAndCursor(t *testing.T) {
	commands := []string{
		"x", "X", "dd", "dw", "D", "J", "p", "P", "~", "ia<Esc>", "o!<Esc>", "Onew<Esc>",
		"cwz<Esc>", "rq", "j", "w", "G", "gg", "3x", "2dd",
		":s/a/b/<CR>", ":d<CR>", ":m$<CR>", ":1co.<CR>", ":%s/ /_/g<CR>",
	}

	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{0,10}`), 1, 6).Draw(t, "lines")
		e, _ := newTestEditor(t, strings.Join(lines, "\n")+"\n")
		original := e.Content()

		// cursor before the first command that left an undo entry
		var before *Position
		n := rapid.IntRange(1, 12).Draw(t, "n")
		for range n {
			pos, entries := e.Cursor().Position, len(e.history.undo)
			feed(e, rapid.SampledFrom(commands).Draw(t, "cmd"))
			if before == nil && len(e.history.undo) > entries {
				before = &pos
			}
		}
		for range n {
			feed(e, "u")
		}

		if got := e.Content(); got != original {
			t.Fatalf("content after undo = %q, want %q", got, original)
		}
		if before != nil && e.Cursor().Position != *before {
			t.Fatalf("cursor after undo = %+v, want %+v", e.Cursor().Position, *before)
		}
	})
}
