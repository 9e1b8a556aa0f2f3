package core

import (
	"errors"
	"io"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestEditor(t require.TestingT, content string) (*Editor, *MemoryStorage) {
	store := NewMemoryStorage()
	require.NoError(t, store.Save("test.txt", []byte(content)))

	e := New(Options{Storage: store})
	require.NoError(t, e.Open("test.txt"))
	return e, store
}

func feed(e *Editor, keys string) {
	for _, k := range ParseKeys(keys) {
		_ = e.HandleKey(k)
	}
}

// drain empties the signal channel and returns what was sent.
func drain(e *Editor) []Signal {
	var out []Signal
	for {
		select {
		case s := <-e.GetUpdateSignalChan():
			out = append(out, s)
		default:
			return out
		}
	}
}

func TestInsertAndWriteNewFile(t *testing.T) {
	store := NewMemoryStorage()
	e := New(Options{Storage: store})
	require.NoError(t, e.Open("new.txt"))
	assert.Equal(t, `"new.txt" [New File]`, e.Status())

	feed(e, "iHello, Evi!<Esc>:w<CR>")

	data, err := store.Load("new.txt")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Evi!\n", string(data))
	assert.Equal(t, NormalMode, e.Mode())
	assert.False(t, e.IsModified())
	assert.Equal(t, `"new.txt" 1 lines, 12 bytes written`, e.Status())
}

func TestDeleteCharRepeat(t *testing.T) {
	e, _ := newTestEditor(t, "abc\n")

	feed(e, "x..")

	assert.Equal(t, "", e.Content())
	assert.Equal(t, 1, e.Buffer().LineCount())
}

func TestDeleteWordAndUndo(t *testing.T) {
	e, _ := newTestEditor(t, "foo bar\n")

	feed(e, "dw")
	assert.Equal(t, "bar\n", e.Content())
	assert.Equal(t, Register{Text: "foo "}, e.Register())

	feed(e, "u")
	assert.Equal(t, "foo bar\n", e.Content())

	feed(e, "<C-r>")
	assert.Equal(t, "bar\n", e.Content())
}

func TestCountsMultiply(t *testing.T) {
	e, _ := newTestEditor(t, "a b c d e f g h i j k l m\n")

	feed(e, "2d3w")
	assert.Equal(t, "g h i j k l m\n", e.Content())

	feed(e, ".")
	assert.Equal(t, "m\n", e.Content())
}

func TestRepeatWithNewCount(t *testing.T) {
	e, _ := newTestEditor(t, "abcdefgh\n")

	feed(e, "x")
	feed(e, "3.")
	assert.Equal(t, "efgh\n", e.Content())

	// the new count sticks for the next repeat
	feed(e, ".")
	assert.Equal(t, "h\n", e.Content())
}

func TestRepeatCountedInsert(t *testing.T) {
	e, _ := newTestEditor(t, "")

	feed(e, "3ix<Esc>")
	assert.Equal(t, "xxx\n", e.Content())
	assert.Equal(t, Position{Row: 0, Col: 2}, e.Cursor().Position)

	feed(e, ".")
	assert.Equal(t, "xxxxxx\n", e.Content())
}

func TestRepeatOpenAbove(t *testing.T) {
	e, _ := newTestEditor(t, "a\n")

	feed(e, "Ob<Esc>")
	assert.Equal(t, "b\na\n", e.Content())

	feed(e, ".")
	assert.Equal(t, "b\nb\na\n", e.Content())

	feed(e, "u")
	assert.Equal(t, "b\na\n", e.Content())
}

func TestRepeatAfterExIsNoop(t *testing.T) {
	e, _ := newTestEditor(t, "abc\n")

	feed(e, "x:s/b/B/<CR>")
	require.Equal(t, "Bc\n", e.Content())

	feed(e, ".")
	assert.Equal(t, "Bc\n", e.Content())
}

func TestRepeatWithoutCommand(t *testing.T) {
	e, _ := newTestEditor(t, "abc\n")

	err := e.HandleKey(RuneKey('.'))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoPreviousCommand)
	assert.Equal(t, "abc\n", e.Content())
}

func TestUnknownKeyRingsBell(t *testing.T) {
	e, _ := newTestEditor(t, "abc\n")
	drain(e)

	feed(e, "2")
	err := e.HandleKey(RuneKey('Q'))
	require.Error(t, err)

	var editorErr *Error
	require.True(t, errors.As(err, &editorErr))
	assert.Equal(t, ErrInvalidCommandId, editorErr.Id())
	assert.Equal(t, "invalid command: Q isn't a vi command", e.Status())
	assert.False(t, e.GetState().Pending.Active())
	assert.Equal(t, "abc\n", e.Content())

	signals := drain(e)
	assert.Contains(t, signals, Signal(BellSignal{}))
}

func TestBoundaryOnlyRingsBell(t *testing.T) {
	e, _ := newTestEditor(t, "abc\n")
	drain(e)

	feed(e, "h")

	assert.Equal(t, []Signal{BellSignal{}}, drain(e))
	assert.Equal(t, "line 1 of 1 --0%-- col 1", e.Status())
}

func TestCommandLineBackspaceOnEmpty(t *testing.T) {
	e, _ := newTestEditor(t, "abc\n")

	feed(e, ":d<BS>")
	assert.Equal(t, CommandMode, e.Mode())
	assert.Equal(t, ":", e.Status())

	feed(e, "<BS>")
	assert.Equal(t, NormalMode, e.Mode())
	assert.Equal(t, "abc\n", e.Content())
}

func TestCommandLineEscDiscards(t *testing.T) {
	e, _ := newTestEditor(t, "abc\n")

	feed(e, ":d<Esc>")
	assert.Equal(t, NormalMode, e.Mode())
	assert.Equal(t, "abc\n", e.Content())
}

func TestCommandLineHistoryAndCompletion(t *testing.T) {
	e, _ := newTestEditor(t, "a\nb\nc\n")

	feed(e, ":2<CR>")
	feed(e, ":<Up>")
	assert.Equal(t, ":2", e.Status())
	feed(e, "<Esc>")

	feed(e, ":su<Tab>")
	assert.Equal(t, ":substitute", e.Status())
}

func TestCtrlGStatus(t *testing.T) {
	e, _ := newTestEditor(t, "a\nb\nc\nd\n")

	feed(e, "jj<C-g>")
	assert.Equal(t, "line 3 of 4 --75%-- col 1", e.Status())
}

func TestSearch(t *testing.T) {
	e, _ := newTestEditor(t, "foo\nbar\nfoo bar\n")

	feed(e, "/bar<CR>")
	assert.Equal(t, Position{Row: 1, Col: 0}, e.Cursor().Position)

	feed(e, "n")
	assert.Equal(t, Position{Row: 2, Col: 4}, e.Cursor().Position)

	feed(e, "n")
	assert.Equal(t, Position{Row: 1, Col: 0}, e.Cursor().Position)
	assert.Equal(t, "search hit BOTTOM, continuing at TOP", e.Status())

	feed(e, "N")
	assert.Equal(t, Position{Row: 2, Col: 4}, e.Cursor().Position)
}

func TestSearchMissRingsBell(t *testing.T) {
	e, _ := newTestEditor(t, "foo\n")
	drain(e)

	feed(e, "/zzz<CR>")

	assert.Equal(t, NormalMode, e.Mode())
	assert.Equal(t, "pattern not found: zzz", e.Status())
	assert.Contains(t, drain(e), Signal(BellSignal{}))
}

func TestDeleteToSearchMatch(t *testing.T) {
	e, _ := newTestEditor(t, "foo bar baz\n")

	feed(e, "d/baz<CR>")
	assert.Equal(t, "baz\n", e.Content())

	feed(e, "u")
	assert.Equal(t, "foo bar baz\n", e.Content())
}

func TestChangeCommands(t *testing.T) {
	tests := []struct {
		name    string
		content string
		keys    string
		want    string
	}{
		{"cw changes to word end", "foo bar\n", "cwxyz<Esc>", "xyz bar\n"},
		{"cc keeps an empty line", "foo\nbar\n", "ccnew<Esc>", "new\nbar\n"},
		{"C to end of line", "foo bar\n", "wCend<Esc>", "foo end\n"},
		{"s substitutes a char", "abc\n", "sX<Esc>", "Xbc\n"},
		{"S replaces the line", "  abc\n", "Sx<Esc>", "x\n"},
		{"A appends", "abc\n", "Ade<Esc>", "abcde\n"},
		{"I inserts before indent end", "  abc\n", "I-<Esc>", "  -abc\n"},
		{"o opens below", "a\nc\n", "ob<Esc>", "a\nb\nc\n"},
		{"backspace joins lines", "ab\ncd\n", "ji<BS><Esc>", "abcd\n"},
		{"enter splits", "abcd\n", "lli<CR><Esc>", "ab\ncd\n"},
		{"replace mode", "abcd\n", "Rxy<Esc>", "xycd\n"},
		{"replace mode backspace restores", "abcd\n", "Rxyz<BS><BS><Esc>", "xbcd\n"},
		{"replace mode extends the line", "ab\n", "Rwxyz<Esc>", "wxyz\n"},
		{"r replaces count chars", "abcd\n", "3rx", "xxxd\n"},
		{"tilde toggles case", "abC\n", "3~", "ABc\n"},
		{"J joins with a space", "foo\n   bar\n", "J", "foo bar\n"},
		{"D deletes to end", "foo bar\n", "wD", "foo \n"},
		{"dd then p", "a\nb\nc\n", "ddp", "b\na\nc\n"},
		{"x then P", "abc\n", "xP", "abc\n"},
		{"dj deletes two lines", "a\nb\nc\n", "dj", "c\n"},
		{"dG deletes to the end", "a\nb\nc\n", "jdG", "a\n"},
		{"df includes the char", "a,b,c\n", "df,", "b,c\n"},
		{"dt stops before the char", "a,b,c\n", "dt,", ",b,c\n"},
		{"d$ deletes to end", "abc def\n", "lld$", "ab\n"},
		{"dw keeps the line break", "foo\nbar\n", "dw", "\nbar\n"},
		{"X deletes before", "abc\n", "$X", "ac\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, tt.content)
			feed(e, tt.keys)
			assert.Equal(t, tt.want, e.Content())
			assert.Equal(t, NormalMode, e.Mode())
		})
	}
}

func TestChangeIsOneUndoEntry(t *testing.T) {
	e, _ := newTestEditor(t, "foo bar\n")

	feed(e, "cwone<CR>two<Esc>")
	require.Equal(t, "one\ntwo bar\n", e.Content())

	feed(e, "u")
	assert.Equal(t, "foo bar\n", e.Content())
}

func TestFindRepeat(t *testing.T) {
	e, _ := newTestEditor(t, "a,b,c,d\n")

	feed(e, "f,")
	assert.Equal(t, 1, e.Cursor().Position.Col)
	feed(e, ";")
	assert.Equal(t, 3, e.Cursor().Position.Col)
	feed(e, ",")
	assert.Equal(t, 1, e.Cursor().Position.Col)

	feed(e, "0t,;")
	assert.Equal(t, 2, e.Cursor().Position.Col)
}

func TestQuit(t *testing.T) {
	e, _ := newTestEditor(t, "abc\n")

	feed(e, "x:q<CR>")
	assert.False(t, e.Quitting())
	assert.Equal(t, "no write since last change (use ! to override)", e.Status())

	feed(e, ":q!<CR>")
	assert.True(t, e.Quitting())
}

func TestZZWritesAndQuits(t *testing.T) {
	e, store := newTestEditor(t, "abc\n")

	feed(e, "xZZ")

	data, err := store.Load("test.txt")
	require.NoError(t, err)
	assert.Equal(t, "bc\n", string(data))
	assert.True(t, e.Quitting())
}

type failingStorage struct{ *MemoryStorage }

func (failingStorage) Save(string, []byte) error { return errors.New("disk full") }

func TestWriteFailure(t *testing.T) {
	store := failingStorage{NewMemoryStorage()}
	e := New(Options{Storage: store})
	require.NoError(t, e.Open("f.txt"))

	feed(e, "ia<Esc>")
	err := e.ExecuteCommand("w")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWriteFailure)
	assert.True(t, e.IsModified())
	assert.Equal(t, "a\n", e.Content())

	require.NoError(t, e.ExecuteCommand("q!"))
	assert.True(t, e.Quitting())
}

func TestPageDown(t *testing.T) {
	var content string
	for i := range 100 {
		content += "line " + string(rune('a'+i%26)) + "\n"
	}
	e, _ := newTestEditor(t, content)
	e.Resize(10, 80)

	feed(e, "<C-f>")
	l := e.Layout()
	assert.Equal(t, 7, l.Segments[0].Line)
	assert.Equal(t, 7, e.Cursor().Position.Row)

	feed(e, "2<C-f>")
	assert.Equal(t, 21, e.Layout().Segments[0].Line)

	feed(e, "<C-b>")
	assert.Equal(t, 14, e.Layout().Segments[0].Line)
	assert.Equal(t, 14, e.Cursor().Position.Row)
}

func TestNoScrollAtLastLine(t *testing.T) {
	e, _ := newTestEditor(t, "1\n2\n3\n4\n5\n")
	e.Resize(4, 80)

	feed(e, "G")
	require.Equal(t, 2, e.Layout().Segments[0].Line)

	feed(e, "j")
	l := e.Layout()
	assert.Equal(t, 2, l.Segments[0].Line)
	assert.Len(t, l.Segments, 3)
	assert.Equal(t, 4, e.Cursor().Position.Row)
	assert.Equal(t, 2, l.CursorRow)
}

func TestLayoutWithNumbers(t *testing.T) {
	e, _ := newTestEditor(t, "abc\ndef\n")
	e.Resize(5, 20)

	feed(e, ":set nu<CR>jl")
	l := e.Layout()

	assert.Equal(t, 4, l.Gutter)
	assert.Equal(t, "  2 ", l.LineNumber(l.Segments[1]))
	assert.Equal(t, 1, l.CursorRow)
	assert.Equal(t, 5, l.CursorCol)
}

func TestLayoutCommandLineCursor(t *testing.T) {
	e, _ := newTestEditor(t, "abc\n")
	e.Resize(5, 20)

	feed(e, ":1,2")
	l := e.Layout()

	assert.Equal(t, 4, l.CursorRow)
	assert.Equal(t, 4, l.CursorCol)
	assert.Equal(t, ":1,2", l.Status)
}

func TestHugeCounts(t *testing.T) {
	const huge = "9223372036854775807"

	tests := []struct {
		name string
		keys string
		want string
		row  int
	}{
		{"dd", "jj" + huge + "dd", "a\nb\n", 1},
		{"j", "j" + huge + "j", "a\nb\nc\nd\n", 3},
		{"k", "G" + huge + "k", "a\nb\nc\nd\n", 0},
		{"plus", "j" + huge + "+", "a\nb\nc\nd\n", 3},
		{"dollar", huge + "$", "a\nb\nc\nd\n", 3},
		{"J", "jj" + huge + "J", "a\nb\nc d\n", 2},
		{"S", "jj" + huge + "S<Esc>", "a\nb\n\n", 2},
		{"r", huge + "rx", "a\nb\nc\nd\n", 0},
		{"tilde", huge + "~", "A\nb\nc\nd\n", 0},
		{"x", huge + "x", "\nb\nc\nd\n", 0},
		{"b", "G" + huge + "b", "a\nb\nc\nd\n", 0},
		{"counts multiply", "2000000000d2000000000d", "", 0},
		{"page down", huge + "<C-f>", "a\nb\nc\nd\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, "a\nb\nc\nd\n")
			e.Resize(3, 20)
			feed(e, tt.keys)
			assert.Equal(t, tt.want, e.Content())
			assert.Equal(t, tt.row, e.Cursor().Position.Row)
			assert.Equal(t, NormalMode, e.Mode())
		})
	}
}

func TestHugeCountPutRefused(t *testing.T) {
	e, _ := newTestEditor(t, "abc\n")

	feed(e, "2x")
	require.Equal(t, "c\n", e.Content())

	var err error
	for _, k := range ParseKeys("999999999p") {
		err = e.HandleKey(k)
	}
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.Equal(t, "c\n", e.Content())
}

func TestCountedRedoStopsAtNewest(t *testing.T) {
	e, _ := newTestEditor(t, "abc\n")

	feed(e, "xxuu")
	require.Equal(t, "abc\n", e.Content())

	for _, k := range ParseKeys("5<C-r>") {
		require.NoError(t, e.HandleKey(k))
	}
	assert.Equal(t, "c\n", e.Content())

	err := e.HandleKey(CtrlKey('r'))
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestDeleteSoleEmptyLineLeavesNoUndo(t *testing.T) {
	e, _ := newTestEditor(t, " \n")

	feed(e, "x")
	require.Equal(t, "", e.Content())
	feed(e, "dd")
	assert.Equal(t, "", e.Content())

	feed(e, "u")
	assert.Equal(t, " \n", e.Content())
}

func TestLayoutCursorAfterFullLine(t *testing.T) {
	e, _ := newTestEditor(t, "abcde\nf\n")
	e.Resize(5, 5)

	feed(e, "A")
	l := e.Layout()
	require.Len(t, l.Segments, 3)
	assert.Equal(t, Segment{Row: 1, Line: 0, Start: 5}, l.Segments[1])
	assert.Equal(t, 1, l.CursorRow)
	assert.Equal(t, 0, l.CursorCol)

	feed(e, "<Esc>")
	l = e.Layout()
	require.Len(t, l.Segments, 2)
	assert.Equal(t, 0, l.CursorRow)
	assert.Equal(t, 4, l.CursorCol)
}
