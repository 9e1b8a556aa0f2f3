package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBufferFromBytes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		lines   []string
	}{
		{"empty", "", []string{""}},
		{"single newline", "\n", []string{""}},
		{"trailing newline", "abc\ndef\n", []string{"abc", "def"}},
		{"no trailing newline", "abc\ndef", []string{"abc", "def"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\n\nb\n", []string{"a", "", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromBytes([]byte(tt.content))
			assert.Equal(t, tt.lines, b.Lines())
		})
	}
}

func TestBufferContent(t *testing.T) {
	assert.Equal(t, "", NewBuffer().Content())
	assert.Equal(t, "abc\n", NewBufferFromBytes([]byte("abc")).Content())
	assert.Equal(t, "a\n\nb\n", NewBufferFromBytes([]byte("a\n\nb\n")).Content())
}

func TestReplaceLinesNeverEmpty(t *testing.T) {
	b := NewBufferFromBytes([]byte("a\nb\n"))
	c := b.ReplaceLines(0, 2, nil)

	assert.Equal(t, 1, b.LineCount())
	assert.Equal(t, "", b.LineString(0))
	assert.Equal(t, []string{"a", "b"}, c.Old)
	assert.Equal(t, []string{""}, c.New)

	b.Apply(c.Inverse())
	assert.Equal(t, []string{"a", "b"}, b.Lines())
}

func TestInsertText(t *testing.T) {
	b := NewBufferFromBytes([]byte("hello world"))

	b.InsertText(0, 5, ",")
	assert.Equal(t, "hello, world", b.LineString(0))

	c := b.InsertText(0, 6, "\nthere\n")
	assert.Equal(t, []string{"hello,", "there", " world"}, b.Lines())

	b.Apply(c.Inverse())
	assert.Equal(t, []string{"hello, world"}, b.Lines())
}

func TestDeleteRange(t *testing.T) {
	b := NewBufferFromBytes([]byte("one\ntwo\nthree\n"))

	assert.Equal(t, "e\ntwo\nth", b.Text(0, 2, 2, 2))

	b.DeleteRange(0, 2, 2, 2)
	assert.Equal(t, []string{"onree"}, b.Lines())

	b.DeleteRange(0, 0, 0, 2)
	assert.Equal(t, []string{"ree"}, b.Lines())
}

func TestSplitAndJoin(t *testing.T) {
	b := NewBufferFromBytes([]byte("foobar\n"))

	b.SplitLine(0, 3)
	require.Equal(t, []string{"foo", "bar"}, b.Lines())

	b.JoinLine(0)
	assert.Equal(t, []string{"foobar"}, b.Lines())

	b.SplitLine(0, 6)
	assert.Equal(t, []string{"foobar", ""}, b.Lines())
}

func TestMultibyteColumns(t *testing.T) {
	b := NewBufferFromBytes([]byte("héllo 世界\n"))

	assert.Equal(t, 8, b.LineLen(0))
	b.DeleteRange(0, 6, 0, 7)
	assert.Equal(t, "héllo 界", b.LineString(0))
}
