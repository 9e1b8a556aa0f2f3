package highlighter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatchesFileName(t *testing.T) {
	h := New("main.go", "monokai")
	require.NotNil(t, h)
	assert.Equal(t, "Go", h.Language())

	assert.Nil(t, New("notes.unknownext", "monokai"))
}

func TestLineStylesCoverEveryRune(t *testing.T) {
	h := New("main.go", "monokai")
	require.NotNil(t, h)

	lines := []string{"package main", "", "/* a", "b */ func f() {}"}
	h.Update(1, lines)

	for i, line := range lines {
		styles := h.LineStyles(i)
		if line == "" {
			assert.Nil(t, styles)
			continue
		}
		assert.Len(t, styles, len([]rune(line)), "line %d", i)
	}
}

func TestUpdateSkipsSameVersion(t *testing.T) {
	h := New("main.go", "monokai")
	require.NotNil(t, h)

	h.Update(1, []string{"package main"})
	h.Update(1, []string{"x"})
	assert.Len(t, h.LineStyles(0), len("package main"))

	h.Update(2, []string{"x"})
	assert.Len(t, h.LineStyles(0), 1)
}
