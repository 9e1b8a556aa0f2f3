package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionStatus(t *testing.T) {
	assert.Equal(t, "line 1 of 1 --0%-- col 1", PositionStatus(1, 1, 1))
	assert.Equal(t, "line 2 of 4 --50%-- col 3", PositionStatus(2, 4, 3))
	assert.Equal(t, "line 1 of 3 --33%-- col 7", PositionStatus(1, 3, 7))
}

func TestFileStatus(t *testing.T) {
	assert.Equal(t, `"a.txt" [Modified] line 2 of 4 --50%-- col 1 char x`, FileStatus("a.txt", true, 2, 4, 1, 'x'))
	assert.Equal(t, `"No Name" line 1 of 1 --0%-- col 1 char  `, FileStatus("", false, 1, 1, 1, ' '))
}

func TestFitStatus(t *testing.T) {
	assert.Equal(t, "hello", FitStatus("hello", 10))
	assert.Equal(t, "hél", FitStatus("héllo", 3))
	assert.Equal(t, "世", FitStatus("世界x", 3))
	assert.Equal(t, "", FitStatus("abc", 0))
}
