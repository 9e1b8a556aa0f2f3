package core

import (
	"fmt"

	"github.com/rivo/uniseg"
)

// PositionStatus formats the Ctrl-G report for a cursor on 1-based line l of
// n lines at 1-based column c.
func PositionStatus(l, n, c int) string {
	return fmt.Sprintf("line %d of %d --%d%%-- col %d", l, n, percent(l, n), c)
}

func percent(l, n int) int {
	if n <= 1 {
		return 0
	}
	return 100 * l / n
}

// FileStatus is the long form shown by ":f".
func FileStatus(name string, modified bool, l, n, c int, under rune) string {
	if name == "" {
		name = "No Name"
	}
	mod := ""
	if modified {
		mod = " [Modified]"
	}
	return fmt.Sprintf("\"%s\"%s line %d of %d --%d%%-- col %d char %c",
		name, mod, l, n, percent(l, n), c, under)
}

// FitStatus truncates s to width cells, keeping whole graphemes.
func FitStatus(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	out, w := "", 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		gw := g.Width()
		if w+gw > width {
			break
		}
		out += g.Str()
		w += gw
	}
	return out
}
