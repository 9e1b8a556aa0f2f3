package core

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// compile turns a vi pattern into a Go regexp. \< and \> become word
// boundaries; the ignorecase option adds (?i). An empty pattern reuses the
// last one.
func (e *Editor) compile(pattern string) (*regexp.Regexp, string, error) {
	if pattern == "" {
		if e.lastPattern == "" {
			return nil, "", ErrNoPreviousPattern
		}
		pattern = e.lastPattern
	}

	expr := strings.NewReplacer(`\<`, `\b`, `\>`, `\b`).Replace(pattern)
	if e.opts.IgnoreCase {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, "", invalid("bad pattern %q: %v", pattern, err)
	}

	e.lastPattern = pattern
	return re, pattern, nil
}

func notFound(pattern string) error {
	return &Error{id: ErrPatternNotFoundId, err: fmt.Errorf("%w: %s", ErrPatternNotFound, pattern)}
}

// matchCols returns the rune columns where re matches in line.
func matchCols(re *regexp.Regexp, line string) []int {
	var cols []int
	for _, m := range re.FindAllStringIndex(line, -1) {
		cols = append(cols, utf8.RuneCountInString(line[:m[0]]))
	}
	return cols
}

// findMatch looks for the next match after (forward) or before from,
// wrapping around the buffer. wrapped reports whether the search passed an
// end of the buffer.
func findMatch(buf *Buffer, re *regexp.Regexp, from Position, forward bool) (pos Position, wrapped, ok bool) {
	n := buf.LineCount()

	if forward {
		for i := 0; i <= n; i++ {
			row := (from.Row + i) % n
			for _, col := range matchCols(re, buf.LineString(row)) {
				if i == 0 && col <= from.Col {
					continue
				}
				if i == n && col > from.Col {
					break
				}
				return Position{Row: row, Col: col}, from.Row+i >= n, true
			}
		}
		return from, false, false
	}

	for i := 0; i <= n; i++ {
		row := ((from.Row-i)%n + n) % n
		cols := matchCols(re, buf.LineString(row))
		for j := len(cols) - 1; j >= 0; j-- {
			col := cols[j]
			if i == 0 && col >= from.Col {
				continue
			}
			if i == n && col < from.Col {
				break
			}
			return Position{Row: row, Col: col}, from.Row-i < 0, true
		}
	}
	return from, false, false
}

// findLine returns the first line after (forward) or before row that
// matches, wrapping, as ex addresses do.
func findLine(buf *Buffer, re *regexp.Regexp, row int, forward bool) (int, bool) {
	n := buf.LineCount()
	for i := 1; i <= n; i++ {
		r := row + i
		if !forward {
			r = row - i
		}
		r = (r%n + n) % n
		if re.MatchString(buf.LineString(r)) {
			return r, true
		}
	}
	return row, false
}

// searchFrom runs a '/' or '?' search count times from the cursor.
func (e *Editor) searchFrom(pattern string, forward bool, count int) (Position, error) {
	re, pattern, err := e.compile(pattern)
	if err != nil {
		return e.cursor.Position, err
	}

	pos := e.cursor.Position
	wrapped := false
	for range max(count, 1) {
		next, w, ok := findMatch(e.buf, re, pos, forward)
		if !ok {
			return e.cursor.Position, notFound(pattern)
		}
		pos, wrapped = next, wrapped || w
	}

	if wrapped {
		if forward {
			e.DispatchMessage(WrapBottomMessage)
		} else {
			e.DispatchMessage(WrapTopMessage)
		}
	}
	return pos, nil
}

// translateReplacement converts vi replacement syntax to a regexp template:
// & is the whole match, \1..\9 are groups, \r splits the line.
func translateReplacement(rep string) string {
	var sb strings.Builder
	runes := []rune(rep)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '&':
			sb.WriteString("${0}")
		case r == '$':
			sb.WriteString("$$")
		case r == '\\' && i+1 < len(runes):
			i++
			switch n := runes[i]; {
			case n >= '0' && n <= '9':
				fmt.Fprintf(&sb, "${%c}", n)
			case n == 'r' || n == 'n':
				sb.WriteByte('\n')
			case n == 't':
				sb.WriteByte('\t')
			case n == '$':
				sb.WriteString("$$")
			default:
				sb.WriteRune(n)
			}
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// substituteLine replaces the first match in line, or every match when
// global is set. It returns the new line and how many matches were replaced.
func substituteLine(re *regexp.Regexp, line, template string, global bool) (string, int) {
	limit := 1
	if global {
		limit = -1
	}
	matches := re.FindAllStringSubmatchIndex(line, limit)
	if len(matches) == 0 {
		return line, 0
	}

	var out []byte
	last := 0
	for _, m := range matches {
		out = append(out, line[last:m[0]]...)
		out = re.ExpandString(out, template, line, m)
		last = m[1]
	}
	out = append(out, line[last:]...)
	return string(out), len(matches)
}
