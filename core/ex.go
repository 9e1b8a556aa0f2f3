package core

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strconv"
	"strings"
)

// ExecuteCommand parses and runs one ex command line. Every command that
// changes the buffer leaves exactly one undo entry.
func (e *Editor) ExecuteCommand(line string) error {
	cmd, err := ParseEx(line)
	if err != nil {
		log.Printf("ex: %q: %v", line, err)
		return err
	}
	return e.execute(cmd, false)
}

func (e *Editor) execute(cmd ExCommand, global bool) error {
	switch cmd.Name {
	case "u":
		return e.undo()
	case "red":
		return e.redo()
	}

	e.history.Begin(e.cursor)
	defer func() { e.history.Commit(e.cursor) }()

	s, end, err := e.resolveRange(cmd)
	if err != nil {
		return err
	}

	switch cmd.Name {
	case "":
		if len(cmd.Range.Addrs) == 0 {
			return nil
		}
		e.cursor = e.lineCursor(max(end, 1) - 1)
		e.DispatchMessage(e.printable(e.cursor.Position.Row))
		return nil
	case "p":
		return e.exPrint(s, end)
	case "=":
		if len(cmd.Range.Addrs) == 0 {
			end = e.buf.LineCount()
		}
		e.DispatchMessage(strconv.Itoa(end))
		return nil
	case "d":
		return e.exDelete(s, end)
	case "s":
		return e.exSubstitute(cmd, s, end)
	case "m":
		return e.exMove(cmd, s, end)
	case "co", "t":
		return e.exCopy(cmd, s, end)
	case "j":
		return e.exJoin(cmd, s, end)
	case "g", "v":
		if global {
			return invalid("global command cannot be nested")
		}
		return e.exGlobal(cmd, s, end)
	case "r":
		return e.exRead(cmd, end)
	case "w":
		return e.exWrite(cmd, s, end)
	case "wq":
		if err := e.exWrite(cmd, s, end); err != nil {
			return err
		}
		e.Quit()
		return nil
	case "x":
		if e.IsModified() {
			if err := e.exWrite(cmd, s, end); err != nil {
				return err
			}
		}
		e.Quit()
		return nil
	case "q":
		if !cmd.Bang && e.IsModified() {
			return &Error{id: ErrUnsavedChangesId, err: ErrUnsavedChanges}
		}
		e.Quit()
		return nil
	case "f":
		e.DispatchMessage(e.fileStatus())
		return nil
	case "set":
		return e.exSet(cmd.Arg)
	}

	return invalid("%q is not implemented", cmd.Name)
}

// --- Addresses ---

// resolveAddress turns a into a 1-based line number relative to row.
// Results past the end clamp to the last line and results before the
// start to 0.
func (e *Editor) resolveAddress(a Address, row int) (int, error) {
	var n int
	switch a.Kind {
	case AddrCurrent:
		n = row + 1
	case AddrNumber:
		n = a.Line
	case AddrLast:
		n = e.buf.LineCount()
	case AddrSearchForward, AddrSearchBackward:
		re, pattern, err := e.compile(a.Pattern)
		if err != nil {
			return 0, err
		}
		r, ok := findLine(e.buf, re, row, a.Kind == AddrSearchForward)
		if !ok {
			return 0, notFound(pattern)
		}
		n = r + 1
	}

	if a.Offset > 0 && n > e.buf.LineCount()-a.Offset {
		n = e.buf.LineCount()
	} else {
		n += a.Offset
	}

	switch {
	case n > e.buf.LineCount():
		log.Printf("ex: %v", fmt.Errorf("%w: %d clamped to %d", ErrAddressOutOfRange, n, e.buf.LineCount()))
		n = e.buf.LineCount()
	case n < 0:
		log.Printf("ex: %v", fmt.Errorf("%w: %d clamped to 0", ErrAddressOutOfRange, n))
		n = 0
	}
	return n, nil
}

// resolveRange returns the 1-based inclusive line range of cmd in ascending
// order, applying the command's default when no address was given.
func (e *Editor) resolveRange(cmd ExCommand) (int, int, error) {
	row := e.cursor.Position.Row
	addrs := cmd.Range.Addrs

	if len(addrs) == 0 {
		switch cmd.Name {
		case "g", "v", "w", "wq", "x":
			return 1, e.buf.LineCount(), nil
		}
		return row + 1, row + 1, nil
	}

	s, err := e.resolveAddress(addrs[0], row)
	if err != nil {
		return 0, 0, err
	}
	end := s
	if len(addrs) > 1 {
		base := row
		if cmd.Range.Semicolon {
			base = max(s, 1) - 1
		}
		if end, err = e.resolveAddress(addrs[1], base); err != nil {
			return 0, 0, err
		}
	}
	if s > end {
		s, end = end, s
	}

	// 0 is a valid target for r, but not a line to operate on
	if cmd.Name != "r" {
		s, end = max(s, 1), max(end, 1)
	}
	return s, end, nil
}

// --- Commands ---

func (e *Editor) printable(row int) string {
	if e.opts.Number {
		return fmt.Sprintf("%6d  %s", row+1, e.buf.LineString(row))
	}
	return e.buf.LineString(row)
}

// exPrint shows the last line of the range; the status row holds one line.
func (e *Editor) exPrint(s, end int) error {
	e.DispatchMessage(e.printable(end - 1))
	e.cursor = e.lineCursor(end - 1)
	return nil
}

func (e *Editor) exDelete(s, end int) error {
	n := end - s + 1
	lines := e.buf.slice(s-1, end)
	e.setRegister(strings.Join(lines, "\n"), true)
	e.record(e.buf.ReplaceLines(s-1, n, nil))

	e.cursor = e.lineCursor(min(s-1, e.buf.LineCount()-1))
	e.reportLines(n, "fewer")
	e.DispatchSignal(DeleteSignal{totalLines: n})
	return nil
}

func (e *Editor) exSubstitute(cmd ExCommand, s, end int) error {
	re, pattern, err := e.compile(cmd.Pattern)
	if err != nil {
		return err
	}
	template := translateReplacement(cmd.Replacement)

	last := -1
	for row := s - 1; row < end; row++ {
		out, n := substituteLine(re, e.buf.LineString(row), template, cmd.Global)
		if n == 0 {
			continue
		}
		parts := strings.Split(out, "\n")
		e.record(e.buf.ReplaceLines(row, 1, parts))
		row += len(parts) - 1
		end += len(parts) - 1
		last = row
	}

	if last < 0 {
		return notFound(pattern)
	}
	e.cursor = e.lineCursor(last)
	return nil
}

func (e *Editor) destination(cmd ExCommand) (int, error) {
	return e.resolveAddress(*cmd.Dest, e.cursor.Position.Row)
}

func (e *Editor) exMove(cmd ExCommand, s, end int) error {
	d, err := e.destination(cmd)
	if err != nil {
		return err
	}
	if d >= s && d < end {
		return invalid("cannot move lines into themselves")
	}

	n := end - s + 1
	if d == s-1 || d == end {
		e.cursor = e.lineCursor(end - 1)
		return nil
	}

	lines := e.buf.slice(s-1, end)
	e.record(e.buf.ReplaceLines(s-1, n, nil))
	at := d
	if d >= end {
		at = d - n
	}
	e.record(e.buf.ReplaceLines(at, 0, lines))

	e.cursor = e.lineCursor(at + n - 1)
	return nil
}

func (e *Editor) exCopy(cmd ExCommand, s, end int) error {
	d, err := e.destination(cmd)
	if err != nil {
		return err
	}

	lines := e.buf.slice(s-1, end)
	e.record(e.buf.ReplaceLines(d, 0, lines))
	e.cursor = e.lineCursor(d + len(lines) - 1)
	e.reportLines(len(lines), "more")
	return nil
}

func (e *Editor) exJoin(cmd ExCommand, s, end int) error {
	if len(cmd.Range.Addrs) < 2 {
		end = s + 1
	}
	if end > e.buf.LineCount() {
		return ErrEndOfBuffer
	}
	if s == end {
		return nil
	}

	joined, _ := joinLines(e.buf.slice(s-1, end), cmd.Bang)
	e.record(e.buf.ReplaceLines(s-1, end-s+1, []string{joined}))
	e.cursor = e.lineCursor(s - 1)
	return nil
}

// joinLines joins lines the way J does: leading blanks of each following
// line are dropped and a single space separates non-empty parts. raw joins
// without touching whitespace. col is where the last join happened.
func joinLines(lines []string, raw bool) (joined string, col int) {
	joined = lines[0]
	for _, l := range lines[1:] {
		col = len([]rune(joined))
		if raw {
			joined += l
			continue
		}
		l = strings.TrimLeft(l, " \t")
		switch {
		case l == "":
		case joined == "", strings.HasSuffix(joined, " "), strings.HasSuffix(joined, "\t"), strings.HasPrefix(l, ")"):
			joined += l
		default:
			joined += " " + l
		}
	}
	return joined, col
}

func (e *Editor) exGlobal(cmd ExCommand, s, end int) error {
	re, pattern, err := e.compile(cmd.Pattern)
	if err != nil {
		return err
	}

	subLine := cmd.Sub
	if subLine == "" {
		subLine = "p"
	}
	sub, err := ParseEx(subLine)
	if err != nil {
		return err
	}
	if sub.Name == "g" || sub.Name == "v" {
		return invalid("global command cannot be nested")
	}

	var marks []int
	for row := s - 1; row < end; row++ {
		if re.MatchString(e.buf.LineString(row)) == (cmd.Name == "g") {
			marks = append(marks, row)
		}
	}
	if len(marks) == 0 {
		return notFound(pattern)
	}

	for i := 0; i < len(marks); i++ {
		if marks[i] < 0 {
			continue
		}
		e.cursor = NewCursor(marks[i], 0)

		from := e.history.recordedLen()
		if err := e.execute(sub, true); err != nil {
			return err
		}
		for _, c := range e.history.recorded(from) {
			for j := i + 1; j < len(marks); j++ {
				if marks[j] >= 0 {
					marks[j] = remapRow(marks[j], c)
				}
			}
		}
		if e.quit {
			break
		}
	}
	return nil
}

// remapRow follows a line through a change. Lines inside the replaced span
// survive only if the span still reaches them; -1 means the line is gone.
func remapRow(row int, c Change) int {
	switch {
	case row < c.Row:
		return row
	case row >= c.Row+len(c.Old):
		return row + len(c.New) - len(c.Old)
	case row-c.Row < len(c.New):
		return row
	}
	return -1
}

func (e *Editor) exRead(cmd ExCommand, after int) error {
	path := cmd.Arg
	if path == "" {
		path = e.fileName
	}
	if path == "" {
		return &Error{id: ErrReadFailureId, err: ErrNoFileName}
	}

	data, err := e.storage.Load(path)
	if err != nil {
		return &Error{id: ErrReadFailureId, err: fmt.Errorf("%w: %s: %w", ErrReadFailure, path, err)}
	}
	if len(data) == 0 {
		return nil
	}

	lines := NewBufferFromBytes(data).Lines()
	e.record(e.buf.ReplaceLines(after, 0, lines))
	e.cursor = e.lineCursor(after)
	e.DispatchMessage(fmt.Sprintf("\"%s\" %d lines, %d bytes", path, len(lines), len(data)))
	return nil
}

func (e *Editor) exWrite(cmd ExCommand, s, end int) error {
	path := cmd.Arg
	if path == "" {
		path = e.fileName
	}
	if path == "" {
		return &Error{id: ErrWriteFailureId, err: ErrNoFileName}
	}
	if e.fileName == "" {
		e.fileName = path
	}

	whole := s == 1 && end == e.buf.LineCount()
	content := e.buf.Content()
	if !whole {
		content = strings.Join(e.buf.slice(s-1, end), "\n") + "\n"
	}

	if err := e.storage.Save(path, []byte(content)); err != nil {
		log.Printf("write %s: %v", path, err)
		return &Error{id: ErrWriteFailureId, err: fmt.Errorf("%w: %s: %w", ErrWriteFailure, path, err)}
	}

	if whole && path == e.fileName {
		e.savedContent = content
	}
	e.DispatchMessage(fmt.Sprintf("\"%s\" %d lines, %d bytes written", path, end-s+1, len(content)))
	e.DispatchSignal(SaveSignal{path: path, size: len(content)})
	return nil
}

func (e *Editor) exSet(args string) error {
	if args == "" {
		e.DispatchMessage(e.optionSummary())
		return nil
	}

	for _, arg := range strings.Fields(args) {
		name, value, hasValue := strings.Cut(arg, "=")
		switch name {
		case "number", "nu":
			e.opts.Number = true
		case "nonumber", "nonu":
			e.opts.Number = false
		case "ignorecase", "ic":
			e.opts.IgnoreCase = true
		case "noignorecase", "noic":
			e.opts.IgnoreCase = false
		case "tabstop", "ts":
			n, err := strconv.Atoi(value)
			if !hasValue || err != nil || n <= 0 {
				return invalid("bad tabstop %q", value)
			}
			e.opts.TabStop = n
			e.view.TabStop = n
		default:
			return invalid("unknown option %q", name)
		}
	}
	e.DispatchMessage(e.optionSummary())
	return nil
}

func (e *Editor) optionSummary() string {
	opts := []string{"nonumber", "noignorecase"}
	if e.opts.Number {
		opts[0] = "number"
	}
	if e.opts.IgnoreCase {
		opts[1] = "ignorecase"
	}
	return strings.Join(append(opts, fmt.Sprintf("tabstop=%d", e.view.TabStop)), " ")
}

func (e *Editor) fileStatus() string {
	pos := e.cursor.Position
	line := e.buf.Line(pos.Row)
	under := ' '
	if pos.Col < len(line) {
		under = line[pos.Col]
	}
	return FileStatus(e.fileName, e.IsModified(), pos.Row+1, e.buf.LineCount(), pos.Col+1, under)
}

// reportLines sets the "N more/fewer lines" message for changes of three
// lines or more.
func (e *Editor) reportLines(n int, what string) {
	if n >= 3 {
		e.DispatchMessage(fmt.Sprintf("%d %s lines", n, what))
	}
}

func isNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }
