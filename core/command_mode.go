package core

import (
	"strings"
	"unicode"
)

type inputResult int

const (
	inputEditing inputResult = iota
	inputDone
	inputCancel
)

// lineInput is the editable text of the ':' and search prompts, with its
// own history.
type lineInput struct {
	text     []rune
	pos      int
	history  []string
	index    int
	complete func(string) string
}

func (l *lineInput) reset() {
	l.text, l.pos = nil, 0
	l.index = len(l.history)
}

func (l *lineInput) set(s string) {
	l.text = []rune(s)
	l.pos = len(l.text)
}

func (l *lineInput) String() string { return string(l.text) }

// Cursor is the rune offset of the editing position.
func (l *lineInput) Cursor() int { return l.pos }

func (l *lineInput) insert(r rune) {
	l.text = append(l.text[:l.pos], append([]rune{r}, l.text[l.pos:]...)...)
	l.pos++
}

func (l *lineInput) remember() {
	s := l.String()
	if s == "" || (len(l.history) > 0 && l.history[len(l.history)-1] == s) {
		return
	}
	l.history = append(l.history, s)
}

// handle edits the line. Backspace on an empty line cancels the prompt.
func (l *lineInput) handle(key KeyEvent) inputResult {
	switch {
	case key.Key == KeyEscape:
		return inputCancel

	case key.Key == KeyEnter, key.IsCtrl('m'), key.IsCtrl('j'):
		l.remember()
		return inputDone

	case key.Key == KeyBackspace, key.IsCtrl('h'):
		if len(l.text) == 0 {
			return inputCancel
		}
		if l.pos > 0 {
			l.text = append(l.text[:l.pos-1], l.text[l.pos:]...)
			l.pos--
		}

	case key.Key == KeyDelete:
		if l.pos < len(l.text) {
			l.text = append(l.text[:l.pos], l.text[l.pos+1:]...)
		}

	case key.Key == KeyLeft:
		l.pos = max(l.pos-1, 0)
	case key.Key == KeyRight:
		l.pos = min(l.pos+1, len(l.text))
	case key.Key == KeyHome, key.IsCtrl('b'):
		l.pos = 0
	case key.Key == KeyEnd, key.IsCtrl('e'):
		l.pos = len(l.text)

	case key.Key == KeyUp:
		if l.index > 0 {
			l.index--
			l.set(l.history[l.index])
		}
	case key.Key == KeyDown:
		if l.index < len(l.history)-1 {
			l.index++
			l.set(l.history[l.index])
		} else {
			l.index = len(l.history)
			l.set("")
		}

	case key.IsCtrl('u'):
		l.text = l.text[l.pos:]
		l.pos = 0

	case key.IsCtrl('w'):
		end := l.pos
		for l.pos > 0 && unicode.IsSpace(l.text[l.pos-1]) {
			l.pos--
		}
		for l.pos > 0 && !unicode.IsSpace(l.text[l.pos-1]) {
			l.pos--
		}
		l.text = append(l.text[:l.pos], l.text[end:]...)

	case key.Key == KeyTab:
		if l.complete != nil && l.pos == len(l.text) {
			l.set(l.complete(l.String()))
		} else {
			l.insert('\t')
		}

	case key.Key == KeySpace:
		l.insert(' ')
	case key.printable():
		l.insert(key.Rune)
	}
	return inputEditing
}

// completeCommand expands the command name at the end of an ex line.
func completeCommand(line string) string {
	i := strings.LastIndexFunc(line, func(r rune) bool { return !unicode.IsLetter(r) })
	word := line[i+1:]
	// only the first word after the range is a command name
	if strings.ContainsFunc(line[:i+1], unicode.IsLetter) {
		return line
	}
	if full := CompleteExName(word); full != "" {
		return line[:i+1] + full
	}
	return line
}

func (e *Editor) commandKey(key KeyEvent) error {
	e.cmdline.complete = completeCommand

	switch e.cmdline.handle(key) {
	case inputCancel:
		e.mode = NormalMode
		return nil
	case inputEditing:
		return nil
	}

	line := e.cmdline.String()
	e.mode = NormalMode
	err := e.ExecuteCommand(line)
	e.cursor = e.cursor.Clamp(e.buf, false)
	// ex commands are not repeatable: '.' right after one does nothing
	e.repeat = &RepeatableCommand{}
	return err
}
