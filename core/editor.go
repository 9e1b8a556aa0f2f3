package core

import "fmt"

// Options configures a new Editor.
type Options struct {
	TabStop      int
	Number       bool
	IgnoreCase   bool
	HistoryLimit int       // undo levels, 0 for unlimited
	Clipboard    Clipboard // optional mirror of the unnamed register
	Storage      Storage   // defaults to FileStorage
}

func DefaultOptions() Options {
	return Options{TabStop: DefaultTabStop, HistoryLimit: 1000}
}

// Editor is the modal editing engine. It is not safe for concurrent use;
// frontends feed it one key at a time and read Layout after each.
type Editor struct {
	buf     *Buffer
	cursor  Cursor
	mode    Mode
	pending PendingCommand
	history *History
	view    Viewport
	cols    int

	opts      Options
	storage   Storage
	clipboard Clipboard
	register  Register

	fileName     string
	savedContent string
	version      int
	quit         bool

	message string
	cmdline lineInput
	search  lineInput
	forward bool // direction of the last search

	searchForward bool // direction of the open search prompt

	lastPattern string
	lastFind    *Motion

	// repeat bookkeeping
	cmdKeys   []KeyEvent
	cmdCount  int
	repeat    *RepeatableCommand
	replaying bool
	insert    insertSession

	updateSignal chan Signal
}

func New(opts Options) *Editor {
	if opts.TabStop <= 0 {
		opts.TabStop = DefaultTabStop
	}
	if opts.Storage == nil {
		opts.Storage = FileStorage{}
	}

	return &Editor{
		buf:          NewBuffer(),
		mode:         NormalMode,
		history:      NewHistory(opts.HistoryLimit),
		view:         Viewport{Rows: 24, Cols: 80, TabStop: opts.TabStop},
		cols:         80,
		opts:         opts,
		storage:      opts.Storage,
		clipboard:    opts.Clipboard,
		forward:      true,
		updateSignal: make(chan Signal, 100),
	}
}

// Open loads path into the buffer. A path that does not exist yet gives an
// empty buffer bound to it.
func (e *Editor) Open(path string) error {
	e.fileName = path
	data, err := e.storage.Load(path)
	switch {
	case err == nil:
		e.SetContent(data)
		e.DispatchMessage(fmt.Sprintf("\"%s\" %d lines, %d bytes", path, e.buf.LineCount(), len(data)))
		return nil
	case isNotExist(err):
		e.SetContent(nil)
		e.DispatchMessage(fmt.Sprintf("\"%s\" %s", path, NewFileMessage))
		return nil
	}
	return &Error{id: ErrReadFailureId, err: fmt.Errorf("%w: %s: %w", ErrReadFailure, path, err)}
}

// SetContent replaces the buffer, marks it saved and clears undo history.
func (e *Editor) SetContent(content []byte) {
	e.buf.SetContent(content)
	e.savedContent = e.buf.Content()
	e.history.Reset()
	e.cursor = Cursor{}
	e.view.Top, e.view.Skip = 0, 0
	e.version++
}

func (e *Editor) Buffer() *Buffer { return e.buf }

func (e *Editor) Content() string { return e.buf.Content() }

func (e *Editor) Cursor() Cursor { return e.cursor }

func (e *Editor) SetCursor(c Cursor) {
	e.cursor = c.Clamp(e.buf, e.mode == InsertMode)
	e.syncView()
	e.view.Scroll(e.buf, e.cursor.Position)
}

func (e *Editor) Mode() Mode { return e.mode }

func (e *Editor) FileName() string { return e.fileName }

func (e *Editor) Options() Options { return e.opts }

func (e *Editor) Register() Register { return e.register }

// Version increases on every buffer change, for render caches.
func (e *Editor) Version() int { return e.version }

func (e *Editor) IsModified() bool { return e.savedContent != e.buf.Content() }

func (e *Editor) Quitting() bool { return e.quit }

func (e *Editor) GetUpdateSignalChan() <-chan Signal { return e.updateSignal }

func (e *Editor) Quit() {
	e.quit = true
	e.DispatchSignal(QuitSignal{})
}

// HandleKey processes one key. Errors have already been reported through
// the status line and signals when they are returned.
func (e *Editor) HandleKey(key KeyEvent) error {
	err := e.dispatch(key)
	if err != nil {
		e.report(err)
	}
	e.syncView()
	e.view.Scroll(e.buf, e.cursor.Position)
	return err
}

func (e *Editor) dispatch(key KeyEvent) error {
	if e.mode != CommandMode {
		e.cmdKeys = append(e.cmdKeys, key)
	}

	switch e.mode {
	case NormalMode:
		return e.normalKey(key)
	case InsertMode:
		return e.insertKey(key)
	case ReplaceMode:
		return e.replaceKey(key)
	case CommandMode:
		return e.commandKey(key)
	case SearchMode:
		return e.searchKey(key)
	}
	return fmt.Errorf("%w: unknown mode %q", ErrInvalidCommand, e.mode)
}

// report turns a command error into the bell, a status message and an
// ErrorSignal. Hitting a buffer boundary only rings the bell.
func (e *Editor) report(err error) {
	e.DispatchSignal(BellSignal{})
	if isBoundary(err) {
		return
	}
	e.message = err.Error()
	e.DispatchError(errorId(err), err)
}

// record keeps a buffer change for undo.
func (e *Editor) record(c Change) {
	if c.Noop() {
		return
	}
	e.history.Record(c)
	e.version++
}

// countedRow is the last row a count of lines starting at row covers,
// stopping at the end of the buffer.
func (e *Editor) countedRow(row, count int) int {
	return row + min(max(count, 1)-1, e.buf.LineCount()-1-row)
}

// lineCursor puts the cursor on the first non-blank of row.
func (e *Editor) lineCursor(row int) Cursor {
	col := firstNonBlank(e.buf.Line(row))
	return NewCursor(row, col)
}

func (e *Editor) undo() error {
	entry, err := e.history.Undo(e.buf)
	if err != nil {
		return err
	}
	e.version++
	e.cursor = entry.Before.Clamp(e.buf, false)
	e.DispatchSignal(UndoSignal{})
	return nil
}

func (e *Editor) redo() error {
	entry, err := e.history.Redo(e.buf)
	if err != nil {
		return err
	}
	e.version++
	e.cursor = entry.After.Clamp(e.buf, false)
	e.DispatchSignal(RedoSignal{})
	return nil
}

// finishCommand ends a normal mode command. A command that changed the
// buffer becomes the one '.' repeats.
func (e *Editor) finishCommand(changed bool) {
	if changed && len(e.cmdKeys) > 0 {
		e.repeat = &RepeatableCommand{
			Count: e.cmdCount,
			Keys:  append([]KeyEvent(nil), e.cmdKeys...),
		}
	}
	e.cmdKeys = nil
	e.pending.reset()
}

// abort drops a half typed command after an error.
func (e *Editor) abort() {
	e.cmdKeys = nil
	e.pending.reset()
}
