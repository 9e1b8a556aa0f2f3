// Package rawterm is a minimal frontend that drives the terminal directly:
// raw mode from x/term, escape sequences through termenv.
package rawterm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ionut-t/evi/core"
	"github.com/ionut-t/evi/keydecode"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Terminal owns the screen while the editor runs.
type Terminal struct {
	editor     *core.Editor
	in         *os.File
	out        *os.File
	buf        *bufio.Writer
	output     *termenv.Output
	escTimeout time.Duration
}

func New(editor *core.Editor, in, out *os.File, escTimeout time.Duration) *Terminal {
	buf := bufio.NewWriter(out)
	return &Terminal{
		editor:     editor,
		in:         in,
		out:        out,
		buf:        buf,
		output:     termenv.NewOutput(buf, termenv.WithProfile(termenv.Ascii)),
		escTimeout: escTimeout,
	}
}

// Run puts the terminal in raw mode and feeds keys to the editor until it
// quits, ctx is done or input ends.
func (t *Terminal) Run(ctx context.Context) error {
	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer func() {
		if err := term.Restore(fd, state); err != nil {
			log.Printf("restore terminal: %v", err)
		}
	}()

	t.output.AltScreen()
	defer func() {
		t.output.ExitAltScreen()
		t.output.ShowCursor()
		_ = t.buf.Flush()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan core.KeyEvent, 64)
	done := make(chan error, 1)
	go func() {
		done <- keydecode.Run(ctx, t.in, keys, t.escTimeout)
	}()

	if err := t.draw(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-done:
			return err

		case k := <-keys:
			// errors are shown on the status line
			_ = t.editor.HandleKey(k)
			drainSignals(t.editor, t.buf)
			if t.editor.Quitting() {
				return nil
			}
			if err := t.draw(); err != nil {
				return err
			}
		}
	}
}

func (t *Terminal) draw() error {
	if w, h, err := term.GetSize(int(t.out.Fd())); err == nil {
		t.editor.Resize(h, w)
	}
	render(t.output, t.editor.Layout())
	return t.buf.Flush()
}

// drainSignals empties the editor's signal channel, ringing the terminal
// bell for BellSignal.
func drainSignals(e *core.Editor, w io.Writer) {
	signals := e.GetUpdateSignalChan()
	for {
		select {
		case signal := <-signals:
			switch signal := signal.(type) {
			case core.BellSignal:
				_, _ = io.WriteString(w, "\a")
			case core.ErrorSignal:
				id, err := signal.Value()
				log.Printf("editor error %d: %v", id, err)
			}
		default:
			return
		}
	}
}
