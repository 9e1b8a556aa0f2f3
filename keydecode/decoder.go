// Package keydecode turns raw terminal bytes into editor key events.
//
// A lone ESC is ambiguous: it is either the Escape key or the start of an
// escape sequence. The decoder holds an incomplete sequence until more bytes
// arrive or the caller flushes it after a short timeout.
package keydecode

import (
	"context"
	"io"
	"time"
	"unicode/utf8"

	"github.com/ionut-t/evi/core"
)

const DefaultTimeout = 25 * time.Millisecond

const esc = 0x1b

var csiFinal = map[byte]core.KeyCode{
	'A': core.KeyUp,
	'B': core.KeyDown,
	'C': core.KeyRight,
	'D': core.KeyLeft,
	'H': core.KeyHome,
	'F': core.KeyEnd,
}

var csiTilde = map[string]core.KeyCode{
	"1": core.KeyHome,
	"2": core.KeyInsert,
	"3": core.KeyDelete,
	"4": core.KeyEnd,
	"5": core.KeyPageUp,
	"6": core.KeyPageDown,
	"7": core.KeyHome,
	"8": core.KeyEnd,
}

// Decoder accumulates bytes across reads. The zero value is ready to use.
type Decoder struct {
	pending []byte
}

// Pending reports whether bytes are held back waiting for the rest of a
// sequence.
func (d *Decoder) Pending() bool { return len(d.pending) > 0 }

// Feed appends b and returns every key that is complete so far.
func (d *Decoder) Feed(b []byte) []core.KeyEvent {
	d.pending = append(d.pending, b...)

	var keys []core.KeyEvent
	for len(d.pending) > 0 {
		key, n, ok := decode(d.pending)
		if !ok {
			break
		}
		if key != nil {
			keys = append(keys, *key)
		}
		d.pending = d.pending[n:]
	}
	if len(d.pending) == 0 {
		d.pending = nil
	}
	return keys
}

// Flush gives up waiting: a held ESC becomes the Escape key and whatever
// followed it is taken literally.
func (d *Decoder) Flush() []core.KeyEvent {
	if len(d.pending) == 0 {
		return nil
	}

	var keys []core.KeyEvent
	rest := d.pending
	d.pending = nil
	if rest[0] == esc {
		keys = append(keys, core.SpecialKey(core.KeyEscape))
		rest = rest[1:]
	}
	keys = append(keys, d.Feed(rest)...)

	// an incomplete utf-8 tail can never complete now
	for _, b := range d.pending {
		keys = append(keys, core.RuneKey(rune(b)))
	}
	d.pending = nil
	return keys
}

// decode reads one key from the front of b. ok is false when b holds only
// the start of a key. key is nil for bytes that are consumed silently.
func decode(b []byte) (key *core.KeyEvent, n int, ok bool) {
	c := b[0]
	switch {
	case c == esc:
		return decodeEscape(b)
	case c == '\r' || c == '\n':
		return keyOf(core.SpecialKey(core.KeyEnter)), 1, true
	case c == 0x7f || c == 0x08:
		return keyOf(core.SpecialKey(core.KeyBackspace)), 1, true
	case c == '\t':
		return keyOf(core.SpecialKey(core.KeyTab)), 1, true
	case c >= 0x01 && c <= 0x1a:
		return keyOf(core.CtrlKey(rune('a' + c - 1))), 1, true
	case c < 0x20:
		return nil, 1, true
	case c < utf8.RuneSelf:
		return keyOf(core.RuneKey(rune(c))), 1, true
	}

	if !utf8.FullRune(b) {
		return nil, 0, false
	}
	r, size := utf8.DecodeRune(b)
	return keyOf(core.RuneKey(r)), size, true
}

func decodeEscape(b []byte) (*core.KeyEvent, int, bool) {
	if len(b) == 1 {
		return nil, 0, false
	}

	switch b[1] {
	case '[':
		for i := 2; i < len(b); i++ {
			c := b[i]
			if (c >= '0' && c <= '9') || c == ';' {
				continue
			}
			if code, ok := csiFinal[c]; ok && i == 2 {
				return keyOf(core.SpecialKey(code)), i + 1, true
			}
			if c == '~' {
				if code, ok := csiTilde[string(b[2:i])]; ok {
					return keyOf(core.SpecialKey(code)), i + 1, true
				}
			}
			return unknownSequence()
		}
		return nil, 0, false

	case 'O':
		if len(b) < 3 {
			return nil, 0, false
		}
		if code, ok := csiFinal[b[2]]; ok {
			return keyOf(core.SpecialKey(code)), 3, true
		}
		return unknownSequence()
	}

	// ESC typed right before another key
	return keyOf(core.SpecialKey(core.KeyEscape)), 1, true
}

// unknownSequence consumes only the ESC so the rest is read as plain keys.
func unknownSequence() (*core.KeyEvent, int, bool) {
	return keyOf(core.SpecialKey(core.KeyEscape)), 1, true
}

func keyOf(k core.KeyEvent) *core.KeyEvent { return &k }

// Run reads r until ctx is done or r fails, sending decoded keys to out. A
// held sequence is flushed when no byte follows it within timeout.
func Run(ctx context.Context, r io.Reader, out chan<- core.KeyEvent, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	type chunk struct {
		data []byte
		err  error
	}
	reads := make(chan chunk)
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			data := append([]byte(nil), buf[:n]...)
			select {
			case reads <- chunk{data, err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	var d Decoder
	timer := time.NewTimer(timeout)
	timer.Stop()

	send := func(keys []core.KeyEvent) error {
		for _, k := range keys {
			select {
			case out <- k:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-timer.C:
			if err := send(d.Flush()); err != nil {
				return err
			}

		case c := <-reads:
			timer.Stop()
			if err := send(d.Feed(c.data)); err != nil {
				return err
			}
			if c.err != nil {
				if err := send(d.Flush()); err != nil {
					return err
				}
				if c.err == io.EOF {
					return nil
				}
				return c.err
			}
			if d.Pending() {
				timer.Reset(timeout)
			}
		}
	}
}
