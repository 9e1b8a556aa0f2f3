package core

import (
	"log"
	"strings"
)

// Clipboard mirrors the unnamed register to the system clipboard.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// Register is the unnamed register filled by delete and change.
type Register struct {
	Text     string
	Linewise bool
}

func (r Register) Empty() bool { return r.Text == "" && !r.Linewise }

func (r Register) lines() []string {
	return strings.Split(strings.TrimSuffix(r.Text, "\n"), "\n")
}

func (e *Editor) setRegister(text string, linewise bool) {
	if linewise && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	e.register = Register{Text: text, Linewise: linewise}
	if e.clipboard != nil {
		if err := e.clipboard.Write(text); err != nil {
			log.Printf("clipboard write: %v", err)
		}
	}
}

// pasteRegister returns the unnamed register, falling back to the system
// clipboard while nothing has been deleted yet.
func (e *Editor) pasteRegister() Register {
	if !e.register.Empty() || e.clipboard == nil {
		return e.register
	}
	text, err := e.clipboard.Read()
	if err != nil {
		log.Printf("clipboard read: %v", err)
		return e.register
	}
	return Register{Text: text, Linewise: strings.HasSuffix(text, "\n")}
}
