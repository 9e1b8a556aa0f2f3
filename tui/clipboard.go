package tui

import "github.com/atotto/clipboard"

// SystemClipboard mirrors the unnamed register to the desktop clipboard.
type SystemClipboard struct{}

func (SystemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (SystemClipboard) Read() (string, error) {
	return clipboard.ReadAll()
}

// ClipboardAvailable reports whether a clipboard tool was found.
func ClipboardAvailable() bool {
	return !clipboard.Unsupported
}
