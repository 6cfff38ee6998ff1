package ui

import "github.com/atotto/clipboard"

// Clipboard is the write-only system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes through atotto/clipboard.
type SystemClipboard struct{}

// WriteAll copies text to the system clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
