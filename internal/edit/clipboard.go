package edit

import "github.com/atotto/clipboard"

// Clipboard holds the most recently cut text.
type Clipboard interface {
	Get() string
	Set(text string)
}

// Slot is an in-memory clipboard. The zero value holds "".
type Slot struct {
	text string
}

func (s *Slot) Get() string     { return s.text }
func (s *Slot) Set(text string) { s.text = text }

var (
	clipboardRead  = clipboard.ReadAll
	clipboardWrite = clipboard.WriteAll
)

// SystemClipboard mirrors cuts to the operating system clipboard and pastes
// from it. When no system clipboard is reachable it behaves like a Slot.
type SystemClipboard struct {
	slot Slot
}

// NewSystemClipboard returns a clipboard backed by the desktop clipboard
// when one is available.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

// Available reports whether a system clipboard tool was found.
func (c *SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

func (c *SystemClipboard) Get() string {
	if c.Available() {
		if text, err := clipboardRead(); err == nil {
			return text
		}
	}
	return c.slot.Get()
}

func (c *SystemClipboard) Set(text string) {
	c.slot.Set(text)
	if c.Available() {
		_ = clipboardWrite(text)
	}
}
