package pager

import (
	"errors"
	"strings"
	"time"

	"github.com/kk-code-lab/rline/internal/term"
)

// Prompt is shown while output is paused.
const Prompt = "*** Press <Space> or <Enter> to continue . . ."

// trailerTimeout bounds the wait for the extra byte some terminals send
// after Enter.
const trailerTimeout = 20 * time.Millisecond

// Terminal is what the pager needs from the terminal.
type Terminal interface {
	Size() (rows, cols int)
	ReadByte() (byte, error)
	UnreadByte(b byte)
	Pending(timeout time.Duration) bool
	WriteString(s string)
	Flush() error
}

// Pager pauses long listings one screen at a time.
type Pager struct {
	term        Terminal
	enabled     bool
	interactive bool
	rows        int
}

// New returns a pager for t. interactive must be false when either stream
// is not a terminal; the pager then never pauses.
func New(t Terminal, interactive bool) *Pager {
	return &Pager{term: t, enabled: true, interactive: interactive}
}

// SetEnabled turns pausing on or off and returns the previous setting.
func (p *Pager) SetEnabled(on bool) bool {
	prev := p.enabled
	p.enabled = on
	p.rows = 0
	return prev
}

// Enabled reports whether pausing is turned on.
func (p *Pager) Enabled() bool { return p.enabled }

// Reset starts counting rows from zero.
func (p *Pager) Reset() { p.rows = 0 }

// Check records a printed line of lineLen cells. When the screen is full
// it shows Prompt and waits for a key; it returns true when that key was
// neither Space nor Enter and the caller should stop printing.
func (p *Pager) Check(lineLen int) bool {
	if !p.enabled || !p.interactive {
		return false
	}
	rows, cols := p.term.Size()
	used := 1
	if lineLen > 0 {
		used = (lineLen + cols - 1) / cols
	}
	p.rows += used
	if p.rows <= rows-1 {
		return false
	}
	p.term.WriteString(Prompt)
	_ = p.term.Flush()
	key := p.readKey()
	p.swallowTrailer(key)
	n := len(Prompt)
	p.term.WriteString(strings.Repeat("\b", n) + strings.Repeat(" ", n) + strings.Repeat("\b", n))
	_ = p.term.Flush()
	p.rows = 0
	return key != ' ' && key != '\r' && key != '\n'
}

// readKey waits out resize wake-ups. Any other read error stops the listing.
func (p *Pager) readKey() byte {
	for {
		key, err := p.term.ReadByte()
		switch {
		case err == nil:
			return key
		case !errors.Is(err, term.ErrInterrupted):
			return 0x03
		}
	}
}

func (p *Pager) swallowTrailer(key byte) {
	if !p.term.Pending(trailerTimeout) {
		return
	}
	next, err := p.term.ReadByte()
	if err != nil {
		return
	}
	if next == 0 || (key == '\r' && next == '\n') {
		return
	}
	p.term.UnreadByte(next)
}
