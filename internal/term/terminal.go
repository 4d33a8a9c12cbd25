package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	systerm "golang.org/x/term"
)

const (
	// DefaultRows and DefaultCols are used when the window size cannot be queried.
	DefaultRows = 24
	DefaultCols = 160

	maxPushback = 32
)

// ErrInterrupted is returned by ReadByte when Interrupt woke a blocked read.
var ErrInterrupted = errors.New("terminal read interrupted")

var (
	termGetSize    = systerm.GetSize
	termIsTerminal = systerm.IsTerminal
	termMakeRaw    = systerm.MakeRaw
	termRestore    = systerm.Restore
)

// dumbTerminals cannot be driven with cursor motion sequences.
var dumbTerminals = map[string]struct{}{
	"dumb":   {},
	"cons25": {},
	"emacs":  {},
}

// Options tunes a Terminal. Zero values mean "detect".
type Options struct {
	// TermName overrides $TERM.
	TermName string
	// ForceInteractive treats the streams as a capable terminal even when
	// they are not file descriptors (tests, pipes driven by a host).
	ForceInteractive bool
	// Rows and Cols pin the geometry instead of querying the output.
	Rows int
	Cols int
}

// Terminal is the byte transport between the editor and the user's terminal.
type Terminal struct {
	inFile  *os.File
	outFile *os.File
	reader  *bufio.Reader
	writer  *bufio.Writer

	pushback []byte
	caps     capabilities
	opts     Options

	interactive bool
	colorOut    bool
	waker       *waker
}

// New returns a terminal bound to file descriptors, normally os.Stdin and os.Stdout.
func New(in, out *os.File, opts Options) *Terminal {
	t := newTerminal(in, out, opts)
	t.inFile = in
	t.outFile = out
	inTTY := in != nil && termIsTerminal(int(in.Fd()))
	outTTY := out != nil && termIsTerminal(int(out.Fd()))
	t.interactive = opts.ForceInteractive || (inTTY && !isDumb(t.termName()))
	t.colorOut = opts.ForceInteractive || outTTY
	if inTTY {
		t.waker = newWaker()
	}
	return t
}

// NewWithIO returns a terminal over arbitrary streams. It is interactive only
// when opts.ForceInteractive is set.
func NewWithIO(r io.Reader, w io.Writer, opts Options) *Terminal {
	t := newTerminal(r, w, opts)
	t.interactive = opts.ForceInteractive
	t.colorOut = opts.ForceInteractive
	return t
}

func newTerminal(r io.Reader, w io.Writer, opts Options) *Terminal {
	t := &Terminal{opts: opts}
	if r != nil {
		t.reader = bufio.NewReader(r)
	}
	if w != nil {
		t.writer = bufio.NewWriter(w)
	}
	t.caps = loadCapabilities(t.termName())
	return t
}

func (t *Terminal) termName() string {
	if t.opts.TermName != "" {
		return t.opts.TermName
	}
	return os.Getenv("TERM")
}

func isDumb(name string) bool {
	_, ok := dumbTerminals[strings.ToLower(name)]
	return ok
}

// Interactive reports whether line editing can be used on these streams.
func (t *Terminal) Interactive() bool {
	return t.interactive && t.reader != nil && t.writer != nil
}

// OutputIsTerminal reports whether the output stream is a terminal.
func (t *Terminal) OutputIsTerminal() bool {
	return t.colorOut
}

// KeySequences returns the terminfo key strings of the running terminal.
func (t *Terminal) KeySequences() map[string]string {
	return t.caps.keys
}

// ReadByte returns the next input byte. Raw mode is held only while waiting
// for and reading that byte.
func (t *Terminal) ReadByte() (byte, error) {
	if n := len(t.pushback); n > 0 {
		b := t.pushback[n-1]
		t.pushback = t.pushback[:n-1]
		return b, nil
	}
	if t.reader == nil {
		return 0, io.EOF
	}
	if t.reader.Buffered() > 0 {
		return t.reader.ReadByte()
	}
	restore := t.enterRaw()
	defer restore()
	if err := t.wait(-1); err != nil {
		return 0, err
	}
	return t.reader.ReadByte()
}

// UnreadByte pushes b back so the next ReadByte returns it. When the stack is
// full the oldest entry is dropped.
func (t *Terminal) UnreadByte(b byte) {
	if len(t.pushback) >= maxPushback {
		copy(t.pushback, t.pushback[1:])
		t.pushback = t.pushback[:len(t.pushback)-1]
	}
	t.pushback = append(t.pushback, b)
}

// Pending reports whether a byte can be read without blocking, waiting at
// most timeout for one to arrive.
func (t *Terminal) Pending(timeout time.Duration) bool {
	if len(t.pushback) > 0 {
		return true
	}
	if t.reader == nil {
		return false
	}
	if t.reader.Buffered() > 0 {
		return true
	}
	if t.inFile == nil {
		_, err := t.reader.Peek(1)
		return err == nil
	}
	restore := t.enterRaw()
	defer restore()
	return t.poll(timeout)
}

// ReadLine reads one line without any editing, for non-interactive input.
// The trailing newline is stripped.
func (t *Terminal) ReadLine() (string, error) {
	if t.reader == nil {
		return "", io.EOF
	}
	line, err := t.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *Terminal) enterRaw() func() {
	if t.inFile == nil || !t.interactive {
		return func() {}
	}
	fd := int(t.inFile.Fd())
	state, err := termMakeRaw(fd)
	if err != nil {
		return func() {}
	}
	return func() {
		_ = termRestore(fd, state)
	}
}

// Interrupt wakes a goroutine blocked in ReadByte. It is safe to call from
// any goroutine.
func (t *Terminal) Interrupt() {
	if t.waker != nil {
		t.waker.wake()
	}
}

// Close releases the wake-up pipe.
func (t *Terminal) Close() error {
	if t.waker != nil {
		t.waker.close()
		t.waker = nil
	}
	return t.Flush()
}

// Size returns the window height and width, falling back to
// DefaultRows x DefaultCols.
func (t *Terminal) Size() (rows, cols int) {
	if t.opts.Rows > 0 && t.opts.Cols > 0 {
		return t.opts.Rows, t.opts.Cols
	}
	for _, f := range []*os.File{t.outFile, t.inFile} {
		if f == nil {
			continue
		}
		w, h, err := termGetSize(int(f.Fd()))
		if err == nil && w > 1 && h > 1 {
			return h, w
		}
	}
	return DefaultRows, DefaultCols
}

// WriteString queues s for output.
func (t *Terminal) WriteString(s string) {
	if t.writer != nil {
		_, _ = t.writer.WriteString(s)
	}
}

// Printf formats into the output buffer.
func (t *Terminal) Printf(format string, args ...interface{}) {
	if t.writer != nil {
		_, _ = fmt.Fprintf(t.writer, format, args...)
	}
}

// Flush sends buffered output to the terminal.
func (t *Terminal) Flush() error {
	if t.writer == nil {
		return nil
	}
	return t.writer.Flush()
}

// MoveCursor moves the cursor by rowOff rows (positive is down) and colOff
// columns (positive is right).
func (t *Terminal) MoveCursor(rowOff, colOff int) {
	switch {
	case rowOff > 0:
		t.Printf("\x1b[%dB", rowOff)
	case rowOff < 0:
		t.Printf("\x1b[%dA", -rowOff)
	}
	switch {
	case colOff > 0:
		t.Printf("\x1b[%dC", colOff)
	case colOff < 0:
		t.Printf("\x1b[%dD", -colOff)
	}
}

// HideCursor hides or shows the hardware cursor.
func (t *Terminal) HideCursor(hide bool) {
	if !t.colorOut {
		return
	}
	if hide {
		t.WriteString(t.caps.hideCursor)
	} else {
		t.WriteString(t.caps.showCursor)
	}
}

// ClearScreen erases the window and homes the cursor.
func (t *Terminal) ClearScreen() {
	t.WriteString("\x1b[2J\x1b[1;1H")
}

// ClearToEnd erases from the cursor to the end of the screen.
func (t *Terminal) ClearToEnd() {
	t.WriteString("\x1b[J")
}

// Bell rings the terminal bell.
func (t *Terminal) Bell() {
	t.WriteString(t.caps.bell)
	_ = t.Flush()
}

var errTimeout = errors.New("terminal wait timed out")
