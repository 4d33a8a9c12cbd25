package term

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newTestTerminal(input string) (*Terminal, *bytes.Buffer) {
	var out bytes.Buffer
	t := NewWithIO(strings.NewReader(input), &out, Options{ForceInteractive: true, Rows: 24, Cols: 80, TermName: "dumb"})
	return t, &out
}

func TestReadByteUsesPushbackFirst(t *testing.T) {
	tm, _ := newTestTerminal("ab")
	b, err := tm.ReadByte()
	if err != nil || b != 'a' {
		t.Fatalf("ReadByte=%q,%v want 'a'", b, err)
	}
	tm.UnreadByte('z')
	tm.UnreadByte('y')
	for _, want := range []byte{'y', 'z', 'b'} {
		got, err := tm.ReadByte()
		if err != nil || got != want {
			t.Fatalf("ReadByte=%q,%v want %q", got, err, want)
		}
	}
	if _, err := tm.ReadByte(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestPushbackOverflowDropsOldest(t *testing.T) {
	tm, _ := newTestTerminal("")
	for i := 0; i < maxPushback+3; i++ {
		tm.UnreadByte(byte(i))
	}
	if len(tm.pushback) != maxPushback {
		t.Fatalf("pushback len=%d want %d", len(tm.pushback), maxPushback)
	}
	if tm.pushback[0] != 3 {
		t.Fatalf("oldest kept=%d want 3", tm.pushback[0])
	}
	b, _ := tm.ReadByte()
	if b != byte(maxPushback+2) {
		t.Fatalf("ReadByte=%d want %d", b, maxPushback+2)
	}
}

func TestPendingReflectsBufferedInput(t *testing.T) {
	tm, _ := newTestTerminal("x")
	if !tm.Pending(0) {
		t.Fatalf("expected pending input")
	}
	_, _ = tm.ReadByte()
	if tm.Pending(10 * time.Millisecond) {
		t.Fatalf("expected no pending input after drain")
	}
	tm.UnreadByte('q')
	if !tm.Pending(0) {
		t.Fatalf("pushback should count as pending")
	}
}

func TestReadLineStripsNewline(t *testing.T) {
	tm, _ := newTestTerminal("first\r\nsecond")
	line, err := tm.ReadLine()
	if err != nil || line != "first" {
		t.Fatalf("ReadLine=%q,%v", line, err)
	}
	line, err = tm.ReadLine()
	if err != nil || line != "second" {
		t.Fatalf("ReadLine=%q,%v", line, err)
	}
	if _, err := tm.ReadLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestSizeFallsBackToDefaults(t *testing.T) {
	tm := NewWithIO(strings.NewReader(""), io.Discard, Options{})
	rows, cols := tm.Size()
	if rows != DefaultRows || cols != DefaultCols {
		t.Fatalf("Size=%dx%d want %dx%d", rows, cols, DefaultRows, DefaultCols)
	}
	pinned := NewWithIO(nil, io.Discard, Options{Rows: 10, Cols: 40})
	rows, cols = pinned.Size()
	if rows != 10 || cols != 40 {
		t.Fatalf("Size=%dx%d want 10x40", rows, cols)
	}
}

func TestInteractiveRequiresForceForPlainStreams(t *testing.T) {
	tm := NewWithIO(strings.NewReader(""), io.Discard, Options{})
	if tm.Interactive() {
		t.Fatalf("plain streams must not be interactive")
	}
	if !isDumb("DUMB") || !isDumb("emacs") || isDumb("xterm") {
		t.Fatalf("isDumb classification wrong")
	}
}

func TestMoveCursorSequences(t *testing.T) {
	tm, out := newTestTerminal("")
	tm.MoveCursor(2, -3)
	tm.MoveCursor(-1, 4)
	tm.MoveCursor(0, 0)
	_ = tm.Flush()
	want := "\x1b[2B\x1b[3D\x1b[1A\x1b[4C"
	if out.String() != want {
		t.Fatalf("MoveCursor wrote %q want %q", out.String(), want)
	}
}

func TestColorSequence(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  string
	}{
		{"default", Color{}, "\x1b[m"},
		{"red fg", Color{Fg: tcell.ColorMaroon}, "\x1b[0;31m"},
		{"bright fg underline", Color{Fg: tcell.ColorRed, Underline: true}, "\x1b[0;4;91m"},
		{"indexed bg", Color{Bg: tcell.PaletteColor(200)}, "\x1b[0;48;5;200m"},
		{"rgb fg", Color{Fg: tcell.NewRGBColor(1, 2, 3)}, "\x1b[0;38;2;1;2;3m"},
	}
	for _, tt := range tests {
		if got := tt.color.Sequence(256); got != tt.want {
			t.Fatalf("%s: Sequence=%q want %q", tt.name, got, tt.want)
		}
	}
	if !(Color{}).Default() || (Color{Underline: true}).Default() {
		t.Fatalf("Default classification wrong")
	}
}

func TestSetColorSkippedForPlainOutput(t *testing.T) {
	var out bytes.Buffer
	tm := NewWithIO(strings.NewReader(""), &out, Options{})
	tm.SetColor(Color{Fg: tcell.ColorRed})
	_ = tm.Flush()
	if out.Len() != 0 {
		t.Fatalf("expected no color output, got %q", out.String())
	}
}
