package input

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/kk-code-lab/rline/internal/term"
)

type byteSource struct {
	data     []byte
	pushback []byte
}

func (s *byteSource) ReadByte() (byte, error) {
	if n := len(s.pushback); n > 0 {
		b := s.pushback[n-1]
		s.pushback = s.pushback[:n-1]
		return b, nil
	}
	if len(s.data) == 0 {
		return 0, io.EOF
	}
	b := s.data[0]
	s.data = s.data[1:]
	return b, nil
}

func (s *byteSource) UnreadByte(b byte) { s.pushback = append(s.pushback, b) }

func (s *byteSource) Pending(time.Duration) bool { return len(s.pushback)+len(s.data) > 0 }

// wakingSource returns term.ErrInterrupted once before the byte at each
// listed read.
type wakingSource struct {
	byteSource
	reads  int
	wakeAt map[int]bool
}

func (s *wakingSource) ReadByte() (byte, error) {
	if s.wakeAt[s.reads] {
		delete(s.wakeAt, s.reads)
		return 0, term.ErrInterrupted
	}
	s.reads++
	return s.byteSource.ReadByte()
}

func decodeAll(t *testing.T, d *Decoder) []Key {
	t.Helper()
	var keys []Key
	for {
		ev, err := d.Next()
		if errors.Is(err, io.EOF) {
			return keys
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		keys = append(keys, ev.Key)
	}
}

func TestDecoderSequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Key
	}{
		{"plain text", "ab", []Key{'a', 'b'}},
		{"utf8", "żó", []Key{'ż', 'ó'}},
		{"del is backspace", "\x7f", []Key{KeyBackspace}},
		{"csi arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{KeyUp, KeyDown, KeyRight, KeyLeft}},
		{"home end variants", "\x1b[H\x1b[1~\x1b[7~\x1bOH\x1b[F\x1b[4~\x1b[8~\x1bOF",
			[]Key{KeyHome, KeyHome, KeyHome, KeyHome, KeyEnd, KeyEnd, KeyEnd, KeyEnd}},
		{"numbered keys", "\x1b[2~\x1b[3~\x1b[5~\x1b[6~", []Key{KeyInsert, KeyDelete, KeyPgUp, KeyPgDn}},
		{"function keys", "\x1bOP\x1b[[B\x1b[13~\x1bOS", []Key{KeyF1, KeyF2, KeyF3, KeyF4}},
		{"vt100 ss3 arrows are ctrl", "\x1bOA\x1bOD", []Key{KeyCtrlUp, KeyCtrlLeft}},
		{"modified csi", "\x1b[1;5C\x1b[1;3D\x1b[3;5~\x1b[1;3H",
			[]Key{KeyCtrlRight, ModAlt | KeyLeft, ModCtrl | KeyDelete, ModAlt | KeyHome}},
		{"alt letter", "\x1bb\x1bf", []Key{Alt('b'), Alt('f')}},
		{"alt backspace", "\x1b\x7f\x1b\x08", []Key{KeyAltBackspace, KeyAltBackspace}},
		{"esc esc sequence", "\x1b\x1b[A\x1b\x1b[3~\x1b\x1bOH", []Key{ModAlt | KeyUp, ModAlt | KeyDelete, ModAlt | KeyHome}},
		{"unknown sequence", "\x1b[9~x", []Key{KeyNone, 'x'}},
		{"truncated sequence", "\x1b[1", []Key{KeyNone}},
	}
	for _, tt := range tests {
		d := NewDecoder(&byteSource{data: []byte(tt.input)}, nil)
		got := decodeAll(t, d)
		if len(got) != len(tt.want) {
			t.Fatalf("%s: got %v want %v", tt.name, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("%s: key %d = %v want %v", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}

func TestDecoderLoneEscape(t *testing.T) {
	d := NewDecoder(&byteSource{data: []byte{0x1b}}, nil)
	d.EscAsAlt = false
	ev, err := d.Next()
	if err != nil || ev.Key != KeyEsc {
		t.Fatalf("Next=%v,%v want Esc", ev.Key, err)
	}
}

func TestDecoderEscWaitsWhenAltPrefix(t *testing.T) {
	d := NewDecoder(&byteSource{data: []byte("\x1bx")}, nil)
	ev, err := d.Next()
	if err != nil || ev.Key != Alt('x') || !ev.Extended {
		t.Fatalf("Next=%v ext=%v err=%v", ev.Key, ev.Extended, err)
	}
	if string(ev.Raw) != "\x1bx" {
		t.Fatalf("Raw=%q", ev.Raw)
	}
}

func TestDecoderTerminfoAliasesDoNotOverride(t *testing.T) {
	aliases := map[string]string{
		"up":   "\x1bOA",
		"home": "\x1b[9~",
		"f1":   "\x1bOP",
	}
	d := NewDecoder(&byteSource{data: []byte("\x1bOA\x1b[9~")}, aliases)
	got := decodeAll(t, d)
	if len(got) != 2 || got[0] != KeyCtrlUp || got[1] != KeyHome {
		t.Fatalf("got %v", got)
	}
}

func TestKeyString(t *testing.T) {
	tests := map[Key]string{
		Ctrl('a'):       "Ctrl-A",
		KeyCtrlUp:       "Ctrl-Up",
		Alt('b'):        "Alt-b",
		KeyAltBackspace: "Alt-Backspace",
		' ':             "Space",
		'x':             "x",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Fatalf("String(%d)=%q want %q", k, got, want)
		}
	}
	if !Key('a').Printable() || KeyUp.Printable() || Ctrl('a').Printable() || Alt('a').Printable() {
		t.Fatalf("Printable classification wrong")
	}
}

func TestDecoderResizeWakeInsideKey(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		escAlt  bool
		wakeAt  int
		want    Key
		wantRaw string
	}{
		{name: "alt prefix", data: "\x1bb", escAlt: true, wakeAt: 1, want: Alt('b'), wantRaw: "\x1bb"},
		{name: "csi body", data: "\x1b[C", wakeAt: 2, want: KeyRight, wantRaw: "\x1b[C"},
		{name: "utf8 tail", data: "\xc3\xa9", wakeAt: 1, want: Key('é'), wantRaw: "\xc3\xa9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &wakingSource{byteSource: byteSource{data: []byte(tt.data)}, wakeAt: map[int]bool{tt.wakeAt: true}}
			d := NewDecoder(src, nil)
			d.EscAsAlt = tt.escAlt
			ev, err := d.Next()
			if err != nil {
				t.Fatalf("Next: %v", err)
			}
			if ev.Key != tt.want || string(ev.Raw) != tt.wantRaw {
				t.Fatalf("Next=%v raw=%q want %v raw=%q", ev.Key, ev.Raw, tt.want, tt.wantRaw)
			}
			if len(src.wakeAt) != 0 {
				t.Fatalf("wake not consumed")
			}
		})
	}
}

func TestDecoderResizeWakeBeforeKeyIsReported(t *testing.T) {
	src := &wakingSource{byteSource: byteSource{data: []byte("a")}, wakeAt: map[int]bool{0: true}}
	d := NewDecoder(src, nil)
	if _, err := d.Next(); !errors.Is(err, term.ErrInterrupted) {
		t.Fatalf("Next err=%v want ErrInterrupted", err)
	}
	ev, err := d.Next()
	if err != nil || ev.Key != 'a' {
		t.Fatalf("Next=%v,%v want a", ev.Key, err)
	}
}
