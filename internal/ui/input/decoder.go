package input

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kk-code-lab/rline/internal/term"
)

const (
	// EscTimeout is how long a lone ESC waits for a following byte when ESC
	// is not treated as an Alt prefix.
	EscTimeout = 100 * time.Millisecond
	// seqTimeout bounds the wait for the rest of an escape sequence.
	seqTimeout = 25 * time.Millisecond

	maxSeqLen = 8
)

// Source is the byte stream a Decoder consumes.
type Source interface {
	ReadByte() (byte, error)
	UnreadByte(b byte)
	Pending(timeout time.Duration) bool
}

// Decoder turns raw terminal bytes into logical keys.
type Decoder struct {
	src   Source
	table map[string]Key
	// EscAsAlt makes ESC always wait for the key it qualifies. When false a
	// lone ESC is reported as KeyEsc.
	EscAsAlt bool

	raw []byte
}

// builtinSequences normalizes the encodings xterm, vt100, rxvt and the linux
// console use for the same logical key.
var builtinSequences = map[string]Key{
	"\x1b[A": KeyUp,
	"\x1b[B": KeyDown,
	"\x1b[C": KeyRight,
	"\x1b[D": KeyLeft,
	"\x1b[H": KeyHome,
	"\x1b[F": KeyEnd,

	"\x1b[1~": KeyHome,
	"\x1b[2~": KeyInsert,
	"\x1b[3~": KeyDelete,
	"\x1b[4~": KeyEnd,
	"\x1b[5~": KeyPgUp,
	"\x1b[6~": KeyPgDn,
	"\x1b[7~": KeyHome,
	"\x1b[8~": KeyEnd,

	"\x1b[11~": KeyF1,
	"\x1b[12~": KeyF2,
	"\x1b[13~": KeyF3,
	"\x1b[14~": KeyF4,
	"\x1b[[A":  KeyF1,
	"\x1b[[B":  KeyF2,
	"\x1b[[C":  KeyF3,
	"\x1b[[D":  KeyF4,

	"\x1bOA": KeyCtrlUp,
	"\x1bOB": KeyCtrlDown,
	"\x1bOC": KeyCtrlRight,
	"\x1bOD": KeyCtrlLeft,
	"\x1bOH": KeyHome,
	"\x1bOF": KeyEnd,
	"\x1bOP": KeyF1,
	"\x1bOQ": KeyF2,
	"\x1bOR": KeyF3,
	"\x1bOS": KeyF4,

	// rxvt modified arrows
	"\x1bOa": KeyCtrlUp,
	"\x1bOb": KeyCtrlDown,
	"\x1bOc": KeyCtrlRight,
	"\x1bOd": KeyCtrlLeft,
}

var terminfoKeys = map[string]Key{
	"up":     KeyUp,
	"down":   KeyDown,
	"left":   KeyLeft,
	"right":  KeyRight,
	"home":   KeyHome,
	"end":    KeyEnd,
	"insert": KeyInsert,
	"delete": KeyDelete,
	"pgup":   KeyPgUp,
	"pgdn":   KeyPgDn,
	"f1":     KeyF1,
	"f2":     KeyF2,
	"f3":     KeyF3,
	"f4":     KeyF4,
}

// NewDecoder reads keys from src. aliases maps terminfo key names ("up",
// "f1", ...) to the sequences the terminal sends; they only fill in
// sequences the built-in table does not know.
func NewDecoder(src Source, aliases map[string]string) *Decoder {
	table := make(map[string]Key, len(builtinSequences)+len(aliases))
	for seq, k := range builtinSequences {
		table[seq] = k
	}
	for name, seq := range aliases {
		k, ok := terminfoKeys[name]
		if !ok || len(seq) < 2 || seq[0] != 0x1b {
			continue
		}
		if _, exists := table[seq]; !exists {
			table[seq] = k
		}
	}
	return &Decoder{src: src, table: table, EscAsAlt: true}
}

// Next blocks for one key. Read errors are returned unchanged.
func (d *Decoder) Next() (KeyEvent, error) {
	d.raw = d.raw[:0]
	b, err := d.read()
	if err != nil {
		return KeyEvent{}, err
	}
	var k Key
	switch {
	case b == 0x1b:
		k, err = d.escape()
		if err != nil {
			return KeyEvent{}, err
		}
	case b == 0x7f:
		k = KeyBackspace
	case b >= utf8.RuneSelf:
		k = d.multibyte(b)
	default:
		k = Key(b)
	}
	raw := append([]byte(nil), d.raw...)
	return KeyEvent{Key: k, Extended: k.Named() || k&modMask != 0, Raw: raw}, nil
}

func (d *Decoder) read() (byte, error) {
	b, err := d.src.ReadByte()
	if err == nil {
		d.raw = append(d.raw, b)
	}
	return b, err
}

// readNext reads a byte that continues a key already started. A wake-up
// from a resize does not end the key; the caller sees the resize after it.
func (d *Decoder) readNext() (byte, error) {
	for {
		b, err := d.read()
		if !errors.Is(err, term.ErrInterrupted) {
			return b, err
		}
	}
}

// readPending reads a byte only if the terminal already delivered one.
func (d *Decoder) readPending(timeout time.Duration) (byte, bool) {
	if !d.src.Pending(timeout) {
		return 0, false
	}
	b, err := d.readNext()
	return b, err == nil
}

func (d *Decoder) escape() (Key, error) {
	var next byte
	if d.EscAsAlt {
		b, err := d.readNext()
		if err != nil {
			return KeyEsc, nil
		}
		next = b
	} else {
		b, ok := d.readPending(EscTimeout)
		if !ok {
			return KeyEsc, nil
		}
		next = b
	}

	switch next {
	case 0x1b:
		// ESC ESC <seq> is how some keyboards send Alt with a named key.
		b, ok := d.readPending(seqTimeout)
		if !ok {
			return Alt(KeyEsc), nil
		}
		var k Key
		switch b {
		case '[':
			k = d.csi()
		case 'O':
			k = d.ss3()
		default:
			d.unread(b)
			return Alt(KeyEsc), nil
		}
		return toAlt(k), nil
	case '[':
		return d.csi(), nil
	case 'O':
		return d.ss3(), nil
	case 0x7f, 0x08:
		return KeyAltBackspace, nil
	}
	if next >= utf8.RuneSelf {
		return Alt(d.multibyte(next)), nil
	}
	return Alt(Key(next)), nil
}

func (d *Decoder) unread(b byte) {
	d.src.UnreadByte(b)
	if n := len(d.raw); n > 0 {
		d.raw = d.raw[:n-1]
	}
}

// csi decodes the remainder of ESC [ ... up to its final byte.
func (d *Decoder) csi() Key {
	seq := []byte{'['}
	for len(seq) < maxSeqLen {
		b, ok := d.readPending(seqTimeout)
		if !ok {
			return KeyNone
		}
		seq = append(seq, b)
		if b == '[' && len(seq) == 2 {
			// linux console function keys: ESC [ [ letter
			continue
		}
		if b >= 0x40 && b <= 0x7e {
			return d.lookup(string(seq))
		}
	}
	return KeyNone
}

func (d *Decoder) ss3() Key {
	b, ok := d.readPending(seqTimeout)
	if !ok {
		return KeyNone
	}
	return d.lookup(string([]byte{'O', b}))
}

// lookup maps a sequence without its leading ESC to a key, falling back to
// the xterm "number;modifier final" form.
func (d *Decoder) lookup(seq string) Key {
	if k, ok := d.table["\x1b"+seq]; ok {
		return k
	}
	body, final := seq[1:len(seq)-1], seq[len(seq)-1]
	num, modText, found := strings.Cut(body, ";")
	if !found || seq[0] != '[' {
		return KeyNone
	}
	mod, err := strconv.Atoi(modText)
	if err != nil || mod < 1 {
		return KeyNone
	}
	var base Key
	var ok bool
	if final == '~' {
		base, ok = d.table["\x1b["+num+"~"]
	} else if num == "" || num == "1" {
		base, ok = d.table["\x1b["+string(final)]
	}
	if !ok {
		return KeyNone
	}
	bits := mod - 1
	if bits&2 != 0 {
		base |= ModAlt
	}
	if bits&4 != 0 {
		base |= ModCtrl
	}
	return base
}

func toAlt(k Key) Key {
	switch {
	case k == KeyNone:
		return KeyNone
	case k == KeyBackspace || k == KeyDEL:
		return KeyAltBackspace
	case k.Named():
		return k | ModAlt
	}
	return KeyNone
}

// multibyte assembles a UTF-8 encoded rune whose first byte is lead.
func (d *Decoder) multibyte(lead byte) Key {
	buf := []byte{lead}
	for !utf8.FullRune(buf) {
		b, ok := d.readPending(seqTimeout)
		if !ok {
			return KeyNone
		}
		if b&0xc0 != 0x80 {
			d.unread(b)
			return KeyNone
		}
		buf = append(buf, b)
	}
	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return KeyNone
	}
	return Key(r)
}
