package input

import (
	"fmt"
	"strings"
)

// Key is a logical key code: a rune for typed text, a control code below
// 0x20, or a named key at or above KeyUp. ModAlt and ModCtrl qualify any of
// those.
type Key rune

const (
	ModAlt  Key = 1 << 22
	ModCtrl Key = 1 << 23

	modMask = ModAlt | ModCtrl
)

// Control codes the editor binds directly.
const (
	KeyNone      Key = 0
	KeyTab       Key = '\t'
	KeyLF        Key = '\n'
	KeyEnter     Key = '\r'
	KeyBackspace Key = 0x08
	KeyEsc       Key = 0x1b
	KeyDEL       Key = 0x7f
)

// Named keys live past the Unicode range so they never collide with text.
const (
	KeyUp Key = 0x110000 + iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyPgUp
	KeyPgDn
	KeyF1
	KeyF2
	KeyF3
	KeyF4
)

// Frequently bound qualified keys.
const (
	KeyAltBackspace = ModAlt | KeyBackspace
	KeyCtrlUp       = ModCtrl | KeyUp
	KeyCtrlDown     = ModCtrl | KeyDown
	KeyCtrlLeft     = ModCtrl | KeyLeft
	KeyCtrlRight    = ModCtrl | KeyRight
)

// Ctrl returns the control code for letter c, e.g. Ctrl('a') == 1.
func Ctrl(c byte) Key {
	return Key(c & 0x1f)
}

// Alt qualifies k with the Alt modifier.
func Alt(k Key) Key {
	return k | ModAlt
}

// Base strips modifiers.
func (k Key) Base() Key {
	return k &^ modMask
}

// Named reports whether k (ignoring modifiers) is one of the named keys.
func (k Key) Named() bool {
	return k.Base() >= KeyUp
}

// Printable reports whether k inserts itself into the line.
func (k Key) Printable() bool {
	return k >= 0x20 && k != KeyDEL && k < KeyUp
}

var keyNames = map[Key]string{
	KeyUp:     "Up",
	KeyDown:   "Down",
	KeyRight:  "Right",
	KeyLeft:   "Left",
	KeyHome:   "Home",
	KeyEnd:    "End",
	KeyInsert: "Insert",
	KeyDelete: "Delete",
	KeyPgUp:   "PgUp",
	KeyPgDn:   "PgDn",
	KeyF1:     "F1",
	KeyF2:     "F2",
	KeyF3:     "F3",
	KeyF4:     "F4",

	KeyTab:       "Tab",
	KeyEnter:     "Enter",
	KeyLF:        "Enter",
	KeyBackspace: "Backspace",
	KeyEsc:       "Esc",
	KeyDEL:       "Backspace",
}

func (k Key) String() string {
	var b strings.Builder
	if k&ModCtrl != 0 {
		b.WriteString("Ctrl-")
	}
	if k&ModAlt != 0 {
		b.WriteString("Alt-")
	}
	base := k.Base()
	switch name, ok := keyNames[base]; {
	case ok:
		b.WriteString(name)
	case base == KeyNone:
		b.WriteString("None")
	case base < 0x20:
		fmt.Fprintf(&b, "Ctrl-%c", rune(base)+'@')
	case base == ' ':
		b.WriteString("Space")
	default:
		b.WriteRune(rune(base))
	}
	return b.String()
}

// KeyEvent is one decoded keystroke.
type KeyEvent struct {
	Key Key
	// Extended is set for named keys and Alt/Ctrl-qualified keys.
	Extended bool
	// Raw holds the bytes the key was decoded from.
	Raw []byte
}
