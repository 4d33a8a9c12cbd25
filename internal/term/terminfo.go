package term

import (
	"github.com/gdamore/tcell/v2/terminfo"
	_ "github.com/gdamore/tcell/v2/terminfo/extended"
)

type capabilities struct {
	info       *terminfo.Terminfo
	hideCursor string
	showCursor string
	bell       string
	// keys maps a terminfo key name to the sequence the terminal sends.
	keys map[string]string
}

var fallbackCapabilities = capabilities{
	hideCursor: "\x1b[?25l",
	showCursor: "\x1b[?25h",
	bell:       "\a",
}

func loadCapabilities(name string) capabilities {
	caps := fallbackCapabilities
	if name == "" || isDumb(name) {
		return caps
	}
	ti, err := terminfo.LookupTerminfo(name)
	if err != nil || ti == nil {
		return caps
	}
	caps.info = ti
	if ti.HideCursor != "" && ti.ShowCursor != "" {
		caps.hideCursor = ti.HideCursor
		caps.showCursor = ti.ShowCursor
	}
	if ti.Bell != "" {
		caps.bell = ti.Bell
	}
	caps.keys = map[string]string{
		"up":        ti.KeyUp,
		"down":      ti.KeyDown,
		"left":      ti.KeyLeft,
		"right":     ti.KeyRight,
		"home":      ti.KeyHome,
		"end":       ti.KeyEnd,
		"insert":    ti.KeyInsert,
		"delete":    ti.KeyDelete,
		"pgup":      ti.KeyPgUp,
		"pgdn":      ti.KeyPgDn,
		"f1":        ti.KeyF1,
		"f2":        ti.KeyF2,
		"f3":        ti.KeyF3,
		"f4":        ti.KeyF4,
		"backspace": ti.KeyBackspace,
	}
	for k, v := range caps.keys {
		if v == "" {
			delete(caps.keys, k)
		}
	}
	return caps
}

// paletteColors reports how many indexed colors the terminal advertises.
func (c capabilities) paletteColors() int {
	if c.info == nil || c.info.Colors <= 0 {
		return 256
	}
	return c.info.Colors
}
