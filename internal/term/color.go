package term

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Color describes how a run of text is painted. The zero value is the
// terminal default.
type Color struct {
	Fg        tcell.Color
	Bg        tcell.Color
	Underline bool
}

// Default reports whether c leaves every attribute at the terminal default.
func (c Color) Default() bool {
	return !c.Fg.Valid() && !c.Bg.Valid() && !c.Underline
}

// Sequence returns the SGR escape that resets attributes and applies c.
// palette bounds the indexed colors that may be emitted; larger indexes
// degrade to the nearest of the first 16.
func (c Color) Sequence(palette int) string {
	params := []string{"0"}
	if c.Underline {
		params = append(params, "4")
	}
	if c.Fg.Valid() {
		params = append(params, colorParams(c.Fg, 30, palette)...)
	}
	if c.Bg.Valid() {
		params = append(params, colorParams(c.Bg, 40, palette)...)
	}
	if len(params) == 1 {
		return "\x1b[m"
	}
	return "\x1b[" + strings.Join(params, ";") + "m"
}

var basicColors = func() []tcell.Color {
	colors := make([]tcell.Color, 16)
	for i := range colors {
		colors[i] = tcell.PaletteColor(i)
	}
	return colors
}()

func colorParams(c tcell.Color, base, palette int) []string {
	if c.IsRGB() {
		r, g, b := c.RGB()
		return []string{strconv.Itoa(base + 8), "2",
			strconv.Itoa(int(r)), strconv.Itoa(int(g)), strconv.Itoa(int(b))}
	}
	idx := int(c &^ tcell.ColorValid)
	if idx >= palette && idx >= 16 {
		idx = int(tcell.FindColor(c, basicColors) &^ tcell.ColorValid)
	}
	switch {
	case idx < 8:
		return []string{strconv.Itoa(base + idx)}
	case idx < 16:
		return []string{strconv.Itoa(base + 60 + idx - 8)}
	default:
		return []string{strconv.Itoa(base + 8), "5", strconv.Itoa(idx)}
	}
}

// SetColor switches the output to c, or back to the default when c is the
// zero value. Nothing is written when the output is not a terminal.
func (t *Terminal) SetColor(c Color) {
	if !t.colorOut {
		return
	}
	t.WriteString(c.Sequence(t.caps.paletteColors()))
}

// ResetColor restores default attributes.
func (t *Terminal) ResetColor() {
	t.SetColor(Color{})
}
