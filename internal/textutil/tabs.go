package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const DefaultTabWidth = 8

// ExpandTabs replaces tab characters with spaces respecting terminal column width.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var builder strings.Builder
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			builder.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		builder.WriteRune(ru)
		column += CellWidth(ru)
	}
	return builder.String()
}

// CellText returns how r is shown inside an edited line: control characters
// in caret notation, invisible formatting runes as a label, anything else
// as itself.
func CellText(r rune) string {
	switch {
	case r == 0x7f:
		return "^?"
	case r >= 0 && r < 0x20:
		return "^" + string(r+'@')
	case isFormattingRune(r):
		return formatLabels[r]
	}
	return string(r)
}

// CellWidth is the number of terminal cells CellText(r) occupies.
func CellWidth(r rune) int {
	switch {
	case r == 0x7f, r >= 0 && r < 0x20:
		return 2
	case isFormattingRune(r):
		return DisplayWidth(formatLabels[r])
	}
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		w = 1
	}
	return w
}

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		w := runewidth.RuneWidth(ru)
		if w <= 0 {
			w = 1
		}
		width += w
	}
	return width
}

// StringWidth measures text by grapheme cluster, the way terminals lay out
// emoji sequences and combining marks. Use it to align columns of
// already-sanitized text.
func StringWidth(text string) int {
	return uniseg.StringWidth(text)
}

// PadRight appends spaces until text is width cells wide.
func PadRight(text string, width int) string {
	if pad := width - StringWidth(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}
