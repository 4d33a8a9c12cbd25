package complete

import (
	"fmt"
	"strings"

	"github.com/kk-code-lab/rline/internal/selectkey"
	"github.com/kk-code-lab/rline/internal/term"
	"github.com/kk-code-lab/rline/internal/textutil"
)

// HintLabel precedes a syntax hint.
const HintLabel = "Please input: "

const (
	labelWidth = 6
	columnGap  = 4
)

// Printer is where candidate lists are written.
type Printer interface {
	WriteString(s string)
	SetColor(c term.Color)
}

// PageFunc is called after each printed row with its width in cells and
// returns true to stop printing.
type PageFunc func(lineLen int) bool

// List prints the hint and the labeled candidates and returns how many
// candidates were printed, which bounds the valid selection keys.
// Candidates past the selection alphabet are not shown.
func List(out Printer, set *Set, cols int, page PageFunc) int {
	if page == nil {
		page = func(int) bool { return false }
	}
	if set.Hint != "" {
		out.WriteString(HintLabel)
		paint(out, set.HintColor, textutil.SanitizeTerminalText(set.Hint))
		out.WriteString("\n")
		if page(textutil.StringWidth(HintLabel + set.Hint)) {
			return 0
		}
	}
	n := min(set.Len(), selectkey.Max)
	if n == 0 {
		return 0
	}
	words := make([]string, n)
	wordWidth := 0
	for i := 0; i < n; i++ {
		words[i] = textutil.SanitizeTerminalText(set.Candidates[i].Word)
		wordWidth = max(wordWidth, textutil.StringWidth(words[i]))
	}
	if set.HasHelp() {
		return listWithHelp(out, set, words, wordWidth, page)
	}
	return listColumns(out, set, words, wordWidth, cols, page)
}

func paint(out Printer, c term.Color, text string) {
	if c.Default() {
		out.WriteString(text)
		return
	}
	out.SetColor(c)
	out.WriteString(text)
	out.SetColor(term.Color{})
}

func label(i int) string {
	key, _ := selectkey.Key(i)
	return fmt.Sprintf("%4c: ", key)
}

func listWithHelp(out Printer, set *Set, words []string, wordWidth int, page PageFunc) int {
	for i, word := range words {
		c := set.Candidates[i]
		help := textutil.SanitizeTerminalText(textutil.ExpandTabs(c.Help, textutil.DefaultTabWidth))
		out.WriteString(label(i))
		paint(out, c.WordColor, word)
		out.WriteString(strings.Repeat(" ", wordWidth+columnGap-textutil.StringWidth(word)))
		paint(out, c.HelpColor, help)
		out.WriteString("\n")
		if page(labelWidth + wordWidth + columnGap + textutil.StringWidth(help)) {
			return i + 1
		}
	}
	return len(words)
}

func listColumns(out Printer, set *Set, words []string, wordWidth, cols int, page PageFunc) int {
	cellWidth := labelWidth + wordWidth
	perRow := 1
	if cols-1 > cellWidth {
		perRow = (cols-1-cellWidth)/(cellWidth+columnGap) + 1
	}
	rowWidth := perRow*cellWidth + (perRow-1)*columnGap
	for i, word := range words {
		col := i % perRow
		if col > 0 {
			out.WriteString(strings.Repeat(" ", columnGap))
		}
		out.WriteString(label(i))
		paint(out, set.Candidates[i].WordColor, word)
		last := col == perRow-1 || i == len(words)-1
		if !last {
			out.WriteString(strings.Repeat(" ", wordWidth-textutil.StringWidth(word)))
		}
		if last {
			out.WriteString("\n")
			if page(rowWidth) {
				return i + 1
			}
		}
	}
	return len(words)
}
