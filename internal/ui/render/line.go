package render

import (
	"strings"

	"github.com/kk-code-lab/rline/internal/term"
	"github.com/kk-code-lab/rline/internal/textutil"
)

// Output is the subset of the terminal the line renderer drives.
type Output interface {
	WriteString(s string)
	MoveCursor(rowOff, colOff int)
	HideCursor(hide bool)
	SetColor(c term.Color)
	ClearToEnd()
}

// Mode names how much of the line a refresh rewrites.
type Mode int

const (
	MoveOnly Mode = iota
	DrawFromOffset
	DrawAll
)

func (m Mode) String() string {
	switch m {
	case MoveOnly:
		return "move-only"
	case DrawFromOffset:
		return "draw-from-offset"
	default:
		return "draw-all"
	}
}

const (
	// Unchanged and WholeLine mirror the edit package's change hints.
	Unchanged = -1
	WholeLine = -2
)

// State is what the renderer last put on screen.
type State struct {
	Cursor int
	Length int

	cursorCell int
	endCell    int
}

// LineRenderer keeps a prompt and an edited line on screen in sync with the
// buffer. Cells are counted from the first prompt cell, row-major, cols per
// row; after every call the terminal cursor sits on the cell of the buffer
// cursor and never in the pending-wrap state.
type LineRenderer struct {
	out         Output
	cols        int
	prompt      []rune
	promptColor term.Color
	promptEnd   int
	state       State
}

// NewLineRenderer returns a renderer writing to out at the given width.
func NewLineRenderer(out Output, cols int) *LineRenderer {
	r := &LineRenderer{out: out}
	r.setCols(cols)
	return r
}

func (r *LineRenderer) setCols(cols int) {
	if cols < 2 {
		cols = 2
	}
	r.cols = cols
	r.promptEnd = r.layoutFrom(0, r.prompt)[len(r.prompt)]
}

// Cols returns the width the layout uses.
func (r *LineRenderer) Cols() int { return r.cols }

// State returns the last rendered cursor and length.
func (r *LineRenderer) State() State { return r.state }

// SetPromptColor sets the color DrawAll paints the prompt with.
func (r *LineRenderer) SetPromptColor(c term.Color) { r.promptColor = c }

// Begin starts a new line at the current terminal position, which must be
// the first column of a row. Nothing is drawn until the next refresh.
func (r *LineRenderer) Begin(prompt string) {
	r.prompt = []rune(prompt)
	r.promptEnd = r.layoutFrom(0, r.prompt)[len(r.prompt)]
	r.state = State{}
}

// Refresh reconciles the screen with text and cursor. changed is Unchanged,
// WholeLine, or the lowest offset whose content differs from the last render.
func (r *LineRenderer) Refresh(text []rune, cursor, changed int) Mode {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(text) {
		cursor = len(text)
	}
	switch {
	case changed == WholeLine:
		r.drawAll(text, cursor)
		return DrawAll
	case changed == Unchanged && len(text) == r.state.Length:
		r.moveOnly(text, cursor)
		return MoveOnly
	}
	if changed < 0 || changed > r.state.Length {
		changed = min(max(changed, 0), r.state.Length)
	}
	if changed > len(text) {
		changed = len(text)
	}
	r.drawFrom(text, cursor, changed)
	return DrawFromOffset
}

// Redraw repaints the prompt and the whole line.
func (r *LineRenderer) Redraw(text []rune, cursor int) {
	r.Refresh(text, cursor, WholeLine)
}

// Resize reflows the line for a new width: back to the first row, clear,
// draw everything.
func (r *LineRenderer) Resize(text []rune, cursor, cols int) {
	r.out.MoveCursor(-(r.state.cursorCell / r.cols), 0)
	r.out.WriteString("\r")
	r.out.ClearToEnd()
	r.setCols(cols)
	r.state = State{}
	r.drawAll(text, cursor)
}

// Finish moves below the line so the host can print after it.
func (r *LineRenderer) Finish(text []rune) {
	cells := r.layout(text)
	end := cells[len(text)]
	r.moveTo(end)
	if end > 0 && end%r.cols == 0 {
		r.out.WriteString("\r")
	} else {
		r.out.WriteString("\r\n")
	}
	r.state = State{}
}

// VerticalTarget returns the buffer offset one wrapped row above (dir < 0)
// or below (dir > 0) the cursor, and false when there is no such row.
func (r *LineRenderer) VerticalTarget(text []rune, cursor, dir int) (int, bool) {
	cells := r.layout(text)
	target := cells[cursor] - r.cols
	if dir > 0 {
		target = cells[cursor] + r.cols
	}
	if target/r.cols < r.promptEnd/r.cols || target/r.cols > cells[len(text)]/r.cols || target < 0 {
		return cursor, false
	}
	best := -1
	for i, c := range cells {
		if c/r.cols != target/r.cols {
			continue
		}
		if best == -1 || c <= target {
			best = i
		}
	}
	if best == -1 {
		return cursor, false
	}
	return best, true
}

func (r *LineRenderer) moveOnly(text []rune, cursor int) {
	cells := r.layout(text)
	r.moveTo(cells[cursor])
	r.state.Cursor = cursor
}

func (r *LineRenderer) drawFrom(text []rune, cursor, from int) {
	cells := r.layout(text)
	r.out.HideCursor(true)
	r.moveTo(cells[from])
	var b strings.Builder
	cell := r.appendRunes(&b, text, cells, from, cells[from])
	r.out.WriteString(b.String())
	r.finishDraw(text, cells, cursor, cell, b.Len() > 0)
}

func (r *LineRenderer) drawAll(text []rune, cursor int) {
	cells := r.layout(text)
	r.out.HideCursor(true)
	r.moveTo(0)
	wrote := false
	cell := 0
	if len(r.prompt) > 0 {
		var pb strings.Builder
		cell = r.appendRunes(&pb, r.prompt, r.layoutFrom(0, r.prompt), 0, 0)
		if !r.promptColor.Default() {
			r.out.SetColor(r.promptColor)
		}
		r.out.WriteString(pb.String())
		if !r.promptColor.Default() {
			r.out.SetColor(term.Color{})
		}
		wrote = true
	}
	var b strings.Builder
	cell = r.appendRunes(&b, text, cells, 0, cell)
	r.out.WriteString(b.String())
	r.finishDraw(text, cells, cursor, cell, wrote || b.Len() > 0)
}

// finishDraw blanks cells the previous render used past the new end, leaves
// the pending-wrap state, and parks the cursor.
func (r *LineRenderer) finishDraw(text []rune, cells []int, cursor, cell int, wrote bool) {
	end := cells[len(text)]
	if old := r.state.endCell; old > cell {
		r.out.WriteString(strings.Repeat(" ", old-cell))
		cell = old
		wrote = true
	}
	r.state.cursorCell = cell
	if wrote && cell > 0 && cell%r.cols == 0 {
		r.out.WriteString("\r\n")
	}
	r.moveTo(cells[cursor])
	r.out.HideCursor(false)
	r.state.Cursor = cursor
	r.state.Length = len(text)
	r.state.endCell = end
}

func (r *LineRenderer) moveTo(cell int) {
	cur := r.state.cursorCell
	r.out.MoveCursor(cell/r.cols-cur/r.cols, cell%r.cols-cur%r.cols)
	r.state.cursorCell = cell
}

// appendRunes renders text[from:] into b starting at cell, padding the
// cells a wide rune skipped at a row end. It returns the cell after the
// last rune.
func (r *LineRenderer) appendRunes(b *strings.Builder, text []rune, cells []int, from, cell int) int {
	for i := from; i < len(text); i++ {
		if gap := cells[i] - cell; gap > 0 {
			b.WriteString(strings.Repeat(" ", gap))
		}
		b.WriteString(textutil.CellText(text[i]))
		cell = cells[i] + textutil.CellWidth(text[i])
	}
	return cell
}

func (r *LineRenderer) layout(text []rune) []int {
	return r.layoutFrom(r.promptEnd, text)
}

// layoutFrom returns the start cell of every rune plus the cell after the
// last one. A rune that would straddle the right margin starts on the next
// row.
func (r *LineRenderer) layoutFrom(start int, text []rune) []int {
	cells := make([]int, len(text)+1)
	cell := start
	for i, ru := range text {
		w := textutil.CellWidth(ru)
		if col := cell % r.cols; col != 0 && col+w > r.cols {
			cell += r.cols - col
		}
		cells[i] = cell
		cell += w
	}
	cells[len(text)] = cell
	return cells
}
