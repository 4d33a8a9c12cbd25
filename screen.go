package rline

// Screen helpers for hosts that draw around the edited line. Each call
// reaches the terminal before it returns.

// ScreenSize returns the terminal height and width in cells.
func (e *Editor) ScreenSize() (rows, cols int) {
	return e.term.Size()
}

// ClearScreen erases the screen and homes the cursor.
func (e *Editor) ClearScreen() {
	e.term.ClearScreen()
	_ = e.term.Flush()
}

// MoveCursor moves the cursor by rowOff rows and colOff columns; negative
// values move up and left.
func (e *Editor) MoveCursor(rowOff, colOff int) {
	e.term.MoveCursor(rowOff, colOff)
	_ = e.term.Flush()
}

// HideCursor hides or shows the cursor.
func (e *Editor) HideCursor(hide bool) {
	e.term.HideCursor(hide)
	_ = e.term.Flush()
}

// SetColor switches the color of following output. The zero Color resets
// to the terminal default.
func (e *Editor) SetColor(c Color) {
	e.term.SetColor(c)
	_ = e.term.Flush()
}
