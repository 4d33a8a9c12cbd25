// Package edit holds the line being edited and every operation the editor
// applies to it.
package edit

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultDelimiters separate words for word motions and word cuts.
const DefaultDelimiters = " \t!\"#$%&'()*+,-./:;<=>?@[\\]^`{|}~"

const (
	// Unchanged means the text is untouched and only the cursor may have moved.
	Unchanged = -1
	// WholeLine asks for the prompt and the whole line to be redrawn.
	WholeLine = -2
)

// Result describes the buffer after an operation. Changed is Unchanged,
// WholeLine, or the lowest offset whose content changed.
type Result struct {
	Cursor  int
	Length  int
	Changed int
}

// Buffer is a line of text with a cursor. Offsets count runes.
type Buffer struct {
	text   []rune
	cursor int
	delims string
	clip   Clipboard
}

// NewBuffer returns an empty buffer that cuts into clip. An empty delims
// selects DefaultDelimiters.
func NewBuffer(delims string, clip Clipboard) *Buffer {
	if delims == "" {
		delims = DefaultDelimiters
	}
	if clip == nil {
		clip = &Slot{}
	}
	return &Buffer{delims: delims, clip: clip}
}

// String returns the current text.
func (b *Buffer) String() string { return string(b.text) }

// Runes returns the text. Callers must not modify it.
func (b *Buffer) Runes() []rune { return b.text }

// Len returns the text length in runes.
func (b *Buffer) Len() int { return len(b.text) }

// Cursor returns the cursor offset.
func (b *Buffer) Cursor() int { return b.cursor }

// SetDelimiters replaces the word delimiter set.
func (b *Buffer) SetDelimiters(delims string) {
	if delims == "" {
		delims = DefaultDelimiters
	}
	b.delims = delims
}

// IsDelimiter reports whether r separates words.
func (b *Buffer) IsDelimiter(r rune) bool {
	return strings.ContainsRune(b.delims, r)
}

func (b *Buffer) result(changed int) Result {
	return Result{Cursor: b.cursor, Length: len(b.text), Changed: changed}
}

func (b *Buffer) clampCursor() {
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor > len(b.text) {
		b.cursor = len(b.text)
	}
}

// Set replaces the text and puts the cursor at its end.
func (b *Buffer) Set(text string) Result {
	b.text = []rune(text)
	b.cursor = len(b.text)
	return b.result(WholeLine)
}

// MoveTo places the cursor at pos, clamped to the text.
func (b *Buffer) MoveTo(pos int) Result {
	b.cursor = pos
	b.clampCursor()
	return b.result(Unchanged)
}

// Insert types r at the cursor.
func (b *Buffer) Insert(r rune) Result {
	return b.InsertString(string(r))
}

// InsertString types s at the cursor.
func (b *Buffer) InsertString(s string) Result {
	ins := []rune(s)
	if len(ins) == 0 {
		return b.result(Unchanged)
	}
	at := b.cursor
	b.text = append(b.text[:at], append(ins, b.text[at:]...)...)
	b.cursor += len(ins)
	return b.result(at)
}

// Left moves one character back.
func (b *Buffer) Left() Result { return b.MoveTo(b.cursor - 1) }

// Right moves one character forward.
func (b *Buffer) Right() Result { return b.MoveTo(b.cursor + 1) }

// Home moves to the start of the line.
func (b *Buffer) Home() Result { return b.MoveTo(0) }

// End moves to the end of the line.
func (b *Buffer) End() Result { return b.MoveTo(len(b.text)) }

func (b *Buffer) wordStart(pos int) int {
	for pos > 0 && b.IsDelimiter(b.text[pos-1]) {
		pos--
	}
	for pos > 0 && !b.IsDelimiter(b.text[pos-1]) {
		pos--
	}
	return pos
}

func (b *Buffer) wordEnd(pos int) int {
	for pos < len(b.text) && b.IsDelimiter(b.text[pos]) {
		pos++
	}
	for pos < len(b.text) && !b.IsDelimiter(b.text[pos]) {
		pos++
	}
	return pos
}

// WordLeft moves to the start of the current or previous word.
func (b *Buffer) WordLeft() Result { return b.MoveTo(b.wordStart(b.cursor)) }

// WordRight moves past the end of the current or next word.
func (b *Buffer) WordRight() Result { return b.MoveTo(b.wordEnd(b.cursor)) }

func (b *Buffer) remove(start, end int) {
	b.text = append(b.text[:start], b.text[end:]...)
}

// DeleteBefore removes the character left of the cursor.
func (b *Buffer) DeleteBefore() Result {
	if b.cursor == 0 {
		return b.result(Unchanged)
	}
	b.cursor--
	b.remove(b.cursor, b.cursor+1)
	return b.result(b.cursor)
}

// DeleteAt removes the character under the cursor.
func (b *Buffer) DeleteAt() Result {
	if b.cursor >= len(b.text) {
		return b.result(Unchanged)
	}
	b.remove(b.cursor, b.cursor+1)
	return b.result(b.cursor)
}

// CutRange moves [start,end) into the clipboard. The cursor lands on start.
func (b *Buffer) CutRange(start, end int) Result {
	if start < 0 {
		start = 0
	}
	if end > len(b.text) {
		end = len(b.text)
	}
	if start >= end {
		return b.result(Unchanged)
	}
	b.clip.Set(string(b.text[start:end]))
	b.remove(start, end)
	b.cursor = start
	return b.result(start)
}

// CutToEnd cuts from the cursor to the end of the line.
func (b *Buffer) CutToEnd() Result { return b.CutRange(b.cursor, len(b.text)) }

// CutToStart cuts from the start of the line to the cursor.
func (b *Buffer) CutToStart() Result { return b.CutRange(0, b.cursor) }

// CutLine cuts the whole line.
func (b *Buffer) CutLine() Result { return b.CutRange(0, len(b.text)) }

// CutWordBefore cuts back to the start of the previous word.
func (b *Buffer) CutWordBefore() Result {
	return b.CutRange(b.wordStart(b.cursor), b.cursor)
}

// CutSpaceWordBefore cuts back to the previous whitespace, treating
// punctuation as part of the word.
func (b *Buffer) CutSpaceWordBefore() Result {
	pos := b.cursor
	for pos > 0 && unicode.IsSpace(b.text[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(b.text[pos-1]) {
		pos--
	}
	return b.CutRange(pos, b.cursor)
}

// CutWordAfter cuts forward to the end of the next word.
func (b *Buffer) CutWordAfter() Result {
	return b.CutRange(b.cursor, b.wordEnd(b.cursor))
}

// Paste inserts the clipboard at the cursor.
func (b *Buffer) Paste() Result {
	return b.InsertString(b.clip.Get())
}

// Transpose swaps the characters around the cursor, or the two before it
// when the cursor is at the end. Delimiters are never swapped.
func (b *Buffer) Transpose() Result {
	n, pos := len(b.text), b.cursor
	switch {
	case pos > 0 && pos < n && !b.IsDelimiter(b.text[pos-1]) && !b.IsDelimiter(b.text[pos]):
		b.text[pos-1], b.text[pos] = b.text[pos], b.text[pos-1]
		b.cursor = pos + 1
		return b.result(pos - 1)
	case pos > 1 && pos == n && !b.IsDelimiter(b.text[pos-2]) && !b.IsDelimiter(b.text[pos-1]):
		b.text[pos-2], b.text[pos-1] = b.text[pos-1], b.text[pos-2]
		return b.result(pos - 2)
	}
	return b.result(Unchanged)
}

// caseWord rewrites the word at or after the cursor with fn and leaves the
// cursor after it.
func (b *Buffer) caseWord(fn func(string) string) Result {
	start := b.cursor
	for start < len(b.text) && b.IsDelimiter(b.text[start]) {
		start++
	}
	end := start
	for end < len(b.text) && !b.IsDelimiter(b.text[end]) {
		end++
	}
	if start == end {
		b.cursor = end
		return b.result(Unchanged)
	}
	word := []rune(fn(string(b.text[start:end])))
	b.text = append(b.text[:start], append(word, b.text[end:]...)...)
	b.cursor = start + len(word)
	return b.result(start)
}

// UpperWord upper-cases from the cursor to the end of the word.
func (b *Buffer) UpperWord() Result {
	return b.caseWord(cases.Upper(language.Und).String)
}

// LowerWord lower-cases from the cursor to the end of the word.
func (b *Buffer) LowerWord() Result {
	return b.caseWord(cases.Lower(language.Und).String)
}

// CapitalizeWord upper-cases the first letter of the word and lower-cases
// the rest.
func (b *Buffer) CapitalizeWord() Result {
	return b.caseWord(func(s string) string {
		r := []rune(cases.Lower(language.Und).String(s))
		for i, c := range r {
			if unicode.IsLetter(c) || unicode.IsDigit(c) {
				head := cases.Title(language.Und, cases.NoLower).String(string(c))
				return string(r[:i]) + head + string(r[i+1:])
			}
		}
		return string(r)
	})
}

// TrimSpace removes the run of spaces on each side of the cursor.
func (b *Buffer) TrimSpace() Result {
	start, end := b.cursor, b.cursor
	for start > 0 && unicode.IsSpace(b.text[start-1]) {
		start--
	}
	for end < len(b.text) && unicode.IsSpace(b.text[end]) {
		end++
	}
	if start == end {
		return b.result(Unchanged)
	}
	b.remove(start, end)
	b.cursor = start
	return b.result(start)
}

// Revert empties the line.
func (b *Buffer) Revert() Result {
	if len(b.text) == 0 {
		return b.result(Unchanged)
	}
	b.text = b.text[:0]
	b.cursor = 0
	return b.result(0)
}

// Replace swaps [start,end) for text. A cursor at or past end shifts with
// the tail; a cursor inside the span lands after the new text.
func (b *Buffer) Replace(start, end int, text string) Result {
	n := len(b.text)
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	ins := []rune(text)
	tail := append([]rune(nil), b.text[end:]...)
	b.text = append(append(b.text[:start], ins...), tail...)
	delta := len(ins) - (end - start)
	if b.cursor >= end {
		b.cursor += delta
	} else if b.cursor > start {
		b.cursor = start + len(ins)
	}
	b.clampCursor()
	return b.result(start)
}
