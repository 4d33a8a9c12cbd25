package rline

import (
	"github.com/kk-code-lab/rline/internal/complete"
	"github.com/kk-code-lab/rline/internal/selectkey"
)

const matchPrompt = "Input match id: "

// complete runs the completer for the line. Tab with one candidate
// inserts it; with several it first inserts their common prefix and then
// lists them. listOnly always lists.
func (s *session) complete(listOnly bool) {
	e, buf := s.e, s.buf
	if e.completer == nil {
		e.term.Bell()
		return
	}
	set := &complete.Set{}
	set.Setup(s.wordStart(), buf.Cursor())
	e.completer.Complete(buf.String(), buf.Cursor(), set)
	if set.Len() == 0 && set.Hint == "" {
		e.term.Bell()
		return
	}
	start, end := set.Span(buf.Len())

	if !listOnly && set.Len() == 1 {
		s.refresh(buf.Replace(start, end, set.Candidates[0].Text()))
		return
	}
	if !listOnly && set.Len() > 1 {
		if prefix := set.CommonPrefix(); prefix != "" {
			s.refresh(buf.Replace(start, end, prefix))
			end = start + len([]rune(prefix))
		}
	}

	s.finish()
	e.pager.Reset()
	shown := complete.List(e.term, set, s.r.Cols(), e.pager.Check)
	if shown > 0 {
		if i, ok := e.choose(shown); ok {
			buf.Replace(start, end, set.Candidates[i].Text())
		}
	}
	s.redraw()
}

// wordStart is the default replacement start: the beginning of the run of
// non-delimiters ending at the cursor.
func (s *session) wordStart() int {
	text := s.buf.Runes()
	i := s.buf.Cursor()
	for i > 0 && !s.buf.IsDelimiter(text[i-1]) {
		i--
	}
	return i
}

// choose prompts for the selection key of one of the first n listed
// entries and returns its index.
func (e *Editor) choose(n int) (int, bool) {
	key, err := e.editLoop(matchPrompt, "", loopOptions{choices: selectkey.Choices(n), nested: true})
	if err != nil || key == "" {
		return 0, false
	}
	i := selectkey.Index([]rune(key)[0])
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}
