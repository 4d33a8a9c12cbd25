package rline

import (
	"errors"
	"io"
	"strings"

	"github.com/kk-code-lab/rline/internal/edit"
	"github.com/kk-code-lab/rline/internal/history"
	"github.com/kk-code-lab/rline/internal/term"
	"github.com/kk-code-lab/rline/internal/ui/input"
	"github.com/kk-code-lab/rline/internal/ui/render"
)

// ReadLine shows prompt and returns the edited line. ok is false when input
// ended or the user aborted; the line is then empty.
func (e *Editor) ReadLine(prompt string) (line string, ok bool) {
	return e.ReadLineWithInput(prompt, "")
}

// ReadLineWithInput is ReadLine with the line pre-filled with text.
func (e *Editor) ReadLineWithInput(prompt, text string) (line string, ok bool) {
	line, err := e.ReadLineErr(prompt, text)
	if err != nil {
		return "", false
	}
	return line, true
}

// ReadLineErr is ReadLineWithInput reporting why no line was read: io.EOF,
// ErrAborted, or a terminal error. Accepted non-empty lines are added to
// the history.
func (e *Editor) ReadLineErr(prompt, text string) (string, error) {
	if !e.term.Interactive() {
		e.term.WriteString(prompt)
		_ = e.term.Flush()
		return e.term.ReadLine()
	}
	stop := e.watchResize()
	defer stop()

	line, err := e.editLoop(prompt, text, loopOptions{})
	if err != nil {
		return "", err
	}
	if line != "" {
		history.Add(e.history, line)
	}
	return line, nil
}

// loopOptions shape a nested edit loop.
type loopOptions struct {
	// choices, when set, accepts the first typed key that is one of them.
	choices string
	// nested disables history, completion and listing keys.
	nested bool
	// help replaces the F1 shortcut list.
	help []helpEntry
}

// session is the state of one edit loop invocation.
type session struct {
	e      *Editor
	prompt string
	opts   loopOptions
	buf    *edit.Buffer
	r      *render.LineRenderer
	nav    *history.Navigator
}

func (e *Editor) editLoop(prompt, text string, opts loopOptions) (string, error) {
	_, cols := e.term.Size()
	s := &session{
		e:      e,
		prompt: prompt,
		opts:   opts,
		buf:    edit.NewBuffer(e.delims, e.clip),
		r:      render.NewLineRenderer(e.term, cols),
		nav:    history.NewNavigator(e.history),
	}
	prev := e.line
	e.line = s.buf
	defer func() { e.line = prev }()
	s.r.SetPromptColor(e.promptColor)
	s.r.Begin(prompt)
	res := s.buf.Set(text)
	s.refresh(res)

	for {
		_ = e.term.Flush()
		ev, err := e.decoder.Next()
		if e.resized.Swap(false) {
			_, cols := e.term.Size()
			debugf("resize cols=%d", cols)
			s.r.Resize(s.buf.Runes(), s.buf.Cursor(), cols)
		}
		if errors.Is(err, term.ErrInterrupted) {
			continue
		}
		if err != nil {
			s.finish()
			return "", err
		}
		debugf("key %v raw=%q", ev.Key, ev.Raw)

		if opts.choices != "" && ev.Key.Printable() {
			if !strings.ContainsRune(opts.choices, rune(ev.Key)) {
				e.term.Bell()
				continue
			}
			s.refresh(s.buf.Insert(rune(ev.Key)))
			s.finish()
			return s.buf.String(), nil
		}

		line, done, err := s.dispatch(ev)
		if done {
			return line, err
		}
	}
}

func (s *session) refresh(res edit.Result) {
	mode := s.r.Refresh(s.buf.Runes(), res.Cursor, res.Changed)
	debugf("refresh mode=%v cursor=%d len=%d", mode, res.Cursor, res.Length)
}

// finish moves below the line and ends it.
func (s *session) finish() {
	s.r.Finish(s.buf.Runes())
	_ = s.e.term.Flush()
}

// below runs fn with the cursor on a fresh line under the edited line, then
// draws the prompt and line again.
func (s *session) below(fn func()) {
	s.finish()
	s.e.pager.Reset()
	fn()
	_ = s.e.term.Flush()
	s.redraw()
}

func (s *session) redraw() {
	s.r.SetPromptColor(s.e.promptColor)
	s.r.Begin(s.prompt)
	s.r.Redraw(s.buf.Runes(), s.buf.Cursor())
}

func (s *session) unchanged() edit.Result {
	return edit.Result{Cursor: s.buf.Cursor(), Length: s.buf.Len(), Changed: edit.Unchanged}
}

// dispatch applies one key. done reports that the loop must return line and err.
func (s *session) dispatch(ev input.KeyEvent) (line string, done bool, err error) {
	e, buf := s.e, s.buf
	k := ev.Key
	nested := s.opts.nested
	res := s.unchanged()

	switch {
	case k.Printable():
		res = buf.Insert(rune(k))

	// motion
	case k == input.Ctrl('b') || k == input.KeyLeft:
		res = buf.Left()
	case k == input.Ctrl('f') || k == input.KeyRight:
		res = buf.Right()
	case k == input.Alt('b') || k == input.KeyCtrlLeft || k == input.Alt(input.KeyLeft):
		res = buf.WordLeft()
	case k == input.Alt('f') || k == input.KeyCtrlRight || k == input.Alt(input.KeyRight):
		res = buf.WordRight()
	case k == input.Ctrl('a') || k == input.KeyHome:
		res = buf.Home()
	case k == input.Ctrl('e') || k == input.KeyEnd:
		res = buf.End()
	case k == input.KeyCtrlUp || k == input.Alt(input.KeyUp):
		res, _ = s.vertical(-1)
	case k == input.KeyCtrlDown || k == input.Alt(input.KeyDown):
		res, _ = s.vertical(1)

	// deletion and cuts
	case k == input.KeyBackspace:
		res = buf.DeleteBefore()
	case k == input.Ctrl('d') && buf.Len() == 0:
		s.finish()
		return "", true, io.EOF
	case k == input.Ctrl('d') || k == input.KeyDelete:
		res = buf.DeleteAt()
	case k == input.Ctrl('k') || k == input.ModCtrl|input.KeyEnd || k == input.Alt(input.KeyEnd):
		res = buf.CutToEnd()
	case k == input.Ctrl('u') || k == input.ModCtrl|input.KeyHome || k == input.Alt(input.KeyHome):
		res = buf.CutToStart()
	case k == input.Ctrl('x'):
		res = buf.CutLine()
	case k == input.Ctrl('w'):
		res = buf.CutSpaceWordBefore()
	case k == input.KeyAltBackspace || k == input.Ctrl('_'):
		res = buf.CutWordBefore()
	case k == input.Alt('d') || k == input.Alt(input.KeyDelete) || k == input.ModCtrl|input.KeyDelete:
		res = buf.CutWordAfter()
	case k == input.Ctrl('y') || k == input.Ctrl('v') || k == input.KeyInsert:
		res = buf.Paste()

	// rewrites
	case k == input.Alt('u'):
		res = buf.UpperWord()
	case k == input.Alt('l'):
		res = buf.LowerWord()
	case k == input.Alt('c'):
		res = buf.CapitalizeWord()
	case k == input.Alt('\\'):
		res = buf.TrimSpace()
	case k == input.Ctrl('t'):
		res = buf.Transpose()
	case k == input.Alt('r') || k == input.KeyEsc:
		res = buf.Revert()

	// completion
	case k == input.KeyTab && !nested:
		s.complete(false)
		return "", false, nil
	case (k == input.Alt('=') || k == input.Alt('?')) && !nested:
		s.complete(true)
		return "", false, nil

	// history
	case k == input.KeyUp && !nested:
		if buf.Cursor() < buf.Len() {
			if r, ok := s.vertical(-1); ok {
				res = r
				break
			}
		}
		res = s.older()
	case k == input.Ctrl('p') && !nested:
		res = s.older()
	case k == input.KeyDown && !nested:
		if buf.Cursor() < buf.Len() {
			if r, ok := s.vertical(1); ok {
				res = r
				break
			}
		}
		res = s.newer()
	case k == input.Ctrl('n') && !nested:
		res = s.newer()
	case (k == input.Alt('<') || k == input.KeyPgUp) && !nested:
		res = s.recall(s.nav.First(buf.String()))
	case (k == input.Alt('>') || k == input.KeyPgDn) && !nested:
		res = s.recall(s.nav.Last())
	case (k == input.Ctrl('r') || k == input.Ctrl('s')) && !nested:
		s.searchHistory("")
		return "", false, nil
	case k == input.KeyF4 && !nested:
		s.searchHistory(buf.String())
		return "", false, nil
	case k == input.KeyF2 && !nested:
		if e.history.Len() > 0 {
			s.below(e.printHistory)
		}
		return "", false, nil
	case k == input.KeyF3 && !nested:
		s.below(s.confirmClearHistory)
		return "", false, nil

	// screen and control
	case k == input.KeyF1:
		s.below(func() { e.printHelp(s.helpEntries()) })
		return "", false, nil
	case k == input.Ctrl('^'):
		s.below(e.keyboardDebug)
		return "", false, nil
	case k == input.Ctrl('l'):
		e.term.ClearScreen()
		s.redraw()
		return "", false, nil
	case k == input.Ctrl('z'):
		s.finish()
		if err := suspend(); err != nil {
			debugf("suspend: %v", err)
		}
		s.redraw()
		return "", false, nil
	case k == input.KeyEnter || k == input.KeyLF:
		s.finish()
		return buf.String(), true, nil
	case k == input.Ctrl('c'):
		// ^C is drawn as part of the line so Finish knows where it ends.
		shown := append(append([]rune(nil), buf.Runes()...), '^', 'C')
		s.r.Refresh(shown, len(shown), buf.Len())
		s.r.Finish(shown)
		_ = e.term.Flush()
		return "", true, ErrAborted
	case k == input.Ctrl('g'):
		s.finish()
		return "", true, ErrAborted
	}
	s.refresh(res)
	return "", false, nil
}

// vertical moves the cursor one wrapped row up or down.
func (s *session) vertical(dir int) (edit.Result, bool) {
	target, ok := s.r.VerticalTarget(s.buf.Runes(), s.buf.Cursor(), dir)
	if !ok {
		return s.unchanged(), false
	}
	return s.buf.MoveTo(target), true
}

func (s *session) older() edit.Result {
	return s.recall(s.nav.Older(s.buf.String()))
}

func (s *session) newer() edit.Result {
	return s.recall(s.nav.Newer())
}

// recall shows a history entry, or rings the bell when there is none.
func (s *session) recall(text string, ok bool) edit.Result {
	if !ok {
		s.e.term.Bell()
		return s.unchanged()
	}
	return s.buf.Set(text)
}
