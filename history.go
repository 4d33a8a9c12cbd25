package rline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rline/internal/history"
	"github.com/kk-code-lab/rline/internal/term"
	"github.com/kk-code-lab/rline/internal/textutil"
)

const (
	searchPrompt      = "History Search: "
	clearConfirmation = "!!! Confirm to clear history [y]: "
)

// matchColor highlights the pattern inside listed search results.
var matchColor = Color{Fg: tcell.ColorYellow}

// HistoryLoad appends the entries of the file at path. On failure the
// history is unchanged.
func (e *Editor) HistoryLoad(path string) error {
	if err := e.history.Load(path); err != nil {
		debugf("history load %s: %v", path, err)
		return err
	}
	return nil
}

// HistorySave writes the history to path, one entry per line.
func (e *Editor) HistorySave(path string) error {
	if err := e.history.Save(path); err != nil {
		debugf("history save %s: %v", path, err)
		return err
	}
	return nil
}

// HistoryAdd records text unless it repeats the newest entry.
func (e *Editor) HistoryAdd(text string) bool {
	return history.Add(e.history, text)
}

// HistoryClear drops every entry.
func (e *Editor) HistoryClear() {
	e.history.Clear()
}

// HistoryDelete removes n entries starting at index, numbered from 1 the
// way HistoryShow lists them, and returns how many were removed.
func (e *Editor) HistoryDelete(index, n int) int {
	return e.history.Delete(index-1, n)
}

// HistoryCount returns the number of entries.
func (e *Editor) HistoryCount() int {
	return e.history.Len()
}

// HistoryShow prints the numbered history, oldest first, pausing per page.
func (e *Editor) HistoryShow() {
	e.pager.Reset()
	e.printHistory()
	_ = e.term.Flush()
}

func (e *Editor) printHistory() {
	for i := 0; i < e.history.Len(); i++ {
		line := fmt.Sprintf("%4d:  %s", i+1, textutil.SanitizeTerminalText(e.history.At(i)))
		e.term.WriteString(line + "\n")
		if e.pager.Check(textutil.StringWidth(line)) {
			return
		}
	}
}

// Print writes text to the terminal.
func (e *Editor) Print(text string) {
	e.term.WriteString(text)
	_ = e.term.Flush()
}

// Printf formats to the terminal.
func (e *Editor) Printf(format string, args ...interface{}) {
	e.term.Printf(format, args...)
	_ = e.term.Flush()
}

// searchHistory lists the entries containing pattern, asking for one when
// pattern is empty, and puts the chosen entry in the line.
func (s *session) searchHistory(pattern string) {
	e := s.e
	s.finish()
	e.pager.Reset()
	defer s.redraw()

	if pattern == "" {
		p, err := e.editLoop(searchPrompt, "", loopOptions{nested: true, help: searchHelp})
		if err != nil || p == "" {
			return
		}
		pattern = p
	}
	e.clip.Set(pattern)

	matches := history.Search(e.history, history.Query{
		Pattern:     pattern,
		Limit:       e.searchLimit,
		NewestFirst: true,
		Unique:      e.searchUnique,
	})
	if len(matches) == 0 {
		e.term.Bell()
		return
	}
	shown := e.printMatches(matches, pattern)
	if shown == 0 {
		return
	}
	i, ok := e.choose(shown)
	if !ok {
		return
	}
	s.buf.Set(matches[i].Text)
	s.nav.Reset()
}

// printMatches lists search results with the pattern highlighted and
// returns how many were printed before paging stopped.
func (e *Editor) printMatches(matches []history.Match, pattern string) int {
	for n, m := range matches {
		text := textutil.SanitizeTerminalText(m.Text)
		label := fmt.Sprintf("%4c:  ", m.Key)
		e.term.WriteString(label)
		for {
			i := strings.Index(text, pattern)
			if i < 0 {
				break
			}
			e.term.WriteString(text[:i])
			e.term.SetColor(matchColor)
			e.term.WriteString(pattern)
			e.term.ResetColor()
			text = text[i+len(pattern):]
		}
		e.term.WriteString(text + "\n")
		if e.pager.Check(textutil.StringWidth(label + textutil.SanitizeTerminalText(m.Text))) {
			return n + 1
		}
	}
	return len(matches)
}

// readReply reads a one-key answer. A resize while waiting is not an answer.
func readReply(r io.ByteReader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if !errors.Is(err, term.ErrInterrupted) {
			return b, err
		}
	}
}

// confirmClearHistory clears the history when the user answers y.
func (s *session) confirmClearHistory() {
	e := s.e
	e.term.WriteString(clearConfirmation)
	_ = e.term.Flush()
	b, err := readReply(e.term)
	e.term.WriteString("\n")
	if err != nil || b != 'y' {
		return
	}
	e.HistoryClear()
	s.nav.Reset()
	e.term.WriteString("History cleared.\n")
}
