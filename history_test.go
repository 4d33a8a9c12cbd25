package rline

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/rline/internal/term"
)

func TestHistorySearch(t *testing.T) {
	entries := []string{"select a", "show b", "select c"}
	tests := []struct {
		name string
		keys string
		want string
	}{
		{"newest first", "\x12select\r1\r", "select c"},
		{"second match", "\x13select\r2\r", "select a"},
		{"current input as pattern", "show\x1b[14~1\r", "show b"},
		{"no match", "\x12zzz\r\r", ""},
		{"cancel selection", "draft\x12select\r\r\r", "draft"},
		{"pattern goes to clipboard", "\x12show\r1\x19\r", "show bshow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, tt.keys, testEditorOptions{history: entries})
			if got := readLine(t, e, "> "); got != tt.want {
				t.Fatalf("line=%q want %q", got, tt.want)
			}
		})
	}
}

func TestHistorySearchListsUniqueMatches(t *testing.T) {
	e, out := newTestEditor(t, "\x12ls\r2\r\r", testEditorOptions{history: []string{"ls -l", "pwd", "ls -l"}})
	e.SetSearchOptions(16, true)
	if got := readLine(t, e, "> "); got != "" {
		t.Fatalf("line=%q want empty after rejected key", got)
	}
	s := out.String()
	if !strings.Contains(s, "   1:  ") || strings.Contains(s, "   2:  ") {
		t.Fatalf("expected exactly one listed match: %q", s)
	}
}

func TestHistorySearchHelp(t *testing.T) {
	e, out := newTestEditor(t, "\x12\x1bOP\r\r", testEditorOptions{history: []string{"a"}})
	readLine(t, e, "> ")
	s := out.String()
	if !strings.Contains(s, searchPrompt) || !strings.Contains(s, "case-sensitive") {
		t.Fatalf("search help not shown: %q", s)
	}
	if strings.Contains(s, "Move Commands") {
		t.Fatalf("edit help shown inside search prompt")
	}
}

func TestShowAndClearHistory(t *testing.T) {
	e, out := newTestEditor(t, "\x1b[12~\x1b[13~n\r", testEditorOptions{history: []string{"a", "b"}})
	readLine(t, e, "> ")
	if !strings.Contains(out.String(), "   1:  a\n   2:  b\n") {
		t.Fatalf("history not shown: %q", out.String())
	}
	if e.HistoryCount() != 2 {
		t.Fatalf("declined clear removed history")
	}

	e, out = newTestEditor(t, "\x1b[13~y\x10\r", testEditorOptions{history: []string{"a", "b"}})
	if got := readLine(t, e, "> "); got != "" {
		t.Fatalf("line=%q want empty history recall", got)
	}
	if e.HistoryCount() != 0 {
		t.Fatalf("HistoryCount=%d want 0", e.HistoryCount())
	}
	if !strings.Contains(out.String(), clearConfirmation) {
		t.Fatalf("missing confirmation prompt")
	}
}

func TestHistoryLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	e, _ := newTestEditor(t, "", testEditorOptions{})
	e.HistoryAdd("select")
	e.HistoryAdd("select")
	e.HistoryAdd("show")
	if err := e.HistorySave(path); err != nil {
		t.Fatalf("HistorySave: %v", err)
	}

	loaded, _ := newTestEditor(t, "\x10\x10\r", testEditorOptions{})
	if err := loaded.HistoryLoad(path); err != nil {
		t.Fatalf("HistoryLoad: %v", err)
	}
	if loaded.HistoryCount() != 2 {
		t.Fatalf("HistoryCount=%d want 2", loaded.HistoryCount())
	}
	if got := readLine(t, loaded, "> "); got != "select" {
		t.Fatalf("recalled %q want select", got)
	}

	before := loaded.HistoryCount()
	if err := loaded.HistoryLoad(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if loaded.HistoryCount() != before {
		t.Fatalf("failed load changed history")
	}
}

func TestHistoryShowPages(t *testing.T) {
	var entries []string
	for i := 0; i < 20; i++ {
		entries = append(entries, "entry")
	}
	e, out := newTestEditor(t, "q", testEditorOptions{rows: 5, history: entries, paging: true})
	e.HistoryShow()
	if n := strings.Count(out.String(), "entry"); n != 5 {
		t.Fatalf("printed %d entries before stop, want 5", n)
	}
}

type wakingReader struct {
	wakes int
	data  string
}

func (r *wakingReader) ReadByte() (byte, error) {
	if r.wakes > 0 {
		r.wakes--
		return 0, term.ErrInterrupted
	}
	if r.data == "" {
		return 0, io.EOF
	}
	b := r.data[0]
	r.data = r.data[1:]
	return b, nil
}

func TestReadReplyWaitsThroughResize(t *testing.T) {
	r := &wakingReader{wakes: 3, data: "y"}
	b, err := readReply(r)
	if err != nil || b != 'y' {
		t.Fatalf("readReply=%q,%v want y", b, err)
	}
	if _, err := readReply(r); err != io.EOF {
		t.Fatalf("readReply err=%v want EOF", err)
	}
}
