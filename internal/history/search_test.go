package history

import (
	"fmt"
	"testing"

	"github.com/kk-code-lab/rline/internal/selectkey"
)

func TestSearchDirectionAndKeys(t *testing.T) {
	l := logOf("select a", "show b", "select c", "Select d")
	got := Search(l, Query{Pattern: "select"})
	if len(got) != 2 || got[0].Index != 0 || got[1].Index != 2 {
		t.Fatalf("oldest-first matches = %+v", got)
	}
	if got[0].Key != '1' || got[1].Key != '2' {
		t.Fatalf("keys = %q %q", got[0].Key, got[1].Key)
	}
	got = Search(l, Query{Pattern: "select", NewestFirst: true})
	if len(got) != 2 || got[0].Text != "select c" || got[1].Text != "select a" {
		t.Fatalf("newest-first matches = %+v", got)
	}
}

func TestSearchLimitAndUnique(t *testing.T) {
	l := logOf("ls", "ls", "pwd", "ls -l", "ls")
	got := Search(l, Query{Pattern: "ls", Unique: true, NewestFirst: true})
	if len(got) != 2 || got[0].Text != "ls" || got[1].Text != "ls -l" {
		t.Fatalf("unique matches = %+v", got)
	}
	got = Search(l, Query{Pattern: "ls", Limit: 2})
	if len(got) != 2 {
		t.Fatalf("limited matches = %d want 2", len(got))
	}
	if got := Search(l, Query{Pattern: "nothing"}); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestSearchCappedBySelectionKeys(t *testing.T) {
	l := NewLog()
	for i := 0; i < 100; i++ {
		l.Append(fmt.Sprintf("cmd %d", i))
	}
	got := Search(l, Query{Pattern: "cmd", Limit: 500})
	if len(got) != selectkey.Max {
		t.Fatalf("matches = %d want %d", len(got), selectkey.Max)
	}
	if got[len(got)-1].Key != 'Z' {
		t.Fatalf("last key = %q want Z", got[len(got)-1].Key)
	}
}
