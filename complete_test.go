package rline

import (
	"strings"
	"testing"

	"github.com/kk-code-lab/rline/internal/complete"
)

var vocabulary = []string{"select", "selectx", "sel", "show"}

func testCompleter() Completer {
	return CompleterFunc(func(text string, cursor int, set *Completions) {
		if strings.HasPrefix(text, "echo ") {
			set.SetHint("<text>", Color{})
			return
		}
		word := string([]rune(text)[set.Start:set.End])
		if word == "fi" {
			set.AddCandidate(Candidate{Word: "file name", Quote: true})
			return
		}
		for _, w := range vocabulary {
			if strings.HasPrefix(w, word) {
				set.Add(w, "")
			}
		}
	})
}

func TestCompletion(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want string
	}{
		{"single candidate", "sho\t\r", "show"},
		{"prefix then pick", "se\t2\r", "selectx"},
		{"cancel keeps prefix", "se\t\r\r", "sel"},
		{"unknown key is rejected", "se\tz\r\r", "sel"},
		{"list key with one candidate", "sho\x1b=1\r", "show"},
		{"quoted candidate", "cat fi\t\r", `cat "file name"`},
		{"word after delimiter", "x=sho\t\r", "x=show"},
		{"no candidates", "zz\t\r", "zz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEditor(t, tt.keys, testEditorOptions{completer: testCompleter()})
			if got := readLine(t, e, "> "); got != tt.want {
				t.Fatalf("line=%q want %q", got, tt.want)
			}
		})
	}
}

func TestCompletionListAndPrompt(t *testing.T) {
	e, out := newTestEditor(t, "se\t\r\r", testEditorOptions{completer: testCompleter()})
	readLine(t, e, "> ")
	s := out.String()
	for _, want := range []string{"1: select", "2: selectx", "3: sel", matchPrompt} {
		if !strings.Contains(s, want) {
			t.Fatalf("output missing %q: %q", want, s)
		}
	}
	if strings.Contains(s, "show") {
		t.Fatalf("non-matching candidate listed: %q", s)
	}
}

func TestCompletionHintOnly(t *testing.T) {
	e, out := newTestEditor(t, "echo \t\r", testEditorOptions{completer: testCompleter()})
	if got := readLine(t, e, "> "); got != "echo " {
		t.Fatalf("line=%q", got)
	}
	s := out.String()
	if !strings.Contains(s, complete.HintLabel+"<text>") {
		t.Fatalf("hint not shown: %q", s)
	}
	if strings.Contains(s, matchPrompt) {
		t.Fatalf("hint-only completion should not ask for a selection")
	}
}

func TestCompletionWithoutCompleterRingsBell(t *testing.T) {
	e, out := newTestEditor(t, "ab\t\r", testEditorOptions{})
	if got := readLine(t, e, "> "); got != "ab" {
		t.Fatalf("line=%q", got)
	}
	if !strings.Contains(out.String(), "\a") {
		t.Fatalf("expected bell")
	}
}

func TestCompletionSpanSetByCompleter(t *testing.T) {
	c := CompleterFunc(func(text string, cursor int, set *Completions) {
		set.Setup(0, len([]rune(text)))
		set.Add("replaced", "")
	})
	e, _ := newTestEditor(t, "some text\x01\t\r", testEditorOptions{completer: c})
	if got := readLine(t, e, "> "); got != "replaced" {
		t.Fatalf("line=%q want replaced", got)
	}
}

func TestCompleterChangesDelimitersOfLiveLine(t *testing.T) {
	e, _ := newTestEditor(t, "x=abc\t\x1b\x7f\r", testEditorOptions{})
	e.SetCompleter(CompleterFunc(func(string, int, *Completions) {
		e.SetDelimiters(" ")
	}))
	if got := readLine(t, e, "> "); got != "" {
		t.Fatalf("line=%q want word cut across =", got)
	}
	if e.line != nil {
		t.Fatalf("live line kept after ReadLine returned")
	}
	if e.delims != " " {
		t.Fatalf("delims=%q want space", e.delims)
	}
}
