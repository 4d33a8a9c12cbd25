// Package complete collects completion candidates for the word under the
// cursor and renders them for selection.
package complete

import (
	"github.com/kk-code-lab/rline/internal/term"
)

// Candidate is one completion offered for the replacement span.
type Candidate struct {
	Word string
	Help string
	// Quote wraps Word in double quotes when it is inserted.
	Quote     bool
	WordColor term.Color
	HelpColor term.Color
}

// Text returns what inserting the candidate puts into the line.
func (c Candidate) Text() string {
	if c.Quote {
		return `"` + c.Word + `"`
	}
	return c.Word
}

// Set is the result of one completion request. Start and End delimit the
// half-open rune span a chosen candidate replaces.
type Set struct {
	Candidates []Candidate
	Hint       string
	HintColor  term.Color
	Start      int
	End        int
}

// Producer fills set with candidates for text at cursor. It must not keep
// references to set after returning.
type Producer interface {
	Complete(text string, cursor int, set *Set)
}

// ProducerFunc adapts a function to Producer.
type ProducerFunc func(text string, cursor int, set *Set)

func (f ProducerFunc) Complete(text string, cursor int, set *Set) { f(text, cursor, set) }

// Setup sets the replacement span.
func (s *Set) Setup(start, end int) {
	s.Start, s.End = start, end
}

// Add appends a plain candidate with optional help text.
func (s *Set) Add(word, help string) {
	s.Candidates = append(s.Candidates, Candidate{Word: word, Help: help})
}

// AddCandidate appends a fully described candidate.
func (s *Set) AddCandidate(c Candidate) {
	s.Candidates = append(s.Candidates, c)
}

// SetHint sets the syntax hint shown instead of, or above, the candidates.
func (s *Set) SetHint(hint string, color term.Color) {
	s.Hint = hint
	s.HintColor = color
}

// Len returns the number of candidates.
func (s *Set) Len() int { return len(s.Candidates) }

// HasHelp reports whether any candidate carries help text.
func (s *Set) HasHelp() bool {
	for _, c := range s.Candidates {
		if c.Help != "" {
			return true
		}
	}
	return false
}

// Span returns the replacement span clamped so start <= end <= length.
func (s *Set) Span(length int) (start, end int) {
	start, end = s.Start, s.End
	if end > length {
		end = length
	}
	if end < 0 {
		end = 0
	}
	if start > end {
		start = end
	}
	if start < 0 {
		start = 0
	}
	return start, end
}

// CommonPrefix returns the longest prefix shared by every candidate word,
// compared case-sensitively rune by rune.
func (s *Set) CommonPrefix() string {
	if len(s.Candidates) == 0 {
		return ""
	}
	prefix := []rune(s.Candidates[0].Word)
	for _, c := range s.Candidates[1:] {
		word := []rune(c.Word)
		if len(word) < len(prefix) {
			prefix = prefix[:len(word)]
		}
		for i := range prefix {
			if prefix[i] != word[i] {
				prefix = prefix[:i]
				break
			}
		}
		if len(prefix) == 0 {
			break
		}
	}
	return string(prefix)
}
