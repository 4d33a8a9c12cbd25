// Package rline reads lines from a terminal with in-place editing, history
// recall and search, and tab completion.
//
// An Editor owns one terminal, one history log and one clipboard. It is not
// safe for concurrent use.
package rline

import (
	"errors"
	"os"
	"sync/atomic"

	"github.com/kk-code-lab/rline/internal/complete"
	"github.com/kk-code-lab/rline/internal/edit"
	"github.com/kk-code-lab/rline/internal/history"
	"github.com/kk-code-lab/rline/internal/selectkey"
	"github.com/kk-code-lab/rline/internal/term"
	"github.com/kk-code-lab/rline/internal/ui/input"
	"github.com/kk-code-lab/rline/internal/ui/pager"
)

// ErrAborted is returned by ReadLineErr when the user cancels the line with
// Ctrl-C or Ctrl-G.
var ErrAborted = errors.New("line input aborted")

// DefaultSearchLimit caps history search results unless configured.
const DefaultSearchLimit = 16

type (
	// Color paints the prompt, completion words, help text and hints.
	Color = term.Color
	// Completions is filled by a Completer. Start and End select the rune
	// span of the line a chosen candidate replaces; they default to the
	// word before the cursor.
	Completions = complete.Set
	// Candidate is one completion.
	Candidate = complete.Candidate
	// Completer produces candidates for the line and cursor position.
	Completer = complete.Producer
	// CompleterFunc adapts a function to Completer.
	CompleterFunc = complete.ProducerFunc
	// HistoryStore is the backing log for accepted lines.
	HistoryStore = history.Store
)

// Config configures an Editor. Use DefaultConfig and override fields.
type Config struct {
	Input  *os.File
	Output *os.File

	// Delimiters separate words for word motions, cuts and the default
	// completion span.
	Delimiters  string
	PromptColor Color
	// Paging pauses long listings one screen at a time.
	Paging bool
	// EscAsAlt makes ESC always qualify the following key. When false a lone
	// ESC clears the line.
	EscAsAlt bool
	// SearchLimit caps history search results; at most 61 can be selected.
	SearchLimit int
	// SearchUnique hides repeated lines in history search results.
	SearchUnique bool
	// SystemClipboard mirrors cuts to the desktop clipboard.
	SystemClipboard bool

	History   HistoryStore
	Completer Completer
}

// Editor reads edited lines from a terminal.
type Editor struct {
	term      *term.Terminal
	decoder   *input.Decoder
	pager     *pager.Pager
	history   HistoryStore
	clip      edit.Clipboard
	completer Completer
	// line is the buffer being edited while ReadLine runs.
	line *edit.Buffer

	delims       string
	promptColor  Color
	searchLimit  int
	searchUnique bool

	resized atomic.Bool
}

// New returns an editor over cfg.Input and cfg.Output.
func New(cfg Config) *Editor {
	if cfg.Input == nil {
		cfg.Input = os.Stdin
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	return newEditor(cfg, term.New(cfg.Input, cfg.Output, term.Options{}))
}

func newEditor(cfg Config, t *term.Terminal) *Editor {
	e := &Editor{
		term:         t,
		history:      cfg.History,
		completer:    cfg.Completer,
		promptColor:  cfg.PromptColor,
		searchUnique: cfg.SearchUnique,
	}
	if e.history == nil {
		e.history = history.NewLog()
	}
	if cfg.SystemClipboard {
		e.clip = edit.NewSystemClipboard()
	} else {
		e.clip = &edit.Slot{}
	}
	e.decoder = input.NewDecoder(t, t.KeySequences())
	e.decoder.EscAsAlt = cfg.EscAsAlt
	e.pager = pager.New(t, t.Interactive() && t.OutputIsTerminal())
	e.pager.SetEnabled(cfg.Paging)
	e.SetDelimiters(cfg.Delimiters)
	e.SetSearchOptions(cfg.SearchLimit, cfg.SearchUnique)
	return e
}

// Close releases terminal resources.
func (e *Editor) Close() error {
	return e.term.Close()
}

// SetDelimiters replaces the word delimiter set. An empty string restores
// the default. Called from a completer, it applies to the line being edited.
func (e *Editor) SetDelimiters(delims string) {
	if delims == "" {
		delims = edit.DefaultDelimiters
	}
	e.delims = delims
	if e.line != nil {
		e.line.SetDelimiters(delims)
	}
}

// PagingEnable turns listing pauses on or off and returns the previous setting.
func (e *Editor) PagingEnable(on bool) bool {
	return e.pager.SetEnabled(on)
}

// PagingEnabled reports whether listing pauses are on.
func (e *Editor) PagingEnabled() bool {
	return e.pager.Enabled()
}

// PagingCheck lets hosts page their own output: call it after printing each
// line of lineLen cells and stop printing when it returns true.
func (e *Editor) PagingCheck(lineLen int) bool {
	stop := e.pager.Check(lineLen)
	_ = e.term.Flush()
	return stop
}

// PagingReset starts a new page for PagingCheck.
func (e *Editor) PagingReset() {
	e.pager.Reset()
}

// PromptColor sets the color the prompt is drawn in.
func (e *Editor) PromptColor(c Color) {
	e.promptColor = c
}

// AllowEscAsAlt controls whether ESC waits for the key it qualifies.
func (e *Editor) AllowEscAsAlt(on bool) {
	e.decoder.EscAsAlt = on
}

// SetCompleter installs the candidate producer used by Tab.
func (e *Editor) SetCompleter(c Completer) {
	e.completer = c
}

// SetSearchOptions sets the history search result cap and whether repeated
// lines are listed once.
func (e *Editor) SetSearchOptions(limit int, unique bool) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > selectkey.Max {
		limit = selectkey.Max
	}
	e.searchLimit = limit
	e.searchUnique = unique
}
