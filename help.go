package rline

import (
	"github.com/kk-code-lab/rline/internal/textutil"
)

// helpEntry is one row of the F1 screen. An entry without keys is a
// section title.
type helpEntry struct {
	keys   string
	action string
}

const helpKeyWidth = 28

var editHelp = []helpEntry{
	{action: "Misc Commands"},
	{"F1", "Show edit shortcuts help."},
	{"Ctrl-^", "Enter keyboard debugging mode."},
	{action: "Move Commands"},
	{"Ctrl-B, Left", "Move back a character."},
	{"Ctrl-F, Right", "Move forward a character."},
	{"Up, Down", "Move between wrapped rows, then fetch history."},
	{"Ctrl-Up, Alt-Up", "Move cursor to the row above."},
	{"Ctrl-Down, Alt-Down", "Move cursor to the row below."},
	{"Alt-B, Ctrl-Left, Alt-Left", "Move back a word."},
	{"Alt-F, Ctrl-Right, Alt-Right", "Move forward a word."},
	{"Ctrl-A, Home", "Move cursor to start of line."},
	{"Ctrl-E, End", "Move cursor to end of line."},
	{"Ctrl-L", "Clear screen and redisplay line."},
	{action: "Edit Commands"},
	{"Ctrl-H, Backspace", "Delete character before cursor."},
	{"Ctrl-D, Delete", "Delete character under cursor."},
	{"Alt-U", "Uppercase current or following word."},
	{"Alt-L", "Lowercase current or following word."},
	{"Alt-C", "Capitalize current or following word."},
	{"Alt-\\", "Delete whitespace around cursor."},
	{"Ctrl-T", "Transpose characters."},
	{action: "Cut&Paste Commands"},
	{"Ctrl-K, Ctrl-End, Alt-End", "Cut from cursor to end of line."},
	{"Ctrl-U, Ctrl-Home, Alt-Home", "Cut from start of line to cursor."},
	{"Ctrl-X", "Cut whole line."},
	{"Alt-Backspace, Ctrl-_", "Cut word to left of cursor."},
	{"Alt-D, Alt-Del, Ctrl-Del", "Cut word following cursor."},
	{"Ctrl-W", "Cut to left till whitespace."},
	{"Ctrl-Y, Ctrl-V, Insert", "Paste last cut text."},
	{action: "Complete Commands"},
	{"Tab", "Autocomplete."},
	{"Alt-=, Alt-?", "List possible completions."},
	{action: "History Commands"},
	{"Ctrl-P", "Fetch previous line in history."},
	{"Ctrl-N", "Fetch next line in history."},
	{"Alt-<, PgUp", "Move to first line in history."},
	{"Alt->, PgDn", "Move back to the edited line."},
	{"Ctrl-R, Ctrl-S", "Search history."},
	{"F4", "Search history with current input."},
	{"F2", "Show history."},
	{"F3", "Clear history (asks to confirm)."},
	{action: "Control Commands"},
	{"Enter, Ctrl-J, Ctrl-M", "Accept line."},
	{"Ctrl-C, Ctrl-G", "Abort line."},
	{"Ctrl-D", "End of input if line is empty."},
	{"Alt-R, Esc", "Revert line."},
	{"Ctrl-Z", "Suspend job, fg resumes editing."},
}

var searchHelp = []helpEntry{
	{action: "History Search"},
	{"pattern", "List lines containing pattern, case-sensitive."},
	{"Ctrl-Y, Ctrl-V, Insert", "Paste the last pattern."},
	{"1-9, a-z, A-Z", "Pick a listed line by its key."},
	{"Enter on empty input", "Cancel the search."},
}

func (s *session) helpEntries() []helpEntry {
	if s.opts.help != nil {
		return s.opts.help
	}
	return editHelp
}

// printHelp prints entries as an aligned table, pausing per page.
func (e *Editor) printHelp(entries []helpEntry) {
	for _, h := range entries {
		line := " " + h.action
		if h.keys != "" {
			line = "   " + textutil.PadRight(h.keys, helpKeyWidth) + "  " + h.action
		}
		e.term.WriteString(line + "\n")
		if e.pager.Check(textutil.StringWidth(line)) {
			return
		}
	}
}
