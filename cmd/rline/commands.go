package main

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rline"
)

type command struct {
	name string
	help string
}

var commands = []command{
	{"echo", "Print the rest of the line."},
	{"exit", "Leave the shell."},
	{"help", "List commands."},
	{"history", "Show the history."},
	{"clear", "Clear the screen."},
	{"clear-history", "Drop every history entry."},
	{"delete-history", "Drop history entries N [count]."},
	{"paging", "Show or turn listing pauses on or off."},
	{"quit", "Leave the shell."},
}

var (
	commandColor = rline.Color{Fg: tcell.ColorAqua}
	helpColor    = rline.Color{Fg: tcell.ColorGray}
	hintColor    = rline.Color{Fg: tcell.ColorYellow}
)

// Printer is where command output goes.
type Printer interface {
	Print(text string)
	Printf(format string, args ...interface{})
}

// Session is the editor surface the commands drive.
type Session interface {
	Printer
	HistoryShow()
	HistoryClear()
	HistoryDelete(index, n int) int
	ClearScreen()
	PagingEnable(on bool) bool
	PagingEnabled() bool
}

type shell struct {
	editor Session
	done   bool
}

func (s *shell) execute(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	switch name, args := fields[0], fields[1:]; name {
	case "exit", "quit":
		s.done = true
	case "help":
		for _, c := range commands {
			s.editor.Printf("  %-14s %s\n", c.name, c.help)
		}
	case "echo":
		s.editor.Print(strings.Join(args, " ") + "\n")
	case "history":
		s.editor.HistoryShow()
	case "clear":
		s.editor.ClearScreen()
	case "clear-history":
		s.editor.HistoryClear()
		s.editor.Print("History cleared.\n")
	case "delete-history":
		index, n, ok := parseRange(args)
		if !ok {
			s.editor.Print("usage: delete-history N [count]\n")
			return
		}
		s.editor.Printf("%d entries deleted.\n", s.editor.HistoryDelete(index, n))
	case "paging":
		if len(args) == 0 {
			s.editor.Printf("paging is %s\n", onOff(s.editor.PagingEnabled()))
			return
		}
		if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
			s.editor.Print("usage: paging [on|off]\n")
			return
		}
		s.editor.PagingEnable(args[0] == "on")
	default:
		s.editor.Printf("unknown command %q, try help\n", name)
	}
}

func parseRange(args []string) (index, n int, ok bool) {
	if len(args) < 1 || len(args) > 2 {
		return 0, 0, false
	}
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 {
		return 0, 0, false
	}
	n = 1
	if len(args) == 2 {
		if n, err = strconv.Atoi(args[1]); err != nil || n < 1 {
			return 0, 0, false
		}
	}
	return index, n, true
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func completeCommand(text string, cursor int, set *rline.Completions) {
	before := string([]rune(text)[:cursor])
	fields := strings.Fields(before)
	word := string([]rune(text)[set.Start:set.End])

	if len(fields) == 0 || (len(fields) == 1 && !strings.HasSuffix(before, " ")) {
		for _, c := range commands {
			if strings.HasPrefix(c.name, word) {
				set.AddCandidate(rline.Candidate{
					Word:      c.name,
					Help:      c.help,
					WordColor: commandColor,
					HelpColor: helpColor,
				})
			}
		}
		return
	}
	switch fields[0] {
	case "echo":
		set.SetHint("<text>", hintColor)
	case "paging":
		for _, v := range []string{"on", "off"} {
			if strings.HasPrefix(v, word) {
				set.Add(v, "")
			}
		}
	}
}
