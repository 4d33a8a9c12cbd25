package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rline"
)

func printHelp() {
	fmt.Print(`rline - Interactive line editing demo shell

USAGE:
    rline [OPTIONS]

OPTIONS:
    -h, --help            Show this help message and exit
    --history FILE        Load and save history in FILE (default ~/.rline_history)

Press F1 at the prompt for the editing shortcuts.
`)
}

type options struct {
	help        bool
	historyPath string
}

func parseArgs(args []string) (options, error) {
	var opts options
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			opts.help = true
		case arg == "--history":
			if i+1 >= len(args) {
				return opts, errors.New("--history needs a file name")
			}
			i++
			opts.historyPath = args[i]
		case strings.HasPrefix(arg, "--history="):
			opts.historyPath = strings.TrimPrefix(arg, "--history=")
		default:
			return opts, fmt.Errorf("unknown option %q", arg)
		}
	}
	return opts, nil
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rline_history"
	}
	return filepath.Join(home, ".rline_history")
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printHelp()
		os.Exit(2)
	}
	if opts.help {
		printHelp()
		os.Exit(0)
	}
	if opts.historyPath == "" {
		opts.historyPath = defaultHistoryPath()
	}

	cfg := rline.DefaultConfig()
	cfg.PromptColor = rline.Color{Fg: tcell.ColorGreen}
	cfg.Completer = rline.CompleterFunc(completeCommand)
	editor := rline.New(cfg)
	defer func() {
		_ = editor.Close()
	}()

	// A missing history file is normal on first run.
	_ = editor.HistoryLoad(opts.historyPath)

	shell := &shell{editor: editor}
	for !shell.done {
		line, ok := editor.ReadLine("rline> ")
		if !ok {
			break
		}
		shell.execute(line)
	}

	if err := editor.HistorySave(opts.historyPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save history: %v\n", err)
	}
}
