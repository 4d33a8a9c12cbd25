package rline

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kk-code-lab/rline/internal/term"
	"github.com/kk-code-lab/rline/internal/ui/input"
)

var (
	debugEnabled = os.Getenv("RLINE_DEBUG") == "1"
	debugFile    = os.Getenv("RLINE_DEBUG_FILE")
	debugMu      sync.Mutex
)

func debugf(format string, args ...interface{}) {
	if !debugEnabled {
		return
	}
	debugMu.Lock()
	defer debugMu.Unlock()

	path := debugFile
	if path == "" {
		path = "rline-debug.log"
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	timestamp := time.Now().Format(time.RFC3339Nano)
	_, _ = fmt.Fprintf(f, "%s "+format+"\n", append([]interface{}{timestamp}, args...)...)
	_ = f.Close()
}

const keyboardDebugBanner = "Enter keyboard debug mode, <Ctrl-C> to exit debug\n"

// keyboardDebug echoes each decoded key with its raw bytes until Ctrl-C.
func (e *Editor) keyboardDebug() {
	e.term.WriteString(keyboardDebugBanner)
	for {
		_ = e.term.Flush()
		ev, err := e.decoder.Next()
		if errors.Is(err, term.ErrInterrupted) {
			continue
		}
		if err != nil || ev.Key == input.Ctrl('c') {
			break
		}
		e.term.Printf("%-14s % x\n", ev.Key, ev.Raw)
	}
}
