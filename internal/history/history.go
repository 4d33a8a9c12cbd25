// Package history keeps the log of accepted lines and the operations the
// editor runs over it: file persistence, recall and substring search.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrEmptyPath is returned by Load and Save when no file is named.
	ErrEmptyPath = errors.New("history path is empty")
	// ErrMultilineEntry reports entries Save had to skip because the file
	// format stores one entry per line.
	ErrMultilineEntry = errors.New("history entry contains a newline")
)

const maxLineBytes = 1 << 20

// Store is the backing log the editor records into. Implementations keep
// entries in insertion order and never reorder them.
type Store interface {
	Append(text string)
	Clear()
	Delete(i, n int) int
	Len() int
	At(i int) string
	Load(path string) error
	Save(path string) error
}

// Log is the default in-memory Store.
type Log struct {
	entries []string
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

func (l *Log) Append(text string) { l.entries = append(l.entries, text) }

func (l *Log) Clear() { l.entries = nil }

// Delete removes up to n entries starting at entry i, oldest first, and
// returns how many were removed. Out of range parts are ignored.
func (l *Log) Delete(i, n int) int {
	if i < 0 {
		n += i
		i = 0
	}
	if n <= 0 || i >= len(l.entries) {
		return 0
	}
	n = min(n, len(l.entries)-i)
	l.entries = append(l.entries[:i], l.entries[i+n:]...)
	return n
}

func (l *Log) Len() int { return len(l.entries) }

// At returns entry i, oldest first, or "" when i is out of range.
func (l *Log) At(i int) string {
	if i < 0 || i >= len(l.entries) {
		return ""
	}
	return l.entries[i]
}

// Load appends every non-empty line of path. A UTF-8 or UTF-16 byte order
// mark selects the decoding; otherwise the file is read as UTF-8.
func (l *Log) Load(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(f, decoder))
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		l.Append(norm.NFC.String(line))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	return nil
}

// Save overwrites path with one entry per line. Entries containing a line
// break cannot be represented and are skipped; the rest are still written
// and ErrMultilineEntry is returned.
func (l *Log) Save(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create history: %w", err)
	}
	w := bufio.NewWriter(f)
	skipped := 0
	for _, entry := range l.entries {
		if strings.ContainsAny(entry, "\r\n") {
			skipped++
			continue
		}
		_, _ = w.WriteString(entry)
		_ = w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write history: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close history: %w", err)
	}
	if skipped > 0 {
		return fmt.Errorf("%w: %d skipped", ErrMultilineEntry, skipped)
	}
	return nil
}

// Add appends text unless it repeats the newest entry. It reports whether
// the entry was recorded.
func Add(store Store, text string) bool {
	if n := store.Len(); n > 0 && store.At(n-1) == text {
		return false
	}
	store.Append(text)
	return true
}
