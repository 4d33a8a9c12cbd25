package history

import (
	"strings"

	"github.com/kk-code-lab/rline/internal/selectkey"
	"golang.org/x/text/unicode/norm"
)

// Query selects log entries containing Pattern.
type Query struct {
	Pattern string
	// Limit caps the matches; zero or anything above selectkey.Max means
	// selectkey.Max.
	Limit       int
	NewestFirst bool
	// Unique drops matches whose text was already returned.
	Unique bool
}

// Match is a search hit labeled with its selection key.
type Match struct {
	Index int
	Text  string
	Key   byte
}

// Search scans the log in the requested direction and returns entries that
// contain the pattern, case-sensitively.
func Search(store Store, q Query) []Match {
	limit := q.Limit
	if limit <= 0 || limit > selectkey.Max {
		limit = selectkey.Max
	}
	pattern := norm.NFC.String(q.Pattern)
	n := store.Len()
	seen := make(map[string]struct{})
	var matches []Match
	for step := 0; step < n && len(matches) < limit; step++ {
		i := step
		if q.NewestFirst {
			i = n - 1 - step
		}
		text := store.At(i)
		if !strings.Contains(text, pattern) {
			continue
		}
		if q.Unique {
			if _, dup := seen[text]; dup {
				continue
			}
			seen[text] = struct{}{}
		}
		key, _ := selectkey.Key(len(matches))
		matches = append(matches, Match{Index: i, Text: text, Key: key})
	}
	return matches
}
