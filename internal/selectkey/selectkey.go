// Package selectkey provides the single-keystroke labels used to pick an
// entry from a listed set of history matches or completion candidates.
package selectkey

// Alphabet holds the labels in display order.
const Alphabet = "123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Max is the number of entries that can carry a label.
const Max = len(Alphabet)

// Key returns the label of the i-th entry (0-based) and false when i is out of range.
func Key(i int) (byte, bool) {
	if i < 0 || i >= Max {
		return 0, false
	}
	return Alphabet[i], true
}

// Index returns the entry position labeled by b, or -1.
func Index(b rune) int {
	switch {
	case b >= '1' && b <= '9':
		return int(b - '1')
	case b >= 'a' && b <= 'z':
		return 9 + int(b-'a')
	case b >= 'A' && b <= 'Z':
		return 35 + int(b-'A')
	}
	return -1
}

// Choices returns the labels for the first n entries, capped at Max.
func Choices(n int) string {
	if n > Max {
		n = Max
	}
	if n < 0 {
		n = 0
	}
	return Alphabet[:n]
}
