//go:build windows || plan9 || js || wasip1

package rline

// There is no job control here; Ctrl-Z only redraws the line.
func suspend() error {
	return nil
}
