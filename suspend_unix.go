//go:build !windows && !plan9 && !js && !wasip1

package rline

import "syscall"

// suspend stops the process group the way a shell's Ctrl-Z does. The
// terminal is already cooked between reads.
func suspend() error {
	return syscall.Kill(0, syscall.SIGTSTP)
}
