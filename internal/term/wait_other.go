//go:build windows || plan9 || js || wasip1

package term

import "time"

// waker is unused where the input cannot be polled; reads simply block.
type waker struct{}

func newWaker() *waker { return nil }

func (w *waker) wake()  {}
func (w *waker) close() {}

func (t *Terminal) wait(time.Duration) error { return nil }

func (t *Terminal) poll(time.Duration) bool { return false }
