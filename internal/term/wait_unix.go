//go:build !windows && !plan9 && !js && !wasip1

package term

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

type waker struct {
	r *os.File
	w *os.File
}

func newWaker() *waker {
	r, w, err := os.Pipe()
	if err != nil {
		return nil
	}
	return &waker{r: r, w: w}
}

func (w *waker) wake() {
	_, _ = w.w.Write([]byte{1})
}

func (w *waker) drain() {
	var buf [64]byte
	_, _ = w.r.Read(buf[:])
}

func (w *waker) close() {
	_ = w.w.Close()
	_ = w.r.Close()
}

// wait blocks until the input descriptor is readable. A byte on the wake pipe
// ends the wait with ErrInterrupted.
func (t *Terminal) wait(timeout time.Duration) error {
	if t.inFile == nil {
		return nil
	}
	fds := []unix.PollFd{{Fd: int32(t.inFile.Fd()), Events: unix.POLLIN}}
	if t.waker != nil {
		fds = append(fds, unix.PollFd{Fd: int32(t.waker.r.Fd()), Events: unix.POLLIN})
	}
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}
	for {
		n, err := unix.Poll(fds, ms)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return errTimeout
		}
		if len(fds) > 1 && fds[1].Revents&unix.POLLIN != 0 {
			t.waker.drain()
			return ErrInterrupted
		}
		return nil
	}
}

func (t *Terminal) poll(timeout time.Duration) bool {
	fds := []unix.PollFd{{Fd: int32(t.inFile.Fd()), Events: unix.POLLIN}}
	ms := int(timeout / time.Millisecond)
	for {
		n, err := unix.Poll(fds, ms)
		if err == unix.EINTR {
			continue
		}
		return err == nil && n > 0 && fds[0].Revents&unix.POLLIN != 0
	}
}
