package rline

import (
	"os"
	"os/signal"
	"sync"
)

// watchResize flags terminal size changes and wakes a blocked key read so
// the edit loop can reflow the line. The returned func stops watching.
func (e *Editor) watchResize() func() {
	sigs := resizeSignals()
	if len(sigs) == 0 {
		return func() {}
	}
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)
	stop := e.forwardResize(ch)
	return func() {
		signal.Stop(ch)
		stop()
	}
}

// forwardResize turns every value on ch into a resize wake-up. The returned
// func returns only after the forwarding goroutine has exited, so Close may
// follow it safely.
func (e *Editor) forwardResize(ch <-chan os.Signal) func() {
	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ch:
				e.resized.Store(true)
				e.term.Interrupt()
			case <-done:
				return
			}
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}
