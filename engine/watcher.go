package engine

import "io"

// readChunkSize is the buffer size each reader goroutine uses per read(2)
// call. It has no relationship to MaxLineLength or MaxOutputLength: those
// bound how much the scheduler accumulates across chunks, this just bounds
// one syscall's worth of bytes.
const readChunkSize = 32 * 1024

// fdWatcher fuses readiness-notification and drain-until-empty into one
// blocking reader goroutine per descriptor. Every goroutine writes to the
// same channel, which the scheduler's single dispatch loop drains; this
// is the channel-based analogue of an epoll/kqueue instance multiplexing
// many file descriptors onto one waiter.
type fdWatcher struct {
	out chan fdEvent
}

// newFdWatcher creates a watcher whose event channel is buffered to hold
// buffer pending events before a reader goroutine blocks on send.
func newFdWatcher(buffer int) *fdWatcher {
	return &fdWatcher{out: make(chan fdEvent, buffer)}
}

// watch starts a goroutine that reads r until EOF or error, reporting each
// chunk and the terminal condition as fdEvents tagged with childIndex and
// stream. r is closed once reading stops: exec.Cmd's own StdoutPipe/
// StderrPipe are also closed by Wait, but JOIN mode's manually created
// os.Pipe read end has no other owner and would otherwise leak one
// descriptor per host.
func (w *fdWatcher) watch(childIndex int, stream Stream, r io.Reader) {
	go func() {
		buf := make([]byte, readChunkSize)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				w.out <- fdEvent{childIndex: childIndex, stream: stream, chunk: chunk}
			}
			if err != nil {
				if c, ok := r.(io.Closer); ok {
					c.Close()
				}
				w.out <- fdEvent{childIndex: childIndex, stream: stream, err: err}
				return
			}
		}
	}()
}

// events returns the channel of fdEvents. The scheduler reads from this
// channel directly rather than ranging over it, since new watch calls are
// issued throughout the scheduler's lifetime as new children are spawned;
// the channel is never closed.
func (w *fdWatcher) events() <-chan fdEvent {
	return w.out
}
