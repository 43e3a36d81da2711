package engine

import (
	"fmt"
)

// reap waits for child's process to exit, records its ExitStatus, and, if
// exitCodes or debug is set, prints an exit line after ensuring the
// cursor is at column zero. It must be called exactly once per child,
// only after every one of that child's output descriptors has reported
// end-of-file.
func reap(w *trackingWriter, host Host, child *Child, clock Clock, startedAt int64, printExit bool) ExitStatus {
	status, err := child.proc.Wait()
	finishedAt := clock.NowMillis()
	if err != nil {
		status = &ExitStatus{ExitCode: -1}
	}

	if printExit {
		w.ensureNewline()
		if status.Signaled {
			fmt.Fprintf(w, "[%s] killed by signal %v (%d ms)\n", host.Display, status.Signal, finishedAt-startedAt)
		} else {
			fmt.Fprintf(w, "[%s] exited: %d (%d ms)\n", host.Display, status.ExitCode, finishedAt-startedAt)
		}
	}

	return *status
}
