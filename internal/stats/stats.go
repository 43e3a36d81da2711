// Package stats tallies per-host exit results and prints a final summary
// when the operator asks for it. Unlike a live-updating dashboard, it
// only ever reports once the run is complete: the core's single
// dispatch goroutine has no spare cycles for a ticking display, so this
// stays a passive observer fed through engine.Scheduler.OnReap.
package stats

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/sshp-go/sshp/engine"
)

// Tracker accumulates exit results as the scheduler reaps children.
type Tracker struct {
	start      time.Time
	total      int
	succeeded  []string
	failed     map[string]engine.ExitStatus
}

// NewTracker returns a Tracker for a run of total hosts.
func NewTracker(total int) *Tracker {
	return &Tracker{start: time.Now(), total: total, failed: make(map[string]engine.ExitStatus)}
}

// Observe is an engine.Scheduler.OnReap-compatible callback.
func (t *Tracker) Observe(host engine.Host, status engine.ExitStatus) {
	if status.Success() {
		t.succeeded = append(t.succeeded, host.Display)
		return
	}
	t.failed[host.Display] = status
}

// WriteSummary prints a final tally to w: counts, elapsed time, and the
// list of hosts whose child did not exit 0.
func (t *Tracker) WriteSummary(w io.Writer) {
	elapsed := time.Since(t.start).Round(10 * time.Millisecond)
	fmt.Fprintf(w, "%d/%d hosts ok, %d failed (%v)\n", len(t.succeeded), t.total, len(t.failed), elapsed)

	if len(t.failed) == 0 {
		return
	}

	names := make([]string, 0, len(t.failed))
	for name := range t.failed {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		status := t.failed[name]
		if status.Signaled {
			fmt.Fprintf(w, "  %s: killed by signal %v\n", name, status.Signal)
		} else {
			fmt.Fprintf(w, "  %s: exit code %d\n", name, status.ExitCode)
		}
	}
}
