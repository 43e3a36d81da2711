package stats

import (
	"bytes"
	"strings"
	"syscall"
	"testing"

	"github.com/sshp-go/sshp/engine"
)

func TestTrackerWriteSummaryAllSucceeded(t *testing.T) {
	tr := NewTracker(2)
	tr.Observe(engine.Host{Display: "web1"}, engine.ExitStatus{ExitCode: 0})
	tr.Observe(engine.Host{Display: "web2"}, engine.ExitStatus{ExitCode: 0})

	var buf bytes.Buffer
	tr.WriteSummary(&buf)

	if !strings.Contains(buf.String(), "2/2 hosts ok, 0 failed") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestTrackerWriteSummaryListsFailuresSorted(t *testing.T) {
	tr := NewTracker(3)
	tr.Observe(engine.Host{Display: "web1"}, engine.ExitStatus{ExitCode: 0})
	tr.Observe(engine.Host{Display: "zeta"}, engine.ExitStatus{ExitCode: 1})
	tr.Observe(engine.Host{Display: "alpha"}, engine.ExitStatus{Signaled: true, Signal: syscall.SIGKILL})

	var buf bytes.Buffer
	tr.WriteSummary(&buf)
	out := buf.String()

	if !strings.Contains(out, "1/3 hosts ok, 2 failed") {
		t.Fatalf("got %q", out)
	}
	alphaIdx := strings.Index(out, "alpha")
	zetaIdx := strings.Index(out, "zeta")
	if alphaIdx == -1 || zetaIdx == -1 || alphaIdx > zetaIdx {
		t.Fatalf("expected failures listed in sorted order, got:\n%s", out)
	}
	if !strings.Contains(out, "alpha: killed by signal") {
		t.Fatalf("expected signaled host reported distinctly, got:\n%s", out)
	}
	if !strings.Contains(out, "zeta: exit code 1") {
		t.Fatalf("expected exit-code host reported distinctly, got:\n%s", out)
	}
}
