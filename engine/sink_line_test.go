package engine

import (
	"bytes"
	"testing"
)

func TestLineSinkPrefixesHostByDefault(t *testing.T) {
	var buf bytes.Buffer
	w := newTrackingWriter(&buf)
	s := newLineSink(w, false, nil)

	s.Line(Host{Display: "web1"}, StreamStdout, []byte("hello\n"))

	if got, want := buf.String(), "[web1] hello\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLineSinkAnonymousOmitsPrefix(t *testing.T) {
	var buf bytes.Buffer
	w := newTrackingWriter(&buf)
	s := newLineSink(w, true, nil)

	s.Line(Host{Display: "web1"}, StreamStdout, []byte("hello\n"))

	if got, want := buf.String(), "hello\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLineSinkUsesColorsCollaborator(t *testing.T) {
	var buf bytes.Buffer
	w := newTrackingWriter(&buf)
	s := newLineSink(w, false, stubColors{})

	s.Line(Host{Display: "web1"}, StreamStderr, []byte("boom\n"))

	if got, want := buf.String(), "[<web1>] <stderr:boom\n>"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// stubColors wraps text in angle brackets so tests can assert the Colors
// collaborator was actually consulted rather than bypassed.
type stubColors struct{}

func (stubColors) Host(host string) string { return "<" + host + ">" }
func (stubColors) Stream(stream Stream, text string) string {
	return "<" + stream.String() + ":" + text + ">"
}
