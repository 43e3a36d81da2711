package engine

import "io"

// trackingWriter wraps the user's standard output and tracks whether the
// most recently written byte was a newline: true when the last byte
// written was '\n', or when nothing has been written yet. GROUP mode's
// header transitions and the reaper's exit lines both consult it before
// writing, so it is the one place that state lives.
type trackingWriter struct {
	w          io.Writer
	lastByte   byte
	hasWritten bool
}

// newTrackingWriter wraps w, or returns w unchanged if it is already a
// *trackingWriter. The latter case is what lets NewScheduler and a Sink
// constructor share the same instance when both are handed the writer
// returned by NewOutput: whichever call wraps it first wins, and the
// second just reuses it instead of layering a second, independently
// tracked cursor on top.
func newTrackingWriter(w io.Writer) *trackingWriter {
	if tw, ok := w.(*trackingWriter); ok {
		return tw
	}
	return &trackingWriter{w: w}
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if n > 0 {
		t.hasWritten = true
		t.lastByte = p[n-1]
	}
	return n, err
}

// newlineAtColumnZero reports whether the next byte written would start a
// fresh line.
func (t *trackingWriter) newlineAtColumnZero() bool {
	return !t.hasWritten || t.lastByte == '\n'
}

// ensureNewline writes a single '\n' if the cursor is not already at
// column zero.
func (t *trackingWriter) ensureNewline() {
	if !t.newlineAtColumnZero() {
		t.Write([]byte{'\n'})
	}
}
