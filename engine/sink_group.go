package engine

import "fmt"

// groupSink streams raw bytes per host, printing a header whenever the
// active host changes. This is a deliberately weaker contiguity
// guarantee than line reassembly: chunks are written as they arrive with
// no per-host buffering, so two hosts' chunks can interleave between
// transitions. lastHost is scheduler-scoped state, touched only from the
// single dispatch goroutine that calls Chunk.
type groupSink struct {
	w        *trackingWriter
	colors   Colors
	lastHost string
	started  bool
}

func newGroupSink(w *trackingWriter, colors Colors) *groupSink {
	if colors == nil {
		colors = NoColors{}
	}
	return &groupSink{w: w, colors: colors}
}

func (s *groupSink) Line(Host, Stream, []byte) {}

func (s *groupSink) Chunk(host Host, stream Stream, chunk []byte) {
	if !s.started || host.Display != s.lastHost {
		s.w.ensureNewline()
		fmt.Fprintf(s.w, "==> %s <==\n", s.colors.Host(host.Display))
		s.lastHost = host.Display
		s.started = true
	}
	fmt.Fprint(s.w, s.colors.Stream(stream, string(chunk)))
}

func (s *groupSink) Progress(int, int) {}
func (s *groupSink) Finish()           {}
