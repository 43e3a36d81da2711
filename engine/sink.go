package engine

// Sink is the OutputSink capability: the three output disciplines share
// this interface and are dispatched by the scheduler's stream-reassembly
// code (see reader.go) rather than by a type switch at every call site.
type Sink interface {
	// Line handles one complete LINE-mode line (including its trailing
	// newline) produced by host on the given stream.
	Line(host Host, stream Stream, line []byte)

	// Chunk handles a raw GROUP-mode byte chunk produced by host on the
	// given stream. Unused by the LINE and JOIN sinks.
	Chunk(host Host, stream Stream, chunk []byte)

	// Progress reports done/total completions; only the JOIN sink uses
	// it, to drive the terminal progress line.
	Progress(done, total int)

	// Finish is called once after every child has been reaped. JOIN uses
	// it to emit the final newline after the progress line; LINE and
	// GROUP ignore it.
	Finish()
}
