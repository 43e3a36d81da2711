package engine

import "io"

// NewOutput wraps w in the newline-tracking writer that the scheduler's
// reaper and the selected Sink must observe together: GROUP mode's exit
// lines otherwise can't tell whether a host's last chunk ended mid-line.
// Pass the returned writer to both NewScheduler and whichever Sink
// constructor is used, so they share one cursor instead of each tracking
// its own.
func NewOutput(w io.Writer) io.Writer {
	return newTrackingWriter(w)
}

// NewLineSink returns the LINE-mode Sink: each complete line is written
// tagged with its producing host, unless anonymous is set. colors may be
// nil, equivalent to NoColors{}.
func NewLineSink(w io.Writer, anonymous bool, colors Colors) Sink {
	return newLineSink(newTrackingWriter(w), anonymous, colors)
}

// NewGroupSink returns the GROUP-mode Sink: raw chunks are streamed per
// host with a header on every host transition. colors may be nil.
func NewGroupSink(w io.Writer, colors Colors) Sink {
	return newGroupSink(newTrackingWriter(w), colors)
}

// NewJoinSink returns the JOIN-mode Sink: live output is suppressed save
// for an optional self-overwriting progress line when w is a terminal.
func NewJoinSink(w io.Writer, progName string, isTerminal bool, total int) Sink {
	return newJoinSink(newTrackingWriter(w), progName, isTerminal, total)
}
