package engine

import "fmt"

// lineSink is the default OutputSink: each complete line is printed on
// its own write, tagged with the producing host and stream unless
// anonymous is set.
type lineSink struct {
	w         *trackingWriter
	anonymous bool
	colors    Colors
}

func newLineSink(w *trackingWriter, anonymous bool, colors Colors) *lineSink {
	if colors == nil {
		colors = NoColors{}
	}
	return &lineSink{w: w, anonymous: anonymous, colors: colors}
}

func (s *lineSink) Line(host Host, stream Stream, line []byte) {
	text := s.colors.Stream(stream, string(line))
	if s.anonymous {
		fmt.Fprint(s.w, text)
		return
	}
	fmt.Fprintf(s.w, "[%s] %s", s.colors.Host(host.Display), text)
}

func (s *lineSink) Chunk(Host, Stream, []byte) {}
func (s *lineSink) Progress(int, int)          {}
func (s *lineSink) Finish()                    {}
