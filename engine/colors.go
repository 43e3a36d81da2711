package engine

// Colors is the ANSI colorization collaborator, kept external to the
// core. The core only ever asks it to color a finished piece of text (a
// host name, or a stream's output); how that's realized as escape codes,
// or whether it's realized at all, lives in internal/colorize.
type Colors interface {
	// Host returns host, possibly wrapped in color, for use in headers.
	Host(host string) string

	// Stream returns text, possibly wrapped in a color that
	// distinguishes stdout from stderr.
	Stream(stream Stream, text string) string
}

// NoColors is a Colors implementation that never emits escape codes, used
// when color is disabled or stdout is not a terminal.
type NoColors struct{}

func (NoColors) Host(host string) string             { return host }
func (NoColors) Stream(_ Stream, text string) string { return text }
