// Package obslog configures the orchestrator's debug logging, the
// verbose startup prelude Config.Debug enables. It wraps
// github.com/charmbracelet/log and writes to standard error, leaving
// standard output free for host data.
package obslog

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Option configures the logger returned by New.
type Option func(*options)

type options struct {
	debug bool
	out   io.Writer
}

// WithDebug enables debug-level logging when debug is true; otherwise
// the logger only emits warnings and errors.
func WithDebug(debug bool) Option {
	return func(o *options) { o.debug = debug }
}

// WithOutput overrides the writer logs are sent to, replacing the
// writer passed to New.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// New builds the orchestrator's debug logger.
func New(w io.Writer, opts ...Option) *log.Logger {
	resolved := options{out: w}
	for _, opt := range opts {
		if opt != nil {
			opt(&resolved)
		}
	}

	level := log.WarnLevel
	if resolved.debug {
		level = log.DebugLevel
	}

	return log.NewWithOptions(resolved.out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "sshp",
	})
}
