// Package colorize supplies the ANSI colorization external collaborator
// the core deliberately has no knowledge of. It renders engine.Colors
// with github.com/charmbracelet/lipgloss, and resolves "auto" color mode
// against terminal-ness with github.com/mattn/go-isatty.
package colorize

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/sshp-go/sshp/engine"
)

// Mode selects whether color is forced on, forced off, or resolved
// against whether standard output is a terminal.
type Mode string

const (
	Auto Mode = "auto"
	On   Mode = "on"
	Off  Mode = "off"
)

// IsTerminal reports whether f is attached to a terminal. Callers query
// this once at startup; the answer is cached in the resolved color mode
// and the chosen Sink, not re-checked per write.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Resolve decides whether colorization is enabled for the given mode and
// terminal-ness.
func Resolve(mode Mode, terminalStdout bool) bool {
	switch mode {
	case On:
		return true
	case Off:
		return false
	default:
		return terminalStdout
	}
}

var hostPalette = []lipgloss.Color{
	lipgloss.Color("2"),  // green
	lipgloss.Color("3"),  // yellow
	lipgloss.Color("4"),  // blue
	lipgloss.Color("5"),  // magenta
	lipgloss.Color("6"),  // cyan
	lipgloss.Color("9"),  // bright red
	lipgloss.Color("10"), // bright green
	lipgloss.Color("12"), // bright blue
}

var stderrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

// Colors is the production engine.Colors, assigning each distinct host a
// stable color from a fixed palette (by first-seen order) and coloring
// stderr output red regardless of host.
type Colors struct {
	assigned map[string]lipgloss.Style
	next     int
}

// New returns a ready-to-use engine.Colors collaborator.
func New() engine.Colors {
	return &Colors{assigned: make(map[string]lipgloss.Style)}
}

func (c *Colors) styleFor(host string) lipgloss.Style {
	if st, ok := c.assigned[host]; ok {
		return st
	}
	st := lipgloss.NewStyle().Foreground(hostPalette[c.next%len(hostPalette)]).Bold(true)
	c.assigned[host] = st
	c.next++
	return st
}

// Host renders host in its assigned color.
func (c *Colors) Host(host string) string {
	return c.styleFor(host).Render(host)
}

// Stream renders text in stderr's color; stdout passes through
// unmodified.
func (c *Colors) Stream(stream engine.Stream, text string) string {
	if stream == engine.StreamStderr {
		return stderrStyle.Render(text)
	}
	return text
}
