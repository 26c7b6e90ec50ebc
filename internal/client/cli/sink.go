package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/utilitybox/internal/oplog"
	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// TerminalSink prints status lines, colored by status when writing to a tty.
type TerminalSink struct {
	w        io.Writer
	renderer *lipgloss.Renderer
}

// NewTerminalSink writes to f; colors are used only if f is a terminal.
func NewTerminalSink(f *os.File) *TerminalSink {
	s := &TerminalSink{w: f}
	if isTerminal(int(f.Fd())) {
		s.renderer = lipgloss.NewRenderer(f)
	}
	return s
}

func (s *TerminalSink) Report(status oplog.Status, line string) {
	if s.renderer != nil {
		line = s.renderer.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(status.Color())).
			Render(line)
	}
	fmt.Fprintln(s.w, line)
}
