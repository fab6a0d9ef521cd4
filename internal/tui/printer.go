package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PrintWriter prints whole lines above a running progress view instead of
// writing to the terminal directly, which would corrupt the view.
type PrintWriter struct {
	program *tea.Program
}

func NewPrintWriter(p *tea.Program) *PrintWriter {
	return &PrintWriter{program: p}
}

// Write sends every line of b to the program. Send returns immediately once
// the program has exited, so late writes are dropped rather than blocking.
func (w *PrintWriter) Write(b []byte) (int, error) {
	text := strings.TrimSuffix(string(b), "\n")
	for _, line := range strings.Split(text, "\n") {
		w.program.Send(tea.Println(line)())
	}
	return len(b), nil
}
