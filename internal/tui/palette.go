package tui

import (
	"github.com/charmbracelet/lipgloss"

	"pmaconv/internal/processor"
)

// Base palette shared by the progress view, the summary tables and the logger.
var (
	ColorInk       = lipgloss.Color("#E5E9F0")
	ColorDim       = lipgloss.Color("#7A8291")
	ColorAccent    = lipgloss.Color("#88C0D0")
	ColorAccentAlt = lipgloss.Color("#81A1C1")
	ColorSuccess   = lipgloss.Color("#A3BE8C")
	ColorWarn      = lipgloss.Color("#EBCB8B")
	ColorError     = lipgloss.Color("#BF616A")
)

// OutcomeColor maps a file outcome to the color its counters and messages use.
func OutcomeColor(o processor.Outcome) lipgloss.Color {
	switch o {
	case processor.Converted:
		return ColorSuccess
	case processor.Skipped:
		return ColorWarn
	case processor.Failed:
		return ColorError
	default:
		return ColorDim
	}
}
