// Package logging provides the thread-safe message sink used during a run.
//
// Every message is written as one line under a single lock, so lines from
// concurrent conversions never interleave. Info lines are only shown in
// verbose mode; Success, Warn and Error lines are always shown, each in its
// own color. An optional log file receives every line, timestamped and
// without styling.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"pmaconv/internal/config"
	"pmaconv/internal/tui"
)

// Logger writes leveled, styled messages. Call Close when done if a log file
// was configured.
type Logger struct {
	mu      sync.Mutex
	out     io.Writer
	errOut  io.Writer
	verbose bool
	file    *os.File

	infoStyle    lipgloss.Style
	successStyle lipgloss.Style
	warnStyle    lipgloss.Style
	errorStyle   lipgloss.Style
}

// NewLogger builds a Logger writing regular lines to out and errors to errOut,
// styled according to cfg.ColorMode. When cfg.LogFile is set the file (and its
// directory) is created and opened for appending.
func NewLogger(cfg *config.Config, out, errOut io.Writer) (*Logger, error) {
	r := lipgloss.NewRenderer(out)
	switch cfg.ColorMode {
	case config.ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case config.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	l := &Logger{
		out:          out,
		errOut:       errOut,
		verbose:      cfg.Verbose,
		infoStyle:    r.NewStyle().Foreground(tui.ColorDim),
		successStyle: r.NewStyle().Foreground(tui.ColorSuccess),
		warnStyle:    r.NewStyle().Foreground(tui.ColorWarn),
		errorStyle:   r.NewStyle().Bold(true).Foreground(tui.ColorError),
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level string, style lipgloss.Style, out io.Writer, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(out, style.Render(text)+"\n")
	if l.file != nil {
		ts := time.Now().Format("2006-01-02 15:04:05")
		_, _ = io.WriteString(l.file, ts+" ["+level+"] "+text+"\n")
	}
}

// Info logs an informational message; a no-op unless verbose.
func (l *Logger) Info(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.line("INFO", l.infoStyle, l.out, fmt.Sprintf(format, args...))
}

// Success logs a completed unit of work.
func (l *Logger) Success(format string, args ...any) {
	l.line("SUCCESS", l.successStyle, l.out, fmt.Sprintf(format, args...))
}

// Warn logs a skipped item or a condition worth noticing.
func (l *Logger) Warn(format string, args ...any) {
	l.line("WARN", l.warnStyle, l.out, fmt.Sprintf(format, args...))
}

// Error logs a failure to the error writer.
func (l *Logger) Error(format string, args ...any) {
	l.line("ERROR", l.errorStyle, l.errOut, fmt.Sprintf(format, args...))
}
