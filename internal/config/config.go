// Package config holds the runtime configuration of a conversion run:
// defaults, validation and the bridge to the processor options.
package config

import (
	"errors"
	"fmt"

	"pmaconv/internal/pma"
	"pmaconv/internal/processor"
)

// ColorMode controls styled console output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Style output when stdout is a terminal (default).
	ColorAlways ColorMode = "always" // Force styles on.
	ColorNever  ColorMode = "never"  // Plain text only.
)

// PNGExtension is the extension honoured when PNGOnly is set.
const PNGExtension = ".png"

// ErrNoTargets is returned by Validate when no file or directory was given.
var ErrNoTargets = errors.New("no target files or directories passed in arguments")

// Config holds all settings of one run. It is populated by DefaultConfig and
// then overridden by command-line flags.
type Config struct {
	Targets []string

	OutputDir string        // Default: processor.CurrentDirectoryMarker.
	Direction pma.Direction // Default: ToPma.
	PNGOnly   bool          // Default: true.
	Recursive bool
	Jobs      int // 0 selects runtime.NumCPU().

	Verbose   bool
	Progress  bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	return Config{
		OutputDir: processor.CurrentDirectoryMarker,
		Direction: pma.ToPma,
		PNGOnly:   true,
		ColorMode: ColorAuto,
	}
}

// Validate checks enum fields, the worker count and that at least one target
// was supplied.
func (c *Config) Validate() error {
	if !c.Direction.Valid() {
		return fmt.Errorf("%w: %v", pma.ErrInvalidDirection, c.Direction)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", c.ColorMode)
	}

	if c.Jobs < 0 {
		return fmt.Errorf("invalid job count %d (must be 0 or positive)", c.Jobs)
	}

	if len(c.Targets) == 0 {
		return ErrNoTargets
	}
	return nil
}

// Extension returns the file extension filter, or "" when every file is tried.
func (c *Config) Extension() string {
	if c.PNGOnly {
		return PNGExtension
	}
	return ""
}

// ProcessingOptions builds the read-only options shared by every conversion
// task. outputDir must already be resolved.
func (c *Config) ProcessingOptions(outputDir string) processor.Options {
	return processor.Options{
		OutputDir: outputDir,
		Direction: c.Direction,
		Extension: c.Extension(),
		Recursive: c.Recursive,
		Verbose:   c.Verbose,
		Workers:   c.Jobs,
	}
}
