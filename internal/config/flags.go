package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"pmaconv/internal/pma"
)

// BindFlags registers the conversion flags on fs, writing into c. Defaults
// come from the current values of c.
func BindFlags(fs *pflag.FlagSet, c *Config) {
	fs.StringVarP(&c.OutputDir, "outdir", "o", c.OutputDir, "directory where converted files are placed")
	fs.VarP(&DirectionValue{&c.Direction}, "convert", "c",
		`conversion direction: "ToPma" (straight to premultiplied) or "FromPma" (premultiplied to straight), case-insensitive`)
	fs.BoolVarP(&c.PNGOnly, "pngonly", "p", c.PNGOnly, "convert only files with the '.png' extension")
	fs.BoolVarP(&c.Recursive, "recursive", "r", c.Recursive, "descend into subdirectories of directory targets")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "print every informational message")
	fs.IntVarP(&c.Jobs, "jobs", "j", c.Jobs, "number of files converted in parallel (0 = number of CPUs)")
	fs.BoolVar(&c.Progress, "progress", c.Progress, "show a live progress view when attached to a terminal")
	fs.Var(&colorModeValue{&c.ColorMode}, "color", "styled output: auto | always | never")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "append plain-text log lines to this file")
}

// DirectionValue adapts a pma.Direction to pflag.
type DirectionValue struct{ d *pma.Direction }

var _ pflag.Value = (*DirectionValue)(nil)

func (v *DirectionValue) String() string {
	if v == nil || v.d == nil {
		return pma.ToPma.String()
	}
	return v.d.String()
}

func (v *DirectionValue) Set(s string) error {
	d, err := pma.ParseDirection(s)
	if err != nil {
		return err
	}
	*v.d = d
	return nil
}

func (v *DirectionValue) Type() string { return "direction" }

type colorModeValue struct{ m *ColorMode }

func (v *colorModeValue) String() string {
	if v == nil || v.m == nil {
		return string(ColorAuto)
	}
	return string(*v.m)
}

func (v *colorModeValue) Set(s string) error {
	m := ColorMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		*v.m = m
		return nil
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
}

func (v *colorModeValue) Type() string { return "mode" }
