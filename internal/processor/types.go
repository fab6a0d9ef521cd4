package processor

import (
	"errors"
	"image"
	"io"

	"pmaconv/internal/pma"
)

// ErrNotFound is recorded for targets that are neither a file nor a directory.
var ErrNotFound = errors.New("does not exist")

// Options are shared read-only by every conversion task of a run.
type Options struct {
	OutputDir string
	Direction pma.Direction
	Extension string // "" converts every file; otherwise e.g. ".png".
	Recursive bool
	Verbose   bool
	Workers   int // 0 selects runtime.NumCPU().
}

// Codec decodes source images and writes converted ones.
type Codec interface {
	Decode(r io.Reader) (*image.NRGBA, error)
	Save(img *image.NRGBA, path string) error
}

// Reporter receives human-readable progress messages. Implementations must be
// safe for concurrent use.
type Reporter interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type Outcome int

const (
	Converted Outcome = iota
	Skipped
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Converted:
		return "converted"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

type Job struct {
	Path   string
	Output string
}

// Result is the outcome of one file, or of a target that could not be resolved.
type Result struct {
	Path    string
	Output  string
	Outcome Outcome
	Err     error
}

// BatchReport collects the results of a run. Order is not significant.
type BatchReport struct {
	Results []Result
}

// Count returns the number of results with outcome o.
func (r BatchReport) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Merge appends the results of other.
func (r *BatchReport) Merge(other BatchReport) {
	r.Results = append(r.Results, other.Results...)
}

type Summary struct {
	Total     int
	Converted int
	Skipped   int
	Failed    int
}

func (r BatchReport) Summary() Summary {
	return Summary{
		Total:     len(r.Results),
		Converted: r.Count(Converted),
		Skipped:   r.Count(Skipped),
		Failed:    r.Count(Failed),
	}
}

type ProgressUpdate struct {
	TotalDelta     int
	ConvertedDelta int
	SkippedDelta   int
	FailedDelta    int
}
