// Package metadata detects source metadata that is lost when an image is
// decoded and re-encoded. Nothing here modifies or copies metadata.
package metadata

import (
	"io"
	"sort"

	"pmaconv/pkg/imgutil"
)

// Category names reported by Inspect.
const (
	CategoryText      = "Text"
	CategoryExif      = "EXIF"
	CategoryGPS       = "GPS"
	CategoryICC       = "ICC profile"
	CategoryTimestamp = "Timestamp"
	CategoryGamma     = "Gamma"
)

// Findings is the sorted set of metadata categories found in a file.
type Findings []string

// Inspect reports which metadata categories rs carries. rs is rewound before
// reading; kinds without a known metadata layout report nothing.
func Inspect(rs io.ReadSeeker, kind imgutil.Kind) (Findings, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	set := map[string]bool{}
	switch {
	case kind == imgutil.KindPNG:
		if err := scanPNG(rs, set); err != nil {
			return nil, err
		}
	case kind.HasExif():
		analysis, err := analyzeExif(rs)
		if err != nil {
			return nil, err
		}
		if analysis.Tags > 0 {
			set[CategoryExif] = true
		}
		if analysis.HasGPS {
			set[CategoryGPS] = true
		}
		if analysis.HasTimestamp {
			set[CategoryTimestamp] = true
		}
	default:
		return nil, nil
	}

	if len(set) == 0 {
		return nil, nil
	}
	out := make(Findings, 0, len(set))
	for category := range set {
		out = append(out, category)
	}
	sort.Strings(out)
	return out, nil
}
