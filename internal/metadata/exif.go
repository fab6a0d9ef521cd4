package metadata

import (
	"errors"
	"io"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
)

type exifAnalysis struct {
	Tags         int
	HasGPS       bool
	HasTimestamp bool
}

func analyzeExif(rs io.ReadSeeker) (exifAnalysis, error) {
	analysis := exifAnalysis{}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return analysis, err
	}

	rawExif, err := exif.SearchAndExtractExifWithReader(rs)
	if err != nil {
		if isNoExif(err) {
			return analysis, nil
		}
		return analysis, err
	}

	tags, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return analysis, err
	}

	analysis.Tags = len(tags)
	for _, tag := range tags {
		if strings.HasPrefix(tag.TagName, "GPS") || strings.Contains(tag.IfdPath, "GPS") {
			analysis.HasGPS = true
		}
		switch tag.TagName {
		case "DateTime", "DateTimeOriginal", "DateTimeDigitized":
			analysis.HasTimestamp = true
		}
	}

	return analysis, nil
}

func isNoExif(err error) bool {
	return errors.Is(err, exif.ErrNoExif) || strings.Contains(strings.ToLower(err.Error()), "no exif")
}
