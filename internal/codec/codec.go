// Package codec loads images into straight alpha NRGBA buffers and writes
// them back to disk.
//
// PNG, JPEG, GIF, TIFF and BMP are read and written through
// github.com/disintegration/imaging; WebP can be read but not written. NRGBA
// pixel bytes are stored as-is, so a premultiplied buffer saved as PNG loads
// back with the same bytes.
package codec

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Imaging is the codec backed by github.com/disintegration/imaging.
// The zero value is ready to use and safe for concurrent use.
type Imaging struct{}

// Load opens and decodes the image at path.
func (Imaging) Load(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return toNRGBA(img), nil
}

// Decode decodes an image from r.
func (Imaging) Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return toNRGBA(img), nil
}

// Save encodes img in the format implied by the extension of path. The data
// is written to a temporary file in the destination directory and renamed
// into place, so a reader never sees a partially written file.
func (Imaging) Save(img *image.NRGBA, path string) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("cannot save %s: %w", filepath.Base(path), err)
	}

	destDir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(destDir, ".pmaconv-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := imaging.Encode(tmpFile, img, format); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return replaceFile(tmpFile.Name(), path)
}

// toNRGBA returns img itself when it already is a zero-origin NRGBA buffer
// and a straight alpha copy otherwise.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}
