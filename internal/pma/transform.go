package pma

import (
	"fmt"
	"image"
	"image/color"
)

// Transform converts every pixel of img in place and returns img.
//
// The caller must own img exclusively for the duration of the call. Pixels
// are independent, so the whole image is converted on the calling goroutine;
// batches get their parallelism from converting several files at once.
func Transform(img *image.NRGBA, dir Direction) *image.NRGBA {
	var convert func(color.NRGBA) color.NRGBA
	switch dir {
	case ToPma:
		convert = ToPremultiplied
	case FromPma:
		convert = ToNonPremultiplied
	default:
		panic(fmt.Sprintf("pma: unknown direction %v", dir))
	}

	r := img.Rect
	width := r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, y):]
		for x := 0; x < width; x++ {
			px := row[x*4 : x*4+4 : x*4+4]
			c := convert(color.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]})
			px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
		}
	}
	return img
}
