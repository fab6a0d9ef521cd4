package pma

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Drift summarises how much a straight alpha image changes after one
// premultiply/un-premultiply round trip.
//
// Fully transparent pixels lose their color entirely in a round trip but are
// invisible, so they are counted in Transparent and left out of the error
// figures.
type Drift struct {
	Pixels      int
	Transparent int
	Changed     int
	MaxError    uint8
	MeanError   float64
	MeanDeltaE  float64
}

// MeasureRoundTrip computes the round-trip drift of img without modifying it.
// MeanDeltaE is the mean CIEDE2000 distance between the original and the
// round-tripped color of the visible pixels.
func MeasureRoundTrip(img *image.NRGBA) Drift {
	var d Drift
	var channelSum, deltaSum float64
	visible := 0

	r := img.Rect
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			d.Pixels++
			c := img.NRGBAAt(x, y)
			if c.A == 0 {
				d.Transparent++
				continue
			}
			visible++

			rt := ToNonPremultiplied(ToPremultiplied(c))
			changed := false
			for _, e := range [3]uint8{absDiff(c.R, rt.R), absDiff(c.G, rt.G), absDiff(c.B, rt.B)} {
				if e > d.MaxError {
					d.MaxError = e
				}
				if e > 0 {
					changed = true
				}
				channelSum += float64(e)
			}
			if changed {
				d.Changed++
				deltaSum += toColorful(c).DistanceCIEDE2000(toColorful(rt))
			}
		}
	}

	if visible > 0 {
		d.MeanError = channelSum / float64(visible*3)
		d.MeanDeltaE = deltaSum / float64(visible)
	}
	return d
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
