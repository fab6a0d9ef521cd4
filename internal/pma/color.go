// Package pma converts pixels and images between straight (non-premultiplied)
// and premultiplied alpha.
//
// All arithmetic is done on 8-bit integers. Both conversions lose precision,
// so converting back and forth degrades color quality for translucent pixels.
// For a channel value c and alpha a, one premultiply/un-premultiply round trip
// yields c - floor(r/a) where r = (c*a) mod 255, so the error is never larger
// than floor(254/a): at most 1 for a >= 128 and 0 for opaque pixels. Further
// round trips reproduce the first one exactly.
package pma

import "image/color"

// ToPremultiplied scales the color channels of c by its alpha, truncating
// toward zero. Alpha is unchanged; a fully transparent pixel becomes (0,0,0,0).
func ToPremultiplied(c color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: premultiply(c.R, c.A),
		G: premultiply(c.G, c.A),
		B: premultiply(c.B, c.A),
		A: c.A,
	}
}

// ToNonPremultiplied divides the color channels of c by its alpha, rounding
// up and clamping to 255. Alpha is unchanged.
//
// Nothing can be recovered from a fully transparent pixel, so when alpha is 0
// the channels are passed through untouched.
func ToNonPremultiplied(c color.NRGBA) color.NRGBA {
	if c.A == 0 {
		return c
	}
	return color.NRGBA{
		R: unpremultiply(c.R, c.A),
		G: unpremultiply(c.G, c.A),
		B: unpremultiply(c.B, c.A),
		A: c.A,
	}
}

func premultiply(v, a uint8) uint8 {
	return uint8(uint32(v) * uint32(a) / 255)
}

// unpremultiply expects a > 0.
func unpremultiply(v, a uint8) uint8 {
	n := uint32(v) * 255
	d := uint32(a)
	q := (n + d - 1) / d
	if q > 255 {
		return 255
	}
	return uint8(q)
}
