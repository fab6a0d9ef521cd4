package pma

import (
	"errors"
	"image/color"
	"testing"
)

func TestToPremultipliedNeverBrightens(t *testing.T) {
	for a := 0; a < 256; a++ {
		for v := 0; v < 256; v++ {
			in := color.NRGBA{R: uint8(v), G: uint8(255 - v), B: uint8(v / 2), A: uint8(a)}
			out := ToPremultiplied(in)
			if out.A != in.A {
				t.Fatalf("alpha changed for %v: %v", in, out)
			}
			if out.R > in.R || out.G > in.G || out.B > in.B {
				t.Fatalf("premultiplied %v brighter than input: %v", in, out)
			}
			if a == 0 && (out.R != 0 || out.G != 0 || out.B != 0) {
				t.Fatalf("transparent pixel %v kept color: %v", in, out)
			}
		}
	}
}

func TestToPremultipliedTruncates(t *testing.T) {
	tests := []struct {
		in   color.NRGBA
		want color.NRGBA
	}{
		{color.NRGBA{200, 100, 50, 128}, color.NRGBA{100, 50, 25, 128}},
		{color.NRGBA{10, 10, 10, 0}, color.NRGBA{0, 0, 0, 0}},
		{color.NRGBA{255, 255, 255, 255}, color.NRGBA{255, 255, 255, 255}},
		{color.NRGBA{255, 1, 254, 1}, color.NRGBA{1, 0, 0, 1}},
		{color.NRGBA{254, 128, 3, 254}, color.NRGBA{253, 127, 2, 254}},
	}
	for _, tt := range tests {
		if got := ToPremultiplied(tt.in); got != tt.want {
			t.Errorf("ToPremultiplied(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToNonPremultipliedRoundsUpAndClamps(t *testing.T) {
	tests := []struct {
		in   color.NRGBA
		want color.NRGBA
	}{
		{color.NRGBA{100, 50, 25, 128}, color.NRGBA{200, 100, 50, 128}},
		{color.NRGBA{1, 0, 0, 1}, color.NRGBA{255, 0, 0, 1}},
		{color.NRGBA{200, 10, 0, 100}, color.NRGBA{255, 26, 0, 100}},
		{color.NRGBA{12, 34, 56, 255}, color.NRGBA{12, 34, 56, 255}},
	}
	for _, tt := range tests {
		if got := ToNonPremultiplied(tt.in); got != tt.want {
			t.Errorf("ToNonPremultiplied(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToNonPremultipliedTransparentPassesThrough(t *testing.T) {
	in := color.NRGBA{R: 10, G: 20, B: 30, A: 0}
	if got := ToNonPremultiplied(in); got != in {
		t.Fatalf("ToNonPremultiplied(%v) = %v, want unchanged", in, got)
	}
}

func TestToNonPremultipliedKeepsAlpha(t *testing.T) {
	for a := 1; a < 256; a++ {
		for v := 0; v < 256; v++ {
			in := color.NRGBA{R: uint8(v), G: uint8(v), B: uint8(v), A: uint8(a)}
			out := ToNonPremultiplied(in)
			if out.A != in.A {
				t.Fatalf("alpha changed for %v: %v", in, out)
			}
			if v <= a && out.R < in.R {
				t.Fatalf("un-premultiplied %v darker than input: %v", in, out)
			}
		}
	}
}

func TestRoundTripErrorBound(t *testing.T) {
	for a := 1; a < 256; a++ {
		bound := 254 / a
		for v := 0; v < 256; v++ {
			in := color.NRGBA{R: uint8(v), A: uint8(a)}
			once := ToNonPremultiplied(ToPremultiplied(in))
			if once.R > in.R {
				t.Fatalf("round trip of %v grew: %v", in, once)
			}
			if int(in.R-once.R) > bound {
				t.Fatalf("round trip of %v off by %d, bound %d", in, in.R-once.R, bound)
			}
			twice := ToNonPremultiplied(ToPremultiplied(once))
			if twice != once {
				t.Fatalf("second round trip of %v drifted: %v -> %v", in, once, twice)
			}
		}
	}
}

func TestRoundTripOpaqueIsLossless(t *testing.T) {
	for v := 0; v < 256; v++ {
		in := color.NRGBA{R: uint8(v), G: uint8(v), B: uint8(v), A: 255}
		if got := ToNonPremultiplied(ToPremultiplied(in)); got != in {
			t.Fatalf("opaque round trip of %v = %v", in, got)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"ToPma", ToPma, false},
		{"topma", ToPma, false},
		{"FROMPMA", FromPma, false},
		{" FromPma ", FromPma, false},
		{"sideways", ToPma, true},
		{"", ToPma, true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidDirection) {
				t.Errorf("ParseDirection(%q) error = %v, want ErrInvalidDirection", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if got.String() == "" || !got.Valid() {
			t.Errorf("direction %d has no name", got)
		}
	}
}
