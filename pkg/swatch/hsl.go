package swatch

import "math"

// hslToRGB converts HSL to fractional RGB channels in [0, 1] using the
// alternative formula from the HSL and HSV reference. Hue is taken
// modulo 360 with negatives wrapping into [0, 360); saturation and
// lightness must already be within [0, 1].
func hslToRGB(h, s, l float64) (r, g, b float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	a := s * math.Min(l, 1-l)
	f := func(n float64) float64 {
		k := math.Mod(n+h/30, 12)
		t := math.Min(k-3, 9-k)
		if t > 1 {
			t = 1
		} else if t < -1 {
			t = -1
		}
		return l - a*t
	}

	return f(0), f(8), f(4)
}

// hslToRGB8 converts HSL to an 8-bit RGB color. Channels are scaled by
// 256 and truncated, capped at 255 for the lightness = 1 edge.
// Truncation rather than rounding is part of the contract shared with
// client implementations.
func hslToRGB8(h, s, l float64) RGB {
	r, g, b := hslToRGB(h, s, l)
	return RGB{R: scale8(r), G: scale8(g), B: scale8(b)}
}

func scale8(v float64) uint8 {
	n := int(v * 256)
	if n > 255 {
		n = 255
	}
	return uint8(n)
}
