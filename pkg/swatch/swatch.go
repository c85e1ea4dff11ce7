package swatch

import (
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Algorithm identifies the derivation pipeline. Clients that implement
// the pipeline themselves can compare this tag before mixing locally
// derived colors with server-provided ones.
const Algorithm = "xxh64-hsl/1"

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as an uppercase #RRGGBB string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Swatch is the derived display color for one identifier.
type Swatch struct {
	Color RGB
	// IsDark reports whether the color is dark enough that foreground
	// text drawn over it should be light.
	IsDark bool
}

// Hex formats the swatch color as an uppercase #RRGGBB string.
func (s Swatch) Hex() string {
	return s.Color.Hex()
}

// FromUUID derives the display color for id. The same (id, seed) pair
// always yields the same swatch; see the package documentation for the
// exact derivation. The nil UUID returns black with IsDark set.
func FromUUID(id uuid.UUID, seed int64) Swatch {
	if id == uuid.Nil {
		return Swatch{Color: RGB{}, IsDark: true}
	}

	d := xxhash.NewWithSeed(uint64(seed))
	d.Write(id[:])
	sum := d.Sum64()

	// High word drives hue, low word drives lightness. Lightness is
	// compressed into [0.2, 0.8) so every color stays distinguishable
	// from both black and white at full saturation.
	hue := float64(uint32(sum>>32)) / math.MaxUint32 * 360
	lightness := float64(uint32(sum))/math.MaxUint32*0.6 + 0.2

	return Swatch{
		Color:  hslToRGB8(hue, 1, lightness),
		IsDark: isDark(hue, lightness),
	}
}

// HTMLFromUUID derives the swatch for id and returns it as an
// uppercase #RRGGBB hex string plus the is-dark flag.
func HTMLFromUUID(id uuid.UUID, seed int64) (string, bool) {
	s := FromUUID(id, seed)
	return s.Hex(), s.IsDark
}

// isDark classifies whether a background of the given hue and
// lightness needs light foreground text. Hues between 30° and 210°
// (yellow through cyan) read lighter to the eye at the same lightness,
// so they get a lower cutoff.
func isDark(hue, lightness float64) bool {
	if hue < 30 || hue > 210 {
		return lightness <= 0.7
	}
	return lightness <= 0.45
}
