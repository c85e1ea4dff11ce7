package avatars

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/bbrks/go-blurhash"
	"github.com/google/uuid"

	"github.com/listenupapp/swatch-server/pkg/swatch"
)

// blurHashTile is the edge of the scratch image fed to the encoder.
// The avatar background is a single flat color, so a tiny tile encodes
// exactly the same hash as a full-size render would.
const blurHashTile = 8

// BlurHash returns the BlurHash placeholder string for an entity's
// swatch. 1x1 components collapse to the average color, which for a
// flat tile is the swatch itself (~6 characters).
func (r *Renderer) BlurHash(id uuid.UUID, seed int64) (string, error) {
	sw := swatch.FromUUID(id, seed)

	img := image.NewRGBA(image.Rect(0, 0, blurHashTile, blurHashTile))
	fill := color.NRGBA{R: sw.Color.R, G: sw.Color.G, B: sw.Color.B, A: 0xFF}
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	hash, err := blurhash.Encode(1, 1, img)
	if err != nil {
		return "", fmt.Errorf("encode blurhash: %w", err)
	}

	return hash, nil
}
