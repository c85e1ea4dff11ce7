// Package avatars renders deterministic identicon-style PNG avatars.
// The background color comes from the swatch derivation, so an avatar
// rendered anywhere for the same entity and seed is pixel-identical.
package avatars

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/listenupapp/swatch-server/pkg/swatch"
)

const (
	// MinSize is the smallest avatar edge we will render.
	MinSize = 16
	// DefaultSize is used when a request does not ask for a size.
	DefaultSize = 128

	// glyphHeight is the pixel height of the basicfont face used for initials.
	glyphHeight = 13
	// glyphAscent is the baseline offset of that face.
	glyphAscent = 11
)

// Options controls a single avatar rendering.
type Options struct {
	// Size is the square edge in pixels. Zero means DefaultSize; values
	// outside [MinSize, renderer max] are clamped, never rejected.
	Size int
	// Text is drawn centered as initials. At most two runes are kept;
	// anything longer is truncated, empty leaves a plain color tile.
	Text string
	// Seed feeds the color derivation.
	Seed int64
}

// Renderer produces avatar PNGs.
type Renderer struct {
	logger  *slog.Logger
	maxSize int
}

// NewRenderer creates a Renderer that clamps avatar edges to maxSize.
func NewRenderer(maxSize int, logger *slog.Logger) *Renderer {
	if maxSize < MinSize {
		maxSize = MinSize
	}
	return &Renderer{
		logger:  logger,
		maxSize: maxSize,
	}
}

// Render produces a PNG avatar for the given entity ID.
// The same ID, seed, text, and size always produce identical bytes.
func (r *Renderer) Render(id uuid.UUID, opts Options) ([]byte, error) {
	sw := swatch.FromUUID(id, opts.Seed)
	size := r.clampSize(opts.Size)

	bg := color.NRGBA{R: sw.Color.R, G: sw.Color.G, B: sw.Color.B, A: 0xFF}
	fg := color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
	if sw.IsDark {
		fg = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	if text := initials(opts.Text); text != "" {
		drawInitials(img, text, fg, size)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode avatar png: %w", err)
	}

	r.logger.Debug("rendered avatar",
		"id", id,
		"size", size,
		"text", opts.Text,
		"bytes", buf.Len(),
	)

	return buf.Bytes(), nil
}

// clampSize maps a requested edge into [MinSize, maxSize], with zero
// falling back to the default.
func (r *Renderer) clampSize(size int) int {
	if size == 0 {
		size = DefaultSize
	}
	if size < MinSize {
		return MinSize
	}
	if size > r.maxSize {
		return r.maxSize
	}
	return size
}

// initials normalizes avatar text: trimmed, uppercased, at most two runes.
func initials(text string) string {
	text = strings.ToUpper(strings.TrimSpace(text))
	runes := []rune(text)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}

// drawInitials renders the text small with the bitmap face, then
// integer-upscales it onto the center of the avatar. Nearest-neighbor
// keeps the glyph edges crisp and the output deterministic.
func drawInitials(dst *image.RGBA, text string, fg color.NRGBA, size int) {
	face := basicfont.Face7x13

	width := font.MeasureString(face, text).Ceil()
	if width < 1 {
		return
	}

	tile := image.NewRGBA(image.Rect(0, 0, width, glyphHeight))
	drawer := font.Drawer{
		Dst:  tile,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(0, glyphAscent),
	}
	drawer.DrawString(text)

	// Aim for glyphs around 40% of the avatar edge.
	scale := size * 2 / 5 / glyphHeight
	if scale < 1 {
		scale = 1
	}
	for scale > 1 && width*scale > size {
		scale--
	}

	scaled := scaleNearest(tile, scale)
	sb := scaled.Bounds()
	offset := image.Pt((size-sb.Dx())/2, (size-sb.Dy())/2)
	draw.Draw(dst, sb.Add(offset), scaled, sb.Min, draw.Over)
}

// scaleNearest upscales src by an integer factor.
func scaleNearest(src *image.RGBA, scale int) *image.RGBA {
	if scale == 1 {
		return src
	}

	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))

	for y := 0; y < dst.Rect.Dy(); y++ {
		for x := 0; x < dst.Rect.Dx(); x++ {
			dst.Set(x, y, src.At(b.Min.X+x/scale, b.Min.Y+y/scale))
		}
	}

	return dst
}
