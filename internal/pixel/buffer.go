package pixel

import (
	"fmt"
	"image"
	"image/draw"
	"math"
)

// Color is an 8-bit RGBA color.
//
// Colors are compared by Euclidean distance over the RGB components only;
// alpha is always compared separately with its own tolerance, because a
// shadow fringe shares the background's hue while differing wildly in alpha.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// DistanceRGB returns the Euclidean distance between two colors in RGB
// space, ignoring alpha. The range is [0, ~441.7].
func (c Color) DistanceRGB(o Color) float64 {
	dr := float64(c.R) - float64(o.R)
	dg := float64(c.G) - float64(o.G)
	db := float64(c.B) - float64(o.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Hex returns the color as "#RRGGBB" (alpha excluded).
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Buffer is a mutable width×height RGBA pixel buffer.
//
// Pix holds 4 interleaved bytes (R, G, B, A) per pixel in row-major order.
// Invariant: len(Pix) == Width*Height*4. Constructors enforce it; violating
// it by hand is a programming error and the accessors will panic via the
// usual slice bounds checks.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// New returns a zeroed (fully transparent) buffer of the given size.
// Negative dimensions are treated as zero.
func New(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// FromImage copies an image.Image into a new Buffer.
//
// The image's bounds offset is discarded; the buffer always starts at (0,0).
// Drawing through image/draw handles premultiplied and Y'CbCr sources.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return &Buffer{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    rgba.Pix,
	}
}

// ToImage copies the buffer into a stdlib image for encoding or display.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Pix)
	return img
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// In reports whether (x, y) lies inside the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Offset returns the index of the R byte for (x, y).
// No bounds checking; the caller guarantees validity.
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// At returns the color at (x, y). No bounds checking.
func (b *Buffer) At(x, y int) Color {
	i := b.Offset(x, y)
	return Color{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// Set writes the color at (x, y). No bounds checking.
func (b *Buffer) Set(x, y int, c Color) {
	i := b.Offset(x, y)
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}

// Alpha returns the alpha byte at (x, y). No bounds checking.
func (b *Buffer) Alpha(x, y int) uint8 {
	return b.Pix[b.Offset(x, y)+3]
}

// SetAlpha overwrites the alpha byte at (x, y). No bounds checking.
func (b *Buffer) SetAlpha(x, y int, a uint8) {
	b.Pix[b.Offset(x, y)+3] = a
}

// Clear zeroes the alpha of the pixel at (x, y), leaving RGB in place so the
// original color can still be inspected by later heuristics.
func (b *Buffer) Clear(x, y int) {
	b.SetAlpha(x, y, 0)
}

// SubBuffer copies the rectangle (x, y, w, h) into a new Buffer.
//
// The rectangle is clipped to the source; a rectangle fully outside the
// source yields an empty buffer of the clipped size.
func (b *Buffer) SubBuffer(x, y, w, h int) *Buffer {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > b.Width {
		w = b.Width - x
	}
	if y+h > b.Height {
		h = b.Height - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	out := New(w, h)
	for row := 0; row < h; row++ {
		src := b.Offset(x, y+row)
		dst := out.Offset(0, row)
		copy(out.Pix[dst:dst+w*4], b.Pix[src:src+w*4])
	}
	return out
}

// Mask is a width×height boolean bitmap, used for flood-fill candidate and
// visited sets. Kept flat for the same reason Buffer is.
type Mask struct {
	Width  int
	Height int
	Bits   []bool
}

// NewMask returns an all-false mask of the given size.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{Width: width, Height: height, Bits: make([]bool, width*height)}
}

// Get reports the bit at (x, y). No bounds checking.
func (m *Mask) Get(x, y int) bool {
	return m.Bits[y*m.Width+x]
}

// Set sets the bit at (x, y). No bounds checking.
func (m *Mask) Set(x, y int, v bool) {
	m.Bits[y*m.Width+x] = v
}
