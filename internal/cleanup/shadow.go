package cleanup

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/sliceforge/sliceforge/internal/pixel"
)

// Axis selects whether slice centers are Y coordinates (Horizontal bands)
// or X coordinates (Vertical bands).
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

const opaqueAlpha = 250

// removeGradientShadows scans a shallow band along each of the four image
// edges and erases drop-shadow residue: semi-transparent pixels
// unconditionally, and opaque pixels only when they look like shadow
// (desaturated and dark) with no fully opaque real content immediately
// behind them.
func removeGradientShadows(buf *pixel.Buffer, p Params) {
	depth := maxInt(3, minInt(15, p.Aggressiveness/6))
	satThreshold := 0.3 - float64(p.Aggressiveness)/500

	w, h := buf.Width, buf.Height
	scan := func(x, y int) {
		c := buf.At(x, y)
		if c.A == 0 {
			return
		}
		if c.A < opaqueAlpha {
			buf.Clear(x, y)
			return
		}
		sat, bri := satBrightness(c)
		if sat >= satThreshold || bri >= 200 {
			return
		}
		if hasOpaqueBacking(buf, x, y) {
			return
		}
		buf.Clear(x, y)
	}

	for y := 0; y < h; y++ {
		for d := 0; d < depth && d < w; d++ {
			scan(d, y)
			scan(w-1-d, y)
		}
	}
	for x := 0; x < w; x++ {
		for d := 0; d < depth && d < h; d++ {
			scan(x, d)
			scan(x, h-1-d)
		}
	}
}

// hasOpaqueBacking reports whether any 8-connected neighbor is fully opaque
// and saturated or bright enough to be real content rather than shadow.
func hasOpaqueBacking(buf *pixel.Buffer, x, y int) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !buf.In(nx, ny) {
				continue
			}
			n := buf.At(nx, ny)
			if n.A < opaqueAlpha {
				continue
			}
			sat, bri := satBrightness(n)
			if sat > 0.3 || bri > 150 {
				return true
			}
		}
	}
	return false
}

// removeResidualShadows zeroes leftover semi-transparent pixels whose
// neighborhoods are mostly transparent. The alpha<128 requirement plus the
// two-transparent-neighbor rule keeps anti-aliased content edges, which hug
// opaque pixels, untouched.
func removeResidualShadows(buf *pixel.Buffer, p Params) {
	threshold := 255 - float64(p.Aggressiveness)*1.5
	if threshold < 200 {
		threshold = 200
	}

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			a := buf.Alpha(x, y)
			if a == 0 || float64(a) >= threshold {
				continue
			}
			if a < 128 && transparentNeighbors(buf, x, y) >= 2 {
				buf.Clear(x, y)
			}
		}
	}
}

// RemoveShadowsAlongSlices erases semi-transparent shadow fringes in a band
// of ±shadowWidth pixels around each slice center, in place. buf must be
// owned by the caller. Axis Horizontal treats centers as Y coordinates,
// Vertical as X.
//
// Cell extraction cuts straight through divider drop shadows, so the fringe
// this removes sits exactly where the slices ran.
func RemoveShadowsAlongSlices(buf *pixel.Buffer, centers []int, shadowWidth int, axis Axis) {
	for _, center := range centers {
		for d := -shadowWidth; d <= shadowWidth; d++ {
			if axis == Horizontal {
				y := center + d
				if y < 0 || y >= buf.Height {
					continue
				}
				for x := 0; x < buf.Width; x++ {
					clearSliceShadow(buf, x, y)
				}
			} else {
				x := center + d
				if x < 0 || x >= buf.Width {
					continue
				}
				for y := 0; y < buf.Height; y++ {
					clearSliceShadow(buf, x, y)
				}
			}
		}
	}
}

func clearSliceShadow(buf *pixel.Buffer, x, y int) {
	a := buf.Alpha(x, y)
	if a == 0 || a >= 200 {
		return
	}
	if transparentNeighbors(buf, x, y) >= 2 {
		buf.Clear(x, y)
	}
}

// transparentNeighbors counts fully transparent 4-connected neighbors.
// Out-of-bounds neighbors count as transparent, matching the edge-seeded
// flood fill's view of the world outside the buffer.
func transparentNeighbors(buf *pixel.Buffer, x, y int) int {
	count := 0
	for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		nx, ny := x+d[0], y+d[1]
		if !buf.In(nx, ny) || buf.Alpha(nx, ny) == 0 {
			count++
		}
	}
	return count
}

// satBrightness returns HSV saturation (0-1) and brightness on the 0-255
// scale for a pixel color.
func satBrightness(c pixel.Color) (float64, float64) {
	cf := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	_, s, v := cf.Hsv()
	return s, v * 255
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
