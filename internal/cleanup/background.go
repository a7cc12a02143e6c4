package cleanup

import (
	"github.com/sliceforge/sliceforge/internal/pixel"
)

// Params holds the remover's tunables.
type Params struct {
	// Tolerance is the baseline RGB-distance tolerance for a pixel to count
	// as background. The effective tolerance is
	// max(Tolerance, Aggressiveness*2).
	Tolerance int

	// Aggressiveness (nominally 0-100) scales how readily ambiguous pixels
	// are classified as background or shadow and erased. Out-of-range
	// values are not rejected; the derived thresholds just keep moving.
	Aggressiveness int
}

// sampleClusterDistance groups background samples that sit within this RGB
// distance of each other.
const sampleClusterDistance = 20.0

// RemoveBackground returns a copy of buf with the border-connected
// background cleared to full transparency and shadow residue along the
// edges removed. The input buffer is not modified.
func RemoveBackground(buf *pixel.Buffer, p Params) *pixel.Buffer {
	out := buf.Clone()
	if out.Width == 0 || out.Height == 0 {
		return out
	}

	bg, ok := sampleBackground(out)
	if ok {
		mask := floodMask(out, bg, effectiveTolerance(p))
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				if mask.Get(x, y) {
					out.Clear(x, y)
				}
			}
		}
	}

	removeGradientShadows(out, p)
	removeResidualShadows(out, p)
	return out
}

func effectiveTolerance(p Params) float64 {
	tol := float64(p.Tolerance)
	if a := float64(p.Aggressiveness) * 2; a > tol {
		tol = a
	}
	return tol
}

// sampleBackground picks the background color by sampling up to 8 points:
// the 4 corners plus, when the image is large enough, 4 points inset from
// the corners. The inset dodges corners that happen to be antialiased into
// widget content. Samples are clustered by RGB distance; the largest
// cluster's channel-wise average wins.
func sampleBackground(buf *pixel.Buffer) (pixel.Color, bool) {
	w, h := buf.Width, buf.Height
	points := [][2]int{
		{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1},
	}

	inset := minInt(3, minInt(w, h)/4)
	if inset >= 1 && inset*2 < w && inset*2 < h {
		points = append(points,
			[2]int{inset, inset},
			[2]int{w - 1 - inset, inset},
			[2]int{inset, h - 1 - inset},
			[2]int{w - 1 - inset, h - 1 - inset},
		)
	}

	samples := make([]pixel.Color, 0, len(points))
	for _, pt := range points {
		if buf.In(pt[0], pt[1]) {
			samples = append(samples, buf.At(pt[0], pt[1]))
		}
	}
	if len(samples) == 0 {
		return pixel.Color{}, false
	}

	// Greedy clustering against each cluster's first member.
	var clusters [][]pixel.Color
	for _, s := range samples {
		placed := false
		for i := range clusters {
			if s.DistanceRGB(clusters[i][0]) <= sampleClusterDistance {
				clusters[i] = append(clusters[i], s)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, []pixel.Color{s})
		}
	}

	best := clusters[0]
	for _, c := range clusters[1:] {
		if len(c) > len(best) {
			best = c
		}
	}

	var r, g, b, a int
	for _, s := range best {
		r += int(s.R)
		g += int(s.G)
		b += int(s.B)
		a += int(s.A)
	}
	n := len(best)
	return pixel.Color{
		R: uint8(r / n),
		G: uint8(g / n),
		B: uint8(b / n),
		A: uint8(a / n),
	}, true
}

// floodMask marks every background-candidate pixel reachable from the image
// border through 4-connected candidates. Candidates not connected to an
// edge stay unmasked, which is what keeps interior background-colored
// shapes alive.
func floodMask(buf *pixel.Buffer, bg pixel.Color, tol float64) *pixel.Mask {
	w, h := buf.Width, buf.Height
	mask := pixel.NewMask(w, h)
	visited := pixel.NewMask(w, h)
	queue := newWorkQueue(2 * (w + h))

	candidate := func(x, y int) bool {
		return buf.At(x, y).DistanceRGB(bg) <= tol
	}
	seed := func(x, y int) {
		if !visited.Get(x, y) && candidate(x, y) {
			visited.Set(x, y, true)
			mask.Set(x, y, true)
			queue.push(int32(y*w + x))
		}
	}

	for x := 0; x < w; x++ {
		seed(x, 0)
		seed(x, h-1)
	}
	for y := 0; y < h; y++ {
		seed(0, y)
		seed(w-1, y)
	}

	for {
		off, ok := queue.pop()
		if !ok {
			break
		}
		x := int(off) % w
		y := int(off) / w
		for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if visited.Get(nx, ny) || !candidate(nx, ny) {
				continue
			}
			visited.Set(nx, ny, true)
			mask.Set(nx, ny, true)
			queue.push(int32(ny*w + nx))
		}
	}
	return mask
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
