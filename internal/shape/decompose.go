package shape

import (
	"math"

	"github.com/sliceforge/sliceforge/internal/pixel"
)

const (
	// fillAlpha is the alpha floor for a pixel to count toward a filled
	// rectangle or a line run.
	fillAlpha = 200

	// cornerAlpha is the alpha floor for the rounded-corner walk to call a
	// pixel "inside".
	cornerAlpha = 128

	// fillRatio of the bounds area that must be filled for the rectangle
	// test.
	fillRatio = 0.95

	// lineRatio of the bounds extent a run must cover to count as a line.
	lineRatio = 0.8

	// minLineSpan is the minimum bounds extent along a line's own axis
	// before that axis is scanned at all. Below it, every cross-section of
	// a thin strip would qualify as a "run" of the perpendicular axis.
	minLineSpan = 8

	// minRectSide is the minimum bounds extent on both axes for the plain
	// rectangle test; thinner fills read as lines.
	minRectSide = 5

	// maxCornerWalk caps the diagonal corner sample window.
	maxCornerWalk = 20
)

// Decompose computes the content bounding box of a cleaned buffer and
// classifies its pixels into primitives.
func Decompose(buf *pixel.Buffer) *Analysis {
	bounds, ok := contentBounds(buf)
	if !ok {
		return &Analysis{IsEmpty: true}
	}

	a := &Analysis{Bounds: bounds}

	if rounded, ok := detectRounded(buf, bounds); ok {
		a.Shapes = append(a.Shapes, rounded)
	} else if rect, ok := detectRectangle(buf, bounds); ok {
		a.Shapes = append(a.Shapes, rect)
	}

	a.Shapes = append(a.Shapes, detectLines(buf, bounds, KindHorizontalLine)...)
	a.Shapes = append(a.Shapes, detectLines(buf, bounds, KindVerticalLine)...)

	return a
}

// contentBounds returns the tight bounding box of all pixels with alpha > 0.
func contentBounds(buf *pixel.Buffer) (Bounds, bool) {
	minX, minY := buf.Width, buf.Height
	maxX, maxY := -1, -1
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			if buf.Alpha(x, y) == 0 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		return Bounds{}, false
	}
	return Bounds{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}, true
}

// detectRectangle tests whether the bounds are an almost fully filled
// rectangle: more than fillRatio of the area at alpha > fillAlpha.
func detectRectangle(buf *pixel.Buffer, b Bounds) (Shape, bool) {
	if b.Width < minRectSide || b.Height < minRectSide {
		return Shape{}, false
	}
	filled := 0
	for y := b.Y; y < b.Y+b.Height; y++ {
		for x := b.X; x < b.X+b.Width; x++ {
			if buf.Alpha(x, y) > fillAlpha {
				filled++
			}
		}
	}
	if float64(filled) <= fillRatio*float64(b.Width*b.Height) {
		return Shape{}, false
	}
	return Shape{
		Kind:   KindRectangle,
		X:      b.X,
		Y:      b.Y,
		Width:  b.Width,
		Height: b.Height,
		Color:  buf.At(b.X+b.Width/2, b.Y+b.Height/2),
	}, true
}

// detectRounded walks diagonally inward from each corner of the bounds and
// estimates a corner radius from where the walk first hits content.
//
// A quarter circle of radius r is first entered r·(1−1/√2) diagonal steps
// from the corner, so the raw step count is scaled by √2/(√2−1) — with a
// half-step back for the integer walk overshooting the true entry point —
// to recover r. Using the raw step count would report a third of the real
// radius.
func detectRounded(buf *pixel.Buffer, b Bounds) (Shape, bool) {
	steps := minInt(maxCornerWalk, minInt(b.Width, b.Height)/4)

	walk := func(sx, sy, dx, dy int) int {
		for i := 0; i < steps; i++ {
			if buf.Alpha(sx+i*dx, sy+i*dy) > cornerAlpha {
				return radiusFromSteps(i)
			}
		}
		return 0
	}

	radii := [4]int{
		walk(b.X, b.Y, 1, 1),                         // top-left
		walk(b.X+b.Width-1, b.Y, -1, 1),              // top-right
		walk(b.X, b.Y+b.Height-1, 1, -1),             // bottom-left
		walk(b.X+b.Width-1, b.Y+b.Height-1, -1, -1),  // bottom-right
	}

	sum, n := 0, 0
	for _, r := range radii {
		if r > 0 {
			sum += r
			n++
		}
	}
	if n == 0 {
		return Shape{}, false
	}

	return Shape{
		Kind:         KindRounded,
		X:            b.X,
		Y:            b.Y,
		Width:        b.Width,
		Height:       b.Height,
		Color:        buf.At(b.X+b.Width/2, b.Y+b.Height/2),
		CornerRadius: int(math.Round(float64(sum) / float64(n))),
		CornerRadii:  radii,
	}, true
}

func radiusFromSteps(steps int) int {
	if steps <= 0 {
		return 0
	}
	const scale = math.Sqrt2 / (math.Sqrt2 - 1)
	return int(math.Round((float64(steps) - 0.5) * scale))
}

// run is one qualifying opaque run within a single row or column.
type run struct {
	pos   int // row index for horizontal, column index for vertical
	start int // run start along the line axis
	end   int // exclusive
}

// detectLines scans every row (or column) of the bounds for contiguous
// opaque runs longer than lineRatio of the bounds extent, then merges
// overlapping runs on adjacent rows (columns) into single line shapes.
func detectLines(buf *pixel.Buffer, b Bounds, kind Kind) []Shape {
	span, lanes := b.Width, b.Height
	if kind == KindVerticalLine {
		span, lanes = b.Height, b.Width
	}
	if span < minLineSpan {
		return nil
	}
	minRun := lineRatio * float64(span)

	at := func(lane, i int) uint8 {
		if kind == KindHorizontalLine {
			return buf.Alpha(b.X+i, b.Y+lane)
		}
		return buf.Alpha(b.X+lane, b.Y+i)
	}

	var runs []run
	for lane := 0; lane < lanes; lane++ {
		bestLen, bestStart := 0, 0
		curLen, curStart := 0, 0
		for i := 0; i < span; i++ {
			if at(lane, i) > fillAlpha {
				if curLen == 0 {
					curStart = i
				}
				curLen++
				if curLen > bestLen {
					bestLen, bestStart = curLen, curStart
				}
			} else {
				curLen = 0
			}
		}
		if float64(bestLen) > minRun {
			runs = append(runs, run{pos: lane, start: bestStart, end: bestStart + bestLen})
		}
	}

	return mergeRuns(buf, b, kind, runs)
}

// mergeRuns folds runs on adjacent, overlapping lanes into one shape each;
// a 4-pixel-thick divider stripe is one line, not four.
func mergeRuns(buf *pixel.Buffer, b Bounds, kind Kind, runs []run) []Shape {
	var shapes []Shape
	for i := 0; i < len(runs); {
		first := runs[i]
		start, end := first.start, first.end
		j := i + 1
		for j < len(runs) && runs[j].pos == runs[j-1].pos+1 &&
			runs[j].start < end && runs[j].end > start {
			if runs[j].start < start {
				start = runs[j].start
			}
			if runs[j].end > end {
				end = runs[j].end
			}
			j++
		}

		s := Shape{
			Kind:   kind,
			Length: end - start,
		}
		if kind == KindHorizontalLine {
			s.X = b.X + start
			s.Y = b.Y + first.pos
			s.Color = buf.At(b.X+first.start, b.Y+first.pos)
		} else {
			s.X = b.X + first.pos
			s.Y = b.Y + start
			s.Color = buf.At(b.X+first.pos, b.Y+first.start)
		}
		s.Thickness = j - i
		shapes = append(shapes, s)
		i = j
	}
	return shapes
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
