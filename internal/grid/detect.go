package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/sliceforge/sliceforge/internal/pixel"
)

// Detect scans a sheet for uniform rows and columns and derives the full
// grid geometry: divider groups, slice centers, cells, segments and outer
// borders.
//
// The scan is a constant number of O(width×height) passes; no allocation
// grows with pixel count beyond the per-axis index lists.
func Detect(buf *pixel.Buffer, p Params) *Config {
	cfg := &Config{}
	if buf == nil || buf.Width == 0 || buf.Height == 0 {
		cfg.Rows, cfg.Columns = 1, 1
		return cfg
	}

	cfg.OuterBorders = detectOuterBorders(buf, p.Tolerance)

	rows := uniformRows(buf, p.Tolerance)
	cols := uniformCols(buf, p.Tolerance)

	cfg.HorizontalGroups = enforceMinGap(consolidate(rows, rowDeviations(buf, rows), p.Tolerance), p.MinGapY)
	cfg.VerticalGroups = enforceMinGap(consolidate(cols, colDeviations(buf, cols), p.Tolerance), p.MinGapX)

	for _, g := range cfg.HorizontalGroups {
		cfg.HorizontalSlices = append(cfg.HorizontalSlices, g.Center)
	}
	for _, g := range cfg.VerticalGroups {
		cfg.VerticalSlices = append(cfg.VerticalSlices, g.Center)
	}

	cfg.Rows = maxInt(len(cfg.HorizontalSlices)-1, 1)
	cfg.Columns = maxInt(len(cfg.VerticalSlices)-1, 1)

	cfg.Cells = buildCells(cfg.HorizontalSlices, cfg.VerticalSlices, buf.Width, buf.Height)
	cfg.Segments = buildSegments(cfg.HorizontalGroups, cfg.VerticalGroups, buf.Width, buf.Height)

	return cfg
}

// matchesWithin reports whether two colors differ by at most tol on every
// channel, alpha included.
func matchesWithin(a, b pixel.Color, tol int) bool {
	return absDiff(a.R, b.R) <= tol &&
		absDiff(a.G, b.G) <= tol &&
		absDiff(a.B, b.B) <= tol &&
		absDiff(a.A, b.A) <= tol
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// rowIsUniform tests a row against its own first pixel.
func rowIsUniform(buf *pixel.Buffer, y, tol int) bool {
	first := buf.At(0, y)
	for x := 1; x < buf.Width; x++ {
		if !matchesWithin(buf.At(x, y), first, tol) {
			return false
		}
	}
	return true
}

func colIsUniform(buf *pixel.Buffer, x, tol int) bool {
	first := buf.At(x, 0)
	for y := 1; y < buf.Height; y++ {
		if !matchesWithin(buf.At(x, y), first, tol) {
			return false
		}
	}
	return true
}

func uniformRows(buf *pixel.Buffer, tol int) []int {
	var out []int
	for y := 0; y < buf.Height; y++ {
		if rowIsUniform(buf, y, tol) {
			out = append(out, y)
		}
	}
	return out
}

func uniformCols(buf *pixel.Buffer, tol int) []int {
	var out []int
	for x := 0; x < buf.Width; x++ {
		if colIsUniform(buf, x, tol) {
			out = append(out, x)
		}
	}
	return out
}

// detectOuterBorders measures how many consecutive uniform rows/columns hug
// each image edge. The measurement is reported on the Config but never
// feeds cell geometry.
func detectOuterBorders(buf *pixel.Buffer, tol int) Borders {
	var b Borders
	for y := 0; y < buf.Height && rowIsUniform(buf, y, tol); y++ {
		b.Top++
	}
	for y := buf.Height - 1; y >= 0 && rowIsUniform(buf, y, tol); y-- {
		b.Bottom++
	}
	for x := 0; x < buf.Width && colIsUniform(buf, x, tol); x++ {
		b.Left++
	}
	for x := buf.Width - 1; x >= 0 && colIsUniform(buf, x, tol); x-- {
		b.Right++
	}
	return b
}

// rowDeviations returns, for each uniform row, the mean per-pixel deviation
// from the row's first pixel (largest channel difference per pixel). These
// residuals feed the group Confidence score.
func rowDeviations(buf *pixel.Buffer, rows []int) map[int]float64 {
	devs := make(map[int]float64, len(rows))
	for _, y := range rows {
		first := buf.At(0, y)
		var sum float64
		for x := 0; x < buf.Width; x++ {
			c := buf.At(x, y)
			d := absDiff(c.R, first.R)
			if v := absDiff(c.G, first.G); v > d {
				d = v
			}
			if v := absDiff(c.B, first.B); v > d {
				d = v
			}
			if v := absDiff(c.A, first.A); v > d {
				d = v
			}
			sum += float64(d)
		}
		devs[y] = sum / float64(buf.Width)
	}
	return devs
}

func colDeviations(buf *pixel.Buffer, cols []int) map[int]float64 {
	devs := make(map[int]float64, len(cols))
	for _, x := range cols {
		first := buf.At(x, 0)
		var sum float64
		for y := 0; y < buf.Height; y++ {
			c := buf.At(x, y)
			d := absDiff(c.R, first.R)
			if v := absDiff(c.G, first.G); v > d {
				d = v
			}
			if v := absDiff(c.B, first.B); v > d {
				d = v
			}
			if v := absDiff(c.A, first.A); v > d {
				d = v
			}
			sum += float64(d)
		}
		devs[x] = sum / float64(buf.Height)
	}
	return devs
}

// consolidate collapses contiguous runs of matching indices into divider
// groups. The center is the rounded midpoint, which is where sub-pixel
// divider placement (a thickness-2 band has no integer middle) lands on the
// higher of the two candidates.
func consolidate(indices []int, deviations map[int]float64, tol int) []DividerGroup {
	var groups []DividerGroup
	if len(indices) == 0 {
		return groups
	}

	start := indices[0]
	prev := indices[0]
	flush := func(end int) {
		groups = append(groups, DividerGroup{
			Start:      start,
			End:        end,
			Center:     int(math.Round(float64(start+end) / 2)),
			Width:      end - start + 1,
			Confidence: groupConfidence(start, end, deviations, tol),
		})
	}

	for _, idx := range indices[1:] {
		if idx != prev+1 {
			flush(prev)
			start = idx
		}
		prev = idx
	}
	flush(prev)
	return groups
}

// groupConfidence folds the band's residual deviations into [0, 1].
// A band whose rows sit exactly on their first pixel scores 1; spread or
// bias toward the tolerance ceiling pulls the score down.
func groupConfidence(start, end int, deviations map[int]float64, tol int) float64 {
	xs := make([]float64, 0, end-start+1)
	for i := start; i <= end; i++ {
		if d, ok := deviations[i]; ok {
			xs = append(xs, d)
		}
	}
	if len(xs) == 0 {
		return 1
	}
	scale := float64(tol)
	if scale < 1 {
		scale = 1
	}
	mean := stat.Mean(xs, nil)
	spread := 0.0
	if len(xs) > 1 {
		spread = stat.StdDev(xs, nil)
	}
	conf := 1 - (mean+spread)/(scale+1)
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return conf
}

// enforceMinGap walks groups in ascending order, always keeping the first.
// A group closer than minGap to the last kept one competes with it on
// thickness: the wider divider wins, the other is discarded.
func enforceMinGap(groups []DividerGroup, minGap int) []DividerGroup {
	if len(groups) == 0 || minGap <= 0 {
		return groups
	}
	kept := []DividerGroup{groups[0]}
	for _, g := range groups[1:] {
		last := &kept[len(kept)-1]
		if g.Center-last.Center >= minGap {
			kept = append(kept, g)
			continue
		}
		if g.Width > last.Width {
			*last = g
		}
	}
	return kept
}

// axisBands returns the [start, end) extents of cells along one axis.
// With two or more slices, cells lie between consecutive centers and the
// regions outside the first/last slice are discarded as border. With fewer
// than two slices there is nothing to bound against and the axis spans the
// whole dimension.
func axisBands(slices []int, size int) [][2]int {
	if len(slices) < 2 {
		return [][2]int{{0, size}}
	}
	bands := make([][2]int, 0, len(slices)-1)
	for i := 0; i+1 < len(slices); i++ {
		bands = append(bands, [2]int{slices[i], slices[i+1]})
	}
	return bands
}

func buildCells(hSlices, vSlices []int, width, height int) []Cell {
	rowBands := axisBands(hSlices, height)
	colBands := axisBands(vSlices, width)

	cells := make([]Cell, 0, len(rowBands)*len(colBands))
	for r, rb := range rowBands {
		for c, cb := range colBands {
			cells = append(cells, Cell{
				Row:    r,
				Col:    c,
				X:      cb[0],
				Y:      rb[0],
				Width:  cb[1] - cb[0],
				Height: rb[1] - rb[0],
			})
		}
	}
	return cells
}

func buildSegments(hGroups, vGroups []DividerGroup, width, height int) []Segment {
	var segs []Segment
	for i, g := range hGroups {
		segs = append(segs, Segment{
			ID:     fmt.Sprintf("hline-%d", i),
			Kind:   SegmentHorizontal,
			X:      0,
			Y:      g.Start,
			Width:  width,
			Height: g.Width,
		})
	}
	for i, g := range vGroups {
		segs = append(segs, Segment{
			ID:     fmt.Sprintf("vline-%d", i),
			Kind:   SegmentVertical,
			X:      g.Start,
			Y:      0,
			Width:  g.Width,
			Height: height,
		})
	}
	for hi, h := range hGroups {
		for vi, v := range vGroups {
			segs = append(segs, Segment{
				ID:     fmt.Sprintf("intersection-%d-%d", hi, vi),
				Kind:   SegmentIntersection,
				X:      v.Start,
				Y:      h.Start,
				Width:  v.Width,
				Height: h.Width,
			})
		}
	}
	return segs
}
