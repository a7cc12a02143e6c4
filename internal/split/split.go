// Package split extracts the per-cell and per-segment sub-buffers the later
// pipeline stages work on. Every extraction copies pixels; nothing returned
// here aliases the source sheet.
package split

import (
	"image"

	"github.com/sliceforge/sliceforge/internal/grid"
	"github.com/sliceforge/sliceforge/internal/pixel"
)

// Region pairs an extracted buffer with where it came from.
type Region struct {
	// Source is the rectangle in sheet coordinates the buffer was cut from,
	// after clipping to the sheet bounds.
	Source image.Rectangle

	// Buffer is the owned pixel copy of the region.
	Buffer *pixel.Buffer

	// Cell is set for cell regions, nil for segment regions.
	Cell *grid.Cell

	// Segment is set for segment regions, nil for cell regions.
	Segment *grid.Segment
}

// Cells cuts one region per cell in the config, in the config's cell order
// (row-major).
func Cells(buf *pixel.Buffer, cfg *grid.Config) []Region {
	out := make([]Region, 0, len(cfg.Cells))
	for i := range cfg.Cells {
		cell := cfg.Cells[i]
		out = append(out, Region{
			Source: clip(buf, cell.X, cell.Y, cell.Width, cell.Height),
			Buffer: buf.SubBuffer(cell.X, cell.Y, cell.Width, cell.Height),
			Cell:   &cfg.Cells[i],
		})
	}
	return out
}

// Segments cuts one region per grid-line segment: the full-width horizontal
// bands, the full-height vertical bands, and the band crossings.
func Segments(buf *pixel.Buffer, cfg *grid.Config) []Region {
	out := make([]Region, 0, len(cfg.Segments))
	for i := range cfg.Segments {
		seg := cfg.Segments[i]
		out = append(out, Region{
			Source:  clip(buf, seg.X, seg.Y, seg.Width, seg.Height),
			Buffer:  buf.SubBuffer(seg.X, seg.Y, seg.Width, seg.Height),
			Segment: &cfg.Segments[i],
		})
	}
	return out
}

func clip(buf *pixel.Buffer, x, y, w, h int) image.Rectangle {
	r := image.Rect(x, y, x+w, y+h)
	return r.Intersect(image.Rect(0, 0, buf.Width, buf.Height))
}
