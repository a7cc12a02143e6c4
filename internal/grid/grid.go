package grid

import "fmt"

// Params holds the detector's tunables.
//
// There is no enforced range: out-of-domain values are used as-is, matching
// the permissive arithmetic throughout the pipeline.
type Params struct {
	// Tolerance is the maximum absolute per-channel difference (including
	// alpha) for a pixel to count as matching its row/column. 0 demands
	// exact equality.
	Tolerance int

	// MinGapX is the minimum distance in pixels between the centers of two
	// retained vertical dividers. Groups closer than this are resolved in
	// favor of the thicker one.
	MinGapX int

	// MinGapY is the vertical counterpart of MinGapX.
	MinGapY int
}

// DividerGroup is a contiguous run of uniform rows or columns.
// Never mutated after consolidation.
type DividerGroup struct {
	// Start and End are the first and last matching indices, inclusive.
	Start int `json:"start"`
	End   int `json:"end"`

	// Center is the rounded midpoint, the slice coordinate cells snap to.
	Center int `json:"center"`

	// Width is End-Start+1, the divider thickness in pixels.
	Width int `json:"width"`

	// Confidence summarizes how clean the band's pixels were relative to
	// the scan tolerance (1 = perfectly uniform). Informational only; no
	// geometry depends on it.
	Confidence float64 `json:"confidence"`
}

// Cell is a tile rectangle between consecutive slice centers, in source
// image coordinates.
type Cell struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SegmentKind labels a grid-line segment rectangle.
type SegmentKind string

const (
	SegmentHorizontal  SegmentKind = "horizontal-line"
	SegmentVertical    SegmentKind = "vertical-line"
	SegmentIntersection SegmentKind = "intersection"
)

// Segment is a rectangle covering a divider band, or the crossing of a
// horizontal and a vertical band.
type Segment struct {
	ID     string      `json:"id"`
	Kind   SegmentKind `json:"type"`
	X      int         `json:"x"`
	Y      int         `json:"y"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
}

// Borders records the thickness of the uniform frame at each image edge.
// Reported for introspection; cells are bounded solely by interior dividers.
type Borders struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Config is the detector's complete description of a sheet's geometry.
type Config struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`

	// HorizontalSlices are the Y centers of the horizontal divider groups,
	// in ascending order. VerticalSlices are the X centers likewise.
	HorizontalSlices []int `json:"horizontal_slices"`
	VerticalSlices   []int `json:"vertical_slices"`

	HorizontalGroups []DividerGroup `json:"horizontal_line_groups"`
	VerticalGroups   []DividerGroup `json:"vertical_line_groups"`

	Cells    []Cell    `json:"cells"`
	Segments []Segment `json:"grid_line_segments"`

	OuterBorders Borders `json:"outer_borders"`
}

// CellAt returns the cell at (row, col), or an error when no such cell
// exists.
func (c *Config) CellAt(row, col int) (Cell, error) {
	for _, cell := range c.Cells {
		if cell.Row == row && cell.Col == col {
			return cell, nil
		}
	}
	return Cell{}, fmt.Errorf("no cell at row %d, col %d", row, col)
}
