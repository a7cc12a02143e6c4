package shape

import "github.com/sliceforge/sliceforge/internal/pixel"

// Kind labels a detected primitive.
type Kind string

const (
	KindHorizontalLine Kind = "horizontal-line"
	KindVerticalLine   Kind = "vertical-line"
	KindRectangle      Kind = "rectangle"
	KindRounded        Kind = "rounded-rectangle"
)

// Bounds is a rectangle in the analyzed buffer's coordinates.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Shape is one detected primitive.
//
// Rectangles and rounded rectangles use X/Y/Width/Height as their fill
// extent. Lines use X/Y as the run origin, Length as the run extent along
// the line's axis and Thickness as the perpendicular extent.
type Shape struct {
	Kind      Kind        `json:"type"`
	X         int         `json:"x"`
	Y         int         `json:"y"`
	Width     int         `json:"width,omitempty"`
	Height    int         `json:"height,omitempty"`
	Length    int         `json:"length,omitempty"`
	Thickness int         `json:"thickness,omitempty"`
	Color     pixel.Color `json:"color"`

	// CornerRadius is the averaged estimate for rounded rectangles, 0 for
	// everything else. CornerRadii carries the four individual estimates in
	// top-left, top-right, bottom-left, bottom-right order for finer
	// shaping downstream.
	CornerRadius int    `json:"corner_radius,omitempty"`
	CornerRadii  [4]int `json:"corner_radii,omitempty"`
}

// Analysis is the decomposer's result for one region.
type Analysis struct {
	Shapes []Shape `json:"shapes"`
	Bounds Bounds  `json:"bounds"`

	// IsEmpty is true iff the region contains no pixel with alpha > 0.
	IsEmpty bool `json:"is_empty"`
}
