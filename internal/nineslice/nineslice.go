// Package nineslice derives stretch-safe border insets from a region's
// shape analysis. The insets partition the asset into 4 fixed corners, 4
// stretchable edges and a stretchable center.
package nineslice

import "github.com/sliceforge/sliceforge/internal/shape"

// Insets are per-side border widths in pixels.
type Insets struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// Zero reports whether no side carries a border.
func (in Insets) Zero() bool {
	return in == Insets{}
}

// Infer derives insets from a shape analysis.
//
// Rounded-rectangle corner radii are the strongest signal: a corner must
// stay un-stretched out to its radius or scaling distorts the curve. Line
// shapes hugging an edge of the bounds widen that side by their thickness.
// A plain filled region without either signal falls back to a conservative
// third of its smaller extent, so the asset still resizes without visible
// seams. Empty regions carry no borders at all.
func Infer(a *shape.Analysis) Insets {
	if a == nil || a.IsEmpty {
		return Insets{}
	}

	var in Insets
	for _, s := range a.Shapes {
		switch s.Kind {
		case shape.KindRounded:
			tl, tr, bl, br := s.CornerRadii[0], s.CornerRadii[1], s.CornerRadii[2], s.CornerRadii[3]
			in.Top = maxInt(in.Top, maxInt(tl, tr))
			in.Bottom = maxInt(in.Bottom, maxInt(bl, br))
			in.Left = maxInt(in.Left, maxInt(tl, bl))
			in.Right = maxInt(in.Right, maxInt(tr, br))
		case shape.KindHorizontalLine:
			if s.Y <= a.Bounds.Y+1 {
				in.Top = maxInt(in.Top, s.Thickness)
			}
			if s.Y+s.Thickness >= a.Bounds.Y+a.Bounds.Height-1 {
				in.Bottom = maxInt(in.Bottom, s.Thickness)
			}
		case shape.KindVerticalLine:
			if s.X <= a.Bounds.X+1 {
				in.Left = maxInt(in.Left, s.Thickness)
			}
			if s.X+s.Thickness >= a.Bounds.X+a.Bounds.Width-1 {
				in.Right = maxInt(in.Right, s.Thickness)
			}
		}
	}

	if in.Zero() && len(a.Shapes) > 0 {
		fallback := minInt(a.Bounds.Width, a.Bounds.Height) / 3
		if fallback < 1 {
			fallback = 1
		}
		in = Insets{Top: fallback, Right: fallback, Bottom: fallback, Left: fallback}
	}

	// Opposing borders may not meet: keep at least one stretchable pixel.
	clampPair(&in.Left, &in.Right, a.Bounds.Width)
	clampPair(&in.Top, &in.Bottom, a.Bounds.Height)
	return in
}

// clampPair shrinks both sides until they leave the middle open.
func clampPair(a, b *int, extent int) {
	for *a+*b >= extent && (*a > 0 || *b > 0) {
		if *a >= *b && *a > 0 {
			*a--
		} else if *b > 0 {
			*b--
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
