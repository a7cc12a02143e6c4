// Package component assembles the per-region analysis results into the
// records the exporters consume.
package component

import (
	"fmt"
	"image"

	"github.com/cenkalti/dominantcolor"

	"github.com/sliceforge/sliceforge/internal/grid"
	"github.com/sliceforge/sliceforge/internal/nineslice"
	"github.com/sliceforge/sliceforge/internal/pixel"
	"github.com/sliceforge/sliceforge/internal/shape"
)

// Kind distinguishes what part of the sheet a component came from.
type Kind string

const (
	KindCell    Kind = "cell"
	KindSegment Kind = "segment"
)

// Processed is one fully analyzed sheet region.
type Processed struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Kind          Kind             `json:"kind"`
	Row           int              `json:"row"`
	Col           int              `json:"col"`
	Source        image.Rectangle  `json:"-"`
	Buffer        *pixel.Buffer    `json:"-"`
	Shapes        []shape.Shape    `json:"shapes"`
	Bounds        shape.Bounds     `json:"bounds"`
	IsEmpty       bool             `json:"empty"`
	NineSlice     nineslice.Insets `json:"nineSlice"`
	DominantColor string           `json:"dominantColor,omitempty"`
}

// FromCell builds the record for an analyzed grid cell.
func FromCell(cell *grid.Cell, src image.Rectangle, buf *pixel.Buffer, a *shape.Analysis) *Processed {
	p := &Processed{
		ID:     fmt.Sprintf("cell-%d-%d", cell.Row, cell.Col),
		Name:   fmt.Sprintf("cell_r%d_c%d", cell.Row, cell.Col),
		Kind:   KindCell,
		Row:    cell.Row,
		Col:    cell.Col,
		Source: src,
		Buffer: buf,
	}
	p.finish(a)
	return p
}

// FromSegment builds the record for an analyzed divider segment.
func FromSegment(seg *grid.Segment, src image.Rectangle, buf *pixel.Buffer, a *shape.Analysis) *Processed {
	p := &Processed{
		ID:     seg.ID,
		Name:   seg.ID,
		Kind:   KindSegment,
		Source: src,
		Buffer: buf,
	}
	p.finish(a)
	return p
}

func (p *Processed) finish(a *shape.Analysis) {
	if a != nil {
		p.Shapes = a.Shapes
		p.Bounds = a.Bounds
		p.IsEmpty = a.IsEmpty
	}
	p.NineSlice = nineslice.Infer(a)
	if p.Buffer != nil && !p.IsEmpty {
		p.DominantColor = dominantcolor.Hex(dominantcolor.Find(p.Buffer.ToImage()))
	}
}
