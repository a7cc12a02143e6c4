package component

import (
	"image"
	"strings"
	"testing"

	"github.com/sliceforge/sliceforge/internal/grid"
	"github.com/sliceforge/sliceforge/internal/pixel"
	"github.com/sliceforge/sliceforge/internal/shape"
)

func solidBuffer(w, h int, c pixel.Color) *pixel.Buffer {
	buf := pixel.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, c)
		}
	}
	return buf
}

func TestFromCell(t *testing.T) {
	buf := solidBuffer(16, 16, pixel.Color{R: 200, G: 30, B: 30, A: 255})
	a := &shape.Analysis{
		Bounds: shape.Bounds{Width: 16, Height: 16},
		Shapes: []shape.Shape{{Kind: shape.KindRectangle, Width: 16, Height: 16}},
	}
	cell := &grid.Cell{Row: 2, Col: 5, X: 32, Y: 80, Width: 16, Height: 16}
	p := FromCell(cell, image.Rect(32, 80, 48, 96), buf, a)

	if p.ID != "cell-2-5" || p.Name != "cell_r2_c5" {
		t.Fatalf("identity = %q / %q", p.ID, p.Name)
	}
	if p.Kind != KindCell || p.Row != 2 || p.Col != 5 {
		t.Fatalf("placement = %q r%d c%d", p.Kind, p.Row, p.Col)
	}
	if len(p.Shapes) != 1 || p.IsEmpty {
		t.Fatalf("analysis not carried over: %+v", p)
	}
	if p.NineSlice.Zero() {
		t.Fatal("filled rectangle produced zero insets")
	}
	if !strings.HasPrefix(p.DominantColor, "#") {
		t.Fatalf("DominantColor = %q, want hex string", p.DominantColor)
	}
}

func TestFromCellEmpty(t *testing.T) {
	buf := pixel.New(8, 8) // fully transparent
	p := FromCell(&grid.Cell{}, image.Rect(0, 0, 8, 8), buf, &shape.Analysis{IsEmpty: true})
	if !p.IsEmpty {
		t.Fatal("empty analysis not carried over")
	}
	if p.DominantColor != "" {
		t.Fatalf("empty cell got dominant color %q", p.DominantColor)
	}
	if !p.NineSlice.Zero() {
		t.Fatalf("empty cell got insets %+v", p.NineSlice)
	}
}

func TestFromSegment(t *testing.T) {
	buf := solidBuffer(2, 100, pixel.Color{R: 10, G: 10, B: 10, A: 255})
	seg := &grid.Segment{ID: "vline-0", Kind: grid.SegmentVertical, X: 99, Width: 2, Height: 100}
	p := FromSegment(seg, image.Rect(99, 0, 101, 100), buf, &shape.Analysis{
		Bounds: shape.Bounds{Width: 2, Height: 100},
	})
	if p.ID != "vline-0" || p.Kind != KindSegment {
		t.Fatalf("segment identity = %q / %q", p.ID, p.Kind)
	}
}
