package grid

import (
	"reflect"
	"testing"

	"github.com/sliceforge/sliceforge/internal/pixel"
)

var (
	black = pixel.Color{R: 0, G: 0, B: 0, A: 255}
	red   = pixel.Color{R: 200, G: 40, B: 40, A: 255}
	green = pixel.Color{R: 40, G: 200, B: 40, A: 255}
	blue  = pixel.Color{R: 40, G: 40, B: 200, A: 255}
	amber = pixel.Color{R: 220, G: 180, B: 40, A: 255}
)

// quadrantSheet builds a 300x300 sheet with a 2px black divider band at
// rows 99-100 and columns 99-100, and four distinctly colored quadrants.
func quadrantSheet() *pixel.Buffer {
	buf := pixel.New(300, 300)
	for y := 0; y < 300; y++ {
		for x := 0; x < 300; x++ {
			var c pixel.Color
			switch {
			case y == 99 || y == 100 || x == 99 || x == 100:
				c = black
			case y < 99 && x < 99:
				c = red
			case y < 99:
				c = green
			case x < 99:
				c = blue
			default:
				c = amber
			}
			buf.Set(x, y, c)
		}
	}
	return buf
}

func TestDetect_QuadrantSheet(t *testing.T) {
	cfg := Detect(quadrantSheet(), Params{Tolerance: 10, MinGapX: 10, MinGapY: 10})

	if len(cfg.HorizontalGroups) != 1 || len(cfg.VerticalGroups) != 1 {
		t.Fatalf("groups = %d horizontal, %d vertical, want 1 and 1",
			len(cfg.HorizontalGroups), len(cfg.VerticalGroups))
	}

	h := cfg.HorizontalGroups[0]
	if h.Start != 99 || h.End != 100 || h.Width != 2 {
		t.Errorf("horizontal group = %+v, want start 99 end 100 width 2", h)
	}
	// Thickness-2 band: rounded midpoint of 99.5 is 100.
	if h.Center != 100 {
		t.Errorf("center = %d, want 100", h.Center)
	}

	if cfg.Rows != 1 || cfg.Columns != 1 {
		t.Errorf("rows x cols = %dx%d, want 1x1", cfg.Rows, cfg.Columns)
	}
	// One slice per axis cannot bound a cell on both sides, so the single
	// cell spans the whole sheet.
	if len(cfg.Cells) != 1 {
		t.Fatalf("cells = %d, want 1", len(cfg.Cells))
	}
	cell := cfg.Cells[0]
	if cell.X != 0 || cell.Y != 0 || cell.Width != 300 || cell.Height != 300 {
		t.Errorf("cell = %+v, want full 300x300 span", cell)
	}

	// One segment per group plus one intersection.
	if len(cfg.Segments) != 3 {
		t.Fatalf("segments = %d, want 3", len(cfg.Segments))
	}
	var kinds []SegmentKind
	for _, s := range cfg.Segments {
		kinds = append(kinds, s.Kind)
	}
	want := []SegmentKind{SegmentHorizontal, SegmentVertical, SegmentIntersection}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("segment kinds = %v, want %v", kinds, want)
	}
	x := cfg.Segments[2]
	if x.X != 99 || x.Y != 99 || x.Width != 2 || x.Height != 2 {
		t.Errorf("intersection = %+v, want 2x2 at (99,99)", x)
	}
}

func TestDetect_Deterministic(t *testing.T) {
	buf := quadrantSheet()
	p := Params{Tolerance: 10, MinGapX: 10, MinGapY: 10}
	a := Detect(buf, p)
	b := Detect(buf, p)
	if !reflect.DeepEqual(a, b) {
		t.Error("Detect must be deterministic for identical pixels")
	}
}

// threeBandSheet has 2px dividers at the top edge, the middle and the bottom
// edge, so both margins are bounded and two cells form per axis.
func threeBandSheet() *pixel.Buffer {
	size := 301
	buf := pixel.New(size, size)
	divider := func(i int) bool {
		return i <= 1 || i == 149 || i == 150 || i >= size-2
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			var c pixel.Color
			switch {
			case divider(y) || divider(x):
				c = black
			case y < 149 && x < 149:
				c = red
			case y < 149:
				c = green
			case x < 149:
				c = blue
			default:
				c = amber
			}
			buf.Set(x, y, c)
		}
	}
	return buf
}

func TestDetect_CellTiling(t *testing.T) {
	cfg := Detect(threeBandSheet(), Params{Tolerance: 10, MinGapX: 20, MinGapY: 20})

	if cfg.Rows != 2 || cfg.Columns != 2 {
		t.Fatalf("rows x cols = %dx%d, want 2x2 (slices %v / %v)",
			cfg.Rows, cfg.Columns, cfg.HorizontalSlices, cfg.VerticalSlices)
	}
	if len(cfg.Cells) != 4 {
		t.Fatalf("cells = %d, want 4", len(cfg.Cells))
	}

	// The union of cells must exactly tile the area between the first and
	// last slice on each axis: no gaps, no overlaps.
	firstY := cfg.HorizontalSlices[0]
	lastY := cfg.HorizontalSlices[len(cfg.HorizontalSlices)-1]
	firstX := cfg.VerticalSlices[0]
	lastX := cfg.VerticalSlices[len(cfg.VerticalSlices)-1]

	covered := make(map[[2]int]int)
	for _, cell := range cfg.Cells {
		for y := cell.Y; y < cell.Y+cell.Height; y++ {
			for x := cell.X; x < cell.X+cell.Width; x++ {
				covered[[2]int{x, y}]++
			}
		}
	}
	for y := firstY; y < lastY; y++ {
		for x := firstX; x < lastX; x++ {
			if covered[[2]int{x, y}] != 1 {
				t.Fatalf("pixel (%d,%d) covered %d times", x, y, covered[[2]int{x, y}])
			}
		}
	}
	if len(covered) != (lastX-firstX)*(lastY-firstY) {
		t.Errorf("cells cover %d pixels, want %d (no spill outside the slices)",
			len(covered), (lastX-firstX)*(lastY-firstY))
	}
}

func TestDetect_OnlyHorizontalDividers(t *testing.T) {
	// Content rows vary along X so only the two painted rows are uniform.
	buf := pixel.New(100, 60)
	for y := 0; y < 60; y++ {
		for x := 0; x < 100; x++ {
			c := pixel.Color{R: uint8(50 + x), G: 30, B: 30, A: 255}
			if y == 10 || y == 40 {
				c = black
			}
			buf.Set(x, y, c)
		}
	}

	cfg := Detect(buf, Params{Tolerance: 5, MinGapX: 5, MinGapY: 5})
	if len(cfg.VerticalGroups) != 0 {
		t.Fatalf("vertical groups = %d, want 0", len(cfg.VerticalGroups))
	}
	if cfg.Columns != 1 {
		t.Errorf("columns = %d, want 1", cfg.Columns)
	}
	if cfg.Rows != 1 {
		t.Errorf("rows = %d, want 1 (two slices bound one band)", cfg.Rows)
	}
	if len(cfg.Cells) != 1 {
		t.Fatalf("cells = %d, want 1", len(cfg.Cells))
	}
	cell := cfg.Cells[0]
	if cell.Y != 10 || cell.Height != 30 || cell.X != 0 || cell.Width != 100 {
		t.Errorf("cell = %+v, want y 10 height 30 full width", cell)
	}
}

func TestDetect_NoDividers(t *testing.T) {
	// Diagonal gradient: no row or column is uniform.
	buf := pixel.New(40, 40)
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			buf.Set(x, y, pixel.Color{R: uint8(x * 6), G: uint8(y * 6), B: 0, A: 255})
		}
	}

	cfg := Detect(buf, Params{Tolerance: 2})
	if len(cfg.HorizontalGroups) != 0 || len(cfg.VerticalGroups) != 0 {
		t.Fatalf("expected no divider groups, got %d/%d",
			len(cfg.HorizontalGroups), len(cfg.VerticalGroups))
	}
	if len(cfg.Cells) != 1 {
		t.Fatalf("cells = %d, want single full-image cell", len(cfg.Cells))
	}
	c := cfg.Cells[0]
	if c.X != 0 || c.Y != 0 || c.Width != 40 || c.Height != 40 {
		t.Errorf("cell = %+v, want full image", c)
	}
	if len(cfg.Segments) != 0 {
		t.Errorf("segments = %d, want 0", len(cfg.Segments))
	}
}

func TestDetect_OnePixelImage(t *testing.T) {
	buf := pixel.New(1, 1)
	buf.Set(0, 0, red)

	cfg := Detect(buf, Params{Tolerance: 0})
	if cfg.Rows != 1 || cfg.Columns != 1 {
		t.Errorf("rows x cols = %dx%d, want 1x1", cfg.Rows, cfg.Columns)
	}
	if len(cfg.Cells) != 1 {
		t.Errorf("cells = %d, want 1", len(cfg.Cells))
	}
}

func TestDetect_NilAndEmpty(t *testing.T) {
	for _, buf := range []*pixel.Buffer{nil, pixel.New(0, 0)} {
		cfg := Detect(buf, Params{})
		if cfg.Rows != 1 || cfg.Columns != 1 {
			t.Errorf("degenerate input: rows x cols = %dx%d, want 1x1", cfg.Rows, cfg.Columns)
		}
	}
}

func TestDetect_OuterBorders(t *testing.T) {
	// 3px uniform frame around varying content.
	buf := pixel.New(30, 30)
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			c := pixel.Color{R: uint8(40 + x*4), G: uint8(40 + y*4), B: 0, A: 255}
			if x < 3 || y < 3 || x >= 27 || y >= 27 {
				c = black
			}
			buf.Set(x, y, c)
		}
	}

	cfg := Detect(buf, Params{Tolerance: 2})
	b := cfg.OuterBorders
	if b.Top != 3 || b.Bottom != 3 || b.Left != 3 || b.Right != 3 {
		t.Errorf("outer borders = %+v, want 3 on every side", b)
	}
}

func TestConsolidate(t *testing.T) {
	groups := consolidate([]int{3, 4, 5, 9, 14, 15}, nil, 0)
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	if g := groups[0]; g.Start != 3 || g.End != 5 || g.Center != 4 || g.Width != 3 {
		t.Errorf("group 0 = %+v", g)
	}
	if g := groups[1]; g.Start != 9 || g.End != 9 || g.Center != 9 || g.Width != 1 {
		t.Errorf("group 1 = %+v", g)
	}
	if g := groups[2]; g.Center != 15 {
		// Midpoint of 14..15 is 14.5, rounds up.
		t.Errorf("group 2 center = %d, want 15", g.Center)
	}
}

func TestEnforceMinGap_ThickerWins(t *testing.T) {
	groups := []DividerGroup{
		{Start: 10, End: 10, Center: 10, Width: 1},
		{Start: 13, End: 15, Center: 14, Width: 3},
		{Start: 40, End: 40, Center: 40, Width: 1},
	}
	kept := enforceMinGap(groups, 10)
	if len(kept) != 2 {
		t.Fatalf("kept = %d, want 2", len(kept))
	}
	// The thickness-3 group displaces the first kept group.
	if kept[0].Center != 14 {
		t.Errorf("kept[0].Center = %d, want 14", kept[0].Center)
	}
	if kept[1].Center != 40 {
		t.Errorf("kept[1].Center = %d, want 40", kept[1].Center)
	}
}

func TestEnforceMinGap_FirstAlwaysKeptWhenWider(t *testing.T) {
	groups := []DividerGroup{
		{Start: 10, End: 12, Center: 11, Width: 3},
		{Start: 15, End: 15, Center: 15, Width: 1},
	}
	kept := enforceMinGap(groups, 10)
	if len(kept) != 1 || kept[0].Center != 11 {
		t.Errorf("kept = %+v, want only the thick group at 11", kept)
	}
}

func TestEnforceMinGap_Monotonic(t *testing.T) {
	groups := []DividerGroup{
		{Center: 5, Width: 1}, {Center: 9, Width: 2}, {Center: 12, Width: 1},
		{Center: 30, Width: 1}, {Center: 33, Width: 3}, {Center: 60, Width: 1},
	}
	prev := len(groups) + 1
	for gap := 0; gap <= 40; gap++ {
		in := make([]DividerGroup, len(groups))
		copy(in, groups)
		n := len(enforceMinGap(in, gap))
		if n > prev {
			t.Fatalf("minGap %d retained %d groups, more than %d at the smaller gap", gap, n, prev)
		}
		prev = n
	}
}

// Consolidation idempotence: rebuilding a synthetic sheet from a detected
// config's cells with 1px dividers reproduces the same divider centers.
func TestDetect_ConsolidationIdempotent(t *testing.T) {
	first := Detect(threeBandSheet(), Params{Tolerance: 10, MinGapX: 20, MinGapY: 20})

	// Paint each detected cell a flat color and each slice center a 1px
	// black divider.
	size := 301
	rebuilt := pixel.New(size, size)
	fills := []pixel.Color{red, green, blue, amber}
	for i, cell := range first.Cells {
		fill := fills[i%len(fills)]
		for y := cell.Y; y < cell.Y+cell.Height; y++ {
			for x := cell.X; x < cell.X+cell.Width; x++ {
				rebuilt.Set(x, y, fill)
			}
		}
	}
	for _, sy := range first.HorizontalSlices {
		for x := 0; x < size; x++ {
			rebuilt.Set(x, sy, black)
		}
	}
	for _, sx := range first.VerticalSlices {
		for y := 0; y < size; y++ {
			rebuilt.Set(sx, y, black)
		}
	}

	second := Detect(rebuilt, Params{Tolerance: 10, MinGapX: 20, MinGapY: 20})
	if !reflect.DeepEqual(first.HorizontalSlices, second.HorizontalSlices) {
		t.Errorf("horizontal slices drifted: %v -> %v",
			first.HorizontalSlices, second.HorizontalSlices)
	}
	if !reflect.DeepEqual(first.VerticalSlices, second.VerticalSlices) {
		t.Errorf("vertical slices drifted: %v -> %v",
			first.VerticalSlices, second.VerticalSlices)
	}
}

func TestGroupConfidence_CleanBand(t *testing.T) {
	devs := map[int]float64{4: 0, 5: 0, 6: 0}
	if c := groupConfidence(4, 6, devs, 10); c != 1 {
		t.Errorf("clean band confidence = %f, want 1", c)
	}
	noisy := map[int]float64{4: 9, 5: 2, 6: 8}
	if c := groupConfidence(4, 6, noisy, 10); c >= 1 || c < 0 {
		t.Errorf("noisy band confidence = %f, want within [0,1)", c)
	}
}

func TestConfigCellAt(t *testing.T) {
	cfg := Detect(threeBandSheet(), Params{Tolerance: 10, MinGapX: 20, MinGapY: 20})
	cell, err := cfg.CellAt(1, 0)
	if err != nil {
		t.Fatalf("CellAt: %v", err)
	}
	if cell.Row != 1 || cell.Col != 0 {
		t.Errorf("cell = %+v", cell)
	}
	if _, err := cfg.CellAt(9, 9); err == nil {
		t.Error("expected error for missing cell")
	}
}
