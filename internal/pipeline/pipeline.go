// Package pipeline runs the full sheet analysis: grid detection, region
// extraction, background cleanup and shape decomposition, fanned out over a
// bounded worker pool.
package pipeline

import (
	"context"
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/sliceforge/sliceforge/internal/cleanup"
	"github.com/sliceforge/sliceforge/internal/component"
	"github.com/sliceforge/sliceforge/internal/grid"
	"github.com/sliceforge/sliceforge/internal/pixel"
	"github.com/sliceforge/sliceforge/internal/shape"
	"github.com/sliceforge/sliceforge/internal/split"
)

// Options configures a pipeline run. The zero value is usable.
type Options struct {
	Grid    grid.Params
	Cleanup cleanup.Params

	// SliceShadowWidth widens the fringe cleanup band along the edges of
	// each extracted region, where divider shadows bleed in. Zero skips
	// the pass.
	SliceShadowWidth int

	// IncludeSegments also analyzes the divider strips themselves.
	IncludeSegments bool

	// Workers bounds the analysis pool. Zero or negative means NumCPU.
	Workers int

	Logger log.FieldLogger

	// OnProgress is called after each region finishes, from a single
	// goroutine.
	OnProgress func(done, total int)
}

// Result is the output of a pipeline run. Components are ordered cells
// first (row-major), then segments.
type Result struct {
	Grid       *grid.Config
	Components []*component.Processed
}

// Run analyzes the sheet. Cancellation is checked between regions; a
// cancelled run returns the context error and no result.
func Run(ctx context.Context, buf *pixel.Buffer, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	cfg := grid.Detect(buf, opts.Grid)
	regions := split.Cells(buf, cfg)
	if opts.IncludeSegments {
		regions = append(regions, split.Segments(buf, cfg)...)
	}
	logger.WithFields(log.Fields{
		"rows":    cfg.Rows,
		"columns": cfg.Columns,
		"regions": len(regions),
		"workers": workers,
	}).Info("analyzing sheet")

	if workers > len(regions) && len(regions) > 0 {
		workers = len(regions)
	}

	out := make([]*component.Processed, len(regions))
	jobs := make(chan int)
	done := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					continue
				}
				out[idx] = analyze(&regions[idx], opts)
				done <- idx
			}
		}()
	}

	var progressWG sync.WaitGroup
	progressWG.Add(1)
	go func() {
		defer progressWG.Done()
		completed := 0
		for range done {
			completed++
			if opts.OnProgress != nil {
				opts.OnProgress(completed, len(regions))
			}
		}
	}()

feed:
	for i := range regions {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(done)
	progressWG.Wait()

	if err := ctx.Err(); err != nil {
		logger.WithField("err", err).Warn("analysis cancelled")
		return nil, err
	}
	return &Result{Grid: cfg, Components: out}, nil
}

// analyze runs cleanup and shape decomposition on one extracted region.
func analyze(r *split.Region, opts Options) *component.Processed {
	cleaned := cleanup.RemoveBackground(r.Buffer, opts.Cleanup)
	if opts.SliceShadowWidth > 0 {
		trimEdgeShadows(cleaned, opts.SliceShadowWidth)
	}
	a := shape.Decompose(cleaned)
	if r.Cell != nil {
		return component.FromCell(r.Cell, r.Source, cleaned, a)
	}
	return component.FromSegment(r.Segment, r.Source, cleaned, a)
}

// trimEdgeShadows clears shadow fringes along the region perimeter, where
// divider shadows from the sheet bleed into the extracted tile.
func trimEdgeShadows(buf *pixel.Buffer, width int) {
	if buf.Width == 0 || buf.Height == 0 {
		return
	}
	cleanup.RemoveShadowsAlongSlices(buf, []int{0, buf.Width - 1}, width, cleanup.Vertical)
	cleanup.RemoveShadowsAlongSlices(buf, []int{0, buf.Height - 1}, width, cleanup.Horizontal)
}
