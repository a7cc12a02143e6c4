package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	pb "github.com/cheggaaa/pb/v3"
	log "github.com/sirupsen/logrus"

	"github.com/sliceforge/sliceforge/internal/cleanup"
	"github.com/sliceforge/sliceforge/internal/config"
	"github.com/sliceforge/sliceforge/internal/export"
	"github.com/sliceforge/sliceforge/internal/grid"
	"github.com/sliceforge/sliceforge/internal/pipeline"
	"github.com/sliceforge/sliceforge/internal/pixel"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("sliceforge %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	cfg := config.Load()

	tolerance := flag.Int("tolerance", cfg.Tolerance, "per-channel color tolerance for divider and background matching")
	aggressiveness := flag.Int("aggressiveness", cfg.Aggressiveness, "shadow removal aggressiveness (0-100)")
	minGap := flag.Int("min-gap", cfg.MinGap, "minimum pixel gap between divider centers (0 disables)")
	workers := flag.Int("workers", cfg.Workers, "analysis workers (0 means NumCPU)")
	shadowWidth := flag.Int("shadow-width", cfg.SliceShadowWidth, "fringe cleanup band along region edges (0 disables)")
	outDir := flag.String("out", cfg.OutputDir, "output directory")
	segments := flag.Bool("segments", false, "also extract and analyze divider segments")
	writeCSS := flag.Bool("css", false, "write a border-image stylesheet")
	writePNG := flag.Bool("png", true, "write per-component images")
	tarPath := flag.String("tar", "", "bundle everything into a tar archive at this path")
	scale := flag.Int("scale", 1, "integer nearest-neighbour upscale factor for component images")
	thumbSize := flag.Int("thumb", 0, "also write thumbnails fitted in this square size (0 disables)")
	paletteSize := flag.Int("palette", 8, "palette colors to extract (0 disables)")
	logLevel := flag.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	quiet := flag.Bool("quiet", false, "suppress the progress bar")
	flag.Parse()

	log.SetOutput(os.Stderr)
	if lvl, err := log.ParseLevel(*logLevel); err == nil {
		log.SetLevel(lvl)
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: sliceforge [options] <sheet.png>\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	sheetPath := flag.Arg(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, sheetPath, options{
		grid:        grid.Params{Tolerance: *tolerance, MinGapX: *minGap, MinGapY: *minGap},
		cleanup:     cleanup.Params{Tolerance: *tolerance, Aggressiveness: *aggressiveness},
		shadowWidth: *shadowWidth,
		segments:    *segments,
		workers:     *workers,
		outDir:      *outDir,
		css:         *writeCSS,
		png:         *writePNG,
		tarPath:     *tarPath,
		scale:       *scale,
		thumbSize:   *thumbSize,
		paletteSize: *paletteSize,
		quiet:       *quiet,
	}); err != nil {
		log.Fatalf("sliceforge: %v", err)
	}
}

type options struct {
	grid        grid.Params
	cleanup     cleanup.Params
	shadowWidth int
	segments    bool
	workers     int
	outDir      string
	css         bool
	png         bool
	tarPath     string
	scale       int
	thumbSize   int
	paletteSize int
	quiet       bool
}

func run(ctx context.Context, sheetPath string, opts options) error {
	cache := pixel.NewCache()
	buf, err := cache.Load(sheetPath)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"path":   sheetPath,
		"width":  buf.Width,
		"height": buf.Height,
	}).Info("loaded sheet")

	var bar *pb.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = pb.StartNew(total)
		}
		bar.SetCurrent(int64(done))
	}
	if opts.quiet {
		progress = nil
	}

	res, err := pipeline.Run(ctx, buf, pipeline.Options{
		Grid:             opts.grid,
		Cleanup:          opts.cleanup,
		SliceShadowWidth: opts.shadowWidth,
		IncludeSegments:  opts.segments,
		Workers:          opts.workers,
		OnProgress:       progress,
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return err
	}

	doc := export.NewDocument(res, export.SheetInfo{
		Path:   sheetPath,
		Width:  buf.Width,
		Height: buf.Height,
	}, opts.paletteSize)

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	jsonPath := filepath.Join(opts.outDir, "analysis.json")
	if err := writeFile(jsonPath, func(f *os.File) error {
		return export.WriteJSON(f, doc)
	}); err != nil {
		return err
	}
	log.WithField("path", jsonPath).Info("wrote analysis")

	if opts.css {
		cssPath := filepath.Join(opts.outDir, "sheet.css")
		if err := writeFile(cssPath, func(f *os.File) error {
			return export.WriteCSS(f, doc)
		}); err != nil {
			return err
		}
		log.WithField("path", cssPath).Info("wrote stylesheet")
	}

	if opts.png {
		paths, err := export.WritePNGs(filepath.Join(opts.outDir, "components"), res.Components, export.PNGOptions{
			Scale:         opts.scale,
			ThumbnailSize: opts.thumbSize,
		})
		if err != nil {
			return err
		}
		log.WithField("count", len(paths)).Info("wrote component images")
	}

	if opts.tarPath != "" {
		if err := writeFile(opts.tarPath, func(f *os.File) error {
			return export.WriteTar(f, doc)
		}); err != nil {
			return err
		}
		log.WithField("path", opts.tarPath).Info("wrote archive")
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
