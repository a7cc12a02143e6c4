package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"

	"github.com/sliceforge/sliceforge/internal/component"
)

// PNGOptions shapes per-component image output.
type PNGOptions struct {
	// Scale upscales each component by an integer factor using
	// nearest-neighbour resampling, which keeps pixel art crisp.
	// Values below 2 write the component at its native size.
	Scale int

	// ThumbnailSize additionally writes a <name>_thumb.png fitted inside
	// a ThumbnailSize square using Lanczos resampling. Zero skips
	// thumbnails.
	ThumbnailSize int
}

// WritePNGs writes one PNG per component into dir, creating it if needed.
// Empty components are skipped. Returns the paths written.
func WritePNGs(dir string, comps []*component.Processed, opts PNGOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var written []string
	for _, c := range comps {
		if c == nil || c.Buffer == nil || c.IsEmpty {
			continue
		}
		img := componentImage(c, opts.Scale)

		path := filepath.Join(dir, c.Name+".png")
		if err := imaging.Save(img, path); err != nil {
			return written, fmt.Errorf("saving %s: %w", c.Name, err)
		}
		written = append(written, path)

		if opts.ThumbnailSize > 0 {
			thumb := imaging.Fit(img, opts.ThumbnailSize, opts.ThumbnailSize, imaging.Lanczos)
			tpath := filepath.Join(dir, c.Name+"_thumb.png")
			if err := imaging.Save(thumb, tpath); err != nil {
				return written, fmt.Errorf("saving %s thumbnail: %w", c.Name, err)
			}
			written = append(written, tpath)
		}
	}
	return written, nil
}

// componentImage renders a component buffer, upscaled when requested.
func componentImage(c *component.Processed, scale int) image.Image {
	img := c.Buffer.ToImage()
	if scale < 2 {
		return img
	}
	return transform.Resize(img, c.Buffer.Width*scale, c.Buffer.Height*scale, transform.NearestNeighbor)
}
