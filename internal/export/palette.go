package export

import (
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/sliceforge/sliceforge/internal/component"
)

// Palette clusters the components' pixels into at most k representative
// colors, ordered by cluster population. Transparent pixels are skipped.
// Results are hex strings.
func Palette(comps []*component.Processed, k int) []string {
	if k <= 0 {
		return nil
	}

	var dataset clusters.Observations
	for _, c := range comps {
		if c == nil || c.Buffer == nil || c.IsEmpty {
			continue
		}
		buf := c.Buffer
		// Subsample large buffers so kmeans stays tractable.
		step := 1
		if buf.Width*buf.Height > 4096 {
			step = 2
		}
		for y := 0; y < buf.Height; y += step {
			for x := 0; x < buf.Width; x += step {
				px := buf.At(x, y)
				if px.A == 0 {
					continue
				}
				dataset = append(dataset, clusters.Coordinates{
					float64(px.R) / 255,
					float64(px.G) / 255,
					float64(px.B) / 255,
				})
			}
		}
	}
	if len(dataset) == 0 {
		return nil
	}
	if k > len(dataset) {
		k = len(dataset)
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		return nil
	}
	sort.Slice(cc, func(i, j int) bool {
		return len(cc[i].Observations) > len(cc[j].Observations)
	})

	out := make([]string, 0, len(cc))
	for _, cl := range cc {
		if len(cl.Center) < 3 {
			continue
		}
		col := colorful.Color{R: cl.Center[0], G: cl.Center[1], B: cl.Center[2]}.Clamped()
		out = append(out, col.Hex())
	}
	return out
}
