package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sliceforge/sliceforge/internal/component"
	"github.com/sliceforge/sliceforge/internal/grid"
	"github.com/sliceforge/sliceforge/internal/pipeline"
)

// DocumentVersion identifies the JSON document schema.
const DocumentVersion = "1"

// Document is the serializable analysis result.
type Document struct {
	Version    string                 `json:"version"`
	Sheet      SheetInfo              `json:"sheet"`
	Grid       *grid.Config           `json:"grid"`
	Components []*component.Processed `json:"components"`
	Palette    []string               `json:"palette,omitempty"`
}

// SheetInfo records the analyzed sheet's dimensions and origin.
type SheetInfo struct {
	Path   string `json:"path,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// NewDocument assembles the export document from a pipeline result.
// paletteSize bounds the extracted palette; zero skips it.
func NewDocument(res *pipeline.Result, sheet SheetInfo, paletteSize int) *Document {
	return &Document{
		Version:    DocumentVersion,
		Sheet:      sheet,
		Grid:       res.Grid,
		Components: res.Components,
		Palette:    Palette(res.Components, paletteSize),
	}
}

// WriteJSON writes the document as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding analysis document: %w", err)
	}
	return nil
}
