package export

import (
	"archive/tar"
	"bytes"
	"fmt"
	"image/png"
	"io"
	"time"
)

// WriteTar bundles the JSON document and every non-empty component image
// into a tar stream. Entry order follows the document, so identical inputs
// produce identical archives apart from the modification time.
func WriteTar(w io.Writer, doc *Document) error {
	tw := tar.NewWriter(w)
	now := time.Now()

	var manifest bytes.Buffer
	if err := WriteJSON(&manifest, doc); err != nil {
		return err
	}
	if err := addEntry(tw, "analysis.json", manifest.Bytes(), now); err != nil {
		return err
	}

	for _, c := range doc.Components {
		if c == nil || c.Buffer == nil || c.IsEmpty {
			continue
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, c.Buffer.ToImage()); err != nil {
			return fmt.Errorf("encoding %s: %w", c.Name, err)
		}
		if err := addEntry(tw, "components/"+c.Name+".png", buf.Bytes(), now); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

func addEntry(tw *tar.Writer, name string, data []byte, mod time.Time) error {
	hdr := &tar.Header{
		Name:    name,
		Mode:    0o644,
		Size:    int64(len(data)),
		ModTime: mod,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("writing %s header: %w", name, err)
	}
	if _, err := tw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
