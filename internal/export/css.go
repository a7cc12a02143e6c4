package export

import (
	"fmt"
	"io"
	"strings"
)

// WriteCSS renders the document as a stylesheet: palette custom properties
// on :root and a border-image rule for every nine-sliced component.
func WriteCSS(w io.Writer, doc *Document) error {
	var b strings.Builder
	b.WriteString("/* generated by sliceforge */\n\n")

	if len(doc.Palette) > 0 {
		b.WriteString(":root {\n")
		for i, hex := range doc.Palette {
			fmt.Fprintf(&b, "  --sf-color-%d: %s;\n", i, hex)
		}
		b.WriteString("}\n\n")
	}

	for _, c := range doc.Components {
		if c == nil || c.NineSlice.Zero() {
			continue
		}
		in := c.NineSlice
		fmt.Fprintf(&b, ".sf-%s {\n", cssName(c.Name))
		fmt.Fprintf(&b, "  border-image-source: url(%s.png);\n", c.Name)
		fmt.Fprintf(&b, "  border-image-slice: %d %d %d %d fill;\n", in.Top, in.Right, in.Bottom, in.Left)
		fmt.Fprintf(&b, "  border-image-width: %dpx %dpx %dpx %dpx;\n", in.Top, in.Right, in.Bottom, in.Left)
		b.WriteString("  border-image-repeat: stretch;\n")
		b.WriteString("}\n\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing stylesheet: %w", err)
	}
	return nil
}

// cssName maps a component name to a safe class-name fragment.
func cssName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '-'
		}
	}, name)
}
