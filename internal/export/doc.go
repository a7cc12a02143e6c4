// Package export renders pipeline results into their output formats.
//
// # Formats
//
//   - JSON: a versioned analysis document with grid geometry, per-component
//     shapes, nine-slice insets and the sheet palette.
//   - CSS: border-image rules per nine-sliced component plus palette custom
//     properties.
//   - PNG: one image file per extracted component, with optional
//     nearest-neighbour upscaling and Lanczos thumbnails.
//   - TAR: the JSON document and all component images in one archive.
//
// All writers are deterministic for a given pipeline result: components are
// emitted in result order and palette colors in cluster-size order.
package export
