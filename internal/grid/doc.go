// Package grid locates divider lines in a tile sheet and turns them into
// cell and segment geometry.
//
// A divider is a row or column whose pixels are all the same color within a
// tolerance. Thick or antialiased dividers match on several adjacent
// rows/columns; those runs are consolidated into one DividerGroup whose
// rounded midpoint (the slice) delimits the cells.
//
// # Pipeline
//
//  1. Outer border scan: consecutive uniform rows/columns at each image edge
//     are measured and reported, but never bound cells.
//  2. Divider scan: every row (column) is tested for uniformity against its
//     own first pixel, one absolute per-channel comparison including alpha.
//  3. Consolidation: contiguous matching indices collapse into groups.
//  4. Minimum-gap enforcement: near-duplicate groups inside the gap are
//     resolved in favor of the thicker divider.
//  5. Cells and segments are derived from the surviving slice centers.
//
// Detection is fully deterministic: identical pixels in, identical Config
// out.
package grid
