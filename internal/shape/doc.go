// Package shape classifies the remaining pixels of a cleaned cell into
// geometric primitives: filled rectangles, rounded rectangles, and
// axis-aligned line runs.
//
// Classification is additive. Each matched shape is an independent
// observation over the same pixels; no occlusion resolution is attempted.
// The one exception is the rounded-rectangle test, which runs first and
// suppresses the plain-rectangle result for the same bounds: a rounded fill
// would otherwise always double-report.
//
// All tests operate on alpha only, never on hue: by this stage the
// background remover has already encoded "content" as nonzero alpha.
package shape
