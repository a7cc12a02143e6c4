// Package cleanup strips backgrounds and shadow residue from extracted cell
// buffers.
//
// Background removal is a layered set of heuristics, each requiring either
// edge proximity or isolation before it erases anything, so genuine
// anti-aliased widget content survives:
//
//  1. Sampling: the four corner pixels plus four inset points vote on the
//     background color; the largest sample cluster wins.
//  2. Flood fill: only background-candidate pixels reachable from the image
//     border through 4-connected candidates are masked. An interior region
//     that happens to share the background color is never reached.
//  3. Gradient shadow pass: a shallow band along each edge where
//     semi-transparent pixels and unbacked low-saturation dark pixels are
//     zeroed.
//  4. Residual pass: leftover semi-transparent pixels with mostly
//     transparent neighborhoods are zeroed.
//
// All entry points either return an owned copy or document in-place
// mutation; the caller's buffer is never silently aliased.
//
// The aggressiveness knob (nominally 0-100) scales every threshold. Values
// outside the nominal range are used as-is: pushing past 100 keeps lowering
// the saturation threshold below zero, which quietly disables the
// gradient-shadow test. That permissiveness is deliberate and relied on by
// callers that want the flood fill alone.
package cleanup
