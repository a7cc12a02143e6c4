// Package pixel provides the raw RGBA buffer type shared by every pipeline
// stage, plus file loading with a decode cache.
//
// A Buffer is a width×height grid of interleaved 8-bit RGBA samples in
// row-major order. The pipeline works on Buffers directly rather than on
// image.Image so that the inner loops index bytes without interface calls;
// FromImage and ToImage convert at the boundaries.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
// X increases rightward, Y increases downward.
//
// # Ownership
//
// Stages never mutate a Buffer they were handed. A stage that needs to write
// clones its input first (Clone) and returns the owned copy. The only shared
// state is read-only access to a source Buffer.
//
// # Thread Safety
//
// The Cache type is safe for concurrent use. Buffer itself carries no locks;
// concurrent readers are fine, concurrent writers are the caller's problem.
package pixel
