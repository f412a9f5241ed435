// Package texture implements the raster algorithms used to prepare
// hexagonal game-tile textures: splitting composite grid sheets into
// individual tiles, removing white background matte without damaging
// soft interior detail, and thinning decorative tile frames.
//
// All operations work on Buffer, a plain interleaved 8-bit RGBA raster
// with non-premultiplied alpha (the same pixel model PNG uses). The
// coordinate system is 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward.
//
// # Transform Semantics
//
// Every algorithm treats its input as immutable and returns a freshly
// allocated Buffer. There is no aliasing between input and output, so
// concurrent invocations on distinct buffers need no locking.
//
// # Alpha Conventions
//
//   - alpha 0 is fully transparent (background)
//   - "content" means alpha above a small noise threshold (default 20)
//   - "opaque enough to matte" means alpha above 200
//
// File I/O is deliberately absent from this package; the pipeline
// package owns reading and writing image files.
package texture
