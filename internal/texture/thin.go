package texture

import (
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// DefaultFrameShrink is the default number of pixels to thin a tile
// frame by. Values of 3-5 work well for the hex frame textures.
const DefaultFrameShrink = 3

// ThinFrame thins the visible decorative frame of a tile by pulling
// its border pixels radially toward the canvas center, preserving the
// overall silhouette and leaving the interior fill untouched. The
// output has the same dimensions as the input.
//
// Foreground pixels (alpha > 0) at depth d into the shape, measured by
// the Euclidean distance transform, fall into two regimes:
//
//   - d > shrinkPixels: interior fill, copied unchanged.
//   - 0 < d <= shrinkPixels: frame band. The pixel's content is
//     resampled from a source position pulled up to shrinkPixels
//     toward the center at the outermost edge, tapering to zero pull
//     at the band's inner cutoff, using bilinear interpolation.
//
// Background pixels stay fully transparent. shrinkPixels <= 0 returns
// an unmodified copy.
func ThinFrame(src *Buffer, shrinkPixels int) *Buffer {
	if shrinkPixels <= 0 {
		return src.Clone()
	}

	w, h := src.W, src.H
	mask := make([]bool, w*h)
	for i := 0; i < w*h; i++ {
		mask[i] = src.Pix[i*4+3] > 0
	}
	depth := distanceTransform(mask, w, h)

	out := NewBuffer(w, h)
	cx := float64(w) / 2
	cy := float64(h) / 2
	shrink := float64(shrinkPixels)

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				if !mask[i] {
					continue
				}
				o := i * 4

				if depth[i] > shrink {
					copy(out.Pix[o:o+4], src.Pix[o:o+4])
					continue
				}

				dx := float64(x) - cx
				dy := float64(y) - cy
				distToCenter := math.Hypot(dx, dy)
				if distToCenter < 1e-6 {
					copy(out.Pix[o:o+4], src.Pix[o:o+4])
					continue
				}

				// Maximal pull at the outer boundary, none at the
				// interior cutoff.
				shrinkFactor := depth[i] / shrink
				displacement := shrink * (1 - shrinkFactor)
				scale := 1 - displacement/distToCenter

				sx := cx + dx*scale
				sy := cy + dy*scale
				if sx < 0 || sy < 0 || sx > float64(w-1) || sy > float64(h-1) {
					continue // stays transparent
				}
				bilinearSample(src, sx, sy, out.Pix[o:o+4])
			}
		}
	})
	return out
}

// bilinearSample writes the bilinear interpolation of the four source
// pixels around (sx, sy) into dst (4 bytes, RGBA). The caller
// guarantees 0 <= sx <= W-1 and 0 <= sy <= H-1; the +1 neighbor is
// clamped at the canvas edge.
func bilinearSample(src *Buffer, sx, sy float64, dst []uint8) {
	x0 := int(sx)
	y0 := int(sy)
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 > src.W-1 {
		x1 = src.W - 1
	}
	if y1 > src.H-1 {
		y1 = src.H - 1
	}
	fx := sx - float64(x0)
	fy := sy - float64(y0)

	i00 := src.offset(x0, y0)
	i01 := src.offset(x1, y0)
	i10 := src.offset(x0, y1)
	i11 := src.offset(x1, y1)

	for c := 0; c < 4; c++ {
		val := float64(src.Pix[i00+c])*(1-fy)*(1-fx) +
			float64(src.Pix[i01+c])*(1-fy)*fx +
			float64(src.Pix[i10+c])*fy*(1-fx) +
			float64(src.Pix[i11+c])*fy*fx
		dst[c] = uint8(math.Round(math.Min(math.Max(val, 0), 255)))
	}
}
