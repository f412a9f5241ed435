package texture

import "math"

// distanceTransform computes the exact Euclidean distance transform of
// a binary foreground mask: for every foreground pixel, the distance to
// the nearest background pixel, with everything outside the canvas
// counting as background (a one-pixel virtual zero ring). Background
// pixels map to 0. mask is indexed y*w+x.
//
// Uses the Felzenszwalb-Huttenlocher method: a linear two-sweep pass
// per column for the binary input, then a 1D lower-envelope squared
// transform per row.
func distanceTransform(mask []bool, w, h int) []float64 {
	pw, ph := w+2, h+2

	// Per-column distance in pixels to the nearest background sample
	// along that column. The padded ring rows/columns are background,
	// so every column contains at least one zero.
	colDist := make([]float64, pw*ph)
	for x := 0; x < pw; x++ {
		d := 0
		for y := 0; y < ph; y++ {
			if isPaddedBackground(mask, w, h, x, y) {
				d = 0
			} else {
				d++
			}
			colDist[y*pw+x] = float64(d)
		}
		d = 0
		for y := ph - 1; y >= 0; y-- {
			if isPaddedBackground(mask, w, h, x, y) {
				d = 0
			} else {
				d++
			}
			if v := float64(d); v < colDist[y*pw+x] {
				colDist[y*pw+x] = v
			}
		}
	}

	// Row pass over squared column distances.
	f := make([]float64, pw)
	dRow := make([]float64, pw)
	v := make([]int, pw)
	z := make([]float64, pw+1)
	sq := make([]float64, pw*ph)
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			c := colDist[y*pw+x]
			f[x] = c * c
		}
		envelope1D(f, dRow, v, z, pw)
		copy(sq[y*pw:(y+1)*pw], dRow)
	}

	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask[y*w+x] {
				out[y*w+x] = math.Sqrt(sq[(y+1)*pw+x+1])
			}
		}
	}
	return out
}

// isPaddedBackground reports whether padded coordinate (x, y) on the
// (w+2)x(h+2) grid is background: either the virtual ring or a mask
// pixel that is false.
func isPaddedBackground(mask []bool, w, h, x, y int) bool {
	if x == 0 || y == 0 || x == w+1 || y == h+1 {
		return true
	}
	return !mask[(y-1)*w+x-1]
}

// envelope1D computes the 1D squared-distance transform
// d[x] = min over x' of (x-x')^2 + f[x'] by maintaining the lower
// envelope of the parabolas rooted at each sample.
func envelope1D(f, d []float64, v []int, z []float64, n int) {
	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)
	for q := 1; q < n; q++ {
		s := ((f[q] + float64(q*q)) - (f[v[k]] + float64(v[k]*v[k]))) / float64(2*q-2*v[k])
		for s <= z[k] {
			k--
			s = ((f[q] + float64(q*q)) - (f[v[k]] + float64(v[k]*v[k]))) / float64(2*q-2*v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dx := float64(q - v[k])
		d[q] = dx*dx + f[v[k]]
	}
}
