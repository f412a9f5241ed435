package texture

import (
	"github.com/anthonynsimon/bild/parallel"
)

// Defaults for matte cleaning, tuned for white-sheet hex exports.
const (
	DefaultWhiteThreshold = 250
	DefaultWhiteTolerance = 10

	// PureWhiteThreshold is the stricter cutoff used by CleanPureWhite.
	PureWhiteThreshold = 245

	// cleanPadding is the transparent border added around cropped output.
	cleanPadding = 2
)

// CleanMatte removes residual white background matte from a tile:
// near-white opaque pixels become transparent, light halo pixels left
// at the new transparency boundary get their alpha damped, and the
// result is cropped to content and re-padded with a transparent
// 2-pixel border.
//
// A pixel is matted out when it is near-white (all of R, G, B at least
// whiteThreshold-tolerance) or very light (mean brightness at least
// whiteThreshold) and its alpha exceeds 200. empty is true when
// nothing survives matting; in that case the returned buffer is an
// unmodified copy of the input.
func CleanMatte(src *Buffer, whiteThreshold, tolerance int) (out *Buffer, empty bool) {
	w, h := src.W, src.H
	alpha := make([]uint8, w*h)
	brightness := make([]float64, w*h)

	// Matte pass: rows are independent.
	low := float64(whiteThreshold - tolerance)
	high := float64(whiteThreshold)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				i := (y*w + x) * 4
				r := float64(src.Pix[i])
				g := float64(src.Pix[i+1])
				b := float64(src.Pix[i+2])
				a := src.Pix[i+3]

				avg := (r + g + b) / 3
				brightness[y*w+x] = avg

				isWhite := r >= low && g >= low && b >= low
				if (isWhite || avg >= high) && a > 200 {
					alpha[y*w+x] = 0
				} else {
					alpha[y*w+x] = a
				}
			}
		}
	})

	// Halo damping: two ordered passes over the same alpha plane, so a
	// halo two pixels deep gets damped. Each pass reads the alpha
	// values it is mutating; pixels outside the canvas count as
	// transparent.
	for pass := 0; pass < 2; pass++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := y*w + x
				if alpha[i] == 0 || brightness[i] <= 200 {
					continue
				}
				if !hasClearNeighbor(alpha, w, h, x, y) {
					continue
				}
				if alpha[i] > 100 {
					alpha[i] = 100
				}
			}
		}
	}

	cleaned := src.Clone()
	for i := 0; i < w*h; i++ {
		cleaned.Pix[i*4+3] = alpha[i]
	}
	return cropAndPad(cleaned, src)
}

// CleanPureWhite is the quality-preserving variant: it knocks out only
// pure-white pixels (R, G, B all at least whiteThreshold and alpha at
// least 250), applies no halo damping, and then crops and pads like
// CleanMatte. Semi-transparent and soft detail pixels are untouched.
func CleanPureWhite(src *Buffer, whiteThreshold int) (out *Buffer, empty bool) {
	w, h := src.W, src.H
	cleaned := src.Clone()

	wt := uint8(whiteThreshold)
	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				i := (y*w + x) * 4
				if cleaned.Pix[i] >= wt && cleaned.Pix[i+1] >= wt && cleaned.Pix[i+2] >= wt &&
					cleaned.Pix[i+3] >= 250 {
					cleaned.Pix[i+3] = 0
				}
			}
		}
	})
	return cropAndPad(cleaned, src)
}

// hasClearNeighbor reports whether any of the four axis-aligned
// neighbors of (x, y) has alpha below 50, treating out-of-canvas
// neighbors as fully transparent.
func hasClearNeighbor(alpha []uint8, w, h, x, y int) bool {
	if y == 0 || alpha[(y-1)*w+x] < 50 {
		return true
	}
	if y == h-1 || alpha[(y+1)*w+x] < 50 {
		return true
	}
	if x == 0 || alpha[y*w+x-1] < 50 {
		return true
	}
	if x == w-1 || alpha[y*w+x+1] < 50 {
		return true
	}
	return false
}

// cropAndPad crops cleaned to its alpha>0 content and centers it on a
// transparent canvas two pixels larger on every side. When no content
// remains it returns a copy of orig tagged empty.
func cropAndPad(cleaned, orig *Buffer) (*Buffer, bool) {
	box, ok := cleaned.contentBounds(0)
	if !ok {
		return orig.Clone(), true
	}

	cropped := cleaned.crop(box)
	padded := NewBuffer(cropped.W+cleanPadding*2, cropped.H+cleanPadding*2)
	for y := 0; y < cropped.H; y++ {
		dst := padded.offset(cleanPadding, cleanPadding+y)
		copy(padded.Pix[dst:dst+cropped.W*4], cropped.Pix[y*cropped.W*4:(y+1)*cropped.W*4])
	}
	return padded, false
}
