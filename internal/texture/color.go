package texture

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// MeanContentColor returns the mean RGB of all content pixels
// (alpha > 0) as a hex string like "#7fae5c", for progress reporting.
// ok is false for a fully transparent buffer.
func MeanContentColor(b *Buffer) (hex string, ok bool) {
	var rSum, gSum, bSum float64
	n := 0
	for i := 0; i < len(b.Pix); i += 4 {
		if b.Pix[i+3] == 0 {
			continue
		}
		rSum += float64(b.Pix[i])
		gSum += float64(b.Pix[i+1])
		bSum += float64(b.Pix[i+2])
		n++
	}
	if n == 0 {
		return "", false
	}
	c := colorful.Color{
		R: rSum / float64(n) / 255,
		G: gSum / float64(n) / 255,
		B: bSum / float64(n) / 255,
	}
	return c.Hex(), true
}
