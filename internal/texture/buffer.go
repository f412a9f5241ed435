package texture

import (
	"image"

	"github.com/disintegration/imaging"
)

// Buffer is a rectangular grid of 8-bit RGBA samples with
// non-premultiplied alpha. Pix holds 4 bytes per pixel in row-major
// order; the sample for (x, y) starts at (y*W+x)*4.
type Buffer struct {
	W, H int
	Pix  []uint8
}

// NewBuffer allocates a fully transparent buffer of the given size.
func NewBuffer(w, h int) *Buffer {
	return &Buffer{W: w, H: h, Pix: make([]uint8, w*h*4)}
}

// FromImage converts any decoded image to a Buffer. Color models other
// than 8-bit RGBA are coerced; premultiplied sources are converted to
// straight alpha.
func FromImage(img image.Image) *Buffer {
	nrgba := imaging.Clone(img)
	w := nrgba.Rect.Dx()
	h := nrgba.Rect.Dy()

	buf := NewBuffer(w, h)
	for y := 0; y < h; y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		copy(buf.Pix[y*w*4:(y+1)*w*4], src)
	}
	return buf
}

// Image returns the buffer as an *image.NRGBA sharing no memory with
// the buffer, suitable for PNG encoding.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.W, b.H))
	for y := 0; y < b.H; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+b.W*4], b.Pix[y*b.W*4:(y+1)*b.W*4])
	}
	return img
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{W: b.W, H: b.H, Pix: make([]uint8, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

// offset returns the index of the red sample of pixel (x, y).
func (b *Buffer) offset(x, y int) int {
	return (y*b.W + x) * 4
}

// Alpha returns the alpha sample at (x, y).
func (b *Buffer) Alpha(x, y int) uint8 {
	return b.Pix[b.offset(x, y)+3]
}

// hasContent reports whether any pixel's alpha exceeds threshold.
func (b *Buffer) hasContent(threshold uint8) bool {
	for i := 3; i < len(b.Pix); i += 4 {
		if b.Pix[i] > threshold {
			return true
		}
	}
	return false
}

// contentBounds computes the tight bounding box of all pixels whose
// alpha exceeds threshold, using per-row and per-column content scans.
// ok is false when no pixel qualifies.
func (b *Buffer) contentBounds(threshold uint8) (r image.Rectangle, ok bool) {
	rowHas := make([]bool, b.H)
	colHas := make([]bool, b.W)
	for y := 0; y < b.H; y++ {
		row := b.Pix[y*b.W*4 : (y+1)*b.W*4]
		for x := 0; x < b.W; x++ {
			if row[x*4+3] > threshold {
				rowHas[y] = true
				colHas[x] = true
			}
		}
	}

	yMin, yMax := -1, -1
	for y, has := range rowHas {
		if has {
			if yMin < 0 {
				yMin = y
			}
			yMax = y
		}
	}
	if yMin < 0 {
		return image.Rectangle{}, false
	}

	xMin, xMax := -1, -1
	for x, has := range colHas {
		if has {
			if xMin < 0 {
				xMin = x
			}
			xMax = x
		}
	}
	return image.Rect(xMin, yMin, xMax+1, yMax+1), true
}

// crop returns a new buffer holding the pixels of r, which must lie
// within the buffer bounds.
func (b *Buffer) crop(r image.Rectangle) *Buffer {
	out := NewBuffer(r.Dx(), r.Dy())
	for y := 0; y < r.Dy(); y++ {
		srcOff := b.offset(r.Min.X, r.Min.Y+y)
		copy(out.Pix[y*out.W*4:(y+1)*out.W*4], b.Pix[srcOff:srcOff+r.Dx()*4])
	}
	return out
}
