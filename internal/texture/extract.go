package texture

import "image"

// DefaultContentAlpha is the alpha value above which a pixel counts as
// real tile content when splitting grid sheets.
const DefaultContentAlpha = 20

// ExtractGrid splits a composite sheet into cols x rows equal cells and
// returns the non-empty ones, each tight-cropped to its content, in
// row-major visitation order (row 0 left to right, then row 1, ...).
//
// Cells are w/cols by h/rows pixels; remainder pixels on the right and
// bottom edges are discarded. A cell with no pixel above alphaThreshold
// produces no output and consumes no index. A sheet with no content at
// all yields an empty slice.
func ExtractGrid(src *Buffer, cols, rows int, alphaThreshold uint8) []*Buffer {
	if cols < 1 || rows < 1 {
		return nil
	}
	if !src.hasContent(alphaThreshold) {
		return nil
	}

	cellW := src.W / cols
	cellH := src.H / rows
	if cellW == 0 || cellH == 0 {
		return nil
	}

	var tiles []*Buffer
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := src.crop(image.Rect(col*cellW, row*cellH, (col+1)*cellW, (row+1)*cellH))

			box, ok := cell.contentBounds(alphaThreshold)
			if !ok {
				continue
			}
			tiles = append(tiles, cell.crop(box))
		}
	}
	return tiles
}
