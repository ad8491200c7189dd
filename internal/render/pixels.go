package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. Values
// past the end of the palette use its last entry. When the palette is empty
// the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// RGBA renders cells into a freshly allocated RGBA byte slice, four bytes per
// cell in row-major order.
func RGBA(cells []uint8, palette []color.RGBA) []byte {
	buf := make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, palette)
	return buf
}
