package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values
// past the end of the palette use its last colour.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
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

// tintRGBA blends col over the pixels of buf wherever mask is positive, using
// the mask value as opacity.
func tintRGBA(buf []byte, mask []float32, col color.RGBA) {
	for i, m := range mask {
		if m <= 0 {
			continue
		}
		if m > 1 {
			m = 1
		}
		base := i * 4
		buf[base+0] = blend(buf[base+0], col.R, m)
		buf[base+1] = blend(buf[base+1], col.G, m)
		buf[base+2] = blend(buf[base+2], col.B, m)
	}
}

func blend(dst, src uint8, a float32) uint8 {
	return uint8(float32(dst)*(1-a) + float32(src)*a + 0.5)
}
