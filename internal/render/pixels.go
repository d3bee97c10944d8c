package render

import (
	"image/color"

	"lifeview/internal/cells"
)

// FillPackedRGBA converts the first n cells of a packed buffer into RGBA
// pixels in buf, one pixel per cell.
func FillPackedRGBA(buf []byte, data []byte, n int, on, off color.Color) {
	rOn, gOn, bOn, aOn := on.RGBA()
	rOff, gOff, bOff, aOff := off.RGBA()
	for i := 0; i < n; i++ {
		base := i * 4
		if cells.Bit(data, i) {
			buf[base+0] = uint8(rOn >> 8)
			buf[base+1] = uint8(gOn >> 8)
			buf[base+2] = uint8(bOn >> 8)
			buf[base+3] = uint8(aOn >> 8)
			continue
		}
		buf[base+0] = uint8(rOff >> 8)
		buf[base+1] = uint8(gOff >> 8)
		buf[base+2] = uint8(bOff >> 8)
		buf[base+3] = uint8(aOff >> 8)
	}
}
