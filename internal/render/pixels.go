package render

import (
	"image"
	"image/color"

	"epigrid/internal/core"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Values past the end of the palette take its last color. When the palette
// is empty the buffer is cleared to transparent black.
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

// FrameImage paints cells onto a new image, each cell a scale*scale block.
func FrameImage(cells []uint8, size core.Size, palette []color.RGBA, scale int) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size.W*scale, size.H*scale))
	PaintFrame(img, cells, size, palette, scale)
	return img
}

// PaintFrame paints cells into dst starting at its top-left corner. Cells
// falling outside dst are dropped.
func PaintFrame(dst *image.RGBA, cells []uint8, size core.Size, palette []color.RGBA, scale int) {
	if scale <= 0 {
		scale = 1
	}
	if size.W <= 0 || size.H <= 0 {
		return
	}
	row := make([]byte, 4*size.W)
	b := dst.Bounds()
	for y := 0; y < size.H; y++ {
		start := y * size.W
		if start+size.W > len(cells) {
			return
		}
		fillPaletteRGBA(row, cells[start:start+size.W], palette)
		for sy := 0; sy < scale; sy++ {
			py := b.Min.Y + y*scale + sy
			if py >= b.Max.Y {
				return
			}
			for x := 0; x < size.W; x++ {
				px := b.Min.X + x*scale
				for sx := 0; sx < scale && px+sx < b.Max.X; sx++ {
					off := dst.PixOffset(px+sx, py)
					copy(dst.Pix[off:off+4], row[x*4:x*4+4])
				}
			}
		}
	}
}
