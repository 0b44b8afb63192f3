package render

import (
	"image/color"
	"testing"

	"epigrid/internal/core"
)

var testPalette = []color.RGBA{
	{R: 10, G: 20, B: 30, A: 255},
	{R: 200, G: 0, B: 0, A: 255},
}

func TestFillPaletteClampsIndices(t *testing.T) {
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{0, 1, 9}, testPalette)
	want := []byte{10, 20, 30, 255, 200, 0, 0, 255, 200, 0, 0, 255}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, buf[i], want[i])
		}
	}
}

func TestFillPaletteEmptyClears(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	fillPaletteRGBA(buf, []uint8{3, 3}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, want 0", i, b)
		}
	}
}

func TestFrameImageScalesCells(t *testing.T) {
	cells := []uint8{0, 1, 1, 0}
	img := FrameImage(cells, core.Size{W: 2, H: 2}, testPalette, 3)
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("bounds %v, want 6x6", b)
	}
	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, testPalette[0]},
		{2, 2, testPalette[0]},
		{3, 0, testPalette[1]},
		{5, 2, testPalette[1]},
		{0, 3, testPalette[1]},
		{4, 5, testPalette[0]},
	}
	for _, c := range checks {
		if got := img.RGBAAt(c.x, c.y); got != c.want {
			t.Fatalf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}
