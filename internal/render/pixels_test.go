package render

import (
	"image/color"
	"slices"
	"testing"
)

func TestFillColorRGBA(t *testing.T) {
	colors := []color.RGBA{{R: 1, G: 2, B: 3, A: 4}, {R: 5, G: 6, B: 7, A: 8}}
	buf := make([]byte, 8)
	fillColorRGBA(buf, colors)
	if !slices.Equal(buf, []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatalf("unexpected pixels %v", buf)
	}
}

func TestToImageScales(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	img := ToImage([]color.RGBA{red, blue, blue, red}, 2, 2, 3)

	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("unexpected bounds %v", b)
	}
	cases := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, red}, {2, 2, red}, {3, 0, blue}, {5, 2, blue},
		{0, 3, blue}, {2, 5, blue}, {3, 3, red}, {5, 5, red},
	}
	for _, tc := range cases {
		if got := img.RGBAAt(tc.x, tc.y); got != tc.want {
			t.Fatalf("pixel (%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestToImageRejectsMismatchedBuffer(t *testing.T) {
	img := ToImage([]color.RGBA{{R: 9, A: 255}}, 2, 2, 1)
	if got := img.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Fatalf("mismatched buffer must leave the image blank, got %v", got)
	}
}
