package fire

import "image/color"

const (
	// MaxIntensity is the white-hot end of the palette.
	MaxIntensity = 36
	// PaletteSize is the number of palette entries, one per intensity.
	PaletteSize = MaxIntensity + 1
)

var palette = [PaletteSize]color.RGBA{
	{R: 7, G: 7, B: 7, A: 255},
	{R: 31, G: 7, B: 7, A: 255},
	{R: 47, G: 15, B: 7, A: 255},
	{R: 71, G: 15, B: 7, A: 255},
	{R: 87, G: 23, B: 7, A: 255},
	{R: 103, G: 31, B: 7, A: 255},
	{R: 119, G: 31, B: 7, A: 255},
	{R: 143, G: 39, B: 7, A: 255},
	{R: 159, G: 47, B: 7, A: 255},
	{R: 175, G: 63, B: 7, A: 255},
	{R: 191, G: 71, B: 7, A: 255},
	{R: 199, G: 71, B: 7, A: 255},
	{R: 223, G: 79, B: 7, A: 255},
	{R: 223, G: 87, B: 7, A: 255},
	{R: 223, G: 87, B: 7, A: 255},
	{R: 215, G: 95, B: 7, A: 255},
	{R: 215, G: 95, B: 7, A: 255},
	{R: 215, G: 103, B: 15, A: 255},
	{R: 207, G: 111, B: 15, A: 255},
	{R: 207, G: 119, B: 15, A: 255},
	{R: 207, G: 127, B: 15, A: 255},
	{R: 207, G: 135, B: 23, A: 255},
	{R: 199, G: 135, B: 23, A: 255},
	{R: 199, G: 143, B: 23, A: 255},
	{R: 199, G: 151, B: 31, A: 255},
	{R: 191, G: 159, B: 31, A: 255},
	{R: 191, G: 159, B: 31, A: 255},
	{R: 191, G: 167, B: 39, A: 255},
	{R: 191, G: 167, B: 39, A: 255},
	{R: 191, G: 175, B: 47, A: 255},
	{R: 183, G: 175, B: 47, A: 255},
	{R: 183, G: 183, B: 47, A: 255},
	{R: 183, G: 183, B: 55, A: 255},
	{R: 207, G: 207, B: 111, A: 255},
	{R: 223, G: 223, B: 159, A: 255},
	{R: 239, G: 239, B: 199, A: 255},
	{R: 255, G: 255, B: 255, A: 255},
}

// Palette returns a copy of the intensity-to-color table.
func Palette() [PaletteSize]color.RGBA {
	return palette
}

// PaletteColor returns the color for intensity i, clamped to [0, MaxIntensity].
func PaletteColor(i int) color.RGBA {
	c, _ := clampIntensity(int64(i))
	return palette[c]
}

// clampIntensity clamps v into the palette range and reports whether it had to.
func clampIntensity(v int64) (uint8, bool) {
	switch {
	case v < 0:
		return 0, true
	case v > MaxIntensity:
		return MaxIntensity, true
	}
	return uint8(v), false
}
