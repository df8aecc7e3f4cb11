package render

import (
	"image"
	"image/color"
)

// fillColorRGBA copies a color buffer into RGBA pixels in buf.
func fillColorRGBA(buf []byte, colors []color.RGBA) {
	for i, c := range colors {
		base := i * 4
		buf[base+0] = c.R
		buf[base+1] = c.G
		buf[base+2] = c.B
		buf[base+3] = c.A
	}
}

// ToImage renders a w*h color buffer into a new image, each cell drawn as a
// scale x scale block. A buffer of the wrong length yields a blank image.
func ToImage(colors []color.RGBA, w, h, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	if len(colors) != w*h {
		return img
	}
	if scale == 1 {
		fillColorRGBA(img.Pix, colors)
		return img
	}

	row := make([]byte, 4*w*scale)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := colors[y*w+x]
			for s := 0; s < scale; s++ {
				base := (x*scale + s) * 4
				row[base+0] = c.R
				row[base+1] = c.G
				row[base+2] = c.B
				row[base+3] = c.A
			}
		}
		for s := 0; s < scale; s++ {
			start := (y*scale + s) * img.Stride
			copy(img.Pix[start:start+len(row)], row)
		}
	}
	return img
}
