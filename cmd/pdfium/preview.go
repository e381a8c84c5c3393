package main

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// ramp runs from light to dark.
const ramp = " .:-=+*#%@"

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// previewSize fits an image of width x height into cols x rows terminal
// cells, correcting for tall cells.
func previewSize(width, height, cols, rows int) (int, int) {
	if width <= 0 || height <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	aspect := float64(width) / float64(height) * cellAspect
	w, h := cols, int(float64(cols)/aspect)
	if h > rows {
		h = rows
		w = int(float64(rows) * aspect)
	}
	return max(w, 1), max(h, 1)
}

// asciiPreview draws img as text in at most cols x rows characters.
func asciiPreview(img image.Image, cols, rows int) string {
	b := img.Bounds()
	w, h := previewSize(b.Dx(), b.Dy(), cols, rows)
	if w == 0 {
		return ""
	}

	gray := imaging.Grayscale(imaging.Resize(img, w, h, imaging.Box))

	var sb strings.Builder
	sb.Grow((w + 1) * h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w*4]
		for x := 0; x < w; x++ {
			lum := int(row[x*4])
			sb.WriteByte(ramp[(255-lum)*(len(ramp)-1)/255])
		}
		if y < h-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
