package render

import (
	"image"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
	"github.com/wippyai/pdfium-bridge/bridge"
	"github.com/wippyai/pdfium-bridge/errors"
)

// White is the default background, ARGB.
const White uint32 = 0xFFFFFFFF

// DefaultFlags renders annotations with LCD-optimized text.
const DefaultFlags = pdfiumbridge.RenderAnnot | pdfiumbridge.RenderLCDText

// Options controls RenderPage.
type Options struct {
	// Background is the ARGB color painted before rendering.
	Background uint32
	// Transparent skips the background fill.
	Transparent bool
	Flags       pdfiumbridge.RenderFlag
	Rotate      pdfiumbridge.Rotation
}

// DefaultOptions returns a white background with DefaultFlags.
func DefaultOptions() *Options {
	return &Options{Background: White, Flags: DefaultFlags}
}

// FitSize scales a page of pageW x pageH points to the largest pixel size
// that fits in maxW x maxH with the same aspect ratio. Each side is at
// least one pixel.
func FitSize(pageW, pageH float64, maxW, maxH int) (width, height int) {
	aspect := pageW / pageH
	width = maxW
	height = int(float64(maxW) / aspect)
	if height > maxH {
		height = maxH
		width = int(float64(maxH) * aspect)
	}
	return max(width, 1), max(height, 1)
}

// RenderPage renders the page at index into an image fitting maxW x maxH.
// A nil opts uses DefaultOptions.
func (d *Document) RenderPage(index, maxW, maxH int, opts *Options) (*image.NRGBA, error) {
	if maxW <= 0 || maxH <= 0 {
		return nil, errors.InvalidInput(errors.PhaseRender, "RenderPage", "size must be positive")
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	var img *image.NRGBA
	err := d.withPage("RenderPage", index, func(page bridge.Page) error {
		pageW, pageH := d.b.GetPageWidth(page), d.b.GetPageHeight(page)
		if pageW <= 0 || pageH <= 0 {
			return errors.New(errors.PhasePage, errors.KindNative).
				Op(pdfiumbridge.SymGetPageWidth).
				Detail("page %d has no size", index).
				Build()
		}
		if opts.Rotate == pdfiumbridge.Rotate90 || opts.Rotate == pdfiumbridge.Rotate270 {
			pageW, pageH = pageH, pageW
		}
		w, h := FitSize(pageW, pageH, maxW, maxH)

		bm := d.b.CreateBitmapEx(w, h, pdfiumbridge.BitmapBGRA)
		if bm == 0 {
			return errors.AllocationFailed(errors.PhaseBitmap, pdfiumbridge.SymBitmapCreateEx, w*h*4)
		}
		defer d.b.DestroyBitmap(bm)

		if !opts.Transparent && !d.b.FillRect(bm, 0, 0, w, h, opts.Background) {
			return errors.Native(errors.PhaseBitmap, pdfiumbridge.SymBitmapFillRect)
		}

		vp := bridge.Viewport{SizeX: w, SizeY: h, Rotate: opts.Rotate}
		d.b.RenderPageBitmap(bm, page, vp, opts.Flags)

		buf := d.b.GetBitmapBuffer(bm)
		if buf == nil {
			return errors.Native(errors.PhaseBitmap, pdfiumbridge.SymBitmapGetBuffer)
		}
		img = BGRAToNRGBA(buf, d.b.GetBitmapStride(bm), w, h)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// BGRAToNRGBA copies a pdfium BGRA buffer with the given row stride into a
// new image.
func BGRAToNRGBA(buf []byte, stride, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := buf[y*stride : y*stride+width*4]
		dst := img.Pix[y*img.Stride : y*img.Stride+width*4]
		for x := 0; x < width*4; x += 4 {
			dst[x+0] = src[x+2]
			dst[x+1] = src[x+1]
			dst[x+2] = src[x+0]
			dst[x+3] = src[x+3]
		}
	}
	return img
}

// DeviceToPage maps pixel (x, y) of the page at index rendered at
// width x height onto page coordinates in points.
func (d *Document) DeviceToPage(index, width, height, x, y int) (pt [2]float64, err error) {
	err = d.withPage("DeviceToPage", index, func(page bridge.Page) error {
		var ok bool
		pt, ok = d.b.DeviceToPage(page, bridge.Fit(width, height), x, y)
		if !ok {
			return errors.Native(errors.PhaseTransform, pdfiumbridge.SymDeviceToPage)
		}
		return nil
	})
	return pt, err
}

// PageToDevice maps page coordinates in points onto a pixel of the page
// at index rendered at width x height.
func (d *Document) PageToDevice(index, width, height int, x, y float64) (pt [2]int, err error) {
	err = d.withPage("PageToDevice", index, func(page bridge.Page) error {
		var ok bool
		pt, ok = d.b.PageToDevice(page, bridge.Fit(width, height), x, y)
		if !ok {
			return errors.Native(errors.PhaseTransform, pdfiumbridge.SymPageToDevice)
		}
		return nil
	})
	return pt, err
}
