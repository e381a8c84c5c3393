package bridge

import (
	"go.uber.org/zap"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
	"github.com/wippyai/pdfium-bridge/errors"
)

// RenderPageBitmap draws page into bitmap over the viewport. It does nothing
// when either handle is zero.
func (b *Bridge) RenderPageBitmap(bitmap Bitmap, page Page, vp Viewport, flags pdfiumbridge.RenderFlag) {
	if bitmap == 0 {
		logNilHandle(errors.PhaseRender, pdfiumbridge.SymRenderPageBitmap, "bitmap")
		return
	}
	if page == 0 {
		logNilHandle(errors.PhaseRender, pdfiumbridge.SymRenderPageBitmap, "page")
		return
	}

	b.lib.RenderPageBitmap(uintptr(bitmap), uintptr(page),
		vp.StartX, vp.StartY, vp.SizeX, vp.SizeY, vp.Rotate, flags)
	Logger().Debug("page rendered", zap.Object("viewport", vp), zap.Int("flags", int(flags)))
}

// DeviceToPage converts a device pixel inside the viewport to page
// coordinates {x, y} in points. ok is false for a zero page or when pdfium
// fails.
func (b *Bridge) DeviceToPage(page Page, vp Viewport, deviceX, deviceY int) (pt [2]float64, ok bool) {
	if page == 0 {
		logNilHandle(errors.PhaseTransform, pdfiumbridge.SymDeviceToPage, "page")
		return pt, false
	}
	x, y, ok := b.lib.DeviceToPage(uintptr(page),
		vp.StartX, vp.StartY, vp.SizeX, vp.SizeY, vp.Rotate, deviceX, deviceY)
	if !ok {
		Logger().Error("device to page conversion failed",
			zap.Object("viewport", vp),
			zap.Error(errors.Native(errors.PhaseTransform, pdfiumbridge.SymDeviceToPage)))
		return pt, false
	}
	return [2]float64{x, y}, true
}

// PageToDevice converts page coordinates in points to a device pixel
// {x, y} inside the viewport. ok is false for a zero page or when pdfium
// fails.
func (b *Bridge) PageToDevice(page Page, vp Viewport, pageX, pageY float64) (pt [2]int, ok bool) {
	if page == 0 {
		logNilHandle(errors.PhaseTransform, pdfiumbridge.SymPageToDevice, "page")
		return pt, false
	}
	x, y, ok := b.lib.PageToDevice(uintptr(page),
		vp.StartX, vp.StartY, vp.SizeX, vp.SizeY, vp.Rotate, pageX, pageY)
	if !ok {
		Logger().Error("page to device conversion failed",
			zap.Object("viewport", vp),
			zap.Error(errors.Native(errors.PhaseTransform, pdfiumbridge.SymPageToDevice)))
		return pt, false
	}
	return [2]int{x, y}, true
}
