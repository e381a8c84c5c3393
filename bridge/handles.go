package bridge

import (
	"go.uber.org/zap/zapcore"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
)

// Document is an FPDF_DOCUMENT handle. Zero is absent.
type Document uintptr

// Page is an FPDF_PAGE handle. It is valid only while its document is open.
type Page uintptr

// Bitmap is an FPDF_BITMAP handle.
type Bitmap uintptr

// Viewport is the device rectangle a page is mapped onto, together with
// the rotation applied to the page.
type Viewport struct {
	StartX int
	StartY int
	SizeX  int
	SizeY  int
	Rotate pdfiumbridge.Rotation
}

// Fit returns an unrotated viewport covering a width x height device.
func Fit(width, height int) Viewport {
	return Viewport{SizeX: width, SizeY: height}
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (v Viewport) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("start_x", v.StartX)
	enc.AddInt("start_y", v.StartY)
	enc.AddInt("size_x", v.SizeX)
	enc.AddInt("size_y", v.SizeY)
	enc.AddInt("rotate", int(v.Rotate))
	return nil
}
