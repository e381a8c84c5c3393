package bridge

import (
	"math"

	"go.uber.org/zap"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
	"github.com/wippyai/pdfium-bridge/errors"
)

// CreateBitmap allocates a 32-bit bitmap: BGRA when alpha is set, BGRx
// otherwise. Returns zero for non-positive dimensions or when pdfium cannot
// allocate.
func (b *Bridge) CreateBitmap(width, height int, alpha bool) Bitmap {
	if !checkDimensions(pdfiumbridge.SymBitmapCreate, width, height) {
		return 0
	}
	bm := b.lib.BitmapCreate(width, height, alpha)
	if bm == 0 {
		Logger().Error("failed to create bitmap",
			zap.Error(errors.AllocationFailed(errors.PhaseBitmap, pdfiumbridge.SymBitmapCreate, width*height*4)))
		return 0
	}
	return Bitmap(bm)
}

// CreateBitmapEx allocates a bitmap of the given format. pdfium owns the
// pixel storage.
func (b *Bridge) CreateBitmapEx(width, height int, format pdfiumbridge.BitmapFormat) Bitmap {
	if !checkDimensions(pdfiumbridge.SymBitmapCreateEx, width, height) {
		return 0
	}
	bm := b.lib.BitmapCreateEx(width, height, format)
	if bm == 0 {
		Logger().Error("failed to create bitmap",
			zap.Stringer("format", format),
			zap.Error(errors.AllocationFailed(errors.PhaseBitmap, pdfiumbridge.SymBitmapCreateEx, width*height*format.BytesPerPixel())))
		return 0
	}
	return Bitmap(bm)
}

func checkDimensions(op string, width, height int) bool {
	if width <= 0 || height <= 0 || width > math.MaxInt32 || height > math.MaxInt32 {
		Logger().Error("invalid bitmap dimensions",
			zap.Int("width", width),
			zap.Int("height", height),
			zap.Error(errors.InvalidInput(errors.PhaseBitmap, op, "dimensions must be positive")))
		return false
	}
	return true
}

// DestroyBitmap releases bitmap. Buffer views obtained from it become
// invalid.
func (b *Bridge) DestroyBitmap(bitmap Bitmap) {
	if bitmap == 0 {
		logNilHandle(errors.PhaseBitmap, pdfiumbridge.SymBitmapDestroy, "bitmap")
		return
	}
	b.lib.BitmapDestroy(uintptr(bitmap))
}

// FillRect fills a rectangle of bitmap with an ARGB color. Returns false
// for a zero bitmap or when pdfium fails.
func (b *Bridge) FillRect(bitmap Bitmap, x, y, width, height int, argb uint32) bool {
	if bitmap == 0 {
		logNilHandle(errors.PhaseBitmap, pdfiumbridge.SymBitmapFillRect, "bitmap")
		return false
	}
	return b.lib.BitmapFillRect(uintptr(bitmap), x, y, width, height, argb)
}

// GetBitmapBuffer returns the bitmap's pixel storage without copying:
// stride*height bytes, rows top to bottom. Writes through the slice change
// the bitmap. The slice must not be used after DestroyBitmap. Returns nil
// for a zero bitmap or when pdfium reports no storage.
func (b *Bridge) GetBitmapBuffer(bitmap Bitmap) []byte {
	if bitmap == 0 {
		logNilHandle(errors.PhaseBitmap, pdfiumbridge.SymBitmapGetBuffer, "bitmap")
		return nil
	}

	stride := b.lib.BitmapGetStride(uintptr(bitmap))
	height := b.lib.BitmapGetHeight(uintptr(bitmap))
	size := stride * height
	if stride <= 0 || height <= 0 {
		Logger().Error("bitmap has no storage",
			zap.Int("stride", stride),
			zap.Int("height", height),
			zap.Error(errors.Native(errors.PhaseBitmap, pdfiumbridge.SymBitmapGetBuffer)))
		return nil
	}

	buf := b.lib.BitmapGetBuffer(uintptr(bitmap), size)
	if buf == nil {
		Logger().Error("bitmap buffer is null",
			zap.Error(errors.Native(errors.PhaseBitmap, pdfiumbridge.SymBitmapGetBuffer)))
		return nil
	}
	return buf
}

// GetBitmapStride returns the row length in bytes, or 0.
func (b *Bridge) GetBitmapStride(bitmap Bitmap) int {
	if bitmap == 0 {
		logNilHandle(errors.PhaseBitmap, pdfiumbridge.SymBitmapGetStride, "bitmap")
		return 0
	}
	return b.lib.BitmapGetStride(uintptr(bitmap))
}

// GetBitmapWidth returns the width in pixels, or 0.
func (b *Bridge) GetBitmapWidth(bitmap Bitmap) int {
	if bitmap == 0 {
		logNilHandle(errors.PhaseBitmap, pdfiumbridge.SymBitmapGetWidth, "bitmap")
		return 0
	}
	return b.lib.BitmapGetWidth(uintptr(bitmap))
}

// GetBitmapHeight returns the height in pixels, or 0.
func (b *Bridge) GetBitmapHeight(bitmap Bitmap) int {
	if bitmap == 0 {
		logNilHandle(errors.PhaseBitmap, pdfiumbridge.SymBitmapGetHeight, "bitmap")
		return 0
	}
	return b.lib.BitmapGetHeight(uintptr(bitmap))
}
