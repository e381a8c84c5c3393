package engine

import (
	"math"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
)

func i32(v int) uint64 {
	return api.EncodeI32(int32(v))
}

func ptr(h uintptr) uint64 {
	return api.EncodeU32(uint32(h))
}

func handle(v uint64) uintptr {
	return uintptr(api.DecodeU32(v))
}

func (l *Library) InitLibrary() {
	l.invoke(pdfiumbridge.SymInitLibrary)
}

// DestroyLibrary also frees guest copies of documents left open.
func (l *Library) DestroyLibrary() {
	l.invoke(pdfiumbridge.SymDestroyLibrary)
	l.retained.Clear()
}

func (l *Library) LoadDocument(path, password string) uintptr {
	pathPtr, ok := l.cString(path)
	if !ok {
		return 0
	}
	defer l.release(pathPtr)

	pwPtr, ok := l.optString(password)
	if !ok {
		return 0
	}
	defer l.release(pwPtr)

	return handle(l.invoke(pdfiumbridge.SymLoadDocument, api.EncodeU32(pathPtr), api.EncodeU32(pwPtr)))
}

// LoadMemDocument copies data into guest memory. The copy is freed by
// CloseDocument.
func (l *Library) LoadMemDocument(data []byte, password string) uintptr {
	if len(data) == 0 || uint64(len(data)) > math.MaxInt32 {
		return 0
	}

	bufPtr, ok := l.alloc(uint32(len(data)))
	if !ok {
		return 0
	}
	if !l.mem.Write(bufPtr, data) {
		l.release(bufPtr)
		return 0
	}

	pwPtr, ok := l.optString(password)
	if !ok {
		l.release(bufPtr)
		return 0
	}
	defer l.release(pwPtr)

	doc := handle(l.invoke(pdfiumbridge.SymLoadMemDocument,
		api.EncodeU32(bufPtr), i32(len(data)), api.EncodeU32(pwPtr)))
	if doc == 0 {
		l.release(bufPtr)
		return 0
	}

	if err := l.retained.Insert(doc, 0, &guestBuffer{lib: l, ptr: bufPtr, size: len(data)}); err != nil {
		Logger().Warn("guest document copy not tracked", zap.Uintptr("doc", doc), zap.Error(err))
	}
	return doc
}

func (l *Library) CloseDocument(doc uintptr) {
	l.invoke(pdfiumbridge.SymCloseDocument, ptr(doc))
	l.retained.Remove(doc)
}

func (l *Library) GetLastError() uint32 {
	return api.DecodeU32(l.invoke(pdfiumbridge.SymGetLastError))
}

func (l *Library) GetPageCount(doc uintptr) int {
	return int(api.DecodeI32(l.invoke(pdfiumbridge.SymGetPageCount, ptr(doc))))
}

func (l *Library) GetFileVersion(doc uintptr) (int, bool) {
	if l.invoke(pdfiumbridge.SymGetFileVersion, ptr(doc), api.EncodeU32(l.scratch)) == 0 {
		return 0, false
	}
	v, ok := l.mem.ReadUint32Le(l.scratch)
	if !ok {
		return 0, false
	}
	return int(int32(v)), true
}

func (l *Library) GetDocPermissions(doc uintptr) uint32 {
	return api.DecodeU32(l.invoke(pdfiumbridge.SymGetDocPermissions, ptr(doc)))
}

func (l *Library) LoadPage(doc uintptr, index int) uintptr {
	return handle(l.invoke(pdfiumbridge.SymLoadPage, ptr(doc), i32(index)))
}

func (l *Library) ClosePage(page uintptr) {
	l.invoke(pdfiumbridge.SymClosePage, ptr(page))
}

func (l *Library) GetPageWidth(page uintptr) float64 {
	return api.DecodeF64(l.invoke(pdfiumbridge.SymGetPageWidth, ptr(page)))
}

func (l *Library) GetPageHeight(page uintptr) float64 {
	return api.DecodeF64(l.invoke(pdfiumbridge.SymGetPageHeight, ptr(page)))
}

func (l *Library) GetPageSizeByIndex(doc uintptr, index int) (float64, float64, bool) {
	if l.invoke(pdfiumbridge.SymGetPageSizeByIndex, ptr(doc), i32(index),
		api.EncodeU32(l.scratch), api.EncodeU32(l.scratch+8)) == 0 {
		return 0, 0, false
	}
	w, okW := l.mem.ReadFloat64Le(l.scratch)
	h, okH := l.mem.ReadFloat64Le(l.scratch + 8)
	if !okW || !okH {
		return 0, 0, false
	}
	return w, h, true
}

func (l *Library) BitmapCreate(width, height int, alpha bool) uintptr {
	a := 0
	if alpha {
		a = 1
	}
	return handle(l.invoke(pdfiumbridge.SymBitmapCreate, i32(width), i32(height), i32(a)))
}

// BitmapCreateEx passes a NULL first scan so pdfium allocates the pixels.
func (l *Library) BitmapCreateEx(width, height int, format pdfiumbridge.BitmapFormat) uintptr {
	return handle(l.invoke(pdfiumbridge.SymBitmapCreateEx,
		i32(width), i32(height), i32(int(format)), 0, 0))
}

func (l *Library) BitmapDestroy(bitmap uintptr) {
	l.invoke(pdfiumbridge.SymBitmapDestroy, ptr(bitmap))
}

func (l *Library) BitmapFillRect(bitmap uintptr, left, top, width, height int, color uint32) bool {
	results, ok := l.call(l.fns[pdfiumbridge.SymBitmapFillRect], pdfiumbridge.SymBitmapFillRect,
		ptr(bitmap), i32(left), i32(top), i32(width), i32(height), api.EncodeU32(color))
	if !ok {
		return false
	}
	// Older pdfium builds declare FillRect void.
	return len(results) == 0 || api.DecodeI32(results[0]) != 0
}

// BitmapGetBuffer returns a view of guest memory. It is invalidated when
// guest memory grows.
func (l *Library) BitmapGetBuffer(bitmap uintptr, size int) []byte {
	p := api.DecodeU32(l.invoke(pdfiumbridge.SymBitmapGetBuffer, ptr(bitmap)))
	if p == 0 || size <= 0 {
		return nil
	}
	buf, ok := l.mem.Read(p, uint32(size))
	if !ok {
		Logger().Error("bitmap buffer outside guest memory",
			zap.Uint32("ptr", p), zap.Int("size", size))
		return nil
	}
	return buf
}

func (l *Library) BitmapGetWidth(bitmap uintptr) int {
	return int(api.DecodeI32(l.invoke(pdfiumbridge.SymBitmapGetWidth, ptr(bitmap))))
}

func (l *Library) BitmapGetHeight(bitmap uintptr) int {
	return int(api.DecodeI32(l.invoke(pdfiumbridge.SymBitmapGetHeight, ptr(bitmap))))
}

func (l *Library) BitmapGetStride(bitmap uintptr) int {
	return int(api.DecodeI32(l.invoke(pdfiumbridge.SymBitmapGetStride, ptr(bitmap))))
}

func (l *Library) RenderPageBitmap(bitmap, page uintptr, startX, startY, sizeX, sizeY int, rotate pdfiumbridge.Rotation, flags pdfiumbridge.RenderFlag) {
	l.invoke(pdfiumbridge.SymRenderPageBitmap, ptr(bitmap), ptr(page),
		i32(startX), i32(startY), i32(sizeX), i32(sizeY), i32(int(rotate)), i32(int(flags)))
}

func (l *Library) DeviceToPage(page uintptr, startX, startY, sizeX, sizeY int, rotate pdfiumbridge.Rotation, deviceX, deviceY int) (float64, float64, bool) {
	if l.invoke(pdfiumbridge.SymDeviceToPage, ptr(page),
		i32(startX), i32(startY), i32(sizeX), i32(sizeY), i32(int(rotate)),
		i32(deviceX), i32(deviceY),
		api.EncodeU32(l.scratch), api.EncodeU32(l.scratch+8)) == 0 {
		return 0, 0, false
	}
	x, okX := l.mem.ReadFloat64Le(l.scratch)
	y, okY := l.mem.ReadFloat64Le(l.scratch + 8)
	if !okX || !okY {
		return 0, 0, false
	}
	return x, y, true
}

func (l *Library) PageToDevice(page uintptr, startX, startY, sizeX, sizeY int, rotate pdfiumbridge.Rotation, pageX, pageY float64) (int, int, bool) {
	if l.invoke(pdfiumbridge.SymPageToDevice, ptr(page),
		i32(startX), i32(startY), i32(sizeX), i32(sizeY), i32(int(rotate)),
		api.EncodeF64(pageX), api.EncodeF64(pageY),
		api.EncodeU32(l.scratch), api.EncodeU32(l.scratch+4)) == 0 {
		return 0, 0, false
	}
	x, okX := l.mem.ReadUint32Le(l.scratch)
	y, okY := l.mem.ReadUint32Le(l.scratch + 4)
	if !okX || !okY {
		return 0, 0, false
	}
	return int(int32(x)), int(int32(y)), true
}

var _ pdfiumbridge.Library = (*Library)(nil)
