package native

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
	"github.com/wippyai/pdfium-bridge/errors"
)

// Library is a pdfium shared library with its entry points bound.
type Library struct {
	so   *sharedObject
	path string

	closeOnce sync.Once
	closeErr  error

	initLibrary        func()
	destroyLibrary     func()
	loadDocument       func(path, password string) uintptr
	loadMemDocument    func(data *byte, size int32, password string) uintptr
	closeDocument      func(doc uintptr)
	getLastError       func() uint32
	getPageCount       func(doc uintptr) int32
	getFileVersion     func(doc uintptr, version *int32) int32
	getDocPermissions  func(doc uintptr) uint32
	loadPage           func(doc uintptr, index int32) uintptr
	closePage          func(page uintptr)
	getPageWidth       func(page uintptr) float64
	getPageHeight      func(page uintptr) float64
	getPageSizeByIndex func(doc uintptr, index int32, width, height *float64) int32
	bitmapCreate       func(width, height, alpha int32) uintptr
	bitmapCreateEx     func(width, height, format int32, firstScan unsafe.Pointer, stride int32) uintptr
	bitmapDestroy      func(bitmap uintptr)
	bitmapFillRect     func(bitmap uintptr, left, top, width, height int32, color uint32) int32
	bitmapGetBuffer    func(bitmap uintptr) *byte
	bitmapGetWidth     func(bitmap uintptr) int32
	bitmapGetHeight    func(bitmap uintptr) int32
	bitmapGetStride    func(bitmap uintptr) int32
	renderPageBitmap   func(bitmap, page uintptr, startX, startY, sizeX, sizeY, rotate, flags int32)
	deviceToPage       func(page uintptr, startX, startY, sizeX, sizeY, rotate, deviceX, deviceY int32, pageX, pageY *float64) int32
	pageToDevice       func(page uintptr, startX, startY, sizeX, sizeY, rotate int32, pageX, pageY float64, deviceX, deviceY *int32) int32
}

// Open loads the pdfium shared library at path and binds its entry points.
// A library missing any entry point is rejected with a
// *errors.MissingSymbolsError listing all of them.
func Open(path string) (*Library, error) {
	so, err := openShared(path)
	if err != nil {
		return nil, errors.Load(fmt.Sprintf("cannot load %s", path), err)
	}

	lib := &Library{so: so, path: path}
	if err := lib.bind(so.lookup); err != nil {
		return nil, multierr.Append(err, so.close())
	}

	Logger().Info("pdfium library loaded", zap.String("path", path))
	return lib, nil
}

// OpenDefault tries the platform's usual pdfium library names in order.
func OpenDefault() (*Library, error) {
	var errs error
	for _, name := range defaultNames() {
		lib, err := Open(name)
		if err == nil {
			return lib, nil
		}
		Logger().Debug("pdfium candidate rejected", zap.String("path", name), zap.Error(err))
		errs = multierr.Append(errs, err)
	}
	return nil, errors.Load("no pdfium library found", errs)
}

// Path returns the path the library was opened from.
func (l *Library) Path() string {
	return l.path
}

// Close unloads the shared library. Handles from it must not be used
// afterwards. Calling Close more than once returns the first result.
func (l *Library) Close() error {
	l.closeOnce.Do(func() {
		if l.so != nil {
			l.closeErr = l.so.close()
		}
	})
	return l.closeErr
}

// bind resolves every entry point through lookup. Unresolved names are
// collected rather than reported one at a time.
func (l *Library) bind(lookup func(string) (uintptr, error)) error {
	targets := []struct {
		fptr any
		name string
	}{
		{&l.initLibrary, pdfiumbridge.SymInitLibrary},
		{&l.destroyLibrary, pdfiumbridge.SymDestroyLibrary},
		{&l.loadDocument, pdfiumbridge.SymLoadDocument},
		{&l.loadMemDocument, pdfiumbridge.SymLoadMemDocument},
		{&l.closeDocument, pdfiumbridge.SymCloseDocument},
		{&l.getLastError, pdfiumbridge.SymGetLastError},
		{&l.getPageCount, pdfiumbridge.SymGetPageCount},
		{&l.getFileVersion, pdfiumbridge.SymGetFileVersion},
		{&l.getDocPermissions, pdfiumbridge.SymGetDocPermissions},
		{&l.loadPage, pdfiumbridge.SymLoadPage},
		{&l.closePage, pdfiumbridge.SymClosePage},
		{&l.getPageWidth, pdfiumbridge.SymGetPageWidth},
		{&l.getPageHeight, pdfiumbridge.SymGetPageHeight},
		{&l.getPageSizeByIndex, pdfiumbridge.SymGetPageSizeByIndex},
		{&l.bitmapCreate, pdfiumbridge.SymBitmapCreate},
		{&l.bitmapCreateEx, pdfiumbridge.SymBitmapCreateEx},
		{&l.bitmapDestroy, pdfiumbridge.SymBitmapDestroy},
		{&l.bitmapFillRect, pdfiumbridge.SymBitmapFillRect},
		{&l.bitmapGetBuffer, pdfiumbridge.SymBitmapGetBuffer},
		{&l.bitmapGetWidth, pdfiumbridge.SymBitmapGetWidth},
		{&l.bitmapGetHeight, pdfiumbridge.SymBitmapGetHeight},
		{&l.bitmapGetStride, pdfiumbridge.SymBitmapGetStride},
		{&l.renderPageBitmap, pdfiumbridge.SymRenderPageBitmap},
		{&l.deviceToPage, pdfiumbridge.SymDeviceToPage},
		{&l.pageToDevice, pdfiumbridge.SymPageToDevice},
	}

	addrs := make([]uintptr, len(targets))
	var missing []string
	for i, t := range targets {
		addr, err := lookup(t.name)
		if err != nil || addr == 0 {
			missing = append(missing, t.name)
			continue
		}
		addrs[i] = addr
	}
	if len(missing) > 0 {
		return errors.NewMissingSymbolsError(l.path, missing)
	}

	for i, t := range targets {
		purego.RegisterFunc(t.fptr, addrs[i])
	}
	Logger().Debug("pdfium entry points bound", zap.Int("count", len(targets)))
	return nil
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (l *Library) InitLibrary() { l.initLibrary() }
func (l *Library) DestroyLibrary() { l.destroyLibrary() }

func (l *Library) LoadDocument(path, password string) uintptr {
	return l.loadDocument(path, password)
}

func (l *Library) LoadMemDocument(data []byte, password string) uintptr {
	return l.loadMemDocument(unsafe.SliceData(data), int32(len(data)), password)
}

func (l *Library) CloseDocument(doc uintptr) { l.closeDocument(doc) }
func (l *Library) GetLastError() uint32 { return l.getLastError() }

func (l *Library) GetPageCount(doc uintptr) int {
	return int(l.getPageCount(doc))
}

func (l *Library) GetFileVersion(doc uintptr) (int, bool) {
	var v int32
	if l.getFileVersion(doc, &v) == 0 {
		return 0, false
	}
	return int(v), true
}

func (l *Library) GetDocPermissions(doc uintptr) uint32 {
	return l.getDocPermissions(doc)
}

func (l *Library) LoadPage(doc uintptr, index int) uintptr {
	return l.loadPage(doc, int32(index))
}

func (l *Library) ClosePage(page uintptr) { l.closePage(page) }
func (l *Library) GetPageWidth(page uintptr) float64 { return l.getPageWidth(page) }
func (l *Library) GetPageHeight(page uintptr) float64 { return l.getPageHeight(page) }
func (l *Library) BitmapDestroy(bitmap uintptr) { l.bitmapDestroy(bitmap) }
func (l *Library) BitmapGetWidth(bitmap uintptr) int { return int(l.bitmapGetWidth(bitmap)) }
func (l *Library) BitmapGetHeight(bitmap uintptr) int { return int(l.bitmapGetHeight(bitmap)) }
func (l *Library) BitmapGetStride(bitmap uintptr) int { return int(l.bitmapGetStride(bitmap)) }

func (l *Library) GetPageSizeByIndex(doc uintptr, index int) (float64, float64, bool) {
	var w, h float64
	if l.getPageSizeByIndex(doc, int32(index), &w, &h) == 0 {
		return 0, 0, false
	}
	return w, h, true
}

func (l *Library) BitmapCreate(width, height int, alpha bool) uintptr {
	return l.bitmapCreate(int32(width), int32(height), boolToInt32(alpha))
}

// BitmapCreateEx passes no first-scan buffer, so pdfium allocates and owns
// the pixel storage.
func (l *Library) BitmapCreateEx(width, height int, format pdfiumbridge.BitmapFormat) uintptr {
	return l.bitmapCreateEx(int32(width), int32(height), int32(format), nil, 0)
}

func (l *Library) BitmapFillRect(bitmap uintptr, left, top, width, height int, color uint32) bool {
	return l.bitmapFillRect(bitmap, int32(left), int32(top), int32(width), int32(height), color) != 0
}

func (l *Library) BitmapGetBuffer(bitmap uintptr, size int) []byte {
	p := l.bitmapGetBuffer(bitmap)
	if p == nil {
		return nil
	}
	return unsafe.Slice(p, size)
}

func (l *Library) RenderPageBitmap(bitmap, page uintptr, startX, startY, sizeX, sizeY int, rotate pdfiumbridge.Rotation, flags pdfiumbridge.RenderFlag) {
	l.renderPageBitmap(bitmap, page,
		int32(startX), int32(startY), int32(sizeX), int32(sizeY), int32(rotate), int32(flags))
}

func (l *Library) DeviceToPage(page uintptr, startX, startY, sizeX, sizeY int, rotate pdfiumbridge.Rotation, deviceX, deviceY int) (float64, float64, bool) {
	var x, y float64
	ok := l.deviceToPage(page,
		int32(startX), int32(startY), int32(sizeX), int32(sizeY), int32(rotate),
		int32(deviceX), int32(deviceY), &x, &y)
	if ok == 0 {
		return 0, 0, false
	}
	return x, y, true
}

func (l *Library) PageToDevice(page uintptr, startX, startY, sizeX, sizeY int, rotate pdfiumbridge.Rotation, pageX, pageY float64) (int, int, bool) {
	var x, y int32
	ok := l.pageToDevice(page,
		int32(startX), int32(startY), int32(sizeX), int32(sizeY), int32(rotate),
		pageX, pageY, &x, &y)
	if ok == 0 {
		return 0, 0, false
	}
	return int(x), int(y), true
}

var _ pdfiumbridge.Library = (*Library)(nil)
