// Package fakepdfium provides an in-memory pdfiumbridge.Library for tests.
//
// Documents are registered up front by path (LoadDocument) or by content
// (LoadMemDocument). Bitmaps are backed by real byte slices with pdfium's
// pixel layouts, so fills and renders can be observed through buffer views.
// Every entry point call is recorded under its pdfium symbol name.
package fakepdfium

import (
	"math"
	"sync"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
)

// PageSpec describes a page in points.
type PageSpec struct {
	Width  float64
	Height float64
}

// DocSpec describes a registered document.
type DocSpec struct {
	Password    string
	Pages       []PageSpec
	Version     int
	Permissions uint32
}

// RenderCall records the arguments of the last FPDF_RenderPageBitmap call.
type RenderCall struct {
	Bitmap, Page                 uintptr
	StartX, StartY, SizeX, SizeY int
	Rotate                       pdfiumbridge.Rotation
	Flags                        pdfiumbridge.RenderFlag
}

// InkColor is the BGRA value the fake renderer paints over the viewport.
var InkColor = [4]byte{0x40, 0x40, 0x40, 0xFF}

type openPage struct {
	doc  uintptr
	spec PageSpec
}

type bitmap struct {
	buf    []byte
	width  int
	height int
	stride int
	format pdfiumbridge.BitmapFormat
}

// Library is a fake pdfium. It is safe for concurrent use.
type Library struct {
	files map[string]*DocSpec
	blobs map[string]*DocSpec

	docs    map[uintptr]*DocSpec
	memData map[uintptr][]byte
	pages   map[uintptr]*openPage
	bitmaps map[uintptr]*bitmap

	calls      []string
	lastRender *RenderCall

	mu          sync.Mutex
	next        uintptr
	lastError   uint32
	initialized bool

	// FailTransforms makes both coordinate conversions report failure.
	FailTransforms bool
	// NoBuffer makes FPDFBitmap_GetBuffer return nil.
	NoBuffer bool
}

// New creates an empty fake library.
func New() *Library {
	return &Library{
		files:   make(map[string]*DocSpec),
		blobs:   make(map[string]*DocSpec),
		docs:    make(map[uintptr]*DocSpec),
		memData: make(map[uintptr][]byte),
		pages:   make(map[uintptr]*openPage),
		bitmaps: make(map[uintptr]*bitmap),
		next:    0x1000,
	}
}

// AddFile registers a document loadable by path.
func (l *Library) AddFile(path string, spec DocSpec) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := spec
	l.files[path] = &s
}

// AddBlob registers a document loadable from memory holding exactly data.
func (l *Library) AddBlob(data []byte, spec DocSpec) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := spec
	l.blobs[string(data)] = &s
}

// Calls returns the recorded entry point names in call order.
func (l *Library) Calls() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// CallCount returns how many times symbol was called.
func (l *Library) CallCount(symbol string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		if c == symbol {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (l *Library) ResetCalls() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = nil
}

// SetLastError sets the value FPDF_GetLastError reports next.
func (l *Library) SetLastError(code pdfiumbridge.ErrorCode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastError = uint32(code)
}

// Initialized reports whether InitLibrary ran without a later DestroyLibrary.
func (l *Library) Initialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.initialized
}

// OpenDocuments returns the number of documents not yet closed.
func (l *Library) OpenDocuments() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.docs)
}

// OpenPages returns the number of pages not yet closed.
func (l *Library) OpenPages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pages)
}

// OpenBitmaps returns the number of bitmaps not yet destroyed.
func (l *Library) OpenBitmaps() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.bitmaps)
}

// MemData returns the slice LoadMemDocument received for doc.
func (l *Library) MemData(doc uintptr) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.memData[doc]
}

// LastRender returns the last render call, or nil.
func (l *Library) LastRender() *RenderCall {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lastRender == nil {
		return nil
	}
	rc := *l.lastRender
	return &rc
}

func (l *Library) record(symbol string) {
	l.calls = append(l.calls, symbol)
}

func (l *Library) handle() uintptr {
	l.next += 0x10
	return l.next
}

func (l *Library) InitLibrary() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymInitLibrary)
	l.initialized = true
}

func (l *Library) DestroyLibrary() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymDestroyLibrary)
	l.initialized = false
}

func (l *Library) LoadDocument(path, password string) uintptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymLoadDocument)
	return l.open(l.files[path], password, pdfiumbridge.ErrFile)
}

func (l *Library) LoadMemDocument(data []byte, password string) uintptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymLoadMemDocument)
	h := l.open(l.blobs[string(data)], password, pdfiumbridge.ErrFormat)
	if h != 0 {
		l.memData[h] = data
	}
	return h
}

func (l *Library) open(spec *DocSpec, password string, missing pdfiumbridge.ErrorCode) uintptr {
	if spec == nil {
		l.lastError = uint32(missing)
		return 0
	}
	if spec.Password != "" && spec.Password != password {
		l.lastError = uint32(pdfiumbridge.ErrPassword)
		return 0
	}
	l.lastError = uint32(pdfiumbridge.ErrSuccess)
	h := l.handle()
	l.docs[h] = spec
	return h
}

func (l *Library) CloseDocument(doc uintptr) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymCloseDocument)
	delete(l.docs, doc)
	delete(l.memData, doc)
}

func (l *Library) GetLastError() uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymGetLastError)
	return l.lastError
}

func (l *Library) GetPageCount(doc uintptr) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymGetPageCount)
	if spec, ok := l.docs[doc]; ok {
		return len(spec.Pages)
	}
	return 0
}

func (l *Library) GetFileVersion(doc uintptr) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymGetFileVersion)
	spec, ok := l.docs[doc]
	if !ok || spec.Version == 0 {
		return 0, false
	}
	return spec.Version, true
}

func (l *Library) GetDocPermissions(doc uintptr) uint32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymGetDocPermissions)
	if spec, ok := l.docs[doc]; ok {
		return spec.Permissions
	}
	return 0
}

func (l *Library) LoadPage(doc uintptr, index int) uintptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymLoadPage)
	spec, ok := l.docs[doc]
	if !ok || index < 0 || index >= len(spec.Pages) {
		l.lastError = uint32(pdfiumbridge.ErrPage)
		return 0
	}
	h := l.handle()
	l.pages[h] = &openPage{doc: doc, spec: spec.Pages[index]}
	return h
}

func (l *Library) ClosePage(page uintptr) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymClosePage)
	delete(l.pages, page)
}

func (l *Library) GetPageWidth(page uintptr) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymGetPageWidth)
	if p, ok := l.pages[page]; ok {
		return p.spec.Width
	}
	return 0
}

func (l *Library) GetPageHeight(page uintptr) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymGetPageHeight)
	if p, ok := l.pages[page]; ok {
		return p.spec.Height
	}
	return 0
}

func (l *Library) GetPageSizeByIndex(doc uintptr, index int) (float64, float64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymGetPageSizeByIndex)
	spec, ok := l.docs[doc]
	if !ok || index < 0 || index >= len(spec.Pages) {
		return 0, 0, false
	}
	p := spec.Pages[index]
	return p.Width, p.Height, true
}

func (l *Library) BitmapCreate(width, height int, alpha bool) uintptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymBitmapCreate)
	format := pdfiumbridge.BitmapBGRx
	if alpha {
		format = pdfiumbridge.BitmapBGRA
	}
	return l.newBitmap(width, height, format)
}

func (l *Library) BitmapCreateEx(width, height int, format pdfiumbridge.BitmapFormat) uintptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymBitmapCreateEx)
	return l.newBitmap(width, height, format)
}

func (l *Library) newBitmap(width, height int, format pdfiumbridge.BitmapFormat) uintptr {
	bpp := format.BytesPerPixel()
	if width <= 0 || height <= 0 || bpp == 0 {
		return 0
	}
	// pdfium aligns rows to 4 bytes.
	stride := (width*bpp + 3) &^ 3
	h := l.handle()
	l.bitmaps[h] = &bitmap{
		buf:    make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}
	return h
}

func (l *Library) BitmapDestroy(bm uintptr) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymBitmapDestroy)
	delete(l.bitmaps, bm)
}

func (l *Library) BitmapFillRect(bm uintptr, left, top, width, height int, color uint32) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymBitmapFillRect)
	b, ok := l.bitmaps[bm]
	if !ok {
		return false
	}
	px := [4]byte{byte(color), byte(color >> 8), byte(color >> 16), byte(color >> 24)}
	b.fill(left, top, width, height, px)
	return true
}

func (b *bitmap) fill(left, top, width, height int, bgra [4]byte) {
	x0, y0 := max(left, 0), max(top, 0)
	x1, y1 := min(left+width, b.width), min(top+height, b.height)
	bpp := b.format.BytesPerPixel()
	for y := y0; y < y1; y++ {
		row := b.buf[y*b.stride:]
		for x := x0; x < x1; x++ {
			px := row[x*bpp:]
			switch b.format {
			case pdfiumbridge.BitmapGray:
				px[0] = byte((299*int(bgra[2]) + 587*int(bgra[1]) + 114*int(bgra[0])) / 1000)
			case pdfiumbridge.BitmapBGR:
				copy(px[:3], bgra[:3])
			default:
				copy(px[:4], bgra[:])
			}
		}
	}
}

func (l *Library) BitmapGetBuffer(bm uintptr, size int) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymBitmapGetBuffer)
	b, ok := l.bitmaps[bm]
	if !ok || l.NoBuffer || size > len(b.buf) {
		return nil
	}
	return b.buf[:size:size]
}

func (l *Library) BitmapGetWidth(bm uintptr) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymBitmapGetWidth)
	if b, ok := l.bitmaps[bm]; ok {
		return b.width
	}
	return 0
}

func (l *Library) BitmapGetHeight(bm uintptr) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymBitmapGetHeight)
	if b, ok := l.bitmaps[bm]; ok {
		return b.height
	}
	return 0
}

func (l *Library) BitmapGetStride(bm uintptr) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymBitmapGetStride)
	if b, ok := l.bitmaps[bm]; ok {
		return b.stride
	}
	return 0
}

func (l *Library) RenderPageBitmap(bm, page uintptr, startX, startY, sizeX, sizeY int, rotate pdfiumbridge.Rotation, flags pdfiumbridge.RenderFlag) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymRenderPageBitmap)
	l.lastRender = &RenderCall{
		Bitmap: bm, Page: page,
		StartX: startX, StartY: startY, SizeX: sizeX, SizeY: sizeY,
		Rotate: rotate, Flags: flags,
	}
	b, ok := l.bitmaps[bm]
	if !ok {
		return
	}
	if _, ok := l.pages[page]; !ok {
		return
	}
	// Paint a one-pixel frame of ink around the viewport so renders are
	// observable while the interior keeps the background.
	b.fill(startX, startY, sizeX, 1, InkColor)
	b.fill(startX, startY+sizeY-1, sizeX, 1, InkColor)
	b.fill(startX, startY, 1, sizeY, InkColor)
	b.fill(startX+sizeX-1, startY, 1, sizeY, InkColor)
}

// pageToDevice maps page space onto the viewport the way FPDF_PageToDevice does.
func pageToDevice(w, h float64, startX, startY, sizeX, sizeY int, rotate pdfiumbridge.Rotation, px, py float64) (float64, float64) {
	sx, sy := float64(sizeX), float64(sizeY)
	switch rotate {
	case pdfiumbridge.Rotate90:
		return float64(startX) + py*sx/h, float64(startY) + px*sy/w
	case pdfiumbridge.Rotate180:
		return float64(startX) + (w-px)*sx/w, float64(startY) + py*sy/h
	case pdfiumbridge.Rotate270:
		return float64(startX) + (h-py)*sx/h, float64(startY) + (w-px)*sy/w
	default:
		return float64(startX) + px*sx/w, float64(startY) + (h-py)*sy/h
	}
}

// deviceToPage inverts pageToDevice.
func deviceToPage(w, h float64, startX, startY, sizeX, sizeY int, rotate pdfiumbridge.Rotation, dx, dy float64) (float64, float64) {
	u := (dx - float64(startX)) / float64(sizeX)
	v := (dy - float64(startY)) / float64(sizeY)
	switch rotate {
	case pdfiumbridge.Rotate90:
		return v * w, u * h
	case pdfiumbridge.Rotate180:
		return w - u*w, v * h
	case pdfiumbridge.Rotate270:
		return w - v*w, h - u*h
	default:
		return u * w, h - v*h
	}
}

func (l *Library) DeviceToPage(page uintptr, startX, startY, sizeX, sizeY int, rotate pdfiumbridge.Rotation, deviceX, deviceY int) (float64, float64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymDeviceToPage)
	p, ok := l.pages[page]
	if !ok || l.FailTransforms || sizeX == 0 || sizeY == 0 {
		return 0, 0, false
	}
	x, y := deviceToPage(p.spec.Width, p.spec.Height, startX, startY, sizeX, sizeY, rotate, float64(deviceX), float64(deviceY))
	return x, y, true
}

func (l *Library) PageToDevice(page uintptr, startX, startY, sizeX, sizeY int, rotate pdfiumbridge.Rotation, pageX, pageY float64) (int, int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record(pdfiumbridge.SymPageToDevice)
	p, ok := l.pages[page]
	if !ok || l.FailTransforms || p.spec.Width == 0 || p.spec.Height == 0 {
		return 0, 0, false
	}
	x, y := pageToDevice(p.spec.Width, p.spec.Height, startX, startY, sizeX, sizeY, rotate, pageX, pageY)
	return int(math.Round(x)), int(math.Round(y)), true
}

var _ pdfiumbridge.Library = (*Library)(nil)
