package pdfiumbridge

// Library is the table of pdfium entry points the bridge calls through.
//
// Handles are native resource addresses (or guest pointers for WebAssembly
// builds) widened to uintptr; zero is the null handle. Implementations do
// no validation of their own: the bridge checks every handle before a call
// reaches the Library.
type Library interface {
	InitLibrary()
	DestroyLibrary()

	// LoadDocument opens a file. An empty password means none.
	LoadDocument(path, password string) uintptr
	// LoadMemDocument opens a document over data. pdfium keeps reading data
	// until CloseDocument, so it must stay valid and unmoved until then.
	// Implementations that cannot reference host memory copy it.
	LoadMemDocument(data []byte, password string) uintptr
	CloseDocument(doc uintptr)
	GetLastError() uint32
	GetPageCount(doc uintptr) int
	GetFileVersion(doc uintptr) (version int, ok bool)
	GetDocPermissions(doc uintptr) uint32

	LoadPage(doc uintptr, index int) uintptr
	ClosePage(page uintptr)
	GetPageWidth(page uintptr) float64
	GetPageHeight(page uintptr) float64
	GetPageSizeByIndex(doc uintptr, index int) (width, height float64, ok bool)

	BitmapCreate(width, height int, alpha bool) uintptr
	BitmapCreateEx(width, height int, format BitmapFormat) uintptr
	BitmapDestroy(bitmap uintptr)
	BitmapFillRect(bitmap uintptr, left, top, width, height int, color uint32) bool
	// BitmapGetBuffer returns size bytes of the bitmap's pixel storage
	// without copying, or nil when pdfium reports no buffer.
	BitmapGetBuffer(bitmap uintptr, size int) []byte
	BitmapGetWidth(bitmap uintptr) int
	BitmapGetHeight(bitmap uintptr) int
	BitmapGetStride(bitmap uintptr) int

	RenderPageBitmap(bitmap, page uintptr, startX, startY, sizeX, sizeY int, rotate Rotation, flags RenderFlag)
	DeviceToPage(page uintptr, startX, startY, sizeX, sizeY int, rotate Rotation, deviceX, deviceY int) (pageX, pageY float64, ok bool)
	PageToDevice(page uintptr, startX, startY, sizeX, sizeY int, rotate Rotation, pageX, pageY float64) (deviceX, deviceY int, ok bool)
}
