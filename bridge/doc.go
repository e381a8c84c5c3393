// Package bridge marshals opaque handles between Go callers and pdfium.
//
// A Bridge wraps a pdfiumbridge.Library (a native or WebAssembly pdfium)
// and exposes one method per entry point. Each method checks its handles,
// converts arguments, makes the call and converts the result back:
//
//	b := bridge.New(lib)
//	b.InitLibrary()
//	defer b.DestroyLibrary()
//
//	doc := b.LoadDocument("in.pdf", "")
//	page := b.LoadPage(doc, 0)
//	bm := b.CreateBitmap(612, 792, true)
//	b.FillRect(bm, 0, 0, 612, 792, 0xFFFFFFFF)
//	b.RenderPageBitmap(bm, page, bridge.Viewport{SizeX: 612, SizeY: 792}, pdfiumbridge.RenderAnnot)
//	pixels := b.GetBitmapBuffer(bm) // aliases pdfium memory
//
// # Sentinels
//
// Methods never panic and never return errors. A zero handle or invalid
// argument yields the method's sentinel (zero handle, 0, -1, false, nil or
// ok == false) without calling pdfium, and the reason is logged through
// Logger. Failed loads additionally log pdfium's last error code.
//
// # Memory
//
// LoadMemDocument copies its input and keeps the copy pinned until
// CloseDocument. LoadMemDocumentExternal uses the caller's memory directly;
// the caller keeps it valid and unmoved until the document is closed.
// GetBitmapBuffer returns a view of pdfium's pixel storage that becomes
// invalid once the bitmap is destroyed.
package bridge
