// Package pdfiumbridge exposes the pdfium C API to Go through opaque handles.
//
// Every operation maps one-to-one onto a pdfium entry point: document
// loading, page loading, bitmap allocation, rendering and coordinate
// transforms. Parsing, layout and rasterization all happen inside pdfium;
// this module only converts types, checks for null handles and exposes
// native pixel storage without copying.
//
// # Architecture Overview
//
//	pdfiumbridge/        Root package with the Library interface and enums
//	├── bridge/          Handle marshalling, buffer views, library lifecycle
//	├── native/          Library backed by a shared pdfium (purego, no cgo)
//	├── engine/          Library backed by a WASI build of pdfium (wazero)
//	├── retain/          Keeps memory alive for native resources that use it
//	├── render/          Page-to-image rendering on top of the bridge
//	├── config/          Environment configuration and logger setup
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
//	lib, err := native.Open("/usr/lib/libpdfium.so")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer lib.Close()
//
//	b := bridge.New(lib)
//	b.InitLibrary()
//	defer b.DestroyLibrary()
//
//	doc := b.LoadDocument("report.pdf", "")
//	if doc == 0 {
//	    log.Fatalf("load failed: %d", b.GetLastError())
//	}
//	defer b.CloseDocument(doc)
//
//	fmt.Println(b.GetPageCount(doc))
//
// # Handles
//
// Documents, pages and bitmaps cross the boundary as uintptr-sized handles.
// A zero handle means "absent": every operation returns its sentinel for it
// without calling pdfium. The bridge keeps no reference counts; closing a
// handle twice or using it after close is undefined.
//
// # Thread Safety
//
// Nothing here serializes native calls. pdfium documents and pages must not
// be used from several goroutines at once, and rendering into a bitmap is
// not synchronized with reads of its buffer view.
package pdfiumbridge
