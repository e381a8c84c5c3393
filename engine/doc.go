// Package engine runs a WebAssembly build of pdfium on wazero.
//
// The module must be a WASI preview1 reactor (wasm32) exporting its linear
// memory as "memory", the allocator pair "malloc"/"free", and every pdfium
// entry point the bridge binds. Load checks the exports before
// instantiating and reports everything missing in one
// *errors.MissingSymbolsError.
//
//	lib, err := engine.LoadFile(ctx, "pdfium.wasm", &engine.Config{FSRoot: "."})
//	if err != nil {
//	    return err
//	}
//	defer lib.Close(ctx)
//
//	b := bridge.New(lib)
//
// # Handles and Memory
//
// Handles are guest pointers widened to uintptr. Strings and out-parameters
// are staged in guest memory obtained from malloc. LoadMemDocument copies
// the document into guest memory and keeps that copy until CloseDocument.
// BitmapGetBuffer returns a view of guest memory: it is invalidated when
// the bitmap is destroyed and whenever guest memory grows.
//
// # Files
//
// Config.FSRoot is mounted at "/" in the guest, so LoadDocument paths are
// resolved relative to it.
//
// # Traps
//
// A trap inside pdfium is logged and the call returns its zero value. The
// instance may be unusable afterwards; Close it.
//
// # Thread Safety
//
// A Library is NOT safe for concurrent use.
package engine
