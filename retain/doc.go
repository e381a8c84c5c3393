// Package retain keeps memory alive for native resources that reference it.
//
// pdfium keeps reading the buffer passed to FPDF_LoadMemDocument until the
// document is closed. Whoever hands pdfium such a buffer records it here,
// keyed by the native handle it belongs to, and removes it when the handle
// is closed.
//
// # Table
//
// The Table maps native handles to retained values:
//
//	table := retain.NewTable()
//
//	// Keep a pinned copy alive for a document
//	table.Insert(doc, KindDocumentData, retain.PinCopy(data))
//
//	// Release it after FPDF_CloseDocument
//	table.Remove(doc)
//
// Values implementing Dropper are dropped on Remove, Clear and Close.
//
// # Type Safety
//
// Each entry carries a caller-defined type ID, checked by GetTyped:
//
//	value, ok := table.GetTyped(doc, KindDocumentData)
//
// # Observers
//
// Observers receive lifecycle events, which is how callers log retention:
//
//	table.Subscribe(observer)
//	// observer.OnRetainEvent(retain.Event{Type: retain.EventRetained, ...})
//
// # Concurrency
//
// The table is safe for concurrent use. It only guards its own
// bookkeeping; it does not serialize native calls.
package retain
