// Package errors provides structured error types for the pdfium bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the pdfium entry point, the pdfium error
// code when there is one, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLoad, errors.KindPassword).
//		Op("FPDF_LoadDocument").
//		Code(pdfiumbridge.ErrPassword).
//		Detail("encrypted document").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.FromCode(errors.PhaseLoad, "FPDF_LoadDocument", code)
//	err := errors.NilHandle(errors.PhasePage, "FPDF_LoadPage", "document")
//
// The bridge never returns these across its surface; it logs them. Loaders
// and the render package return them. All errors support errors.Is/As.
package errors
