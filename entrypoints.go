package pdfiumbridge

// Names of the pdfium entry points a Library binds. Loaders resolve all of
// them up front and report the missing ones together.
const (
	SymInitLibrary        = "FPDF_InitLibrary"
	SymDestroyLibrary     = "FPDF_DestroyLibrary"
	SymLoadDocument       = "FPDF_LoadDocument"
	SymLoadMemDocument    = "FPDF_LoadMemDocument"
	SymCloseDocument      = "FPDF_CloseDocument"
	SymGetLastError       = "FPDF_GetLastError"
	SymGetPageCount       = "FPDF_GetPageCount"
	SymGetFileVersion     = "FPDF_GetFileVersion"
	SymGetDocPermissions  = "FPDF_GetDocPermissions"
	SymLoadPage           = "FPDF_LoadPage"
	SymClosePage          = "FPDF_ClosePage"
	SymGetPageWidth       = "FPDF_GetPageWidth"
	SymGetPageHeight      = "FPDF_GetPageHeight"
	SymGetPageSizeByIndex = "FPDF_GetPageSizeByIndex"
	SymBitmapCreate       = "FPDFBitmap_Create"
	SymBitmapCreateEx     = "FPDFBitmap_CreateEx"
	SymBitmapDestroy      = "FPDFBitmap_Destroy"
	SymBitmapFillRect     = "FPDFBitmap_FillRect"
	SymBitmapGetBuffer    = "FPDFBitmap_GetBuffer"
	SymBitmapGetWidth     = "FPDFBitmap_GetWidth"
	SymBitmapGetHeight    = "FPDFBitmap_GetHeight"
	SymBitmapGetStride    = "FPDFBitmap_GetStride"
	SymRenderPageBitmap   = "FPDF_RenderPageBitmap"
	SymDeviceToPage       = "FPDF_DeviceToPage"
	SymPageToDevice       = "FPDF_PageToDevice"
)

// EntryPoints lists every symbol in binding order.
var EntryPoints = []string{
	SymInitLibrary,
	SymDestroyLibrary,
	SymLoadDocument,
	SymLoadMemDocument,
	SymCloseDocument,
	SymGetLastError,
	SymGetPageCount,
	SymGetFileVersion,
	SymGetDocPermissions,
	SymLoadPage,
	SymClosePage,
	SymGetPageWidth,
	SymGetPageHeight,
	SymGetPageSizeByIndex,
	SymBitmapCreate,
	SymBitmapCreateEx,
	SymBitmapDestroy,
	SymBitmapFillRect,
	SymBitmapGetBuffer,
	SymBitmapGetWidth,
	SymBitmapGetHeight,
	SymBitmapGetStride,
	SymRenderPageBitmap,
	SymDeviceToPage,
	SymPageToDevice,
}
