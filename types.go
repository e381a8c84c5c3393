package pdfiumbridge

import (
	"strconv"
	"strings"
)

// BitmapFormat is the pixel layout of a pdfium bitmap (FPDFBitmap_*).
type BitmapFormat int

const (
	BitmapUnknown BitmapFormat = 0
	BitmapGray    BitmapFormat = 1 // 8 bits per pixel
	BitmapBGR     BitmapFormat = 2 // 24 bits per pixel
	BitmapBGRx    BitmapFormat = 3 // 32 bits per pixel, alpha ignored
	BitmapBGRA    BitmapFormat = 4 // 32 bits per pixel
)

// BytesPerPixel returns the storage size of one pixel, or 0 for unknown formats.
func (f BitmapFormat) BytesPerPixel() int {
	switch f {
	case BitmapGray:
		return 1
	case BitmapBGR:
		return 3
	case BitmapBGRx, BitmapBGRA:
		return 4
	default:
		return 0
	}
}

func (f BitmapFormat) String() string {
	switch f {
	case BitmapGray:
		return "gray"
	case BitmapBGR:
		return "bgr"
	case BitmapBGRx:
		return "bgrx"
	case BitmapBGRA:
		return "bgra"
	default:
		return "unknown"
	}
}

// Rotation is a clockwise quarter-turn count applied when mapping a page
// onto a device.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 1
	Rotate180 Rotation = 2
	Rotate270 Rotation = 3
)

// RenderFlag controls FPDF_RenderPageBitmap.
type RenderFlag int

const (
	RenderAnnot               RenderFlag = 0x01
	RenderLCDText             RenderFlag = 0x02
	RenderNoNativeText        RenderFlag = 0x04
	RenderGrayscale           RenderFlag = 0x08
	RenderReverseByteOrder    RenderFlag = 0x10
	RenderConvertFillToStroke RenderFlag = 0x20
	RenderDebugInfo           RenderFlag = 0x80
	RenderNoCatch             RenderFlag = 0x100
	RenderLimitedImageCache   RenderFlag = 0x200
	RenderForceHalftone       RenderFlag = 0x400
	RenderPrinting            RenderFlag = 0x800
	RenderNoSmoothText        RenderFlag = 0x1000
	RenderNoSmoothImage       RenderFlag = 0x2000
	RenderNoSmoothPath        RenderFlag = 0x4000
)

// ErrorCode is the value reported by FPDF_GetLastError.
type ErrorCode uint32

const (
	ErrSuccess  ErrorCode = 0
	ErrUnknown  ErrorCode = 1
	ErrFile     ErrorCode = 2
	ErrFormat   ErrorCode = 3
	ErrPassword ErrorCode = 4
	ErrSecurity ErrorCode = 5
	ErrPage     ErrorCode = 6
)

func (c ErrorCode) String() string {
	switch c {
	case ErrSuccess:
		return "no error"
	case ErrUnknown:
		return "unknown error"
	case ErrFile:
		return "file not found or could not be opened"
	case ErrFormat:
		return "file not in PDF format or corrupted"
	case ErrPassword:
		return "password required or incorrect password"
	case ErrSecurity:
		return "unsupported security scheme"
	case ErrPage:
		return "page not found or content error"
	default:
		return "error code " + strconv.FormatUint(uint64(c), 10)
	}
}

// Permissions is the document permission bit set returned by
// FPDF_GetDocPermissions (PDF standard security handler, table 22).
type Permissions uint64

const (
	PermPrint            Permissions = 1 << 2
	PermModify           Permissions = 1 << 3
	PermCopy             Permissions = 1 << 4
	PermAnnotate         Permissions = 1 << 5
	PermFillForms        Permissions = 1 << 8
	PermExtract          Permissions = 1 << 9
	PermAssemble         Permissions = 1 << 10
	PermPrintHighQuality Permissions = 1 << 11
)

var permissionNames = []struct {
	perm Permissions
	name string
}{
	{PermPrint, "print"},
	{PermModify, "modify"},
	{PermCopy, "copy"},
	{PermAnnotate, "annotate"},
	{PermFillForms, "fill-forms"},
	{PermExtract, "extract"},
	{PermAssemble, "assemble"},
	{PermPrintHighQuality, "print-high-quality"},
}

// Has reports whether every bit of q is set in p.
func (p Permissions) Has(q Permissions) bool {
	return p&q == q
}

func (p Permissions) String() string {
	var names []string
	for _, pn := range permissionNames {
		if p.Has(pn.perm) {
			names = append(names, pn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}
