package bridge

import (
	"go.uber.org/zap"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
	"github.com/wippyai/pdfium-bridge/errors"
)

// LoadPage loads the page at the zero-based index. Returns zero on failure;
// the pdfium error code is logged.
func (b *Bridge) LoadPage(doc Document, index int) Page {
	if doc == 0 {
		logNilHandle(errors.PhasePage, pdfiumbridge.SymLoadPage, "document")
		return 0
	}

	page := b.lib.LoadPage(uintptr(doc), index)
	if page == 0 {
		Logger().Error("failed to load page",
			zap.Int("index", index),
			zap.Error(b.lastError(errors.PhasePage, pdfiumbridge.SymLoadPage)))
		return 0
	}
	return Page(page)
}

// ClosePage releases page.
func (b *Bridge) ClosePage(page Page) {
	if page == 0 {
		logNilHandle(errors.PhasePage, pdfiumbridge.SymClosePage, "page")
		return
	}
	b.lib.ClosePage(uintptr(page))
}

// GetPageWidth returns the page width in points, or 0.
func (b *Bridge) GetPageWidth(page Page) float64 {
	if page == 0 {
		logNilHandle(errors.PhasePage, pdfiumbridge.SymGetPageWidth, "page")
		return 0
	}
	return b.lib.GetPageWidth(uintptr(page))
}

// GetPageHeight returns the page height in points, or 0.
func (b *Bridge) GetPageHeight(page Page) float64 {
	if page == 0 {
		logNilHandle(errors.PhasePage, pdfiumbridge.SymGetPageHeight, "page")
		return 0
	}
	return b.lib.GetPageHeight(uintptr(page))
}

// GetPageSizeByIndex returns {width, height} in points of the page at index
// without loading it. ok is false for a zero document or when pdfium
// fails, including for an out-of-range index.
func (b *Bridge) GetPageSizeByIndex(doc Document, index int) (size [2]float64, ok bool) {
	if doc == 0 {
		logNilHandle(errors.PhasePage, pdfiumbridge.SymGetPageSizeByIndex, "document")
		return size, false
	}
	w, h, ok := b.lib.GetPageSizeByIndex(uintptr(doc), index)
	if !ok {
		Logger().Debug("page size unavailable", zap.Int("index", index))
		return size, false
	}
	return [2]float64{w, h}, true
}
