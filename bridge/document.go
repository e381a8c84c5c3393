package bridge

import (
	"math"

	"go.uber.org/zap"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
	"github.com/wippyai/pdfium-bridge/errors"
	"github.com/wippyai/pdfium-bridge/retain"
)

// LoadDocument opens the PDF at path. An empty password means none.
// Returns zero on failure; the pdfium error code is logged.
func (b *Bridge) LoadDocument(path, password string) Document {
	if path == "" {
		logInvalid(errors.PhaseLoad, pdfiumbridge.SymLoadDocument, "path is empty")
		return 0
	}

	doc := b.lib.LoadDocument(path, password)
	if doc == 0 {
		Logger().Error("failed to load document",
			zap.String("path", path),
			zap.Error(b.lastError(errors.PhaseLoad, pdfiumbridge.SymLoadDocument)))
		return 0
	}

	Logger().Debug("document loaded", zap.String("path", path), zap.Uintptr("doc", doc))
	return Document(doc)
}

// LoadMemDocument opens a PDF held in data. The bytes are copied and the
// copy stays pinned until CloseDocument, so data may be reused as soon as
// the call returns.
func (b *Bridge) LoadMemDocument(data []byte, password string) Document {
	if !checkMemSize(data) {
		return 0
	}

	buf := retain.PinCopy(data)
	doc := b.lib.LoadMemDocument(buf.Bytes(), password)
	if doc == 0 {
		buf.Drop()
		Logger().Error("failed to load document from memory",
			zap.Int("size", len(data)),
			zap.Error(b.lastError(errors.PhaseLoad, pdfiumbridge.SymLoadMemDocument)))
		return 0
	}

	if err := b.retained.Insert(doc, typeDocumentCopy, buf); err != nil {
		b.lib.CloseDocument(doc)
		buf.Drop()
		Logger().Error("failed to retain document copy",
			zap.Uintptr("doc", doc),
			zap.Error(errors.Wrap(errors.PhaseLoad, errors.KindAllocation, err, "document copy")))
		return 0
	}

	Logger().Debug("document loaded from memory", zap.Int("size", len(data)), zap.Uintptr("doc", doc))
	return Document(doc)
}

// LoadMemDocumentExternal opens a PDF over view without copying it. The
// caller keeps view valid and unmoved until CloseDocument; memory-mapped
// files, C allocations and pinned Go memory qualify.
func (b *Bridge) LoadMemDocumentExternal(view []byte, password string) Document {
	if !checkMemSize(view) {
		return 0
	}

	doc := b.lib.LoadMemDocument(view, password)
	if doc == 0 {
		Logger().Error("failed to load document from external buffer",
			zap.Int("size", len(view)),
			zap.Error(b.lastError(errors.PhaseLoad, pdfiumbridge.SymLoadMemDocument)))
		return 0
	}

	Logger().Debug("document loaded from external buffer", zap.Int("size", len(view)), zap.Uintptr("doc", doc))
	return Document(doc)
}

func checkMemSize(data []byte) bool {
	switch {
	case len(data) == 0:
		logInvalid(errors.PhaseLoad, pdfiumbridge.SymLoadMemDocument, "buffer is empty")
		return false
	case uint64(len(data)) > math.MaxInt32:
		logInvalid(errors.PhaseLoad, pdfiumbridge.SymLoadMemDocument, "buffer exceeds 2 GiB")
		return false
	}
	return true
}

// CloseDocument closes doc and releases its retained copy, if any.
func (b *Bridge) CloseDocument(doc Document) {
	if doc == 0 {
		logNilHandle(errors.PhaseDocument, pdfiumbridge.SymCloseDocument, "document")
		return
	}
	b.lib.CloseDocument(uintptr(doc))
	b.retained.Remove(uintptr(doc))
	Logger().Debug("document closed", zap.Uintptr("doc", uintptr(doc)))
}

// GetPageCount returns the number of pages, or 0.
func (b *Bridge) GetPageCount(doc Document) int {
	if doc == 0 {
		logNilHandle(errors.PhaseDocument, pdfiumbridge.SymGetPageCount, "document")
		return 0
	}
	return b.lib.GetPageCount(uintptr(doc))
}

// GetFileVersion returns the PDF version times ten (14 for PDF 1.4), or -1
// when unknown.
func (b *Bridge) GetFileVersion(doc Document) int {
	if doc == 0 {
		logNilHandle(errors.PhaseDocument, pdfiumbridge.SymGetFileVersion, "document")
		return -1
	}
	v, ok := b.lib.GetFileVersion(uintptr(doc))
	if !ok {
		return -1
	}
	return v
}

// GetDocPermissions returns the document permission bits, or 0.
func (b *Bridge) GetDocPermissions(doc Document) pdfiumbridge.Permissions {
	if doc == 0 {
		logNilHandle(errors.PhaseDocument, pdfiumbridge.SymGetDocPermissions, "document")
		return 0
	}
	return pdfiumbridge.Permissions(b.lib.GetDocPermissions(uintptr(doc)))
}
