package render

import (
	"fmt"
	"os"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
	"github.com/wippyai/pdfium-bridge/bridge"
	"github.com/wippyai/pdfium-bridge/errors"
)

// Document is an open PDF document.
type Document struct {
	b      *bridge.Bridge
	handle bridge.Document
	name   string
	pages  int
}

// Open loads the PDF file at path. The file must exist and be readable.
func Open(b *bridge.Bridge, path, password string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
				Op("Open").
				Detail("file %q not found", path).
				Cause(err).
				Build()
		}
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindFile, err, "stat "+path)
	}
	if info.IsDir() {
		return nil, errors.InvalidInput(errors.PhaseLoad, "Open", path+" is a directory")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindFile, err, "cannot read "+path)
	}
	f.Close()

	doc := b.LoadDocument(path, password)
	if doc == 0 {
		return nil, loadError(b, pdfiumbridge.SymLoadDocument, path)
	}
	return newDocument(b, doc, path), nil
}

// OpenBytes loads a PDF held in data. data may be reused once OpenBytes
// returns.
func OpenBytes(b *bridge.Bridge, data []byte, password string) (*Document, error) {
	if len(data) == 0 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "OpenBytes", "data is empty")
	}
	doc := b.LoadMemDocument(data, password)
	if doc == 0 {
		return nil, loadError(b, pdfiumbridge.SymLoadMemDocument, fmt.Sprintf("%d bytes", len(data)))
	}
	return newDocument(b, doc, "memory"), nil
}

// OpenExternal loads a PDF over view without copying it. view must stay
// valid and unmoved until Close.
func OpenExternal(b *bridge.Bridge, view []byte, password string) (*Document, error) {
	if len(view) == 0 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "OpenExternal", "view is empty")
	}
	doc := b.LoadMemDocumentExternal(view, password)
	if doc == 0 {
		return nil, loadError(b, pdfiumbridge.SymLoadMemDocument, fmt.Sprintf("%d byte view", len(view)))
	}
	return newDocument(b, doc, "external"), nil
}

func newDocument(b *bridge.Bridge, doc bridge.Document, name string) *Document {
	return &Document{
		b:      b,
		handle: doc,
		name:   name,
		pages:  b.GetPageCount(doc),
	}
}

// loadError builds the error for a failed load from pdfium's last error.
func loadError(b *bridge.Bridge, op, source string) error {
	code := pdfiumbridge.ErrorCode(b.GetLastError())
	if code == pdfiumbridge.ErrSuccess {
		return errors.New(errors.PhaseLoad, errors.KindNative).
			Op(op).
			Detail("cannot load %s", source).
			Build()
	}
	return errors.New(errors.PhaseLoad, errors.KindForCode(code)).
		Op(op).
		Code(code).
		Detail("%s (%s)", code, source).
		Build()
}

// Name returns the path the document was opened from, or "memory" and
// "external" for in-memory documents.
func (d *Document) Name() string {
	return d.name
}

// Handle returns the bridge handle, zero after Close.
func (d *Document) Handle() bridge.Document {
	return d.handle
}

// PageCount returns the number of pages counted at open.
func (d *Document) PageCount() int {
	return d.pages
}

// Version returns the PDF version times ten, or -1.
func (d *Document) Version() int {
	if d.handle == 0 {
		return -1
	}
	return d.b.GetFileVersion(d.handle)
}

// Permissions returns the document permission bits.
func (d *Document) Permissions() pdfiumbridge.Permissions {
	if d.handle == 0 {
		return 0
	}
	return d.b.GetDocPermissions(d.handle)
}

// PageSize returns the size in points of the page at index without
// loading it.
func (d *Document) PageSize(index int) (width, height float64, err error) {
	if err := d.checkPage("PageSize", index); err != nil {
		return 0, 0, err
	}
	size, ok := d.b.GetPageSizeByIndex(d.handle, index)
	if !ok {
		return 0, 0, errors.Native(errors.PhasePage, pdfiumbridge.SymGetPageSizeByIndex)
	}
	return size[0], size[1], nil
}

func (d *Document) checkPage(op string, index int) error {
	if d.handle == 0 {
		return errors.New(errors.PhaseDocument, errors.KindNilHandle).
			Op(op).
			Detail("document is closed").
			Build()
	}
	if index < 0 || index >= d.pages {
		return errors.OutOfBounds(errors.PhasePage, op, index, d.pages)
	}
	return nil
}

// withPage loads the page at index for the duration of fn.
func (d *Document) withPage(op string, index int, fn func(bridge.Page) error) error {
	if err := d.checkPage(op, index); err != nil {
		return err
	}
	page := d.b.LoadPage(d.handle, index)
	if page == 0 {
		code := pdfiumbridge.ErrorCode(d.b.GetLastError())
		if err := errors.FromCode(errors.PhasePage, pdfiumbridge.SymLoadPage, code); err != nil {
			return err
		}
		return errors.Native(errors.PhasePage, pdfiumbridge.SymLoadPage)
	}
	defer d.b.ClosePage(page)
	return fn(page)
}

// Close closes the document. Calling Close more than once is harmless.
func (d *Document) Close() error {
	if d.handle == 0 {
		return nil
	}
	d.b.CloseDocument(d.handle)
	d.handle = 0
	return nil
}
