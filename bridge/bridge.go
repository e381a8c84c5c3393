package bridge

import (
	"go.uber.org/zap"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
	"github.com/wippyai/pdfium-bridge/errors"
	"github.com/wippyai/pdfium-bridge/retain"
)

// retained value type IDs
const (
	typeDocumentCopy uint32 = iota + 1
)

// Bridge forwards calls to a pdfium Library. The only state it keeps is the
// set of document copies made by LoadMemDocument.
type Bridge struct {
	lib      pdfiumbridge.Library
	retained *retain.Table
}

// New creates a bridge over lib.
func New(lib pdfiumbridge.Library) *Bridge {
	return &Bridge{
		lib:      lib,
		retained: retain.NewTable(),
	}
}

// Library returns the underlying entry point table.
func (b *Bridge) Library() pdfiumbridge.Library {
	return b.lib
}

// Retained returns the number of document copies kept alive and their
// total size in bytes.
func (b *Bridge) Retained() (count, bytes int) {
	return b.retained.Len(), b.retained.Bytes()
}

// Subscribe registers an observer for document copies being retained and
// released. The returned function removes it.
func (b *Bridge) Subscribe(o retain.Observer) (unsubscribe func()) {
	return b.retained.Subscribe(o)
}

// InitLibrary initializes pdfium. Call it once before any other operation.
func (b *Bridge) InitLibrary() {
	b.lib.InitLibrary()
	Logger().Debug("pdfium initialized")
}

// DestroyLibrary releases pdfium's global state. Document copies still
// retained are released as well; their documents must not be used again.
func (b *Bridge) DestroyLibrary() {
	b.lib.DestroyLibrary()
	if n := b.retained.Len(); n > 0 {
		Logger().Warn("releasing document copies of unclosed documents", zap.Int("count", n))
	}
	b.retained.Clear()
	Logger().Debug("pdfium destroyed")
}

// GetLastError returns the error code of the last failed pdfium call on
// this thread. Non-success codes are logged.
func (b *Bridge) GetLastError() int {
	code := pdfiumbridge.ErrorCode(b.lib.GetLastError())
	if err := errors.FromCode(errors.PhaseLoad, pdfiumbridge.SymGetLastError, code); err != nil {
		Logger().Warn("pdfium reported an error", zap.Error(err))
	}
	return int(code)
}

// lastError queries pdfium's last error for a failed op. A success code
// still yields an error since the caller saw a failure.
func (b *Bridge) lastError(phase errors.Phase, op string) error {
	code := pdfiumbridge.ErrorCode(b.lib.GetLastError())
	if err := errors.FromCode(phase, op, code); err != nil {
		return err
	}
	return errors.Native(phase, op)
}

func logNilHandle(phase errors.Phase, op, what string) {
	Logger().Error("invalid handle", zap.Error(errors.NilHandle(phase, op, what)))
}

func logInvalid(phase errors.Phase, op, detail string) {
	Logger().Error("invalid argument", zap.Error(errors.InvalidInput(phase, op, detail)))
}
