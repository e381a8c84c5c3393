package errors

import (
	"fmt"
	"sort"
	"strings"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseInit      Phase = "init"      // library loading and binding
	PhaseLoad      Phase = "load"      // document loading
	PhaseDocument  Phase = "document"  // document queries
	PhasePage      Phase = "page"      // page loading and queries
	PhaseBitmap    Phase = "bitmap"    // bitmap allocation and access
	PhaseRender    Phase = "render"    // page rendering
	PhaseTransform Phase = "transform" // coordinate conversion
	PhaseConfig    Phase = "config"    // configuration
)

// Kind categorizes the error
type Kind string

const (
	KindNilHandle     Kind = "nil_handle"
	KindInvalidInput  Kind = "invalid_input"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindNotFound      Kind = "not_found"
	KindUnsupported   Kind = "unsupported"
	KindMissingSymbol Kind = "missing_symbol"
	KindAllocation    Kind = "allocation"
	KindNative        Kind = "native"

	// Kinds reported by FPDF_GetLastError.
	KindUnknown  Kind = "unknown"
	KindFile     Kind = "file"
	KindFormat   Kind = "format"
	KindPassword Kind = "password"
	KindSecurity Kind = "security"
	KindPage     Kind = "page"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
	Code   pdfiumbridge.ErrorCode
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Code != pdfiumbridge.ErrSuccess {
		fmt.Fprintf(&b, " (pdfium error %d)", uint32(e.Code))
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the pdfium entry point or bridge operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Code sets the pdfium error code
func (b *Builder) Code(code pdfiumbridge.ErrorCode) *Builder {
	b.err.Code = code
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// KindForCode maps a pdfium error code to its Kind
func KindForCode(code pdfiumbridge.ErrorCode) Kind {
	switch code {
	case pdfiumbridge.ErrFile:
		return KindFile
	case pdfiumbridge.ErrFormat:
		return KindFormat
	case pdfiumbridge.ErrPassword:
		return KindPassword
	case pdfiumbridge.ErrSecurity:
		return KindSecurity
	case pdfiumbridge.ErrPage:
		return KindPage
	default:
		return KindUnknown
	}
}

// FromCode creates an error for a failed pdfium call from its last-error
// code. Returns nil for ErrSuccess.
func FromCode(phase Phase, op string, code pdfiumbridge.ErrorCode) *Error {
	if code == pdfiumbridge.ErrSuccess {
		return nil
	}
	return &Error{
		Phase:  phase,
		Kind:   KindForCode(code),
		Op:     op,
		Code:   code,
		Detail: code.String(),
	}
}

// NilHandle creates an error for a zero handle passed to op
func NilHandle(phase Phase, op, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilHandle,
		Op:     op,
		Detail: what + " handle is null",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, op, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Op:     op,
		Detail: detail,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, op string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Op:     op,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Native creates an error for a pdfium call that reported failure without
// an error code
func Native(phase Phase, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNative,
		Op:     op,
		Detail: "call failed",
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, op string, size int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Op:     op,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
		Value:  size,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Load creates a library loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindNotFound,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingSymbolsError is returned when a pdfium build lacks entry points
// the bridge binds
type MissingSymbolsError struct {
	Library string
	Symbols []string
}

// NewMissingSymbolsError creates an error for the given unresolved symbols
func NewMissingSymbolsError(library string, symbols []string) *MissingSymbolsError {
	return &MissingSymbolsError{
		Library: library,
		Symbols: append([]string(nil), symbols...),
	}
}

// family returns the API family prefix of a pdfium symbol (FPDF, FPDFBitmap, ...)
func family(symbol string) string {
	if i := strings.IndexByte(symbol, '_'); i > 0 {
		return symbol[:i]
	}
	return symbol
}

func (e *MissingSymbolsError) Error() string {
	if len(e.Symbols) == 0 {
		return "[init] missing_symbol: no symbols specified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "missing %d pdfium entry point(s)", len(e.Symbols))
	if e.Library != "" {
		b.WriteString(" in ")
		b.WriteString(e.Library)
	}
	b.WriteByte(':')

	// Group by API family for cleaner output
	byFamily := make(map[string][]string)
	var order []string
	for _, sym := range e.Symbols {
		fam := family(sym)
		if _, exists := byFamily[fam]; !exists {
			order = append(order, fam)
		}
		byFamily[fam] = append(byFamily[fam], sym)
	}
	sort.Strings(order)

	for _, fam := range order {
		b.WriteString("\n  ")
		b.WriteString(fam)
		b.WriteString(":\n")
		for _, sym := range byFamily[fam] {
			b.WriteString("    - ")
			b.WriteString(sym)
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *MissingSymbolsError) Is(target error) bool {
	if _, ok := target.(*MissingSymbolsError); ok {
		return true
	}
	if t, ok := target.(*Error); ok {
		return t.Phase == PhaseInit && t.Kind == KindMissingSymbol
	}
	return false
}
