package errors

import (
	"errors"
	"strings"
	"testing"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindPassword,
				Op:     "FPDF_LoadDocument",
				Code:   pdfiumbridge.ErrPassword,
				Detail: "encrypted",
			},
			contains: []string{"[load]", "password", "FPDF_LoadDocument", "encrypted", "pdfium error 4"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhasePage,
				Kind:  KindNilHandle,
			},
			contains: []string{"[page]", "nil_handle"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseInit,
				Kind:   KindNotFound,
				Detail: "dlopen",
				Cause:  errors.New("no such file"),
			},
			contains: []string{"[init]", "not_found", "dlopen", "caused by", "no such file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_NoCodeSuffixOnSuccess(t *testing.T) {
	err := &Error{Phase: PhaseBitmap, Kind: KindInvalidInput, Detail: "bad size"}
	if strings.Contains(err.Error(), "pdfium error") {
		t.Errorf("unexpected code suffix in %q", err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseInit,
		Kind:  KindNotFound,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseLoad,
		Kind:  KindFormat,
		Op:    "FPDF_LoadMemDocument",
	}

	if !err.Is(&Error{Phase: PhaseLoad, Kind: KindFormat}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhasePage, Kind: KindFormat}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseLoad, Kind: KindFile}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseLoad, Kind: KindFormat}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseRender, KindNative).
		Op("FPDF_RenderPageBitmap").
		Code(pdfiumbridge.ErrPage).
		Value(7).
		Cause(cause).
		Detail("page %d of %d", 7, 3).
		Build()

	if err.Phase != PhaseRender {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseRender)
	}
	if err.Kind != KindNative {
		t.Errorf("Kind = %v, want %v", err.Kind, KindNative)
	}
	if err.Op != "FPDF_RenderPageBitmap" {
		t.Errorf("Op = %q", err.Op)
	}
	if err.Code != pdfiumbridge.ErrPage {
		t.Errorf("Code = %v", err.Code)
	}
	if err.Value != 7 {
		t.Errorf("Value = %v, want 7", err.Value)
	}
	if err.Detail != "page 7 of 3" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if !errors.Is(err, cause) {
		t.Error("builder error should wrap cause")
	}
}

func TestFromCode(t *testing.T) {
	tests := []struct {
		code pdfiumbridge.ErrorCode
		kind Kind
	}{
		{pdfiumbridge.ErrUnknown, KindUnknown},
		{pdfiumbridge.ErrFile, KindFile},
		{pdfiumbridge.ErrFormat, KindFormat},
		{pdfiumbridge.ErrPassword, KindPassword},
		{pdfiumbridge.ErrSecurity, KindSecurity},
		{pdfiumbridge.ErrPage, KindPage},
		{pdfiumbridge.ErrorCode(77), KindUnknown},
	}

	for _, tt := range tests {
		err := FromCode(PhaseLoad, "FPDF_LoadDocument", tt.code)
		if err == nil {
			t.Fatalf("FromCode(%d) returned nil", tt.code)
		}
		if err.Kind != tt.kind {
			t.Errorf("FromCode(%d).Kind = %v, want %v", tt.code, err.Kind, tt.kind)
		}
		if err.Code != tt.code {
			t.Errorf("FromCode(%d).Code = %v", tt.code, err.Code)
		}
		if err.Detail != tt.code.String() {
			t.Errorf("FromCode(%d).Detail = %q", tt.code, err.Detail)
		}
	}

	if err := FromCode(PhaseLoad, "FPDF_LoadDocument", pdfiumbridge.ErrSuccess); err != nil {
		t.Errorf("FromCode(success) = %v, want nil", err)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NilHandle", func(t *testing.T) {
		err := NilHandle(PhasePage, "FPDF_LoadPage", "document")
		if err.Kind != KindNilHandle || err.Detail != "document handle is null" {
			t.Errorf("unexpected %+v", err)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhasePage, "RenderPage", 5, 2)
		if err.Kind != KindOutOfBounds || err.Value != 5 {
			t.Errorf("unexpected %+v", err)
		}
		if !strings.Contains(err.Detail, "length 2") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseBitmap, "malloc", 1024)
		if err.Kind != KindAllocation || !strings.Contains(err.Detail, "1024") {
			t.Errorf("unexpected %+v", err)
		}
	})

	t.Run("Load", func(t *testing.T) {
		cause := errors.New("dlopen failed")
		err := Load("open libpdfium.so", cause)
		if err.Phase != PhaseInit || !errors.Is(err, cause) {
			t.Errorf("unexpected %+v", err)
		}
	})

	t.Run("Native", func(t *testing.T) {
		err := Native(PhaseTransform, "FPDF_DeviceToPage")
		if err.Kind != KindNative || err.Op != "FPDF_DeviceToPage" {
			t.Errorf("unexpected %+v", err)
		}
	})
}

func TestMissingSymbolsError(t *testing.T) {
	t.Run("grouped by family", func(t *testing.T) {
		err := NewMissingSymbolsError("libpdfium.so", []string{
			"FPDF_LoadPage",
			"FPDFBitmap_GetStride",
			"FPDF_DeviceToPage",
		})
		msg := err.Error()

		for _, s := range []string{"missing 3", "libpdfium.so", "FPDF:", "FPDFBitmap:", "- FPDF_LoadPage", "- FPDFBitmap_GetStride"} {
			if !strings.Contains(msg, s) {
				t.Errorf("message %q does not contain %q", msg, s)
			}
		}
		if strings.Index(msg, "FPDF:") > strings.Index(msg, "FPDFBitmap:") {
			t.Errorf("families not sorted: %q", msg)
		}
	})

	t.Run("empty", func(t *testing.T) {
		err := NewMissingSymbolsError("", nil)
		if !strings.Contains(err.Error(), "no symbols specified") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("errors.Is", func(t *testing.T) {
		var err error = NewMissingSymbolsError("x", []string{"FPDF_InitLibrary"})
		if !errors.Is(err, &MissingSymbolsError{}) {
			t.Error("errors.Is should match MissingSymbolsError")
		}
		if !errors.Is(err, &Error{Phase: PhaseInit, Kind: KindMissingSymbol}) {
			t.Error("errors.Is should match init/missing_symbol")
		}
	})

	t.Run("copies input", func(t *testing.T) {
		syms := []string{"FPDF_LoadPage"}
		err := NewMissingSymbolsError("", syms)
		syms[0] = "changed"
		if err.Symbols[0] != "FPDF_LoadPage" {
			t.Error("symbols slice should be copied")
		}
	})
}
