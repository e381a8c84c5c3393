package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
	"github.com/wippyai/pdfium-bridge/bridge"
	"github.com/wippyai/pdfium-bridge/internal/fakepdfium"
	"github.com/wippyai/pdfium-bridge/render"
)

var content = []byte("%PDF-1.7 two pages")

var twoPages = fakepdfium.DocSpec{
	Pages: []fakepdfium.PageSpec{
		{Width: 612, Height: 792},
		{Width: 842, Height: 595},
	},
	Version:     17,
	Permissions: uint32(pdfiumbridge.PermPrint | pdfiumbridge.PermCopy),
}

// setup writes a PDF-looking file and registers it with a fake pdfium both
// by path and by content.
func setup(t *testing.T) (*bridge.Bridge, *fakepdfium.Library, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "two.pdf")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	lib := fakepdfium.New()
	lib.AddFile(path, twoPages)
	lib.AddBlob(content, twoPages)
	b := bridge.New(lib)
	b.InitLibrary()
	return b, lib, path
}

func openTestDoc(t *testing.T, b *bridge.Bridge, path string) *render.Document {
	t.Helper()
	doc, release, err := openDocument(b, nil, path, "", false)
	if err != nil {
		t.Fatalf("openDocument failed: %v", err)
	}
	t.Cleanup(func() {
		doc.Close()
		release()
	})
	return doc
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		v    int
		want string
	}{
		{17, "1.7"},
		{20, "2.0"},
		{14, "1.4"},
		{-1, "unknown"},
	}
	for _, tt := range tests {
		if got := formatVersion(tt.v); got != tt.want {
			t.Errorf("formatVersion(%d) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		pdf   string
		index int
		want  string
	}{
		{"doc.pdf", 0, "doc-p1.png"},
		{"/tmp/a/report.PDF", 4, "/tmp/a/report-p5.png"},
		{"noext", 1, "noext-p2.png"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.pdf, tt.index); got != tt.want {
			t.Errorf("outputPath(%q, %d) = %q, want %q", tt.pdf, tt.index, got, tt.want)
		}
	}
}

func TestWriteInfo(t *testing.T) {
	b, _, path := setup(t)
	doc := openTestDoc(t, b, path)

	var buf bytes.Buffer
	if err := writeInfo(&buf, "two.pdf", doc); err != nil {
		t.Fatalf("writeInfo failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Document: two.pdf",
		"Version: 1.7",
		"Pages: 2",
		"1: 612.00 x 792.00 pt",
		"2: 842.00 x 595.00 pt",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestOpenDocument_Variants(t *testing.T) {
	b, lib, path := setup(t)

	tests := []struct {
		name string
		be   *backend
		mmap bool
		sym  string
	}{
		{"path", nil, false, pdfiumbridge.SymLoadDocument},
		{"wasm reads on host", &backend{wasm: true}, false, pdfiumbridge.SymLoadMemDocument},
		{"mmap", nil, true, pdfiumbridge.SymLoadMemDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib.ResetCalls()
			doc, release, err := openDocument(b, tt.be, path, "", tt.mmap)
			if err != nil {
				if tt.mmap && strings.Contains(err.Error(), "unsupported") {
					t.Skip("no memory maps on this platform")
				}
				t.Fatalf("openDocument failed: %v", err)
			}
			if doc.PageCount() != 2 {
				t.Errorf("PageCount = %d, want 2", doc.PageCount())
			}
			if lib.CallCount(tt.sym) != 1 {
				t.Errorf("calls = %v, want one %s", lib.Calls(), tt.sym)
			}
			doc.Close()
			if err := release(); err != nil {
				t.Errorf("release failed: %v", err)
			}
		})
	}

	if _, _, err := openDocument(b, nil, filepath.Join(t.TempDir(), "missing.pdf"), "", false); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRenderToFile(t *testing.T) {
	b, _, path := setup(t)
	doc := openTestDoc(t, b, path)

	out := filepath.Join(t.TempDir(), "page.png")
	if err := renderToFile(doc, 1, 400, 400, out); err != nil {
		t.Fatalf("renderToFile failed: %v", err)
	}

	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("cannot read rendered page: %v", err)
	}
	// 842 x 595 landscape fitted into 400 x 400
	if got := img.Bounds().Size(); got != image.Pt(400, 282) {
		t.Errorf("size = %v, want (400,282)", got)
	}

	if err := renderToFile(doc, 5, 100, 100, out); err == nil {
		t.Error("expected error for page out of range")
	}
}

func TestPreviewSize(t *testing.T) {
	tests := []struct {
		w, h, cols, rows int
		wantW, wantH     int
	}{
		{100, 100, 80, 40, 80, 40},
		{100, 100, 80, 10, 20, 10},
		{612, 792, 80, 24, 37, 24},
		{10, 10, 0, 10, 0, 0},
	}
	for _, tt := range tests {
		w, h := previewSize(tt.w, tt.h, tt.cols, tt.rows)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("previewSize(%d, %d, %d, %d) = %d, %d; want %d, %d",
				tt.w, tt.h, tt.cols, tt.rows, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestASCIIPreview(t *testing.T) {
	// left half white, right half black
	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if x >= 20 {
				c = color.NRGBA{A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	out := asciiPreview(img, 20, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), out)
	}
	for _, line := range lines {
		if len(line) != 20 {
			t.Fatalf("line %q has %d columns, want 20", line, len(line))
		}
		if line[0] != ' ' || line[19] != '@' {
			t.Errorf("line %q should run from blank to dense", line)
		}
	}

	if asciiPreview(img, 0, 0) != "" {
		t.Error("zero-sized preview should be empty")
	}
}
