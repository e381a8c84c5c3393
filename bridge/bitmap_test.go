package bridge

import (
	"testing"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
	"github.com/wippyai/pdfium-bridge/internal/fakepdfium"
)

func TestCreateBitmap(t *testing.T) {
	b, lib, _ := newTestBridge(t)

	bm := b.CreateBitmap(10, 10, true)
	if bm == 0 {
		t.Fatal("CreateBitmap returned zero handle")
	}
	if got := b.GetBitmapWidth(bm); got != 10 {
		t.Errorf("width = %d, want 10", got)
	}
	if got := b.GetBitmapHeight(bm); got != 10 {
		t.Errorf("height = %d, want 10", got)
	}
	if got := b.GetBitmapStride(bm); got < 40 {
		t.Errorf("stride = %d, want >= 40", got)
	}

	b.DestroyBitmap(bm)
	if lib.OpenBitmaps() != 0 {
		t.Errorf("OpenBitmaps = %d, want 0", lib.OpenBitmaps())
	}
}

func TestCreateBitmap_InvalidDimensions(t *testing.T) {
	b, lib, logs := newTestBridge(t)

	dims := [][2]int{{0, 10}, {10, 0}, {-1, 10}, {10, -5}, {0, 0}}
	for _, d := range dims {
		if bm := b.CreateBitmap(d[0], d[1], true); bm != 0 {
			t.Errorf("CreateBitmap(%d, %d) = %#x, want 0", d[0], d[1], bm)
		}
		if bm := b.CreateBitmapEx(d[0], d[1], pdfiumbridge.BitmapBGRA); bm != 0 {
			t.Errorf("CreateBitmapEx(%d, %d) = %#x, want 0", d[0], d[1], bm)
		}
	}

	if calls := lib.Calls(); len(calls) != 0 {
		t.Errorf("pdfium was called: %v", calls)
	}
	if got := logs.FilterMessage("invalid bitmap dimensions").Len(); got != 2*len(dims) {
		t.Errorf("got %d entries, want %d", got, 2*len(dims))
	}
}

func TestCreateBitmapEx(t *testing.T) {
	b, _, logs := newTestBridge(t)

	tests := []struct {
		format     pdfiumbridge.BitmapFormat
		width      int
		wantStride int
	}{
		{pdfiumbridge.BitmapGray, 5, 8},
		{pdfiumbridge.BitmapBGR, 5, 16},
		{pdfiumbridge.BitmapBGRx, 5, 20},
		{pdfiumbridge.BitmapBGRA, 5, 20},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			bm := b.CreateBitmapEx(tt.width, 3, tt.format)
			if bm == 0 {
				t.Fatal("CreateBitmapEx returned zero handle")
			}
			defer b.DestroyBitmap(bm)

			if got := b.GetBitmapStride(bm); got != tt.wantStride {
				t.Errorf("stride = %d, want %d", got, tt.wantStride)
			}
			if got := len(b.GetBitmapBuffer(bm)); got != tt.wantStride*3 {
				t.Errorf("buffer length = %d, want %d", got, tt.wantStride*3)
			}
		})
	}

	if bm := b.CreateBitmapEx(4, 4, pdfiumbridge.BitmapUnknown); bm != 0 {
		t.Errorf("CreateBitmapEx(unknown) = %#x, want 0", bm)
	}
	if logs.FilterMessage("failed to create bitmap").Len() != 1 {
		t.Error("expected an allocation failure entry")
	}
}

func TestFillRect_BufferView(t *testing.T) {
	b, _, _ := newTestBridge(t)

	bm := b.CreateBitmap(10, 10, true)
	defer b.DestroyBitmap(bm)

	if !b.FillRect(bm, 2, 3, 4, 5, 0xFF112233) {
		t.Fatal("FillRect returned false")
	}

	buf := b.GetBitmapBuffer(bm)
	stride := b.GetBitmapStride(bm)
	if len(buf) != stride*10 {
		t.Fatalf("buffer length = %d, want %d", len(buf), stride*10)
	}

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			px := buf[y*stride+x*4 : y*stride+x*4+4]
			inside := x >= 2 && x < 6 && y >= 3 && y < 8
			want := [4]byte{}
			if inside {
				want = [4]byte{0x33, 0x22, 0x11, 0xFF}
			}
			if [4]byte(px) != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, px, want)
			}
		}
	}
}

func TestGetBitmapBuffer_Aliases(t *testing.T) {
	b, _, _ := newTestBridge(t)

	bm := b.CreateBitmap(4, 4, false)
	defer b.DestroyBitmap(bm)

	first := b.GetBitmapBuffer(bm)
	first[0] = 0xAB

	second := b.GetBitmapBuffer(bm)
	if second[0] != 0xAB {
		t.Error("writes through the view are not visible in the bitmap")
	}
	if &first[0] != &second[0] {
		t.Error("views of the same bitmap should share storage")
	}
}

func TestGetBitmapBuffer_Null(t *testing.T) {
	b, lib, logs := newTestBridge(t)

	bm := b.CreateBitmap(4, 4, true)
	defer b.DestroyBitmap(bm)

	lib.NoBuffer = true
	if buf := b.GetBitmapBuffer(bm); buf != nil {
		t.Errorf("GetBitmapBuffer = %d bytes, want nil", len(buf))
	}
	if logs.FilterMessage("bitmap buffer is null").Len() != 1 {
		t.Error("expected a null buffer entry")
	}
}

func TestGetBitmapBuffer_DestroyedBitmap(t *testing.T) {
	b, _, _ := newTestBridge(t)

	bm := b.CreateBitmap(4, 4, true)
	b.DestroyBitmap(bm)

	// The fake reports zero geometry for unknown handles.
	if buf := b.GetBitmapBuffer(bm); buf != nil {
		t.Errorf("GetBitmapBuffer after destroy = %d bytes, want nil", len(buf))
	}
}

func TestRenderPageBitmap(t *testing.T) {
	b, lib, _ := newTestBridge(t)
	doc := openDoc(t, b)
	page := openPage(t, b, doc, 0)

	bm := b.CreateBitmap(20, 20, true)
	defer b.DestroyBitmap(bm)
	b.FillRect(bm, 0, 0, 20, 20, 0xFFFFFFFF)

	vp := Viewport{StartX: 2, StartY: 2, SizeX: 16, SizeY: 16, Rotate: pdfiumbridge.Rotate90}
	flags := pdfiumbridge.RenderAnnot | pdfiumbridge.RenderLCDText
	b.RenderPageBitmap(bm, page, vp, flags)

	rc := lib.LastRender()
	if rc == nil {
		t.Fatal("RenderPageBitmap did not reach pdfium")
	}
	want := fakepdfium.RenderCall{
		Bitmap: uintptr(bm), Page: uintptr(page),
		StartX: 2, StartY: 2, SizeX: 16, SizeY: 16,
		Rotate: pdfiumbridge.Rotate90, Flags: flags,
	}
	if *rc != want {
		t.Errorf("render call = %+v, want %+v", *rc, want)
	}

	buf := b.GetBitmapBuffer(bm)
	stride := b.GetBitmapStride(bm)
	if got := [4]byte(buf[2*stride+2*4:]); got != fakepdfium.InkColor {
		t.Errorf("viewport corner = %v, want ink", got)
	}
	if got := [4]byte(buf[0:4]); got != [4]byte{0xFF, 0xFF, 0xFF, 0xFF} {
		t.Errorf("outside viewport = %v, want background", got)
	}
}

func TestRenderPageBitmap_ZeroPage(t *testing.T) {
	b, lib, _ := newTestBridge(t)

	bm := b.CreateBitmap(4, 4, true)
	defer b.DestroyBitmap(bm)

	b.RenderPageBitmap(bm, 0, Fit(4, 4), 0)
	if lib.CallCount(pdfiumbridge.SymRenderPageBitmap) != 0 {
		t.Error("render reached pdfium with a zero page")
	}
}
