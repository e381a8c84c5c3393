package engine

import (
	"encoding/binary"
	"math"
)

// Hand-encoded wasm modules standing in for a pdfium build. The fake
// exports every entry point with trivial bodies: handles are guest
// addresses, malloc is a bump allocator and FPDF_RenderPageBitmap traps.

const (
	valI32 = 0x7f
	valF64 = 0x7c
)

type testFunc struct {
	name    string
	params  []byte
	results []byte
	body    []byte
}

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
			continue
		}
		return append(out, b)
	}
}

func sleb(v int32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func vec(items ...[]byte) []byte {
	out := uleb(uint32(len(items)))
	for _, it := range items {
		out = append(out, it...)
	}
	return out
}

func wasmName(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func section(id byte, content []byte) []byte {
	return append(append([]byte{id}, uleb(uint32(len(content)))...), content...)
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// instruction helpers
func i32Const(v int32) []byte { return append([]byte{0x41}, sleb(v)...) }
func localGet(i uint32) []byte { return append([]byte{0x20}, uleb(i)...) }

func f64Const(v float64) []byte {
	b := make([]byte, 9)
	b[0] = 0x44
	binary.LittleEndian.PutUint64(b[1:], math.Float64bits(v))
	return b
}

var (
	i32Store      = []byte{0x36, 0x02, 0x00}
	f64Store      = []byte{0x39, 0x03, 0x00}
	i32Eqz        = []byte{0x45}
	i32Mul        = []byte{0x6c}
	f64FromI32    = []byte{0xb7}
	i32FromF64    = []byte{0xaa}
	unreachableOp = []byte{0x00}
)

func i32s(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = valI32
	}
	return out
}

// buildModule encodes funcs into a module. withMemory adds one exported
// page of memory; the single mutable global serves as the bump pointer.
func buildModule(withMemory bool, funcs []testFunc) []byte {
	var types, indices, exports, codes [][]byte
	for i, f := range funcs {
		types = append(types, cat([]byte{0x60}, vec(splitBytes(f.params)...), vec(splitBytes(f.results)...)))
		indices = append(indices, uleb(uint32(i)))
		exports = append(exports, cat(wasmName(f.name), []byte{0x00}, uleb(uint32(i))))
		body := cat([]byte{0x00}, f.body, []byte{0x0b})
		codes = append(codes, cat(uleb(uint32(len(body))), body))
	}
	if withMemory {
		exports = append(exports, cat(wasmName("memory"), []byte{0x02, 0x00}))
	}

	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	if len(funcs) > 0 {
		out = append(out, section(1, vec(types...))...)
		out = append(out, section(3, vec(indices...))...)
	}
	if withMemory {
		out = append(out, section(5, vec([]byte{0x00, 0x01}))...)
	}
	out = append(out, section(6, vec(cat([]byte{valI32, 0x01}, i32Const(1024), []byte{0x0b})))...)
	if len(exports) > 0 {
		out = append(out, section(7, vec(exports...))...)
	}
	if len(funcs) > 0 {
		out = append(out, section(10, vec(codes...))...)
	}
	return out
}

func splitBytes(b []byte) [][]byte {
	out := make([][]byte, len(b))
	for i := range b {
		out[i] = b[i : i+1]
	}
	return out
}

// Values reported by the fake module.
const (
	fakePageCount   = 2
	fakeVersion     = 17
	fakePermissions = 0xFFFFFFFC
	fakeLastError   = 3
	fakeBitmap      = 8192
	fakePage        = 0x200
	fakeWidth       = 612
	fakeHeight      = 792
)

var allocatorFuncs = []testFunc{
	{
		name:    "malloc",
		params:  i32s(1),
		results: i32s(1),
		// old := bump; bump += size; return old
		body: []byte{0x23, 0x00, 0x23, 0x00, 0x20, 0x00, 0x6a, 0x24, 0x00},
	},
	{name: "free", params: i32s(1)},
}

func fakePdfiumFuncs() []testFunc {
	return append(append([]testFunc(nil), allocatorFuncs...),
		testFunc{name: "FPDF_InitLibrary"},
		testFunc{name: "FPDF_DestroyLibrary"},
		// handles are the address of the path or buffer
		testFunc{name: "FPDF_LoadDocument", params: i32s(2), results: i32s(1), body: localGet(0)},
		testFunc{name: "FPDF_LoadMemDocument", params: i32s(3), results: i32s(1), body: localGet(0)},
		testFunc{name: "FPDF_CloseDocument", params: i32s(1)},
		testFunc{name: "FPDF_GetLastError", results: i32s(1), body: i32Const(fakeLastError)},
		testFunc{name: "FPDF_GetPageCount", params: i32s(1), results: i32s(1), body: i32Const(fakePageCount)},
		testFunc{name: "FPDF_GetFileVersion", params: i32s(2), results: i32s(1),
			body: cat(localGet(1), i32Const(fakeVersion), i32Store, i32Const(1))},
		testFunc{name: "FPDF_GetDocPermissions", params: i32s(1), results: i32s(1), body: i32Const(-4)},
		testFunc{name: "FPDF_LoadPage", params: i32s(2), results: i32s(1), body: i32Const(fakePage)},
		testFunc{name: "FPDF_ClosePage", params: i32s(1)},
		testFunc{name: "FPDF_GetPageWidth", params: i32s(1), results: []byte{valF64}, body: f64Const(fakeWidth)},
		testFunc{name: "FPDF_GetPageHeight", params: i32s(1), results: []byte{valF64}, body: f64Const(fakeHeight)},
		// only index 0 exists
		testFunc{name: "FPDF_GetPageSizeByIndex", params: i32s(4), results: i32s(1),
			body: cat(localGet(2), f64Const(fakeWidth), f64Store, localGet(3), f64Const(fakeHeight), f64Store,
				localGet(1), i32Eqz)},
		testFunc{name: "FPDFBitmap_Create", params: i32s(3), results: i32s(1), body: i32Const(fakeBitmap)},
		// handle is format*fakeBitmap, so the unknown format fails
		testFunc{name: "FPDFBitmap_CreateEx", params: i32s(5), results: i32s(1),
			body: cat(localGet(2), i32Const(fakeBitmap), i32Mul)},
		testFunc{name: "FPDFBitmap_Destroy", params: i32s(1)},
		// store color in the first pixel
		testFunc{name: "FPDFBitmap_FillRect", params: i32s(6), results: i32s(1),
			body: cat(localGet(0), localGet(5), i32Store, i32Const(1))},
		testFunc{name: "FPDFBitmap_GetBuffer", params: i32s(1), results: i32s(1), body: localGet(0)},
		testFunc{name: "FPDFBitmap_GetWidth", params: i32s(1), results: i32s(1), body: i32Const(10)},
		testFunc{name: "FPDFBitmap_GetHeight", params: i32s(1), results: i32s(1), body: i32Const(10)},
		testFunc{name: "FPDFBitmap_GetStride", params: i32s(1), results: i32s(1), body: i32Const(40)},
		testFunc{name: "FPDF_RenderPageBitmap", params: i32s(8), body: unreachableOp},
		// identity transforms
		testFunc{name: "FPDF_DeviceToPage", params: i32s(10), results: i32s(1),
			body: cat(localGet(8), localGet(6), f64FromI32, f64Store, localGet(9), localGet(7), f64FromI32, f64Store, i32Const(1))},
		testFunc{name: "FPDF_PageToDevice", params: cat(i32s(6), []byte{valF64, valF64}, i32s(2)), results: i32s(1),
			body: cat(localGet(8), localGet(6), i32FromF64, i32Store, localGet(9), localGet(7), i32FromF64, i32Store, i32Const(1))},
	)
}
