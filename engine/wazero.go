package engine

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
	"github.com/wippyai/pdfium-bridge/errors"
	"github.com/wippyai/pdfium-bridge/retain"
)

const (
	exportMemory = "memory"
	exportMalloc = "malloc"
	exportFree   = "free"

	// scratchSize holds two doubles for out-parameters.
	scratchSize = 16
)

// Config holds configuration for loading a pdfium module
type Config struct {
	// Name identifies the module in errors and logs. Defaults to "pdfium.wasm".
	Name string

	// FSRoot is the host directory mounted at "/" in the guest.
	// Empty means no filesystem access.
	FSRoot string

	// MemoryLimitPages sets the maximum guest memory in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
	MemoryLimitPages uint32

	// Stderr receives the guest's standard error. Nil discards it.
	Stderr io.Writer
}

func (c *Config) name() string {
	if c == nil || c.Name == "" {
		return "pdfium.wasm"
	}
	return c.Name
}

// Library is an instantiated pdfium module implementing
// pdfiumbridge.Library.
type Library struct {
	ctx     context.Context
	runtime wazero.Runtime
	mod     api.Module
	mem     api.Memory
	malloc  api.Function
	free    api.Function
	fns     map[string]api.Function

	// guest copies of in-memory documents, keyed by document handle
	retained *retain.Table
	scratch  uint32
	name     string

	closeOnce sync.Once
	closeErr  error
}

// LoadFile reads a pdfium module from path and loads it.
func LoadFile(ctx context.Context, path string, cfg *Config) (*Library, error) {
	wasm, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load(fmt.Sprintf("cannot read %s", path), err)
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Name == "" {
		c := *cfg
		c.Name = path
		cfg = &c
	}
	return Load(ctx, wasm, cfg)
}

// Load compiles and instantiates a pdfium module. ctx is used for every
// later guest call made through the returned Library.
func Load(ctx context.Context, wasm []byte, cfg *Config) (*Library, error) {
	name := cfg.name()

	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	r := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	lib, err := instantiate(ctx, r, wasm, name, cfg)
	if err != nil {
		return nil, multierr.Append(err, r.Close(ctx))
	}

	Logger().Info("pdfium module loaded", zap.String("module", name))
	return lib, nil
}

func instantiate(ctx context.Context, r wazero.Runtime, wasm []byte, name string, cfg *Config) (*Library, error) {
	compiled, err := r.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.New(errors.PhaseInit, errors.KindFormat).
			Detail("compile %s", name).
			Cause(err).
			Build()
	}

	if missing := missingExports(compiled); len(missing) > 0 {
		return nil, errors.NewMissingSymbolsError(name, missing)
	}

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		return nil, errors.Wrap(errors.PhaseInit, errors.KindNative, err, "instantiate wasi_snapshot_preview1")
	}

	modCfg := wazero.NewModuleConfig().
		WithName("pdfium").
		WithStartFunctions("_initialize").
		WithSysWalltime().
		WithSysNanotime()
	if cfg != nil {
		if cfg.FSRoot != "" {
			modCfg = modCfg.WithFSConfig(wazero.NewFSConfig().WithDirMount(cfg.FSRoot, "/"))
		}
		if cfg.Stderr != nil {
			modCfg = modCfg.WithStderr(cfg.Stderr)
		}
	}

	mod, err := r.InstantiateModule(ctx, compiled, modCfg)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseInit, errors.KindNative, err, "instantiate "+name)
	}

	lib := &Library{
		ctx:      ctx,
		runtime:  r,
		mod:      mod,
		mem:      mod.Memory(),
		malloc:   mod.ExportedFunction(exportMalloc),
		free:     mod.ExportedFunction(exportFree),
		fns:      make(map[string]api.Function, len(pdfiumbridge.EntryPoints)),
		retained: retain.NewTable(),
		name:     name,
	}
	for _, sym := range pdfiumbridge.EntryPoints {
		lib.fns[sym] = mod.ExportedFunction(sym)
	}

	scratch, ok := lib.alloc(scratchSize)
	if !ok {
		return nil, errors.AllocationFailed(errors.PhaseInit, exportMalloc, scratchSize)
	}
	lib.scratch = scratch
	return lib, nil
}

// missingExports lists required exports the compiled module lacks.
func missingExports(compiled wazero.CompiledModule) []string {
	var missing []string
	if _, ok := compiled.ExportedMemories()[exportMemory]; !ok {
		missing = append(missing, exportMemory)
	}
	funcs := compiled.ExportedFunctions()
	for _, sym := range append([]string{exportMalloc, exportFree}, pdfiumbridge.EntryPoints...) {
		if _, ok := funcs[sym]; !ok {
			missing = append(missing, sym)
		}
	}
	return missing
}

// Name returns the module name used in errors and logs.
func (l *Library) Name() string {
	return l.name
}

// Retained returns the number of guest document copies still held.
func (l *Library) Retained() int {
	return l.retained.Len()
}

// Close frees retained guest memory and releases the runtime. Calling
// Close more than once returns the first result.
func (l *Library) Close(ctx context.Context) error {
	l.closeOnce.Do(func() {
		var err error
		if cerr := l.retained.Close(); cerr != nil {
			err = multierr.Append(err, cerr)
		}
		if l.scratch != 0 {
			l.release(l.scratch)
			l.scratch = 0
		}
		err = multierr.Append(err, l.mod.Close(ctx))
		err = multierr.Append(err, l.runtime.Close(ctx))
		l.closeErr = err
	})
	return l.closeErr
}

// call invokes an exported function. A trap is logged and reported as
// ok == false.
func (l *Library) call(fn api.Function, name string, params ...uint64) ([]uint64, bool) {
	results, err := fn.Call(l.ctx, params...)
	if err != nil {
		Logger().Error("guest call failed",
			zap.String("func", name),
			zap.Error(errors.Wrap(errors.PhaseInit, errors.KindNative, err, name)))
		return nil, false
	}
	return results, true
}

// invoke calls a pdfium entry point and returns its first result, or 0.
func (l *Library) invoke(sym string, params ...uint64) uint64 {
	results, ok := l.call(l.fns[sym], sym, params...)
	if !ok || len(results) == 0 {
		return 0
	}
	return results[0]
}

func (l *Library) alloc(size uint32) (uint32, bool) {
	results, ok := l.call(l.malloc, exportMalloc, api.EncodeU32(size))
	if !ok || len(results) == 0 || api.DecodeU32(results[0]) == 0 {
		Logger().Error("guest allocation failed",
			zap.Error(errors.AllocationFailed(errors.PhaseInit, exportMalloc, int(size))))
		return 0, false
	}
	ptr := api.DecodeU32(results[0])
	debugf("malloc(%d) = %#x", size, ptr)
	return ptr, true
}

func (l *Library) release(ptr uint32) {
	if ptr == 0 {
		return
	}
	debugf("free(%#x)", ptr)
	l.call(l.free, exportFree, api.EncodeU32(ptr))
}

// cString copies s into guest memory with a terminating NUL.
func (l *Library) cString(s string) (uint32, bool) {
	ptr, ok := l.alloc(uint32(len(s) + 1))
	if !ok {
		return 0, false
	}
	if !l.mem.WriteString(ptr, s) || !l.mem.WriteByte(ptr+uint32(len(s)), 0) {
		l.release(ptr)
		return 0, false
	}
	return ptr, true
}

// optString is cString with the empty string passed as NULL.
func (l *Library) optString(s string) (uint32, bool) {
	if s == "" {
		return 0, true
	}
	return l.cString(s)
}

// guestBuffer is guest memory owned by the host until dropped.
type guestBuffer struct {
	lib  *Library
	ptr  uint32
	size int
}

func (g *guestBuffer) Drop() {
	g.lib.release(g.ptr)
	g.ptr = 0
}

func (g *guestBuffer) Size() int {
	return g.size
}
