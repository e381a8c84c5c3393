package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	pdfiumbridge "github.com/wippyai/pdfium-bridge"
	"github.com/wippyai/pdfium-bridge/bridge"
	"github.com/wippyai/pdfium-bridge/config"
	"github.com/wippyai/pdfium-bridge/engine"
	"github.com/wippyai/pdfium-bridge/native"
	"github.com/wippyai/pdfium-bridge/render"
)

// backend is an opened pdfium library and its release function.
type backend struct {
	lib   pdfiumbridge.Library
	close func() error
	wasm  bool
}

// setLoggers routes every package's diagnostics to logger.
func setLoggers(logger *zap.Logger) {
	bridge.SetLogger(logger)
	native.SetLogger(logger)
	engine.SetLogger(logger)
}

func openBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	switch cfg.Backend {
	case config.BackendWasm:
		lib, err := engine.LoadFile(ctx, cfg.WasmPath, &engine.Config{
			FSRoot:           cfg.WasmRoot,
			MemoryLimitPages: uint32(cfg.WasmMemoryPages),
			Stderr:           os.Stderr,
		})
		if err != nil {
			return nil, err
		}
		return &backend{lib: lib, close: func() error { return lib.Close(ctx) }, wasm: true}, nil

	default:
		var (
			lib *native.Library
			err error
		)
		if cfg.LibraryPath != "" {
			lib, err = native.Open(cfg.LibraryPath)
		} else {
			lib, err = native.OpenDefault()
		}
		if err != nil {
			return nil, err
		}
		return &backend{lib: lib, close: lib.Close}, nil
	}
}

// openDocument loads path through b. The wasm guest cannot see arbitrary
// host paths, so that backend always reads the file on the host first.
func openDocument(b *bridge.Bridge, be *backend, path, password string, useMmap bool) (*render.Document, func() error, error) {
	noop := func() error { return nil }

	if useMmap {
		data, unmap, err := mapFile(path)
		if err != nil {
			return nil, nil, err
		}
		doc, err := render.OpenExternal(b, data, password)
		if err != nil {
			unmap()
			return nil, nil, err
		}
		return doc, unmap, nil
	}

	if be != nil && be.wasm {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		doc, err := render.OpenBytes(b, data, password)
		return doc, noop, err
	}

	doc, err := render.Open(b, path, password)
	return doc, noop, err
}
