package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/pdfium-bridge/bridge"
	"github.com/wippyai/pdfium-bridge/config"
	"github.com/wippyai/pdfium-bridge/render"
)

type options struct {
	pdf         string
	password    string
	page        int
	out         string
	width       int
	height      int
	mmap        bool
	interactive bool
}

func main() {
	var (
		pdfFile     = flag.String("pdf", "", "Path to PDF file")
		password    = flag.String("password", "", "Document password")
		page        = flag.Int("render", 0, "Render page N (1-based)")
		out         = flag.String("out", "", "Output image for -render (format from extension)")
		width       = flag.Int("width", 1240, "Maximum render width in pixels")
		height      = flag.Int("height", 1754, "Maximum render height in pixels")
		useMmap     = flag.Bool("mmap", false, "Load through a read-only memory map without copying")
		backendName = flag.String("backend", "", "Backend: native or wasm (default from PDFIUM_BACKEND)")
		libPath     = flag.String("lib", "", "pdfium shared library (native backend)")
		wasmPath    = flag.String("wasm", "", "pdfium module (wasm backend)")
		interactive = flag.Bool("i", false, "Interactive page viewer")
	)
	flag.Parse()

	if *pdfFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: pdfium -pdf <file.pdf> [-password p]")
		fmt.Fprintln(os.Stderr, "       pdfium -pdf <file.pdf> -render N -out page.png [-width W -height H]")
		fmt.Fprintln(os.Stderr, "       pdfium -pdf <file.pdf> -i  (interactive mode)")
		os.Exit(1)
	}

	cfg := config.Load()
	if *backendName != "" {
		cfg.Backend = strings.ToLower(*backendName)
	}
	if *libPath != "" {
		cfg.LibraryPath = *libPath
	}
	if *wasmPath != "" {
		cfg.WasmPath = *wasmPath
		if *backendName == "" {
			cfg.Backend = config.BackendWasm
		}
	}

	opts := options{
		pdf:         *pdfFile,
		password:    *password,
		page:        *page,
		out:         *out,
		width:       *width,
		height:      *height,
		mmap:        *useMmap,
		interactive: *interactive,
	}

	if err := run(context.Background(), cfg, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, opts options) (err error) {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if opts.interactive && !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal")
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()
	setLoggers(logger)

	be, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open pdfium: %w", err)
	}
	defer func() { err = multierr.Append(err, be.close()) }()

	b := bridge.New(be.lib)
	b.InitLibrary()
	defer b.DestroyLibrary()

	doc, release, err := openDocument(b, be, opts.pdf, opts.password, opts.mmap)
	if err != nil {
		return fmt.Errorf("open %s: %w", opts.pdf, err)
	}
	defer func() { err = multierr.Append(err, release()) }()
	defer doc.Close()

	logger.Debug("document opened",
		zap.String("path", opts.pdf),
		zap.Int("pages", doc.PageCount()),
		zap.Bool("mmap", opts.mmap))

	if opts.interactive {
		return runInteractive(doc, opts)
	}

	if err := writeInfo(os.Stdout, opts.pdf, doc); err != nil {
		return err
	}
	if opts.page == 0 {
		return nil
	}

	path := opts.out
	if path == "" {
		path = outputPath(opts.pdf, opts.page-1)
	}
	if err := renderToFile(doc, opts.page-1, opts.width, opts.height, path); err != nil {
		return err
	}
	fmt.Printf("\nRendered page %d to %s\n", opts.page, path)
	return nil
}

// writeInfo prints the document summary and every page size.
func writeInfo(w io.Writer, name string, doc *render.Document) error {
	fmt.Fprintf(w, "Document: %s\n", name)
	fmt.Fprintf(w, "Version: %s\n", formatVersion(doc.Version()))
	fmt.Fprintf(w, "Permissions: %s\n", doc.Permissions())
	fmt.Fprintf(w, "Pages: %d\n", doc.PageCount())
	for i := 0; i < doc.PageCount(); i++ {
		pw, ph, err := doc.PageSize(i)
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		if _, err := fmt.Fprintf(w, "  %d: %.2f x %.2f pt\n", i+1, pw, ph); err != nil {
			return err
		}
	}
	return nil
}

// formatVersion renders pdfium's version-times-ten as "1.7".
func formatVersion(v int) string {
	if v < 0 {
		return "unknown"
	}
	return fmt.Sprintf("%d.%d", v/10, v%10)
}

// outputPath derives "<name>-p<N>.png" next to the PDF.
func outputPath(pdf string, index int) string {
	base := strings.TrimSuffix(pdf, filepath.Ext(pdf))
	return fmt.Sprintf("%s-p%d.png", base, index+1)
}

func renderToFile(doc *render.Document, index, width, height int, path string) error {
	img, err := doc.RenderPage(index, width, height, nil)
	if err != nil {
		return fmt.Errorf("render page %d: %w", index+1, err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
