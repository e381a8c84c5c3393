//go:build !unix

package main

import "github.com/wippyai/pdfium-bridge/errors"

func mapFile(string) ([]byte, func() error, error) {
	return nil, nil, errors.Unsupported(errors.PhaseLoad, "memory-mapped documents on this platform")
}
