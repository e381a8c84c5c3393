//go:build unix

package main

import (
	"math"
	"os"

	"golang.org/x/sys/unix"

	"github.com/wippyai/pdfium-bridge/errors"
)

// mapFile maps path read-only. The returned function unmaps it.
func mapFile(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.PhaseLoad, errors.KindFile, err, "open "+path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, errors.Wrap(errors.PhaseLoad, errors.KindFile, err, "stat "+path)
	}
	if info.Size() == 0 || info.Size() > math.MaxInt32 {
		return nil, nil, errors.InvalidInput(errors.PhaseLoad, "mmap", "unsupported file size")
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, errors.Wrap(errors.PhaseLoad, errors.KindFile, err, "mmap "+path)
	}
	return data, func() error { return unix.Munmap(data) }, nil
}
