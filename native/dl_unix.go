//go:build darwin || freebsd || linux || netbsd

package native

import (
	"runtime"

	"github.com/ebitengine/purego"
)

type sharedObject struct {
	handle uintptr
}

func openShared(path string) (*sharedObject, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	return &sharedObject{handle: h}, nil
}

func (s *sharedObject) lookup(name string) (uintptr, error) {
	return purego.Dlsym(s.handle, name)
}

func (s *sharedObject) close() error {
	return purego.Dlclose(s.handle)
}

func defaultNames() []string {
	if runtime.GOOS == "darwin" {
		return []string{"libpdfium.dylib", "/usr/local/lib/libpdfium.dylib", "/opt/homebrew/lib/libpdfium.dylib"}
	}
	return []string{"libpdfium.so", "/usr/lib/libpdfium.so", "/usr/local/lib/libpdfium.so"}
}
