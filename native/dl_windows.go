//go:build windows

package native

import "golang.org/x/sys/windows"

type sharedObject struct {
	dll *windows.DLL
}

func openShared(path string) (*sharedObject, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return nil, err
	}
	return &sharedObject{dll: dll}, nil
}

func (s *sharedObject) lookup(name string) (uintptr, error) {
	proc, err := s.dll.FindProc(name)
	if err != nil {
		return 0, err
	}
	return proc.Addr(), nil
}

func (s *sharedObject) close() error {
	return s.dll.Release()
}

func defaultNames() []string {
	return []string{"pdfium.dll"}
}
