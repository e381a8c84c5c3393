package retain

import "runtime"

// Pinned is a private copy of a byte slice pinned in the Go heap so native
// code may keep its address after the call that received it returns.
type Pinned struct {
	buf    []byte
	pinner runtime.Pinner
	pinned bool
}

// PinCopy copies data into a new buffer and pins it. An empty input yields
// an unpinned, empty value.
func PinCopy(data []byte) *Pinned {
	p := &Pinned{}
	if len(data) == 0 {
		return p
	}
	p.buf = make([]byte, len(data))
	copy(p.buf, data)
	p.pinner.Pin(&p.buf[0])
	p.pinned = true
	return p
}

// Bytes returns the pinned buffer. It stays valid until Drop.
func (p *Pinned) Bytes() []byte {
	return p.buf
}

// Size returns the buffer length.
func (p *Pinned) Size() int {
	return len(p.buf)
}

// Drop unpins the buffer. Calling Drop more than once is harmless.
func (p *Pinned) Drop() {
	if !p.pinned {
		return
	}
	p.pinner.Unpin()
	p.pinned = false
	p.buf = nil
}
