package rtpvideotx

import (
	"fmt"

	"github.com/gobwas/pool/pbytes"
)

const defaultMaxLineBuffer = 64 << 20

// LineBuffer is the staging area callers write scanline bytes into. Storage
// only grows. Slices returned by Acquire are invalidated by the next call
// that grows the buffer.
type LineBuffer struct {
	buf    []byte
	offset int

	initial int
	limit   int
}

// NewLineBuffer returns a buffer whose first allocation is at least initial
// bytes and which never grows beyond limit bytes.
func NewLineBuffer(initial, limit int) *LineBuffer {
	return &LineBuffer{
		initial: initial,
		limit:   limit,
	}
}

// Acquire returns n writable bytes following everything acquired since the
// last Reset.
func (b *LineBuffer) Acquire(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid line buffer length: %d", n)
	}
	need := b.offset + n
	if need > b.limit {
		return nil, fmt.Errorf("%w: %d bytes requested, limit %d", ErrOutOfMemory, need, b.limit)
	}
	if b.buf == nil {
		b.buf = pbytes.GetLen(min(max(b.initial, need), b.limit))
	} else if need > len(b.buf) {
		b.grow(need)
	}
	s := b.buf[b.offset:need:need]
	b.offset = need
	return s, nil
}

func (b *LineBuffer) grow(need int) {
	size := min(max(need, 2*len(b.buf)), b.limit)
	buf := pbytes.GetLen(size)
	copy(buf, b.buf[:b.offset])
	pbytes.Put(b.buf)
	b.buf = buf
}

// Bytes returns the bytes acquired since the last Reset.
func (b *LineBuffer) Bytes() []byte {
	return b.buf[:b.offset]
}

func (b *LineBuffer) Len() int {
	return b.offset
}

func (b *LineBuffer) Cap() int {
	return len(b.buf)
}

// Reset rewinds the write offset and keeps the storage.
func (b *LineBuffer) Reset() {
	b.offset = 0
}

// Release returns the storage to the pool.
func (b *LineBuffer) Release() {
	if b.buf != nil {
		pbytes.Put(b.buf)
	}
	b.buf = nil
	b.offset = 0
}
