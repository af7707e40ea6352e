// Package buffer provides the internal growable byte buffer the
// framed codec frontend and field codecs write into and read sub-
// ranges out of: a pooled, growable ByteBuffer with two extra
// primitives the Blink frontend needs beyond plain append-and-grow: a
// rewindable position for the preamble size back-patch (§4.F) and a
// CopyTo that streams a closed sub-range to an external sink without
// exposing the backing array.
package buffer

import (
	"io"
	"sync"

	"github.com/mbrannstrom/blinkcodec/errs"
)

// Default and maximum pooled buffer sizes. A single message's encoded
// payload rarely exceeds a few KiB, so these are scaled down for
// per-message framing rather than larger per-batch buffers.
const (
	DefaultSize  = 1024 * 4  // 4KiB
	MaxThreshold = 1024 * 64 // 64KiB
)

// Buffer is a contiguous, growable byte region with a write cursor,
// random-access overwrite, and pool-backed reuse.
type Buffer struct {
	B []byte
}

// New creates a Buffer with the given starting capacity.
func New(defaultSize int) *Buffer {
	return &Buffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice written so far.
func (b *Buffer) Bytes() []byte {
	return b.B
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.B)
}

// Cap returns the buffer's current capacity.
func (b *Buffer) Cap() int {
	return cap(b.B)
}

// Reset empties the buffer while retaining its backing array.
func (b *Buffer) Reset() {
	b.B = b.B[:0]
}

// Grow ensures the buffer can accept requiredBytes more bytes without
// reallocating, using an amortized growth strategy: a fixed increment
// for small buffers, a proportional increment once the buffer is
// large.
func (b *Buffer) Grow(requiredBytes int) {
	available := cap(b.B) - len(b.B)
	if available >= requiredBytes {
		return
	}

	growBy := DefaultSize
	if cap(b.B) > 4*DefaultSize {
		growBy = cap(b.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(b.B), len(b.B)+growBy)
	copy(newBuf, b.B)
	b.B = newBuf
}

// Write appends data to the buffer, growing it as needed. It
// implements io.Writer.
func (b *Buffer) Write(data []byte) (int, error) {
	b.Grow(len(data))
	b.B = append(b.B, data...)

	return len(data), nil
}

// WriteByte appends a single byte, growing the buffer as needed. It
// implements io.ByteWriter.
func (b *Buffer) WriteByte(c byte) error {
	b.Grow(1)
	b.B = append(b.B, c)

	return nil
}

// Reserve appends n zero bytes and returns the position at which they
// start, so the caller can come back later (via Overwrite) and
// back-patch them once the true value is known. This is how the
// framed frontend reserves the preamble's size slot before the
// payload length is known (§4.F, §9 "Buffer back-patching").
func (b *Buffer) Reserve(n int) int {
	pos := len(b.B)
	b.Grow(n)
	b.B = b.B[:pos+n]
	clear(b.B[pos:])

	return pos
}

// Overwrite replaces the bytes at [pos, pos+len(data)) with data.
// pos+len(data) must not exceed the current write cursor.
func (b *Buffer) Overwrite(pos int, data []byte) error {
	if pos < 0 || pos+len(data) > len(b.B) {
		return errs.ErrFrameTooLarge
	}
	copy(b.B[pos:pos+len(data)], data)

	return nil
}

// Slice returns the written bytes in [start, end). It never extends
// past the write cursor.
func (b *Buffer) Slice(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > len(b.B) {
		return nil, errs.ErrTruncated
	}

	return b.B[start:end], nil
}

// CopyTo streams the closed sub-range [start, end) to w without
// exposing the buffer's backing array to the caller. This is the
// tested invariant from spec §8: for every 0 <= start <= end <=
// length, the copied bytes equal buffer[start:end] and have length
// end-start.
func (b *Buffer) CopyTo(w io.Writer, start, end int) error {
	chunk, err := b.Slice(start, end)
	if err != nil {
		return err
	}
	_, err = w.Write(chunk)

	return err
}

// Pool is a sync.Pool-backed source of reusable Buffers: buffers
// larger than maxThreshold are discarded rather than retained, to
// avoid one oversized message bloating the pool for every subsequent
// message.
type Pool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewPool creates a Pool whose buffers start at defaultSize and are
// discarded (not retained) once they grow past maxThreshold.
func NewPool(defaultSize, maxThreshold int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any { return New(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get acquires a Buffer from the pool, allocating one if empty.
func (p *Pool) Get() *Buffer {
	buf, _ := p.pool.Get().(*Buffer)

	return buf
}

// Put returns buf to the pool for reuse, or discards it if it has
// grown beyond the pool's max threshold.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil {
		return
	}
	if p.maxThreshold > 0 && cap(buf.B) > p.maxThreshold {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}

// sizePrefixWidth is the number of bytes reserved for a back-patched
// length prefix: one header byte (0xC0|3) plus 3 little-endian size
// bytes, giving a 16MiB ceiling per sized region. Both the top-level
// frame preamble and inlined group sub-frames use this fixed
// reservation rather than a canonical-minimal one, trading a few
// spare bytes for the ability to back-patch in a single pass.
const sizePrefixWidth = 4

// WriteSized reserves a fixed-width length prefix, runs write to
// produce the payload, then back-patches the prefix with the payload's
// true length. It is the general form of the reserve-then-backpatch
// pattern used for the top-level frame preamble and for inlined
// static/dynamic group sub-frames alike.
func WriteSized(b *Buffer, write func() error) error {
	pos := b.Reserve(sizePrefixWidth)
	payloadStart := b.Len()

	if err := write(); err != nil {
		return err
	}

	size := b.Len() - payloadStart
	if size > 0xFFFFFF {
		return errs.ErrFrameTooLarge
	}

	return b.Overwrite(pos, []byte{0xC0 | 3, byte(size), byte(size >> 8), byte(size >> 16)})
}

var defaultPool = NewPool(DefaultSize, MaxThreshold)

// Acquire retrieves a Buffer from the package-level default pool.
// Callers must call Release when done, typically via defer, to ensure
// the lease is returned on every exit path per spec §5.
func Acquire() *Buffer {
	return defaultPool.Get()
}

// Release returns buf to the package-level default pool.
func Release(buf *Buffer) {
	defaultPool.Put(buf)
}
