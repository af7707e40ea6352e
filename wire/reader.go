package wire

import (
	"github.com/mbrannstrom/blinkcodec/errs"
)

// Reader is a bounded, position-tracking view over a decoded frame's
// payload bytes. It never reads past its own slice, which is how the
// framed frontend (package codec) enforces the declared frame size:
// the Reader it hands to field decoders is already sliced to length.
type Reader struct {
	Data []byte
	Pos  int
}

// NewReader wraps data for sequential primitive decoding.
func NewReader(data []byte) *Reader {
	return &Reader{Data: data}
}

// Remaining reports how many unread bytes are left in the view.
func (r *Reader) Remaining() int {
	return len(r.Data) - r.Pos
}

// ReadByte returns the next byte and advances the cursor.
func (r *Reader) ReadByte() (byte, error) {
	if r.Pos >= len(r.Data) {
		return 0, errs.ErrTruncated
	}
	b := r.Data[r.Pos]
	r.Pos++

	return b, nil
}

// ReadN returns the next n bytes and advances the cursor.
func (r *Reader) ReadN(n int) ([]byte, error) {
	if n < 0 || r.Pos+n > len(r.Data) {
		return nil, errs.ErrTruncated
	}
	b := r.Data[r.Pos : r.Pos+n]
	r.Pos += n

	return b, nil
}

// Skip advances the cursor by n bytes without returning them, used to
// discard unknown trailing fields for forward compatibility.
func (r *Reader) Skip(n int) error {
	if n < 0 || r.Pos+n > len(r.Data) {
		return errs.ErrTruncated
	}
	r.Pos += n

	return nil
}
