package wire

import (
	"io"

	"github.com/mbrannstrom/blinkcodec/errs"
)

// Writer is the minimal sink primitive encoders write into. It
// combines the two stdlib interfaces an append-only, pooled buffer
// already satisfies, following the same composition idiom package
// endian uses to merge binary.ByteOrder and binary.AppendByteOrder
// into one EndianEngine.
type Writer interface {
	io.Writer
	io.ByteWriter
}

// NullByte is the single-byte encoding of a nullable primitive's null
// value: the length-prefixed VLC frame header 0xC0 with n=0.
const NullByte byte = 0xC0

// maxLenPrefixedBytes is the largest byte count the length-prefixed
// VLC frame header can declare (0xC0 | n, n in 1..8 for fixed-width
// 64-bit integers; BigInt decoding tolerates wider n, see ReadBigInt).
const maxLenPrefixedBytes = 8

// WriteNull writes the explicit null marker for any nullable field.
func WriteNull(w Writer) error {
	return w.WriteByte(NullByte)
}

// WriteUint encodes v using the canonical (minimum-length) unsigned
// VLC form described in spec §4.A.
func WriteUint(w Writer, v uint64) error {
	switch {
	case v <= 0x7F:
		return w.WriteByte(byte(v))
	case v <= 0x3FFF:
		if err := w.WriteByte(byte(v&0x3F) | 0x80); err != nil {
			return err
		}

		return w.WriteByte(byte(v >> 6))
	default:
		n := minBytesUnsigned(v)
		if err := w.WriteByte(0xC0 | byte(n)); err != nil {
			return err
		}
		buf := make([]byte, n)
		for i := range n {
			buf[i] = byte(v >> (8 * uint(i)))
		}
		_, err := w.Write(buf)

		return err
	}
}

// WriteInt encodes v using the canonical signed VLC form described in
// spec §4.A. The one- and two-byte forms hold 7- and 14-bit signed
// values respectively; wider values use the length-prefixed form,
// sign-extended on decode from the most significant encoded bit.
func WriteInt(w Writer, v int64) error {
	switch {
	case v >= -64 && v <= 63:
		return w.WriteByte(byte(v) & 0x7F)
	case v >= -8192 && v <= 8191:
		uv := uint16(v) & 0x3FFF //nolint:gosec
		if err := w.WriteByte(byte(uv&0x3F) | 0x80); err != nil {
			return err
		}

		return w.WriteByte(byte(uv >> 6))
	default:
		n := minBytesSigned(v)
		if err := w.WriteByte(0xC0 | byte(n)); err != nil {
			return err
		}
		buf := make([]byte, n)
		uv := uint64(v)
		for i := range n {
			buf[i] = byte(uv >> (8 * uint(i)))
		}
		_, err := w.Write(buf)

		return err
	}
}

// minBytesUnsigned returns the minimum byte count (1..8) needed to
// hold v as a little-endian unsigned integer.
func minBytesUnsigned(v uint64) int {
	n := 1
	for v>>(8*uint(n)) != 0 {
		n++
	}

	return n
}

// minBytesSigned returns the minimum byte count (1..8) needed to hold
// v as a little-endian two's-complement integer such that sign
// extension from the top byte reproduces v.
func minBytesSigned(v int64) int {
	n := 1
	for {
		lo := int64(-1) << (8*uint(n) - 1)
		hi := -lo - 1
		if v >= lo && v <= hi {
			return n
		}
		n++
		if n > 8 {
			return 8
		}
	}
}

// ReadUint decodes an unsigned VLC value. A returned isNull of true
// means the frame was the null marker 0xC0; value is always 0 in that
// case.
func ReadUint(r *Reader) (value uint64, isNull bool, err error) {
	b0, err := r.ReadByte()
	if err != nil {
		return 0, false, err
	}

	switch {
	case b0 < 0x80:
		return uint64(b0), false, nil
	case b0 < 0xC0:
		b1, err := r.ReadByte()
		if err != nil {
			return 0, false, err
		}

		return uint64(b0&0x3F) | (uint64(b1) << 6), false, nil
	default:
		n := int(b0 & 0x3F)
		if n == 0 {
			return 0, true, nil
		}
		if n > maxLenPrefixedBytes {
			return 0, false, errs.ErrValueOutOfRange
		}
		data, err := r.ReadN(n)
		if err != nil {
			return 0, false, err
		}
		var v uint64
		for i := n - 1; i >= 0; i-- {
			v = (v << 8) | uint64(data[i])
		}

		return v, false, nil
	}
}

// ReadUintStream decodes an unsigned VLC value one byte at a time from
// a plain io.ByteReader, for callers that cannot slice a fixed region
// out of a stream before knowing how wide the value is — the framed
// frontend's preamble size, read before any payload bytes are known to
// exist. A returned isNull of true means the null marker frame 0xC0;
// an io.EOF returned before any byte is consumed signals a clean end
// of stream rather than a truncation fault.
func ReadUintStream(br io.ByteReader) (value uint64, isNull bool, err error) {
	b0, err := br.ReadByte()
	if err != nil {
		return 0, false, err
	}

	switch {
	case b0 < 0x80:
		return uint64(b0), false, nil
	case b0 < 0xC0:
		b1, err := br.ReadByte()
		if err != nil {
			return 0, false, err
		}

		return uint64(b0&0x3F) | (uint64(b1) << 6), false, nil
	default:
		n := int(b0 & 0x3F)
		if n == 0 {
			return 0, true, nil
		}
		if n > maxLenPrefixedBytes {
			return 0, false, errs.ErrValueOutOfRange
		}
		var v uint64
		for i := 0; i < n; i++ {
			b, err := br.ReadByte()
			if err != nil {
				return 0, false, err
			}
			v |= uint64(b) << (8 * uint(i))
		}

		return v, false, nil
	}
}

// ReadInt decodes a signed VLC value, sign-extending the
// length-prefixed form from its most significant encoded bit.
func ReadInt(r *Reader) (value int64, isNull bool, err error) {
	b0, err := r.ReadByte()
	if err != nil {
		return 0, false, err
	}

	switch {
	case b0 < 0x80:
		// 7-bit signed: bit 6 is the sign bit.
		v := int64(b0)
		if v >= 0x40 {
			v -= 0x80
		}

		return v, false, nil
	case b0 < 0xC0:
		b1, err := r.ReadByte()
		if err != nil {
			return 0, false, err
		}
		uv := uint16(b0&0x3F) | (uint16(b1) << 6)
		v := int64(uv)
		if uv >= 0x2000 {
			v -= 0x4000
		}

		return v, false, nil
	default:
		n := int(b0 & 0x3F)
		if n == 0 {
			return 0, true, nil
		}
		if n > maxLenPrefixedBytes {
			return 0, false, errs.ErrValueOutOfRange
		}
		data, err := r.ReadN(n)
		if err != nil {
			return 0, false, err
		}
		var uv uint64
		for i := n - 1; i >= 0; i-- {
			uv = (uv << 8) | uint64(data[i])
		}
		// sign-extend from bit (8n - 1)
		shift := uint(64 - 8*n)
		v := int64(uv<<shift) >> shift

		return v, false, nil
	}
}
