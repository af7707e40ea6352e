package wire

import (
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/mbrannstrom/blinkcodec/endian"
	"github.com/mbrannstrom/blinkcodec/errs"
)

// floatEngine fixes the byte order used to frame IEEE-754 float bits on
// the wire. Blink mandates big-endian float framing regardless of host
// byte order, so this is pinned rather than using the native engine.
var floatEngine = endian.GetBigEndianEngine()

// Decimal is the Blink fixed-width decimal primitive: a signed 64-bit
// mantissa and an 8-bit exponent, representing mantissa * 10^exponent.
type Decimal struct {
	Mantissa int64
	Exponent int8
}

// WriteBool encodes a non-null boolean as unsigned VLC 0 or 1.
func WriteBool(w Writer, v bool) error {
	if v {
		return WriteUint(w, 1)
	}

	return WriteUint(w, 0)
}

// ReadBool decodes a nullable boolean. Any nonzero decoded value is
// treated as true, matching the rule that decoders accept non-
// canonical wider VLC forms without rejecting them.
func ReadBool(r *Reader) (value bool, isNull bool, err error) {
	v, isNull, err := ReadUint(r)
	if err != nil {
		return false, false, err
	}

	return v != 0, isNull, nil
}

// WriteFloat32 encodes v as a VLC length of 4 followed by 4
// big-endian IEEE-754 bytes, per spec §4.A.
func WriteFloat32(w Writer, v float32) error {
	if err := WriteUint(w, 4); err != nil {
		return err
	}
	var buf [4]byte
	floatEngine.PutUint32(buf[:], math.Float32bits(v))
	_, err := w.Write(buf[:])

	return err
}

// ReadFloat32 decodes a nullable float32.
func ReadFloat32(r *Reader) (value float32, isNull bool, err error) {
	n, isNull, err := ReadUint(r)
	if err != nil {
		return 0, false, err
	}
	if isNull {
		return 0, true, nil
	}
	if n != 4 {
		return 0, false, errs.ErrValueOutOfRange
	}
	data, err := r.ReadN(4)
	if err != nil {
		return 0, false, err
	}

	return math.Float32frombits(floatEngine.Uint32(data)), false, nil
}

// WriteFloat64 encodes v as a VLC length of 8 followed by 8
// big-endian IEEE-754 bytes, per spec §4.A.
func WriteFloat64(w Writer, v float64) error {
	if err := WriteUint(w, 8); err != nil {
		return err
	}
	var buf [8]byte
	floatEngine.PutUint64(buf[:], math.Float64bits(v))
	_, err := w.Write(buf[:])

	return err
}

// ReadFloat64 decodes a nullable float64.
func ReadFloat64(r *Reader) (value float64, isNull bool, err error) {
	n, isNull, err := ReadUint(r)
	if err != nil {
		return 0, false, err
	}
	if isNull {
		return 0, true, nil
	}
	if n != 8 {
		return 0, false, errs.ErrValueOutOfRange
	}
	data, err := r.ReadN(8)
	if err != nil {
		return 0, false, err
	}

	return math.Float64frombits(floatEngine.Uint64(data)), false, nil
}

// WriteDecimal encodes a non-null Decimal as a signed VLC exponent
// followed by a signed VLC mantissa.
func WriteDecimal(w Writer, d Decimal) error {
	if err := WriteInt(w, int64(d.Exponent)); err != nil {
		return err
	}

	return WriteInt(w, d.Mantissa)
}

// ReadDecimal decodes a nullable Decimal. Null is a single null byte
// in place of the exponent; the mantissa is absent in that case.
func ReadDecimal(r *Reader) (value Decimal, isNull bool, err error) {
	exp, isNull, err := ReadInt(r)
	if err != nil {
		return Decimal{}, false, err
	}
	if isNull {
		return Decimal{}, true, nil
	}
	if exp < math.MinInt8 || exp > math.MaxInt8 {
		return Decimal{}, false, errs.ErrValueOutOfRange
	}

	mantissa, mantissaNull, err := ReadInt(r)
	if err != nil {
		return Decimal{}, false, err
	}
	if mantissaNull {
		return Decimal{}, false, errs.ErrInvalidVlcHeader
	}

	return Decimal{Mantissa: mantissa, Exponent: int8(exp)}, false, nil
}

// WriteString encodes a non-null string as an unsigned VLC byte
// length followed by its UTF-8 bytes.
func WriteString(w Writer, s string) error {
	if err := WriteUint(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))

	return err
}

// ReadString decodes a nullable UTF-8 string.
func ReadString(r *Reader) (value string, isNull bool, err error) {
	n, isNull, err := ReadUint(r)
	if err != nil {
		return "", false, err
	}
	if isNull {
		return "", true, nil
	}
	data, err := r.ReadN(int(n))
	if err != nil {
		return "", false, err
	}
	if !utf8.Valid(data) {
		return "", false, errs.ErrInvalidUtf8
	}

	return string(data), false, nil
}

// WriteBinary encodes a non-null byte slice as an unsigned VLC byte
// length followed by the raw bytes.
func WriteBinary(w Writer, data []byte) error {
	if err := WriteUint(w, uint64(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)

	return err
}

// ReadBinary decodes a nullable byte slice. The returned slice owns
// its storage (copied out of the source), matching the non-goal of
// zero-copy borrowed decoding.
func ReadBinary(r *Reader) (value []byte, isNull bool, err error) {
	n, isNull, err := ReadUint(r)
	if err != nil {
		return nil, false, err
	}
	if isNull {
		return nil, true, nil
	}
	data, err := r.ReadN(int(n))
	if err != nil {
		return nil, false, err
	}
	owned := make([]byte, len(data))
	copy(owned, data)

	return owned, false, nil
}

// WriteTime encodes a non-null timestamp as the unsigned VLC tick
// count in the field's declared unit since its declared epoch. The
// caller (schema/compile layer) is responsible for converting a
// time.Time to ticks using the TypeDef's unit/epoch/zone.
func WriteTime(w Writer, ticks uint64) error {
	return WriteUint(w, ticks)
}

// ReadTime decodes a nullable timestamp's raw tick count.
func ReadTime(r *Reader) (ticks uint64, isNull bool, err error) {
	return ReadUint(r)
}

// WriteEnum encodes a non-null enum symbol's i32 value as signed VLC.
func WriteEnum(w Writer, v int32) error {
	return WriteInt(w, int64(v))
}

// ReadEnum decodes a nullable enum i32 value, without validating
// symbol membership — package compile's enum value codec rejects
// values that name no symbol of the field's Enum type.
func ReadEnum(r *Reader) (value int32, isNull bool, err error) {
	v, isNull, err := ReadInt(r)
	if err != nil {
		return 0, false, err
	}
	if isNull {
		return 0, true, nil
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false, errs.ErrValueOutOfRange
	}

	return int32(v), false, nil
}

// WriteBigInt encodes a non-nil *big.Int using the same signed VLC
// frame as WriteInt. Canonical encoders reject magnitudes that would
// need more than 8 bytes (spec §4.A "canonical encoders SHOULD reject
// > 8 bytes").
func WriteBigInt(w Writer, v *big.Int) error {
	if v == nil {
		return WriteNull(w)
	}
	if !v.IsInt64() {
		return errs.ErrValueOutOfRange
	}

	return WriteInt(w, v.Int64())
}

// ReadBigInt decodes a nullable big integer of arbitrary declared
// width (decoders MUST accept any declared length up to the remaining
// buffer, per spec §4.A).
func ReadBigInt(r *Reader) (value *big.Int, isNull bool, err error) {
	b0, err := r.ReadByte()
	if err != nil {
		return nil, false, err
	}

	switch {
	case b0 < 0x80:
		v := int64(b0)
		if v >= 0x40 {
			v -= 0x80
		}

		return big.NewInt(v), false, nil
	case b0 < 0xC0:
		b1, err := r.ReadByte()
		if err != nil {
			return nil, false, err
		}
		uv := uint16(b0&0x3F) | (uint16(b1) << 6)
		v := int64(uv)
		if uv >= 0x2000 {
			v -= 0x4000
		}

		return big.NewInt(v), false, nil
	default:
		n := int(b0 & 0x3F)
		if n == 0 {
			return nil, true, nil
		}
		data, err := r.ReadN(n)
		if err != nil {
			return nil, false, err
		}

		return leBytesToSignedBigInt(data), false, nil
	}
}

// leBytesToSignedBigInt interprets data as a little-endian two's-
// complement signed integer of arbitrary width.
func leBytesToSignedBigInt(data []byte) *big.Int {
	n := len(data)
	be := make([]byte, n)
	for i, b := range data {
		be[n-1-i] = b
	}

	if be[0]&0x80 == 0 {
		return new(big.Int).SetBytes(be)
	}

	inv := make([]byte, n)
	for i, b := range be {
		inv[i] = ^b
	}
	magnitude := new(big.Int).SetBytes(inv)
	magnitude.Add(magnitude, big.NewInt(1))

	return magnitude.Neg(magnitude)
}

// BigDecimal is the arbitrary-precision decimal primitive: an
// arbitrary-width signed mantissa and a signed 32-bit exponent,
// representing mantissa * 10^exponent.
type BigDecimal struct {
	Mantissa *big.Int
	Exponent int32
}

// WriteBigDecimal encodes a non-null BigDecimal as a signed VLC
// exponent followed by the BigInt mantissa frame.
func WriteBigDecimal(w Writer, d BigDecimal) error {
	if err := WriteInt(w, int64(d.Exponent)); err != nil {
		return err
	}

	return WriteBigInt(w, d.Mantissa)
}

// ReadBigDecimal decodes a nullable BigDecimal.
func ReadBigDecimal(r *Reader) (value BigDecimal, isNull bool, err error) {
	exp, isNull, err := ReadInt(r)
	if err != nil {
		return BigDecimal{}, false, err
	}
	if isNull {
		return BigDecimal{}, true, nil
	}
	if exp < math.MinInt32 || exp > math.MaxInt32 {
		return BigDecimal{}, false, errs.ErrValueOutOfRange
	}

	mantissa, mantissaNull, err := ReadBigInt(r)
	if err != nil {
		return BigDecimal{}, false, err
	}
	if mantissaNull {
		return BigDecimal{}, false, errs.ErrInvalidVlcHeader
	}

	return BigDecimal{Mantissa: mantissa, Exponent: int32(exp)}, false, nil
}

// FitsUnsigned reports whether v fits in an unsigned integer of the
// given bit width, used by the field codec compiler to validate
// Int{N, signed:false} fields at encode time.
func FitsUnsigned(v uint64, bits int) bool {
	if bits >= 64 {
		return true
	}

	return v < (uint64(1) << uint(bits))
}

// FitsSigned reports whether v fits in a signed two's-complement
// integer of the given bit width, used for Int{N, signed:true}
// fields.
func FitsSigned(v int64, bits int) bool {
	if bits >= 64 {
		return true
	}
	lo := int64(-1) << uint(bits-1)
	hi := -lo - 1

	return v >= lo && v <= hi
}
