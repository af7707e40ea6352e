package wire

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBool_ConcreteScenarios(t *testing.T) {
	w := &byteWriter{}
	require.NoError(t, WriteNull(w))
	require.NoError(t, WriteBool(w, true))
	require.NoError(t, WriteBool(w, false))
	assert.Equal(t, []byte{0xC0, 0x01, 0x00}, w.buf)

	r := NewReader(w.buf)
	_, isNull, err := ReadBool(r)
	require.NoError(t, err)
	assert.True(t, isNull)

	v, isNull, err := ReadBool(r)
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.True(t, v)

	v, isNull, err = ReadBool(r)
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.False(t, v)
}

func TestString_ConcreteScenarios(t *testing.T) {
	tests := []struct {
		name string
		s    string
		null bool
		want []byte
	}{
		{"abc", "abc", false, []byte{0x03, 'a', 'b', 'c'}},
		{"empty", "", false, []byte{0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &byteWriter{}
			require.NoError(t, WriteString(w, tt.s))
			assert.Equal(t, tt.want, w.buf)

			r := NewReader(w.buf)
			got, isNull, err := ReadString(r)
			require.NoError(t, err)
			assert.False(t, isNull)
			assert.Equal(t, tt.s, got)
		})
	}

	w := &byteWriter{}
	require.NoError(t, WriteNull(w))
	assert.Equal(t, []byte{0xC0}, w.buf)
	r := NewReader(w.buf)
	_, isNull, err := ReadString(r)
	require.NoError(t, err)
	assert.True(t, isNull)
}

func TestString_InvalidUtf8(t *testing.T) {
	w := &byteWriter{}
	require.NoError(t, WriteUint(w, 2))
	w.buf = append(w.buf, 0xFF, 0xFE)

	r := NewReader(w.buf)
	_, _, err := ReadString(r)
	assert.Error(t, err)
}

func TestFloat32_RoundTrip(t *testing.T) {
	values := []float32{0, 1.5, -1.5, 3.14159, -0.0}
	for _, v := range values {
		w := &byteWriter{}
		require.NoError(t, WriteFloat32(w, v))
		assert.Equal(t, 5, len(w.buf))

		r := NewReader(w.buf)
		got, isNull, err := ReadFloat32(r)
		require.NoError(t, err)
		assert.False(t, isNull)
		assert.Equal(t, v, got)
	}
}

func TestFloat64_NullRoundTrip(t *testing.T) {
	w := &byteWriter{}
	require.NoError(t, WriteNull(w))
	assert.Equal(t, []byte{0xC0}, w.buf)

	r := NewReader(w.buf)
	_, isNull, err := ReadFloat64(r)
	require.NoError(t, err)
	assert.True(t, isNull)
}

func TestDecimal_RoundTrip(t *testing.T) {
	d := Decimal{Mantissa: 12345, Exponent: -2}
	w := &byteWriter{}
	require.NoError(t, WriteDecimal(w, d))

	r := NewReader(w.buf)
	got, isNull, err := ReadDecimal(r)
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.Equal(t, d, got)
}

func TestBigInt_RoundTrip(t *testing.T) {
	values := []*big.Int{big.NewInt(0), big.NewInt(-1), big.NewInt(1 << 40), big.NewInt(-(1 << 40))}
	for _, v := range values {
		w := &byteWriter{}
		require.NoError(t, WriteBigInt(w, v))

		r := NewReader(w.buf)
		got, isNull, err := ReadBigInt(r)
		require.NoError(t, err)
		assert.False(t, isNull)
		assert.Equal(t, 0, v.Cmp(got))
	}
}

func TestBigInt_Null(t *testing.T) {
	w := &byteWriter{}
	require.NoError(t, WriteBigInt(w, nil))

	r := NewReader(w.buf)
	got, isNull, err := ReadBigInt(r)
	require.NoError(t, err)
	assert.True(t, isNull)
	assert.Nil(t, got)
}

func TestBigInt_WideDeclaredWidth(t *testing.T) {
	// Decoder must accept declared widths beyond the 8-byte canonical cap.
	w := &byteWriter{}
	require.NoError(t, w.WriteByte(0xC0|12))
	data := make([]byte, 12)
	data[11] = 0x00 // positive sign
	data[0] = 0x2A
	_, err := w.Write(data)
	require.NoError(t, err)

	r := NewReader(w.buf)
	got, isNull, err := ReadBigInt(r)
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.Equal(t, int64(0x2A), got.Int64())
}

func TestBigDecimal_RoundTrip(t *testing.T) {
	d := BigDecimal{Mantissa: big.NewInt(1 << 40), Exponent: -5}
	w := &byteWriter{}
	require.NoError(t, WriteBigDecimal(w, d))

	r := NewReader(w.buf)
	got, isNull, err := ReadBigDecimal(r)
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.Equal(t, d.Exponent, got.Exponent)
	assert.Equal(t, 0, d.Mantissa.Cmp(got.Mantissa))
}

func TestBigDecimal_Null(t *testing.T) {
	w := &byteWriter{}
	require.NoError(t, WriteNull(w))

	r := NewReader(w.buf)
	_, isNull, err := ReadBigDecimal(r)
	require.NoError(t, err)
	assert.True(t, isNull)
}

func TestEnum_RoundTrip(t *testing.T) {
	w := &byteWriter{}
	require.NoError(t, WriteEnum(w, -7))

	r := NewReader(w.buf)
	got, isNull, err := ReadEnum(r)
	require.NoError(t, err)
	assert.False(t, isNull)
	assert.Equal(t, int32(-7), got)
}

func TestFitsSignedUnsigned(t *testing.T) {
	assert.True(t, FitsUnsigned(255, 8))
	assert.False(t, FitsUnsigned(256, 8))
	assert.True(t, FitsSigned(127, 8))
	assert.False(t, FitsSigned(128, 8))
	assert.True(t, FitsSigned(-128, 8))
	assert.False(t, FitsSigned(-129, 8))
}
