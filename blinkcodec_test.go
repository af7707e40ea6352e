package blinkcodec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mbrannstrom/blinkcodec/binding"
	"github.com/mbrannstrom/blinkcodec/compress"
	"github.com/mbrannstrom/blinkcodec/schema"
)

type order struct {
	ID     int64  `blink:"id"`
	Symbol string `blink:"symbol"`
}

func buildOrderSchema(t *testing.T) (*schema.Schema, *binding.ReflectBinding) {
	t.Helper()

	s, err := schema.New(schema.GroupDef{
		Name: "Order", ID: GroupID(1),
		Fields: []schema.FieldDef{
			{Name: "id", ID: GroupID(1), Type: schema.Int(64, false), Required: true},
			{Name: "symbol", ID: GroupID(2), Type: schema.String(0), Required: true},
		},
	})
	require.NoError(t, err)

	b := binding.NewReflectBinding()
	b.Register("Order", order{})

	return s, b
}

// TestNew verifies the top-level convenience constructor wires a
// schema all the way through to a usable Codec.
func TestNew(t *testing.T) {
	s, b := buildOrderSchema(t)

	c, err := New(s, b)
	require.NoError(t, err)
	require.NotNil(t, c)
}

// TestNew_EncodeDecodeRoundTrip exercises the Codec New returns
// against an actual message.
func TestNew_EncodeDecodeRoundTrip(t *testing.T) {
	s, b := buildOrderSchema(t)

	c, err := New(s, b)
	require.NoError(t, err)

	var buf bytes.Buffer
	src := &order{ID: 42, Symbol: "ACME"}
	require.NoError(t, c.Encode(&buf, src))

	got, err := c.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, src, got)
}

// TestNew_WithFrameCompression verifies the top-level option wrapper
// reaches the underlying codec option.
func TestNew_WithFrameCompression(t *testing.T) {
	s, b := buildOrderSchema(t)

	c, err := New(s, b, WithFrameCompression(compress.NewZstdCompressor()))
	require.NoError(t, err)

	var buf bytes.Buffer
	src := &order{ID: 7, Symbol: "XYZ"}
	require.NoError(t, c.Encode(&buf, src))

	got, err := c.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, src, got)
}

// TestNew_CompileErrorPropagates verifies a schema-level error from
// compile.Compile surfaces through New rather than panicking.
func TestNew_CompileErrorPropagates(t *testing.T) {
	s, err := schema.New(
		schema.GroupDef{Name: "Base", Fields: []schema.FieldDef{
			{Name: "a", ID: GroupID(1), Type: schema.Int(32, false)},
		}},
		schema.GroupDef{Name: "Derived", SuperGroup: "Base", Fields: []schema.FieldDef{
			{Name: "b", ID: GroupID(1), Type: schema.Int(32, false)},
		}},
	)
	require.NoError(t, err)

	b := binding.NewReflectBinding()
	b.Register("Base", order{})
	b.Register("Derived", order{})

	_, err = New(s, b)
	require.Error(t, err)
}
