package compile

import (
	"testing"

	"github.com/mbrannstrom/blinkcodec/binding"
	"github.com/mbrannstrom/blinkcodec/internal/buffer"
	"github.com/mbrannstrom/blinkcodec/schema"
	"github.com/mbrannstrom/blinkcodec/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stopList struct {
	Stops []any `blink:"stops"`
}

func TestCompile_SequenceOfPrimitiveRoundTrip(t *testing.T) {
	s, err := schema.New(
		schema.GroupDef{Name: "StopList", Fields: []schema.FieldDef{
			{Name: "stops", ID: id(1), Type: schema.Sequence(schema.Int(32, false))},
		}},
	)
	require.NoError(t, err)

	b := binding.NewReflectBinding()
	b.Register("StopList", stopList{})

	instrs, err := Compile(s, b)
	require.NoError(t, err)

	gi := instrs["StopList"]
	buf := buffer.New(64)
	src := &stopList{Stops: []any{uint64(1), uint64(2), uint64(3)}}
	require.NoError(t, gi.EncodeFields(buf, src, b))

	dst := &stopList{}
	require.NoError(t, gi.DecodeFields(wire.NewReader(buf.Bytes()), dst, b))
	require.Len(t, dst.Stops, 3)
	assert.Equal(t, uint64(1), dst.Stops[0])
	assert.Equal(t, uint64(3), dst.Stops[2])
}

func TestCompile_SequenceOfGroupRoundTrip(t *testing.T) {
	s, b := buildStaticGroupSchema(t)
	s2, err := schema.New(append(s.Groups, schema.GroupDef{
		Name: "Garage", Fields: []schema.FieldDef{
			{Name: "engines", ID: id(1), Type: schema.Sequence(schema.Reference("Engine"))},
		},
	})...)
	require.NoError(t, err)

	rb := b.(*binding.ReflectBinding)
	rb.Register("Garage", struct {
		Engines []any `blink:"engines"`
	}{})

	instrs, err := Compile(s2, b)
	require.NoError(t, err)

	gi := instrs["Garage"]
	buf := buffer.New(64)
	src := &struct {
		Engines []any `blink:"engines"`
	}{Engines: []any{&engine{Horsepower: 100}, &engine{Horsepower: 200}}}
	require.NoError(t, gi.EncodeFields(buf, src, b))

	dst := &struct {
		Engines []any `blink:"engines"`
	}{}
	require.NoError(t, gi.DecodeFields(wire.NewReader(buf.Bytes()), dst, b))
	require.Len(t, dst.Engines, 2)
	first, ok := dst.Engines[0].(*engine)
	require.True(t, ok)
	assert.Equal(t, int64(100), first.Horsepower)
}
