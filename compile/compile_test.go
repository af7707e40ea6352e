package compile

import (
	"testing"

	"github.com/mbrannstrom/blinkcodec/binding"
	"github.com/mbrannstrom/blinkcodec/errs"
	"github.com/mbrannstrom/blinkcodec/internal/buffer"
	"github.com/mbrannstrom/blinkcodec/schema"
	"github.com/mbrannstrom/blinkcodec/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type car struct {
	Wheels int64  `blink:"wheels"`
	Name   string `blink:"name"`
}

func id(v uint64) *uint64 { return &v }

func buildCarSchema(t *testing.T) (*schema.Schema, *binding.ReflectBinding) {
	t.Helper()

	s, err := schema.New(
		schema.GroupDef{Name: "Car", ID: id(1), Fields: []schema.FieldDef{
			{Name: "wheels", ID: id(1), Type: schema.Int(32, false), Required: true},
			{Name: "name", ID: id(2), Type: schema.String(0)},
		}},
	)
	require.NoError(t, err)

	b := binding.NewReflectBinding()
	b.Register("Car", car{})

	return s, b
}

func TestCompile_SimpleGroup(t *testing.T) {
	s, b := buildCarSchema(t)

	instrs, err := Compile(s, b)
	require.NoError(t, err)
	require.Contains(t, instrs, "Car")
	assert.Len(t, instrs["Car"].Fields, 2)
}

func TestCompile_EncodeDecodeRoundTrip(t *testing.T) {
	s, b := buildCarSchema(t)
	instrs, err := Compile(s, b)
	require.NoError(t, err)

	gi := instrs["Car"]

	buf := buffer.New(64)
	src := &car{Wheels: 4, Name: "Delta"}
	require.NoError(t, gi.EncodeFields(buf, src, b))

	r := wire.NewReader(buf.Bytes())
	dst := &car{}
	require.NoError(t, gi.DecodeFields(r, dst, b))

	assert.Equal(t, int64(4), dst.Wheels)
	assert.Equal(t, "Delta", dst.Name)
}

func TestCompile_DuplicateFieldID(t *testing.T) {
	s, err := schema.New(
		schema.GroupDef{Name: "Base", Fields: []schema.FieldDef{
			{Name: "a", ID: id(1), Type: schema.Int(32, false)},
		}},
		schema.GroupDef{Name: "Derived", SuperGroup: "Base", Fields: []schema.FieldDef{
			{Name: "b", ID: id(1), Type: schema.Int(32, false)},
		}},
	)
	require.NoError(t, err)

	b := binding.NewReflectBinding()
	b.Register("Base", car{})
	b.Register("Derived", car{})

	_, err = Compile(s, b)
	assert.Error(t, err)
}

func TestCompile_DeprecatedFieldToleratesMissingRequired(t *testing.T) {
	s, err := schema.New(schema.GroupDef{Name: "Car", ID: id(1), Fields: []schema.FieldDef{
		{Name: "wheels", ID: id(1), Type: schema.Int(32, false), Required: true},
		{
			Name: "name", ID: id(2), Type: schema.String(0), Required: true,
			Annotations: map[string]string{"deprecated": "true"},
		},
	}})
	require.NoError(t, err)

	b := binding.NewReflectBinding()
	b.Register("Car", car{})

	instrs, err := Compile(s, b)
	require.NoError(t, err)

	gi := instrs["Car"]
	require.True(t, gi.Fields[1].Deprecated)

	buf := buffer.New(64)
	// name left as its zero value; ReflectBinding's accessor reports a
	// present empty string, not an absent value, so craft the decode
	// side directly: required+null must not fault when deprecated.
	require.NoError(t, wire.WriteUint(buf, 4)) // wheels = 4
	require.NoError(t, wire.WriteNull(buf))    // name = null

	r := wire.NewReader(buf.Bytes())
	dst := &car{}
	require.NoError(t, gi.DecodeFields(r, dst, b))
	assert.Equal(t, int64(4), dst.Wheels)
	assert.Equal(t, "", dst.Name)
}

func TestCompile_GroupIDFallsBackToAnnotation(t *testing.T) {
	s, err := schema.New(schema.GroupDef{
		Name: "Car", Annotations: map[string]string{"id": "42"},
		Fields: []schema.FieldDef{
			{Name: "wheels", ID: id(1), Type: schema.Int(32, false)},
		},
	})
	require.NoError(t, err)

	b := binding.NewReflectBinding()
	b.Register("Car", car{})

	instrs, err := Compile(s, b)
	require.NoError(t, err)

	gi := instrs["Car"]
	require.True(t, gi.HasID())
	assert.Equal(t, uint64(42), *gi.GroupID)
}

func TestCompile_DecodeUnsignedIntOverflowsDeclaredWidth(t *testing.T) {
	s, err := schema.New(schema.GroupDef{Name: "Car", ID: id(1), Fields: []schema.FieldDef{
		{Name: "wheels", ID: id(1), Type: schema.Int(8, false)},
	}})
	require.NoError(t, err)

	b := binding.NewReflectBinding()
	b.Register("Car", car{})

	instrs, err := Compile(s, b)
	require.NoError(t, err)

	gi := instrs["Car"]
	buf := buffer.New(64)
	require.NoError(t, wire.WriteUint(buf, 300)) // wheels: declared 8 bits, 300 overflows

	r := wire.NewReader(buf.Bytes())
	dst := &car{}
	err = gi.DecodeFields(r, dst, b)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrOverflow)
}

func TestCompile_DecodeSignedIntOverflowsDeclaredWidth(t *testing.T) {
	s, err := schema.New(schema.GroupDef{Name: "Car", ID: id(1), Fields: []schema.FieldDef{
		{Name: "wheels", ID: id(1), Type: schema.Int(8, true)},
	}})
	require.NoError(t, err)

	b := binding.NewReflectBinding()
	b.Register("Car", car{})

	instrs, err := Compile(s, b)
	require.NoError(t, err)

	gi := instrs["Car"]
	buf := buffer.New(64)
	require.NoError(t, wire.WriteInt(buf, 200)) // wheels: declared signed 8 bits, 200 overflows

	r := wire.NewReader(buf.Bytes())
	dst := &car{}
	err = gi.DecodeFields(r, dst, b)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrOverflow)
}
