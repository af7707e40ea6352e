package compile

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/mbrannstrom/blinkcodec/binding"
	"github.com/mbrannstrom/blinkcodec/errs"
	"github.com/mbrannstrom/blinkcodec/internal/buffer"
	"github.com/mbrannstrom/blinkcodec/wire"
)

// EncodeFields writes gi's flattened fields from obj into buf, in
// declared order. b resolves the concrete subgroup of any dynamic
// reference encountered along the way.
func (gi *GroupInstructions) EncodeFields(buf *buffer.Buffer, obj any, b binding.Binding) error {
	for _, f := range gi.Fields {
		value, present := f.Accessor.Get(obj)
		if !present {
			if f.Required {
				return fmt.Errorf("field %q: %w", f.Name, errs.ErrMissingRequired)
			}
			if err := wire.WriteNull(buf); err != nil {
				return err
			}

			continue
		}

		if err := EncodeValue(buf, f.Codec, value, b); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}

	return nil
}

// EncodeValue writes one non-null value according to vc.
func EncodeValue(buf *buffer.Buffer, vc ValueCodec, value any, b binding.Binding) error {
	switch vc.Kind {
	case KindPrimitive:
		return encodePrimitive(buf, vc.Primitive, value)

	case KindEnum:
		v, err := enumValueOf(vc, value)
		if err != nil {
			return err
		}

		return wire.WriteEnum(buf, v)

	case KindStaticGroup:
		return buffer.WriteSized(buf, func() error {
			return vc.Group.EncodeFields(buf, value, b)
		})

	case KindDynamicGroup:
		key, ok := b.GroupTypeOf(value)
		if !ok {
			return errs.ErrUnknownGroupType
		}
		gi, ok := vc.ValidByType[key]
		if !ok {
			return errs.ErrDynamicGroupTypeNotAllowed
		}

		return buffer.WriteSized(buf, func() error {
			if err := wire.WriteUint(buf, *gi.GroupID); err != nil {
				return err
			}

			return gi.EncodeFields(buf, value, b)
		})

	case KindSequenceOfPrimitive, KindSequenceOfGroup:
		return encodeSequence(buf, vc, value, b)

	default:
		return fmt.Errorf("compile: unhandled value codec kind %d", vc.Kind)
	}
}

func encodeSequence(buf *buffer.Buffer, vc ValueCodec, value any, b binding.Binding) error {
	elems, err := asSlice(value)
	if err != nil {
		return err
	}

	if err := wire.WriteUint(buf, uint64(len(elems))); err != nil {
		return err
	}
	for _, elem := range elems {
		if err := EncodeValue(buf, *vc.Element, elem, b); err != nil {
			return err
		}
	}

	return nil
}

func enumValueOf(vc ValueCodec, value any) (int32, error) {
	switch v := value.(type) {
	case int32:
		return v, nil
	case string:
		n, ok := vc.EnumValues[v]
		if !ok {
			return 0, errs.ErrInvalidEnumValue
		}

		return n, nil
	default:
		return 0, errs.ErrInvalidEnumValue
	}
}

func encodePrimitive(buf *buffer.Buffer, shape PrimitiveShape, value any) error {
	switch shape.Shape {
	case "int":
		return encodeInt(buf, shape, value)
	case "float":
		return encodeFloat(buf, shape, value)
	case "decimal":
		d, ok := value.(wire.Decimal)
		if !ok {
			return errs.ErrValueOutOfRange
		}

		return wire.WriteDecimal(buf, d)
	case "bigint":
		v, ok := value.(*big.Int)
		if !ok {
			return errs.ErrValueOutOfRange
		}

		return wire.WriteBigInt(buf, v)
	case "bigdecimal":
		d, ok := value.(wire.BigDecimal)
		if !ok {
			return errs.ErrValueOutOfRange
		}

		return wire.WriteBigDecimal(buf, d)
	case "bool":
		v, ok := value.(bool)
		if !ok {
			return errs.ErrValueOutOfRange
		}

		return wire.WriteBool(buf, v)
	case "string":
		v, ok := value.(string)
		if !ok {
			return errs.ErrValueOutOfRange
		}

		return wire.WriteString(buf, v)
	case "binary":
		v, ok := value.([]byte)
		if !ok {
			return errs.ErrValueOutOfRange
		}

		return wire.WriteBinary(buf, v)
	case "time":
		v, ok := value.(uint64)
		if !ok {
			return errs.ErrValueOutOfRange
		}

		return wire.WriteTime(buf, v)
	default:
		return fmt.Errorf("compile: unknown primitive shape %q", shape.Shape)
	}
}

func encodeInt(buf *buffer.Buffer, shape PrimitiveShape, value any) error {
	if shape.Signed {
		v, err := toInt64(value)
		if err != nil {
			return err
		}
		if !wire.FitsSigned(v, shape.IntBits) {
			return errs.ErrValueOutOfRange
		}

		return wire.WriteInt(buf, v)
	}

	v, err := toUint64(value)
	if err != nil {
		return err
	}
	if !wire.FitsUnsigned(v, shape.IntBits) {
		return errs.ErrValueOutOfRange
	}

	return wire.WriteUint(buf, v)
}

func encodeFloat(buf *buffer.Buffer, shape PrimitiveShape, value any) error {
	v, err := toFloat64(value)
	if err != nil {
		return err
	}
	if shape.FloatBits == 32 {
		return wire.WriteFloat32(buf, float32(v))
	}

	return wire.WriteFloat64(buf, v)
}

// toFloat64 widens value to float64 regardless of whether the host
// field is declared float32 or float64.
func toFloat64(value any) (float64, error) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	default:
		return 0, errs.ErrValueOutOfRange
	}
}

// toInt64 widens value to int64 regardless of its host field's declared
// Go width or signedness: a schema.Int(N, true) field may be bound to
// any of int, int8..int64, or even an unsigned Go type when the host
// struct's own width doesn't match the schema's signedness.
func toInt64(value any) (int64, error) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), nil
	default:
		return 0, errs.ErrValueOutOfRange
	}
}

// toUint64 is toInt64's unsigned counterpart.
func toUint64(value any) (uint64, error) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(rv.Int()), nil
	default:
		return 0, errs.ErrValueOutOfRange
	}
}
