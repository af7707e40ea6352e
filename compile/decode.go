package compile

import (
	"fmt"

	"github.com/mbrannstrom/blinkcodec/binding"
	"github.com/mbrannstrom/blinkcodec/errs"
	"github.com/mbrannstrom/blinkcodec/wire"
)

// DecodeFields reads gi's flattened fields from r into obj, in
// declared order. b allocates nested group instances encountered
// along the way.
func (gi *GroupInstructions) DecodeFields(r *wire.Reader, obj any, b binding.Binding) error {
	for _, f := range gi.Fields {
		value, present, err := DecodeValue(r, f.Codec, b)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		if !present && f.Required && !f.Deprecated {
			return fmt.Errorf("field %q: %w", f.Name, errs.ErrMissingRequired)
		}

		f.Accessor.Set(obj, value, present)
	}

	return nil
}

// DecodeValue reads one nullable value according to vc. present is
// false exactly when the wire encoded null.
func DecodeValue(r *wire.Reader, vc ValueCodec, b binding.Binding) (value any, present bool, err error) {
	switch vc.Kind {
	case KindPrimitive:
		return decodePrimitive(r, vc.Primitive)

	case KindEnum:
		v, isNull, err := wire.ReadEnum(r)
		if err != nil {
			return nil, false, err
		}
		if isNull {
			return nil, false, nil
		}
		if _, ok := vc.EnumNames[v]; !ok {
			return nil, false, errs.ErrInvalidEnumValue
		}

		return v, true, nil

	case KindStaticGroup:
		sub, isNull, err := readSizedRegion(r)
		if err != nil || isNull {
			return nil, false, err
		}

		obj, err := b.Factory(vc.Group.GroupName)
		if err != nil {
			return nil, false, err
		}
		if err := vc.Group.DecodeFields(sub, obj, b); err != nil {
			return nil, false, err
		}

		return obj, true, nil

	case KindDynamicGroup:
		sub, isNull, err := readSizedRegion(r)
		if err != nil || isNull {
			return nil, false, err
		}

		groupID, idIsNull, err := wire.ReadUint(sub)
		if err != nil {
			return nil, false, err
		}
		if idIsNull {
			return nil, false, errs.ErrInvalidVlcHeader
		}

		gi, ok := vc.ValidByID[groupID]
		if !ok {
			return nil, false, errs.ErrDynamicGroupTypeNotAllowed
		}

		obj, err := b.Factory(gi.GroupName)
		if err != nil {
			return nil, false, err
		}
		if err := gi.DecodeFields(sub, obj, b); err != nil {
			return nil, false, err
		}

		return obj, true, nil

	case KindSequenceOfPrimitive, KindSequenceOfGroup:
		return decodeSequence(r, vc, b)

	default:
		return nil, false, fmt.Errorf("compile: unhandled value codec kind %d", vc.Kind)
	}
}

// readSizedRegion reads an unsigned VLC size prefix and, if non-null,
// splits off the next n bytes as an independent bounded Reader. Null
// is reported exactly like any other nullable primitive: a bare 0xC0
// byte, i.e. an unsigned VLC with declared byte-length 0.
func readSizedRegion(r *wire.Reader) (region *wire.Reader, isNull bool, err error) {
	size, isNull, err := wire.ReadUint(r)
	if err != nil {
		return nil, false, err
	}
	if isNull {
		return nil, true, nil
	}

	data, err := r.ReadN(int(size))
	if err != nil {
		return nil, false, err
	}

	return wire.NewReader(data), false, nil
}

func decodeSequence(r *wire.Reader, vc ValueCodec, b binding.Binding) (any, bool, error) {
	n, isNull, err := wire.ReadUint(r)
	if err != nil {
		return nil, false, err
	}
	if isNull {
		return nil, false, nil
	}

	elems := make([]any, 0, n)
	for i := uint64(0); i < n; i++ {
		val, present, err := DecodeValue(r, *vc.Element, b)
		if err != nil {
			return nil, false, err
		}
		if !present {
			elems = append(elems, nil)

			continue
		}
		elems = append(elems, val)
	}

	return elems, true, nil
}

func decodePrimitive(r *wire.Reader, shape PrimitiveShape) (any, bool, error) {
	switch shape.Shape {
	case "int":
		return decodeInt(r, shape)
	case "float":
		return decodeFloat(r, shape)
	case "decimal":
		v, isNull, err := wire.ReadDecimal(r)

		return v, !isNull, err
	case "bigint":
		v, isNull, err := wire.ReadBigInt(r)
		if err != nil {
			return nil, false, err
		}
		if isNull {
			return nil, false, nil
		}

		return v, true, nil
	case "bigdecimal":
		v, isNull, err := wire.ReadBigDecimal(r)

		return v, !isNull, err
	case "bool":
		v, isNull, err := wire.ReadBool(r)

		return v, !isNull, err
	case "string":
		v, isNull, err := wire.ReadString(r)

		return v, !isNull, err
	case "binary":
		v, isNull, err := wire.ReadBinary(r)
		if err != nil {
			return nil, false, err
		}
		if isNull {
			return nil, false, nil
		}

		return v, true, nil
	case "time":
		v, isNull, err := wire.ReadTime(r)

		return v, !isNull, err
	default:
		return nil, false, fmt.Errorf("compile: unknown primitive shape %q", shape.Shape)
	}
}

func decodeInt(r *wire.Reader, shape PrimitiveShape) (any, bool, error) {
	if shape.Signed {
		v, isNull, err := wire.ReadInt(r)
		if err != nil || isNull {
			return v, false, err
		}
		if !wire.FitsSigned(v, shape.IntBits) {
			return nil, false, errs.ErrOverflow
		}

		return v, true, nil
	}

	v, isNull, err := wire.ReadUint(r)
	if err != nil || isNull {
		return v, false, err
	}
	if !wire.FitsUnsigned(v, shape.IntBits) {
		return nil, false, errs.ErrOverflow
	}

	return v, true, nil
}

func decodeFloat(r *wire.Reader, shape PrimitiveShape) (any, bool, error) {
	if shape.FloatBits == 32 {
		v, isNull, err := wire.ReadFloat32(r)

		return v, !isNull, err
	}
	v, isNull, err := wire.ReadFloat64(r)

	return v, !isNull, err
}
