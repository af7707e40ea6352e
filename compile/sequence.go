package compile

import (
	"reflect"

	"github.com/mbrannstrom/blinkcodec/errs"
)

// asSlice normalizes an accessor-returned sequence value to []any for
// uniform element-by-element encoding. Host bindings are free to
// store sequences as any concrete slice type ([]int64, []*SubGroup,
// ...); the field codec compiler only needs to walk the elements.
func asSlice(value any) ([]any, error) {
	if value == nil {
		return nil, nil
	}
	if s, ok := value.([]any); ok {
		return s, nil
	}

	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice {
		return nil, errs.ErrValueOutOfRange
	}

	out := make([]any, v.Len())
	for i := range out {
		out[i] = v.Index(i).Interface()
	}

	return out, nil
}
