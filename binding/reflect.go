package binding

import (
	"reflect"
	"strings"
	"sync"
)

// ReflectBinding is the default Binding implementation: it binds Go
// struct types to schema groups via a `blink:"name"` struct tag on
// each exported field (falling back to the field's own name when the
// tag is absent), and identifies an object's group by its reflected
// type. It is the binding a caller reaches for when it has not
// generated accessors ahead of time.
type ReflectBinding struct {
	mu          sync.RWMutex
	groupToType map[string]reflect.Type
	typeToGroup map[reflect.Type]string
}

// NewReflectBinding returns an empty binding; register group-to-Go-type
// mappings with Register before compiling a schema against it.
func NewReflectBinding() *ReflectBinding {
	return &ReflectBinding{
		groupToType: make(map[string]reflect.Type),
		typeToGroup: make(map[reflect.Type]string),
	}
}

// Register associates groupName with the Go type of sample, a pointer
// to (or value of) the struct used to represent decoded instances of
// that group. sample itself is never retained.
func (b *ReflectBinding) Register(groupName string, sample any) {
	t := reflect.TypeOf(sample)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.groupToType[groupName] = t
	b.typeToGroup[t] = groupName
}

// GroupTypeOf implements Binding.
func (b *ReflectBinding) GroupTypeOf(obj any) (TypeKey, bool) {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	b.mu.RLock()
	name, ok := b.typeToGroup[t]
	b.mu.RUnlock()
	if !ok {
		return 0, false
	}

	return TypeKeyFor(name), true
}

// Factory implements Binding.
func (b *ReflectBinding) Factory(groupName string) (any, error) {
	b.mu.RLock()
	t, ok := b.groupToType[groupName]
	b.mu.RUnlock()
	if !ok {
		return nil, &ErrUnbound{Group: groupName}
	}

	return reflect.New(t).Interface(), nil
}

// Accessor implements Binding. The returned functions accept and
// produce pointers to (or the struct itself wrapped in an interface
// matching) the registered sample type's fields.
func (b *ReflectBinding) Accessor(groupName, fieldName string) (Accessor, error) {
	b.mu.RLock()
	t, ok := b.groupToType[groupName]
	b.mu.RUnlock()
	if !ok {
		return Accessor{}, &ErrUnbound{Group: groupName}
	}

	sf, ok := findTaggedField(t, fieldName)
	if !ok {
		return Accessor{}, &ErrUnbound{Group: groupName, Field: fieldName}
	}
	index := sf.Index

	get := func(obj any) (any, bool) {
		v := reflect.ValueOf(obj)
		for v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return nil, false
			}
			v = v.Elem()
		}
		fv := v.FieldByIndex(index)
		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				return nil, false
			}

			return fv.Elem().Interface(), true
		}
		if fv.Kind() == reflect.Slice && fv.IsNil() {
			return nil, false
		}

		return fv.Interface(), true
	}

	set := func(obj any, value any, present bool) {
		v := reflect.ValueOf(obj)
		for v.Kind() == reflect.Ptr {
			v = v.Elem()
		}
		fv := v.FieldByIndex(index)

		if fv.Kind() == reflect.Ptr {
			if !present {
				fv.Set(reflect.Zero(fv.Type()))

				return
			}
			if value != nil {
				if rv := reflect.ValueOf(value); rv.Type().AssignableTo(fv.Type()) {
					fv.Set(rv)

					return
				}
			}
			ptr := reflect.New(fv.Type().Elem())
			if value != nil {
				assign(ptr.Elem(), value)
			}
			fv.Set(ptr)

			return
		}

		if fv.Kind() == reflect.Slice && !present {
			fv.Set(reflect.Zero(fv.Type()))

			return
		}

		if present && value != nil {
			assign(fv, value)
		}
	}

	return Accessor{Get: get, Set: set}, nil
}

// assign sets dst from value, converting between numeric kinds when
// they differ. The wire decoder's "int" shape returns uint64 for an
// unsigned field and int64 for a signed one regardless of the bound
// struct field's own declared width or signedness (int32, uint8, ...),
// so a plain reflect.Set would panic on every field narrower than the
// decoder's native 64-bit return type.
func assign(dst reflect.Value, value any) {
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)

		return
	}

	dst.Set(rv.Convert(dst.Type()))
}

// findTaggedField looks for a `blink:"fieldName"` tag on an exported
// field of t, falling back to an exact Go field-name match.
func findTaggedField(t reflect.Type, fieldName string) (reflect.StructField, bool) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		tag := sf.Tag.Get("blink")
		name := tagName(tag)
		if name == fieldName {
			return sf, true
		}
		if tag == "" && sf.Name == fieldName {
			return sf, true
		}
	}

	return reflect.StructField{}, false
}

// tagName returns the name portion of a `blink:"name,opt1,opt2"` tag.
func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")

	return name
}
