// Package binding adapts the schema-construction collaborator's
// contract (spec'd externally: annotation scanning, reflective
// accessor generation) to the narrow surface the codec actually
// needs at runtime: resolving an object's group type, allocating a
// fresh instance on decode, and getting/setting field values.
//
// This package does not build schemas. It only binds an already-built
// schema.Schema to live Go values.
package binding

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// TypeKey is an opaque, hashable identity for a host group type. The
// encode dispatcher keys its lookup table on TypeKey rather than on
// reflect.Type directly so that a binding backed by code generation
// (no reflection at all) can still participate using a precomputed
// constant.
type TypeKey uint64

// TypeKeyFor derives a stable TypeKey from a group's name. Two
// bindings that key the same group name always collide on the same
// TypeKey, which is what lets a dynamically compiled schema and a
// generated one interoperate against the same dispatcher.
func TypeKeyFor(groupName string) TypeKey {
	return TypeKey(xxhash.Sum64String(groupName))
}

// Binding is the contract a host object system implements to let the
// codec read and write its values. GroupTypeOf and Factory operate on
// opaque Go values (interface{}); Accessor narrows to one field at a
// time so the field codec compiler can build a flat instruction list
// without the binding knowing anything about wire layout.
type Binding interface {
	// GroupTypeOf returns the TypeKey identifying obj's group, and
	// false if obj does not belong to any bound group.
	GroupTypeOf(obj any) (TypeKey, bool)

	// Factory allocates a new zero-value instance of the group named
	// groupName. Returns an error if groupName is not bound.
	Factory(groupName string) (any, error)

	// Accessor returns the get/set pair for the named field of the
	// named group. Returns an error if the group or field is not
	// bound.
	Accessor(groupName, fieldName string) (Accessor, error)
}

// Accessor reads and writes one field of a host object. Get returns
// (nil, false) for a null/absent value; Set with ok=false clears the
// field to null/absent.
type Accessor struct {
	Get func(obj any) (value any, ok bool)
	Set func(obj any, value any, ok bool)
}

// ErrUnbound is returned by a Binding when asked about a group or
// field it has no knowledge of.
type ErrUnbound struct {
	Group string
	Field string
}

func (e *ErrUnbound) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("binding: group %q not bound", e.Group)
	}

	return fmt.Sprintf("binding: field %q of group %q not bound", e.Field, e.Group)
}
