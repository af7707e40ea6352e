// Package dispatch maps a host object's group type to its compiled
// instructions on encode, and a wire group ID to its compiled
// instructions on decode: the group dispatcher of spec §4.E. It holds
// no wire-format knowledge of its own; that lives in package compile
// (per-field codecs) and package codec (frame preamble).
package dispatch

import (
	"fmt"

	"github.com/mbrannstrom/blinkcodec/binding"
	"github.com/mbrannstrom/blinkcodec/compile"
	"github.com/mbrannstrom/blinkcodec/errs"
)

// Registry is the immutable encode/decode lookup table built once at
// codec construction from a compile.Compile result. It is safe for
// concurrent use by multiple codec instances (spec §5).
type Registry struct {
	byType map[binding.TypeKey]*compile.GroupInstructions
	byID   map[uint64]*compile.GroupInstructions
}

// NewRegistry indexes every compiled group by its binding TypeKey
// (encode side) and, where declared, by its numeric group ID (decode
// side).
func NewRegistry(instrs map[string]*compile.GroupInstructions) *Registry {
	reg := &Registry{
		byType: make(map[binding.TypeKey]*compile.GroupInstructions, len(instrs)),
		byID:   make(map[uint64]*compile.GroupInstructions, len(instrs)),
	}
	for _, gi := range instrs {
		reg.byType[gi.TypeKey] = gi
		if gi.HasID() {
			reg.byID[*gi.GroupID] = gi
		}
	}

	return reg
}

// ForObject resolves obj's compiled group instructions via b's type
// identity, for encoding.
func (r *Registry) ForObject(obj any, b binding.Binding) (*compile.GroupInstructions, error) {
	key, ok := b.GroupTypeOf(obj)
	if !ok {
		return nil, errs.ErrUnknownGroupType
	}

	gi, ok := r.byType[key]
	if !ok {
		return nil, errs.ErrUnknownGroupType
	}

	return gi, nil
}

// ForID resolves a wire group ID to its compiled group instructions,
// for decoding.
func (r *Registry) ForID(id uint64) (*compile.GroupInstructions, error) {
	gi, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("group id %d: %w", id, errs.ErrUnknownGroupID)
	}

	return gi, nil
}
