package schema

import (
	"fmt"

	"github.com/mbrannstrom/blinkcodec/errs"
)

// FieldDef describes one field of a GroupDef.
type FieldDef struct {
	Name        string
	ID          *uint64 // nil = none
	Type        TypeDef
	Required    bool
	Annotations map[string]string
}

// HasID reports whether the field declares an explicit numeric ID.
func (f FieldDef) HasID() bool {
	return f.ID != nil
}

// GroupDef describes a named record type: the Blink unit of
// polymorphism.
type GroupDef struct {
	Name        string
	ID          *uint64 // nil = none
	SuperGroup  string  // "" = none
	Fields      []FieldDef
	Annotations map[string]string
}

// HasID reports whether the group declares an explicit numeric ID.
func (g GroupDef) HasID() bool {
	return g.ID != nil
}

// Schema is an ordered, immutable set of GroupDefs, bound once at
// construction. Once built it never changes; compiled instructions
// and the read-only View are free to be shared across goroutines
// (spec §5).
type Schema struct {
	Groups []GroupDef

	byName map[string]*GroupDef
	byID   map[uint64]*GroupDef
}

// New builds a Schema from an ordered list of GroupDefs, indexing by
// name and ID. It rejects duplicate group names or duplicate group
// IDs, but does not perform the deeper cross-group invariant checks
// (inheritance cycles, dynamic-reference target validity, unresolved
// references) — those run in Validate, typically invoked by the field
// codec compiler (package compile) before it starts generating
// instructions.
func New(groups ...GroupDef) (*Schema, error) {
	s := &Schema{
		Groups: groups,
		byName: make(map[string]*GroupDef, len(groups)),
		byID:   make(map[uint64]*GroupDef, len(groups)),
	}

	for i := range groups {
		g := &s.Groups[i]
		if _, exists := s.byName[g.Name]; exists {
			return nil, fmt.Errorf("group %q: %w", g.Name, errs.ErrDuplicateGroupID)
		}
		s.byName[g.Name] = g

		if g.HasID() {
			if _, exists := s.byID[*g.ID]; exists {
				return nil, fmt.Errorf("group id %d: %w", *g.ID, errs.ErrDuplicateGroupID)
			}
			s.byID[*g.ID] = g
		}
	}

	return s, nil
}
