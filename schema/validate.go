package schema

import (
	"fmt"

	"github.com/mbrannstrom/blinkcodec/errs"
)

// Validate runs the cross-group invariant checks that New deliberately
// leaves aside: inheritance cycles, unresolved super-group and
// Reference/DynamicReference targets, dynamic-reference roots lacking
// an ID, duplicate field IDs within a group's flattened field list and
// Sequence<Binary> (disallowed per spec §3, Binary sequences have no
// canonical element framing). It is meant to run once, right before
// compile.Compile starts generating instructions.
func Validate(s *Schema) error {
	v := NewView(s)

	for i := range s.Groups {
		g := &s.Groups[i]

		if err := validateInheritance(v, g); err != nil {
			return err
		}
		if err := validateFieldIDs(v, g); err != nil {
			return err
		}
		if err := validateFieldTypes(v, g.Fields); err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
	}

	return nil
}

func validateInheritance(v *View, g *GroupDef) error {
	if g.SuperGroup == "" {
		return nil
	}

	seen := map[string]bool{g.Name: true}
	cur := g
	for cur.SuperGroup != "" {
		super, ok := v.GroupByName(cur.SuperGroup)
		if !ok {
			return fmt.Errorf("group %q: super-group %q: %w", g.Name, cur.SuperGroup, errs.ErrUnresolvedSuper)
		}
		if seen[super.Name] {
			return fmt.Errorf("group %q: %w", g.Name, errs.ErrInheritanceCycle)
		}
		seen[super.Name] = true
		cur = super
	}

	return nil
}

func validateFieldIDs(v *View, g *GroupDef) error {
	fields := v.FlattenedFields(g)

	seen := make(map[uint64]string, len(fields))
	for _, f := range fields {
		if !f.HasID() {
			continue
		}
		if name, exists := seen[*f.ID]; exists {
			return fmt.Errorf("group %q: field id %d reused by %q and %q: %w", g.Name, *f.ID, name, f.Name, errs.ErrDuplicateFieldID)
		}
		seen[*f.ID] = f.Name
	}

	return nil
}

func validateFieldTypes(v *View, fields []FieldDef) error {
	for _, f := range fields {
		if err := validateType(v, f.Type); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}

	return nil
}

func validateType(v *View, t TypeDef) error {
	switch t.Kind {
	case KindSequence:
		if t.Component == nil {
			return fmt.Errorf("sequence with no component type: %w", errs.ErrUnresolvedType)
		}
		if t.Component.Kind == KindBinary {
			return errs.ErrSequenceOfBinary
		}

		return validateType(v, *t.Component)

	case KindReference:
		if _, ok := v.GroupByName(t.GroupName); !ok {
			return fmt.Errorf("reference to %q: %w", t.GroupName, errs.ErrInvalidReference)
		}

	case KindDynamicReference:
		if t.Any {
			return nil
		}
		root, ok := v.GroupByName(t.GroupName)
		if !ok {
			return fmt.Errorf("dynamic reference to %q: %w", t.GroupName, errs.ErrInvalidReference)
		}
		if !root.HasID() {
			return fmt.Errorf("dynamic reference root %q: %w", t.GroupName, errs.ErrMissingGroupID)
		}
		for _, sub := range v.DynamicSubgroups(root) {
			if !sub.HasID() {
				return fmt.Errorf("dynamic reference subgroup %q: %w", sub.Name, errs.ErrMissingGroupID)
			}
		}
	}

	return nil
}
