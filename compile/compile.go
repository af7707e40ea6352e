package compile

import (
	"fmt"
	"strconv"

	"github.com/mbrannstrom/blinkcodec/binding"
	"github.com/mbrannstrom/blinkcodec/errs"
	"github.com/mbrannstrom/blinkcodec/schema"
)

// Compile validates s and compiles every group into a GroupInstructions,
// returning them keyed by group name. It runs schema.Validate first, so
// callers do not need to call it separately.
func Compile(s *schema.Schema, b binding.Binding) (map[string]*GroupInstructions, error) {
	if err := schema.Validate(s); err != nil {
		return nil, err
	}

	v := schema.NewView(s)

	byName := make(map[string]*GroupInstructions, len(s.Groups))
	for i := range s.Groups {
		g := &s.Groups[i]
		byName[g.Name] = &GroupInstructions{
			GroupName: g.Name,
			GroupID:   groupIDOf(g),
			TypeKey:   binding.TypeKeyFor(g.Name),
		}
	}

	for i := range s.Groups {
		g := &s.Groups[i]
		gi := byName[g.Name]

		fields := v.FlattenedFields(g)
		seen := make(map[uint64]bool, len(fields))
		for _, f := range fields {
			if f.HasID() {
				if seen[*f.ID] {
					return nil, fmt.Errorf("group %q: field id %d reused: %w", g.Name, *f.ID, errs.ErrDuplicateFieldID)
				}
				seen[*f.ID] = true
			}

			codec, err := compileType(v, byName, f.Type)
			if err != nil {
				return nil, fmt.Errorf("group %q field %q: %w", g.Name, f.Name, err)
			}

			acc, err := b.Accessor(g.Name, f.Name)
			if err != nil {
				return nil, fmt.Errorf("group %q field %q: %w", g.Name, f.Name, errs.ErrNoBinding)
			}

			gi.Fields = append(gi.Fields, FieldInstruction{
				Name:       f.Name,
				ID:         f.ID,
				Required:   f.Required,
				Accessor:   acc,
				Codec:      codec,
				Deprecated: f.Annotations["deprecated"] != "",
			})
		}
	}

	return byName, nil
}

// groupIDOf returns g's numeric ID, falling back to the group
// annotation "id" when GroupDef.ID itself is unset. Validate has
// already rejected any group used as a dynamic reference target that
// lacks a numeric ID, so a group reaching this function with a nil
// ID is by construction never a dynamic target — exactly the
// condition under which the annotation fallback is safe to apply.
func groupIDOf(g *schema.GroupDef) *uint64 {
	if g.HasID() {
		return g.ID
	}

	raw, ok := g.Annotations["id"]
	if !ok {
		return nil
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}

	return &v
}

func compileType(v *schema.View, byName map[string]*GroupInstructions, t schema.TypeDef) (ValueCodec, error) {
	switch t.Kind {
	case schema.KindReference:
		target, ok := v.ResolveToGroup(t)
		if !ok {
			return ValueCodec{}, fmt.Errorf("reference to %q: %w", t.GroupName, errs.ErrInvalidReference)
		}

		return ValueCodec{Kind: KindStaticGroup, Group: byName[target.Name]}, nil

	case schema.KindDynamicReference:
		var subs []*schema.GroupDef
		if t.Any {
			subs = v.AllIDedGroups()
		} else {
			root, ok := v.GroupByName(t.GroupName)
			if !ok {
				return ValueCodec{}, fmt.Errorf("dynamic reference to %q: %w", t.GroupName, errs.ErrInvalidReference)
			}
			subs = v.DynamicSubgroups(root)
		}

		byID := make(map[uint64]*GroupInstructions, len(subs))
		byType := make(map[binding.TypeKey]*GroupInstructions, len(subs))
		for _, sub := range subs {
			gi := byName[sub.Name]
			if sub.HasID() {
				byID[*sub.ID] = gi
			}
			byType[gi.TypeKey] = gi
		}

		return ValueCodec{Kind: KindDynamicGroup, ValidByID: byID, ValidByType: byType}, nil

	case schema.KindSequence:
		if t.Component == nil {
			return ValueCodec{}, errs.ErrUnresolvedType
		}
		elem, err := compileType(v, byName, *t.Component)
		if err != nil {
			return ValueCodec{}, err
		}

		kind := KindSequenceOfPrimitive
		if elem.Kind == KindStaticGroup || elem.Kind == KindDynamicGroup {
			kind = KindSequenceOfGroup
		}

		return ValueCodec{Kind: kind, Element: &elem}, nil

	case schema.KindEnum:
		names := make(map[int32]string, len(t.Symbols))
		values := make(map[string]int32, len(t.Symbols))
		for _, sym := range t.Symbols {
			names[sym.Value] = sym.Name
			values[sym.Name] = sym.Value
		}

		return ValueCodec{Kind: KindEnum, EnumNames: names, EnumValues: values}, nil

	default:
		return ValueCodec{Kind: KindPrimitive, Primitive: primitiveShapeOf(t)}, nil
	}
}

func primitiveShapeOf(t schema.TypeDef) PrimitiveShape {
	switch t.Kind {
	case schema.KindInt:
		return PrimitiveShape{Shape: "int", IntBits: t.IntBits, Signed: t.Signed}
	case schema.KindFloat:
		return PrimitiveShape{Shape: "float", FloatBits: t.FloatBits}
	case schema.KindDecimal:
		return PrimitiveShape{Shape: "decimal"}
	case schema.KindBigInt:
		return PrimitiveShape{Shape: "bigint"}
	case schema.KindBigDecimal:
		return PrimitiveShape{Shape: "bigdecimal"}
	case schema.KindBoolean:
		return PrimitiveShape{Shape: "bool"}
	case schema.KindString:
		return PrimitiveShape{Shape: "string"}
	case schema.KindBinary:
		return PrimitiveShape{Shape: "binary"}
	case schema.KindTime:
		return PrimitiveShape{Shape: "time"}
	default:
		return PrimitiveShape{Shape: "unknown"}
	}
}
