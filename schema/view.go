package schema

// View is the read-only projection over a Schema used by Validate and
// the compile-time compiler (package compile) to resolve names, IDs,
// type aliases and dynamic reference targets. The runtime dispatcher
// (package dispatch) works from compiled instructions and does not use
// it.
type View struct {
	schema *Schema
}

// NewView wraps schema in a read-only projection.
func NewView(s *Schema) *View {
	return &View{schema: s}
}

// GroupByName looks up a group by its declared name.
func (v *View) GroupByName(name string) (*GroupDef, bool) {
	g, ok := v.schema.byName[name]

	return g, ok
}

// GroupByID looks up a group by its declared numeric ID.
func (v *View) GroupByID(id uint64) (*GroupDef, bool) {
	g, ok := v.schema.byID[id]

	return g, ok
}

// superOf returns g's immediate super-group, if any and resolvable.
func (v *View) superOf(g *GroupDef) (*GroupDef, bool) {
	if g.SuperGroup == "" {
		return nil, false
	}

	return v.GroupByName(g.SuperGroup)
}

// AncestorChain returns g's ancestors from the root down to (but not
// including) g itself, in inheritance order. It is used to flatten
// field lists: ancestor fields precede descendant fields on the wire.
func (v *View) AncestorChain(g *GroupDef) []*GroupDef {
	var chain []*GroupDef
	seen := map[string]bool{g.Name: true}
	cur := g
	for {
		super, ok := v.superOf(cur)
		if !ok {
			break
		}
		if seen[super.Name] {
			// cycle; caller (Validate) is responsible for rejecting this
			// before compilation, so return what we have rather than loop
			// forever.
			break
		}
		seen[super.Name] = true
		chain = append([]*GroupDef{super}, chain...)
		cur = super
	}

	return chain
}

// DynamicSubgroups returns root itself and every group in the schema
// that transitively declares root as its super-group, in schema
// declaration order. This is the valid_set for a DynamicReference{root}
// field (spec §4.D).
func (v *View) DynamicSubgroups(root *GroupDef) []*GroupDef {
	result := []*GroupDef{root}
	for i := range v.schema.Groups {
		g := &v.schema.Groups[i]
		if g.Name == root.Name {
			continue
		}
		if v.isDescendantOf(g, root.Name) {
			result = append(result, g)
		}
	}

	return result
}

// AllIDedGroups returns every group in the schema that declares an
// ID, in declaration order. This is the valid_set for an "any"
// DynamicReference field (one with no target group name).
func (v *View) AllIDedGroups() []*GroupDef {
	var result []*GroupDef
	for i := range v.schema.Groups {
		g := &v.schema.Groups[i]
		if g.HasID() {
			result = append(result, g)
		}
	}

	return result
}

func (v *View) isDescendantOf(g *GroupDef, ancestorName string) bool {
	seen := map[string]bool{g.Name: true}
	cur := g
	for cur.SuperGroup != "" {
		if cur.SuperGroup == ancestorName {
			return true
		}
		if seen[cur.SuperGroup] {
			return false // cycle guard
		}
		next, ok := v.GroupByName(cur.SuperGroup)
		if !ok {
			return false
		}
		seen[cur.SuperGroup] = true
		cur = next
	}

	return false
}

// ResolveToType flattens a type down to its non-alias form. Blink
// schemas as modeled here have no separate alias construct, so this
// currently returns t unchanged; it exists so that a future alias
// layer (or a host schema collaborator that models type aliases) has
// a single seam to hook into without touching callers.
func (v *View) ResolveToType(t TypeDef, followRefs bool) TypeDef {
	return t
}

// ResolveToGroup returns the target GroupDef of a Reference or
// DynamicReference type, if it names one directly (an "any" dynamic
// reference has no single target and returns false).
func (v *View) ResolveToGroup(t TypeDef) (*GroupDef, bool) {
	switch t.Kind {
	case KindReference:
		return v.GroupByName(t.GroupName)
	case KindDynamicReference:
		if t.Any || t.GroupName == "" {
			return nil, false
		}

		return v.GroupByName(t.GroupName)
	default:
		return nil, false
	}
}

// FlattenedFields returns g's fields prefixed by every ancestor's own
// fields, ancestors-first, in declaration order at each level — the
// effective on-wire field order (spec §3 "Inheritance chain ...").
func (v *View) FlattenedFields(g *GroupDef) []FieldDef {
	chain := v.AncestorChain(g)

	var fields []FieldDef
	for _, ancestor := range chain {
		fields = append(fields, ancestor.Fields...)
	}
	fields = append(fields, g.Fields...)

	return fields
}
