// Package compile turns a bound schema.Schema into an ordered list of
// per-field read/write instructions per group: the field codec
// compiler of spec §4.D. Its output (GroupInstructions) is what the
// group dispatcher (package dispatch) and framed frontend (package
// codec) actually run against at encode/decode time; neither of those
// packages inspects schema.TypeDef again.
package compile

import "github.com/mbrannstrom/blinkcodec/binding"

// Kind discriminates the ValueCodec tagged variant, one entry per row
// of the type-shape table in spec §4.D.
type Kind uint8

const (
	KindPrimitive Kind = iota
	KindEnum
	KindStaticGroup
	KindDynamicGroup
	KindSequenceOfPrimitive
	KindSequenceOfGroup
)

// PrimitiveShape narrows a schema.TypeDef down to the handful of
// facts the primitive codec needs at encode/decode time, without
// compile depending on schema.Kind switch duplication spreading into
// every call site.
type PrimitiveShape struct {
	Shape     string // "int", "float", "decimal", "bigint", "bigdecimal", "bool", "string", "binary", "time"
	IntBits   int
	Signed    bool
	FloatBits int
}

// ValueCodec is the variant over all type shapes a FieldInstruction
// may carry, mirroring schema.TypeDef's tagged-variant idiom so the
// encode/decode switch (in encode.go/decode.go) can be checked for
// exhaustiveness by the compiler.
type ValueCodec struct {
	Kind Kind

	// KindPrimitive
	Primitive PrimitiveShape

	// KindEnum
	EnumNames  map[int32]string
	EnumValues map[string]int32

	// KindStaticGroup
	Group *GroupInstructions

	// KindDynamicGroup: ID-keyed for decode dispatch, TypeKey-keyed for
	// encode dispatch. Both index the same underlying set.
	ValidByID   map[uint64]*GroupInstructions
	ValidByType map[binding.TypeKey]*GroupInstructions

	// KindSequenceOfPrimitive / KindSequenceOfGroup
	Element *ValueCodec
}

// FieldInstruction is one flattened field's runtime codec plus its
// host accessor (spec §3 FieldInstruction).
type FieldInstruction struct {
	Name     string
	ID       *uint64
	Required bool
	Accessor binding.Accessor
	Codec    ValueCodec

	// Deprecated marks a field whose schema.FieldDef carried the
	// annotation key "deprecated". It is still compiled and encoded
	// normally, but a lenient decoder does not fail MissingRequired on
	// it even when Required is set and the wire value decoded null —
	// an older schema generation may still mark it required while a
	// newer sender has stopped populating it.
	Deprecated bool
}

// GroupInstructions is the compiled, flattened instruction set for one
// group: its accessor-bound fields in on-wire order (spec §3
// GroupInstructions).
type GroupInstructions struct {
	GroupName string
	GroupID   *uint64
	TypeKey   binding.TypeKey
	Fields    []FieldInstruction
}

// HasID reports whether the compiled group declares a numeric ID.
func (gi *GroupInstructions) HasID() bool {
	return gi.GroupID != nil
}
