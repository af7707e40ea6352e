// Package schema models a Blink schema: an immutable, read-only
// description of groups, fields and types that the field codec
// compiler (package compile) consumes to build wire instructions.
//
// Building a Schema from host-language class metadata — annotation
// scanning, reflective accessor generation — is explicitly out of
// scope here; that is the job of an external schema-construction
// collaborator. This package only models a schema that has already
// been built, and validates it.
package schema

// Kind discriminates the tagged TypeDef variant. Using an explicit
// sum type (rather than an interface with many implementers) lets the
// field codec compiler's type-shape switch (package compile) be
// exhaustively checked.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindDecimal
	KindBigInt
	KindBigDecimal
	KindBoolean
	KindString
	KindBinary
	KindTime
	KindEnum
	KindSequence
	KindReference
	KindDynamicReference
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindDecimal:
		return "Decimal"
	case KindBigInt:
		return "BigInt"
	case KindBigDecimal:
		return "BigDecimal"
	case KindBoolean:
		return "Boolean"
	case KindString:
		return "String"
	case KindBinary:
		return "Binary"
	case KindTime:
		return "Time"
	case KindEnum:
		return "Enum"
	case KindSequence:
		return "Sequence"
	case KindReference:
		return "Reference"
	case KindDynamicReference:
		return "DynamicReference"
	default:
		return "Unknown"
	}
}

// TimeUnit is the granularity a Time type's tick count is expressed
// in.
type TimeUnit uint8

const (
	TimeUnitNanos TimeUnit = iota
	TimeUnitMicros
	TimeUnitMillis
	TimeUnitSeconds
	TimeUnitDays
)

// EnumSymbol is a single named value of an Enum type.
type EnumSymbol struct {
	Name  string
	Value int32
}

// TypeDef is the tagged variant described in spec §3. Only the
// fields relevant to Kind are meaningful; the compiler switches
// exhaustively on Kind (package compile).
type TypeDef struct {
	Kind Kind

	// Int
	IntBits int
	Signed  bool

	// Float
	FloatBits int

	// String / Binary
	MaxSize int // 0 means unbounded

	// Time
	TimeUnit  TimeUnit
	TimeEpoch string // reference epoch identifier, e.g. "unix"
	TimeZone  string

	// Enum
	Symbols []EnumSymbol

	// Sequence
	Component *TypeDef

	// Reference / DynamicReference
	GroupName string // target group name; empty + Any for "any root" dynamic refs
	Any       bool
}

// Int returns an Int{N, signed} type.
func Int(bits int, signed bool) TypeDef {
	return TypeDef{Kind: KindInt, IntBits: bits, Signed: signed}
}

// Float returns a Float{32|64} type.
func Float(bits int) TypeDef {
	return TypeDef{Kind: KindFloat, FloatBits: bits}
}

// DecimalType returns the fixed mantissa+exponent Decimal type.
func DecimalType() TypeDef {
	return TypeDef{Kind: KindDecimal}
}

// BigInt returns the arbitrary-precision BigInt type.
func BigInt() TypeDef {
	return TypeDef{Kind: KindBigInt}
}

// BigDecimal returns the arbitrary-precision BigDecimal type.
func BigDecimal() TypeDef {
	return TypeDef{Kind: KindBigDecimal}
}

// Boolean returns the Boolean type.
func Boolean() TypeDef {
	return TypeDef{Kind: KindBoolean}
}

// String returns a String type, optionally bounded by maxSize (0 =
// unbounded).
func String(maxSize int) TypeDef {
	return TypeDef{Kind: KindString, MaxSize: maxSize}
}

// Binary returns a Binary type, optionally bounded by maxSize (0 =
// unbounded).
func Binary(maxSize int) TypeDef {
	return TypeDef{Kind: KindBinary, MaxSize: maxSize}
}

// Time returns a Time type with the given unit, epoch and zone.
func Time(unit TimeUnit, epoch, zone string) TypeDef {
	return TypeDef{Kind: KindTime, TimeUnit: unit, TimeEpoch: epoch, TimeZone: zone}
}

// Enum returns an Enum type over the given ordered symbol list.
func Enum(symbols []EnumSymbol) TypeDef {
	return TypeDef{Kind: KindEnum, Symbols: symbols}
}

// Sequence returns a Sequence{component} type.
func Sequence(component TypeDef) TypeDef {
	return TypeDef{Kind: KindSequence, Component: &component}
}

// Reference returns a static Reference{groupName} type.
func Reference(groupName string) TypeDef {
	return TypeDef{Kind: KindReference, GroupName: groupName}
}

// DynamicReference returns a DynamicReference type. An empty
// groupName with any=true matches every group with an ID in the
// schema; otherwise it matches groupName and its transitive
// subgroups.
func DynamicReference(groupName string, any bool) TypeDef {
	return TypeDef{Kind: KindDynamicReference, GroupName: groupName, Any: any}
}
