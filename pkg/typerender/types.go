// Package typerender renders structured M type descriptors back to their
// canonical textual form. It is a total, pure function from descriptor to
// string: no parsing, no I/O, no shared state.
package typerender

// Primitive names one of M's built-in primitive type keywords.
type Primitive string

// The closed set of M primitive type keywords.
const (
	PrimitiveAny            Primitive = "any"
	PrimitiveAnyNonNull     Primitive = "anynonnull"
	PrimitiveBinary         Primitive = "binary"
	PrimitiveDate           Primitive = "date"
	PrimitiveDateTime       Primitive = "datetime"
	PrimitiveDateTimeZone   Primitive = "datetimezone"
	PrimitiveDuration       Primitive = "duration"
	PrimitiveFunction       Primitive = "function"
	PrimitiveList           Primitive = "list"
	PrimitiveLogical        Primitive = "logical"
	PrimitiveNone           Primitive = "none"
	PrimitiveNull           Primitive = "null"
	PrimitiveNumber         Primitive = "number"
	PrimitiveRecord         Primitive = "record"
	PrimitiveTable          Primitive = "table"
	PrimitiveType           Primitive = "type"
	PrimitiveAction         Primitive = "action"
	PrimitiveTime           Primitive = "time"
	PrimitiveNotApplicable  Primitive = "not applicable"
	PrimitiveUnknown        Primitive = "unknown"
	PrimitiveText           Primitive = "text"
)

// Kind discriminates which descriptor variant a Descriptor holds.
type Kind int

// The closed set of descriptor variants, exactly as spec.md section 4.5.
const (
	KindPrimitive Kind = iota
	KindAnyUnion
	KindDefinedList
	KindDefinedListType
	KindListType
	KindDefinedRecord
	KindRecordType
	KindDefinedTable
	KindTableType
	KindTableTypePrimaryExpression
	KindPrimaryPrimitiveType
	KindDefinedFunction
	KindFunctionType
)

// RecordField is one field of a DefinedRecord/DefinedTable, in declared
// (insertion) order.
type RecordField struct {
	Name string
	Type Descriptor
}

// Parameter is one parameter of a DefinedFunction/FunctionType.
type Parameter struct {
	Name     string
	Optional bool
	Type     Descriptor
}

// Descriptor is a structured M type descriptor. Exactly one set of fields
// is meaningful for a given Kind; see Render for the rendering contract of
// each.
type Descriptor struct {
	Kind Kind

	// Primitive is meaningful for KindPrimitive and KindPrimaryPrimitiveType.
	Primitive Primitive

	// Nullable wraps any variant (except PrimitiveAnyNonNull, which can
	// never be nullable) with a "nullable " prefix.
	Nullable bool

	// Members is meaningful for KindAnyUnion, KindDefinedList, and
	// KindDefinedListType, in declared order.
	Members []Descriptor

	// Element is meaningful for KindListType: the element type E in
	// "type {E}".
	Element *Descriptor

	// Fields is meaningful for KindDefinedRecord, KindRecordType,
	// KindDefinedTable, and KindTableType, in declared (insertion) order.
	Fields []RecordField

	// Open marks a DefinedRecord/DefinedTable/RecordType/TableType as
	// open (trailing ", ...").
	Open bool

	// Primary is meaningful for KindTableTypePrimaryExpression: the
	// primary expression rendered after "type table ".
	Primary *Descriptor

	// Parameters and ReturnType are meaningful for KindDefinedFunction
	// and KindFunctionType.
	Parameters []Parameter
	ReturnType *Descriptor
}
