package types

import "fmt"

// DataType is the nominal, structural representation of a value's type. It
// is a tagged variant over Kind: atomic kinds carry only the Nullable flag,
// while Array and Map carry the nested element/value types plus their own
// nullability flags.
//
// DataType is intentionally a plain value type (not an interface) so that
// two DataTypes can be compared with SameType/EqualsStructurally without a
// type switch at every call site; the nested pointers only exist for Array
// and Map.
type DataType struct {
	kind     Kind
	nullable bool

	// Array
	element *DataType

	// Map
	key               *DataType
	value             *DataType
	valueContainsNull bool
}

// NewAtomic returns a DataType for one of the non-container kinds.
func NewAtomic(k Kind, nullable bool) DataType {
	if k == Array || k == Map {
		panic(fmt.Sprintf("types: NewAtomic called with container kind %s", k))
	}
	return DataType{kind: k, nullable: nullable}
}

// ArrayOf is the common-case Array constructor used throughout this module:
// it builds the element type's nullability explicitly rather than relying
// on the caller to have set it already.
func ArrayOf(elementKind Kind, containsNull bool, nullable bool) DataType {
	elem := NewAtomic(elementKind, containsNull)
	return DataType{kind: Array, nullable: nullable, element: &elem}
}

// ArrayOfType builds an Array whose element is itself a composite type
// (another Array or Map), with explicit element-nullability.
func ArrayOfType(element DataType, containsNull bool, nullable bool) DataType {
	elem := element
	elem.nullable = containsNull
	return DataType{kind: Array, nullable: nullable, element: &elem}
}

// NewMap returns a Map DataType. Map keys are never nullable; there is no
// key-nullability parameter by construction.
func NewMap(key, value DataType, valueContainsNull bool, nullable bool) DataType {
	k := key
	v := value
	v.nullable = valueContainsNull
	return DataType{
		kind:              Map,
		nullable:          nullable,
		key:               &k,
		value:             &v,
		valueContainsNull: valueContainsNull,
	}
}

// Kind returns the tag of this DataType.
func (t DataType) Kind() Kind { return t.kind }

// Nullable reports whether a value of this type may itself be SQL NULL.
func (t DataType) Nullable() bool { return t.nullable }

// WithNullable returns a copy of t with the nullable flag replaced.
func (t DataType) WithNullable(nullable bool) DataType {
	t.nullable = nullable
	return t
}

// Element returns the element type of an Array DataType. Panics if Kind()
// is not Array.
func (t DataType) Element() DataType {
	if t.kind != Array {
		panic("types: Element() called on non-array DataType")
	}
	return *t.element
}

// ContainsNull reports whether elements of an Array DataType may be null.
func (t DataType) ContainsNull() bool {
	if t.kind != Array {
		panic("types: ContainsNull() called on non-array DataType")
	}
	return t.element.nullable
}

// Key returns the key type of a Map DataType. Panics if Kind() is not Map.
func (t DataType) Key() DataType {
	if t.kind != Map {
		panic("types: Key() called on non-map DataType")
	}
	return *t.key
}

// Value returns the value type of a Map DataType. Panics if Kind() is not
// Map.
func (t DataType) Value() DataType {
	if t.kind != Map {
		panic("types: Value() called on non-map DataType")
	}
	return *t.value
}

// ValueContainsNull reports whether map values may be null.
func (t DataType) ValueContainsNull() bool {
	if t.kind != Map {
		panic("types: ValueContainsNull() called on non-map DataType")
	}
	return t.valueContainsNull
}

// String renders a debug form of the type, nullability included.
func (t DataType) String() string {
	switch t.kind {
	case Array:
		return fmt.Sprintf("array<%s>%s", t.element.String(), nullSuffix(t.nullable))
	case Map:
		return fmt.Sprintf("map<%s,%s>%s", t.key.String(), t.value.String(), nullSuffix(t.nullable))
	default:
		return t.kind.String() + nullSuffix(t.nullable)
	}
}

func nullSuffix(nullable bool) string {
	if nullable {
		return "?"
	}
	return ""
}

// IsOrderable reports whether t supports a total ordering, which map-zip-with
// requires for its brute-force key-matching path. Every atomic kind,
// Binary included, is orderable; containers are never orderable.
func IsOrderable(t DataType) bool {
	return isAtomic(t.kind)
}

// IsHashable reports whether t supports equality hashing, which map-zip-with
// uses to pick its fast path. Every atomic kind except Binary is hashable,
// since []byte is not a valid Go map key.
func IsHashable(t DataType) bool {
	return isAtomic(t.kind) && t.kind != Binary
}
