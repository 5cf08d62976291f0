// Package types declares the nominal type system shared by values and
// expressions: a small set of atomic scalar kinds plus the two structural
// container kinds, Array and Map, each carrying its own nullability flags.
package types

// Kind tags the variant held by a DataType.
type Kind int

const (
	// Unknown is the zero value and never appears on a resolved expression.
	Unknown Kind = iota
	Boolean
	Integer
	Long
	Float
	Double
	String
	Binary
	Timestamp
	Date
	Decimal
	Null
	Array
	Map
)

func (k Kind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Integer:
		return "integer"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	case String:
		return "string"
	case Binary:
		return "binary"
	case Timestamp:
		return "timestamp"
	case Date:
		return "date"
	case Decimal:
		return "decimal"
	case Null:
		return "null"
	case Array:
		return "array"
	case Map:
		return "map"
	default:
		return "unknown"
	}
}

// isAtomic reports whether k is a resolved kind other than Array or Map. Every
// atomic kind is comparable with Go's == and thus hashable, with the single
// exception of Binary, whose values ([]byte) are not comparable.
func isAtomic(k Kind) bool {
	switch k {
	case Array, Map, Unknown:
		return false
	default:
		return true
	}
}
