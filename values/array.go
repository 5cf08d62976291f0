package values

import "github.com/relcore/hofexpr/types"

// ArrayData is a read-only, indexed, length-typed view over an array value.
// It is the columnar container every array-consuming HOF evaluates against;
// concrete implementations may be backed by an engine's native columnar
// storage, which is why Get takes the element type explicitly rather than
// inferring it.
type ArrayData interface {
	// NumElements returns the number of elements, including any that are
	// null.
	NumElements() int

	// Get returns the value at position i. If the element at i is SQL
	// NULL, Get returns Null{}. elementType is supplied by the caller
	// (normally the array expression's own element DataType) since an
	// ArrayData implementation need not carry its own type.
	Get(i int, elementType types.DataType) Value

	// IsNullAt reports whether the element at i is SQL NULL, without the
	// cost of materializing it via Get.
	IsNullAt(i int) bool
}

// GenericArrayData is a simple, fully materialized ArrayData used to
// assemble HOF outputs (array-transform, array-filter results, and the key
// and value arrays backing an ArrayBasedMapData).
type GenericArrayData struct {
	elems []Value
}

var _ ArrayData = (*GenericArrayData)(nil)

// NewGenericArrayData wraps elems directly; Null{} or nil entries are
// treated as SQL NULL.
func NewGenericArrayData(elems []Value) *GenericArrayData {
	return &GenericArrayData{elems: elems}
}

// NewGenericArrayDataOfLength allocates an all-null array of length n, ready
// to be filled in by index (array-transform's allocate-then-fill pattern).
func NewGenericArrayDataOfLength(n int) *GenericArrayData {
	return &GenericArrayData{elems: make([]Value, n)}
}

func (a *GenericArrayData) NumElements() int { return len(a.elems) }

func (a *GenericArrayData) Get(i int, elementType types.DataType) Value {
	v := a.elems[i]
	if IsNull(v) {
		return Null{}
	}
	return v
}

func (a *GenericArrayData) IsNullAt(i int) bool {
	return IsNull(a.elems[i])
}

// Set replaces the value at position i. Used by array-transform to fill a
// pre-allocated output and by the growing buffer in array-filter via
// Append.
func (a *GenericArrayData) Set(i int, v Value) {
	a.elems[i] = v
}

// Append grows the backing slice by one element, used by array-filter's
// order-preserving accumulation pass.
func (a *GenericArrayData) Append(v Value) {
	a.elems = append(a.elems, v)
}

// Elems exposes the backing slice read-only, for callers that need
// positional access without going through the DataType-aware Get.
func (a *GenericArrayData) Elems() []Value {
	return a.elems
}
