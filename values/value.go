// Package values provides the uniform runtime value representation consumed
// and produced by expression evaluation: scalars are plain Go values boxed
// as interface{}, SQL NULL is the typed Null sentinel, and the two
// structural containers (ArrayData, MapData) are read-only indexed views
// with generic writable implementations for assembling HOF results.
package values

// Value is the uniform representation every Expression.Eval returns. It is
// one of: nil (SQL NULL without a Null wrapper — evaluators may use either
// nil or Null{}, IsNull treats both the same), bool, int32, int64, float32,
// float64, string, []byte, time.Time, Decimal, ArrayData, or MapData.
type Value interface{}

// Null is an explicit SQL NULL marker. Container Get implementations return
// Null{} (rather than bare nil) for null-typed positions so that callers
// who type-switch on Value can distinguish "no container entry" errors from
// a genuine SQL NULL; IsNull accepts either form.
type Null struct{}

// IsNull reports whether v represents SQL NULL, whether expressed as a bare
// nil interface or the explicit Null{} marker.
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}

// Decimal is a fixed-point decimal value, modeled as unscaled integer
// digits plus a scale, avoiding float64 for exact numeric types.
type Decimal struct {
	Unscaled int64
	Scale    int32
}
