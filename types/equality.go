package types

// SameType reports structural equality while ignoring every nullability
// flag in the type tree. Two arrays are SameType if their elements are
// SameType, regardless of either array's or either element's nullability.
func SameType(a, b DataType) bool {
	return EqualsStructurally(a, b, true)
}

// EqualsStructurally compares a and b structurally. When ignoreNullability
// is false, every nullability flag in the tree (the type's own, plus
// element/value nullability for containers) must match exactly. When true,
// all nullability flags are ignored recursively.
func EqualsStructurally(a, b DataType, ignoreNullability bool) bool {
	if a.kind != b.kind {
		return false
	}
	if !ignoreNullability && a.nullable != b.nullable {
		return false
	}
	switch a.kind {
	case Array:
		return EqualsStructurally(*a.element, *b.element, ignoreNullability)
	case Map:
		if !EqualsStructurally(*a.key, *b.key, ignoreNullability) {
			return false
		}
		return EqualsStructurally(*a.value, *b.value, ignoreNullability)
	default:
		return true
	}
}

// CommonTypeDifferingOnlyInNullFlags succeeds when a and b are SameType and
// returns the supertype with the least-nullable flags set: a flag is
// nullable in the result iff it is nullable in both a and b. This is used by
// map-zip-with to compute the output key type from two input key types that
// must already agree structurally.
func CommonTypeDifferingOnlyInNullFlags(a, b DataType) (DataType, bool) {
	if !SameType(a, b) {
		return DataType{}, false
	}
	return leastNullable(a, b), true
}

func leastNullable(a, b DataType) DataType {
	result := a
	result.nullable = a.nullable && b.nullable
	switch a.kind {
	case Array:
		elem := leastNullable(*a.element, *b.element)
		result.element = &elem
	case Map:
		key := leastNullable(*a.key, *b.key)
		val := leastNullable(*a.value, *b.value)
		result.key = &key
		result.value = &val
		result.valueContainsNull = val.nullable
	}
	return result
}
