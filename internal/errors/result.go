// Package errors declares the analysis-time type-check result and the
// concrete failure kinds a HOF bind can report, collapsed to a single
// Success/Failure value: one bind call reports at most one problem.
package errors

import (
	"fmt"

	"github.com/relcore/hofexpr/internal/source"
	"github.com/relcore/hofexpr/types"
)

// TypeCheckResult is the two-state value returned by every HOF's bind-time
// type check: either Success, or Failure carrying a human-readable message.
type TypeCheckResult struct {
	message string // empty means Success
}

// Success is the zero-value, non-failing result.
var Success = TypeCheckResult{}

// Failure builds a failing result from the given formatted message.
func Failure(format string, args ...interface{}) TypeCheckResult {
	return TypeCheckResult{message: fmt.Sprintf(format, args...)}
}

// OK reports whether this result is Success.
func (r TypeCheckResult) OK() bool { return r.message == "" }

// Message returns the failure message, or "" for Success.
func (r TypeCheckResult) Message() string { return r.message }

// ArgumentTypeMismatch builds the Failure for a HOF argument whose type did
// not match what was expected.
func ArgumentTypeMismatch(loc source.Location, index int, expected, actual types.DataType) TypeCheckResult {
	return Failure("argument %d type mismatch at %s: expected %s, got %s", index, loc, expected, actual)
}

// AggregateAccumulatorTypeMismatch builds the Failure for array-aggregate
// when zero's type and merge's result type disagree ignoring nullability.
func AggregateAccumulatorTypeMismatch(loc source.Location, zeroType, mergeType types.DataType) TypeCheckResult {
	return Failure(
		"aggregate accumulator type mismatch at %s: zero has type %s but merge produces %s",
		loc, zeroType, mergeType)
}

// MapZipKeyTypeMismatch builds the Failure for map-zip-with when the two
// input maps' key types are not SameType.
func MapZipKeyTypeMismatch(loc source.Location, leftKey, rightKey types.DataType) TypeCheckResult {
	return Failure(
		"map_zip_with key type mismatch at %s: left map has key type %s, right map has key type %s",
		loc, leftKey, rightKey)
}

// MapZipKeyNotOrderable builds the Failure for map-zip-with when the
// brute-force path is required but the key type has no ordering.
func MapZipKeyNotOrderable(loc source.Location, keyType types.DataType) TypeCheckResult {
	return Failure("map_zip_with key type %s is not orderable at %s", keyType, loc)
}

// RuntimeError is the interface satisfied by every runtime (post-bind)
// failure this module returns from Eval: a typed, inspectable evaluation
// error rather than a bare fmt.Errorf string.
type RuntimeError interface {
	error
	runtimeError()
}

// MapZipSizeExceeded is returned from map-zip-with's Eval when the number of
// distinct keys across both input maps exceeds MaxRoundedArrayLength.
type MapZipSizeExceeded struct {
	Attempted int
	Max       int
}

func (e *MapZipSizeExceeded) Error() string {
	return fmt.Sprintf("map_zip_with: distinct key count %d exceeds maximum array length %d", e.Attempted, e.Max)
}

func (*MapZipSizeExceeded) runtimeError() {}

var _ RuntimeError = (*MapZipSizeExceeded)(nil)
