package hof

import (
	"fmt"
	"math"

	"github.com/relcore/hofexpr/expr"
	"github.com/relcore/hofexpr/internal/errors"
	"github.com/relcore/hofexpr/internal/log"
	"github.com/relcore/hofexpr/internal/source"
	"github.com/relcore/hofexpr/lambda"
	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

// MaxRoundedArrayLength bounds the number of distinct keys map-zip-with may
// produce, mirroring the reference source's MAX_ROUNDED_ARRAY_LENGTH guard.
const MaxRoundedArrayLength = math.MaxInt32 - 15

// MapZipWith implements map-zip-with: key-union, first-wins join of two
// maps, producing a map whose value at each key is the lambda's result over
// (key, left value or null, right value or null).
type MapZipWith struct {
	base
}

var _ HigherOrderFunction = (*MapZipWith)(nil)
var _ expr.Rewritable = (*MapZipWith)(nil)

// NewMapZipWith builds an unbound map-zip-with over map1 and map2 with the
// given three-parameter (key, value1, value2) lambda.
func NewMapZipWith(map1, map2 expr.Expression, fn *lambda.Function) *MapZipWith {
	return &MapZipWith{base: newBase([]expr.Expression{map1, map2}, []*lambda.Function{fn})}
}

func (z *MapZipWith) lambdaFn() *lambda.Function { return z.functions[0] }

// DataType implements expr.Expression: Map{key: common_key_type,
// value: body.DataType, value_contains_null: body.Nullable}.
func (z *MapZipWith) DataType() types.DataType {
	commonKey, _ := types.CommonTypeDifferingOnlyInNullFlags(
		z.arguments[0].DataType().Key(), z.arguments[1].DataType().Key())
	fn := z.lambdaFn()
	return types.NewMap(commonKey, fn.DataType(), fn.Nullable(), z.Nullable())
}

// Nullable implements expr.Expression: null if either map is null.
func (z *MapZipWith) Nullable() bool {
	return z.arguments[0].DataType().Nullable() || z.arguments[1].DataType().Nullable()
}

// Children implements expr.Expression.
func (z *MapZipWith) Children() []expr.Expression { return z.children() }

// WithChildren implements expr.Rewritable.
func (z *MapZipWith) WithChildren(newChildren []expr.Expression) expr.Expression {
	nz := *z
	nz.arguments = []expr.Expression{newChildren[0], newChildren[1]}
	nz.functions = []*lambda.Function{newChildren[2].(*lambda.Function)}
	return &nz
}

// Bind implements HigherOrderFunction.
func (z *MapZipWith) Bind(binder Binder) (HigherOrderFunction, errors.TypeCheckResult) {
	leftType := z.arguments[0].DataType()
	rightType := z.arguments[1].DataType()
	if leftType.Kind() != types.Map {
		return nil, errors.Failure("map_zip_with: argument 0 must be a map, got %s", leftType)
	}
	if rightType.Kind() != types.Map {
		return nil, errors.Failure("map_zip_with: argument 1 must be a map, got %s", rightType)
	}
	leftKey, rightKey := leftType.Key(), rightType.Key()
	if !types.SameType(leftKey, rightKey) {
		return nil, errors.MapZipKeyTypeMismatch(source.NoLocation, leftKey, rightKey)
	}
	commonKey, _ := types.CommonTypeDifferingOnlyInNullFlags(leftKey, rightKey)
	if !types.IsHashable(commonKey) && !types.IsOrderable(commonKey) {
		return nil, errors.MapZipKeyNotOrderable(source.NoLocation, commonKey)
	}

	fn := z.lambdaFn()
	if len(fn.Parameters) != 3 {
		return nil, errors.Failure("map_zip_with: lambda must take exactly 3 parameters, got %d", len(fn.Parameters))
	}
	expected := []ExpectedParam{
		{DataType: commonKey, Nullable: false},
		{DataType: leftType.Value(), Nullable: true},
		{DataType: rightType.Value(), Nullable: true},
	}
	bound, err := binder(fn, expected)
	if err != nil {
		return nil, errors.Failure("map_zip_with: %v", err)
	}

	nz := &MapZipWith{base: newBoundBase(z.arguments, []*lambda.Function{bound})}
	return nz, errors.Success
}

// Eval implements expr.Expression: builds the key-union table (left keys
// scanned first, then right keys — entry order is insertion order), then
// evaluates the lambda once per distinct key.
func (z *MapZipWith) Eval(row expr.Row) (values.Value, error) {
	leftVal, err := z.arguments[0].Eval(row)
	if err != nil {
		return nil, err
	}
	rightVal, err := z.arguments[1].Eval(row)
	if err != nil {
		return nil, err
	}
	if values.IsNull(leftVal) || values.IsNull(rightVal) {
		return values.Null{}, nil
	}
	leftMap := leftVal.(values.MapData)
	rightMap := rightVal.(values.MapData)

	leftType := z.arguments[0].DataType()
	rightType := z.arguments[1].DataType()
	leftKeyType, leftValType := leftType.Key(), leftType.Value()
	rightKeyType, rightValType := rightType.Key(), rightType.Value()
	commonKey, _ := types.CommonTypeDifferingOnlyInNullFlags(leftKeyType, rightKeyType)

	idx := newKeyIndex(commonKey)
	if types.IsHashable(commonKey) {
		log.V(2).Infof("map_zip_with: using hash-based key index for type %s", commonKey)
	} else {
		log.V(2).Infof("map_zip_with: using brute-force key index for type %s", commonKey)
	}

	leftKeys := leftMap.KeyArray()
	for i := 0; i < leftMap.NumElements(); i++ {
		idx.observeLeft(leftKeys.Get(i, leftKeyType), i)
	}
	rightKeys := rightMap.KeyArray()
	for i := 0; i < rightMap.NumElements(); i++ {
		idx.observeRight(rightKeys.Get(i, rightKeyType), i)
	}

	if idx.size() > MaxRoundedArrayLength {
		return nil, &errors.MapZipSizeExceeded{Attempted: idx.size(), Max: MaxRoundedArrayLength}
	}

	fn := FunctionsForEval(z.lambdaFn())
	keySlot := fn.Parameters[0].Slot()
	val1Slot := fn.Parameters[1].Slot()
	val2Slot := fn.Parameters[2].Slot()

	leftVals := leftMap.ValueArray()
	rightVals := rightMap.ValueArray()

	entries := idx.entries()
	outKeys := values.NewGenericArrayData(make([]values.Value, 0, len(entries)))
	outVals := values.NewGenericArrayData(make([]values.Value, 0, len(entries)))
	for _, e := range entries {
		keySlot.Set(e.key)
		if e.leftIdx >= 0 {
			val1Slot.Set(leftVals.Get(e.leftIdx, leftValType))
		} else {
			val1Slot.Set(values.Null{})
		}
		if e.rightIdx >= 0 {
			val2Slot.Set(rightVals.Get(e.rightIdx, rightValType))
		} else {
			val2Slot.Set(values.Null{})
		}
		result, err := fn.Eval(row)
		if err != nil {
			return nil, fmt.Errorf("map_zip_with: key %v: %w", e.key, err)
		}
		outKeys.Append(e.key)
		outVals.Append(result)
	}
	return values.NewArrayBasedMapData(outKeys, outVals), nil
}
