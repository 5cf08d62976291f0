package hof

import (
	"fmt"

	"github.com/relcore/hofexpr/expr"
	"github.com/relcore/hofexpr/internal/errors"
	"github.com/relcore/hofexpr/lambda"
	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

// MapFilter implements map-filter: the direct analogue of array-filter over
// map entries. Duplicate keys are passed through unchanged — map-filter
// never constructs new keys, so "first occurrence wins" does not apply to
// its output.
type MapFilter struct {
	base
}

var _ HigherOrderFunction = (*MapFilter)(nil)
var _ expr.Rewritable = (*MapFilter)(nil)

// NewMapFilter builds an unbound map-filter over m with the given
// two-parameter (key, value) lambda.
func NewMapFilter(m expr.Expression, fn *lambda.Function) *MapFilter {
	return &MapFilter{base: newBase([]expr.Expression{m}, []*lambda.Function{fn})}
}

func (f *MapFilter) lambdaFn() *lambda.Function { return f.functions[0] }

// DataType implements expr.Expression: identical to the argument map type.
func (f *MapFilter) DataType() types.DataType { return f.arguments[0].DataType() }

// Nullable implements expr.Expression.
func (f *MapFilter) Nullable() bool { return f.arguments[0].DataType().Nullable() }

// Children implements expr.Expression.
func (f *MapFilter) Children() []expr.Expression { return f.children() }

// WithChildren implements expr.Rewritable.
func (f *MapFilter) WithChildren(newChildren []expr.Expression) expr.Expression {
	nf := *f
	nf.arguments = []expr.Expression{newChildren[0]}
	nf.functions = []*lambda.Function{newChildren[1].(*lambda.Function)}
	return &nf
}

// Bind implements HigherOrderFunction.
func (f *MapFilter) Bind(binder Binder) (HigherOrderFunction, errors.TypeCheckResult) {
	mapType := f.arguments[0].DataType()
	if mapType.Kind() != types.Map {
		return nil, errors.Failure("map_filter: argument 0 must be a map, got %s", mapType)
	}
	fn := f.lambdaFn()
	if len(fn.Parameters) != 2 {
		return nil, errors.Failure("map_filter: lambda must take exactly 2 parameters, got %d", len(fn.Parameters))
	}
	expected := []ExpectedParam{
		{DataType: mapType.Key(), Nullable: false},
		{DataType: mapType.Value(), Nullable: mapType.ValueContainsNull()},
	}
	bound, err := binder(fn, expected)
	if err != nil {
		return nil, errors.Failure("map_filter: %v", err)
	}
	if bound.DataType().Kind() != types.Boolean {
		return nil, errors.Failure("map_filter: predicate must produce boolean, got %s", bound.DataType())
	}
	nf := &MapFilter{base: newBoundBase(f.arguments, []*lambda.Function{bound})}
	return nf, errors.Success
}

// Eval implements expr.Expression.
func (f *MapFilter) Eval(row expr.Row) (values.Value, error) {
	mapVal, err := f.arguments[0].Eval(row)
	if err != nil {
		return nil, err
	}
	if values.IsNull(mapVal) {
		return values.Null{}, nil
	}
	m := mapVal.(values.MapData)
	mapType := f.arguments[0].DataType()
	keyType, valType := mapType.Key(), mapType.Value()

	fn := FunctionsForEval(f.lambdaFn())
	keySlot := fn.Parameters[0].Slot()
	valSlot := fn.Parameters[1].Slot()

	n := m.NumElements()
	outKeys := values.NewGenericArrayData(make([]values.Value, 0, n))
	outVals := values.NewGenericArrayData(make([]values.Value, 0, n))
	keys, vals := m.KeyArray(), m.ValueArray()
	for i := 0; i < n; i++ {
		key := keys.Get(i, keyType)
		val := vals.Get(i, valType)
		keySlot.Set(key)
		valSlot.Set(val)
		result, err := fn.Eval(row)
		if err != nil {
			return nil, fmt.Errorf("map_filter: entry %d: %w", i, err)
		}
		if b, ok := result.(bool); ok && b {
			outKeys.Append(key)
			outVals.Append(val)
		}
	}
	return values.NewArrayBasedMapData(outKeys, outVals), nil
}
