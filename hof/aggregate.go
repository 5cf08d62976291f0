package hof

import (
	"fmt"

	"github.com/relcore/hofexpr/expr"
	"github.com/relcore/hofexpr/internal/errors"
	"github.com/relcore/hofexpr/internal/source"
	"github.com/relcore/hofexpr/lambda"
	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

// Aggregate implements array-aggregate: fold merge over the array starting
// from zero, then apply finish to the final accumulator. finish defaults to
// the identity lambda (lambda.NewIdentityFinish) when the caller does not
// supply one.
type Aggregate struct {
	base
}

var _ HigherOrderFunction = (*Aggregate)(nil)
var _ expr.Rewritable = (*Aggregate)(nil)

// NewAggregate builds an unbound array-aggregate. merge must be a
// two-parameter (accumulator, element) lambda. finish may be nil, in which
// case lambda.NewIdentityFinish is installed.
func NewAggregate(array, zero expr.Expression, merge, finish *lambda.Function) *Aggregate {
	if finish == nil {
		finish = lambda.NewIdentityFinish()
	}
	return &Aggregate{base: newBase(
		[]expr.Expression{array, zero},
		[]*lambda.Function{merge, finish},
	)}
}

func (a *Aggregate) mergeFn() *lambda.Function  { return a.functions[0] }
func (a *Aggregate) finishFn() *lambda.Function { return a.functions[1] }

// DataType implements expr.Expression: finish's result type.
func (a *Aggregate) DataType() types.DataType { return a.finishFn().DataType() }

// Nullable implements expr.Expression: nullable if the array is nullable OR
// finish is nullable.
func (a *Aggregate) Nullable() bool {
	return a.arguments[0].DataType().Nullable() || a.finishFn().Nullable()
}

// Children implements expr.Expression.
func (a *Aggregate) Children() []expr.Expression { return a.children() }

// WithChildren implements expr.Rewritable.
func (a *Aggregate) WithChildren(newChildren []expr.Expression) expr.Expression {
	na := *a
	na.arguments = []expr.Expression{newChildren[0], newChildren[1]}
	na.functions = []*lambda.Function{
		newChildren[2].(*lambda.Function),
		newChildren[3].(*lambda.Function),
	}
	return &na
}

// Bind implements HigherOrderFunction. The accumulator parameter type is
// zero's type with nullable forced true (conservative, since merge may
// observe intermediate states zero itself never takes). The element
// parameter type is the array's element type. zero's type must be
// structurally equal to merge's result type ignoring nullability, or bind
// fails with AggregateAccumulatorTypeMismatch.
func (a *Aggregate) Bind(binder Binder) (HigherOrderFunction, errors.TypeCheckResult) {
	arrayType := a.arguments[0].DataType()
	if arrayType.Kind() != types.Array {
		return nil, errors.Failure("aggregate: argument 0 must be an array, got %s", arrayType)
	}
	zeroType := a.arguments[1].DataType()

	mergeFn := a.mergeFn()
	if len(mergeFn.Parameters) != 2 {
		return nil, errors.Failure("aggregate: merge must take exactly 2 parameters, got %d", len(mergeFn.Parameters))
	}
	accExpected := ExpectedParam{DataType: zeroType, Nullable: true}
	elemExpected := ExpectedParam{DataType: arrayType.Element(), Nullable: arrayType.ContainsNull()}
	boundMerge, err := binder(mergeFn, []ExpectedParam{accExpected, elemExpected})
	if err != nil {
		return nil, errors.Failure("aggregate: %v", err)
	}

	if !types.EqualsStructurally(zeroType, boundMerge.DataType(), true) {
		return nil, errors.AggregateAccumulatorTypeMismatch(source.NoLocation, zeroType, boundMerge.DataType())
	}

	finishFn := a.finishFn()
	if len(finishFn.Parameters) != 1 {
		return nil, errors.Failure("aggregate: finish must take exactly 1 parameter, got %d", len(finishFn.Parameters))
	}
	boundFinish, err := binder(finishFn, []ExpectedParam{{DataType: boundMerge.DataType(), Nullable: true}})
	if err != nil {
		return nil, errors.Failure("aggregate: %v", err)
	}

	na := &Aggregate{base: newBoundBase(a.arguments, []*lambda.Function{boundMerge, boundFinish})}
	return na, errors.Success
}

// Eval implements expr.Expression: write zero into the accumulator slot,
// fold merge over the array writing the result back into the accumulator
// slot each iteration, then evaluate finish against the final accumulator.
func (a *Aggregate) Eval(row expr.Row) (values.Value, error) {
	arrayVal, err := a.arguments[0].Eval(row)
	if err != nil {
		return nil, err
	}
	if values.IsNull(arrayVal) {
		return values.Null{}, nil
	}
	zeroVal, err := a.arguments[1].Eval(row)
	if err != nil {
		return nil, err
	}
	arr := arrayVal.(values.ArrayData)
	elemType := a.arguments[0].DataType().Element()

	merge := FunctionsForEval(a.mergeFn())
	accSlot := merge.Parameters[0].Slot()
	elemSlot := merge.Parameters[1].Slot()

	accSlot.Set(zeroVal)
	n := arr.NumElements()
	for i := 0; i < n; i++ {
		elemSlot.Set(arr.Get(i, elemType))
		next, err := merge.Eval(row)
		if err != nil {
			return nil, fmt.Errorf("aggregate: element %d: %w", i, err)
		}
		accSlot.Set(next)
	}

	finish := FunctionsForEval(a.finishFn())
	finish.Parameters[0].Slot().Set(accSlot.Get())
	result, err := finish.Eval(row)
	if err != nil {
		return nil, fmt.Errorf("aggregate: finish: %w", err)
	}
	return result, nil
}
