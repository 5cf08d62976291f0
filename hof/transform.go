package hof

import (
	"fmt"

	"github.com/relcore/hofexpr/expr"
	"github.com/relcore/hofexpr/internal/errors"
	"github.com/relcore/hofexpr/lambda"
	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

// Transform implements array-transform: apply a lambda element-wise (and
// optionally index-wise) over an array, producing an array of the lambda's
// results.
type Transform struct {
	base
}

var _ HigherOrderFunction = (*Transform)(nil)
var _ expr.Rewritable = (*Transform)(nil)

// NewTransform builds an unbound array-transform over array with the given
// lambda, which must have one parameter (element) or two (element, index).
func NewTransform(array expr.Expression, fn *lambda.Function) *Transform {
	return &Transform{base: newBase([]expr.Expression{array}, []*lambda.Function{fn})}
}

func (t *Transform) lambdaFn() *lambda.Function { return t.functions[0] }

// DataType implements expr.Expression: Array{element: body.DataType,
// contains_null: body.Nullable}.
func (t *Transform) DataType() types.DataType {
	body := t.lambdaFn()
	return types.ArrayOfType(body.DataType(), body.Nullable(), t.arguments[0].DataType().Nullable())
}

// Nullable implements expr.Expression: true iff the array argument is
// nullable (null array propagates to null result).
func (t *Transform) Nullable() bool { return t.arguments[0].DataType().Nullable() }

// Children implements expr.Expression.
func (t *Transform) Children() []expr.Expression { return t.children() }

// WithChildren implements expr.Rewritable.
func (t *Transform) WithChildren(newChildren []expr.Expression) expr.Expression {
	nt := *t
	nt.arguments = []expr.Expression{newChildren[0]}
	nt.functions = []*lambda.Function{newChildren[1].(*lambda.Function)}
	return &nt
}

// Bind implements HigherOrderFunction. The expected parameter schema is
// (element_type, array.contains_null), plus (integer, non-null) when the
// lambda as written takes two parameters — the arity-adaptation rule that
// lets the same lambda body optionally observe its element's index.
func (t *Transform) Bind(binder Binder) (HigherOrderFunction, errors.TypeCheckResult) {
	arrayType := t.arguments[0].DataType()
	if arrayType.Kind() != types.Array {
		return nil, errors.Failure("transform: argument 0 must be an array, got %s", arrayType)
	}
	fn := t.lambdaFn()
	expected := []ExpectedParam{{DataType: arrayType.Element(), Nullable: arrayType.ContainsNull()}}
	if len(fn.Parameters) == 2 {
		expected = append(expected, ExpectedParam{DataType: types.NewAtomic(types.Integer, false), Nullable: false})
	} else if len(fn.Parameters) != 1 {
		return nil, errors.Failure("transform: lambda must take 1 or 2 parameters, got %d", len(fn.Parameters))
	}
	bound, err := binder(fn, expected)
	if err != nil {
		return nil, errors.Failure("transform: %v", err)
	}
	nt := &Transform{base: newBoundBase(t.arguments, []*lambda.Function{bound})}
	return nt, errors.Success
}

// Eval implements expr.Expression: allocate an output of the array's
// length, write the element (and index, if present) slot at each position,
// evaluate the body, and store the result.
func (t *Transform) Eval(row expr.Row) (values.Value, error) {
	arrayVal, err := t.arguments[0].Eval(row)
	if err != nil {
		return nil, err
	}
	if values.IsNull(arrayVal) {
		return values.Null{}, nil
	}
	arr := arrayVal.(values.ArrayData)
	elemType := t.arguments[0].DataType().Element()

	fn := FunctionsForEval(t.lambdaFn())
	elemSlot := fn.Parameters[0].Slot()
	var indexSlot *lambda.Slot
	if len(fn.Parameters) == 2 {
		indexSlot = fn.Parameters[1].Slot()
	}

	n := arr.NumElements()
	out := values.NewGenericArrayDataOfLength(n)
	for i := 0; i < n; i++ {
		elemSlot.Set(arr.Get(i, elemType))
		if indexSlot != nil {
			indexSlot.Set(int32(i))
		}
		result, err := fn.Eval(row)
		if err != nil {
			return nil, fmt.Errorf("transform: element %d: %w", i, err)
		}
		out.Set(i, result)
	}
	return out, nil
}
