package hof

import (
	"fmt"

	"github.com/relcore/hofexpr/expr"
	"github.com/relcore/hofexpr/internal/errors"
	"github.com/relcore/hofexpr/lambda"
	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

// Filter implements array-filter: keep only the elements for which the
// lambda evaluates to boolean true, preserving relative order. A null
// predicate result is treated as non-match.
type Filter struct {
	base
}

var _ HigherOrderFunction = (*Filter)(nil)
var _ expr.Rewritable = (*Filter)(nil)

// NewFilter builds an unbound array-filter over array with the given
// single-parameter (element) lambda.
func NewFilter(array expr.Expression, fn *lambda.Function) *Filter {
	return &Filter{base: newBase([]expr.Expression{array}, []*lambda.Function{fn})}
}

func (f *Filter) lambdaFn() *lambda.Function { return f.functions[0] }

// DataType implements expr.Expression: identical to the argument type.
func (f *Filter) DataType() types.DataType { return f.arguments[0].DataType() }

// Nullable implements expr.Expression.
func (f *Filter) Nullable() bool { return f.arguments[0].DataType().Nullable() }

// Children implements expr.Expression.
func (f *Filter) Children() []expr.Expression { return f.children() }

// WithChildren implements expr.Rewritable.
func (f *Filter) WithChildren(newChildren []expr.Expression) expr.Expression {
	nf := *f
	nf.arguments = []expr.Expression{newChildren[0]}
	nf.functions = []*lambda.Function{newChildren[1].(*lambda.Function)}
	return &nf
}

// Bind implements HigherOrderFunction.
func (f *Filter) Bind(binder Binder) (HigherOrderFunction, errors.TypeCheckResult) {
	arrayType := f.arguments[0].DataType()
	if arrayType.Kind() != types.Array {
		return nil, errors.Failure("filter: argument 0 must be an array, got %s", arrayType)
	}
	fn := f.lambdaFn()
	if len(fn.Parameters) != 1 {
		return nil, errors.Failure("filter: lambda must take exactly 1 parameter, got %d", len(fn.Parameters))
	}
	expected := []ExpectedParam{{DataType: arrayType.Element(), Nullable: arrayType.ContainsNull()}}
	bound, err := binder(fn, expected)
	if err != nil {
		return nil, errors.Failure("filter: %v", err)
	}
	if bound.DataType().Kind() != types.Boolean {
		return nil, errors.Failure("filter: predicate must produce boolean, got %s", bound.DataType())
	}
	nf := &Filter{base: newBoundBase(f.arguments, []*lambda.Function{bound})}
	return nf, errors.Success
}

// Eval implements expr.Expression.
func (f *Filter) Eval(row expr.Row) (values.Value, error) {
	arrayVal, err := f.arguments[0].Eval(row)
	if err != nil {
		return nil, err
	}
	if values.IsNull(arrayVal) {
		return values.Null{}, nil
	}
	arr := arrayVal.(values.ArrayData)
	elemType := f.arguments[0].DataType().Element()

	fn := FunctionsForEval(f.lambdaFn())
	elemSlot := fn.Parameters[0].Slot()

	n := arr.NumElements()
	out := values.NewGenericArrayData(make([]values.Value, 0, n))
	for i := 0; i < n; i++ {
		elem := arr.Get(i, elemType)
		elemSlot.Set(elem)
		result, err := fn.Eval(row)
		if err != nil {
			return nil, fmt.Errorf("filter: element %d: %w", i, err)
		}
		if b, ok := result.(bool); ok && b {
			out.Append(elem)
		}
	}
	return out, nil
}
