package hof

import (
	"fmt"

	"github.com/relcore/hofexpr/expr"
	"github.com/relcore/hofexpr/internal/errors"
	"github.com/relcore/hofexpr/lambda"
	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

// Exists implements array-exists: a short-circuiting scan that returns true
// on the first element for which the lambda evaluates to true, false
// otherwise. A null predicate result does not satisfy the scan and does not
// short-circuit it.
type Exists struct {
	base
}

var _ HigherOrderFunction = (*Exists)(nil)
var _ expr.Rewritable = (*Exists)(nil)

// NewExists builds an unbound array-exists over array with the given
// single-parameter (element) lambda.
func NewExists(array expr.Expression, fn *lambda.Function) *Exists {
	return &Exists{base: newBase([]expr.Expression{array}, []*lambda.Function{fn})}
}

func (e *Exists) lambdaFn() *lambda.Function { return e.functions[0] }

// DataType implements expr.Expression: always boolean.
func (e *Exists) DataType() types.DataType { return types.NewAtomic(types.Boolean, false) }

// Nullable implements expr.Expression: nullable iff the argument array is
// nullable; a non-null array always produces a non-null boolean.
func (e *Exists) Nullable() bool { return e.arguments[0].DataType().Nullable() }

// Children implements expr.Expression.
func (e *Exists) Children() []expr.Expression { return e.children() }

// WithChildren implements expr.Rewritable.
func (e *Exists) WithChildren(newChildren []expr.Expression) expr.Expression {
	ne := *e
	ne.arguments = []expr.Expression{newChildren[0]}
	ne.functions = []*lambda.Function{newChildren[1].(*lambda.Function)}
	return &ne
}

// Bind implements HigherOrderFunction.
func (e *Exists) Bind(binder Binder) (HigherOrderFunction, errors.TypeCheckResult) {
	arrayType := e.arguments[0].DataType()
	if arrayType.Kind() != types.Array {
		return nil, errors.Failure("exists: argument 0 must be an array, got %s", arrayType)
	}
	fn := e.lambdaFn()
	if len(fn.Parameters) != 1 {
		return nil, errors.Failure("exists: lambda must take exactly 1 parameter, got %d", len(fn.Parameters))
	}
	expected := []ExpectedParam{{DataType: arrayType.Element(), Nullable: arrayType.ContainsNull()}}
	bound, err := binder(fn, expected)
	if err != nil {
		return nil, errors.Failure("exists: %v", err)
	}
	if bound.DataType().Kind() != types.Boolean {
		return nil, errors.Failure("exists: predicate must produce boolean, got %s", bound.DataType())
	}
	ne := &Exists{base: newBoundBase(e.arguments, []*lambda.Function{bound})}
	return ne, errors.Success
}

// Eval implements expr.Expression.
func (e *Exists) Eval(row expr.Row) (values.Value, error) {
	arrayVal, err := e.arguments[0].Eval(row)
	if err != nil {
		return nil, err
	}
	if values.IsNull(arrayVal) {
		return values.Null{}, nil
	}
	arr := arrayVal.(values.ArrayData)
	elemType := e.arguments[0].DataType().Element()

	fn := FunctionsForEval(e.lambdaFn())
	elemSlot := fn.Parameters[0].Slot()

	n := arr.NumElements()
	for i := 0; i < n; i++ {
		elemSlot.Set(arr.Get(i, elemType))
		result, err := fn.Eval(row)
		if err != nil {
			return nil, fmt.Errorf("exists: element %d: %w", i, err)
		}
		if b, ok := result.(bool); ok && b {
			return true, nil
		}
	}
	return false, nil
}
