package lambda

import (
	"github.com/relcore/hofexpr/expr"
	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

// Function bundles a lambda body with its ordered parameter list. Its
// DataType and Nullable forward to the body; the parameter list order
// defines argument positions when a HOF invokes it. Hidden marks a lambda
// whose parameters are bookkeeping-only (the default identity finish, see
// NewIdentityFinish) and must not be surfaced to outer resolution/printing.
type Function struct {
	Body       expr.Expression
	Parameters []*Variable
	Hidden     bool
}

var _ expr.Expression = (*Function)(nil)

// NewFunction builds a lambda from a body and its ordered parameters.
func NewFunction(body expr.Expression, params ...*Variable) *Function {
	return &Function{Body: body, Parameters: params}
}

// NewIdentityFinish builds the default `finish` lambda for array-aggregate
// when the caller supplies none: a single hidden, as-yet-unresolved
// parameter named "acc" whose body simply evaluates to that parameter. Like any other
// lambda it is bound to its real type later, during HigherOrderFunction.Bind
// — the hidden flag only marks it as bookkeeping-only so it is never
// surfaced to outer resolution or printing.
func NewIdentityFinish() *Function {
	acc := NewUnresolvedVariable("acc")
	return &Function{Body: acc, Parameters: []*Variable{acc}, Hidden: true}
}

// DataType implements expr.Expression by forwarding to the body.
func (f *Function) DataType() types.DataType { return f.Body.DataType() }

// Nullable implements expr.Expression by forwarding to the body.
func (f *Function) Nullable() bool { return f.Body.Nullable() }

// Children implements expr.Expression: the body is the lambda's sole child.
// Parameters are intentionally excluded — they are referenced by ID from
// within the body, not walked as independent children, matching the
// HOF framework's body-rewrite contract (see hof.FunctionsForEval).
func (f *Function) Children() []expr.Expression { return []expr.Expression{f.Body} }

// WithChildren implements expr.Rewritable.
func (f *Function) WithChildren(newChildren []expr.Expression) expr.Expression {
	nf := *f
	nf.Body = newChildren[0]
	return &nf
}

// Resolved reports whether the body is resolved and every parameter has a
// known type (Bound).
func (f *Function) Resolved() bool {
	if !f.Bound() {
		return false
	}
	return f.Body.Resolved()
}

// Bound reports whether every parameter in this lambda has a known type.
func (f *Function) Bound() bool {
	for _, p := range f.Parameters {
		if !p.Resolved() {
			return false
		}
	}
	return true
}

// Eval implements expr.Expression by evaluating the body. The caller (a
// HOF's evaluation loop) is responsible for writing each parameter's Slot
// before calling Eval.
func (f *Function) Eval(row expr.Row) (values.Value, error) {
	return f.Body.Eval(row)
}
