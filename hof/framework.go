// Package hof implements the higher-order function framework and its six
// concrete operators: array transform, filter, exists, aggregate, map
// zip-with, and map filter.
//
// The bookkeeping in base generalizes named function overload resolution
// down to a single node's positional argument/function slots, and each
// operator's Eval loop follows a fold-style per-element evaluation shape.
package hof

import (
	"github.com/relcore/hofexpr/expr"
	"github.com/relcore/hofexpr/internal/errors"
	"github.com/relcore/hofexpr/lambda"
	"github.com/relcore/hofexpr/types"
)

// ExpectedParam is one entry of the parameter schema a HOF computes for a
// lambda it owns: the type and nullability that must materialize inside
// that lambda once bound.
type ExpectedParam struct {
	DataType types.DataType
	Nullable bool
}

// Binder is supplied by the containing analyzer and
// invoked once per owned lambda during Bind. It returns a fully-typed
// replacement lambda whose parameter references have been rewritten to
// point at freshly created, correctly typed Variables, or an error if the
// lambda could not be bound to expectedParams (e.g. wrong arity).
type Binder func(l *lambda.Function, expectedParams []ExpectedParam) (*lambda.Function, error)

// HigherOrderFunction is the interface every one of the six operators
// implements, in addition to expr.Expression.
type HigherOrderFunction interface {
	expr.Expression

	// Arguments returns the non-lambda data-input sub-expressions, in
	// order.
	Arguments() []expr.Expression

	// Functions returns the lambda sub-expressions, in order.
	Functions() []*lambda.Function

	// ArgumentResolved reports whether every entry in Arguments() is
	// resolved, independent of whether Functions() is bound yet.
	ArgumentResolved() bool

	// Bind computes this HOF's expected parameter schema from its
	// (already resolved) arguments, invokes binder once per entry in
	// Functions(), and returns a new HigherOrderFunction with those
	// lambdas replaced by binder's results. Returns a TypeCheckResult
	// describing any analysis-time failure (e.g.
	// AggregateAccumulatorTypeMismatch); on failure the returned
	// HigherOrderFunction is nil.
	Bind(binder Binder) (HigherOrderFunction, errors.TypeCheckResult)
}

// base embeds the bookkeeping shared by every HOF implementation:
// argument/function lists and the resolved/argument-resolved predicates.
// Concrete HOFs embed base and add their own Bind/Eval/DataType.
type base struct {
	arguments []expr.Expression
	functions []*lambda.Function
	// bound is set only by a successful Bind call (see newBoundBase). It
	// exists because a lambda's own Resolved() can be vacuously true for a
	// lambda the embedding analyzer constructed with zero parameters and an
	// already-typed constant body — without this flag such a HOF would
	// report Resolved() before ever passing through its own Bind checks
	// (arity, predicate result type, accumulator type agreement), and the
	// Driver would skip it entirely.
	bound bool
}

func newBase(arguments []expr.Expression, functions []*lambda.Function) base {
	return base{arguments: arguments, functions: functions}
}

// newBoundBase is used by a HOF's Bind method to construct the replacement
// node's embedded base, marking it as having passed this HOF's own bind-time
// checks.
func newBoundBase(arguments []expr.Expression, functions []*lambda.Function) base {
	return base{arguments: arguments, functions: functions, bound: true}
}

func (b base) Arguments() []expr.Expression { return b.arguments }
func (b base) Functions() []*lambda.Function { return b.functions }

func (b base) ArgumentResolved() bool {
	for _, a := range b.arguments {
		if !a.Resolved() {
			return false
		}
	}
	return true
}

// Resolved reports whether this HOF has been bound and every argument and
// every lambda is resolved.
func (b base) Resolved() bool {
	if !b.bound {
		return false
	}
	if !b.ArgumentResolved() {
		return false
	}
	for _, f := range b.functions {
		if !f.Resolved() {
			return false
		}
	}
	return true
}

// Children returns arguments followed by functions, in that order, listing
// data inputs before the pieces that consume them.
func (b base) children() []expr.Expression {
	out := make([]expr.Expression, 0, len(b.arguments)+len(b.functions))
	for _, a := range b.arguments {
		out = append(out, a)
	}
	for _, f := range b.functions {
		out = append(out, f)
	}
	return out
}

// FunctionsForEval rewrites fn's body so that every Variable reference whose
// ID matches one of fn's own parameters points at that exact parameter
// instance, guaranteeing that a slot write by the HOF driver is visible to
// the body's Eval. This undoes any slot-identity break introduced by tree
// cloning or serialization between bind time and evaluation time.
func FunctionsForEval(fn *lambda.Function) *lambda.Function {
	byID := make(map[expr.ID]*lambda.Variable, len(fn.Parameters))
	for _, p := range fn.Parameters {
		byID[p.ID()] = p
	}
	newBody := expr.TransformUp(fn.Body, func(e expr.Expression) expr.Expression {
		v, ok := e.(*lambda.Variable)
		if !ok {
			return e
		}
		if canonical, found := byID[v.ID()]; found {
			return canonical
		}
		return e
	})
	return &lambda.Function{Body: newBody, Parameters: fn.Parameters, Hidden: fn.Hidden}
}
