// Package expr declares the minimal expression-node contract every node in
// the HOF core implements, plus the process-wide expression-id allocator
// used to match lambda-variable references to their owning slot. Row is
// treated as an opaque, forwarded evaluation context, the same way an
// activation is threaded through evaluation without the core ever
// inspecting it.
package expr

import (
	"sync/atomic"

	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

// ID is a process-wide unique, monotonically increasing expression
// identifier. Named-expression instances (lambda variables) carry one; it
// is how a variable reference inside a lambda body is matched to the slot
// its owning HOF writes.
type ID int64

var nextID int64

// NewID allocates a fresh, process-wide unique ID. Safe for concurrent use
// by independent binder goroutines.
func NewID() ID {
	return ID(atomic.AddInt64(&nextID, 1))
}

// Row is the opaque per-evaluation input threaded through Eval calls. The
// HOF core never inspects a Row itself; it is forwarded verbatim to leaf
// expressions supplied by the containing engine (column references,
// literals) and ignored by lambda.Variable, whose Eval reads its slot
// instead.
type Row interface{}

// Expression is the interface every node in the HOF core implements: HOFs,
// lambdas, lambda variables, and whatever leaf/scalar expressions the
// embedding engine plugs in as arguments.
type Expression interface {
	// DataType is the static result type of this expression.
	DataType() types.DataType

	// Nullable reports whether this expression may evaluate to SQL NULL.
	Nullable() bool

	// Children returns this expression's direct sub-expressions in
	// evaluation order.
	Children() []Expression

	// Eval evaluates this expression against row and returns its value.
	Eval(row Row) (values.Value, error)

	// Resolved reports whether this expression (and, recursively, every
	// child) has a fully determined type. An expression containing an
	// unbound lambda is not resolved.
	Resolved() bool
}

// Rewritable is implemented by expression nodes that TransformUp needs to
// rebuild with new children. Leaf nodes (lambda variables, literals, column
// references) have no children and need not implement it.
type Rewritable interface {
	Expression

	// WithChildren returns a copy of this expression with its children
	// replaced by newChildren, which must have the same length as
	// Children().
	WithChildren(newChildren []Expression) Expression
}

// TransformUp performs a post-order (bottom-up) rewrite of e: it first
// transforms every child, rebuilds e over the transformed children (via
// Rewritable, only when at least one child changed), and finally applies fn
// to the resulting node.
func TransformUp(e Expression, fn func(Expression) Expression) Expression {
	children := e.Children()
	if len(children) == 0 {
		return fn(e)
	}
	newChildren := make([]Expression, len(children))
	changed := false
	for i, c := range children {
		newChildren[i] = TransformUp(c, fn)
		if newChildren[i] != c {
			changed = true
		}
	}
	rebuilt := e
	if changed {
		rw, ok := e.(Rewritable)
		if !ok {
			panic("expr: node has children but does not implement Rewritable")
		}
		rebuilt = rw.WithChildren(newChildren)
	}
	return fn(rebuilt)
}
