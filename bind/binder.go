// Package bind provides a reference implementation of the two collaborators
// the HOF core requires but treats as external: the Binder callback that
// materializes a lambda's parameters, and the Driver that walks a
// resolved-except-for-lambdas tree and invokes Bind on every
// HigherOrderFunction it finds.
package bind

import (
	"fmt"

	"github.com/relcore/hofexpr/expr"
	"github.com/relcore/hofexpr/hof"
	"github.com/relcore/hofexpr/internal/log"
	"github.com/relcore/hofexpr/lambda"
)

// NewSimpleBinder returns a hof.Binder that materializes expectedParams into
// fresh, fully-typed lambda.Variables and rewrites l's body so every
// reference to one of l's original (unresolved) parameters points at the
// matching fresh variable instead. It is "simple" in that it matches
// parameters to expectedParams strictly by position, which is exactly the
// contract hof.HigherOrderFunction.Bind already guarantees by the time it
// calls the Binder (arity adaptation has already happened).
func NewSimpleBinder() hof.Binder {
	return func(l *lambda.Function, expectedParams []hof.ExpectedParam) (*lambda.Function, error) {
		if len(l.Parameters) != len(expectedParams) {
			return nil, fmt.Errorf("bind: lambda has %d parameters, expected %d", len(l.Parameters), len(expectedParams))
		}
		newParams := make([]*lambda.Variable, len(expectedParams))
		byOldID := make(map[expr.ID]*lambda.Variable, len(expectedParams))
		for i, p := range expectedParams {
			old := l.Parameters[i]
			fresh := lambda.NewVariable(old.Name(), p.DataType, p.Nullable)
			newParams[i] = fresh
			byOldID[old.ID()] = fresh
		}
		newBody := expr.TransformUp(l.Body, func(e expr.Expression) expr.Expression {
			v, ok := e.(*lambda.Variable)
			if !ok {
				return e
			}
			if fresh, found := byOldID[v.ID()]; found {
				return fresh
			}
			return e
		})
		return &lambda.Function{Body: newBody, Parameters: newParams, Hidden: l.Hidden}, nil
	}
}

// Driver walks an expression tree bottom-up and binds every
// HigherOrderFunction it finds whose arguments are already resolved, using
// a single Binder for the whole tree.
type Driver struct {
	binder hof.Binder
}

// NewDriver builds a Driver that binds every HOF it finds with binder.
func NewDriver(binder hof.Binder) *Driver {
	return &Driver{binder: binder}
}

// maxPasses bounds the fixed-point loop in Bind. A HOF tree nests at most
// as deep as the source expression was written, so in practice two or three
// passes suffice; this is a backstop against a malformed tree that can never
// reach a fixed point.
const maxPasses = 64

// Bind repeatedly rewrites root bottom-up until a full pass binds nothing
// new (a fixed point), replacing every argument-resolved, not-yet-bound
// HigherOrderFunction with the result of its Bind call.
//
// A single bottom-up pass is not enough: when one HOF's lambda parameter is
// itself the array/map argument of a HOF nested in its body (scenario S1,
// filter(z, ...) inside transform(..., z -> ...)), the inner HOF's argument
// is only resolved once the outer HOF's Bind call installs z's real type —
// but the inner HOF sits lower in the tree and is visited first in any
// single post-order pass. Looping to a fixed point applies the resolution
// rule repeatedly until the tree stops changing, rather than assuming one
// traversal suffices.
func (d *Driver) Bind(root expr.Expression) (expr.Expression, error) {
	current := root
	for pass := 0; pass < maxPasses; pass++ {
		var bindErr error
		changed := false
		next := expr.TransformUp(current, func(e expr.Expression) expr.Expression {
			if bindErr != nil {
				return e
			}
			h, ok := e.(hof.HigherOrderFunction)
			if !ok {
				return e
			}
			if h.Resolved() {
				return e
			}
			if !h.ArgumentResolved() {
				return e
			}
			bound, checkResult := h.Bind(d.binder)
			if !checkResult.OK() {
				bindErr = fmt.Errorf("bind: %s", checkResult.Message())
				return e
			}
			changed = true
			log.V(2).Infof("bind: bound %T on pass %d", bound, pass)
			return bound
		})
		if bindErr != nil {
			return nil, bindErr
		}
		current = next
		if !changed {
			return current, nil
		}
	}
	return nil, fmt.Errorf("bind: did not reach a fixed point after %d passes", maxPasses)
}
