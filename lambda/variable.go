package lambda

import (
	"github.com/relcore/hofexpr/expr"
	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

// Variable is a named lambda parameter reference: the only expression node
// whose evaluation reads mutable state rather than a forwarded Row. It
// carries its own DataType and nullability (installed by bind, see
// hof.Binder), a process-wide unique ExprID used to match body references
// to their owning parameter, and the Slot it reads from.
//
// Before bind, a lambda's parameter list holds placeholder Variables with
// Kind()==types.Unknown; Resolved() reports false until bind replaces them.
type Variable struct {
	name     string
	dataType types.DataType
	nullable bool
	id       expr.ID
	slot     *Slot
}

var _ expr.Expression = (*Variable)(nil)

// NewUnresolvedVariable creates a placeholder parameter as produced by the
// analyzer before binding: it has a fresh ExprID and an empty slot, but no
// known type.
func NewUnresolvedVariable(name string) *Variable {
	return &Variable{name: name, id: expr.NewID(), slot: &Slot{}}
}

// NewVariable creates a fully-typed parameter, as installed by a Binder.
func NewVariable(name string, dataType types.DataType, nullable bool) *Variable {
	return &Variable{name: name, dataType: dataType, nullable: nullable, id: expr.NewID(), slot: &Slot{}}
}

// Name returns the parameter name as written in the lambda.
func (v *Variable) Name() string { return v.name }

// ID returns this variable instance's process-wide unique expression id.
func (v *Variable) ID() expr.ID { return v.id }

// Slot exposes the mutable cell this variable reads from, so a HOF's
// evaluation loop can write it.
func (v *Variable) Slot() *Slot { return v.slot }

// WithType returns a copy of v with dataType/nullable installed and a fresh
// ExprID and empty Slot — the typed replacement a Binder constructs for an
// unresolved placeholder.
func (v *Variable) WithType(dataType types.DataType, nullable bool) *Variable {
	return NewVariable(v.name, dataType, nullable)
}

// NewInstance returns a variable with the same name and type but a fresh
// ExprID and an empty slot. Required whenever an expression tree containing
// this variable is duplicated, so that no two live copies share a slot.
func (v *Variable) NewInstance() *Variable {
	nv := NewVariable(v.name, v.dataType, v.nullable)
	return nv
}

// DataType implements expr.Expression.
func (v *Variable) DataType() types.DataType { return v.dataType }

// Nullable implements expr.Expression.
func (v *Variable) Nullable() bool { return v.nullable }

// Children implements expr.Expression; a Variable is always a leaf.
func (v *Variable) Children() []expr.Expression { return nil }

// Resolved implements expr.Expression: true once bind has installed a real
// type.
func (v *Variable) Resolved() bool { return v.dataType.Kind() != types.Unknown }

// Eval implements expr.Expression by reading the current slot value,
// irrespective of row.
func (v *Variable) Eval(row expr.Row) (values.Value, error) {
	return v.slot.Get(), nil
}
