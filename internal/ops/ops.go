// Package ops provides the handful of scalar operators the module's own
// tests and cmd/hofcheck need inside lambda bodies (arithmetic, comparison,
// string concatenation, null coalescing). The embedding query engine
// supplies its own general-purpose expression evaluator in production; this
// package is only the minimum scaffolding to exercise the HOF core end to
// end, one struct per operator rather than a full overload-dispatch
// machinery.
package ops

import (
	"fmt"

	"github.com/relcore/hofexpr/expr"
	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

type binary struct {
	left, right expr.Expression
	dataType    types.DataType
	nullable    bool
	apply       func(a, b values.Value) (values.Value, error)
}

var _ expr.Expression = (*binary)(nil)

func (b *binary) DataType() types.DataType { return b.dataType }
func (b *binary) Nullable() bool           { return b.nullable }
func (b *binary) Children() []expr.Expression { return []expr.Expression{b.left, b.right} }
func (b *binary) Resolved() bool           { return b.left.Resolved() && b.right.Resolved() }

func (b *binary) WithChildren(newChildren []expr.Expression) expr.Expression {
	nb := *b
	nb.left, nb.right = newChildren[0], newChildren[1]
	return &nb
}

func (b *binary) Eval(row expr.Row) (values.Value, error) {
	lv, err := b.left.Eval(row)
	if err != nil {
		return nil, err
	}
	rv, err := b.right.Eval(row)
	if err != nil {
		return nil, err
	}
	if b.nullable && (values.IsNull(lv) || values.IsNull(rv)) {
		return values.Null{}, nil
	}
	return b.apply(lv, rv)
}

func asInt64(v values.Value) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	default:
		panic(fmt.Sprintf("ops: not an integral value: %#v", v))
	}
}

// Add builds `left + right` over Integer/Long operands, result type Long.
func Add(left, right expr.Expression) expr.Expression {
	return &binary{
		left: left, right: right,
		dataType: types.NewAtomic(types.Long, true),
		nullable: true,
		apply: func(a, b values.Value) (values.Value, error) {
			return asInt64(a) + asInt64(b), nil
		},
	}
}

// Mul builds `left * right` over Integer/Long operands, result type Long.
func Mul(left, right expr.Expression) expr.Expression {
	return &binary{
		left: left, right: right,
		dataType: types.NewAtomic(types.Long, true),
		nullable: true,
		apply: func(a, b values.Value) (values.Value, error) {
			return asInt64(a) * asInt64(b), nil
		},
	}
}

// Mod builds `left % right` over Integer/Long operands, result type Long.
func Mod(left, right expr.Expression) expr.Expression {
	return &binary{
		left: left, right: right,
		dataType: types.NewAtomic(types.Long, true),
		nullable: true,
		apply: func(a, b values.Value) (values.Value, error) {
			return asInt64(a) % asInt64(b), nil
		},
	}
}

// Gt builds `left > right` over Integer/Long operands, result type Boolean.
func Gt(left, right expr.Expression) expr.Expression {
	return &binary{
		left: left, right: right,
		dataType: types.NewAtomic(types.Boolean, true),
		nullable: true,
		apply: func(a, b values.Value) (values.Value, error) {
			return asInt64(a) > asInt64(b), nil
		},
	}
}

// Eq builds `left == right` over Integer/Long operands, result type Boolean.
func Eq(left, right expr.Expression) expr.Expression {
	return &binary{
		left: left, right: right,
		dataType: types.NewAtomic(types.Boolean, true),
		nullable: true,
		apply: func(a, b values.Value) (values.Value, error) {
			return asInt64(a) == asInt64(b), nil
		},
	}
}

// Concat builds `left || right` string concatenation, result type String.
// Following the reference source's HOF test fixtures, a null operand
// propagates to a null result (distinct from Coalesce, which exists
// precisely to avoid that).
func Concat(left, right expr.Expression) expr.Expression {
	return &binary{
		left: left, right: right,
		dataType: types.NewAtomic(types.String, true),
		nullable: true,
		apply: func(a, b values.Value) (values.Value, error) {
			return a.(string) + b.(string), nil
		},
	}
}

// Coalesce builds `coalesce(value, fallback)`: value if non-null, fallback
// otherwise. fallback must itself be non-nullable.
func Coalesce(value, fallback expr.Expression) expr.Expression {
	if fallback.DataType().Nullable() {
		panic("ops: Coalesce fallback must be non-nullable")
	}
	return &coalesce{value: value, fallback: fallback}
}

type coalesce struct {
	value, fallback expr.Expression
}

var _ expr.Expression = (*coalesce)(nil)

func (c *coalesce) DataType() types.DataType       { return c.fallback.DataType() }
func (c *coalesce) Nullable() bool                 { return false }
func (c *coalesce) Children() []expr.Expression    { return []expr.Expression{c.value, c.fallback} }
func (c *coalesce) Resolved() bool                 { return c.value.Resolved() && c.fallback.Resolved() }
func (c *coalesce) WithChildren(nc []expr.Expression) expr.Expression {
	return &coalesce{value: nc[0], fallback: nc[1]}
}

func (c *coalesce) Eval(row expr.Row) (values.Value, error) {
	v, err := c.value.Eval(row)
	if err != nil {
		return nil, err
	}
	if !values.IsNull(v) {
		return v, nil
	}
	return c.fallback.Eval(row)
}
