package ops_test

import (
	"testing"

	"github.com/relcore/hofexpr/expr"
	"github.com/relcore/hofexpr/internal/ops"
	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

func longLit(v int64) expr.Expression {
	return expr.NewLiteral(types.NewAtomic(types.Long, false), false, v)
}

func nullLongLit() expr.Expression {
	return expr.NewLiteral(types.NewAtomic(types.Long, true), true, values.Null{})
}

func eval(t *testing.T, e expr.Expression) values.Value {
	t.Helper()
	v, err := e.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	return v
}

func TestArithmetic(t *testing.T) {
	if got := eval(t, ops.Add(longLit(2), longLit(3))); got != int64(5) {
		t.Errorf("Add(2,3) = %v, want 5", got)
	}
	if got := eval(t, ops.Mul(longLit(2), longLit(3))); got != int64(6) {
		t.Errorf("Mul(2,3) = %v, want 6", got)
	}
	if got := eval(t, ops.Mod(longLit(7), longLit(3))); got != int64(1) {
		t.Errorf("Mod(7,3) = %v, want 1", got)
	}
}

func TestComparison(t *testing.T) {
	if got := eval(t, ops.Gt(longLit(5), longLit(3))); got != true {
		t.Errorf("Gt(5,3) = %v, want true", got)
	}
	if got := eval(t, ops.Eq(longLit(3), longLit(3))); got != true {
		t.Errorf("Eq(3,3) = %v, want true", got)
	}
}

func TestBinaryPropagatesNull(t *testing.T) {
	if got := eval(t, ops.Add(longLit(1), nullLongLit())); !values.IsNull(got) {
		t.Errorf("Add(1,null) = %v, want Null{}", got)
	}
}

func TestConcat(t *testing.T) {
	left := expr.NewLiteral(types.NewAtomic(types.String, false), false, "foo")
	right := expr.NewLiteral(types.NewAtomic(types.String, false), false, "bar")
	if got := eval(t, ops.Concat(left, right)); got != "foobar" {
		t.Errorf("Concat(foo,bar) = %v, want foobar", got)
	}
}

func TestCoalesceReturnsValueWhenNonNull(t *testing.T) {
	value := expr.NewLiteral(types.NewAtomic(types.String, true), true, "present")
	fallback := expr.NewLiteral(types.NewAtomic(types.String, false), false, "fallback")
	if got := eval(t, ops.Coalesce(value, fallback)); got != "present" {
		t.Errorf("Coalesce(present, fallback) = %v, want present", got)
	}
}

func TestCoalesceReturnsFallbackWhenNull(t *testing.T) {
	value := expr.NewLiteral(types.NewAtomic(types.String, true), true, values.Null{})
	fallback := expr.NewLiteral(types.NewAtomic(types.String, false), false, "fallback")
	if got := eval(t, ops.Coalesce(value, fallback)); got != "fallback" {
		t.Errorf("Coalesce(null, fallback) = %v, want fallback", got)
	}
}

func TestCoalescePanicsOnNullableFallback(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Coalesce with a nullable fallback did not panic")
		}
	}()
	value := expr.NewLiteral(types.NewAtomic(types.String, true), true, values.Null{})
	fallback := expr.NewLiteral(types.NewAtomic(types.String, true), true, values.Null{})
	ops.Coalesce(value, fallback)
}
