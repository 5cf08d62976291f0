package hof_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/relcore/hofexpr/bind"
	"github.com/relcore/hofexpr/expr"
	"github.com/relcore/hofexpr/hof"
	"github.com/relcore/hofexpr/internal/ops"
	"github.com/relcore/hofexpr/internal/scenarios"
	"github.com/relcore/hofexpr/lambda"
	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

func longLiteral(v int64) expr.Expression {
	return expr.NewLiteral(types.NewAtomic(types.Long, false), false, v)
}

func longArrayLiteral(vs []int64) expr.Expression {
	elems := make([]values.Value, len(vs))
	for i, v := range vs {
		elems[i] = v
	}
	return expr.NewLiteral(types.ArrayOf(types.Long, false, false), false, values.NewGenericArrayData(elems))
}

func nullLongArray() expr.Expression {
	return expr.NewLiteral(types.ArrayOf(types.Long, false, true), true, values.Null{})
}

func driver() *bind.Driver { return bind.NewDriver(bind.NewSimpleBinder()) }

func mustBind(t *testing.T, tree expr.Expression) expr.Expression {
	t.Helper()
	bound, err := driver().Bind(tree)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if !bound.Resolved() {
		t.Fatalf("Bind() returned an unresolved tree: %#v", bound)
	}
	return bound
}

func arrayValues(t *testing.T, v values.Value, elemType types.DataType) []values.Value {
	t.Helper()
	arr, ok := v.(values.ArrayData)
	if !ok {
		t.Fatalf("result %v is not an ArrayData", v)
	}
	out := make([]values.Value, arr.NumElements())
	for i := range out {
		out[i] = arr.Get(i, elemType)
	}
	return out
}

func TestTransformOneParam(t *testing.T) {
	x := lambda.NewUnresolvedVariable("x")
	tr := hof.NewTransform(longArrayLiteral([]int64{1, 2, 3}), lambda.NewFunction(ops.Add(x, longLiteral(10)), x))
	bound := mustBind(t, tr)

	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	got := arrayValues(t, result, types.NewAtomic(types.Long, false))
	want := []values.Value{int64(11), int64(12), int64(13)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transform result mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformTwoParamsArityAdaptation(t *testing.T) {
	s := scenarios.S2()
	bound := mustBind(t, s.Tree)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	got := arrayValues(t, result, types.NewAtomic(types.Long, false))
	want := []values.Value{int64(32), int64(98)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("%s result mismatch (-want +got):\n%s", s.Name, diff)
	}
}

func TestTransformOnNullArrayPropagatesNull(t *testing.T) {
	x := lambda.NewUnresolvedVariable("x")
	tr := hof.NewTransform(nullLongArray(), lambda.NewFunction(ops.Add(x, longLiteral(1)), x))
	bound := mustBind(t, tr)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if !values.IsNull(result) {
		t.Errorf("Eval() on null array = %v, want Null{}", result)
	}
}

func TestNestedHOFScenarioS1(t *testing.T) {
	s := scenarios.S1()
	bound := mustBind(t, s.Tree)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	innerType := types.ArrayOf(types.Long, false, false)
	outer, ok := result.(values.ArrayData)
	if !ok {
		t.Fatalf("result %v is not an ArrayData", result)
	}
	if outer.NumElements() != 3 {
		t.Fatalf("NumElements() = %d, want 3", outer.NumElements())
	}
	want := [][]values.Value{
		{int64(99)},
		{int64(123)},
		{},
	}
	for i, w := range want {
		got := arrayValues(t, outer.Get(i, innerType), types.NewAtomic(types.Long, false))
		if diff := cmp.Diff(w, got); diff != "" {
			t.Errorf("element %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestFilterScenarioS3(t *testing.T) {
	s := scenarios.S3()
	bound := mustBind(t, s.Tree)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	got := arrayValues(t, result, types.NewAtomic(types.Long, false))
	want := []values.Value{int64(1), int64(3)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filter result mismatch (-want +got):\n%s", diff)
	}
}

// nullWhenEven is a boolean predicate fixture that evaluates to Null{}
// for even operands and true otherwise, used to exercise the
// null-predicate-means-non-match contract.
type nullWhenEven struct {
	operand expr.Expression
}

func (n *nullWhenEven) DataType() types.DataType { return types.NewAtomic(types.Boolean, true) }
func (n *nullWhenEven) Nullable() bool           { return true }
func (n *nullWhenEven) Children() []expr.Expression {
	return []expr.Expression{n.operand}
}
func (n *nullWhenEven) Resolved() bool { return n.operand.Resolved() }
func (n *nullWhenEven) WithChildren(nc []expr.Expression) expr.Expression {
	return &nullWhenEven{operand: nc[0]}
}
func (n *nullWhenEven) Eval(row expr.Row) (values.Value, error) {
	v, err := n.operand.Eval(row)
	if err != nil {
		return nil, err
	}
	if v.(int64)%2 == 0 {
		return values.Null{}, nil
	}
	return true, nil
}

func TestFilterTreatsNullPredicateAsNonMatch(t *testing.T) {
	x := lambda.NewUnresolvedVariable("x")
	f := hof.NewFilter(longArrayLiteral([]int64{1, 2, 3, 4}), lambda.NewFunction(&nullWhenEven{operand: x}, x))
	bound := mustBind(t, f)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	got := arrayValues(t, result, types.NewAtomic(types.Long, false))
	want := []values.Value{int64(1), int64(3)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filter result mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterRejectsWrongArity(t *testing.T) {
	body := expr.NewLiteral(types.NewAtomic(types.Boolean, false), false, true)
	f := hof.NewFilter(longArrayLiteral([]int64{1, 2}), lambda.NewFunction(body))
	if _, err := driver().Bind(f); err == nil {
		t.Fatal("Bind() with a zero-parameter filter lambda succeeded, want an arity error")
	}
}

func TestExistsScenarioS4(t *testing.T) {
	s := scenarios.S4()
	bound := mustBind(t, s.Tree)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if result != true {
		t.Errorf("Eval() = %v, want true", result)
	}
}

func TestExistsTrueWhenAnElementMatches(t *testing.T) {
	x := lambda.NewUnresolvedVariable("x")
	body := ops.Eq(x, longLiteral(2))
	e := hof.NewExists(longArrayLiteral([]int64{1, 2, 3}), lambda.NewFunction(body, x))
	bound := mustBind(t, e)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if result != true {
		t.Errorf("Eval() = %v, want true", result)
	}
}

func TestExistsOnEmptyArrayIsFalse(t *testing.T) {
	x := lambda.NewUnresolvedVariable("x")
	body := ops.Eq(x, longLiteral(2))
	e := hof.NewExists(longArrayLiteral(nil), lambda.NewFunction(body, x))
	bound := mustBind(t, e)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if result != false {
		t.Errorf("Eval() = %v, want false", result)
	}
}

func TestAggregateScenarioS5(t *testing.T) {
	s := scenarios.S5()
	bound := mustBind(t, s.Tree)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if result != int64(60) {
		t.Errorf("Eval() = %v, want 60", result)
	}
}

func TestAggregateDefaultFinishIsIdentity(t *testing.T) {
	acc := lambda.NewUnresolvedVariable("acc")
	x := lambda.NewUnresolvedVariable("x")
	merge := lambda.NewFunction(ops.Add(acc, x), acc, x)
	a := hof.NewAggregate(longArrayLiteral([]int64{1, 2, 3}), longLiteral(0), merge, nil)
	bound := mustBind(t, a)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if result != int64(6) {
		t.Errorf("Eval() = %v, want 6 (identity finish over sum)", result)
	}
}

func TestAggregateAccumulatorTypeMismatchFailsBind(t *testing.T) {
	acc := lambda.NewUnresolvedVariable("acc")
	x := lambda.NewUnresolvedVariable("x")
	// merge's body is a boolean, but zero is a Long: accumulator types
	// disagree and Bind must fail.
	merge := lambda.NewFunction(ops.Eq(acc, x), acc, x)
	a := hof.NewAggregate(longArrayLiteral([]int64{1, 2}), longLiteral(0), merge, nil)
	if _, err := driver().Bind(a); err == nil {
		t.Fatal("Bind() succeeded despite accumulator/merge type mismatch")
	}
}

func TestAggregateOnNullArrayPropagatesNull(t *testing.T) {
	acc := lambda.NewUnresolvedVariable("acc")
	x := lambda.NewUnresolvedVariable("x")
	merge := lambda.NewFunction(ops.Add(acc, x), acc, x)
	a := hof.NewAggregate(nullLongArray(), longLiteral(0), merge, nil)
	bound := mustBind(t, a)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if !values.IsNull(result) {
		t.Errorf("Eval() on null array = %v, want Null{}", result)
	}
}

func TestMapFilter(t *testing.T) {
	k := lambda.NewUnresolvedVariable("k")
	v := lambda.NewUnresolvedVariable("v")
	keys := values.NewGenericArrayData([]values.Value{int64(1), int64(2), int64(3)})
	vals := values.NewGenericArrayData([]values.Value{"a", "b", "c"})
	m := expr.NewLiteral(
		types.NewMap(types.NewAtomic(types.Long, false), types.NewAtomic(types.String, false), false, false),
		false,
		values.NewArrayBasedMapData(keys, vals),
	)
	body := ops.Eq(ops.Mod(k, longLiteral(2)), longLiteral(0))
	mf := hof.NewMapFilter(m, lambda.NewFunction(body, k, v))
	bound := mustBind(t, mf)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	out := result.(values.MapData)
	if out.NumElements() != 1 {
		t.Fatalf("NumElements() = %d, want 1", out.NumElements())
	}
	keyType, valType := types.NewAtomic(types.Long, false), types.NewAtomic(types.String, false)
	if got := out.KeyArray().Get(0, keyType); got != int64(2) {
		t.Errorf("remaining key = %v, want 2", got)
	}
	if got := out.ValueArray().Get(0, valType); got != "b" {
		t.Errorf("remaining value = %v, want %q", got, "b")
	}
}

func TestMapZipWithScenarioS6(t *testing.T) {
	s := scenarios.S6()
	bound := mustBind(t, s.Tree)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	out := result.(values.MapData)
	keyType, valType := types.NewAtomic(types.Long, false), types.NewAtomic(types.String, false)
	got := map[int64]string{}
	for i := 0; i < out.NumElements(); i++ {
		k := out.KeyArray().Get(i, keyType).(int64)
		v := out.ValueArray().Get(i, valType).(string)
		got[k] = v
	}
	want := map[int64]string{1: "ax", 2: "by"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("map_zip_with result mismatch (-want +got):\n%s", diff)
	}
}

func TestMapZipWithScenarioS7KeyUnionWithCoalesce(t *testing.T) {
	s := scenarios.S7()
	bound := mustBind(t, s.Tree)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	out := result.(values.MapData)
	keyType, valType := types.NewAtomic(types.Long, false), types.NewAtomic(types.String, false)
	got := map[int64]string{}
	for i := 0; i < out.NumElements(); i++ {
		k := out.KeyArray().Get(i, keyType).(int64)
		v := out.ValueArray().Get(i, valType).(string)
		got[k] = v
	}
	want := map[int64]string{1: "a?", 2: "?b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("map_zip_with result mismatch (-want +got):\n%s", diff)
	}
}

func TestMapZipWithKeyTypeMismatchFailsBind(t *testing.T) {
	k := lambda.NewUnresolvedVariable("k")
	v1 := lambda.NewUnresolvedVariable("v1")
	v2 := lambda.NewUnresolvedVariable("v2")
	longKeys := values.NewGenericArrayData([]values.Value{int64(1)})
	strKeys := values.NewGenericArrayData([]values.Value{"1"})
	vals := values.NewGenericArrayData([]values.Value{"a"})
	m1 := expr.NewLiteral(
		types.NewMap(types.NewAtomic(types.Long, false), types.NewAtomic(types.String, false), false, false),
		false, values.NewArrayBasedMapData(longKeys, vals))
	m2 := expr.NewLiteral(
		types.NewMap(types.NewAtomic(types.String, false), types.NewAtomic(types.String, false), false, false),
		false, values.NewArrayBasedMapData(strKeys, vals))
	body := ops.Concat(v1, v2)
	z := hof.NewMapZipWith(m1, m2, lambda.NewFunction(body, k, v1, v2))
	if _, err := driver().Bind(z); err == nil {
		t.Fatal("Bind() succeeded despite mismatched key types")
	}
}

func TestMapZipWithOnNullMapPropagatesNull(t *testing.T) {
	k := lambda.NewUnresolvedVariable("k")
	v1 := lambda.NewUnresolvedVariable("v1")
	v2 := lambda.NewUnresolvedVariable("v2")
	mapType := types.NewMap(types.NewAtomic(types.Long, false), types.NewAtomic(types.String, false), false, false)
	m1 := expr.NewLiteral(mapType, false, values.NewArrayBasedMapData(
		values.NewGenericArrayData([]values.Value{int64(1)}), values.NewGenericArrayData([]values.Value{"a"})))
	nullMap := expr.NewLiteral(mapType.WithNullable(true), true, values.Null{})
	body := ops.Concat(v1, v2)
	z := hof.NewMapZipWith(m1, nullMap, lambda.NewFunction(body, k, v1, v2))
	bound := mustBind(t, z)
	result, err := bound.Eval(nil)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if !values.IsNull(result) {
		t.Errorf("Eval() on null map = %v, want Null{}", result)
	}
}
