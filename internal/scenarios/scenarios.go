// Package scenarios builds the seven worked examples (S1–S7) as unbound
// expression trees, for use by both this module's tests and cmd/hofcheck.
package scenarios

import (
	"fmt"

	"github.com/relcore/hofexpr/expr"
	"github.com/relcore/hofexpr/hof"
	"github.com/relcore/hofexpr/internal/ops"
	"github.com/relcore/hofexpr/lambda"
	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

// Scenario bundles an unbound tree with the name used to select it and a
// description of the scenario's expected result.
type Scenario struct {
	Name        string
	Description string
	Tree        expr.Expression
}

func longLiteral(v int64) expr.Expression {
	return expr.NewLiteral(types.NewAtomic(types.Long, false), false, v)
}

func stringLiteral(v string) expr.Expression {
	return expr.NewLiteral(types.NewAtomic(types.String, false), false, v)
}

func longArrayLiteral(vs []int64) expr.Expression {
	elems := make([]values.Value, len(vs))
	for i, v := range vs {
		elems[i] = v
	}
	dt := types.ArrayOf(types.Long, false, false)
	return expr.NewLiteral(dt, false, values.NewGenericArrayData(elems))
}

// longStringMapLiteral builds a Map<Long,String> literal from parallel
// key/value slices.
func longStringMapLiteral(keys []int64, vals []string) expr.Expression {
	keyElems := make([]values.Value, len(keys))
	for i, k := range keys {
		keyElems[i] = k
	}
	valElems := make([]values.Value, len(vals))
	for i, v := range vals {
		valElems[i] = v
	}
	keyType := types.NewAtomic(types.Long, false)
	valType := types.NewAtomic(types.String, false)
	dt := types.NewMap(keyType, valType, false, false)
	m := values.NewArrayBasedMapData(values.NewGenericArrayData(keyElems), values.NewGenericArrayData(valElems))
	return expr.NewLiteral(dt, false, m)
}

// S1 builds transform([[12,99],[123,42],[1]], z -> filter(z, zz -> zz > 50)).
func S1() *Scenario {
	outer := expr.NewLiteral(
		types.ArrayOfType(types.ArrayOf(types.Long, false, false), false, false),
		false,
		values.NewGenericArrayData([]values.Value{
			longArrayLiteralValue([]int64{12, 99}),
			longArrayLiteralValue([]int64{123, 42}),
			longArrayLiteralValue([]int64{1}),
		}),
	)
	z := lambda.NewUnresolvedVariable("z")
	zz := lambda.NewUnresolvedVariable("zz")
	innerFilter := hof.NewFilter(z, lambda.NewFunction(ops.Gt(zz, longLiteral(50)), zz))
	tr := hof.NewTransform(outer, lambda.NewFunction(innerFilter, z))
	return &Scenario{Name: "S1", Description: "transform(array-of-arrays, z -> filter(z, zz -> zz > 50)) = [[99],[123],[]]", Tree: tr}
}

func longArrayLiteralValue(vs []int64) values.Value {
	elems := make([]values.Value, len(vs))
	for i, v := range vs {
		elems[i] = v
	}
	return values.NewGenericArrayData(elems)
}

// S2 builds transform([32,97], (y,i) -> y + i).
func S2() *Scenario {
	y := lambda.NewUnresolvedVariable("y")
	i := lambda.NewUnresolvedVariable("i")
	tr := hof.NewTransform(longArrayLiteral([]int64{32, 97}), lambda.NewFunction(ops.Add(y, i), y, i))
	return &Scenario{Name: "S2", Description: "transform([32,97], (y,i) -> y + i) = [32, 98]", Tree: tr}
}

// S3 builds filter([1,2,3], x -> x % 2 == 1).
func S3() *Scenario {
	x := lambda.NewUnresolvedVariable("x")
	body := ops.Eq(ops.Mod(x, longLiteral(2)), longLiteral(1))
	f := hof.NewFilter(longArrayLiteral([]int64{1, 2, 3}), lambda.NewFunction(body, x))
	return &Scenario{Name: "S3", Description: "filter([1,2,3], x -> x % 2 == 1) = [1,3]", Tree: f}
}

// S4 builds exists([1,2,3], x -> x % 2 == 0).
func S4() *Scenario {
	x := lambda.NewUnresolvedVariable("x")
	body := ops.Eq(ops.Mod(x, longLiteral(2)), longLiteral(0))
	e := hof.NewExists(longArrayLiteral([]int64{1, 2, 3}), lambda.NewFunction(body, x))
	return &Scenario{Name: "S4", Description: "exists([1,2,3], x -> x % 2 == 0) = true", Tree: e}
}

// S5 builds aggregate([1,2,3], 0, (acc,x) -> acc + x, acc -> acc * 10).
func S5() *Scenario {
	acc := lambda.NewUnresolvedVariable("acc")
	x := lambda.NewUnresolvedVariable("x")
	merge := lambda.NewFunction(ops.Add(acc, x), acc, x)
	finishAcc := lambda.NewUnresolvedVariable("acc")
	finish := lambda.NewFunction(ops.Mul(finishAcc, longLiteral(10)), finishAcc)
	a := hof.NewAggregate(longArrayLiteral([]int64{1, 2, 3}), longLiteral(0), merge, finish)
	return &Scenario{Name: "S5", Description: "aggregate([1,2,3], 0, (acc,x) -> acc+x, acc -> acc*10) = 60", Tree: a}
}

// S6 builds map_zip_with({1:"a",2:"b"}, {1:"x",2:"y"}, (k,v1,v2) -> concat(v1,v2)).
func S6() *Scenario {
	k := lambda.NewUnresolvedVariable("k")
	v1 := lambda.NewUnresolvedVariable("v1")
	v2 := lambda.NewUnresolvedVariable("v2")
	body := ops.Concat(v1, v2)
	z := hof.NewMapZipWith(
		longStringMapLiteral([]int64{1, 2}, []string{"a", "b"}),
		longStringMapLiteral([]int64{1, 2}, []string{"x", "y"}),
		lambda.NewFunction(body, k, v1, v2),
	)
	return &Scenario{Name: "S6", Description: `map_zip_with({1:"a",2:"b"}, {1:"x",2:"y"}, (k,v1,v2) -> concat(v1,v2)) = {1:"ax", 2:"by"}`, Tree: z}
}

// S7 builds map_zip_with({1:"a"}, {2:"b"}, (k,v1,v2) -> coalesce(v1,"?") || coalesce(v2,"?")).
func S7() *Scenario {
	k := lambda.NewUnresolvedVariable("k")
	v1 := lambda.NewUnresolvedVariable("v1")
	v2 := lambda.NewUnresolvedVariable("v2")
	body := ops.Concat(ops.Coalesce(v1, stringLiteral("?")), ops.Coalesce(v2, stringLiteral("?")))
	z := hof.NewMapZipWith(
		longStringMapLiteral([]int64{1}, []string{"a"}),
		longStringMapLiteral([]int64{2}, []string{"b"}),
		lambda.NewFunction(body, k, v1, v2),
	)
	return &Scenario{Name: "S7", Description: `map_zip_with({1:"a"}, {2:"b"}, (k,v1,v2) -> coalesce(v1,"?") || coalesce(v2,"?")) = {1:"a?", 2:"?b"}`, Tree: z}
}

// All returns every scenario, S1 through S7.
func All() []*Scenario {
	return []*Scenario{S1(), S2(), S3(), S4(), S5(), S6(), S7()}
}

// ByName looks up a scenario by its S1..S7 name.
func ByName(name string) (*Scenario, error) {
	for _, s := range All() {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("scenarios: unknown scenario %q", name)
}
