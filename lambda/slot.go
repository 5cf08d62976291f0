// Package lambda implements the two pieces of mutable state inside an
// otherwise immutable expression tree: the per-parameter Slot a HOF driver
// writes between evaluations of a lambda body, and the Variable/Function
// nodes that reference it.
//
// A Slot plays the same role as a single-entry activation in a
// name-resolution chain — a single-writer/single-reader cell threaded
// through one evaluation — except it is held directly by the expression
// node that owns it rather than looked up by name at each reference.
package lambda

import "github.com/relcore/hofexpr/values"

// Slot is the mutable cell backing one lambda parameter. It is written
// exclusively by the owning HOF's evaluation loop between successive Eval
// calls of the lambda body, and read by every Variable reference that
// shares this slot instance.
//
// Slot is not synchronized: per the concurrency model, two threads
// evaluating the same bound expression tree concurrently is a caller bug,
// not a case this type defends against. Each independently bound copy of a
// tree (obtained via NewInstance) owns its own Slot.
type Slot struct {
	value values.Value
	set   bool
}

// Get returns the currently stored value. Calling Get before the first Set
// returns Null{}, which matches the fact that a slot holds stale or absent
// data until the HOF driver writes it.
func (s *Slot) Get() values.Value {
	if !s.set {
		return values.Null{}
	}
	return s.value
}

// Set replaces the stored value.
func (s *Slot) Set(v values.Value) {
	s.value = v
	s.set = true
}
