package hof

import (
	"bytes"

	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

// entry is one row of the key-union table map-zip-with builds: a key plus
// the position of that key on each side, or -1 if the key is absent on that
// side. Entries are kept in insertion order (left-then-right scan order),
// which is the order map-zip-with's output follows.
type entry struct {
	key      values.Value
	leftIdx  int
	rightIdx int
}

// keyIndex is the unification point for map-zip-with's two implementations
// a hash-based path for atomic keys
// (anything but Binary) and an O(k²) brute-force path otherwise. Both
// produce the same ordered entry list; selection happens in
// newKeyIndex based on types.IsHashable.
type keyIndex interface {
	// observeLeft records that key appears at position idx in the left
	// map, inserting a new entry if key has not been seen, or filling in
	// leftIdx if it has been seen only on the right so far. A key already
	// filled on the left is left untouched (first-wins).
	observeLeft(key values.Value, idx int)
	observeRight(key values.Value, idx int)

	// entries returns the accumulated table in insertion order.
	entries() []*entry

	// size returns the current number of distinct keys.
	size() int
}

func newKeyIndex(keyType types.DataType) keyIndex {
	if types.IsHashable(keyType) {
		return &hashKeyIndex{index: make(map[interface{}]*entry), keyType: keyType}
	}
	return &orderedKeyIndex{keyType: keyType}
}

// hashKeyIndex is the fast path: native Go map keyed by the value itself,
// valid for every atomic kind except Binary ([]byte is not a valid map
// key).
type hashKeyIndex struct {
	keyType types.DataType
	list    []*entry
	index   map[interface{}]*entry
}

func (h *hashKeyIndex) observeLeft(key values.Value, idx int)  { h.observe(key, idx, true) }
func (h *hashKeyIndex) observeRight(key values.Value, idx int) { h.observe(key, idx, false) }

func (h *hashKeyIndex) observe(key values.Value, idx int, left bool) {
	e, found := h.index[key]
	if !found {
		e = &entry{key: key, leftIdx: -1, rightIdx: -1}
		h.index[key] = e
		h.list = append(h.list, e)
	}
	if left {
		if e.leftIdx == -1 {
			e.leftIdx = idx
		}
	} else {
		if e.rightIdx == -1 {
			e.rightIdx = idx
		}
	}
}

func (h *hashKeyIndex) entries() []*entry { return h.list }
func (h *hashKeyIndex) size() int         { return len(h.list) }

// orderedKeyIndex is the brute-force path for key types that do not support
// Go map-key hashing (Binary), which must at least be orderable for
// map-zip-with to match keys at all. Lookups are O(k) per observation, O(k²) overall in the number
// of distinct keys.
type orderedKeyIndex struct {
	keyType types.DataType
	list    []*entry
}

func (o *orderedKeyIndex) observeLeft(key values.Value, idx int)  { o.observe(key, idx, true) }
func (o *orderedKeyIndex) observeRight(key values.Value, idx int) { o.observe(key, idx, false) }

func (o *orderedKeyIndex) observe(key values.Value, idx int, left bool) {
	for _, e := range o.list {
		if valuesEqual(e.key, key, o.keyType) {
			if left {
				if e.leftIdx == -1 {
					e.leftIdx = idx
				}
			} else if e.rightIdx == -1 {
				e.rightIdx = idx
			}
			return
		}
	}
	e := &entry{key: key, leftIdx: -1, rightIdx: -1}
	if left {
		e.leftIdx = idx
	} else {
		e.rightIdx = idx
	}
	o.list = append(o.list, e)
}

func (o *orderedKeyIndex) entries() []*entry { return o.list }
func (o *orderedKeyIndex) size() int         { return len(o.list) }

// valuesEqual compares two non-null scalar values of the same DataType.
func valuesEqual(a, b values.Value, t types.DataType) bool {
	if t.Kind() == types.Binary {
		return bytes.Equal(a.([]byte), b.([]byte))
	}
	return a == b
}
