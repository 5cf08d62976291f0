package values

// MapData is a read-only, paired key/value view over a map value. The key
// and value arrays have equal length and entries are paired positionally;
// the i-th key is never null. A MapData may contain duplicate keys — the
// "first occurrence wins" convention is a contract enforced by HOF
// implementations that consume maps, not by MapData itself.
type MapData interface {
	KeyArray() ArrayData
	ValueArray() ArrayData
	NumElements() int
}

// ArrayBasedMapData is the generic writable MapData used to assemble
// map-filter and map-zip-with outputs. Unlike a general-purpose map
// container it builds no hashed lookup index: HOF outputs are built by
// appending in a single pass and are never looked up by key afterward.
type ArrayBasedMapData struct {
	keys   ArrayData
	values ArrayData
}

var _ MapData = (*ArrayBasedMapData)(nil)

// NewArrayBasedMapData pairs keys and values positionally. The caller is
// responsible for keeping them the same length.
func NewArrayBasedMapData(keys, values ArrayData) *ArrayBasedMapData {
	return &ArrayBasedMapData{keys: keys, values: values}
}

func (m *ArrayBasedMapData) KeyArray() ArrayData   { return m.keys }
func (m *ArrayBasedMapData) ValueArray() ArrayData { return m.values }
func (m *ArrayBasedMapData) NumElements() int      { return m.keys.NumElements() }
