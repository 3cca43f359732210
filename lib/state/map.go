package state

// --------------------------------------------------------------------------
// Dirty Map Container
// --------------------------------------------------------------------------

// mapKey is the comparable lookup form of a scalar Value. The kind is fixed
// per container, so bits+string identify the key.
type mapKey struct {
	bits uint64
	str  string
}

func lookupKey(v Value) mapKey {
	return mapKey{bits: v.Bits(), str: v.Str()}
}

// Map is the map-shaped dirty container: scalar keys mapped to scalar
// values, enumerated as (key, value) pairs in encounter order. The dirty
// contract matches Array: the first actual change since the last ClearDirty
// sets the flag and fires the one-shot notification.
type Map struct {
	key    Kind
	elem   Kind
	keys   []Value
	vals   []Value
	index  map[mapKey]int
	dirty  bool
	notify func()
}

// NewMap creates an empty dirty map with the given scalar key and value
// kinds.
func NewMap(key, elem Kind) (*Map, error) {
	if err := checkElemKind(key); err != nil {
		return nil, err
	}
	if err := checkElemKind(elem); err != nil {
		return nil, err
	}
	return &Map{
		key:   key,
		elem:  elem,
		index: make(map[mapKey]int),
	}, nil
}

// RestoreMap rebuilds a map from decoded pairs, bypassing the dirty
// comparison. Used by the deserializer only; the restored container starts
// clean. keys and vals must be parallel slices already carrying the
// declared kinds.
func RestoreMap(key, elem Kind, keys, vals []Value) (*Map, error) {
	m, err := NewMap(key, elem)
	if err != nil {
		return nil, err
	}
	if len(keys) != len(vals) {
		return nil, NewError(ErrCUnknown,
			"map restore: %d keys but %d values", len(keys), len(vals))
	}
	for i := range keys {
		if keys[i].Kind() != key {
			return nil, NewError(ErrCUnsupportedValueKind,
				"map restore: key %d has kind %s, want %s", i, keys[i].Kind(), key)
		}
		if vals[i].Kind() != elem {
			return nil, NewError(ErrCUnsupportedValueKind,
				"map restore: value %d has kind %s, want %s", i, vals[i].Kind(), elem)
		}
		m.index[lookupKey(keys[i])] = i
	}
	m.keys = keys
	m.vals = vals
	return m, nil
}

// KeyKind returns the declared key kind.
func (m *Map) KeyKind() Kind { return m.key }

// ElemKind returns the declared value kind.
func (m *Map) ElemKind() Kind { return m.elem }

// Len returns the number of pairs.
func (m *Map) Len() int { return len(m.keys) }

// Get returns the value stored under key and whether the key is present.
func (m *Map) Get(key Value) (Value, bool) {
	i, ok := m.index[lookupKey(key)]
	if !ok {
		return Value{}, false
	}
	return m.vals[i], true
}

// Set assigns val under key. Inserting a new key or changing an existing
// value counts as a mutation; rewriting an equal value does not. The pair
// order is the encounter order of first insertion.
func (m *Map) Set(key, val Value) error {
	if key.Kind() != m.key {
		return NewError(ErrCUnsupportedValueKind,
			"map set: key kind %s, want %s", key.Kind(), m.key)
	}
	if val.Kind() != m.elem {
		return NewError(ErrCUnsupportedValueKind,
			"map set: value kind %s, want %s", val.Kind(), m.elem)
	}
	lk := lookupKey(key)
	if i, ok := m.index[lk]; ok {
		if m.vals[i].Equal(val) {
			return nil
		}
		m.vals[i] = val
		m.markDirty()
		return nil
	}
	m.index[lk] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, val)
	m.markDirty()
	return nil
}

// Pairs returns the keys and values as parallel slices in encounter order.
// Both slices are owned by the container.
func (m *Map) Pairs() (keys, vals []Value) {
	return m.keys, m.vals
}

// IsDirty reports whether any pair changed since the last ClearDirty.
func (m *Map) IsDirty() bool { return m.dirty }

// ClearDirty resets the dirty flag, re-arming the notification.
func (m *Map) ClearDirty() { m.dirty = false }

// Notify registers the one-shot dirty callback. Only one callback is held;
// passing nil removes it.
func (m *Map) Notify(fn func()) { m.notify = fn }

func (m *Map) markDirty() {
	if m.dirty {
		return
	}
	m.dirty = true
	if m.notify != nil {
		m.notify()
	}
}
