package propmap

import (
	"sort"

	"github.com/hexforge/fieldstate/lib/state"
	"github.com/puzpuzpuz/xsync/v3"
)

// maxGroupSize is the largest number of property names that may share a
// first letter: the index half of the wire key is a single byte.
const maxGroupSize = 255

// --------------------------------------------------------------------------
// Property Map
// --------------------------------------------------------------------------

// compressedKey is the resolved (letter, index) pair of one property name.
type compressedKey struct {
	first byte
	index byte
}

// Map is the immutable compression table of one state type. It maps each
// property name to its (first letter, sorted index) wire key and back.
type Map struct {
	groups map[byte][]string
	keys   map[string]compressedKey
}

// Build constructs the table for a schema: names are grouped by first byte
// and each group is sorted byte-wise lexicographically. The sort order is
// the interoperability contract, so it depends on nothing but the names
// themselves.
func Build(schema *state.Schema) (*Map, error) {
	groups := make(map[byte][]string)
	for i := range schema.Properties {
		name := schema.Properties[i].Name
		if err := checkName(name); err != nil {
			return nil, err
		}
		first := name[0]
		if len(groups[first]) >= maxGroupSize {
			return nil, state.NewError(state.ErrCSchemaOverflow,
				"schema %q: more than %d property names start with %q",
				schema.Name, maxGroupSize, string(first))
		}
		groups[first] = append(groups[first], name)
	}

	m := &Map{
		groups: groups,
		keys:   make(map[string]compressedKey, len(schema.Properties)),
	}
	for first, names := range groups {
		sort.Strings(names)
		for i, name := range names {
			if i > 0 && names[i-1] == name {
				return nil, state.NewError(state.ErrCInvalidPropertyName,
					"schema %q: duplicate property name %q", schema.Name, name)
			}
			m.keys[name] = compressedKey{first: first, index: byte(i)}
		}
	}
	return m, nil
}

// Compress returns the wire key of a schema property name.
func (m *Map) Compress(name string) (first, index byte, err error) {
	if err := checkName(name); err != nil {
		return 0, 0, err
	}
	key, ok := m.keys[name]
	if !ok {
		return 0, 0, state.NewError(state.ErrCUnknownPropertyKey,
			"property %q not in schema", name)
	}
	return key.first, key.index, nil
}

// Decompress is the inverse lookup. An index out of range for the letter's
// group indicates a schema mismatch between peers.
func (m *Map) Decompress(first, index byte) (string, error) {
	names, ok := m.groups[first]
	if !ok || int(index) >= len(names) {
		return "", state.NewError(state.ErrCUnknownPropertyKey,
			"no property with key (%q, %d) in schema", string(first), index)
	}
	return names[index], nil
}

// checkName enforces the wire constraints on a property name: non-empty,
// leading byte in 1..127.
func checkName(name string) error {
	if name == "" {
		return state.NewError(state.ErrCInvalidPropertyName, "empty property name")
	}
	if name[0] == 0 || name[0] > 127 {
		return state.NewError(state.ErrCInvalidPropertyName,
			"property %q: first byte 0x%02x outside ASCII range 1..127", name, name[0])
	}
	return nil
}

// --------------------------------------------------------------------------
// Process-wide Cache
// --------------------------------------------------------------------------

// cache holds one table per state type for the process lifetime, keyed by
// the type's schema instance. Tables are built lazily on first use and
// never invalidated.
var cache = xsync.NewMapOf[*state.Schema, *Map]()

// ForSchema returns the cached table for a schema, building it on first
// use. Concurrent first calls for the same schema may build in parallel;
// the build is deterministic and only the first result is published, so
// every caller observes the same table.
func ForSchema(schema *state.Schema) (*Map, error) {
	if m, ok := cache.Load(schema); ok {
		return m, nil
	}
	m, err := Build(schema)
	if err != nil {
		return nil, err
	}
	published, _ := cache.LoadOrStore(schema, m)
	return published, nil
}
