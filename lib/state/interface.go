package state

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// Factory creates a fresh zero-valued instance of a state type. Used by the
// deserializer to construct nested state objects.
type Factory func() IStateObject

// IStateObject is the contract every serializable state type fulfills. The
// serialization engine walks any state object generically through this
// interface; there is no reflection anywhere in the protocol.
//
// Concrete types typically embed a Tracker for the dirty bookkeeping and
// implement GetProperty/SetProperty with a switch over their own property
// names.
type IStateObject interface {
	// StateSchema returns the type-level schema: the ordered set of
	// serializable properties with their declared kinds. The returned
	// schema must be the same instance for every value of the type.
	StateSchema() *Schema

	// IsDirty reports whether any property changed since the last
	// ClearDirty.
	IsDirty() bool

	// DirtyProperties returns the names of the properties mutated since the
	// last ClearDirty, in first-mutation order with duplicates collapsed.
	DirtyProperties() []string

	// ClearDirty resets the dirty flag and the dirty-property list. Called
	// by the owning simulation after a successful flush, never by the
	// serializer itself.
	ClearDirty()

	// GetProperty returns the current value of the named property. The
	// returned Value's kind must match the schema's declared kind.
	GetProperty(name string) (Value, error)

	// SetProperty assigns a decoded value onto the named property. Used by
	// the deserializer; implementations must accept the schema-declared
	// kind, assign unconditionally, and mark the property dirty even when
	// the value is unchanged: the decoder reads the dirty list of a freshly
	// decoded instance to know which properties the stream carried.
	SetProperty(name string, v Value) error
}

// --------------------------------------------------------------------------
// Schema
// --------------------------------------------------------------------------

// PropertySpec describes one serializable property of a state type.
type PropertySpec struct {
	// Name is the property name. ASCII only; the first byte must be in the
	// range 1..127 since it doubles as the first half of the compressed
	// wire key.
	Name string

	// Kind is the declared value kind of the property.
	Kind Kind

	// Elem is the declared element kind for KindArray properties and the
	// value kind for KindMap properties. Must be a scalar kind.
	Elem Kind

	// Key is the declared key kind for KindMap properties. Must be a
	// scalar kind.
	Key Kind

	// Nested is the schema of the nested state type for KindState
	// properties.
	Nested *Schema

	// NewNested constructs a fresh instance of the nested state type for
	// KindState properties. Required for decoding.
	NewNested Factory
}

// Schema is the ordered, type-level property table of a state type. It is
// declared once per type (not discovered at runtime) and must be identical
// on every peer that shares the same data-protocol version: the property
// compression tables are derived from it.
type Schema struct {
	// Name identifies the state type. It keys the process-wide property
	// map cache, so it must be unique across all state types.
	Name string

	// Properties lists the serializable properties in their fixed order.
	// Properties excluded from serialization are simply not listed.
	Properties []PropertySpec
}

// Lookup returns the spec of the named property, or nil if the schema does
// not declare it.
func (s *Schema) Lookup(name string) *PropertySpec {
	for i := range s.Properties {
		if s.Properties[i].Name == name {
			return &s.Properties[i]
		}
	}
	return nil
}

// Names returns the property names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Properties))
	for i := range s.Properties {
		names[i] = s.Properties[i].Name
	}
	return names
}
