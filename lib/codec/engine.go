package codec

import (
	"github.com/hexforge/fieldstate/lib/propmap"
	"github.com/hexforge/fieldstate/lib/state"
)

// --------------------------------------------------------------------------
// Protocol Framing
// --------------------------------------------------------------------------

// Protocol marker and version bytes. Both peers must match exactly: a
// version difference is a hard failure, never negotiated.
const (
	MarkerByte0 byte = 'F'
	MarkerByte1 byte = 'S'

	MajorVersion byte = 1
	MinorVersion byte = 0
)

// HeaderSize is the fixed size of the stream header in bytes.
const HeaderSize = 4

// terminator ends a property sequence. It occupies the position of a key's
// first byte and is exactly one byte wide, on both sides of the protocol.
const terminator byte = 0

// --------------------------------------------------------------------------
// Serialization
// --------------------------------------------------------------------------

// Serialize encodes a state object into a self-contained byte buffer:
// header, property sequence, terminator. With full=true every schema
// property is emitted regardless of dirty status; with full=false only the
// currently dirty properties are emitted, or a bare terminator when nothing
// changed. The dirty bookkeeping is not cleared; that is owned by the
// caller.
func Serialize(obj state.IStateObject, full bool) ([]byte, error) {
	w := newWriter()
	w.putByte(MarkerByte0)
	w.putByte(MarkerByte1)
	w.putByte(MajorVersion)
	w.putByte(MinorVersion)

	if err := serializeProperties(w, obj, full); err != nil {
		serializeErrors.Inc()
		return nil, err
	}

	out := w.bytes()
	if full {
		serializeFullTotal.Inc()
	} else {
		serializeDiffTotal.Inc()
	}
	serializedBytes.Update(float64(len(out)))
	return out, nil
}

// serializeProperties emits the body grammar for one object: repeated
// (compressed key, value) pairs followed by the terminator. Nested state
// objects recurse here without a header.
func serializeProperties(w *writer, obj state.IStateObject, full bool) error {
	// nothing-changed shortcut: a diff of a clean object is just the
	// terminator
	if !full && !obj.IsDirty() {
		w.putByte(terminator)
		return nil
	}

	schema := obj.StateSchema()
	pm, err := propmap.ForSchema(schema)
	if err != nil {
		return err
	}

	var names []string
	if full {
		names = schema.Names()
	} else {
		names = obj.DirtyProperties()
	}

	for _, name := range names {
		spec := schema.Lookup(name)
		if spec == nil {
			return state.NewError(state.ErrCUnknownPropertyKey,
				"dirty property %q not declared in schema %q", name, schema.Name)
		}
		first, index, err := pm.Compress(name)
		if err != nil {
			return err
		}
		value, err := obj.GetProperty(name)
		if err != nil {
			return err
		}
		if value.Kind() != spec.Kind {
			return state.NewError(state.ErrCUnsupportedValueKind,
				"property %q: value kind %s does not match declared kind %s",
				name, value.Kind(), spec.Kind)
		}
		w.putByte(first)
		w.putByte(index)
		if err := encodeValue(w, value, full); err != nil {
			return err
		}
	}

	w.putByte(terminator)
	return nil
}

// --------------------------------------------------------------------------
// Deserialization
// --------------------------------------------------------------------------

// Deserialize decodes a buffer produced by Serialize into a fresh instance
// of the state type T. The instance is only returned on full success; any
// decode failure leaves no half-populated object behind.
func Deserialize[T any, PT interface {
	*T
	state.IStateObject
}](data []byte) (PT, error) {
	r, err := openStream(data)
	if err != nil {
		deserializeErrors.Inc()
		return nil, err
	}

	var instance T
	obj := PT(&instance)
	if err := deserializeProperties(r, obj); err != nil {
		deserializeErrors.Inc()
		return nil, err
	}
	if r.remaining() > 0 {
		deserializeErrors.Inc()
		return nil, state.NewError(state.ErrCMalformedHeader,
			"%d byte(s) of trailing data after terminator", r.remaining())
	}

	deserializeTotal.Inc()
	deserializedBytes.Update(float64(len(data)))
	return obj, nil
}

// Apply decodes a buffer (typically an incremental diff) and assigns the
// decoded properties onto an existing state object, such as the receiver's
// copy of the last known baseline. The target is untouched unless the whole
// buffer decodes cleanly.
func Apply(data []byte, target state.IStateObject) error {
	r, err := openStream(data)
	if err != nil {
		deserializeErrors.Inc()
		return err
	}

	// decode everything before assigning anything, so a mid-stream failure
	// cannot leave the live target half-updated
	schema := target.StateSchema()
	pm, perr := propmap.ForSchema(schema)
	if perr != nil {
		deserializeErrors.Inc()
		return perr
	}
	names, values, derr := decodeProperties(r, schema, pm)
	if derr != nil {
		deserializeErrors.Inc()
		return derr
	}
	if r.remaining() > 0 {
		deserializeErrors.Inc()
		return state.NewError(state.ErrCMalformedHeader,
			"%d byte(s) of trailing data after terminator", r.remaining())
	}

	for i := range names {
		if err := mergeProperty(target, names[i], values[i]); err != nil {
			deserializeErrors.Inc()
			return err
		}
	}

	deserializeTotal.Inc()
	deserializedBytes.Update(float64(len(data)))
	return nil
}

// mergeProperty assigns a decoded value onto a live target. Nested state
// objects are merged property-by-property into the target's existing
// instance rather than replacing it: an incremental stream carries only the
// dirty subset of a nested object, and a wholesale swap would reset its
// unsent properties to zero values.
func mergeProperty(target state.IStateObject, name string, v state.Value) error {
	if v.Kind() == state.KindState {
		current, err := target.GetProperty(name)
		if err == nil && current.Kind() == state.KindState && current.StateV() != nil {
			return mergeState(current.StateV(), v.StateV())
		}
	}
	return target.SetProperty(name, v)
}

// mergeState copies every property present in a decoded state object onto
// dst. The decoded object's dirty list records exactly the properties the
// stream carried, since SetProperty marks unconditionally.
func mergeState(dst, decoded state.IStateObject) error {
	for _, name := range decoded.DirtyProperties() {
		v, err := decoded.GetProperty(name)
		if err != nil {
			return err
		}
		if err := mergeProperty(dst, name, v); err != nil {
			return err
		}
	}
	return nil
}

// HeaderInfo describes the framing of a serialized stream.
type HeaderInfo struct {
	Major        byte
	Minor        byte
	VersionOK    bool // version bytes match this implementation
	PayloadBytes int  // body size excluding the header
}

// InspectHeader validates the marker bytes of a stream and reports its
// framing without decoding the body. Unlike Deserialize it tolerates a
// version mismatch, so tooling can still report what version a foreign
// stream claims.
func InspectHeader(data []byte) (HeaderInfo, error) {
	if len(data) < HeaderSize {
		return HeaderInfo{}, state.NewError(state.ErrCMalformedHeader,
			"input of %d byte(s) shorter than %d-byte header", len(data), HeaderSize)
	}
	if data[0] != MarkerByte0 || data[1] != MarkerByte1 {
		return HeaderInfo{}, state.NewError(state.ErrCMalformedHeader,
			"marker bytes 0x%02x 0x%02x do not match %q%q", data[0], data[1],
			string(MarkerByte0), string(MarkerByte1))
	}
	return HeaderInfo{
		Major:        data[2],
		Minor:        data[3],
		VersionOK:    data[2] == MajorVersion && data[3] == MinorVersion,
		PayloadBytes: len(data) - HeaderSize,
	}, nil
}

// openStream validates the header and returns a cursor positioned at the
// body.
func openStream(data []byte) (*reader, error) {
	if len(data) < HeaderSize {
		return nil, state.NewError(state.ErrCMalformedHeader,
			"input of %d byte(s) shorter than %d-byte header", len(data), HeaderSize)
	}
	if data[0] != MarkerByte0 || data[1] != MarkerByte1 {
		return nil, state.NewError(state.ErrCMalformedHeader,
			"marker bytes 0x%02x 0x%02x do not match %q%q", data[0], data[1],
			string(MarkerByte0), string(MarkerByte1))
	}
	if data[2] != MajorVersion || data[3] != MinorVersion {
		return nil, state.NewError(state.ErrCVersionMismatch,
			"stream version %d.%d, reader version %d.%d",
			data[2], data[3], MajorVersion, MinorVersion)
	}
	r := newReader(data)
	r.pos = HeaderSize
	return r, nil
}

// deserializeProperties decodes the body grammar and assigns each property
// onto obj. obj must be a fresh, unpublished instance.
func deserializeProperties(r *reader, obj state.IStateObject) error {
	schema := obj.StateSchema()
	pm, err := propmap.ForSchema(schema)
	if err != nil {
		return err
	}
	names, values, err := decodeProperties(r, schema, pm)
	if err != nil {
		return err
	}
	for i := range names {
		if err := obj.SetProperty(names[i], values[i]); err != nil {
			return err
		}
	}
	return nil
}

// decodeProperties reads (key, value) pairs until the terminator,
// resolving each value's static type from the schema.
func decodeProperties(r *reader, schema *state.Schema, pm *propmap.Map) ([]string, []state.Value, error) {
	var names []string
	var values []state.Value
	for {
		first, err := r.readByte("property key")
		if err != nil {
			return nil, nil, err
		}
		if first == terminator {
			return names, values, nil
		}
		index, err := r.readByte("property key index")
		if err != nil {
			return nil, nil, err
		}
		name, err := pm.Decompress(first, index)
		if err != nil {
			return nil, nil, err
		}
		spec := schema.Lookup(name)
		if spec == nil {
			return nil, nil, state.NewError(state.ErrCUnknownPropertyKey,
				"decoded property %q not declared in schema %q", name, schema.Name)
		}
		value, err := decodeValue(r, spec)
		if err != nil {
			return nil, nil, err
		}
		names = append(names, name)
		values = append(values, value)
	}
}
