package codec

import (
	"math"

	"github.com/hexforge/fieldstate/lib/state"
)

// --------------------------------------------------------------------------
// Value Encoding
// --------------------------------------------------------------------------

// encodeValue writes one value according to the kind table. Nested state
// objects recurse into the property-sequence grammar with the same full
// flag; containers are length-prefixed element runs. The switch is
// exhaustive over state.Kind; anything else is UnsupportedValueKind.
func encodeValue(w *writer, v state.Value, full bool) error {
	switch v.Kind() {
	case state.KindState:
		nested := v.StateV()
		if nested == nil {
			return state.NewError(state.ErrCUnsupportedValueKind,
				"cannot encode nil nested state object")
		}
		return serializeProperties(w, nested, full)
	case state.KindString:
		w.putString(v.Str())
	case state.KindChar:
		w.putByte(v.CharV())
	case state.KindInt32, state.KindUint32, state.KindFloat32:
		w.putUint32(uint32(v.Bits()))
	case state.KindUint8:
		w.putByte(uint8(v.Bits()))
	case state.KindUint16:
		w.putUint16(uint16(v.Bits()))
	case state.KindUint64, state.KindFloat64:
		w.putUint64(v.Bits())
	case state.KindArray:
		return encodeArray(w, v.ArrayV())
	case state.KindMap:
		return encodeMap(w, v.MapV())
	default:
		return state.NewError(state.ErrCUnsupportedValueKind,
			"cannot encode value of kind %s", v.Kind())
	}
	return nil
}

// encodeScalar writes one container element. The element kinds legal inside
// a container are re-checked here: a container inside a container is a
// protocol violation even if one was smuggled past the constructors.
func encodeScalar(w *writer, v state.Value) error {
	if v.Kind().Container() {
		return state.NewError(state.ErrCNestedContainerNotAllowed,
			"dirty container nested inside a dirty container")
	}
	if !v.Kind().Scalar() {
		return state.NewError(state.ErrCUnsupportedValueKind,
			"cannot encode container element of kind %s", v.Kind())
	}
	return encodeValue(w, v, false)
}

func encodeArray(w *writer, a *state.Array) error {
	if a == nil {
		return state.NewError(state.ErrCUnsupportedValueKind,
			"cannot encode nil dirty array")
	}
	elems := a.Values()
	w.putUint32(uint32(len(elems)))
	for _, e := range elems {
		if err := encodeScalar(w, e); err != nil {
			return err
		}
	}
	return nil
}

func encodeMap(w *writer, m *state.Map) error {
	if m == nil {
		return state.NewError(state.ErrCUnsupportedValueKind,
			"cannot encode nil dirty map")
	}
	keys, vals := m.Pairs()
	w.putUint32(uint32(len(keys)))
	for i := range keys {
		if err := encodeScalar(w, keys[i]); err != nil {
			return err
		}
		if err := encodeScalar(w, vals[i]); err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Value Decoding
// --------------------------------------------------------------------------

// decodeValue reads one value of the kind declared by the property spec.
// The wire carries no type tags: the declared schema kind decides every
// branch, which is what keeps the two directions symmetric.
func decodeValue(r *reader, spec *state.PropertySpec) (state.Value, error) {
	switch spec.Kind {
	case state.KindState:
		if spec.NewNested == nil {
			return state.Value{}, state.NewError(state.ErrCUnsupportedValueKind,
				"property %q: nested state kind without a factory", spec.Name)
		}
		nested := spec.NewNested()
		if err := deserializeProperties(r, nested); err != nil {
			return state.Value{}, err
		}
		return state.Nested(nested), nil
	case state.KindArray:
		return decodeArray(r, spec)
	case state.KindMap:
		return decodeMap(r, spec)
	default:
		return decodeScalar(r, spec.Kind, spec.Name)
	}
}

// decodeScalar reads one scalar of the given kind.
func decodeScalar(r *reader, kind state.Kind, what string) (state.Value, error) {
	switch kind {
	case state.KindString:
		s, err := r.readString(what)
		if err != nil {
			return state.Value{}, err
		}
		return state.String(s), nil
	case state.KindChar:
		b, err := r.readByte(what)
		if err != nil {
			return state.Value{}, err
		}
		return state.Char(b), nil
	case state.KindInt32:
		v, err := r.readUint32(what)
		if err != nil {
			return state.Value{}, err
		}
		return state.Int32(int32(v)), nil
	case state.KindUint8:
		v, err := r.readByte(what)
		if err != nil {
			return state.Value{}, err
		}
		return state.Uint8(v), nil
	case state.KindUint16:
		v, err := r.readUint16(what)
		if err != nil {
			return state.Value{}, err
		}
		return state.Uint16(v), nil
	case state.KindUint32:
		v, err := r.readUint32(what)
		if err != nil {
			return state.Value{}, err
		}
		return state.Uint32(v), nil
	case state.KindUint64:
		v, err := r.readUint64(what)
		if err != nil {
			return state.Value{}, err
		}
		return state.Uint64(v), nil
	case state.KindFloat32:
		v, err := r.readUint32(what)
		if err != nil {
			return state.Value{}, err
		}
		return state.Float32(math.Float32frombits(v)), nil
	case state.KindFloat64:
		v, err := r.readUint64(what)
		if err != nil {
			return state.Value{}, err
		}
		return state.Float64(math.Float64frombits(v)), nil
	case state.KindArray, state.KindMap:
		return state.Value{}, state.NewError(state.ErrCNestedContainerNotAllowed,
			"dirty container nested inside a dirty container")
	default:
		return state.Value{}, state.NewError(state.ErrCUnsupportedValueKind,
			"cannot decode value of kind %s", kind)
	}
}

func decodeArray(r *reader, spec *state.PropertySpec) (state.Value, error) {
	count, err := r.readUint32(spec.Name + " element count")
	if err != nil {
		return state.Value{}, err
	}
	// cap preallocation by the input size: every element costs at least one
	// byte, so a count larger than the remaining input is already malformed
	elems := make([]state.Value, 0, min(int(count), r.remaining()))
	for i := uint32(0); i < count; i++ {
		e, err := decodeScalar(r, spec.Elem, spec.Name+" element")
		if err != nil {
			return state.Value{}, err
		}
		elems = append(elems, e)
	}
	// restore bypasses the dirty-comparison path: a freshly decoded
	// container starts clean
	a, err := state.RestoreArray(spec.Elem, elems)
	if err != nil {
		return state.Value{}, err
	}
	return state.ArrayValue(a), nil
}

func decodeMap(r *reader, spec *state.PropertySpec) (state.Value, error) {
	count, err := r.readUint32(spec.Name + " pair count")
	if err != nil {
		return state.Value{}, err
	}
	n := min(int(count), r.remaining())
	keys := make([]state.Value, 0, n)
	vals := make([]state.Value, 0, n)
	for i := uint32(0); i < count; i++ {
		k, err := decodeScalar(r, spec.Key, spec.Name+" key")
		if err != nil {
			return state.Value{}, err
		}
		v, err := decodeScalar(r, spec.Elem, spec.Name+" value")
		if err != nil {
			return state.Value{}, err
		}
		keys = append(keys, k)
		vals = append(vals, v)
	}
	m, err := state.RestoreMap(spec.Key, spec.Elem, keys, vals)
	if err != nil {
		return state.Value{}, err
	}
	return state.MapValue(m), nil
}
