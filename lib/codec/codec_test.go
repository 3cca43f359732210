package codec

import (
	"testing"

	"github.com/hexforge/fieldstate/lib/state"
)

// badState declares schemas that violate the container rules, to exercise
// the codec-side rejections that the container constructors normally make
// unreachable.
type badState struct {
	state.Tracker

	schema *state.Schema
	value  state.Value
}

func (b *badState) StateSchema() *state.Schema { return b.schema }

func (b *badState) GetProperty(name string) (state.Value, error) {
	return b.value, nil
}

func (b *badState) SetProperty(name string, v state.Value) error {
	b.value = v
	b.MarkDirty(name)
	return nil
}

// TestDecodeRejectsNestedContainerSchema tests that a stream whose schema
// declares container-valued container elements fails at decode time with
// NestedContainerNotAllowed instead of desynchronizing
func TestDecodeRejectsNestedContainerSchema(t *testing.T) {
	schema := &state.Schema{
		Name: "BadGrid",
		Properties: []state.PropertySpec{
			{Name: "grid", Kind: state.KindArray, Elem: state.KindMap},
		},
	}

	data := []byte{
		'F', 'S', MajorVersion, MinorVersion,
		'g', 0, // key for "grid"
		0, 0, 0, 1, // one element
		0,
	}

	r, err := openStream(data)
	if err != nil {
		t.Fatalf("failed to open stream: %v", err)
	}
	target := &badState{schema: schema}
	err = deserializeProperties(r, target)
	if err == nil {
		t.Fatal("expected decode to fail")
	}
	if code := state.CodeOf(err); code != state.ErrCNestedContainerNotAllowed {
		t.Errorf("error code = %s, want NestedContainerNotAllowed", code)
	}
}

// TestEncodeRejectsKindMismatch tests that a value whose kind contradicts
// the schema's declaration fails with UnsupportedValueKind
func TestEncodeRejectsKindMismatch(t *testing.T) {
	obj := &badState{
		schema: &state.Schema{
			Name: "Mismatch",
			Properties: []state.PropertySpec{
				{Name: "v", Kind: state.KindUint64},
			},
		},
		value: state.Int32(1),
	}

	_, err := Serialize(obj, true)
	if err == nil {
		t.Fatal("expected serialization to fail")
	}
	if code := state.CodeOf(err); code != state.ErrCUnsupportedValueKind {
		t.Errorf("error code = %s, want UnsupportedValueKind", code)
	}
}

// TestEncodeRejectsNilNested tests that a declared nested state property
// holding nil fails instead of writing an undecodable hole
func TestEncodeRejectsNilNested(t *testing.T) {
	obj := &badState{
		schema: &state.Schema{
			Name: "NilNested",
			Properties: []state.PropertySpec{
				{Name: "child", Kind: state.KindState},
			},
		},
		value: state.Nested(nil),
	}

	if _, err := Serialize(obj, true); err == nil {
		t.Fatal("expected serialization of a nil nested object to fail")
	}
}

// TestScalarWireWidths pins the encoded width of every scalar kind
func TestScalarWireWidths(t *testing.T) {
	testCases := []struct {
		kind  state.Kind
		value state.Value
		width int
	}{
		{kind: state.KindChar, value: state.Char('q'), width: 1},
		{kind: state.KindUint8, value: state.Uint8(200), width: 1},
		{kind: state.KindUint16, value: state.Uint16(40_000), width: 2},
		{kind: state.KindInt32, value: state.Int32(-1), width: 4},
		{kind: state.KindUint32, value: state.Uint32(1 << 31), width: 4},
		{kind: state.KindFloat32, value: state.Float32(3.5), width: 4},
		{kind: state.KindUint64, value: state.Uint64(1 << 60), width: 8},
		{kind: state.KindFloat64, value: state.Float64(-0.25), width: 8},
		{kind: state.KindString, value: state.String("ab"), width: 4 + 2},
	}

	for _, tc := range testCases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			w := newWriter()
			if err := encodeValue(w, tc.value, true); err != nil {
				t.Fatalf("failed to encode: %v", err)
			}
			if len(w.bytes()) != tc.width {
				t.Errorf("encoded width = %d, want %d", len(w.bytes()), tc.width)
			}

			r := newReader(w.bytes())
			got, err := decodeScalar(r, tc.kind, "test")
			if err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if !got.Equal(tc.value) {
				t.Errorf("decoded value differs from encoded value")
			}
			if r.remaining() != 0 {
				t.Errorf("%d byte(s) left after decode", r.remaining())
			}
		})
	}
}

// TestContainerWireFormat pins the count-prefixed container encodings
func TestContainerWireFormat(t *testing.T) {
	a, err := state.NewArray(state.KindUint16, 3)
	if err != nil {
		t.Fatalf("failed to create array: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := a.Set(i, state.Uint16(uint16(i+1))); err != nil {
			t.Fatalf("failed to fill array: %v", err)
		}
	}

	w := newWriter()
	if err := encodeValue(w, state.ArrayValue(a), true); err != nil {
		t.Fatalf("failed to encode array: %v", err)
	}
	// 4-byte count + 3 * 2 bytes
	if got := len(w.bytes()); got != 4+3*2 {
		t.Errorf("encoded array width = %d, want %d", got, 4+3*2)
	}

	m, err := state.NewMap(state.KindChar, state.KindFloat32)
	if err != nil {
		t.Fatalf("failed to create map: %v", err)
	}
	_ = m.Set(state.Char('a'), state.Float32(1))
	_ = m.Set(state.Char('b'), state.Float32(2))

	w = newWriter()
	if err := encodeValue(w, state.MapValue(m), true); err != nil {
		t.Fatalf("failed to encode map: %v", err)
	}
	// 4-byte count + 2 * (1 + 4) bytes
	if got := len(w.bytes()); got != 4+2*(1+4) {
		t.Errorf("encoded map width = %d, want %d", got, 4+2*(1+4))
	}

	// decode back through the schema-declared path
	spec := &state.PropertySpec{Name: "m", Kind: state.KindMap, Key: state.KindChar, Elem: state.KindFloat32}
	r := newReader(w.bytes())
	v, err := decodeValue(r, spec)
	if err != nil {
		t.Fatalf("failed to decode map: %v", err)
	}
	if v.MapV().Len() != 2 {
		t.Errorf("decoded pair count = %d, want 2", v.MapV().Len())
	}
	if got, ok := v.MapV().Get(state.Char('b')); !ok || got.Float32V() != 2 {
		t.Errorf("decoded lookup = (%v,%v), want (2,true)", got.Float32V(), ok)
	}
}

// TestInspectHeader tests the schema-less framing inspection used by the
// CLI
func TestInspectHeader(t *testing.T) {
	data, err := Serialize(&pointState{}, true)
	if err != nil {
		t.Fatalf("failed to serialize: %v", err)
	}

	info, err := InspectHeader(data)
	if err != nil {
		t.Fatalf("failed to inspect: %v", err)
	}
	if info.Major != MajorVersion || info.Minor != MinorVersion || !info.VersionOK {
		t.Errorf("inspect reported version %d.%d (ok=%v)", info.Major, info.Minor, info.VersionOK)
	}
	if info.PayloadBytes != len(data)-HeaderSize {
		t.Errorf("payload bytes = %d, want %d", info.PayloadBytes, len(data)-HeaderSize)
	}

	// a foreign version is reported, not rejected
	foreign := append([]byte{}, data...)
	foreign[2] = MajorVersion + 1
	info, err = InspectHeader(foreign)
	if err != nil {
		t.Fatalf("failed to inspect foreign version: %v", err)
	}
	if info.VersionOK {
		t.Error("foreign version reported as matching")
	}

	if _, err := InspectHeader([]byte{'X', 'S', 1, 0}); err == nil {
		t.Error("expected inspection of wrong markers to fail")
	}
}
