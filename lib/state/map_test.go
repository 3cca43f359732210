package state

import (
	"testing"
)

// TestMapEncounterOrder tests that pairs enumerate in first-insertion order
func TestMapEncounterOrder(t *testing.T) {
	m, err := NewMap(KindString, KindInt32)
	if err != nil {
		t.Fatalf("failed to create map: %v", err)
	}

	_ = m.Set(String("str"), Int32(18))
	_ = m.Set(String("dex"), Int32(14))
	_ = m.Set(String("str"), Int32(19)) // update must not move the pair

	keys, vals := m.Pairs()
	if len(keys) != 2 {
		t.Fatalf("pair count = %d, want 2", len(keys))
	}
	if keys[0].Str() != "str" || keys[1].Str() != "dex" {
		t.Errorf("key order = [%s %s], want [str dex]", keys[0].Str(), keys[1].Str())
	}
	if vals[0].Int32V() != 19 {
		t.Errorf("updated value = %d, want 19", vals[0].Int32V())
	}
}

// TestMapDirtySemantics tests value comparison and the one-shot
// notification
func TestMapDirtySemantics(t *testing.T) {
	m, err := NewMap(KindUint32, KindString)
	if err != nil {
		t.Fatalf("failed to create map: %v", err)
	}

	fired := 0
	m.Notify(func() { fired++ })

	_ = m.Set(Uint32(1), String("sword"))
	if !m.IsDirty() {
		t.Error("insert should dirty the map")
	}

	m.ClearDirty()
	_ = m.Set(Uint32(1), String("sword")) // equal value, not a mutation
	if m.IsDirty() {
		t.Error("rewriting an equal value should not dirty the map")
	}

	_ = m.Set(Uint32(1), String("axe"))
	if !m.IsDirty() {
		t.Error("changing a value should dirty the map")
	}

	if fired != 2 {
		t.Errorf("notification fired %d time(s), want 2", fired)
	}
}

// TestMapKindChecks tests key and value kind enforcement
func TestMapKindChecks(t *testing.T) {
	m, err := NewMap(KindString, KindInt32)
	if err != nil {
		t.Fatalf("failed to create map: %v", err)
	}

	if err := m.Set(Uint32(1), Int32(1)); err == nil {
		t.Error("expected error for mismatched key kind")
	}
	if err := m.Set(String("k"), Uint64(1)); err == nil {
		t.Error("expected error for mismatched value kind")
	}

	if _, ok := m.Get(String("missing")); ok {
		t.Error("lookup of a missing key should report absence")
	}
}

// TestMapRejectsNestedContainers tests construction-time rejection of
// container kinds for keys and values
func TestMapRejectsNestedContainers(t *testing.T) {
	if _, err := NewMap(KindArray, KindInt32); CodeOf(err) != ErrCNestedContainerNotAllowed {
		t.Errorf("map with array keys: error = %v, want NestedContainerNotAllowed", err)
	}
	if _, err := NewMap(KindString, KindMap); CodeOf(err) != ErrCNestedContainerNotAllowed {
		t.Errorf("map with map values: error = %v, want NestedContainerNotAllowed", err)
	}
	if _, err := NewMap(KindState, KindInt32); CodeOf(err) != ErrCUnsupportedValueKind {
		t.Errorf("map with state keys: error = %v, want UnsupportedValueKind", err)
	}
}

// TestRestoreMap tests the decode-only restore path
func TestRestoreMap(t *testing.T) {
	keys := []Value{String("a"), String("b")}
	vals := []Value{Float64(1.5), Float64(-2.5)}

	m, err := RestoreMap(KindString, KindFloat64, keys, vals)
	if err != nil {
		t.Fatalf("failed to restore map: %v", err)
	}
	if m.IsDirty() {
		t.Error("restored map should start clean")
	}
	if got, ok := m.Get(String("b")); !ok || got.Float64V() != -2.5 {
		t.Errorf("lookup after restore = (%v, %v), want (-2.5, true)", got.Float64V(), ok)
	}

	// parallel slice length mismatch must be rejected
	if _, err := RestoreMap(KindString, KindFloat64, keys, vals[:1]); err == nil {
		t.Error("expected restore to fail for mismatched slice lengths")
	}
}
