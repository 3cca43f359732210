package state

import (
	"testing"
)

// TestArraySetComparesValues tests that writes are compared by value: only
// an actual change dirties the container
func TestArraySetComparesValues(t *testing.T) {
	a, err := NewArray(KindInt32, 4)
	if err != nil {
		t.Fatalf("failed to create array: %v", err)
	}

	// writing the existing (zero) value is not a mutation
	if err := a.Set(0, Int32(0)); err != nil {
		t.Fatalf("failed to set element: %v", err)
	}
	if a.IsDirty() {
		t.Error("array should stay clean when the value does not change")
	}

	if err := a.Set(0, Int32(42)); err != nil {
		t.Fatalf("failed to set element: %v", err)
	}
	if !a.IsDirty() {
		t.Error("array should be dirty after an actual change")
	}

	got, err := a.Get(0)
	if err != nil {
		t.Fatalf("failed to get element: %v", err)
	}
	if got.Int32V() != 42 {
		t.Errorf("element 0 = %d, want 42", got.Int32V())
	}
}

// TestArrayNotifyOneShot tests that the dirty notification fires once per
// clean-to-dirty transition
func TestArrayNotifyOneShot(t *testing.T) {
	a, err := NewArray(KindUint16, 3)
	if err != nil {
		t.Fatalf("failed to create array: %v", err)
	}

	fired := 0
	a.Notify(func() { fired++ })

	_ = a.Set(0, Uint16(1))
	_ = a.Set(1, Uint16(2))
	_ = a.Set(2, Uint16(3))
	if fired != 1 {
		t.Errorf("notification fired %d time(s), want 1", fired)
	}

	a.ClearDirty()
	_ = a.Set(0, Uint16(9))
	if fired != 2 {
		t.Errorf("notification fired %d time(s) after clear, want 2", fired)
	}
}

// TestArrayKindChecks tests element kind enforcement on writes
func TestArrayKindChecks(t *testing.T) {
	a, err := NewArray(KindUint8, 2)
	if err != nil {
		t.Fatalf("failed to create array: %v", err)
	}

	if err := a.Set(0, Int32(1)); err == nil {
		t.Error("expected error for mismatched element kind")
	}
	if err := a.Set(5, Uint8(1)); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

// TestArrayRejectsNestedContainers tests that container and state element
// kinds are rejected at construction
func TestArrayRejectsNestedContainers(t *testing.T) {
	testCases := []struct {
		name string
		elem Kind
		code ErrCode
	}{
		{name: "array of arrays", elem: KindArray, code: ErrCNestedContainerNotAllowed},
		{name: "array of maps", elem: KindMap, code: ErrCNestedContainerNotAllowed},
		{name: "array of states", elem: KindState, code: ErrCUnsupportedValueKind},
		{name: "array of invalid", elem: KindInvalid, code: ErrCUnsupportedValueKind},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewArray(tc.elem, 1)
			if err == nil {
				t.Fatal("expected construction to fail")
			}
			if got := CodeOf(err); got != tc.code {
				t.Errorf("error code = %s, want %s", got, tc.code)
			}
		})
	}
}

// TestRestoreArrayBypassesDirty tests the decode-only restore path: the
// container starts clean and keeps the element order
func TestRestoreArrayBypassesDirty(t *testing.T) {
	elems := []Value{Uint32(7), Uint32(8), Uint32(9)}
	a, err := RestoreArray(KindUint32, elems)
	if err != nil {
		t.Fatalf("failed to restore array: %v", err)
	}

	if a.IsDirty() {
		t.Error("restored array should start clean")
	}
	if a.Len() != 3 {
		t.Errorf("restored length = %d, want 3", a.Len())
	}
	for i, want := range []uint32{7, 8, 9} {
		got, err := a.Get(i)
		if err != nil {
			t.Fatalf("failed to get element %d: %v", i, err)
		}
		if got.Uint32V() != want {
			t.Errorf("element %d = %d, want %d", i, got.Uint32V(), want)
		}
	}

	// mismatched element kinds must be rejected
	if _, err := RestoreArray(KindUint32, []Value{Int32(1)}); err == nil {
		t.Error("expected restore to fail for mismatched element kind")
	}
}
