package state

// --------------------------------------------------------------------------
// Dirty Array Container
// --------------------------------------------------------------------------

// Array is the array-shaped dirty container: an ordered sequence of scalar
// values with a fixed length chosen at construction. A write to an index
// compares the old and the new value; the first actual change sets the
// container's dirty flag and fires a one-shot notification. Further changes
// do not re-fire until the flag is cleared by the owner.
//
// Containers never nest: an element that is itself a dirty array or map is
// rejected at construction and again by the codec.
type Array struct {
	elem   Kind
	elems  []Value
	dirty  bool
	notify func()
}

// NewArray creates a dirty array of the given scalar element kind and fixed
// length. All elements start as the zero value of the element kind's
// payload (numeric zero, empty string).
func NewArray(elem Kind, length int) (*Array, error) {
	if err := checkElemKind(elem); err != nil {
		return nil, err
	}
	a := &Array{
		elem:  elem,
		elems: make([]Value, length),
	}
	for i := range a.elems {
		a.elems[i] = zeroValue(elem)
	}
	return a, nil
}

// RestoreArray rebuilds an array from decoded elements, bypassing the
// dirty-comparison semantics of Set. Used by the deserializer only; the
// restored container starts clean. The element values must already carry
// the element kind.
func RestoreArray(elem Kind, elems []Value) (*Array, error) {
	if err := checkElemKind(elem); err != nil {
		return nil, err
	}
	for i := range elems {
		if elems[i].Kind() != elem {
			return nil, NewError(ErrCUnsupportedValueKind,
				"array restore: element %d has kind %s, want %s", i, elems[i].Kind(), elem)
		}
	}
	return &Array{elem: elem, elems: elems}, nil
}

// ElemKind returns the declared element kind.
func (a *Array) ElemKind() Kind { return a.elem }

// Len returns the fixed length of the array.
func (a *Array) Len() int { return len(a.elems) }

// Get returns the element at index i.
func (a *Array) Get(i int) (Value, error) {
	if i < 0 || i >= len(a.elems) {
		return Value{}, NewError(ErrCUnknown, "array index %d out of range [0,%d)", i, len(a.elems))
	}
	return a.elems[i], nil
}

// Set assigns v to index i. The write is compared against the current
// element by value; when it is the first actual change since the last
// ClearDirty, the container becomes dirty and the notification fires once.
func (a *Array) Set(i int, v Value) error {
	if i < 0 || i >= len(a.elems) {
		return NewError(ErrCUnknown, "array index %d out of range [0,%d)", i, len(a.elems))
	}
	if v.Kind() != a.elem {
		return NewError(ErrCUnsupportedValueKind,
			"array set: value kind %s, want %s", v.Kind(), a.elem)
	}
	if a.elems[i].Equal(v) {
		return nil
	}
	a.elems[i] = v
	a.markDirty()
	return nil
}

// Values returns the elements in order. The slice is owned by the
// container.
func (a *Array) Values() []Value { return a.elems }

// IsDirty reports whether any element changed since the last ClearDirty.
func (a *Array) IsDirty() bool { return a.dirty }

// ClearDirty resets the dirty flag, re-arming the notification.
func (a *Array) ClearDirty() { a.dirty = false }

// Notify registers the one-shot dirty callback. Only one callback is held;
// passing nil removes it.
func (a *Array) Notify(fn func()) { a.notify = fn }

func (a *Array) markDirty() {
	if a.dirty {
		return
	}
	a.dirty = true
	if a.notify != nil {
		a.notify()
	}
}

// --------------------------------------------------------------------------
// Shared element-kind checks
// --------------------------------------------------------------------------

// checkElemKind enforces the container element rules: scalar kinds only.
// Nested containers are a protocol violation; nested state objects are
// outside the supported element kinds.
func checkElemKind(k Kind) error {
	if k.Container() {
		return NewError(ErrCNestedContainerNotAllowed,
			"dirty container nested inside a dirty container")
	}
	if !k.Scalar() {
		return NewError(ErrCUnsupportedValueKind,
			"container element kind %s not supported", k)
	}
	return nil
}

// zeroValue returns the zero value of a scalar kind.
func zeroValue(k Kind) Value {
	if k == KindString {
		return String("")
	}
	return Value{kind: k}
}
