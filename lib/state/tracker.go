package state

// --------------------------------------------------------------------------
// Dirty Bookkeeping
// --------------------------------------------------------------------------

// Tracker implements the per-instance dirty bookkeeping of a state object:
// a dirty flag plus the ordered list of property names mutated since the
// last clear. The zero value is ready for use, so state types can embed it
// without a constructor.
//
// Tracker provides the IsDirty/DirtyProperties/ClearDirty half of
// IStateObject; concrete types add the schema and the accessors.
type Tracker struct {
	dirty  bool
	order  []string
	seen   map[string]struct{}
	notify func()
}

// MarkDirty records a mutation of the named property. The name is appended
// to the dirty list on its first mutation only; marking an already-dirty
// name again is a no-op. The first mutation after a clear also fires the
// one-shot notification, if one is registered.
func (t *Tracker) MarkDirty(name string) {
	if t.seen == nil {
		t.seen = make(map[string]struct{})
	}
	if _, ok := t.seen[name]; ok {
		return
	}
	t.seen[name] = struct{}{}
	t.order = append(t.order, name)
	if !t.dirty {
		t.dirty = true
		if t.notify != nil {
			t.notify()
		}
	}
}

// IsDirty reports whether any property was marked since the last clear.
func (t *Tracker) IsDirty() bool {
	return t.dirty
}

// DirtyProperties returns the dirty names in first-mutation order. The
// returned slice is owned by the tracker and only valid until the next
// MarkDirty or ClearDirty.
func (t *Tracker) DirtyProperties() []string {
	return t.order
}

// ClearDirty resets the flag and the dirty list. The next MarkDirty will
// fire the notification again.
func (t *Tracker) ClearDirty() {
	t.dirty = false
	t.order = t.order[:0]
	for k := range t.seen {
		delete(t.seen, k)
	}
}

// Notify registers a callback fired synchronously on the mutating goroutine
// when the tracker transitions from clean to dirty. Only one callback is
// held; passing nil removes it.
func (t *Tracker) Notify(fn func()) {
	t.notify = fn
}
