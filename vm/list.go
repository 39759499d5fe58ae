package vm

// ---------------------------------------------------------------------------
// Lists
// ---------------------------------------------------------------------------

// listInitialCapacity is the capacity every fresh list starts with.
const listInitialCapacity = 8

// List is a growable ordered sequence of Values, shared by reference: every
// stack slot holding the same *List aliases its contents, so a mutation made
// through one reference is visible through all of them. Lists are created
// through an Arena, which clears them at session finalize.
type List struct {
	items []Value
}

func newList() *List {
	return &List{items: make([]Value, 0, listInitialCapacity)}
}

// Len returns the element count.
func (l *List) Len() int64 { return int64(len(l.items)) }

// Cap returns the current capacity.
func (l *List) Cap() int { return cap(l.items) }

// At returns the element at index i and whether i was in range.
func (l *List) At(i int64) (Value, bool) {
	if i < 0 || i >= int64(len(l.items)) {
		return Value{}, false
	}
	return l.items[i], true
}

// Items returns the live element slice. Callers must not grow it; it is a
// view for iteration.
func (l *List) Items() []Value { return l.items }

// Push appends v, doubling the capacity when the list is full. Growth
// allocates a new backing array and copies the existing elements, so slices
// taken before the growth keep observing the old array; stack references to
// the *List itself always observe the mutation.
func (l *List) Push(v Value) {
	if len(l.items) == cap(l.items) {
		newCap := cap(l.items) * 2
		if newCap == 0 {
			newCap = listInitialCapacity
		}
		grown := make([]Value, len(l.items), newCap)
		copy(grown, l.items)
		l.items = grown
	}
	l.items = append(l.items, v)
}

// clear empties the list and drops its backing array. Called by the arena at
// release; a cleared list reads as empty through every surviving alias.
func (l *List) clear() {
	l.items = nil
}
