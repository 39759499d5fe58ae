package vm

// ---------------------------------------------------------------------------
// Allocation arena
// ---------------------------------------------------------------------------

// Arena is the session's allocation tracker: an insertion-ordered registry of
// every owned Text buffer and every List created during the session. Nothing
// is released individually; ReleaseAll drains the whole registry at session
// finalize. The registry is unbounded unless a byte limit is set, in which
// case buffer allocation beyond the limit faults with out-of-memory.
type Arena struct {
	buffers [][]byte
	lists   []*List
	used    int64
	limit   int64 // 0 = unbounded
}

// NewArena creates an arena. limit caps the total buffer bytes the arena may
// hand out during one session; 0 means no cap.
func NewArena(limit int64) *Arena {
	return &Arena{limit: limit}
}

// Allocate returns a zeroed buffer of n bytes and registers it.
func (a *Arena) Allocate(n int) ([]byte, *Fault) {
	if n < 0 {
		n = 0
	}
	if a.limit > 0 && a.used+int64(n) > a.limit {
		return nil, newFault(FaultOutOfMemory, "", "arena limit reached")
	}
	buf := make([]byte, n)
	a.buffers = append(a.buffers, buf)
	a.used += int64(n)
	return buf, nil
}

// DuplicateText copies data into a fresh registered buffer and returns it
// wrapped as an owned Text.
func (a *Arena) DuplicateText(data []byte) (*Text, *Fault) {
	buf, fault := a.Allocate(len(data))
	if fault != nil {
		return nil, fault
	}
	copy(buf, data)
	return &Text{data: buf, owned: true}, nil
}

// NewList creates an empty list with the initial capacity and registers it.
func (a *Arena) NewList() *List {
	l := newList()
	a.lists = append(a.lists, l)
	return l
}

// Count returns the number of registered allocations (buffers plus lists).
func (a *Arena) Count() int {
	return len(a.buffers) + len(a.lists)
}

// Bytes returns the total buffer bytes handed out since the last release.
func (a *Arena) Bytes() int64 { return a.used }

// ReleaseAll drains the registry: every registered list is cleared and every
// buffer reference dropped, exactly once. Idempotent on an empty registry.
func (a *Arena) ReleaseAll() {
	for i := range a.buffers {
		a.buffers[i] = nil
	}
	for _, l := range a.lists {
		l.clear()
	}
	a.buffers = nil
	a.lists = nil
	a.used = 0
}
