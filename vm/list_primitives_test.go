package vm

import (
	"errors"
	"testing"
)

// popList is a test helper that pops and asserts a List result.
func popList(t *testing.T, s *Session) *List {
	t.Helper()
	v, err := s.Pop()
	if err != nil {
		t.Fatalf("Pop() failed: %v", err)
	}
	if !v.IsList() {
		t.Fatalf("result kind = %v, want List", v.Kind())
	}
	return v.List()
}

// ---------------------------------------------------------------------------
// Creation and append
// ---------------------------------------------------------------------------

func TestListNewPushesEmptyList(t *testing.T) {
	s := NewSession()
	if err := s.ListNew(); err != nil {
		t.Fatalf("ListNew errored: %v", err)
	}
	l := popList(t, s)
	if l.Len() != 0 {
		t.Errorf("new list Len() = %d, want 0", l.Len())
	}
	if s.Allocations() != 1 {
		t.Errorf("Allocations() = %d, want 1", s.Allocations())
	}
}

func TestListPushAppendsAndKeepsTarget(t *testing.T) {
	s := NewSession()
	s.ListNew()
	s.PushInteger(42)
	if err := s.ListPush(); err != nil {
		t.Fatalf("ListPush errored: %v", err)
	}

	// The same list is back on top.
	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", s.Depth())
	}
	l := popList(t, s)
	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}
	if v, _ := l.At(0); v.Integer() != 42 {
		t.Errorf("At(0) = %d, want 42", v.Integer())
	}
}

func TestListPushAliasesEveryReference(t *testing.T) {
	// Keep a second reference below, push through the top one, and observe
	// the append through both.
	s := NewSession()
	s.ListNew()
	s.Dup()
	s.PushInteger(7)
	if err := s.ListPush(); err != nil {
		t.Fatalf("ListPush errored: %v", err)
	}

	top := popList(t, s)
	bottom := popList(t, s)
	if top != bottom {
		t.Fatal("push-item should return the same list it popped")
	}
	if bottom.Len() != 1 {
		t.Errorf("aliased reference Len() = %d, want 1", bottom.Len())
	}
}

func TestListPushGrowsPastInitialCapacity(t *testing.T) {
	s := NewSession()
	s.ListNew()
	for i := int64(0); i < 9; i++ {
		s.PushInteger(i)
		if err := s.ListPush(); err != nil {
			t.Fatalf("ListPush %d errored: %v", i, err)
		}
	}
	l := popList(t, s)
	if l.Len() != 9 {
		t.Fatalf("Len() = %d, want 9", l.Len())
	}
	for i := int64(0); i < 9; i++ {
		if v, _ := l.At(i); v.Integer() != i {
			t.Errorf("At(%d) = %d, want %d", i, v.Integer(), i)
		}
	}
}

func TestListPushNonListKeepsOperandUnchanged(t *testing.T) {
	s := NewSession()
	s.PushInteger(5)  // not a list
	s.PushInteger(99) // item
	if err := s.ListPush(); err != nil {
		t.Fatalf("lenient ListPush errored: %v", err)
	}
	// Net arity is preserved: the mistyped target is back, the item is gone.
	if s.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", s.Depth())
	}
	if got := popInteger(t, s); got != 5 {
		t.Errorf("target = %d, want 5 unchanged", got)
	}
}

// ---------------------------------------------------------------------------
// Length
// ---------------------------------------------------------------------------

func TestLengthOfList(t *testing.T) {
	s := NewSession()
	l := s.NewList()
	l.Push(FromInteger(1))
	l.Push(FromInteger(2))
	l.Push(FromInteger(3))
	s.PushList(l)

	if err := s.Length(); err != nil {
		t.Fatalf("Length errored: %v", err)
	}
	if got := popInteger(t, s); got != 3 {
		t.Errorf("length = %d, want 3", got)
	}
}

func TestLengthOfText(t *testing.T) {
	// Length on a Text counts scalars, same as TextLength.
	s := NewSession()
	s.PushText("ಕನ್ನಡ")
	if err := s.Length(); err != nil {
		t.Fatalf("Length errored: %v", err)
	}
	if got := popInteger(t, s); got != 5 {
		t.Errorf("length = %d, want 5", got)
	}
}

func TestLengthOfOtherKinds(t *testing.T) {
	s := NewSession()
	s.PushBoolean(true)
	if err := s.Length(); err != nil {
		t.Fatalf("lenient Length errored: %v", err)
	}
	if got := popInteger(t, s); got != 0 {
		t.Errorf("length of Boolean = %d, want 0", got)
	}
}

// ---------------------------------------------------------------------------
// Indexing
// ---------------------------------------------------------------------------

func TestListAt(t *testing.T) {
	s := NewSession()
	l := s.NewList()
	l.Push(FromInteger(10))
	l.Push(FromInteger(20))
	l.Push(FromInteger(30))

	s.PushList(l)
	s.PushInteger(1)
	if err := s.ListAt(); err != nil {
		t.Fatalf("ListAt errored: %v", err)
	}
	if got := popInteger(t, s); got != 20 {
		t.Errorf("element 1 = %d, want 20", got)
	}
}

func TestListAtOutOfRange(t *testing.T) {
	for _, index := range []int64{-1, 2, 50} {
		s := NewSession()
		l := s.NewList()
		l.Push(FromInteger(1))
		l.Push(FromInteger(2))

		s.PushList(l)
		s.PushInteger(index)
		if err := s.ListAt(); err != nil {
			t.Fatalf("lenient ListAt(%d) errored: %v", index, err)
		}
		if got := popInteger(t, s); got != 0 {
			t.Errorf("element %d = %d, want 0", index, got)
		}
	}
}

func TestListAtStrict(t *testing.T) {
	s := NewSessionWith(Options{Strict: true})
	l := s.NewList()
	s.PushList(l)
	s.PushInteger(0)

	err := s.ListAt()
	var d *Defaulted
	if !errors.As(err, &d) {
		t.Fatalf("strict ListAt error = %T, want *Defaulted", err)
	}
	if got := popInteger(t, s); got != 0 {
		t.Errorf("substituted value = %d, want 0", got)
	}
}

// ---------------------------------------------------------------------------
// First and rest
// ---------------------------------------------------------------------------

func TestListFirst(t *testing.T) {
	s := NewSession()
	l := s.NewList()
	l.Push(FromText(BorrowedText("head")))
	l.Push(FromInteger(2))

	s.PushList(l)
	if err := s.ListFirst(); err != nil {
		t.Fatalf("ListFirst errored: %v", err)
	}
	if got := popText(t, s); got != "head" {
		t.Errorf("first = %q, want %q", got, "head")
	}
}

func TestListFirstOfEmpty(t *testing.T) {
	s := NewSession()
	s.ListNew()
	if err := s.ListFirst(); err != nil {
		t.Fatalf("lenient ListFirst errored: %v", err)
	}
	if got := popInteger(t, s); got != 0 {
		t.Errorf("first of empty = %d, want 0", got)
	}
}

func TestListRest(t *testing.T) {
	s := NewSession()
	l := s.NewList()
	for i := int64(1); i <= 3; i++ {
		l.Push(FromInteger(i))
	}

	s.PushList(l)
	if err := s.ListRest(); err != nil {
		t.Fatalf("ListRest errored: %v", err)
	}
	rest := popList(t, s)
	if rest.Len() != 2 {
		t.Fatalf("rest Len() = %d, want 2", rest.Len())
	}
	if v, _ := rest.At(0); v.Integer() != 2 {
		t.Errorf("rest At(0) = %d, want 2", v.Integer())
	}
	if v, _ := rest.At(1); v.Integer() != 3 {
		t.Errorf("rest At(1) = %d, want 3", v.Integer())
	}
}

func TestListRestNeverAliases(t *testing.T) {
	s := NewSession()
	l := s.NewList()
	l.Push(FromInteger(1))
	l.Push(FromInteger(2))

	s.PushList(l)
	s.ListRest()
	rest := popList(t, s)

	if rest == l {
		t.Fatal("rest should be a new list")
	}
	// Mutating the rest must not touch the source, and vice versa.
	rest.Push(FromInteger(99))
	if l.Len() != 2 {
		t.Errorf("source Len() = %d, want 2 after mutating rest", l.Len())
	}
	l.Push(FromInteger(42))
	if rest.Len() != 2 {
		t.Errorf("rest Len() = %d, want 2 after mutating source", rest.Len())
	}
}

func TestListRestOfShortLists(t *testing.T) {
	// Both an empty and a one-element source yield a new empty list.
	for _, n := range []int{0, 1} {
		s := NewSession()
		l := s.NewList()
		for i := 0; i < n; i++ {
			l.Push(FromInteger(int64(i)))
		}
		s.PushList(l)
		if err := s.ListRest(); err != nil {
			t.Fatalf("ListRest on %d-element list errored: %v", n, err)
		}
		rest := popList(t, s)
		if rest.Len() != 0 {
			t.Errorf("rest of %d-element list Len() = %d, want 0", n, rest.Len())
		}
		if rest == l {
			t.Error("rest should never be the source list")
		}
	}
}

func TestListRestOfNonList(t *testing.T) {
	s := NewSession()
	s.PushInteger(3)
	if err := s.ListRest(); err != nil {
		t.Fatalf("lenient ListRest errored: %v", err)
	}
	rest := popList(t, s)
	if rest.Len() != 0 {
		t.Errorf("rest of Integer Len() = %d, want 0", rest.Len())
	}
}

// ---------------------------------------------------------------------------
// Nesting
// ---------------------------------------------------------------------------

func TestNestedListsShareStructure(t *testing.T) {
	// inner is reachable from outer; mutations through either view agree.
	s := NewSession()
	inner := s.NewList()
	outer := s.NewList()
	outer.Push(FromList(inner))

	s.PushList(outer)
	s.PushInteger(0)
	s.ListAt()
	got := popList(t, s)
	if got != inner {
		t.Fatal("element 0 of outer should be inner by identity")
	}
	got.Push(FromInteger(5))
	if inner.Len() != 1 {
		t.Errorf("inner Len() = %d, want 1", inner.Len())
	}
}
