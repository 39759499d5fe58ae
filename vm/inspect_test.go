package vm

import "testing"

func TestFormatStackEmpty(t *testing.T) {
	s := NewSession()
	if got := s.FormatStack(); got != "<0>" {
		t.Errorf("FormatStack() = %q, want %q", got, "<0>")
	}
}

func TestFormatStackBottomToTop(t *testing.T) {
	s := NewSession()
	s.PushInteger(1)
	s.PushFloat(2.5)
	s.PushText("hi")
	s.PushBoolean(true)

	want := `<4> 1 2.5 "hi" ಸರಿ`
	if got := s.FormatStack(); got != want {
		t.Errorf("FormatStack() = %q, want %q", got, want)
	}
	// Formatting must not disturb the stack.
	if s.Depth() != 4 {
		t.Errorf("Depth() after FormatStack = %d, want 4", s.Depth())
	}
}

func TestFormatStackList(t *testing.T) {
	s := NewSession()
	l := s.NewList()
	l.Push(FromInteger(1))
	l.Push(FromText(BorrowedText("x")))
	s.PushList(l)

	want := `<1> [1 "x"]`
	if got := s.FormatStack(); got != want {
		t.Errorf("FormatStack() = %q, want %q", got, want)
	}
}

func TestFormatStackQuotesText(t *testing.T) {
	// Unlike Print, diagnostics quote text so emptiness and spacing stay
	// visible.
	s := NewSession()
	s.PushText("")
	want := `<1> ""`
	if got := s.FormatStack(); got != want {
		t.Errorf("FormatStack() = %q, want %q", got, want)
	}
}
