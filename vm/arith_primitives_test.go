package vm

import (
	"errors"
	"math"
	"testing"
)

// popInteger is a test helper that pops and asserts an Integer result.
func popInteger(t *testing.T, s *Session) int64 {
	t.Helper()
	v, err := s.Pop()
	if err != nil {
		t.Fatalf("Pop() failed: %v", err)
	}
	if !v.IsInteger() {
		t.Fatalf("result kind = %v, want Integer", v.Kind())
	}
	return v.Integer()
}

// popFloat is a test helper that pops and asserts a Float result.
func popFloat(t *testing.T, s *Session) float64 {
	t.Helper()
	v, err := s.Pop()
	if err != nil {
		t.Fatalf("Pop() failed: %v", err)
	}
	if !v.IsFloat() {
		t.Fatalf("result kind = %v, want Float", v.Kind())
	}
	return v.Float()
}

// popBoolean is a test helper that pops and asserts a Boolean result.
func popBoolean(t *testing.T, s *Session) bool {
	t.Helper()
	v, err := s.Pop()
	if err != nil {
		t.Fatalf("Pop() failed: %v", err)
	}
	if !v.IsBoolean() {
		t.Fatalf("result kind = %v, want Boolean", v.Kind())
	}
	return v.Boolean()
}

// wantFault asserts that err is a *Fault of the given kind.
func wantFault(t *testing.T, err error, kind FaultKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a %v fault, got nil", kind)
	}
	var fault *Fault
	if !errors.As(err, &fault) {
		t.Fatalf("error = %T (%v), want *Fault", err, err)
	}
	if fault.Kind != kind {
		t.Fatalf("fault kind = %v, want %v", fault.Kind, kind)
	}
}

// ---------------------------------------------------------------------------
// Add, Subtract, Multiply
// ---------------------------------------------------------------------------

func TestAddIntegers(t *testing.T) {
	s := NewSession()
	s.PushInteger(3)
	s.PushInteger(4)
	if err := s.Add(); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if got := popInteger(t, s); got != 7 {
		t.Errorf("3 + 4 = %d, want 7", got)
	}
}

func TestAddPromotesToFloat(t *testing.T) {
	// Either Float operand promotes the result.
	s := NewSession()
	s.PushInteger(3)
	s.PushFloat(0.5)
	s.Add()
	if got := popFloat(t, s); got != 3.5 {
		t.Errorf("3 + 0.5 = %v, want 3.5", got)
	}

	s.PushFloat(0.5)
	s.PushInteger(3)
	s.Add()
	if got := popFloat(t, s); got != 3.5 {
		t.Errorf("0.5 + 3 = %v, want 3.5", got)
	}
}

func TestSubtractOperandOrder(t *testing.T) {
	// left is below right on the stack: 10 3 subtract = 7.
	s := NewSession()
	s.PushInteger(10)
	s.PushInteger(3)
	if err := s.Subtract(); err != nil {
		t.Fatalf("Subtract() failed: %v", err)
	}
	if got := popInteger(t, s); got != 7 {
		t.Errorf("10 - 3 = %d, want 7", got)
	}
}

func TestMultiply(t *testing.T) {
	s := NewSession()
	s.PushInteger(-6)
	s.PushInteger(7)
	s.Multiply()
	if got := popInteger(t, s); got != -42 {
		t.Errorf("-6 * 7 = %d, want -42", got)
	}

	s.PushFloat(1.5)
	s.PushInteger(4)
	s.Multiply()
	if got := popFloat(t, s); got != 6.0 {
		t.Errorf("1.5 * 4 = %v, want 6", got)
	}
}

func TestIntegerArithmeticWraps(t *testing.T) {
	s := NewSession()
	s.PushInteger(math.MaxInt64)
	s.PushInteger(1)
	if err := s.Add(); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if got := popInteger(t, s); got != math.MinInt64 {
		t.Errorf("MaxInt64 + 1 = %d, want wraparound to MinInt64", got)
	}
}

// ---------------------------------------------------------------------------
// Divide
// ---------------------------------------------------------------------------

func TestDivideAlwaysFloat(t *testing.T) {
	// Integer operands still produce a Float.
	s := NewSession()
	s.PushInteger(7)
	s.PushInteger(2)
	if err := s.Divide(); err != nil {
		t.Fatalf("Divide() failed: %v", err)
	}
	if got := popFloat(t, s); got != 3.5 {
		t.Errorf("7 / 2 = %v, want 3.5", got)
	}
}

func TestDivideByZeroIsIEEE(t *testing.T) {
	// Division by zero is not a fault; it follows IEEE-754.
	s := NewSession()

	s.PushInteger(1)
	s.PushInteger(0)
	if err := s.Divide(); err != nil {
		t.Fatalf("1 / 0 errored: %v", err)
	}
	if got := popFloat(t, s); !math.IsInf(got, 1) {
		t.Errorf("1 / 0 = %v, want +Inf", got)
	}

	s.PushInteger(-1)
	s.PushInteger(0)
	s.Divide()
	if got := popFloat(t, s); !math.IsInf(got, -1) {
		t.Errorf("-1 / 0 = %v, want -Inf", got)
	}

	s.PushInteger(0)
	s.PushInteger(0)
	s.Divide()
	if got := popFloat(t, s); !math.IsNaN(got) {
		t.Errorf("0 / 0 = %v, want NaN", got)
	}

	if s.Fault() != nil {
		t.Errorf("Fault() = %v, want nil", s.Fault())
	}
}

// ---------------------------------------------------------------------------
// Modulo
// ---------------------------------------------------------------------------

func TestModulo(t *testing.T) {
	tests := []struct {
		left, right, want int64
	}{
		{10, 3, 1},
		{-10, 3, -1}, // truncated toward zero
		{10, -3, 1},
		{9, 3, 0},
	}
	for _, tt := range tests {
		s := NewSession()
		s.PushInteger(tt.left)
		s.PushInteger(tt.right)
		if err := s.Modulo(); err != nil {
			t.Fatalf("%d %% %d errored: %v", tt.left, tt.right, err)
		}
		if got := popInteger(t, s); got != tt.want {
			t.Errorf("%d %% %d = %d, want %d", tt.left, tt.right, got, tt.want)
		}
	}
}

func TestModuloByZeroFaults(t *testing.T) {
	s := NewSession()
	s.PushInteger(5)
	s.PushInteger(0)
	wantFault(t, s.Modulo(), FaultZeroDivide)
	if s.Fault() == nil {
		t.Error("zero divisor should latch")
	}
}

func TestModuloRejectsFloats(t *testing.T) {
	s := NewSession()
	s.PushFloat(5.5)
	s.PushInteger(2)
	wantFault(t, s.Modulo(), FaultTypeMismatch)
}

// ---------------------------------------------------------------------------
// Contract violations
// ---------------------------------------------------------------------------

func TestArithmeticTypeMismatch(t *testing.T) {
	s := NewSession()
	s.PushText("x")
	s.PushInteger(1)
	wantFault(t, s.Add(), FaultTypeMismatch)
}

func TestArithmeticUnderflow(t *testing.T) {
	// One operand is not enough for a binary operation.
	s := NewSession()
	s.PushInteger(1)
	wantFault(t, s.Add(), FaultStackUnderflow)
}

func TestBooleanOperandsRejected(t *testing.T) {
	s := NewSession()
	s.PushBoolean(true)
	s.PushBoolean(false)
	wantFault(t, s.Multiply(), FaultTypeMismatch)
}
