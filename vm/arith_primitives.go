package vm

// ---------------------------------------------------------------------------
// Arithmetic primitives
// ---------------------------------------------------------------------------

// Integer arithmetic wraps on overflow; no checking is performed. Division
// always happens in float space, so dividing by zero yields IEEE ±Inf or NaN
// rather than a fault. Modulo is the one strictly integral operation.

// numericPair pops two operands and faults unless both are numeric.
func (s *Session) numericPair(op string) (left, right Value, err error) {
	left, right, err = s.popPair(op)
	if err != nil {
		return
	}
	if !left.IsNumeric() || !right.IsNumeric() {
		err = s.fail(typeMismatch(op, "numeric operands", left, right))
	}
	return
}

// Add pops right then left and pushes left+right. The result is Float if
// either operand is Float, Integer otherwise.
func (s *Session) Add() error {
	if err := s.guard(); err != nil {
		return err
	}
	left, right, err := s.numericPair("add")
	if err != nil {
		return err
	}
	if left.IsFloat() || right.IsFloat() {
		return s.push("add", FromFloat(left.asFloat()+right.asFloat()))
	}
	return s.push("add", FromInteger(left.Integer()+right.Integer()))
}

// Subtract pushes left-right under the same promotion rule as Add.
func (s *Session) Subtract() error {
	if err := s.guard(); err != nil {
		return err
	}
	left, right, err := s.numericPair("subtract")
	if err != nil {
		return err
	}
	if left.IsFloat() || right.IsFloat() {
		return s.push("subtract", FromFloat(left.asFloat()-right.asFloat()))
	}
	return s.push("subtract", FromInteger(left.Integer()-right.Integer()))
}

// Multiply pushes left*right under the same promotion rule as Add.
func (s *Session) Multiply() error {
	if err := s.guard(); err != nil {
		return err
	}
	left, right, err := s.numericPair("multiply")
	if err != nil {
		return err
	}
	if left.IsFloat() || right.IsFloat() {
		return s.push("multiply", FromFloat(left.asFloat()*right.asFloat()))
	}
	return s.push("multiply", FromInteger(left.Integer()*right.Integer()))
}

// Divide always promotes both operands to Float and pushes a Float; there is
// no integer division.
func (s *Session) Divide() error {
	if err := s.guard(); err != nil {
		return err
	}
	left, right, err := s.numericPair("divide")
	if err != nil {
		return err
	}
	return s.push("divide", FromFloat(left.asFloat()/right.asFloat()))
}

// Modulo requires two Integers and pushes left%right (truncated toward
// zero). A non-Integer operand or a zero divisor faults.
func (s *Session) Modulo() error {
	if err := s.guard(); err != nil {
		return err
	}
	left, right, err := s.popPair("modulo")
	if err != nil {
		return err
	}
	if !left.IsInteger() || !right.IsInteger() {
		return s.fail(typeMismatch("modulo", "Integer operands", left, right))
	}
	if right.Integer() == 0 {
		return s.fail(newFault(FaultZeroDivide, "modulo", ""))
	}
	return s.push("modulo", FromInteger(left.Integer()%right.Integer()))
}
