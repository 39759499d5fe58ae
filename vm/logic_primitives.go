package vm

// ---------------------------------------------------------------------------
// Logic primitives
// ---------------------------------------------------------------------------

// Logic operations require Boolean operands; anything else is a type
// mismatch fault. Both operands of And/Or are already on the stack, so there
// is no short-circuit to speak of.

// And pops two Booleans and pushes their conjunction.
func (s *Session) And() error {
	if err := s.guard(); err != nil {
		return err
	}
	left, right, err := s.popPair("and")
	if err != nil {
		return err
	}
	if !left.IsBoolean() || !right.IsBoolean() {
		return s.fail(typeMismatch("and", "Boolean operands", left, right))
	}
	return s.push("and", FromBoolean(left.Boolean() && right.Boolean()))
}

// Or pops two Booleans and pushes their disjunction.
func (s *Session) Or() error {
	if err := s.guard(); err != nil {
		return err
	}
	left, right, err := s.popPair("or")
	if err != nil {
		return err
	}
	if !left.IsBoolean() || !right.IsBoolean() {
		return s.fail(typeMismatch("or", "Boolean operands", left, right))
	}
	return s.push("or", FromBoolean(left.Boolean() || right.Boolean()))
}

// Not pops one Boolean and pushes its negation.
func (s *Session) Not() error {
	if err := s.guard(); err != nil {
		return err
	}
	v, err := s.popOperand("not")
	if err != nil {
		return err
	}
	if !v.IsBoolean() {
		return s.fail(typeMismatch("not", "a Boolean operand", v))
	}
	return s.push("not", FromBoolean(!v.Boolean()))
}
