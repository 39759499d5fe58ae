package vm

// ---------------------------------------------------------------------------
// Comparison primitives
// ---------------------------------------------------------------------------

// Ordering comparisons are defined on numbers only, after float promotion.
// Equality is broader: see Value.Equal.

// compareNumeric pops two operands for an ordering comparison and pushes the
// Boolean result of cmp over their float promotions.
func (s *Session) compareNumeric(op string, cmp func(a, b float64) bool) error {
	if err := s.guard(); err != nil {
		return err
	}
	left, right, err := s.popPair(op)
	if err != nil {
		return err
	}
	if !left.IsNumeric() || !right.IsNumeric() {
		return s.fail(typeMismatch(op, "numeric operands", left, right))
	}
	return s.push(op, FromBoolean(cmp(left.asFloat(), right.asFloat())))
}

// Less pushes left < right.
func (s *Session) Less() error {
	return s.compareNumeric("less", func(a, b float64) bool { return a < b })
}

// Greater pushes left > right.
func (s *Session) Greater() error {
	return s.compareNumeric("greater", func(a, b float64) bool { return a > b })
}

// LessOrEqual pushes left <= right.
func (s *Session) LessOrEqual() error {
	return s.compareNumeric("less-or-equal", func(a, b float64) bool { return a <= b })
}

// GreaterOrEqual pushes left >= right.
func (s *Session) GreaterOrEqual() error {
	return s.compareNumeric("greater-or-equal", func(a, b float64) bool { return a >= b })
}

// Equal pushes whether the operands are equal: numeric pairs after float
// promotion, Texts by byte sequence, Booleans by value, Lists by identity,
// everything else unequal.
func (s *Session) Equal() error {
	if err := s.guard(); err != nil {
		return err
	}
	left, right, err := s.popPair("equal")
	if err != nil {
		return err
	}
	return s.push("equal", FromBoolean(left.Equal(right)))
}

// NotEqual pushes the negation of Equal.
func (s *Session) NotEqual() error {
	if err := s.guard(); err != nil {
		return err
	}
	left, right, err := s.popPair("not-equal")
	if err != nil {
		return err
	}
	return s.push("not-equal", FromBoolean(!left.Equal(right)))
}
