package vm

// ---------------------------------------------------------------------------
// Stack shuffling primitives
// ---------------------------------------------------------------------------

// Pure stack-shape transforms; none of them allocates.

// Dup duplicates the top value: ( a -- a a ).
func (s *Session) Dup() error {
	if err := s.guard(); err != nil {
		return err
	}
	v, f := s.stack.Peek()
	if f != nil {
		f.Op = "dup"
		return s.fail(f)
	}
	return s.push("dup", v)
}

// Drop discards the top value: ( a -- ).
func (s *Session) Drop() error {
	if err := s.guard(); err != nil {
		return err
	}
	_, err := s.popOperand("drop")
	return err
}

// Swap exchanges the two top values: ( a b -- b a ).
func (s *Session) Swap() error {
	if err := s.guard(); err != nil {
		return err
	}
	a, b, err := s.popPair("swap")
	if err != nil {
		return err
	}
	if err := s.push("swap", b); err != nil {
		return err
	}
	return s.push("swap", a)
}

// Over copies the second value to the top: ( a b -- a b a ).
func (s *Session) Over() error {
	if err := s.guard(); err != nil {
		return err
	}
	a, b, err := s.popPair("over")
	if err != nil {
		return err
	}
	if err := s.push("over", a); err != nil {
		return err
	}
	if err := s.push("over", b); err != nil {
		return err
	}
	return s.push("over", a)
}

// Rot rotates the third value to the top: ( a b c -- b c a ).
func (s *Session) Rot() error {
	if err := s.guard(); err != nil {
		return err
	}
	c, err := s.popOperand("rot")
	if err != nil {
		return err
	}
	b, err := s.popOperand("rot")
	if err != nil {
		return err
	}
	a, err := s.popOperand("rot")
	if err != nil {
		return err
	}
	if err := s.push("rot", b); err != nil {
		return err
	}
	if err := s.push("rot", c); err != nil {
		return err
	}
	return s.push("rot", a)
}
