package vm

// ---------------------------------------------------------------------------
// Text primitives
// ---------------------------------------------------------------------------

// Text is UTF-8 throughout. Logical positions are Unicode scalar values, not
// bytes: a scalar starts at every byte that is not a continuation byte
// (10xxxxxx), and its encoded width follows from the leading byte.

// scalarWidth returns the encoded byte width implied by a scalar's leading
// byte.
func scalarWidth(lead byte) int {
	switch {
	case lead&0xF0 == 0xF0:
		return 4
	case lead&0xE0 == 0xE0:
		return 3
	case lead&0xC0 == 0xC0:
		return 2
	}
	return 1
}

// pushEmptyText pushes the benign empty Text default.
func (s *Session) pushEmptyText(op string) error {
	return s.push(op, FromText(emptyText))
}

// TextLength pops a Text and pushes its scalar-value count as an Integer.
// A non-Text operand yields Integer 0.
func (s *Session) TextLength() error {
	if err := s.guard(); err != nil {
		return err
	}
	v, err := s.popOperand("length")
	if err != nil {
		return err
	}
	if !v.IsText() {
		if err := s.push("length", FromInteger(0)); err != nil {
			return err
		}
		return s.defaulted("length", "operand is "+v.Kind().String()+", not Text")
	}
	return s.push("length", FromInteger(v.Text().ScalarCount()))
}

// Concat pops right then left, copies both byte sequences into one new owned
// buffer, and pushes the result. Neither input is mutated. Non-Text operands
// yield an empty Text.
func (s *Session) Concat() error {
	if err := s.guard(); err != nil {
		return err
	}
	left, right, err := s.popPair("concatenate")
	if err != nil {
		return err
	}
	if !left.IsText() || !right.IsText() {
		if err := s.pushEmptyText("concatenate"); err != nil {
			return err
		}
		return s.defaulted("concatenate", "operands are "+left.Kind().String()+" and "+right.Kind().String())
	}
	lb, rb := left.Text().Bytes(), right.Text().Bytes()
	buf, fault := s.arena.Allocate(len(lb) + len(rb))
	if fault != nil {
		fault.Op = "concatenate"
		return s.fail(fault)
	}
	copy(buf, lb)
	copy(buf[len(lb):], rb)
	return s.push("concatenate", FromText(&Text{data: buf, owned: true}))
}

// CharAt pops an Integer index then a Text, walks scalar boundaries to the
// requested logical index, and pushes the bytes of exactly that one scalar as
// a new owned Text. Wrong operand types or an out-of-range index yield an
// empty Text.
func (s *Session) CharAt() error {
	if err := s.guard(); err != nil {
		return err
	}
	text, index, err := s.popPair("character-at")
	if err != nil {
		return err
	}
	if !text.IsText() || !index.IsInteger() {
		if err := s.pushEmptyText("character-at"); err != nil {
			return err
		}
		return s.defaulted("character-at", "operands are "+text.Kind().String()+" and "+index.Kind().String())
	}
	data := text.Text().Bytes()
	target := index.Integer()
	if target >= 0 {
		seen := int64(-1)
		for i := 0; i < len(data); i++ {
			if data[i]&0xC0 == 0x80 {
				continue
			}
			seen++
			if seen < target {
				continue
			}
			width := scalarWidth(data[i])
			if i+width > len(data) {
				width = len(data) - i
			}
			out, fault := s.arena.DuplicateText(data[i : i+width])
			if fault != nil {
				fault.Op = "character-at"
				return s.fail(fault)
			}
			return s.push("character-at", FromText(out))
		}
	}
	if err := s.pushEmptyText("character-at"); err != nil {
		return err
	}
	return s.defaulted("character-at", "index out of range")
}
