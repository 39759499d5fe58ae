package vm

// ---------------------------------------------------------------------------
// List primitives
// ---------------------------------------------------------------------------

// ListNew pushes a fresh empty list, registered with the arena.
func (s *Session) ListNew() error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.push("list-new", FromList(s.arena.NewList()))
}

// ListPush pops an item then a List, appends the item, and pushes the same
// List back; every stack reference to that List observes the append. When
// the target is not a List it is pushed back unchanged, keeping the
// operation's net arity.
func (s *Session) ListPush() error {
	if err := s.guard(); err != nil {
		return err
	}
	target, item, err := s.popPair("push-item")
	if err != nil {
		return err
	}
	if !target.IsList() {
		if err := s.push("push-item", target); err != nil {
			return err
		}
		return s.defaulted("push-item", "target is "+target.Kind().String()+", not List")
	}
	target.List().Push(item)
	return s.push("push-item", target)
}

// Length pops a value and pushes its count as an Integer: element count for
// a List, scalar-value count for a Text, 0 for anything else.
func (s *Session) Length() error {
	if err := s.guard(); err != nil {
		return err
	}
	v, err := s.popOperand("length")
	if err != nil {
		return err
	}
	switch v.Kind() {
	case KindList:
		return s.push("length", FromInteger(v.List().Len()))
	case KindText:
		return s.push("length", FromInteger(v.Text().ScalarCount()))
	}
	if err := s.push("length", FromInteger(0)); err != nil {
		return err
	}
	return s.defaulted("length", "operand is "+v.Kind().String())
}

// ListAt pops an Integer index then a List and pushes the element at the
// index, or Integer 0 when the index is out of range or an operand is
// mistyped.
func (s *Session) ListAt() error {
	if err := s.guard(); err != nil {
		return err
	}
	target, index, err := s.popPair("index")
	if err != nil {
		return err
	}
	if !target.IsList() || !index.IsInteger() {
		if err := s.push("index", FromInteger(0)); err != nil {
			return err
		}
		return s.defaulted("index", "operands are "+target.Kind().String()+" and "+index.Kind().String())
	}
	v, ok := target.List().At(index.Integer())
	if !ok {
		if err := s.push("index", FromInteger(0)); err != nil {
			return err
		}
		return s.defaulted("index", "index out of range")
	}
	return s.push("index", v)
}

// ListFirst pops a List and pushes its first element, or Integer 0 when the
// list is empty or the operand is not a List.
func (s *Session) ListFirst() error {
	if err := s.guard(); err != nil {
		return err
	}
	v, err := s.popOperand("first")
	if err != nil {
		return err
	}
	if !v.IsList() {
		if err := s.push("first", FromInteger(0)); err != nil {
			return err
		}
		return s.defaulted("first", "operand is "+v.Kind().String()+", not List")
	}
	first, ok := v.List().At(0)
	if !ok {
		if err := s.push("first", FromInteger(0)); err != nil {
			return err
		}
		return s.defaulted("first", "list is empty")
	}
	return s.push("first", first)
}

// ListRest pops a List and pushes a new registered List holding elements
// [1..length). The result never aliases the source's backing storage; a
// source with fewer than two elements yields a new empty List, as does a
// non-List operand.
func (s *Session) ListRest() error {
	if err := s.guard(); err != nil {
		return err
	}
	v, err := s.popOperand("rest")
	if err != nil {
		return err
	}
	rest := s.arena.NewList()
	if !v.IsList() {
		if err := s.push("rest", FromList(rest)); err != nil {
			return err
		}
		return s.defaulted("rest", "operand is "+v.Kind().String()+", not List")
	}
	items := v.List().Items()
	for i := 1; i < len(items); i++ {
		rest.Push(items[i])
	}
	return s.push("rest", FromList(rest))
}
