package vm

// ---------------------------------------------------------------------------
// Operand stack
// ---------------------------------------------------------------------------

// DefaultStackCapacity is the operand stack size used when a session is
// created without an explicit capacity.
const DefaultStackCapacity = 1024

// Stack is a fixed-capacity LIFO sequence of Values. The stack pointer
// counts live elements and stays within [0, capacity].
type Stack struct {
	slots []Value
	sp    int
}

// NewStack creates a stack holding at most capacity values.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultStackCapacity
	}
	return &Stack{slots: make([]Value, capacity)}
}

// Push places v on top of the stack.
func (st *Stack) Push(v Value) *Fault {
	if st.sp == len(st.slots) {
		return newFault(FaultStackOverflow, "", "")
	}
	st.slots[st.sp] = v
	st.sp++
	return nil
}

// Pop removes and returns the top value.
func (st *Stack) Pop() (Value, *Fault) {
	if st.sp == 0 {
		return Value{}, newFault(FaultStackUnderflow, "", "")
	}
	st.sp--
	v := st.slots[st.sp]
	st.slots[st.sp] = Value{}
	return v, nil
}

// Peek returns a copy of the top value without removing it.
func (st *Stack) Peek() (Value, *Fault) {
	if st.sp == 0 {
		return Value{}, newFault(FaultStackUnderflow, "", "")
	}
	return st.slots[st.sp-1], nil
}

// Depth returns the number of live elements.
func (st *Stack) Depth() int { return st.sp }

// Capacity returns the fixed maximum depth.
func (st *Stack) Capacity() int { return len(st.slots) }

// At returns the element at depth index i, 0 being the bottom. It is an
// inspection helper; i must be in [0, Depth()).
func (st *Stack) At(i int) Value { return st.slots[i] }

// Reset discards all elements.
func (st *Stack) Reset() {
	for i := 0; i < st.sp; i++ {
		st.slots[i] = Value{}
	}
	st.sp = 0
}
