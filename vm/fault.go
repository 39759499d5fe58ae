package vm

import "fmt"

// ---------------------------------------------------------------------------
// Runtime faults
// ---------------------------------------------------------------------------

// FaultKind classifies a contract violation.
type FaultKind uint8

const (
	FaultStackUnderflow FaultKind = iota
	FaultStackOverflow
	FaultOutOfMemory
	FaultTypeMismatch
	FaultZeroDivide
	FaultCallDepth
)

// String returns the fault kind name.
func (k FaultKind) String() string {
	switch k {
	case FaultStackUnderflow:
		return "stack underflow"
	case FaultStackOverflow:
		return "stack overflow"
	case FaultOutOfMemory:
		return "out of memory"
	case FaultTypeMismatch:
		return "type mismatch"
	case FaultZeroDivide:
		return "division by zero"
	case FaultCallDepth:
		return "call depth exceeded"
	}
	return "unknown fault"
}

// Fault is a contract violation. Once an operation faults, the fault latches
// on the Session: every subsequent operation returns the same fault until the
// session is re-initialized.
type Fault struct {
	Kind   FaultKind
	Op     string // operation that faulted, empty if outside an operation
	Detail string
}

// Error implements the error interface.
func (f *Fault) Error() string {
	msg := f.Kind.String()
	if f.Op != "" {
		msg = fmt.Sprintf("%s in %s", msg, f.Op)
	}
	if f.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, f.Detail)
	}
	return msg
}

func newFault(kind FaultKind, op, detail string) *Fault {
	return &Fault{Kind: kind, Op: op, Detail: detail}
}

// typeMismatch builds the fault for an operand whose tag does not satisfy an
// operation's contract.
func typeMismatch(op, want string, got ...Value) *Fault {
	detail := "wants " + want
	for i, v := range got {
		if i == 0 {
			detail += ", got "
		} else {
			detail += " and "
		}
		detail += v.Kind().String()
	}
	return newFault(FaultTypeMismatch, op, detail)
}

// ---------------------------------------------------------------------------
// Benign-default notices
// ---------------------------------------------------------------------------

// Defaulted reports that an operation substituted a benign default result
// (empty Text, Integer 0, Boolean false, unchanged List) instead of failing.
// Sessions in the default lenient mode never return it; strict-mode sessions
// return it from the substituting operation. The stack effect is identical
// either way, and a Defaulted never latches.
type Defaulted struct {
	Op     string
	Reason string
}

// Error implements the error interface.
func (d *Defaulted) Error() string {
	return fmt.Sprintf("%s substituted a default: %s", d.Op, d.Reason)
}
