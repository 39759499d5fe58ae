package vm

import (
	"io"
	"os"
)

// ---------------------------------------------------------------------------
// Session options
// ---------------------------------------------------------------------------

// Default boolean print tokens. Kapila renders booleans in Kannada.
const (
	DefaultTrueToken  = "ಸರಿ"
	DefaultFalseToken = "ತಪ್ಪು"
)

// DefaultMaxCallDepth bounds nested word invocations during program replay.
const DefaultMaxCallDepth = 256

// Options configures a Session. The zero value selects all defaults.
type Options struct {
	// StackCapacity fixes the operand stack size. 0 selects
	// DefaultStackCapacity.
	StackCapacity int

	// MaxHeapBytes caps the arena's buffer bytes for one session.
	// 0 means unbounded.
	MaxHeapBytes int64

	// MaxCallDepth bounds nested word calls in Run. 0 selects
	// DefaultMaxCallDepth.
	MaxCallDepth int

	// Strict makes operations report benign-default substitutions as
	// *Defaulted errors instead of silently succeeding.
	Strict bool

	// TrueToken and FalseToken override the boolean print tokens.
	TrueToken  string
	FalseToken string

	// Out receives print output. nil selects os.Stdout.
	Out io.Writer
}

func (o Options) withDefaults() Options {
	if o.StackCapacity <= 0 {
		o.StackCapacity = DefaultStackCapacity
	}
	if o.MaxCallDepth <= 0 {
		o.MaxCallDepth = DefaultMaxCallDepth
	}
	if o.TrueToken == "" {
		o.TrueToken = DefaultTrueToken
	}
	if o.FalseToken == "" {
		o.FalseToken = DefaultFalseToken
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	return o
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

// Session is one initialize-to-finalize lifetime of the machine: an operand
// stack, an allocation arena, and the primitive operations that act on them.
// Sessions are independent of each other and not goroutine-safe; hosts that
// share one session across goroutines wrap it in a SessionWorker.
type Session struct {
	stack *Stack
	arena *Arena
	opts  Options
	out   io.Writer
	fault *Fault
	depth int
}

// NewSession creates a session with default options.
func NewSession() *Session {
	return NewSessionWith(Options{})
}

// NewSessionWith creates a session with the given options.
func NewSessionWith(opts Options) *Session {
	opts = opts.withDefaults()
	return &Session{
		stack: NewStack(opts.StackCapacity),
		arena: NewArena(opts.MaxHeapBytes),
		opts:  opts,
		out:   opts.Out,
	}
}

// Init resets the session to its initial state: empty stack, drained arena,
// no latched fault. A faulted or finalized session becomes usable again.
func (s *Session) Init() {
	s.arena.ReleaseAll()
	s.stack.Reset()
	s.fault = nil
	s.depth = 0
}

// Finalize releases every tracked allocation and empties the stack. The
// session must be Init-ed again before further use.
func (s *Session) Finalize() {
	s.arena.ReleaseAll()
	s.stack.Reset()
}

// Fault returns the latched fault, or nil if the session is healthy.
func (s *Session) Fault() *Fault { return s.fault }

// Strict reports whether the session is in strict mode.
func (s *Session) Strict() bool { return s.opts.Strict }

// Depth returns the number of values on the operand stack.
func (s *Session) Depth() int { return s.stack.Depth() }

// Allocations returns the arena's registered allocation count.
func (s *Session) Allocations() int { return s.arena.Count() }

// fail latches a fault and returns it as the operation's error.
func (s *Session) fail(f *Fault) error {
	s.fault = f
	return f
}

// defaulted reports a benign-default substitution: nil in lenient mode, a
// *Defaulted in strict mode.
func (s *Session) defaulted(op, reason string) error {
	if s.opts.Strict {
		return &Defaulted{Op: op, Reason: reason}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Stack access
// ---------------------------------------------------------------------------

// push places v on the stack on behalf of the named operation.
func (s *Session) push(op string, v Value) error {
	if f := s.stack.Push(v); f != nil {
		f.Op = op
		return s.fail(f)
	}
	return nil
}

// popOperand removes the top value on behalf of the named operation.
func (s *Session) popOperand(op string) (Value, error) {
	v, f := s.stack.Pop()
	if f != nil {
		f.Op = op
		return Value{}, s.fail(f)
	}
	return v, nil
}

// popPair removes two operands in the machine's order: the right operand is
// on top and popped first.
func (s *Session) popPair(op string) (left, right Value, err error) {
	right, err = s.popOperand(op)
	if err != nil {
		return Value{}, Value{}, err
	}
	left, err = s.popOperand(op)
	if err != nil {
		return Value{}, Value{}, err
	}
	return left, right, nil
}

// guard returns the latched fault, if any. Every public operation starts
// with it so a faulted session fails deterministically.
func (s *Session) guard() error {
	if s.fault != nil {
		return s.fault
	}
	return nil
}

// ---------------------------------------------------------------------------
// Driver surface: value construction and observation
// ---------------------------------------------------------------------------

// PushInteger pushes an Integer.
func (s *Session) PushInteger(n int64) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.push("push-integer", FromInteger(n))
}

// PushFloat pushes a Float.
func (s *Session) PushFloat(x float64) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.push("push-float", FromFloat(x))
}

// PushBoolean pushes a Boolean.
func (s *Session) PushBoolean(b bool) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.push("push-boolean", FromBoolean(b))
}

// PushText pushes a borrowed Text wrapping the driver's literal.
func (s *Session) PushText(text string) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.push("push-text", FromText(BorrowedText(text)))
}

// PushList pushes a reference to l.
func (s *Session) PushList(l *List) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.push("push-list", FromList(l))
}

// PushValue pushes an already-constructed Value.
func (s *Session) PushValue(v Value) error {
	if err := s.guard(); err != nil {
		return err
	}
	return s.push("push-value", v)
}

// Pop removes and returns the top value for driver observation.
func (s *Session) Pop() (Value, error) {
	if err := s.guard(); err != nil {
		return Value{}, err
	}
	return s.popOperand("pop")
}

// Peek returns the top value without removing it.
func (s *Session) Peek() (Value, error) {
	if err := s.guard(); err != nil {
		return Value{}, err
	}
	v, f := s.stack.Peek()
	if f != nil {
		f.Op = "peek"
		return Value{}, s.fail(f)
	}
	return v, nil
}

// NewList creates an empty arena-registered list without pushing it.
func (s *Session) NewList() *List {
	return s.arena.NewList()
}
