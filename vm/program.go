package vm

import (
	"fmt"
	"sort"
	"strconv"
)

// ---------------------------------------------------------------------------
// Opcode definitions
// ---------------------------------------------------------------------------

// Op identifies one instruction in a recorded program. A program is nothing
// more than a driver's sequence of primitive invocations written down, so
// every opcode maps to exactly one primitive or one literal push.
type Op byte

// Literal pushes
const (
	OpPushInteger Op = 0x01 // push inline int64
	OpPushFloat   Op = 0x02 // push inline float64
	OpPushBoolean Op = 0x03 // push inline bool
	OpPushText    Op = 0x04 // push borrowed text literal
)

// Arithmetic
const (
	OpAdd      Op = 0x10
	OpSubtract Op = 0x11
	OpMultiply Op = 0x12
	OpDivide   Op = 0x13
	OpModulo   Op = 0x14
)

// Comparison
const (
	OpLess           Op = 0x20
	OpGreater        Op = 0x21
	OpLessOrEqual    Op = 0x22
	OpGreaterOrEqual Op = 0x23
	OpEqual          Op = 0x24
	OpNotEqual       Op = 0x25
)

// Logic
const (
	OpAnd Op = 0x30
	OpOr  Op = 0x31
	OpNot Op = 0x32
)

// Stack shuffling
const (
	OpDup  Op = 0x40
	OpDrop Op = 0x41
	OpSwap Op = 0x42
	OpOver Op = 0x43
	OpRot  Op = 0x44
)

// Text
const (
	OpTextLength Op = 0x50
	OpConcat     Op = 0x51
	OpCharAt     Op = 0x52
)

// Lists
const (
	OpListNew  Op = 0x60
	OpListPush Op = 0x61
	OpLength   Op = 0x62
	OpListAt   Op = 0x63
	OpFirst    Op = 0x64
	OpRest     Op = 0x65
)

// I/O
const (
	OpPrint     Op = 0x70
	OpPrintLine Op = 0x71
	OpReadFile  Op = 0x72
	OpWriteFile Op = 0x73
)

// Words
const (
	OpWord Op = 0x80 // invoke the named program from the dictionary
)

// ---------------------------------------------------------------------------
// Opcode metadata
// ---------------------------------------------------------------------------

// OpInfo holds metadata about an opcode.
type OpInfo struct {
	Name  string // human-readable name
	Needs int    // minimum stack depth required
	Net   int    // net effect on stack depth (0 for OpWord, which varies)
}

// opTable maps opcodes to their metadata.
var opTable = map[Op]OpInfo{
	OpPushInteger: {"push-integer", 0, 1},
	OpPushFloat:   {"push-float", 0, 1},
	OpPushBoolean: {"push-boolean", 0, 1},
	OpPushText:    {"push-text", 0, 1},

	OpAdd:      {"add", 2, -1},
	OpSubtract: {"subtract", 2, -1},
	OpMultiply: {"multiply", 2, -1},
	OpDivide:   {"divide", 2, -1},
	OpModulo:   {"modulo", 2, -1},

	OpLess:           {"less", 2, -1},
	OpGreater:        {"greater", 2, -1},
	OpLessOrEqual:    {"less-or-equal", 2, -1},
	OpGreaterOrEqual: {"greater-or-equal", 2, -1},
	OpEqual:          {"equal", 2, -1},
	OpNotEqual:       {"not-equal", 2, -1},

	OpAnd: {"and", 2, -1},
	OpOr:  {"or", 2, -1},
	OpNot: {"not", 1, 0},

	OpDup:  {"dup", 1, 1},
	OpDrop: {"drop", 1, -1},
	OpSwap: {"swap", 2, 0},
	OpOver: {"over", 2, 1},
	OpRot:  {"rot", 3, 0},

	OpTextLength: {"text-length", 1, 0},
	OpConcat:     {"concatenate", 2, -1},
	OpCharAt:     {"character-at", 2, -1},

	OpListNew:  {"list-new", 0, 1},
	OpListPush: {"push-item", 2, -1},
	OpLength:   {"length", 1, 0},
	OpListAt:   {"index", 2, -1},
	OpFirst:    {"first", 1, 0},
	OpRest:     {"rest", 1, 0},

	OpPrint:     {"print", 1, -1},
	OpPrintLine: {"println", 1, -1},
	OpReadFile:  {"read-file", 1, 0},
	OpWriteFile: {"write-file", 2, -1},

	OpWord: {"word", 0, 0},
}

// Info returns the opcode's metadata and whether the opcode is known.
func (op Op) Info() (OpInfo, bool) {
	info, ok := opTable[op]
	return info, ok
}

// String returns the opcode name, or its hex value when unknown.
func (op Op) String() string {
	if info, ok := opTable[op]; ok {
		return info.Name
	}
	return fmt.Sprintf("op(%#02x)", byte(op))
}

// ---------------------------------------------------------------------------
// Instructions and programs
// ---------------------------------------------------------------------------

// Instr is one instruction: an opcode plus the literal payload the opcode
// needs. Literal pushes read the field matching their kind; OpWord reads
// Text as the word name; every other opcode ignores the payload.
type Instr struct {
	Op    Op
	Int   int64
	Float float64
	Bool  bool
	Text  string
}

// String renders the instruction for diagnostics.
func (in Instr) String() string {
	switch in.Op {
	case OpPushInteger:
		return strconv.FormatInt(in.Int, 10)
	case OpPushFloat:
		return strconv.FormatFloat(in.Float, 'g', -1, 64)
	case OpPushBoolean:
		return strconv.FormatBool(in.Bool)
	case OpPushText:
		return strconv.Quote(in.Text)
	case OpWord:
		return in.Text
	}
	return in.Op.String()
}

// Program is a recorded sequence of driver calls, executed in order.
type Program []Instr

// String renders the program as space-separated instructions.
func (p Program) String() string {
	var out string
	for i, in := range p {
		if i > 0 {
			out += " "
		}
		out += in.String()
	}
	return out
}

// ---------------------------------------------------------------------------
// Dictionary
// ---------------------------------------------------------------------------

// Dictionary maps word names to programs. Words are defined by the driver;
// the machine only replays them.
type Dictionary struct {
	words map[string]Program
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{words: make(map[string]Program)}
}

// Define binds name to p, replacing any previous binding.
func (d *Dictionary) Define(name string, p Program) {
	d.words[name] = p
}

// Lookup returns the program bound to name.
func (d *Dictionary) Lookup(name string) (Program, bool) {
	p, ok := d.words[name]
	return p, ok
}

// Len returns the number of defined words.
func (d *Dictionary) Len() int { return len(d.words) }

// Names returns the defined word names, sorted.
func (d *Dictionary) Names() []string {
	names := make([]string, 0, len(d.words))
	for name := range d.words {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ---------------------------------------------------------------------------
// Replay
// ---------------------------------------------------------------------------

// Run replays a program against the session. dict resolves OpWord
// instructions and may be nil when the program uses none. Execution stops at
// the first error: a latched fault, a malformed program, an undefined word,
// or, in strict mode, a benign-default substitution.
func (s *Session) Run(p Program, dict *Dictionary) error {
	for _, in := range p {
		var err error
		switch in.Op {
		case OpPushInteger:
			err = s.PushInteger(in.Int)
		case OpPushFloat:
			err = s.PushFloat(in.Float)
		case OpPushBoolean:
			err = s.PushBoolean(in.Bool)
		case OpPushText:
			err = s.PushText(in.Text)
		case OpAdd:
			err = s.Add()
		case OpSubtract:
			err = s.Subtract()
		case OpMultiply:
			err = s.Multiply()
		case OpDivide:
			err = s.Divide()
		case OpModulo:
			err = s.Modulo()
		case OpLess:
			err = s.Less()
		case OpGreater:
			err = s.Greater()
		case OpLessOrEqual:
			err = s.LessOrEqual()
		case OpGreaterOrEqual:
			err = s.GreaterOrEqual()
		case OpEqual:
			err = s.Equal()
		case OpNotEqual:
			err = s.NotEqual()
		case OpAnd:
			err = s.And()
		case OpOr:
			err = s.Or()
		case OpNot:
			err = s.Not()
		case OpDup:
			err = s.Dup()
		case OpDrop:
			err = s.Drop()
		case OpSwap:
			err = s.Swap()
		case OpOver:
			err = s.Over()
		case OpRot:
			err = s.Rot()
		case OpTextLength:
			err = s.TextLength()
		case OpConcat:
			err = s.Concat()
		case OpCharAt:
			err = s.CharAt()
		case OpListNew:
			err = s.ListNew()
		case OpListPush:
			err = s.ListPush()
		case OpLength:
			err = s.Length()
		case OpListAt:
			err = s.ListAt()
		case OpFirst:
			err = s.ListFirst()
		case OpRest:
			err = s.ListRest()
		case OpPrint:
			err = s.Print()
		case OpPrintLine:
			err = s.PrintLine()
		case OpReadFile:
			err = s.ReadFile()
		case OpWriteFile:
			err = s.WriteFile()
		case OpWord:
			err = s.runWord(in.Text, dict)
		default:
			err = fmt.Errorf("run: unknown opcode %#02x", byte(in.Op))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// runWord resolves and replays a named program, bounding the nesting depth.
func (s *Session) runWord(name string, dict *Dictionary) error {
	if err := s.guard(); err != nil {
		return err
	}
	if dict == nil {
		return fmt.Errorf("run: undefined word %q", name)
	}
	p, ok := dict.Lookup(name)
	if !ok {
		return fmt.Errorf("run: undefined word %q", name)
	}
	if s.depth >= s.opts.MaxCallDepth {
		return s.fail(newFault(FaultCallDepth, name, fmt.Sprintf("deeper than %d", s.opts.MaxCallDepth)))
	}
	s.depth++
	defer func() { s.depth-- }()
	return s.Run(p, dict)
}
