package vm

import "bytes"

// ---------------------------------------------------------------------------
// Kinds
// ---------------------------------------------------------------------------

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindInteger Kind = iota
	KindFloat
	KindBoolean
	KindText
	KindList
)

// String returns the kind name as it appears in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindBoolean:
		return "Boolean"
	case KindText:
		return "Text"
	case KindList:
		return "List"
	}
	return "Unknown"
}

// ---------------------------------------------------------------------------
// Value
// ---------------------------------------------------------------------------

// Value is one Kapila datum: an Integer, Float, Boolean, Text, or List.
// Values are small structs copied freely; Text and List payloads are held
// by reference, so copying a Value never copies heap data.
type Value struct {
	kind Kind
	i    int64
	f    float64
	text *Text
	list *List
}

// FromInteger wraps a 64-bit signed integer.
func FromInteger(n int64) Value {
	return Value{kind: KindInteger, i: n}
}

// FromFloat wraps a 64-bit IEEE-754 float.
func FromFloat(x float64) Value {
	return Value{kind: KindFloat, f: x}
}

// FromBoolean wraps a boolean.
func FromBoolean(b bool) Value {
	v := Value{kind: KindBoolean}
	if b {
		v.i = 1
	}
	return v
}

// FromText wraps a Text payload. A nil Text is treated as empty.
func FromText(t *Text) Value {
	if t == nil {
		t = emptyText
	}
	return Value{kind: KindText, text: t}
}

// FromList wraps a List payload.
func FromList(l *List) Value {
	return Value{kind: KindList, list: l}
}

// Kind returns the active variant tag.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsInteger() bool { return v.kind == KindInteger }
func (v Value) IsFloat() bool   { return v.kind == KindFloat }
func (v Value) IsBoolean() bool { return v.kind == KindBoolean }
func (v Value) IsText() bool    { return v.kind == KindText }
func (v Value) IsList() bool    { return v.kind == KindList }

// IsNumeric reports whether the value is an Integer or a Float.
func (v Value) IsNumeric() bool {
	return v.kind == KindInteger || v.kind == KindFloat
}

// Integer returns the integer payload, or 0 when the value is not an Integer.
func (v Value) Integer() int64 {
	if v.kind != KindInteger {
		return 0
	}
	return v.i
}

// Float returns the float payload, or 0 when the value is not a Float.
func (v Value) Float() float64 {
	if v.kind != KindFloat {
		return 0
	}
	return v.f
}

// Boolean returns the boolean payload, or false when the value is not a
// Boolean.
func (v Value) Boolean() bool {
	return v.kind == KindBoolean && v.i != 0
}

// Text returns the text payload, or an empty Text when the value is not a
// Text.
func (v Value) Text() *Text {
	if v.kind != KindText || v.text == nil {
		return emptyText
	}
	return v.text
}

// List returns the list payload, or nil when the value is not a List.
func (v Value) List() *List {
	if v.kind != KindList {
		return nil
	}
	return v.list
}

// asFloat promotes a numeric value to float64. Callers check IsNumeric first.
func (v Value) asFloat() float64 {
	if v.kind == KindFloat {
		return v.f
	}
	return float64(v.i)
}

// Equal implements the machine's equality: numeric pairs compare after float
// promotion, Texts by exact byte sequence, Booleans by value, Lists by
// identity. Any mixed-kind pair outside those rules is unequal.
func (v Value) Equal(other Value) bool {
	switch {
	case v.IsNumeric() && other.IsNumeric():
		return v.asFloat() == other.asFloat()
	case v.kind == KindText && other.kind == KindText:
		return bytes.Equal(v.Text().Bytes(), other.Text().Bytes())
	case v.kind == KindBoolean && other.kind == KindBoolean:
		return v.Boolean() == other.Boolean()
	case v.kind == KindList && other.kind == KindList:
		return v.list == other.list
	}
	return false
}

// ---------------------------------------------------------------------------
// Text
// ---------------------------------------------------------------------------

// Text is an immutable UTF-8 byte sequence. A borrowed Text wraps bytes the
// machine does not manage (driver literals); an owned Text's buffer was
// allocated through and is registered with a session's Arena.
type Text struct {
	data  []byte
	owned bool
}

var emptyText = &Text{}

// BorrowedText wraps a driver-supplied literal without arena registration.
func BorrowedText(s string) *Text {
	if s == "" {
		return emptyText
	}
	return &Text{data: []byte(s)}
}

// Bytes returns the underlying byte sequence. Callers must not mutate it.
func (t *Text) Bytes() []byte { return t.data }

// String returns the content as a Go string.
func (t *Text) String() string { return string(t.data) }

// Len returns the length in bytes, not scalar values.
func (t *Text) Len() int { return len(t.data) }

// Owned reports whether the backing buffer is arena-registered.
func (t *Text) Owned() bool { return t.owned }

// ScalarCount returns the number of Unicode scalar values by counting the
// bytes that do not have the continuation-byte pattern 10xxxxxx.
func (t *Text) ScalarCount() int64 {
	var n int64
	for _, b := range t.data {
		if b&0xC0 != 0x80 {
			n++
		}
	}
	return n
}
