package vm

import (
	"strconv"
	"strings"
)

// ---------------------------------------------------------------------------
// Stack inspection
// ---------------------------------------------------------------------------

// FormatStack renders the live stack bottom-to-top on one line, for
// diagnostics: "<depth> v1 v2 ...". Unlike Print it quotes Texts and never
// touches the stack.
func (s *Session) FormatStack() string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(strconv.Itoa(s.stack.Depth()))
	b.WriteString(">")
	for i := 0; i < s.stack.Depth(); i++ {
		b.WriteString(" ")
		b.WriteString(s.formatValue(s.stack.At(i)))
	}
	return b.String()
}

// formatValue renders one value for diagnostics.
func (s *Session) formatValue(v Value) string {
	switch v.Kind() {
	case KindInteger:
		return strconv.FormatInt(v.Integer(), 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case KindBoolean:
		if v.Boolean() {
			return s.opts.TrueToken
		}
		return s.opts.FalseToken
	case KindText:
		return strconv.Quote(v.Text().String())
	case KindList:
		var b strings.Builder
		b.WriteString("[")
		for i, item := range v.List().Items() {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(s.formatValue(item))
		}
		b.WriteString("]")
		return b.String()
	}
	return "?"
}
