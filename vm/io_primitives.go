package vm

import (
	"fmt"
	"io"
	"os"
)

// ---------------------------------------------------------------------------
// I/O primitives
// ---------------------------------------------------------------------------

// Print pops one value and renders it to the session's output: Integer in
// decimal, Float in compact general format, Boolean as the session's
// localized token, Text verbatim, List as "[" + space-separated elements +
// "]". List elements round-trip through the operand stack: each is pushed
// and consumed by a recursive print, left to right.
func (s *Session) Print() error {
	if err := s.guard(); err != nil {
		return err
	}
	v, err := s.popOperand("print")
	if err != nil {
		return err
	}
	return s.printValue(v)
}

// PrintLine prints like Print and appends a newline.
func (s *Session) PrintLine() error {
	if err := s.Print(); err != nil {
		return err
	}
	_, err := io.WriteString(s.out, "\n")
	return err
}

func (s *Session) printValue(v Value) error {
	switch v.Kind() {
	case KindInteger:
		_, err := fmt.Fprintf(s.out, "%d", v.Integer())
		return err
	case KindFloat:
		_, err := fmt.Fprintf(s.out, "%g", v.Float())
		return err
	case KindBoolean:
		token := s.opts.FalseToken
		if v.Boolean() {
			token = s.opts.TrueToken
		}
		_, err := io.WriteString(s.out, token)
		return err
	case KindText:
		_, err := s.out.Write(v.Text().Bytes())
		return err
	case KindList:
		if _, err := io.WriteString(s.out, "["); err != nil {
			return err
		}
		for i, item := range v.List().Items() {
			if i > 0 {
				if _, err := io.WriteString(s.out, " "); err != nil {
					return err
				}
			}
			if err := s.push("print", item); err != nil {
				return err
			}
			if err := s.Print(); err != nil {
				return err
			}
		}
		_, err := io.WriteString(s.out, "]")
		return err
	}
	return nil
}

// ReadFile pops a Text path and pushes the file's entire contents as one
// owned Text. Any failure to read yields an empty Text; an arena budget
// violation faults.
func (s *Session) ReadFile() error {
	if err := s.guard(); err != nil {
		return err
	}
	v, err := s.popOperand("read-file")
	if err != nil {
		return err
	}
	if !v.IsText() {
		if err := s.pushEmptyText("read-file"); err != nil {
			return err
		}
		return s.defaulted("read-file", "path is "+v.Kind().String()+", not Text")
	}
	f, oerr := os.Open(v.Text().String())
	if oerr != nil {
		if err := s.pushEmptyText("read-file"); err != nil {
			return err
		}
		return s.defaulted("read-file", oerr.Error())
	}
	defer f.Close()
	info, serr := f.Stat()
	if serr != nil {
		if err := s.pushEmptyText("read-file"); err != nil {
			return err
		}
		return s.defaulted("read-file", serr.Error())
	}
	buf, fault := s.arena.Allocate(int(info.Size()))
	if fault != nil {
		fault.Op = "read-file"
		return s.fail(fault)
	}
	if _, rerr := io.ReadFull(f, buf); rerr != nil {
		if err := s.pushEmptyText("read-file"); err != nil {
			return err
		}
		return s.defaulted("read-file", rerr.Error())
	}
	return s.push("read-file", FromText(&Text{data: buf, owned: true}))
}

// WriteFile pops a content Text (on top) then a path Text, writes the full
// content bytes to the path, and pushes a Boolean success flag. Mistyped
// operands or a write failure push false.
func (s *Session) WriteFile() error {
	if err := s.guard(); err != nil {
		return err
	}
	path, content, err := s.popPair("write-file")
	if err != nil {
		return err
	}
	if !path.IsText() || !content.IsText() {
		if err := s.push("write-file", FromBoolean(false)); err != nil {
			return err
		}
		return s.defaulted("write-file", "operands are "+path.Kind().String()+" and "+content.Kind().String())
	}
	if werr := os.WriteFile(path.Text().String(), content.Text().Bytes(), 0644); werr != nil {
		if err := s.push("write-file", FromBoolean(false)); err != nil {
			return err
		}
		return s.defaulted("write-file", werr.Error())
	}
	return s.push("write-file", FromBoolean(true))
}
