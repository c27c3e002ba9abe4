package step

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Decode parses a STEP physical file into a model. The header's
// FILE_SCHEMA record supplies the model's schema string; everything
// between DATA; and ENDSEC; becomes entities in file order.
func Decode(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	s := &scanner{data: data, line: 1}
	kw, err := s.keyword()
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(kw, "ISO-10303-21") {
		return nil, fmt.Errorf("line %d: not a STEP file (expected ISO-10303-21, got %q)", s.line, kw)
	}
	if err := s.expect(';'); err != nil {
		return nil, err
	}

	m := newModel("")
	for {
		kw, err := s.keyword()
		if err != nil {
			return nil, err
		}
		switch {
		case strings.EqualFold(kw, "HEADER"):
			if err := s.expect(';'); err != nil {
				return nil, err
			}
			if err := decodeHeader(s, m); err != nil {
				return nil, err
			}
		case strings.EqualFold(kw, "DATA"):
			if err := s.expect(';'); err != nil {
				return nil, err
			}
			if err := decodeData(s, m); err != nil {
				return nil, err
			}
		case strings.EqualFold(kw, "END-ISO-10303-21"):
			if err := s.expect(';'); err != nil {
				return nil, err
			}
			if m.schema == "" {
				return nil, fmt.Errorf("missing FILE_SCHEMA header record")
			}
			return m, nil
		default:
			return nil, fmt.Errorf("line %d: unexpected section %q", s.line, kw)
		}
	}
}

// decodeHeader consumes header records until ENDSEC, keeping only the
// schema name from FILE_SCHEMA.
func decodeHeader(s *scanner, m *Model) error {
	for {
		kw, err := s.keyword()
		if err != nil {
			return err
		}
		if strings.EqualFold(kw, "ENDSEC") {
			return s.expect(';')
		}
		args, err := s.list()
		if err != nil {
			return fmt.Errorf("header record %s: %w", kw, err)
		}
		if err := s.expect(';'); err != nil {
			return err
		}
		if strings.EqualFold(kw, "FILE_SCHEMA") {
			m.schema = schemaFromArgs(args)
		}
	}
}

// schemaFromArgs extracts the schema identifier from FILE_SCHEMA's
// (('IFC4')) argument shape.
func schemaFromArgs(args []Value) string {
	if len(args) == 0 || args[0].Kind != KindList {
		return ""
	}
	for _, v := range args[0].List {
		if v.Kind == KindString {
			return v.Text
		}
	}
	return ""
}

// decodeData consumes #id=CLASS(args); records until ENDSEC.
func decodeData(s *scanner, m *Model) error {
	for {
		s.skip()
		if s.peek() == '#' {
			s.pos++
			id, err := s.integer()
			if err != nil {
				return err
			}
			if err := s.expect('='); err != nil {
				return err
			}
			class, err := s.keyword()
			if err != nil {
				return err
			}
			args, err := s.list()
			if err != nil {
				return fmt.Errorf("entity #%d: %w", id, err)
			}
			if err := s.expect(';'); err != nil {
				return err
			}
			if err := m.put(id, class, args); err != nil {
				return fmt.Errorf("line %d: %w", s.line, err)
			}
			continue
		}
		kw, err := s.keyword()
		if err != nil {
			return err
		}
		if strings.EqualFold(kw, "ENDSEC") {
			return s.expect(';')
		}
		return fmt.Errorf("line %d: unexpected token %q in data section", s.line, kw)
	}
}

// scanner walks the raw file bytes, tracking line numbers for errors.
type scanner struct {
	data []byte
	pos  int
	line int
}

// skip advances past whitespace and /* */ comments.
func (s *scanner) skip() {
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch {
		case c == '\n':
			s.line++
			s.pos++
		case c == ' ' || c == '\t' || c == '\r':
			s.pos++
		case c == '/' && s.pos+1 < len(s.data) && s.data[s.pos+1] == '*':
			s.pos += 2
			for s.pos+1 < len(s.data) && !(s.data[s.pos] == '*' && s.data[s.pos+1] == '/') {
				if s.data[s.pos] == '\n' {
					s.line++
				}
				s.pos++
			}
			s.pos += 2
		default:
			return
		}
	}
}

// peek returns the next significant byte without consuming it.
func (s *scanner) peek() byte {
	s.skip()
	if s.pos >= len(s.data) {
		return 0
	}
	return s.data[s.pos]
}

func (s *scanner) expect(c byte) error {
	if s.peek() != c {
		return fmt.Errorf("line %d: expected %q", s.line, string(c))
	}
	s.pos++
	return nil
}

// keyword reads a section or class name: letters, digits, underscores,
// and the hyphens of ISO-10303-21 markers.
func (s *scanner) keyword() (string, error) {
	s.skip()
	start := s.pos
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '-' {
			s.pos++
			continue
		}
		break
	}
	if s.pos == start {
		return "", fmt.Errorf("line %d: expected a keyword", s.line)
	}
	return string(s.data[start:s.pos]), nil
}

func (s *scanner) integer() (int64, error) {
	start := s.pos
	for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == start {
		return 0, fmt.Errorf("line %d: expected an integer", s.line)
	}
	id, err := strconv.ParseInt(string(s.data[start:s.pos]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %w", s.line, err)
	}
	return id, nil
}

// list parses a parenthesized, comma-separated aggregate.
func (s *scanner) list() ([]Value, error) {
	if err := s.expect('('); err != nil {
		return nil, err
	}
	var vals []Value
	if s.peek() == ')' {
		s.pos++
		return vals, nil
	}
	for {
		v, err := s.value()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
		switch s.peek() {
		case ',':
			s.pos++
		case ')':
			s.pos++
			return vals, nil
		default:
			return nil, fmt.Errorf("line %d: expected ',' or ')' in aggregate", s.line)
		}
	}
}

func (s *scanner) value() (Value, error) {
	switch c := s.peek(); {
	case c == '$':
		s.pos++
		return Value{Kind: KindNull}, nil
	case c == '*':
		s.pos++
		return Value{Kind: KindDerived}, nil
	case c == '#':
		s.pos++
		id, err := s.integer()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindRef, Ref: id}, nil
	case c == '\'':
		text, err := s.stringLiteral()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindString, Text: text}, nil
	case c == '.':
		return s.enumLiteral()
	case c == '(':
		list, err := s.list()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindList, List: list}, nil
	case c == '-' || c == '+' || c >= '0' && c <= '9':
		return s.numberLiteral()
	case c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z':
		class, err := s.keyword()
		if err != nil {
			return Value{}, err
		}
		args, err := s.list()
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindTyped, Text: class, List: args}, nil
	default:
		return Value{}, fmt.Errorf("line %d: unexpected character %q", s.line, string(c))
	}
}

// stringLiteral reads a quoted string, folding '' escapes. Backslash
// directives (\X2\ etc.) are carried through verbatim.
func (s *scanner) stringLiteral() (string, error) {
	s.pos++ // opening quote
	var b strings.Builder
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c == '\'' {
			if s.pos+1 < len(s.data) && s.data[s.pos+1] == '\'' {
				b.WriteByte('\'')
				s.pos += 2
				continue
			}
			s.pos++
			return b.String(), nil
		}
		if c == '\n' {
			s.line++
		}
		b.WriteByte(c)
		s.pos++
	}
	return "", fmt.Errorf("line %d: unterminated string", s.line)
}

func (s *scanner) enumLiteral() (Value, error) {
	s.pos++ // leading dot
	start := s.pos
	for s.pos < len(s.data) && s.data[s.pos] != '.' {
		s.pos++
	}
	if s.pos >= len(s.data) {
		return Value{}, fmt.Errorf("line %d: unterminated enumeration literal", s.line)
	}
	text := string(s.data[start:s.pos])
	s.pos++ // trailing dot
	return Value{Kind: KindEnum, Text: text}, nil
}

func (s *scanner) numberLiteral() (Value, error) {
	start := s.pos
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		if c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.' || c == 'E' || c == 'e' {
			s.pos++
			continue
		}
		break
	}
	text := string(s.data[start:s.pos])
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, fmt.Errorf("line %d: invalid number %q: %w", s.line, text, err)
	}
	return Value{Kind: KindNumber, Number: n, Text: text}, nil
}
