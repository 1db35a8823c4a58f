package tfvars

import "strings"

// Parse extracts every `variable "<name>" { ... }` declaration from a single
// declaration file, in order of appearance.
func Parse(file, src string) ([]*Variable, error) {
	return ParseFiles([]Source{{Name: file, Content: src}})
}

// ParseFiles extracts variable declarations from the given sources in the
// caller-supplied order: overall order is file order, then in-file order.
//
// Duplicate names are resolved last-declaration-wins, but the surviving
// record keeps the SourceOrder of the name's first appearance, so
// re-declaring a variable never reorders the output.
//
// Parsing is a pure function of the input text: the same sources always
// yield the same ordered list.
func ParseFiles(sources []Source) ([]*Variable, error) {
	var out []*Variable
	index := make(map[string]int)
	for _, src := range sources {
		vars, err := parseSource(src.Name, src.Content)
		if err != nil {
			return nil, err
		}
		for _, v := range vars {
			if at, seen := index[v.Name]; seen {
				v.SourceOrder = out[at].SourceOrder
				out[at] = v
				continue
			}
			v.SourceOrder = len(out)
			index[v.Name] = len(out)
			out = append(out, v)
		}
	}
	return out, nil
}

// parseSource scans one file. Top-level content other than variable blocks
// (providers, resources, lone attributes) is skipped with full string and
// comment awareness so that nothing inside it is mistaken for a declaration
// header.
func parseSource(file, src string) ([]*Variable, error) {
	s := newScanner(file, src)
	var vars []*Variable
	for {
		if err := s.skipInert(); err != nil {
			return nil, err
		}
		if s.eof() {
			return vars, nil
		}
		switch c := s.cur(); {
		case c == '"':
			if _, err := s.scanString(); err != nil {
				return nil, err
			}
		case c == '{':
			if err := s.skipBalancedBlock(); err != nil {
				return nil, err
			}
		case c == '}':
			return nil, s.errf(s.line, "unexpected closing brace at top level")
		case isIdentStart(c):
			if s.scanIdent() != "variable" {
				continue
			}
			v, err := parseVariable(s)
			if err != nil {
				return nil, err
			}
			if v != nil {
				vars = append(vars, v)
			}
		default:
			s.advance()
		}
	}
}

// parseVariable is called with the scanner positioned after the `variable`
// keyword. When the following tokens do not form a `"<name>" {` header the
// keyword was something else (say, an attribute in a tfvars blob) and nil is
// returned with no error.
func parseVariable(s *scanner) (*Variable, error) {
	if err := s.skipInert(); err != nil {
		return nil, err
	}
	if s.eof() || s.cur() != '"' {
		return nil, nil
	}
	headerLine := s.line
	rawName, err := s.scanString()
	if err != nil {
		return nil, err
	}
	if err := s.skipInert(); err != nil {
		return nil, err
	}
	if s.eof() || s.cur() != '{' {
		return nil, nil
	}
	s.advance() // '{'

	v := &Variable{Name: unquote(rawName)}
	for {
		if err := s.skipInert(); err != nil {
			return nil, err
		}
		if s.eof() {
			return nil, s.errf(headerLine, "unclosed variable "+v.Name+" block: missing closing brace")
		}
		switch c := s.cur(); {
		case c == '}':
			s.advance()
			return v, nil
		case c == '{':
			// Nested block body, e.g. a validation rule.
			if err := s.skipBalancedBlock(); err != nil {
				return nil, err
			}
		case c == '"':
			// Block label preceding a nested block.
			if _, err := s.scanString(); err != nil {
				return nil, err
			}
		case isIdentStart(c):
			name := s.scanIdent()
			s.skipHorizontal()
			if s.eof() || s.cur() != '=' {
				// Start of a nested block header; the block itself is
				// consumed on a later iteration.
				continue
			}
			s.advance() // '='
			raw, err := s.scanAttributeValue()
			if err != nil {
				return nil, err
			}
			switch name {
			case "description":
				v.Description = unquote(raw)
			case "type":
				v.Type = raw
			case "default":
				val := raw
				v.Default = &val
			case "sensitive":
				v.Sensitive = raw == "true"
			default:
				// Unknown attributes are tolerated and dropped.
			}
		default:
			s.advance()
		}
	}
}

// unquote strips the surrounding double quotes from a string literal and
// resolves the common backslash escapes. Non-literal input is returned
// unchanged so raw expressions pass through untouched.
func unquote(raw string) string {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return raw
	}
	body := raw[1 : len(raw)-1]
	if !strings.Contains(body, `\`) {
		return body
	}
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\\' && i+1 < len(body) {
			i++
			switch body[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			default:
				b.WriteByte('\\')
				b.WriteByte(body[i])
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
