package tfvars

import "strings"

// scanner walks declaration-file source one byte at a time. It is a small
// explicit state machine: the caller drives it between the normal state and
// the string, line-comment and block-comment states via the methods below,
// and bracket depth is tracked where an expression boundary matters.
//
// Structural characters are all ASCII, so byte-wise scanning is safe; any
// multi-byte text only ever appears inside strings and comments, which are
// carried through as opaque source substrings.
type scanner struct {
	file string
	src  string
	pos  int
	line int
}

func newScanner(file, src string) *scanner {
	return &scanner{file: file, src: src, line: 1}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) cur() byte {
	return s.src[s.pos]
}

// peek returns the byte at the given lookahead offset, or 0 past the end.
func (s *scanner) peek(ahead int) byte {
	if s.pos+ahead >= len(s.src) {
		return 0
	}
	return s.src[s.pos+ahead]
}

func (s *scanner) advance() {
	if s.src[s.pos] == '\n' {
		s.line++
	}
	s.pos++
}

func (s *scanner) errf(line int, reason string) *ParseError {
	return &ParseError{File: s.file, Line: line, Reason: reason}
}

// skipInert consumes whitespace and comments until the next significant
// character. It fails only on an unterminated block comment.
func (s *scanner) skipInert() error {
	for !s.eof() {
		switch c := s.cur(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.advance()
		case c == '#', c == '/' && s.peek(1) == '/':
			s.skipLineComment()
		case c == '/' && s.peek(1) == '*':
			if err := s.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// skipHorizontal consumes spaces and tabs but never crosses a newline.
func (s *scanner) skipHorizontal() {
	for !s.eof() {
		if c := s.cur(); c == ' ' || c == '\t' || c == '\r' {
			s.advance()
			continue
		}
		return
	}
}

func (s *scanner) skipLineComment() {
	for !s.eof() && s.cur() != '\n' {
		s.advance()
	}
}

func (s *scanner) skipBlockComment() error {
	openLine := s.line
	s.advance() // '/'
	s.advance() // '*'
	for !s.eof() {
		if s.cur() == '*' && s.peek(1) == '/' {
			s.advance()
			s.advance()
			return nil
		}
		s.advance()
	}
	return s.errf(openLine, "unterminated block comment")
}

// scanString consumes a double-quoted string literal, honoring backslash
// escapes, and returns its raw source text including the quotes. Declaration
// strings do not span lines, so a newline before the closing quote is an
// unterminated-string error.
func (s *scanner) scanString() (string, error) {
	start := s.pos
	startLine := s.line
	s.advance() // opening quote
	for !s.eof() {
		switch s.cur() {
		case '\\':
			s.advance()
			if !s.eof() {
				s.advance()
			}
		case '"':
			s.advance()
			return s.src[start:s.pos], nil
		case '\n':
			return "", s.errf(startLine, "unterminated string literal")
		default:
			s.advance()
		}
	}
	return "", s.errf(startLine, "unterminated string literal")
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || c == '-' || (c >= '0' && c <= '9')
}

// scanIdent consumes and returns an identifier. The caller must have checked
// isIdentStart on the current byte.
func (s *scanner) scanIdent() string {
	start := s.pos
	for !s.eof() && isIdentByte(s.cur()) {
		s.advance()
	}
	return s.src[start:s.pos]
}

// scanAttributeValue captures the raw source text of an attribute value,
// positioned just after the `=`. The value runs to the first newline while no
// bracket is open, to a line comment at that same level, or to the enclosing
// block's closing brace. The terminator itself is left unconsumed so the
// caller sees it. Brackets and braces inside strings and comments do not
// count toward the depth.
func (s *scanner) scanAttributeValue() (string, error) {
	s.skipHorizontal()
	start := s.pos
	startLine := s.line
	depth := 0
	end := -1
	for end < 0 {
		if s.eof() {
			if depth > 0 {
				return "", s.errf(startLine, "unterminated expression")
			}
			end = s.pos
			break
		}
		switch c := s.cur(); {
		case c == '"':
			if _, err := s.scanString(); err != nil {
				return "", err
			}
		case c == '#', c == '/' && s.peek(1) == '/':
			if depth == 0 {
				end = s.pos
			} else {
				s.skipLineComment()
			}
		case c == '/' && s.peek(1) == '*':
			if err := s.skipBlockComment(); err != nil {
				return "", err
			}
		case c == '{' || c == '[' || c == '(':
			depth++
			s.advance()
		case c == '}':
			if depth == 0 {
				end = s.pos
			} else {
				depth--
				s.advance()
			}
		case c == ']' || c == ')':
			if depth == 0 {
				return "", s.errf(s.line, "unbalanced closing bracket in expression")
			}
			depth--
			s.advance()
		case c == '\n':
			if depth == 0 {
				end = s.pos
			} else {
				s.advance()
			}
		default:
			s.advance()
		}
	}
	return strings.TrimSpace(s.src[start:end]), nil
}

// skipBalancedBlock consumes a `{ ... }` block wholesale, starting on the
// opening brace, counting nested braces and ignoring any that appear inside
// strings or comments.
func (s *scanner) skipBalancedBlock() error {
	openLine := s.line
	s.advance() // '{'
	depth := 1
	for depth > 0 {
		if s.eof() {
			return s.errf(openLine, "unclosed block")
		}
		switch c := s.cur(); {
		case c == '"':
			if _, err := s.scanString(); err != nil {
				return err
			}
		case c == '#', c == '/' && s.peek(1) == '/':
			s.skipLineComment()
		case c == '/' && s.peek(1) == '*':
			if err := s.skipBlockComment(); err != nil {
				return err
			}
		case c == '{':
			depth++
			s.advance()
		case c == '}':
			depth--
			s.advance()
		default:
			s.advance()
		}
	}
	return nil
}
