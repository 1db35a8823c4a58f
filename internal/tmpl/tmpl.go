// Package tmpl implements the placeholder template format used for usage
// blocks: `{name}` substitutes a bound string, `{{` and `}}` are literal
// braces, and lines whose first non-blank character is `#` are comments.
// There is no recursion and no conditionals; an unbound placeholder is an
// error rather than stray text in the output.
package tmpl

import (
	"fmt"
	"strings"
)

// Template is a loaded, comment-stripped template ready for rendering.
type Template struct {
	text string
}

// TemplateError describes a bad placeholder reference or a malformed brace
// escape. Key is empty for escape errors.
type TemplateError struct {
	Key    string
	Reason string
}

// Error implements the error interface for TemplateError.
func (e *TemplateError) Error() string {
	if e.Key == "" {
		return "template: " + e.Reason
	}
	return fmt.Sprintf("template: %s: %q", e.Reason, e.Key)
}

// Load parses template text into a Template. Comment lines are stripped here
// so rendering never sees them, and the brace syntax is validated up front:
// a malformed template fails at load, not halfway through a render.
func Load(text string) (*Template, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines = append(lines, line)
	}
	t := &Template{text: strings.Join(lines, "\n")}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Render substitutes every placeholder from bindings and returns the result.
// A placeholder with no binding is a TemplateError.
func (t *Template) Render(bindings map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(t.text))
	src := t.text
	for i := 0; i < len(src); {
		switch src[i] {
		case '{':
			if i+1 < len(src) && src[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			name, next, err := placeholderAt(src, i)
			if err != nil {
				return "", err
			}
			value, ok := bindings[name]
			if !ok {
				return "", &TemplateError{Key: name, Reason: "no binding for placeholder"}
			}
			b.WriteString(value)
			i = next
		case '}':
			if i+1 < len(src) && src[i+1] == '}' {
				b.WriteByte('}')
				i += 2
				continue
			}
			return "", &TemplateError{Reason: "unescaped '}'"}
		default:
			b.WriteByte(src[i])
			i++
		}
	}
	return b.String(), nil
}

// validate walks the brace syntax without substituting anything.
func (t *Template) validate() error {
	src := t.text
	for i := 0; i < len(src); {
		switch src[i] {
		case '{', '}':
			if i+1 < len(src) && src[i+1] == src[i] {
				i += 2
				continue
			}
			if src[i] == '}' {
				return &TemplateError{Reason: "unescaped '}'"}
			}
			_, next, err := placeholderAt(src, i)
			if err != nil {
				return err
			}
			i = next
		default:
			i++
		}
	}
	return nil
}

// placeholderAt reads a `{identifier}` span starting at the opening brace
// and returns the identifier plus the index just past the closing brace.
func placeholderAt(src string, open int) (string, int, error) {
	i := open + 1
	start := i
	for i < len(src) && isPlaceholderByte(src[i]) {
		i++
	}
	if i == start || i >= len(src) || src[i] != '}' {
		return "", 0, &TemplateError{Reason: "malformed placeholder, expected '{identifier}'"}
	}
	return src[start:i], i + 1, nil
}

func isPlaceholderByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
