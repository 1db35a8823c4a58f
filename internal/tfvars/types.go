package tfvars

import "fmt"

// Variable is a single `variable` declaration extracted from a declaration
// file. Attribute values are kept as the exact source text the author wrote;
// nothing is re-serialized.
type Variable struct {
	Name        string
	Type        string
	Description string

	// Default is nil when the declaration has no `default` attribute.
	// An explicit empty default (`default = ""` or `default = []`) is a
	// non-nil pointer to the raw literal text.
	Default *string

	Sensitive bool

	// SourceOrder is the position of the variable's first appearance,
	// counting across all files of a single parse.
	SourceOrder int
}

// Required reports whether the variable has no default and must therefore be
// supplied by the caller.
func (v *Variable) Required() bool {
	return v.Default == nil
}

// DefaultExpr returns the raw default expression, or "" if there is none.
func (v *Variable) DefaultExpr() string {
	if v.Default == nil {
		return ""
	}
	return *v.Default
}

// Source is one named declaration-file blob. Callers control file order;
// the overall variable order is file order, then in-file order.
type Source struct {
	Name    string
	Content string
}

// ParseError describes a syntax problem in a declaration file.
type ParseError struct {
	File   string
	Line   int
	Reason string
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
}
