package tmpl

import (
	"fmt"
	"sort"
)

// The built-in templates. Section text, alignment and separators are owned by
// the generator; templates only decide the framing around the bound
// fragments. Sections bind without trailing newlines, so the templates carry
// the framing newlines themselves, including the blank line after the module
// header.
const (
	defaultTemplate = "# Standard format: fenced module block with grouped sections.\n" +
		"```hcl\n" +
		"module \"{module_name}\" {{\n" +
		"{source_line}{version_line}\n" +
		"{required_variables}\n" +
		"{optional_variables}}}\n" +
		"```"

	compactTemplate = "# Compact format: just the variable lines, fenced.\n" +
		"```hcl\n" +
		"{required_variables}\n" +
		"{optional_variables}\n" +
		"```"

	minimalTemplate = "# Minimal format: bare module block, no code fences.\n" +
		"module \"{module_name}\" {{\n" +
		"{source_line}{version_line}\n" +
		"{required_variables}\n" +
		"{optional_variables}}}"

	// Comment lines double as templating comments, so the detailed body
	// avoids markdown headings and uses bold text instead.
	detailedTemplate = "# Extended format with usage instructions.\n" +
		"**Usage**\n" +
		"\n" +
		"Fill in the required inputs below, then copy this block into your\n" +
		"configuration.\n" +
		"\n" +
		"```hcl\n" +
		"module \"{module_name}\" {{\n" +
		"{source_line}{version_line}\n" +
		"{required_variables}\n" +
		"{optional_variables}}}\n" +
		"```\n" +
		"\n" +
		"Pin the version to a released tag when consuming {module_name} from a\n" +
		"shared source."
)

// BuiltinInfo describes one built-in template for listings.
type BuiltinInfo struct {
	Name    string
	Summary string
}

// builtins is a read-only registry assembled once at startup. It is never
// mutated after init.
var builtins = map[string]struct {
	text    string
	summary string
}{
	"default":  {defaultTemplate, "Standard format with code fences and sections"},
	"compact":  {compactTemplate, "Compact format without the module wrapper"},
	"minimal":  {minimalTemplate, "Just the module block, no code fences"},
	"detailed": {detailedTemplate, "Extended format with usage instructions"},
}

// Builtin loads the named built-in template.
func Builtin(name string) (*Template, error) {
	entry, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in template %q", name)
	}
	t, err := Load(entry.text)
	if err != nil {
		// The registry is static; a malformed entry is a programming error.
		panic(err)
	}
	return t, nil
}

// IsBuiltin reports whether name refers to a built-in template.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// Builtins returns the built-in templates in stable name order.
func Builtins() []BuiltinInfo {
	out := make([]BuiltinInfo, 0, len(builtins))
	for name, entry := range builtins {
		out = append(out, BuiltinInfo{Name: name, Summary: entry.summary})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
