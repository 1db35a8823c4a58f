// Package generator renders parsed variable declarations into a usage block.
// Every formatting decision is recomputed from the variable list and metadata
// on each call; output is byte-stable for identical input, which the document
// updater's drift check depends on.
package generator

import (
	"strings"

	"github.com/specialistvlad/tfusage/internal/tfvars"
	"github.com/specialistvlad/tfusage/internal/tmpl"
)

// Metadata carries the module identity rendered alongside the variables.
// Fields are opaque strings; an empty field omits the corresponding line.
type Metadata struct {
	ModuleName string
	Source     string
	Version    string
}

// Generate renders the usage block for the given variables. Variables are
// partitioned into required and optional groups, each keeping its source
// order, and bound into the template together with the metadata lines.
// The whole block shares one alignment grid: names pad to the longest name
// across both groups and defaults to the widest single-line default, so the
// assignment operators and the trailing comments each form a single column.
// The extra map contributes additional placeholder bindings for custom
// templates; it can never shadow the core bindings.
func Generate(vars []*tfvars.Variable, meta Metadata, t *tmpl.Template, extra map[string]string) (string, error) {
	var required, optional []*tfvars.Variable
	for _, v := range vars {
		if v.Required() {
			required = append(required, v)
		} else {
			optional = append(optional, v)
		}
	}

	nameW := nameWidth(vars)
	valW := valueWidth(optional)

	requiredSection := renderSection("Required", required, false, formatRequired(nameW, valW))
	optionalSection := renderSection("Optional", optional, len(required) > 0, formatOptional(nameW, valW))

	sourceLine, versionLine := metadataLines(meta, len(vars) > 0)

	bindings := make(map[string]string, len(extra)+7)
	for k, v := range extra {
		bindings[k] = v
	}
	bindings["module_name"] = meta.ModuleName
	bindings["source"] = meta.Source
	bindings["version"] = meta.Version
	bindings["source_line"] = sourceLine
	bindings["version_line"] = versionLine
	bindings["required_variables"] = requiredSection
	bindings["optional_variables"] = optionalSection

	return t.Render(bindings)
}

// renderSection produces the section text, header included, without a
// trailing newline; the template owns the framing newlines. An empty group
// renders as the empty string so templates never carry a dangling header.
// A separated section starts with a blank line to set it off from the one
// before it.
func renderSection(title string, vars []*tfvars.Variable, separated bool, line func(*tfvars.Variable) string) string {
	if len(vars) == 0 {
		return ""
	}
	var lines []string
	if separated {
		lines = append(lines, "")
	}
	lines = append(lines,
		"  ############",
		"  # "+title+" #",
		"  ############",
	)
	for _, v := range vars {
		lines = append(lines, line(v))
	}
	return strings.Join(lines, "\n")
}

// Required lines carry the optional group's value-column padding so the
// trailing comments of both groups line up.
func formatRequired(nameW, valW int) func(*tfvars.Variable) string {
	return func(v *tfvars.Variable) string {
		return "  " + pad(v.Name, nameW) + " = " + strings.Repeat(" ", valW) + " # Required: " + v.Description
	}
}

func formatOptional(nameW, valW int) func(*tfvars.Variable) string {
	return func(v *tfvars.Variable) string {
		return "  # " + pad(v.Name, nameW) + " = " + pad(renderDefault(v), valW) + " # Optional: " + v.Description
	}
}

// renderDefault returns the default expression exactly as authored. A
// multi-line literal cannot sit inside a one-line comment, so it is
// summarized as "..."; the full text stays available on the record.
func renderDefault(v *tfvars.Variable) string {
	expr := v.DefaultExpr()
	if strings.Contains(expr, "\n") {
		return "..."
	}
	return expr
}

// metadataLines renders the source and version assignment lines. When
// variables follow, the last present line gains a separating blank line.
func metadataLines(meta Metadata, hasVars bool) (string, string) {
	sourceLine, versionLine := "", ""
	if meta.Source != "" {
		sourceLine = "  source  = \"" + meta.Source + "\"\n"
	}
	if meta.Version != "" {
		versionLine = "  version = \"" + meta.Version + "\"\n"
	}
	if hasVars {
		if versionLine != "" {
			versionLine += "\n"
		} else if sourceLine != "" {
			sourceLine += "\n"
		}
	}
	return sourceLine, versionLine
}

// nameWidth is the shared alignment column: the longest name over all
// variables, so every assignment operator in the block lines up.
func nameWidth(vars []*tfvars.Variable) int {
	width := 0
	for _, v := range vars {
		if len(v.Name) > width {
			width = len(v.Name)
		}
	}
	return width
}

// valueWidth spans the optional defaults only; a multi-line default counts
// as its "..." summary.
func valueWidth(vars []*tfvars.Variable) int {
	width := 0
	for _, v := range vars {
		if w := len(renderDefault(v)); w > width {
			width = w
		}
	}
	return width
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
