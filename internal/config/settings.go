// Package config loads the optional per-module settings file. The file lets
// a module pin its documented identity and template next to its sources, so
// CI and every contributor render the same block without repeating flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// FileName is the settings file looked up in each module directory.
const FileName = ".tfusage.hcl"

// Settings are the per-module options. All fields are optional; the zero
// value means "nothing configured".
type Settings struct {
	ModuleName string
	Source     string
	Version    string

	// Template is a built-in template name or a path relative to the
	// module directory.
	Template string

	// Readme overrides the target document path, relative to the module
	// directory.
	Readme string

	// Placeholders are extra template bindings for custom templates.
	Placeholders map[string]string
}

// settingsBlock mirrors the `settings` block for gohcl decoding.
type settingsBlock struct {
	ModuleName   string     `hcl:"module_name,optional"`
	Source       string     `hcl:"source,optional"`
	Version      string     `hcl:"version,optional"`
	Template     string     `hcl:"template,optional"`
	Readme       string     `hcl:"readme,optional"`
	Placeholders *cty.Value `hcl:"placeholders,optional"`
}

// fileRoot decodes the top level of a settings file. Unknown blocks are
// tolerated via the remain body so the format can grow.
type fileRoot struct {
	Settings *settingsBlock `hcl:"settings,block"`
	Remain   hcl.Body       `hcl:",remain"`
}

// Load reads the settings file of a module directory. A missing file is not
// an error and yields empty settings; a malformed file is.
func Load(dir string) (*Settings, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("stat settings file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", path, diags)
	}
	if root.Settings == nil {
		return &Settings{}, nil
	}

	placeholders, err := placeholderMap(root.Settings.Placeholders)
	if err != nil {
		return nil, fmt.Errorf("settings file %s: %w", path, err)
	}

	return &Settings{
		ModuleName:   root.Settings.ModuleName,
		Source:       root.Settings.Source,
		Version:      root.Settings.Version,
		Template:     root.Settings.Template,
		Readme:       root.Settings.Readme,
		Placeholders: placeholders,
	}, nil
}

// placeholderMap converts the decoded `placeholders` value into a string
// map, coercing primitive values through cty so `placeholders = { port = 8080 }`
// renders as "8080".
func placeholderMap(val *cty.Value) (map[string]string, error) {
	if val == nil || val.IsNull() {
		return nil, nil
	}
	if !val.CanIterateElements() {
		return nil, fmt.Errorf("placeholders must be an object of strings")
	}
	out := make(map[string]string)
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		key, err := convert.Convert(k, cty.String)
		if err != nil {
			return nil, fmt.Errorf("placeholder key: %w", err)
		}
		str, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, fmt.Errorf("placeholder %q: %w", key.AsString(), err)
		}
		out[key.AsString()] = str.AsString()
	}
	return out, nil
}
