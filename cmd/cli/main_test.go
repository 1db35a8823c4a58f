package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/tfusage/internal/app"
	"github.com/specialistvlad/tfusage/internal/updater"
)

func TestRun_HelpFlag(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	err := run(out, []string{"-h"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_UnknownFlag(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	err := run(out, []string{"--definitely-not-a-flag"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined")
}

func TestRun_ListTemplates(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}

	err := run(out, []string{"--list-templates"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Built-in templates:")
	assert.Contains(t, out.String(), "compact")
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	variables := `
variable "region" {
  type        = string
  description = "Deployment region"
}
`
	readme := "# Module\n\n" + updater.BeginMarker + "\n" + updater.EndMarker + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "variables.tf"), []byte(variables), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte(readme), 0o644))

	args := []string{
		"--dir", dir,
		"--no-auto-detect",
		"--module-name", "demo",
		"--log-level", "error",
	}

	// The first run rewrites the document and signals it.
	out := &bytes.Buffer{}
	err := run(out, args)
	require.ErrorIs(t, err, app.ErrOutOfDate)

	doc, readErr := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, readErr)
	assert.Contains(t, string(doc), "module \"demo\" {")
	assert.Contains(t, string(doc), "region =  # Required: Deployment region")

	// The second run finds nothing to do.
	out = &bytes.Buffer{}
	require.NoError(t, run(out, args))

	// And check mode agrees.
	out = &bytes.Buffer{}
	require.NoError(t, run(out, append(args, "--check")))
}
