package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/tfusage/internal/updater"
)

const moduleVariables = `
variable "instance_name" {
  type        = string
  description = "Name of the instance"
}

variable "tags" {
  type        = list(string)
  description = "List of tags"
  default     = []
}
`

const moduleReadme = "# Demo Module\n\nSome intro prose.\n\n" +
	updater.BeginMarker + "\n" +
	updater.EndMarker + "\n" +
	"\nSome closing prose.\n"

// writeModule lays out a minimal module directory and returns its path.
func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	cfg.LogLevel = "error"
	config, err := NewConfig(cfg)
	require.NoError(t, err)
	return NewApp(out, config), out
}

func TestRun_WriteThenCheck(t *testing.T) {
	t.Parallel()

	dir := writeModule(t, map[string]string{
		"variables.tf": moduleVariables,
		"README.md":    moduleReadme,
	})
	readme := filepath.Join(dir, "README.md")

	// First write run modifies the document and signals it.
	a, _ := newTestApp(t, Config{Dirs: []string{dir}, NoAutoDetect: true, ModuleName: "demo"})
	err := a.Run(context.Background())
	require.ErrorIs(t, err, ErrOutOfDate)

	doc, readErr := os.ReadFile(readme)
	require.NoError(t, readErr)
	assert.Contains(t, string(doc), "module \"demo\" {")
	assert.Contains(t, string(doc), "  instance_name =    # Required: Name of the instance")
	assert.Contains(t, string(doc), "  # tags          = [] # Optional: List of tags")
	assert.Contains(t, string(doc), "<!-- MODULE: demo -->")

	// Everything outside the markers is untouched.
	assert.Contains(t, string(doc), "# Demo Module\n\nSome intro prose.\n")
	assert.Contains(t, string(doc), "\nSome closing prose.\n")

	// A second write run is a no-op.
	a, _ = newTestApp(t, Config{Dirs: []string{dir}, NoAutoDetect: true, ModuleName: "demo"})
	require.NoError(t, a.Run(context.Background()))

	// And a check run agrees the document is current.
	a, _ = newTestApp(t, Config{Dirs: []string{dir}, NoAutoDetect: true, ModuleName: "demo", Check: true})
	require.NoError(t, a.Run(context.Background()))
}

func TestRun_CheckDetectsDriftWithoutWriting(t *testing.T) {
	t.Parallel()

	dir := writeModule(t, map[string]string{
		"variables.tf": moduleVariables,
		"README.md":    moduleReadme,
	})
	readme := filepath.Join(dir, "README.md")
	before, err := os.ReadFile(readme)
	require.NoError(t, err)

	a, out := newTestApp(t, Config{Dirs: []string{dir}, NoAutoDetect: true, ModuleName: "demo", Check: true})
	runErr := a.Run(context.Background())

	require.ErrorIs(t, runErr, ErrOutOfDate)
	assert.Contains(t, out.String(), "+++ generated", "drift must be reported as a unified diff")

	after, err := os.ReadFile(readme)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "check mode must never modify the document")
}

func TestRun_MissingMarkersIsAnError(t *testing.T) {
	t.Parallel()

	dir := writeModule(t, map[string]string{
		"variables.tf": moduleVariables,
		"README.md":    "# No markers here\n",
	})

	a, _ := newTestApp(t, Config{Dirs: []string{dir}, NoAutoDetect: true, ModuleName: "demo"})
	err := a.Run(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrOutOfDate)
	assert.Contains(t, err.Error(), "not found in document")

	doc, readErr := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, readErr)
	assert.Equal(t, "# No markers here\n", string(doc), "markers are never inserted at a guessed location")
}

func TestRun_NoDeclarationsIsNotAnError(t *testing.T) {
	t.Parallel()

	dir := writeModule(t, map[string]string{"README.md": moduleReadme})

	a, _ := newTestApp(t, Config{Dirs: []string{dir}, NoAutoDetect: true})
	require.NoError(t, a.Run(context.Background()))
}

func TestRun_SettingsFileDrivesMetadataAndTemplate(t *testing.T) {
	t.Parallel()

	dir := writeModule(t, map[string]string{
		"variables.tf": moduleVariables,
		"README.md":    moduleReadme,
		"usage.tpl":    "{maintainer} ships {module_name}\n{required_variables}{optional_variables}",
		".tfusage.hcl": `
settings {
  module_name = "configured"
  template    = "usage.tpl"

  placeholders = {
    maintainer = "platform-team"
  }
}
`,
	})

	a, _ := newTestApp(t, Config{Dirs: []string{dir}, NoAutoDetect: true})
	err := a.Run(context.Background())
	require.ErrorIs(t, err, ErrOutOfDate)

	doc, readErr := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, readErr)
	assert.Contains(t, string(doc), "platform-team ships configured")
}

func TestRun_DocumentMetadataIsReusedAcrossRuns(t *testing.T) {
	t.Parallel()

	readme := "intro\n" +
		updater.BeginMarker + "\n" +
		"<!-- MODULE: recorded -->\n" +
		"<!-- VERSION: v9.9.9 -->\n" +
		"stale\n" +
		updater.EndMarker + "\n"

	dir := writeModule(t, map[string]string{
		"variables.tf": moduleVariables,
		"README.md":    readme,
	})

	// No flags, no git: identity falls back to what the document recorded.
	a, _ := newTestApp(t, Config{Dirs: []string{dir}, NoAutoDetect: true})
	err := a.Run(context.Background())
	require.ErrorIs(t, err, ErrOutOfDate)

	doc, readErr := os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, readErr)
	assert.Contains(t, string(doc), "module \"recorded\" {")
	assert.Contains(t, string(doc), "  version = \"v9.9.9\"")

	// Force-autodetect discards the recorded identity.
	a, _ = newTestApp(t, Config{Dirs: []string{dir}, NoAutoDetect: true, ForceAutodetect: true})
	err = a.Run(context.Background())
	require.ErrorIs(t, err, ErrOutOfDate)

	doc, readErr = os.ReadFile(filepath.Join(dir, "README.md"))
	require.NoError(t, readErr)
	assert.Contains(t, string(doc), "module \"example\" {")
	assert.NotContains(t, string(doc), "v9.9.9")
}

func TestRun_MultipleDirectoriesAreSequential(t *testing.T) {
	t.Parallel()

	dirA := writeModule(t, map[string]string{
		"variables.tf": `variable "a" {}`,
		"README.md":    moduleReadme,
	})
	dirB := writeModule(t, map[string]string{
		"variables.tf": `variable "b" {}`,
		"README.md":    moduleReadme,
	})

	a, _ := newTestApp(t, Config{Dirs: []string{dirA, dirB}, NoAutoDetect: true, ModuleName: "multi"})
	err := a.Run(context.Background())
	require.ErrorIs(t, err, ErrOutOfDate)

	for _, dir := range []string{dirA, dirB} {
		doc, readErr := os.ReadFile(filepath.Join(dir, "README.md"))
		require.NoError(t, readErr)
		assert.Contains(t, string(doc), "module \"multi\" {")
	}
}
