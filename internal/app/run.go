package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/specialistvlad/tfusage/internal/config"
	"github.com/specialistvlad/tfusage/internal/ctxlog"
	"github.com/specialistvlad/tfusage/internal/fsutil"
	"github.com/specialistvlad/tfusage/internal/generator"
	"github.com/specialistvlad/tfusage/internal/gitmeta"
	"github.com/specialistvlad/tfusage/internal/tfvars"
	"github.com/specialistvlad/tfusage/internal/tmpl"
	"github.com/specialistvlad/tfusage/internal/updater"
)

// ErrOutOfDate signals that check mode found drift, or that write mode had
// to modify a document. Pre-commit hooks rely on the non-zero exit either
// way.
var ErrOutOfDate = errors.New("usage documentation out of date")

// Run processes every configured directory in order, one completing before
// the next begins. A hard failure aborts the whole run; drift and applied
// updates are collected and reported once all directories are done.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("Run started.", "dirs", a.config.Dirs, "check", a.config.Check)

	changed := false
	for _, dir := range a.config.Dirs {
		dirChanged, err := a.processDirectory(ctx, dir)
		if err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}
		changed = changed || dirChanged
	}

	if changed {
		return ErrOutOfDate
	}
	a.logger.Debug("Run finished, all documents current.")
	return nil
}

// processDirectory handles one module directory end to end. The returned
// bool reports whether the directory's document drifted (check mode) or was
// rewritten (write mode).
func (a *App) processDirectory(ctx context.Context, dir string) (bool, error) {
	logger := a.logger.With("dir", dir)

	files, err := fsutil.FindVariableFiles(dir)
	if err != nil {
		return false, err
	}
	if len(files) == 0 {
		logger.Warn("No variable declaration files found, skipping.")
		return false, nil
	}

	sources := make([]tfvars.Source, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return false, err
		}
		sources = append(sources, tfvars.Source{Name: file, Content: string(data)})
	}

	vars, err := tfvars.ParseFiles(sources)
	if err != nil {
		return false, err
	}
	if len(vars) == 0 {
		logger.Warn("No variables declared, skipping.")
		return false, nil
	}
	logger.Debug("Variables parsed.", "count", len(vars))

	settings, err := config.Load(dir)
	if err != nil {
		return false, err
	}

	readmePath := a.readmePath(dir, settings)
	docBytes, err := os.ReadFile(readmePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return false, err
		}
		if a.config.Check {
			return false, fmt.Errorf("target document %s not found", readmePath)
		}
		logger.Warn("Target document not found, skipping.", "readme", readmePath)
		return false, nil
	}
	doc := string(docBytes)

	meta := a.resolveMetadata(ctx, dir, settings, doc)
	logger.Debug("Metadata resolved.", "module", meta.ModuleName, "source", meta.Source, "version", meta.Version)

	template, err := a.loadTemplate(dir, settings)
	if err != nil {
		return false, err
	}

	block, err := generator.Generate(vars, meta, template, settings.Placeholders)
	if err != nil {
		return false, err
	}
	content := updater.WithMetadata(block, meta.ModuleName, meta.Source, meta.Version)

	if a.config.Check {
		return a.checkDocument(logger, readmePath, doc, content)
	}
	return a.updateDocument(logger, readmePath, doc, content)
}

func (a *App) checkDocument(logger *slog.Logger, path, doc, content string) (bool, error) {
	result, err := updater.Check(doc, content)
	if err != nil {
		return false, err
	}
	if result.UpToDate {
		logger.Info("Usage block is up to date.", "readme", path)
		return false, nil
	}

	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(result.Existing),
		B:        difflib.SplitLines(result.Generated),
		FromFile: "documented",
		ToFile:   "generated",
		Context:  3,
	})
	fmt.Fprint(a.outW, diff)
	logger.Error("Usage block is out of date.", "readme", path)
	return true, nil
}

func (a *App) updateDocument(logger *slog.Logger, path, doc, content string) (bool, error) {
	updated, err := updater.Apply(doc, content)
	if err != nil {
		return false, err
	}
	if updated == doc {
		logger.Info("No changes needed.", "readme", path)
		return false, nil
	}
	if err := updater.WriteFile(path, updated); err != nil {
		return false, err
	}
	logger.Info("Updated usage block.", "readme", path)
	return true, nil
}

// readmePath resolves the target document: explicit flag, then the settings
// file, then README.md beside the declarations.
func (a *App) readmePath(dir string, settings *config.Settings) string {
	if a.config.ReadmePath != "" {
		return a.config.ReadmePath
	}
	if settings.Readme != "" {
		if filepath.IsAbs(settings.Readme) {
			return settings.Readme
		}
		return filepath.Join(dir, settings.Readme)
	}
	return filepath.Join(dir, "README.md")
}

// resolveMetadata settles the module identity for one directory. Precedence:
// command-line flags, then the settings file, then git auto-detection
// (unless disabled), then metadata recorded in the document on an earlier
// run (unless force-autodetect), then the bare fallback name.
func (a *App) resolveMetadata(ctx context.Context, dir string, settings *config.Settings, doc string) generator.Metadata {
	cfg := a.config

	name, source, version := cfg.ModuleName, cfg.Source, cfg.Version
	if name == "" {
		name = settings.ModuleName
	}
	if source == "" {
		source = settings.Source
	}
	if version == "" {
		version = settings.Version
	}

	if !cfg.NoAutoDetect {
		if name == "" {
			name = gitmeta.ModuleName(ctx, dir)
		}
		if source == "" {
			source = gitmeta.RemoteURL(ctx, dir)
		}
		if version == "" {
			version = gitmeta.NextVersion(ctx, dir)
		}
	}

	if name == "" || source == "" || version == "" {
		docModule, docSource, docVersion := updater.ExtractMetadata(doc)
		if name == "" && docModule != "" && !cfg.ForceAutodetect && !cfg.ForceAutodetectModule {
			name = docModule
		}
		if source == "" && docSource != "" && !cfg.ForceAutodetect && !cfg.ForceAutodetectSource {
			source = docSource
		}
		if version == "" && docVersion != "" && !cfg.ForceAutodetect && !cfg.ForceAutodetectVersion {
			version = docVersion
		}
	}

	if name == "" {
		name = "example"
	}
	return generator.Metadata{ModuleName: name, Source: source, Version: version}
}

// loadTemplate resolves the template option: a built-in name, or a template
// file looked up as given and then relative to the module directory.
func (a *App) loadTemplate(dir string, settings *config.Settings) (*tmpl.Template, error) {
	name := a.config.Template
	if name == "" {
		name = settings.Template
	}
	if name == "" {
		name = "default"
	}
	if tmpl.IsBuiltin(name) {
		return tmpl.Builtin(name)
	}

	for _, path := range []string{name, filepath.Join(dir, name)} {
		data, err := os.ReadFile(path)
		if err == nil {
			return tmpl.Load(string(data))
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("template %q is neither a built-in nor a readable file", name)
}
