package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/tfusage/internal/app"
	"github.com/specialistvlad/tfusage/internal/fsutil"
	"github.com/specialistvlad/tfusage/internal/tmpl"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("tfusage", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
tfusage - Keeps the usage block of a Terraform module's README in sync
with its variable declarations.

Usage:
  tfusage [options] [FILES...]

Arguments:
  FILES
    Changed files, as passed by a pre-commit hook. Each .tf file selects
    its parent directory for processing; non-.tf files are ignored.

Options:
`)
		flagSet.PrintDefaults()
	}

	dirFlag := flagSet.String("dir", ".", "Module directory to process.")
	readmeFlag := flagSet.String("readme", "", "Path to the target document. Defaults to <dir>/README.md.")
	checkFlag := flagSet.Bool("check", false, "Report drift instead of rewriting; exits non-zero when out of date.")
	moduleNameFlag := flagSet.String("module-name", "", "Module name for the usage block. Defaults to auto-detection.")
	sourceFlag := flagSet.String("source", "", "Module source URL. Defaults to auto-detection from the git remote.")
	versionFlag := flagSet.String("version", "", "Module version. Defaults to auto-detection from git tags.")
	noAutoDetectFlag := flagSet.Bool("no-auto-detect", false, "Disable git auto-detection of name, source and version.")
	forceAutodetectFlag := flagSet.Bool("force-autodetect", false, "Ignore metadata recorded in the document for all fields.")
	forceModuleFlag := flagSet.Bool("force-autodetect-module", false, "Ignore the module name recorded in the document.")
	forceSourceFlag := flagSet.Bool("force-autodetect-source", false, "Ignore the source recorded in the document.")
	forceVersionFlag := flagSet.Bool("force-autodetect-version", false, "Ignore the version recorded in the document.")
	templateFlag := flagSet.String("template", "", "Built-in template name or path to a template file.")
	listTemplatesFlag := flagSet.Bool("list-templates", false, "List the built-in templates and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if *listTemplatesFlag {
		fmt.Fprintln(output, "Built-in templates:")
		for _, info := range tmpl.Builtins() {
			fmt.Fprintf(output, "  - %-9s: %s\n", info.Name, info.Summary)
		}
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	// Positional files come from pre-commit; without them, process --dir.
	dirs := fsutil.DeclarationDirs(flagSet.Args())
	if len(dirs) == 0 {
		dirs = []string{*dirFlag}
	}

	config, err := app.NewConfig(app.Config{
		Dirs:                   dirs,
		ReadmePath:             *readmeFlag,
		Check:                  *checkFlag,
		ModuleName:             *moduleNameFlag,
		Source:                 *sourceFlag,
		Version:                *versionFlag,
		NoAutoDetect:           *noAutoDetectFlag,
		ForceAutodetect:        *forceAutodetectFlag,
		ForceAutodetectModule:  *forceModuleFlag,
		ForceAutodetectSource:  *forceSourceFlag,
		ForceAutodetectVersion: *forceVersionFlag,
		Template:               *templateFlag,
		LogFormat:              logFormat,
		LogLevel:               logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
