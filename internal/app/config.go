package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Dirs are the module directories to process, in order.
	Dirs []string

	// ReadmePath overrides the target document path. Only meaningful with a
	// single directory.
	ReadmePath string

	// Check selects drift reporting instead of rewriting the document.
	Check bool

	// Explicit metadata overrides; blank fields fall through to the
	// settings file, git auto-detection and document metadata.
	ModuleName string
	Source     string
	Version    string

	NoAutoDetect           bool
	ForceAutodetect        bool
	ForceAutodetectModule  bool
	ForceAutodetectSource  bool
	ForceAutodetectVersion bool

	// Template is a built-in template name or a template file path.
	Template string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Dirs) == 0 {
		return nil, errors.New("at least one module directory is required")
	}
	if cfg.ReadmePath != "" && len(cfg.Dirs) > 1 {
		return nil, errors.New("an explicit readme path cannot be combined with multiple directories")
	}
	return &cfg, nil
}
