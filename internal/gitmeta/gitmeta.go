// Package gitmeta derives module metadata (name, source, next version) from
// the git repository containing a module directory. Detection is best
// effort: any git failure yields an empty result instead of aborting the
// run, since metadata can always be supplied explicitly.
package gitmeta

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/specialistvlad/tfusage/internal/ctxlog"
)

// gitTimeout bounds every git subprocess so a hung hook or slow filesystem
// cannot stall the run.
const gitTimeout = 5 * time.Second

func runGit(ctx context.Context, dir string, args ...string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		ctxlog.FromContext(ctx).Debug("git command failed.", "args", args, "dir", dir, "error", err)
		return "", false
	}
	return strings.TrimSpace(out.String()), true
}

// RemoteURL returns the origin remote URL cleaned for display: no `.git`
// suffix, no scheme, SSH form rewritten to `host/path`. Empty when the
// directory is not in a repository or has no origin remote.
func RemoteURL(ctx context.Context, dir string) string {
	raw, ok := runGit(ctx, dir, "config", "--get", "remote.origin.url")
	if !ok || raw == "" {
		return ""
	}
	return cleanRemoteURL(raw)
}

func cleanRemoteURL(url string) string {
	url = strings.TrimSuffix(url, ".git")
	if rest, found := strings.CutPrefix(url, "git@"); found {
		url = strings.Replace(rest, ":", "/", 1)
	}
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	return url
}

// ModuleName derives a module name from the last path segment of the remote
// URL, falling back to the directory's base name.
func ModuleName(ctx context.Context, dir string) string {
	if url := RemoteURL(ctx, dir); url != "" {
		parts := strings.Split(strings.TrimRight(url, "/"), "/")
		if name := parts[len(parts)-1]; name != "" {
			return name
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return filepath.Base(dir)
	}
	return filepath.Base(abs)
}

// NextVersion computes the version the next release would carry, following
// the svu convention: take the latest tag and bump it according to the
// conventional-commit subjects since that tag. With no bump-worthy commits
// the current tag is returned unchanged; an untagged history starts at
// v1.0.0, v0.1.0 or v0.0.1 depending on the strongest commit type seen,
// defaulting to v0.1.0.
func NextVersion(ctx context.Context, dir string) string {
	if _, ok := runGit(ctx, dir, "rev-parse", "--git-dir"); !ok {
		return ""
	}

	tag, _ := runGit(ctx, dir, "describe", "--tags", "--abbrev=0")
	if tag != "" {
		bump := bumpFromSubjects(commitSubjects(ctx, dir, tag))
		if bump == bumpNone {
			return tag
		}
		v, ok := parseSemver(tag)
		if !ok {
			return tag
		}
		return v.bumped(bump).String()
	}

	count, ok := runGit(ctx, dir, "rev-list", "--count", "HEAD")
	if !ok || count == "" || count == "0" {
		return ""
	}
	switch bumpFromSubjects(commitSubjects(ctx, dir, "")) {
	case bumpMajor:
		return "v1.0.0"
	case bumpPatch:
		return "v0.0.1"
	default:
		return "v0.1.0"
	}
}

func commitSubjects(ctx context.Context, dir, sinceTag string) []string {
	args := []string{"log", "--pretty=%s"}
	if sinceTag != "" {
		args = []string{"log", sinceTag + "..HEAD", "--pretty=%s"}
	}
	out, ok := runGit(ctx, dir, args...)
	if !ok || out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
