package gitmeta

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanRemoteURL(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "https with git suffix",
			url:      "https://github.com/acme/vpc.git",
			expected: "github.com/acme/vpc",
		},
		{
			name:     "ssh form",
			url:      "git@github.com:acme/vpc.git",
			expected: "github.com/acme/vpc",
		},
		{
			name:     "http without suffix",
			url:      "http://git.internal/infra/modules",
			expected: "git.internal/infra/modules",
		},
		{
			name:     "already clean",
			url:      "github.com/acme/vpc",
			expected: "github.com/acme/vpc",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, cleanRemoteURL(tc.url))
		})
	}
}

func TestParseSemver(t *testing.T) {
	t.Parallel()

	v, ok := parseSemver("v1.2.3")
	assert.True(t, ok)
	assert.Equal(t, "v", v.prefix)
	assert.Equal(t, "v1.2.3", v.String())

	v, ok = parseSemver("2.0.10")
	assert.True(t, ok)
	assert.Equal(t, "", v.prefix)
	assert.Equal(t, "2.0.10", v.String())

	// Pre-release and build suffixes are tolerated, only the core triple counts.
	v, ok = parseSemver("v1.2.3-rc.1")
	assert.True(t, ok)
	assert.Equal(t, "v1.2.3", v.String())

	_, ok = parseSemver("not-a-version")
	assert.False(t, ok)
}

func TestBumped(t *testing.T) {
	t.Parallel()

	v, _ := parseSemver("v1.2.3")
	assert.Equal(t, "v1.2.3", v.bumped(bumpNone).String())
	assert.Equal(t, "v1.2.4", v.bumped(bumpPatch).String())
	assert.Equal(t, "v1.3.0", v.bumped(bumpMinor).String())
	assert.Equal(t, "v2.0.0", v.bumped(bumpMajor).String())
}

func TestBumpFromSubjects(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		subjects []string
		expected bumpKind
	}{
		{"no commits", nil, bumpNone},
		{"chores only", []string{"chore: tidy", "docs: readme"}, bumpNone},
		{"fix", []string{"chore: tidy", "fix: off by one"}, bumpPatch},
		{"feat outranks fix", []string{"fix: x", "feat: y"}, bumpMinor},
		{"scoped feat", []string{"feat(parser): multi-line defaults"}, bumpMinor},
		{"breaking footer", []string{"feat: y", "BREAKING CHANGE: renamed input"}, bumpMajor},
		{"bang type", []string{"refactor!: drop legacy flags"}, bumpMajor},
		{"scoped bang type", []string{"feat(cli)!: new flag layout"}, bumpMajor},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, bumpFromSubjects(tc.subjects))
		})
	}
}

func TestDetection_OutsideRepository(t *testing.T) {
	t.Parallel()

	// A bare temp directory is not a git repository: every probe degrades to
	// its empty or filesystem-derived fallback instead of erroring.
	dir := t.TempDir()
	ctx := context.Background()

	assert.Empty(t, RemoteURL(ctx, dir))
	assert.Empty(t, NextVersion(ctx, dir))
	assert.Equal(t, filepath.Base(dir), ModuleName(ctx, dir))
}
