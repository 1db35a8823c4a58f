package gitmeta

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type bumpKind int

const (
	bumpNone bumpKind = iota
	bumpPatch
	bumpMinor
	bumpMajor
)

type semver struct {
	prefix string // "v" or ""
	major  int
	minor  int
	patch  int
}

var semverRe = regexp.MustCompile(`^(v?)(\d+)\.(\d+)\.(\d+)`)

func parseSemver(tag string) (semver, bool) {
	m := semverRe.FindStringSubmatch(tag)
	if m == nil {
		return semver{}, false
	}
	major, _ := strconv.Atoi(m[2])
	minor, _ := strconv.Atoi(m[3])
	patch, _ := strconv.Atoi(m[4])
	return semver{prefix: m[1], major: major, minor: minor, patch: patch}, true
}

func (v semver) bumped(kind bumpKind) semver {
	switch kind {
	case bumpMajor:
		return semver{prefix: v.prefix, major: v.major + 1}
	case bumpMinor:
		return semver{prefix: v.prefix, major: v.major, minor: v.minor + 1}
	case bumpPatch:
		return semver{prefix: v.prefix, major: v.major, minor: v.minor, patch: v.patch + 1}
	default:
		return v
	}
}

func (v semver) String() string {
	return fmt.Sprintf("%s%d.%d.%d", v.prefix, v.major, v.minor, v.patch)
}

var breakingTypeRe = regexp.MustCompile(`^[a-z]+(\([^)]*\))?!:`)

// bumpFromSubjects maps conventional-commit subjects to the strongest bump
// they warrant: breaking changes win over feat, feat over fix, anything else
// counts for nothing.
func bumpFromSubjects(subjects []string) bumpKind {
	bump := bumpNone
	for _, subject := range subjects {
		subject = strings.ToLower(subject)
		if strings.Contains(subject, "breaking change:") || breakingTypeRe.MatchString(subject) {
			return bumpMajor
		}
		if strings.HasPrefix(subject, "feat:") || strings.HasPrefix(subject, "feat(") {
			bump = max(bump, bumpMinor)
		}
		if strings.HasPrefix(subject, "fix:") || strings.HasPrefix(subject, "fix(") {
			bump = max(bump, bumpPatch)
		}
	}
	return bump
}
