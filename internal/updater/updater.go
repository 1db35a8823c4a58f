// Package updater owns the marker-delimited region of a target document. It
// locates the marker pair, compares the existing block against a freshly
// generated one (check mode) and replaces it (write mode) without touching a
// single byte outside the markers.
package updater

import (
	"fmt"
	"strings"
)

// The marker pair delimiting the managed region. Matched as exact whole
// lines, never fuzzily: an ambiguous document is an error, not a guess.
const (
	BeginMarker = "<!-- BEGIN_AUTOMATED_TF_USAGE_BLOCK -->"
	EndMarker   = "<!-- END_AUTOMATED_TF_USAGE_BLOCK -->"
)

// Region is the half-open byte range of the content strictly between the
// marker lines, exclusive of the marker lines themselves.
type Region struct {
	Start int
	End   int
}

// MarkerError reports a missing, duplicated or misordered marker line.
type MarkerError struct {
	Marker string
	Count  int
	Reason string
}

// Error implements the error interface for MarkerError.
func (e *MarkerError) Error() string {
	return fmt.Sprintf("marker %s: %s", e.Marker, e.Reason)
}

// NotFound reports whether the marker was absent, as opposed to ambiguous.
func (e *MarkerError) NotFound() bool {
	return e.Count == 0
}

// CheckResult is the outcome of a drift check. Drift is a normal result, not
// an error: the caller decides the exit code.
type CheckResult struct {
	UpToDate  bool
	Existing  string
	Generated string
}

// lineSpan covers one physical line: start is the offset of its first byte,
// end the offset just past its newline (or end of document).
type lineSpan struct {
	start int
	end   int
}

func markerLines(doc, marker string) []lineSpan {
	var spans []lineSpan
	for start := 0; start <= len(doc); {
		end := strings.IndexByte(doc[start:], '\n')
		content := ""
		next := len(doc) + 1
		if end < 0 {
			content = doc[start:]
		} else {
			content = doc[start : start+end]
			next = start + end + 1
		}
		if content == marker {
			spans = append(spans, lineSpan{start: start, end: next})
		}
		start = next
	}
	return spans
}

// Locate finds the managed region. Exactly one begin and one end marker must
// exist, in that order; anything else fails rather than risking a silent
// replacement of the wrong block.
func Locate(doc string) (Region, error) {
	begins := markerLines(doc, BeginMarker)
	ends := markerLines(doc, EndMarker)

	switch {
	case len(begins) == 0:
		return Region{}, &MarkerError{Marker: BeginMarker, Count: 0, Reason: "not found in document"}
	case len(ends) == 0:
		return Region{}, &MarkerError{Marker: EndMarker, Count: 0, Reason: "not found in document"}
	case len(begins) > 1:
		return Region{}, &MarkerError{Marker: BeginMarker, Count: len(begins), Reason: "appears more than once"}
	case len(ends) > 1:
		return Region{}, &MarkerError{Marker: EndMarker, Count: len(ends), Reason: "appears more than once"}
	case ends[0].start < begins[0].end:
		return Region{}, &MarkerError{Marker: EndMarker, Count: 1, Reason: "appears before the begin marker"}
	}

	start := begins[0].end
	if start > len(doc) {
		start = len(doc)
	}
	return Region{Start: start, End: ends[0].start}, nil
}

// Check compares the existing managed content with the given block. Only
// leading and trailing newline differences are normalized away; any other
// difference is drift. The document is never modified here.
func Check(doc, block string) (CheckResult, error) {
	region, err := Locate(doc)
	if err != nil {
		return CheckResult{}, err
	}
	existing := strings.Trim(doc[region.Start:region.End], "\n")
	generated := strings.Trim(block, "\n")
	if existing == generated {
		return CheckResult{UpToDate: true}, nil
	}
	return CheckResult{Existing: existing, Generated: generated}, nil
}

// Apply replaces the managed content with the given block and returns the
// updated document. Everything before the begin marker and after the end
// marker is preserved byte-for-byte. Applying the same block twice yields
// the same document as applying it once.
func Apply(doc, block string) (string, error) {
	region, err := Locate(doc)
	if err != nil {
		return "", err
	}
	inner := strings.Trim(block, "\n")
	var b strings.Builder
	b.Grow(len(doc) + len(inner))
	b.WriteString(doc[:region.Start])
	b.WriteString(inner)
	b.WriteString("\n")
	b.WriteString(doc[region.End:])
	return b.String(), nil
}

// Metadata comment lines carried inside the managed region so later runs can
// fall back to previously resolved module identity.
const (
	modulePrefix  = "<!-- MODULE: "
	sourcePrefix  = "<!-- SOURCE: "
	versionPrefix = "<!-- VERSION: "
	commentSuffix = " -->"
)

// WithMetadata prefixes the block with the metadata comment lines that
// ExtractMetadata reads back on later runs. Blank fields are omitted.
func WithMetadata(block, module, source, version string) string {
	var lines []string
	if module != "" {
		lines = append(lines, modulePrefix+module+commentSuffix)
	}
	if source != "" {
		lines = append(lines, sourcePrefix+source+commentSuffix)
	}
	if version != "" {
		lines = append(lines, versionPrefix+version+commentSuffix)
	}
	if len(lines) == 0 {
		return block
	}
	return strings.Join(lines, "\n") + "\n" + block
}

// ExtractMetadata reads the metadata comments out of the managed region of a
// document. A document without markers or metadata yields empty strings.
func ExtractMetadata(doc string) (module, source, version string) {
	region, err := Locate(doc)
	if err != nil {
		return "", "", ""
	}
	for _, line := range strings.Split(doc[region.Start:region.End], "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasSuffix(line, commentSuffix) {
			continue
		}
		value := func(prefix string) string {
			return strings.TrimSpace(line[len(prefix) : len(line)-len(commentSuffix)])
		}
		switch {
		case module == "" && strings.HasPrefix(line, modulePrefix):
			module = value(modulePrefix)
		case source == "" && strings.HasPrefix(line, sourcePrefix):
			source = value(sourcePrefix)
		case version == "" && strings.HasPrefix(line, versionPrefix):
			version = value(versionPrefix)
		}
	}
	return module, source, version
}
