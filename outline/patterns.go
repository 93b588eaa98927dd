package outline

import (
	"regexp"
	"strings"
)

// ---------------------------------------------------------------------------
// Pattern-based level proposals
// ---------------------------------------------------------------------------

// multiNumberingPattern matches hierarchical numbering such as "1.2" or
// "1.2.3" at the start of a heading, followed by actual text.
var multiNumberingPattern = regexp.MustCompile(`^(\d+(?:\.\d+)+)\.?\s+\S`)

// singleNumberingPattern matches "1. Introduction" style markers. The dot
// is required so a line starting with a bare number (a year, a count) is
// not mistaken for a heading.
var singleNumberingPattern = regexp.MustCompile(`^(\d+)\.\s+\S`)

// chapterPattern matches prose-style top-level markers.
var chapterPattern = regexp.MustCompile(`(?i)^(chapter|section|part)\s+[IVXLCDM\d]+\b`)

// appendixPattern matches appendix/annex markers, also top-level.
var appendixPattern = regexp.MustCompile(`(?i)^(appendix|annex)\s+[A-Z0-9]\b`)

// letterItemPattern matches lettered sub-items such as "(a) ..." or "a) ...".
var letterItemPattern = regexp.MustCompile(`^\(?[a-z]\)\s+\S`)

// DetectNumbering extracts the hierarchical number prefix from a line.
// It returns the matched number string (e.g. "1.2.3") and true, or an
// empty string and false if none was found.
func DetectNumbering(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if m := multiNumberingPattern.FindStringSubmatch(trimmed); len(m) >= 2 {
		return m[1], true
	}
	if m := singleNumberingPattern.FindStringSubmatch(trimmed); len(m) >= 2 {
		return m[1], true
	}
	return "", false
}

// NumberingLevel returns the depth implied by a hierarchical number string:
// "1" is depth 1, "1.2" depth 2, "1.2.3" depth 3.
func NumberingLevel(numbering string) int {
	if numbering == "" {
		return 0
	}
	return strings.Count(numbering, ".") + 1
}

// PatternLevel proposes a heading level from structural text patterns
// alone, independent of font metrics. Numbering depth maps to level
// (depth 1 → H1, 2 → H2, 3 or deeper → H3); chapter/section/part and
// appendix markers are H1; lettered items are H3. The second return is
// false when no pattern matches.
func PatternLevel(text string) (Level, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Body, false
	}

	if num, ok := DetectNumbering(trimmed); ok {
		switch NumberingLevel(num) {
		case 1:
			return H1, true
		case 2:
			return H2, true
		default:
			return H3, true
		}
	}
	if chapterPattern.MatchString(trimmed) || appendixPattern.MatchString(trimmed) {
		return H1, true
	}
	if letterItemPattern.MatchString(trimmed) {
		return H3, true
	}
	return Body, false
}

// ---------------------------------------------------------------------------
// Non-heading filters
// ---------------------------------------------------------------------------

var (
	pageNumberPattern = regexp.MustCompile(`(?i)^(page\s+)?\d+(\s+of\s+\d+)?$`)
	captionPattern    = regexp.MustCompile(`(?i)^(figure|table|fig\.?)\s*\d`)
)

// isPageNumber reports whether a line is a bare page marker.
func isPageNumber(text string) bool {
	return pageNumberPattern.MatchString(strings.TrimSpace(text))
}

// isCaption reports whether a line is a figure or table caption prefix.
func isCaption(text string) bool {
	return captionPattern.MatchString(strings.TrimSpace(text))
}

// spaceRun collapses internal whitespace runs to single spaces.
var spaceRun = regexp.MustCompile(`\s+`)

// normalizeText trims a heading and collapses whitespace runs.
func normalizeText(text string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(text, " "))
}
