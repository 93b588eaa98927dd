package outline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sachinrathod11/techstack-adobe-project-1a/layout"
)

// Config controls classification behaviour.
type Config struct {
	DefaultBodySize float64 // body font size used when statistics are degenerate
	BodyWindowChars int     // character budget for each section's body window
}

// Classifier turns assembled lines into a Document outline.
type Classifier struct {
	cfg Config
}

// New returns a Classifier with the given configuration.
// Zero-value fields are replaced with sensible defaults.
func New(cfg Config) *Classifier {
	if cfg.DefaultBodySize == 0 {
		cfg.DefaultBodySize = 12.0
	}
	if cfg.BodyWindowChars == 0 {
		cfg.BodyWindowChars = 1200
	}
	return &Classifier{cfg: cfg}
}

// ---------------------------------------------------------------------------
// Font-ratio threshold policy
// ---------------------------------------------------------------------------

// fontRule pairs a predicate over (size ratio, bold flag) with the level it
// assigns. Rules are evaluated top-down; the first match wins.
type fontRule struct {
	level Level
	match func(ratio float64, bold bool) bool
}

var fontRules = []fontRule{
	{Title, func(r float64, _ bool) bool { return r >= 1.8 }},
	{H1, func(r float64, _ bool) bool { return r >= 1.4 }},
	{H2, func(r float64, _ bool) bool { return r >= 1.2 }},
	{H3, func(r float64, bold bool) bool { return r >= 1.05 || (bold && r >= 1.0) }},
}

// fontLevel applies the ordered threshold table to one line's metrics.
func fontLevel(ratio float64, bold bool) Level {
	for _, rule := range fontRules {
		if rule.match(ratio, bold) {
			return rule.level
		}
	}
	return Body
}

// BodyFontSize returns the statistical mode of the line font sizes. When
// the mode is not unique it falls back to the median; a degenerate line set
// (fewer than two lines) yields the fixed fallback.
func BodyFontSize(lines []layout.Line, fallback float64) float64 {
	if len(lines) < 2 {
		return fallback
	}

	counts := make(map[float64]int)
	for _, ln := range lines {
		counts[ln.FontSize]++
	}

	best := 0
	modes := 0
	var mode float64
	for size, n := range counts {
		switch {
		case n > best:
			best = n
			mode = size
			modes = 1
		case n == best:
			modes++
		}
	}
	if modes == 1 {
		return mode
	}

	sizes := make([]float64, len(lines))
	for i, ln := range lines {
		sizes[i] = ln.FontSize
	}
	sort.Float64s(sizes)
	mid := len(sizes) / 2
	if len(sizes)%2 == 0 {
		return (sizes[mid-1] + sizes[mid]) / 2
	}
	return sizes[mid]
}

// ---------------------------------------------------------------------------
// Classification
// ---------------------------------------------------------------------------

// heading is an internal candidate before post-processing.
type heading struct {
	level   Level
	text    string
	page    int // 1-based
	lineIdx int
}

// Classify runs the full pipeline over one document's lines: compute the
// body font size, classify every line (font table merged with pattern
// proposals), choose a title, filter noise, deduplicate, repair level
// skips, and attach per-section body windows. A document with no headings
// still yields a valid Document with a best-effort title.
func (c *Classifier) Classify(docID string, lines []layout.Line, pageCount int) *Document {
	doc := &Document{ID: docID, Pages: pageCount}
	if len(lines) == 0 {
		doc.Title = docID
		return doc
	}

	bodySize := BodyFontSize(lines, c.cfg.DefaultBodySize)
	recurring := recurringLines(lines)

	var candidates []heading
	titleIdx := -1

	for i, ln := range lines {
		text := normalizeText(ln.Text)
		if text == "" {
			continue
		}
		// Noise must be rejected before title selection so a recurring
		// banner or caption never becomes the document title.
		if isPageNumber(text) || isCaption(text) || recurring[recurringKey(ln)] {
			continue
		}

		ratio := ln.FontSize / bodySize
		level := fontLevel(ratio, ln.Bold)
		// Numbering is a stronger structural signal than inconsistent font
		// sizing; a pattern proposal can promote the font-based level but
		// never demote it.
		if patternLevel, ok := PatternLevel(text); ok && (level == Body || patternLevel < level) {
			level = patternLevel
		}

		if level == Title {
			if ln.Page == 0 && titleIdx < 0 {
				doc.Title = text
				titleIdx = i
				continue
			}
			// At most one Title per document, first page only.
			level = H1
		}
		if level == Body || !validHeading(text, level) {
			continue
		}

		candidates = append(candidates, heading{
			level:   level,
			text:    text,
			page:    ln.Page + 1,
			lineIdx: i,
		})
	}

	candidates = dedupeAdjacent(candidates)
	repairLevelSkips(candidates)

	if doc.Title == "" {
		doc.Title = fallbackTitle(docID, lines, candidates)
	}

	doc.Sections = make([]Section, len(candidates))
	for i, h := range candidates {
		doc.Sections[i] = Section{
			Level:    h.level,
			Text:     h.text,
			Page:     h.page,
			Document: docID,
		}
	}
	c.attachBodyWindows(doc, lines, candidates, titleIdx, recurring)

	return doc
}

// validHeading enforces the per-level length caps: headings over 150
// characters are rejected outright, and deeper levels tolerate slightly
// longer word counts.
func validHeading(text string, level Level) bool {
	if len(text) > 150 {
		return false
	}
	words := len(strings.Fields(text))
	if words == 0 {
		return false
	}
	switch level {
	case H1:
		return words <= 15
	case H2:
		return words <= 20
	default:
		return words <= 25
	}
}

// fallbackTitle picks a title for a document with no Title-sized line:
// the first heading on page 1, else the longest page-1 line, else the
// document id.
func fallbackTitle(docID string, lines []layout.Line, candidates []heading) string {
	for _, h := range candidates {
		if h.page == 1 {
			return h.text
		}
	}
	longest := ""
	for _, ln := range lines {
		if ln.Page != 0 {
			continue
		}
		text := normalizeText(ln.Text)
		if len(text) > len(longest) {
			longest = text
		}
	}
	if longest != "" {
		return longest
	}
	return docID
}

// dedupeAdjacent removes exact consecutive duplicates (same level and
// normalized text), keeping the first occurrence and its page number.
func dedupeAdjacent(candidates []heading) []heading {
	out := candidates[:0]
	for _, h := range candidates {
		if len(out) > 0 {
			prev := out[len(out)-1]
			if prev.level == h.level && prev.text == h.text {
				continue
			}
		}
		out = append(out, h)
	}
	return out
}

// repairLevelSkips promotes an H3 that directly follows an H1 to H2 when
// the document uses H2 elsewhere; a document with no H2 at all keeps its
// H3 entries (they nest under the nearest H1 in the hierarchy instead).
func repairLevelSkips(candidates []heading) {
	hasH2 := false
	for _, h := range candidates {
		if h.level == H2 {
			hasH2 = true
			break
		}
	}
	if !hasH2 {
		return
	}
	prev := Body
	for i := range candidates {
		if prev == H1 && candidates[i].level == H3 {
			candidates[i].level = H2
		}
		prev = candidates[i].level
	}
}

// attachBodyWindows assigns each section the body text that follows it, up
// to the configured character budget. Noise lines (page numbers, captions,
// recurring headers) and the title line are excluded.
func (c *Classifier) attachBodyWindows(doc *Document, lines []layout.Line, candidates []heading, titleIdx int, recurring map[string]bool) {
	cur := -1
	next := 0
	var buf strings.Builder

	commit := func() {
		if cur >= 0 {
			doc.Sections[cur].Body = strings.TrimSpace(buf.String())
		}
		buf.Reset()
	}

	for i, ln := range lines {
		if next < len(candidates) && candidates[next].lineIdx == i {
			commit()
			cur = next
			next++
			continue
		}
		if i == titleIdx || cur < 0 {
			continue
		}
		text := normalizeText(ln.Text)
		if text == "" || isPageNumber(text) || isCaption(text) || recurring[recurringKey(ln)] {
			continue
		}
		if buf.Len() >= c.cfg.BodyWindowChars {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(text)
	}
	commit()
}

// ---------------------------------------------------------------------------
// Running header / footer detection
// ---------------------------------------------------------------------------

// recurringKey buckets a line by its normalized text and vertical band so
// headers with slight positional jitter still collapse together.
func recurringKey(ln layout.Line) string {
	return fmt.Sprintf("%s|%d", strings.ToLower(normalizeText(ln.Text)), int(ln.Y/10))
}

// recurringLines returns the keys of lines whose identical text recurs at
// the same vertical band on three or more pages.
func recurringLines(lines []layout.Line) map[string]bool {
	pages := make(map[string]map[int]bool)
	for _, ln := range lines {
		text := normalizeText(ln.Text)
		if text == "" {
			continue
		}
		key := recurringKey(ln)
		if pages[key] == nil {
			pages[key] = make(map[int]bool)
		}
		pages[key][ln.Page] = true
	}

	recurring := make(map[string]bool)
	for key, set := range pages {
		if len(set) >= 3 {
			recurring[key] = true
		}
	}
	return recurring
}
