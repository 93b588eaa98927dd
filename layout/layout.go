// Package layout assembles raw positioned text fragments into visual lines.
//
// Fragments arrive from a PDF text extractor in natural reading order; the
// assembler groups them into rows using a vertical tolerance band derived
// from font size, so the classifier downstream can reason about whole lines
// rather than individual glyph runs.
package layout

import "strings"

// TextFragment is a single positioned run of text on a page, as delivered
// by the PDF extraction collaborator. Page indices are 0-based.
type TextFragment struct {
	Text     string
	Page     int
	X        float64
	Y        float64
	Width    float64
	Height   float64
	FontSize float64
	Bold     bool
	Italic   bool
	Font     string
}

// Line is an ordered run of fragments sharing a baseline on one page.
type Line struct {
	Page     int
	Text     string
	FontSize float64 // mode of the fragment sizes; larger size wins ties
	Bold     bool    // true when a majority of fragments are bold
	Y        float64 // vertical position of the line's first fragment
}

// verticalTolerance is the fraction of the smaller fragment's font size
// within which two fragments are considered to share a baseline.
const verticalTolerance = 0.5

// maxHorizontalGapFactor bounds the horizontal gap (in multiples of font
// size) between contiguous fragments on the same line. A larger gap is
// treated as a column change.
const maxHorizontalGapFactor = 3.0

// AssembleLines groups fragments into lines, preserving page order and
// page-relative vertical order. Empty and single-character fragments are
// skipped. An empty fragment slice yields an empty result, not an error.
func AssembleLines(fragments []TextFragment) []Line {
	var lines []Line
	var cur []TextFragment

	flush := func() {
		if len(cur) == 0 {
			return
		}
		lines = append(lines, buildLine(cur))
		cur = nil
	}

	for _, f := range fragments {
		if len(strings.TrimSpace(f.Text)) <= 1 {
			continue
		}
		if len(cur) > 0 && !sameLine(cur[len(cur)-1], f) {
			flush()
		}
		cur = append(cur, f)
	}
	flush()

	return lines
}

// sameLine reports whether f continues the line ended by prev.
func sameLine(prev, f TextFragment) bool {
	if f.Page != prev.Page {
		return false
	}

	tol := verticalTolerance * minSize(prev.FontSize, f.FontSize)
	if abs(f.Y-prev.Y) > tol {
		return false
	}

	// A fragment that jumps back to the left of the previous one is the
	// start of a new column or a wrapped row.
	if f.X < prev.X {
		return false
	}
	gap := f.X - (prev.X + prev.Width)
	return gap <= maxHorizontalGapFactor*maxSize(prev.FontSize, f.FontSize)
}

// buildLine derives a Line's attributes from its fragments.
func buildLine(frags []TextFragment) Line {
	parts := make([]string, 0, len(frags))
	boldCount := 0
	sizeCounts := make(map[float64]int)

	for _, f := range frags {
		parts = append(parts, strings.TrimSpace(f.Text))
		if f.Bold {
			boldCount++
		}
		sizeCounts[roundSize(f.FontSize)]++
	}

	return Line{
		Page:     frags[0].Page,
		Text:     strings.Join(parts, " "),
		FontSize: dominantSize(sizeCounts),
		Bold:     boldCount*2 > len(frags),
		Y:        frags[0].Y,
	}
}

// dominantSize returns the most frequent font size; ties go to the larger
// size so oversized runs are never masked by small inline text.
func dominantSize(counts map[float64]int) float64 {
	var best float64
	bestCount := 0
	for size, n := range counts {
		if n > bestCount || (n == bestCount && size > best) {
			best = size
			bestCount = n
		}
	}
	return best
}

// roundSize rounds a font size to one decimal place so near-identical
// rasterised sizes collapse into the same bucket.
func roundSize(s float64) float64 {
	return float64(int(s*10+0.5)) / 10
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func minSize(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxSize(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
