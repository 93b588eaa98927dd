package parser

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/sachinrathod11/techstack-adobe-project-1a/layout"
)

// PDFSource extracts fragments from PDF files via github.com/ledongthuc/pdf.
type PDFSource struct{}

// Extract reads every page, coalesces the extractor's per-glyph runs into
// word-level fragments, and orders them top-to-bottom, left-to-right.
// Pages that fail to extract are skipped rather than failing the document.
func (p *PDFSource) Extract(ctx context.Context, path string) (*Fragments, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	out := &Fragments{Pages: totalPages}

	for i := 1; i <= totalPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		texts := page.Content().Text
		if len(texts) == 0 {
			continue
		}
		out.Spans = append(out.Spans, coalesce(texts, i-1)...)
	}

	return out, nil
}

// coalesce merges consecutive glyph runs that share a baseline, font, and
// size into single fragments. pageIdx is 0-based.
func coalesce(texts []pdf.Text, pageIdx int) []layout.TextFragment {
	// Reading order: top of page first (PDF y grows upward), then
	// left-to-right within a row.
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var frags []layout.TextFragment
	var cur *layout.TextFragment
	var curEnd float64
	var buf strings.Builder

	flush := func() {
		if cur == nil {
			return
		}
		cur.Text = buf.String()
		cur.Width = curEnd - cur.X
		if strings.TrimSpace(cur.Text) != "" {
			frags = append(frags, *cur)
		}
		cur = nil
		buf.Reset()
	}

	for _, t := range sorted {
		if t.S == "" {
			continue
		}
		if cur != nil && continuesRun(cur, curEnd, t) {
			// Re-insert the inter-word space the extractor drops.
			if t.X-curEnd > 0.25*t.FontSize && !strings.HasSuffix(buf.String(), " ") {
				buf.WriteString(" ")
			}
			buf.WriteString(t.S)
			curEnd = t.X + t.W
			continue
		}
		flush()
		cur = &layout.TextFragment{
			Page:     pageIdx,
			X:        t.X,
			Y:        t.Y,
			Height:   t.FontSize,
			FontSize: t.FontSize,
			Bold:     isBoldFont(t.Font),
			Italic:   isItalicFont(t.Font),
			Font:     t.Font,
		}
		buf.WriteString(t.S)
		curEnd = t.X + t.W
	}
	flush()

	return frags
}

// continuesRun reports whether glyph run t extends the current fragment.
func continuesRun(cur *layout.TextFragment, curEnd float64, t pdf.Text) bool {
	if t.Font != cur.Font || t.FontSize != cur.FontSize {
		return false
	}
	if abs(t.Y-cur.Y) > 0.2*cur.FontSize {
		return false
	}
	gap := t.X - curEnd
	return gap >= -0.5*cur.FontSize && gap <= 1.5*cur.FontSize
}

func isBoldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") || strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy")
}

func isItalicFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
