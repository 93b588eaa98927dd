package rank

import (
	"math"
	"strings"

	"github.com/sachinrathod11/techstack-adobe-project-1a/persona"
)

const (
	// maxExcerptChars is the approximate maximum length of a refined excerpt.
	maxExcerptChars = 500

	// maxExcerptSentences bounds the contiguous sentence window considered.
	maxExcerptSentences = 3

	// adequateExcerptChars is the length at which an excerpt is considered
	// fully adequate for confidence purposes.
	adequateExcerptChars = 200
)

// ExtractSubsection selects the highest-scoring contiguous sentence window
// from a section's body as its refined excerpt. The second return is false
// when the section has no body text to refine.
func ExtractSubsection(sec ScoredSection, q persona.Query) (SubsectionExtract, bool) {
	sentences := splitSentences(sec.Section.Body)
	if len(sentences) == 0 {
		return SubsectionExtract{}, false
	}

	sectionSim := newTermBag(sec.Section.Body).cosine(q)

	best := ""
	bestSim := -1.0
	for start := range sentences {
		var window strings.Builder
		for width := 1; width <= maxExcerptSentences && start+width <= len(sentences); width++ {
			if window.Len() > 0 {
				window.WriteString(" ")
			}
			window.WriteString(sentences[start+width-1])
			if window.Len() > maxExcerptChars && width > 1 {
				break
			}
			text := window.String()
			if sim := newTermBag(text).cosine(q); sim > bestSim {
				bestSim = sim
				best = text
			}
		}
	}

	if len(best) > maxExcerptChars {
		best = truncateAtWord(best, maxExcerptChars-3) + "..."
	}

	// Confidence blends excerpt length adequacy with the excerpt's score
	// margin over the whole section.
	adequacy := math.Min(float64(len(best))/adequateExcerptChars, 1)
	margin := clamp01(0.5 + (bestSim - sectionSim))
	confidence := clamp01(0.6*adequacy + 0.4*margin)

	return SubsectionExtract{
		Document:      sec.Document,
		ParentSection: sec.Section.Text,
		Text:          best,
		Page:          sec.Section.Page,
		Score:         clamp01(bestSim),
		Confidence:    confidence,
	}, true
}

// splitSentences splits text at period/question/exclamation boundaries
// followed by whitespace or end of string.
func splitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		cur.WriteRune(runes[i])
		if runes[i] == '.' || runes[i] == '?' || runes[i] == '!' {
			if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
				if s := strings.TrimSpace(cur.String()); s != "" {
					sentences = append(sentences, s)
				}
				cur.Reset()
			}
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// truncateAtWord cuts text at the last space before limit to avoid
// splitting a word.
func truncateAtWord(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := strings.LastIndex(text[:limit], " ")
	if cut <= 0 {
		cut = limit
	}
	return text[:cut]
}
