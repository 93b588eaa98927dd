package rank

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/sachinrathod11/techstack-adobe-project-1a/outline"
	"github.com/sachinrathod11/techstack-adobe-project-1a/persona"
)

// Weights are the fixed signal weights of the relevance score. They should
// sum to 1 so the combined score stays in [0,1].
type Weights struct {
	Semantic   float64 // similarity between section text and the query
	Structural float64 // hierarchy position (H1 over H2 over H3)
	CrossDoc   float64 // corroboration across documents of the collection
}

// DefaultWeights is the documented signal split.
var DefaultWeights = Weights{Semantic: 0.5, Structural: 0.3, CrossDoc: 0.2}

// Config controls scoring behaviour.
type Config struct {
	Weights          Weights
	MinSectionTokens int     // sections below this token count are penalised
	SupportFloor     float64 // minimum pairwise similarity that counts as support
}

// Scorer computes multi-signal relevance scores over a collection's
// candidate sections.
type Scorer struct {
	cfg Config
}

// NewScorer returns a Scorer, replacing zero-value config fields with
// defaults.
func NewScorer(cfg Config) *Scorer {
	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights
	}
	if cfg.MinSectionTokens == 0 {
		cfg.MinSectionTokens = 8
	}
	if cfg.SupportFloor == 0 {
		cfg.SupportFloor = 0.35
	}
	return &Scorer{cfg: cfg}
}

// shortSectionPenalty halves the score of low-signal sections instead of
// excluding them; they stay visible but rank lower.
const shortSectionPenalty = 0.5

// ScoreAll scores every candidate against the query. The cross-document
// signal needs the whole collection at once, so this is the barrier point
// of the pipeline: all documents' candidates must be present.
func (s *Scorer) ScoreAll(cands []Candidate, q persona.Query) []ScoredSection {
	bags := make([]termBag, len(cands))
	for i, c := range cands {
		bags[i] = newTermBag(c.Section.Text + " " + c.Section.Body)
	}
	support := s.crossDocSupport(cands, bags)

	scored := make([]ScoredSection, len(cands))
	for i, c := range cands {
		semantic := 0.9*bags[i].cosine(q) + 0.1*contentQuality(c.Section.Body)
		structural := structuralWeight(c.Section.Level)

		score := s.cfg.Weights.Semantic*semantic +
			s.cfg.Weights.Structural*structural +
			s.cfg.Weights.CrossDoc*support[i]
		if bags[i].tokens < s.cfg.MinSectionTokens {
			score *= shortSectionPenalty
		}

		scored[i] = ScoredSection{
			Candidate:   c,
			Score:       clamp01(score),
			ContentType: contentType(c.Section, q.DomainHint),
			KeyConcepts: keyConcepts(bags[i], q, 5),
		}
	}
	return scored
}

// structuralWeight encodes that position in the hierarchy signals
// importance independent of content.
func structuralWeight(level outline.Level) float64 {
	switch level {
	case outline.Title, outline.H1:
		return 1.0
	case outline.H2:
		return 0.75
	default:
		return 0.5
	}
}

// crossDocSupport computes, for every candidate, the strongest similarity
// to a candidate from a different document. Similarities below the floor
// contribute nothing.
func (s *Scorer) crossDocSupport(cands []Candidate, bags []termBag) []float64 {
	support := make([]float64, len(cands))
	for i := range cands {
		best := 0.0
		for j := range cands {
			if cands[j].Document == cands[i].Document {
				continue
			}
			if sim := bags[i].overlap(bags[j]); sim > best {
				best = sim
			}
		}
		if best >= s.cfg.SupportFloor {
			support[i] = best
		}
	}
	return support
}

// ---------------------------------------------------------------------------
// Term bags
// ---------------------------------------------------------------------------

// termBag is a token frequency vector with a precomputed norm.
type termBag struct {
	tf     map[string]float64
	norm   float64
	tokens int
}

func newTermBag(text string) termBag {
	tf := make(map[string]float64)
	toks := persona.Tokenize(text)
	for _, t := range toks {
		tf[t]++
	}
	var sum float64
	for _, n := range tf {
		sum += n * n
	}
	return termBag{tf: tf, norm: math.Sqrt(sum), tokens: len(toks)}
}

// cosine measures the bag against a weighted query.
func (b termBag) cosine(q persona.Query) float64 {
	if b.norm == 0 || q.Norm() == 0 {
		return 0
	}
	var dot float64
	for term, n := range b.tf {
		dot += n * q.Weight(term)
	}
	return clamp01(dot / (b.norm * q.Norm()))
}

// overlap measures two bags against each other.
func (b termBag) overlap(other termBag) float64 {
	if b.norm == 0 || other.norm == 0 {
		return 0
	}
	small, large := b, other
	if len(large.tf) < len(small.tf) {
		small, large = large, small
	}
	var dot float64
	for term, n := range small.tf {
		dot += n * large.tf[term]
	}
	return clamp01(dot / (b.norm * other.norm))
}

// ---------------------------------------------------------------------------
// Content quality and tagging
// ---------------------------------------------------------------------------

var numericCue = regexp.MustCompile(`\d+%|\$\d+|\d+\.\d+`)

// contentQuality is a small bonus for well-formed section text: complete
// sentences, figures, and list structure. It feeds the semantic signal with
// fixed low weight so it can never dominate the documented signals.
func contentQuality(body string) float64 {
	if body == "" {
		return 0
	}
	sentences := strings.Count(body, ".") + strings.Count(body, "!") + strings.Count(body, "?")
	score := math.Min(float64(sentences)/3, 1) * 0.5
	if numericCue.MatchString(body) {
		score += 0.25
	}
	if strings.Contains(body, "•") || strings.Contains(body, " - ") {
		score += 0.25
	}
	return clamp01(score)
}

// contentTypeRules maps heading/body keywords to section tags, evaluated
// in order.
var contentTypeRules = []struct {
	tag      string
	keywords []string
}{
	{"methodology", []string{"methodology", "method", "approach", "procedure", "protocol"}},
	{"results", []string{"results", "findings", "evaluation", "outcome", "performance"}},
	{"introduction", []string{"introduction", "background", "motivation"}},
	{"overview", []string{"overview", "abstract", "summary at a glance", "executive summary"}},
	{"conclusion", []string{"conclusion", "discussion", "summary", "future work"}},
	{"references", []string{"references", "bibliography", "citations"}},
}

// contentType tags a section from its heading first, then its body, then
// the query's domain hint.
func contentType(sec outline.Section, domainHint string) string {
	heading := strings.ToLower(sec.Text)
	for _, rule := range contentTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(heading, kw) {
				return rule.tag
			}
		}
	}
	body := strings.ToLower(sec.Body)
	for _, rule := range contentTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(body, kw) {
				return rule.tag
			}
		}
	}
	if domainHint != "" {
		return domainHint
	}
	return "general"
}

// keyConcepts returns up to limit query terms present in the section,
// ordered by query weight descending, ties broken lexicographically.
func keyConcepts(bag termBag, q persona.Query, limit int) []string {
	var present []string
	for term := range bag.tf {
		if q.Weight(term) > 0 {
			present = append(present, term)
		}
	}
	sort.Slice(present, func(i, j int) bool {
		wi, wj := q.Weight(present[i]), q.Weight(present[j])
		if wi != wj {
			return wi > wj
		}
		return present[i] < present[j]
	})
	if len(present) > limit {
		present = present[:limit]
	}
	return present
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
