package persona

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Term weights by source. Expertise terms outrank job tokens, which
// outrank generic role words; weights accumulate when a token appears in
// several sources.
const (
	roleWeight      = 1.0
	jobWeight       = 2.0
	expertiseWeight = 3.0

	// expertBoost further up-weights expertise terms for expert personas,
	// whose stated specialities are a stronger relevance signal.
	expertBoost = 1.25
)

// Encode builds the weighted query for one ranking request. The encoding
// is fully deterministic: identical persona and job inputs always produce
// an identical Query.
func Encode(p Persona, job string) Query {
	weights := make(map[string]float64)

	for _, tok := range Tokenize(p.Role) {
		weights[tok] += roleWeight
	}
	for _, tok := range Tokenize(job) {
		weights[tok] += jobWeight
	}

	expWeight := expertiseWeight
	if p.ExperienceLevel == Expert {
		expWeight *= expertBoost
	}
	for _, term := range p.Expertise {
		for _, tok := range Tokenize(term) {
			weights[tok] += expWeight
		}
	}

	var sum float64
	for _, w := range weights {
		sum += w * w
	}

	return Query{
		Weights:    weights,
		DomainHint: domainHint(weights),
		norm:       math.Sqrt(sum),
	}
}

// Tokenize lowercases text and splits it into word tokens of three or more
// characters, excluding stop words.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= 3 && !stopWords[f] {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// domainVocabularies maps a content domain to its characteristic terms.
var domainVocabularies = map[string][]string{
	"travel":     {"destination", "hotel", "restaurant", "attraction", "transport", "booking", "itinerary", "sightseeing"},
	"research":   {"methodology", "analysis", "data", "study", "findings", "experiment", "survey", "results"},
	"business":   {"strategy", "market", "revenue", "customer", "product", "sales", "profit", "roi"},
	"education":  {"learning", "student", "course", "curriculum", "degree", "academic", "university", "college"},
	"healthcare": {"patient", "treatment", "medical", "diagnosis", "therapy", "health", "clinical", "medicine"},
	"technology": {"software", "development", "programming", "system", "application", "digital", "tech"},
}

// domainHint returns the domain whose vocabulary overlaps the query terms
// the most; ties resolve lexicographically and zero overlap yields "".
func domainHint(weights map[string]float64) string {
	best := ""
	bestCount := 0

	domains := make([]string, 0, len(domainVocabularies))
	for d := range domainVocabularies {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	for _, d := range domains {
		count := 0
		for _, term := range domainVocabularies[d] {
			if _, ok := weights[term]; ok {
				count++
			}
		}
		if count > bestCount {
			best = d
			bestCount = count
		}
	}
	return best
}

// stopWords is the set of common English words excluded from queries.
var stopWords = map[string]bool{
	"the": true, "and": true, "but": true, "for": true, "are": true,
	"with": true, "this": true, "that": true, "have": true, "from": true,
	"they": true, "know": true, "want": true, "been": true, "good": true,
	"much": true, "some": true, "time": true, "very": true, "when": true,
	"come": true, "here": true, "just": true, "like": true, "long": true,
	"make": true, "many": true, "over": true, "such": true, "take": true,
	"than": true, "them": true, "well": true, "work": true, "was": true,
	"were": true, "will": true, "would": true, "could": true, "should": true,
	"what": true, "which": true, "who": true, "where": true, "how": true,
	"why": true, "not": true, "nor": true, "into": true, "between": true,
	"about": true, "their": true, "there": true, "these": true, "those": true,
	"being": true, "does": true, "each": true, "also": true, "its": true,
}
