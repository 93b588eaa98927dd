// Package rank scores classified sections against a persona query and
// orders them into a deterministic ranking with refined sub-section
// excerpts for the top results.
package rank

import "github.com/sachinrathod11/techstack-adobe-project-1a/outline"

// Candidate is one section entering scoring, with the collection context
// needed for deterministic tie-breaking.
type Candidate struct {
	Document string
	DocIndex int // position of the document in the request's input order
	Index    int // position of the section within its document's outline
	Section  outline.Section
}

// ScoredSection is a Candidate with its relevance verdict.
type ScoredSection struct {
	Candidate
	Score       float64 // relevance in [0,1]
	Rank        int     // 1-based dense importance rank, set by Rank
	ContentType string
	KeyConcepts []string
}

// SubsectionExtract is a refined excerpt from a top-ranked section.
type SubsectionExtract struct {
	Document      string
	ParentSection string
	Text          string
	Page          int
	Score         float64
	Confidence    float64
}
