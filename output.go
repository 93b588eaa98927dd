package docintel

import (
	"github.com/sachinrathod11/techstack-adobe-project-1a/outline"
	"github.com/sachinrathod11/techstack-adobe-project-1a/rank"
)

// OutlineResult is the per-document outline output object.
type OutlineResult struct {
	Title   string         `json:"title"`
	Outline []OutlineEntry `json:"outline"`
}

// OutlineEntry is one heading in the outline output. Pages are 1-based.
type OutlineEntry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Analysis is the persona-driven output over a document collection.
type Analysis struct {
	Metadata           Metadata           `json:"metadata"`
	ExtractedSections  []ExtractedSection `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionEntry  `json:"subsection_analysis"`
}

// Metadata describes one analysis run.
type Metadata struct {
	InputDocuments        []string  `json:"input_documents"`
	Persona               string    `json:"persona"`
	JobToBeDone           string    `json:"job_to_be_done"`
	ProcessingTimestamp   string    `json:"processing_timestamp"`
	ProcessingTimeSeconds float64   `json:"processing_time_seconds"`
	Warnings              []Warning `json:"warnings,omitempty"`
}

// Warning records a document that was excluded from the ranking.
type Warning struct {
	Document string `json:"document"`
	Reason   string `json:"reason"`
}

// ExtractedSection is one ranked section in the analysis output.
type ExtractedSection struct {
	Document       string   `json:"document"`
	PageNumber     int      `json:"page_number"`
	SectionTitle   string   `json:"section_title"`
	ImportanceRank int      `json:"importance_rank"`
	RelevanceScore float64  `json:"relevance_score"`
	ContentType    string   `json:"content_type"`
	KeyConcepts    []string `json:"key_concepts"`
}

// SubsectionEntry is one refined excerpt in the analysis output.
type SubsectionEntry struct {
	Document             string  `json:"document"`
	ParentSection        string  `json:"parent_section"`
	RefinedText          string  `json:"refined_text"`
	PageNumber           int     `json:"page_number"`
	RelevanceScore       float64 `json:"relevance_score"`
	ExtractionConfidence float64 `json:"extraction_confidence"`
}

// outlineResult flattens a classified document into the output shape.
// The outline array is always present, even when empty.
func outlineResult(doc *outline.Document) *OutlineResult {
	res := &OutlineResult{
		Title:   doc.Title,
		Outline: make([]OutlineEntry, 0, len(doc.Sections)),
	}
	for _, sec := range doc.Sections {
		res.Outline = append(res.Outline, OutlineEntry{
			Level: sec.Level.String(),
			Text:  sec.Text,
			Page:  sec.Page,
		})
	}
	return res
}

// extractedSection converts one ranked section into the output shape.
func extractedSection(s rank.ScoredSection) ExtractedSection {
	concepts := s.KeyConcepts
	if concepts == nil {
		concepts = []string{}
	}
	return ExtractedSection{
		Document:       s.Document,
		PageNumber:     s.Section.Page,
		SectionTitle:   s.Section.Text,
		ImportanceRank: s.Rank,
		RelevanceScore: s.Score,
		ContentType:    s.ContentType,
		KeyConcepts:    concepts,
	}
}

// subsectionEntry converts one refined excerpt into the output shape.
func subsectionEntry(e rank.SubsectionExtract) SubsectionEntry {
	return SubsectionEntry{
		Document:             e.Document,
		ParentSection:        e.ParentSection,
		RefinedText:          e.Text,
		PageNumber:           e.Page,
		RelevanceScore:       e.Score,
		ExtractionConfidence: e.Confidence,
	}
}
