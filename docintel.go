// Package docintel turns a PDF's raw text layout into a structured outline
// and, given a persona and a job-to-be-done, ranks a collection's sections
// and sub-sections by relevance to that persona.
//
// The pipeline has two phases: a fully parallel per-document extraction
// phase (assemble lines, classify the outline) and a sequential scoring
// phase that starts once every document of the collection is available,
// because cross-document corroboration needs all candidates at once.
package docintel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sachinrathod11/techstack-adobe-project-1a/layout"
	"github.com/sachinrathod11/techstack-adobe-project-1a/outline"
	"github.com/sachinrathod11/techstack-adobe-project-1a/parser"
	"github.com/sachinrathod11/techstack-adobe-project-1a/persona"
	"github.com/sachinrathod11/techstack-adobe-project-1a/rank"
)

// Engine is the main entry point for outline extraction and persona-driven
// collection analysis.
type Engine interface {
	// ExtractOutline classifies already-extracted fragments into an outline.
	ExtractOutline(ctx context.Context, docID string, frags *parser.Fragments) (*OutlineResult, error)

	// ExtractOutlineFile reads fragments from a file via the configured
	// source, then classifies them.
	ExtractOutlineFile(ctx context.Context, path string) (*OutlineResult, error)

	// AnalyzeCollection ranks the collection's sections against the
	// request's persona and job-to-be-done.
	AnalyzeCollection(ctx context.Context, req CollectionRequest) (*Analysis, error)
}

// DocumentInput names one document of a collection. Either Fragments is
// set directly, or Path is read through the engine's fragment source.
type DocumentInput struct {
	ID        string
	Path      string
	Fragments *parser.Fragments
}

// CollectionRequest configures one ranking run.
type CollectionRequest struct {
	Persona     persona.Persona `json:"persona" yaml:"persona"`
	JobToBeDone string          `json:"job_to_be_done" yaml:"job_to_be_done"`
	Documents   []DocumentInput `json:"-" yaml:"-"`

	// MaxSections and MaxSubsections override the configured output
	// limits when positive.
	MaxSections    int `json:"max_sections" yaml:"max_sections"`
	MaxSubsections int `json:"max_subsections" yaml:"max_subsections"`
}

// Option configures the engine at construction time.
type Option func(*engine)

// WithSource sets the fragment source used for path-based inputs.
// The default is the PDF source.
func WithSource(src parser.Source) Option {
	return func(e *engine) { e.source = src }
}

// engine is the concrete implementation of Engine.
type engine struct {
	cfg        Config
	source     parser.Source
	classifier *outline.Classifier
	scorer     *rank.Scorer
}

// New creates an engine with the given configuration. Zero-value config
// fields are replaced with defaults.
func New(cfg Config, opts ...Option) (Engine, error) {
	def := DefaultConfig()
	if cfg.TopSections == 0 {
		cfg.TopSections = def.TopSections
	}
	if cfg.TopSubsections == 0 {
		cfg.TopSubsections = def.TopSubsections
	}
	if cfg.Workers == 0 {
		cfg.Workers = def.Workers
	}
	if cfg.DocumentTimeout == 0 {
		cfg.DocumentTimeout = def.DocumentTimeout
	}
	if cfg.SemanticWeight == 0 && cfg.StructuralWeight == 0 && cfg.CrossDocWeight == 0 {
		cfg.SemanticWeight = def.SemanticWeight
		cfg.StructuralWeight = def.StructuralWeight
		cfg.CrossDocWeight = def.CrossDocWeight
	}
	if cfg.SemanticWeight < 0 || cfg.StructuralWeight < 0 || cfg.CrossDocWeight < 0 {
		return nil, fmt.Errorf("%w: score weights must not be negative", ErrInvalidConfig)
	}

	e := &engine{
		cfg:    cfg,
		source: &parser.PDFSource{},
		classifier: outline.New(outline.Config{
			DefaultBodySize: cfg.DefaultBodyFontSize,
			BodyWindowChars: cfg.BodyWindowChars,
		}),
		scorer: rank.NewScorer(rank.Config{
			Weights: rank.Weights{
				Semantic:   cfg.SemanticWeight,
				Structural: cfg.StructuralWeight,
				CrossDoc:   cfg.CrossDocWeight,
			},
			MinSectionTokens: cfg.MinSectionTokens,
		}),
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// ExtractOutline classifies one document's fragments into an outline.
func (e *engine) ExtractOutline(ctx context.Context, docID string, frags *parser.Fragments) (*OutlineResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	lines := layout.AssembleLines(frags.Spans)
	doc := e.classifier.Classify(docID, lines, frags.Pages)

	slog.Info("outline: document classified",
		"document", docID, "lines", len(lines), "headings", len(doc.Sections),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return outlineResult(doc), nil
}

// ExtractOutlineFile extracts fragments from a file and classifies them.
func (e *engine) ExtractOutlineFile(ctx context.Context, path string) (*OutlineResult, error) {
	if e.source == nil {
		return nil, ErrNoSource
	}
	frags, err := e.source.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	return e.ExtractOutline(ctx, filepath.Base(path), frags)
}

// AnalyzeCollection runs the two-phase pipeline: parallel per-document
// extraction, a barrier, then sequential cross-document scoring and
// ranking. Documents that fail or time out are excluded and recorded as
// metadata warnings; only request-level validation is fatal.
func (e *engine) AnalyzeCollection(ctx context.Context, req CollectionRequest) (*Analysis, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	start := time.Now()
	query := persona.Encode(req.Persona, req.JobToBeDone)

	ids := make([]string, len(req.Documents))
	for i, in := range req.Documents {
		ids[i] = documentID(in, i)
	}

	// Phase 1: parallel extraction. Each worker owns its document's data
	// exclusively; results and warnings land in pre-sized slots so no
	// locking is needed beyond the errgroup barrier.
	docs := make([]*outline.Document, len(req.Documents))
	warnings := make([]*Warning, len(req.Documents))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, in := range req.Documents {
		i, in := i, in
		g.Go(func() error {
			docs[i], warnings[i] = e.processDocument(gctx, ids[i], in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	processed := 0
	var warns []Warning
	var cands []rank.Candidate
	for i, doc := range docs {
		if warnings[i] != nil {
			warns = append(warns, *warnings[i])
			continue
		}
		processed++
		for j := range doc.Sections {
			cands = append(cands, rank.Candidate{
				Document: doc.ID,
				DocIndex: i,
				Index:    j,
				Section:  doc.Sections[j],
			})
		}
	}
	slog.Info("analyze: extraction phase complete",
		"documents", len(req.Documents), "processed", processed,
		"sections", len(cands), "elapsed", time.Since(start).Round(time.Millisecond))

	// Phase 2: scoring needs every document's candidates, then ranking is
	// cheap and runs sequentially.
	scored := e.scorer.ScoreAll(cands, query)

	limit := req.MaxSections
	if limit <= 0 {
		limit = e.cfg.TopSections
	}
	ranked := rank.Rank(scored, limit)

	subLimit := req.MaxSubsections
	if subLimit <= 0 {
		subLimit = e.cfg.TopSubsections
	}
	if subLimit > len(ranked) {
		subLimit = len(ranked)
	}

	sections := make([]ExtractedSection, 0, len(ranked))
	for _, s := range ranked {
		sections = append(sections, extractedSection(s))
	}
	subsections := make([]SubsectionEntry, 0, subLimit)
	for _, s := range ranked[:subLimit] {
		if extract, ok := rank.ExtractSubsection(s, query); ok {
			subsections = append(subsections, subsectionEntry(extract))
		}
	}

	elapsed := time.Since(start)
	slog.Info("analyze: ranking complete",
		"ranked", len(ranked), "subsections", len(subsections),
		"elapsed", elapsed.Round(time.Millisecond))

	return &Analysis{
		Metadata: Metadata{
			InputDocuments:        ids,
			Persona:               req.Persona.Role,
			JobToBeDone:           req.JobToBeDone,
			ProcessingTimestamp:   start.UTC().Format(time.RFC3339),
			ProcessingTimeSeconds: elapsed.Seconds(),
			Warnings:              warns,
		},
		ExtractedSections:  sections,
		SubsectionAnalysis: subsections,
	}, nil
}

// processDocument extracts and classifies one document under its timeout
// budget. Failures are reported as warnings, never as errors, so the rest
// of the collection proceeds.
func (e *engine) processDocument(ctx context.Context, id string, in DocumentInput) (*outline.Document, *Warning) {
	dctx, cancel := context.WithTimeout(ctx, time.Duration(e.cfg.DocumentTimeout))
	defer cancel()

	frags := in.Fragments
	if frags == nil {
		if e.source == nil {
			return nil, &Warning{Document: id, Reason: "no fragment source configured"}
		}
		extracted, err := e.source.Extract(dctx, in.Path)
		if err != nil {
			reason := "fragment extraction failed: " + err.Error()
			if errors.Is(err, context.DeadlineExceeded) {
				reason = "processing timeout exceeded"
			}
			slog.Warn("analyze: document skipped", "document", id, "reason", reason)
			return nil, &Warning{Document: id, Reason: reason}
		}
		frags = extracted
	}

	lines := layout.AssembleLines(frags.Spans)
	if len(lines) == 0 {
		slog.Warn("analyze: document skipped", "document", id, "reason", "no text fragments")
		return nil, &Warning{Document: id, Reason: "document produced no text fragments"}
	}

	doc := e.classifier.Classify(id, lines, frags.Pages)
	if dctx.Err() != nil && ctx.Err() == nil {
		slog.Warn("analyze: document skipped", "document", id, "reason", "processing timeout exceeded")
		return nil, &Warning{Document: id, Reason: "processing timeout exceeded"}
	}
	return doc, nil
}

// validateRequest enforces the fatal, configuration-level checks. All
// other failures degrade locally.
func validateRequest(req CollectionRequest) error {
	if len(req.Documents) < MinCollectionSize {
		return fmt.Errorf("%w: got %d", ErrCollectionTooSmall, len(req.Documents))
	}
	if len(req.Documents) > MaxCollectionSize {
		return fmt.Errorf("%w: got %d", ErrCollectionTooLarge, len(req.Documents))
	}
	if req.Persona.Role == "" {
		return fmt.Errorf("%w: empty role", ErrInvalidPersona)
	}
	if !req.Persona.ExperienceLevel.Valid() {
		return fmt.Errorf("%w: unknown experience level %q", ErrInvalidPersona, req.Persona.ExperienceLevel)
	}
	return nil
}

// documentID resolves the identifier used for a document in outputs.
func documentID(in DocumentInput, idx int) string {
	if in.ID != "" {
		return in.ID
	}
	if in.Path != "" {
		return filepath.Base(in.Path)
	}
	return fmt.Sprintf("document-%d", idx+1)
}
