package docintel

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sachinrathod11/techstack-adobe-project-1a/layout"
	"github.com/sachinrathod11/techstack-adobe-project-1a/parser"
	"github.com/sachinrathod11/techstack-adobe-project-1a/persona"
)

// span emits one full line as a single fragment; assembly keeps it intact.
func span(page int, y, size float64, text string, bold bool) layout.TextFragment {
	return layout.TextFragment{Text: text, Page: page, X: 50, Y: y, FontSize: size, Bold: bold}
}

// travelDoc builds fragments for a small guide with a title, two headings,
// and enough body text to anchor the font statistics.
func travelDoc(topic, bodyA, bodyB string) *parser.Fragments {
	return &parser.Fragments{
		Pages: 2,
		Spans: []layout.TextFragment{
			span(0, 770, 24, topic+" Travel Guide", false),
			span(0, 720, 17, "Hotels and Accommodation", false),
			span(0, 690, 12, bodyA, false),
			span(0, 670, 12, "Rooms in the old town fill quickly during festival season.", false),
			span(0, 650, 12, "Advance booking secures the best rates for travelers.", false),
			span(1, 770, 17, "Restaurants and Dining", false),
			span(1, 740, 12, bodyB, false),
			span(1, 720, 12, "Local markets sell fresh produce every morning.", false),
			span(1, 700, 12, "Most kitchens close between lunch and dinner service.", false),
		},
	}
}

func testRequest() CollectionRequest {
	budget := "Affordable hotel options near the center suit a tight budget and short trip."
	return CollectionRequest{
		Persona:     persona.Persona{Role: "Travel Planner", Expertise: []string{"budget itineraries"}},
		JobToBeDone: "Plan a four day trip with affordable hotel options",
		Documents: []DocumentInput{
			{ID: "south.pdf", Fragments: travelDoc("Southern Coast", budget, "Seafood dominates the coastal menus.")},
			{ID: "north.pdf", Fragments: travelDoc("Northern Hills", budget, "Mountain lodges serve hearty stews.")},
			{ID: "cities.pdf", Fragments: travelDoc("Historic Cities", budget, "Cafes line the cathedral squares.")},
		},
	}
}

// ---------------------------------------------------------------------------
// Request validation
// ---------------------------------------------------------------------------

func TestAnalyzeCollectionSizeBounds(t *testing.T) {
	e, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}

	req := testRequest()
	req.Documents = req.Documents[:2]
	if _, err := e.AnalyzeCollection(context.Background(), req); !errors.Is(err, ErrCollectionTooSmall) {
		t.Errorf("2 documents: err = %v, want ErrCollectionTooSmall", err)
	}

	req = testRequest()
	for len(req.Documents) <= MaxCollectionSize {
		req.Documents = append(req.Documents, DocumentInput{ID: "extra.pdf"})
	}
	if _, err := e.AnalyzeCollection(context.Background(), req); !errors.Is(err, ErrCollectionTooLarge) {
		t.Errorf("11 documents: err = %v, want ErrCollectionTooLarge", err)
	}
}

func TestAnalyzeCollectionInvalidPersona(t *testing.T) {
	e, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}

	req := testRequest()
	req.Persona.Role = ""
	if _, err := e.AnalyzeCollection(context.Background(), req); !errors.Is(err, ErrInvalidPersona) {
		t.Errorf("empty role: err = %v, want ErrInvalidPersona", err)
	}

	req = testRequest()
	req.Persona.ExperienceLevel = "wizard"
	if _, err := e.AnalyzeCollection(context.Background(), req); !errors.Is(err, ErrInvalidPersona) {
		t.Errorf("bad experience level: err = %v, want ErrInvalidPersona", err)
	}
}

func TestNewRejectsNegativeWeights(t *testing.T) {
	if _, err := New(Config{SemanticWeight: -0.5, StructuralWeight: 0.3, CrossDocWeight: 0.2}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

// ---------------------------------------------------------------------------
// Full pipeline
// ---------------------------------------------------------------------------

func TestAnalyzeCollection(t *testing.T) {
	e, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}

	a, err := e.AnalyzeCollection(context.Background(), testRequest())
	if err != nil {
		t.Fatal(err)
	}

	wantIDs := []string{"south.pdf", "north.pdf", "cities.pdf"}
	if !reflect.DeepEqual(a.Metadata.InputDocuments, wantIDs) {
		t.Errorf("input documents = %v, want %v in request order", a.Metadata.InputDocuments, wantIDs)
	}
	if a.Metadata.Persona != "Travel Planner" {
		t.Errorf("metadata persona = %q", a.Metadata.Persona)
	}
	if a.Metadata.ProcessingTimestamp == "" || a.Metadata.ProcessingTimeSeconds < 0 {
		t.Error("metadata timing fields missing")
	}
	if len(a.Metadata.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", a.Metadata.Warnings)
	}

	if len(a.ExtractedSections) == 0 {
		t.Fatal("no extracted sections")
	}
	for i, sec := range a.ExtractedSections {
		if sec.ImportanceRank != i+1 {
			t.Errorf("rank at %d = %d, want dense 1-based ranks", i, sec.ImportanceRank)
		}
		if sec.RelevanceScore < 0 || sec.RelevanceScore > 1 {
			t.Errorf("section %d score %v out of [0,1]", i, sec.RelevanceScore)
		}
		if i > 0 && sec.RelevanceScore > a.ExtractedSections[i-1].RelevanceScore {
			t.Errorf("sections not sorted by score at %d", i)
		}
		if sec.PageNumber < 1 {
			t.Errorf("section %d page %d, want 1-based", i, sec.PageNumber)
		}
		if sec.KeyConcepts == nil {
			t.Errorf("section %d key concepts must not be nil", i)
		}
	}

	// The hotel sections answer the job directly and should lead.
	if a.ExtractedSections[0].SectionTitle != "Hotels and Accommodation" {
		t.Errorf("top section = %q, want the hotel heading", a.ExtractedSections[0].SectionTitle)
	}

	if len(a.SubsectionAnalysis) == 0 {
		t.Fatal("no subsection analysis")
	}
	if len(a.SubsectionAnalysis) > DefaultConfig().TopSubsections {
		t.Errorf("got %d subsections, want at most the configured limit", len(a.SubsectionAnalysis))
	}
	for i, sub := range a.SubsectionAnalysis {
		if sub.RefinedText == "" {
			t.Errorf("subsection %d has empty refined text", i)
		}
		if sub.RelevanceScore < 0 || sub.RelevanceScore > 1 ||
			sub.ExtractionConfidence < 0 || sub.ExtractionConfidence > 1 {
			t.Errorf("subsection %d metrics out of range", i)
		}
	}
}

func TestAnalyzeCollectionSectionLimit(t *testing.T) {
	e, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}

	req := testRequest()
	req.MaxSections = 2
	a, err := e.AnalyzeCollection(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(a.ExtractedSections) != 2 {
		t.Errorf("got %d sections, want the requested 2", len(a.ExtractedSections))
	}
}

func TestAnalyzeCollectionWarnsOnEmptyDocument(t *testing.T) {
	e, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}

	req := testRequest()
	req.Documents[1].Fragments = &parser.Fragments{Pages: 1}
	a, err := e.AnalyzeCollection(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	if len(a.Metadata.Warnings) != 1 || a.Metadata.Warnings[0].Document != "north.pdf" {
		t.Fatalf("warnings = %v, want one for north.pdf", a.Metadata.Warnings)
	}
	for _, sec := range a.ExtractedSections {
		if sec.Document == "north.pdf" {
			t.Error("excluded document still appears in the ranking")
		}
	}
	if len(a.ExtractedSections) == 0 {
		t.Error("remaining documents should still be ranked")
	}
}

// blockingSource never produces fragments; it waits out the caller's
// deadline and reports its expiry.
type blockingSource struct{}

func (blockingSource) Extract(ctx context.Context, path string) (*parser.Fragments, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestAnalyzeCollectionWarnsOnTimeout(t *testing.T) {
	e, err := New(Config{DocumentTimeout: Duration(20 * time.Millisecond)}, WithSource(blockingSource{}))
	if err != nil {
		t.Fatal(err)
	}

	req := testRequest()
	// Path-based inputs go through the source; this one blocks past the
	// per-document budget while the fragment-backed documents proceed.
	req.Documents[1] = DocumentInput{ID: "slow.pdf", Path: "slow.pdf"}
	a, err := e.AnalyzeCollection(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	if len(a.Metadata.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one for the timed-out document", a.Metadata.Warnings)
	}
	w := a.Metadata.Warnings[0]
	if w.Document != "slow.pdf" || w.Reason != "processing timeout exceeded" {
		t.Errorf("warning = %+v, want slow.pdf with a timeout reason", w)
	}
	for _, sec := range a.ExtractedSections {
		if sec.Document == "slow.pdf" {
			t.Error("timed-out document still appears in the ranking")
		}
	}
	if len(a.ExtractedSections) == 0 {
		t.Error("remaining documents should still be ranked")
	}
}

func TestAnalyzeCollectionDeterministic(t *testing.T) {
	e, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}

	first, err := e.AnalyzeCollection(context.Background(), testRequest())
	if err != nil {
		t.Fatal(err)
	}
	second, err := e.AnalyzeCollection(context.Background(), testRequest())
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first.ExtractedSections, second.ExtractedSections) {
		t.Error("extracted sections differ between identical runs")
	}
	if !reflect.DeepEqual(first.SubsectionAnalysis, second.SubsectionAnalysis) {
		t.Error("subsection analysis differs between identical runs")
	}
}

// ---------------------------------------------------------------------------
// Outline extraction
// ---------------------------------------------------------------------------

func TestExtractOutline(t *testing.T) {
	e, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}

	res, err := e.ExtractOutline(context.Background(), "guide.pdf", travelDoc("Coastal", "Body text one here.", "Body text two here."))
	if err != nil {
		t.Fatal(err)
	}

	if res.Title != "Coastal Travel Guide" {
		t.Errorf("title = %q", res.Title)
	}
	want := []OutlineEntry{
		{Level: "H1", Text: "Hotels and Accommodation", Page: 1},
		{Level: "H1", Text: "Restaurants and Dining", Page: 2},
	}
	if !reflect.DeepEqual(res.Outline, want) {
		t.Errorf("outline = %v, want %v", res.Outline, want)
	}
}

func TestExtractOutlineEmptyDocument(t *testing.T) {
	e, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}

	res, err := e.ExtractOutline(context.Background(), "blank.pdf", &parser.Fragments{Pages: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Outline == nil || len(res.Outline) != 0 {
		t.Errorf("outline = %v, want a present empty array", res.Outline)
	}
	if res.Title != "blank.pdf" {
		t.Errorf("title = %q, want the document id fallback", res.Title)
	}
}

func TestExtractOutlineFileMissing(t *testing.T) {
	e, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := e.ExtractOutlineFile(context.Background(), "testdata/does-not-exist.pdf"); !errors.Is(err, ErrParseFailed) {
		t.Errorf("err = %v, want ErrParseFailed", err)
	}
}

func TestExtractOutlineCancelledContext(t *testing.T) {
	e, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.ExtractOutline(ctx, "guide.pdf", &parser.Fragments{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
