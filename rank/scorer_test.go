package rank

import (
	"strings"
	"testing"

	"github.com/sachinrathod11/techstack-adobe-project-1a/outline"
	"github.com/sachinrathod11/techstack-adobe-project-1a/persona"
)

func cand(doc string, docIdx, idx int, level outline.Level, text, body string) Candidate {
	return Candidate{
		Document: doc,
		DocIndex: docIdx,
		Index:    idx,
		Section: outline.Section{
			Level:    level,
			Text:     text,
			Page:     1,
			Document: doc,
			Body:     body,
		},
	}
}

func travelQuery() persona.Query {
	return persona.Encode(
		persona.Persona{Role: "Travel Planner", Expertise: []string{"budget itineraries"}},
		"Plan a four day trip with affordable hotel options",
	)
}

func TestScoreAllRangeAndOrdering(t *testing.T) {
	s := NewScorer(Config{})
	q := travelQuery()

	relevantBody := "Affordable hotel options near the old town make a budget trip " +
		"easy to plan. Each itinerary day lists hotel pricing and transport notes. " +
		"Travelers can plan around the included budget breakdown."
	cands := []Candidate{
		cand("south.pdf", 0, 0, outline.H1, "Budget Hotel Guide", relevantBody),
		cand("south.pdf", 0, 1, outline.H2, "Packing Checklist",
			"Bring comfortable shoes and a light jacket for evening walks along the coast. "+
				"A reusable water bottle saves money at attractions during summer."),
	}

	scored := s.ScoreAll(cands, q)
	if len(scored) != 2 {
		t.Fatalf("got %d scored sections, want 2", len(scored))
	}
	for i, sc := range scored {
		if sc.Score < 0 || sc.Score > 1 {
			t.Errorf("score %d = %v, want within [0,1]", i, sc.Score)
		}
	}
	if scored[0].Score <= scored[1].Score {
		t.Errorf("query-aligned section scored %v, off-topic scored %v; want the former higher",
			scored[0].Score, scored[1].Score)
	}
}

func TestScoreAllShortSectionPenalty(t *testing.T) {
	s := NewScorer(Config{})
	q := travelQuery()

	long := cand("a.pdf", 0, 0, outline.H1, "Hotel Tips",
		"Plan the hotel budget early because affordable rooms sell fast in summer season every year.")
	short := cand("a.pdf", 0, 1, outline.H1, "Hotel Tips", "Plan the hotel budget early.")

	scored := s.ScoreAll([]Candidate{long, short}, q)
	if scored[1].Score >= scored[0].Score {
		t.Errorf("short section scored %v, long scored %v; want the short one penalised",
			scored[1].Score, scored[0].Score)
	}
}

func TestCrossDocSupport(t *testing.T) {
	s := NewScorer(Config{})

	shared := "Affordable hotel options and budget itinerary planning for the coastal towns."
	cands := []Candidate{
		cand("a.pdf", 0, 0, outline.H1, "Budget Planning", shared),
		cand("b.pdf", 1, 0, outline.H1, "Budget Planning", shared),
		cand("c.pdf", 2, 0, outline.H1, "Local Cuisine",
			"Fresh seafood markets open before sunrise along the harbor promenade daily."),
	}
	bags := make([]termBag, len(cands))
	for i, c := range cands {
		bags[i] = newTermBag(c.Section.Text + " " + c.Section.Body)
	}

	support := s.crossDocSupport(cands, bags)
	if support[0] < s.cfg.SupportFloor {
		t.Errorf("corroborated section support = %v, want at least the floor", support[0])
	}
	if support[0] != support[1] {
		t.Errorf("symmetric sections got support %v and %v", support[0], support[1])
	}
	if support[2] != 0 {
		t.Errorf("unrelated section support = %v, want 0 below the floor", support[2])
	}
}

// Same-document sections never corroborate each other.
func TestCrossDocSupportIgnoresSameDocument(t *testing.T) {
	s := NewScorer(Config{})

	shared := "Affordable hotel options and budget itinerary planning for the coastal towns."
	cands := []Candidate{
		cand("a.pdf", 0, 0, outline.H1, "Budget Planning", shared),
		cand("a.pdf", 0, 1, outline.H2, "Budget Planning", shared),
	}
	bags := []termBag{
		newTermBag(cands[0].Section.Text + " " + cands[0].Section.Body),
		newTermBag(cands[1].Section.Text + " " + cands[1].Section.Body),
	}

	support := s.crossDocSupport(cands, bags)
	if support[0] != 0 || support[1] != 0 {
		t.Errorf("support = %v, want zero without a second document", support)
	}
}

func TestStructuralWeight(t *testing.T) {
	tests := []struct {
		level outline.Level
		want  float64
	}{
		{outline.Title, 1.0},
		{outline.H1, 1.0},
		{outline.H2, 0.75},
		{outline.H3, 0.5},
		{outline.Body, 0.5},
	}
	for _, tt := range tests {
		if got := structuralWeight(tt.level); got != tt.want {
			t.Errorf("structuralWeight(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestContentQuality(t *testing.T) {
	if got := contentQuality(""); got != 0 {
		t.Errorf("empty body quality = %v, want 0", got)
	}
	rich := "Revenue grew 12% in the first quarter. Costs fell sharply. " +
		"Margins improved across the board. • Key driver one • Key driver two"
	if got := contentQuality(rich); got != 1.0 {
		t.Errorf("rich body quality = %v, want 1", got)
	}
	sparse := "fragment without structure"
	if got := contentQuality(sparse); got != 0 {
		t.Errorf("sparse body quality = %v, want 0", got)
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		heading string
		body    string
		hint    string
		want    string
	}{
		{"2.1 Methodology", "", "", "methodology"},
		{"Key Findings", "", "", "results"},
		{"Background", "", "travel", "introduction"},
		{"Day Trips", "our approach to day planning", "", "methodology"},
		{"Day Trips", "beaches and coves", "travel", "travel"},
		{"Day Trips", "beaches and coves", "", "general"},
		{"References", "", "research", "references"},
	}
	for _, tt := range tests {
		sec := outline.Section{Text: tt.heading, Body: tt.body}
		if got := contentType(sec, tt.hint); got != tt.want {
			t.Errorf("contentType(%q, %q, hint=%q) = %q, want %q",
				tt.heading, tt.body, tt.hint, got, tt.want)
		}
	}
}

func TestKeyConcepts(t *testing.T) {
	q := persona.Encode(
		persona.Persona{Role: "analyst", Expertise: []string{"forecasting"}},
		"compare revenue trends",
	)
	bag := newTermBag("The analyst built a forecasting model of revenue trends using archived filings.")

	got := keyConcepts(bag, q, 5)
	// forecasting (3) > compare/revenue/trends (2) > analyst (1); only terms
	// present in the bag appear, in weight order with lexicographic ties.
	want := []string{"forecasting", "revenue", "trends", "analyst"}
	if len(got) != len(want) {
		t.Fatalf("keyConcepts = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keyConcepts = %v, want %v", got, want)
		}
	}

	if limited := keyConcepts(bag, q, 2); len(limited) != 2 || limited[0] != "forecasting" {
		t.Errorf("limited keyConcepts = %v, want top 2 by weight", limited)
	}
}

func TestScoreAllDeterministic(t *testing.T) {
	s := NewScorer(Config{})
	q := travelQuery()
	cands := []Candidate{
		cand("a.pdf", 0, 0, outline.H1, "Budget Hotels",
			"Affordable hotel options with breakfast included start at forty euros per night."),
		cand("b.pdf", 1, 0, outline.H2, "Transport",
			"Regional trains connect every itinerary stop and accept the day pass."),
	}

	first := s.ScoreAll(cands, q)
	second := s.ScoreAll(cands, q)
	for i := range first {
		if first[i].Score != second[i].Score {
			t.Errorf("score %d differs between runs: %v vs %v", i, first[i].Score, second[i].Score)
		}
		if strings.Join(first[i].KeyConcepts, ",") != strings.Join(second[i].KeyConcepts, ",") {
			t.Errorf("key concepts %d differ between runs", i)
		}
	}
}
