// Package outline classifies assembled lines into a document outline:
// a title plus a flattened hierarchy of H1/H2/H3 headings with pages.
package outline

// Level is a heading depth. Title is shallowest, Body means the line is
// ordinary text and does not appear in the outline. Body is the zero value
// so an unclassified line never masquerades as a heading.
type Level int

const (
	Body Level = iota
	Title
	H1
	H2
	H3
)

// String returns the wire name of the level ("Title", "H1", "H2", "H3").
func (l Level) String() string {
	switch l {
	case Title:
		return "Title"
	case H1:
		return "H1"
	case H2:
		return "H2"
	case H3:
		return "H3"
	default:
		return "Body"
	}
}

// Section is one classified heading with its surrounding context.
type Section struct {
	Level    Level
	Text     string
	Page     int    // 1-based page number
	Document string // owning document id
	Body     string // window of body text following the heading
	Children []*Section
}

// Document is the classified outline of one input document.
type Document struct {
	ID       string
	Title    string
	Sections []Section // flattened outline in reading order
	Pages    int
}

// Hierarchy nests the flattened sections by level order of appearance.
// H2 entries attach to the nearest preceding H1, H3 entries to the nearest
// preceding H2, or directly to the nearest H1 when the document never uses
// H2. Orphans with no possible parent become roots.
func (d *Document) Hierarchy() []*Section {
	var roots []*Section
	var lastH1, lastH2 *Section

	for i := range d.Sections {
		sec := &d.Sections[i]
		sec.Children = nil
		switch sec.Level {
		case H1:
			roots = append(roots, sec)
			lastH1 = sec
			lastH2 = nil
		case H2:
			if lastH1 != nil {
				lastH1.Children = append(lastH1.Children, sec)
			} else {
				roots = append(roots, sec)
			}
			lastH2 = sec
		case H3:
			switch {
			case lastH2 != nil:
				lastH2.Children = append(lastH2.Children, sec)
			case lastH1 != nil:
				lastH1.Children = append(lastH1.Children, sec)
			default:
				roots = append(roots, sec)
			}
		}
	}
	return roots
}
