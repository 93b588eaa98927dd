// Package parser adapts an external PDF text extractor into the fragment
// model consumed by the layout assembler. Byte-level PDF decoding is the
// extractor's problem; this package only normalises its output into
// positioned fragments in natural reading order.
package parser

import (
	"context"

	"github.com/sachinrathod11/techstack-adobe-project-1a/layout"
)

// Fragments is one document's extracted text fragments plus its page count.
type Fragments struct {
	Pages int
	Spans []layout.TextFragment
}

// Source delivers positioned text fragments for a document on disk.
type Source interface {
	Extract(ctx context.Context, path string) (*Fragments, error)
}
