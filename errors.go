package docintel

import "errors"

// Collection size bounds for persona-driven analysis.
const (
	MinCollectionSize = 3
	MaxCollectionSize = 10
)

var (
	// ErrCollectionTooSmall is returned when a ranking request carries
	// fewer documents than the minimum. No partial processing happens.
	ErrCollectionTooSmall = errors.New("docintel: collection smaller than 3 documents")

	// ErrCollectionTooLarge is returned when a ranking request carries
	// more documents than the maximum.
	ErrCollectionTooLarge = errors.New("docintel: collection larger than 10 documents")

	// ErrInvalidPersona is returned when the persona is malformed
	// (empty role or unknown experience level).
	ErrInvalidPersona = errors.New("docintel: invalid persona")

	// ErrParseFailed is returned when fragment extraction fails for a
	// single-document operation. Within a collection the document is
	// skipped and a warning recorded instead.
	ErrParseFailed = errors.New("docintel: fragment extraction failed")

	// ErrNoSource is returned when a document input names a path but the
	// engine has no fragment source configured.
	ErrNoSource = errors.New("docintel: no fragment source configured")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("docintel: invalid configuration")
)
