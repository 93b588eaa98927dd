// Package persona models the professional profile and job-to-be-done that
// drive relevance scoring, and encodes them into a weighted query.
package persona

// ExperienceLevel grades how senior the persona is in its field.
type ExperienceLevel string

const (
	Novice       ExperienceLevel = "novice"
	Intermediate ExperienceLevel = "intermediate"
	Expert       ExperienceLevel = "expert"
)

// Valid reports whether the level is one of the known grades. The empty
// string is accepted and treated as intermediate.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case Novice, Intermediate, Expert, "":
		return true
	}
	return false
}

// Persona is the role and expertise profile for whom relevance is scored.
type Persona struct {
	Role            string          `json:"role" yaml:"role"`
	Expertise       []string        `json:"expertise" yaml:"expertise"`
	ExperienceLevel ExperienceLevel `json:"experience_level" yaml:"experience_level"`
}

// Query is the ephemeral weighted term representation of one persona plus
// job-to-be-done. It exists only for the duration of a ranking request.
type Query struct {
	Weights    map[string]float64
	DomainHint string // content-type hint from the dominant domain vocabulary
	norm       float64
}

// Norm is the Euclidean norm of the weight vector.
func (q Query) Norm() float64 { return q.norm }

// Weight returns the weight of a term, zero when absent.
func (q Query) Weight(term string) float64 { return q.Weights[term] }
