package docintel

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sachinrathod11/techstack-adobe-project-1a/rank"
)

// Config holds all configuration for the document intelligence engine.
type Config struct {
	// Score signal weights. They should sum to 1.
	SemanticWeight   float64 `json:"semantic_weight" yaml:"semantic_weight"`
	StructuralWeight float64 `json:"structural_weight" yaml:"structural_weight"`
	CrossDocWeight   float64 `json:"crossdoc_weight" yaml:"crossdoc_weight"`

	// Ranking output sizes.
	TopSections    int `json:"top_sections" yaml:"top_sections"`
	TopSubsections int `json:"top_subsections" yaml:"top_subsections"`

	// MinSectionTokens is the token count under which a section's score
	// is penalised as low-signal.
	MinSectionTokens int `json:"min_section_tokens" yaml:"min_section_tokens"`

	// BodyWindowChars caps the body text attached to each section.
	BodyWindowChars int `json:"body_window_chars" yaml:"body_window_chars"`

	// DefaultBodyFontSize is used when body-size statistics are degenerate.
	DefaultBodyFontSize float64 `json:"default_body_font_size" yaml:"default_body_font_size"`

	// Workers bounds the parallel per-document extraction phase.
	Workers int `json:"workers" yaml:"workers"`

	// DocumentTimeout is the per-document processing budget. A document
	// exceeding it is excluded from the ranking with a recorded reason.
	DocumentTimeout Duration `json:"document_timeout" yaml:"document_timeout"`
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() Config {
	return Config{
		SemanticWeight:      rank.DefaultWeights.Semantic,
		StructuralWeight:    rank.DefaultWeights.Structural,
		CrossDocWeight:      rank.DefaultWeights.CrossDoc,
		TopSections:         10,
		TopSubsections:      5,
		MinSectionTokens:    8,
		BodyWindowChars:     1200,
		DefaultBodyFontSize: 12.0,
		Workers:             4,
		DocumentTimeout:     Duration(30 * time.Second),
	}
}

// LoadConfig reads a YAML config file over the defaults, so partial files
// only override the fields they name.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Duration wraps time.Duration so YAML configs can use strings like "30s".
type Duration time.Duration

// UnmarshalYAML accepts either a duration string ("30s", "1m") or a bare
// number of seconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("parsing duration: %w", err)
	}
	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// MarshalYAML renders the duration in its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}
