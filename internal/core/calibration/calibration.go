// Package calibration names every threshold and weight the scoring pipeline uses.
// Default reproduces the stock heuristics; a YAML file may override any subset
package calibration

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Params is the complete calibration set
type Params struct {
	NGram        NGram        `yaml:"ngram" json:"ngram"`
	Style        Style        `yaml:"style" json:"style"`
	Authenticity Authenticity `yaml:"authenticity" json:"authenticity"`
	Aggregate    Aggregate    `yaml:"aggregate" json:"aggregate"`
	Highlight    Highlight    `yaml:"highlight" json:"highlight"`
	Suggest      Suggest      `yaml:"suggest" json:"suggest"`
}

// NGram tunes the repetition analyzer
type NGram struct {
	MinTokenRunes    int     `yaml:"min_token_runes" json:"min_token_runes"` // shorter tokens are dropped
	MinTokens        int     `yaml:"min_tokens" json:"min_tokens"`
	N                int     `yaml:"n" json:"n"`
	RepetitionWeight float64 `yaml:"repetition_weight" json:"repetition_weight"`
	DiversityWeight  float64 `yaml:"diversity_weight" json:"diversity_weight"`
}

// Style tunes the sentence style analyzer
type Style struct {
	MinSentenceRunes  int     `yaml:"min_sentence_runes" json:"min_sentence_runes"`
	MinSentences      int     `yaml:"min_sentences" json:"min_sentences"`
	MinTokenRunes     int     `yaml:"min_token_runes" json:"min_token_runes"`
	UniformVariance   float64 `yaml:"uniform_variance" json:"uniform_variance"` // variance below this
	UniformMean       float64 `yaml:"uniform_mean" json:"uniform_mean"`         // and mean above this
	UniformBoost      float64 `yaml:"uniform_boost" json:"uniform_boost"`
	LowDiversity      float64 `yaml:"low_diversity" json:"low_diversity"`
	LowDiversityBoost float64 `yaml:"low_diversity_boost" json:"low_diversity_boost"`
	ClicheLimit       int     `yaml:"cliche_limit" json:"cliche_limit"`
	ClicheBoost       float64 `yaml:"cliche_boost" json:"cliche_boost"`
}

// Authenticity tunes the marker scorer
type Authenticity struct {
	Base           float64 `yaml:"base" json:"base"`
	PersonalBoost  float64 `yaml:"personal_boost" json:"personal_boost"`
	EmotionalBoost float64 `yaml:"emotional_boost" json:"emotional_boost"`
	DetailBoost    float64 `yaml:"detail_boost" json:"detail_boost"`
	DetailLimit    int     `yaml:"detail_limit" json:"detail_limit"`
}

// Aggregate holds the message thresholds in percent
type Aggregate struct {
	HighPlagiarism float64 `yaml:"high_plagiarism" json:"high_plagiarism"`
	HighAI         float64 `yaml:"high_ai" json:"high_ai"`
	Partial        float64 `yaml:"partial" json:"partial"`
}

// Highlight tunes match wrapping
type Highlight struct {
	MinMatchRunes int `yaml:"min_match_runes" json:"min_match_runes"`
}

// Suggest holds suggestion trigger and severity thresholds as fractions
type Suggest struct {
	Plagiarism     float64 `yaml:"plagiarism" json:"plagiarism"`
	PlagiarismHigh float64 `yaml:"plagiarism_high" json:"plagiarism_high"`
	AI             float64 `yaml:"ai" json:"ai"`
	AIHigh         float64 `yaml:"ai_high" json:"ai_high"`
}

// Default returns the stock calibration
func Default() Params {
	return Params{
		NGram: NGram{
			MinTokenRunes:    3,
			MinTokens:        10,
			N:                3,
			RepetitionWeight: 0.7,
			DiversityWeight:  0.3,
		},
		Style: Style{
			MinSentenceRunes:  10,
			MinSentences:      3,
			MinTokenRunes:     3,
			UniformVariance:   10,
			UniformMean:       15,
			UniformBoost:      0.3,
			LowDiversity:      0.6,
			LowDiversityBoost: 0.2,
			ClicheLimit:       2,
			ClicheBoost:       0.2,
		},
		Authenticity: Authenticity{
			Base:           0.5,
			PersonalBoost:  0.2,
			EmotionalBoost: 0.15,
			DetailBoost:    0.15,
			DetailLimit:    2,
		},
		Aggregate: Aggregate{
			HighPlagiarism: 70,
			HighAI:         70,
			Partial:        30,
		},
		Highlight: Highlight{MinMatchRunes: 6},
		Suggest: Suggest{
			Plagiarism:     0.3,
			PlagiarismHigh: 0.7,
			AI:             0.5,
			AIHigh:         0.8,
		},
	}
}

// Load reads a YAML file and merges it over Default
// an empty path returns Default unchanged
func Load(path string) (Params, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("calibration: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes YAML over Default and validates the result
// unknown keys are rejected so typos do not silently fall back to defaults
func Parse(b []byte) (Params, error) {
	p := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Params{}, fmt.Errorf("calibration: parse: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks ranges and orderings
func (p Params) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("calibration: "+format, args...))
		}
	}
	unit := func(name string, v float64) {
		check(v >= 0 && v <= 1, "%s must be within [0,1], got %v", name, v)
	}

	check(p.NGram.N >= 1, "ngram.n must be positive, got %d", p.NGram.N)
	check(p.NGram.MinTokens >= p.NGram.N, "ngram.min_tokens must be at least ngram.n")
	check(p.NGram.MinTokenRunes >= 0, "ngram.min_token_runes must not be negative")
	unit("ngram.repetition_weight", p.NGram.RepetitionWeight)
	unit("ngram.diversity_weight", p.NGram.DiversityWeight)

	check(p.Style.MinSentences >= 1, "style.min_sentences must be positive")
	check(p.Style.MinSentenceRunes >= 0, "style.min_sentence_runes must not be negative")
	check(p.Style.MinTokenRunes >= 0, "style.min_token_runes must not be negative")
	check(p.Style.ClicheLimit >= 0, "style.cliche_limit must not be negative")
	unit("style.low_diversity", p.Style.LowDiversity)
	unit("style.uniform_boost", p.Style.UniformBoost)
	unit("style.low_diversity_boost", p.Style.LowDiversityBoost)
	unit("style.cliche_boost", p.Style.ClicheBoost)

	unit("authenticity.base", p.Authenticity.Base)
	unit("authenticity.personal_boost", p.Authenticity.PersonalBoost)
	unit("authenticity.emotional_boost", p.Authenticity.EmotionalBoost)
	unit("authenticity.detail_boost", p.Authenticity.DetailBoost)
	check(p.Authenticity.DetailLimit >= 0, "authenticity.detail_limit must not be negative")

	check(p.Aggregate.Partial <= p.Aggregate.HighPlagiarism, "aggregate.partial must not exceed aggregate.high_plagiarism")
	check(p.Aggregate.Partial <= p.Aggregate.HighAI, "aggregate.partial must not exceed aggregate.high_ai")
	check(p.Aggregate.Partial >= 0 && p.Aggregate.HighPlagiarism <= 100 && p.Aggregate.HighAI <= 100,
		"aggregate thresholds must be percentages")

	check(p.Highlight.MinMatchRunes >= 1, "highlight.min_match_runes must be positive")

	unit("suggest.plagiarism", p.Suggest.Plagiarism)
	unit("suggest.plagiarism_high", p.Suggest.PlagiarismHigh)
	unit("suggest.ai", p.Suggest.AI)
	unit("suggest.ai_high", p.Suggest.AIHigh)
	check(p.Suggest.Plagiarism <= p.Suggest.PlagiarismHigh, "suggest.plagiarism must not exceed suggest.plagiarism_high")
	check(p.Suggest.AI <= p.Suggest.AIHigh, "suggest.ai must not exceed suggest.ai_high")

	return errors.Join(errs...)
}
