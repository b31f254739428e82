// Package signal holds the value types analyzers and external collaborators
// exchange on their way into aggregation
package signal

import (
	"errors"
	"fmt"
	"math"
)

// Severity grades findings and suggestions
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ErrNotConfigured is returned by optional collaborators that have no endpoint or key
var ErrNotConfigured = errors.New("signal: collaborator not configured")

// MatchSpan is a literal piece of the analyzed text attributed to a source
type MatchSpan struct {
	Text       string  `json:"text"`
	Source     string  `json:"source"`
	Similarity float64 `json:"similarity"`
}

// Plagiarism is a similarity rate with the spans and sources backing it
type Plagiarism struct {
	Rate    float64     `json:"rate"`
	Matches []MatchSpan `json:"matches,omitempty"`
	Sources []string    `json:"sources,omitempty"`
}

// AI is an AI generation probability with the model's reasoning
type AI struct {
	Probability float64 `json:"probability"`
	Reasoning   string  `json:"reasoning,omitempty"`
}

// External is what a remote detector returns for one text
type External struct {
	Plagiarism Plagiarism `json:"plagiarism"`
	AI         AI         `json:"ai"`
}

// Validate reports whether the rate and every span similarity are finite values in [0,1]
func (p Plagiarism) Validate() error {
	if err := CheckUnit("plagiarism rate", p.Rate); err != nil {
		return err
	}
	for i, m := range p.Matches {
		if err := CheckUnit(fmt.Sprintf("match %d similarity", i), m.Similarity); err != nil {
			return err
		}
	}
	return nil
}

// Validate reports whether the probability is a finite value in [0,1]
func (a AI) Validate() error { return CheckUnit("ai probability", a.Probability) }

// Validate checks both halves
func (e External) Validate() error {
	if err := e.Plagiarism.Validate(); err != nil {
		return err
	}
	return e.AI.Validate()
}

// CheckUnit rejects NaN, infinities and values outside [0,1]
func CheckUnit(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("signal: %s is not finite", name)
	}
	if v < 0 || v > 1 {
		return fmt.Errorf("signal: %s out of range: %v", name, v)
	}
	return nil
}

// Clamp01 bounds v to [0,1], NaN becomes 0
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 { return math.Round(v*100) / 100 }
