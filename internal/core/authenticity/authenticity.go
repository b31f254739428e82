// Package authenticity scores how personal and concrete a text reads
package authenticity

import (
	"chimera/internal/core/calibration"
	"chimera/internal/core/lexicon"
	"chimera/internal/core/signal"
)

// Factors are the raw marker counts behind a score
type Factors struct {
	Personal  int `json:"personal_markers"`
	Emotional int `json:"emotional_markers"`
	Details   int `json:"concrete_details"`
}

// Result is the scorer output
type Result struct {
	Score   float64 `json:"score"`
	Factors Factors `json:"factors"`
}

// Scorer is safe for concurrent use
type Scorer struct {
	p   calibration.Authenticity
	lex *lexicon.Lexicon
}

// New constructs a Scorer
func New(p calibration.Authenticity, lex *lexicon.Lexicon) *Scorer {
	return &Scorer{p: p, lex: lex}
}

// Neutral is the degraded result, the base score with no factors
func (s *Scorer) Neutral() Result { return Result{Score: s.p.Base} }

// Score rates clean text starting from the base score
func (s *Scorer) Score(clean string) Result {
	f := Factors{
		Personal:  s.lex.CountPersonal(clean),
		Emotional: s.lex.CountEmotional(clean),
		Details:   s.lex.CountDetails(clean),
	}

	score := s.p.Base
	if f.Personal > 0 {
		score += s.p.PersonalBoost
	}
	if f.Emotional > 0 {
		score += s.p.EmotionalBoost
	}
	if f.Details > s.p.DetailLimit {
		score += s.p.DetailBoost
	}

	return Result{Score: signal.Round2(signal.Clamp01(score)), Factors: f}
}
