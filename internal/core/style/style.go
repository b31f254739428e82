// Package style estimates AI likelihood from sentence uniformity, lexical diversity
// and transition-phrase density
package style

import (
	"math"
	"strings"
	"unicode/utf8"

	"chimera/internal/core/calibration"
	"chimera/internal/core/lexicon"
	"chimera/internal/core/ngram"
	"chimera/internal/core/signal"
)

// Analysis is the supporting payload of a Result
type Analysis struct {
	MeanLength       float64 `json:"mean_length"`
	Variance         float64 `json:"variance"`
	LexicalDiversity float64 `json:"lexical_diversity"`
	ClicheCount      int     `json:"cliche_count"`
	SentenceCount    int     `json:"sentence_count"`
}

// Result is the analyzer output
type Result struct {
	AILikelihood float64  `json:"ai_likelihood"`
	Analysis     Analysis `json:"analysis"`
}

// Analyzer is safe for concurrent use
type Analyzer struct {
	p   calibration.Style
	lex *lexicon.Lexicon
}

// New constructs an Analyzer
func New(p calibration.Style, lex *lexicon.Lexicon) *Analyzer {
	return &Analyzer{p: p, lex: lex}
}

// Analyze scores clean text
// fewer than MinSentences qualifying sentences yields zero likelihood
func (a *Analyzer) Analyze(clean string) Result {
	sentences := Sentences(clean, a.p.MinSentenceRunes)
	if len(sentences) < a.p.MinSentences {
		return Result{Analysis: Analysis{SentenceCount: len(sentences)}}
	}

	lengths := make([]float64, len(sentences))
	var sum float64
	for i, s := range sentences {
		lengths[i] = float64(len(strings.Fields(s)))
		sum += lengths[i]
	}
	mean := sum / float64(len(lengths))
	var sq float64
	for _, l := range lengths {
		d := l - mean
		sq += d * d
	}
	variance := sq / float64(len(lengths))

	diversity := Diversity(clean, a.p.MinTokenRunes)
	cliches := a.lex.CountCliches(clean)

	var score float64
	if variance < a.p.UniformVariance && mean > a.p.UniformMean {
		score += a.p.UniformBoost
	}
	if diversity < a.p.LowDiversity {
		score += a.p.LowDiversityBoost
	}
	if cliches > a.p.ClicheLimit {
		score += a.p.ClicheBoost
	}

	return Result{
		AILikelihood: signal.Round2(math.Min(score, 1)),
		Analysis: Analysis{
			MeanLength:       math.Round(mean),
			Variance:         math.Round(variance),
			LexicalDiversity: signal.Round2(diversity),
			ClicheCount:      cliches,
			SentenceCount:    len(sentences),
		},
	}
}

// Sentences splits on . ! ? and keeps trimmed sentences of at least minRunes runes
func Sentences(clean string, minRunes int) []string {
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if utf8.RuneCountInString(p) >= minRunes {
			out = append(out, p)
		}
	}
	return out
}

// Diversity is the unique token ratio over qualifying tokens, 1 when there are none
func Diversity(clean string, minRunes int) float64 {
	toks := ngram.Tokens(clean, minRunes)
	if len(toks) == 0 {
		return 1
	}
	uniq := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		uniq[t] = struct{}{}
	}
	return float64(len(uniq)) / float64(len(toks))
}
