// Package ngram scores word n-gram repetition and lexical diversity over normalized text
package ngram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"chimera/internal/core/calibration"
	"chimera/internal/core/normalize"
	"chimera/internal/core/signal"
)

// Notes reported in Stats when the rate is not computed
const (
	NoteTooShort = "text too short"
	NoteFailed   = "analysis failed"
)

// Stats is the supporting payload of a Result
type Stats struct {
	TokenCount   int    `json:"token_count"`
	NGramCount   int    `json:"ngram_count"`
	UniqueNGrams int    `json:"unique_ngrams"`
	TTR          string `json:"ttr,omitempty"`
	Repetition   string `json:"repetition,omitempty"`
	Note         string `json:"note,omitempty"`
}

// Result is the analyzer output, Rate is the suspicion rate in [0,1]
type Result struct {
	Rate           float64 `json:"rate"`
	RepetitionRate float64 `json:"repetition_rate"`
	TTR            float64 `json:"ttr"`
	Stats          Stats   `json:"stats"`
}

// Failed is the degraded result used when analysis could not complete
func Failed() Result { return Result{Stats: Stats{Note: NoteFailed}} }

// Analyzer is stateless after construction and safe for concurrent use
type Analyzer struct {
	p calibration.NGram
}

// New constructs an Analyzer
func New(p calibration.NGram) *Analyzer { return &Analyzer{p: p} }

// Analyze computes the suspicion rate for clean text
func (a *Analyzer) Analyze(clean string) Result {
	toks := Tokens(clean, a.p.MinTokenRunes)
	if len(toks) < a.p.MinTokens {
		return Result{Stats: Stats{TokenCount: len(toks), Note: NoteTooShort}}
	}

	n := a.p.N
	total := len(toks) - n + 1
	grams := make(map[string]struct{}, total)
	for i := 0; i < total; i++ {
		grams[strings.Join(toks[i:i+n], "\x00")] = struct{}{}
	}
	uniq := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		uniq[t] = struct{}{}
	}

	repetition := 1 - float64(len(grams))/float64(total)
	ttr := float64(len(uniq)) / float64(len(toks))
	rate := signal.Clamp01(a.p.RepetitionWeight*repetition + a.p.DiversityWeight*(1-ttr))

	return Result{
		Rate:           rate,
		RepetitionRate: repetition,
		TTR:            ttr,
		Stats: Stats{
			TokenCount:   len(toks),
			NGramCount:   total,
			UniqueNGrams: len(grams),
			TTR:          percent(ttr),
			Repetition:   percent(repetition),
		},
	}
}

// Tokens lower-cases, splits on whitespace and keeps tokens of at least minRunes runes
func Tokens(clean string, minRunes int) []string {
	fields := strings.Fields(normalize.Lower(clean))
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minRunes {
			out = append(out, f)
		}
	}
	return out
}

func percent(v float64) string { return fmt.Sprintf("%.1f%%", v*100) }
