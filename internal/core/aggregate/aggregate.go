// Package aggregate combines analyzer and collaborator signals into the final result.
// Plagiarism is the max over every plagiarism source and AI probability the max over
// every AI source, so one strong signal is never diluted by a weak one
package aggregate

import (
	"fmt"
	"math"

	"chimera/internal/core/authenticity"
	"chimera/internal/core/calibration"
	"chimera/internal/core/highlight"
	"chimera/internal/core/ngram"
	"chimera/internal/core/normalize"
	"chimera/internal/core/signal"
	"chimera/internal/core/style"
	"chimera/internal/core/suggest"
)

// Result messages, exactly one is selected per analysis
const (
	MessageHighPlagiarism = "표절 가능성이 높습니다. 출처를 명시하고 자신의 언어로 다시 작성해 보세요."
	MessageAIGenerated    = "AI가 작성한 글일 가능성이 높습니다. 개인적인 경험과 관점을 더해 보세요."
	MessagePartial        = "일부 개선이 필요합니다. 아래 제안을 참고해 보세요."
	MessageSound          = "전반적으로 독창적인 글입니다. 유사도 점수는 표절 판정이 아님을 유의하세요."
)

// Input is everything one aggregation consumes
type Input struct {
	Text         normalize.Text
	NGram        ngram.Result
	Style        style.Result
	Authenticity authenticity.Result
	External     signal.External
	Web          signal.Plagiarism
	Degraded     []string // components that fell back to defaults
}

// Signals echoes the per-source values that fed the result
type Signals struct {
	NGram              ngram.Result        `json:"ngram"`
	Style              style.Result        `json:"style"`
	Authenticity       authenticity.Result `json:"authenticity"`
	ExternalPlagiarism float64             `json:"external_plagiarism"`
	ExternalAI         float64             `json:"external_ai"`
	WebSearch          float64             `json:"web_search"`
	Degraded           []string            `json:"degraded,omitempty"`
}

// Result is the terminal artifact handed to renderers and the API
type Result struct {
	PlagiarismRate         int                  `json:"plagiarism_rate"` // integer percent
	AIProbability          float64              `json:"ai_probability"`
	AuthenticityScore      float64              `json:"authenticity_score"`
	ManipulationDetected   bool                 `json:"manipulation_detected"`
	ManipulationAttempts   []normalize.Finding  `json:"manipulation_attempts"`
	Sources                []string             `json:"sources"`
	HighlightedText        string               `json:"highlighted_text"`
	ImprovementSuggestions []suggest.Suggestion `json:"improvement_suggestions"`
	Message                string               `json:"message"`
	AIReasoning            string               `json:"ai_reasoning,omitempty"`
	Signals                Signals              `json:"signals"`
}

// Aggregator is safe for concurrent use
type Aggregator struct {
	p  calibration.Aggregate
	hl *highlight.Highlighter
	sg *suggest.Generator
}

// New constructs an Aggregator with its highlighter and suggestion generator
func New(p calibration.Params) *Aggregator {
	return &Aggregator{
		p:  p.Aggregate,
		hl: highlight.New(p.Highlight),
		sg: suggest.New(p.Suggest),
	}
}

// Aggregate merges the signals. The only error is malformed input state
func (a *Aggregator) Aggregate(in Input) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}

	plag := signal.Round2(math.Max(in.External.Plagiarism.Rate, math.Max(in.NGram.Rate, in.Web.Rate)))
	ai := signal.Round2(math.Max(in.External.AI.Probability, in.Style.AILikelihood))
	plagPct := int(math.Round(plag * 100))

	findings := in.Text.Findings
	if findings == nil {
		findings = []normalize.Finding{}
	}

	suggestions := a.sg.Generate(in.Text.Clean, signal.Plagiarism{Rate: plag}, signal.AI{Probability: ai})
	if len(in.Degraded) > 0 {
		suggestions = append([]suggest.Suggestion{suggest.Degraded(in.Degraded)}, suggestions...)
	}

	return Result{
		PlagiarismRate:       plagPct,
		AIProbability:        ai,
		AuthenticityScore:    in.Authenticity.Score,
		ManipulationDetected: len(findings) > 0,
		ManipulationAttempts: findings,
		Sources:              Sources(in.External.Plagiarism, in.Web),
		HighlightedText: a.hl.Highlight(in.Text.Clean,
			highlight.MatchSet{Category: highlight.CategoryPlagiarism, Matches: in.External.Plagiarism.Matches},
			highlight.MatchSet{Category: highlight.CategoryWeb, Matches: in.Web.Matches},
		),
		ImprovementSuggestions: suggestions,
		Message:                SelectMessage(float64(plagPct), ai*100, a.p),
		AIReasoning:            in.External.AI.Reasoning,
		Signals: Signals{
			NGram:              in.NGram,
			Style:              in.Style,
			Authenticity:       in.Authenticity,
			ExternalPlagiarism: in.External.Plagiarism.Rate,
			ExternalAI:         in.External.AI.Probability,
			WebSearch:          in.Web.Rate,
			Degraded:           in.Degraded,
		},
	}, nil
}

// SelectMessage picks the single message for percentage scores.
// Plagiarism is checked before AI and the first hit wins
func SelectMessage(plagPct, aiPct float64, p calibration.Aggregate) string {
	switch {
	case plagPct > p.HighPlagiarism:
		return MessageHighPlagiarism
	case aiPct > p.HighAI:
		return MessageAIGenerated
	case plagPct > p.Partial || aiPct > p.Partial:
		return MessagePartial
	default:
		return MessageSound
	}
}

// Sources is the first-seen ordered union of plagiarism sources,
// plagiarism match sources and web-search match sources
func Sources(plag, web signal.Plagiarism) []string {
	out := []string{}
	seen := map[string]struct{}{}
	add := func(s string) {
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, s := range plag.Sources {
		add(s)
	}
	for _, m := range plag.Matches {
		add(m.Source)
	}
	for _, m := range web.Matches {
		add(m.Source)
	}
	return out
}

func validate(in Input) error {
	checks := []struct {
		name string
		v    float64
	}{
		{"ngram rate", in.NGram.Rate},
		{"style likelihood", in.Style.AILikelihood},
		{"authenticity score", in.Authenticity.Score},
	}
	for _, c := range checks {
		if err := signal.CheckUnit(c.name, c.v); err != nil {
			return fmt.Errorf("aggregate: %w", err)
		}
	}
	if err := in.External.Validate(); err != nil {
		return fmt.Errorf("aggregate: external: %w", err)
	}
	if err := in.Web.Validate(); err != nil {
		return fmt.Errorf("aggregate: web search: %w", err)
	}
	return nil
}
