// Package suggest turns aggregated scores into ordered, severity-tagged writing suggestions
package suggest

import (
	"fmt"
	"strings"

	"chimera/internal/core/calibration"
	"chimera/internal/core/signal"
)

// Type classifies a suggestion
type Type string

const (
	TypePlagiarism Type = "plagiarism"
	TypeAI         Type = "ai_detection"
	TypeGeneral    Type = "general"
	TypeError      Type = "error"
)

// Method is one named remediation with an example
type Method struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Example     string `json:"example,omitempty"`
}

// Suggestion is one improvement card
type Suggestion struct {
	Type        Type            `json:"type"`
	Severity    signal.Severity `json:"severity"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Methods     []Method        `json:"methods"`
}

var plagiarismMethods = []Method{
	{
		Name:        "출처 명시",
		Description: "다른 자료에서 가져온 내용은 인용 부호와 함께 출처를 분명히 밝히세요.",
		Example:     "홍길동(2020)에 따르면 \"...\"라고 한다.",
	},
	{
		Name:        "패러프레이징",
		Description: "원문의 핵심 의미는 유지하되 문장 구조와 어휘를 자신의 언어로 바꿔 쓰세요.",
		Example:     "원문: 기후 변화는 심각한 위협이다 → 수정: 지구 온난화가 우리 삶을 점점 위태롭게 만들고 있다.",
	},
	{
		Name:        "개인적 관점 추가",
		Description: "인용한 내용에 대한 자신의 해석이나 비판적 의견을 덧붙이세요.",
		Example:     "이 주장은 설득력이 있지만, 내가 경험한 사례를 보면 다른 측면도 있다.",
	},
}

var aiMethods = []Method{
	{
		Name:        "개인 경험 추가",
		Description: "직접 겪은 일이나 관찰한 구체적인 사례를 넣어 글에 고유한 목소리를 더하세요.",
		Example:     "작년 여름 봉사활동에서 만난 아이들을 보며 처음으로 교육 격차를 실감했다.",
	},
	{
		Name:        "감정 표현",
		Description: "상황에 대한 자신의 감정과 느낌을 솔직하게 표현하세요.",
		Example:     "발표 직전에는 손이 떨릴 만큼 긴장했지만, 끝나고 나니 뿌듯했다.",
	},
	{
		Name:        "문장 구조 다양화",
		Description: "짧은 문장과 긴 문장을 섞고, 질문이나 감탄문을 활용해 리듬을 만드세요.",
		Example:     "정말 그럴까? 나는 조금 다르게 생각한다.",
	},
	{
		Name:        "비판적 분석",
		Description: "주장을 그대로 나열하기보다 장단점을 따져 보고 자신의 결론을 제시하세요.",
		Example:     "이 방법은 효율적이지만 비용 문제를 간과하고 있다는 한계가 있다.",
	},
}

var generalMethods = []Method{
	{
		Name:        "명확한 주제문",
		Description: "각 문단의 첫 문장에서 문단의 핵심 내용을 분명히 밝히세요.",
		Example:     "이 글에서는 원격 근무가 생산성에 미치는 영향을 세 가지 측면에서 살펴본다.",
	},
	{
		Name:        "논리적 연결",
		Description: "문단과 문단 사이의 흐름이 자연스럽게 이어지는지 확인하세요.",
	},
	{
		Name:        "퇴고",
		Description: "소리 내어 읽으며 어색한 표현과 맞춤법을 점검하세요.",
	},
}

// Generator is safe for concurrent use
type Generator struct {
	p calibration.Suggest
}

// New constructs a Generator
func New(p calibration.Suggest) *Generator { return &Generator{p: p} }

// Generate evaluates every rule independently and returns suggestions in
// plagiarism, ai_detection, general order; the general suggestion is always present
func (g *Generator) Generate(clean string, plag signal.Plagiarism, ai signal.AI) []Suggestion {
	out := make([]Suggestion, 0, 3)

	if plag.Rate > g.p.Plagiarism {
		sev := signal.SeverityMedium
		if plag.Rate > g.p.PlagiarismHigh {
			sev = signal.SeverityHigh
		}
		out = append(out, Suggestion{
			Type:        TypePlagiarism,
			Severity:    sev,
			Title:       "표절 위험 줄이기",
			Description: fmt.Sprintf("다른 자료와의 유사도가 %.0f%%로 측정되었습니다. 인용과 재구성이 필요합니다.", plag.Rate*100),
			Methods:     clone(plagiarismMethods),
		})
	}

	if ai.Probability > g.p.AI {
		sev := signal.SeverityMedium
		if ai.Probability > g.p.AIHigh {
			sev = signal.SeverityHigh
		}
		out = append(out, Suggestion{
			Type:        TypeAI,
			Severity:    sev,
			Title:       "AI 작성 흔적 줄이기",
			Description: fmt.Sprintf("AI가 작성했을 가능성이 %.0f%%로 추정됩니다. 자신만의 목소리를 더해 보세요.", ai.Probability*100),
			Methods:     clone(aiMethods),
		})
	}

	out = append(out, Suggestion{
		Type:        TypeGeneral,
		Severity:    signal.SeverityLow,
		Title:       "글쓰기 완성도 높이기",
		Description: fmt.Sprintf("현재 글은 %d개의 단어로 구성되어 있습니다. 다음 방법으로 완성도를 높여 보세요.", len(strings.Fields(clean))),
		Methods:     clone(generalMethods),
	})
	return out
}

// Degraded reports which parts of the pipeline fell back to defaults
func Degraded(notes []string) Suggestion {
	return Suggestion{
		Type:        TypeError,
		Severity:    signal.SeverityLow,
		Title:       "일부 분석을 완료하지 못했습니다",
		Description: "다음 항목은 기본값으로 대체되었습니다: " + strings.Join(notes, ", "),
		Methods: []Method{{
			Name:        "다시 분석하기",
			Description: "잠시 후 다시 시도하면 전체 결과를 받을 수 있습니다.",
		}},
	}
}

func clone(ms []Method) []Method { return append([]Method(nil), ms...) }
