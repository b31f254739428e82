package signal

import (
	"math"
	"testing"
)

func TestClamp01(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{3, 1},
		{math.NaN(), 0},
		{math.Inf(1), 1},
	}
	for _, c := range cases {
		if got := Clamp01(c.in); got != c.want {
			t.Fatalf("Clamp01(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(0.456); got != 0.46 {
		t.Fatalf("Round2(0.456) = %v", got)
	}
	if got := Round2(0.5 + 0.2 + 0.15 + 0.15); got != 1 {
		t.Fatalf("Round2(sum) = %v", got)
	}
}

func TestValidate(t *testing.T) {
	ok := External{
		Plagiarism: Plagiarism{Rate: 0.4, Matches: []MatchSpan{{Text: "abc", Similarity: 0.9}}},
		AI:         AI{Probability: 0.1},
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []External{
		{Plagiarism: Plagiarism{Rate: math.NaN()}},
		{Plagiarism: Plagiarism{Rate: 1.5}},
		{Plagiarism: Plagiarism{Matches: []MatchSpan{{Similarity: -1}}}},
		{AI: AI{Probability: math.Inf(-1)}},
	}
	for i, e := range bad {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}
