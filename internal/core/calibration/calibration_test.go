package calibration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_StockValues(t *testing.T) {
	p := Default()
	if err := p.Validate(); err != nil {
		t.Fatalf("default must validate: %v", err)
	}
	if p.NGram.MinTokens != 10 || p.NGram.N != 3 || p.NGram.MinTokenRunes != 3 {
		t.Fatalf("ngram defaults drifted: %+v", p.NGram)
	}
	if p.NGram.RepetitionWeight != 0.7 || p.NGram.DiversityWeight != 0.3 {
		t.Fatalf("ngram weights drifted: %+v", p.NGram)
	}
	if p.Style.UniformVariance != 10 || p.Style.UniformMean != 15 || p.Style.LowDiversity != 0.6 || p.Style.ClicheLimit != 2 {
		t.Fatalf("style defaults drifted: %+v", p.Style)
	}
	if p.Authenticity.Base != 0.5 || p.Authenticity.PersonalBoost != 0.2 || p.Authenticity.DetailLimit != 2 {
		t.Fatalf("authenticity defaults drifted: %+v", p.Authenticity)
	}
	if p.Aggregate.HighPlagiarism != 70 || p.Aggregate.HighAI != 70 || p.Aggregate.Partial != 30 {
		t.Fatalf("aggregate defaults drifted: %+v", p.Aggregate)
	}
	if p.Highlight.MinMatchRunes != 6 {
		t.Fatalf("highlight default drifted: %+v", p.Highlight)
	}
	if p.Suggest != (Suggest{Plagiarism: 0.3, PlagiarismHigh: 0.7, AI: 0.5, AIHigh: 0.8}) {
		t.Fatalf("suggest defaults drifted: %+v", p.Suggest)
	}
}

func TestParse_MergesOverDefaults(t *testing.T) {
	p, err := Parse([]byte("style:\n  cliche_limit: 5\nhighlight:\n  min_match_runes: 8\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Style.ClicheLimit != 5 || p.Highlight.MinMatchRunes != 8 {
		t.Fatalf("overrides not applied: %+v %+v", p.Style, p.Highlight)
	}
	if p.Style.UniformMean != 15 || p.NGram.MinTokens != 10 {
		t.Fatalf("untouched fields must keep defaults: %+v %+v", p.Style, p.NGram)
	}
}

func TestParse_Empty(t *testing.T) {
	p, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil): %v", err)
	}
	if p != Default() {
		t.Fatalf("empty document must yield defaults")
	}
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "style:\n  clichee_limit: 1\n",
		"out of range": "suggest:\n  ai: 1.5\n",
		"inverted":     "suggest:\n  plagiarism: 0.9\n  plagiarism_high: 0.5\n",
		"bad n":        "ngram:\n  n: 0\n",
		"syntax":       "style: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatalf("expected error for %q", doc)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	p, err := Load("")
	if err != nil || p != Default() {
		t.Fatalf("Load(\"\") = %+v, %v", p, err)
	}

	path := filepath.Join(t.TempDir(), "calibration.yaml")
	if err := os.WriteFile(path, []byte("aggregate:\n  partial: 25\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	p, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Aggregate.Partial != 25 {
		t.Fatalf("partial = %v", p.Aggregate.Partial)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "calibration: read") {
		t.Fatalf("expected read error, got %v", err)
	}
}
