package normalize

import (
	"fmt"
	"strings"

	"chimera/internal/core/signal"
)

// FindingType classifies a manipulation finding
type FindingType string

const (
	FindingUnicode FindingType = "unicode_manipulation"
	FindingSpacing FindingType = "spacing_manipulation"
)

// Finding is one detected evasion marker in the raw text
type Finding struct {
	Type        FindingType     `json:"type"`
	Description string          `json:"description"`
	Severity    signal.Severity `json:"severity"`
}

// DetectManipulation scans raw, pre-normalization text for evasion markers.
// Findings follow the fixed check order: one per zero-width character kind present,
// in ZeroWidth order, then a single spacing finding for a double space or a tab
func DetectManipulation(raw string) []Finding {
	var out []Finding
	for _, z := range ZeroWidth {
		if strings.ContainsRune(raw, z) {
			out = append(out, Finding{
				Type:        FindingUnicode,
				Description: fmt.Sprintf("invisible character %U found", z),
				Severity:    signal.SeverityHigh,
			})
		}
	}
	if strings.Contains(raw, "  ") || strings.ContainsRune(raw, '\t') {
		out = append(out, Finding{
			Type:        FindingSpacing,
			Description: "irregular spacing found (double spaces or tabs)",
			Severity:    signal.SeverityMedium,
		})
	}
	return out
}
