// Package normalize provides the deterministic text normalizer used before scoring
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Remove zero-width characters U+200B U+200C U+200D U+FEFF
// 3 Unicode NFD canonical decomposition
// 4 Collapse whitespace runs to a single ASCII space and trim
//
// Zero-width removal runs before decomposition so that marks separated by a
// removed character still end up in canonical order, keeping Normalize idempotent
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ZeroWidth is the suspicious invisible set in fixed check order
var ZeroWidth = []rune{'\u200B', '\u200C', '\u200D', '\uFEFF'}

// Normalizer is concurrency safe when used with the pools below
type Normalizer struct{}

// Text is the prepared form of one submission
// immutable after Prepare returns
type Text struct {
	Clean    string    `json:"clean"`
	Original string    `json:"original"`
	Findings []Finding `json:"manipulation_attempts"`
}

var zeroWidthSet = runes.Predicate(func(r rune) bool {
	for _, z := range ZeroWidth {
		if r == z {
			return true
		}
	}
	return false
})

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			runes.Remove(zeroWidthSet),
			norm.NFD,
		)
	},
}

// casers keep per-call state so they are pooled as well
var lowerPool = sync.Pool{
	New: func() any { return cases.Lower(language.Und) },
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the normalized form of s following the pipeline described above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-3 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		// chain only fails on malformed input which step 1 already removed
		ns = norm.NFD.String(s)
	}

	// 4 collapse whitespace and trim
	return collapseSpaces(ns)
}

// Prepare runs manipulation detection over the raw text and normalizes it
func (n *Normalizer) Prepare(raw string) Text {
	return Text{
		Clean:    n.Normalize(raw),
		Original: raw,
		Findings: DetectManipulation(raw),
	}
}

// Lower lower-cases s with Unicode-aware rules
func Lower(s string) string {
	if s == "" {
		return s
	}
	c := lowerPool.Get().(cases.Caser)
	out := c.String(s)
	lowerPool.Put(c)
	return out
}

// collapseSpaces converts every whitespace run (line breaks included) to a single ASCII space and trims the edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
