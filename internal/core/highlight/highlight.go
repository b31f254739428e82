// Package highlight wraps matched spans in inline <mark> elements.
// Passes run in match-set order and each pass sees the output of the previous one,
// so overlapping spans layer and the last writer wins; spans are not reconciled
package highlight

import (
	"html"
	"regexp"
	"unicode/utf8"

	"chimera/internal/core/calibration"
	"chimera/internal/core/signal"
)

// Category selects the visual class of a match set
type Category string

const (
	CategoryPlagiarism Category = "plagiarism"
	CategoryWeb        Category = "web"
)

// Class returns the CSS class carried by marks of this category
func (c Category) Class() string {
	if c == CategoryWeb {
		return "hl-web"
	}
	return "hl-plagiarism"
}

// MatchSet is an ordered group of spans sharing one category
type MatchSet struct {
	Category Category
	Matches  []signal.MatchSpan
}

// Highlighter is safe for concurrent use
type Highlighter struct {
	minRunes int
}

// New constructs a Highlighter
func New(p calibration.Highlight) *Highlighter { return &Highlighter{minRunes: p.MinMatchRunes} }

// Highlight wraps every case-insensitive literal occurrence of every qualifying span
func (h *Highlighter) Highlight(text string, sets ...MatchSet) string {
	out := text
	for _, set := range sets {
		for _, m := range set.Matches {
			if utf8.RuneCountInString(m.Text) < h.minRunes {
				continue
			}
			re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(m.Text))
			if err != nil {
				continue
			}
			open := openTag(set.Category, m.Source)
			out = re.ReplaceAllStringFunc(out, func(s string) string {
				return open + s + "</mark>"
			})
		}
	}
	return out
}

func openTag(c Category, source string) string {
	if c == CategoryWeb {
		return `<mark class="` + c.Class() + `">`
	}
	return `<mark class="` + c.Class() + `" data-source="` + html.EscapeString(source) + `">`
}
