// Package lexicon loads the marker lists used by the style and authenticity scorers
// from the embedded lexicon.json. Terms and patterns are decomposed to NFD at load
// time so they line up with normalized text (Hangul syllables become jamo)
package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"chimera/internal/core/normalize"
)

//go:embed lexicon.json
var embedded []byte

// Mode selects how a term group is matched
type Mode string

const (
	// ModeWord matches whole words or whole word sequences
	ModeWord Mode = "word"
	// ModeSubstring matches anywhere, including inside words
	ModeSubstring Mode = "substring"
)

type rawGroup struct {
	Lang  string   `json:"lang"`
	Mode  Mode     `json:"mode"`
	Terms []string `json:"terms"`
}

type rawPattern struct {
	Lang    string `json:"lang"`
	Pattern string `json:"pattern"`
}

type rawLexicon struct {
	Version   int            `json:"version"`
	Meta      map[string]any `json:"meta"`
	Cliches   []rawGroup     `json:"cliches"`
	Personal  []rawGroup     `json:"personal"`
	Emotional []rawGroup     `json:"emotional"`
	Details   []rawPattern   `json:"details"`
}

// Group is a compiled term list for one language
type Group struct {
	Lang  string
	Mode  Mode
	Terms []string

	words [][]string // ModeWord only, Terms split into words
	open  []bool     // ModeSubstring only, term ends on a Hangul vowel jamo
}

// Pattern is a compiled concrete-detail pattern
type Pattern struct {
	Lang string
	Re   *regexp.Regexp
}

// Lexicon is the compiled marker set, safe for concurrent use
type Lexicon struct {
	Version   int
	Cliches   []Group
	Personal  []Group
	Emotional []Group
	Details   []Pattern
}

// Load returns the lexicon compiled from the embedded lexicon.json
func Load() (*Lexicon, error) { return Parse(embedded) }

// MustLoad is Load for package init paths, it panics on a broken embedded file
func MustLoad() *Lexicon {
	l, err := Load()
	if err != nil {
		panic(err)
	}
	return l
}

// Parse compiles a lexicon document
func Parse(b []byte) (*Lexicon, error) {
	var rl rawLexicon
	if err := json.Unmarshal(b, &rl); err != nil {
		return nil, fmt.Errorf("lexicon: parse: %w", err)
	}
	if rl.Version != 1 {
		return nil, fmt.Errorf("lexicon: unsupported version %d (want 1)", rl.Version)
	}

	l := &Lexicon{Version: rl.Version}
	var err error
	if l.Cliches, err = compileGroups("cliches", rl.Cliches); err != nil {
		return nil, err
	}
	if l.Personal, err = compileGroups("personal", rl.Personal); err != nil {
		return nil, err
	}
	if l.Emotional, err = compileGroups("emotional", rl.Emotional); err != nil {
		return nil, err
	}
	for _, p := range rl.Details {
		src := norm.NFD.String(strings.TrimSpace(p.Pattern))
		if src == "" {
			continue
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("lexicon: compile %q: %w", p.Pattern, err)
		}
		l.Details = append(l.Details, Pattern{Lang: p.Lang, Re: re})
	}
	return l, nil
}

func compileGroups(kind string, in []rawGroup) ([]Group, error) {
	out := make([]Group, 0, len(in))
	for _, g := range in {
		switch g.Mode {
		case ModeWord, ModeSubstring:
		default:
			return nil, fmt.Errorf("lexicon: %s/%s: unknown mode %q", kind, g.Lang, g.Mode)
		}
		grp := Group{Lang: g.Lang, Mode: g.Mode}
		seen := make(map[string]struct{}, len(g.Terms))
		for _, t := range g.Terms {
			t = norm.NFD.String(normalize.Lower(strings.TrimSpace(t)))
			if t == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			grp.Terms = append(grp.Terms, t)
			switch g.Mode {
			case ModeWord:
				grp.words = append(grp.words, words(t))
			case ModeSubstring:
				last, _ := utf8.DecodeLastRuneInString(t)
				grp.open = append(grp.open, isVowelJamo(last))
			}
		}
		out = append(out, grp)
	}
	return out, nil
}

// CountCliches counts every non-overlapping occurrence of every cliche term
func (l *Lexicon) CountCliches(text string) int { return count(l.Cliches, text) }

// CountPersonal counts first-person marker occurrences
func (l *Lexicon) CountPersonal(text string) int { return count(l.Personal, text) }

// CountEmotional counts emotional marker occurrences
func (l *Lexicon) CountEmotional(text string) int { return count(l.Emotional, text) }

// CountDetails sums the matches of every concrete-detail pattern
func (l *Lexicon) CountDetails(text string) int {
	n := 0
	for _, p := range l.Details {
		n += len(p.Re.FindAllStringIndex(text, -1))
	}
	return n
}

func count(groups []Group, text string) int {
	if text == "" {
		return 0
	}
	lower := normalize.Lower(text)
	var toks []string
	n := 0
	for _, g := range groups {
		switch g.Mode {
		case ModeSubstring:
			for i, t := range g.Terms {
				if g.open[i] {
					n += countClosed(lower, t)
				} else {
					n += strings.Count(lower, t)
				}
			}
		case ModeWord:
			if toks == nil {
				toks = words(lower)
			}
			for _, w := range g.words {
				n += countSeq(toks, w)
			}
		}
	}
	return n
}

// countClosed counts non-overlapping occurrences of t that end on a syllable
// boundary. t ends on a vowel jamo, so a final consonant right after it means
// the match is cut out of a larger syllable (게다가 inside 게다간)
func countClosed(s, t string) int {
	n := 0
	for {
		i := strings.Index(s, t)
		if i < 0 {
			return n
		}
		next, _ := utf8.DecodeRuneInString(s[i+len(t):])
		if isFinalJamo(next) {
			_, size := utf8.DecodeRuneInString(s[i:])
			s = s[i+size:]
			continue
		}
		n++
		s = s[i+len(t):]
	}
}

func isVowelJamo(r rune) bool { return r >= 0x1161 && r <= 0x1175 }

func isFinalJamo(r rune) bool { return r >= 0x11A8 && r <= 0x11C2 }

// words splits on anything that is not a letter, digit, apostrophe or combining mark
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || r == '\'' || r == '\u2019')
	})
}

func countSeq(toks, seq []string) int {
	if len(seq) == 0 || len(toks) < len(seq) {
		return 0
	}
	n := 0
outer:
	for i := 0; i+len(seq) <= len(toks); i++ {
		for j, w := range seq {
			if toks[i+j] != w {
				continue outer
			}
		}
		n++
	}
	return n
}
