package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chimera/internal/core/calibration"
	"chimera/internal/core/signal"
	analysisdom "chimera/internal/services/analysis/domain"
	historydom "chimera/internal/services/history/domain"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// palette resolves styles against the writer so pipes and files stay plain
type palette struct {
	title, label, muted lipgloss.Style
	high, mid, low      lipgloss.Style
	plag, web           lipgloss.Style
	box                 lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	return palette{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		label: r.NewStyle().Width(14).Foreground(lipgloss.Color("#A8A8A8")),
		muted: r.NewStyle().Faint(true),
		high:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87")),
		mid:   r.NewStyle().Foreground(lipgloss.Color("#FFB86C")),
		low:   r.NewStyle().Foreground(lipgloss.Color("#50FA7B")),
		plag:  r.NewStyle().Underline(true).Foreground(lipgloss.Color("#FF5F87")),
		web:   r.NewStyle().Underline(true).Foreground(lipgloss.Color("#8BE9FD")),
		box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1),
	}
}

// level colors a 0..100 score against the aggregate thresholds
func (p palette) level(pct float64, a calibration.Aggregate) lipgloss.Style {
	switch {
	case pct > a.HighPlagiarism:
		return p.high
	case pct > a.Partial:
		return p.mid
	default:
		return p.low
	}
}

func (p palette) severity(s signal.Severity) lipgloss.Style {
	switch s {
	case signal.SeverityHigh:
		return p.high
	case signal.SeverityMedium:
		return p.mid
	default:
		return p.muted
	}
}

func renderReport(w io.Writer, rep analysisdom.Report, params calibration.Params) error {
	p := newPalette(w)
	var b strings.Builder

	line := func(label, value string) {
		b.WriteString(p.label.Render(label) + value + "\n")
	}

	b.WriteString(p.title.Render("Chimera report") + " " + p.muted.Render(rep.ID) + "\n\n")

	plag := float64(rep.PlagiarismRate)
	ai := rep.AIProbability * 100
	line("Plagiarism", p.level(plag, params.Aggregate).Render(fmt.Sprintf("%d%%", rep.PlagiarismRate)))
	line("AI", p.level(ai, params.Aggregate).Render(fmt.Sprintf("%.0f%%", ai)))
	line("Authenticity", p.level(100-rep.AuthenticityScore*100, params.Aggregate).Render(fmt.Sprintf("%.2f", rep.AuthenticityScore)))
	line("Characters", fmt.Sprintf("%d", rep.CharCount))
	if rep.ManipulationDetected {
		line("Manipulation", p.high.Render(fmt.Sprintf("%d finding(s)", len(rep.ManipulationAttempts))))
		for _, f := range rep.ManipulationAttempts {
			b.WriteString("  " + p.severity(f.Severity).Render("["+string(f.Severity)+"]") + " " + f.Description + "\n")
		}
	} else {
		line("Manipulation", p.low.Render("none"))
	}
	if len(rep.Sources) > 0 {
		line("Sources", strings.Join(rep.Sources, ", "))
	}
	if rep.AIReasoning != "" {
		line("AI reasoning", rep.AIReasoning)
	}
	if len(rep.Signals.Degraded) > 0 {
		line("Degraded", p.mid.Render(strings.Join(rep.Signals.Degraded, ", ")))
	}

	b.WriteString("\n" + p.box.Render(rep.Message) + "\n")

	if len(rep.ImprovementSuggestions) > 0 {
		b.WriteString("\n" + p.title.Render("Suggestions") + "\n")
		for _, s := range rep.ImprovementSuggestions {
			b.WriteString(p.severity(s.Severity).Render("["+string(s.Severity)+"]") + " " + s.Title + "\n")
			if s.Description != "" {
				b.WriteString("  " + s.Description + "\n")
			}
			for _, m := range s.Methods {
				b.WriteString("  - " + m.Name + ": " + m.Description + "\n")
				if m.Example != "" {
					b.WriteString("    " + p.muted.Render(m.Example) + "\n")
				}
			}
		}
	}

	if strings.Contains(rep.HighlightedText, "<mark") {
		b.WriteString("\n" + p.title.Render("Matched passages") + "\n")
		b.WriteString(p.marks(rep.HighlightedText) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

var markRe = regexp.MustCompile(`(?s)<mark class="(hl-[a-z]+)"[^>]*>(.*?)</mark>`)

// marks swaps highlighter tags for terminal styles
func (p palette) marks(s string) string {
	return markRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := markRe.FindStringSubmatch(m)
		if sub[1] == "hl-web" {
			return p.web.Render(sub[2])
		}
		return p.plag.Render(sub[2])
	})
}

func renderEntries(w io.Writer, entries []historydom.Entry) {
	p := newPalette(w)
	head := p.label.Render
	fmt.Fprintln(w, head("CREATED")+head("ID")+head("PLAG")+head("AI")+head("AUTH"))
	for _, e := range entries {
		id := e.ID
		if len(id) > 12 {
			id = id[:12]
		}
		row := fmt.Sprintf("%-14s%-14s%-14s%-14s%.2f",
			e.CreatedAt.Local().Format("01-02 15:04"),
			id,
			fmt.Sprintf("%d%%", e.PlagiarismRate),
			fmt.Sprintf("%.0f%%", e.AIProbability*100),
			e.AuthenticityScore,
		)
		if e.ManipulationDetected {
			row += " " + p.high.Render("!")
		}
		fmt.Fprintln(w, row)
	}
}
