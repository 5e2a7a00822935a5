package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/mind-engage/mindengage-authoring/internal/importer"
)

type printer struct {
	w       io.Writer
	noColor bool
}

func (p printer) style(text string, color lipgloss.Color) string {
	if p.noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func (p printer) good(s string) string  { return p.style(s, lipgloss.Color("42")) }
func (p printer) bad(s string) string   { return p.style(s, lipgloss.Color("196")) }
func (p printer) muted(s string) string { return p.style(s, lipgloss.Color("244")) }

func (p printer) users(phones []string) {
	kept := importer.Truncate(phones, importer.MaxUsers)
	for i, ph := range kept {
		fmt.Fprintf(p.w, "%3d  %s\n", i+1, p.good(ph))
	}
	if len(kept) == 0 {
		fmt.Fprintln(p.w, p.bad("no valid phone numbers found"))
	}
	if n := len(phones) - len(kept); n > 0 {
		fmt.Fprintln(p.w, p.muted(fmt.Sprintf("%d more dropped (limit %d)", n, importer.MaxUsers)))
	}
}

func (p printer) questions(recs []importer.Record) {
	kept := importer.Truncate(recs, importer.MaxQuestions)
	for i, r := range kept {
		fmt.Fprintf(p.w, "%s %s\n", p.style(fmt.Sprintf("Q%d.", i+1), lipgloss.Color("33")), r.Prompt)
		for j, f := range r.Fields {
			line := fmt.Sprintf("    %d) %s", j+1, f)
			if j == r.CorrectIndex {
				line = p.good(line + " *")
			}
			fmt.Fprintln(p.w, line)
		}
		if r.CorrectIndex < 0 && len(r.Fields) > 0 {
			fmt.Fprintln(p.w, p.muted("    no answer marked correct"))
		}
	}
	if n := len(recs) - len(kept); n > 0 {
		fmt.Fprintln(p.w, p.muted(fmt.Sprintf("%d more dropped (limit %d)", n, importer.MaxQuestions)))
	}
}
