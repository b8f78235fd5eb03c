package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"invsim/internal/runner"
	"invsim/internal/simulation"
)

//go:embed templates/*.html
var templateFS embed.FS

var ledgerTemplate = template.Must(template.ParseFS(templateFS, "templates/ledger.html"))

type htmlData struct {
	Title       string
	RunID       string
	GeneratedAt string
	Columns     []string
	Rows        [][]string
	Totals      []string
	Summary     simulation.RunTotals
	Scale       int
	Warnings    []string
	Ranges      []simulation.Distribution
	Chart       string
}

// HTML writes a standalone page with the ledger table. The totals row is highlighted.
func HTML(w io.Writer, rep *runner.Report, opts Options) error {
	rows := rep.Result.Rows(rep.Scale())

	title := "Inventory Simulation"
	if rep.Scenario.Name != "" {
		title += ": " + rep.Scenario.Name
	}

	data := htmlData{
		Title:       title,
		RunID:       rep.RunID,
		GeneratedAt: rep.GeneratedAt.Format("2006-01-02 15:04:05 MST"),
		Columns:     simulation.Header(rep.Scale()),
		Rows:        rows[:len(rows)-1],
		Totals:      rows[len(rows)-1],
		Summary:     rep.Result.Totals,
		Scale:       rep.Scale(),
		Warnings:    rep.Warnings,
		Ranges:      []simulation.Distribution{rep.Demand, rep.LeadTime},
		Chart:       stripFence(opts.Chart),
	}

	if err := ledgerTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}

// stripFence turns a fenced ```mermaid block into the bare diagram source.
func stripFence(chart string) string {
	chart = strings.TrimSpace(chart)
	chart = strings.TrimPrefix(chart, "```mermaid")
	chart = strings.TrimSuffix(chart, "```")
	return strings.TrimSpace(chart)
}
