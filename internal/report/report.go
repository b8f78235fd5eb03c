// Package report renders simulation ledgers for people and for other programs.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/tabwriter"
	"time"

	"invsim/internal/runner"
	"invsim/internal/simulation"

	"github.com/rs/zerolog/log"
)

// Format is an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatCSV, FormatJSON, FormatHTML:
		return f, nil
	case "txt", "table":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Ext is the file extension used when exporting the format.
func (f Format) Ext() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Options tune the human-readable renderers.
type Options struct {
	Chart string // Mermaid block appended to text output and embedded in HTML
}

// Render writes the report in the given format.
func Render(w io.Writer, rep *runner.Report, format Format, opts Options) error {
	switch format {
	case FormatText:
		return Text(w, rep, opts)
	case FormatCSV:
		return CSV(w, rep.Result, rep.Scale())
	case FormatJSON:
		return JSON(w, rep)
	case FormatHTML:
		return HTML(w, rep, opts)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// Text writes an aligned ledger followed by a cost summary and any warnings.
func Text(w io.Writer, rep *runner.Report, opts Options) error {
	title := "Inventory Simulation"
	if rep.Scenario.Name != "" {
		title += ": " + rep.Scenario.Name
	}
	fmt.Fprintf(w, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(simulation.Header(rep.Scale()), "\t")+"\t")
	for _, row := range rep.Result.Rows(rep.Scale()) {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	t := rep.Result.Totals
	fmt.Fprintf(w, "\nOrders placed:   %d\n", t.OrdersPlaced)
	fmt.Fprintf(w, "Units short:     %d\n", t.ShortageUnits*rep.Scale())
	fmt.Fprintf(w, "Shortage cost:   %s\n", t.ShortageCost)
	fmt.Fprintf(w, "Ordering cost:   %s\n", t.OrderingCost)
	fmt.Fprintf(w, "Total cost:      %s\n", t.TotalCost)

	if len(rep.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, msg := range rep.Warnings {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
	}

	if opts.Chart != "" {
		fmt.Fprintf(w, "\n%s\n", opts.Chart)
	}
	return nil
}

// CSV writes the flat ledger with a header row and the trailing totals row.
func CSV(w io.Writer, res simulation.Result, scale int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(simulation.Header(scale)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.WriteAll(res.Rows(scale)); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Ranges writes the digit assignment table of each distribution.
func Ranges(w io.Writer, dists ...simulation.Distribution) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, d := range dists {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\n", strings.ToUpper(d.Name))
		fmt.Fprintln(tw, "Category\tProbability\tRandom Digits")
		for _, r := range d.Ranges {
			digits := r.String()
			if r.Empty() {
				digits = "(none)"
			}
			fmt.Fprintf(tw, "%d\t%.4f\t%s\n", r.Category, r.Probability, digits)
		}
	}
	return tw.Flush()
}

// Sweep writes the ranked policies, cheapest first.
func Sweep(w io.Writer, rep *runner.SweepReport, limit int) error {
	points := rep.Points
	if limit > 0 && limit < len(points) {
		points = points[:limit]
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Rank\tOrder Point\tMax Inventory\tOrders\tUnits Short\tShortage Cost\tOrdering Cost\tTotal Cost\t")
	for i, p := range points {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%s\t%s\t%s\t\n",
			i+1, p.OrderPoint, p.MaxInventory,
			p.Totals.OrdersPlaced, p.Totals.ShortageUnits,
			p.Totals.ShortageCost, p.Totals.OrderingCost, p.Totals.TotalCost)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if rep.Skipped > 0 {
		fmt.Fprintf(w, "\n%d combination(s) skipped: max inventory must exceed the order point.\n", rep.Skipped)
	}
	return nil
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Export writes the report into dir under a timestamped file name and returns the path.
func Export(rep *runner.Report, format Format, dir, name string, opts Options) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	base := strings.Trim(unsafeName.ReplaceAllString(name, "_"), "_")
	if base == "" {
		base = "simulation"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", base, time.Now().Format("20060102_150405"), format.Ext()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	if err := Render(f, rep, format, opts); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	log.Info().Str("path", path).Str("format", string(format)).Str("runId", rep.RunID).Msg("Report exported")
	return path, nil
}
