package commands

import (
	"fmt"
	"os"

	"invsim/internal/report"
	"invsim/internal/runner"
	"invsim/internal/scenario"
	"invsim/internal/visuals"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var runFlags struct {
	scenario         string
	format           string
	out              string
	export           bool
	open             bool
	charts           bool
	initialInventory int
	orderPoint       int
	maxInventory     int
	weeks            int
	demandDigits     string
	leadTimeDigits   string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a scenario and print the weekly ledger",
	Long: `Simulate a scenario file (or the textbook reference case) and print the weekly ledger.
Individual fields can be overridden with flags, e.g.

  invsim run --order-point 3 --demand-digits "31,70,53,86"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(runFlags.format)
		if err != nil {
			return err
		}

		sc, err := loadScenario(runFlags.scenario)
		if err != nil {
			return err
		}
		sc, err = runOverrides(cmd).Apply(sc)
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		rep, err := simRunner.Run(ctx, runner.SurfaceCLI, sc)
		if err != nil {
			return err
		}

		opts := report.Options{}
		if runFlags.charts || cfg.EnableMermaidCharts {
			opts.Chart = visuals.Charts(rep.Result, sc.OrderPoint, sc.MaxInventory, rep.Scale())
		}

		// --open always produces an HTML export the browser can load.
		if runFlags.open {
			format = report.FormatHTML
			runFlags.export = true
		}

		switch {
		case runFlags.export:
			path, err := report.Export(rep, format, cfg.ExportDir, sc.Name, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			if runFlags.open {
				if err := browser.OpenFile(path); err != nil {
					log.Warn().Err(err).Str("path", path).Msg("Failed to open browser")
				}
			}
			return nil

		case runFlags.out != "" && runFlags.out != "-":
			f, err := os.Create(runFlags.out)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			if err := report.Render(f, rep, format, opts); err != nil {
				f.Close()
				return err
			}
			return f.Close()

		default:
			return report.Render(cmd.OutOrStdout(), rep, format, opts)
		}
	},
}

// runOverrides collects the override flags the user actually set.
func runOverrides(cmd *cobra.Command) scenario.Overrides {
	var o scenario.Overrides
	flags := cmd.Flags()
	if flags.Changed("initial-inventory") {
		o.InitialInventory = &runFlags.initialInventory
	}
	if flags.Changed("order-point") {
		o.OrderPoint = &runFlags.orderPoint
	}
	if flags.Changed("max-inventory") {
		o.MaxInventory = &runFlags.maxInventory
	}
	if flags.Changed("weeks") {
		o.Weeks = &runFlags.weeks
	}
	if flags.Changed("demand-digits") {
		o.DemandDigits = &runFlags.demandDigits
	}
	if flags.Changed("lead-digits") {
		o.LeadTimeDigits = &runFlags.leadTimeDigits
	}
	return o
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runFlags.scenario, "scenario", "s", "", "scenario file (.yaml, .yml or .json); defaults to the textbook case")
	f.StringVarP(&runFlags.format, "format", "f", "text", "output format: text, csv, json or html")
	f.StringVarP(&runFlags.out, "out", "o", "", "write to this file instead of stdout")
	f.BoolVar(&runFlags.export, "export", false, "write a timestamped file into the export directory")
	f.BoolVar(&runFlags.open, "open", false, "export as HTML and open it in the browser")
	f.BoolVar(&runFlags.charts, "charts", false, "append Mermaid charts to text and HTML output")

	f.IntVar(&runFlags.initialInventory, "initial-inventory", 0, "override the starting stock")
	f.IntVar(&runFlags.orderPoint, "order-point", 0, "override the order point")
	f.IntVar(&runFlags.maxInventory, "max-inventory", 0, "override the order-up-to level")
	f.IntVar(&runFlags.weeks, "weeks", 0, "override the number of weeks")
	f.StringVar(&runFlags.demandDigits, "demand-digits", "", "override the demand digits, e.g. \"31,70,53\"")
	f.StringVar(&runFlags.leadTimeDigits, "lead-digits", "", "override the lead time digits, e.g. \"29,83\"")
}
