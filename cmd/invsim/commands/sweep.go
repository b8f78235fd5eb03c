package commands

import (
	"fmt"

	"invsim/internal/report"
	"invsim/internal/runner"

	"github.com/spf13/cobra"
)

var sweepFlags struct {
	scenario    string
	orderPoints string
	maxLevels   string
	top         int
	format      string
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Rank order point / max inventory combinations by total cost",
	Long: `Run the scenario once for every combination of order point and maximum inventory level and
rank the policies by total cost, e.g.

  invsim sweep --order-points 0-4 --max-levels 3-8`,
	RunE: func(cmd *cobra.Command, args []string) error {
		orderPoints, err := parseIntList(sweepFlags.orderPoints)
		if err != nil {
			return fmt.Errorf("--order-points: %w", err)
		}
		maxLevels, err := parseIntList(sweepFlags.maxLevels)
		if err != nil {
			return fmt.Errorf("--max-levels: %w", err)
		}

		sc, err := loadScenario(sweepFlags.scenario)
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		sweep, err := simRunner.Sweep(ctx, runner.SurfaceCLI, sc, runner.SweepRequest{
			OrderPoints: orderPoints,
			MaxLevels:   maxLevels,
		})
		if err != nil {
			return err
		}

		switch sweepFlags.format {
		case "json":
			return report.JSON(cmd.OutOrStdout(), sweep)
		case "text", "":
			return report.Sweep(cmd.OutOrStdout(), sweep, sweepFlags.top)
		default:
			return fmt.Errorf("unsupported sweep format: %s", sweepFlags.format)
		}
	},
}

func init() {
	f := sweepCmd.Flags()
	f.StringVarP(&sweepFlags.scenario, "scenario", "s", "", "scenario file; defaults to the textbook case")
	f.StringVar(&sweepFlags.orderPoints, "order-points", "0-5", "order points to try, e.g. \"1,2,3\" or \"0-5\"")
	f.StringVar(&sweepFlags.maxLevels, "max-levels", "2-10", "maximum inventory levels to try")
	f.IntVar(&sweepFlags.top, "top", 10, "show only the N cheapest policies (0 for all)")
	f.StringVarP(&sweepFlags.format, "format", "f", "text", "output format: text or json")
}
