package commands

import (
	"invsim/internal/report"

	"github.com/spf13/cobra"
)

var rangesScenario string

var rangesCmd = &cobra.Command{
	Use:   "ranges",
	Short: "Show which random digits map to each demand and lead time category",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario(rangesScenario)
		if err != nil {
			return err
		}
		demand, leadTime, err := simRunner.Ranges(sc)
		if err != nil {
			return err
		}
		return report.Ranges(cmd.OutOrStdout(), demand, leadTime)
	},
}

func init() {
	rangesCmd.Flags().StringVarP(&rangesScenario, "scenario", "s", "", "scenario file; defaults to the textbook case")
}
