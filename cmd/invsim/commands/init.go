package commands

import (
	"fmt"
	"os"

	"invsim/internal/scenario"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the textbook reference scenario to a file for editing",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "scenario.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := scenario.Save(path, scenario.Reference()); err != nil {
			return err
		}
		log.Info().Str("path", path).Msg("Reference scenario written")
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
}
