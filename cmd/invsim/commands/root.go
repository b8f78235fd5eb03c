package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"invsim/internal/config"
	"invsim/internal/logging"
	"invsim/internal/mcp"
	"invsim/internal/metrics"
	"invsim/internal/runner"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	appMetrics *metrics.Metrics
	simRunner  *runner.Runner
)

var rootCmd = &cobra.Command{
	Use:   "invsim",
	Short: "invsim simulates periodic-review inventory policies with random digits",
	Long: `A Monte Carlo inventory simulator in the classic textbook style: demand and lead time are
sampled by looking up supplied random digits in cumulative probability ranges, and an
order-point / order-up-to policy is replayed week by week.

Without a subcommand invsim runs as an MCP server on stdio.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		appMetrics = metrics.New()
		simRunner = runner.New(appMetrics, cfg.MaxWeeks, cfg.SweepConcurrency)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("command", cmd.Name()).
			Msg("invsim starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		return mcp.NewServer(simRunner, cfg, Version).Serve(ctx)
	},
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.AddCommand(runCmd, rangesCmd, sweepCmd, serveCmd, initCmd)
}
