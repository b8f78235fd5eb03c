package commands

import (
	"invsim/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulator over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			gin.SetMode(gin.ReleaseMode)
		}

		addr := cfg.HTTPAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		ctx, stop := signalContext()
		defer stop()

		router := api.NewRouter(simRunner, appMetrics, cfg.EnableMermaidCharts)
		return api.Serve(ctx, addr, router)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from INVSIM_HTTP_ADDR)")
}
