package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"invsim/internal/metrics"
	"invsim/internal/runner"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const serviceName = "invsim"

// NewRouter wires middleware, health, metrics and the v1 API.
func NewRouter(r *runner.Runner, m *metrics.Metrics, charts bool) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), Recovery(), Logger("/healthz", "/metrics"))
	router.NoRoute(NoRoute())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	NewHandlers(r, charts).RegisterRoutes(router.Group("/v1"))
	return router
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
