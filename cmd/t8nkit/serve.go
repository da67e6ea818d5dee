package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	backendredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/evmtools/t8nkit"
	"github.com/evmtools/t8nkit/internal/cache"
	"github.com/evmtools/t8nkit/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stateless HTTP evaluation server",
	Long: `Exposes the selected transition tool over a JSON API: POST /evaluate,
GET /healthz, GET /metrics. Results for identical requests are cached in
memory, or in Redis when --redis is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		cacheTTL, _ := cmd.Flags().GetDuration("cache-ttl")

		registry := prometheus.NewRegistry()
		logger := newLogger(cmd)

		opts := []t8nkit.Option{t8nkit.WithMetrics(registry)}
		if redisAddr != "" {
			client := backendredis.NewClient(&backendredis.Options{Addr: redisAddr})
			opts = append(opts, t8nkit.WithResultCache(cache.NewRedis(client, "t8nkit:", cacheTTL)))
		} else {
			opts = append(opts, t8nkit.WithResultCache(cache.NewMemory()))
		}

		tool, err := newTool(cmd, opts...)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: httpapi.NewHandler(tool, registry, logger),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting evaluation server",
				"addr", srv.Addr,
				"backend", tool.Backend().ID,
				"binary", tool.Binary(),
			)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("failed to stop server: %w", err)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("port", "8547", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for a shared result cache (host:port)")
	serveCmd.Flags().Duration("cache-ttl", time.Hour, "Lifetime of cached results (Redis only)")
}
