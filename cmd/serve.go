package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/killallgit/podcast-gateway/api"
	"github.com/killallgit/podcast-gateway/api/types"
	"github.com/killallgit/podcast-gateway/internal/observability"
	"github.com/killallgit/podcast-gateway/internal/ratelimit"
	"github.com/killallgit/podcast-gateway/internal/services/catalog"
	"github.com/killallgit/podcast-gateway/internal/services/podcasts"
	"github.com/killallgit/podcast-gateway/internal/version"
	"github.com/killallgit/podcast-gateway/pkg/config"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway server",
	Long: `Start the Podcast API Gateway with the configured settings.

The server listens for REST and GraphQL requests and forwards them to the
upstream podcast catalog. SIGINT or SIGTERM triggers a graceful shutdown.

Example:
  podcast-gateway serve
  podcast-gateway serve --port 9090
  podcast-gateway serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := *appConfig
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serverHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = serverPort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	info := version.GetInfo()
	provider, err := observability.Setup(&cfg, info)
	if err != nil {
		return fmt.Errorf("failed to setup observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Observability shutdown failed")
		}
	}()

	deps, cleanup, err := buildDependencies(ctx, &cfg, provider)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := api.NewServer(&cfg, deps)
	if err := srv.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Info().
		Str("addr", srv.Addr()).
		Str("version", info.Version).
		Str("environment", cfg.Environment).
		Str("upstream", cfg.Upstream.BaseURL).
		Str("rate_limit_store", cfg.RateLimiting.Store).
		Msg("Server is ready to handle requests")

	// Wait for interrupt signal or server error
	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
	case runErr = <-serverErr:
		log.Error().Err(runErr).Msg("Server failed, shutting down")
	}

	// Create a context with timeout for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server gracefully stopped")
	return runErr
}

// buildDependencies wires the catalog client, aggregator and rate limiter.
// The returned cleanup releases the limiter store.
func buildDependencies(ctx context.Context, cfg *config.Config, provider *observability.Provider) (*types.Dependencies, func(), error) {
	client := catalog.NewClient(catalog.Config{
		BaseURL:         cfg.Upstream.BaseURL,
		UserAgent:       cfg.Upstream.UserAgent,
		Timeout:         cfg.Upstream.Timeout,
		CountProbeLimit: cfg.Upstream.CountProbeLimit,
		RateLimit:       cfg.Upstream.RateLimit,
		RateBurst:       cfg.Upstream.RateBurst,
	})

	deps := &types.Dependencies{
		Config:        cfg,
		Aggregator:    podcasts.NewService(client),
		Observability: provider,
	}

	if !cfg.RateLimiting.Enabled {
		log.Warn().Msg("Rate limiting is disabled")
		return deps, func() {}, nil
	}

	store, err := ratelimit.OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open rate limit store: %w", err)
	}

	deps.Limiter = ratelimit.NewLimiter(store)
	deps.Policies = ratelimit.PoliciesFromConfig(cfg)

	cleanup := func() {
		if err := deps.Limiter.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close rate limit store")
		}
	}
	return deps, cleanup, nil
}
