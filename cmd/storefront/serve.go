package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/your-org/storefront/internal/client"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	httpserver "github.com/your-org/storefront/internal/interfaces/http"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
	"github.com/your-org/storefront/internal/pkg/pdf"
)

var shutdownTimeout time.Duration

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront HTTP API",
	Long: `Run the storefront HTTP API until SIGINT or SIGTERM.

Carts are kept in the store selected by CART_STORE (redis, postgres or
memory). Redis, when configured, also backs the rate limiter.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "grace period for in-flight requests")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.WithFields(logrus.Fields{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"cart_store":  cfg.Cart.Store,
	}).Info("Starting storefront")

	b, err := openBackends(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	go b.purgeExpired(ctx)

	backend := client.New(cfg.Backend, logger)
	carts := cart.NewService(b.snapshots, cfg, logger)

	var opts []httpserver.Option
	if b.redis != nil {
		opts = append(opts,
			httpserver.WithRateLimiter(b.redis.GetClient()),
			httpserver.WithHealthCheck("redis", b.redis),
		)
	}
	if b.database != nil {
		opts = append(opts, httpserver.WithHealthCheck("postgres", b.database))
	}

	server := httpserver.NewServer(routes.Dependencies{
		Config:   cfg,
		Logger:   logger,
		Backend:  backend,
		Carts:    carts,
		Checkout: checkout.NewService(carts, backend, logger),
		PDF:      pdf.NewService(cfg),
	}, opts...)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to shutdown HTTP server gracefully")
		return err
	}

	logger.Info("Server shutdown completed")
	return nil
}
