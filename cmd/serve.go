package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lesson-planner/internal/events"
	"lesson-planner/internal/infrastructure/database"
	"lesson-planner/internal/logger"
	"lesson-planner/internal/mailer"
	"lesson-planner/internal/middleware"
	"lesson-planner/internal/routes"
	"lesson-planner/pkg/mqtt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	logger.Info("Starting application",
		zap.String("environment", cfg.Server.Environment),
		zap.String("version", version),
	)

	db, err := database.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		return err
	}

	publisher, closePublisher := newPublisher(ctx)
	defer closePublisher()

	limiter := middleware.NewRateLimiterFromConfig(cfg.RateLimit)
	go limiter.Run(ctx)

	router := routes.SetupRoutes(cfg, db, routes.Dependencies{
		Publisher:   publisher,
		Mailer:      mailer.New(cfg.SMTP),
		RateLimiter: limiter,
	})

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("address", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	logger.Info("Server exited properly")
	return nil
}

// newPublisher connects to the MQTT broker when one is configured. A broker
// that cannot be reached is logged and events go to the log instead.
func newPublisher(ctx context.Context) (events.Publisher, func()) {
	if cfg.MQTT.Broker == "" {
		return events.LogPublisher{}, func() {}
	}

	client := mqtt.NewClient(mqtt.DefaultConfig(
		cfg.MQTT.Broker,
		cfg.MQTT.ClientID,
		cfg.MQTT.Username,
		cfg.MQTT.Password,
	))

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := client.Connect(connectCtx); err != nil {
		logger.Warn("MQTT broker unavailable, logging events instead",
			zap.String("broker", cfg.MQTT.Broker),
			zap.Error(err),
		)
		return events.LogPublisher{}, func() {}
	}

	return events.NewMQTTPublisher(client, cfg.MQTT.Topic), client.Disconnect
}
