package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"bilancio/internal/amqp"
	"bilancio/internal/analysis"
	"bilancio/internal/cli"
	apphttp "bilancio/internal/http"
	"bilancio/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)

	// Seed the default category taxonomy on first boot.
	if err := services.ProvisionCategories(context.Background(), repo, services.DefaultCategories()); err != nil {
		logger.Error("Failed to provision categories", "error", err)
		os.Exit(1)
	}

	// The broker is optional for the API: writes stay durable in SQLite and
	// the worker catches up on its periodic export.
	var publisher services.EventPublisher
	if amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue); err != nil {
		logger.Warn("AMQP unavailable, change events disabled", "error", err)
	} else {
		publisher = amqpClient
		logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	tracker := services.NewTrackerService(repo, publisher)

	engine := analysis.NewEngine(analysis.DefaultConfig())
	reports := services.NewReportService(repo, engine, cfg.CurrencySymbol)

	srv := apphttp.NewServer(":"+cfg.Port, tracker, reports)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if err := tracker.Close(); err != nil {
			logger.Error("Tracker close error", "error", err)
		}
	})

	logger.Info("Starting bilancio server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
