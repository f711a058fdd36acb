package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"bilancio/internal/amqp"
	"bilancio/internal/analysis"
	"bilancio/internal/cli"
	"bilancio/internal/services"
	"bilancio/internal/sheets"
	gsheet "bilancio/internal/sheets/google"
	mem "bilancio/internal/sheets/memory"
	"bilancio/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting bilancio-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	engine := analysis.NewEngine(analysis.DefaultConfig())
	reports := services.NewReportService(repo, engine, cfg.CurrencySymbol)

	// Report snapshots land in Google Sheets when configured, otherwise in
	// an in-memory sink so the worker still drains the queue.
	var exporter sheets.ReportExporter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		exporter = client
		logger.Info("Google Sheets exporter initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		exporter = mem.New()
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(reports, exporter, cfg.ExportMinInterval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeChangeEvents(gctx, func(msg *amqp.ChangeEventMessage) error {
			return exportWorker.HandleChangeEvent(gctx, msg)
		})
	})

	g.Go(func() error {
		return exportWorker.RunPeriodic(gctx, cfg.ExportInterval)
	})

	logger.Info("Worker running",
		"export_interval", cfg.ExportInterval.String(),
		"export_min_interval", cfg.ExportMinInterval.String())

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete")
}
