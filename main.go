package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"textparser/internal/app"
	"textparser/internal/config"
	"textparser/internal/logger"
)

func main() {
	log := logger.New(os.Stdout)
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx = logger.WithRunID(ctx, logger.NewRunID())

	err = run(ctx, cfg, log)
	cancel()
	if err != nil {
		slog.ErrorContext(ctx, "failed to extract contacts", "error", err)
		os.Exit(1)
	}
}

// run performs one extraction pass. The database connection is released
// before run returns, whatever the outcome.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	deps, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			log.WarnContext(ctx, "failed to release resources", "error", err)
		}
	}()

	a, err := app.New(cfg, deps.Conn, deps.Publisher(), log)
	if err != nil {
		return err
	}

	summary, err := a.Run(ctx)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "run complete", "fetched", summary.Fetched, "extracted", summary.Extracted, "source", summary.Source)
	return nil
}
