// Command aimemo-initdb creates the memos and api_keys tables in the managed
// PostgreSQL database. The server never creates the managed schema itself.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ericfisherdev/aimemo/internal/adapter/driven/postgres"
	"github.com/ericfisherdev/aimemo/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("schema initialization failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errors.New("AIMEMO_DATABASE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.InitSchema(ctx, db); err != nil {
		return err
	}

	slog.Info("schema initialized")
	return nil
}
