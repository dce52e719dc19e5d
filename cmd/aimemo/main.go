package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/aimemo/internal/adapter/driven/llm"
	"github.com/ericfisherdev/aimemo/internal/adapter/driven/localfile"
	"github.com/ericfisherdev/aimemo/internal/adapter/driven/postgres"
	"github.com/ericfisherdev/aimemo/internal/adapter/driven/secret"
	sqliteadapter "github.com/ericfisherdev/aimemo/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/aimemo/internal/adapter/driving/http"
	"github.com/ericfisherdev/aimemo/internal/application"
	"github.com/ericfisherdev/aimemo/internal/config"
	"github.com/ericfisherdev/aimemo/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg, os.Stderr)
	slog.SetDefault(logger)
	logger.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"managed_db", cfg.ManagedDB,
		"data_dir", cfg.DataDir,
		"credential_storage", cfg.CredentialStorage,
		"llm_model", cfg.LLMModel,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the selected backend.
	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	// 4. Wire adapters and services.
	cipher, err := secret.NewCipher(cfg.SecretKey)
	if err != nil {
		return err
	}

	summarizer := llm.NewClient(llm.Config{
		BaseURL:         cfg.LLMBaseURL,
		Model:           cfg.LLMModel,
		SummaryLanguage: cfg.SummaryLanguage,
		SummaryMaxChars: cfg.SummaryMaxChars,
		HTTPClient:      &http.Client{Timeout: cfg.LLMTimeout},
	}, logger)

	credentials := application.NewCredentialRepository(st.credentials, cipher, summarizer, logger)
	memoSvc := application.NewMemoService(st.memos)
	summarySvc := application.NewSummaryService(st.memos, credentials, summarizer)

	// 5. Create HTTP handler.
	apiHandler := httphandler.NewHandler(memoSvc, summarySvc, credentials, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.NewServeMux(apiHandler, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 6. Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	// 7. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
	return nil
}

// newLogger builds the process logger from the configured level and format.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// stores bundles the persistence adapters chosen for this process.
type stores struct {
	memos       driven.MemoStore
	credentials driven.CredentialStore
	close       func() error
}

// openStores opens the memo backend selected by AIMEMO_MANAGED_DB and the
// credential store selected by AIMEMO_CREDENTIAL_STORAGE. The embedded
// backend migrates its schema here; the managed backend expects
// aimemo-initdb to have run.
func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	var st stores

	switch {
	case cfg.ManagedDB:
		db, err := postgres.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("database opened", "backend", "postgres")

		st.memos = postgres.NewMemoRepo(db)
		st.credentials = postgres.NewCredentialRepo(db)
		st.close = func() error {
			db.Close()
			return nil
		}

	default:
		db, err := sqliteadapter.NewDB(ctx, cfg.DBPath())
		if err != nil {
			return nil, err
		}
		logger.Info("database opened", "backend", "sqlite", "path", db.Path())

		if err := sqliteadapter.RunMigrations(db.Writer, logger); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("migrations complete")

		st.memos = sqliteadapter.NewMemoRepo(db)
		st.credentials = sqliteadapter.NewCredentialRepo(db)
		st.close = db.Close
	}

	switch cfg.CredentialStorage {
	case config.CredentialStorageLocal:
		st.credentials = localfile.NewCredentialStore(cfg.CredentialFilePath())
		logger.Info("credential storage", "kind", "local", "path", cfg.CredentialFilePath())
	case config.CredentialStorageDatabase:
		logger.Info("credential storage", "kind", "database")
	}

	return &st, nil
}
