// Package main implements the entry point for the copyforge API server,
// which generates and refines marketing copy through Gemini and stores
// users' projects in PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/copyforge-api/internal/config"
	"github.com/phrazzld/copyforge-api/internal/platform/logger"
	"github.com/phrazzld/copyforge-api/internal/platform/postgres"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a database migration command and exit ("+strings.Join(postgres.MigrationCommands, "|")+")")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		slog.Error("copyforge-api exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run loads configuration, then either executes a migration command or
// serves HTTP until ctx is cancelled.
func run(ctx context.Context, migrateCmd string) error {
	cfg, log, err := initializeApp()
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return postgres.Migrate(ctx, db, migrateCmd, log)
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"strategies", len(cfg.LLM.Strategies))
	if cfg.LLM.GeminiAPIKey == "" {
		log.Warn("no Gemini API key configured; content requests will be rejected")
	}

	return cfg, log, nil
}
