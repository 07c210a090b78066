package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/copyforge-api/internal/config"
	"github.com/phrazzld/copyforge-api/internal/platform/gemini"
	"github.com/phrazzld/copyforge-api/internal/platform/postgres"
	"github.com/phrazzld/copyforge-api/internal/service"
	"github.com/phrazzld/copyforge-api/internal/service/auth"
)

// application holds the server's long-lived dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService     auth.JWTService
	contentService service.ContentService
	projectService service.ProjectService
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	if db == nil {
		return nil, fmt.Errorf("database cannot be nil")
	}

	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	gateway, err := gemini.NewGateway(cfg.LLM, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation gateway: %w", err)
	}
	log.Info("generation gateway initialized",
		"strategies", len(gateway.Strategies()),
		"safety_threshold", cfg.LLM.SafetyThreshold)

	app.contentService, err = service.NewContentService(gateway, cfg.LLM.GeminiAPIKey, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create content service: %w", err)
	}

	projectStore := postgres.NewPostgresProjectStore(db, log)
	app.projectService, err = service.NewProjectService(
		service.NewProjectRepositoryAdapter(projectStore, db),
		app.contentService,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create project service: %w", err)
	}

	log.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
