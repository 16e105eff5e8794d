package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/platform/logger"
	"github.com/taskdeck/taskdeck/internal/platform/postgres"
	"github.com/taskdeck/taskdeck/internal/redact"
	"github.com/taskdeck/taskdeck/internal/service/auth"
	"github.com/taskdeck/taskdeck/internal/store"
	"github.com/taskdeck/taskdeck/internal/web"
)

// application bundles the process-wide dependencies: configuration, logging,
// the database pool, stores, services and handlers.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqlx.DB

	userStore     store.UserStore
	taskStore     store.TaskStore
	categoryStore store.CategoryStore

	sessionService  auth.SessionService
	passwordService *auth.BcryptPasswordService

	renderer        *web.Renderer
	authHandler     *web.AuthHandler
	taskHandler     *web.TaskHandler
	categoryHandler *web.CategoryHandler
}

// newApplication loads configuration and wires every dependency. The session
// secret is read once here and never regenerated; restarting with a
// different secret logs every user out, which is an operational behavior,
// not an accident.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_url", redact.URL(cfg.Database.URL),
		"session_lifetime_days", cfg.Session.LifetimeDays)

	db, err := postgres.Open(ctx, cfg.Database.URL, log)
	if err != nil {
		return nil, err
	}

	lifetime := time.Duration(cfg.Session.LifetimeDays) * 24 * time.Hour
	sessionService, err := auth.NewSessionService(cfg.Session.Secret, lifetime)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}

	passwordService := auth.NewBcryptPasswordService()
	renderer := web.NewRenderer(log)

	app := &application{
		config:          cfg,
		logger:          log,
		db:              db,
		userStore:       postgres.NewUserStore(db, log),
		taskStore:       postgres.NewTaskStore(db, log),
		categoryStore:   postgres.NewCategoryStore(db, log),
		sessionService:  sessionService,
		passwordService: passwordService,
		renderer:        renderer,
	}

	app.authHandler = web.NewAuthHandler(
		app.userStore,
		app.sessionService,
		app.passwordService,
		app.passwordService,
		renderer,
		lifetime,
		log,
	)
	app.taskHandler = web.NewTaskHandler(app.taskStore, app.categoryStore, renderer, log)
	app.categoryHandler = web.NewCategoryHandler(app.categoryStore, log)

	return app, nil
}

// close releases the application's resources.
func (app *application) close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
