package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/HenrikHof/Portfolio/internal/admin"
	"github.com/HenrikHof/Portfolio/internal/auth"
	"github.com/HenrikHof/Portfolio/internal/config"
	"github.com/HenrikHof/Portfolio/internal/db"
	"github.com/HenrikHof/Portfolio/internal/health"
	"github.com/HenrikHof/Portfolio/internal/logger"
	"github.com/HenrikHof/Portfolio/internal/metrics"
	"github.com/HenrikHof/Portfolio/internal/middleware"
	"github.com/HenrikHof/Portfolio/internal/notify"
	"github.com/HenrikHof/Portfolio/internal/submission"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

type App struct {
	config   *config.Config
	router   chi.Router
	server   *http.Server
	logger   *slog.Logger
	database *bun.DB
	producer *notify.Producer
}

func New() *App {
	slogLogger := logger.NewWithServiceContext(ServiceName, Version)

	// Set as default logger so slog.Info() uses JSON format
	slog.SetDefault(slogLogger)

	slogLogger.Info("initializing application")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slogLogger.Info("config loaded", "env", cfg.Env)

	app := &App{
		config: cfg,
		router: chi.NewRouter(),
		logger: slogLogger,
	}

	database := db.New(cfg.Database)
	app.database = database

	ctx := context.Background()
	if err := db.RunMigrations(ctx, database, (*submission.Submission)(nil), (*auth.AdminSession)(nil)); err != nil {
		log.Fatal("failed to run migrations:", err)
	}

	m, err := metrics.New(otel.Meter(ServiceName))
	if err != nil {
		slogLogger.Warn("failed to initialize metrics", "error", err)
		m = metrics.NewMock()
	}

	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))

	// Health endpoints (no auth required)
	healthHandler := health.NewHandler(database)
	healthHandler.RegisterRoutes(app.router)

	// NATS producer for new-submission events (optional)
	var notifier submission.Notifier
	if cfg.NATS.URL != "" {
		producer, err := notify.NewProducer(cfg.NATS.URL, cfg.NATS.Subject, slogLogger)
		if err != nil {
			slogLogger.Warn("failed to initialize NATS producer", "error", err)
		} else {
			app.producer = producer
			notifier = producer
		}
	}

	// Public contact-form intake
	submissionRepo := submission.NewRepository(database, m)
	intakeService := submission.NewService(submissionRepo, notifier, slogLogger)
	intakeHandler := submission.NewHandler(intakeService, slogLogger, m)
	intakeHandler.RegisterRoutes(app.router)

	// Admin surface: session endpoints are open, everything else requires a
	// valid session
	authRepo := auth.NewRepository(database)
	authService := auth.NewService(authRepo, cfg.Admin, cfg.Session)
	authHandler := auth.NewHandler(authService, slogLogger, m)

	if err := authService.CleanupExpired(ctx); err != nil {
		slogLogger.Warn("failed to clean up expired sessions", "error", err)
	}

	adminService := admin.NewService(submissionRepo)
	adminHandler := admin.NewHandler(adminService, slogLogger, m)
	app.router.Route("/admin", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(authService, slogLogger))
			adminHandler.RegisterRoutes(r)
		})
	})

	slogLogger.Info("application initialized successfully")

	return app
}

func (a *App) Run() error {
	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down server")

	if a.producer != nil {
		a.producer.Close()
	}

	err := a.server.Shutdown(ctx)
	db.Close(a.database)
	return err
}
