package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/reelbook/internal/diary/http"
	"github.com/aussiebroadwan/reelbook/internal/diary/mail"
	"github.com/aussiebroadwan/reelbook/internal/diary/service"
	"github.com/aussiebroadwan/reelbook/internal/diary/store/drivers/sqlite"
	"github.com/aussiebroadwan/reelbook/pkg/cryptox"
	"github.com/aussiebroadwan/reelbook/pkg/httpx"
	"github.com/aussiebroadwan/reelbook/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application is the diary service with all of its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      *sqlite.Store
	hasher  *cryptox.Hasher
	mailer  mail.Mailer
	metrics *httpx.Metrics

	tokenService       *service.TokenService
	accountService     *service.AccountService
	socialService      *service.SocialService
	groupService       *service.GroupService
	bootstrapService   *service.BootstrapService
	maintenanceService *service.MaintenanceService
	gate               *service.Gate

	server *http.Server
	router *httpapi.Router
}

// New builds the application: database and migrations, services, the
// optional admin seed and the HTTP server. Nothing is listening yet.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "diary-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.seedAdmin(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()
	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.maintenanceService.Start()

	app.logger.Info("diary service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.maintenanceService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down diary service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Waits for a sweep in progress
	app.maintenanceService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("diary service stopped")
	return nil
}

// initDatabase opens the store and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.DSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// initServices builds the capabilities and the services on top of them
func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewHasher(pepper, cryptox.DefaultParams)

	secret := app.cfg.TokenSecret
	if secret == "" {
		// Validate only lets this through in dev. Tokens die with the process.
		if secret, err = cryptox.GenerateSecret(32); err != nil {
			return fmt.Errorf("failed to generate token secret: %w", err)
		}
		app.logger.Warn("DIARY_TOKEN_SECRET not set, using a random secret for this run")
	}
	app.tokenService, err = service.NewTokenService([]byte(secret), app.cfg.TokenIssuer, app.cfg.TokenTTL, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	switch app.cfg.MailTransport {
	case "smtp":
		app.mailer, err = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			Username: app.cfg.SMTPUsername,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.MailFrom,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize mailer: %w", err)
		}
	default:
		app.mailer = &mail.LogMailer{Logger: app.logger}
	}
	app.logger.Info("mail transport configured", "transport", app.cfg.MailTransport)

	app.accountService = &service.AccountService{
		Store:   app.db,
		Hasher:  app.hasher,
		Mailer:  app.mailer,
		Tokens:  app.tokenService,
		CodeTTL: app.cfg.CodeTTL,
	}
	app.socialService = &service.SocialService{Store: app.db}
	app.groupService = &service.GroupService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{Store: app.db, Hasher: app.hasher}
	app.gate = &service.Gate{Tokens: app.tokenService, Store: app.db}

	app.maintenanceService, err = service.NewMaintenanceService(
		app.accountService,
		app.logger,
		app.cfg.MaintenanceSchedule,
	)
	if err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", app.cfg.MaintenanceSchedule, err)
	}
	return nil
}

// seedAdmin creates the configured ADMIN account on first start
func (app *Application) seedAdmin() error {
	if app.cfg.AdminHandle == "" {
		return nil
	}

	ctx := slogx.WithContext(context.Background(), app.logger)
	created, err := app.bootstrapService.EnsureAdmin(ctx, service.AdminSeed{
		Handle:   app.cfg.AdminHandle,
		Address:  app.cfg.AdminEmail,
		Password: app.cfg.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	if created {
		app.logger.Info("admin account created", "handle", app.cfg.AdminHandle)
	}
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	app.metrics = httpx.NewMetrics("diary")

	router := httpapi.NewRouter(
		BuildVersion,
		app.db,
		app.gate,
		app.metrics,
		app.logger,
	)

	router.AccountService = app.accountService
	router.SocialService = app.socialService
	router.GroupService = app.groupService
	router.MaintenanceService = app.maintenanceService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
