package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/seatbroker/internal/broker/http"
	"github.com/aussiebroadwan/seatbroker/internal/broker/lock"
	"github.com/aussiebroadwan/seatbroker/internal/broker/outbound"
	"github.com/aussiebroadwan/seatbroker/internal/broker/service"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store"
	"github.com/aussiebroadwan/seatbroker/internal/broker/store/drivers/sqlite"
	"github.com/aussiebroadwan/seatbroker/internal/broker/upstream"
	"github.com/aussiebroadwan/seatbroker/pkg/cryptox"
	"github.com/aussiebroadwan/seatbroker/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the broker with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	redis     *redis.Client // nil without BROKER_REDIS_ADDR
	locker    lock.Locker
	transport *outbound.Transport
	upstream  *upstream.Client

	// Services
	sessionService      *service.SessionService
	settingsService     *service.SettingsService
	credentialService   *service.CredentialService
	ledgerService       *service.LedgerService
	redeemService       *service.RedeemService
	batchService        *service.BatchService
	accountService      *service.AccountService
	codeService         *service.CodeService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "seat-broker",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initLocker(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()

	if err := app.initSettings(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("seat broker starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown drains in-flight requests, stops housekeeping and closes the
// database and Redis connections.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down seat broker...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("seat broker stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initLocker picks the Redis locker when configured, the in-process one
// otherwise.
func (app *Application) initLocker() error {
	if app.cfg.RedisAddr == "" {
		app.locker = lock.NewLocal()
		app.logger.Info("using in-process account locks (single replica only)")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
		DB:       app.cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis at %s: %w", app.cfg.RedisAddr, err)
	}

	app.redis = client
	// The lock must outlive a full exchange round trip.
	app.locker = lock.NewRedis(client, app.cfg.LockTTL())
	app.logger.Info("using redis account locks", "addr", app.cfg.RedisAddr)
	return nil
}

func (app *Application) initServices() {
	app.sessionService = &service.SessionService{Store: app.db}
	app.settingsService = &service.SettingsService{
		Store:    app.db,
		Sessions: app.sessionService,
		Issuer:   "SeatBroker",
	}

	// Proxy settings are read live from the settings table on every call
	app.transport = outbound.New(app.settingsService, app.cfg.UpstreamTimeout)
	app.upstream = upstream.NewClient(upstream.Config{
		AuthBaseURL: app.cfg.AuthBaseURL,
		ChatBaseURL: app.cfg.ChatBaseURL,
		ClientID:    app.cfg.OAuthClientID,
		RedirectURI: app.cfg.OAuthRedirectURI,
	}, app.transport)

	app.credentialService = service.NewCredentialService(app.db, app.upstream, app.locker)
	app.ledgerService = &service.LedgerService{
		Store:       app.db,
		Credentials: app.credentialService,
		API:         app.upstream,
	}
	app.redeemService = &service.RedeemService{
		Store:       app.db,
		Ledger:      app.ledgerService,
		Credentials: app.credentialService,
		API:         app.upstream,
		Lease:       app.cfg.ReservationLease,
	}
	app.batchService = &service.BatchService{
		Store:       app.db,
		Ledger:      app.ledgerService,
		Credentials: app.credentialService,
		API:         app.upstream,
	}
	app.accountService = &service.AccountService{
		Store:       app.db,
		Credentials: app.credentialService,
		API:         app.upstream,
	}
	app.codeService = &service.CodeService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initSettings seeds default settings and hashes any plaintext secrets.
func (app *Application) initSettings() error {
	ctx := slogx.WithContext(context.Background(), app.logger)

	generated, err := app.settingsService.Init(ctx, app.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to initialize settings: %w", err)
	}
	if generated != "" {
		// Shown once; only the hash is stored.
		app.logger.Warn("generated initial admin password, change it after first login",
			slog.String("admin_password", generated),
		)
	}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger, app.cfg.CookieSecure)

	router.SessionService = app.sessionService
	router.SettingsService = app.settingsService
	router.AccountService = app.accountService
	router.LedgerService = app.ledgerService
	router.RedeemService = app.redeemService
	router.BatchService = app.batchService
	router.CodeService = app.codeService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
