package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"cabinet/internal/config"
	"cabinet/internal/db"
	"cabinet/internal/db/mock"
	applog "cabinet/internal/log"
	"cabinet/internal/seed"
	"cabinet/internal/server"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	closeDatabaseFunc   = db.Close
	applySeedFunc       = applySeed
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	defer func() {
		_ = applog.Sync()
	}()

	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	database, err := openDatabase(ctx, cfg)
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}
	defer closeDatabase(ctx, database)

	srv, err := newServerFunc(server.Config{
		Addr:      cfg.Server.Addr,
		StaticDir: cfg.Server.StaticDir,
		Session: server.SessionConfig{
			Lifetime:     cfg.Session.Lifetime,
			CookieName:   cfg.Session.CookieName,
			CookieDomain: cfg.Session.CookieDomain,
			CookieSecure: cfg.Session.CookieSecure,
		},
		Database: database,
	})
	if err != nil {
		applog.Error(ctx, "failed to initialise server", "error", err)
		return 1
	}

	signals, stop := subscribeShutdownSig()
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-signals:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "context cancelled, shutting down http server")
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server stopped with error", "error", err)
		return 1
	}
	applog.Info(ctx, "server stopped")
	return 0
}

func openDatabase(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	if cfg.Database.UseMock {
		applog.Info(ctx, "using in-memory mock database")
		return newMockDatabaseFunc(ctx)
	}

	database, err := configureDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	if cfg.Seed.Disabled {
		applog.Info(ctx, "seeding disabled")
		return database, nil
	}
	if err := applySeedFunc(ctx, database, cfg.Seed); err != nil {
		closeDatabase(ctx, database)
		return nil, err
	}
	return database, nil
}

func closeDatabase(ctx context.Context, database *gorm.DB) {
	if err := closeDatabaseFunc(database); err != nil {
		applog.Warn(ctx, "failed to close database", "error", err)
	}
}

func applySeed(ctx context.Context, database *gorm.DB, cfg config.SeedConfig) error {
	catalog, err := seed.Default()
	if cfg.File != "" {
		catalog, err = seed.LoadFile(cfg.File)
	}
	if err != nil {
		return err
	}
	_, err = seed.NewManager(database).ApplyIfNeeded(ctx, catalog)
	return err
}
