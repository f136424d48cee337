// Package app wires the storage, services and HTTP server together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/httplog/v2"
	"golang.org/x/sync/errgroup"

	api "github.com/ivanmalyar/url-alias/internal/api/http"
	"github.com/ivanmalyar/url-alias/internal/config"
	pgstore "github.com/ivanmalyar/url-alias/internal/database/postgres"
	"github.com/ivanmalyar/url-alias/internal/service"
	"github.com/ivanmalyar/url-alias/pkg/postgres"
)

// newLogger builds the request logger for the given environment. Production
// logs JSON at info level; everything else is human-readable and verbose.
func newLogger(env string) *httplog.Logger {
	opts := httplog.Options{
		LogLevel: slog.LevelDebug,
		Concise:  true,
	}

	switch env {
	case config.EnvProd:
		opts = httplog.Options{
			JSON:     true,
			LogLevel: slog.LevelInfo,
		}
	case config.EnvStage:
		opts = httplog.Options{
			JSON:     true,
			LogLevel: slog.LevelDebug,
		}
	}

	return httplog.NewLogger("url-alias", opts)
}

// Run starts the service and blocks until ctx is canceled or the server
// fails. Schema migrations run before the server accepts traffic.
func Run(ctx context.Context, cfg *config.Config) error {
	const op = "app.Run"

	db, err := postgres.New(
		ctx,
		cfg.Postgres.DSN(),
		postgres.WithConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime),
		postgres.WithConnMaxLifetime(cfg.Postgres.ConnMaxLifetime),
		postgres.WithMaxIdleConns(cfg.Postgres.MaxIdleConns),
		postgres.WithMaxOpenConns(cfg.Postgres.MaxOpenConns),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to connect to database: %w", op, err)
	}
	defer db.Close()

	if err := postgres.RunMigrations("file://migrations", cfg.Postgres.DSN()); err != nil {
		return fmt.Errorf("%s: failed to run migrations: %w", op, err)
	}

	logger := newLogger(cfg.Env)

	userRepo := pgstore.NewUserRepository(db)
	linkRepo := pgstore.NewLinkRepository(db)
	clickRepo := pgstore.NewClickRepository(db)

	userSvc := service.NewUserService(userRepo)
	linkSvc := service.NewLinkService(linkRepo, logger.Logger, cfg.ShortCodeLength, cfg.DefaultLinkTTLDays)
	statsSvc := service.NewStatsService(linkRepo, clickRepo)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        api.NewRouter(logger, userSvc, linkSvc, statsSvc),
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	logger.Info("starting server", slog.String("addr", server.Addr), slog.String("env", cfg.Env))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: server error occurred: %w", op, err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("%s: failed to shutdown server: %w", op, err)
		}

		return nil
	})

	return g.Wait()
}
