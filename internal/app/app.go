package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bookshelf/internal/auth"
	"bookshelf/internal/config"
	"bookshelf/internal/database"
	"bookshelf/internal/handler"
	"bookshelf/internal/middleware"
	"bookshelf/internal/repository"
	"bookshelf/internal/router"
	"bookshelf/internal/service"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

type stores struct {
	users   service.UserStore
	reviews service.ReviewStore
	health  func(ctx context.Context) error
	close   func()
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	passwords, err := auth.NewPasswordCodec(cfg.BcryptCost, cfg.HashConcurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password codec: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	carrier := auth.NewSessionCarrier(cfg.CookieSecure)

	st, err := openStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(st.users, passwords, tokens)
	reviewService := service.NewReviewService(st.reviews)

	appRouter := router.New(cfg, middleware.NewAuthMiddleware(carrier, tokens), router.Handlers{
		Auth:   handler.NewAuthHandler(authService, carrier),
		Review: handler.NewReviewHandler(reviewService),
		Health: st.health,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{server: server, cleanupFuncs: []func(){st.close}}, nil
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		slog.Warn("using in-memory store, data will not survive a restart")
		users, reviews := repository.NewMemoryRepositories()
		return &stores{users: users, reviews: reviews, close: func() {}}, nil
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	slog.Info("database ready")

	return &stores{
		users:   repository.NewUserRepository(db.Pool),
		reviews: repository.NewReviewRepository(db.Pool),
		health:  db.Health,
		close:   db.Close,
	}, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then drains
// in-flight requests.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		a.cleanup()
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shutdownCtx)
	a.cleanup()
	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func (a *App) cleanup() {
	for _, fn := range a.cleanupFuncs {
		fn()
	}
}
