package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/msomdec/freshshop/internal/config"
	"github.com/msomdec/freshshop/internal/domain"
	"github.com/msomdec/freshshop/internal/handler"
	"github.com/msomdec/freshshop/internal/metrics"
	"github.com/msomdec/freshshop/internal/repository/postgres"
	"github.com/msomdec/freshshop/internal/repository/sqlite"
	"github.com/msomdec/freshshop/internal/service"
	"github.com/msomdec/freshshop/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied", "postgres", cfg.IsPostgres())

	store, closeStore, err := openSessionStore(ctx, cfg, db)
	if err != nil {
		slog.Error("failed to open session store", "store", cfg.SessionStore, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	sessions := session.NewManager(session.Config{
		Store:  store,
		Secret: cfg.SessionSecret,
		TTL:    cfg.SessionTTL,
		Secure: cfg.CookieSecure,
	})
	sessions.StartCleanup(ctx, cfg.SessionCleanupInterval)

	authService := service.NewAuthService(db.Users(), cfg.BcryptCost)
	cartService := service.NewCartService()
	contactService := service.NewContactService(db.Contacts())
	catalog := service.NewStaticCatalog()
	loginLimiter := service.NewRateLimiter(cfg.LoginRatePerMinute/60, cfg.LoginRateBurst)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, sessions, authService, cartService, contactService, catalog, loginLimiter, cfg.StaticDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           metrics.InstrumentHandler(handler.SecurityHeaders(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "session_store", cfg.SessionStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openDatabase picks the backend from DATABASE_URL.
func openDatabase(ctx context.Context, cfg *config.Config) (domain.Database, error) {
	if cfg.IsPostgres() {
		db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.PoolConfig{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: 30 * time.Minute,
		})
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := sqlite.New(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func openSessionStore(ctx context.Context, cfg *config.Config, db domain.Database) (domain.SessionStore, func(), error) {
	switch cfg.SessionStore {
	case config.SessionStoreMemory:
		return session.NewMemoryStore(), func() {}, nil
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		return session.NewRedisStore(client), func() { client.Close() }, nil
	default:
		return db.Sessions(), func() {}, nil
	}
}
