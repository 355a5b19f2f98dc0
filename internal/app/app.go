package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/auth"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/config"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/feed"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/httpserver"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/httpserver/deps"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/logger"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/postgres"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/redis"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/scheduler"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/sources/seed"
	pgstore "github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/store/postgres"
	"github.com/webduniyawithkeshav/Smart-Bookmark-App/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	pool        *pgxpool.Pool
	redisClient *goredis.Client
	sessionGC   *scheduler.SessionGC
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Postgres early - fail fast if unavailable
	loggerClient.Info("Connecting to Postgres...")
	pool, err := postgres.New(postgres.ConnectOptions{
		URL:            cfg.DatabaseURL,
		ConnectTimeout: cfg.PostgresConnectTimeout,
		RetryInterval:  cfg.PostgresRetryInterval,
		MaxWait:        cfg.PostgresMaxWait,
		PingTimeout:    cfg.PostgresPingTimeout,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Postgres: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Postgres initialized successfully")

	// Redis carries the change feed; same fail-fast policy.
	loggerClient.Info("Connecting to Redis...")
	redisClient, err := redis.New(redis.ConnectOptions{
		URL:            cfg.RedisURL,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Repositories
	accounts := pgstore.NewAccountRepository(pool)
	sessions := pgstore.NewSessionRepository(pool)
	bookmarks := pgstore.NewBookmarkRepository(pool)

	authService := auth.NewService(accounts, sessions, cfg.JWTSecret, cfg.TokenTTL)

	// Change feed endpoints
	publisher := feed.NewPublisher(redisClient)
	subscriber := feed.NewSubscriber(redisClient, loggerClient)

	var seeder deps.Seeder = seed.NewNopSeeder()
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured, new accounts get starter bookmarks",
			logger.String("file", cfg.SeedFile))
		seeder = seed.NewSeeder(cfg.SeedFile, bookmarks, loggerClient)
	} else {
		loggerClient.Info("seed file not configured, starter bookmarks disabled")
	}

	sessionGC := scheduler.NewSessionGC(sessions, loggerClient, cfg.SessionGCInterval)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		TrustProxy:        cfg.TrustProxy,
		AllowedOrigins:    cfg.AllowedOrigins,
		LoginBurst:        cfg.LoginBurst,
		LoginRefillPerMin: cfg.LoginRefillPerMin,
		Auth:              authService,
		Bookmarks:         bookmarks,
		Publisher:         publisher,
		Subscriber:        subscriber,
		Seeder:            seeder,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		pool:        pool,
		redisClient: redisClient,
		sessionGC:   sessionGC,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting bookmarkd v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("bookmarkd %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start expired-session sweeper
	if err := a.sessionGC.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session sweeper: %w", err)
	}
	a.logger.Info("session sweeper started",
		logger.Duration("interval", a.cfg.SessionGCInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.sessionGC.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.pool.Close()
	a.logger.Info("✅ Postgres closed cleanly")

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ bookmarkd stopped cleanly")
	return nil
}
