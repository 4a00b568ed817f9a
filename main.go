package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aipirat/archive"
	"aipirat/auth"
	"aipirat/config"
	"aipirat/database"
	"aipirat/handlers"
	"aipirat/hero"
	"aipirat/i18n"
	"aipirat/imagegen"
	"aipirat/logger"
	"aipirat/middleware"
	"aipirat/repository"
	"aipirat/session"
	"aipirat/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	lg, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create context with timeout for initial connections
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var rdb *redis.Client
	if cfg.StorageDriver == "redis" || cfg.SessionDriver == "redis" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
	}

	backend, closeBackend, err := openBackend(ctx, cfg, rdb, lg)
	if err != nil {
		return err
	}
	defer closeBackend()

	var sessions session.Store
	switch cfg.SessionDriver {
	case "redis":
		sessions = session.NewRedis(rdb, cfg.SessionTTL)
	default:
		sessions = session.NewMemory(cfg.SessionCapacity, cfg.SessionTTL)
	}

	catalog, err := i18n.Load()
	if err != nil {
		return err
	}

	var gen imagegen.Generator = imagegen.Disabled{}
	if cfg.GeminiAPIKey != "" {
		gc, err := imagegen.NewGeminiClient(ctx, imagegen.GeminiConfig{
			APIKey:    cfg.GeminiAPIKey,
			Model:     cfg.GeminiModel,
			BaseURL:   cfg.GeminiBaseURL,
			Timeout:   cfg.GenerationTimeout,
			PerMinute: cfg.GenerationPerMin,
		}, lg.Named("imagegen"))
		if err != nil {
			return err
		}
		gen = gc
		lg.Info("image generation enabled", zap.String("model", gc.Name()))
	} else {
		lg.Warn("no Gemini API key configured, image generation disabled")
	}

	store := storage.NewStore(backend, lg.Named("storage"))

	var heroOpts []hero.Option
	if cfg.ArchiveEndpoint != "" {
		arch, err := archive.New(archive.Config{
			Endpoint:  cfg.ArchiveEndpoint,
			AccessKey: cfg.ArchiveAccessKey,
			SecretKey: cfg.ArchiveSecretKey,
			Bucket:    cfg.ArchiveBucket,
			Region:    cfg.ArchiveRegion,
			UseSSL:    cfg.ArchiveUseSSL,
		}, lg.Named("archive"))
		if err != nil {
			return err
		}
		heroOpts = append(heroOpts, hero.WithEvictHook(arch.Evicted))
	}
	heroManager := hero.NewManager(store, lg.Named("hero"), heroOpts...)

	if cfg.HeroRotateSchedule != "" {
		rotator, err := hero.NewRotator(heroManager, cfg.HeroRotateSchedule, lg.Named("rotator"))
		if err != nil {
			return err
		}
		rotator.Start()
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			rotator.Stop(stopCtx)
		}()
	}

	deps := handlers.Deps{
		Projects:  repository.NewProjectRepository(store, lg.Named("projects")),
		Languages: repository.NewVisitorLanguages(backend, lg.Named("storage")),
		Gate:      auth.NewGate(auth.Credentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword}, sessions, lg.Named("auth")),
		Hero:      heroManager,
		Studio:    hero.NewStudio(heroManager, gen, lg.Named("studio")),
		Catalog:   catalog,
		Log:       lg,
	}
	if p, ok := backend.(handlers.Pinger); ok {
		deps.Storage = p
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(lg), middleware.Recovery(lg), middleware.Session(cfg.IsProduction()))

	var api []gin.HandlerFunc
	if origins := cfg.AllowedOrigins(); len(origins) > 0 {
		api = append(api, cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if err := handlers.Register(r, deps, api...); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server starting", zap.String("addr", cfg.HTTPAddr), zap.String("storage", cfg.StorageDriver), zap.String("sessions", cfg.SessionDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-quit:
		lg.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	lg.Info("server stopped")
	return nil
}

// openBackend connects the configured key-value backend. The returned func
// releases it.
func openBackend(ctx context.Context, cfg *config.Config, rdb *redis.Client, lg *zap.Logger) (storage.Backend, func(), error) {
	switch cfg.StorageDriver {
	case "memory":
		lg.Warn("using in-memory storage, data is lost on restart")
		return storage.NewMemory(), func() {}, nil
	case "redis":
		return storage.NewRedis(rdb), func() {}, nil
	case "postgres":
		db, err := database.Connect(ctx, cfg.DatabaseURL, lg.Named("database"))
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		s, err := storage.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	}
}
