package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/job-portal/internal/auth"
	"github.com/maxviazov/job-portal/internal/config"
	"github.com/maxviazov/job-portal/internal/handler"
	"github.com/maxviazov/job-portal/internal/logger"
	"github.com/maxviazov/job-portal/internal/repository"
	"github.com/maxviazov/job-portal/internal/repository/backend"
	"github.com/maxviazov/job-portal/internal/repository/cache"
	"github.com/maxviazov/job-portal/internal/repository/fallback"
	"github.com/maxviazov/job-portal/internal/repository/resilient"
	"github.com/maxviazov/job-portal/internal/service"
	"github.com/maxviazov/job-portal/internal/snapshot"
	"github.com/maxviazov/job-portal/internal/storage"
)

func main() {
	configPath := os.Getenv("APP_CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// Load application config
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	if cfg.Logger.Env == "" {
		cfg.Logger.Env = loggerEnv(cfg.App.Env)
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
}

func run(cfg *config.Config, appLogger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Job roles: cached backend first, local snapshot when it is down.
	client := backend.NewClient(cfg.Backend, appLogger)
	primary := backend.NewJobRoleRepo(client)

	snap, err := fallback.New(cfg.Fallback.Path, appLogger)
	if err != nil {
		return err
	}
	defer snap.Close()
	if cfg.Fallback.Watch {
		if err := snap.Watch(); err != nil {
			appLogger.Warn().Err(err).Str("path", cfg.Fallback.Path).Msg("fallback watch disabled")
		}
	}

	roleCache, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()
	roles := jobRoleStack(primary, snap, roleCache, cfg.Cache.TTL, appLogger)

	if cfg.Snapshot.Enabled {
		refresher := snapshot.NewRefresher(primary, cfg.Fallback.Path, cfg.Backend.Timeout*10, appLogger)
		if err := refresher.Start(cfg.Snapshot.Schedule); err != nil {
			return err
		}
		defer refresher.Stop()
	}

	// Résumé uploads are optional; without storage the apply endpoint answers 503.
	var resumes service.ResumeStore
	if cfg.StorageEnabled() {
		objects, err := storage.NewMinIO(cfg.Storage)
		if err != nil {
			return err
		}
		if err := objects.EnsureBucket(ctx); err != nil {
			appLogger.Warn().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("résumé bucket not ready")
		}
		resumes = storage.NewResumeStore(objects, cfg.Storage.MaxResumeBytes)
	} else {
		appLogger.Warn().Msg("storage.endpoint not set; résumé uploads disabled")
	}

	// left nil without a secret so the router skips the apply and admin groups
	var verifier handler.TokenVerifier
	if cfg.AuthEnabled() {
		v, err := auth.NewVerifier(cfg.Auth)
		if err != nil {
			return err
		}
		verifier = v
	}

	if cfg.App.Env == "prod" || cfg.App.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}
	// every layer above the backend implements Ping; a nil Ready reports always-ready
	ready, _ := roles.(repository.Pinger)
	router := handler.NewRouter(handler.Deps{
		Logger:         appLogger,
		Ready:          ready,
		JobRoles:       service.NewJobRoleService(roles, appLogger),
		Applications:   service.NewApplicationService(roles, backend.NewApplicationRepo(client), resumes, appLogger),
		Export:         service.NewExportService(roles, appLogger),
		Verifier:       verifier,
		CookieName:     cfg.Auth.CookieName,
		CORSOrigins:    cfg.CORS.AllowedOrigins,
		MaxResumeBytes: maxResumeBytes(cfg),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newCache builds the configured cache driver and its closer. A nil Cache means caching is off.
func newCache(ctx context.Context, cfg *config.Config) (cache.Cache, func(), error) {
	switch cfg.Cache.Driver {
	case "redis":
		rc, err := cache.NewRedis(ctx, cfg.Redis, cfg.Cache.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return rc, func() { _ = rc.Close() }, nil
	case "lru":
		lru, err := cache.NewLRU(cfg.Cache.Size)
		if err != nil {
			return nil, nil, err
		}
		return lru, func() {}, nil
	default:
		return nil, func() {}, nil
	}
}

// jobRoleStack puts the cache on the backend side only, under the fallback switch.
// Snapshot answers served during an outage are never cached, so they stop as soon as
// the backend is back.
func jobRoleStack(primary, fb repository.JobRoleRepository, c cache.Cache, ttl time.Duration, l zerolog.Logger) repository.JobRoleRepository {
	if c != nil {
		primary = cache.NewJobRoleRepo(primary, c, ttl, l)
	}
	return resilient.New(primary, fb, l)
}

func maxResumeBytes(cfg *config.Config) int64 {
	if cfg.Storage.MaxResumeBytes > 0 {
		return cfg.Storage.MaxResumeBytes
	}
	return storage.DefaultMaxResumeBytes
}

func loggerEnv(appEnv string) string {
	switch appEnv {
	case "prod", "staging":
		return appEnv
	default:
		return "dev"
	}
}
