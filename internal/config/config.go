package config

import (
	"time"

	"github.com/maxviazov/job-portal/internal/auth"
	"github.com/maxviazov/job-portal/internal/logger"
	"github.com/maxviazov/job-portal/internal/repository/backend"
	"github.com/maxviazov/job-portal/internal/repository/cache"
	"github.com/maxviazov/job-portal/internal/storage"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger" validate:"-"` // validated by logger.New after defaults
	Backend  backend.Config      `mapstructure:"backend"`
	Fallback FallbackConfig      `mapstructure:"fallback"`
	Snapshot SnapshotConfig      `mapstructure:"snapshot"`
	Cache    cache.Config        `mapstructure:"cache"`
	Redis    cache.RedisConfig   `mapstructure:"redis"`
	Storage  storage.MinIOConfig `mapstructure:"storage"`
	Auth     auth.Config         `mapstructure:"auth"`
	CORS     CORSConfig          `mapstructure:"cors"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name" validate:"required"`
	Version         string        `mapstructure:"version"`
	Env             string        `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port            int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// FallbackConfig points at the JSON snapshot served when the backend is down.
type FallbackConfig struct {
	Path  string `mapstructure:"path"`
	Watch bool   `mapstructure:"watch"`
}

// SnapshotConfig drives the cron job that refreshes the fallback file.
type SnapshotConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthEnabled reports whether session tokens can be verified. Without a secret the
// apply and admin routes stay unmounted.
func (c *Config) AuthEnabled() bool { return c.Auth.Secret != "" }

// StorageEnabled reports whether résumé uploads have somewhere to go.
func (c *Config) StorageEnabled() bool { return c.Storage.Endpoint != "" }
