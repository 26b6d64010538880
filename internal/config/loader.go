package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the YAML file at path, then lets APP_* environment variables override it.
// A .env file in the working directory, when present, is loaded into the environment first.
func Load(path string) (*Config, error) {
	return LoadWithEnvFile(path, ".env")
}

// LoadWithEnvFile is Load with an explicit dotenv path. An empty envPath skips dotenv.
func LoadWithEnvFile(path, envPath string) (*Config, error) {
	if envPath != "" {
		// godotenv never overrides variables that are already set
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envPath, err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	setDefaults(v)

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can override keys the YAML omits.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "job-portal")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_timeout", 10*time.Second)

	v.SetDefault("logger.level", "")
	v.SetDefault("logger.format", "")
	v.SetDefault("logger.output_target", "")
	v.SetDefault("logger.time_field", "")
	v.SetDefault("logger.time_format", "")
	v.SetDefault("logger.service_name", "job-portal")
	v.SetDefault("logger.service_version", "")
	v.SetDefault("logger.env", "")
	v.SetDefault("logger.with_caller", false)
	v.SetDefault("logger.stacktrace", false)
	v.SetDefault("logger.file.path", "")
	v.SetDefault("logger.file.max_size_mb", 0)
	v.SetDefault("logger.file.max_backups", 3)
	v.SetDefault("logger.file.max_age_days", 7)
	v.SetDefault("logger.file.compress", false)

	v.SetDefault("backend.base_url", "http://localhost:3000")
	v.SetDefault("backend.timeout", 5*time.Second)
	v.SetDefault("backend.retries", 2)
	v.SetDefault("backend.retry_wait", 200*time.Millisecond)

	v.SetDefault("fallback.path", "data/job-roles.json")
	v.SetDefault("fallback.watch", true)

	v.SetDefault("snapshot.enabled", false)
	v.SetDefault("snapshot.schedule", "0 */15 * * * *")

	v.SetDefault("cache.driver", "lru")
	v.SetDefault("cache.size", 1024)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.prefix", "job-portal:")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.bucket", "resumes")
	v.SetDefault("storage.max_resume_bytes", 5<<20)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.cookie_name", "session")
	v.SetDefault("auth.ttl", time.Hour)

	v.SetDefault("cors.allowed_origins", []string{})
}

// Validate checks struct tags plus the cross-field rules tags can't express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Cache.Driver == "redis" && c.Redis.Addr == "" {
		return errors.New("invalid config: redis.addr is required when cache.driver is redis")
	}
	if !c.AuthEnabled() && (c.App.Env == "prod" || c.App.Env == "staging") {
		return fmt.Errorf("invalid config: auth.jwt_secret is required in %s", c.App.Env)
	}
	if c.StorageEnabled() && (c.Storage.AccessKey == "" || c.Storage.SecretKey == "" || c.Storage.Bucket == "") {
		return errors.New("invalid config: storage.access_key, storage.secret_key and storage.bucket are required when storage.endpoint is set")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.App.Port) }
