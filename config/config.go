package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

// Keyring coordinates for the Gemini API key when it is not in the environment.
const (
	KeyringService = "aipirat"
	KeyringUser    = "gemini_api_key"
)

// Config holds application configuration loaded from environment variables or an
// optional config.yaml.
type Config struct {
	AppEnv          string        `mapstructure:"APP_ENV" validate:"required,oneof=development staging production test"`
	HTTPAddr        string        `mapstructure:"HTTP_ADDR" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"required"`
	CORSOrigins     string        `mapstructure:"CORS_ORIGINS"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`
	LogFile   string `mapstructure:"LOG_FILE"`

	StorageDriver string `mapstructure:"STORAGE_DRIVER" validate:"required,oneof=memory sqlite redis postgres"`
	SQLitePath    string `mapstructure:"SQLITE_PATH" validate:"required_if=StorageDriver sqlite"`
	DatabaseURL   string `mapstructure:"DATABASE_URL" validate:"required_if=StorageDriver postgres"`

	SessionDriver   string        `mapstructure:"SESSION_DRIVER" validate:"required,oneof=memory redis"`
	SessionCapacity int           `mapstructure:"SESSION_CAPACITY" validate:"gte=1"`
	SessionTTL      time.Duration `mapstructure:"SESSION_TTL" validate:"gte=0"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB" validate:"gte=0"`

	AdminUsername string `mapstructure:"ADMIN_USERNAME" validate:"required"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD" validate:"required"`

	GeminiAPIKey      string        `mapstructure:"GEMINI_API_KEY"`
	GeminiModel       string        `mapstructure:"GEMINI_MODEL" validate:"required"`
	GeminiBaseURL     string        `mapstructure:"GEMINI_BASE_URL"`
	GenerationTimeout time.Duration `mapstructure:"GENERATION_TIMEOUT" validate:"gte=0"`
	GenerationPerMin  int           `mapstructure:"GENERATION_PER_MINUTE" validate:"gte=0"`

	HeroRotateSchedule string `mapstructure:"HERO_ROTATE_SCHEDULE"`

	ArchiveEndpoint  string `mapstructure:"ARCHIVE_ENDPOINT"`
	ArchiveAccessKey string `mapstructure:"ARCHIVE_ACCESS_KEY"`
	ArchiveSecretKey string `mapstructure:"ARCHIVE_SECRET_KEY"`
	ArchiveBucket    string `mapstructure:"ARCHIVE_BUCKET" validate:"required_with=ArchiveEndpoint"`
	ArchiveRegion    string `mapstructure:"ARCHIVE_REGION"`
	ArchiveUseSSL    bool   `mapstructure:"ARCHIVE_USE_SSL"`
}

var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	keys = []string{
		"APP_ENV", "HTTP_ADDR", "SHUTDOWN_TIMEOUT", "CORS_ORIGINS",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
		"STORAGE_DRIVER", "SQLITE_PATH", "DATABASE_URL",
		"SESSION_DRIVER", "SESSION_CAPACITY", "SESSION_TTL",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"ADMIN_USERNAME", "ADMIN_PASSWORD",
		"GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL", "GENERATION_TIMEOUT", "GENERATION_PER_MINUTE",
		"HERO_ROTATE_SCHEDULE",
		"ARCHIVE_ENDPOINT", "ARCHIVE_ACCESS_KEY", "ARCHIVE_SECRET_KEY", "ARCHIVE_BUCKET", "ARCHIVE_REGION", "ARCHIVE_USE_SSL",
	}
)

// Load reads .env files (if present), applies defaults, binds env vars and validates.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	setDefaults(v)

	// Optional config file
	_ = v.ReadInConfig()

	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", k, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = keyringAPIKey()
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STORAGE_DRIVER", "sqlite")
	v.SetDefault("SQLITE_PATH", "aipirat.db")
	v.SetDefault("SESSION_DRIVER", "memory")
	v.SetDefault("SESSION_CAPACITY", 1024)
	v.SetDefault("SESSION_TTL", "0s")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash-image")
	v.SetDefault("GENERATION_TIMEOUT", "0s")
	v.SetDefault("GENERATION_PER_MINUTE", 0)
}

// Validate checks struct tags plus the cross-field rules tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	needsRedis := c.StorageDriver == "redis" || c.SessionDriver == "redis"
	if needsRedis && strings.TrimSpace(c.RedisAddr) == "" {
		return errors.New("invalid config: REDIS_ADDR is required for redis drivers")
	}
	return nil
}

// IsProduction reports whether gin should run in release mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func keyringAPIKey() string {
	secret, err := keyring.Get(KeyringService, KeyringUser)
	if err != nil {
		return ""
	}
	return secret
}
