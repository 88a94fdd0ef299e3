package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "change-me-in-production"

// Config is the whole application configuration, read from the environment.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	JWT      JWTConfig
	Admin    AdminConfig
	MinIO    MinIOConfig
	Site     SiteConfig
	Worker   WorkerConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, test, production
	Port        string
	Version     string
	AutoMigrate bool
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// CacheConfig selects the page cache backend.
type CacheConfig struct {
	Driver string // redis or memory
	Prefix string
}

type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

// AdminConfig holds the single moderator account. PasswordHash is bcrypt.
type AdminConfig struct {
	Username     string
	PasswordHash string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string // base URL photos are served from
}

type SiteConfig struct {
	BaseURL    string
	RobotsFile string
}

type WorkerConfig struct {
	Concurrency   int
	ClearCacheAt  string // cron spec
	WarmCacheAt   string // cron spec
	ShutdownAfter time.Duration
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Born Today API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "borntoday"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "borntoday"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cache: CacheConfig{
			Driver: strings.ToLower(getEnv("CACHE_DRIVER", "redis")),
			Prefix: getEnv("CACHE_PREFIX", "pages"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", defaultJWTSecret),
			TokenExpiry: getEnvDuration("JWT_TOKEN_EXPIRY", 12*time.Hour),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "stars"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", "http://localhost:9000/stars"),
		},
		Site: SiteConfig{
			BaseURL:    strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
			RobotsFile: getEnv("ROBOTS_FILE", "static/robots.txt"),
		},
		Worker: WorkerConfig{
			Concurrency:   getEnvInt("WORKER_CONCURRENCY", 5),
			ClearCacheAt:  getEnv("CRON_CLEAR_CACHE", "0 0 * * *"),
			WarmCacheAt:   getEnv("CRON_WARM_CACHE", "5 0 * * *"),
			ShutdownAfter: getEnvDuration("WORKER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	switch c.Cache.Driver {
	case "redis", "memory":
	default:
		return fmt.Errorf("CACHE_DRIVER must be redis or memory, got %q", c.Cache.Driver)
	}
	if c.Cache.Driver == "redis" && strings.TrimSpace(c.Cache.Prefix) == "" {
		return fmt.Errorf("CACHE_PREFIX must not be empty with the redis cache driver")
	}
	if c.IsProduction() {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
