package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backends
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Identity cache backends
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string        `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
		Mode         string        `yaml:"mode" env:"SERVER_MODE" env-default:"development"`
		ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"10s"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"10s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"120s"`
	} `yaml:"server"`

	Storage struct {
		Backend string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"postgres"`
	} `yaml:"storage"`

	Database struct {
		Host            string        `yaml:"host" env:"DB_HOST" env-default:"localhost"`
		Port            string        `yaml:"port" env:"DB_PORT" env-default:"5432"`
		User            string        `yaml:"user" env:"DB_USER" env-default:"postgres"`
		Password        string        `yaml:"password" env:"DB_PASSWORD" env-default:"postgres"`
		DBName          string        `yaml:"dbname" env:"DB_NAME" env-default:"admissions"`
		SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
		MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"2"`
		MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"20"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
		SkipMigrations  bool          `yaml:"skip_migrations" env:"DB_SKIP_MIGRATIONS"`
	} `yaml:"database"`

	Auth struct {
		TokenSecret string        `yaml:"token_secret" env:"AUTH_TOKEN_SECRET"`
		TokenTTL    time.Duration `yaml:"token_ttl" env:"AUTH_TOKEN_TTL" env-default:"24h"`
		Issuer      string        `yaml:"issuer" env:"AUTH_ISSUER" env-default:"admissions"`
		TokenHeader string        `yaml:"token_header" env:"AUTH_TOKEN_HEADER" env-default:"Authentication-Token"`
		BcryptCost  int           `yaml:"bcrypt_cost" env:"AUTH_BCRYPT_COST" env-default:"12"`
		// DisableAdminRegistration drops the admin role from self-service registration
		DisableAdminRegistration bool `yaml:"disable_admin_registration" env:"AUTH_DISABLE_ADMIN_REGISTRATION"`
	} `yaml:"auth"`

	Cache struct {
		Backend  string        `yaml:"backend" env:"CACHE_BACKEND" env-default:"memory"`
		Size     int           `yaml:"size" env:"CACHE_SIZE" env-default:"1024"`
		TTL      time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"5m"`
		RedisURL string        `yaml:"redis_url" env:"CACHE_REDIS_URL" env-default:"redis://localhost:6379/0"`
	} `yaml:"cache"`

	Metrics struct {
		Disabled bool   `yaml:"disabled" env:"METRICS_DISABLED"`
		Path     string `yaml:"path" env:"METRICS_PATH" env-default:"/metrics"`
	} `yaml:"metrics"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	} `yaml:"logging"`

	Seed struct {
		Path        string `yaml:"path" env:"SEED_PATH" env-default:"configs/seed.yaml"`
		SkipOnStart bool   `yaml:"skip_on_start" env:"SEED_SKIP_ON_START"`
	} `yaml:"seed"`
}

// LoadConfig reads configPath when it exists, applies environment overrides
// and defaults, then validates the result.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{}

	var err error
	if _, statErr := os.Stat(configPath); configPath != "" && statErr == nil {
		err = cleanenv.ReadConfig(configPath, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validateConfig ensures that the configuration is valid
func validateConfig(cfg *Config) error {
	var errs []error

	switch cfg.Storage.Backend {
	case StoragePostgres:
		if cfg.Database.Host == "" {
			errs = append(errs, errors.New("database host is required"))
		}
		if cfg.Database.MaxOpenConns <= 0 {
			errs = append(errs, errors.New("database max_open_conns must be positive"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend))
	}

	if strings.TrimSpace(cfg.Auth.TokenSecret) == "" {
		errs = append(errs, errors.New("auth token secret is required"))
	}
	if cfg.Auth.TokenTTL < 0 {
		errs = append(errs, errors.New("auth token ttl cannot be negative"))
	}
	if cfg.Auth.TokenHeader == "" {
		errs = append(errs, errors.New("auth token header is required"))
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("bcrypt cost %d out of range [4,31]", cfg.Auth.BcryptCost))
	}

	switch cfg.Cache.Backend {
	case CacheNone:
	case CacheMemory:
		if cfg.Cache.Size <= 0 {
			errs = append(errs, errors.New("cache size must be positive"))
		}
	case CacheRedis:
		if _, err := url.Parse(cfg.Cache.RedisURL); err != nil || cfg.Cache.RedisURL == "" {
			errs = append(errs, fmt.Errorf("invalid cache redis url %q", cfg.Cache.RedisURL))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend))
	}

	if !cfg.Metrics.Disabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, errors.New("metrics path must start with /"))
	}

	return errors.Join(errs...)
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     c.Database.Host + ":" + c.Database.Port,
		Path:     "/" + c.Database.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}
