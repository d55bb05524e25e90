package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// defaultAdminPassword matches the SEED_ADMIN_PASSWORD envDefault
const defaultAdminPassword = "password"

// Config holds all configuration for the application
type Config struct {
	AppMode   string `env:"APP_MODE" envDefault:"dev"`
	Port      string `env:"PORT" envDefault:"8000"`
	APIPrefix string `env:"API_PREFIX" envDefault:"/api"`

	Database  DatabaseConfig  `envPrefix:"DB_"`
	Redis     RedisConfig     `envPrefix:"REDIS_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_"`
	Seed      SeedConfig      `envPrefix:"SEED_"`
	Log       LogConfig       `envPrefix:"LOG_"`

	AllowedOrigins string `env:"ALLOWED_ORIGINS"`
	BcryptCost     int    `env:"BCRYPT_COST" envDefault:"12"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver          string        `env:"DRIVER" envDefault:"mysql"`
	Host            string        `env:"HOST" envDefault:"localhost"`
	Port            string        `env:"PORT" envDefault:"3306"`
	User            string        `env:"USER" envDefault:"root"`
	Password        string        `env:"PASS"`
	DBName          string        `env:"NAME" envDefault:"staffdesk"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"100"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"1h"`
}

// RedisConfig holds the optional Redis connection used by the rate limiters.
// An empty Addr keeps limiter counters in process memory.
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// RateLimitConfig holds the fixed-window limits
type RateLimitConfig struct {
	LoginMax    int           `env:"LOGIN_MAX" envDefault:"5"`
	LoginWindow time.Duration `env:"LOGIN_WINDOW" envDefault:"1m"`
	// APIMax of 0 disables the general limiter.
	APIMax int `env:"API_MAX" envDefault:"100"`
}

// SeedConfig controls the startup seeder.
// Enabled defaults to false in prod unless SEED_ENABLED is set.
type SeedConfig struct {
	Enabled       bool   `env:"ENABLED" envDefault:"true"`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Admin"`
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@company.com"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"password"`
	Employees     bool   `env:"EMPLOYEES" envDefault:"true"`
}

// LogConfig controls the process logger
type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT"`
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment variables")
	}

	return Parse()
}

// Parse builds the configuration from the current environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		var aggErr env.AggregateError
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	// Trim spaces for Windows compatibility
	cfg.AppMode = strings.TrimSpace(cfg.AppMode)
	if cfg.AppMode != "dev" && cfg.AppMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", cfg.AppMode)
	}

	switch cfg.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverMemory:
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER: '%s' (must be mysql, postgres or memory)", cfg.Database.Driver)
	}

	if cfg.RateLimit.LoginMax < 1 {
		return nil, fmt.Errorf("invalid RATE_LOGIN_MAX: %d", cfg.RateLimit.LoginMax)
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %d (must be %d-%d)", cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	if cfg.IsProd() {
		if _, set := os.LookupEnv("SEED_ENABLED"); !set {
			cfg.Seed.Enabled = false
		}
		if cfg.Seed.Enabled {
			if err := cfg.CheckSeed(); err != nil {
				return nil, err
			}
		}
	}

	cfg.APIPrefix = "/" + strings.Trim(cfg.APIPrefix, "/")
	if cfg.APIPrefix == "/" {
		cfg.APIPrefix = ""
	}

	return cfg, nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:5173"
	}
	return c.AllowedOrigins
}

// CheckSeed refuses to seed the built-in admin password in production
func (c *Config) CheckSeed() error {
	if c.IsProd() && c.Seed.AdminPassword == defaultAdminPassword {
		return errors.New("SEED_ADMIN_PASSWORD must be set when seeding in prod")
	}
	return nil
}

// LogFormat returns the configured log format, defaulting by mode
func (c *Config) LogFormat() string {
	if c.Log.Format != "" {
		return c.Log.Format
	}
	if c.IsProd() {
		return "json"
	}
	return "text"
}
