package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	SessionMemory   = "memory"
	SessionRedis    = "redis"
)

// Config is the full runtime configuration, read from the environment.
type Config struct {
	Port      string `mapstructure:"APP_PORT"`
	Env       string `mapstructure:"APP_ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DBMaxConns    int    `mapstructure:"DB_MAX_CONNS"`
	DBMaxIdle     int    `mapstructure:"DB_MAX_IDLE"`
	RunMigrations bool   `mapstructure:"RUN_MIGRATIONS"`

	SessionDriver string `mapstructure:"SESSION_DRIVER"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	JWTSecret  string        `mapstructure:"JWT_SECRET"`
	SessionTTL time.Duration `mapstructure:"SESSION_TTL"`
	CartTTL    time.Duration `mapstructure:"CART_TTL"`

	CheckoutBaseURL    string        `mapstructure:"PAYMENT_CHECKOUT_BASE_URL"`
	SandboxDelay       time.Duration `mapstructure:"PAYMENT_SANDBOX_DELAY"`
	OrderSubmitTimeout time.Duration `mapstructure:"ORDER_SUBMIT_TIMEOUT"`

	TrayAPIURL   string        `mapstructure:"TRAY_API_URL"`
	TrayAPIToken string        `mapstructure:"TRAY_API_TOKEN"`
	TrayTimeout  time.Duration `mapstructure:"TRAY_TIMEOUT"`
	TraySandbox  bool          `mapstructure:"TRAY_SANDBOX"`

	SeedOnBoot bool `mapstructure:"SEED_ON_BOOT"`
}

var defaults = map[string]any{
	"APP_PORT":                  "8080",
	"APP_ENV":                   "development",
	"LOG_LEVEL":                 "info",
	"LOG_FORMAT":                "json",
	"STORAGE_DRIVER":            StorageMemory,
	"DATABASE_URL":              "",
	"DB_MAX_CONNS":              10,
	"DB_MAX_IDLE":               5,
	"RUN_MIGRATIONS":            true,
	"SESSION_DRIVER":            SessionMemory,
	"REDIS_ADDR":                "",
	"REDIS_PASSWORD":            "",
	"REDIS_DB":                  0,
	"JWT_SECRET":                "",
	"SESSION_TTL":               "24h",
	"CART_TTL":                  "24h",
	"PAYMENT_CHECKOUT_BASE_URL": "https://checkout.tray.com.br/pay",
	"PAYMENT_SANDBOX_DELAY":     "1500ms",
	"ORDER_SUBMIT_TIMEOUT":      "10s",
	"TRAY_API_URL":              "https://api.tray.com.br",
	"TRAY_API_TOKEN":            "",
	"TRAY_TIMEOUT":              "10s",
	"TRAY_SANDBOX":              true,
}

// devJWTSecret signs tokens in development when JWT_SECRET is unset.
const devJWTSecret = "niklaus-dev-secret"

// Load reads .env files (if any) and the environment into a Config.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	// SEED_ON_BOOT has no static default; unset it follows APP_ENV.
	if err := v.BindEnv("SEED_ON_BOOT"); err != nil {
		return nil, fmt.Errorf("bind SEED_ON_BOOT: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if !v.IsSet("SEED_ON_BOOT") {
		cfg.SeedOnBoot = cfg.IsDevelopment()
	}
	cfg.StorageDriver = strings.ToLower(cfg.StorageDriver)
	cfg.SessionDriver = strings.ToLower(cfg.SessionDriver)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.SessionDriver {
	case SessionMemory:
	case SessionRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required when SESSION_DRIVER=redis")
		}
	default:
		return fmt.Errorf("unknown SESSION_DRIVER %q", c.SessionDriver)
	}

	if !c.TraySandbox && c.TrayAPIToken == "" {
		return errors.New("TRAY_API_TOKEN is required when TRAY_SANDBOX=false")
	}

	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET is required outside development")
		}
		c.JWTSecret = devJWTSecret
	}
	return nil
}
