package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"

	envDevelopment = "development"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth   AuthConfig
	Store  string `env:"STORE, default=mongo"`
	Mongo  MongoConfig
	Redis  RedisConfig
	SignIn SignInConfig

	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`
}

type AuthConfig struct {
	JWTSecret        string        `env:"JWT_SECRET"`
	// TokenTTL defaults to the fixed one-day lifetime; other values are an operator override.
	TokenTTL         time.Duration `env:"TOKEN_TTL,          default=24h"`
	Enforce          bool          `env:"AUTH_ENFORCE,       default=true"`
	AllowAdminSignUp bool          `env:"ALLOW_ADMIN_SIGNUP, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=taskboard"`
}

// RedisConfig is optional. An empty REDIS_ADDR disables the sign-in limiter.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type SignInConfig struct {
	MaxAttempts int           `env:"SIGNIN_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"SIGNIN_WINDOW,       default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, envDevelopment)
}

func (c *Config) validate() error {
	var errs []error

	switch c.Store {
	case StoreMongo, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE must be %q or %q, got %q", StoreMongo, StoreMemory, c.Store))
	}

	if c.Auth.JWTSecret == "" {
		if !c.IsDevelopment() {
			errs = append(errs, errors.New("JWT_SECRET is required outside development"))
		}
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.Redis.Addr != "" && c.SignIn.MaxAttempts <= 0 {
		errs = append(errs, errors.New("SIGNIN_MAX_ATTEMPTS must be positive"))
	}

	return errors.Join(errs...)
}
