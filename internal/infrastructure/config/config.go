package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	AppName      string   `env:"APP_NAME,      default=users_service"`
	Port         string   `env:"PORT,          default=8000"`
	Env          string   `env:"ENV,           default=development"`
	LogLevel     string   `env:"LOG_LEVEL,     default=info"`
	AllowedHosts []string `env:"ALLOWED_HOSTS, default=localhost"`

	JWT       JWTConfig
	Hash      HashConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type JWTConfig struct {
	SecretKey        string `env:"JWT_SECRET_KEY"`
	SecretRefreshKey string `env:"JWT_SECRET_REFRESH_KEY"`
	Algorithm        string `env:"JWT_ALGORITHM,            default=HS256"`
	AccessMinutes    int    `env:"ACCESS_TOKEN_EXPIRES_IN,  default=15"`
	RefreshMinutes   int    `env:"REFRESH_TOKEN_EXPIRES_IN, default=1440"`
}

func (j JWTConfig) AccessTTL() time.Duration  { return time.Duration(j.AccessMinutes) * time.Minute }
func (j JWTConfig) RefreshTTL() time.Duration { return time.Duration(j.RefreshMinutes) * time.Minute }

type HashConfig struct {
	Cost    int `env:"BCRYPT_COST,  default=10"`
	Workers int `env:"HASH_WORKERS, default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=users_service"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type RateLimitConfig struct {
	Enabled  bool          `env:"RATE_LIMIT_ENABLED,  default=true"`
	Requests int           `env:"RATE_LIMIT_REQUESTS, default=10"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW,   default=1m"`
}

// IsProduction reports whether logs should be emitted as plain JSON.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom processes configuration from l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the token and hashing layers cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.JWT.SecretKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required"))
	}
	if c.JWT.SecretRefreshKey == "" {
		errs = append(errs, errors.New("JWT_SECRET_REFRESH_KEY is required"))
	}
	if c.JWT.SecretKey != "" && c.JWT.SecretKey == c.JWT.SecretRefreshKey {
		errs = append(errs, errors.New("JWT_SECRET_KEY and JWT_SECRET_REFRESH_KEY must differ"))
	}
	switch c.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		errs = append(errs, fmt.Errorf("JWT_ALGORITHM %q is not supported", c.JWT.Algorithm))
	}
	if c.JWT.AccessMinutes <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_EXPIRES_IN must be positive"))
	}
	if c.JWT.RefreshMinutes <= 0 {
		errs = append(errs, errors.New("REFRESH_TOKEN_EXPIRES_IN must be positive"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
