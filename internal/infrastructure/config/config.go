package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const EnvProduction = "production"

type Config struct {
	Port      string `env:"PORT,       default=5000"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	APIPrefix string `env:"API_PREFIX, default=/api/v1"`
	ClientURL string `env:"CLIENT_URL, default=http://localhost:5173"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Webhook   WebhookConfig
	Stream    StreamConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI,          default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,           default=interviewme"`
	AutoMigrate bool   `env:"MONGO_AUTO_MIGRATE, default=true"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// AuthConfig holds the key material used to verify identity-provider
// session tokens. One of Secret (HS256) or PublicKey (RS256, PEM) is required.
type AuthConfig struct {
	Secret    string `env:"AUTH_JWT_SECRET"`
	PublicKey string `env:"AUTH_JWT_PUBLIC_KEY"`
	Issuer    string `env:"AUTH_JWT_ISSUER"`
}

type WebhookConfig struct {
	SigningSecret string        `env:"WEBHOOK_SIGNING_SECRET"`
	Tolerance     time.Duration `env:"WEBHOOK_TOLERANCE, default=5m"`
	Workers       int           `env:"WEBHOOK_WORKERS,   default=8"`
	DedupTTL      time.Duration `env:"WEBHOOK_DEDUP_TTL, default=24h"`
}

type StreamConfig struct {
	APIKey    string        `env:"STREAM_API_KEY"`
	APISecret string        `env:"STREAM_API_SECRET"`
	ChatURL   string        `env:"STREAM_CHAT_URL,  default=https://chat.stream-io-api.com"`
	VideoURL  string        `env:"STREAM_VIDEO_URL, default=https://video.stream-io-api.com"`
	Timeout   time.Duration `env:"STREAM_TIMEOUT,   default=10s"`
	TokenTTL  time.Duration `env:"STREAM_TOKEN_TTL, default=1h"`
}

type RateLimitConfig struct {
	Requests int           `env:"RATE_LIMIT_REQUESTS, default=100"`
	Window   time.Duration `env:"RATE_LIMIT_WINDOW,   default=15m"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through lookuper. Tests pass a MapLookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.APIPrefix = "/" + strings.Trim(cfg.APIPrefix, "/")
	return &cfg, nil
}

// Validate checks the settings the server cannot start without. The
// migrate command only needs Mongo and skips this.
func (c *Config) Validate() error {
	var errs []error

	if c.Auth.Secret == "" && c.Auth.PublicKey == "" {
		errs = append(errs, errors.New("one of AUTH_JWT_SECRET or AUTH_JWT_PUBLIC_KEY is required"))
	}
	if c.Webhook.SigningSecret == "" {
		errs = append(errs, errors.New("WEBHOOK_SIGNING_SECRET is required"))
	}
	if c.Stream.APIKey == "" || c.Stream.APISecret == "" {
		errs = append(errs, errors.New("STREAM_API_KEY and STREAM_API_SECRET are required"))
	}
	if c.Mongo.URI == "" || c.Mongo.Database == "" {
		errs = append(errs, errors.New("MONGO_URI and MONGO_DB are required"))
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive"))
	}
	if c.IsProduction() && strings.Contains(c.ClientURL, "localhost") {
		errs = append(errs, errors.New("CLIENT_URL must be set in production"))
	}

	return errors.Join(errs...)
}
