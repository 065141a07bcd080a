package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	ServiceName string `env:"SERVICE_NAME"   envDefault:"auth-guard"`
	Storage     string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	Cache       string `env:"CACHE_DRIVER"   envDefault:"redis"`

	Server ServerConfig `envPrefix:"SERVER_"`
	Auth   AuthConfig   `envPrefix:"AUTH_"`
	Admin  AdminConfig  `envPrefix:"ADMIN_"`
	DB     DBConfig     `envPrefix:"POSTGRES_"`
	Redis  RedisConfig  `envPrefix:"REDIS_"`
	S3     S3Config     `envPrefix:"MINIO_"`
	Jaeger JaegerConfig `envPrefix:"JAEGER_"`
	Sentry SentryConfig `envPrefix:"SENTRY_"`
}

type ServerConfig struct {
	Mode   string `env:"MODE"   envDefault:"dev"`
	Port   int    `env:"PORT"   envDefault:"8080"`
	Scheme string `env:"SCHEME" envDefault:"http"`
	Domain string `env:"DOMAIN" envDefault:"localhost"`
}

type AuthConfig struct {
	JWT             JWTConfig       `envPrefix:"JWT_"`
	RateLimit       RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	Lockout         LockoutConfig   `envPrefix:"LOCKOUT_"`
	Refresh         RefreshConfig   `envPrefix:"REFRESH_"`
	Throttle        ThrottleConfig  `envPrefix:"THROTTLE_"`
	Captcha         CaptchaConfig   `envPrefix:"CAPTCHA_"`
	PrivilegedRoles []string        `env:"PRIVILEGED_ROLES" envDefault:"admin" envSeparator:","`

	// TrustProxy takes the client address from X-Forwarded-For / X-Real-IP.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`
}

type JWTConfig struct {
	Secret    string        `env:"SECRET"`
	Issuer    string        `env:"ISSUER"     envDefault:"auth-guard"`
	AccessTTL time.Duration `env:"ACCESS_TTL" envDefault:"15m"`
}

type RateLimitConfig struct {
	Enabled     bool          `env:"ENABLED"      envDefault:"true"`
	MaxAttempts int64         `env:"MAX_ATTEMPTS" envDefault:"5"`
	Window      time.Duration `env:"WINDOW"       envDefault:"1m"`
}

type LockoutConfig struct {
	Enabled   bool          `env:"ENABLED"   envDefault:"true"`
	Threshold int64         `env:"THRESHOLD" envDefault:"5"`
	Window    time.Duration `env:"WINDOW"    envDefault:"15m"`
	Duration  time.Duration `env:"DURATION"  envDefault:"15m"`
}

type RefreshConfig struct {
	IdleWindow     time.Duration `env:"IDLE_WINDOW"     envDefault:"336h"`
	AbsoluteWindow time.Duration `env:"ABSOLUTE_WINDOW" envDefault:"2160h"`
	MaxChainDepth  int           `env:"MAX_CHAIN_DEPTH" envDefault:"1024"`
	SecretBytes    int           `env:"SECRET_BYTES"    envDefault:"32"`
}

type ThrottleConfig struct {
	Enabled bool    `env:"ENABLED" envDefault:"true"`
	RPS     float64 `env:"RPS"     envDefault:"5"`
	Burst   int     `env:"BURST"   envDefault:"20"`
}

type CaptchaConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	Secret  string `env:"SECRET"`
}

type AdminConfig struct {
	Email    string `env:"EMAIL"`
	Password string `env:"PASSWORD"`
}

type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Database string `env:"DB"       envDefault:"auth"`
}

type RedisConfig struct {
	Addr string `env:"ADDR" envDefault:"localhost:6379"`
	Pass string `env:"PASS"`
	DB   int    `env:"DB"   envDefault:"0"`
}

type S3Config struct {
	Enabled  bool   `env:"ENABLED"     envDefault:"false"`
	Addr     string `env:"ADDR"        envDefault:"localhost:9000"`
	User     string `env:"ROOT_USER"`
	Pass     string `env:"ROOT_PASSWORD"`
	Bucket   string `env:"BUCKET"      envDefault:"auth-incidents"`
	UseSSL   bool   `env:"USE_SSL"     envDefault:"false"`
	Location string `env:"LOCATION"    envDefault:"us-east-1"`
}

type JaegerConfig struct {
	Sampler struct {
		Type  string  `env:"TYPE"  envDefault:"const"`
		Param float64 `env:"PARAM" envDefault:"1"`
	} `envPrefix:"SAMPLER_"`
	Reporter struct {
		LogSpans           bool   `env:"LOG_SPANS"             envDefault:"false"`
		LocalAgentHostPort string `env:"LOCAL_AGENT_HOST_PORT" envDefault:"localhost:6831"`
	} `envPrefix:"REPORTER_"`
}

type SentryConfig struct {
	DSN         string `env:"DSN"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

// MustLoad reads an optional dotenv file and parses the process environment.
func MustLoad(path string) Config {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		zap.L().Fatal("failed to load env file", zap.String("path", path), zap.Error(err))
	}

	conf, err := Load()
	if err != nil {
		zap.L().Fatal("failed to parse config", zap.Error(err))
	}

	return conf
}

func Load() (Config, error) {
	conf := Config{}
	if err := env.Parse(&conf); err != nil {
		return conf, err
	}
	return conf, nil
}
