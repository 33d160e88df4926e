package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	OTLPEndpoint string

	TemplatePath     string
	LayoutConfigPath string
	DueDays          int

	Listing UpstreamConfig
	Tax     TaxConfig

	Redis     RedisConfig
	RateLimit RateLimitConfig

	CORSAllowedOrigins []string
}

// UpstreamConfig configures an outbound HTTP dependency.
type UpstreamConfig struct {
	URL         string
	Timeout     time.Duration
	MaxAttempts uint
}

type TaxConfig struct {
	UpstreamConfig
	APIKey   string
	CacheTTL time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func (c RateLimitConfig) Enabled() bool {
	return c.RPS > 0
}

const (
	DefaultListingURL   = "https://garage-backend.onrender.com/getListing"
	DefaultTaxURL       = "https://api.api-ninjas.com/v1/salestax"
	DefaultTemplatePath = "sales-invoice.pdf"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:          Env("APP_SERVICE", "invoicefill"),
		AppVersion:       Env("APP_VERSION", "0.1.0"),
		Environment:      Env("ENVIRONMENT", "development"),
		HTTPAddr:         Env("HTTP_ADDR", ":8080"),
		OTLPEndpoint:     Env("OTLP_ENDPOINT", "localhost:4317"),
		TemplatePath:     Env("TEMPLATE_PATH", DefaultTemplatePath),
		LayoutConfigPath: Env("LAYOUT_CONFIG_PATH", ""),
		DueDays:          int(EnvInt("DUE_DAYS", 30)),
		Listing: UpstreamConfig{
			URL:         Env("LISTING_API_URL", DefaultListingURL),
			Timeout:     EnvDuration("LISTING_TIMEOUT", 10*time.Second),
			MaxAttempts: attempts("LISTING_MAX_ATTEMPTS"),
		},
		Tax: TaxConfig{
			UpstreamConfig: UpstreamConfig{
				URL:         Env("TAX_API_URL", DefaultTaxURL),
				Timeout:     EnvDuration("TAX_TIMEOUT", 5*time.Second),
				MaxAttempts: attempts("TAX_MAX_ATTEMPTS"),
			},
			APIKey:   Env("TAX_API_KEY", ""),
			CacheTTL: EnvDuration("TAX_CACHE_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     Env("REDIS_ADDR", ""),
			Password: Env("REDIS_PASSWORD", ""),
			DB:       int(EnvInt("REDIS_DB", 0)),
		},
		RateLimit: RateLimitConfig{
			RPS:   EnvFloat("RATE_LIMIT_RPS", 0),
			Burst: int(EnvInt("RATE_LIMIT_BURST", 5)),
		},
		CORSAllowedOrigins: parseList(Env("CORS_ALLOWED_ORIGINS", "*")),
	}

	if cfg.DueDays < 0 {
		cfg.DueDays = 30
	}

	return cfg
}

// attempts reads a retry budget; anything below one means a single try.
func attempts(key string) uint {
	n := EnvInt(key, 1)
	if n < 1 {
		return 1
	}
	return uint(n)
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
