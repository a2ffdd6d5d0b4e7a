// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/acucogn/site/internal/util"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Content backends.
const (
	BackendSQL      = "sql"
	BackendSupabase = "supabase"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Chat providers for the built-in /api/chat endpoint.
const (
	ChatProviderCanned    = "canned"
	ChatProviderOpenAI    = "openai"
	ChatProviderAnthropic = "anthropic"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env           string `env:"ACUCOGN_ENV" envDefault:"development"`
	LogLevel      string `env:"ACUCOGN_LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"ACUCOGN_LOG_FORMAT" envDefault:"text"`
	ServerHost    string `env:"ACUCOGN_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"ACUCOGN_SERVER_PORT" envDefault:"8080"`
	SiteURL       string `env:"ACUCOGN_SITE_URL" envDefault:"http://localhost:8080"`
	SessionSecret string `env:"ACUCOGN_SESSION_SECRET,required"`

	// Content backend
	Backend  string `env:"ACUCOGN_BACKEND" envDefault:"sql"`
	DBDriver string `env:"ACUCOGN_DB_DRIVER" envDefault:"sqlite"`
	DBDSN    string `env:"ACUCOGN_DB_DSN" envDefault:"./data/acucogn.db"` // MySQL DSNs need parseTime=true
	DoSeed   bool   `env:"ACUCOGN_DO_SEED" envDefault:"false"`

	// Hosted backend-as-a-service
	SupabaseURL string `env:"ACUCOGN_SUPABASE_URL"`
	SupabaseKey string `env:"ACUCOGN_SUPABASE_KEY"`

	// Chat widget transport
	ChatBaseURL string        `env:"ACUCOGN_CHAT_BASE_URL" envDefault:"http://localhost:8080"`
	ChatTimeout time.Duration `env:"ACUCOGN_CHAT_TIMEOUT" envDefault:"30s"`

	// Built-in chat endpoint
	ChatProvider    string `env:"ACUCOGN_CHAT_PROVIDER" envDefault:"canned"`
	OpenAIAPIKey    string `env:"ACUCOGN_OPENAI_API_KEY"`
	OpenAIModel     string `env:"ACUCOGN_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL   string `env:"ACUCOGN_OPENAI_BASE_URL"` // Optional OpenAI-compatible endpoint
	AnthropicAPIKey string `env:"ACUCOGN_ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"ACUCOGN_ANTHROPIC_MODEL" envDefault:"claude-3-5-haiku-latest"`

	// Cache configuration
	RedisURL     string `env:"ACUCOGN_REDIS_URL"`                           // Optional Redis URL for shared caching
	CachePrefix  string `env:"ACUCOGN_CACHE_PREFIX" envDefault:"acucogn:"`  // Redis key prefix
	CacheTTL     int    `env:"ACUCOGN_CACHE_TTL" envDefault:"300"`          // Article cache TTL in seconds, 0 disables
	CacheMaxSize int    `env:"ACUCOGN_CACHE_MAX_SIZE" envDefault:"1000"`    // Max memory cache entries
	WarmSchedule string `env:"ACUCOGN_WARM_SCHEDULE" envDefault:"@every 5m"` // Cron spec for cache warm-up

	// GeoIP configuration
	GeoIPDBPath string `env:"ACUCOGN_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Local images
	UploadsDir    string `env:"ACUCOGN_UPLOADS_DIR" envDefault:"./uploads"`
	ThumbCacheDir string `env:"ACUCOGN_THUMB_CACHE_DIR" envDefault:"./data/thumbs"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// UseSupabase returns true if articles and leads go to the hosted backend.
func (c Config) UseSupabase() bool {
	return c.Backend == BackendSupabase
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// CacheEnabled returns true if article responses should be cached.
func (c Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("ACUCOGN_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("ACUCOGN_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return fmt.Errorf("ACUCOGN_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("ACUCOGN_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}

	switch c.Backend {
	case BackendSQL:
		switch c.DBDriver {
		case DriverSQLite, DriverPostgres, DriverMySQL:
		default:
			return fmt.Errorf("ACUCOGN_DB_DRIVER must be one of sqlite, postgres, mysql, got %q", c.DBDriver)
		}
		if c.DBDSN == "" {
			return fmt.Errorf("ACUCOGN_DB_DSN is required for the sql backend")
		}
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("ACUCOGN_SUPABASE_URL and ACUCOGN_SUPABASE_KEY are required for the supabase backend")
		}
		if err := util.ValidateEndpointURL(c.SupabaseURL); err != nil {
			return fmt.Errorf("ACUCOGN_SUPABASE_URL: %w", err)
		}
	default:
		return fmt.Errorf("ACUCOGN_BACKEND must be sql or supabase, got %q", c.Backend)
	}

	if err := util.ValidateEndpointURL(c.ChatBaseURL); err != nil {
		return fmt.Errorf("ACUCOGN_CHAT_BASE_URL: %w", err)
	}

	switch c.ChatProvider {
	case ChatProviderCanned:
	case ChatProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("ACUCOGN_OPENAI_API_KEY is required for the openai chat provider")
		}
	case ChatProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ACUCOGN_ANTHROPIC_API_KEY is required for the anthropic chat provider")
		}
	default:
		return fmt.Errorf("ACUCOGN_CHAT_PROVIDER must be one of canned, openai, anthropic, got %q", c.ChatProvider)
	}

	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
