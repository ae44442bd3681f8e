package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the server configuration, loaded from SITEGATE_* environment
// variables.
type Config struct {
	ListenAddr      string        `env:"LISTEN_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"` // "json" or "text"
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`  // "debug", "info", "warn", "error"

	RateLimit int `env:"RATE_LIMIT" envDefault:"600"` // per IP per minute

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","` // empty = disabled

	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For header is
	// used to find the client IP. Empty means the peer address is the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// LoadConfig reads configuration from the environment with defaults. A nil
// environ reads the process environment.
func LoadConfig(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: "SITEGATE_", Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse server config: %w", err)
	}

	origins := cfg.CORSAllowedOrigins[:0]
	for _, o := range cfg.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.CORSAllowedOrigins = origins
	if len(origins) == 0 {
		cfg.CORSAllowedOrigins = nil
	}

	if _, err := parseProxies(cfg.TrustedProxies); err != nil {
		return Config{}, fmt.Errorf("SITEGATE_TRUSTED_PROXIES: %w", err)
	}
	if cfg.RateLimit <= 0 {
		return Config{}, fmt.Errorf("SITEGATE_RATE_LIMIT must be positive, got %d", cfg.RateLimit)
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("SITEGATE_SHUTDOWN_TIMEOUT must be positive, got %s", cfg.ShutdownTimeout)
	}
	return cfg, nil
}
