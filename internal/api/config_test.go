package api

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(map[string]string{})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{
		ListenAddr:      ":8080",
		ShutdownTimeout: 10 * time.Second,
		LogFormat:       "json",
		LogLevel:        "info",
		RateLimit:       600,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("defaults (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	cfg, err := LoadConfig(map[string]string{
		"SITEGATE_LISTEN_ADDR":          "127.0.0.1:9000",
		"SITEGATE_SHUTDOWN_TIMEOUT":     "3s",
		"SITEGATE_LOG_FORMAT":           "text",
		"SITEGATE_RATE_LIMIT":           "20",
		"SITEGATE_CORS_ALLOWED_ORIGINS": "https://a.example.com, ,https://b.example.com",
		"SITEGATE_TRUSTED_PROXIES":      "10.0.0.0/8",
	})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9000" || cfg.ShutdownTimeout != 3*time.Second || cfg.LogFormat != "text" || cfg.RateLimit != 20 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if diff := cmp.Diff([]string{"10.0.0.0/8"}, cfg.TrustedProxies); diff != "" {
		t.Fatalf("proxies (-want +got):\n%s", diff)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if diff := cmp.Diff(want, cfg.CORSAllowedOrigins); diff != "" {
		t.Fatalf("origins (-want +got):\n%s", diff)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	for _, environ := range []map[string]string{
		{"SITEGATE_RATE_LIMIT": "0"},
		{"SITEGATE_RATE_LIMIT": "lots"},
		{"SITEGATE_SHUTDOWN_TIMEOUT": "soon"},
		{"SITEGATE_TRUSTED_PROXIES": "10.0.0.0/8,not-an-ip"},
	} {
		if _, err := LoadConfig(environ); err == nil {
			t.Errorf("LoadConfig(%v) should fail", environ)
		}
	}
}
