// Package config reads and writes the per-project sitegate config file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const configFile = ".sitegate/config.json"
const lockFile = ".sitegate/config.json.lock"

// DefaultGeneratedConfig is the generated template config path used when the
// project config does not name one.
const DefaultGeneratedConfig = "template.config.json"

// Context is the evaluation context stored as the project default.
type Context struct {
	Environment string `json:"environment,omitempty"`
	Plan        string `json:"plan,omitempty"`
	Role        string `json:"role,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

// Config is the on-disk project config.
type Config struct {
	FeatureFlags    map[string]bool `json:"feature_flags,omitempty"`
	GeneratedConfig string          `json:"generated_config,omitempty"`
	DefaultContext  *Context        `json:"default_context,omitempty"`
}

// Path returns the config file path for baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, configFile)
}

// Load reads the config from disk
func Load(baseDir string) (*Config, error) {
	data, err := os.ReadFile(Path(baseDir))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}

	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename)
func Save(baseDir string, cfg *Config) error {
	configPath := Path(baseDir)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, configPath)
}

// withConfigLock serializes read-modify-write cycles on config.json using flock
func withConfigLock(baseDir string, fn func() error) error {
	lockPath := filepath.Join(baseDir, lockFile)

	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return fmt.Errorf("lock config: %w", err)
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	return fn()
}

func update(baseDir string, fn func(cfg *Config)) error {
	return withConfigLock(baseDir, func() error {
		cfg, err := Load(baseDir)
		if err != nil {
			return err
		}
		fn(cfg)
		return Save(baseDir, cfg)
	})
}

// GetFeatureFlag returns a feature flag from project config.
// The second return value indicates whether the flag is explicitly set.
func GetFeatureFlag(baseDir, name string) (bool, bool, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return false, false, err
	}
	if cfg.FeatureFlags == nil {
		return false, false, nil
	}
	value, ok := cfg.FeatureFlags[name]
	return value, ok, nil
}

// SetFeatureFlag persists a feature flag in project config.
func SetFeatureFlag(baseDir, name string, enabled bool) error {
	return update(baseDir, func(cfg *Config) {
		if cfg.FeatureFlags == nil {
			cfg.FeatureFlags = make(map[string]bool)
		}
		cfg.FeatureFlags[name] = enabled
	})
}

// UnsetFeatureFlag removes an explicitly-set feature flag from project config.
func UnsetFeatureFlag(baseDir, name string) error {
	return update(baseDir, func(cfg *Config) {
		delete(cfg.FeatureFlags, name)
		if len(cfg.FeatureFlags) == 0 {
			cfg.FeatureFlags = nil
		}
	})
}

// GeneratedConfigPath returns the generated template config path, resolved
// against baseDir when relative.
func GeneratedConfigPath(baseDir string) (string, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return "", err
	}
	p := cfg.GeneratedConfig
	if p == "" {
		p = DefaultGeneratedConfig
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	return p, nil
}

// SetGeneratedConfigPath records the generated config path.
func SetGeneratedConfigPath(baseDir, path string) error {
	return update(baseDir, func(cfg *Config) {
		cfg.GeneratedConfig = path
	})
}

// DefaultContext returns the stored default evaluation context, or a zero
// Context when none is set.
func DefaultContext(baseDir string) (Context, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return Context{}, err
	}
	if cfg.DefaultContext == nil {
		return Context{}, nil
	}
	return *cfg.DefaultContext, nil
}
