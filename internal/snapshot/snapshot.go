// Package snapshot assembles the feature registry, resolver and template
// settings from the environment and config files, and keeps the current
// assembly swappable at runtime.
package snapshot

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/marcus/sitegate/internal/config"
	"github.com/marcus/sitegate/internal/features"
	"github.com/marcus/sitegate/internal/nav"
	"github.com/marcus/sitegate/internal/siteconfig"
)

// Options controls where a snapshot is loaded from.
type Options struct {
	// Dir is the project directory holding .sitegate/config.json.
	Dir string
	// GeneratedPath overrides the generated config path from project config.
	GeneratedPath string
	// Environ replaces the process environment when non-nil.
	Environ map[string]string
	// Sections replaces the built-in catalogue when non-nil.
	Sections []features.Section
	Logger   *slog.Logger
	// Observer receives every top-level decision of the snapshot's resolver.
	Observer func(features.Decision)
}

// Snapshot is an immutable view of everything resolution needs.
type Snapshot struct {
	Registry       *features.Registry
	Resolver       *features.Resolver
	Settings       siteconfig.Settings
	Overrides      map[features.Name]bool
	DefaultContext features.Context
	GeneratedPath  string
	LoadedAt       time.Time
}

func (o Options) getenv() features.Getenv {
	if o.Environ == nil {
		return os.Getenv
	}
	return func(k string) string { return o.Environ[k] }
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Load builds a snapshot. Any malformed input fails the whole load.
func Load(opts Options) (*Snapshot, error) {
	logger := opts.logger()

	cfg, err := config.Load(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("load project config: %w", err)
	}

	genPath := opts.GeneratedPath
	if genPath == "" {
		if genPath, err = config.GeneratedConfigPath(opts.Dir); err != nil {
			return nil, fmt.Errorf("generated config path: %w", err)
		}
	}
	gen, err := siteconfig.LoadGenerated(genPath)
	if err != nil {
		return nil, err
	}

	env, err := siteconfig.LoadEnv(opts.Environ)
	if err != nil {
		return nil, err
	}
	settings := siteconfig.Resolve(env, gen)

	sections := opts.Sections
	if sections == nil {
		sections = features.DefaultSections()
	}
	overrides := features.Overrides(sections, cfg.FeatureFlags, opts.getenv(), logger)
	reg, err := features.NewRegistry(sections, features.WithOverrides(overrides))
	if err != nil {
		return nil, err
	}

	var ropts []features.ResolverOption
	if opts.Observer != nil {
		ropts = append(ropts, features.WithObserver(opts.Observer))
	}

	s := &Snapshot{
		Registry:      reg,
		Resolver:      features.NewResolver(reg, logger, ropts...),
		Settings:      settings,
		Overrides:     overrides,
		GeneratedPath: genPath,
		LoadedAt:      time.Now(),
	}
	if dc := cfg.DefaultContext; dc != nil {
		s.DefaultContext = features.Context{
			Environment: features.Environment(dc.Environment),
			Plan:        features.Plan(dc.Plan),
			Role:        features.Role(dc.Role),
			UserID:      dc.UserID,
		}
	}
	return s, nil
}

// Any marks a context field as unrestricted, overriding the project default.
const Any = "any"

// Context fills the blank fields of c from the project default context. A
// field still blank afterwards stays unrestricted; a field set to Any is
// cleared after the fill.
func (s *Snapshot) Context(c features.Context) features.Context {
	d := s.DefaultContext
	c.Environment = fill(c.Environment, d.Environment)
	c.Plan = fill(c.Plan, d.Plan)
	c.Role = fill(c.Role, d.Role)
	c.UserID = fill(c.UserID, d.UserID)
	return c
}

// ParseContext parses user-supplied context fields. Blank fields stay blank
// and Any is kept so Context can clear the project default.
func ParseContext(env, plan, role, userID string) (features.Context, error) {
	var c features.Context
	var err error
	if c.Environment, err = parseField(env, features.ParseEnvironment); err != nil {
		return features.Context{}, err
	}
	if c.Plan, err = parseField(plan, features.ParsePlan); err != nil {
		return features.Context{}, err
	}
	if c.Role, err = parseField(role, features.ParseRole); err != nil {
		return features.Context{}, err
	}
	c.UserID = strings.TrimSpace(userID)
	return c, nil
}

func parseField[T ~string](raw string, parse func(string) (T, error)) (T, error) {
	v := strings.TrimSpace(raw)
	switch {
	case v == "":
		return "", nil
	case strings.EqualFold(v, Any):
		return Any, nil
	}
	return parse(v)
}

func fill[T ~string](v, def T) T {
	switch v {
	case "":
		return def
	case Any:
		return ""
	}
	return v
}

// Navigation composes navigation from the snapshot's settings.
func (s *Snapshot) Navigation() nav.Navigation {
	return nav.Compose(s.Settings.Toggles())
}
