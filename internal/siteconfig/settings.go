package siteconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/marcus/sitegate/internal/features"
	"github.com/marcus/sitegate/internal/nav"
)

// Provider is the payments provider the site is wired to.
type Provider string

const (
	ProviderStripe       Provider = "stripe"
	ProviderLemonSqueezy Provider = "lemonsqueezy"
	ProviderNone         Provider = "none"
)

// ErrInvalidProvider is returned for provider names outside the known set.
var ErrInvalidProvider = errors.New("invalid payments provider")

// ParseProvider parses a provider name, case-insensitively.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case ProviderStripe, ProviderLemonSqueezy, ProviderNone:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidProvider, s)
	}
}

// Where a setting came from.
const (
	SourceEnv       = "env"
	SourceGenerated = "generated"
	SourceDefault   = "default"
)

// Sources records the origin of each resolved setting.
type Sources struct {
	UserAccounts     string `json:"user_accounts"`
	Blog             string `json:"blog"`
	Admin            string `json:"admin"`
	PaymentsProvider string `json:"payments_provider"`
	Environment      string `json:"environment"`
}

// Site is the public site metadata.
type Site struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Site defaults.
const (
	DefaultSiteName        = "Golden SaaS"
	DefaultSiteDescription = "A production-ready starting point for SaaS products."
	DefaultSiteURL         = "http://localhost:3000"
)

// Settings is the resolved template config. Build it once with Resolve and
// pass it by value.
type Settings struct {
	UserAccounts     bool                 `json:"user_accounts"`
	Blog             bool                 `json:"blog"`
	Admin            bool                 `json:"admin"`
	PaymentsProvider Provider             `json:"payments_provider"`
	Environment      features.Environment `json:"environment"`
	Site             Site                 `json:"site"`
	Sources          Sources              `json:"sources"`
}

// Resolve applies the precedence env > generated > default to every field.
// gen may be nil.
func Resolve(e Env, gen *Generated) Settings {
	var s Settings
	s.UserAccounts, s.Sources.UserAccounts = resolveBool(e.UserAccountsEnabled, gen.authEnabled())
	s.Blog, s.Sources.Blog = resolveBool(e.BlogEnabled, gen.blogEnabled())
	s.Admin, s.Sources.Admin = resolveBool(e.AdminEnabled, gen.adminEnabled())
	s.PaymentsProvider, s.Sources.PaymentsProvider = resolveProvider(e.PaymentsProvider, gen.billingProvider())
	s.Environment, s.Sources.Environment = resolveEnvironment(e.NodeEnv)
	s.Site = Site{
		Name:        firstNonEmpty(e.SiteName, DefaultSiteName),
		Description: firstNonEmpty(e.SiteDescription, DefaultSiteDescription),
		URL:         strings.TrimRight(firstNonEmpty(e.AppURL, DefaultSiteURL), "/"),
	}
	return s
}

// resolveBool: a set variable is true unless it reads "false"; otherwise the
// generated value; otherwise true.
func resolveBool(envValue string, generated *bool) (bool, string) {
	if v := strings.TrimSpace(envValue); v != "" {
		return !strings.EqualFold(v, "false"), SourceEnv
	}
	if generated != nil {
		return *generated, SourceGenerated
	}
	return true, SourceDefault
}

// resolveProvider treats a malformed env value as unset. The generated
// config's "paddle" maps to stripe.
func resolveProvider(envValue string, generated *string) (Provider, string) {
	if strings.TrimSpace(envValue) != "" {
		if p, err := ParseProvider(envValue); err == nil {
			return p, SourceEnv
		}
	}
	if generated != nil {
		raw := strings.ToLower(strings.TrimSpace(*generated))
		if raw == "paddle" {
			return ProviderStripe, SourceGenerated
		}
		if p, err := ParseProvider(raw); err == nil {
			return p, SourceGenerated
		}
	}
	return ProviderNone, SourceDefault
}

func resolveEnvironment(nodeEnv string) (features.Environment, string) {
	switch strings.ToLower(strings.TrimSpace(nodeEnv)) {
	case "":
		return features.EnvDevelopment, SourceDefault
	case "production":
		return features.EnvProduction, SourceEnv
	case "test":
		return features.EnvTest, SourceEnv
	case "staging":
		return features.EnvStaging, SourceEnv
	default:
		return features.EnvDevelopment, SourceEnv
	}
}

// IsUserAccountsEnabled reports whether sign-up and sign-in exist.
func (s Settings) IsUserAccountsEnabled() bool { return s.UserAccounts }

// IsBlogEnabled reports whether the blog exists.
func (s Settings) IsBlogEnabled() bool { return s.Blog }

// IsAdminEnabled reports whether the super-admin area exists.
func (s Settings) IsAdminEnabled() bool { return s.Admin }

// GetPaymentsProvider returns the configured provider.
func (s Settings) GetPaymentsProvider() Provider { return s.PaymentsProvider }

// IsBillingEnabled reports whether a payments provider is configured.
func (s Settings) IsBillingEnabled() bool { return s.PaymentsProvider != ProviderNone }

// Toggles converts the settings into navigation toggles.
func (s Settings) Toggles() nav.Toggles {
	return nav.Toggles{
		IncludeAuth:    s.UserAccounts,
		IncludeAdmin:   s.Admin,
		IncludeBlog:    s.Blog,
		IncludeBilling: s.IsBillingEnabled(),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
