// Package siteconfig resolves the coarse site switches (user accounts, blog,
// admin, payments provider) from environment variables, an optional generated
// template config, and built-in defaults.
package siteconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env is the raw environment snapshot the adapter reads. Empty or
// whitespace-only values mean the variable is unset. A set *_ENABLED switch is
// on unless it reads "false", compared case-insensitively ("FALSE" is off).
type Env struct {
	UserAccountsEnabled string `env:"NEXT_PUBLIC_USER_ACCOUNTS_ENABLED"`
	BlogEnabled         string `env:"NEXT_PUBLIC_BLOG_ENABLED"`
	AdminEnabled        string `env:"NEXT_PUBLIC_ADMIN_ENABLED"`
	PaymentsProvider    string `env:"NEXT_PUBLIC_PAYMENTS_PROVIDER"`
	NodeEnv             string `env:"NODE_ENV"`

	SiteName        string `env:"NEXT_PUBLIC_SITE_NAME"`
	SiteDescription string `env:"NEXT_PUBLIC_SITE_DESCRIPTION"`
	AppURL          string `env:"NEXT_PUBLIC_APP_URL"`
}

// LoadEnv parses the environment. A nil environ reads the process
// environment; tests pass an explicit map.
func LoadEnv(environ map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
