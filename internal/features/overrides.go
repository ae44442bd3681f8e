package features

import (
	"log/slog"
	"strings"
	"unicode"
)

// Override sources, highest precedence first.
const (
	SourceEnv     = "env"
	SourceConfig  = "config"
	SourceDefault = "default"
)

// Getenv looks up an environment variable. os.Getenv satisfies it.
type Getenv func(string) string

// ResolveOverride decides whether the master switch of name is overridden,
// checking environment overrides first and then the project config flags.
// ok is false when nothing overrides the catalogue value.
func ResolveOverride(name Name, section string, projectFlags map[string]bool, getenv Getenv) (enabled bool, source string, ok bool) {
	if getenv != nil {
		if enabled, ok := resolveEnvOverride(name, section, getenv); ok {
			return enabled, SourceEnv, true
		}
	}
	if enabled, ok := projectFlags[string(name)]; ok {
		return enabled, SourceConfig, true
	}
	return false, SourceDefault, false
}

// Overrides computes the master-switch overrides for every flag in sections.
// Project flags naming unknown features are logged and skipped.
func Overrides(sections []Section, projectFlags map[string]bool, getenv Getenv, logger *slog.Logger) map[Name]bool {
	if logger == nil {
		logger = slog.Default()
	}
	known := make(map[Name]bool)
	out := make(map[Name]bool)
	for _, s := range sections {
		for _, f := range s.Flags {
			known[f.Name] = true
			if enabled, _, ok := ResolveOverride(f.Name, s.Name, projectFlags, getenv); ok {
				out[f.Name] = enabled
			}
		}
	}
	for key := range projectFlags {
		if !known[Name(key)] {
			logger.Warn("ignoring override for unknown feature", "feature", key)
		}
	}
	return out
}

func resolveEnvOverride(name Name, section string, getenv Getenv) (bool, bool) {
	// Kill-switch for the whole experimental section.
	if section == SectionExperimental {
		if disabled, ok := parseBoolEnv(getenv, "SITEGATE_DISABLE_EXPERIMENTAL"); ok && disabled {
			return false, true
		}
	}

	featureVar := "SITEGATE_FEATURE_" + normalizeForEnvKey(string(name))
	if enabled, ok := parseBoolEnv(getenv, featureVar); ok {
		return enabled, true
	}

	if containsFeatureName(getenv("SITEGATE_DISABLE_FEATURES"), name) {
		return false, true
	}
	if containsFeatureName(getenv("SITEGATE_ENABLE_FEATURES"), name) {
		return true, true
	}

	return false, false
}

func normalizeForEnvKey(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range upper {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	return b.String()
}

// ParseBool accepts the on/off spellings used by overrides.
func ParseBool(value string) (bool, bool) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "1", "true", "on", "yes":
		return true, true
	case "0", "false", "off", "no":
		return false, true
	default:
		return false, false
	}
}

func parseBoolEnv(getenv Getenv, key string) (bool, bool) {
	return ParseBool(getenv(key))
}

func containsFeatureName(raw string, target Name) bool {
	if raw == "" {
		return false
	}
	for _, item := range strings.Split(raw, ",") {
		if Name(normalizeName(item)) == target {
			return true
		}
	}
	return false
}
