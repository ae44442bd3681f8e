package features

import (
	"fmt"
	"strings"
)

// Environments lists the known environment tags.
var Environments = []Environment{EnvDevelopment, EnvStaging, EnvProduction, EnvTest}

// Plans lists the known plan tags.
var Plans = []Plan{PlanFree, PlanPro, PlanEnterprise}

// Roles lists the known role tags.
var Roles = []Role{RoleUser, RoleAdmin, RoleSuperAdmin}

// ParseEnvironment parses an environment tag. "dev" and "prod" are accepted.
func ParseEnvironment(s string) (Environment, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "dev":
		return EnvDevelopment, nil
	case "prod":
		return EnvProduction, nil
	default:
		return parseTag(v, Environments, "environment")
	}
}

// ParsePlan parses a plan tag.
func ParsePlan(s string) (Plan, error) {
	return parseTag(strings.ToLower(strings.TrimSpace(s)), Plans, "plan")
}

// ParseRole parses a role tag. "super-admin" is accepted.
func ParseRole(s string) (Role, error) {
	v := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	return parseTag(v, Roles, "role")
}

func parseTag[T ~string](v string, known []T, kind string) (T, error) {
	for _, k := range known {
		if string(k) == v {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid %s %q (want one of %s)", kind, v, joinTags(known))
}

func joinTags[T ~string](tags []T) string {
	s := make([]string, len(tags))
	for i, t := range tags {
		s[i] = string(t)
	}
	return strings.Join(s, ", ")
}
