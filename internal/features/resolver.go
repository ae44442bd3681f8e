package features

import (
	"fmt"
	"log/slog"
	"slices"
)

// Context is the per-call evaluation input. Empty fields leave that
// dimension unrestricted.
type Context struct {
	Environment Environment `json:"environment,omitempty"`
	Plan        Plan        `json:"plan,omitempty"`
	Role        Role        `json:"role,omitempty"`
	UserID      string      `json:"user_id,omitempty"`
}

// Reason explains a decision.
type Reason string

const (
	ReasonEnabled     Reason = "enabled"
	ReasonUnknown     Reason = "unknown"
	ReasonDisabled    Reason = "disabled"
	ReasonEnvironment Reason = "environment"
	ReasonPlan        Reason = "plan"
	ReasonRole        Reason = "role"
	ReasonRollout     Reason = "rollout"
	ReasonDependency  Reason = "dependency"
	ReasonCycle       Reason = "cycle"
)

// Decision is the outcome of resolving one feature.
type Decision struct {
	Name    Name   `json:"name"`
	Enabled bool   `json:"enabled"`
	Reason  Reason `json:"reason"`
	Detail  string `json:"detail,omitempty"`
	// Bucket is set when a rollout percentage was evaluated.
	Bucket *int `json:"bucket,omitempty"`
	// BlockedBy names the first dependency that resolved false.
	BlockedBy Name `json:"blocked_by,omitempty"`
}

// Resolver evaluates flags from a registry. It holds no mutable state and is
// safe for concurrent use.
type Resolver struct {
	registry *Registry
	logger   *slog.Logger
	observe  func(Decision)
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithObserver registers a callback invoked with every top-level decision.
func WithObserver(fn func(Decision)) ResolverOption {
	return func(r *Resolver) { r.observe = fn }
}

// NewResolver returns a resolver over reg. A nil logger uses slog.Default.
func NewResolver(reg *Registry, logger *slog.Logger, opts ...ResolverOption) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{registry: reg, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the catalogue the resolver evaluates.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// IsEnabled reports whether name is active for ctx. Unknown names are logged
// and resolve to false.
func (r *Resolver) IsEnabled(name Name, ctx Context) bool {
	return r.Explain(name, ctx).Enabled
}

// IsEnabledKey is IsEnabled for a free-form key.
func (r *Resolver) IsEnabledKey(key string, ctx Context) bool {
	return r.Explain(Name(normalizeName(key)), ctx).Enabled
}

// Explain resolves name for ctx and reports why.
func (r *Resolver) Explain(name Name, ctx Context) Decision {
	d := r.resolve(name, ctx, map[Name]bool{})
	if d.Reason == ReasonUnknown {
		r.logger.Warn("feature not found", "feature", string(name))
	}
	if r.observe != nil {
		r.observe(d)
	}
	return d
}

// EnabledFeatures lists every active feature for ctx in declaration order.
func (r *Resolver) EnabledFeatures(ctx Context) []Name {
	var out []Name
	for _, name := range r.registry.order {
		if r.IsEnabled(name, ctx) {
			out = append(out, name)
		}
	}
	return out
}

// Evaluate returns a decision for every feature in declaration order.
func (r *Resolver) Evaluate(ctx Context) []Decision {
	out := make([]Decision, 0, len(r.registry.order))
	for _, name := range r.registry.order {
		out = append(out, r.Explain(name, ctx))
	}
	return out
}

// resolve applies the rules in a fixed order: master switch, environment,
// plan, role, rollout bucket, dependencies. visiting holds the names on the
// current dependency path.
func (r *Resolver) resolve(name Name, ctx Context, visiting map[Name]bool) Decision {
	f, ok := r.registry.index[name]
	if !ok {
		return Decision{Name: name, Reason: ReasonUnknown}
	}
	if !f.Enabled {
		return Decision{Name: name, Reason: ReasonDisabled}
	}
	if len(f.Environments) > 0 && ctx.Environment != "" && !slices.Contains(f.Environments, ctx.Environment) {
		return Decision{Name: name, Reason: ReasonEnvironment, Detail: fmt.Sprintf("environment %q not allowed", ctx.Environment)}
	}
	if len(f.Plans) > 0 && ctx.Plan != "" && !slices.Contains(f.Plans, ctx.Plan) {
		return Decision{Name: name, Reason: ReasonPlan, Detail: fmt.Sprintf("plan %q not allowed", ctx.Plan)}
	}
	if len(f.Roles) > 0 && ctx.Role != "" && !slices.Contains(f.Roles, ctx.Role) {
		return Decision{Name: name, Reason: ReasonRole, Detail: fmt.Sprintf("role %q not allowed", ctx.Role)}
	}

	var bucket *int
	if f.Percentage != nil && ctx.UserID != "" {
		b := Bucket(ctx.UserID, name)
		bucket = &b
		if b >= *f.Percentage {
			return Decision{
				Name:   name,
				Reason: ReasonRollout,
				Detail: fmt.Sprintf("bucket %d outside %d%% rollout", b, *f.Percentage),
				Bucket: bucket,
			}
		}
	}

	if len(f.Dependencies) > 0 {
		visiting[name] = true
		defer delete(visiting, name)
		for _, dep := range f.Dependencies {
			if visiting[dep] {
				r.logger.Error("feature dependency cycle", "feature", string(name), "dependency", string(dep))
				return Decision{Name: name, Reason: ReasonCycle, Detail: fmt.Sprintf("cycle through %q", dep), Bucket: bucket, BlockedBy: dep}
			}
			if d := r.resolve(dep, ctx, visiting); !d.Enabled {
				return Decision{
					Name:      name,
					Reason:    ReasonDependency,
					Detail:    fmt.Sprintf("%s: %s", dep, d.Reason),
					Bucket:    bucket,
					BlockedBy: dep,
				}
			}
		}
	}

	return Decision{Name: name, Enabled: true, Reason: ReasonEnabled, Bucket: bucket}
}
