// Package features holds the static feature catalogue and the resolver that
// decides whether a feature is active for a request context.
package features

import (
	"errors"
	"fmt"
	"strings"
)

// Name identifies a feature in the catalogue.
type Name string

// Environment is a deployment environment tag.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
	EnvTest        Environment = "test"
)

// Plan is a subscription tier.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// Role is a user role tag.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ErrUnknownFeature is returned when a name is not in the catalogue.
var ErrUnknownFeature = errors.New("unknown feature")

// Flag describes a feature and the rules that gate it.
// Nil or empty allow-lists leave that dimension unrestricted.
type Flag struct {
	Name         Name          `json:"name"`
	Description  string        `json:"description"`
	Enabled      bool          `json:"enabled"`
	Environments []Environment `json:"environments,omitempty"`
	Plans        []Plan        `json:"plans,omitempty"`
	Roles        []Role        `json:"roles,omitempty"`
	Percentage   *int          `json:"percentage,omitempty"`
	Dependencies []Name        `json:"dependencies,omitempty"`
}

// Section groups flags for display. It has no effect on resolution.
type Section struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Flags []Flag `json:"flags"`
}

// Registry is an immutable, validated feature catalogue.
type Registry struct {
	sections []Section
	index    map[Name]Flag
	order    []Name
	section  map[Name]string
}

// Option adjusts a registry while it is being built.
type Option func(*buildOptions)

type buildOptions struct {
	overrides map[Name]bool
}

// WithOverrides replaces the master switch of the named flags.
func WithOverrides(overrides map[Name]bool) Option {
	return func(o *buildOptions) {
		if len(overrides) == 0 {
			return
		}
		if o.overrides == nil {
			o.overrides = make(map[Name]bool, len(overrides))
		}
		for name, enabled := range overrides {
			o.overrides[name] = enabled
		}
	}
}

// NewRegistry copies sections into a registry, applies options and validates
// the result. Every problem found is reported in the returned error.
func NewRegistry(sections []Section, opts ...Option) (*Registry, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		sections: make([]Section, len(sections)),
		index:    make(map[Name]Flag),
		section:  make(map[Name]string),
	}

	var errs []error
	for i, s := range sections {
		copied := Section{Name: s.Name, Title: s.Title, Flags: make([]Flag, len(s.Flags))}
		for j, f := range s.Flags {
			f = f.clone()
			if enabled, ok := o.overrides[f.Name]; ok {
				f.Enabled = enabled
			}
			copied.Flags[j] = f

			if _, dup := r.index[f.Name]; dup {
				errs = append(errs, fmt.Errorf("duplicate feature %q in section %q", f.Name, s.Name))
				continue
			}
			r.index[f.Name] = f
			r.section[f.Name] = s.Name
			r.order = append(r.order, f.Name)
		}
		r.sections[i] = copied
	}

	for name := range o.overrides {
		if _, ok := r.index[name]; !ok {
			errs = append(errs, fmt.Errorf("override for %w %q", ErrUnknownFeature, name))
		}
	}

	errs = append(errs, r.validate()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid feature catalogue: %w", errors.Join(errs...))
	}
	return r, nil
}

func (r *Registry) validate() []error {
	var errs []error
	for _, name := range r.order {
		f := r.index[name]
		if f.Percentage != nil && (*f.Percentage < 0 || *f.Percentage > 100) {
			errs = append(errs, fmt.Errorf("feature %q: percentage %d outside 0-100", name, *f.Percentage))
		}
		for _, dep := range f.Dependencies {
			if _, ok := r.index[dep]; !ok {
				errs = append(errs, fmt.Errorf("feature %q depends on %w %q", name, ErrUnknownFeature, dep))
			}
		}
	}
	if cycle := r.findCycle(); cycle != nil {
		parts := make([]string, len(cycle))
		for i, n := range cycle {
			parts[i] = string(n)
		}
		errs = append(errs, fmt.Errorf("dependency cycle: %s", strings.Join(parts, " -> ")))
	}
	return errs
}

// findCycle returns the first dependency cycle found, closed with its first
// element repeated, or nil.
func (r *Registry) findCycle() []Name {
	const (
		unvisited = iota
		inStack
		done
	)
	state := make(map[Name]int, len(r.index))
	var stack []Name

	var visit func(Name) []Name
	visit = func(n Name) []Name {
		state[n] = inStack
		stack = append(stack, n)
		for _, dep := range r.index[n].Dependencies {
			if _, ok := r.index[dep]; !ok {
				continue
			}
			switch state[dep] {
			case inStack:
				for i, s := range stack {
					if s == dep {
						cycle := append([]Name(nil), stack[i:]...)
						return append(cycle, dep)
					}
				}
			case unvisited:
				if c := visit(dep); c != nil {
					return c
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[n] = done
		return nil
	}

	for _, n := range r.order {
		if state[n] == unvisited {
			if c := visit(n); c != nil {
				return c
			}
		}
	}
	return nil
}

// Lookup returns the flag registered under name.
func (r *Registry) Lookup(name Name) (Flag, bool) {
	f, ok := r.index[name]
	if !ok {
		return Flag{}, false
	}
	return f.clone(), true
}

// Config returns the flag for a free-form key, or nil when it is unknown.
func (r *Registry) Config(key string) *Flag {
	name, ok := r.ParseName(key)
	if !ok {
		return nil
	}
	f, _ := r.Lookup(name)
	return &f
}

// ParseName converts a user-supplied key into a catalogue name.
func (r *Registry) ParseName(key string) (Name, bool) {
	name := Name(normalizeName(key))
	_, ok := r.index[name]
	return name, ok
}

// SectionOf reports which section a feature was declared in.
func (r *Registry) SectionOf(name Name) string {
	return r.section[name]
}

// Names returns every feature name in declaration order.
func (r *Registry) Names() []Name {
	return append([]Name(nil), r.order...)
}

// Flags returns every flag in declaration order.
func (r *Registry) Flags() []Flag {
	out := make([]Flag, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.index[n].clone())
	}
	return out
}

// Sections returns a copy of the catalogue grouped by section.
func (r *Registry) Sections() []Section {
	out := make([]Section, len(r.sections))
	for i, s := range r.sections {
		flags := make([]Flag, len(s.Flags))
		for j, f := range s.Flags {
			flags[j] = f.clone()
		}
		out[i] = Section{Name: s.Name, Title: s.Title, Flags: flags}
	}
	return out
}

func (f Flag) clone() Flag {
	c := f
	c.Environments = append([]Environment(nil), f.Environments...)
	c.Plans = append([]Plan(nil), f.Plans...)
	c.Roles = append([]Role(nil), f.Roles...)
	c.Dependencies = append([]Name(nil), f.Dependencies...)
	if f.Percentage != nil {
		p := *f.Percentage
		c.Percentage = &p
	}
	return c
}

// normalizeName lowercases a key and maps "-" and spaces to "_", so
// "AI-Assistant" finds ai_assistant.
func normalizeName(name string) string {
	return nameReplacer.Replace(strings.ToLower(strings.TrimSpace(name)))
}

var nameReplacer = strings.NewReplacer("-", "_", " ", "_")
