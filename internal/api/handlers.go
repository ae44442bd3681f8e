package api

import (
	"fmt"
	"net/http"

	"github.com/marcus/sitegate/internal/features"
	"github.com/marcus/sitegate/internal/nav"
	"github.com/marcus/sitegate/internal/siteconfig"
	"github.com/marcus/sitegate/internal/snapshot"
)

// FeatureResponse is the body of GET /v1/features/{name}.
type FeatureResponse struct {
	Section  string                  `json:"section"`
	Flag     features.Flag           `json:"flag"`
	Override *bool                   `json:"override,omitempty"`
	Surfaces []features.GateMapEntry `json:"surfaces"`
}

// DecisionResponse is the body of GET /v1/features/{name}/decision.
type DecisionResponse struct {
	Context  features.Context  `json:"context"`
	Decision features.Decision `json:"decision"`
}

// EnabledResponse is the body of GET /v1/features/enabled.
type EnabledResponse struct {
	Context  features.Context `json:"context"`
	Features []features.Name  `json:"features"`
}

// NavResponse is the body of GET /v1/nav.
type NavResponse struct {
	Toggles      nav.Toggles    `json:"toggles"`
	Navigation   nav.Navigation `json:"navigation"`
	Sidebar      []nav.Item     `json:"sidebar"`
	AdminSidebar []nav.Item     `json:"admin_sidebar"`
}

// SiteResponse is the body of GET /v1/site.
type SiteResponse struct {
	Settings       siteconfig.Settings `json:"settings"`
	BillingEnabled bool                `json:"billing_enabled"`
	GeneratedPath  string              `json:"generated_config"`
}

func (s *Server) handleListFeatures(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Current()
	writeJSON(w, http.StatusOK, map[string]any{
		"sections":  snap.Registry.Sections(),
		"overrides": snap.Overrides,
	})
}

func (s *Server) handleEnabledFeatures(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Current()
	ctx, ok := requestContext(w, r, snap)
	if !ok {
		return
	}
	names := snap.Resolver.EnabledFeatures(ctx)
	if names == nil {
		names = []features.Name{}
	}
	writeJSON(w, http.StatusOK, EnabledResponse{Context: ctx, Features: names})
}

func (s *Server) handleGetFeature(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Current()
	key := r.PathValue("name")
	name, ok := snap.Registry.ParseName(key)
	if !ok {
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, fmt.Sprintf("unknown feature %q", key))
		return
	}
	flag, _ := snap.Registry.Lookup(name)
	resp := FeatureResponse{
		Section:  snap.Registry.SectionOf(name),
		Flag:     flag,
		Surfaces: features.SurfacesFor(name),
	}
	if v, ok := snap.Overrides[name]; ok {
		resp.Override = &v
	}
	if resp.Surfaces == nil {
		resp.Surfaces = []features.GateMapEntry{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDecision answers 200 for unknown names: they resolve to a default-deny
// decision, not an error.
func (s *Server) handleDecision(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Current()
	name, _ := snap.Registry.ParseName(r.PathValue("name"))
	ctx, ok := requestContext(w, r, snap)
	if !ok {
		return
	}
	d := snap.Resolver.Explain(name, ctx)
	writeJSON(w, http.StatusOK, DecisionResponse{Context: ctx, Decision: d})
}

func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Current()
	writeJSON(w, http.StatusOK, SiteResponse{
		Settings:       snap.Settings,
		BillingEnabled: snap.Settings.IsBillingEnabled(),
		GeneratedPath:  snap.GeneratedPath,
	})
}

// handleNav composes navigation from the active settings. The auth, admin,
// blog and billing query parameters override individual toggles.
func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Current()
	t := snap.Settings.Toggles()

	q := r.URL.Query()
	for _, p := range []struct {
		key string
		dst *bool
	}{
		{"auth", &t.IncludeAuth},
		{"admin", &t.IncludeAdmin},
		{"blog", &t.IncludeBlog},
		{"billing", &t.IncludeBilling},
	} {
		raw := q.Get(p.key)
		if raw == "" {
			continue
		}
		v, ok := features.ParseBool(raw)
		if !ok {
			writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("invalid boolean for %s: %q", p.key, raw))
			return
		}
		*p.dst = v
	}

	writeJSON(w, http.StatusOK, NavResponse{
		Toggles:      t,
		Navigation:   nav.Compose(t),
		Sidebar:      nav.Sidebar(t),
		AdminSidebar: nav.AdminSidebar(t),
	})
}

// requestContext parses the environment, plan, role and user_id query
// parameters and fills blanks from the project default. A bad tag is answered
// with 400 and ok=false.
func requestContext(w http.ResponseWriter, r *http.Request, snap *snapshot.Snapshot) (features.Context, bool) {
	q := r.URL.Query()
	c, err := snapshot.ParseContext(q.Get("environment"), q.Get("plan"), q.Get("role"), q.Get("user_id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return features.Context{}, false
	}
	return snap.Context(c), true
}
