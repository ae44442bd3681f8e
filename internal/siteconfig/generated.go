package siteconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Generated mirrors the template config written by the project generator.
// Every field is optional.
type Generated struct {
	Features *GeneratedFeatures `json:"features,omitempty" yaml:"features,omitempty"`
}

// GeneratedFeatures holds the per-section switches of a generated config.
type GeneratedFeatures struct {
	Auth    *Toggle         `json:"auth,omitempty" yaml:"auth,omitempty"`
	Blog    *Toggle         `json:"blog,omitempty" yaml:"blog,omitempty"`
	Admin   *Toggle         `json:"admin,omitempty" yaml:"admin,omitempty"`
	Billing *BillingSection `json:"billing,omitempty" yaml:"billing,omitempty"`
}

// Toggle is an optional on/off switch.
type Toggle struct {
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// BillingSection names the generated billing provider.
type BillingSection struct {
	Provider *string `json:"provider,omitempty" yaml:"provider,omitempty"`
}

// LoadGenerated reads a generated config from path. JSON and YAML are chosen
// by extension. A missing file returns (nil, nil).
func LoadGenerated(path string) (*Generated, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read generated config: %w", err)
	}

	var g Generated
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &g)
	default:
		err = json.Unmarshal(data, &g)
	}
	if err != nil {
		return nil, fmt.Errorf("parse generated config %s: %w", path, err)
	}
	return &g, nil
}

func (g *Generated) authEnabled() *bool {
	if g == nil || g.Features == nil || g.Features.Auth == nil {
		return nil
	}
	return g.Features.Auth.Enabled
}

func (g *Generated) blogEnabled() *bool {
	if g == nil || g.Features == nil || g.Features.Blog == nil {
		return nil
	}
	return g.Features.Blog.Enabled
}

func (g *Generated) adminEnabled() *bool {
	if g == nil || g.Features == nil || g.Features.Admin == nil {
		return nil
	}
	return g.Features.Admin.Enabled
}

func (g *Generated) billingProvider() *string {
	if g == nil || g.Features == nil || g.Features.Billing == nil {
		return nil
	}
	return g.Features.Billing.Provider
}
