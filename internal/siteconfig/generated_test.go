package siteconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGeneratedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.config.json")
	data := `{"features":{"auth":{"enabled":false},"billing":{"provider":"paddle"}}}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	g, err := LoadGenerated(path)
	if err != nil {
		t.Fatalf("LoadGenerated: %v", err)
	}
	if v := g.authEnabled(); v == nil || *v {
		t.Errorf("auth enabled = %v, want false", v)
	}
	if g.blogEnabled() != nil {
		t.Error("blog enabled should be unset")
	}
	if p := g.billingProvider(); p == nil || *p != "paddle" {
		t.Errorf("billing provider = %v, want paddle", p)
	}
}

func TestLoadGeneratedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.config.yaml")
	data := "features:\n  admin:\n    enabled: false\n  blog:\n    enabled: true\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	g, err := LoadGenerated(path)
	if err != nil {
		t.Fatalf("LoadGenerated: %v", err)
	}
	s := Resolve(Env{}, g)
	if s.Admin {
		t.Error("admin should be disabled by generated config")
	}
	if !s.Blog || s.Sources.Blog != SourceGenerated {
		t.Errorf("blog = %v from %q, want true from generated", s.Blog, s.Sources.Blog)
	}
}

func TestLoadGeneratedMissing(t *testing.T) {
	g, err := LoadGenerated(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil || g != nil {
		t.Errorf("LoadGenerated(missing) = %v, %v; want nil, nil", g, err)
	}
	g, err = LoadGenerated("")
	if err != nil || g != nil {
		t.Errorf("LoadGenerated(\"\") = %v, %v; want nil, nil", g, err)
	}
}

func TestLoadGeneratedMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGenerated(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestNilGeneratedAccessors(t *testing.T) {
	var g *Generated
	if g.authEnabled() != nil || g.blogEnabled() != nil || g.adminEnabled() != nil || g.billingProvider() != nil {
		t.Error("nil Generated accessors should return nil")
	}
	empty := &Generated{Features: &GeneratedFeatures{}}
	if empty.adminEnabled() != nil {
		t.Error("empty features should return nil")
	}
}
