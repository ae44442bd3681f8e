package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FeatureFlags != nil || cfg.GeneratedConfig != "" || cfg.DefaultContext != nil {
		t.Errorf("Load(missing) = %+v, want zero config", cfg)
	}
}

func TestLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".sitegate"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(Path(dir), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestFeatureFlagRoundTrip(t *testing.T) {
	dir := t.TempDir()

	if _, ok, err := GetFeatureFlag(dir, "blog"); err != nil || ok {
		t.Fatalf("GetFeatureFlag before set = ok %v, err %v", ok, err)
	}
	if err := SetFeatureFlag(dir, "blog", false); err != nil {
		t.Fatalf("SetFeatureFlag: %v", err)
	}
	v, ok, err := GetFeatureFlag(dir, "blog")
	if err != nil || !ok || v {
		t.Fatalf("GetFeatureFlag = %v, %v, %v; want false, true, nil", v, ok, err)
	}

	if err := UnsetFeatureFlag(dir, "blog"); err != nil {
		t.Fatalf("UnsetFeatureFlag: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FeatureFlags != nil {
		t.Errorf("FeatureFlags = %v, want nil after last unset", cfg.FeatureFlags)
	}
}

func TestUnsetWithoutFlags(t *testing.T) {
	if err := UnsetFeatureFlag(t.TempDir(), "blog"); err != nil {
		t.Errorf("UnsetFeatureFlag on empty config: %v", err)
	}
}

func TestConcurrentSetFeatureFlag(t *testing.T) {
	dir := t.TempDir()
	names := []string{"auth", "blog", "billing", "newsletter", "testimonials", "dashboard"}

	var wg sync.WaitGroup
	for _, n := range names {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if err := SetFeatureFlag(dir, name, true); err != nil {
				t.Errorf("SetFeatureFlag(%s): %v", name, err)
			}
		}(n)
	}
	wg.Wait()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.FeatureFlags) != len(names) {
		t.Errorf("FeatureFlags = %v, want all %d set", cfg.FeatureFlags, len(names))
	}
}

func TestGeneratedConfigPath(t *testing.T) {
	dir := t.TempDir()

	p, err := GeneratedConfigPath(dir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, DefaultGeneratedConfig); p != want {
		t.Errorf("default path = %q, want %q", p, want)
	}

	if err := SetGeneratedConfigPath(dir, "config/site.yaml"); err != nil {
		t.Fatal(err)
	}
	p, _ = GeneratedConfigPath(dir)
	if want := filepath.Join(dir, "config/site.yaml"); p != want {
		t.Errorf("relative path = %q, want %q", p, want)
	}

	abs := filepath.Join(t.TempDir(), "abs.json")
	if err := SetGeneratedConfigPath(dir, abs); err != nil {
		t.Fatal(err)
	}
	p, _ = GeneratedConfigPath(dir)
	if p != abs {
		t.Errorf("absolute path = %q, want %q", p, abs)
	}
}

func TestDefaultContext(t *testing.T) {
	dir := t.TempDir()
	ctx, err := DefaultContext(dir)
	if err != nil || ctx != (Context{}) {
		t.Fatalf("DefaultContext(empty) = %+v, %v", ctx, err)
	}

	want := Context{Environment: "staging", Plan: "pro"}
	if err := Save(dir, &Config{DefaultContext: &want}); err != nil {
		t.Fatal(err)
	}
	got, err := DefaultContext(dir)
	if err != nil || got != want {
		t.Errorf("DefaultContext = %+v, %v; want %+v", got, err, want)
	}
}
