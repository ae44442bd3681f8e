package features

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultRegistryValidates(t *testing.T) {
	if _, err := NewRegistry(DefaultSections()); err != nil {
		t.Fatalf("default catalogue invalid: %v", err)
	}
}

func TestDefaultSectionOrder(t *testing.T) {
	reg := Default()
	var got []string
	for _, s := range reg.Sections() {
		got = append(got, s.Name)
	}
	want := []string{SectionCore, SectionPremium, SectionExperimental, SectionIntegrations}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("sections = %v, want %v", got, want)
	}
}

func TestNamesFollowDeclarationOrder(t *testing.T) {
	reg := Default()
	names := reg.Names()
	if names[0] != Auth {
		t.Fatalf("first name = %s, want %s", names[0], Auth)
	}
	if names[len(names)-1] != SentryMonitoring {
		t.Fatalf("last name = %s, want %s", names[len(names)-1], SentryMonitoring)
	}
	if len(names) != len(reg.Flags()) {
		t.Fatalf("names and flags disagree: %d vs %d", len(names), len(reg.Flags()))
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry([]Section{
		{Name: "a", Flags: []Flag{{Name: "x", Enabled: true}}},
		{Name: "b", Flags: []Flag{{Name: "x", Enabled: true}}},
	})
	if err == nil || !strings.Contains(err.Error(), `duplicate feature "x"`) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestNewRegistryRejectsUnknownDependency(t *testing.T) {
	_, err := NewRegistry([]Section{
		{Name: "a", Flags: []Flag{{Name: "x", Enabled: true, Dependencies: []Name{"missing"}}}},
	})
	if !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("expected ErrUnknownFeature, got %v", err)
	}
}

func TestNewRegistryRejectsBadPercentage(t *testing.T) {
	for _, p := range []int{-1, 101} {
		_, err := NewRegistry([]Section{
			{Name: "a", Flags: []Flag{{Name: "x", Enabled: true, Percentage: percent(p)}}},
		})
		if err == nil || !strings.Contains(err.Error(), "outside 0-100") {
			t.Fatalf("percentage %d: expected range error, got %v", p, err)
		}
	}
}

func TestNewRegistryRejectsCycle(t *testing.T) {
	_, err := NewRegistry([]Section{
		{Name: "a", Flags: []Flag{
			{Name: "x", Enabled: true, Dependencies: []Name{"y"}},
			{Name: "y", Enabled: true, Dependencies: []Name{"z"}},
			{Name: "z", Enabled: true, Dependencies: []Name{"x"}},
		}},
	})
	if err == nil || !strings.Contains(err.Error(), "dependency cycle: x -> y -> z -> x") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestNewRegistryRejectsSelfDependency(t *testing.T) {
	_, err := NewRegistry([]Section{
		{Name: "a", Flags: []Flag{{Name: "x", Enabled: true, Dependencies: []Name{"x"}}}},
	})
	if err == nil || !strings.Contains(err.Error(), "x -> x") {
		t.Fatalf("expected self cycle error, got %v", err)
	}
}

func TestWithOverridesReplacesMasterSwitch(t *testing.T) {
	reg, err := NewRegistry(DefaultSections(), WithOverrides(map[Name]bool{DarkModeV2: true, Blog: false}))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if f, _ := reg.Lookup(DarkModeV2); !f.Enabled {
		t.Fatal("expected dark_mode_v2 forced on")
	}
	if f, _ := reg.Lookup(Blog); f.Enabled {
		t.Fatal("expected blog forced off")
	}
}

func TestWithOverridesUnknownName(t *testing.T) {
	_, err := NewRegistry(DefaultSections(), WithOverrides(map[Name]bool{"nope": true}))
	if !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("expected ErrUnknownFeature, got %v", err)
	}
}

func TestNewRegistryDoesNotAliasInput(t *testing.T) {
	sections := DefaultSections()
	reg, err := NewRegistry(sections)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	sections[0].Flags[0].Enabled = false
	sections[2].Flags[0].Environments[0] = EnvProduction

	if f, _ := reg.Lookup(Auth); !f.Enabled {
		t.Fatal("registry changed when input was mutated")
	}
	if f, _ := reg.Lookup(AIAssistant); f.Environments[0] != EnvDevelopment {
		t.Fatal("registry environments aliased input")
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	reg := Default()
	f, _ := reg.Lookup(AIAssistant)
	*f.Percentage = 100
	f.Dependencies[0] = "other"

	again, _ := reg.Lookup(AIAssistant)
	if *again.Percentage != 10 || again.Dependencies[0] != Auth {
		t.Fatalf("lookup leaked internal state: %+v", again)
	}
}

func TestConfig(t *testing.T) {
	reg := Default()
	if f := reg.Config("  Billing "); f == nil || f.Name != Billing {
		t.Fatalf("Config(Billing) = %+v", f)
	}
	if f := reg.Config("does_not_exist"); f != nil {
		t.Fatalf("Config(unknown) = %+v, want nil", f)
	}
}

func TestSectionOf(t *testing.T) {
	reg := Default()
	if got := reg.SectionOf(AIAssistant); got != SectionExperimental {
		t.Fatalf("SectionOf(ai_assistant) = %q", got)
	}
}

func TestEveryGateMapFeatureExists(t *testing.T) {
	reg := Default()
	for _, e := range GateMap {
		if _, ok := reg.Lookup(e.Feature); !ok {
			t.Errorf("gate map entry %s names unknown feature %q", e.Surface, e.Feature)
		}
	}
	if len(SurfacesFor(Auth)) != 2 {
		t.Fatalf("expected 2 auth surfaces, got %d", len(SurfacesFor(Auth)))
	}
}

func TestParseNameNormalizes(t *testing.T) {
	reg := Default()
	for _, key := range []string{"ai_assistant", "AI-Assistant", " ai assistant "} {
		name, ok := reg.ParseName(key)
		if !ok || name != AIAssistant {
			t.Errorf("ParseName(%q) = %q, %v", key, name, ok)
		}
	}
	if name, ok := reg.ParseName("ai--assistant"); ok {
		t.Errorf("ParseName(ai--assistant) = %q, want unknown", name)
	}
}
