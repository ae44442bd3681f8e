package features

import "testing"

func TestParseTags(t *testing.T) {
	if e, err := ParseEnvironment(" Prod "); err != nil || e != EnvProduction {
		t.Errorf("ParseEnvironment(prod) = %q, %v", e, err)
	}
	if e, err := ParseEnvironment("staging"); err != nil || e != EnvStaging {
		t.Errorf("ParseEnvironment(staging) = %q, %v", e, err)
	}
	if _, err := ParseEnvironment("qa"); err == nil {
		t.Error("ParseEnvironment(qa) should fail")
	}
	if p, err := ParsePlan("PRO"); err != nil || p != PlanPro {
		t.Errorf("ParsePlan(PRO) = %q, %v", p, err)
	}
	if _, err := ParsePlan("gold"); err == nil {
		t.Error("ParsePlan(gold) should fail")
	}
	if r, err := ParseRole("super-admin"); err != nil || r != RoleSuperAdmin {
		t.Errorf("ParseRole(super-admin) = %q, %v", r, err)
	}
}
