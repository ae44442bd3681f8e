package nav

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func hrefs(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Href)
	}
	return out
}

func TestComposeWithoutAuth(t *testing.T) {
	n := Compose(Toggles{IncludeAuth: false, IncludeAdmin: true, IncludeBlog: false, IncludeBilling: true})

	if len(n.AccountDropdownNav) != 0 {
		t.Errorf("AccountDropdownNav = %v, want empty", n.AccountDropdownNav)
	}
	if len(n.AdminNav) != 0 {
		t.Errorf("AdminNav = %v, want empty", n.AdminNav)
	}
	for _, it := range n.PublicNav {
		if it.Href == BlogHref {
			t.Errorf("PublicNav contains blog entry: %+v", it)
		}
	}
	if got, want := len(n.PublicNav), len(mainNav)-1; got != want {
		t.Errorf("len(PublicNav) = %d, want %d", got, want)
	}
}

func TestComposeAdminNavExact(t *testing.T) {
	n := Compose(Toggles{IncludeAuth: true, IncludeAdmin: true})
	want := []Item{{Title: "Admin", Href: "/admin"}}
	if diff := cmp.Diff(want, n.AdminNav); diff != "" {
		t.Errorf("AdminNav mismatch (-want +got):\n%s", diff)
	}
}

func TestComposeAccountDropdown(t *testing.T) {
	tests := []struct {
		name    string
		toggles Toggles
		want    []string
	}{
		{"no auth", Toggles{IncludeBilling: true}, []string{}},
		{"auth only", Toggles{IncludeAuth: true}, []string{"/dashboard/profile"}},
		{"auth and billing", Toggles{IncludeAuth: true, IncludeBilling: true}, []string{"/dashboard/profile", "/dashboard/billing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hrefs(Compose(tt.toggles).AccountDropdownNav)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("AccountDropdownNav hrefs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComposeProtectedNavAlwaysEmpty(t *testing.T) {
	for _, tg := range []Toggles{{}, {IncludeAuth: true, IncludeAdmin: true, IncludeBlog: true, IncludeBilling: true}} {
		n := Compose(tg)
		if n.ProtectedNav == nil || len(n.ProtectedNav) != 0 {
			t.Errorf("ProtectedNav = %#v, want empty non-nil", n.ProtectedNav)
		}
	}
}

func TestComposeBlogIncluded(t *testing.T) {
	n := Compose(Toggles{IncludeBlog: true})
	if diff := cmp.Diff(hrefs(mainNav), hrefs(n.PublicNav)); diff != "" {
		t.Errorf("PublicNav hrefs (-want +got):\n%s", diff)
	}
}

func TestComposeDoesNotAliasStaticTrees(t *testing.T) {
	before := hrefs(mainNav)
	n := Compose(Toggles{IncludeAuth: true, IncludeAdmin: true, IncludeBlog: true, IncludeBilling: true})
	n.PublicNav[0].Title = "changed"
	n.AdminNav[0].Href = "/elsewhere"

	if mainNav[0].Title == "changed" {
		t.Error("Compose returned an alias of mainNav")
	}
	if adminItem.Href != AdminHref {
		t.Error("Compose returned an alias of adminItem")
	}
	if diff := cmp.Diff(before, hrefs(mainNav)); diff != "" {
		t.Errorf("mainNav changed (-before +after):\n%s", diff)
	}
}

func TestSidebar(t *testing.T) {
	if got := Sidebar(Toggles{IncludeBilling: true}); len(got) != 0 {
		t.Errorf("Sidebar without auth = %v, want empty", got)
	}

	got := Sidebar(Toggles{IncludeAuth: true})
	for _, it := range got {
		if it.Href == billingItem.Href {
			t.Error("Sidebar contains billing without billing toggle")
		}
	}

	full := Sidebar(Toggles{IncludeAuth: true, IncludeBilling: true})
	if len(full) != len(dashboardNav) {
		t.Fatalf("len(Sidebar) = %d, want %d", len(full), len(dashboardNav))
	}
	for i, it := range full {
		if len(it.Children) == 0 {
			continue
		}
		it.Children[0].Title = "changed"
		if dashboardNav[i].Children[0].Title == "changed" {
			t.Error("Sidebar children alias dashboardNav")
		}
	}
}

func TestAdminSidebar(t *testing.T) {
	if got := AdminSidebar(Toggles{IncludeAdmin: true}); len(got) != 0 {
		t.Errorf("AdminSidebar without auth = %v, want empty", got)
	}
	got := hrefs(AdminSidebar(Toggles{IncludeAuth: true, IncludeAdmin: true}))
	for _, h := range got {
		if h == AdminBlogHref {
			t.Error("AdminSidebar contains posts without blog toggle")
		}
	}
	if got := AdminSidebar(Toggles{IncludeAuth: true, IncludeAdmin: true, IncludeBlog: true}); len(got) != len(adminSidebarNav) {
		t.Errorf("len(AdminSidebar) = %d, want %d", len(got), len(adminSidebarNav))
	}
}

func TestTreeAccessorsReturnCopies(t *testing.T) {
	for name, get := range map[string]func() []Item{
		"MainNav":         MainNav,
		"DashboardNav":    DashboardNav,
		"AdminSidebarNav": AdminSidebarNav,
	} {
		t.Run(name, func(t *testing.T) {
			first := get()
			before := treeHrefs(first)
			first[0].Href = "/tampered"
			for i := range first {
				if first[i].Children != nil {
					first[i].Children[0].Href = "/tampered"
				}
			}
			if diff := cmp.Diff(before, treeHrefs(get())); diff != "" {
				t.Errorf("tree changed through returned slice (-before +after):\n%s", diff)
			}
		})
	}
}

func treeHrefs(items []Item) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Href)
		out = append(out, treeHrefs(it.Children)...)
	}
	return out
}
