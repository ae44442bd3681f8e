// Package nav composes the navigation lists the layout shells render, filtered
// by which site sections are switched on.
package nav

// Item is a navigation entry.
type Item struct {
	Title       string `json:"title"`
	Href        string `json:"href"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	External    bool   `json:"external,omitempty"`
	Disabled    bool   `json:"disabled,omitempty"`
	Badge       string `json:"badge,omitempty"`
	Children    []Item `json:"children,omitempty"`
}

// Toggles selects which site sections contribute navigation.
type Toggles struct {
	IncludeAuth    bool `json:"include_auth"`
	IncludeAdmin   bool `json:"include_admin"`
	IncludeBlog    bool `json:"include_blog"`
	IncludeBilling bool `json:"include_billing"`
}

// Navigation is the set of lists a layout needs.
type Navigation struct {
	PublicNav          []Item `json:"public_nav"`
	ProtectedNav       []Item `json:"protected_nav"`
	AccountDropdownNav []Item `json:"account_dropdown_nav"`
	AdminNav           []Item `json:"admin_nav"`
}

// Compose builds the navigation lists for t. The static trees are copied,
// never modified.
//
// ProtectedNav is always empty: protected layouts use the brand logo as their
// home link.
func Compose(t Toggles) Navigation {
	n := Navigation{
		PublicNav:          []Item{},
		ProtectedNav:       []Item{},
		AccountDropdownNav: []Item{},
		AdminNav:           []Item{},
	}

	for _, item := range mainNav {
		if item.Href == BlogHref && !t.IncludeBlog {
			continue
		}
		n.PublicNav = append(n.PublicNav, item.clone())
	}

	if t.IncludeAuth {
		n.AccountDropdownNav = append(n.AccountDropdownNav, profileItem.clone())
		if t.IncludeBilling {
			n.AccountDropdownNav = append(n.AccountDropdownNav, billingItem.clone())
		}
		if t.IncludeAdmin {
			n.AdminNav = append(n.AdminNav, adminItem.clone())
		}
	}

	return n
}

// Sidebar returns the dashboard sidebar tree for t, dropping entries whose
// section is switched off.
func Sidebar(t Toggles) []Item {
	if !t.IncludeAuth {
		return []Item{}
	}
	out := make([]Item, 0, len(dashboardNav))
	for _, item := range dashboardNav {
		if item.Href == billingItem.Href && !t.IncludeBilling {
			continue
		}
		out = append(out, item.clone())
	}
	return out
}

// AdminSidebar returns the admin shell tree, empty unless auth and admin are on.
func AdminSidebar(t Toggles) []Item {
	if !t.IncludeAuth || !t.IncludeAdmin {
		return []Item{}
	}
	out := make([]Item, 0, len(adminSidebarNav))
	for _, item := range adminSidebarNav {
		if item.Href == AdminBlogHref && !t.IncludeBlog {
			continue
		}
		out = append(out, item.clone())
	}
	return out
}

func (i Item) clone() Item {
	c := i
	if i.Children != nil {
		c.Children = make([]Item, len(i.Children))
		for j, child := range i.Children {
			c.Children[j] = child.clone()
		}
	}
	return c
}
