package nav

// Hrefs the composer filters on.
const (
	BlogHref      = "/blog"
	AdminHref     = "/admin"
	AdminBlogHref = "/admin/posts"
)

// mainNav is the public site navigation.
var mainNav = []Item{
	{Title: "Features", Href: "/#features"},
	{Title: "Pricing", Href: "/pricing"},
	{Title: "Blog", Href: BlogHref},
	{Title: "Docs", Href: "/docs"},
	{Title: "Changelog", Href: "/changelog", Badge: "New"},
}

// Account dropdown entries.
var (
	profileItem = Item{Title: "Profile", Href: "/dashboard/profile", Icon: "user"}
	billingItem = Item{Title: "Billing", Href: "/dashboard/billing", Icon: "credit-card"}
	adminItem   = Item{Title: "Admin", Href: AdminHref}
)

// dashboardNav is the signed-in dashboard sidebar.
var dashboardNav = []Item{
	{Title: "Overview", Href: "/dashboard", Icon: "layout-dashboard"},
	{Title: "Profile", Href: "/dashboard/profile", Icon: "user"},
	{Title: "Billing", Href: "/dashboard/billing", Icon: "credit-card"},
	{
		Title: "Settings",
		Href:  "/dashboard/settings",
		Icon:  "settings",
		Children: []Item{
			{Title: "General", Href: "/dashboard/settings"},
			{Title: "Notifications", Href: "/dashboard/settings/notifications"},
			{Title: "Security", Href: "/dashboard/settings/security"},
		},
	},
	{Title: "Support", Href: "mailto:support@example.com", Icon: "life-buoy", External: true},
}

// adminSidebarNav is the admin shell sidebar.
var adminSidebarNav = []Item{
	{Title: "Overview", Href: AdminHref, Icon: "shield"},
	{Title: "Users", Href: "/admin/users", Icon: "users"},
	{Title: "Posts", Href: AdminBlogHref, Icon: "file-text"},
	{Title: "Feature Flags", Href: "/admin/features", Icon: "flag"},
	{Title: "Settings", Href: "/admin/settings", Icon: "settings", Disabled: true, Badge: "Soon"},
}

// MainNav returns a copy of the full public navigation, blog included.
func MainNav() []Item { return cloneItems(mainNav) }

// DashboardNav returns a copy of the full dashboard sidebar.
func DashboardNav() []Item { return cloneItems(dashboardNav) }

// AdminSidebarNav returns a copy of the full admin sidebar.
func AdminSidebarNav() []Item { return cloneItems(adminSidebarNav) }

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.clone()
	}
	return out
}
