package features

// Section names in declaration order.
const (
	SectionCore         = "core"
	SectionPremium      = "premium"
	SectionExperimental = "experimental"
	SectionIntegrations = "integrations"
)

// Core features.
const (
	Auth         Name = "auth"
	Blog         Name = "blog"
	Dashboard    Name = "dashboard"
	UserProfile  Name = "user_profile"
	AdminPanel   Name = "admin_panel"
	ContactForm  Name = "contact_form"
	Newsletter   Name = "newsletter"
	Testimonials Name = "testimonials"
)

// Premium features.
const (
	Billing           Name = "billing"
	AdvancedAnalytics Name = "advanced_analytics"
	TeamManagement    Name = "team_management"
	APIAccess         Name = "api_access"
	CustomDomain      Name = "custom_domain"
	PrioritySupport   Name = "priority_support"
	AuditLog          Name = "audit_log"
)

// Experimental features.
const (
	AIAssistant           Name = "ai_assistant"
	NewDashboard          Name = "new_dashboard"
	CommandPalette        Name = "command_palette"
	DarkModeV2            Name = "dark_mode_v2"
	RealtimeNotifications Name = "realtime_notifications"
)

// Integration features.
const (
	StripePayments       Name = "stripe_payments"
	LemonSqueezyPayments Name = "lemonsqueezy_payments"
	ResendEmail          Name = "resend_email"
	PostHogAnalytics     Name = "posthog_analytics"
	GoogleAnalytics      Name = "google_analytics"
	S3Storage            Name = "s3_storage"
	SentryMonitoring     Name = "sentry_monitoring"
)

func percent(p int) *int { return &p }

// DefaultSections returns the catalogue shipped with the template.
func DefaultSections() []Section {
	return []Section{
		{
			Name:  SectionCore,
			Title: "Core",
			Flags: []Flag{
				{Name: Auth, Description: "User sign-up, sign-in and session management", Enabled: true},
				{Name: Blog, Description: "Public blog with MDX posts", Enabled: true},
				{Name: Dashboard, Description: "Signed-in user dashboard", Enabled: true, Dependencies: []Name{Auth}},
				{Name: UserProfile, Description: "Profile page and account settings", Enabled: true, Dependencies: []Name{Auth}},
				{
					Name:         AdminPanel,
					Description:  "Admin area for managing users and content",
					Enabled:      true,
					Roles:        []Role{RoleAdmin, RoleSuperAdmin},
					Dependencies: []Name{Auth},
				},
				{Name: ContactForm, Description: "Contact form on the marketing site", Enabled: true},
				{Name: Newsletter, Description: "Newsletter sign-up block in the footer", Enabled: true},
				{Name: Testimonials, Description: "Customer testimonials section on the landing page", Enabled: true},
			},
		},
		{
			Name:  SectionPremium,
			Title: "Premium",
			Flags: []Flag{
				{Name: Billing, Description: "Subscription checkout and billing portal", Enabled: true, Dependencies: []Name{Auth}},
				{
					Name:         AdvancedAnalytics,
					Description:  "Usage charts and exports in the dashboard",
					Enabled:      true,
					Plans:        []Plan{PlanPro, PlanEnterprise},
					Dependencies: []Name{Dashboard},
				},
				{
					Name:         TeamManagement,
					Description:  "Invite teammates and manage seats",
					Enabled:      true,
					Plans:        []Plan{PlanPro, PlanEnterprise},
					Dependencies: []Name{Auth},
				},
				{
					Name:         APIAccess,
					Description:  "Personal API keys and REST access",
					Enabled:      true,
					Plans:        []Plan{PlanEnterprise},
					Dependencies: []Name{Auth},
				},
				{Name: CustomDomain, Description: "Serve the workspace from a custom domain", Enabled: true, Plans: []Plan{PlanEnterprise}},
				{Name: PrioritySupport, Description: "Priority support channel", Enabled: true, Plans: []Plan{PlanPro, PlanEnterprise}},
				{
					Name:         AuditLog,
					Description:  "Audit trail of account and admin actions",
					Enabled:      true,
					Plans:        []Plan{PlanEnterprise},
					Roles:        []Role{RoleAdmin, RoleSuperAdmin},
					Dependencies: []Name{AdminPanel},
				},
			},
		},
		{
			Name:  SectionExperimental,
			Title: "Experimental",
			Flags: []Flag{
				{
					Name:         AIAssistant,
					Description:  "In-app AI assistant",
					Enabled:      true,
					Environments: []Environment{EnvDevelopment, EnvStaging},
					Percentage:   percent(10),
					Dependencies: []Name{Auth},
				},
				{
					Name:         NewDashboard,
					Description:  "Redesigned dashboard layout",
					Enabled:      true,
					Percentage:   percent(25),
					Dependencies: []Name{Dashboard},
				},
				{
					Name:         CommandPalette,
					Description:  "Keyboard command palette",
					Enabled:      true,
					Environments: []Environment{EnvDevelopment},
				},
				{Name: DarkModeV2, Description: "Second iteration of the dark theme", Enabled: false},
				{
					Name:         RealtimeNotifications,
					Description:  "Live notifications over websockets",
					Enabled:      true,
					Environments: []Environment{EnvDevelopment, EnvStaging},
					Plans:        []Plan{PlanPro, PlanEnterprise},
					Percentage:   percent(50),
					Dependencies: []Name{Auth},
				},
			},
		},
		{
			Name:  SectionIntegrations,
			Title: "Integrations",
			Flags: []Flag{
				{Name: StripePayments, Description: "Stripe checkout and webhooks", Enabled: true, Dependencies: []Name{Billing}},
				{Name: LemonSqueezyPayments, Description: "Lemon Squeezy checkout and webhooks", Enabled: false, Dependencies: []Name{Billing}},
				{Name: ResendEmail, Description: "Transactional email through Resend", Enabled: true},
				{Name: PostHogAnalytics, Description: "Product analytics through PostHog", Enabled: true, Environments: []Environment{EnvProduction}},
				{Name: GoogleAnalytics, Description: "Google Analytics page tracking", Enabled: false, Environments: []Environment{EnvProduction}},
				{Name: S3Storage, Description: "File uploads to S3-compatible storage", Enabled: true},
				{Name: SentryMonitoring, Description: "Error reporting through Sentry", Enabled: true, Environments: []Environment{EnvStaging, EnvProduction}},
			},
		},
	}
}

// Default builds the registry from DefaultSections with no overrides.
func Default() *Registry {
	r, err := NewRegistry(DefaultSections())
	if err != nil {
		panic(err)
	}
	return r
}
