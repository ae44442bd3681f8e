package features

// GateMapEntry records a UI surface that checks a feature before rendering.
type GateMapEntry struct {
	Feature Name   `json:"feature"`
	Surface string `json:"surface"`
	Notes   string `json:"notes"`
}

// GateMap lists the web app surfaces gated by each feature.
// Paths refer to the Next.js app that consumes this service.
var GateMap = []GateMapEntry{
	{Feature: Auth, Surface: "src/app/(auth)/layout.tsx", Notes: "Sign-in, sign-up and password reset routes"},
	{Feature: Auth, Surface: "src/components/site-header.tsx", Notes: "Sign-in button and account dropdown"},
	{Feature: Blog, Surface: "src/app/(marketing)/blog", Notes: "Blog index and post routes"},
	{Feature: Blog, Surface: "src/components/main-nav.tsx", Notes: "Blog link in the main navigation"},
	{Feature: Dashboard, Surface: "src/app/(dashboard)/layout.tsx", Notes: "Dashboard shell"},
	{Feature: UserProfile, Surface: "src/app/(dashboard)/profile", Notes: "Profile and account settings"},
	{Feature: AdminPanel, Surface: "src/app/(admin)/layout.tsx", Notes: "Admin shell and sidebar"},
	{Feature: ContactForm, Surface: "src/app/(marketing)/contact", Notes: "Contact page"},
	{Feature: Newsletter, Surface: "src/components/site-footer.tsx", Notes: "Newsletter sign-up block"},
	{Feature: Testimonials, Surface: "src/app/(marketing)/page.tsx", Notes: "Testimonials section"},
	{Feature: Billing, Surface: "src/app/(dashboard)/billing", Notes: "Plans, checkout and billing portal"},
	{Feature: AdvancedAnalytics, Surface: "src/app/(dashboard)/analytics", Notes: "Usage charts and CSV export"},
	{Feature: TeamManagement, Surface: "src/app/(dashboard)/team", Notes: "Team invites and seats"},
	{Feature: APIAccess, Surface: "src/app/(dashboard)/api-keys", Notes: "API key management"},
	{Feature: CustomDomain, Surface: "src/app/(dashboard)/settings/domain", Notes: "Custom domain settings"},
	{Feature: AuditLog, Surface: "src/app/(admin)/audit", Notes: "Audit log viewer"},
	{Feature: AIAssistant, Surface: "src/components/ai-assistant.tsx", Notes: "Assistant drawer in the dashboard"},
	{Feature: NewDashboard, Surface: "src/app/(dashboard)/page.tsx", Notes: "Switches the dashboard home layout"},
	{Feature: CommandPalette, Surface: "src/components/command-menu.tsx", Notes: "Cmd+K palette"},
	{Feature: DarkModeV2, Surface: "src/styles/themes.css", Notes: "Alternate dark palette"},
	{Feature: RealtimeNotifications, Surface: "src/components/notifications.tsx", Notes: "Live notification bell"},
	{Feature: StripePayments, Surface: "src/lib/payments/stripe.ts", Notes: "Stripe checkout provider"},
	{Feature: LemonSqueezyPayments, Surface: "src/lib/payments/lemonsqueezy.ts", Notes: "Lemon Squeezy checkout provider"},
	{Feature: ResendEmail, Surface: "src/lib/email/index.ts", Notes: "Transactional email provider"},
	{Feature: PostHogAnalytics, Surface: "src/lib/analytics/posthog.ts", Notes: "PostHog provider"},
	{Feature: GoogleAnalytics, Surface: "src/lib/analytics/google.ts", Notes: "Google Analytics script"},
	{Feature: S3Storage, Surface: "src/lib/storage/s3.ts", Notes: "Upload provider"},
	{Feature: SentryMonitoring, Surface: "sentry.client.config.ts", Notes: "Sentry initialisation"},
}

// SurfacesFor returns the gate map entries for name.
func SurfacesFor(name Name) []GateMapEntry {
	var out []GateMapEntry
	for _, e := range GateMap {
		if e.Feature == name {
			out = append(out, e)
		}
	}
	return out
}
