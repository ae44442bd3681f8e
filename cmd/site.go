package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marcus/sitegate/internal/nav"
	"github.com/marcus/sitegate/internal/output"
)

var siteCmd = &cobra.Command{
	Use:     "site",
	Short:   "Show the resolved template config and where each value came from",
	GroupID: "site",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		s := snap.Settings

		if jsonOutput(cmd) {
			return output.JSON(map[string]any{
				"settings":         s,
				"billing_enabled":  s.IsBillingEnabled(),
				"generated_config": snap.GeneratedPath,
			})
		}

		rows := [][]string{
			{"user accounts", onOffString(s.IsUserAccountsEnabled()), output.FormatSource(s.Sources.UserAccounts)},
			{"blog", onOffString(s.IsBlogEnabled()), output.FormatSource(s.Sources.Blog)},
			{"admin", onOffString(s.IsAdminEnabled()), output.FormatSource(s.Sources.Admin)},
			{"payments", string(s.GetPaymentsProvider()), output.FormatSource(s.Sources.PaymentsProvider)},
			{"billing", onOffString(s.IsBillingEnabled()), output.FormatSource("derived")},
			{"environment", string(s.Environment), output.FormatSource(s.Sources.Environment)},
		}
		fmt.Println(output.Table(nil, rows, []int{14, 14, 0}))
		fmt.Print(output.SectionHeader("site"))
		for _, line := range output.IndentLines([]string{s.Site.Name, s.Site.Description, s.Site.URL}, 2) {
			fmt.Println(line)
		}
		fmt.Println()
		output.Info("generated config: %s", snap.GeneratedPath)
		return nil
	},
}

var navCmd = &cobra.Command{
	Use:     "nav",
	Short:   "Show the composed navigation",
	Long:    `Compose navigation from the resolved template config. Flags override individual toggles.`,
	GroupID: "site",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		t := navToggles(cmd, snap.Settings.Toggles())
		n := nav.Compose(t)

		if jsonOutput(cmd) {
			return output.JSON(map[string]any{
				"toggles":       t,
				"navigation":    n,
				"sidebar":       nav.Sidebar(t),
				"admin_sidebar": nav.AdminSidebar(t),
			})
		}

		printNav("public", n.PublicNav)
		printNav("protected", n.ProtectedNav)
		printNav("account dropdown", n.AccountDropdownNav)
		printNav("admin", n.AdminNav)
		printNav("dashboard sidebar", nav.Sidebar(t))
		printNav("admin sidebar", nav.AdminSidebar(t))
		return nil
	},
}

// navToggles applies any explicitly set toggle flags over t.
func navToggles(cmd *cobra.Command, t nav.Toggles) nav.Toggles {
	dst := map[string]*bool{
		"auth":    &t.IncludeAuth,
		"admin":   &t.IncludeAdmin,
		"blog":    &t.IncludeBlog,
		"billing": &t.IncludeBilling,
	}
	// Visit only walks flags set on the command line.
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if p, ok := dst[f.Name]; ok {
			*p = f.Value.String() == "true"
		}
	})
	return t
}

func printNav(title string, items []nav.Item) {
	fmt.Print(output.SectionHeader(title))
	if len(items) == 0 {
		fmt.Println("  (empty)")
		return
	}
	for _, line := range output.NavTree(items, 2) {
		fmt.Println(line)
	}
}

func addNavFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("auth", false, "include account navigation")
	cmd.Flags().Bool("admin", false, "include admin navigation")
	cmd.Flags().Bool("blog", false, "include the blog link")
	cmd.Flags().Bool("billing", false, "include billing navigation")
}

func init() {
	addNavFlags(navCmd)
	rootCmd.AddCommand(siteCmd, navCmd)
}
