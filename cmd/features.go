package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/marcus/sitegate/internal/config"
	"github.com/marcus/sitegate/internal/features"
	"github.com/marcus/sitegate/internal/output"
	"github.com/marcus/sitegate/internal/snapshot"
)

// ErrFeatureDisabled is returned by `features check` when the feature is off,
// so the process exits non-zero.
var ErrFeatureDisabled = errors.New("feature disabled")

var featuresCmd = &cobra.Command{
	Use:     "features",
	Aliases: []string{"f"},
	Short:   "Inspect and override feature flags",
	GroupID: "features",
}

var featuresListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the feature catalogue",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		section, _ := cmd.Flags().GetString("section")
		sections, err := filterSections(snap.Registry.Sections(), section)
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOutput(cmd) {
			return output.JSON(sections)
		}

		for _, s := range sections {
			fmt.Print(output.SectionHeader(s.Title))
			rows := make([][]string, 0, len(s.Flags))
			for _, f := range s.Flags {
				master := "on"
				if !f.Enabled {
					master = "off"
				}
				if v, ok := snap.Overrides[f.Name]; ok {
					master = fmt.Sprintf("%s*", onOffString(v))
				}
				rows = append(rows, []string{string(f.Name), master, output.FormatRules(f), f.Description})
			}
			fmt.Println(output.Table([]string{"NAME", "SWITCH", "RULES", "DESCRIPTION"}, rows, listWidths()))
		}
		if len(snap.Overrides) > 0 {
			fmt.Println()
			output.Info("* overridden by environment or project config")
		}
		return nil
	},
}

// listWidths sizes the list table columns to the terminal.
func listWidths() []int {
	w := output.TerminalWidth(100)
	desc := w - 24 - 6 - 40 - 6
	if desc < 20 {
		desc = 20
	}
	return []int{24, 6, 40, desc}
}

func filterSections(sections []features.Section, name string) ([]features.Section, error) {
	if name == "" {
		return sections, nil
	}
	for _, s := range sections {
		if strings.EqualFold(s.Name, name) {
			return []features.Section{s}, nil
		}
	}
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	return nil, fmt.Errorf("unknown section %q (want one of %s)", name, strings.Join(names, ", "))
}

var featuresEnabledCmd = &cobra.Command{
	Use:   "enabled",
	Short: "List features enabled for a context",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		ctx, err := contextFromFlags(cmd, snap)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		names := snap.Resolver.EnabledFeatures(ctx)

		if jsonOutput(cmd) {
			if names == nil {
				names = []features.Name{}
			}
			return output.JSON(map[string]any{"context": ctx, "features": names})
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

var featuresCheckCmd = &cobra.Command{
	Use:   "check <name>",
	Short: "Explain whether a feature is enabled (exit 1 when disabled)",
	Long: `Resolve one feature and explain the decision. The command exits non-zero
when the feature is disabled, so it can gate shell scripts:

  sitegate features check billing --env production && deploy-billing`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		ctx, err := contextFromFlags(cmd, snap)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
			if ctx, err = promptContext(ctx); err != nil {
				return err
			}
		}

		d := checkFeature(snap, args[0], ctx)
		if jsonOutput(cmd) {
			if err := output.JSON(map[string]any{"context": ctx, "decision": d}); err != nil {
				return err
			}
		} else {
			fmt.Println(output.FormatDecision(d))
		}
		if !d.Enabled {
			return fmt.Errorf("%w: %s (%s)", ErrFeatureDisabled, d.Name, d.Reason)
		}
		return nil
	},
}

// checkFeature resolves a user-supplied key. Unknown keys resolve to a
// default-deny decision.
func checkFeature(snap *snapshot.Snapshot, key string, ctx features.Context) features.Decision {
	name, _ := snap.Registry.ParseName(key)
	return snap.Resolver.Explain(name, ctx)
}

// promptContext asks for the evaluation context, starting from ctx.
func promptContext(ctx features.Context) (features.Context, error) {
	env, plan, role, user := string(ctx.Environment), string(ctx.Plan), string(ctx.Role), ctx.UserID

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Environment").
				Options(tagOptions(features.Environments)...).
				Value(&env),
			huh.NewSelect[string]().
				Title("Plan").
				Options(tagOptions(features.Plans)...).
				Value(&plan),
			huh.NewSelect[string]().
				Title("Role").
				Options(tagOptions(features.Roles)...).
				Value(&role),
			huh.NewInput().
				Title("User ID").
				Description("Used for percentage rollouts; leave blank to skip").
				Value(&user),
		),
	)
	if err := form.Run(); err != nil {
		return ctx, fmt.Errorf("prompt: %w", err)
	}

	return features.Context{
		Environment: features.Environment(env),
		Plan:        features.Plan(plan),
		Role:        features.Role(role),
		UserID:      strings.TrimSpace(user),
	}, nil
}

// tagOptions lists tags as select options, led by an "any" option.
func tagOptions[T ~string](tags []T) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("(any)", "")}
	for _, t := range tags {
		opts = append(opts, huh.NewOption(string(t), string(t)))
	}
	return opts
}

var featuresShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a feature definition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		name, ok := snap.Registry.ParseName(args[0])
		if !ok {
			err := fmt.Errorf("%w: %s", features.ErrUnknownFeature, args[0])
			if jsonOutput(cmd) {
				output.JSONError(output.ErrCodeNotFound, err.Error())
			} else {
				output.Error("%v", err)
			}
			return err
		}
		flag, _ := snap.Registry.Lookup(name)
		section := snap.Registry.SectionOf(name)
		surfaces := features.SurfacesFor(name)

		if jsonOutput(cmd) {
			return output.JSON(map[string]any{"section": section, "flag": flag, "surfaces": surfaces})
		}

		fmt.Println(output.RenderFlag(flag, section, surfaces))
		if v, ok := snap.Overrides[name]; ok {
			output.Info("Master switch overridden: %s", onOffString(v))
		}
		return nil
	},
}

var featuresSetCmd = &cobra.Command{
	Use:   "set <name> <on|off>",
	Short: "Override a feature's master switch in project config",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := knownFeature(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		enabled, ok := features.ParseBool(args[1])
		if !ok {
			err := fmt.Errorf("invalid value %q (use on/off)", args[1])
			output.Error("%v", err)
			return err
		}
		if err := config.SetFeatureFlag(getBaseDir(), string(name), enabled); err != nil {
			output.Error("save config: %v", err)
			return err
		}
		output.Success("%s set to %s in %s", name, onOffString(enabled), config.Path(getBaseDir()))
		return nil
	},
}

var featuresUnsetCmd = &cobra.Command{
	Use:   "unset <name>",
	Short: "Remove a project override",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := knownFeature(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if err := config.UnsetFeatureFlag(getBaseDir(), string(name)); err != nil {
			output.Error("save config: %v", err)
			return err
		}
		output.Success("%s override removed", name)
		return nil
	},
}

// knownFeature validates a key against the built-in catalogue.
func knownFeature(key string) (features.Name, error) {
	name, ok := features.Default().ParseName(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", features.ErrUnknownFeature, key)
	}
	return name, nil
}

func onOffString(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func init() {
	featuresListCmd.Flags().String("section", "", "only list one section")
	addContextFlags(featuresEnabledCmd)
	addContextFlags(featuresCheckCmd)
	featuresCheckCmd.Flags().BoolP("interactive", "i", false, "prompt for the context")

	featuresCmd.AddCommand(
		featuresListCmd,
		featuresEnabledCmd,
		featuresCheckCmd,
		featuresShowCmd,
		featuresSetCmd,
		featuresUnsetCmd,
	)
	rootCmd.AddCommand(featuresCmd)
}
