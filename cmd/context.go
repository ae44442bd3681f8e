package cmd

import (
	"github.com/spf13/cobra"

	"github.com/marcus/sitegate/internal/features"
	"github.com/marcus/sitegate/internal/snapshot"
)

// addContextFlags registers the evaluation context flags on cmd.
func addContextFlags(cmd *cobra.Command) {
	cmd.Flags().String("env", "", "environment: development, staging, production, test, or any (default: project context, else unrestricted)")
	cmd.Flags().String("plan", "", "plan: free, pro, enterprise, or any")
	cmd.Flags().String("role", "", "role: user, admin, super_admin, or any")
	cmd.Flags().String("user", "", "user ID for rollout bucketing")
}

// contextFromFlags parses the context flags. Blank flags fall back to the
// project default context; "any" leaves a field unrestricted.
func contextFromFlags(cmd *cobra.Command, snap *snapshot.Snapshot) (features.Context, error) {
	env, _ := cmd.Flags().GetString("env")
	plan, _ := cmd.Flags().GetString("plan")
	role, _ := cmd.Flags().GetString("role")
	user, _ := cmd.Flags().GetString("user")

	c, err := snapshot.ParseContext(env, plan, role, user)
	if err != nil {
		return features.Context{}, err
	}
	return snap.Context(c), nil
}
