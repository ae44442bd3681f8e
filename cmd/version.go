package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/marcus/sitegate/internal/output"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print the sitegate version",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput(cmd) {
			return output.JSON(map[string]string{"version": version, "go": runtime.Version()})
		}
		fmt.Printf("sitegate %s (%s)\n", version, runtime.Version())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
