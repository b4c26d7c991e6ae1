// Command goalplan computes contribution schedules offline and manages the
// goal tracker database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndewijer/investment-goal-tracker/internal/version"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "goalplan",
		Short:   "Plan monthly contributions toward an investment goal",
		Version: version.Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Show help when no subcommand is provided
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newScheduleCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newMigrateCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
