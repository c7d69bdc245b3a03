package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	var (
		resetAll   bool
		resetForce bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the count ledger",
		Long: `Reset deletes all recorded counts and movements so a new counting cycle
can start from a clean ledger. The catalog and physical observations are
preserved.

With --all, the catalog and observations are deleted too.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// Confirm with user unless --force is used
			if !resetForce {
				if resetAll {
					fmt.Fprintf(os.Stdout, "This will delete all counts, movements, catalog items and observations.\n")
				} else {
					fmt.Fprintf(os.Stdout, "This will delete all recorded counts and movements.\n")
				}
				fmt.Fprintf(os.Stdout, "\nAre you sure you want to continue? [y/N]: ")

				var response string
				if _, err := fmt.Scanln(&response); err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				if response != "y" && response != "Y" {
					fmt.Fprintf(os.Stdout, "Reset canceled.\n")
					return nil
				}
			}

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if resetAll {
				if err := eng.ResetAll(ctx); err != nil {
					return fmt.Errorf("failed to reset: %w", err)
				}
				fmt.Fprintf(os.Stdout, "All data cleared.\n")
				return nil
			}

			if err := eng.ResetCounts(ctx); err != nil {
				return fmt.Errorf("failed to reset counts: %w", err)
			}
			fmt.Fprintf(os.Stdout, "Count ledger cleared. Catalog and observations preserved.\n")
			return nil
		},
	}

	cmd.Flags().BoolVar(&resetAll, "all", false, "Also delete the catalog and observations")
	cmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
