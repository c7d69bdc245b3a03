package main

import (
	"fmt"

	"github.com/jose6941/stocktake/internal/cli"
	"github.com/spf13/cobra"
)

func movementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "movements",
		Short: "Show the audit log of recorded stock drift",
		Long: `Movements lists the drift recorded by divergent cyclic counts, in the
order it was found. The log is append-only and never adjusts catalog
quantities; 'reset' clears it along with the count ledger.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			movements, err := eng.Movements(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatMovements(movements))
			return nil
		},
	}
}
