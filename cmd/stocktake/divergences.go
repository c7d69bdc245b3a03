package main

import (
	"fmt"

	"github.com/jose6941/stocktake/internal/cli"
	"github.com/spf13/cobra"
)

func divergencesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "divergences",
		Short: "List divergences ranked by financial impact",
		Long: `Divergences compares every item present in both the catalog and the
physical observations and lists the non-zero differences, sorted descending
by absolute financial value. The report is derived on demand; nothing is
written to the ledger.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			divergences, err := eng.ReconcileAll(ctx)
			if err != nil {
				return err
			}

			if limit > 0 && len(divergences) > limit {
				divergences = divergences[:limit]
			}

			fmt.Println(cli.FormatDivergences(divergences))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most N divergences (0 = all)")

	return cmd
}
