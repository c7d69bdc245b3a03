package main

import (
	"fmt"

	"github.com/jose6941/stocktake/internal/cli"
	"github.com/jose6941/stocktake/internal/model"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func countCmd() *cobra.Command {
	var countAll bool

	cmd := &cobra.Command{
		Use:   "count [code]",
		Short: "Perform a cyclic count for one item or the whole catalog",
		Long: `Count reconciles the physical observation against the system quantity
and records the outcome in the count ledger. Divergent counts also append a
movement record for auditing.

With --all, every item present in both the catalog and the observations is
counted in catalog order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if countAll == (len(args) == 1) {
				return fmt.Errorf("provide exactly one item code or --all")
			}

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if countAll {
				bar := progressbar.NewOptions(-1,
					progressbar.OptionSetDescription("Counting items"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)

				events, err := eng.CountAll(ctx, func(done, total int) {
					bar.ChangeMax(total)
					_ = bar.Set(done)
				})
				if err != nil {
					return err
				}
				_ = bar.Finish()

				divergent := 0
				for _, event := range events {
					if event.Divergent() {
						divergent++
					}
				}

				fmt.Printf("Counted %d items, %d divergent\n", len(events), divergent)
				if divergent > 0 {
					fmt.Println(cli.WarningStyle.Render("Run 'stocktake divergences' for the ranked list."))
				}
				return nil
			}

			event, err := eng.ReconcileOne(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatCountEvent(event))
			if event.Status == model.StatusDivergent {
				fmt.Println(cli.SubtleStyle.Render("Movement recorded in the audit log."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&countAll, "all", false, "Count every item present in both stores")

	return cmd
}
