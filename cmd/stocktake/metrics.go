package main

import (
	"errors"
	"fmt"

	"github.com/jose6941/stocktake/internal/cli"
	"github.com/jose6941/stocktake/internal/common"
	"github.com/spf13/cobra"
)

func metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Show inventory accuracy and financial impact",
		Long: `Metrics derives the accuracy score and financial impact from the count
ledger. Before any counts are recorded it falls back to the initial accuracy
estimated from the loaded data, or to the configured baseline when no data
overlaps.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			metrics, err := eng.Metrics(ctx)
			if errors.Is(err, common.ErrNoCounts) {
				initial, accErr := eng.InitialAccuracy(ctx)
				if accErr != nil {
					return accErr
				}
				fmt.Println(cli.FormatBaseline(initial))
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatMetrics(metrics))
			return nil
		},
	}
}
