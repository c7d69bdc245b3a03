package main

import (
	"fmt"

	"github.com/jose6941/stocktake/internal/cli"
	"github.com/spf13/cobra"
)

func roiCmd() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "roi",
		Short: "Project return on investment for the counting program",
		Long: `ROI derives the projected monthly savings from the current divergence
value and builds a cumulative cash-flow schedule against the configured
initial investment, reporting the payback month when reached.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			schedule, err := eng.ROISchedule(ctx, months)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatROISchedule(schedule))
			return nil
		},
	}

	cmd.Flags().IntVarP(&months, "months", "m", 0, "Schedule length in months (default from config)")

	return cmd
}
