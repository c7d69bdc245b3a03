package main

import (
	"fmt"

	"github.com/jose6941/stocktake/internal/cli"
	"github.com/jose6941/stocktake/internal/engine"
	"github.com/spf13/cobra"
)

func projectCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the accuracy trajectory of a counting program",
		Long: `Project simulates how inventory accuracy improves over a cyclic counting
program, starting from the current accuracy. The trajectory runs through
implementation, stabilization and optimization phases toward a target that
depends on the starting point.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			initial, err := eng.InitialAccuracy(ctx)
			if err != nil {
				return err
			}

			if days <= 0 {
				days = eng.Config().ProjectionDays
			}

			projector := engine.NewProjector(nil)
			points := projector.Project(initial, days)

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf(
				"Accuracy projection: %.1f%% toward %.1f%%", initial, engine.TargetAccuracy(initial))))
			fmt.Println(cli.FormatProjection(points))
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 0, "Projection length in days (default from config)")

	return cmd
}
