package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jose6941/stocktake/internal/common"
	"github.com/jose6941/stocktake/internal/ingest"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import catalog and physical count data",
		Long: `Import inventory data from CSV files.

The catalog file replaces the system inventory wholesale and invalidates any
previously loaded physical counts. The counts file replaces the physical
observations; rows whose code is not in the catalog are dropped and reported.`,
	}

	cmd.AddCommand(importCatalogCmd())
	cmd.AddCommand(importCountsCmd())

	return cmd
}

func importCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog <file>",
		Short: "Import the system catalog from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open catalog file: %w", err)
			}
			defer func() { _ = file.Close() }()

			items, err := ingest.ParseCatalog(file)
			if err != nil {
				return describeParseError(args[0], err)
			}

			loaded, err := eng.IngestCatalog(ctx, items)
			if err != nil {
				return err
			}

			fmt.Printf("Loaded %d catalog items from %s\n", loaded, args[0])
			return nil
		},
	}
}

func importCountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counts <file>",
		Short: "Import physical count observations from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := initEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open counts file: %w", err)
			}
			defer func() { _ = file.Close() }()

			observations, err := ingest.ParseObservations(file)
			if err != nil {
				return describeParseError(args[0], err)
			}

			loaded, unknown, err := eng.IngestObservations(ctx, observations)
			if err != nil {
				return err
			}

			fmt.Printf("Loaded %d physical counts from %s\n", loaded, args[0])
			if len(unknown) > 0 {
				fmt.Printf("Dropped %d rows with codes not in the catalog: %v\n", len(unknown), unknown)
			}
			return nil
		},
	}
}

func describeParseError(path string, err error) error {
	var verr *common.ValidationError
	if errors.As(err, &verr) {
		slog.Debug("CSV validation failed", "file", path, "error", err)
		return fmt.Errorf("invalid CSV file %s: %w", path, err)
	}
	return fmt.Errorf("failed to parse %s: %w", path, err)
}
