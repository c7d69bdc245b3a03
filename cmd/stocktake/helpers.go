package main

import (
	"context"
	"fmt"

	"github.com/jose6941/stocktake/internal/config"
	"github.com/jose6941/stocktake/internal/engine"
	"github.com/jose6941/stocktake/internal/service"
	"github.com/jose6941/stocktake/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/stocktake/stocktake.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.New(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// engineConfig builds the engine configuration from viper, falling back to
// defaults for anything unset.
func engineConfig() engine.Config {
	cfg := engine.DefaultConfig()

	if viper.IsSet("engine.baseline_accuracy") {
		cfg.BaselineAccuracy = viper.GetFloat64("engine.baseline_accuracy")
	}
	if viper.IsSet("engine.savings_rate") {
		cfg.SavingsRate = viper.GetFloat64("engine.savings_rate")
	}
	if viper.IsSet("engine.min_monthly_savings") {
		cfg.MinMonthlySavings = decimal.NewFromFloat(viper.GetFloat64("engine.min_monthly_savings"))
	}
	if viper.IsSet("engine.initial_investment") {
		cfg.InitialInvestment = decimal.NewFromFloat(viper.GetFloat64("engine.initial_investment"))
	}
	if viper.IsSet("engine.roi_horizon_months") {
		cfg.ROIHorizonMonths = viper.GetInt("engine.roi_horizon_months")
	}
	if viper.IsSet("engine.projection_days") {
		cfg.ProjectionDays = viper.GetInt("engine.projection_days")
	}

	return cfg
}

// initEngine wires storage into a ready reconciliation engine. The returned
// cleanup closes the underlying store.
func initEngine(ctx context.Context) (*engine.Engine, func(), error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	cleanup := func() {
		_ = store.Close()
	}

	return engine.NewWithConfig(store, engineConfig()), cleanup, nil
}
