package main

import (
	"context"
	"testing"

	"github.com/jose6941/stocktake/internal/model"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineConfigDefaults(t *testing.T) {
	viper.Reset()

	cfg := engineConfig()
	assert.InDelta(t, 78.0, cfg.BaselineAccuracy, 0.001)
	assert.InDelta(t, 0.80, cfg.SavingsRate, 0.001)
	assert.True(t, cfg.MinMonthlySavings.Equal(decimal.NewFromInt(5000)))
	assert.True(t, cfg.InitialInvestment.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, 12, cfg.ROIHorizonMonths)
	assert.Equal(t, 30, cfg.ProjectionDays)
}

func TestEngineConfigOverrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("engine.baseline_accuracy", 85.0)
	viper.Set("engine.initial_investment", 75000.0)
	viper.Set("engine.roi_horizon_months", 24)

	cfg := engineConfig()
	assert.InDelta(t, 85.0, cfg.BaselineAccuracy, 0.001)
	assert.True(t, cfg.InitialInvestment.Equal(decimal.NewFromInt(75000)))
	assert.Equal(t, 24, cfg.ROIHorizonMonths)

	// Unset keys keep their defaults
	assert.InDelta(t, 0.80, cfg.SavingsRate, 0.001)
	assert.Equal(t, 30, cfg.ProjectionDays)
}

func TestInitEngineInMemory(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.Set("database.path", ":memory:")

	ctx := context.Background()
	eng, cleanup, err := initEngine(ctx)
	require.NoError(t, err)
	defer cleanup()

	// The engine comes up migrated and usable end to end.
	catalog := []model.CatalogItem{
		{Code: "A001", Name: "Widget", Category: "Parts", Quantity: 150, UnitValue: decimal.NewFromInt(1200)},
	}
	loaded, err := eng.IngestCatalog(ctx, catalog)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)

	loaded, unknown, err := eng.IngestObservations(ctx, []model.Observation{{Code: "A001", Quantity: 145}})
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)
	assert.Empty(t, unknown)

	event, err := eng.ReconcileOne(ctx, "A001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDivergent, event.Status)
	assert.Equal(t, int64(-5), event.Units)
	assert.True(t, event.Value.Equal(decimal.NewFromInt(6000)))
}
