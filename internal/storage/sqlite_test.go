package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jose6941/stocktake/internal/common"
	"github.com/jose6941/stocktake/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a migrated in-memory test store.
func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testCatalog() []model.CatalogItem {
	return []model.CatalogItem{
		{Code: "A001", Name: "Notebook", Category: "Electronics", Quantity: 150, UnitValue: decimal.NewFromInt(1200)},
		{Code: "B002", Name: "Mouse", Category: "Electronics", Quantity: 300, UnitValue: decimal.RequireFromString("45.50")},
		{Code: "C003", Name: "Desk", Category: "Furniture", Quantity: 40, UnitValue: decimal.NewFromInt(800)},
	}
}

func testEvent(code string, units int64, value string) *model.CountEvent {
	status := model.StatusOK
	if units != 0 {
		status = model.StatusDivergent
	}
	return &model.CountEvent{
		ID:          uuid.NewString(),
		RecordedAt:  time.Now().UTC(),
		Code:        code,
		Name:        "Item " + code,
		Category:    "Electronics",
		SystemQty:   10,
		PhysicalQty: 10 + units,
		Units:       units,
		Value:       decimal.RequireFromString(value),
		Status:      status,
	}
}

func TestReplaceCatalog(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceCatalog(ctx, testCatalog()))

	items, err := store.ListCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Ingestion order is preserved
	assert.Equal(t, "A001", items[0].Code)
	assert.Equal(t, "B002", items[1].Code)
	assert.Equal(t, "C003", items[2].Code)
	assert.True(t, items[1].UnitValue.Equal(decimal.RequireFromString("45.50")))

	// A second ingestion replaces wholesale
	require.NoError(t, store.ReplaceCatalog(ctx, []model.CatalogItem{
		{Code: "Z999", Name: "Chair", Category: "Furniture", Quantity: 5, UnitValue: decimal.NewFromInt(120)},
	}))

	items, err = store.ListCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Z999", items[0].Code)

	_, err = store.GetCatalogItem(ctx, "A001")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestReplaceCatalogRejectsDuplicates(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	err := store.ReplaceCatalog(ctx, []model.CatalogItem{
		{Code: "A001", Name: "First", Quantity: 1, UnitValue: decimal.NewFromInt(1)},
		{Code: "A001", Name: "Second", Quantity: 2, UnitValue: decimal.NewFromInt(2)},
	})
	require.ErrorIs(t, err, common.ErrDuplicateCode)

	// Nothing was loaded
	items, listErr := store.ListCatalog(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, items)
}

func TestReplaceCatalogClearsObservations(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceCatalog(ctx, testCatalog()))
	require.NoError(t, store.ReplaceObservations(ctx, []model.Observation{
		{Code: "A001", Quantity: 145},
	}))

	// A fresh catalog invalidates previously loaded observations
	require.NoError(t, store.ReplaceCatalog(ctx, testCatalog()))

	observations, err := store.ListObservations(ctx)
	require.NoError(t, err)
	assert.Empty(t, observations)
}

func TestObservationRoundTrip(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceObservations(ctx, []model.Observation{
		{Code: "A001", Quantity: 145},
		{Code: "B002", Quantity: 300},
	}))

	obs, err := store.GetObservation(ctx, "A001")
	require.NoError(t, err)
	assert.Equal(t, int64(145), obs.Quantity)

	_, err = store.GetObservation(ctx, "MISSING")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCountLedger(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendCountEvent(ctx, testEvent("A001", -5, "6000")))
	require.NoError(t, store.AppendCountEvent(ctx, testEvent("B002", 0, "0")))
	require.NoError(t, store.AppendCountEvent(ctx, testEvent("A001", 0, "0")))
	require.NoError(t, store.AppendCountEvent(ctx, testEvent("C003", 2, "1600")))

	events, err := store.ListCountEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 4)

	// Append order is preserved
	assert.Equal(t, "A001", events[0].Code)
	assert.Equal(t, "C003", events[3].Code)

	divergent, err := store.ListDivergentEvents(ctx)
	require.NoError(t, err)
	require.Len(t, divergent, 2)
	assert.Equal(t, int64(-5), divergent[0].Units)
	assert.True(t, divergent[0].Value.Equal(decimal.NewFromInt(6000)))

	totals, err := store.LedgerTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, totals.Total)
	assert.Equal(t, 2, totals.OK)
	assert.Equal(t, 2, totals.Divergent)
}

func TestMovementLog(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendMovement(ctx, &model.Movement{
		ID:         uuid.NewString(),
		RecordedAt: time.Now().UTC(),
		Code:       "A001",
		Units:      -5,
		Value:      decimal.NewFromInt(6000),
		Reason:     "cyclic count divergence",
	}))

	movements, err := store.ListMovements(ctx)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "A001", movements[0].Code)
	assert.Equal(t, int64(-5), movements[0].Units)
}

func TestClearCounts(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceCatalog(ctx, testCatalog()))
	require.NoError(t, store.ReplaceObservations(ctx, []model.Observation{{Code: "A001", Quantity: 145}}))
	require.NoError(t, store.AppendCountEvent(ctx, testEvent("A001", -5, "6000")))
	require.NoError(t, store.AppendMovement(ctx, &model.Movement{
		ID: uuid.NewString(), RecordedAt: time.Now().UTC(), Code: "A001",
		Units: -5, Value: decimal.NewFromInt(6000),
	}))

	require.NoError(t, store.ClearCounts(ctx))

	totals, err := store.LedgerTotals(ctx)
	require.NoError(t, err)
	assert.Zero(t, totals.Total)

	movements, err := store.ListMovements(ctx)
	require.NoError(t, err)
	assert.Empty(t, movements)

	// Catalog and observations survive a counts-only reset
	items, err := store.ListCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	observations, err := store.ListObservations(ctx)
	require.NoError(t, err)
	assert.Len(t, observations, 1)
}

func TestClearAll(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceCatalog(ctx, testCatalog()))
	require.NoError(t, store.ReplaceObservations(ctx, []model.Observation{{Code: "A001", Quantity: 145}}))
	require.NoError(t, store.AppendCountEvent(ctx, testEvent("A001", -5, "6000")))

	require.NoError(t, store.ClearAll(ctx))

	items, err := store.ListCatalog(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	observations, err := store.ListObservations(ctx)
	require.NoError(t, err)
	assert.Empty(t, observations)

	totals, err := store.LedgerTotals(ctx)
	require.NoError(t, err)
	assert.Zero(t, totals.Total)
}

func TestValidationRejectsBadInput(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	err := store.ReplaceCatalog(ctx, []model.CatalogItem{
		{Code: "A001", Quantity: -1, UnitValue: decimal.NewFromInt(1)},
	})
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	err = store.ReplaceObservations(ctx, []model.Observation{{Code: "  ", Quantity: 1}})
	assert.ErrorIs(t, err, ErrEmptyString)

	err = store.AppendCountEvent(ctx, &model.CountEvent{ID: uuid.NewString(), Code: "A001", Status: "MAYBE"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
