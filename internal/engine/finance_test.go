package engine

import (
	"context"
	"testing"

	"github.com/jose6941/stocktake/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectedMonthlySavings(t *testing.T) {
	e := newTestEngine(t)
	loadFixture(t, e,
		[]model.CatalogItem{item("A001", "Notebook", 150, "1200")},
		[]model.Observation{{Code: "A001", Quantity: 100}}, // divergence value 60000
	)

	savings, err := e.ProjectedMonthlySavings(context.Background())
	require.NoError(t, err)

	// 80% of 60000
	assert.True(t, savings.Equal(decimal.NewFromInt(48000)), "savings = %s", savings)
}

func TestProjectedMonthlySavingsFloor(t *testing.T) {
	e := newTestEngine(t)
	loadFixture(t, e,
		[]model.CatalogItem{item("A001", "Notebook", 150, "1200")},
		[]model.Observation{{Code: "A001", Quantity: 148}}, // divergence value 2400
	)

	savings, err := e.ProjectedMonthlySavings(context.Background())
	require.NoError(t, err)

	// 80% of 2400 is 1920, below the floor
	assert.True(t, savings.Equal(DefaultConfig().MinMonthlySavings), "savings = %s", savings)
}

func TestProjectedMonthlySavingsNoDivergences(t *testing.T) {
	e := newTestEngine(t)
	loadFixture(t, e,
		[]model.CatalogItem{item("A001", "Notebook", 150, "1200")},
		[]model.Observation{{Code: "A001", Quantity: 150}},
	)

	savings, err := e.ProjectedMonthlySavings(context.Background())
	require.NoError(t, err)

	// Never reported as zero
	assert.True(t, savings.Equal(DefaultConfig().MinMonthlySavings))
}

func TestROISchedule(t *testing.T) {
	e := newTestEngine(t)
	loadFixture(t, e,
		[]model.CatalogItem{item("A001", "Notebook", 150, "1200")},
		[]model.Observation{{Code: "A001", Quantity: 100}}, // monthly savings 48000
	)

	schedule, err := e.ROISchedule(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, schedule.Flows, 13)

	assert.True(t, schedule.MonthlySavings.Equal(decimal.NewFromInt(48000)))
	assert.True(t, schedule.Flows[0].Cumulative.Equal(decimal.NewFromInt(-50000)))
	assert.True(t, schedule.Flows[1].Cumulative.Equal(decimal.NewFromInt(-2000)))
	assert.True(t, schedule.Flows[2].Cumulative.Equal(decimal.NewFromInt(46000)))

	// First non-negative month
	assert.Equal(t, 2, schedule.PaybackMonth)
}

func TestROISchedulePaybackNotReached(t *testing.T) {
	e := newTestEngine(t)
	loadFixture(t, e,
		[]model.CatalogItem{item("A001", "Notebook", 150, "1200")},
		[]model.Observation{{Code: "A001", Quantity: 150}}, // floor savings of 5000
	)

	schedule, err := e.ROISchedule(context.Background(), 5)
	require.NoError(t, err)

	// 5 months at 5000 never recovers 50000
	assert.Equal(t, model.PaybackNotReached, schedule.PaybackMonth)
	assert.True(t, schedule.Flows[5].Cumulative.Equal(decimal.NewFromInt(-25000)))
}

func TestROIScheduleDefaultHorizon(t *testing.T) {
	e := newTestEngine(t)
	loadFixture(t, e,
		[]model.CatalogItem{item("A001", "Notebook", 150, "1200")},
		[]model.Observation{{Code: "A001", Quantity: 100}},
	)

	schedule, err := e.ROISchedule(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, schedule.Flows, DefaultConfig().ROIHorizonMonths+1)
}
