package model

import (
	"github.com/shopspring/decimal"
)

// Metrics holds the rolling accuracy KPIs derived from the count ledger and
// the current catalog.
type Metrics struct {
	// Accuracy is the share of ledger events with status OK, in percent.
	Accuracy float64
	// TotalCounts is the number of events in the ledger, repeats included.
	TotalCounts int
	// DivergentCounts is the cumulative number of divergent events.
	DivergentCounts int
	// DivergenceValue is the cumulative value of all divergent events.
	DivergenceValue decimal.Decimal
	// CatalogValue is the current total book value of the catalog.
	CatalogValue decimal.Decimal
	// ImpactPercent is DivergenceValue relative to CatalogValue, in percent.
	// Zero when the catalog has no value.
	ImpactPercent float64
}
