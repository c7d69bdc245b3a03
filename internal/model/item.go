// Package model defines the core domain models used throughout the application.
package model

import (
	"github.com/shopspring/decimal"
)

// CatalogItem is the system-of-record entry for one item, keyed by its code.
type CatalogItem struct {
	Code      string
	Name      string
	Category  string
	Quantity  int64
	UnitValue decimal.Decimal
}

// TotalValue returns the book value of the item (quantity times unit value).
func (i *CatalogItem) TotalValue() decimal.Decimal {
	return decimal.NewFromInt(i.Quantity).Mul(i.UnitValue)
}

// Observation is the physically counted quantity for one item code.
type Observation struct {
	Code     string
	Quantity int64
}
