package model

import (
	"github.com/shopspring/decimal"
)

// DivergenceKind classifies the direction of a stock divergence.
type DivergenceKind string

// Divergence kind constants.
const (
	KindSurplus  DivergenceKind = "SURPLUS"
	KindShortage DivergenceKind = "SHORTAGE"
)

// Divergence is the derived difference between the catalog quantity and the
// physical count for one item. It is computed on demand and never stored.
type Divergence struct {
	Code        string
	Name        string
	Category    string
	SystemQty   int64
	PhysicalQty int64
	Units       int64
	Percent     float64
	UnitValue   decimal.Decimal
	Value       decimal.Decimal
	Kind        DivergenceKind
}

// Compare derives the divergence between a catalog item and a physical count.
// Units are signed (physical minus system); Value is always non-negative.
// Percent is 0 when the system quantity is 0 to avoid division by zero.
func Compare(item CatalogItem, physicalQty int64) Divergence {
	units := physicalQty - item.Quantity

	d := Divergence{
		Code:        item.Code,
		Name:        item.Name,
		Category:    item.Category,
		SystemQty:   item.Quantity,
		PhysicalQty: physicalQty,
		Units:       units,
		UnitValue:   item.UnitValue,
		Value:       divergenceValue(units, item.UnitValue),
	}

	if item.Quantity > 0 {
		d.Percent = float64(units) / float64(item.Quantity) * 100
	}

	if units > 0 {
		d.Kind = KindSurplus
	} else if units < 0 {
		d.Kind = KindShortage
	}

	return d
}

func divergenceValue(units int64, unitValue decimal.Decimal) decimal.Decimal {
	abs := units
	if abs < 0 {
		abs = -abs
	}
	return decimal.NewFromInt(abs).Mul(unitValue)
}
