package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CountStatus indicates the outcome of a cyclic count.
type CountStatus string

// Count status constants.
const (
	StatusOK        CountStatus = "OK"
	StatusDivergent CountStatus = "DIVERGENT"
)

// CountEvent records one cyclic count of a single item at one instant.
// Events are appended to the ledger in call order and are immutable once
// recorded; only a bulk reset removes them.
type CountEvent struct {
	ID          string
	RecordedAt  time.Time
	Code        string
	Name        string
	Category    string
	SystemQty   int64
	PhysicalQty int64
	Units       int64
	Value       decimal.Decimal
	Status      CountStatus
}

// Divergent reports whether the count found a non-zero divergence.
func (e *CountEvent) Divergent() bool {
	return e.Status == StatusDivergent
}

// Movement records observed stock drift discovered by a divergent count.
// Movements describe what was found; they never adjust catalog quantities.
type Movement struct {
	ID         string
	RecordedAt time.Time
	Code       string
	Units      int64
	Value      decimal.Decimal
	Reason     string
}
