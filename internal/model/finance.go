package model

import (
	"github.com/shopspring/decimal"
)

// PaybackNotReached marks an ROI schedule whose cumulative cash flow never
// turns non-negative within the horizon.
const PaybackNotReached = -1

// CashFlowPoint is one month of cumulative projected cash flow.
type CashFlowPoint struct {
	Month      int
	Cumulative decimal.Decimal
}

// ROISchedule is the projected return on a fixed initial investment given a
// constant monthly savings figure.
type ROISchedule struct {
	MonthlySavings decimal.Decimal
	Investment     decimal.Decimal
	Flows          []CashFlowPoint
	// PaybackMonth is the first month whose cumulative flow is non-negative,
	// or PaybackNotReached.
	PaybackMonth int
}
