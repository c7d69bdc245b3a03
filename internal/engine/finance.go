package engine

import (
	"context"
	"fmt"

	"github.com/jose6941/stocktake/internal/model"
	"github.com/shopspring/decimal"
)

// ProjectedMonthlySavings estimates the monthly savings from fixing the
// currently found divergences: the configured savings rate applied to the
// total divergence value, floored at the configured minimum so the figure
// is never reported as negligible.
func (e *Engine) ProjectedMonthlySavings(ctx context.Context) (decimal.Decimal, error) {
	divergences, err := e.ReconcileAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, d := range divergences {
		total = total.Add(d.Value)
	}

	savings := total.Mul(decimal.NewFromFloat(e.config.SavingsRate))
	if savings.LessThan(e.config.MinMonthlySavings) {
		return e.config.MinMonthlySavings, nil
	}

	return savings, nil
}

// ROISchedule builds the cumulative cash-flow series for the accuracy
// program: month 0 is the negative initial investment, every later month
// adds the projected monthly savings. Months below 1 use the configured
// horizon.
func (e *Engine) ROISchedule(ctx context.Context, months int) (*model.ROISchedule, error) {
	if months < 1 {
		months = e.config.ROIHorizonMonths
	}

	savings, err := e.ProjectedMonthlySavings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly savings: %w", err)
	}

	schedule := &model.ROISchedule{
		MonthlySavings: savings,
		Investment:     e.config.InitialInvestment,
		Flows:          make([]model.CashFlowPoint, 0, months+1),
		PaybackMonth:   model.PaybackNotReached,
	}

	cumulative := e.config.InitialInvestment.Neg()
	for month := 0; month <= months; month++ {
		if month > 0 {
			cumulative = cumulative.Add(savings)
		}

		schedule.Flows = append(schedule.Flows, model.CashFlowPoint{
			Month:      month,
			Cumulative: cumulative,
		})

		if schedule.PaybackMonth == model.PaybackNotReached && !cumulative.IsNegative() {
			schedule.PaybackMonth = month
		}
	}

	return schedule, nil
}
