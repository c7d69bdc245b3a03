package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jose6941/stocktake/internal/model"
	"github.com/shopspring/decimal"
)

// Money formats a decimal amount for display.
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatCountEvent renders the outcome of one cyclic count.
func FormatCountEvent(event *model.CountEvent) string {
	var b strings.Builder

	if event.Status == model.StatusOK {
		b.WriteString(SuccessStyle.Render(fmt.Sprintf("OK  %s - %s", event.Code, event.Name)))
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("    system %d, counted %d", event.SystemQty, event.PhysicalQty)))
	} else {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("DIVERGENT  %s - %s", event.Code, event.Name)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("    system %d, counted %d (%+d units)\n", event.SystemQty, event.PhysicalQty, event.Units))
		b.WriteString(fmt.Sprintf("    impact %s", Money(event.Value)))
	}

	return b.String()
}

// FormatDivergences renders the ranked divergence list as a table.
func FormatDivergences(divergences []model.Divergence) string {
	if len(divergences) == 0 {
		return SuccessStyle.Render("No divergences found.")
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-10s %-24s %-14s %8s %8s %7s %10s  %s",
		"CODE", "NAME", "CATEGORY", "SYSTEM", "COUNTED", "UNITS", "VALUE", "KIND")))
	b.WriteString("\n")

	for _, d := range divergences {
		kind := WarningStyle.Render("surplus")
		if d.Kind == model.KindShortage {
			kind = ErrorStyle.Render("shortage")
		}

		b.WriteString(fmt.Sprintf("%-10s %-24s %-14s %8d %8d %+7d %10s  %s\n",
			d.Code, truncate(d.Name, 24), truncate(d.Category, 14),
			d.SystemQty, d.PhysicalQty, d.Units, Money(d.Value), kind))
	}

	return b.String()
}

// FormatMovements renders the drift audit log.
func FormatMovements(movements []model.Movement) string {
	if len(movements) == 0 {
		return SubtleStyle.Render("No movements recorded.")
	}

	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-20s %-10s %7s %10s  %s",
		"RECORDED", "CODE", "UNITS", "VALUE", "REASON")))
	b.WriteString("\n")

	for _, m := range movements {
		b.WriteString(fmt.Sprintf("%-20s %-10s %+7d %10s  %s\n",
			m.RecordedAt.Format("2006-01-02 15:04:05"), m.Code, m.Units, Money(m.Value), m.Reason))
	}

	return b.String()
}

// FormatMetrics renders the KPI panel for the current ledger state.
func FormatMetrics(metrics *model.Metrics) string {
	lines := []string{
		TitleStyle.Render("Inventory Accuracy"),
		fmt.Sprintf("Accuracy:          %s", accuracyStyle(metrics.Accuracy).Render(fmt.Sprintf("%.1f%%", metrics.Accuracy))),
		fmt.Sprintf("Counts performed:  %d", metrics.TotalCounts),
		fmt.Sprintf("Divergent counts:  %d", metrics.DivergentCounts),
		fmt.Sprintf("Divergence value:  %s", Money(metrics.DivergenceValue)),
		fmt.Sprintf("Catalog value:     %s", Money(metrics.CatalogValue)),
		fmt.Sprintf("Financial impact:  %.2f%%", metrics.ImpactPercent),
	}

	return BoxStyle.Render(strings.Join(lines, "\n"))
}

// FormatBaseline renders the pre-count fallback view.
func FormatBaseline(accuracy float64) string {
	lines := []string{
		TitleStyle.Render("Inventory Accuracy (baseline)"),
		fmt.Sprintf("Initial accuracy:  %s", accuracyStyle(accuracy).Render(fmt.Sprintf("%.1f%%", accuracy))),
		SubtleStyle.Render("No cyclic counts recorded yet."),
	}

	return BoxStyle.Render(strings.Join(lines, "\n"))
}

// FormatProjection renders the projected accuracy trajectory.
func FormatProjection(points []model.ProjectionPoint) string {
	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%4s  %9s  %s", "DAY", "ACCURACY", "PHASE")))
	b.WriteString("\n")

	for _, point := range points {
		b.WriteString(fmt.Sprintf("%4d  %8.1f%%  %s\n", point.Day, point.Accuracy, point.Phase))
	}

	return b.String()
}

// FormatROISchedule renders the cumulative cash-flow series.
func FormatROISchedule(schedule *model.ROISchedule) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("ROI Projection"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Monthly savings:     %s\n", Money(schedule.MonthlySavings)))
	b.WriteString(fmt.Sprintf("Initial investment:  %s\n\n", Money(schedule.Investment)))

	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%5s  %14s", "MONTH", "CUMULATIVE")))
	b.WriteString("\n")
	for _, flow := range schedule.Flows {
		line := fmt.Sprintf("%5d  %14s", flow.Month, Money(flow.Cumulative))
		if flow.Month == schedule.PaybackMonth {
			line += "  " + SuccessStyle.Render("payback")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if schedule.PaybackMonth == model.PaybackNotReached {
		b.WriteString(WarningStyle.Render("Payback not reached within horizon."))
	} else {
		b.WriteString(SuccessStyle.Render(fmt.Sprintf("Payback in %d months.", schedule.PaybackMonth)))
	}

	return b.String()
}

func accuracyStyle(accuracy float64) lipgloss.Style {
	switch {
	case accuracy >= 95:
		return SuccessStyle
	case accuracy >= 85:
		return WarningStyle
	default:
		return ErrorStyle
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
